package usecase_test

import (
	"context"
	"testing"

	"app/internal/domain/model"
	repo "app/internal/repository"
	"app/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type HasherMock struct{ mock.Mock }

func (m *HasherMock) Hash(plain string) (string, error) {
	args := m.Called(plain)
	return args.String(0), args.Error(1)
}

type VerifierMock struct{ mock.Mock }

func (m *VerifierMock) Verify(plain string, hashed string) bool {
	args := m.Called(plain, hashed)
	return args.Bool(0)
}

// =====================
// GetProfile / UpdateProfile
// =====================

func TestProfileUsecase_GetProfile_Success(t *testing.T) {
	users := new(UserRepoMock)
	uc := usecase.NewProfileUsecase(users, new(HasherMock), new(VerifierMock))

	users.On("FindByID", mock.Anything, int64(1)).Return(&model.User{ID: 1, Name: "Aki", Email: "aki@example.com", Role: model.RoleUser}, nil)

	out, err := uc.GetProfile(context.Background(), 1)
	assert.NoError(t, err)
	assert.Equal(t, "aki@example.com", out.Email)
}

func TestProfileUsecase_UpdateProfile_InvalidEmail(t *testing.T) {
	uc := usecase.NewProfileUsecase(new(UserRepoMock), new(HasherMock), new(VerifierMock))

	_, err := uc.UpdateProfile(context.Background(), 1, usecase.UpdateProfileInput{Name: "Aki", Email: "not-an-email"})
	assertErrContains(t, err, "invalid email")
}

func TestProfileUsecase_UpdateProfile_Conflict_WhenEmailTaken(t *testing.T) {
	users := new(UserRepoMock)
	uc := usecase.NewProfileUsecase(users, new(HasherMock), new(VerifierMock))

	users.On("FindByID", mock.Anything, int64(1)).Return(&model.User{ID: 1, Name: "Aki", Email: "aki@example.com"}, nil)
	users.On("FindByEmail", mock.Anything, "taken@example.com").Return(&model.User{ID: 2}, nil)

	_, err := uc.UpdateProfile(context.Background(), 1, usecase.UpdateProfileInput{Name: "Aki", Email: "taken@example.com"})
	assertErrContains(t, err, "already used")

	users.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestProfileUsecase_UpdateProfile_Success_LowercasesEmail(t *testing.T) {
	users := new(UserRepoMock)
	uc := usecase.NewProfileUsecase(users, new(HasherMock), new(VerifierMock))

	users.On("FindByID", mock.Anything, int64(1)).Return(&model.User{ID: 1, Name: "Aki", Email: "aki@example.com"}, nil)
	users.On("FindByEmail", mock.Anything, "new@example.com").Return(nil, repo.ErrNotFound)
	users.On("Update", mock.Anything, mock.MatchedBy(func(u *model.User) bool {
		return u.Email == "new@example.com" && u.Name == "Aki"
	})).Return(nil)

	out, err := uc.UpdateProfile(context.Background(), 1, usecase.UpdateProfileInput{Name: " Aki ", Email: " NEW@example.com "})
	assert.NoError(t, err)
	assert.Equal(t, "new@example.com", out.Email)

	users.AssertExpectations(t)
}

// =====================
// ChangePassword
// =====================

func TestProfileUsecase_ChangePassword_WrongCurrent(t *testing.T) {
	users := new(UserRepoMock)
	verifier := new(VerifierMock)
	uc := usecase.NewProfileUsecase(users, new(HasherMock), verifier)

	users.On("FindByID", mock.Anything, int64(1)).Return(&model.User{ID: 1, PasswordHash: "hash"}, nil)
	verifier.On("Verify", "wrong", "hash").Return(false)

	err := uc.ChangePassword(context.Background(), 1, usecase.ChangePasswordInput{CurrentPassword: "wrong", NewPassword: "newpassword"})
	assertErrContains(t, err, "incorrect")

	users.AssertNotCalled(t, "UpdatePasswordHash", mock.Anything, mock.Anything, mock.Anything)
}

func TestProfileUsecase_ChangePassword_TooShort(t *testing.T) {
	uc := usecase.NewProfileUsecase(new(UserRepoMock), new(HasherMock), new(VerifierMock))

	err := uc.ChangePassword(context.Background(), 1, usecase.ChangePasswordInput{CurrentPassword: "old", NewPassword: "short"})
	assertErrContains(t, err, "too short")
}

func TestProfileUsecase_ChangePassword_Success_BumpsTokenVersion(t *testing.T) {
	users := new(UserRepoMock)
	hasher := new(HasherMock)
	verifier := new(VerifierMock)
	uc := usecase.NewProfileUsecase(users, hasher, verifier)

	users.On("FindByID", mock.Anything, int64(1)).Return(&model.User{ID: 1, PasswordHash: "oldhash"}, nil)
	verifier.On("Verify", "oldpassword", "oldhash").Return(true)
	hasher.On("Hash", "newpassword").Return("newhash", nil)
	users.On("UpdatePasswordHash", mock.Anything, int64(1), "newhash").Return(nil)
	//既存トークンを無効化する
	users.On("IncrementTokenVersion", mock.Anything, int64(1)).Return(nil)

	err := uc.ChangePassword(context.Background(), 1, usecase.ChangePasswordInput{CurrentPassword: "oldpassword", NewPassword: "newpassword"})
	assert.NoError(t, err)

	users.AssertExpectations(t)
}
