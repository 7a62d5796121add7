package auth_test

import (
	"context"
	"testing"
	"time"

	"app/internal/domain/model"
	repo "app/internal/repository"
	auth "app/internal/usecase/auth_usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestLoginUsecase_InvalidInput(t *testing.T) {
	uc := auth.NewLoginUsecase(new(AuthUserRepoMock), new(AuthVerifierMock), new(AuthIssuerMock), &fixedClock{time.Now()})

	_, err := uc.Execute(context.Background(), auth.LoginInput{Email: "", Password: "x"})
	assert.ErrorIs(t, err, auth.ErrInvalidInput)
}

func TestLoginUsecase_UnknownEmail_MapsToInvalidCredentials(t *testing.T) {
	users := new(AuthUserRepoMock)
	uc := auth.NewLoginUsecase(users, new(AuthVerifierMock), new(AuthIssuerMock), &fixedClock{time.Now()})

	//ユーザーの存在は外から観測できないようにする
	users.On("FindByEmail", mock.Anything, "nobody@example.com").Return(nil, repo.ErrNotFound)

	_, err := uc.Execute(context.Background(), auth.LoginInput{Email: "nobody@example.com", Password: "password1"})
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
}

func TestLoginUsecase_WrongPassword(t *testing.T) {
	users := new(AuthUserRepoMock)
	verifier := new(AuthVerifierMock)
	uc := auth.NewLoginUsecase(users, verifier, new(AuthIssuerMock), &fixedClock{time.Now()})

	users.On("FindByEmail", mock.Anything, "aki@example.com").Return(&model.User{ID: 1, Email: "aki@example.com", PasswordHash: "hash", IsActive: true}, nil)
	verifier.On("Verify", "wrong", "hash").Return(false)

	_, err := uc.Execute(context.Background(), auth.LoginInput{Email: "aki@example.com", Password: "wrong"})
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
}

func TestLoginUsecase_InactiveUser(t *testing.T) {
	users := new(AuthUserRepoMock)
	uc := auth.NewLoginUsecase(users, new(AuthVerifierMock), new(AuthIssuerMock), &fixedClock{time.Now()})

	users.On("FindByEmail", mock.Anything, "aki@example.com").Return(&model.User{ID: 1, IsActive: false}, nil)

	_, err := uc.Execute(context.Background(), auth.LoginInput{Email: "aki@example.com", Password: "password1"})
	assert.ErrorIs(t, err, auth.ErrUserInactive)
}

func TestLoginUsecase_Success(t *testing.T) {
	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	users := new(AuthUserRepoMock)
	verifier := new(AuthVerifierMock)
	issuer := new(AuthIssuerMock)
	uc := auth.NewLoginUsecase(users, verifier, issuer, &fixedClock{now})

	users.On("FindByEmail", mock.Anything, "aki@example.com").
		Return(&model.User{ID: 1, Email: "aki@example.com", PasswordHash: "hash", Role: model.RoleUser, TokenVersion: 3, IsActive: true}, nil)
	verifier.On("Verify", "password1", "hash").Return(true)
	//token_versionはDBの現在値で発行する
	issuer.On("Issue", int64(1), model.RoleUser, 3, now).Return("token123", now.Add(time.Hour), nil)
	users.On("Update", mock.Anything, mock.AnythingOfType("*model.User")).Return(nil)

	out, err := uc.Execute(context.Background(), auth.LoginInput{Email: "aki@example.com", Password: "password1"})
	assert.NoError(t, err)
	assert.Equal(t, "token123", out.Token)
	assert.Equal(t, "", out.User.PasswordHash)

	issuer.AssertExpectations(t)
}
