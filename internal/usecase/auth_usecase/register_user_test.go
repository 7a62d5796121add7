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

// =====================
// Mocks
// =====================

type AuthUserRepoMock struct{ mock.Mock }

func (m *AuthUserRepoMock) Create(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *AuthUserRepoMock) FindByID(ctx context.Context, userID int64) (*model.User, error) {
	args := m.Called(ctx, userID)
	u, _ := args.Get(0).(*model.User)
	return u, args.Error(1)
}

func (m *AuthUserRepoMock) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	u, _ := args.Get(0).(*model.User)
	return u, args.Error(1)
}

func (m *AuthUserRepoMock) Update(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *AuthUserRepoMock) UpdateCart(ctx context.Context, userID int64, cart []int64) error {
	panic("not used in auth tests")
}

func (m *AuthUserRepoMock) UpdatePasswordHash(ctx context.Context, userID int64, hash string) error {
	panic("not used in auth tests")
}

func (m *AuthUserRepoMock) UpdateRole(ctx context.Context, userID int64, role model.Role) error {
	panic("not used in auth tests")
}

func (m *AuthUserRepoMock) IncrementTokenVersion(ctx context.Context, userID int64) error {
	panic("not used in auth tests")
}

func (m *AuthUserRepoMock) ListAdmin(ctx context.Context, f repo.AdminUserListFilter) ([]model.User, int64, error) {
	panic("not used in auth tests")
}

func (m *AuthUserRepoMock) CountAll(ctx context.Context) (int64, error) {
	panic("not used in auth tests")
}

type AuthHasherMock struct{ mock.Mock }

func (m *AuthHasherMock) Hash(plain string) (string, error) {
	args := m.Called(plain)
	return args.String(0), args.Error(1)
}

type AuthVerifierMock struct{ mock.Mock }

func (m *AuthVerifierMock) Verify(plain string, hashed string) bool {
	args := m.Called(plain, hashed)
	return args.Bool(0)
}

type AuthIssuerMock struct{ mock.Mock }

func (m *AuthIssuerMock) Issue(userID int64, role model.Role, tokenVersion int, now time.Time) (string, time.Time, error) {
	args := m.Called(userID, role, tokenVersion, now)
	return args.String(0), now.Add(time.Hour), args.Error(2)
}

type fixedClock struct{ now time.Time }

func (c *fixedClock) Now() time.Time { return c.now }

// =====================
// Register
// =====================

func TestRegisterUserUsecase_InvalidInput(t *testing.T) {
	uc := auth.NewRegisterUserUsecase(new(AuthUserRepoMock), new(AuthHasherMock), new(AuthIssuerMock), &fixedClock{time.Now()})

	_, err := uc.Execute(context.Background(), auth.RegisterUserInput{Name: "", Email: "a@b.co", Password: "password1"})
	assert.ErrorIs(t, err, auth.ErrInvalidInput)

	_, err = uc.Execute(context.Background(), auth.RegisterUserInput{Name: "Aki", Email: "a@b.co", Password: "short"})
	assert.ErrorIs(t, err, auth.ErrInvalidInput)
}

func TestRegisterUserUsecase_EmailAlreadyExists(t *testing.T) {
	users := new(AuthUserRepoMock)
	uc := auth.NewRegisterUserUsecase(users, new(AuthHasherMock), new(AuthIssuerMock), &fixedClock{time.Now()})

	users.On("FindByEmail", mock.Anything, "aki@example.com").Return(&model.User{ID: 1}, nil)

	_, err := uc.Execute(context.Background(), auth.RegisterUserInput{Name: "Aki", Email: "Aki@Example.com", Password: "password1"})
	assert.ErrorIs(t, err, auth.ErrEmailAlreadyExists)

	users.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestRegisterUserUsecase_Success(t *testing.T) {
	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	users := new(AuthUserRepoMock)
	hasher := new(AuthHasherMock)
	issuer := new(AuthIssuerMock)
	uc := auth.NewRegisterUserUsecase(users, hasher, issuer, &fixedClock{now})

	users.On("FindByEmail", mock.Anything, "aki@example.com").Return(nil, repo.ErrNotFound)
	hasher.On("Hash", "password1").Return("hashed", nil)
	users.On("Create", mock.Anything, mock.MatchedBy(func(u *model.User) bool {
		//メールは小文字、カートは空リスト、roleはuserで保存する
		return u.Email == "aki@example.com" &&
			u.PasswordHash == "hashed" &&
			u.Role == model.RoleUser &&
			u.Cart != nil && len(u.Cart) == 0 &&
			u.IsActive
	})).Return(nil)
	issuer.On("Issue", int64(0), model.RoleUser, 0, now).Return("token123", now.Add(time.Hour), nil)

	out, err := uc.Execute(context.Background(), auth.RegisterUserInput{Name: " Aki ", Email: " Aki@Example.com ", Password: "password1"})
	assert.NoError(t, err)
	assert.Equal(t, "token123", out.Token)
	//ハッシュは外に出さない
	assert.Equal(t, "", out.User.PasswordHash)
	assert.Equal(t, "Aki", out.User.Name)

	users.AssertExpectations(t)
	hasher.AssertExpectations(t)
}
