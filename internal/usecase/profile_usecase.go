package usecase

import (
	"context"
	"net/http"
	"strings"
	"time"

	"app/internal/domain/model"
	repo "app/internal/repository"
	auth "app/internal/usecase/auth_usecase"
	"app/internal/validator"
)

type ProfileUsecase struct {
	userRepo repo.UserRepository
	hasher   auth.PasswordHasher
	verifier auth.PasswordVerifier
}

func NewProfileUsecase(
	userRepo repo.UserRepository,
	hasher auth.PasswordHasher,
	verifier auth.PasswordVerifier,
) *ProfileUsecase {
	return &ProfileUsecase{
		userRepo: userRepo,
		hasher:   hasher,
		verifier: verifier,
	}
}

// 外に返すユーザー（ハッシュは絶対に含めない）
type ProfileOutput struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	Location  string `json:"location"`
	ImageURL  string `json:"image_url"`
	CreatedAt time.Time `json:"created_at"`
}

func (u *ProfileUsecase) GetProfile(ctx context.Context, userID int64) (ProfileOutput, error) {
	if userID <= 0 {
		return ProfileOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	user, err := u.userRepo.FindByID(ctx, userID)
	if err == repo.ErrNotFound {
		return ProfileOutput{}, NewHTTPError(http.StatusNotFound, "user not found")
	}
	if err != nil {
		return ProfileOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return toProfileOutput(user), nil
}

type UpdateProfileInput struct {
	Name     string
	Email    string
	Location string
	ImageURL string
}

func (u *ProfileUsecase) UpdateProfile(ctx context.Context, userID int64, in UpdateProfileInput) (ProfileOutput, error) {
	if userID <= 0 {
		return ProfileOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if strings.TrimSpace(in.Name) == "" {
		return ProfileOutput{}, NewHTTPError(http.StatusBadRequest, "name required")
	}

	email := strings.ToLower(strings.TrimSpace(in.Email))
	if !validator.IsEmailLike(email) {
		return ProfileOutput{}, NewHTTPError(http.StatusBadRequest, "invalid email format")
	}

	user, err := u.userRepo.FindByID(ctx, userID)
	if err == repo.ErrNotFound {
		return ProfileOutput{}, NewHTTPError(http.StatusNotFound, "user not found")
	}
	if err != nil {
		return ProfileOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	//メール変更時は他ユーザーとの重複をチェック
	if email != user.Email {
		existing, err := u.userRepo.FindByEmail(ctx, email)
		if err != nil && err != repo.ErrNotFound {
			return ProfileOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
		}
		if existing != nil && existing.ID != userID {
			return ProfileOutput{}, NewHTTPError(http.StatusConflict, "email already used")
		}
	}

	user.Name = strings.TrimSpace(in.Name)
	user.Email = email
	user.Location = strings.TrimSpace(in.Location)
	user.ImageURL = in.ImageURL

	if err := u.userRepo.Update(ctx, user); err != nil {
		return ProfileOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return toProfileOutput(user), nil
}

type ChangePasswordInput struct {
	CurrentPassword string
	NewPassword     string
}

// パスワード変更。既存トークンを無効化するためtoken_versionも上げる。
func (u *ProfileUsecase) ChangePassword(ctx context.Context, userID int64, in ChangePasswordInput) error {
	if userID <= 0 {
		return NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if in.CurrentPassword == "" || in.NewPassword == "" {
		return NewHTTPError(http.StatusBadRequest, "current password and new password are required")
	}
	if len(in.NewPassword) < 8 {
		return NewHTTPError(http.StatusBadRequest, "password too short")
	}

	user, err := u.userRepo.FindByID(ctx, userID)
	if err == repo.ErrNotFound {
		return NewHTTPError(http.StatusNotFound, "user not found")
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}

	if !u.verifier.Verify(in.CurrentPassword, user.PasswordHash) {
		return NewHTTPError(http.StatusBadRequest, "current password is incorrect")
	}

	hash, err := u.hasher.Hash(in.NewPassword)
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	if err := u.userRepo.UpdatePasswordHash(ctx, userID, hash); err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if err := u.userRepo.IncrementTokenVersion(ctx, userID); err != nil && err != repo.ErrNotFound {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}

func toProfileOutput(user *model.User) ProfileOutput {
	return ProfileOutput{
		ID:        user.ID,
		Name:      user.Name,
		Email:     user.Email,
		Role:      string(user.Role),
		Location:  user.Location,
		ImageURL:  user.ImageURL,
		CreatedAt: user.CreatedAt,
	}
}
