package usecase

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"app/internal/domain/model"
	repo "app/internal/repository"
)

type AdminUserUsecase struct {
	userRepo    repo.UserRepository
	productRepo repo.ProductRepository
	orderRepo   repo.OrderRepository
	auditRepo   repo.AuditLogRepository
}

func NewAdminUserUsecase(
	userRepo repo.UserRepository,
	productRepo repo.ProductRepository,
	orderRepo repo.OrderRepository,
	auditRepo repo.AuditLogRepository,
) *AdminUserUsecase {
	return &AdminUserUsecase{
		userRepo:    userRepo,
		productRepo: productRepo,
		orderRepo:   orderRepo,
		auditRepo:   auditRepo,
	}
}

type AdminUserRow struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Role         string    `json:"role"`
	ImageURL     string    `json:"image_url"`
	CreatedAt    time.Time `json:"created_at"`
	ProductCount int64     `json:"product_count"`
	OrderCount   int64     `json:"order_count"`
}

type AdminUserListOutput struct {
	Users []AdminUserRow `json:"users"`
	Total int64          `json:"total"`
	Page  int            `json:"page"`
}

// ユーザー一覧（ロール絞り込み＋名前/メール検索、出品数・注文数付き）
func (u *AdminUserUsecase) List(ctx context.Context, f repo.AdminUserListFilter) (AdminUserListOutput, error) {
	if f.Page < 1 {
		return AdminUserListOutput{}, NewHTTPError(http.StatusBadRequest, "invalid page")
	}
	if f.Limit < 1 || f.Limit > 100 {
		return AdminUserListOutput{}, NewHTTPError(http.StatusBadRequest, "invalid limit")
	}
	if f.Role != "" && !validRole(f.Role) {
		return AdminUserListOutput{}, NewHTTPError(http.StatusBadRequest, "invalid role")
	}

	users, total, err := u.userRepo.ListAdmin(ctx, f)
	if err != nil {
		return AdminUserListOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	rows := make([]AdminUserRow, 0, len(users))
	for _, usr := range users {
		productCount, err := u.productRepo.CountBySeller(ctx, usr.ID)
		if err != nil {
			return AdminUserListOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
		}
		orderCount, err := u.orderRepo.CountByBuyer(ctx, usr.ID)
		if err != nil {
			return AdminUserListOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
		}

		rows = append(rows, AdminUserRow{
			ID:           usr.ID,
			Name:         usr.Name,
			Email:        usr.Email,
			Role:         string(usr.Role),
			ImageURL:     usr.ImageURL,
			CreatedAt:    usr.CreatedAt,
			ProductCount: productCount,
			OrderCount:   orderCount,
		})
	}

	return AdminUserListOutput{Users: rows, Total: total, Page: f.Page}, nil
}

type AdminUpdateUserRoleInput struct {
	Role string
}

// ロール変更。古いロールのJWTを無効化するためtoken_versionも上げる。
func (u *AdminUserUsecase) UpdateRole(ctx context.Context, actorAdminUserID int64, targetUserID int64, in AdminUpdateUserRoleInput) (*model.User, error) {
	if actorAdminUserID <= 0 {
		return nil, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if targetUserID <= 0 {
		return nil, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	newRole := strings.TrimSpace(in.Role)
	if !validRole(newRole) {
		return nil, NewHTTPError(http.StatusBadRequest, "invalid role")
	}

	target, err := u.userRepo.FindByID(ctx, targetUserID)
	if err == repo.ErrNotFound {
		return nil, NewHTTPError(http.StatusNotFound, "user not found")
	}
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	if string(target.Role) == newRole {
		return target, nil
	}

	if err := u.userRepo.UpdateRole(ctx, targetUserID, model.Role(newRole)); err != nil {
		if err == repo.ErrNotFound {
			return nil, NewHTTPError(http.StatusNotFound, "user not found")
		}
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	//既存トークンの role claim が残らないように強制ログアウト
	if err := u.userRepo.IncrementTokenVersion(ctx, targetUserID); err != nil && err != repo.ErrNotFound {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	beforeJSON, _ := json.Marshal(map[string]string{"role": string(target.Role)})
	afterJSON, _ := json.Marshal(map[string]string{"role": newRole})
	_ = u.auditRepo.Create(ctx, model.AuditLog{
		ActorUserID:  actorAdminUserID,
		Action:       model.AuditActionUpdateUserRole,
		ResourceType: model.AuditResourceUser,
		ResourceID:   targetUserID,
		BeforeJSON:   string(beforeJSON),
		AfterJSON:    string(afterJSON),
		CreatedAt:    time.Now(),
	})

	target.Role = model.Role(newRole)
	return target, nil
}

func validRole(s string) bool {
	switch model.Role(s) {
	case model.RoleUser, model.RoleAdmin:
		return true
	default:
		return false
	}
}
