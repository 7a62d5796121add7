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

type AdminProductUsecase struct {
	productRepo repo.ProductRepository
	userRepo    repo.UserRepository
	auditRepo   repo.AuditLogRepository
}

func NewAdminProductUsecase(
	productRepo repo.ProductRepository,
	userRepo repo.UserRepository,
	auditRepo repo.AuditLogRepository,
) *AdminProductUsecase {
	return &AdminProductUsecase{
		productRepo: productRepo,
		userRepo:    userRepo,
		auditRepo:   auditRepo,
	}
}

// 一覧に添える出品者情報（管理画面はメール付き）
type AdminSellerInfo struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	ImageURL string `json:"image_url"`
}

type AdminProductRow struct {
	model.Product
	Seller AdminSellerInfo `json:"seller"`
}

type AdminProductListOutput struct {
	Products []AdminProductRow `json:"products"`
	Total    int64             `json:"total"`
	Page     int               `json:"page"`
}

// 商品一覧（全ステータス対象）
func (u *AdminProductUsecase) List(ctx context.Context, f repo.AdminProductListFilter) (AdminProductListOutput, error) {
	if f.Page < 1 {
		return AdminProductListOutput{}, NewHTTPError(http.StatusBadRequest, "invalid page")
	}
	if f.Limit < 1 || f.Limit > 100 {
		return AdminProductListOutput{}, NewHTTPError(http.StatusBadRequest, "invalid limit")
	}
	if f.Status != "" && !model.ProductStatus(f.Status).Valid() {
		return AdminProductListOutput{}, NewHTTPError(http.StatusBadRequest, "invalid status")
	}

	items, total, err := u.productRepo.ListAdmin(ctx, f)
	if err != nil {
		return AdminProductListOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	sellers := map[int64]AdminSellerInfo{}
	rows := make([]AdminProductRow, 0, len(items))
	for _, p := range items {
		info, ok := sellers[p.SellerID]
		if !ok {
			seller, err := u.userRepo.FindByID(ctx, p.SellerID)
			if err != nil && err != repo.ErrNotFound {
				return AdminProductListOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
			}
			if seller != nil {
				info = AdminSellerInfo{
					ID:       seller.ID,
					Name:     seller.Name,
					Email:    seller.Email,
					ImageURL: seller.ImageURL,
				}
			}
			sellers[p.SellerID] = info
		}
		rows = append(rows, AdminProductRow{Product: p, Seller: info})
	}

	return AdminProductListOutput{Products: rows, Total: total, Page: f.Page}, nil
}

type AdminUpdateProductStatusInput struct {
	Status string
}

// 審査の承認/却下を含むステータス変更。
// 管理者はSOLDも含めて任意の値に上書きできる（administrative override）。
func (u *AdminProductUsecase) UpdateStatus(ctx context.Context, actorAdminUserID int64, productID int64, in AdminUpdateProductStatusInput) (model.Product, error) {
	if actorAdminUserID <= 0 {
		return model.Product{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if productID <= 0 {
		return model.Product{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	newStatus := model.ProductStatus(strings.TrimSpace(in.Status))
	if !newStatus.Valid() {
		return model.Product{}, NewHTTPError(http.StatusBadRequest, "invalid status")
	}

	p, err := u.productRepo.FindByID(ctx, productID)
	if err == repo.ErrNotFound {
		return model.Product{}, NewHTTPError(http.StatusNotFound, "product not found")
	}
	if err != nil {
		return model.Product{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	if p.Status == newStatus {
		return p, nil
	}

	if err := u.productRepo.UpdateStatus(ctx, productID, newStatus); err != nil {
		if err == repo.ErrNotFound {
			return model.Product{}, NewHTTPError(http.StatusNotFound, "product not found")
		}
		return model.Product{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	u.writeAudit(ctx, actorAdminUserID, model.AuditActionUpdateProductStatus, productID,
		map[string]string{"status": string(p.Status)},
		map[string]string{"status": string(newStatus)},
	)

	p.Status = newStatus
	return p, nil
}

type AdminUpdateProductFieldsInput struct {
	Name        *string
	Description *string
	Category    *string
	Price       *int64
}

// 商品フィールドの部分上書き（nilは据え置き）。
func (u *AdminProductUsecase) UpdateFields(ctx context.Context, actorAdminUserID int64, productID int64, in AdminUpdateProductFieldsInput) (model.Product, error) {
	if actorAdminUserID <= 0 {
		return model.Product{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if productID <= 0 {
		return model.Product{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	if in.Name != nil && strings.TrimSpace(*in.Name) == "" {
		return model.Product{}, NewHTTPError(http.StatusBadRequest, "name required")
	}
	if in.Price != nil && *in.Price < 0 {
		return model.Product{}, NewHTTPError(http.StatusBadRequest, "price must be >= 0")
	}

	before, err := u.productRepo.FindByID(ctx, productID)
	if err == repo.ErrNotFound {
		return model.Product{}, NewHTTPError(http.StatusNotFound, "product not found")
	}
	if err != nil {
		return model.Product{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	err = u.productRepo.UpdateFields(ctx, productID, repo.ProductFieldsPatch{
		Name:        in.Name,
		Description: in.Description,
		Category:    in.Category,
		Price:       in.Price,
	})
	if err != nil {
		if err == repo.ErrNotFound {
			return model.Product{}, NewHTTPError(http.StatusNotFound, "product not found")
		}
		return model.Product{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	after, err := u.productRepo.FindByID(ctx, productID)
	if err != nil {
		return model.Product{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	u.writeAudit(ctx, actorAdminUserID, model.AuditActionUpdateProductFields, productID, before, after)

	return after, nil
}

func (u *AdminProductUsecase) writeAudit(ctx context.Context, actorID int64, action model.AuditAction, productID int64, before any, after any) {
	beforeJSON, _ := json.Marshal(before)
	afterJSON, _ := json.Marshal(after)

	_ = u.auditRepo.Create(ctx, model.AuditLog{
		ActorUserID:  actorID,
		Action:       action,
		ResourceType: model.AuditResourceProduct,
		ResourceID:   productID,
		BeforeJSON:   string(beforeJSON),
		AfterJSON:    string(afterJSON),
		CreatedAt:    time.Now(),
	})
}
