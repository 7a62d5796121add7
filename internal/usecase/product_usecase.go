package usecase

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"app/internal/domain/model"
	repo "app/internal/repository"
)

type HTTPError struct {
	Status  int
	Message string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("%d: %s", e.Status, e.Message)
}

func NewHTTPError(status int, message string) error {
	return &HTTPError{
		Status:  status,
		Message: message,
	}
}

func AsHTTPError(err error) (*HTTPError, bool) {
	var he *HTTPError
	ok := errors.As(err, &he)
	return he, ok
}

type ProductUsecase struct {
	productRepo repo.ProductRepository
	userRepo    repo.UserRepository
}

// DI
func NewProductUsecase(
	productRepo repo.ProductRepository,
	userRepo repo.UserRepository,
) *ProductUsecase {
	return &ProductUsecase{
		productRepo: productRepo,
		userRepo:    userRepo,
	}
}

// GET /user/productsの入力DTO
type ListProductsInput struct {
	Page     int
	Limit    int
	Search   string
	Category string
}

// 一覧に添える出品者の公開情報
type SellerInfo struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Location string `json:"location"`
}

type ProductWithSeller struct {
	model.Product
	Seller SellerInfo `json:"seller"`
}

type ProductListOutput struct {
	Products []ProductWithSeller `json:"products"`
	Total    int64               `json:"total"`
	Page     int                 `json:"page"`
	Limit    int                 `json:"limit"`
}

// 公開中（ACTIVE）の商品を検索・カテゴリ・ページング付きで返す。
func (u *ProductUsecase) ListActiveProducts(ctx context.Context, in ListProductsInput) (ProductListOutput, error) {
	if in.Page < 1 {
		return ProductListOutput{}, NewHTTPError(http.StatusBadRequest, "invalid page")
	}
	if in.Limit < 1 || in.Limit > 100 {
		return ProductListOutput{}, NewHTTPError(http.StatusBadRequest, "invalid limit")
	}
	if len(in.Search) > 100 {
		return ProductListOutput{}, NewHTTPError(http.StatusBadRequest, "search too long")
	}

	items, total, err := u.productRepo.ListActive(ctx, repo.ProductListQuery{
		Page:     in.Page,
		Limit:    in.Limit,
		Search:   strings.TrimSpace(in.Search),
		Category: strings.TrimSpace(in.Category),
	})
	if err != nil {
		return ProductListOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	withSellers, err := u.attachSellers(ctx, items)
	if err != nil {
		return ProductListOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return ProductListOutput{
		Products: withSellers,
		Total:    total,
		Page:     in.Page,
		Limit:    in.Limit,
	}, nil
}

// 商品詳細（出品者の公開情報付き）
func (u *ProductUsecase) GetProductDetail(ctx context.Context, productID int64) (ProductWithSeller, error) {
	if productID <= 0 {
		return ProductWithSeller{}, NewHTTPError(http.StatusBadRequest, "invalid product id")
	}

	p, err := u.productRepo.FindByID(ctx, productID)
	if err == repo.ErrNotFound {
		return ProductWithSeller{}, NewHTTPError(http.StatusNotFound, "product not found")
	}
	if err != nil {
		return ProductWithSeller{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	withSellers, err := u.attachSellers(ctx, []model.Product{p})
	if err != nil || len(withSellers) == 0 {
		return ProductWithSeller{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return withSellers[0], nil
}

type CreateProductInput struct {
	Name        string
	Description string
	Category    string
	Price       int64
	ImageURL    string
}

// 出品。審査待ち（UNDER_REVIEW）で作成する。
func (u *ProductUsecase) CreateProduct(ctx context.Context, sellerID int64, in CreateProductInput) (model.Product, error) {
	if sellerID <= 0 {
		return model.Product{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if strings.TrimSpace(in.Name) == "" {
		return model.Product{}, NewHTTPError(http.StatusBadRequest, "name required")
	}
	if strings.TrimSpace(in.Description) == "" {
		return model.Product{}, NewHTTPError(http.StatusBadRequest, "description required")
	}
	if strings.TrimSpace(in.Category) == "" {
		return model.Product{}, NewHTTPError(http.StatusBadRequest, "category required")
	}
	if in.Price < 0 {
		return model.Product{}, NewHTTPError(http.StatusBadRequest, "price must be >= 0")
	}

	now := time.Now()
	p, err := u.productRepo.Create(ctx, model.Product{
		SellerID:    sellerID,
		Name:        strings.TrimSpace(in.Name),
		Description: in.Description,
		Category:    strings.TrimSpace(in.Category),
		Price:       in.Price,
		Status:      model.ProductStatusUnderReview,
		ImageURL:    in.ImageURL,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	if err != nil {
		return model.Product{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return p, nil
}

// 自分の出品一覧（新しい順）
func (u *ProductUsecase) ListMyProducts(ctx context.Context, sellerID int64) ([]model.Product, error) {
	if sellerID <= 0 {
		return []model.Product{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	items, err := u.productRepo.ListBySeller(ctx, sellerID)
	if err != nil {
		return []model.Product{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return items, nil
}

// 出品者による編集。
// 他人の商品は「存在しない扱い」。SOLDは編集不可（管理者のみ）。
func (u *ProductUsecase) UpdateProduct(ctx context.Context, sellerID int64, productID int64, in CreateProductInput) (model.Product, error) {
	if sellerID <= 0 {
		return model.Product{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if productID <= 0 {
		return model.Product{}, NewHTTPError(http.StatusBadRequest, "invalid product id")
	}
	if strings.TrimSpace(in.Name) == "" {
		return model.Product{}, NewHTTPError(http.StatusBadRequest, "name required")
	}
	if in.Price < 0 {
		return model.Product{}, NewHTTPError(http.StatusBadRequest, "price must be >= 0")
	}

	p, err := u.productRepo.FindByID(ctx, productID)
	if err == repo.ErrNotFound {
		return model.Product{}, NewHTTPError(http.StatusNotFound, "product not found")
	}
	if err != nil {
		return model.Product{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if p.SellerID != sellerID {
		return model.Product{}, NewHTTPError(http.StatusNotFound, "product not found")
	}
	if p.Status == model.ProductStatusSold {
		return model.Product{}, NewHTTPError(http.StatusConflict, "sold products cannot be edited")
	}

	p.Name = strings.TrimSpace(in.Name)
	p.Description = in.Description
	if strings.TrimSpace(in.Category) != "" {
		p.Category = strings.TrimSpace(in.Category)
	}
	p.Price = in.Price
	if in.ImageURL != "" {
		p.ImageURL = in.ImageURL
	}

	if err := u.productRepo.Update(ctx, p); err != nil {
		if err == repo.ErrNotFound {
			return model.Product{}, NewHTTPError(http.StatusNotFound, "product not found")
		}
		return model.Product{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return p, nil
}

// 出品者による削除（ソフトデリート）。
// 他ユーザーのカートに残る参照は掃除しない（カート読み出し側で除外される）。
func (u *ProductUsecase) DeleteProduct(ctx context.Context, sellerID int64, productID int64) error {
	if sellerID <= 0 {
		return NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if productID <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid product id")
	}

	p, err := u.productRepo.FindByID(ctx, productID)
	if err == repo.ErrNotFound {
		return NewHTTPError(http.StatusNotFound, "product not found")
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if p.SellerID != sellerID {
		return NewHTTPError(http.StatusNotFound, "product not found")
	}
	if p.Status == model.ProductStatusSold {
		return NewHTTPError(http.StatusConflict, "sold products cannot be deleted")
	}

	if err := u.productRepo.SoftDelete(ctx, productID); err != nil {
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, "product not found")
		}
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}

// 出品者情報をまとめて引いて添付する
func (u *ProductUsecase) attachSellers(ctx context.Context, items []model.Product) ([]ProductWithSeller, error) {
	sellers := map[int64]SellerInfo{}

	outs := make([]ProductWithSeller, 0, len(items))
	for _, p := range items {
		info, ok := sellers[p.SellerID]
		if !ok {
			seller, err := u.userRepo.FindByID(ctx, p.SellerID)
			if err != nil && err != repo.ErrNotFound {
				return nil, err
			}
			if seller != nil {
				info = SellerInfo{ID: seller.ID, Name: seller.Name, Location: seller.Location}
			}
			sellers[p.SellerID] = info
		}
		outs = append(outs, ProductWithSeller{Product: p, Seller: info})
	}
	return outs, nil
}
