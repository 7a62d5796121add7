package usecase

import (
	"context"
	"net/http"

	"app/internal/domain/model"
	repo "app/internal/repository"
)

// CartUsecase は /user/cart の業務ロジックです。
// カートはuser行のIDリストなので、読み出しは必ず商品側と突き合わせる。
type CartUsecase struct {
	userRepo    repo.UserRepository
	productRepo repo.ProductRepository
}

func NewCartUsecase(
	userRepo repo.UserRepository,
	productRepo repo.ProductRepository,
) *CartUsecase {
	return &CartUsecase{
		userRepo:    userRepo,
		productRepo: productRepo,
	}
}

// GetCart はカートの中身を返す。
// 削除済み・非公開になった商品は黙って除外する（保存リストは触らない）。
func (u *CartUsecase) GetCart(ctx context.Context, userID int64) ([]model.Product, error) {
	if userID <= 0 {
		return []model.Product{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	user, err := u.userRepo.FindByID(ctx, userID)
	if err == repo.ErrNotFound {
		return []model.Product{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if err != nil {
		return []model.Product{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	if len(user.Cart) == 0 {
		return []model.Product{}, nil
	}

	products, err := u.productRepo.FindByIDs(ctx, user.Cart)
	if err != nil {
		return []model.Product{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	//追加順を保つためカートの並びで組み直す
	byID := make(map[int64]model.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	outs := make([]model.Product, 0, len(user.Cart))
	for _, id := range user.Cart {
		p, ok := byID[id]
		if !ok || p.Status != model.ProductStatusActive {
			continue
		}
		outs = append(outs, p)
	}
	return outs, nil
}

// AddToCart はカートに商品を追加する。
// 存在しない/非公開は404、重複は409。
func (u *CartUsecase) AddToCart(ctx context.Context, userID int64, productID int64) error {
	if userID <= 0 {
		return NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if productID <= 0 {
		return NewHTTPError(http.StatusBadRequest, "product_id required")
	}

	p, err := u.productRepo.FindByID(ctx, productID)
	if err == repo.ErrNotFound {
		return NewHTTPError(http.StatusNotFound, "product not found or not available")
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if p.Status != model.ProductStatusActive {
		return NewHTTPError(http.StatusNotFound, "product not found or not available")
	}

	user, err := u.userRepo.FindByID(ctx, userID)
	if err == repo.ErrNotFound {
		return NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}

	for _, id := range user.Cart {
		if id == productID {
			return NewHTTPError(http.StatusConflict, "product already in cart")
		}
	}

	//末尾に追加（表示順を安定させる）
	cart := append(append([]int64{}, user.Cart...), productID)
	if err := u.userRepo.UpdateCart(ctx, userID, cart); err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}

// RemoveFromCart は冪等。無い商品を消しても成功として扱う。
func (u *CartUsecase) RemoveFromCart(ctx context.Context, userID int64, productID int64) error {
	if userID <= 0 {
		return NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if productID <= 0 {
		return NewHTTPError(http.StatusBadRequest, "product_id required")
	}

	user, err := u.userRepo.FindByID(ctx, userID)
	if err == repo.ErrNotFound {
		return NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}

	cart := make([]int64, 0, len(user.Cart))
	found := false
	for _, id := range user.Cart {
		if id == productID {
			found = true
			continue
		}
		cart = append(cart, id)
	}
	if !found {
		return nil
	}

	if err := u.userRepo.UpdateCart(ctx, userID, cart); err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}
