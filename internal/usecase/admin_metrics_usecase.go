package usecase

import (
	"context"
	"net/http"

	"app/internal/domain/model"
	repo "app/internal/repository"
)

// 管理画面トップの集計値を返す。
type AdminMetricsUsecase struct {
	userRepo    repo.UserRepository
	productRepo repo.ProductRepository
	orderRepo   repo.OrderRepository
}

func NewAdminMetricsUsecase(
	userRepo repo.UserRepository,
	productRepo repo.ProductRepository,
	orderRepo repo.OrderRepository,
) *AdminMetricsUsecase {
	return &AdminMetricsUsecase{
		userRepo:    userRepo,
		productRepo: productRepo,
		orderRepo:   orderRepo,
	}
}

type MetricsOutput struct {
	ProductTotals map[model.ProductStatus]int64 `json:"product_totals"`
	UsersCount    int64                         `json:"users_count"`
	OrdersCount   int64                         `json:"orders_count"`
	TopCategories []repo.CategoryCount          `json:"top_categories"`
}

func (u *AdminMetricsUsecase) Get(ctx context.Context) (MetricsOutput, error) {
	productTotals, err := u.productRepo.CountByStatus(ctx)
	if err != nil {
		return MetricsOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	usersCount, err := u.userRepo.CountAll(ctx)
	if err != nil {
		return MetricsOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	ordersCount, err := u.orderRepo.CountAll(ctx)
	if err != nil {
		return MetricsOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	topCategories, err := u.productRepo.TopCategories(ctx, 5)
	if err != nil {
		return MetricsOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return MetricsOutput{
		ProductTotals: productTotals,
		UsersCount:    usersCount,
		OrdersCount:   ordersCount,
		TopCategories: topCategories,
	}, nil
}
