package repository

import (
	"app/internal/domain/model"
	"context"
	"errors"
)

var ErrNotFound = errors.New("not found")

// 公開一覧の検索条件
type ProductListQuery struct {
	Page     int
	Limit    int
	Search   string
	Category string
}

// 管理者一覧の検索条件（全ステータス対象）
type AdminProductListFilter struct {
	Page   int
	Limit  int
	Status string
	Search string
}

// 管理者が部分更新できるフィールド（nilは据え置き）
type ProductFieldsPatch struct {
	Name        *string
	Description *string
	Category    *string
	Price       *int64
}

// カテゴリ別の件数（メトリクス用）
type CategoryCount struct {
	Category string `json:"category"`
	Count    int64  `json:"count"`
}

// 商品の永続化（保存・取得）だけを約束。
type ProductRepository interface {
	FindByID(ctx context.Context, id int64) (model.Product, error)
	//要求したIDのうち存在する行だけ返す（件数は呼び出し側で照合する）
	FindByIDs(ctx context.Context, ids []int64) ([]model.Product, error)
	ListActive(ctx context.Context, q ProductListQuery) ([]model.Product, int64, error)
	ListBySeller(ctx context.Context, sellerID int64) ([]model.Product, error)
	ListAdmin(ctx context.Context, f AdminProductListFilter) ([]model.Product, int64, error)

	Create(ctx context.Context, p model.Product) (model.Product, error)
	Update(ctx context.Context, p model.Product) error
	UpdateFields(ctx context.Context, id int64, patch ProductFieldsPatch) error
	UpdateStatus(ctx context.Context, id int64, status model.ProductStatus) error
	SoftDelete(ctx context.Context, id int64) error

	//ACTIVEの行だけSOLDに切り替え、実際に更新できた行数を返す。
	//checkoutの二重販売ガードはこの戻り値の照合で成立する。
	MarkSoldIfActive(ctx context.Context, ids []int64) (int64, error)

	CountBySeller(ctx context.Context, sellerID int64) (int64, error)
	CountByStatus(ctx context.Context) (map[model.ProductStatus]int64, error)
	TopCategories(ctx context.Context, limit int) ([]CategoryCount, error)
}
