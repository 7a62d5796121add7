package repository

import (
	"context"

	"app/internal/domain/model"
)

type AdminOrderListFilter struct {
	Page   int
	Limit  int
	Status string
	//商品名・購入者名/メール・出品者名/メールを横断検索
	Search string
}

// 購入履歴1件分。スナップショットに加えて、現在の商品表示情報をJOINで添える。
type OrderWithProduct struct {
	Order           model.Order `json:"order"`
	ProductImageURL string      `json:"product_image_url"`
	ProductStatus   string      `json:"product_status"`
}

// 管理者一覧1件分（購入者・出品者込み）。
type AdminOrderRow struct {
	Order       model.Order `json:"order"`
	ProductName string      `json:"product_name"`
	BuyerName   string      `json:"buyer_name"`
	BuyerEmail  string      `json:"buyer_email"`
	SellerName  string      `json:"seller_name"`
	SellerEmail string      `json:"seller_email"`
}

type OrderRepository interface {
	FindByID(ctx context.Context, orderID int64) (model.Order, error)
	Create(ctx context.Context, order model.Order) (model.Order, error)
	UpdateStatus(ctx context.Context, orderID int64, status model.OrderStatus) error

	//購入者の履歴（新しい順）
	ListByBuyer(ctx context.Context, userID int64) ([]OrderWithProduct, error)
	//管理者用の注文一覧
	ListAdmin(ctx context.Context, f AdminOrderListFilter) ([]AdminOrderRow, int64, error)

	CountByBuyer(ctx context.Context, userID int64) (int64, error)
	CountAll(ctx context.Context) (int64, error)
}
