package usecase

import (
	"context"
	"net/http"
	"time"

	"app/internal/domain/model"
	repo "app/internal/repository"
)

type OrderUsecase struct {
	tx        repo.TransactionManager
	orderRepo repo.OrderRepository
}

func NewOrderUsecase(tx repo.TransactionManager, orderRepo repo.OrderRepository) *OrderUsecase {
	return &OrderUsecase{tx: tx, orderRepo: orderRepo}
}

type PurchaseInput struct {
	ProductIDs []int64
}

type OrderOutput struct {
	ID          int64     `json:"id"`
	ProductID   int64     `json:"product_id"`
	Status      string    `json:"status"`
	ProductName string    `json:"product_name"`
	Price       int64     `json:"price"`
	CreatedAt   time.Time `json:"created_at"`
}

// Purchase はチェックアウト本体。
// 検証〜注文作成〜SOLD化〜カート掃除を1トランザクションで行う。
// どこかで失敗したら全部巻き戻る（部分コミットは外から見えない）。
func (u *OrderUsecase) Purchase(ctx context.Context, userID int64, in PurchaseInput) ([]OrderOutput, error) {
	if userID <= 0 {
		return nil, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if len(in.ProductIDs) == 0 {
		return nil, NewHTTPError(http.StatusBadRequest, "product_ids required")
	}

	seen := make(map[int64]struct{}, len(in.ProductIDs))
	for _, id := range in.ProductIDs {
		if id <= 0 {
			return nil, NewHTTPError(http.StatusBadRequest, "invalid product id")
		}
		if _, dup := seen[id]; dup {
			return nil, NewHTTPError(http.StatusBadRequest, "duplicate product ids")
		}
		seen[id] = struct{}{}
	}

	var outs []OrderOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		//検証：要求したIDの行を取り、件数と全行ACTIVEを確認
		products, err := r.Products().FindByIDs(ctx, in.ProductIDs)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		if len(products) != len(in.ProductIDs) {
			return NewHTTPError(http.StatusConflict, "some products are not available")
		}
		byID := make(map[int64]model.Product, len(products))
		for _, p := range products {
			if p.Status != model.ProductStatusActive {
				return NewHTTPError(http.StatusConflict, "some products are not available")
			}
			byID[p.ID] = p
		}

		//条件付きUPDATE。ここが二重販売ガードの本体で、
		//検証後に他のcheckoutへ負けた行があれば更新行数が足りなくなる。
		affected, err := r.Products().MarkSoldIfActive(ctx, in.ProductIDs)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		if affected != int64(len(in.ProductIDs)) {
			return NewHTTPError(http.StatusConflict, "some products are not available")
		}

		//商品ごとに注文を1件作成（名前・価格は確定時点のスナップショット）
		now := time.Now()
		outs = make([]OrderOutput, 0, len(in.ProductIDs))
		for _, id := range in.ProductIDs {
			p := byID[id]
			created, err := r.Orders().Create(ctx, model.Order{
				UserID:      userID,
				ProductID:   p.ID,
				Status:      model.OrderStatusPending,
				ProductName: p.Name,
				Price:       p.Price,
				CreatedAt:   now,
				UpdatedAt:   now,
			})
			if err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}
			outs = append(outs, toOrderOutput(created))
		}

		//購入した分だけカートから外す（それ以外の項目は触らない）
		buyer, err := r.Users().FindByID(ctx, userID)
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusUnauthorized, "unauthorized")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		cart := make([]int64, 0, len(buyer.Cart))
		for _, id := range buyer.Cart {
			if _, purchased := seen[id]; purchased {
				continue
			}
			cart = append(cart, id)
		}
		if len(cart) != len(buyer.Cart) {
			if err := r.Users().UpdateCart(ctx, userID, cart); err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}
		}

		return nil
	})

	if err != nil {
		return nil, err
	}
	return outs, nil
}

type OrderHistoryItem struct {
	OrderOutput
	//表示用に現在の商品情報もJOINで添える
	ProductImageURL string `json:"product_image_url"`
	ProductStatus   string `json:"product_status"`
}

// ListMyOrders は購入履歴（新しい順）。
func (u *OrderUsecase) ListMyOrders(ctx context.Context, userID int64) ([]OrderHistoryItem, error) {
	if userID <= 0 {
		return []OrderHistoryItem{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	rows, err := u.orderRepo.ListByBuyer(ctx, userID)
	if err != nil {
		return []OrderHistoryItem{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	outs := make([]OrderHistoryItem, 0, len(rows))
	for _, row := range rows {
		outs = append(outs, OrderHistoryItem{
			OrderOutput:     toOrderOutput(row.Order),
			ProductImageURL: row.ProductImageURL,
			ProductStatus:   row.ProductStatus,
		})
	}
	return outs, nil
}

func toOrderOutput(o model.Order) OrderOutput {
	return OrderOutput{
		ID:          o.ID,
		ProductID:   o.ProductID,
		Status:      string(o.Status),
		ProductName: o.ProductName,
		Price:       o.Price,
		CreatedAt:   o.CreatedAt,
	}
}
