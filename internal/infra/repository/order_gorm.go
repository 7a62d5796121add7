package repository

import (
	"context"
	"errors"
	"strings"
	"time"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"gorm.io/gorm"
)

type OrderGormRepository struct {
	db *gorm.DB
}

func NewOrderGormRepository(db *gorm.DB) *OrderGormRepository {
	return &OrderGormRepository{db: db}
}

func (r *OrderGormRepository) FindByID(ctx context.Context, orderID int64) (model.Order, error) {
	var o model.Order
	err := r.db.WithContext(ctx).Where("id = ?", orderID).First(&o).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Order{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Order{}, err
	}
	return o, nil
}

func (r *OrderGormRepository) Create(ctx context.Context, order model.Order) (model.Order, error) {
	if err := r.db.WithContext(ctx).Create(&order).Error; err != nil {
		return model.Order{}, err
	}
	return order, nil
}

func (r *OrderGormRepository) UpdateStatus(ctx context.Context, orderID int64, status model.OrderStatus) error {
	res := r.db.WithContext(ctx).Model(&model.Order{}).
		Where("id = ?", orderID).
		Update("status", status)

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

// JOIN結果の受け皿（orders + 現在の商品表示情報）
type buyerOrderRow struct {
	ID                  int64
	UserID              int64
	ProductID           int64
	Status              string
	ProductNameSnapshot string
	PriceSnapshot       int64
	CreatedAt           time.Time
	UpdatedAt           time.Time
	ProductImageURL     string
	ProductStatus       string
}

// 購入者の履歴（新しい順）。商品が削除済みでも注文は残るのでLEFT JOIN。
func (r *OrderGormRepository) ListByBuyer(ctx context.Context, userID int64) ([]repo.OrderWithProduct, error) {
	var rows []buyerOrderRow

	err := r.db.WithContext(ctx).
		Table("orders").
		Select(`orders.id, orders.user_id, orders.product_id, orders.status,
			orders.product_name_snapshot, orders.price_snapshot,
			orders.created_at, orders.updated_at,
			COALESCE(p.image_url, '') AS product_image_url,
			COALESCE(p.status, '') AS product_status`).
		Joins("LEFT JOIN products p ON p.id = orders.product_id").
		Where("orders.user_id = ?", userID).
		Order("orders.id desc").
		Scan(&rows).Error
	if err != nil {
		return []repo.OrderWithProduct{}, err
	}

	outs := make([]repo.OrderWithProduct, 0, len(rows))
	for _, row := range rows {
		outs = append(outs, repo.OrderWithProduct{
			Order:           toOrder(row),
			ProductImageURL: row.ProductImageURL,
			ProductStatus:   row.ProductStatus,
		})
	}
	return outs, nil
}

type adminOrderRow struct {
	buyerOrderRow
	ProductName string
	BuyerName   string
	BuyerEmail  string
	SellerName  string
	SellerEmail string
}

// 管理者用の注文一覧。
// 検索は商品名・購入者名/メール・出品者名/メールを横断する。
func (r *OrderGormRepository) ListAdmin(ctx context.Context, f repo.AdminOrderListFilter) ([]repo.AdminOrderRow, int64, error) {
	if f.Page <= 0 {
		f.Page = 1
	}
	if f.Limit <= 0 || f.Limit > 100 {
		f.Limit = 20
	}

	base := r.db.WithContext(ctx).
		Table("orders").
		Joins("LEFT JOIN products p ON p.id = orders.product_id").
		Joins("LEFT JOIN users buyer ON buyer.id = orders.user_id").
		Joins("LEFT JOIN users seller ON seller.id = p.seller_id")

	if f.Status != "" {
		base = base.Where("orders.status = ?", f.Status)
	}
	if strings.TrimSpace(f.Search) != "" {
		like := "%" + strings.TrimSpace(f.Search) + "%"
		base = base.Where(
			`p.name ILIKE ? OR buyer.name ILIKE ? OR buyer.email ILIKE ?
				OR seller.name ILIKE ? OR seller.email ILIKE ?`,
			like, like, like, like, like,
		)
	}

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return []repo.AdminOrderRow{}, 0, err
	}

	var rows []adminOrderRow
	offset := (f.Page - 1) * f.Limit
	err := base.
		Select(`orders.id, orders.user_id, orders.product_id, orders.status,
			orders.product_name_snapshot, orders.price_snapshot,
			orders.created_at, orders.updated_at,
			COALESCE(p.image_url, '') AS product_image_url,
			COALESCE(p.status, '') AS product_status,
			COALESCE(p.name, '') AS product_name,
			COALESCE(buyer.name, '') AS buyer_name,
			COALESCE(buyer.email, '') AS buyer_email,
			COALESCE(seller.name, '') AS seller_name,
			COALESCE(seller.email, '') AS seller_email`).
		Order("orders.id desc").
		Limit(f.Limit).Offset(offset).
		Scan(&rows).Error
	if err != nil {
		return []repo.AdminOrderRow{}, 0, err
	}

	outs := make([]repo.AdminOrderRow, 0, len(rows))
	for _, row := range rows {
		outs = append(outs, repo.AdminOrderRow{
			Order:       toOrder(row.buyerOrderRow),
			ProductName: row.ProductName,
			BuyerName:   row.BuyerName,
			BuyerEmail:  row.BuyerEmail,
			SellerName:  row.SellerName,
			SellerEmail: row.SellerEmail,
		})
	}
	return outs, total, nil
}

func (r *OrderGormRepository) CountByBuyer(ctx context.Context, userID int64) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&model.Order{}).
		Where("user_id = ?", userID).
		Count(&total).Error
	if err != nil {
		return 0, err
	}
	return total, nil
}

func (r *OrderGormRepository) CountAll(ctx context.Context) (int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&model.Order{}).Count(&total).Error; err != nil {
		return 0, err
	}
	return total, nil
}

func toOrder(row buyerOrderRow) model.Order {
	return model.Order{
		ID:          row.ID,
		UserID:      row.UserID,
		ProductID:   row.ProductID,
		Status:      model.OrderStatus(row.Status),
		ProductName: row.ProductNameSnapshot,
		Price:       row.PriceSnapshot,
		CreatedAt:   row.CreatedAt,
		UpdatedAt:   row.UpdatedAt,
	}
}
