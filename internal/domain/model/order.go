package model

import "time"

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "PENDING"
	OrderStatusCompleted OrderStatus = "COMPLETED"
	OrderStatusCancelled OrderStatus = "CANCELLED"
)

// 注文は商品1点につき1件（まとめ買いはN件のOrderになる）。
// 商品名と価格は確定時点のスナップショットを保存する。
type Order struct {
	ID          int64       `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID      int64       `gorm:"not null;index" json:"user_id"`
	ProductID   int64       `gorm:"not null;index" json:"product_id"`
	Status      OrderStatus `gorm:"type:varchar(20);not null;index" json:"status"`
	ProductName string      `gorm:"type:varchar(255);not null;column:product_name_snapshot" json:"product_name"`
	Price       int64       `gorm:"not null;column:price_snapshot" json:"price"`
	CreatedAt   time.Time   `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time   `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
