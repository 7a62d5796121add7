package model

import (
	"time"

	"gorm.io/gorm"
)

type ProductStatus string

const (
	ProductStatusUnderReview ProductStatus = "UNDER_REVIEW"
	ProductStatusActive      ProductStatus = "ACTIVE"
	ProductStatusInactive    ProductStatus = "INACTIVE"
	ProductStatusSold        ProductStatus = "SOLD"
)

// ステータスが有効な値かどうか。
func (s ProductStatus) Valid() bool {
	switch s {
	case ProductStatusUnderReview, ProductStatusActive, ProductStatusInactive, ProductStatusSold:
		return true
	default:
		return false
	}
}

// 中古品は1点物なので在庫数は持たない。
// SOLDへの遷移はcheckoutの条件付きUPDATEだけが行う。
type Product struct {
	ID          int64          `gorm:"primaryKey;autoIncrement" json:"id"`
	SellerID    int64          `gorm:"not null;index" json:"seller_id"`
	Name        string         `gorm:"type:varchar(255);not null" json:"name"`
	Description string         `gorm:"type:text" json:"description"`
	Category    string         `gorm:"type:varchar(100);not null;index" json:"category"`
	Price       int64          `gorm:"not null" json:"price"`
	Status      ProductStatus  `gorm:"type:varchar(20);not null;index" json:"status"`
	ImageURL    string         `gorm:"type:text" json:"image_url"`
	CreatedAt   time.Time      `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time      `gorm:"not null;autoUpdateTime" json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}
