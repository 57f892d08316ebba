package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Product is a sellable catalog item with its base unit price.
type Product struct {
	ID          uuid.UUID          `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	SKU         string             `gorm:"column:sku;not null;uniqueIndex"`
	Name        string             `gorm:"column:name;not null"`
	Description *string            `gorm:"column:description"`
	BasePrice   decimal.Decimal    `gorm:"column:base_price;type:numeric(12,2);not null"`
	StockQty    int                `gorm:"column:stock_qty;not null;default:0"`
	IsActive    bool               `gorm:"column:is_active;not null;default:true"`
	PriceTiers  []ProductPriceTier `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
	CreatedAt   time.Time          `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time          `gorm:"column:updated_at;autoUpdateTime"`
}
