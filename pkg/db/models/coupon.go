package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Coupon is the stored promotion row. DiscountType and DiscountValue are empty for
// free-order coupons.
type Coupon struct {
	ID            uuid.UUID           `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Code          string              `gorm:"column:code;not null;uniqueIndex"`
	Description   *string             `gorm:"column:description"`
	DiscountType  *string             `gorm:"column:discount_type"`
	DiscountValue decimal.NullDecimal `gorm:"column:discount_value;type:numeric(12,2)"`
	MakesFree     bool                `gorm:"column:makes_free;not null;default:false"`
	ExpiresAt     *time.Time          `gorm:"column:expires_at"`
	UsageLimit    *int                `gorm:"column:usage_limit"`
	UsedCount     int                 `gorm:"column:used_count;not null;default:0"`
	IsActive      bool                `gorm:"column:is_active;not null;default:true"`
	CreatedAt     time.Time           `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time           `gorm:"column:updated_at;autoUpdateTime"`
}
