package coupons

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/angelmondragon/bulkmart-backend/pkg/db/models"
	"github.com/angelmondragon/bulkmart-backend/pkg/enums"
)

// CouponDTO is the public view of a coupon.
type CouponDTO struct {
	Code          string              `json:"code"`
	Description   *string             `json:"description,omitempty"`
	DiscountType  *enums.DiscountKind `json:"discount_type,omitempty"`
	DiscountValue *decimal.Decimal    `json:"discount_value,omitempty"`
	MakesFree     bool                `json:"makes_free"`
	ExpiresAt     *time.Time          `json:"expires_at,omitempty"`
	UsageLimit    *int                `json:"usage_limit,omitempty"`
	RemainingUses *int                `json:"remaining_uses,omitempty"`
	IsActive      bool                `json:"is_active"`
}

// ValidationResult answers whether a single code could be applied right now.
type ValidationResult struct {
	Code      string                       `json:"code"`
	Valid     bool                         `json:"valid"`
	Reason    *enums.CouponRejectionReason `json:"reason,omitempty"`
	Kind      *enums.DiscountKind          `json:"discount_type,omitempty"`
	Value     *decimal.Decimal             `json:"discount_value,omitempty"`
	MakesFree bool                         `json:"makes_free"`
}

func newCouponDTO(record models.Coupon) CouponDTO {
	dto := CouponDTO{
		Code:        record.Code,
		Description: record.Description,
		MakesFree:   record.MakesFree,
		ExpiresAt:   record.ExpiresAt,
		UsageLimit:  record.UsageLimit,
		IsActive:    record.IsActive,
	}
	if record.DiscountType != nil {
		kind := enums.DiscountKind(*record.DiscountType)
		dto.DiscountType = &kind
	}
	if record.DiscountValue.Valid {
		value := record.DiscountValue.Decimal
		dto.DiscountValue = &value
	}
	if record.UsageLimit != nil {
		remaining := *record.UsageLimit - record.UsedCount
		if remaining < 0 {
			remaining = 0
		}
		dto.RemainingUses = &remaining
	}
	return dto
}
