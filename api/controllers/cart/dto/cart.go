package cartdto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/angelmondragon/bulkmart-backend/pkg/enums"
)

// CartLine is a session line with its extended price.
type CartLine struct {
	ProductID uuid.UUID       `json:"product_id"`
	Name      string          `json:"name"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	LineTotal decimal.Decimal `json:"line_total"`
}

// AppliedCoupon is one coupon's contribution to the discount.
type AppliedCoupon struct {
	Code           string             `json:"code"`
	DiscountType   enums.DiscountKind `json:"discount_type"`
	DiscountValue  decimal.Decimal    `json:"discount_value"`
	MakesFree      bool               `json:"makes_free"`
	DiscountAmount decimal.Decimal    `json:"discount_amount"`
}

// RejectedCode explains why a submitted code did nothing.
type RejectedCode struct {
	Code   string                      `json:"code"`
	Reason enums.CouponRejectionReason `json:"reason"`
}

// Totals is the JSON form of a cart calculation.
type Totals struct {
	Subtotal          decimal.Decimal `json:"subtotal"`
	AppliedCoupons    []AppliedCoupon `json:"applied_coupons"`
	TotalDiscount     decimal.Decimal `json:"total_discount"`
	FinalTotal        decimal.Decimal `json:"final_total"`
	CanAddMoreCoupons bool            `json:"can_add_more_coupons"`
	RejectedCodes     []RejectedCode  `json:"rejected_codes"`
}

// Cart is the session cart returned to the shopper.
type Cart struct {
	UserID      uuid.UUID  `json:"user_id"`
	Lines       []CartLine `json:"lines"`
	CouponCodes []string   `json:"coupon_codes"`
	Totals      Totals     `json:"totals"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}
