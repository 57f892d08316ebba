// Package pricing computes cart totals under tiered bulk pricing and stacked coupons.
// Every function here is pure: callers pass in the catalog snapshot and the evaluation
// time, so identical inputs always produce identical results.
package pricing

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/angelmondragon/bulkmart-backend/pkg/enums"
)

// PriceTier is a bulk price that applies once the quantity reaches MinQty.
type PriceTier struct {
	MinQty    int
	UnitPrice decimal.Decimal
}

// Product is the pricing view of a catalog product.
type Product struct {
	ID        uuid.UUID
	Name      string
	BasePrice decimal.Decimal
	Tiers     []PriceTier
	StockQty  int
}

// MaxLineQuantity bounds the quantity of a single cart line.
const MaxLineQuantity = 1_000_000

// CartLine is a product/quantity pair with the unit price captured when the line was
// added or its quantity last changed.
type CartLine struct {
	ProductID uuid.UUID
	Name      string
	Quantity  int
	UnitPrice decimal.Decimal
}

// Coupon is a read-only catalog coupon.
type Coupon struct {
	Code       string
	Kind       enums.DiscountKind
	Value      decimal.Decimal
	MakesFree  bool
	ExpiresAt  *time.Time
	UsageLimit *int
	UsedCount  int
	Active     bool
}

// AppliedCoupon records the discount one coupon contributed.
type AppliedCoupon struct {
	Code           string
	Kind           enums.DiscountKind
	Value          decimal.Decimal
	MakesFree      bool
	DiscountAmount decimal.Decimal
}

// RejectedCode reports a submitted code that contributed nothing, and why.
type RejectedCode struct {
	Code   string
	Reason enums.CouponRejectionReason
}

// CartCalculation is the derived totals record returned to the storefront.
type CartCalculation struct {
	Subtotal          decimal.Decimal
	AppliedCoupons    []AppliedCoupon
	TotalDiscount     decimal.Decimal
	FinalTotal        decimal.Decimal
	CanAddMoreCoupons bool
	RejectedCodes     []RejectedCode
}
