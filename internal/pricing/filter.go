package pricing

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/angelmondragon/bulkmart-backend/pkg/enums"
)

// IsExpired reports whether the coupon expired before now. A coupon without an expiry
// never expires.
func (c Coupon) IsExpired(now time.Time) bool {
	return c.ExpiresAt != nil && c.ExpiresAt.Before(now)
}

// IsExhausted reports whether the usage limit has been reached. A nil limit is unlimited.
func (c Coupon) IsExhausted() bool {
	return c.UsageLimit != nil && c.UsedCount >= *c.UsageLimit
}

// Eligibility checks the coupon's own state at now, ignoring the cart.
func (c Coupon) Eligibility(now time.Time) (bool, enums.CouponRejectionReason) {
	switch {
	case !c.Active:
		return false, enums.CouponRejectionInactive
	case c.IsExpired(now):
		return false, enums.CouponRejectionExpired
	case c.IsExhausted():
		return false, enums.CouponRejectionUsageExhausted
	}
	return true, ""
}

// CanApply decides whether coupon may still be stacked on top of applied given the
// running total. Once the running total reaches zero nothing else applies, free-order
// coupons included.
func CanApply(coupon Coupon, applied []AppliedCoupon, runningTotal decimal.Decimal, now time.Time) (bool, enums.CouponRejectionReason) {
	for _, prior := range applied {
		if prior.Code == coupon.Code {
			return false, enums.CouponRejectionDuplicate
		}
	}
	if ok, reason := coupon.Eligibility(now); !ok {
		return false, reason
	}
	if !runningTotal.IsPositive() {
		return false, enums.CouponRejectionOrderTotalZero
	}
	return true, ""
}
