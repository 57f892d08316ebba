package pricing

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/angelmondragon/bulkmart-backend/pkg/enums"
)

// Subtotal sums the rounded line totals. Lines with a quantity below one count as removed.
func Subtotal(lines []CartLine) decimal.Decimal {
	total := decimal.Zero
	for _, line := range lines {
		if line.Quantity <= 0 {
			continue
		}
		total = total.Add(LineTotal(line.UnitPrice, line.Quantity))
	}
	return total
}

// Calculate prices the cart: subtotal from lines, then codes resolved against catalog
// and stacked in the order given. Unknown codes are reported, never fatal.
func Calculate(lines []CartLine, codes []string, catalog map[string]Coupon, now time.Time) CartCalculation {
	subtotal := Subtotal(lines)
	acc := newAccumulator(subtotal, now)

	for _, raw := range codes {
		code := NormalizeCode(raw)
		if code == "" {
			continue
		}
		coupon, ok := catalog[code]
		if !ok {
			acc.reject(code, enums.CouponRejectionUnknown)
			continue
		}
		coupon.Code = code
		acc.apply(coupon)
	}

	res := acc.result()
	return CartCalculation{
		Subtotal:          subtotal,
		AppliedCoupons:    res.AppliedCoupons,
		TotalDiscount:     res.TotalDiscount,
		FinalTotal:        res.FinalTotal,
		CanAddMoreCoupons: res.FinalTotal.IsPositive(),
		RejectedCodes:     res.Rejected,
	}
}

// NormalizeCode trims surrounding whitespace. Codes stay case sensitive.
func NormalizeCode(code string) string {
	return strings.TrimSpace(code)
}
