package pricing

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/angelmondragon/bulkmart-backend/pkg/enums"
)

// Accumulation is the result of stacking coupons on a subtotal.
type Accumulation struct {
	AppliedCoupons []AppliedCoupon
	Rejected       []RejectedCode
	TotalDiscount  decimal.Decimal
	FinalTotal     decimal.Decimal
	FreeApplied    bool
}

// Accumulate applies coupons in selection order. Percentages compound against the
// running total left by earlier coupons, fixed amounts are capped at the running total,
// and a free-order coupon absorbs whatever remains.
func Accumulate(subtotal decimal.Decimal, coupons []Coupon, now time.Time) Accumulation {
	acc := newAccumulator(subtotal, now)
	for _, coupon := range coupons {
		acc.apply(coupon)
	}
	return acc.result()
}

type accumulator struct {
	now      time.Time
	subtotal decimal.Decimal
	running  decimal.Decimal
	out      Accumulation
}

func newAccumulator(subtotal decimal.Decimal, now time.Time) *accumulator {
	return &accumulator{
		now:      now,
		subtotal: subtotal,
		running:  floorZero(subtotal),
		out: Accumulation{
			AppliedCoupons: []AppliedCoupon{},
			Rejected:       []RejectedCode{},
			TotalDiscount:  decimal.Zero,
		},
	}
}

func (a *accumulator) reject(code string, reason enums.CouponRejectionReason) {
	a.out.Rejected = append(a.out.Rejected, RejectedCode{Code: code, Reason: reason})
}

func (a *accumulator) apply(coupon Coupon) {
	if err := coupon.Validate(); err != nil {
		a.reject(coupon.Code, enums.CouponRejectionMalformed)
		return
	}
	if ok, reason := CanApply(coupon, a.out.AppliedCoupons, a.running, a.now); !ok {
		a.reject(coupon.Code, reason)
		return
	}

	amount := discountFor(coupon, a.running)
	a.running = a.running.Sub(amount)
	a.out.TotalDiscount = a.out.TotalDiscount.Add(amount)
	if coupon.MakesFree {
		a.out.FreeApplied = true
	}

	a.out.AppliedCoupons = append(a.out.AppliedCoupons, AppliedCoupon{
		Code:           coupon.Code,
		Kind:           coupon.Kind,
		Value:          coupon.Value,
		MakesFree:      coupon.MakesFree,
		DiscountAmount: amount,
	})
}

func (a *accumulator) result() Accumulation {
	out := a.out
	out.FinalTotal = floorZero(a.subtotal.Sub(out.TotalDiscount))
	if out.FreeApplied {
		out.FinalTotal = decimal.Zero
	}
	return out
}

// discountFor returns a rounded amount in [0, running].
func discountFor(coupon Coupon, running decimal.Decimal) decimal.Decimal {
	if coupon.MakesFree {
		return running
	}

	var amount decimal.Decimal
	switch coupon.Kind {
	case enums.DiscountKindPercentage:
		amount = RoundMoney(running.Mul(coupon.Value).Div(hundred))
	case enums.DiscountKindFixed:
		amount = RoundMoney(coupon.Value)
	}

	if amount.GreaterThan(running) {
		amount = running
	}
	return floorZero(amount)
}
