package enums

// CouponRejectionReason explains why a submitted coupon code contributed no discount.
type CouponRejectionReason string

const (
	CouponRejectionUnknown        CouponRejectionReason = "unknown"
	CouponRejectionMalformed      CouponRejectionReason = "malformed"
	CouponRejectionInactive       CouponRejectionReason = "inactive"
	CouponRejectionExpired        CouponRejectionReason = "expired"
	CouponRejectionUsageExhausted CouponRejectionReason = "usage_exhausted"
	CouponRejectionDuplicate      CouponRejectionReason = "duplicate"
	CouponRejectionOrderTotalZero CouponRejectionReason = "order_total_zero"
)

// String implements fmt.Stringer.
func (r CouponRejectionReason) String() string {
	return string(r)
}
