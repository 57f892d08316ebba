package pricing

import (
	"fmt"
	"math/rand"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/angelmondragon/bulkmart-backend/pkg/enums"
)

func line(price string, qty int) CartLine {
	return CartLine{ProductID: uuid.New(), Quantity: qty, UnitPrice: money(price)}
}

func testCatalog() map[string]Coupon {
	expired := percentCoupon("SUMMER50", 50)
	expired.ExpiresAt = timePtr(evalTime.Add(-24 * time.Hour))

	return map[string]Coupon{
		"SAVE10":   fixedCoupon("SAVE10", 10),
		"HALF":     percentCoupon("HALF", 50),
		"FREESHIP": freeCoupon("FREESHIP"),
		"SUMMER50": expired,
	}
}

func TestCalculateScenarios(t *testing.T) {
	t.Parallel()

	catalog := testCatalog()

	t.Run("tiered line and fixed coupon", func(t *testing.T) {
		product := bulkProduct()
		lines := []CartLine{{ProductID: uuid.New(), Quantity: 60, UnitPrice: ResolveUnitPrice(product, 60)}}
		calc := Calculate(lines, nil, catalog, evalTime)
		assert.Equal(t, "1320.00", calc.Subtotal.StringFixed(2))
		assert.True(t, calc.CanAddMoreCoupons)
	})

	t.Run("fixed", func(t *testing.T) {
		calc := Calculate([]CartLine{line("100", 1)}, []string{"SAVE10"}, catalog, evalTime)
		assert.Equal(t, "10.00", calc.TotalDiscount.StringFixed(2))
		assert.Equal(t, "90.00", calc.FinalTotal.StringFixed(2))
		assert.Empty(t, calc.RejectedCodes)
	})

	t.Run("fixed then percentage", func(t *testing.T) {
		calc := Calculate([]CartLine{line("25", 4)}, []string{"SAVE10", "HALF"}, catalog, evalTime)
		require.Len(t, calc.AppliedCoupons, 2)
		assert.Equal(t, "45.00", calc.FinalTotal.StringFixed(2))
		assert.Equal(t, "55.00", calc.TotalDiscount.StringFixed(2))
	})

	t.Run("free order", func(t *testing.T) {
		calc := Calculate([]CartLine{line("50", 1)}, []string{"FREESHIP"}, catalog, evalTime)
		assert.True(t, calc.FinalTotal.IsZero())
		assert.Equal(t, "50.00", calc.TotalDiscount.StringFixed(2))
		assert.False(t, calc.CanAddMoreCoupons)
	})

	t.Run("expired", func(t *testing.T) {
		calc := Calculate([]CartLine{line("80", 1)}, []string{"SUMMER50"}, catalog, evalTime)
		assert.Empty(t, calc.AppliedCoupons)
		assert.True(t, calc.TotalDiscount.IsZero())
		assert.Equal(t, "80.00", calc.FinalTotal.StringFixed(2))
		assert.Equal(t, []RejectedCode{{Code: "SUMMER50", Reason: enums.CouponRejectionExpired}}, calc.RejectedCodes)
	})
}

func TestCalculateUnknownCodesAreReportedInSubmissionOrder(t *testing.T) {
	t.Parallel()

	calc := Calculate(
		[]CartLine{line("100", 1)},
		[]string{"NOPE", " SAVE10 ", "SUMMER50", "SAVE10", "save10", ""},
		testCatalog(),
		evalTime,
	)

	require.Len(t, calc.AppliedCoupons, 1)
	assert.Equal(t, "SAVE10", calc.AppliedCoupons[0].Code)
	assert.Equal(t, []RejectedCode{
		{Code: "NOPE", Reason: enums.CouponRejectionUnknown},
		{Code: "SUMMER50", Reason: enums.CouponRejectionExpired},
		{Code: "SAVE10", Reason: enums.CouponRejectionDuplicate},
		{Code: "save10", Reason: enums.CouponRejectionUnknown},
	}, calc.RejectedCodes)
}

func TestCalculateSkipsNonPositiveQuantities(t *testing.T) {
	t.Parallel()

	calc := Calculate([]CartLine{line("10", 2), line("99", 0), line("99", -3)}, nil, nil, evalTime)
	assert.Equal(t, "20.00", calc.Subtotal.StringFixed(2))
}

func TestCalculateEmptyCart(t *testing.T) {
	t.Parallel()

	calc := Calculate(nil, []string{"SAVE10"}, testCatalog(), evalTime)
	assert.True(t, calc.Subtotal.IsZero())
	assert.True(t, calc.FinalTotal.IsZero())
	assert.Empty(t, calc.AppliedCoupons)
	assert.False(t, calc.CanAddMoreCoupons)
	assert.Equal(t, []RejectedCode{{Code: "SAVE10", Reason: enums.CouponRejectionOrderTotalZero}}, calc.RejectedCodes)
}

func TestCalculateIsIdempotent(t *testing.T) {
	t.Parallel()

	lines := []CartLine{line("19.99", 7), line("3.35", 41)}
	codes := []string{"HALF", "SAVE10", "NOPE"}
	catalog := testCatalog()

	first := Calculate(lines, codes, catalog, evalTime)
	second := Calculate(lines, codes, catalog, evalTime)
	assert.Equal(t, first, second)
}

func TestCalculateProperties(t *testing.T) {
	t.Parallel()

	rng := rand.New(rand.NewSource(42))
	catalog := map[string]Coupon{}
	codes := []string{}
	for i := 0; i < 12; i++ {
		code := fmt.Sprintf("C%d", i)
		var c Coupon
		switch rng.Intn(4) {
		case 0:
			c = percentCoupon(code, int64(rng.Intn(100)+1))
		case 1:
			c = fixedCoupon(code, int64(rng.Intn(500)+1))
		case 2:
			c = freeCoupon(code)
		default:
			c = fixedCoupon(code, 5)
			c.ExpiresAt = timePtr(evalTime.Add(-time.Minute))
		}
		catalog[code] = c
		codes = append(codes, code)
	}

	for run := 0; run < 500; run++ {
		lines := []CartLine{}
		for i := 0; i < rng.Intn(5); i++ {
			lines = append(lines, CartLine{Quantity: rng.Intn(120) - 5, UnitPrice: decimal.New(int64(rng.Intn(10000)), -2)})
		}
		rng.Shuffle(len(codes), func(i, j int) { codes[i], codes[j] = codes[j], codes[i] })
		picked := append([]string(nil), codes[:rng.Intn(len(codes))]...)

		calc := Calculate(lines, picked, catalog, evalTime)

		require.False(t, calc.FinalTotal.IsNegative(), "final total must never be negative")
		require.True(t, calc.FinalTotal.LessThanOrEqual(calc.Subtotal))
		for _, applied := range calc.AppliedCoupons {
			require.False(t, applied.DiscountAmount.IsNegative())
			require.False(t, catalog[applied.Code].IsExpired(evalTime), "expired coupon %s applied", applied.Code)
			if applied.MakesFree {
				require.True(t, calc.FinalTotal.IsZero())
				require.False(t, calc.CanAddMoreCoupons)
			}
		}
		require.Equal(t, calc.FinalTotal.IsPositive(), calc.CanAddMoreCoupons)
	}
}
