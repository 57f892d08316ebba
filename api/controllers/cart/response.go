package cart

import (
	cartdto "github.com/angelmondragon/bulkmart-backend/api/controllers/cart/dto"
	cartsvc "github.com/angelmondragon/bulkmart-backend/internal/cart"
	"github.com/angelmondragon/bulkmart-backend/internal/pricing"
)

func newCart(view *cartsvc.View) cartdto.Cart {
	session := view.Session
	lines := make([]cartdto.CartLine, 0, len(session.Lines))
	for _, line := range session.Lines {
		lines = append(lines, cartdto.CartLine{
			ProductID: line.ProductID,
			Name:      line.Name,
			Quantity:  line.Quantity,
			UnitPrice: line.UnitPrice,
			LineTotal: pricing.LineTotal(line.UnitPrice, line.Quantity),
		})
	}

	codes := session.CouponCodes
	if codes == nil {
		codes = []string{}
	}

	return cartdto.Cart{
		UserID:      session.UserID,
		Lines:       lines,
		CouponCodes: codes,
		Totals:      newTotals(view.Totals),
		CreatedAt:   session.CreatedAt,
		UpdatedAt:   session.UpdatedAt,
	}
}

func newTotals(calc pricing.CartCalculation) cartdto.Totals {
	applied := make([]cartdto.AppliedCoupon, 0, len(calc.AppliedCoupons))
	for _, c := range calc.AppliedCoupons {
		applied = append(applied, cartdto.AppliedCoupon{
			Code:           c.Code,
			DiscountType:   c.Kind,
			DiscountValue:  c.Value,
			MakesFree:      c.MakesFree,
			DiscountAmount: c.DiscountAmount,
		})
	}

	rejected := make([]cartdto.RejectedCode, 0, len(calc.RejectedCodes))
	for _, r := range calc.RejectedCodes {
		rejected = append(rejected, cartdto.RejectedCode{Code: r.Code, Reason: r.Reason})
	}

	return cartdto.Totals{
		Subtotal:          calc.Subtotal,
		AppliedCoupons:    applied,
		TotalDiscount:     calc.TotalDiscount,
		FinalTotal:        calc.FinalTotal,
		CanAddMoreCoupons: calc.CanAddMoreCoupons,
		RejectedCodes:     rejected,
	}
}
