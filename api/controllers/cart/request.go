package cart

import (
	cartdto "github.com/angelmondragon/bulkmart-backend/api/controllers/cart/dto"
	"github.com/angelmondragon/bulkmart-backend/api/validators"
	cartsvc "github.com/angelmondragon/bulkmart-backend/internal/cart"
)

func toCalculateInput(payload cartdto.CalculateRequest) cartsvc.CalculateInput {
	lines := make([]cartsvc.InputLine, 0, len(payload.Items))
	for _, item := range payload.Items {
		lines = append(lines, cartsvc.InputLine{
			ProductID: item.ProductID,
			Name:      validators.SanitizeString(item.Name, 255),
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
		})
	}
	return cartsvc.CalculateInput{
		Lines:       lines,
		CouponCodes: payload.CouponCodes,
	}
}
