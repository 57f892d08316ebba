package cartdto

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AddItemRequest adds quantity of a product to the session cart.
type AddItemRequest struct {
	ProductID uuid.UUID `json:"product_id" validate:"required"`
	Quantity  int       `json:"quantity" validate:"required,min=1,quantity"`
}

// UpdateQuantityRequest sets a line's quantity; zero or less removes it.
type UpdateQuantityRequest struct {
	Quantity int `json:"quantity" validate:"quantity"`
}

// SetCouponsRequest replaces the selected coupon codes, in selection order.
type SetCouponsRequest struct {
	Codes []string `json:"codes" validate:"max=20,dive,max=64"`
}

// CalculateLine is a client-held cart line.
type CalculateLine struct {
	ProductID uuid.UUID       `json:"product_id"`
	Name      string          `json:"name" validate:"max=255"`
	Quantity  int             `json:"quantity" validate:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price" validate:"money"`
}

// CalculateRequest is the stateless totals payload.
type CalculateRequest struct {
	Items       []CalculateLine `json:"items" validate:"max=200,dive"`
	CouponCodes []string        `json:"coupon_codes" validate:"max=20,dive,max=64"`
}
