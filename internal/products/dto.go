package product

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/angelmondragon/bulkmart-backend/internal/pricing"
	"github.com/angelmondragon/bulkmart-backend/pkg/db/models"
)

// ProductDTO is the storefront product payload.
type ProductDTO struct {
	ID          uuid.UUID       `json:"id"`
	SKU         string          `json:"sku"`
	Name        string          `json:"name"`
	Description *string         `json:"description,omitempty"`
	BasePrice   decimal.Decimal `json:"base_price"`
	StockQty    int             `json:"stock_qty"`
	PriceTiers  []PriceTierDTO  `json:"price_tiers"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// PriceTierDTO is a bulk price threshold.
type PriceTierDTO struct {
	MinQty    int             `json:"min_qty"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// PriceQuote answers "what does N of this cost".
type PriceQuote struct {
	ProductID   uuid.UUID       `json:"product_id"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	AppliedTier *PriceTierDTO   `json:"applied_tier,omitempty"`
	LineTotal   decimal.Decimal `json:"line_total"`
}

func newProductDTO(row *models.Product, tiers []pricing.PriceTier) *ProductDTO {
	dto := &ProductDTO{
		ID:          row.ID,
		SKU:         row.SKU,
		Name:        row.Name,
		Description: row.Description,
		BasePrice:   row.BasePrice,
		StockQty:    row.StockQty,
		PriceTiers:  make([]PriceTierDTO, 0, len(tiers)),
		CreatedAt:   row.CreatedAt,
		UpdatedAt:   row.UpdatedAt,
	}
	for _, tier := range tiers {
		dto.PriceTiers = append(dto.PriceTiers, PriceTierDTO{MinQty: tier.MinQty, UnitPrice: tier.UnitPrice})
	}
	return dto
}
