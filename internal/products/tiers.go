package product

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/angelmondragon/bulkmart-backend/internal/pricing"
	"github.com/angelmondragon/bulkmart-backend/pkg/db/models"
)

// droppedTier is a stored tier that would break the pricing rules.
type droppedTier struct {
	MinQty int
	Reason string
}

// sanitizeTiers keeps the tiers the resolver can trust: thresholds of at least one,
// distinct thresholds, positive prices no higher than base, and prices that never rise
// as the threshold grows. Anything else is returned as dropped.
func sanitizeTiers(base decimal.Decimal, rows []models.ProductPriceTier) ([]pricing.PriceTier, []droppedTier) {
	sorted := append([]models.ProductPriceTier(nil), rows...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].MinQty < sorted[j].MinQty })

	kept := make([]pricing.PriceTier, 0, len(sorted))
	var dropped []droppedTier
	ceiling := base
	seen := map[int]bool{}

	for _, row := range sorted {
		reason := ""
		switch {
		case row.MinQty < 1:
			reason = "min_qty below 1"
		case seen[row.MinQty]:
			reason = "duplicate min_qty"
		case !row.UnitPrice.IsPositive():
			reason = "unit_price not positive"
		case row.UnitPrice.GreaterThan(base):
			reason = "unit_price above base price"
		case row.UnitPrice.GreaterThan(ceiling):
			reason = "unit_price above lower tier"
		}
		if reason != "" {
			dropped = append(dropped, droppedTier{MinQty: row.MinQty, Reason: reason})
			continue
		}
		seen[row.MinQty] = true
		ceiling = row.UnitPrice
		kept = append(kept, pricing.PriceTier{MinQty: row.MinQty, UnitPrice: row.UnitPrice})
	}
	return kept, dropped
}
