package pricing

import "github.com/shopspring/decimal"

// ResolveUnitPrice returns the unit price for quantity: the tier with the highest
// threshold not exceeding quantity, or the base price when no tier qualifies.
func ResolveUnitPrice(product Product, quantity int) decimal.Decimal {
	if tier := SelectTier(product.Tiers, quantity); tier != nil {
		return tier.UnitPrice
	}
	return product.BasePrice
}

// SelectTier picks the qualifying tier with the highest MinQty. Tier order does not matter.
func SelectTier(tiers []PriceTier, quantity int) *PriceTier {
	var selected *PriceTier
	for i := range tiers {
		tier := tiers[i]
		if tier.MinQty > quantity {
			continue
		}
		if selected == nil || tier.MinQty > selected.MinQty {
			selected = &tier
		}
	}
	return selected
}

// LineTotal is the rounded extended price of a line.
func LineTotal(unitPrice decimal.Decimal, quantity int) decimal.Decimal {
	return RoundMoney(unitPrice.Mul(decimal.NewFromInt(int64(quantity))))
}
