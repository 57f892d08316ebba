package cart

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/angelmondragon/bulkmart-backend/internal/pricing"
)

// Line is a cart entry with the unit price captured when its quantity last changed.
type Line struct {
	ProductID uuid.UUID       `json:"product_id"`
	Name      string          `json:"name"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// Session is a shopper's cart state: lines plus coupon codes in selection order.
type Session struct {
	UserID      uuid.UUID `json:"user_id"`
	Lines       []Line    `json:"lines"`
	CouponCodes []string  `json:"coupon_codes"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func newSession(userID uuid.UUID, now time.Time) *Session {
	return &Session{
		UserID:      userID,
		Lines:       []Line{},
		CouponCodes: []string{},
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

func (s *Session) lineIndex(productID uuid.UUID) int {
	for i, line := range s.Lines {
		if line.ProductID == productID {
			return i
		}
	}
	return -1
}

func (s *Session) removeLine(i int) {
	s.Lines = append(s.Lines[:i], s.Lines[i+1:]...)
}

func (s *Session) pricingLines() []pricing.CartLine {
	out := make([]pricing.CartLine, 0, len(s.Lines))
	for _, line := range s.Lines {
		out = append(out, pricing.CartLine{
			ProductID: line.ProductID,
			Name:      line.Name,
			Quantity:  line.Quantity,
			UnitPrice: line.UnitPrice,
		})
	}
	return out
}

// normalizeCodes trims codes and drops blanks and repeats, keeping first-seen order.
func normalizeCodes(codes []string) []string {
	out := make([]string, 0, len(codes))
	seen := map[string]bool{}
	for _, raw := range codes {
		code := pricing.NormalizeCode(raw)
		if code == "" || seen[code] {
			continue
		}
		seen[code] = true
		out = append(out, code)
	}
	return out
}
