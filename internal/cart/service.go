package cart

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/angelmondragon/bulkmart-backend/internal/pricing"
	"github.com/angelmondragon/bulkmart-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/bulkmart-backend/pkg/errors"
	"github.com/angelmondragon/bulkmart-backend/pkg/logger"
	"github.com/angelmondragon/bulkmart-backend/pkg/metrics"
)

type productLoader interface {
	PricingProduct(ctx context.Context, id uuid.UUID) (*pricing.Product, error)
}

type couponCatalog interface {
	Catalog(ctx context.Context, codes []string) (map[string]pricing.Coupon, error)
}

// Service manages cart sessions and computes their totals.
type Service interface {
	GetCart(ctx context.Context, userID uuid.UUID) (*View, error)
	AddItem(ctx context.Context, userID, productID uuid.UUID, quantity int) (*View, error)
	UpdateQuantity(ctx context.Context, userID, productID uuid.UUID, quantity int) (*View, error)
	RemoveItem(ctx context.Context, userID, productID uuid.UUID) (*View, error)
	SetCoupons(ctx context.Context, userID uuid.UUID, codes []string) (*View, error)
	Clear(ctx context.Context, userID uuid.UUID) error
	Calculate(ctx context.Context, input CalculateInput) (*pricing.CartCalculation, error)
}

// View pairs a session with its freshly computed totals.
type View struct {
	Session *Session
	Totals  pricing.CartCalculation
}

// CalculateInput is a client-held cart priced without a session.
type CalculateInput struct {
	Lines       []InputLine
	CouponCodes []string
}

// InputLine is one client-side cart line.
type InputLine struct {
	ProductID uuid.UUID
	Name      string
	Quantity  int
	UnitPrice decimal.Decimal
}

type service struct {
	store    SessionStore
	products productLoader
	coupons  couponCatalog
	metrics  *metrics.PricingMetrics
	logg     *logger.Logger
	now      func() time.Time
}

// NewService wires the cart service. metrics may be nil.
func NewService(store SessionStore, products productLoader, coupons couponCatalog, m *metrics.PricingMetrics, logg *logger.Logger) (Service, error) {
	if store == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "cart session store required")
	}
	if products == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "product loader required")
	}
	if coupons == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "coupon catalog required")
	}
	if logg == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "logger required")
	}
	return &service{
		store:    store,
		products: products,
		coupons:  coupons,
		metrics:  m,
		logg:     logg,
		now:      time.Now,
	}, nil
}

func (s *service) load(ctx context.Context, userID uuid.UUID) (*Session, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user id required")
	}
	session, err := s.store.Load(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load cart")
	}
	if session == nil {
		session = newSession(userID, s.now().UTC())
	}
	return session, nil
}

func (s *service) save(ctx context.Context, session *Session) (*View, error) {
	session.UpdatedAt = s.now().UTC()
	if err := s.store.Save(ctx, session); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save cart")
	}
	return s.view(ctx, session)
}

func (s *service) view(ctx context.Context, session *Session) (*View, error) {
	totals, err := s.totals(ctx, enums.CalculationSourceSession, session.pricingLines(), session.CouponCodes)
	if err != nil {
		return nil, err
	}
	return &View{Session: session, Totals: *totals}, nil
}

// totals reloads the coupon catalog on every call so eligibility is never cached.
func (s *service) totals(ctx context.Context, source enums.CalculationSource, lines []pricing.CartLine, codes []string) (*pricing.CartCalculation, error) {
	started := time.Now()
	catalog, err := s.coupons.Catalog(ctx, codes)
	if err != nil {
		return nil, err
	}

	calc := pricing.Calculate(lines, codes, catalog, s.now().UTC())

	for range calc.AppliedCoupons {
		s.metrics.IncCouponApplied()
	}
	for _, rejected := range calc.RejectedCodes {
		s.metrics.IncCouponRejected(rejected.Reason.String())
	}
	s.metrics.ObserveCalculation(source.String(), time.Since(started))

	if len(calc.RejectedCodes) > 0 {
		debugCtx := s.logg.WithFields(ctx, map[string]any{
			"source":   source.String(),
			"rejected": len(calc.RejectedCodes),
		})
		s.logg.Debug(debugCtx, "coupon codes rejected during calculation")
	}
	return &calc, nil
}

func (s *service) GetCart(ctx context.Context, userID uuid.UUID) (*View, error) {
	session, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.view(ctx, session)
}

func (s *service) AddItem(ctx context.Context, userID, productID uuid.UUID, quantity int) (*View, error) {
	if quantity < 1 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity must be at least 1").
			WithDetails(map[string]any{"quantity": quantity})
	}
	session, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}

	idx := session.lineIndex(productID)
	existing := 0
	if idx >= 0 {
		existing = session.Lines[idx].Quantity
	}
	if quantity > pricing.MaxLineQuantity-existing {
		return nil, quantityTooLarge(productID, quantity, existing)
	}
	total := existing + quantity

	line, err := s.priceLine(ctx, productID, total)
	if err != nil {
		return nil, err
	}
	if idx >= 0 {
		session.Lines[idx] = *line
	} else {
		session.Lines = append(session.Lines, *line)
	}
	return s.save(ctx, session)
}

func (s *service) UpdateQuantity(ctx context.Context, userID, productID uuid.UUID, quantity int) (*View, error) {
	session, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}
	idx := session.lineIndex(productID)
	if idx < 0 {
		return nil, lineNotFound(productID)
	}

	if quantity <= 0 {
		session.removeLine(idx)
		return s.save(ctx, session)
	}

	if quantity > pricing.MaxLineQuantity {
		return nil, quantityTooLarge(productID, quantity, 0)
	}

	line, err := s.priceLine(ctx, productID, quantity)
	if err != nil {
		return nil, err
	}
	session.Lines[idx] = *line
	return s.save(ctx, session)
}

func (s *service) RemoveItem(ctx context.Context, userID, productID uuid.UUID) (*View, error) {
	session, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}
	idx := session.lineIndex(productID)
	if idx < 0 {
		return nil, lineNotFound(productID)
	}
	session.removeLine(idx)
	return s.save(ctx, session)
}

func (s *service) SetCoupons(ctx context.Context, userID uuid.UUID, codes []string) (*View, error) {
	session, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}
	session.CouponCodes = normalizeCodes(codes)
	return s.save(ctx, session)
}

func (s *service) Clear(ctx context.Context, userID uuid.UUID) error {
	if userID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeUnauthorized, "user id required")
	}
	if err := s.store.Delete(ctx, userID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "clear cart")
	}
	return nil
}

func (s *service) Calculate(ctx context.Context, input CalculateInput) (*pricing.CartCalculation, error) {
	lines := make([]pricing.CartLine, 0, len(input.Lines))
	for _, in := range input.Lines {
		if in.Quantity > pricing.MaxLineQuantity {
			return nil, quantityTooLarge(in.ProductID, in.Quantity, 0)
		}
		if in.UnitPrice.IsNegative() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "unit price must not be negative").
				WithDetails(map[string]any{"product_id": in.ProductID.String()})
		}
		lines = append(lines, pricing.CartLine{
			ProductID: in.ProductID,
			Name:      in.Name,
			Quantity:  in.Quantity,
			UnitPrice: in.UnitPrice,
		})
	}
	return s.totals(ctx, enums.CalculationSourceStateless, lines, input.CouponCodes)
}

// priceLine re-resolves the tier price for the line's full quantity and checks stock.
func (s *service) priceLine(ctx context.Context, productID uuid.UUID, quantity int) (*Line, error) {
	product, err := s.products.PricingProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	if quantity > product.StockQty {
		return nil, pkgerrors.New(pkgerrors.CodeConflict, "insufficient stock").
			WithDetails(map[string]any{
				"product_id": productID.String(),
				"requested":  quantity,
				"available":  product.StockQty,
			})
	}
	return &Line{
		ProductID: product.ID,
		Name:      product.Name,
		Quantity:  quantity,
		UnitPrice: pricing.ResolveUnitPrice(*product, quantity),
	}, nil
}

func quantityTooLarge(productID uuid.UUID, requested, existing int) error {
	return pkgerrors.New(pkgerrors.CodeValidation, "line quantity exceeds maximum").
		WithDetails(map[string]any{
			"product_id": productID.String(),
			"requested":  requested,
			"in_cart":    existing,
			"max":        pricing.MaxLineQuantity,
		})
}

func lineNotFound(productID uuid.UUID) error {
	return pkgerrors.New(pkgerrors.CodeNotFound, "product not in cart").
		WithDetails(map[string]any{"product_id": productID.String()})
}
