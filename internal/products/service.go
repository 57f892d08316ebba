package product

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/angelmondragon/bulkmart-backend/internal/pricing"
	"github.com/angelmondragon/bulkmart-backend/pkg/db"
	"github.com/angelmondragon/bulkmart-backend/pkg/db/models"
	pkgerrors "github.com/angelmondragon/bulkmart-backend/pkg/errors"
	"github.com/angelmondragon/bulkmart-backend/pkg/logger"
	"github.com/angelmondragon/bulkmart-backend/pkg/pagination"
)

// Service exposes catalog reads and tier price quotes.
type Service interface {
	GetProduct(ctx context.Context, id uuid.UUID) (*ProductDTO, error)
	ListProducts(ctx context.Context, params ListParams) (*ListResult, error)
	QuotePrice(ctx context.Context, id uuid.UUID, quantity int) (*PriceQuote, error)
	PricingProduct(ctx context.Context, id uuid.UUID) (*pricing.Product, error)
}

// ListParams configures product pagination.
type ListParams struct {
	Limit  int
	Cursor string
}

// ListResult wraps a page of products and the cursor for the next one.
type ListResult struct {
	Items  []ProductDTO `json:"items"`
	Cursor string       `json:"cursor"`
}

type service struct {
	repo Repository
	logg *logger.Logger
}

// NewService wires the product service.
func NewService(repo Repository, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "product repository required")
	}
	if logg == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "logger required")
	}
	return &service{repo: repo, logg: logg}, nil
}

func (s *service) load(ctx context.Context, id uuid.UUID) (*models.Product, []pricing.PriceTier, error) {
	if id == uuid.Nil {
		return nil, nil, pkgerrors.New(pkgerrors.CodeValidation, "product id required")
	}
	row, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if db.IsNotFound(err) {
			return nil, nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}
	return row, s.tiersFor(ctx, row), nil
}

func (s *service) tiersFor(ctx context.Context, row *models.Product) []pricing.PriceTier {
	tiers, dropped := sanitizeTiers(row.BasePrice, row.PriceTiers)
	for _, d := range dropped {
		warnCtx := s.logg.WithFields(ctx, map[string]any{
			"product_id": row.ID.String(),
			"min_qty":    d.MinQty,
			"reason":     d.Reason,
		})
		s.logg.Warn(warnCtx, "ignoring invalid price tier")
	}
	return tiers
}

func (s *service) GetProduct(ctx context.Context, id uuid.UUID) (*ProductDTO, error) {
	row, tiers, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	return newProductDTO(row, tiers), nil
}

func (s *service) ListProducts(ctx context.Context, params ListParams) (*ListResult, error) {
	query := listProductsParams{Limit: params.Limit}
	if params.Cursor != "" {
		cursor, err := pagination.ParseCursor(params.Cursor)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid cursor")
		}
		query.Cursor = cursor
	}

	rows, next, err := s.repo.List(ctx, query)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list products")
	}

	items := make([]ProductDTO, 0, len(rows))
	for i := range rows {
		items = append(items, *newProductDTO(&rows[i], s.tiersFor(ctx, &rows[i])))
	}

	cursor := ""
	if next != nil {
		cursor = pagination.EncodeCursor(*next)
	}
	return &ListResult{Items: items, Cursor: cursor}, nil
}

func (s *service) QuotePrice(ctx context.Context, id uuid.UUID, quantity int) (*PriceQuote, error) {
	if quantity < 1 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity must be at least 1").
			WithDetails(map[string]any{"quantity": quantity})
	}
	p, err := s.PricingProduct(ctx, id)
	if err != nil {
		return nil, err
	}

	unit := pricing.ResolveUnitPrice(*p, quantity)
	quote := &PriceQuote{
		ProductID: p.ID,
		Quantity:  quantity,
		UnitPrice: unit,
		LineTotal: pricing.LineTotal(unit, quantity),
	}
	if tier := pricing.SelectTier(p.Tiers, quantity); tier != nil {
		quote.AppliedTier = &PriceTierDTO{MinQty: tier.MinQty, UnitPrice: tier.UnitPrice}
	}
	return quote, nil
}

// PricingProduct returns the resolver view of a product, with invalid tiers removed.
func (s *service) PricingProduct(ctx context.Context, id uuid.UUID) (*pricing.Product, error) {
	row, tiers, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if !row.BasePrice.IsPositive() {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, fmt.Sprintf("product %s has no valid base price", row.ID))
	}
	return &pricing.Product{
		ID:        row.ID,
		Name:      row.Name,
		BasePrice: row.BasePrice,
		Tiers:     tiers,
		StockQty:  row.StockQty,
	}, nil
}
