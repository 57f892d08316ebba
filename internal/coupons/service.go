package coupons

import (
	"context"
	"time"

	"github.com/angelmondragon/bulkmart-backend/internal/pricing"
	"github.com/angelmondragon/bulkmart-backend/pkg/db"
	"github.com/angelmondragon/bulkmart-backend/pkg/db/models"
	"github.com/angelmondragon/bulkmart-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/bulkmart-backend/pkg/errors"
	"github.com/angelmondragon/bulkmart-backend/pkg/logger"
)

// Service exposes the coupon catalog.
type Service interface {
	Catalog(ctx context.Context, codes []string) (map[string]pricing.Coupon, error)
	ListAvailable(ctx context.Context) ([]CouponDTO, error)
	GetCoupon(ctx context.Context, code string) (*CouponDTO, error)
	ValidateCode(ctx context.Context, code string) (*ValidationResult, error)
}

type service struct {
	repo Repository
	logg *logger.Logger
	now  func() time.Time
}

// NewService wires the coupon service.
func NewService(repo Repository, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "coupon repository required")
	}
	if logg == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "logger required")
	}
	return &service{repo: repo, logg: logg, now: time.Now}, nil
}

// Catalog loads a fresh snapshot of the submitted codes. Unknown codes are simply absent.
func (s *service) Catalog(ctx context.Context, codes []string) (map[string]pricing.Coupon, error) {
	lookup := make([]string, 0, len(codes))
	seen := map[string]bool{}
	for _, raw := range codes {
		code := pricing.NormalizeCode(raw)
		if code == "" || seen[code] {
			continue
		}
		seen[code] = true
		lookup = append(lookup, code)
	}

	catalog := make(map[string]pricing.Coupon, len(lookup))
	if len(lookup) == 0 {
		return catalog, nil
	}

	rows, err := s.repo.FindByCodes(ctx, lookup)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load coupons")
	}
	for _, row := range rows {
		s.warnIfMalformed(ctx, row)
		coupon := toPricing(row)
		catalog[coupon.Code] = coupon
	}
	return catalog, nil
}

func (s *service) warnIfMalformed(ctx context.Context, row models.Coupon) bool {
	err := Validate(row)
	if err == nil {
		return false
	}
	warnCtx := s.logg.WithFields(ctx, map[string]any{
		"coupon_code": row.Code,
		"problems":    err.Error(),
	})
	s.logg.Warn(warnCtx, "malformed coupon row")
	return true
}

func (s *service) ListAvailable(ctx context.Context) ([]CouponDTO, error) {
	rows, err := s.repo.ListActive(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list coupons")
	}

	now := s.now()
	out := make([]CouponDTO, 0, len(rows))
	for _, row := range rows {
		if s.warnIfMalformed(ctx, row) {
			continue
		}
		if ok, _ := toPricing(row).Eligibility(now); !ok {
			continue
		}
		out = append(out, newCouponDTO(row))
	}
	return out, nil
}

func (s *service) find(ctx context.Context, code string) (*models.Coupon, error) {
	code = pricing.NormalizeCode(code)
	if code == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "coupon code required")
	}
	row, err := s.repo.FindByCode(ctx, code)
	if err != nil {
		if db.IsNotFound(err) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "coupon not found").
				WithDetails(map[string]any{"code": code})
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load coupon")
	}
	return row, nil
}

func (s *service) GetCoupon(ctx context.Context, code string) (*CouponDTO, error) {
	row, err := s.find(ctx, code)
	if err != nil {
		return nil, err
	}
	dto := newCouponDTO(*row)
	return &dto, nil
}

// ValidateCode checks one code in isolation, as if it were the first coupon on a
// non-empty cart.
func (s *service) ValidateCode(ctx context.Context, code string) (*ValidationResult, error) {
	row, err := s.find(ctx, code)
	if err != nil {
		return nil, err
	}

	coupon := toPricing(*row)
	result := &ValidationResult{Code: coupon.Code, MakesFree: coupon.MakesFree}

	if s.warnIfMalformed(ctx, *row) || coupon.Validate() != nil {
		reason := enums.CouponRejectionMalformed
		result.Reason = &reason
		return result, nil
	}
	if ok, reason := coupon.Eligibility(s.now()); !ok {
		result.Reason = &reason
		return result, nil
	}

	result.Valid = true
	if !coupon.MakesFree {
		kind := coupon.Kind
		value := coupon.Value
		result.Kind = &kind
		result.Value = &value
	}
	return result, nil
}
