package coupons

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"go.uber.org/multierr"

	"github.com/angelmondragon/bulkmart-backend/internal/pricing"
	"github.com/angelmondragon/bulkmart-backend/pkg/db/models"
	"github.com/angelmondragon/bulkmart-backend/pkg/enums"
)

var (
	validate   = validator.New()
	maxPercent = decimal.NewFromInt(100)
)

type couponRules struct {
	Code         string `validate:"required,max=64"`
	DiscountType string `validate:"omitempty,oneof=percentage fixed"`
	UsageLimit   *int   `validate:"omitempty,min=0"`
	UsedCount    int    `validate:"min=0"`
}

// Validate reports every problem with a stored coupon row. A row that fails here is
// never applied to a cart.
func Validate(record models.Coupon) error {
	rules := couponRules{
		Code:       record.Code,
		UsageLimit: record.UsageLimit,
		UsedCount:  record.UsedCount,
	}
	if record.DiscountType != nil {
		rules.DiscountType = *record.DiscountType
	}

	var errs error
	if err := validate.Struct(rules); err != nil {
		if fieldErrs, ok := err.(validator.ValidationErrors); ok {
			for _, fe := range fieldErrs {
				errs = multierr.Append(errs, fmt.Errorf("%s failed %s", fe.Field(), fe.Tag()))
			}
		} else {
			errs = multierr.Append(errs, err)
		}
	}

	if record.Code != strings.TrimSpace(record.Code) {
		errs = multierr.Append(errs, fmt.Errorf("code has surrounding whitespace"))
	}

	if record.MakesFree {
		return errs
	}

	if record.DiscountType == nil {
		errs = multierr.Append(errs, fmt.Errorf("discount_type required unless makes_free"))
	}
	if !record.DiscountValue.Valid {
		errs = multierr.Append(errs, fmt.Errorf("discount_value required unless makes_free"))
		return errs
	}

	value := record.DiscountValue.Decimal
	if !value.IsPositive() {
		errs = multierr.Append(errs, fmt.Errorf("discount_value must be positive"))
	}
	if record.DiscountType != nil && *record.DiscountType == string(enums.DiscountKindPercentage) &&
		value.GreaterThan(maxPercent) {
		errs = multierr.Append(errs, fmt.Errorf("percentage discount_value must not exceed 100"))
	}
	return errs
}

// toPricing maps a row into the calculator's view. Fields are copied as stored so the
// calculator's own checks still see a malformed row.
func toPricing(record models.Coupon) pricing.Coupon {
	c := pricing.Coupon{
		Code:       pricing.NormalizeCode(record.Code),
		MakesFree:  record.MakesFree,
		ExpiresAt:  record.ExpiresAt,
		UsageLimit: record.UsageLimit,
		UsedCount:  record.UsedCount,
		Active:     record.IsActive,
	}
	if record.DiscountType != nil {
		c.Kind = enums.DiscountKind(*record.DiscountType)
	}
	if record.DiscountValue.Valid {
		c.Value = record.DiscountValue.Decimal
	}
	return c
}
