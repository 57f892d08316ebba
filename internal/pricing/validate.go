package pricing

import (
	"errors"
	"fmt"
	"strings"

	"go.uber.org/multierr"

	"github.com/angelmondragon/bulkmart-backend/pkg/enums"
)

// Validate rejects coupon records that cannot be priced safely. Free-order coupons
// ignore the numeric fields; every other coupon needs a known kind and a usable value.
func (c Coupon) Validate() error {
	var err error
	if strings.TrimSpace(c.Code) == "" {
		err = multierr.Append(err, errors.New("code is required"))
	}
	if c.UsageLimit != nil && *c.UsageLimit < 0 {
		err = multierr.Append(err, fmt.Errorf("usage limit %d is negative", *c.UsageLimit))
	}
	if c.UsedCount < 0 {
		err = multierr.Append(err, fmt.Errorf("used count %d is negative", c.UsedCount))
	}
	if c.MakesFree {
		return err
	}

	if !c.Kind.IsValid() {
		err = multierr.Append(err, fmt.Errorf("discount kind %q is not supported", c.Kind))
	}
	if !c.Value.IsPositive() {
		err = multierr.Append(err, fmt.Errorf("discount value %s must be positive", c.Value))
	}
	if c.Kind == enums.DiscountKindPercentage && c.Value.GreaterThan(hundred) {
		err = multierr.Append(err, fmt.Errorf("percentage %s exceeds 100", c.Value))
	}
	return err
}
