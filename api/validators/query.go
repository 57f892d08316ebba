package validators

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/angelmondragon/bulkmart-backend/internal/pricing"
	pkgerrors "github.com/angelmondragon/bulkmart-backend/pkg/errors"
)

// ParseQueryInt reads an optional integer query parameter bounded to [min, max].
func ParseQueryInt(r *http.Request, key string, defaultVal, min, max int) (int, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return defaultVal, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "query parameter must be numeric").
			WithDetails(map[string]any{"field": key, "value": raw})
	}
	if value < min || value > max {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "query parameter out of range").
			WithDetails(map[string]any{"field": key, "min": min, "max": max})
	}
	return value, nil
}

// ParseQuantity reads a line quantity, defaulting to a single unit.
func ParseQuantity(r *http.Request, key string) (int, error) {
	return ParseQueryInt(r, key, 1, 1, pricing.MaxLineQuantity)
}
