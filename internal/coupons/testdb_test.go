package coupons

import (
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/angelmondragon/bulkmart-backend/pkg/db/models"
)

var evalTime = time.Date(2026, 6, 15, 12, 0, 0, 0, time.UTC)

func setupCouponsTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{SkipDefaultTransaction: true})
	require.NoError(t, err)

	require.NoError(t, conn.Exec(`
CREATE TABLE IF NOT EXISTS coupons (
  id TEXT PRIMARY KEY,
  code TEXT NOT NULL UNIQUE,
  description TEXT,
  discount_type TEXT,
  discount_value TEXT,
  makes_free INTEGER NOT NULL DEFAULT 0,
  expires_at DATETIME,
  usage_limit INTEGER,
  used_count INTEGER NOT NULL DEFAULT 0,
  is_active INTEGER NOT NULL DEFAULT 1,
  created_at DATETIME,
  updated_at DATETIME
);`).Error)
	return conn
}

func strPtr(v string) *string { return &v }
func intPtr(v int) *int       { return &v }
func timePtr(v time.Time) *time.Time {
	return &v
}

func couponRow(code, kind, value string) models.Coupon {
	return models.Coupon{
		ID:            uuid.New(),
		Code:          code,
		DiscountType:  strPtr(kind),
		DiscountValue: decimal.NewNullDecimal(decimal.RequireFromString(value)),
		IsActive:      true,
	}
}

func freeRow(code string) models.Coupon {
	return models.Coupon{ID: uuid.New(), Code: code, MakesFree: true, IsActive: true}
}
