package product

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

func setupProductsTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{SkipDefaultTransaction: true})
	require.NoError(t, err)

	products := `
CREATE TABLE IF NOT EXISTS products (
  id TEXT PRIMARY KEY,
  sku TEXT NOT NULL UNIQUE,
  name TEXT NOT NULL,
  description TEXT,
  base_price TEXT NOT NULL,
  stock_qty INTEGER NOT NULL DEFAULT 0,
  is_active INTEGER NOT NULL DEFAULT 1,
  created_at DATETIME,
  updated_at DATETIME
);`
	tiers := `
CREATE TABLE IF NOT EXISTS product_price_tiers (
  id TEXT PRIMARY KEY,
  product_id TEXT NOT NULL,
  min_qty INTEGER NOT NULL,
  unit_price TEXT NOT NULL,
  created_at DATETIME
);`
	require.NoError(t, conn.Exec(products).Error)
	require.NoError(t, conn.Exec(tiers).Error)
	return conn
}

func mustCreateProduct(t *testing.T, conn *gorm.DB, sku, base string, createdAt time.Time, tiers map[int]string) *models.Product {
	t.Helper()
	row := &models.Product{
		ID:        uuid.New(),
		SKU:       sku,
		Name:      "Product " + sku,
		BasePrice: decimal.RequireFromString(base),
		StockQty:  500,
		IsActive:  true,
		CreatedAt: createdAt,
		UpdatedAt: createdAt,
	}
	require.NoError(t, conn.Omit("PriceTiers").Create(row).Error)

	for minQty, price := range tiers {
		tier := &models.ProductPriceTier{
			ID:        uuid.New(),
			ProductID: row.ID,
			MinQty:    minQty,
			UnitPrice: decimal.RequireFromString(price),
			CreatedAt: createdAt,
		}
		require.NoError(t, conn.Create(tier).Error)
	}
	return row
}
