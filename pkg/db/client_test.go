package db

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/angelmondragon/bulkmart-backend/pkg/db/models"
	"github.com/angelmondragon/bulkmart-backend/pkg/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{SkipDefaultTransaction: true})
	require.NoError(t, err)

	require.NoError(t, conn.Exec(`
CREATE TABLE products (
  id TEXT PRIMARY KEY,
  sku TEXT NOT NULL UNIQUE,
  name TEXT NOT NULL,
  description TEXT,
  base_price TEXT NOT NULL,
  stock_qty INTEGER NOT NULL DEFAULT 0,
  is_active INTEGER NOT NULL DEFAULT 1,
  created_at DATETIME,
  updated_at DATETIME
);`).Error)
	return conn
}

func testProduct(sku string) *models.Product {
	return &models.Product{
		ID:        uuid.New(),
		SKU:       sku,
		Name:      "Crate",
		BasePrice: decimal.RequireFromString("12.50"),
		StockQty:  10,
		IsActive:  true,
	}
}

func TestQueryLoggerReportsFailuresAndSlowQueries(t *testing.T) {
	var buf bytes.Buffer
	logg := logger.New(logger.Options{ServiceName: "test", Level: zerolog.DebugLevel, Output: &buf})
	ql := newQueryLogger(logg, 50*time.Millisecond)
	ctx := context.Background()
	stmt := func() (string, int64) { return "SELECT 1", 1 }

	ql.Trace(ctx, time.Now(), stmt, gorm.ErrRecordNotFound)
	assert.Empty(t, buf.String())

	ql.Trace(ctx, time.Now(), stmt, errors.New("relation does not exist"))
	assert.Contains(t, buf.String(), "db.query_failed")
	buf.Reset()

	ql.Trace(ctx, time.Now().Add(-time.Second), stmt, nil)
	assert.Contains(t, buf.String(), "db.query_slow")
	assert.Contains(t, buf.String(), `"sql":"SELECT 1"`)
	buf.Reset()

	ql.LogMode(gormlogger.Silent).Trace(ctx, time.Now().Add(-time.Second), stmt, nil)
	assert.Empty(t, buf.String())
}

func TestCreateWithQueryLogger(t *testing.T) {
	var buf bytes.Buffer
	logg := logger.New(logger.Options{ServiceName: "test", Output: &buf})
	conn := newTestDB(t)
	conn.Logger = newQueryLogger(logg, time.Hour)

	require.NoError(t, conn.Create(testProduct("SKU-1")).Error)
	err := conn.Create(testProduct("SKU-1")).Error
	require.Error(t, err)
	assert.Contains(t, buf.String(), "db.query_failed")
}

func TestDecimalColumnsRoundTrip(t *testing.T) {
	conn := newTestDB(t)
	p := testProduct("SKU-RT")
	require.NoError(t, conn.Create(p).Error)

	var loaded models.Product
	require.NoError(t, conn.First(&loaded, "id = ?", p.ID).Error)
	assert.True(t, loaded.BasePrice.Equal(decimal.RequireFromString("12.5")))
}

func TestIsNotFound(t *testing.T) {
	conn := newTestDB(t)

	var loaded models.Product
	err := conn.First(&loaded, "id = ?", uuid.New()).Error
	assert.True(t, IsNotFound(err))
	assert.True(t, IsNotFound(fmt.Errorf("wrapped: %w", err)))
	assert.False(t, IsNotFound(errors.New("other")))
}

func TestPing(t *testing.T) {
	client := FromConn(newTestDB(t))
	assert.NoError(t, client.Ping(context.Background()))
}
