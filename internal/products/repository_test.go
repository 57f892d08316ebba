package product

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/angelmondragon/bulkmart-backend/pkg/db"
	"github.com/angelmondragon/bulkmart-backend/pkg/db/models"
)

func TestRepositoryFindByIDPreloadsOrderedTiers(t *testing.T) {
	conn := setupProductsTestDB(t)
	repo := NewRepository(conn)
	created := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	row := mustCreateProduct(t, conn, "SKU-A", "12.50", created, map[int]string{50: "9.75", 10: "11.00"})

	got, err := repo.FindByID(context.Background(), row.ID)
	require.NoError(t, err)
	require.Len(t, got.PriceTiers, 2)
	assert.Equal(t, 10, got.PriceTiers[0].MinQty)
	assert.Equal(t, 50, got.PriceTiers[1].MinQty)
	assert.Equal(t, "12.50", got.BasePrice.StringFixed(2))
}

func TestRepositoryFindByIDSkipsInactive(t *testing.T) {
	conn := setupProductsTestDB(t)
	repo := NewRepository(conn)
	row := mustCreateProduct(t, conn, "SKU-OFF", "5.00", time.Now().UTC().Truncate(time.Second), nil)
	require.NoError(t, conn.Model(&models.Product{}).Where("id = ?", row.ID).Update("is_active", false).Error)

	_, err := repo.FindByID(context.Background(), row.ID)
	assert.True(t, db.IsNotFound(err))

	_, err = repo.FindByID(context.Background(), uuid.New())
	assert.True(t, db.IsNotFound(err))
}

func TestRepositoryListPaginatesNewestFirst(t *testing.T) {
	conn := setupProductsTestDB(t)
	repo := NewRepository(conn)
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		mustCreateProduct(t, conn, fmt.Sprintf("SKU-%d", i), "3.00", base.Add(time.Duration(i)*time.Minute), nil)
	}

	ctx := context.Background()
	page, next, err := repo.List(ctx, listProductsParams{Limit: 2})
	require.NoError(t, err)
	require.Len(t, page, 2)
	require.NotNil(t, next)
	assert.Equal(t, "SKU-4", page[0].SKU)
	assert.Equal(t, "SKU-3", page[1].SKU)

	page, next, err = repo.List(ctx, listProductsParams{Limit: 2, Cursor: next})
	require.NoError(t, err)
	require.Len(t, page, 2)
	assert.Equal(t, "SKU-2", page[0].SKU)
	assert.Equal(t, "SKU-1", page[1].SKU)

	page, next, err = repo.List(ctx, listProductsParams{Limit: 2, Cursor: next})
	require.NoError(t, err)
	require.Len(t, page, 1)
	assert.Equal(t, "SKU-0", page[0].SKU)
	assert.Nil(t, next)
}
