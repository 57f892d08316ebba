package coupons

import (
	"context"

	"gorm.io/gorm"

	"github.com/angelmondragon/bulkmart-backend/pkg/db/models"
)

// Repository reads the coupon catalog.
type Repository interface {
	FindByCode(ctx context.Context, code string) (*models.Coupon, error)
	FindByCodes(ctx context.Context, codes []string) ([]models.Coupon, error)
	ListActive(ctx context.Context) ([]models.Coupon, error)
}

type repositoryImpl struct {
	db *gorm.DB
}

// NewRepository returns a coupon repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repositoryImpl{db: db}
}

func (r *repositoryImpl) FindByCode(ctx context.Context, code string) (*models.Coupon, error) {
	var coupon models.Coupon
	if err := r.db.WithContext(ctx).First(&coupon, "code = ?", code).Error; err != nil {
		return nil, err
	}
	return &coupon, nil
}

func (r *repositoryImpl) FindByCodes(ctx context.Context, codes []string) ([]models.Coupon, error) {
	if len(codes) == 0 {
		return []models.Coupon{}, nil
	}
	var rows []models.Coupon
	err := r.db.WithContext(ctx).
		Where("code IN ?", codes).
		Find(&rows).
		Error
	return rows, err
}

func (r *repositoryImpl) ListActive(ctx context.Context) ([]models.Coupon, error) {
	var rows []models.Coupon
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("code ASC").
		Find(&rows).
		Error
	return rows, err
}
