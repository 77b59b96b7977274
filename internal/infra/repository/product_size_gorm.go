package repository

import (
	"context"

	"biobag/internal/domain/model"

	"gorm.io/gorm"
)

type ProductSizeGormRepository struct {
	db *gorm.DB
}

func NewProductSizeGormRepository(db *gorm.DB) *ProductSizeGormRepository {
	return &ProductSizeGormRepository{db: db}
}

func (r *ProductSizeGormRepository) CreateBulk(ctx context.Context, productID string, sizes []model.ProductSize) error {
	if len(sizes) == 0 {
		return nil
	}
	for i := range sizes {
		sizes[i].ProductID = productID
		sizes[i].Position = i
	}
	return r.db.WithContext(ctx).Create(&sizes).Error
}

func (r *ProductSizeGormRepository) DeleteByProductID(ctx context.Context, productID string) error {
	return r.db.WithContext(ctx).Where("product_id = ?", productID).Delete(&model.ProductSize{}).Error
}

func (r *ProductSizeGormRepository) ListByProductID(ctx context.Context, productID string) ([]model.ProductSize, error) {
	var sizes []model.ProductSize
	err := r.db.WithContext(ctx).
		Where("product_id = ?", productID).
		Order("position asc").
		Find(&sizes).Error
	if err != nil {
		return []model.ProductSize{}, err
	}
	return sizes, nil
}
