package repositories

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"mboga/internal/models/db_models"
)

type ProductRepositoryInterface interface {
	GetProductByID(ctx context.Context, id string) (*db_models.Product, error)
	GetAllProducts(ctx context.Context, page int, pageSize int) ([]db_models.Product, error)
}

func NewProductRepository(db *gorm.DB) ProductRepositoryInterface {
	return &ProductRepository{db: db}
}

type ProductRepository struct {
	db *gorm.DB
}

func (r *ProductRepository) GetProductByID(ctx context.Context, id string) (*db_models.Product, error) {
	var product db_models.Product
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&product).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &product, nil
}

func (r *ProductRepository) GetAllProducts(ctx context.Context, page int, pageSize int) ([]db_models.Product, error) {
	var products []db_models.Product
	err := r.db.WithContext(ctx).Scopes(func(db *gorm.DB) *gorm.DB {
		offset := (page - 1) * pageSize
		return db.Offset(offset).Limit(pageSize)
	}).Order("name ASC").Find(&products).Error
	if err != nil {
		return nil, err
	}
	return products, nil
}
