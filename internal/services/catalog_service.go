package services

import (
	"context"
	"fmt"

	"mboga/internal/models/db_models"
	"mboga/internal/models/response_models"
	"mboga/internal/repositories"
	"mboga/pkg/utils"
)

type CatalogServiceInterface interface {
	GetAllProducts(ctx context.Context, page int, pageSize int) ([]response_models.ProductResponse, error)
	GetProductByID(ctx context.Context, id string) (*response_models.ProductResponse, error)
}

type CatalogService struct {
	products repositories.ProductRepositoryInterface
}

func NewCatalogService(products repositories.ProductRepositoryInterface) CatalogServiceInterface {
	return &CatalogService{
		products: products,
	}
}

func (s *CatalogService) GetAllProducts(ctx context.Context, page int, pageSize int) ([]response_models.ProductResponse, error) {
	products, err := s.products.GetAllProducts(ctx, page, pageSize)
	if err != nil {
		return nil, fmt.Errorf("%w: list products: %v", utils.ErrDatabaseError, err)
	}

	responses := make([]response_models.ProductResponse, 0, len(products))
	for i := range products {
		responses = append(responses, productResponse(&products[i]))
	}
	return responses, nil
}

func (s *CatalogService) GetProductByID(ctx context.Context, id string) (*response_models.ProductResponse, error) {
	product, err := s.products.GetProductByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%w: load product: %v", utils.ErrDatabaseError, err)
	}
	if product == nil {
		return nil, utils.ErrProductNotFound
	}
	resp := productResponse(product)
	return &resp, nil
}

func productResponse(p *db_models.Product) response_models.ProductResponse {
	desc := ""
	if p.Description != nil {
		desc = *p.Description
	}
	return response_models.ProductResponse{
		ID:          p.ID.String(),
		Name:        p.Name,
		Description: desc,
		Price:       p.PriceMinor,
		Unit:        p.Unit,
		Tags:        p.Tags,
		ImageURL:    p.ImageURL,
		InStock:     p.InStock,
	}
}
