package service

import (
	"context"
	"database/sql"
	"errors"

	appErrors "github.com/1804coins/storefront-api/internal/errors"
	"github.com/1804coins/storefront-api/internal/models"
	repository "github.com/1804coins/storefront-api/internal/repositories"
	"github.com/google/uuid"
)

type ProductService interface {
	CreateProduct(ctx context.Context, req *models.CreateProductRequest) (*models.Product, error)
	GetProductByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
	UpdateProduct(ctx context.Context, id uuid.UUID, req *models.UpdateProductRequest) (*models.Product, error)
	DeleteProduct(ctx context.Context, id uuid.UUID) error
	ListProducts(ctx context.Context) ([]*models.Product, error)
}

type productService struct {
	repo repository.ProductRepository
}

func NewProductService(repo repository.ProductRepository) ProductService {
	return &productService{repo: repo}
}

func (s *productService) CreateProduct(ctx context.Context, req *models.CreateProductRequest) (*models.Product, error) {

	product := &models.Product{
		ID:            uuid.New(),
		Name:          req.Name,
		Subtitle:      req.Subtitle,
		Description:   req.Description,
		Category:      req.Category,
		Image:         req.Image,
		Price:         req.Price,
		SalePrice:     req.SalePrice,
		Status:        req.Status,
		InStock:       req.InStock,
		Featured:      req.Featured,
		StockQuantity: req.StockQuantity,
	}

	if err := s.repo.CreateProduct(ctx, product); err != nil {
		return nil, appErrors.DatabaseError("Failed to create product").WithError(err)
	}

	return product, nil
}

func (s *productService) GetProductByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {

	product, err := s.repo.GetProductByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.NotFoundError("Product not found").WithError(err)
		}

		return nil, appErrors.DatabaseError("Failed to retrieve product").WithError(err)
	}

	return product, nil
}

func (s *productService) UpdateProduct(ctx context.Context, id uuid.UUID, req *models.UpdateProductRequest) (*models.Product, error) {

	product, err := s.repo.GetProductByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.NotFoundError("Product not found").WithError(err)
		}

		return nil, appErrors.DatabaseError("Failed to retrieve product").WithError(err)
	}

	if req.Name != nil {
		product.Name = *req.Name
	}

	if req.Subtitle != nil {
		product.Subtitle = *req.Subtitle
	}

	if req.Description != nil {
		product.Description = *req.Description
	}

	if req.Category != nil {
		product.Category = *req.Category
	}

	if req.Image != nil {
		product.Image = *req.Image
	}

	if req.Price != nil {
		product.Price = *req.Price
	}

	if req.SalePrice != nil {
		// A zero sale price clears the override.
		if *req.SalePrice == 0 {
			product.SalePrice = nil
		} else {
			product.SalePrice = req.SalePrice
		}
	}

	if req.Status != nil {
		product.Status = *req.Status
	}

	if req.InStock != nil {
		product.InStock = *req.InStock
	}

	if req.Featured != nil {
		product.Featured = *req.Featured
	}

	if req.StockQuantity != nil {
		product.StockQuantity = *req.StockQuantity
	}

	if err := s.repo.UpdateProduct(ctx, product); err != nil {
		return nil, appErrors.DatabaseError("Failed to update product").WithError(err)
	}

	return product, nil
}

func (s *productService) DeleteProduct(ctx context.Context, id uuid.UUID) error {

	err := s.repo.DeleteProduct(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.NotFoundError("Product not found").WithError(err)
		}

		return appErrors.DatabaseError("Failed to delete product").WithError(err)
	}

	return nil
}

func (s *productService) ListProducts(ctx context.Context) ([]*models.Product, error) {

	products, err := s.repo.ListProducts(ctx)
	if err != nil {
		return nil, appErrors.DatabaseError("Failed to fetch products").WithError(err)
	}

	if products == nil {
		products = []*models.Product{}
	}

	return products, nil
}
