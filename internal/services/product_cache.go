package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/1804coins/storefront-api/internal/cache"
	"github.com/1804coins/storefront-api/internal/models"
	"github.com/google/uuid"
)

// catalogTTL is deliberately short so admin edits made outside this
// process still surface quickly.
const catalogTTL = time.Minute

// cachedProductService decorates a ProductService with a redis read
// cache. The cache is best effort: a cache failure never fails the
// request, it just falls through to the database.
type cachedProductService struct {
	inner ProductService
	cache cache.Cache
}

func NewCachedProductService(inner ProductService, c cache.Cache) ProductService {
	return &cachedProductService{inner: inner, cache: c}
}

func (s *cachedProductService) GetProductByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {

	key := cache.Key(cache.ProductKeyPrefix, id.String())

	var cached models.Product

	found, err := s.cache.Get(ctx, key, &cached)
	if err != nil {
		slog.Warn("Product cache read failed", slog.Any("error", err))
	}

	if found {
		return &cached, nil
	}

	product, err := s.inner.GetProductByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(ctx, key, product, 0); err != nil {
		slog.Warn("Product cache write failed", slog.Any("error", err))
	}

	return product, nil
}

func (s *cachedProductService) ListProducts(ctx context.Context) ([]*models.Product, error) {

	var cached []*models.Product

	found, err := s.cache.Get(ctx, cache.CatalogKey, &cached)
	if err != nil {
		slog.Warn("Catalog cache read failed", slog.Any("error", err))
	}

	if found {
		return cached, nil
	}

	products, err := s.inner.ListProducts(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(ctx, cache.CatalogKey, products, catalogTTL); err != nil {
		slog.Warn("Catalog cache write failed", slog.Any("error", err))
	}

	return products, nil
}

func (s *cachedProductService) CreateProduct(ctx context.Context, req *models.CreateProductRequest) (*models.Product, error) {

	product, err := s.inner.CreateProduct(ctx, req)
	if err != nil {
		return nil, err
	}

	s.invalidateCatalog(ctx)

	return product, nil
}

func (s *cachedProductService) UpdateProduct(ctx context.Context, id uuid.UUID, req *models.UpdateProductRequest) (*models.Product, error) {

	product, err := s.inner.UpdateProduct(ctx, id, req)
	if err != nil {
		return nil, err
	}

	s.invalidate(ctx, id)

	return product, nil
}

func (s *cachedProductService) DeleteProduct(ctx context.Context, id uuid.UUID) error {

	if err := s.inner.DeleteProduct(ctx, id); err != nil {
		return err
	}

	s.invalidate(ctx, id)

	return nil
}

func (s *cachedProductService) invalidate(ctx context.Context, id uuid.UUID) {
	if err := s.cache.Delete(ctx, cache.Key(cache.ProductKeyPrefix, id.String())); err != nil {
		slog.Warn("Product cache invalidation failed", slog.Any("error", err))
	}

	s.invalidateCatalog(ctx)
}

func (s *cachedProductService) invalidateCatalog(ctx context.Context) {
	if err := s.cache.Delete(ctx, cache.CatalogKey); err != nil {
		slog.Warn("Catalog cache invalidation failed", slog.Any("error", err))
	}
}
