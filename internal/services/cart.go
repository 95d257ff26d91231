package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	appErrors "github.com/1804coins/storefront-api/internal/errors"
	"github.com/1804coins/storefront-api/internal/models"
	repository "github.com/1804coins/storefront-api/internal/repositories"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// maxCartRetries bounds the re-read/retry loop around version-checked
// cart writes. Three attempts is plenty for a per-user aggregate.
const maxCartRetries = 3

type CartService interface {
	GetCart(ctx context.Context, userID uuid.UUID) (*models.CartResponse, error)
	AddItem(ctx context.Context, userID uuid.UUID, req *models.AddToCartRequest) (int, error)
	UpdateItem(ctx context.Context, userID uuid.UUID, req *models.UpdateCartRequest) (int, error)
	RemoveItem(ctx context.Context, userID, productID uuid.UUID) error
	ClearCart(ctx context.Context, userID uuid.UUID) error
	Checkout(ctx context.Context, userID uuid.UUID) (*models.CheckoutResponse, error)
	ListOrders(ctx context.Context, userID uuid.UUID) ([]models.Order, error)
}

type cartService struct {
	cartRepo    repository.CartRepository
	productRepo repository.ProductRepository
	orderRepo   repository.OrderRepository
}

func NewCartService(cartRepo repository.CartRepository, productRepo repository.ProductRepository, orderRepo repository.OrderRepository) CartService {
	return &cartService{cartRepo: cartRepo, productRepo: productRepo, orderRepo: orderRepo}
}

func (s *cartService) GetCart(ctx context.Context, userID uuid.UUID) (*models.CartResponse, error) {

	cart, err := s.cartRepo.GetCartByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			// An absent cart reads as an empty one.
			return &models.CartResponse{Items: []models.CartLineItem{}, Total: 0, ItemCount: 0}, nil
		}

		return nil, appErrors.DatabaseError("Failed to retrieve cart").WithError(err)
	}

	items := cart.Items
	if items == nil {
		items = []models.CartLineItem{}
	}

	return &models.CartResponse{
		Items:     items,
		Total:     calculateTotal(cart.Items),
		ItemCount: cart.ItemCount(),
	}, nil
}

// AddItem merges quantity into an existing line item or appends a new
// one carrying the product's effective price at this moment. The price
// on an existing line item is deliberately left alone.
func (s *cartService) AddItem(ctx context.Context, userID uuid.UUID, req *models.AddToCartRequest) (int, error) {

	if req.Quantity < 1 {
		return 0, appErrors.ValidationError("Quantity must be a positive integer")
	}

	// Resolve the product before touching the cart, so an unknown
	// product never leaves a partial mutation behind.
	product, err := s.productRepo.GetProductByID(ctx, req.ProductID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, appErrors.NotFoundError("Product not found").WithError(err)
		}

		return 0, appErrors.DatabaseError("Failed to resolve product").WithError(err)
	}

	for range maxCartRetries {

		cart, err := s.getOrNewCart(ctx, userID)
		if err != nil {
			return 0, err
		}

		if idx := cart.FindItem(req.ProductID); idx >= 0 {
			cart.Items[idx].Quantity += req.Quantity
		} else {
			cart.Items = append(cart.Items, models.CartLineItem{
				ProductID: product.ID,
				Name:      product.Name,
				Image:     product.Image,
				Price:     product.EffectivePrice(),
				Quantity:  req.Quantity,
			})
		}

		err = s.cartRepo.UpsertCart(ctx, cart)
		if errors.Is(err, repository.ErrVersionConflict) {
			continue
		}

		if err != nil {
			return 0, appErrors.DatabaseError("Failed to update cart").WithError(err)
		}

		return cart.ItemCount(), nil
	}

	return 0, appErrors.InternalError("Cart is being modified concurrently, please retry")
}

// UpdateItem sets a line item's quantity absolutely. Zero removes the
// item; the item must already exist for any positive quantity.
func (s *cartService) UpdateItem(ctx context.Context, userID uuid.UUID, req *models.UpdateCartRequest) (int, error) {

	if req.Quantity < 0 {
		return 0, appErrors.ValidationError("Quantity cannot be negative")
	}

	for range maxCartRetries {

		cart, err := s.cartRepo.GetCartByUserID(ctx, userID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return 0, appErrors.NotFoundError("Cart not found").WithError(err)
			}

			return 0, appErrors.DatabaseError("Failed to retrieve cart").WithError(err)
		}

		idx := cart.FindItem(req.ProductID)

		if req.Quantity == 0 {
			if idx < 0 {
				// Nothing to remove; the cart is already in the
				// requested state.
				return cart.ItemCount(), nil
			}

			cart.Items = append(cart.Items[:idx], cart.Items[idx+1:]...)
		} else {
			if idx < 0 {
				return 0, appErrors.NotFoundError("Item not found in cart")
			}

			cart.Items[idx].Quantity = req.Quantity
		}

		err = s.cartRepo.UpsertCart(ctx, cart)
		if errors.Is(err, repository.ErrVersionConflict) {
			continue
		}

		if err != nil {
			return 0, appErrors.DatabaseError("Failed to update cart").WithError(err)
		}

		return cart.ItemCount(), nil
	}

	return 0, appErrors.InternalError("Cart is being modified concurrently, please retry")
}

// RemoveItem is retry-safe: removing a product that is not in the cart
// succeeds without touching storage.
func (s *cartService) RemoveItem(ctx context.Context, userID, productID uuid.UUID) error {

	for range maxCartRetries {

		cart, err := s.cartRepo.GetCartByUserID(ctx, userID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return appErrors.NotFoundError("Cart not found").WithError(err)
			}

			return appErrors.DatabaseError("Failed to retrieve cart").WithError(err)
		}

		idx := cart.FindItem(productID)
		if idx < 0 {
			return nil
		}

		cart.Items = append(cart.Items[:idx], cart.Items[idx+1:]...)

		err = s.cartRepo.UpsertCart(ctx, cart)
		if errors.Is(err, repository.ErrVersionConflict) {
			continue
		}

		if err != nil {
			return appErrors.DatabaseError("Failed to update cart").WithError(err)
		}

		return nil
	}

	return appErrors.InternalError("Cart is being modified concurrently, please retry")
}

// ClearCart empties the cart, creating an empty cart record if none
// existed. It never fails with a not-found.
func (s *cartService) ClearCart(ctx context.Context, userID uuid.UUID) error {

	for range maxCartRetries {

		cart, err := s.getOrNewCart(ctx, userID)
		if err != nil {
			return err
		}

		cart.Items = []models.CartLineItem{}

		err = s.cartRepo.UpsertCart(ctx, cart)
		if errors.Is(err, repository.ErrVersionConflict) {
			continue
		}

		if err != nil {
			return appErrors.DatabaseError("Failed to clear cart").WithError(err)
		}

		return nil
	}

	return appErrors.InternalError("Cart is being modified concurrently, please retry")
}

// Checkout freezes the cart's contents into a new order and empties the
// cart in the same transaction, so neither side is ever visible alone.
func (s *cartService) Checkout(ctx context.Context, userID uuid.UUID) (*models.CheckoutResponse, error) {

	for range maxCartRetries {

		cart, err := s.cartRepo.GetCartByUserID(ctx, userID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return nil, appErrors.BadRequestError("Cart is empty")
			}

			return nil, appErrors.DatabaseError("Failed to retrieve cart").WithError(err)
		}

		if len(cart.Items) == 0 {
			return nil, appErrors.BadRequestError("Cart is empty")
		}

		order := &models.Order{
			ID:        uuid.New(),
			UserID:    userID,
			Items:     copyItems(cart.Items),
			Total:     calculateTotal(cart.Items),
			Status:    models.OrderStatusPending,
			CreatedAt: time.Now(),
		}

		err = s.orderRepo.CreateOrderFromCart(ctx, order, cart.Version)
		if errors.Is(err, repository.ErrVersionConflict) {
			continue
		}

		if err != nil {
			return nil, appErrors.DatabaseError("Failed to create order").WithError(err)
		}

		return &models.CheckoutResponse{
			OrderID: order.ID,
			Total:   order.Total,
			Message: "Order created successfully",
		}, nil
	}

	return nil, appErrors.InternalError("Cart is being modified concurrently, please retry")
}

func (s *cartService) ListOrders(ctx context.Context, userID uuid.UUID) ([]models.Order, error) {

	orders, err := s.orderRepo.ListOrdersByUser(ctx, userID)
	if err != nil {
		return nil, appErrors.DatabaseError("Failed to fetch orders").WithError(err)
	}

	if orders == nil {
		orders = []models.Order{}
	}

	return orders, nil
}

func (s *cartService) getOrNewCart(ctx context.Context, userID uuid.UUID) (*models.Cart, error) {

	cart, err := s.cartRepo.GetCartByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return &models.Cart{
				ID:     uuid.New(),
				UserID: userID,
				Items:  []models.CartLineItem{},
			}, nil
		}

		return nil, appErrors.DatabaseError("Failed to retrieve cart").WithError(err)
	}

	return cart, nil
}

// calculateTotal sums price × quantity with decimal arithmetic and
// rounds once, at the end, to 2 places.
func calculateTotal(items []models.CartLineItem) float64 {

	total := decimal.Zero

	for _, item := range items {
		line := decimal.NewFromFloat(item.Price).Mul(decimal.NewFromInt(int64(item.Quantity)))
		total = total.Add(line)
	}

	return total.Round(2).InexactFloat64()
}

func copyItems(items []models.CartLineItem) []models.OrderItem {

	orderItems := make([]models.OrderItem, 0, len(items))

	for _, item := range items {
		orderItems = append(orderItems, models.OrderItem{
			ProductID: item.ProductID,
			Name:      item.Name,
			Image:     item.Image,
			Price:     item.Price,
			Quantity:  item.Quantity,
		})
	}

	return orderItems
}
