package service_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	appErrors "github.com/1804coins/storefront-api/internal/errors"
	"github.com/1804coins/storefront-api/internal/models"
	repository "github.com/1804coins/storefront-api/internal/repositories"
	"github.com/1804coins/storefront-api/internal/repositories/mocks"
	service "github.com/1804coins/storefront-api/internal/services"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func setupCartServiceTest(t *testing.T) (service.CartService, *mocks.CartRepository, *mocks.ProductRepository, *mocks.OrderRepository) {
	t.Helper()

	mockCartRepo := mocks.NewCartRepository(t)
	mockProductRepo := mocks.NewProductRepository(t)
	mockOrderRepo := mocks.NewOrderRepository(t)
	cartService := service.NewCartService(mockCartRepo, mockProductRepo, mockOrderRepo)

	return cartService, mockCartRepo, mockProductRepo, mockOrderRepo
}

func testProduct(price float64, salePrice *float64) *models.Product {
	return &models.Product{
		ID:        uuid.New(),
		Name:      "1804 Draped Bust Dollar",
		Image:     "/images/draped-bust.jpg",
		Price:     price,
		SalePrice: salePrice,
	}
}

func cartWith(userID uuid.UUID, version int64, items ...models.CartLineItem) *models.Cart {
	return &models.Cart{
		ID:      uuid.New(),
		UserID:  userID,
		Items:   items,
		Version: version,
	}
}

func TestGetCart(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	t.Run("Success - Cart Found", func(t *testing.T) {
		// Arrange
		cartService, mockCartRepo, _, _ := setupCartServiceTest(t)
		productID := uuid.New()
		existingCart := cartWith(userID, 3, models.CartLineItem{
			ProductID: productID,
			Name:      "1804 Draped Bust Dollar",
			Price:     19.99,
			Quantity:  3,
		})
		mockCartRepo.On("GetCartByUserID", ctx, userID).Return(existingCart, nil).Once()

		// Act
		resp, err := cartService.GetCart(ctx, userID)

		// Assert
		assert.NoError(t, err)
		assert.Len(t, resp.Items, 1)
		assert.Equal(t, 3, resp.ItemCount)
		assert.InDelta(t, 59.97, resp.Total, 0.0001)
	})

	t.Run("Success - Missing Cart Reads As Empty", func(t *testing.T) {
		// Arrange
		cartService, mockCartRepo, _, _ := setupCartServiceTest(t)
		mockCartRepo.On("GetCartByUserID", ctx, userID).Return(nil, sql.ErrNoRows).Once()

		// Act
		resp, err := cartService.GetCart(ctx, userID)

		// Assert
		assert.NoError(t, err)
		assert.NotNil(t, resp.Items)
		assert.Empty(t, resp.Items)
		assert.Equal(t, 0, resp.ItemCount)
		assert.Equal(t, float64(0), resp.Total)
	})

	t.Run("Success - Total Rounds Once At The End", func(t *testing.T) {
		// Arrange
		cartService, mockCartRepo, _, _ := setupCartServiceTest(t)
		existingCart := cartWith(userID, 1,
			models.CartLineItem{ProductID: uuid.New(), Price: 0.1, Quantity: 3},
			models.CartLineItem{ProductID: uuid.New(), Price: 0.2, Quantity: 3},
		)
		mockCartRepo.On("GetCartByUserID", ctx, userID).Return(existingCart, nil).Once()

		// Act
		resp, err := cartService.GetCart(ctx, userID)

		// Assert
		assert.NoError(t, err)
		assert.Equal(t, 0.9, resp.Total)
	})

	t.Run("Failure - Database Error", func(t *testing.T) {
		// Arrange
		cartService, mockCartRepo, _, _ := setupCartServiceTest(t)
		dbError := errors.New("database connection failed")
		mockCartRepo.On("GetCartByUserID", ctx, userID).Return(nil, dbError).Once()

		// Act
		resp, err := cartService.GetCart(ctx, userID)

		// Assert
		assert.Error(t, err)
		assert.Nil(t, resp)

		var appErr *appErrors.AppError
		assert.ErrorAs(t, err, &appErr)
		assert.Equal(t, appErrors.ErrCodeDatabaseError, appErr.Code)
	})
}

func TestAddItem(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	t.Run("Success - New Item Captures Effective Price", func(t *testing.T) {
		// Arrange
		cartService, mockCartRepo, mockProductRepo, _ := setupCartServiceTest(t)
		sale := 149.99
		product := testProduct(199.99, &sale)
		req := &models.AddToCartRequest{ProductID: product.ID, Quantity: 2}

		mockProductRepo.On("GetProductByID", ctx, product.ID).Return(product, nil).Once()
		mockCartRepo.On("GetCartByUserID", ctx, userID).Return(nil, sql.ErrNoRows).Once()
		mockCartRepo.On("UpsertCart", ctx, mock.MatchedBy(func(cart *models.Cart) bool {
			return len(cart.Items) == 1 &&
				cart.Items[0].Price == 149.99 &&
				cart.Items[0].Quantity == 2 &&
				cart.Version == 0
		})).Return(nil).Once()

		// Act
		count, err := cartService.AddItem(ctx, userID, req)

		// Assert
		assert.NoError(t, err)
		assert.Equal(t, 2, count)
	})

	t.Run("Success - Existing Item Merges Quantity And Keeps Price", func(t *testing.T) {
		// Arrange
		cartService, mockCartRepo, mockProductRepo, _ := setupCartServiceTest(t)
		product := testProduct(199.99, nil)
		req := &models.AddToCartRequest{ProductID: product.ID, Quantity: 3}

		// The line item was captured at an older price; a later add must
		// not overwrite it with the product's current price.
		existingCart := cartWith(userID, 4, models.CartLineItem{
			ProductID: product.ID,
			Name:      product.Name,
			Price:     149.99,
			Quantity:  2,
		})

		mockProductRepo.On("GetProductByID", ctx, product.ID).Return(product, nil).Once()
		mockCartRepo.On("GetCartByUserID", ctx, userID).Return(existingCart, nil).Once()
		mockCartRepo.On("UpsertCart", ctx, mock.MatchedBy(func(cart *models.Cart) bool {
			return len(cart.Items) == 1 &&
				cart.Items[0].Quantity == 5 &&
				cart.Items[0].Price == 149.99
		})).Return(nil).Once()

		// Act
		count, err := cartService.AddItem(ctx, userID, req)

		// Assert
		assert.NoError(t, err)
		assert.Equal(t, 5, count)
	})

	t.Run("Success - Retries After Version Conflict", func(t *testing.T) {
		// Arrange
		cartService, mockCartRepo, mockProductRepo, _ := setupCartServiceTest(t)
		product := testProduct(49.99, nil)
		req := &models.AddToCartRequest{ProductID: product.ID, Quantity: 1}

		mockProductRepo.On("GetProductByID", ctx, product.ID).Return(product, nil).Once()
		mockCartRepo.On("GetCartByUserID", ctx, userID).Return(cartWith(userID, 1), nil).Once()
		mockCartRepo.On("UpsertCart", ctx, mock.Anything).Return(repository.ErrVersionConflict).Once()
		mockCartRepo.On("GetCartByUserID", ctx, userID).Return(cartWith(userID, 2), nil).Once()
		mockCartRepo.On("UpsertCart", ctx, mock.Anything).Return(nil).Once()

		// Act
		count, err := cartService.AddItem(ctx, userID, req)

		// Assert
		assert.NoError(t, err)
		assert.Equal(t, 1, count)
	})

	t.Run("Failure - Retries Exhausted", func(t *testing.T) {
		// Arrange
		cartService, mockCartRepo, mockProductRepo, _ := setupCartServiceTest(t)
		product := testProduct(49.99, nil)
		req := &models.AddToCartRequest{ProductID: product.ID, Quantity: 1}

		mockProductRepo.On("GetProductByID", ctx, product.ID).Return(product, nil).Once()
		mockCartRepo.On("GetCartByUserID", ctx, userID).Return(cartWith(userID, 1), nil).Times(3)
		mockCartRepo.On("UpsertCart", ctx, mock.Anything).Return(repository.ErrVersionConflict).Times(3)

		// Act
		count, err := cartService.AddItem(ctx, userID, req)

		// Assert
		assert.Error(t, err)
		assert.Zero(t, count)

		var appErr *appErrors.AppError
		assert.ErrorAs(t, err, &appErr)
		assert.Equal(t, appErrors.ErrCodeInternal, appErr.Code)
	})

	t.Run("Failure - Invalid Quantity", func(t *testing.T) {
		// Arrange
		cartService, _, _, _ := setupCartServiceTest(t)
		req := &models.AddToCartRequest{ProductID: uuid.New(), Quantity: 0}

		// Act
		count, err := cartService.AddItem(ctx, userID, req)

		// Assert
		assert.Error(t, err)
		assert.Zero(t, count)

		var appErr *appErrors.AppError
		assert.ErrorAs(t, err, &appErr)
		assert.Equal(t, appErrors.ErrCodeValidation, appErr.Code)
	})

	t.Run("Failure - Product Not Found Leaves Cart Untouched", func(t *testing.T) {
		// Arrange
		cartService, _, mockProductRepo, _ := setupCartServiceTest(t)
		productID := uuid.New()
		req := &models.AddToCartRequest{ProductID: productID, Quantity: 1}

		mockProductRepo.On("GetProductByID", ctx, productID).Return(nil, sql.ErrNoRows).Once()

		// Act
		count, err := cartService.AddItem(ctx, userID, req)

		// Assert
		assert.Error(t, err)
		assert.Zero(t, count)

		var appErr *appErrors.AppError
		assert.ErrorAs(t, err, &appErr)
		assert.Equal(t, appErrors.ErrCodeNotFound, appErr.Code)
	})
}

func TestUpdateItem(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	productID := uuid.New()

	t.Run("Success - Sets Quantity Absolutely", func(t *testing.T) {
		// Arrange
		cartService, mockCartRepo, _, _ := setupCartServiceTest(t)
		req := &models.UpdateCartRequest{ProductID: productID, Quantity: 7}
		existingCart := cartWith(userID, 2, models.CartLineItem{ProductID: productID, Price: 9.99, Quantity: 3})

		mockCartRepo.On("GetCartByUserID", ctx, userID).Return(existingCart, nil).Once()
		mockCartRepo.On("UpsertCart", ctx, mock.MatchedBy(func(cart *models.Cart) bool {
			return len(cart.Items) == 1 && cart.Items[0].Quantity == 7
		})).Return(nil).Once()

		// Act
		count, err := cartService.UpdateItem(ctx, userID, req)

		// Assert
		assert.NoError(t, err)
		assert.Equal(t, 7, count)
	})

	t.Run("Success - Zero Quantity Removes Item", func(t *testing.T) {
		// Arrange
		cartService, mockCartRepo, _, _ := setupCartServiceTest(t)
		req := &models.UpdateCartRequest{ProductID: productID, Quantity: 0}
		otherID := uuid.New()
		existingCart := cartWith(userID, 2,
			models.CartLineItem{ProductID: productID, Price: 9.99, Quantity: 3},
			models.CartLineItem{ProductID: otherID, Price: 4.99, Quantity: 1},
		)

		mockCartRepo.On("GetCartByUserID", ctx, userID).Return(existingCart, nil).Once()
		mockCartRepo.On("UpsertCart", ctx, mock.MatchedBy(func(cart *models.Cart) bool {
			return len(cart.Items) == 1 && cart.Items[0].ProductID == otherID
		})).Return(nil).Once()

		// Act
		count, err := cartService.UpdateItem(ctx, userID, req)

		// Assert
		assert.NoError(t, err)
		assert.Equal(t, 1, count)
	})

	t.Run("Success - Zero Quantity On Absent Item Is A No-Op", func(t *testing.T) {
		// Arrange
		cartService, mockCartRepo, _, _ := setupCartServiceTest(t)
		req := &models.UpdateCartRequest{ProductID: uuid.New(), Quantity: 0}
		existingCart := cartWith(userID, 2, models.CartLineItem{ProductID: productID, Price: 9.99, Quantity: 3})

		mockCartRepo.On("GetCartByUserID", ctx, userID).Return(existingCart, nil).Once()

		// Act
		count, err := cartService.UpdateItem(ctx, userID, req)

		// Assert
		assert.NoError(t, err)
		assert.Equal(t, 3, count)
		mockCartRepo.AssertNotCalled(t, "UpsertCart", mock.Anything, mock.Anything)
	})

	t.Run("Failure - Positive Quantity On Absent Item", func(t *testing.T) {
		// Arrange
		cartService, mockCartRepo, _, _ := setupCartServiceTest(t)
		req := &models.UpdateCartRequest{ProductID: uuid.New(), Quantity: 2}
		existingCart := cartWith(userID, 2, models.CartLineItem{ProductID: productID, Price: 9.99, Quantity: 3})

		mockCartRepo.On("GetCartByUserID", ctx, userID).Return(existingCart, nil).Once()

		// Act
		count, err := cartService.UpdateItem(ctx, userID, req)

		// Assert
		assert.Error(t, err)
		assert.Zero(t, count)

		var appErr *appErrors.AppError
		assert.ErrorAs(t, err, &appErr)
		assert.Equal(t, appErrors.ErrCodeNotFound, appErr.Code)
	})

	t.Run("Failure - Negative Quantity", func(t *testing.T) {
		// Arrange
		cartService, _, _, _ := setupCartServiceTest(t)
		req := &models.UpdateCartRequest{ProductID: productID, Quantity: -1}

		// Act
		count, err := cartService.UpdateItem(ctx, userID, req)

		// Assert
		assert.Error(t, err)
		assert.Zero(t, count)

		var appErr *appErrors.AppError
		assert.ErrorAs(t, err, &appErr)
		assert.Equal(t, appErrors.ErrCodeValidation, appErr.Code)
	})

	t.Run("Failure - Cart Not Found", func(t *testing.T) {
		// Arrange
		cartService, mockCartRepo, _, _ := setupCartServiceTest(t)
		req := &models.UpdateCartRequest{ProductID: productID, Quantity: 2}

		mockCartRepo.On("GetCartByUserID", ctx, userID).Return(nil, sql.ErrNoRows).Once()

		// Act
		count, err := cartService.UpdateItem(ctx, userID, req)

		// Assert
		assert.Error(t, err)
		assert.Zero(t, count)

		var appErr *appErrors.AppError
		assert.ErrorAs(t, err, &appErr)
		assert.Equal(t, appErrors.ErrCodeNotFound, appErr.Code)
	})
}

func TestRemoveItem(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	productID := uuid.New()

	t.Run("Success - Removes Item", func(t *testing.T) {
		// Arrange
		cartService, mockCartRepo, _, _ := setupCartServiceTest(t)
		existingCart := cartWith(userID, 2, models.CartLineItem{ProductID: productID, Price: 9.99, Quantity: 3})

		mockCartRepo.On("GetCartByUserID", ctx, userID).Return(existingCart, nil).Once()
		mockCartRepo.On("UpsertCart", ctx, mock.MatchedBy(func(cart *models.Cart) bool {
			return len(cart.Items) == 0
		})).Return(nil).Once()

		// Act
		err := cartService.RemoveItem(ctx, userID, productID)

		// Assert
		assert.NoError(t, err)
	})

	t.Run("Success - Absent Item Succeeds Without A Write", func(t *testing.T) {
		// Arrange
		cartService, mockCartRepo, _, _ := setupCartServiceTest(t)
		existingCart := cartWith(userID, 2, models.CartLineItem{ProductID: productID, Price: 9.99, Quantity: 3})

		mockCartRepo.On("GetCartByUserID", ctx, userID).Return(existingCart, nil).Once()

		// Act
		err := cartService.RemoveItem(ctx, userID, uuid.New())

		// Assert
		assert.NoError(t, err)
		mockCartRepo.AssertNotCalled(t, "UpsertCart", mock.Anything, mock.Anything)
	})

	t.Run("Failure - Cart Not Found", func(t *testing.T) {
		// Arrange
		cartService, mockCartRepo, _, _ := setupCartServiceTest(t)
		mockCartRepo.On("GetCartByUserID", ctx, userID).Return(nil, sql.ErrNoRows).Once()

		// Act
		err := cartService.RemoveItem(ctx, userID, productID)

		// Assert
		assert.Error(t, err)

		var appErr *appErrors.AppError
		assert.ErrorAs(t, err, &appErr)
		assert.Equal(t, appErrors.ErrCodeNotFound, appErr.Code)
	})
}

func TestClearCart(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	t.Run("Success - Empties Existing Cart", func(t *testing.T) {
		// Arrange
		cartService, mockCartRepo, _, _ := setupCartServiceTest(t)
		existingCart := cartWith(userID, 5, models.CartLineItem{ProductID: uuid.New(), Price: 9.99, Quantity: 3})

		mockCartRepo.On("GetCartByUserID", ctx, userID).Return(existingCart, nil).Once()
		mockCartRepo.On("UpsertCart", ctx, mock.MatchedBy(func(cart *models.Cart) bool {
			return len(cart.Items) == 0 && cart.Version == 5
		})).Return(nil).Once()

		// Act
		err := cartService.ClearCart(ctx, userID)

		// Assert
		assert.NoError(t, err)
	})

	t.Run("Success - Missing Cart Creates An Empty One", func(t *testing.T) {
		// Arrange
		cartService, mockCartRepo, _, _ := setupCartServiceTest(t)

		mockCartRepo.On("GetCartByUserID", ctx, userID).Return(nil, sql.ErrNoRows).Once()
		mockCartRepo.On("UpsertCart", ctx, mock.MatchedBy(func(cart *models.Cart) bool {
			return len(cart.Items) == 0 && cart.Version == 0 && cart.UserID == userID
		})).Return(nil).Once()

		// Act
		err := cartService.ClearCart(ctx, userID)

		// Assert
		assert.NoError(t, err)
	})
}

func TestCheckout(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	t.Run("Success - Freezes Cart Into Pending Order", func(t *testing.T) {
		// Arrange
		cartService, mockCartRepo, _, mockOrderRepo := setupCartServiceTest(t)
		existingCart := cartWith(userID, 6,
			models.CartLineItem{ProductID: uuid.New(), Name: "1804 Draped Bust Dollar", Price: 149.99, Quantity: 2},
			models.CartLineItem{ProductID: uuid.New(), Name: "1933 Double Eagle", Price: 89.5, Quantity: 1},
		)

		mockCartRepo.On("GetCartByUserID", ctx, userID).Return(existingCart, nil).Once()
		mockOrderRepo.On("CreateOrderFromCart", ctx, mock.MatchedBy(func(order *models.Order) bool {
			return order.UserID == userID &&
				order.Status == models.OrderStatusPending &&
				len(order.Items) == 2 &&
				order.Total == 389.48
		}), int64(6)).Return(nil).Once()

		// Act
		resp, err := cartService.Checkout(ctx, userID)

		// Assert
		assert.NoError(t, err)
		assert.NotEqual(t, uuid.Nil, resp.OrderID)
		assert.Equal(t, 389.48, resp.Total)
	})

	t.Run("Success - Retries After Concurrent Cart Write", func(t *testing.T) {
		// Arrange
		cartService, mockCartRepo, _, mockOrderRepo := setupCartServiceTest(t)
		staleCart := cartWith(userID, 6, models.CartLineItem{ProductID: uuid.New(), Price: 10, Quantity: 1})
		freshCart := cartWith(userID, 7, models.CartLineItem{ProductID: uuid.New(), Price: 10, Quantity: 2})

		mockCartRepo.On("GetCartByUserID", ctx, userID).Return(staleCart, nil).Once()
		mockOrderRepo.On("CreateOrderFromCart", ctx, mock.Anything, int64(6)).Return(repository.ErrVersionConflict).Once()
		mockCartRepo.On("GetCartByUserID", ctx, userID).Return(freshCart, nil).Once()
		mockOrderRepo.On("CreateOrderFromCart", ctx, mock.MatchedBy(func(order *models.Order) bool {
			return order.Total == 20.0
		}), int64(7)).Return(nil).Once()

		// Act
		resp, err := cartService.Checkout(ctx, userID)

		// Assert
		assert.NoError(t, err)
		assert.Equal(t, 20.0, resp.Total)
	})

	t.Run("Failure - Empty Cart", func(t *testing.T) {
		// Arrange
		cartService, mockCartRepo, _, _ := setupCartServiceTest(t)
		mockCartRepo.On("GetCartByUserID", ctx, userID).Return(cartWith(userID, 1), nil).Once()

		// Act
		resp, err := cartService.Checkout(ctx, userID)

		// Assert
		assert.Error(t, err)
		assert.Nil(t, resp)

		var appErr *appErrors.AppError
		assert.ErrorAs(t, err, &appErr)
		assert.Equal(t, appErrors.ErrCodeBadRequest, appErr.Code)
	})

	t.Run("Failure - Missing Cart Reads As Empty", func(t *testing.T) {
		// Arrange
		cartService, mockCartRepo, _, _ := setupCartServiceTest(t)
		mockCartRepo.On("GetCartByUserID", ctx, userID).Return(nil, sql.ErrNoRows).Once()

		// Act
		resp, err := cartService.Checkout(ctx, userID)

		// Assert
		assert.Error(t, err)
		assert.Nil(t, resp)

		var appErr *appErrors.AppError
		assert.ErrorAs(t, err, &appErr)
		assert.Equal(t, appErrors.ErrCodeBadRequest, appErr.Code)
	})
}

func TestListOrders(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	t.Run("Success - No Orders Returns Empty Slice", func(t *testing.T) {
		// Arrange
		cartService, _, _, mockOrderRepo := setupCartServiceTest(t)
		mockOrderRepo.On("ListOrdersByUser", ctx, userID).Return(nil, nil).Once()

		// Act
		orders, err := cartService.ListOrders(ctx, userID)

		// Assert
		assert.NoError(t, err)
		assert.NotNil(t, orders)
		assert.Empty(t, orders)
	})

	t.Run("Success - Returns Orders", func(t *testing.T) {
		// Arrange
		cartService, _, _, mockOrderRepo := setupCartServiceTest(t)
		existing := []models.Order{{ID: uuid.New(), UserID: userID, Total: 42, Status: models.OrderStatusPending}}
		mockOrderRepo.On("ListOrdersByUser", ctx, userID).Return(existing, nil).Once()

		// Act
		orders, err := cartService.ListOrders(ctx, userID)

		// Assert
		assert.NoError(t, err)
		assert.Len(t, orders, 1)
		assert.Equal(t, models.OrderStatusPending, orders[0].Status)
	})
}
