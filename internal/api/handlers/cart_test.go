package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/1804coins/storefront-api/internal/api/handlers"
	appErrors "github.com/1804coins/storefront-api/internal/errors"
	"github.com/1804coins/storefront-api/internal/models"
	"github.com/1804coins/storefront-api/internal/services/mocks"
	"github.com/1804coins/storefront-api/internal/testutils"
	"github.com/1804coins/storefront-api/internal/utils/response"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func setupCartTest(t *testing.T) (*mocks.CartService, *handlers.CartHandler) {
	t.Helper()

	mockCartService := mocks.NewCartService(t)
	cartHandler := handlers.NewCartHandler(mockCartService)

	return mockCartService, cartHandler
}

func TestGetCartHandler(t *testing.T) {
	t.Run("Success - Retrieve Cart", func(t *testing.T) {
		// Arrange
		mockCartService, cartHandler := setupCartTest(t)
		userID := uuid.New()
		req := testutils.CreateTestRequestWithContext("GET", "/api/v1/cart", nil, userID, nil)
		recorder := httptest.NewRecorder()

		mockCart := &models.CartResponse{
			Items:     []models.CartLineItem{{ProductID: uuid.New(), Price: 19.99, Quantity: 2}},
			Total:     39.98,
			ItemCount: 2,
		}
		mockCartService.On("GetCart", mock.Anything, userID).Return(mockCart, nil).Once()

		// Act
		handler := cartHandler.GetCart()
		handler(recorder, req)

		// Assert
		assert.Equal(t, http.StatusOK, recorder.Code)

		var resp *response.APIResponse
		err := json.Unmarshal(recorder.Body.Bytes(), &resp)
		assert.NoError(t, err)
		assert.True(t, resp.Success)
		assert.NotNil(t, resp.Data)
	})

	t.Run("Failure - Unauthorized", func(t *testing.T) {
		// Arrange
		_, cartHandler := setupCartTest(t)
		req := testutils.CreateTestRequestWithoutContext("GET", "/api/v1/cart", nil, nil)
		recorder := httptest.NewRecorder()

		// Act
		handler := cartHandler.GetCart()
		handler(recorder, req)

		// Assert
		assert.Equal(t, http.StatusUnauthorized, recorder.Code)

		var resp *response.APIResponse
		err := json.Unmarshal(recorder.Body.Bytes(), &resp)
		assert.NoError(t, err)
		assert.False(t, resp.Success)
		assert.Contains(t, resp.Error.Message, "Authentication required")
	})
}

func TestAddItemHandler(t *testing.T) {
	t.Run("Success - Add Item", func(t *testing.T) {
		// Arrange
		mockCartService, cartHandler := setupCartTest(t)
		userID := uuid.New()

		addRequest := models.AddToCartRequest{ProductID: uuid.New(), Quantity: 2}
		requestBody, _ := json.Marshal(addRequest)

		req := testutils.CreateTestRequestWithContext("POST", "/api/v1/cart/add", bytes.NewBuffer(requestBody), userID, nil)
		recorder := httptest.NewRecorder()

		mockCartService.On("AddItem", mock.Anything, userID, mock.MatchedBy(func(r *models.AddToCartRequest) bool {
			return r.ProductID == addRequest.ProductID && r.Quantity == 2
		})).Return(2, nil).Once()

		// Act
		handler := cartHandler.AddItem()
		handler(recorder, req)

		// Assert
		assert.Equal(t, http.StatusOK, recorder.Code)

		var resp *response.APIResponse
		err := json.Unmarshal(recorder.Body.Bytes(), &resp)
		assert.NoError(t, err)
		assert.True(t, resp.Success)
	})

	t.Run("Failure - Invalid Request Body", func(t *testing.T) {
		// Arrange
		_, cartHandler := setupCartTest(t)
		userID := uuid.New()

		invalidJSON := []byte(`{"product_id": "not-a-uuid", "quantity": "not-a-number"}`)
		req := testutils.CreateTestRequestWithContext("POST", "/api/v1/cart/add", bytes.NewBuffer(invalidJSON), userID, nil)
		recorder := httptest.NewRecorder()

		// Act
		handler := cartHandler.AddItem()
		handler(recorder, req)

		// Assert
		assert.Equal(t, http.StatusBadRequest, recorder.Code)
	})

	t.Run("Failure - Product Not Found", func(t *testing.T) {
		// Arrange
		mockCartService, cartHandler := setupCartTest(t)
		userID := uuid.New()

		addRequest := models.AddToCartRequest{ProductID: uuid.New(), Quantity: 1}
		requestBody, _ := json.Marshal(addRequest)

		req := testutils.CreateTestRequestWithContext("POST", "/api/v1/cart/add", bytes.NewBuffer(requestBody), userID, nil)
		recorder := httptest.NewRecorder()

		mockCartService.On("AddItem", mock.Anything, userID, mock.Anything).
			Return(0, appErrors.NotFoundError("Product not found")).Once()

		// Act
		handler := cartHandler.AddItem()
		handler(recorder, req)

		// Assert
		assert.Equal(t, http.StatusNotFound, recorder.Code)
	})
}

func TestUpdateItemHandler(t *testing.T) {
	t.Run("Success - Set Quantity", func(t *testing.T) {
		// Arrange
		mockCartService, cartHandler := setupCartTest(t)
		userID := uuid.New()

		updateRequest := models.UpdateCartRequest{ProductID: uuid.New(), Quantity: 5}
		requestBody, _ := json.Marshal(updateRequest)

		req := testutils.CreateTestRequestWithContext("PUT", "/api/v1/cart/update", bytes.NewBuffer(requestBody), userID, nil)
		recorder := httptest.NewRecorder()

		mockCartService.On("UpdateItem", mock.Anything, userID, mock.MatchedBy(func(r *models.UpdateCartRequest) bool {
			return r.ProductID == updateRequest.ProductID && r.Quantity == 5
		})).Return(5, nil).Once()

		// Act
		handler := cartHandler.UpdateItem()
		handler(recorder, req)

		// Assert
		assert.Equal(t, http.StatusOK, recorder.Code)
	})

	t.Run("Failure - Item Not Found", func(t *testing.T) {
		// Arrange
		mockCartService, cartHandler := setupCartTest(t)
		userID := uuid.New()

		updateRequest := models.UpdateCartRequest{ProductID: uuid.New(), Quantity: 5}
		requestBody, _ := json.Marshal(updateRequest)

		req := testutils.CreateTestRequestWithContext("PUT", "/api/v1/cart/update", bytes.NewBuffer(requestBody), userID, nil)
		recorder := httptest.NewRecorder()

		mockCartService.On("UpdateItem", mock.Anything, userID, mock.Anything).
			Return(0, appErrors.NotFoundError("Item not found in cart")).Once()

		// Act
		handler := cartHandler.UpdateItem()
		handler(recorder, req)

		// Assert
		assert.Equal(t, http.StatusNotFound, recorder.Code)
	})
}

func TestRemoveItemHandler(t *testing.T) {
	t.Run("Success - Remove Item", func(t *testing.T) {
		// Arrange
		mockCartService, cartHandler := setupCartTest(t)
		userID := uuid.New()
		productID := uuid.New()

		req := testutils.CreateTestRequestWithContext("DELETE", "/api/v1/cart/remove/"+productID.String(), nil, userID,
			map[string]string{"productId": productID.String()})
		recorder := httptest.NewRecorder()

		mockCartService.On("RemoveItem", mock.Anything, userID, productID).Return(nil).Once()

		// Act
		handler := cartHandler.RemoveItem()
		handler(recorder, req)

		// Assert
		assert.Equal(t, http.StatusOK, recorder.Code)
	})

	t.Run("Failure - Invalid Product ID", func(t *testing.T) {
		// Arrange
		_, cartHandler := setupCartTest(t)
		userID := uuid.New()

		req := testutils.CreateTestRequestWithContext("DELETE", "/api/v1/cart/remove/not-a-uuid", nil, userID,
			map[string]string{"productId": "not-a-uuid"})
		recorder := httptest.NewRecorder()

		// Act
		handler := cartHandler.RemoveItem()
		handler(recorder, req)

		// Assert
		assert.Equal(t, http.StatusBadRequest, recorder.Code)
	})
}

func TestCheckoutHandler(t *testing.T) {
	t.Run("Success - Creates Order", func(t *testing.T) {
		// Arrange
		mockCartService, cartHandler := setupCartTest(t)
		userID := uuid.New()

		req := testutils.CreateTestRequestWithContext("POST", "/api/v1/cart/checkout", nil, userID, nil)
		recorder := httptest.NewRecorder()

		summary := &models.CheckoutResponse{OrderID: uuid.New(), Total: 299.98, Message: "Order created successfully"}
		mockCartService.On("Checkout", mock.Anything, userID).Return(summary, nil).Once()

		// Act
		handler := cartHandler.Checkout()
		handler(recorder, req)

		// Assert
		assert.Equal(t, http.StatusCreated, recorder.Code)

		var resp *response.APIResponse
		err := json.Unmarshal(recorder.Body.Bytes(), &resp)
		assert.NoError(t, err)
		assert.True(t, resp.Success)
	})

	t.Run("Failure - Empty Cart", func(t *testing.T) {
		// Arrange
		mockCartService, cartHandler := setupCartTest(t)
		userID := uuid.New()

		req := testutils.CreateTestRequestWithContext("POST", "/api/v1/cart/checkout", nil, userID, nil)
		recorder := httptest.NewRecorder()

		mockCartService.On("Checkout", mock.Anything, userID).
			Return(nil, appErrors.BadRequestError("Cart is empty")).Once()

		// Act
		handler := cartHandler.Checkout()
		handler(recorder, req)

		// Assert
		assert.Equal(t, http.StatusBadRequest, recorder.Code)
	})
}

func TestListOrdersHandler(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		// Arrange
		mockCartService, cartHandler := setupCartTest(t)
		userID := uuid.New()

		req := testutils.CreateTestRequestWithContext("GET", "/api/v1/cart/orders", nil, userID, nil)
		recorder := httptest.NewRecorder()

		orders := []models.Order{{ID: uuid.New(), UserID: userID, Total: 42, Status: models.OrderStatusPending}}
		mockCartService.On("ListOrders", mock.Anything, userID).Return(orders, nil).Once()

		// Act
		handler := cartHandler.ListOrders()
		handler(recorder, req)

		// Assert
		assert.Equal(t, http.StatusOK, recorder.Code)
	})
}
