package handlers_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/1804coins/storefront-api/internal/api/handlers"
	appErrors "github.com/1804coins/storefront-api/internal/errors"
	"github.com/1804coins/storefront-api/internal/models"
	"github.com/1804coins/storefront-api/internal/services/mocks"
	"github.com/1804coins/storefront-api/internal/testutils"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func setupProductTest(t *testing.T) (*mocks.ProductService, *handlers.ProductHandler) {
	t.Helper()

	mockProductService := mocks.NewProductService(t)
	productHandler := handlers.NewProductHandler(mockProductService)

	return mockProductService, productHandler
}

func TestListProductsHandler(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		// Arrange
		mockProductService, productHandler := setupProductTest(t)

		req := testutils.CreateTestRequestWithoutContext("GET", "/api/v1/products", nil, nil)
		recorder := httptest.NewRecorder()

		products := []*models.Product{
			{ID: uuid.New(), Name: "1804 Draped Bust Dollar", Price: 149.99, Status: "in-stock"},
			{ID: uuid.New(), Name: "1933 Double Eagle", Price: 89.5, Status: "limited"},
		}
		mockProductService.On("ListProducts", mock.Anything).Return(products, nil).Once()

		// Act
		handler := productHandler.ListProducts()
		handler(recorder, req)

		// Assert
		assert.Equal(t, http.StatusOK, recorder.Code)
	})

	t.Run("Failure - Service Error", func(t *testing.T) {
		// Arrange
		mockProductService, productHandler := setupProductTest(t)

		req := testutils.CreateTestRequestWithoutContext("GET", "/api/v1/products", nil, nil)
		recorder := httptest.NewRecorder()

		mockProductService.On("ListProducts", mock.Anything).
			Return(nil, appErrors.DatabaseError("Failed to list products")).Once()

		// Act
		handler := productHandler.ListProducts()
		handler(recorder, req)

		// Assert
		assert.Equal(t, http.StatusInternalServerError, recorder.Code)
	})
}

func TestGetProductHandler(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		// Arrange
		mockProductService, productHandler := setupProductTest(t)
		productID := uuid.New()

		req := testutils.CreateTestRequestWithoutContext("GET", "/api/v1/products/"+productID.String(), nil,
			map[string]string{"id": productID.String()})
		recorder := httptest.NewRecorder()

		product := &models.Product{ID: productID, Name: "1804 Draped Bust Dollar", Price: 149.99}
		mockProductService.On("GetProductByID", mock.Anything, productID).Return(product, nil).Once()

		// Act
		handler := productHandler.GetProduct()
		handler(recorder, req)

		// Assert
		assert.Equal(t, http.StatusOK, recorder.Code)
	})

	t.Run("Failure - Invalid ID", func(t *testing.T) {
		// Arrange
		_, productHandler := setupProductTest(t)

		req := testutils.CreateTestRequestWithoutContext("GET", "/api/v1/products/not-a-uuid", nil,
			map[string]string{"id": "not-a-uuid"})
		recorder := httptest.NewRecorder()

		// Act
		handler := productHandler.GetProduct()
		handler(recorder, req)

		// Assert
		assert.Equal(t, http.StatusBadRequest, recorder.Code)
	})

	t.Run("Failure - Not Found", func(t *testing.T) {
		// Arrange
		mockProductService, productHandler := setupProductTest(t)
		productID := uuid.New()

		req := testutils.CreateTestRequestWithoutContext("GET", "/api/v1/products/"+productID.String(), nil,
			map[string]string{"id": productID.String()})
		recorder := httptest.NewRecorder()

		mockProductService.On("GetProductByID", mock.Anything, productID).
			Return(nil, appErrors.NotFoundError("Product not found")).Once()

		// Act
		handler := productHandler.GetProduct()
		handler(recorder, req)

		// Assert
		assert.Equal(t, http.StatusNotFound, recorder.Code)
	})
}
