package handlers

import (
	"log/slog"
	"net/http"

	"github.com/1804coins/storefront-api/internal/api/middleware"
	"github.com/1804coins/storefront-api/internal/config"
	"github.com/1804coins/storefront-api/internal/errors"
	"github.com/1804coins/storefront-api/internal/models"
	service "github.com/1804coins/storefront-api/internal/services"
	"github.com/1804coins/storefront-api/internal/utils"
	"github.com/1804coins/storefront-api/internal/utils/response"
	"github.com/go-playground/validator/v10"
)

// AdminHandler owns catalog management and the contact inbox. Routes
// using it sit behind the admin middleware; CheckAdmin is the one
// exception, any authenticated caller may ask about their own status.
type AdminHandler struct {
	productService service.ProductService
	contactService service.ContactService
	security       *config.Security
	validator      *validator.Validate
}

func NewAdminHandler(productService service.ProductService, contactService service.ContactService, security *config.Security) *AdminHandler {
	return &AdminHandler{
		productService: productService,
		contactService: contactService,
		security:       security,
		validator:      validator.New(),
	}
}

func (h *AdminHandler) CreateProduct() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		var req models.CreateProductRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		product, err := h.productService.CreateProduct(r.Context(), &req)
		if err != nil {
			logger.Error("Failed to create product", slog.Any("error", err))
			response.Error(w, err)

			return
		}

		logger.Info("Product created", slog.String("productId", product.ID.String()))
		response.Success(w, http.StatusCreated, product)
	}
}

func (h *AdminHandler) UpdateProduct() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		id, err := utils.ParseID(r, "id")
		if err != nil {
			response.Error(w, err)

			return
		}

		var req models.UpdateProductRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		product, err := h.productService.UpdateProduct(r.Context(), id, &req)
		if err != nil {
			logger.Error("Failed to update product", slog.String("productId", id.String()), slog.Any("error", err))
			response.Error(w, err)

			return
		}

		response.Success(w, http.StatusOK, product)
	}
}

func (h *AdminHandler) DeleteProduct() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		id, err := utils.ParseID(r, "id")
		if err != nil {
			response.Error(w, err)

			return
		}

		if err := h.productService.DeleteProduct(r.Context(), id); err != nil {
			logger.Error("Failed to delete product", slog.String("productId", id.String()), slog.Any("error", err))
			response.Error(w, err)

			return
		}

		logger.Info("Product deleted", slog.String("productId", id.String()))
		response.Success(w, http.StatusOK, map[string]string{
			"message":    "Product deleted successfully",
			"product_id": id.String(),
		})
	}
}

func (h *AdminHandler) ListProducts() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		products, err := h.productService.ListProducts(r.Context())
		if err != nil {
			logger.Error("Failed to list products", slog.Any("error", err))
			response.Error(w, err)

			return
		}

		response.Success(w, http.StatusOK, products)
	}
}

func (h *AdminHandler) ListContacts() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		contacts, err := h.contactService.ListContacts(r.Context())
		if err != nil {
			logger.Error("Failed to list contact submissions", slog.Any("error", err))
			response.Error(w, err)

			return
		}

		response.Success(w, http.StatusOK, contacts)
	}
}

// CheckAdmin reports whether the caller's email is on the admin list.
func (h *AdminHandler) CheckAdmin() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		claims, ok := middleware.ClaimsFromContext(r.Context())
		if !ok {
			response.Error(w, errors.UnauthorizedError("Authentication required"))

			return
		}

		response.Success(w, http.StatusOK, models.AdminCheckResponse{
			IsAdmin: h.security.IsAdmin(claims.Email),
			Email:   claims.Email,
		})
	}
}
