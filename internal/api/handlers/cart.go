package handlers

import (
	"log/slog"
	"net/http"

	"github.com/1804coins/storefront-api/internal/api/middleware"
	"github.com/1804coins/storefront-api/internal/errors"
	"github.com/1804coins/storefront-api/internal/models"
	service "github.com/1804coins/storefront-api/internal/services"
	"github.com/1804coins/storefront-api/internal/utils"
	"github.com/1804coins/storefront-api/internal/utils/response"
	"github.com/go-playground/validator/v10"
)

type CartHandler struct {
	cartService service.CartService
	validator   *validator.Validate
}

func NewCartHandler(cartService service.CartService) *CartHandler {
	return &CartHandler{cartService: cartService, validator: validator.New()}
}

// GetCart godoc
//	@Summary		Get the caller's cart
//	@Description	Returns the cart's line items, total and item count. An absent cart reads as empty.
//	@Tags			Cart
//	@Produce		json
//	@Success		200	{object}	models.CartResponse
//	@Failure		401	{object}	response.ErrorResponse
//	@Security		BearerAuth
//	@Router			/cart [get]
func (h *CartHandler) GetCart() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		claims, ok := middleware.ClaimsFromContext(r.Context())
		if !ok {
			logger.Warn("Unauthorized cart access attempt")
			response.Error(w, errors.UnauthorizedError("Authentication required"))

			return
		}

		cart, err := h.cartService.GetCart(r.Context(), claims.UserID)
		if err != nil {
			logger.Error("Failed to get cart", slog.Any("error", err))
			response.Error(w, err)

			return
		}

		response.Success(w, http.StatusOK, cart)
	}
}

// AddItem godoc
//	@Summary		Add a product to the cart
//	@Description	Merges the quantity into an existing line item or appends a new one at the product's current effective price.
//	@Tags			Cart
//	@Accept			json
//	@Produce		json
//	@Param			item	body		models.AddToCartRequest	true	"Product and quantity"
//	@Success		200		{object}	models.CartMutationResponse
//	@Failure		400		{object}	response.ErrorResponse	"Invalid quantity"
//	@Failure		404		{object}	response.ErrorResponse	"Product not found"
//	@Security		BearerAuth
//	@Router			/cart/add [post]
func (h *CartHandler) AddItem() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		claims, ok := middleware.ClaimsFromContext(r.Context())
		if !ok {
			logger.Warn("Unauthorized cart mutation attempt")
			response.Error(w, errors.UnauthorizedError("Authentication required"))

			return
		}

		var req models.AddToCartRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		itemCount, err := h.cartService.AddItem(r.Context(), claims.UserID, &req)
		if err != nil {
			logger.Error("Failed to add item to cart",
				slog.String("productId", req.ProductID.String()),
				slog.Any("error", err))
			response.Error(w, err)

			return
		}

		logger.Info("Item added to cart", slog.String("productId", req.ProductID.String()))
		response.Success(w, http.StatusOK, models.CartMutationResponse{
			Message:   "Item added to cart",
			ItemCount: itemCount,
		})
	}
}

// UpdateItem godoc
//	@Summary		Set a line item's quantity
//	@Description	Sets the quantity absolutely. Quantity 0 removes the line item.
//	@Tags			Cart
//	@Accept			json
//	@Produce		json
//	@Param			item	body		models.UpdateCartRequest	true	"Product and new quantity"
//	@Success		200		{object}	models.CartMutationResponse
//	@Failure		400		{object}	response.ErrorResponse	"Negative quantity"
//	@Failure		404		{object}	response.ErrorResponse	"Cart or item not found"
//	@Security		BearerAuth
//	@Router			/cart/update [put]
func (h *CartHandler) UpdateItem() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		claims, ok := middleware.ClaimsFromContext(r.Context())
		if !ok {
			logger.Warn("Unauthorized cart mutation attempt")
			response.Error(w, errors.UnauthorizedError("Authentication required"))

			return
		}

		var req models.UpdateCartRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		itemCount, err := h.cartService.UpdateItem(r.Context(), claims.UserID, &req)
		if err != nil {
			logger.Error("Failed to update cart item",
				slog.String("productId", req.ProductID.String()),
				slog.Any("error", err))
			response.Error(w, err)

			return
		}

		response.Success(w, http.StatusOK, models.CartMutationResponse{
			Message:   "Cart updated",
			ItemCount: itemCount,
		})
	}
}

// RemoveItem godoc
//	@Summary		Remove a product from the cart
//	@Description	Removing a product that is not in the cart still succeeds, so client retries are safe.
//	@Tags			Cart
//	@Produce		json
//	@Param			productId	path		string	true	"Product ID (UUID)"
//	@Success		200			{object}	models.CartMutationResponse
//	@Failure		404			{object}	response.ErrorResponse	"Cart not found"
//	@Security		BearerAuth
//	@Router			/cart/remove/{productId} [delete]
func (h *CartHandler) RemoveItem() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		claims, ok := middleware.ClaimsFromContext(r.Context())
		if !ok {
			logger.Warn("Unauthorized cart mutation attempt")
			response.Error(w, errors.UnauthorizedError("Authentication required"))

			return
		}

		productID, err := utils.ParseID(r, "productId")
		if err != nil {
			response.Error(w, err)

			return
		}

		if err := h.cartService.RemoveItem(r.Context(), claims.UserID, productID); err != nil {
			logger.Error("Failed to remove cart item",
				slog.String("productId", productID.String()),
				slog.Any("error", err))
			response.Error(w, err)

			return
		}

		response.Success(w, http.StatusOK, models.CartMutationResponse{Message: "Item removed from cart"})
	}
}

// ClearCart godoc
//	@Summary		Empty the cart
//	@Tags			Cart
//	@Produce		json
//	@Success		200	{object}	models.CartMutationResponse
//	@Security		BearerAuth
//	@Router			/cart/clear [delete]
func (h *CartHandler) ClearCart() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		claims, ok := middleware.ClaimsFromContext(r.Context())
		if !ok {
			logger.Warn("Unauthorized cart mutation attempt")
			response.Error(w, errors.UnauthorizedError("Authentication required"))

			return
		}

		if err := h.cartService.ClearCart(r.Context(), claims.UserID); err != nil {
			logger.Error("Failed to clear cart", slog.Any("error", err))
			response.Error(w, err)

			return
		}

		response.Success(w, http.StatusOK, models.CartMutationResponse{Message: "Cart cleared"})
	}
}

// Checkout godoc
//	@Summary		Convert the cart into an order
//	@Description	Creates an immutable order from the cart's contents and empties the cart in the same transaction.
//	@Tags			Cart
//	@Produce		json
//	@Success		201	{object}	models.CheckoutResponse
//	@Failure		400	{object}	response.ErrorResponse	"Cart is empty"
//	@Security		BearerAuth
//	@Router			/cart/checkout [post]
func (h *CartHandler) Checkout() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		claims, ok := middleware.ClaimsFromContext(r.Context())
		if !ok {
			logger.Warn("Unauthorized checkout attempt")
			response.Error(w, errors.UnauthorizedError("Authentication required"))

			return
		}

		summary, err := h.cartService.Checkout(r.Context(), claims.UserID)
		if err != nil {
			logger.Error("Checkout failed", slog.Any("error", err))
			response.Error(w, err)

			return
		}

		logger.Info("Order created", slog.String("orderId", summary.OrderID.String()))
		response.Success(w, http.StatusCreated, summary)
	}
}

// ListOrders godoc
//	@Summary		List the caller's orders
//	@Description	Orders are returned newest first.
//	@Tags			Cart
//	@Produce		json
//	@Success		200	{array}	models.Order
//	@Security		BearerAuth
//	@Router			/cart/orders [get]
func (h *CartHandler) ListOrders() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		claims, ok := middleware.ClaimsFromContext(r.Context())
		if !ok {
			logger.Warn("Unauthorized order listing attempt")
			response.Error(w, errors.UnauthorizedError("Authentication required"))

			return
		}

		orders, err := h.cartService.ListOrders(r.Context(), claims.UserID)
		if err != nil {
			logger.Error("Failed to list orders", slog.Any("error", err))
			response.Error(w, err)

			return
		}

		response.Success(w, http.StatusOK, orders)
	}
}
