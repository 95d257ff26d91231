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

type CommentHandler struct {
	commentService service.CommentService
	validator      *validator.Validate
}

func NewCommentHandler(commentService service.CommentService) *CommentHandler {
	return &CommentHandler{commentService: commentService, validator: validator.New()}
}

// ListComments is public; anyone can read product comments.
func (h *CommentHandler) ListComments() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		productID, err := utils.ParseID(r, "id")
		if err != nil {
			response.Error(w, err)

			return
		}

		comments, err := h.commentService.ListComments(r.Context(), productID)
		if err != nil {
			logger.Error("Failed to list comments", slog.String("productId", productID.String()), slog.Any("error", err))
			response.Error(w, err)

			return
		}

		response.Success(w, http.StatusOK, comments)
	}
}

func (h *CommentHandler) CreateComment() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		claims, ok := middleware.ClaimsFromContext(r.Context())
		if !ok {
			logger.Warn("Unauthorized comment attempt")
			response.Error(w, errors.UnauthorizedError("Authentication required"))

			return
		}

		productID, err := utils.ParseID(r, "id")
		if err != nil {
			response.Error(w, err)

			return
		}

		var req models.CreateCommentRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		comment, err := h.commentService.CreateComment(r.Context(), productID, claims, &req)
		if err != nil {
			logger.Error("Failed to create comment", slog.String("productId", productID.String()), slog.Any("error", err))
			response.Error(w, err)

			return
		}

		response.Success(w, http.StatusCreated, comment)
	}
}

func (h *CommentHandler) ToggleLike() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		claims, ok := middleware.ClaimsFromContext(r.Context())
		if !ok {
			logger.Warn("Unauthorized like attempt")
			response.Error(w, errors.UnauthorizedError("Authentication required"))

			return
		}

		commentID, err := utils.ParseID(r, "id")
		if err != nil {
			response.Error(w, err)

			return
		}

		likes, err := h.commentService.ToggleLike(r.Context(), commentID, claims.UserID)
		if err != nil {
			logger.Error("Failed to toggle like", slog.String("commentId", commentID.String()), slog.Any("error", err))
			response.Error(w, err)

			return
		}

		response.Success(w, http.StatusOK, models.LikeResponse{Likes: likes})
	}
}
