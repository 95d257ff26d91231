package handlers

import (
	"log/slog"
	"net/http"

	"github.com/1804coins/storefront-api/internal/api/middleware"
	"github.com/1804coins/storefront-api/internal/models"
	service "github.com/1804coins/storefront-api/internal/services"
	"github.com/1804coins/storefront-api/internal/utils"
	"github.com/1804coins/storefront-api/internal/utils/response"
	"github.com/go-playground/validator/v10"
)

type ContactHandler struct {
	contactService service.ContactService
	validator      *validator.Validate
}

func NewContactHandler(contactService service.ContactService) *ContactHandler {
	return &ContactHandler{contactService: contactService, validator: validator.New()}
}

func (h *ContactHandler) SubmitContact() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		var req models.ContactRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		contact, err := h.contactService.SubmitContact(r.Context(), &req)
		if err != nil {
			logger.Error("Failed to store contact submission", slog.Any("error", err))
			response.Error(w, err)

			return
		}

		logger.Info("Contact submission stored", slog.String("contactId", contact.ID.String()))
		response.Success(w, http.StatusCreated, map[string]string{"message": "Thanks for reaching out. We'll get back to you soon."})
	}
}
