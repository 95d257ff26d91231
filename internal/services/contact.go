package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/1804coins/storefront-api/internal/api/middleware"
	appErrors "github.com/1804coins/storefront-api/internal/errors"
	"github.com/1804coins/storefront-api/internal/models"
	repository "github.com/1804coins/storefront-api/internal/repositories"
	"github.com/1804coins/storefront-api/pkg/sendgrid"
	"github.com/google/uuid"
)

type ContactService interface {
	SubmitContact(ctx context.Context, req *models.ContactRequest) (*models.ContactSubmission, error)
	ListContacts(ctx context.Context) ([]models.ContactSubmission, error)
}

type contactService struct {
	repo  repository.ContactRepository
	email sendgrid.EmailService
	inbox string
}

func NewContactService(repo repository.ContactRepository, email sendgrid.EmailService, inbox string) ContactService {
	return &contactService{repo: repo, email: email, inbox: inbox}
}

func (s *contactService) SubmitContact(ctx context.Context, req *models.ContactRequest) (*models.ContactSubmission, error) {

	contact := &models.ContactSubmission{
		ID:        uuid.New(),
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Message:   req.Message,
		Status:    "new",
	}

	if err := s.repo.CreateContact(ctx, contact); err != nil {
		return nil, appErrors.DatabaseError("Failed to store contact submission").WithError(err)
	}

	// The notification is best effort; the submission is already saved.
	notification := &models.EmailNotificationRequest{
		To:      s.inbox,
		Subject: fmt.Sprintf("New contact submission from %s %s", contact.FirstName, contact.LastName),
		Content: fmt.Sprintf("From: %s\n\n%s", contact.Email, contact.Message),
	}

	if err := s.email.Send(ctx, notification); err != nil {
		middleware.LoggerFromContext(ctx).Warn("Failed to send contact notification",
			slog.String("contactId", contact.ID.String()),
			slog.String("error", err.Error()))
	}

	return contact, nil
}

func (s *contactService) ListContacts(ctx context.Context) ([]models.ContactSubmission, error) {

	contacts, err := s.repo.ListContacts(ctx)
	if err != nil {
		return nil, appErrors.DatabaseError("Failed to fetch contact submissions").WithError(err)
	}

	if contacts == nil {
		contacts = []models.ContactSubmission{}
	}

	return contacts, nil
}
