package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/1804coins/storefront-api/internal/models"
	"github.com/1804coins/storefront-api/internal/utils"
)

type ContactRepository interface {
	CreateContact(ctx context.Context, contact *models.ContactSubmission) error
	ListContacts(ctx context.Context) ([]models.ContactSubmission, error)
}

type contactRepository struct {
	DB *sql.DB
}

func NewContactRepo(db *sql.DB) ContactRepository {
	return &contactRepository{DB: db}
}

func (r *contactRepository) CreateContact(ctx context.Context, contact *models.ContactSubmission) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		INSERT INTO contacts (id, first_name, last_name, email, message, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW())
		RETURNING created_at
	`

	return r.DB.QueryRowContext(dbCtx, query, contact.ID, contact.FirstName, contact.LastName,
		contact.Email, contact.Message, contact.Status).
		Scan(&contact.CreatedAt)
}

func (r *contactRepository) ListContacts(ctx context.Context) ([]models.ContactSubmission, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		SELECT id, first_name, last_name, email, message, status, created_at
		FROM contacts
		ORDER BY created_at DESC
	`

	rows, err := r.DB.QueryContext(dbCtx, query)
	if err != nil {
		return nil, fmt.Errorf("querying database: %w", err)
	}

	defer rows.Close()

	var contacts []models.ContactSubmission

	for rows.Next() {
		var contact models.ContactSubmission

		err := rows.Scan(&contact.ID, &contact.FirstName, &contact.LastName, &contact.Email,
			&contact.Message, &contact.Status, &contact.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("scanning contact row: %w", err)
		}

		contacts = append(contacts, contact)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating contact rows: %w", err)
	}

	return contacts, nil
}
