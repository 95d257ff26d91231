package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/1804coins/storefront-api/internal/models"
	"github.com/1804coins/storefront-api/internal/utils"
	"github.com/google/uuid"
)

type OrderRepository interface {
	// CreateOrderFromCart persists the order and empties the source cart
	// in one transaction. cartVersion is the version the caller read; a
	// concurrent cart write rolls the whole thing back with
	// ErrVersionConflict.
	CreateOrderFromCart(ctx context.Context, order *models.Order, cartVersion int64) error
	ListOrdersByUser(ctx context.Context, userID uuid.UUID) ([]models.Order, error)
}

type orderRepository struct {
	DB *sql.DB
}

func NewOrderRepo(db *sql.DB) OrderRepository {
	return &orderRepository{DB: db}
}

func (r *orderRepository) CreateOrderFromCart(ctx context.Context, order *models.Order, cartVersion int64) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	itemsJSON, err := json.Marshal(order.Items)
	if err != nil {
		return fmt.Errorf("failed to marshal order items: %w", err)
	}

	tx, err := r.DB.BeginTx(dbCtx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer tx.Rollback()

	insertOrder := `
		INSERT INTO orders (id, user_id, items, total, status, created_at)
		VALUES ($1, $2, $3, $4, $5, NOW())
		RETURNING created_at
	`

	err = tx.QueryRowContext(dbCtx, insertOrder, order.ID, order.UserID, itemsJSON, order.Total, order.Status).
		Scan(&order.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert order: %w", err)
	}

	clearCart := `
		UPDATE carts
		SET items = '[]'::jsonb, version = version + 1, updated_at = NOW()
		WHERE user_id = $1 AND version = $2
	`

	result, err := tx.ExecContext(dbCtx, clearCart, order.UserID, cartVersion)
	if err != nil {
		return fmt.Errorf("failed to clear cart: %w", err)
	}

	cleared, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get cleared rows: %w", err)
	}

	if cleared == 0 {
		return ErrVersionConflict
	}

	return tx.Commit()
}

func (r *orderRepository) ListOrdersByUser(ctx context.Context, userID uuid.UUID) ([]models.Order, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		SELECT id, user_id, items, total, status, created_at
		FROM orders
		WHERE user_id = $1
		ORDER BY created_at DESC
	`

	rows, err := r.DB.QueryContext(dbCtx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("querying database: %w", err)
	}

	defer rows.Close()

	var orders []models.Order

	for rows.Next() {
		var order models.Order

		var itemsJSON []byte

		err := rows.Scan(&order.ID, &order.UserID, &itemsJSON, &order.Total, &order.Status, &order.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("scanning order row: %w", err)
		}

		if err := json.Unmarshal(itemsJSON, &order.Items); err != nil {
			return nil, fmt.Errorf("failed to unmarshal order items: %w", err)
		}

		orders = append(orders, order)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating order rows: %w", err)
	}

	return orders, nil
}
