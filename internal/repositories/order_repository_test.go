package repository_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/1804coins/storefront-api/internal/models"
	repository "github.com/1804coins/storefront-api/internal/repositories"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupOrderRepoTest(t *testing.T) (repository.OrderRepository, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err, "Failed to create sqlmock")

	t.Cleanup(func() {
		db.Close()
	})

	repo := repository.NewOrderRepo(db)
	require.NotNil(t, repo, "NewOrderRepo should return a non-nil repository")

	return repo, mock
}

func testOrder(userID uuid.UUID) *models.Order {
	return &models.Order{
		ID:     uuid.New(),
		UserID: userID,
		Items: []models.OrderItem{
			{ProductID: uuid.New(), Name: "1804 Draped Bust Dollar", Price: 149.99, Quantity: 2},
		},
		Total:  299.98,
		Status: models.OrderStatusPending,
	}
}

func TestCreateOrderFromCart(t *testing.T) {
	repo, mock := setupOrderRepoTest(t)
	ctx := t.Context()
	userID := uuid.New()

	t.Run("Success - Order Insert And Cart Clear Commit Together", func(t *testing.T) {
		// Arrange
		order := testOrder(userID)
		itemsJSON, err := json.Marshal(order.Items)
		require.NoError(t, err)

		mock.ExpectBegin()
		mock.ExpectQuery("INSERT INTO orders").
			WithArgs(order.ID, order.UserID, itemsJSON, order.Total, order.Status).
			WillReturnRows(sqlmock.NewRows([]string{"created_at"}).AddRow(time.Now()))
		mock.ExpectExec("UPDATE carts").
			WithArgs(order.UserID, int64(6)).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		// Act
		err = repo.CreateOrderFromCart(ctx, order, 6)

		// Assert
		assert.NoError(t, err)
		assert.False(t, order.CreatedAt.IsZero())
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Failure - Concurrent Cart Write Rolls Everything Back", func(t *testing.T) {
		// Arrange
		order := testOrder(userID)
		itemsJSON, err := json.Marshal(order.Items)
		require.NoError(t, err)

		mock.ExpectBegin()
		mock.ExpectQuery("INSERT INTO orders").
			WithArgs(order.ID, order.UserID, itemsJSON, order.Total, order.Status).
			WillReturnRows(sqlmock.NewRows([]string{"created_at"}).AddRow(time.Now()))
		mock.ExpectExec("UPDATE carts").
			WithArgs(order.UserID, int64(6)).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectRollback()

		// Act
		err = repo.CreateOrderFromCart(ctx, order, 6)

		// Assert
		assert.ErrorIs(t, err, repository.ErrVersionConflict)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestListOrdersByUser(t *testing.T) {
	repo, mock := setupOrderRepoTest(t)
	ctx := t.Context()
	userID := uuid.New()

	t.Run("Success - Newest First", func(t *testing.T) {
		// Arrange
		newer := uuid.New()
		older := uuid.New()
		itemsJSON, err := json.Marshal([]models.OrderItem{})
		require.NoError(t, err)

		rows := sqlmock.NewRows([]string{"id", "user_id", "items", "total", "status", "created_at"}).
			AddRow(newer, userID, itemsJSON, 42.0, models.OrderStatusPending, time.Now()).
			AddRow(older, userID, itemsJSON, 10.0, models.OrderStatusPending, time.Now().Add(-time.Hour))

		mock.ExpectQuery("SELECT id, user_id, items, total, status, created_at").
			WithArgs(userID).
			WillReturnRows(rows)

		// Act
		orders, err := repo.ListOrdersByUser(ctx, userID)

		// Assert
		assert.NoError(t, err)
		require.Len(t, orders, 2)
		assert.Equal(t, newer, orders[0].ID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Success - No Orders", func(t *testing.T) {
		// Arrange
		rows := sqlmock.NewRows([]string{"id", "user_id", "items", "total", "status", "created_at"})
		mock.ExpectQuery("SELECT id, user_id, items, total, status, created_at").
			WithArgs(userID).
			WillReturnRows(rows)

		// Act
		orders, err := repo.ListOrdersByUser(ctx, userID)

		// Assert
		assert.NoError(t, err)
		assert.Empty(t, orders)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
