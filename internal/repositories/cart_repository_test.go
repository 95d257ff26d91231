package repository_test

import (
	"database/sql"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/1804coins/storefront-api/internal/models"
	repository "github.com/1804coins/storefront-api/internal/repositories"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupCartRepoTest(t *testing.T) (repository.CartRepository, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err, "Failed to create sqlmock")

	t.Cleanup(func() {
		db.Close()
	})

	repo := repository.NewCartRepo(db)
	require.NotNil(t, repo, "NewCartRepo should return a non-nil repository")

	return repo, mock
}

func TestGetCartByUserID(t *testing.T) {
	repo, mock := setupCartRepoTest(t)
	ctx := t.Context()
	userID := uuid.New()

	t.Run("Success", func(t *testing.T) {
		// Arrange
		cartID := uuid.New()
		items := []models.CartLineItem{
			{ProductID: uuid.New(), Name: "1804 Draped Bust Dollar", Price: 149.99, Quantity: 2},
		}
		itemsJSON, err := json.Marshal(items)
		require.NoError(t, err)

		now := time.Now()
		rows := sqlmock.NewRows([]string{"id", "user_id", "items", "version", "created_at", "updated_at"}).
			AddRow(cartID, userID, itemsJSON, int64(4), now, now)

		mock.ExpectQuery("SELECT id, user_id, items, version, created_at, updated_at").
			WithArgs(userID).
			WillReturnRows(rows)

		// Act
		cart, err := repo.GetCartByUserID(ctx, userID)

		// Assert
		assert.NoError(t, err)
		assert.Equal(t, cartID, cart.ID)
		assert.Equal(t, int64(4), cart.Version)
		require.Len(t, cart.Items, 1)
		assert.Equal(t, 2, cart.Items[0].Quantity)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Failure - No Rows Passes Through", func(t *testing.T) {
		// Arrange
		mock.ExpectQuery("SELECT id, user_id, items, version, created_at, updated_at").
			WithArgs(userID).
			WillReturnError(sql.ErrNoRows)

		// Act
		cart, err := repo.GetCartByUserID(ctx, userID)

		// Assert
		assert.ErrorIs(t, err, sql.ErrNoRows)
		assert.Nil(t, cart)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestUpsertCart(t *testing.T) {
	repo, mock := setupCartRepoTest(t)
	ctx := t.Context()
	userID := uuid.New()

	cart := &models.Cart{
		ID:     uuid.New(),
		UserID: userID,
		Items: []models.CartLineItem{
			{ProductID: uuid.New(), Name: "1933 Double Eagle", Price: 89.5, Quantity: 1},
		},
		Version: 4,
	}
	itemsJSON, err := json.Marshal(cart.Items)
	require.NoError(t, err)

	t.Run("Success", func(t *testing.T) {
		// Arrange
		mock.ExpectExec("INSERT INTO carts").
			WithArgs(cart.ID, cart.UserID, itemsJSON, cart.Version).
			WillReturnResult(sqlmock.NewResult(0, 1))

		// Act
		err := repo.UpsertCart(ctx, cart)

		// Assert
		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Failure - Stale Version Yields Conflict", func(t *testing.T) {
		// Arrange - zero rows touched means the guard rejected the write
		mock.ExpectExec("INSERT INTO carts").
			WithArgs(cart.ID, cart.UserID, itemsJSON, cart.Version).
			WillReturnResult(sqlmock.NewResult(0, 0))

		// Act
		err := repo.UpsertCart(ctx, cart)

		// Assert
		assert.ErrorIs(t, err, repository.ErrVersionConflict)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Failure - Database Error", func(t *testing.T) {
		// Arrange
		dbError := errors.New("connection reset")
		mock.ExpectExec("INSERT INTO carts").
			WithArgs(cart.ID, cart.UserID, itemsJSON, cart.Version).
			WillReturnError(dbError)

		// Act
		err := repo.UpsertCart(ctx, cart)

		// Assert
		assert.ErrorIs(t, err, dbError)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
