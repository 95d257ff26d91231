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

type CommentRepository interface {
	CreateComment(ctx context.Context, comment *models.Comment) error
	GetCommentByID(ctx context.Context, id uuid.UUID) (*models.Comment, error)
	ListCommentsByProduct(ctx context.Context, productID uuid.UUID) ([]models.Comment, error)
	UpdateLikes(ctx context.Context, comment *models.Comment) error
}

type commentRepository struct {
	DB *sql.DB
}

func NewCommentRepo(db *sql.DB) CommentRepository {
	return &commentRepository{DB: db}
}

func (r *commentRepository) CreateComment(ctx context.Context, comment *models.Comment) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	likedByJSON, err := json.Marshal(comment.LikedBy)
	if err != nil {
		return fmt.Errorf("failed to marshal liked_by: %w", err)
	}

	query := `
		INSERT INTO comments (id, product_id, user_id, username, content, likes, liked_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW())
		RETURNING created_at
	`

	return r.DB.QueryRowContext(dbCtx, query, comment.ID, comment.ProductID, comment.UserID,
		comment.Username, comment.Content, comment.Likes, likedByJSON).
		Scan(&comment.CreatedAt)
}

func (r *commentRepository) GetCommentByID(ctx context.Context, id uuid.UUID) (*models.Comment, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		SELECT id, product_id, user_id, username, content, likes, liked_by, created_at
		FROM comments
		WHERE id = $1
	`

	comment := &models.Comment{}

	var likedByJSON []byte

	err := r.DB.QueryRowContext(dbCtx, query, id).
		Scan(&comment.ID, &comment.ProductID, &comment.UserID, &comment.Username,
			&comment.Content, &comment.Likes, &likedByJSON, &comment.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}

		return nil, fmt.Errorf("querying database: %w", err)
	}

	if err := json.Unmarshal(likedByJSON, &comment.LikedBy); err != nil {
		return nil, fmt.Errorf("failed to unmarshal liked_by: %w", err)
	}

	return comment, nil
}

func (r *commentRepository) ListCommentsByProduct(ctx context.Context, productID uuid.UUID) ([]models.Comment, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		SELECT id, product_id, user_id, username, content, likes, liked_by, created_at
		FROM comments
		WHERE product_id = $1
		ORDER BY created_at DESC
	`

	rows, err := r.DB.QueryContext(dbCtx, query, productID)
	if err != nil {
		return nil, fmt.Errorf("querying database: %w", err)
	}

	defer rows.Close()

	var comments []models.Comment

	for rows.Next() {
		var comment models.Comment

		var likedByJSON []byte

		err := rows.Scan(&comment.ID, &comment.ProductID, &comment.UserID, &comment.Username,
			&comment.Content, &comment.Likes, &likedByJSON, &comment.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("scanning comment row: %w", err)
		}

		if err := json.Unmarshal(likedByJSON, &comment.LikedBy); err != nil {
			return nil, fmt.Errorf("failed to unmarshal liked_by: %w", err)
		}

		comments = append(comments, comment)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating comment rows: %w", err)
	}

	return comments, nil
}

// UpdateLikes writes the like counter and the liked-by set together so
// the cached count can never drift from the set.
func (r *commentRepository) UpdateLikes(ctx context.Context, comment *models.Comment) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	likedByJSON, err := json.Marshal(comment.LikedBy)
	if err != nil {
		return fmt.Errorf("failed to marshal liked_by: %w", err)
	}

	query := `
		UPDATE comments
		SET likes = $1, liked_by = $2
		WHERE id = $3
	`

	result, err := r.DB.ExecContext(dbCtx, query, comment.Likes, likedByJSON, comment.ID)
	if err != nil {
		return fmt.Errorf("failed to update likes: %w", err)
	}

	updated, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get updated rows: %w", err)
	}

	if updated == 0 {
		return sql.ErrNoRows
	}

	return nil
}
