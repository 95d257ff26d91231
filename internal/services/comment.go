package service

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	appErrors "github.com/1804coins/storefront-api/internal/errors"
	"github.com/1804coins/storefront-api/internal/models"
	repository "github.com/1804coins/storefront-api/internal/repositories"
	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"
)

type CommentService interface {
	CreateComment(ctx context.Context, productID uuid.UUID, claims *models.Claims, req *models.CreateCommentRequest) (*models.Comment, error)
	ListComments(ctx context.Context, productID uuid.UUID) ([]models.Comment, error)
	ToggleLike(ctx context.Context, commentID, userID uuid.UUID) (int, error)
}

type commentService struct {
	commentRepo repository.CommentRepository
	productRepo repository.ProductRepository
	sanitizer   *bluemonday.Policy
}

func NewCommentService(commentRepo repository.CommentRepository, productRepo repository.ProductRepository) CommentService {
	return &commentService{
		commentRepo: commentRepo,
		productRepo: productRepo,
		// Comments are plain text; strip all markup on the way in.
		sanitizer: bluemonday.StrictPolicy(),
	}
}

func (s *commentService) CreateComment(ctx context.Context, productID uuid.UUID, claims *models.Claims, req *models.CreateCommentRequest) (*models.Comment, error) {

	if _, err := s.productRepo.GetProductByID(ctx, productID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.NotFoundError("Product not found").WithError(err)
		}

		return nil, appErrors.DatabaseError("Failed to resolve product").WithError(err)
	}

	content := strings.TrimSpace(s.sanitizer.Sanitize(req.Comment))
	if content == "" {
		return nil, appErrors.ValidationError("Comment cannot be empty")
	}

	comment := &models.Comment{
		ID:        uuid.New(),
		ProductID: productID,
		UserID:    claims.UserID,
		Username:  claims.Username,
		Content:   content,
		Likes:     0,
		LikedBy:   []uuid.UUID{},
	}

	if err := s.commentRepo.CreateComment(ctx, comment); err != nil {
		return nil, appErrors.DatabaseError("Failed to create comment").WithError(err)
	}

	return comment, nil
}

func (s *commentService) ListComments(ctx context.Context, productID uuid.UUID) ([]models.Comment, error) {

	comments, err := s.commentRepo.ListCommentsByProduct(ctx, productID)
	if err != nil {
		return nil, appErrors.DatabaseError("Failed to fetch comments").WithError(err)
	}

	if comments == nil {
		comments = []models.Comment{}
	}

	return comments, nil
}

// ToggleLike flips userID's membership in the liked-by set and moves the
// cached counter with it. The counter is clamped at zero; the set-based
// logic should never drive it negative, but a bad stored count must not
// surface as one.
func (s *commentService) ToggleLike(ctx context.Context, commentID, userID uuid.UUID) (int, error) {

	comment, err := s.commentRepo.GetCommentByID(ctx, commentID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, appErrors.NotFoundError("Comment not found").WithError(err)
		}

		return 0, appErrors.DatabaseError("Failed to retrieve comment").WithError(err)
	}

	if comment.HasLike(userID) {
		likedBy := make([]uuid.UUID, 0, len(comment.LikedBy)-1)

		for _, id := range comment.LikedBy {
			if id != userID {
				likedBy = append(likedBy, id)
			}
		}

		comment.LikedBy = likedBy
		comment.Likes--
	} else {
		comment.LikedBy = append(comment.LikedBy, userID)
		comment.Likes++
	}

	if comment.Likes < 0 {
		comment.Likes = 0
	}

	if err := s.commentRepo.UpdateLikes(ctx, comment); err != nil {
		return 0, appErrors.DatabaseError("Failed to update likes").WithError(err)
	}

	return comment.Likes, nil
}
