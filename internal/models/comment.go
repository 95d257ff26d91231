package models

import (
	"time"

	"github.com/google/uuid"
)

// Comment caches the like count next to the liked-by set. The two are
// mutated in lockstep; LikedBy is the source of truth on toggle.
type Comment struct {
	ID        uuid.UUID   `json:"id"`
	ProductID uuid.UUID   `json:"product_id"`
	UserID    uuid.UUID   `json:"user_id"`
	Username  string      `json:"username"`
	Content   string      `json:"comment"`
	Likes     int         `json:"likes"`
	LikedBy   []uuid.UUID `json:"-"`
	CreatedAt time.Time   `json:"timestamp"`
}

// HasLike reports whether userID is in the liked-by set.
func (c *Comment) HasLike(userID uuid.UUID) bool {
	for _, id := range c.LikedBy {
		if id == userID {
			return true
		}
	}

	return false
}

type CreateCommentRequest struct {
	Comment string `json:"comment" validate:"required,min=1,max=2000"`
}

type LikeResponse struct {
	Likes int `json:"likes"`
}
