package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type Review struct {
	ID               uuid.UUID
	UserID           uuid.UUID
	MovieID          uuid.UUID
	Rating           *float64
	ReviewText       *string
	ContainsSpoilers bool
	IsPublic         bool
	WatchedDate      *time.Time
	CreatedAt        time.Time
	UpdatedAt        time.Time

	// Derived at query time, never stored.
	LikeCount int
	HasLiked  bool

	// Joined context; nil when the query did not include it.
	Author *UserSummary
	Movie  *MovieSummary
}

// ReviewPatch carries the fields of a partial review update.
type ReviewPatch struct {
	Rating           Optional[float64]   `json:"rating"`
	ReviewText       Optional[string]    `json:"reviewText"`
	ContainsSpoilers Optional[bool]      `json:"containsSpoilers"`
	IsPublic         Optional[bool]      `json:"isPublic"`
	WatchedDate      Optional[time.Time] `json:"watchedDate"`
}

// Empty reports whether the patch selects no fields.
func (p ReviewPatch) Empty() bool {
	return !p.Rating.Set() && !p.ReviewText.Set() && !p.ContainsSpoilers.Set() &&
		!p.IsPublic.Set() && !p.WatchedDate.Set()
}

type ReviewRepository interface {
	Create(ctx context.Context, review *Review) (*Review, error)
	GetByID(ctx context.Context, reviewID uuid.UUID) (*Review, error)
	GetByUserAndMovie(ctx context.Context, userID, movieID uuid.UUID) (*Review, error)
	// ListByMovie returns public reviews with author summaries. When viewerID
	// is non-nil, HasLiked is populated for that viewer.
	ListByMovie(ctx context.Context, movieID uuid.UUID, viewerID *uuid.UUID, limit, offset int) ([]*Review, error)
	// ListByUser returns the owner's reviews with movie summaries, restricted
	// to public rows when publicOnly is true.
	ListByUser(ctx context.Context, userID uuid.UUID, publicOnly bool, limit, offset int) ([]*Review, error)
	Update(ctx context.Context, reviewID uuid.UUID, patch ReviewPatch) (*Review, error)
	Delete(ctx context.Context, reviewID uuid.UUID) error

	AddLike(ctx context.Context, reviewID, userID uuid.UUID) error
	RemoveLike(ctx context.Context, reviewID, userID uuid.UUID) error
	HasLike(ctx context.Context, reviewID, userID uuid.UUID) (bool, error)
	CountLikes(ctx context.Context, reviewID uuid.UUID) (int, error)
}
