package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type WatchlistEntry struct {
	ID      uuid.UUID
	UserID  uuid.UUID
	MovieID uuid.UUID
	AddedAt time.Time

	Movie *MovieSummary
}

type WatchlistRepository interface {
	Add(ctx context.Context, userID, movieID uuid.UUID) (*WatchlistEntry, error)
	Remove(ctx context.Context, userID, movieID uuid.UUID) error
	List(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*WatchlistEntry, error)
	Contains(ctx context.Context, userID, movieID uuid.UUID) (bool, error)
}
