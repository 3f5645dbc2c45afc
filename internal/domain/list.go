package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type List struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	Name        string
	Description *string
	IsPublic    bool
	IsRanked    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time

	// Derived at query time.
	ItemCount int

	Owner *UserSummary
}

type ListItem struct {
	ID      uuid.UUID
	ListID  uuid.UUID
	MovieID uuid.UUID
	// Position is meaningful only on ranked lists: first item gets 1, each
	// subsequent item max+1. Removal never renumbers, so sequences may go
	// sparse. Unranked lists keep 0.
	Position int
	Notes    *string
	AddedAt  time.Time

	Movie *MovieSummary
}

// ListPatch carries the fields of a partial list update.
type ListPatch struct {
	Name        Optional[string] `json:"name"`
	Description Optional[string] `json:"description"`
	IsPublic    Optional[bool]   `json:"isPublic"`
	IsRanked    Optional[bool]   `json:"isRanked"`
}

// Empty reports whether the patch selects no fields.
func (p ListPatch) Empty() bool {
	return !p.Name.Set() && !p.Description.Set() && !p.IsPublic.Set() && !p.IsRanked.Set()
}

type ListRepository interface {
	Create(ctx context.Context, userID uuid.UUID, name string, description *string, isPublic, isRanked bool) (*List, error)
	GetByID(ctx context.Context, listID uuid.UUID) (*List, error)
	ListByUser(ctx context.Context, userID uuid.UUID, publicOnly bool, limit, offset int) ([]*List, error)
	Update(ctx context.Context, listID uuid.UUID, patch ListPatch) (*List, error)
	Delete(ctx context.Context, listID uuid.UUID) error

	Items(ctx context.Context, listID uuid.UUID) ([]*ListItem, error)
	GetItem(ctx context.Context, listID, movieID uuid.UUID) (*ListItem, error)
	MaxPosition(ctx context.Context, listID uuid.UUID) (int, error)
	AddItem(ctx context.Context, listID, movieID uuid.UUID, position int, notes *string) (*ListItem, error)
	RemoveItem(ctx context.Context, listID, movieID uuid.UUID) error
}
