package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID            uuid.UUID
	Username      string
	Email         string
	PasswordHash  string
	DisplayName   *string
	Bio           *string
	AvatarURL     *string
	EmailVerified bool
	IsActive      bool
	IsPublic      bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
	LastLoginAt   *time.Time
}

// UserSummary is the author shape embedded in reviews and lists.
type UserSummary struct {
	Username    string  `json:"username"`
	DisplayName *string `json:"displayName"`
	AvatarURL   *string `json:"avatarUrl"`
}

// Summary returns the embeddable author view of the user.
func (u *User) Summary() *UserSummary {
	return &UserSummary{
		Username:    u.Username,
		DisplayName: u.DisplayName,
		AvatarURL:   u.AvatarURL,
	}
}

// ProfilePatch carries the fields of a partial profile update. Unset fields
// retain their prior values; explicit nulls clear nullable columns.
type ProfilePatch struct {
	DisplayName Optional[string] `json:"displayName"`
	Bio         Optional[string] `json:"bio"`
	AvatarURL   Optional[string] `json:"avatarUrl"`
	IsPublic    Optional[bool]   `json:"isPublic"`
}

// Empty reports whether the patch selects no fields.
func (p ProfilePatch) Empty() bool {
	return !p.DisplayName.Set() && !p.Bio.Set() && !p.AvatarURL.Set() && !p.IsPublic.Set()
}

type UserRepository interface {
	Create(ctx context.Context, username, email, passwordHash string, displayName *string) (*User, error)
	GetByID(ctx context.Context, userID uuid.UUID) (*User, error)
	// GetByEmail and GetByUsername match case-insensitively.
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByUsername(ctx context.Context, username string) (*User, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, patch ProfilePatch) (*User, error)
	TouchLastLogin(ctx context.Context, userID uuid.UUID) error
}
