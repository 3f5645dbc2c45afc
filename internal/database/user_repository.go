package database

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ctonneslan/letterboxd-clone/internal/domain"
)

// userColumns must match the Scan order in scanUser.
const userColumns = `id, username, email, password_hash, display_name, bio, avatar_url, email_verified, is_active, is_public, created_at, updated_at, last_login_at`

// UserRepo implements domain.UserRepository backed by PostgreSQL.
type UserRepo struct {
	pool *pgxpool.Pool
}

func NewUserRepo(pool *pgxpool.Pool) *UserRepo {
	return &UserRepo{pool: pool}
}

func scanUser(row pgx.Row) (*domain.User, error) {
	var user domain.User
	err := row.Scan(
		&user.ID, &user.Username, &user.Email, &user.PasswordHash,
		&user.DisplayName, &user.Bio, &user.AvatarURL,
		&user.EmailVerified, &user.IsActive, &user.IsPublic,
		&user.CreatedAt, &user.UpdatedAt, &user.LastLoginAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan user: %w", err)
	}
	return &user, nil
}

func (r *UserRepo) Create(ctx context.Context, username, email, passwordHash string, displayName *string) (*domain.User, error) {
	user, err := scanUser(r.pool.QueryRow(ctx, `
		INSERT INTO users (username, email, password_hash, display_name)
		VALUES ($1, $2, $3, $4)
		RETURNING `+userColumns+`
	`, username, email, passwordHash, displayName))

	// The functional LOWER() indexes are the backstop for the service-level
	// uniqueness pre-check; map whichever fired to its sentinel.
	if constraint := violatedConstraint(err); constraint != "" {
		if strings.Contains(constraint, "email") {
			return nil, domain.ErrDuplicateEmail
		}
		return nil, domain.ErrDuplicateUsername
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return user, nil
}

func (r *UserRepo) GetByID(ctx context.Context, userID uuid.UUID) (*domain.User, error) {
	return scanUser(r.pool.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = $1`, userID))
}

func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return scanUser(r.pool.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE LOWER(email) = LOWER($1)`, email))
}

func (r *UserRepo) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	return scanUser(r.pool.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE LOWER(username) = LOWER($1)`, username))
}

func (r *UserRepo) UpdateProfile(ctx context.Context, userID uuid.UUID, patch domain.ProfilePatch) (*domain.User, error) {
	var (
		fields []string
		args   []any
	)
	addField := func(column string, value any) {
		args = append(args, value)
		fields = append(fields, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if patch.DisplayName.Set() {
		addField("display_name", patch.DisplayName.Ptr())
	}
	if patch.Bio.Set() {
		addField("bio", patch.Bio.Ptr())
	}
	if patch.AvatarURL.Set() {
		addField("avatar_url", patch.AvatarURL.Ptr())
	}
	if patch.IsPublic.Set() {
		addField("is_public", patch.IsPublic.Ptr())
	}

	if len(fields) == 0 {
		return r.GetByID(ctx, userID)
	}

	args = append(args, userID)
	query := fmt.Sprintf(`UPDATE users SET %s WHERE id = $%d RETURNING %s`,
		strings.Join(fields, ", "), len(args), userColumns)

	return scanUser(r.pool.QueryRow(ctx, query, args...))
}

func (r *UserRepo) TouchLastLogin(ctx context.Context, userID uuid.UUID) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE users SET last_login_at = CURRENT_TIMESTAMP WHERE id = $1`, userID)
	if err != nil {
		return fmt.Errorf("failed to update last login: %w", err)
	}
	return nil
}
