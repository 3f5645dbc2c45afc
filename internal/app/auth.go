package app

import (
	"context"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/ctonneslan/letterboxd-clone/internal/domain"
	"github.com/ctonneslan/letterboxd-clone/internal/errors"
	"github.com/ctonneslan/letterboxd-clone/internal/logging"
	"github.com/ctonneslan/letterboxd-clone/internal/token"
	"github.com/ctonneslan/letterboxd-clone/internal/validation"
)

// invalidCredentialsMsg deliberately does not say whether the identity or the
// secret was wrong.
const invalidCredentialsMsg = "invalid email or password"

const lastLoginTimeout = 5 * time.Second

// RegisterInput carries the fields of a registration request.
type RegisterInput struct {
	Username    string  `json:"username"`
	Email       string  `json:"email"`
	Password    string  `json:"password"`
	DisplayName *string `json:"displayName"`
}

// Register creates a new account and signs it in. Handle and email
// uniqueness is pre-checked for a clean conflict message; the store
// constraint backstops the race.
func (s *Service) Register(ctx context.Context, input RegisterInput) (*domain.User, token.Pair, error) {
	input.Username = validation.Sanitize(input.Username)
	input.Email = validation.Sanitize(input.Email)

	if err := validation.Username(input.Username); err != nil {
		return nil, token.Pair{}, errors.ValidationError(err.Error())
	}
	if err := validation.Email(input.Email); err != nil {
		return nil, token.Pair{}, errors.ValidationError(err.Error())
	}
	if err := validation.Password(input.Password); err != nil {
		return nil, token.Pair{}, errors.ValidationError(err.Error())
	}
	if input.DisplayName != nil {
		trimmed := validation.Sanitize(*input.DisplayName)
		if err := validation.DisplayName(trimmed); err != nil {
			return nil, token.Pair{}, errors.ValidationError(err.Error())
		}
		input.DisplayName = &trimmed
	}

	if _, err := s.users.GetByEmail(ctx, input.Email); err == nil {
		return nil, token.Pair{}, errors.ConflictError("an account with this email already exists")
	} else if err != domain.ErrUserNotFound {
		return nil, token.Pair{}, errors.InternalError("failed to check email availability", err)
	}
	if _, err := s.users.GetByUsername(ctx, input.Username); err == nil {
		return nil, token.Pair{}, errors.ConflictError("this username is already taken")
	} else if err != domain.ErrUserNotFound {
		return nil, token.Pair{}, errors.InternalError("failed to check username availability", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, token.Pair{}, errors.InternalError("failed to hash password", err)
	}

	user, err := s.users.Create(ctx, input.Username, input.Email, string(hash), input.DisplayName)
	switch err {
	case nil:
	case domain.ErrDuplicateEmail:
		return nil, token.Pair{}, errors.ConflictError("an account with this email already exists")
	case domain.ErrDuplicateUsername:
		return nil, token.Pair{}, errors.ConflictError("this username is already taken")
	default:
		return nil, token.Pair{}, errors.InternalError("failed to create account", err)
	}

	pair, err := s.tokens.IssuePair(user.ID)
	if err != nil {
		return nil, token.Pair{}, errors.InternalError("failed to issue tokens", err)
	}

	logging.WithUser(user.ID.String()).Info("user registered", "username", user.Username)
	return user, pair, nil
}

// Authenticate verifies credentials and issues a fresh token pair. Last login
// is recorded asynchronously; a failure there never fails the sign-in.
func (s *Service) Authenticate(ctx context.Context, email, password string) (*domain.User, token.Pair, error) {
	user, err := s.users.GetByEmail(ctx, validation.Sanitize(email))
	if err == domain.ErrUserNotFound {
		return nil, token.Pair{}, errors.UnauthorizedError(invalidCredentialsMsg)
	}
	if err != nil {
		return nil, token.Pair{}, errors.InternalError("failed to look up account", err)
	}

	// Deactivation is checked before the password so a deactivated account
	// answers Forbidden regardless of the credentials supplied.
	if !user.IsActive {
		return nil, token.Pair{}, errors.ForbiddenError("account is deactivated")
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, token.Pair{}, errors.UnauthorizedError(invalidCredentialsMsg)
	}

	pair, err := s.tokens.IssuePair(user.ID)
	if err != nil {
		return nil, token.Pair{}, errors.InternalError("failed to issue tokens", err)
	}

	go func(userID uuid.UUID) {
		ctx, cancel := context.WithTimeout(context.Background(), lastLoginTimeout)
		defer cancel()
		if err := s.users.TouchLastLogin(ctx, userID); err != nil {
			logging.WithError(err).Warn("failed to record last login", "user_id", userID)
		}
	}(user.ID)

	return user, pair, nil
}

// Refresh exchanges a valid refresh token for a new access token. Refresh
// tokens are never rotated.
func (s *Service) Refresh(ctx context.Context, refreshToken string) (string, error) {
	userID, err := s.tokens.VerifyRefresh(refreshToken)
	if err == token.ErrTokenExpired {
		return "", errors.UnauthorizedError("refresh token expired")
	}
	if err != nil {
		return "", errors.UnauthorizedError("invalid refresh token")
	}

	user, err := s.users.GetByID(ctx, userID)
	if err == domain.ErrUserNotFound {
		return "", errors.UnauthorizedError("invalid refresh token")
	}
	if err != nil {
		return "", errors.InternalError("failed to look up account", err)
	}
	if !user.IsActive {
		return "", errors.UnauthorizedError("account is deactivated")
	}

	access, err := s.tokens.IssueAccess(user.ID)
	if err != nil {
		return "", errors.InternalError("failed to issue access token", err)
	}
	return access, nil
}

// GetCurrentUser loads the authenticated user's own record.
func (s *Service) GetCurrentUser(ctx context.Context, userID uuid.UUID) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err == domain.ErrUserNotFound {
		return nil, errors.UnauthorizedError("account no longer exists")
	}
	if err != nil {
		return nil, errors.InternalError("failed to load account", err)
	}
	return user, nil
}

// GetProfile loads a user's public profile by handle. Private profiles are
// indistinguishable from absent ones to everyone but their owner.
func (s *Service) GetProfile(ctx context.Context, username string, viewerID *uuid.UUID) (*domain.User, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err == domain.ErrUserNotFound {
		return nil, errors.NotFoundError("user not found")
	}
	if err != nil {
		return nil, errors.InternalError("failed to load profile", err)
	}

	if !user.IsPublic && (viewerID == nil || *viewerID != user.ID) {
		return nil, errors.NotFoundError("user not found")
	}
	return user, nil
}

// UpdateProfile applies a partial update to the caller's own profile.
func (s *Service) UpdateProfile(ctx context.Context, userID uuid.UUID, patch domain.ProfilePatch) (*domain.User, error) {
	if patch.DisplayName.Set() && patch.DisplayName.Ptr() != nil {
		trimmed := validation.Sanitize(*patch.DisplayName.Ptr())
		if err := validation.DisplayName(trimmed); err != nil {
			return nil, errors.ValidationError(err.Error())
		}
		patch.DisplayName = domain.Some(trimmed)
	}
	if patch.Bio.Set() && patch.Bio.Ptr() != nil {
		patch.Bio = domain.Some(validation.Sanitize(*patch.Bio.Ptr()))
	}

	user, err := s.users.UpdateProfile(ctx, userID, patch)
	if err == domain.ErrUserNotFound {
		return nil, errors.NotFoundError("user not found")
	}
	if err != nil {
		return nil, errors.InternalError("failed to update profile", err)
	}
	return user, nil
}
