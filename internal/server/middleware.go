package server

import (
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	apperrors "github.com/ctonneslan/letterboxd-clone/internal/errors"
	"github.com/ctonneslan/letterboxd-clone/internal/token"
)

const userIDKey = "userID"

// requireAuth rejects requests without a valid bearer access token and puts
// the authenticated user ID in the request context.
func (s *Server) requireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		userID, err := s.bearerIdentity(c)
		if err != nil {
			return err
		}
		if userID == nil {
			return apperrors.UnauthorizedError("authentication required")
		}
		c.Set(userIDKey, *userID)
		return next(c)
	}
}

// optionalAuth attaches the identity when a valid bearer token is present
// and lets anonymous requests through. A malformed or expired token is still
// rejected; silently downgrading it to anonymous would mask client bugs.
func (s *Server) optionalAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		userID, err := s.bearerIdentity(c)
		if err != nil {
			return err
		}
		if userID != nil {
			c.Set(userIDKey, *userID)
		}
		return next(c)
	}
}

// bearerIdentity extracts and verifies the Authorization header. It returns
// (nil, nil) when the header is absent.
func (s *Server) bearerIdentity(c echo.Context) (*uuid.UUID, error) {
	header := c.Request().Header.Get(echo.HeaderAuthorization)
	if header == "" {
		return nil, nil
	}

	const prefix = "Bearer "
	if !strings.HasPrefix(header, prefix) {
		return nil, apperrors.UnauthorizedError("authorization header must use the Bearer scheme")
	}

	userID, err := s.tokens.VerifyAccess(strings.TrimPrefix(header, prefix))
	if errors.Is(err, token.ErrTokenExpired) {
		return nil, apperrors.UnauthorizedError("access token expired")
	}
	if err != nil {
		return nil, apperrors.UnauthorizedError("invalid access token")
	}
	return &userID, nil
}

// authedUser returns the identity requireAuth stored on the context.
func authedUser(c echo.Context) (uuid.UUID, error) {
	userID, ok := c.Get(userIDKey).(uuid.UUID)
	if !ok {
		return uuid.Nil, apperrors.InternalError("invalid user ID in context", nil)
	}
	return userID, nil
}

// viewerID returns the optional identity set by optionalAuth, or nil.
func viewerID(c echo.Context) *uuid.UUID {
	if userID, ok := c.Get(userIDKey).(uuid.UUID); ok {
		return &userID
	}
	return nil
}
