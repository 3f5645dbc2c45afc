package server

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ctonneslan/letterboxd-clone/internal/app"
	"github.com/ctonneslan/letterboxd-clone/internal/domain"
	apperrors "github.com/ctonneslan/letterboxd-clone/internal/errors"
)

func (s *Server) handleRegister(c echo.Context) error {
	var input app.RegisterInput
	if err := c.Bind(&input); err != nil {
		return apperrors.ValidationError("invalid request body")
	}

	user, pair, err := s.app.Register(c.Request().Context(), input)
	if err != nil {
		return err
	}

	return respond(c, http.StatusCreated, map[string]any{
		"user":   toUserView(user),
		"tokens": pair,
	})
}

func (s *Server) handleLogin(c echo.Context) error {
	var input struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.Bind(&input); err != nil {
		return apperrors.ValidationError("invalid request body")
	}

	user, pair, err := s.app.Authenticate(c.Request().Context(), input.Email, input.Password)
	if err != nil {
		return err
	}

	return respond(c, http.StatusOK, map[string]any{
		"user":   toUserView(user),
		"tokens": pair,
	})
}

func (s *Server) handleRefresh(c echo.Context) error {
	var input struct {
		RefreshToken string `json:"refreshToken"`
	}
	if err := c.Bind(&input); err != nil {
		return apperrors.ValidationError("invalid request body")
	}
	if input.RefreshToken == "" {
		return apperrors.ValidationError("refresh token is required")
	}

	access, err := s.app.Refresh(c.Request().Context(), input.RefreshToken)
	if err != nil {
		return err
	}

	return respond(c, http.StatusOK, map[string]string{"accessToken": access})
}

func (s *Server) handleCurrentUser(c echo.Context) error {
	userID, err := authedUser(c)
	if err != nil {
		return err
	}

	user, err := s.app.GetCurrentUser(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, toUserView(user))
}

func (s *Server) handleGetProfile(c echo.Context) error {
	user, err := s.app.GetProfile(c.Request().Context(), c.Param("username"), viewerID(c))
	if err != nil {
		return err
	}

	// Owners get their full record; everyone else the public shape.
	if viewer := viewerID(c); viewer != nil && *viewer == user.ID {
		return respond(c, http.StatusOK, toUserView(user))
	}
	return respond(c, http.StatusOK, toProfileView(user))
}

func (s *Server) handleUpdateProfile(c echo.Context) error {
	userID, err := authedUser(c)
	if err != nil {
		return err
	}

	var patch domain.ProfilePatch
	if err := c.Bind(&patch); err != nil {
		return apperrors.ValidationError("invalid request body")
	}

	user, err := s.app.UpdateProfile(c.Request().Context(), userID, patch)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, toUserView(user))
}
