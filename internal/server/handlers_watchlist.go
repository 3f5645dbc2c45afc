package server

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

func (s *Server) handleGetWatchlist(c echo.Context) error {
	userID, err := authedUser(c)
	if err != nil {
		return err
	}
	limit, offset := paginationQuery(c)

	entries, err := s.app.GetWatchlist(c.Request().Context(), userID, limit, offset)
	if err != nil {
		return err
	}

	views := make([]watchlistEntryView, 0, len(entries))
	for _, entry := range entries {
		views = append(views, toWatchlistEntryView(entry))
	}
	return respond(c, http.StatusOK, views)
}

func (s *Server) handleAddToWatchlist(c echo.Context) error {
	userID, err := authedUser(c)
	if err != nil {
		return err
	}
	tmdbID, err := tmdbIDParam(c)
	if err != nil {
		return err
	}

	entry, err := s.app.AddToWatchlist(c.Request().Context(), userID, tmdbID)
	if err != nil {
		return err
	}
	return respond(c, http.StatusCreated, toWatchlistEntryView(entry))
}

func (s *Server) handleRemoveFromWatchlist(c echo.Context) error {
	userID, err := authedUser(c)
	if err != nil {
		return err
	}
	tmdbID, err := tmdbIDParam(c)
	if err != nil {
		return err
	}

	if err := s.app.RemoveFromWatchlist(c.Request().Context(), userID, tmdbID); err != nil {
		return err
	}
	return respond(c, http.StatusOK, map[string]string{"status": "removed"})
}

func (s *Server) handleWatchlistStatus(c echo.Context) error {
	userID, err := authedUser(c)
	if err != nil {
		return err
	}
	tmdbID, err := tmdbIDParam(c)
	if err != nil {
		return err
	}

	present, err := s.app.InWatchlist(c.Request().Context(), userID, tmdbID)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, map[string]bool{"inWatchlist": present})
}
