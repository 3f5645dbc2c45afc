package server

import (
	"strconv"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	apperrors "github.com/ctonneslan/letterboxd-clone/internal/errors"
)

// Shared parameter parsing for the handler files.

func tmdbIDParam(c echo.Context) (int, error) {
	tmdbID, err := strconv.Atoi(c.Param("tmdbId"))
	if err != nil || tmdbID <= 0 {
		return 0, apperrors.ValidationError("invalid movie id").WithField("tmdb_id", c.Param("tmdbId"))
	}
	return tmdbID, nil
}

func uuidParam(c echo.Context, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		return uuid.Nil, apperrors.ValidationError("invalid id format").WithField(name, c.Param(name))
	}
	return id, nil
}

func pageQuery(c echo.Context) int {
	page, err := strconv.Atoi(c.QueryParam("page"))
	if err != nil || page < 1 {
		return 1
	}
	return page
}

func paginationQuery(c echo.Context) (limit, offset int) {
	limit, _ = strconv.Atoi(c.QueryParam("limit"))
	offset, _ = strconv.Atoi(c.QueryParam("offset"))
	return limit, offset
}
