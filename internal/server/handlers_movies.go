package server

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

func (s *Server) handleGetMovie(c echo.Context) error {
	tmdbID, err := tmdbIDParam(c)
	if err != nil {
		return err
	}

	movie, err := s.app.Resolve(c.Request().Context(), tmdbID)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, toMovieView(movie))
}

func (s *Server) handleSearchMovies(c echo.Context) error {
	includeAdult := c.QueryParam("includeAdult") == "true"

	page, err := s.app.SearchMovies(c.Request().Context(), c.QueryParam("query"), pageQuery(c), includeAdult)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, page)
}

func (s *Server) handlePopularMovies(c echo.Context) error {
	page, err := s.app.PopularMovies(c.Request().Context(), pageQuery(c))
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, page)
}

func (s *Server) handleTrendingMovies(c echo.Context) error {
	page, err := s.app.TrendingMovies(c.Request().Context(), c.QueryParam("window"), pageQuery(c))
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, page)
}

func (s *Server) handleTopRatedMovies(c echo.Context) error {
	page, err := s.app.TopRatedMovies(c.Request().Context(), pageQuery(c))
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, page)
}

func (s *Server) handleNowPlayingMovies(c echo.Context) error {
	page, err := s.app.NowPlayingMovies(c.Request().Context(), pageQuery(c))
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, page)
}

func (s *Server) handleUpcomingMovies(c echo.Context) error {
	page, err := s.app.UpcomingMovies(c.Request().Context(), pageQuery(c))
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, page)
}
