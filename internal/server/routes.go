package server

import (
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func (s *Server) registerRoutes() {
	// Observability endpoints (no auth required)
	s.echo.GET("/health/live", s.handleLiveness)
	s.echo.GET("/health/ready", s.handleReadiness)
	s.echo.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	api := s.echo.Group("/api")

	// Credentials
	api.POST("/auth/register", s.handleRegister)
	api.POST("/auth/login", s.handleLogin)
	api.POST("/auth/refresh", s.handleRefresh)
	api.GET("/auth/me", s.handleCurrentUser, s.requireAuth)

	// Profiles
	api.PATCH("/users/me", s.handleUpdateProfile, s.requireAuth)
	api.GET("/users/:username", s.handleGetProfile, s.optionalAuth)
	api.GET("/users/:username/reviews", s.handleListUserReviews, s.optionalAuth)
	api.GET("/users/:username/lists", s.handleListUserLists, s.optionalAuth)

	// Catalog (listing endpoints precede the :tmdbId route so echo does not
	// swallow them as IDs)
	api.GET("/movies/search", s.handleSearchMovies)
	api.GET("/movies/popular", s.handlePopularMovies)
	api.GET("/movies/trending", s.handleTrendingMovies)
	api.GET("/movies/top-rated", s.handleTopRatedMovies)
	api.GET("/movies/now-playing", s.handleNowPlayingMovies)
	api.GET("/movies/upcoming", s.handleUpcomingMovies)
	api.GET("/movies/:tmdbId", s.handleGetMovie)
	api.GET("/movies/:tmdbId/reviews", s.handleListMovieReviews, s.optionalAuth)
	api.POST("/movies/:tmdbId/reviews", s.handleCreateReview, s.requireAuth)
	api.GET("/movies/:tmdbId/my-review", s.handleGetMyMovieReview, s.requireAuth)

	// Reviews
	api.GET("/reviews/:reviewId", s.handleGetReview, s.optionalAuth)
	api.PATCH("/reviews/:reviewId", s.handleUpdateReview, s.requireAuth)
	api.DELETE("/reviews/:reviewId", s.handleDeleteReview, s.requireAuth)
	api.POST("/reviews/:reviewId/like", s.handleLikeReview, s.requireAuth)
	api.DELETE("/reviews/:reviewId/like", s.handleUnlikeReview, s.requireAuth)

	// Lists
	api.POST("/lists", s.handleCreateList, s.requireAuth)
	api.GET("/lists/:listId", s.handleGetList, s.optionalAuth)
	api.PATCH("/lists/:listId", s.handleUpdateList, s.requireAuth)
	api.DELETE("/lists/:listId", s.handleDeleteList, s.requireAuth)
	api.POST("/lists/:listId/items", s.handleAddListItem, s.requireAuth)
	api.DELETE("/lists/:listId/items/:tmdbId", s.handleRemoveListItem, s.requireAuth)

	// Watchlist (owner-only, no public view)
	api.GET("/watchlist", s.handleGetWatchlist, s.requireAuth)
	api.POST("/watchlist/:tmdbId", s.handleAddToWatchlist, s.requireAuth)
	api.DELETE("/watchlist/:tmdbId", s.handleRemoveFromWatchlist, s.requireAuth)
	api.GET("/watchlist/:tmdbId/status", s.handleWatchlistStatus, s.requireAuth)
}
