package app

import (
	"context"

	"github.com/google/uuid"

	"github.com/ctonneslan/letterboxd-clone/internal/domain"
	"github.com/ctonneslan/letterboxd-clone/internal/errors"
)

// AddToWatchlist marks a film as to-watch for the caller. The film is
// resolved (and cached) first. Adding the same film twice conflicts.
func (s *Service) AddToWatchlist(ctx context.Context, userID uuid.UUID, tmdbID int) (*domain.WatchlistEntry, error) {
	movie, err := s.Resolve(ctx, tmdbID)
	if err != nil {
		return nil, err
	}

	// Uniqueness is pre-checked for a clean conflict; the store constraint
	// backstops the race.
	present, err := s.watchlist.Contains(ctx, userID, movie.ID)
	if err != nil {
		return nil, errors.InternalError("failed to check watchlist", err)
	}
	if present {
		return nil, errors.ConflictError("this movie is already on your watchlist")
	}

	entry, err := s.watchlist.Add(ctx, userID, movie.ID)
	if err == domain.ErrDuplicateWatchlistEntry {
		return nil, errors.ConflictError("this movie is already on your watchlist")
	}
	if err != nil {
		return nil, errors.InternalError("failed to add to watchlist", err)
	}
	entry.Movie = &domain.MovieSummary{
		TMDBID:      movie.TMDBID,
		Title:       movie.Title,
		PosterPath:  movie.PosterPath,
		ReleaseDate: movie.ReleaseDate,
		VoteAverage: movie.VoteAverage,
	}
	return entry, nil
}

// RemoveFromWatchlist removes a film from the caller's watchlist. Removing
// an absent entry is not-found, not success.
func (s *Service) RemoveFromWatchlist(ctx context.Context, userID uuid.UUID, tmdbID int) error {
	movie, err := s.movies.GetByTMDBID(ctx, tmdbID)
	if err == domain.ErrMovieNotFound {
		return errors.NotFoundError("movie is not on your watchlist")
	}
	if err != nil {
		return errors.InternalError("failed to look up movie", err)
	}

	err = s.watchlist.Remove(ctx, userID, movie.ID)
	if err == domain.ErrWatchlistEntryNotFound {
		return errors.NotFoundError("movie is not on your watchlist")
	}
	if err != nil {
		return errors.InternalError("failed to remove from watchlist", err)
	}
	return nil
}

// GetWatchlist returns the caller's watchlist, newest first. Watchlists are
// owner-only; there is no public view.
func (s *Service) GetWatchlist(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*domain.WatchlistEntry, error) {
	limit, offset = clampPagination(limit, offset)

	entries, err := s.watchlist.List(ctx, userID, limit, offset)
	if err != nil {
		return nil, errors.InternalError("failed to load watchlist", err)
	}
	return entries, nil
}

// InWatchlist reports whether a film is on the caller's watchlist. An
// unresolved film is trivially not on it.
func (s *Service) InWatchlist(ctx context.Context, userID uuid.UUID, tmdbID int) (bool, error) {
	movie, err := s.movies.GetByTMDBID(ctx, tmdbID)
	if err == domain.ErrMovieNotFound {
		return false, nil
	}
	if err != nil {
		return false, errors.InternalError("failed to look up movie", err)
	}

	present, err := s.watchlist.Contains(ctx, userID, movie.ID)
	if err != nil {
		return false, errors.InternalError("failed to check watchlist", err)
	}
	return present, nil
}
