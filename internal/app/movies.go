package app

import (
	"context"
	"strconv"

	"github.com/ctonneslan/letterboxd-clone/internal/domain"
	"github.com/ctonneslan/letterboxd-clone/internal/errors"
	"github.com/ctonneslan/letterboxd-clone/internal/logging"
	"github.com/ctonneslan/letterboxd-clone/internal/metrics"
	"github.com/ctonneslan/letterboxd-clone/internal/tmdb"
	"github.com/ctonneslan/letterboxd-clone/internal/validation"
)

// Resolve returns the locally cached movie for a provider ID, fetching and
// persisting it on first reference. Cached rows are served as-is with no
// freshness check; the upsert keyed on the provider ID makes concurrent
// first references converge on one row. Singleflight keeps a cold popular
// film from fanning out into N identical provider calls.
func (s *Service) Resolve(ctx context.Context, tmdbID int) (*domain.Movie, error) {
	if tmdbID <= 0 {
		return nil, errors.ValidationError("invalid movie id")
	}

	if movie, err := s.movies.GetByTMDBID(ctx, tmdbID); err == nil {
		metrics.MovieCacheTotal.WithLabelValues("hit").Inc()
		return movie, nil
	} else if err != domain.ErrMovieNotFound {
		return nil, errors.InternalError("failed to look up movie", err)
	}

	result, err, _ := s.resolveGroup.Do(strconv.Itoa(tmdbID), func() (any, error) {
		// Another flight may have landed while this one queued.
		if movie, err := s.movies.GetByTMDBID(ctx, tmdbID); err == nil {
			metrics.MovieCacheTotal.WithLabelValues("hit").Inc()
			return movie, nil
		} else if err != domain.ErrMovieNotFound {
			return nil, errors.InternalError("failed to look up movie", err)
		}

		detail, err := s.catalog.GetMovie(ctx, tmdbID)
		if err == tmdb.ErrNotFound {
			return nil, errors.NotFoundError("movie not found")
		}
		if err != nil {
			return nil, errors.ExternalError("movie provider unavailable", err)
		}

		movie, err := s.movies.Upsert(ctx, detail.ToMovie())
		if err != nil {
			return nil, errors.InternalError("failed to store movie", err)
		}

		metrics.MovieCacheTotal.WithLabelValues("miss").Inc()
		logging.WithMovie(tmdbID).Debug("movie cached from provider", "title", movie.Title)
		return movie, nil
	})
	if err != nil {
		return nil, err
	}
	return result.(*domain.Movie), nil
}

// SearchMovies proxies the provider's search endpoint. Results are never
// persisted.
func (s *Service) SearchMovies(ctx context.Context, query string, page int, includeAdult bool) (*tmdb.Page, error) {
	query = validation.Sanitize(query)
	if query == "" {
		return nil, errors.ValidationError("search query is required")
	}
	return s.proxyPage(func(ctx context.Context, page int) (*tmdb.Page, error) {
		return s.catalog.SearchMovies(ctx, query, page, includeAdult)
	})(ctx, page)
}

// PopularMovies proxies the provider's popular listing.
func (s *Service) PopularMovies(ctx context.Context, page int) (*tmdb.Page, error) {
	return s.proxyPage(s.catalog.Popular)(ctx, page)
}

// TrendingMovies proxies the provider's trending listing. The window must be
// "day" or "week"; empty defaults to "week".
func (s *Service) TrendingMovies(ctx context.Context, window string, page int) (*tmdb.Page, error) {
	switch window {
	case "":
		window = "week"
	case "day", "week":
	default:
		return nil, errors.ValidationError("trending window must be 'day' or 'week'")
	}
	return s.proxyPage(func(ctx context.Context, page int) (*tmdb.Page, error) {
		return s.catalog.Trending(ctx, window, page)
	})(ctx, page)
}

// TopRatedMovies proxies the provider's top-rated listing.
func (s *Service) TopRatedMovies(ctx context.Context, page int) (*tmdb.Page, error) {
	return s.proxyPage(s.catalog.TopRated)(ctx, page)
}

// NowPlayingMovies proxies the provider's now-playing listing.
func (s *Service) NowPlayingMovies(ctx context.Context, page int) (*tmdb.Page, error) {
	return s.proxyPage(s.catalog.NowPlaying)(ctx, page)
}

// UpcomingMovies proxies the provider's upcoming listing.
func (s *Service) UpcomingMovies(ctx context.Context, page int) (*tmdb.Page, error) {
	return s.proxyPage(s.catalog.Upcoming)(ctx, page)
}

func (s *Service) proxyPage(fetch func(context.Context, int) (*tmdb.Page, error)) func(context.Context, int) (*tmdb.Page, error) {
	return func(ctx context.Context, page int) (*tmdb.Page, error) {
		result, err := fetch(ctx, page)
		if err != nil {
			return nil, errors.ExternalError("movie provider unavailable", err)
		}
		return result, nil
	}
}
