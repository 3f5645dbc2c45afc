// Package app implements the use cases behind the HTTP surface: credential
// handling, the catalog resolver, and the review/list/watchlist content
// services. All invariants (uniqueness, ownership, visibility) are enforced
// here; handlers only translate HTTP to and from these calls.
package app

import (
	"context"

	"github.com/jonboulle/clockwork"
	"golang.org/x/sync/singleflight"

	"github.com/ctonneslan/letterboxd-clone/internal/domain"
	"github.com/ctonneslan/letterboxd-clone/internal/tmdb"
	"github.com/ctonneslan/letterboxd-clone/internal/token"
)

// Catalog is the slice of the external movie provider the service consumes.
type Catalog interface {
	GetMovie(ctx context.Context, tmdbID int) (*tmdb.MovieDetail, error)
	SearchMovies(ctx context.Context, query string, page int, includeAdult bool) (*tmdb.Page, error)
	Popular(ctx context.Context, page int) (*tmdb.Page, error)
	Trending(ctx context.Context, window string, page int) (*tmdb.Page, error)
	TopRated(ctx context.Context, page int) (*tmdb.Page, error)
	NowPlaying(ctx context.Context, page int) (*tmdb.Page, error)
	Upcoming(ctx context.Context, page int) (*tmdb.Page, error)
}

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

type Service struct {
	users     domain.UserRepository
	movies    domain.MovieRepository
	reviews   domain.ReviewRepository
	lists     domain.ListRepository
	watchlist domain.WatchlistRepository
	catalog   Catalog
	tokens    *token.Service
	clock     clockwork.Clock

	// resolveGroup collapses concurrent resolves of the same film into a
	// single provider fetch.
	resolveGroup singleflight.Group
}

func New(
	users domain.UserRepository,
	movies domain.MovieRepository,
	reviews domain.ReviewRepository,
	lists domain.ListRepository,
	watchlist domain.WatchlistRepository,
	catalog Catalog,
	tokens *token.Service,
	clock clockwork.Clock,
) *Service {
	return &Service{
		users:     users,
		movies:    movies,
		reviews:   reviews,
		lists:     lists,
		watchlist: watchlist,
		catalog:   catalog,
		tokens:    tokens,
		clock:     clock,
	}
}

// clampPagination normalizes caller-supplied paging values.
func clampPagination(limit, offset int) (int, int) {
	if limit <= 0 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}
