package app

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/ctonneslan/letterboxd-clone/internal/domain"
	"github.com/ctonneslan/letterboxd-clone/internal/tmdb"
)

// --- Mock implementations ---

type mockUserRepo struct {
	createFn         func(ctx context.Context, username, email, passwordHash string, displayName *string) (*domain.User, error)
	getByIDFn        func(ctx context.Context, userID uuid.UUID) (*domain.User, error)
	getByEmailFn     func(ctx context.Context, email string) (*domain.User, error)
	getByUsernameFn  func(ctx context.Context, username string) (*domain.User, error)
	updateProfileFn  func(ctx context.Context, userID uuid.UUID, patch domain.ProfilePatch) (*domain.User, error)
	touchLastLoginFn func(ctx context.Context, userID uuid.UUID) error
}

func (m *mockUserRepo) Create(ctx context.Context, username, email, passwordHash string, displayName *string) (*domain.User, error) {
	if m.createFn != nil {
		return m.createFn(ctx, username, email, passwordHash, displayName)
	}
	return nil, fmt.Errorf("not implemented")
}

func (m *mockUserRepo) GetByID(ctx context.Context, userID uuid.UUID) (*domain.User, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, userID)
	}
	return nil, domain.ErrUserNotFound
}

func (m *mockUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	if m.getByEmailFn != nil {
		return m.getByEmailFn(ctx, email)
	}
	return nil, domain.ErrUserNotFound
}

func (m *mockUserRepo) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	if m.getByUsernameFn != nil {
		return m.getByUsernameFn(ctx, username)
	}
	return nil, domain.ErrUserNotFound
}

func (m *mockUserRepo) UpdateProfile(ctx context.Context, userID uuid.UUID, patch domain.ProfilePatch) (*domain.User, error) {
	if m.updateProfileFn != nil {
		return m.updateProfileFn(ctx, userID, patch)
	}
	return nil, fmt.Errorf("not implemented")
}

func (m *mockUserRepo) TouchLastLogin(ctx context.Context, userID uuid.UUID) error {
	if m.touchLastLoginFn != nil {
		return m.touchLastLoginFn(ctx, userID)
	}
	return nil
}

type mockMovieRepo struct {
	getByIDFn     func(ctx context.Context, id uuid.UUID) (*domain.Movie, error)
	getByTMDBIDFn func(ctx context.Context, tmdbID int) (*domain.Movie, error)
	upsertFn      func(ctx context.Context, movie *domain.Movie) (*domain.Movie, error)
}

func (m *mockMovieRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Movie, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, domain.ErrMovieNotFound
}

func (m *mockMovieRepo) GetByTMDBID(ctx context.Context, tmdbID int) (*domain.Movie, error) {
	if m.getByTMDBIDFn != nil {
		return m.getByTMDBIDFn(ctx, tmdbID)
	}
	return nil, domain.ErrMovieNotFound
}

func (m *mockMovieRepo) Upsert(ctx context.Context, movie *domain.Movie) (*domain.Movie, error) {
	if m.upsertFn != nil {
		return m.upsertFn(ctx, movie)
	}
	return nil, fmt.Errorf("not implemented")
}

type mockReviewRepo struct {
	createFn            func(ctx context.Context, review *domain.Review) (*domain.Review, error)
	getByIDFn           func(ctx context.Context, reviewID uuid.UUID) (*domain.Review, error)
	getByUserAndMovieFn func(ctx context.Context, userID, movieID uuid.UUID) (*domain.Review, error)
	listByMovieFn       func(ctx context.Context, movieID uuid.UUID, viewerID *uuid.UUID, limit, offset int) ([]*domain.Review, error)
	listByUserFn        func(ctx context.Context, userID uuid.UUID, publicOnly bool, limit, offset int) ([]*domain.Review, error)
	updateFn            func(ctx context.Context, reviewID uuid.UUID, patch domain.ReviewPatch) (*domain.Review, error)
	deleteFn            func(ctx context.Context, reviewID uuid.UUID) error
	addLikeFn           func(ctx context.Context, reviewID, userID uuid.UUID) error
	removeLikeFn        func(ctx context.Context, reviewID, userID uuid.UUID) error
	hasLikeFn           func(ctx context.Context, reviewID, userID uuid.UUID) (bool, error)
	countLikesFn        func(ctx context.Context, reviewID uuid.UUID) (int, error)
}

func (m *mockReviewRepo) Create(ctx context.Context, review *domain.Review) (*domain.Review, error) {
	if m.createFn != nil {
		return m.createFn(ctx, review)
	}
	return nil, fmt.Errorf("not implemented")
}

func (m *mockReviewRepo) GetByID(ctx context.Context, reviewID uuid.UUID) (*domain.Review, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, reviewID)
	}
	return nil, domain.ErrReviewNotFound
}

func (m *mockReviewRepo) GetByUserAndMovie(ctx context.Context, userID, movieID uuid.UUID) (*domain.Review, error) {
	if m.getByUserAndMovieFn != nil {
		return m.getByUserAndMovieFn(ctx, userID, movieID)
	}
	return nil, domain.ErrReviewNotFound
}

func (m *mockReviewRepo) ListByMovie(ctx context.Context, movieID uuid.UUID, viewerID *uuid.UUID, limit, offset int) ([]*domain.Review, error) {
	if m.listByMovieFn != nil {
		return m.listByMovieFn(ctx, movieID, viewerID, limit, offset)
	}
	return nil, fmt.Errorf("not implemented")
}

func (m *mockReviewRepo) ListByUser(ctx context.Context, userID uuid.UUID, publicOnly bool, limit, offset int) ([]*domain.Review, error) {
	if m.listByUserFn != nil {
		return m.listByUserFn(ctx, userID, publicOnly, limit, offset)
	}
	return nil, fmt.Errorf("not implemented")
}

func (m *mockReviewRepo) Update(ctx context.Context, reviewID uuid.UUID, patch domain.ReviewPatch) (*domain.Review, error) {
	if m.updateFn != nil {
		return m.updateFn(ctx, reviewID, patch)
	}
	return nil, fmt.Errorf("not implemented")
}

func (m *mockReviewRepo) Delete(ctx context.Context, reviewID uuid.UUID) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, reviewID)
	}
	return nil
}

func (m *mockReviewRepo) AddLike(ctx context.Context, reviewID, userID uuid.UUID) error {
	if m.addLikeFn != nil {
		return m.addLikeFn(ctx, reviewID, userID)
	}
	return nil
}

func (m *mockReviewRepo) RemoveLike(ctx context.Context, reviewID, userID uuid.UUID) error {
	if m.removeLikeFn != nil {
		return m.removeLikeFn(ctx, reviewID, userID)
	}
	return nil
}

func (m *mockReviewRepo) HasLike(ctx context.Context, reviewID, userID uuid.UUID) (bool, error) {
	if m.hasLikeFn != nil {
		return m.hasLikeFn(ctx, reviewID, userID)
	}
	return false, nil
}

func (m *mockReviewRepo) CountLikes(ctx context.Context, reviewID uuid.UUID) (int, error) {
	if m.countLikesFn != nil {
		return m.countLikesFn(ctx, reviewID)
	}
	return 0, nil
}

type mockListRepo struct {
	createFn      func(ctx context.Context, userID uuid.UUID, name string, description *string, isPublic, isRanked bool) (*domain.List, error)
	getByIDFn     func(ctx context.Context, listID uuid.UUID) (*domain.List, error)
	listByUserFn  func(ctx context.Context, userID uuid.UUID, publicOnly bool, limit, offset int) ([]*domain.List, error)
	updateFn      func(ctx context.Context, listID uuid.UUID, patch domain.ListPatch) (*domain.List, error)
	deleteFn      func(ctx context.Context, listID uuid.UUID) error
	itemsFn       func(ctx context.Context, listID uuid.UUID) ([]*domain.ListItem, error)
	getItemFn     func(ctx context.Context, listID, movieID uuid.UUID) (*domain.ListItem, error)
	maxPositionFn func(ctx context.Context, listID uuid.UUID) (int, error)
	addItemFn     func(ctx context.Context, listID, movieID uuid.UUID, position int, notes *string) (*domain.ListItem, error)
	removeItemFn  func(ctx context.Context, listID, movieID uuid.UUID) error
}

func (m *mockListRepo) Create(ctx context.Context, userID uuid.UUID, name string, description *string, isPublic, isRanked bool) (*domain.List, error) {
	if m.createFn != nil {
		return m.createFn(ctx, userID, name, description, isPublic, isRanked)
	}
	return nil, fmt.Errorf("not implemented")
}

func (m *mockListRepo) GetByID(ctx context.Context, listID uuid.UUID) (*domain.List, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, listID)
	}
	return nil, domain.ErrListNotFound
}

func (m *mockListRepo) ListByUser(ctx context.Context, userID uuid.UUID, publicOnly bool, limit, offset int) ([]*domain.List, error) {
	if m.listByUserFn != nil {
		return m.listByUserFn(ctx, userID, publicOnly, limit, offset)
	}
	return nil, fmt.Errorf("not implemented")
}

func (m *mockListRepo) Update(ctx context.Context, listID uuid.UUID, patch domain.ListPatch) (*domain.List, error) {
	if m.updateFn != nil {
		return m.updateFn(ctx, listID, patch)
	}
	return nil, fmt.Errorf("not implemented")
}

func (m *mockListRepo) Delete(ctx context.Context, listID uuid.UUID) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, listID)
	}
	return nil
}

func (m *mockListRepo) Items(ctx context.Context, listID uuid.UUID) ([]*domain.ListItem, error) {
	if m.itemsFn != nil {
		return m.itemsFn(ctx, listID)
	}
	return []*domain.ListItem{}, nil
}

func (m *mockListRepo) GetItem(ctx context.Context, listID, movieID uuid.UUID) (*domain.ListItem, error) {
	if m.getItemFn != nil {
		return m.getItemFn(ctx, listID, movieID)
	}
	return nil, domain.ErrListItemNotFound
}

func (m *mockListRepo) MaxPosition(ctx context.Context, listID uuid.UUID) (int, error) {
	if m.maxPositionFn != nil {
		return m.maxPositionFn(ctx, listID)
	}
	return 0, nil
}

func (m *mockListRepo) AddItem(ctx context.Context, listID, movieID uuid.UUID, position int, notes *string) (*domain.ListItem, error) {
	if m.addItemFn != nil {
		return m.addItemFn(ctx, listID, movieID, position, notes)
	}
	return nil, fmt.Errorf("not implemented")
}

func (m *mockListRepo) RemoveItem(ctx context.Context, listID, movieID uuid.UUID) error {
	if m.removeItemFn != nil {
		return m.removeItemFn(ctx, listID, movieID)
	}
	return nil
}

type mockWatchlistRepo struct {
	addFn      func(ctx context.Context, userID, movieID uuid.UUID) (*domain.WatchlistEntry, error)
	removeFn   func(ctx context.Context, userID, movieID uuid.UUID) error
	listFn     func(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*domain.WatchlistEntry, error)
	containsFn func(ctx context.Context, userID, movieID uuid.UUID) (bool, error)
}

func (m *mockWatchlistRepo) Add(ctx context.Context, userID, movieID uuid.UUID) (*domain.WatchlistEntry, error) {
	if m.addFn != nil {
		return m.addFn(ctx, userID, movieID)
	}
	return nil, fmt.Errorf("not implemented")
}

func (m *mockWatchlistRepo) Remove(ctx context.Context, userID, movieID uuid.UUID) error {
	if m.removeFn != nil {
		return m.removeFn(ctx, userID, movieID)
	}
	return nil
}

func (m *mockWatchlistRepo) List(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*domain.WatchlistEntry, error) {
	if m.listFn != nil {
		return m.listFn(ctx, userID, limit, offset)
	}
	return []*domain.WatchlistEntry{}, nil
}

func (m *mockWatchlistRepo) Contains(ctx context.Context, userID, movieID uuid.UUID) (bool, error) {
	if m.containsFn != nil {
		return m.containsFn(ctx, userID, movieID)
	}
	return false, nil
}

type mockCatalog struct {
	getMovieFn     func(ctx context.Context, tmdbID int) (*tmdb.MovieDetail, error)
	searchMoviesFn func(ctx context.Context, query string, page int, includeAdult bool) (*tmdb.Page, error)
	popularFn      func(ctx context.Context, page int) (*tmdb.Page, error)
	trendingFn     func(ctx context.Context, window string, page int) (*tmdb.Page, error)
	topRatedFn     func(ctx context.Context, page int) (*tmdb.Page, error)
	nowPlayingFn   func(ctx context.Context, page int) (*tmdb.Page, error)
	upcomingFn     func(ctx context.Context, page int) (*tmdb.Page, error)
}

func (m *mockCatalog) GetMovie(ctx context.Context, tmdbID int) (*tmdb.MovieDetail, error) {
	if m.getMovieFn != nil {
		return m.getMovieFn(ctx, tmdbID)
	}
	return nil, fmt.Errorf("not implemented")
}

func (m *mockCatalog) SearchMovies(ctx context.Context, query string, page int, includeAdult bool) (*tmdb.Page, error) {
	if m.searchMoviesFn != nil {
		return m.searchMoviesFn(ctx, query, page, includeAdult)
	}
	return &tmdb.Page{}, nil
}

func (m *mockCatalog) Popular(ctx context.Context, page int) (*tmdb.Page, error) {
	if m.popularFn != nil {
		return m.popularFn(ctx, page)
	}
	return &tmdb.Page{}, nil
}

func (m *mockCatalog) Trending(ctx context.Context, window string, page int) (*tmdb.Page, error) {
	if m.trendingFn != nil {
		return m.trendingFn(ctx, window, page)
	}
	return &tmdb.Page{}, nil
}

func (m *mockCatalog) TopRated(ctx context.Context, page int) (*tmdb.Page, error) {
	if m.topRatedFn != nil {
		return m.topRatedFn(ctx, page)
	}
	return &tmdb.Page{}, nil
}

func (m *mockCatalog) NowPlaying(ctx context.Context, page int) (*tmdb.Page, error) {
	if m.nowPlayingFn != nil {
		return m.nowPlayingFn(ctx, page)
	}
	return &tmdb.Page{}, nil
}

func (m *mockCatalog) Upcoming(ctx context.Context, page int) (*tmdb.Page, error) {
	if m.upcomingFn != nil {
		return m.upcomingFn(ctx, page)
	}
	return &tmdb.Page{}, nil
}

// --- Shared test fixtures ---

type testDeps struct {
	users     *mockUserRepo
	movies    *mockMovieRepo
	reviews   *mockReviewRepo
	lists     *mockListRepo
	watchlist *mockWatchlistRepo
	catalog   *mockCatalog
}

func newTestService() (*Service, *testDeps) {
	deps := &testDeps{
		users:     &mockUserRepo{},
		movies:    &mockMovieRepo{},
		reviews:   &mockReviewRepo{},
		lists:     &mockListRepo{},
		watchlist: &mockWatchlistRepo{},
		catalog:   &mockCatalog{},
	}
	svc := New(deps.users, deps.movies, deps.reviews, deps.lists, deps.watchlist, deps.catalog, testTokenService(), testClock())
	return svc, deps
}
