package server

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"

	"github.com/ctonneslan/letterboxd-clone/internal/app"
	"github.com/ctonneslan/letterboxd-clone/internal/config"
	"github.com/ctonneslan/letterboxd-clone/internal/domain"
	"github.com/ctonneslan/letterboxd-clone/internal/tmdb"
	"github.com/ctonneslan/letterboxd-clone/internal/token"
)

// Stub repositories backing the HTTP tests. Only the methods a test route
// reaches are populated; the rest answer not-found or fail loudly.

type stubUserRepo struct {
	users map[uuid.UUID]*domain.User
}

func newStubUserRepo(users ...*domain.User) *stubUserRepo {
	repo := &stubUserRepo{users: make(map[uuid.UUID]*domain.User)}
	for _, u := range users {
		repo.users[u.ID] = u
	}
	return repo
}

func (r *stubUserRepo) Create(_ context.Context, username, email, passwordHash string, displayName *string) (*domain.User, error) {
	user := &domain.User{
		ID:           uuid.New(),
		Username:     username,
		Email:        email,
		PasswordHash: passwordHash,
		DisplayName:  displayName,
		IsActive:     true,
		IsPublic:     true,
		CreatedAt:    time.Now(),
	}
	r.users[user.ID] = user
	return user, nil
}

func (r *stubUserRepo) GetByID(_ context.Context, userID uuid.UUID) (*domain.User, error) {
	if user, ok := r.users[userID]; ok {
		return user, nil
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, user := range r.users {
		if user.Email == email {
			return user, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) GetByUsername(_ context.Context, username string) (*domain.User, error) {
	for _, user := range r.users {
		if user.Username == username {
			return user, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) UpdateProfile(ctx context.Context, userID uuid.UUID, patch domain.ProfilePatch) (*domain.User, error) {
	user, err := r.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if patch.DisplayName.Set() {
		user.DisplayName = patch.DisplayName.Ptr()
	}
	if patch.Bio.Set() {
		user.Bio = patch.Bio.Ptr()
	}
	return user, nil
}

func (r *stubUserRepo) TouchLastLogin(context.Context, uuid.UUID) error { return nil }

type stubMovieRepo struct {
	movies map[int]*domain.Movie
}

func newStubMovieRepo(movies ...*domain.Movie) *stubMovieRepo {
	repo := &stubMovieRepo{movies: make(map[int]*domain.Movie)}
	for _, m := range movies {
		repo.movies[m.TMDBID] = m
	}
	return repo
}

func (r *stubMovieRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.Movie, error) {
	for _, movie := range r.movies {
		if movie.ID == id {
			return movie, nil
		}
	}
	return nil, domain.ErrMovieNotFound
}

func (r *stubMovieRepo) GetByTMDBID(_ context.Context, tmdbID int) (*domain.Movie, error) {
	if movie, ok := r.movies[tmdbID]; ok {
		return movie, nil
	}
	return nil, domain.ErrMovieNotFound
}

func (r *stubMovieRepo) Upsert(_ context.Context, movie *domain.Movie) (*domain.Movie, error) {
	stored := *movie
	if existing, ok := r.movies[movie.TMDBID]; ok {
		stored.ID = existing.ID
	} else {
		stored.ID = uuid.New()
	}
	r.movies[stored.TMDBID] = &stored
	return &stored, nil
}

type stubReviewRepo struct {
	reviews map[uuid.UUID]*domain.Review
}

func newStubReviewRepo(reviews ...*domain.Review) *stubReviewRepo {
	repo := &stubReviewRepo{reviews: make(map[uuid.UUID]*domain.Review)}
	for _, review := range reviews {
		repo.reviews[review.ID] = review
	}
	return repo
}

func (r *stubReviewRepo) Create(_ context.Context, review *domain.Review) (*domain.Review, error) {
	created := *review
	created.ID = uuid.New()
	r.reviews[created.ID] = &created
	return &created, nil
}

func (r *stubReviewRepo) GetByID(_ context.Context, reviewID uuid.UUID) (*domain.Review, error) {
	if review, ok := r.reviews[reviewID]; ok {
		return review, nil
	}
	return nil, domain.ErrReviewNotFound
}

func (r *stubReviewRepo) GetByUserAndMovie(_ context.Context, userID, movieID uuid.UUID) (*domain.Review, error) {
	for _, review := range r.reviews {
		if review.UserID == userID && review.MovieID == movieID {
			return review, nil
		}
	}
	return nil, domain.ErrReviewNotFound
}

func (r *stubReviewRepo) ListByMovie(_ context.Context, movieID uuid.UUID, _ *uuid.UUID, _, _ int) ([]*domain.Review, error) {
	out := []*domain.Review{}
	for _, review := range r.reviews {
		if review.MovieID == movieID && review.IsPublic {
			out = append(out, review)
		}
	}
	return out, nil
}

func (r *stubReviewRepo) ListByUser(_ context.Context, userID uuid.UUID, publicOnly bool, _, _ int) ([]*domain.Review, error) {
	out := []*domain.Review{}
	for _, review := range r.reviews {
		if review.UserID == userID && (!publicOnly || review.IsPublic) {
			out = append(out, review)
		}
	}
	return out, nil
}

func (r *stubReviewRepo) Update(_ context.Context, reviewID uuid.UUID, patch domain.ReviewPatch) (*domain.Review, error) {
	review, ok := r.reviews[reviewID]
	if !ok {
		return nil, domain.ErrReviewNotFound
	}
	if patch.Rating.Set() {
		review.Rating = patch.Rating.Ptr()
	}
	if patch.ReviewText.Set() {
		review.ReviewText = patch.ReviewText.Ptr()
	}
	if patch.IsPublic.Set() && patch.IsPublic.Ptr() != nil {
		review.IsPublic = *patch.IsPublic.Ptr()
	}
	return review, nil
}

func (r *stubReviewRepo) Delete(_ context.Context, reviewID uuid.UUID) error {
	if _, ok := r.reviews[reviewID]; !ok {
		return domain.ErrReviewNotFound
	}
	delete(r.reviews, reviewID)
	return nil
}

func (r *stubReviewRepo) AddLike(context.Context, uuid.UUID, uuid.UUID) error    { return nil }
func (r *stubReviewRepo) RemoveLike(context.Context, uuid.UUID, uuid.UUID) error { return nil }
func (r *stubReviewRepo) HasLike(context.Context, uuid.UUID, uuid.UUID) (bool, error) {
	return false, nil
}
func (r *stubReviewRepo) CountLikes(context.Context, uuid.UUID) (int, error) { return 0, nil }

type stubListRepo struct{}

func (stubListRepo) Create(context.Context, uuid.UUID, string, *string, bool, bool) (*domain.List, error) {
	return nil, fmt.Errorf("not implemented")
}
func (stubListRepo) GetByID(context.Context, uuid.UUID) (*domain.List, error) {
	return nil, domain.ErrListNotFound
}
func (stubListRepo) ListByUser(context.Context, uuid.UUID, bool, int, int) ([]*domain.List, error) {
	return []*domain.List{}, nil
}
func (stubListRepo) Update(context.Context, uuid.UUID, domain.ListPatch) (*domain.List, error) {
	return nil, domain.ErrListNotFound
}
func (stubListRepo) Delete(context.Context, uuid.UUID) error { return domain.ErrListNotFound }
func (stubListRepo) Items(context.Context, uuid.UUID) ([]*domain.ListItem, error) {
	return []*domain.ListItem{}, nil
}
func (stubListRepo) GetItem(context.Context, uuid.UUID, uuid.UUID) (*domain.ListItem, error) {
	return nil, domain.ErrListItemNotFound
}
func (stubListRepo) MaxPosition(context.Context, uuid.UUID) (int, error) { return 0, nil }
func (stubListRepo) AddItem(context.Context, uuid.UUID, uuid.UUID, int, *string) (*domain.ListItem, error) {
	return nil, fmt.Errorf("not implemented")
}
func (stubListRepo) RemoveItem(context.Context, uuid.UUID, uuid.UUID) error {
	return domain.ErrListItemNotFound
}

type stubWatchlistRepo struct{}

func (stubWatchlistRepo) Add(context.Context, uuid.UUID, uuid.UUID) (*domain.WatchlistEntry, error) {
	return nil, fmt.Errorf("not implemented")
}
func (stubWatchlistRepo) Remove(context.Context, uuid.UUID, uuid.UUID) error {
	return domain.ErrWatchlistEntryNotFound
}
func (stubWatchlistRepo) List(context.Context, uuid.UUID, int, int) ([]*domain.WatchlistEntry, error) {
	return []*domain.WatchlistEntry{}, nil
}
func (stubWatchlistRepo) Contains(context.Context, uuid.UUID, uuid.UUID) (bool, error) {
	return false, nil
}

type stubCatalog struct{}

func (stubCatalog) GetMovie(context.Context, int) (*tmdb.MovieDetail, error) {
	return nil, tmdb.ErrNotFound
}
func (stubCatalog) SearchMovies(context.Context, string, int, bool) (*tmdb.Page, error) {
	return &tmdb.Page{Page: 1}, nil
}
func (stubCatalog) Popular(context.Context, int) (*tmdb.Page, error) { return &tmdb.Page{}, nil }
func (stubCatalog) Trending(context.Context, string, int) (*tmdb.Page, error) {
	return &tmdb.Page{}, nil
}
func (stubCatalog) TopRated(context.Context, int) (*tmdb.Page, error)   { return &tmdb.Page{}, nil }
func (stubCatalog) NowPlaying(context.Context, int) (*tmdb.Page, error) { return &tmdb.Page{}, nil }
func (stubCatalog) Upcoming(context.Context, int) (*tmdb.Page, error)   { return &tmdb.Page{}, nil }

type stubPinger struct{ err error }

func (p stubPinger) Ping(context.Context) error { return p.err }

// --- Server fixture ---

type serverFixture struct {
	srv    *Server
	tokens *token.Service
	users  *stubUserRepo
	movies *stubMovieRepo
}

func newTestServer(users *stubUserRepo, movies *stubMovieRepo, reviews *stubReviewRepo) *serverFixture {
	if users == nil {
		users = newStubUserRepo()
	}
	if movies == nil {
		movies = newStubMovieRepo()
	}
	if reviews == nil {
		reviews = newStubReviewRepo()
	}

	clock := clockwork.NewRealClock()
	tokens := token.NewService("access-secret", "refresh-secret", time.Hour, 24*time.Hour, clock)
	svc := app.New(users, movies, reviews, stubListRepo{}, stubWatchlistRepo{}, stubCatalog{}, tokens, clock)

	cfg := &config.Config{Port: "0"}
	return &serverFixture{
		srv:    NewServer(cfg, svc, tokens, stubPinger{}),
		tokens: tokens,
		users:  users,
		movies: movies,
	}
}
