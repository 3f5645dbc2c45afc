package database

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ctonneslan/letterboxd-clone/internal/domain"
)

// movieColumns must match the Scan order in scanMovie.
const movieColumns = `id, tmdb_id, imdb_id, title, original_title, overview, tagline, release_date, runtime,
	poster_path, backdrop_path, vote_average, vote_count, popularity,
	genres, production_companies, production_countries, spoken_languages,
	status, budget, revenue, original_language, adult, created_at, updated_at`

// MovieRepo implements domain.MovieRepository backed by PostgreSQL.
type MovieRepo struct {
	pool *pgxpool.Pool
}

func NewMovieRepo(pool *pgxpool.Pool) *MovieRepo {
	return &MovieRepo{pool: pool}
}

func scanMovie(row pgx.Row) (*domain.Movie, error) {
	var (
		movie                                   domain.Movie
		genres, companies, countries, languages []byte
	)
	err := row.Scan(
		&movie.ID, &movie.TMDBID, &movie.IMDBID, &movie.Title, &movie.OriginalTitle,
		&movie.Overview, &movie.Tagline, &movie.ReleaseDate, &movie.Runtime,
		&movie.PosterPath, &movie.BackdropPath, &movie.VoteAverage, &movie.VoteCount, &movie.Popularity,
		&genres, &companies, &countries, &languages,
		&movie.Status, &movie.Budget, &movie.Revenue, &movie.OriginalLanguage, &movie.Adult,
		&movie.CreatedAt, &movie.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrMovieNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan movie: %w", err)
	}

	for _, col := range []struct {
		raw []byte
		dst any
	}{
		{genres, &movie.Genres},
		{companies, &movie.ProductionCompanies},
		{countries, &movie.ProductionCountries},
		{languages, &movie.SpokenLanguages},
	} {
		if col.raw == nil {
			continue
		}
		if err := json.Unmarshal(col.raw, col.dst); err != nil {
			return nil, fmt.Errorf("failed to decode movie sub-document: %w", err)
		}
	}

	return &movie, nil
}

func (r *MovieRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Movie, error) {
	return scanMovie(r.pool.QueryRow(ctx,
		`SELECT `+movieColumns+` FROM movies WHERE id = $1`, id))
}

func (r *MovieRepo) GetByTMDBID(ctx context.Context, tmdbID int) (*domain.Movie, error) {
	return scanMovie(r.pool.QueryRow(ctx,
		`SELECT `+movieColumns+` FROM movies WHERE tmdb_id = $1`, tmdbID))
}

// Upsert inserts or refreshes the movie keyed by tmdb_id and returns the
// persisted row. ON CONFLICT makes concurrent resolves of the same film
// converge on a single row without surfacing a uniqueness violation.
func (r *MovieRepo) Upsert(ctx context.Context, movie *domain.Movie) (*domain.Movie, error) {
	genres, err := marshalSubDoc(movie.Genres)
	if err != nil {
		return nil, err
	}
	companies, err := marshalSubDoc(movie.ProductionCompanies)
	if err != nil {
		return nil, err
	}
	countries, err := marshalSubDoc(movie.ProductionCountries)
	if err != nil {
		return nil, err
	}
	languages, err := marshalSubDoc(movie.SpokenLanguages)
	if err != nil {
		return nil, err
	}

	return scanMovie(r.pool.QueryRow(ctx, `
		INSERT INTO movies (
			tmdb_id, imdb_id, title, original_title, overview, tagline, release_date, runtime,
			poster_path, backdrop_path, vote_average, vote_count, popularity,
			genres, production_companies, production_countries, spoken_languages,
			status, budget, revenue, original_language, adult
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22)
		ON CONFLICT (tmdb_id) DO UPDATE SET
			imdb_id = EXCLUDED.imdb_id,
			title = EXCLUDED.title,
			original_title = EXCLUDED.original_title,
			overview = EXCLUDED.overview,
			tagline = EXCLUDED.tagline,
			release_date = EXCLUDED.release_date,
			runtime = EXCLUDED.runtime,
			poster_path = EXCLUDED.poster_path,
			backdrop_path = EXCLUDED.backdrop_path,
			vote_average = EXCLUDED.vote_average,
			vote_count = EXCLUDED.vote_count,
			popularity = EXCLUDED.popularity,
			genres = EXCLUDED.genres,
			production_companies = EXCLUDED.production_companies,
			production_countries = EXCLUDED.production_countries,
			spoken_languages = EXCLUDED.spoken_languages,
			status = EXCLUDED.status,
			budget = EXCLUDED.budget,
			revenue = EXCLUDED.revenue,
			original_language = EXCLUDED.original_language,
			adult = EXCLUDED.adult
		RETURNING `+movieColumns+`
	`,
		movie.TMDBID, movie.IMDBID, movie.Title, movie.OriginalTitle, movie.Overview, movie.Tagline,
		movie.ReleaseDate, movie.Runtime, movie.PosterPath, movie.BackdropPath,
		movie.VoteAverage, movie.VoteCount, movie.Popularity,
		genres, companies, countries, languages,
		movie.Status, movie.Budget, movie.Revenue, movie.OriginalLanguage, movie.Adult,
	))
}

func marshalSubDoc(v any) ([]byte, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to encode movie sub-document: %w", err)
	}
	return raw, nil
}
