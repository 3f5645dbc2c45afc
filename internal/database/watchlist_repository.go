package database

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ctonneslan/letterboxd-clone/internal/domain"
)

// WatchlistRepo implements domain.WatchlistRepository backed by PostgreSQL.
type WatchlistRepo struct {
	pool *pgxpool.Pool
}

func NewWatchlistRepo(pool *pgxpool.Pool) *WatchlistRepo {
	return &WatchlistRepo{pool: pool}
}

func (r *WatchlistRepo) Add(ctx context.Context, userID, movieID uuid.UUID) (*domain.WatchlistEntry, error) {
	var entry domain.WatchlistEntry
	err := r.pool.QueryRow(ctx, `
		INSERT INTO watchlist (user_id, movie_id)
		VALUES ($1, $2)
		RETURNING id, user_id, movie_id, added_at
	`, userID, movieID).Scan(&entry.ID, &entry.UserID, &entry.MovieID, &entry.AddedAt)
	if isUniqueViolation(err) {
		return nil, domain.ErrDuplicateWatchlistEntry
	}
	if err != nil {
		return nil, fmt.Errorf("failed to add watchlist entry: %w", err)
	}
	return &entry, nil
}

func (r *WatchlistRepo) Remove(ctx context.Context, userID, movieID uuid.UUID) error {
	tag, err := r.pool.Exec(ctx,
		`DELETE FROM watchlist WHERE user_id = $1 AND movie_id = $2`, userID, movieID)
	if err != nil {
		return fmt.Errorf("failed to remove watchlist entry: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrWatchlistEntryNotFound
	}
	return nil
}

func (r *WatchlistRepo) List(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*domain.WatchlistEntry, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT w.id, w.user_id, w.movie_id, w.added_at,
			m.tmdb_id, m.title, m.poster_path, m.release_date, m.vote_average
		FROM watchlist w
		JOIN movies m ON m.id = w.movie_id
		WHERE w.user_id = $1
		ORDER BY w.added_at DESC
		LIMIT $2 OFFSET $3
	`, userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list watchlist: %w", err)
	}
	defer rows.Close()

	entries := make([]*domain.WatchlistEntry, 0)
	for rows.Next() {
		var (
			entry domain.WatchlistEntry
			movie domain.MovieSummary
		)
		err := rows.Scan(
			&entry.ID, &entry.UserID, &entry.MovieID, &entry.AddedAt,
			&movie.TMDBID, &movie.Title, &movie.PosterPath, &movie.ReleaseDate, &movie.VoteAverage,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan watchlist row: %w", err)
		}
		entry.Movie = &movie
		entries = append(entries, &entry)
	}
	return entries, rows.Err()
}

func (r *WatchlistRepo) Contains(ctx context.Context, userID, movieID uuid.UUID) (bool, error) {
	var present bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM watchlist WHERE user_id = $1 AND movie_id = $2)`,
		userID, movieID).Scan(&present)
	if err != nil {
		return false, fmt.Errorf("failed to check watchlist: %w", err)
	}
	return present, nil
}
