package database

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ctonneslan/letterboxd-clone/internal/domain"
)

const reviewColumns = `r.id, r.user_id, r.movie_id, r.rating, r.review_text, r.contains_spoilers, r.is_public, r.watched_date, r.created_at, r.updated_at`

// reviewLikeCount is a correlated subquery; like totals are derived per read,
// never stored.
const reviewLikeCount = `(SELECT COUNT(*) FROM review_likes rl WHERE rl.review_id = r.id)`

// ReviewRepo implements domain.ReviewRepository backed by PostgreSQL.
type ReviewRepo struct {
	pool *pgxpool.Pool
}

func NewReviewRepo(pool *pgxpool.Pool) *ReviewRepo {
	return &ReviewRepo{pool: pool}
}

func scanReview(row pgx.Row) (*domain.Review, error) {
	var review domain.Review
	err := row.Scan(
		&review.ID, &review.UserID, &review.MovieID, &review.Rating, &review.ReviewText,
		&review.ContainsSpoilers, &review.IsPublic, &review.WatchedDate,
		&review.CreatedAt, &review.UpdatedAt, &review.LikeCount,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrReviewNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan review: %w", err)
	}
	return &review, nil
}

func (r *ReviewRepo) Create(ctx context.Context, review *domain.Review) (*domain.Review, error) {
	created, err := scanReview(r.pool.QueryRow(ctx, `
		INSERT INTO reviews (user_id, movie_id, rating, review_text, contains_spoilers, is_public, watched_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, user_id, movie_id, rating, review_text, contains_spoilers, is_public, watched_date, created_at, updated_at, 0
	`, review.UserID, review.MovieID, review.Rating, review.ReviewText,
		review.ContainsSpoilers, review.IsPublic, review.WatchedDate))
	if isUniqueViolation(err) {
		return nil, domain.ErrDuplicateReview
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create review: %w", err)
	}
	return created, nil
}

func (r *ReviewRepo) GetByID(ctx context.Context, reviewID uuid.UUID) (*domain.Review, error) {
	return scanReview(r.pool.QueryRow(ctx, `
		SELECT `+reviewColumns+`, `+reviewLikeCount+`
		FROM reviews r WHERE r.id = $1
	`, reviewID))
}

func (r *ReviewRepo) GetByUserAndMovie(ctx context.Context, userID, movieID uuid.UUID) (*domain.Review, error) {
	return scanReview(r.pool.QueryRow(ctx, `
		SELECT `+reviewColumns+`, `+reviewLikeCount+`
		FROM reviews r WHERE r.user_id = $1 AND r.movie_id = $2
	`, userID, movieID))
}

func (r *ReviewRepo) ListByMovie(ctx context.Context, movieID uuid.UUID, viewerID *uuid.UUID, limit, offset int) ([]*domain.Review, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+reviewColumns+`, `+reviewLikeCount+`,
			EXISTS(SELECT 1 FROM review_likes rl WHERE rl.review_id = r.id AND rl.user_id = $2),
			u.username, u.display_name, u.avatar_url
		FROM reviews r
		JOIN users u ON u.id = r.user_id
		WHERE r.movie_id = $1 AND r.is_public = TRUE
		ORDER BY r.created_at DESC
		LIMIT $3 OFFSET $4
	`, movieID, viewerID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list reviews by movie: %w", err)
	}
	defer rows.Close()

	reviews := make([]*domain.Review, 0)
	for rows.Next() {
		var (
			review domain.Review
			author domain.UserSummary
		)
		err := rows.Scan(
			&review.ID, &review.UserID, &review.MovieID, &review.Rating, &review.ReviewText,
			&review.ContainsSpoilers, &review.IsPublic, &review.WatchedDate,
			&review.CreatedAt, &review.UpdatedAt, &review.LikeCount, &review.HasLiked,
			&author.Username, &author.DisplayName, &author.AvatarURL,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan review row: %w", err)
		}
		review.Author = &author
		reviews = append(reviews, &review)
	}
	return reviews, rows.Err()
}

func (r *ReviewRepo) ListByUser(ctx context.Context, userID uuid.UUID, publicOnly bool, limit, offset int) ([]*domain.Review, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+reviewColumns+`, `+reviewLikeCount+`,
			m.tmdb_id, m.title, m.poster_path, m.release_date, m.vote_average
		FROM reviews r
		JOIN movies m ON m.id = r.movie_id
		WHERE r.user_id = $1 AND (NOT $2 OR r.is_public = TRUE)
		ORDER BY r.created_at DESC
		LIMIT $3 OFFSET $4
	`, userID, publicOnly, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list reviews by user: %w", err)
	}
	defer rows.Close()

	reviews := make([]*domain.Review, 0)
	for rows.Next() {
		var (
			review domain.Review
			movie  domain.MovieSummary
		)
		err := rows.Scan(
			&review.ID, &review.UserID, &review.MovieID, &review.Rating, &review.ReviewText,
			&review.ContainsSpoilers, &review.IsPublic, &review.WatchedDate,
			&review.CreatedAt, &review.UpdatedAt, &review.LikeCount,
			&movie.TMDBID, &movie.Title, &movie.PosterPath, &movie.ReleaseDate, &movie.VoteAverage,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan review row: %w", err)
		}
		review.Movie = &movie
		reviews = append(reviews, &review)
	}
	return reviews, rows.Err()
}

func (r *ReviewRepo) Update(ctx context.Context, reviewID uuid.UUID, patch domain.ReviewPatch) (*domain.Review, error) {
	var (
		fields []string
		args   []any
	)
	addField := func(column string, value any) {
		args = append(args, value)
		fields = append(fields, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if patch.Rating.Set() {
		addField("rating", patch.Rating.Ptr())
	}
	if patch.ReviewText.Set() {
		addField("review_text", patch.ReviewText.Ptr())
	}
	if patch.ContainsSpoilers.Set() {
		addField("contains_spoilers", patch.ContainsSpoilers.Ptr())
	}
	if patch.IsPublic.Set() {
		addField("is_public", patch.IsPublic.Ptr())
	}
	if patch.WatchedDate.Set() {
		addField("watched_date", patch.WatchedDate.Ptr())
	}

	if len(fields) == 0 {
		return r.GetByID(ctx, reviewID)
	}

	args = append(args, reviewID)
	query := fmt.Sprintf(`
		UPDATE reviews r SET %s WHERE r.id = $%d
		RETURNING %s, %s
	`, strings.Join(fields, ", "), len(args), reviewColumns, reviewLikeCount)

	return scanReview(r.pool.QueryRow(ctx, query, args...))
}

func (r *ReviewRepo) Delete(ctx context.Context, reviewID uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM reviews WHERE id = $1`, reviewID)
	if err != nil {
		return fmt.Errorf("failed to delete review: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrReviewNotFound
	}
	return nil
}

func (r *ReviewRepo) AddLike(ctx context.Context, reviewID, userID uuid.UUID) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO review_likes (review_id, user_id) VALUES ($1, $2)`, reviewID, userID)
	if isUniqueViolation(err) {
		return domain.ErrDuplicateLike
	}
	if err != nil {
		return fmt.Errorf("failed to like review: %w", err)
	}
	return nil
}

func (r *ReviewRepo) RemoveLike(ctx context.Context, reviewID, userID uuid.UUID) error {
	tag, err := r.pool.Exec(ctx,
		`DELETE FROM review_likes WHERE review_id = $1 AND user_id = $2`, reviewID, userID)
	if err != nil {
		return fmt.Errorf("failed to unlike review: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrLikeNotFound
	}
	return nil
}

func (r *ReviewRepo) HasLike(ctx context.Context, reviewID, userID uuid.UUID) (bool, error) {
	var liked bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM review_likes WHERE review_id = $1 AND user_id = $2)`,
		reviewID, userID).Scan(&liked)
	if err != nil {
		return false, fmt.Errorf("failed to check review like: %w", err)
	}
	return liked, nil
}

func (r *ReviewRepo) CountLikes(ctx context.Context, reviewID uuid.UUID) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM review_likes WHERE review_id = $1`, reviewID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count review likes: %w", err)
	}
	return count, nil
}
