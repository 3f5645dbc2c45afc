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

const listColumns = `l.id, l.user_id, l.name, l.description, l.is_public, l.is_ranked, l.created_at, l.updated_at`

// listItemCount is a correlated subquery; item totals are derived per read.
const listItemCount = `(SELECT COUNT(*) FROM list_items li WHERE li.list_id = l.id)`

// ListRepo implements domain.ListRepository backed by PostgreSQL.
type ListRepo struct {
	pool *pgxpool.Pool
}

func NewListRepo(pool *pgxpool.Pool) *ListRepo {
	return &ListRepo{pool: pool}
}

func scanList(row pgx.Row) (*domain.List, error) {
	var list domain.List
	err := row.Scan(
		&list.ID, &list.UserID, &list.Name, &list.Description,
		&list.IsPublic, &list.IsRanked, &list.CreatedAt, &list.UpdatedAt,
		&list.ItemCount,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrListNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan list: %w", err)
	}
	return &list, nil
}

func (r *ListRepo) Create(ctx context.Context, userID uuid.UUID, name string, description *string, isPublic, isRanked bool) (*domain.List, error) {
	list, err := scanList(r.pool.QueryRow(ctx, `
		INSERT INTO lists (user_id, name, description, is_public, is_ranked)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, user_id, name, description, is_public, is_ranked, created_at, updated_at, 0
	`, userID, name, description, isPublic, isRanked))
	if err != nil {
		return nil, fmt.Errorf("failed to create list: %w", err)
	}
	return list, nil
}

func (r *ListRepo) GetByID(ctx context.Context, listID uuid.UUID) (*domain.List, error) {
	var (
		list  domain.List
		owner domain.UserSummary
	)
	err := r.pool.QueryRow(ctx, `
		SELECT `+listColumns+`, `+listItemCount+`,
			u.username, u.display_name, u.avatar_url
		FROM lists l
		JOIN users u ON u.id = l.user_id
		WHERE l.id = $1
	`, listID).Scan(
		&list.ID, &list.UserID, &list.Name, &list.Description,
		&list.IsPublic, &list.IsRanked, &list.CreatedAt, &list.UpdatedAt,
		&list.ItemCount,
		&owner.Username, &owner.DisplayName, &owner.AvatarURL,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrListNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get list: %w", err)
	}
	list.Owner = &owner
	return &list, nil
}

func (r *ListRepo) ListByUser(ctx context.Context, userID uuid.UUID, publicOnly bool, limit, offset int) ([]*domain.List, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+listColumns+`, `+listItemCount+`
		FROM lists l
		WHERE l.user_id = $1 AND (NOT $2 OR l.is_public = TRUE)
		ORDER BY l.updated_at DESC
		LIMIT $3 OFFSET $4
	`, userID, publicOnly, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list lists by user: %w", err)
	}
	defer rows.Close()

	lists := make([]*domain.List, 0)
	for rows.Next() {
		var list domain.List
		err := rows.Scan(
			&list.ID, &list.UserID, &list.Name, &list.Description,
			&list.IsPublic, &list.IsRanked, &list.CreatedAt, &list.UpdatedAt,
			&list.ItemCount,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan list row: %w", err)
		}
		lists = append(lists, &list)
	}
	return lists, rows.Err()
}

func (r *ListRepo) Update(ctx context.Context, listID uuid.UUID, patch domain.ListPatch) (*domain.List, error) {
	var (
		fields []string
		args   []any
	)
	addField := func(column string, value any) {
		args = append(args, value)
		fields = append(fields, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if patch.Name.Set() {
		addField("name", patch.Name.Ptr())
	}
	if patch.Description.Set() {
		addField("description", patch.Description.Ptr())
	}
	if patch.IsPublic.Set() {
		addField("is_public", patch.IsPublic.Ptr())
	}
	if patch.IsRanked.Set() {
		addField("is_ranked", patch.IsRanked.Ptr())
	}

	if len(fields) == 0 {
		return r.GetByID(ctx, listID)
	}

	args = append(args, listID)
	query := fmt.Sprintf(`
		UPDATE lists l SET %s WHERE l.id = $%d
		RETURNING %s, %s
	`, strings.Join(fields, ", "), len(args), listColumns, listItemCount)

	return scanList(r.pool.QueryRow(ctx, query, args...))
}

func (r *ListRepo) Delete(ctx context.Context, listID uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM lists WHERE id = $1`, listID)
	if err != nil {
		return fmt.Errorf("failed to delete list: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrListNotFound
	}
	return nil
}

func (r *ListRepo) Items(ctx context.Context, listID uuid.UUID) ([]*domain.ListItem, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT li.id, li.list_id, li.movie_id, li.position, li.notes, li.added_at,
			m.tmdb_id, m.title, m.poster_path, m.release_date, m.vote_average
		FROM list_items li
		JOIN movies m ON m.id = li.movie_id
		WHERE li.list_id = $1
		ORDER BY li.position, li.added_at
	`, listID)
	if err != nil {
		return nil, fmt.Errorf("failed to list items: %w", err)
	}
	defer rows.Close()

	items := make([]*domain.ListItem, 0)
	for rows.Next() {
		var (
			item  domain.ListItem
			movie domain.MovieSummary
		)
		err := rows.Scan(
			&item.ID, &item.ListID, &item.MovieID, &item.Position, &item.Notes, &item.AddedAt,
			&movie.TMDBID, &movie.Title, &movie.PosterPath, &movie.ReleaseDate, &movie.VoteAverage,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan list item row: %w", err)
		}
		item.Movie = &movie
		items = append(items, &item)
	}
	return items, rows.Err()
}

func (r *ListRepo) GetItem(ctx context.Context, listID, movieID uuid.UUID) (*domain.ListItem, error) {
	var item domain.ListItem
	err := r.pool.QueryRow(ctx, `
		SELECT id, list_id, movie_id, position, notes, added_at
		FROM list_items WHERE list_id = $1 AND movie_id = $2
	`, listID, movieID).Scan(
		&item.ID, &item.ListID, &item.MovieID, &item.Position, &item.Notes, &item.AddedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrListItemNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get list item: %w", err)
	}
	return &item, nil
}

func (r *ListRepo) MaxPosition(ctx context.Context, listID uuid.UUID) (int, error) {
	var max int
	err := r.pool.QueryRow(ctx,
		`SELECT COALESCE(MAX(position), 0) FROM list_items WHERE list_id = $1`, listID).Scan(&max)
	if err != nil {
		return 0, fmt.Errorf("failed to get max list position: %w", err)
	}
	return max, nil
}

func (r *ListRepo) AddItem(ctx context.Context, listID, movieID uuid.UUID, position int, notes *string) (*domain.ListItem, error) {
	var item domain.ListItem
	err := r.pool.QueryRow(ctx, `
		INSERT INTO list_items (list_id, movie_id, position, notes)
		VALUES ($1, $2, $3, $4)
		RETURNING id, list_id, movie_id, position, notes, added_at
	`, listID, movieID, position, notes).Scan(
		&item.ID, &item.ListID, &item.MovieID, &item.Position, &item.Notes, &item.AddedAt,
	)
	if isUniqueViolation(err) {
		return nil, domain.ErrDuplicateListItem
	}
	if err != nil {
		return nil, fmt.Errorf("failed to add list item: %w", err)
	}
	return &item, nil
}

func (r *ListRepo) RemoveItem(ctx context.Context, listID, movieID uuid.UUID) error {
	tag, err := r.pool.Exec(ctx,
		`DELETE FROM list_items WHERE list_id = $1 AND movie_id = $2`, listID, movieID)
	if err != nil {
		return fmt.Errorf("failed to remove list item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrListItemNotFound
	}
	return nil
}
