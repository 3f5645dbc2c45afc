package app

import (
	"context"

	"github.com/google/uuid"

	"github.com/ctonneslan/letterboxd-clone/internal/domain"
	"github.com/ctonneslan/letterboxd-clone/internal/errors"
	"github.com/ctonneslan/letterboxd-clone/internal/validation"
)

// CreateListInput carries the fields of a list creation request.
type CreateListInput struct {
	Name        string  `json:"name"`
	Description *string `json:"description"`
	IsPublic    *bool   `json:"isPublic"`
	IsRanked    bool    `json:"isRanked"`
}

func (s *Service) CreateList(ctx context.Context, userID uuid.UUID, input CreateListInput) (*domain.List, error) {
	input.Name = validation.Sanitize(input.Name)
	if err := validation.ListName(input.Name); err != nil {
		return nil, errors.ValidationError(err.Error())
	}
	if input.Description != nil {
		desc := validation.Sanitize(*input.Description)
		input.Description = &desc
	}

	isPublic := true
	if input.IsPublic != nil {
		isPublic = *input.IsPublic
	}

	list, err := s.lists.Create(ctx, userID, input.Name, input.Description, isPublic, input.IsRanked)
	if err != nil {
		return nil, errors.InternalError("failed to create list", err)
	}
	return list, nil
}

// GetList fetches a list with its items. A private list is indistinguishable
// from an absent one to everyone but its owner.
func (s *Service) GetList(ctx context.Context, listID uuid.UUID, viewerID *uuid.UUID) (*domain.List, []*domain.ListItem, error) {
	list, err := s.loadVisibleList(ctx, listID, viewerID)
	if err != nil {
		return nil, nil, err
	}

	items, err := s.lists.Items(ctx, listID)
	if err != nil {
		return nil, nil, errors.InternalError("failed to load list items", err)
	}
	return list, items, nil
}

// ListUserLists returns a user's lists. Non-owners see public rows only.
func (s *Service) ListUserLists(ctx context.Context, username string, viewerID *uuid.UUID, limit, offset int) ([]*domain.List, error) {
	limit, offset = clampPagination(limit, offset)

	user, err := s.users.GetByUsername(ctx, username)
	if err == domain.ErrUserNotFound {
		return nil, errors.NotFoundError("user not found")
	}
	if err != nil {
		return nil, errors.InternalError("failed to look up user", err)
	}

	publicOnly := viewerID == nil || *viewerID != user.ID
	lists, err := s.lists.ListByUser(ctx, user.ID, publicOnly, limit, offset)
	if err != nil {
		return nil, errors.InternalError("failed to list lists", err)
	}
	return lists, nil
}

// UpdateList applies a partial update to the caller's own list. The
// ownership check precedes field validation.
func (s *Service) UpdateList(ctx context.Context, userID, listID uuid.UUID, patch domain.ListPatch) (*domain.List, error) {
	list, err := s.loadOwnedList(ctx, userID, listID)
	if err != nil {
		return nil, err
	}

	if patch.Name.Set() {
		if patch.Name.Ptr() == nil {
			return nil, errors.ValidationError("list name cannot be null")
		}
		name := validation.Sanitize(*patch.Name.Ptr())
		if err := validation.ListName(name); err != nil {
			return nil, errors.ValidationError(err.Error())
		}
		patch.Name = domain.Some(name)
	}
	if patch.Description.Set() && patch.Description.Ptr() != nil {
		patch.Description = domain.Some(validation.Sanitize(*patch.Description.Ptr()))
	}

	if patch.Empty() {
		return list, nil
	}

	updated, err := s.lists.Update(ctx, listID, patch)
	if err == domain.ErrListNotFound {
		return nil, errors.NotFoundError("list not found")
	}
	if err != nil {
		return nil, errors.InternalError("failed to update list", err)
	}
	return updated, nil
}

// DeleteList removes the caller's own list and, by cascade, its items.
func (s *Service) DeleteList(ctx context.Context, userID, listID uuid.UUID) error {
	if _, err := s.loadOwnedList(ctx, userID, listID); err != nil {
		return err
	}

	err := s.lists.Delete(ctx, listID)
	if err == domain.ErrListNotFound {
		return errors.NotFoundError("list not found")
	}
	if err != nil {
		return errors.InternalError("failed to delete list", err)
	}
	return nil
}

// AddListItem appends a film to the caller's own list. On a ranked list the
// item takes position max+1 (first item 1); unranked items stay at 0.
// Removals never renumber, so ranked sequences may go sparse.
func (s *Service) AddListItem(ctx context.Context, userID, listID uuid.UUID, tmdbID int, notes *string) (*domain.ListItem, error) {
	list, err := s.loadOwnedList(ctx, userID, listID)
	if err != nil {
		return nil, err
	}

	movie, err := s.Resolve(ctx, tmdbID)
	if err != nil {
		return nil, err
	}

	// Uniqueness is pre-checked for a clean conflict; the store constraint
	// backstops the race.
	if _, err := s.lists.GetItem(ctx, listID, movie.ID); err == nil {
		return nil, errors.ConflictError("this movie is already on the list")
	} else if err != domain.ErrListItemNotFound {
		return nil, errors.InternalError("failed to check list membership", err)
	}

	if notes != nil {
		trimmed := validation.Sanitize(*notes)
		notes = &trimmed
	}

	position := 0
	if list.IsRanked {
		max, err := s.lists.MaxPosition(ctx, listID)
		if err != nil {
			return nil, errors.InternalError("failed to determine list position", err)
		}
		position = max + 1
	}

	item, err := s.lists.AddItem(ctx, listID, movie.ID, position, notes)
	if err == domain.ErrDuplicateListItem {
		return nil, errors.ConflictError("this movie is already on the list")
	}
	if err != nil {
		return nil, errors.InternalError("failed to add movie to list", err)
	}
	item.Movie = &domain.MovieSummary{
		TMDBID:      movie.TMDBID,
		Title:       movie.Title,
		PosterPath:  movie.PosterPath,
		ReleaseDate: movie.ReleaseDate,
		VoteAverage: movie.VoteAverage,
	}
	return item, nil
}

// RemoveListItem removes a film from the caller's own list.
func (s *Service) RemoveListItem(ctx context.Context, userID, listID uuid.UUID, tmdbID int) error {
	if _, err := s.loadOwnedList(ctx, userID, listID); err != nil {
		return err
	}

	movie, err := s.movies.GetByTMDBID(ctx, tmdbID)
	if err == domain.ErrMovieNotFound {
		return errors.NotFoundError("movie is not on the list")
	}
	if err != nil {
		return errors.InternalError("failed to look up movie", err)
	}

	err = s.lists.RemoveItem(ctx, listID, movie.ID)
	if err == domain.ErrListItemNotFound {
		return errors.NotFoundError("movie is not on the list")
	}
	if err != nil {
		return errors.InternalError("failed to remove movie from list", err)
	}
	return nil
}

func (s *Service) loadVisibleList(ctx context.Context, listID uuid.UUID, viewerID *uuid.UUID) (*domain.List, error) {
	list, err := s.lists.GetByID(ctx, listID)
	if err == domain.ErrListNotFound {
		return nil, errors.NotFoundError("list not found")
	}
	if err != nil {
		return nil, errors.InternalError("failed to load list", err)
	}

	if !list.IsPublic && (viewerID == nil || *viewerID != list.UserID) {
		return nil, errors.NotFoundError("list not found")
	}
	return list, nil
}

func (s *Service) loadOwnedList(ctx context.Context, userID, listID uuid.UUID) (*domain.List, error) {
	list, err := s.lists.GetByID(ctx, listID)
	if err == domain.ErrListNotFound {
		return nil, errors.NotFoundError("list not found")
	}
	if err != nil {
		return nil, errors.InternalError("failed to load list", err)
	}

	if list.UserID != userID {
		return nil, errors.ForbiddenError("you can only modify your own lists")
	}
	return list, nil
}
