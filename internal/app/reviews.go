package app

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/ctonneslan/letterboxd-clone/internal/domain"
	"github.com/ctonneslan/letterboxd-clone/internal/errors"
	"github.com/ctonneslan/letterboxd-clone/internal/validation"
)

// CreateReviewInput carries the fields of a review creation request.
type CreateReviewInput struct {
	Rating           *float64   `json:"rating"`
	ReviewText       *string    `json:"reviewText"`
	ContainsSpoilers bool       `json:"containsSpoilers"`
	IsPublic         *bool      `json:"isPublic"`
	WatchedDate      *time.Time `json:"watchedDate"`
}

// CreateReview logs a film for the user. The film is resolved (and cached)
// first, so a review can reference any provider film on first mention. One
// review per (user, film); the second attempt conflicts.
func (s *Service) CreateReview(ctx context.Context, userID uuid.UUID, tmdbID int, input CreateReviewInput) (*domain.Review, error) {
	if input.Rating == nil && input.ReviewText == nil {
		return nil, errors.ValidationError("a rating or review text is required")
	}
	if input.Rating != nil {
		if err := validation.Rating(*input.Rating); err != nil {
			return nil, errors.ValidationError(err.Error())
		}
	}
	if input.ReviewText != nil {
		text := validation.Sanitize(*input.ReviewText)
		input.ReviewText = &text
	}

	movie, err := s.Resolve(ctx, tmdbID)
	if err != nil {
		return nil, err
	}

	if _, err := s.reviews.GetByUserAndMovie(ctx, userID, movie.ID); err == nil {
		return nil, errors.ConflictError("you have already reviewed this movie")
	} else if err != domain.ErrReviewNotFound {
		return nil, errors.InternalError("failed to check existing review", err)
	}

	isPublic := true
	if input.IsPublic != nil {
		isPublic = *input.IsPublic
	}

	review, err := s.reviews.Create(ctx, &domain.Review{
		UserID:           userID,
		MovieID:          movie.ID,
		Rating:           input.Rating,
		ReviewText:       input.ReviewText,
		ContainsSpoilers: input.ContainsSpoilers,
		IsPublic:         isPublic,
		WatchedDate:      input.WatchedDate,
	})
	if err == domain.ErrDuplicateReview {
		return nil, errors.ConflictError("you have already reviewed this movie")
	}
	if err != nil {
		return nil, errors.InternalError("failed to create review", err)
	}
	return review, nil
}

// GetReview fetches a single review. A private review is indistinguishable
// from an absent one to everyone but its owner.
func (s *Service) GetReview(ctx context.Context, reviewID uuid.UUID, viewerID *uuid.UUID) (*domain.Review, error) {
	review, err := s.loadVisibleReview(ctx, reviewID, viewerID)
	if err != nil {
		return nil, err
	}

	if viewerID != nil {
		liked, err := s.reviews.HasLike(ctx, review.ID, *viewerID)
		if err != nil {
			return nil, errors.InternalError("failed to check review like", err)
		}
		review.HasLiked = liked
	}
	return review, nil
}

// GetMyMovieReview returns the caller's own review of a film, if any.
func (s *Service) GetMyMovieReview(ctx context.Context, userID uuid.UUID, tmdbID int) (*domain.Review, error) {
	movie, err := s.movies.GetByTMDBID(ctx, tmdbID)
	if err == domain.ErrMovieNotFound {
		return nil, errors.NotFoundError("review not found")
	}
	if err != nil {
		return nil, errors.InternalError("failed to look up movie", err)
	}

	review, err := s.reviews.GetByUserAndMovie(ctx, userID, movie.ID)
	if err == domain.ErrReviewNotFound {
		return nil, errors.NotFoundError("review not found")
	}
	if err != nil {
		return nil, errors.InternalError("failed to load review", err)
	}
	return review, nil
}

// ListMovieReviews returns the public reviews of a film, newest first.
func (s *Service) ListMovieReviews(ctx context.Context, tmdbID int, viewerID *uuid.UUID, limit, offset int) ([]*domain.Review, error) {
	limit, offset = clampPagination(limit, offset)

	movie, err := s.movies.GetByTMDBID(ctx, tmdbID)
	if err == domain.ErrMovieNotFound {
		return []*domain.Review{}, nil
	}
	if err != nil {
		return nil, errors.InternalError("failed to look up movie", err)
	}

	reviews, err := s.reviews.ListByMovie(ctx, movie.ID, viewerID, limit, offset)
	if err != nil {
		return nil, errors.InternalError("failed to list reviews", err)
	}
	return reviews, nil
}

// ListUserReviews returns a user's reviews. Non-owners see public rows only.
func (s *Service) ListUserReviews(ctx context.Context, username string, viewerID *uuid.UUID, limit, offset int) ([]*domain.Review, error) {
	limit, offset = clampPagination(limit, offset)

	user, err := s.users.GetByUsername(ctx, username)
	if err == domain.ErrUserNotFound {
		return nil, errors.NotFoundError("user not found")
	}
	if err != nil {
		return nil, errors.InternalError("failed to look up user", err)
	}

	publicOnly := viewerID == nil || *viewerID != user.ID
	reviews, err := s.reviews.ListByUser(ctx, user.ID, publicOnly, limit, offset)
	if err != nil {
		return nil, errors.InternalError("failed to list reviews", err)
	}
	return reviews, nil
}

// UpdateReview applies a partial update to the caller's own review. The
// ownership check precedes field validation.
func (s *Service) UpdateReview(ctx context.Context, userID, reviewID uuid.UUID, patch domain.ReviewPatch) (*domain.Review, error) {
	review, err := s.loadOwnedReview(ctx, userID, reviewID)
	if err != nil {
		return nil, err
	}

	if patch.Rating.Set() && patch.Rating.Ptr() != nil {
		if err := validation.Rating(*patch.Rating.Ptr()); err != nil {
			return nil, errors.ValidationError(err.Error())
		}
	}
	if patch.ReviewText.Set() && patch.ReviewText.Ptr() != nil {
		patch.ReviewText = domain.Some(validation.Sanitize(*patch.ReviewText.Ptr()))
	}

	if patch.Empty() {
		return review, nil
	}

	updated, err := s.reviews.Update(ctx, reviewID, patch)
	if err == domain.ErrReviewNotFound {
		return nil, errors.NotFoundError("review not found")
	}
	if err != nil {
		return nil, errors.InternalError("failed to update review", err)
	}
	return updated, nil
}

// DeleteReview removes the caller's own review.
func (s *Service) DeleteReview(ctx context.Context, userID, reviewID uuid.UUID) error {
	if _, err := s.loadOwnedReview(ctx, userID, reviewID); err != nil {
		return err
	}

	err := s.reviews.Delete(ctx, reviewID)
	if err == domain.ErrReviewNotFound {
		return errors.NotFoundError("review not found")
	}
	if err != nil {
		return errors.InternalError("failed to delete review", err)
	}
	return nil
}

// LikeReview records the caller's vote on a visible review and returns the
// updated like count. A second like without an intervening unlike conflicts.
func (s *Service) LikeReview(ctx context.Context, userID, reviewID uuid.UUID) (int, error) {
	if _, err := s.loadVisibleReview(ctx, reviewID, &userID); err != nil {
		return 0, err
	}

	err := s.reviews.AddLike(ctx, reviewID, userID)
	if err == domain.ErrDuplicateLike {
		return 0, errors.ConflictError("you have already liked this review")
	}
	if err != nil {
		return 0, errors.InternalError("failed to like review", err)
	}
	return s.likeCount(ctx, reviewID)
}

// UnlikeReview withdraws the caller's vote and returns the updated like
// count. Unliking without a prior like is not-found, not success.
func (s *Service) UnlikeReview(ctx context.Context, userID, reviewID uuid.UUID) (int, error) {
	if _, err := s.loadVisibleReview(ctx, reviewID, &userID); err != nil {
		return 0, err
	}

	err := s.reviews.RemoveLike(ctx, reviewID, userID)
	if err == domain.ErrLikeNotFound {
		return 0, errors.NotFoundError("you have not liked this review")
	}
	if err != nil {
		return 0, errors.InternalError("failed to unlike review", err)
	}
	return s.likeCount(ctx, reviewID)
}

func (s *Service) likeCount(ctx context.Context, reviewID uuid.UUID) (int, error) {
	count, err := s.reviews.CountLikes(ctx, reviewID)
	if err != nil {
		return 0, errors.InternalError("failed to count review likes", err)
	}
	return count, nil
}

// loadVisibleReview fetches a review and applies the visibility rule:
// private rows exist only for their owner.
func (s *Service) loadVisibleReview(ctx context.Context, reviewID uuid.UUID, viewerID *uuid.UUID) (*domain.Review, error) {
	review, err := s.reviews.GetByID(ctx, reviewID)
	if err == domain.ErrReviewNotFound {
		return nil, errors.NotFoundError("review not found")
	}
	if err != nil {
		return nil, errors.InternalError("failed to load review", err)
	}

	if !review.IsPublic && (viewerID == nil || *viewerID != review.UserID) {
		return nil, errors.NotFoundError("review not found")
	}
	return review, nil
}

// loadOwnedReview fetches a review and enforces ownership for mutation.
func (s *Service) loadOwnedReview(ctx context.Context, userID, reviewID uuid.UUID) (*domain.Review, error) {
	review, err := s.reviews.GetByID(ctx, reviewID)
	if err == domain.ErrReviewNotFound {
		return nil, errors.NotFoundError("review not found")
	}
	if err != nil {
		return nil, errors.InternalError("failed to load review", err)
	}

	if review.UserID != userID {
		return nil, errors.ForbiddenError("you can only modify your own reviews")
	}
	return review, nil
}
