package domain

import "errors"

var (
	ErrUserNotFound           = errors.New("user not found")
	ErrMovieNotFound          = errors.New("movie not found")
	ErrReviewNotFound         = errors.New("review not found")
	ErrListNotFound           = errors.New("list not found")
	ErrListItemNotFound       = errors.New("list item not found")
	ErrLikeNotFound           = errors.New("like not found")
	ErrWatchlistEntryNotFound = errors.New("watchlist entry not found")

	ErrDuplicateUsername       = errors.New("username already taken")
	ErrDuplicateEmail          = errors.New("email already registered")
	ErrDuplicateReview         = errors.New("review already exists for this user and movie")
	ErrDuplicateLike           = errors.New("review already liked")
	ErrDuplicateListItem       = errors.New("movie already in this list")
	ErrDuplicateWatchlistEntry = errors.New("movie already in watchlist")
)
