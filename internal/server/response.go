package server

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/ctonneslan/letterboxd-clone/internal/domain"
)

// respond writes the success envelope shared by every endpoint.
func respond(c echo.Context, status int, data any) error {
	if err := c.JSON(status, map[string]any{"success": true, "data": data}); err != nil {
		return fmt.Errorf("failed to send JSON response: %w", err)
	}
	return nil
}

// userView is the caller's own account shape; it includes the email.
type userView struct {
	ID            uuid.UUID  `json:"id"`
	Username      string     `json:"username"`
	Email         string     `json:"email"`
	DisplayName   *string    `json:"displayName"`
	Bio           *string    `json:"bio"`
	AvatarURL     *string    `json:"avatarUrl"`
	EmailVerified bool       `json:"emailVerified"`
	IsPublic      bool       `json:"isPublic"`
	CreatedAt     time.Time  `json:"createdAt"`
	LastLoginAt   *time.Time `json:"lastLoginAt"`
}

// profileView is the shape other users see; no email, no account flags.
type profileView struct {
	Username    string    `json:"username"`
	DisplayName *string   `json:"displayName"`
	Bio         *string   `json:"bio"`
	AvatarURL   *string   `json:"avatarUrl"`
	CreatedAt   time.Time `json:"createdAt"`
}

func toUserView(u *domain.User) userView {
	return userView{
		ID:            u.ID,
		Username:      u.Username,
		Email:         u.Email,
		DisplayName:   u.DisplayName,
		Bio:           u.Bio,
		AvatarURL:     u.AvatarURL,
		EmailVerified: u.EmailVerified,
		IsPublic:      u.IsPublic,
		CreatedAt:     u.CreatedAt,
		LastLoginAt:   u.LastLoginAt,
	}
}

func toProfileView(u *domain.User) profileView {
	return profileView{
		Username:    u.Username,
		DisplayName: u.DisplayName,
		Bio:         u.Bio,
		AvatarURL:   u.AvatarURL,
		CreatedAt:   u.CreatedAt,
	}
}

type movieView struct {
	ID                  uuid.UUID                  `json:"id"`
	TMDBID              int                        `json:"tmdbId"`
	IMDBID              *string                    `json:"imdbId"`
	Title               string                     `json:"title"`
	OriginalTitle       *string                    `json:"originalTitle"`
	Overview            *string                    `json:"overview"`
	Tagline             *string                    `json:"tagline"`
	ReleaseDate         *time.Time                 `json:"releaseDate"`
	Runtime             *int                       `json:"runtime"`
	PosterPath          *string                    `json:"posterPath"`
	BackdropPath        *string                    `json:"backdropPath"`
	VoteAverage         *float64                   `json:"voteAverage"`
	VoteCount           *int                       `json:"voteCount"`
	Popularity          *float64                   `json:"popularity"`
	Genres              []domain.Genre             `json:"genres"`
	ProductionCompanies []domain.ProductionCompany `json:"productionCompanies"`
	ProductionCountries []domain.ProductionCountry `json:"productionCountries"`
	SpokenLanguages     []domain.SpokenLanguage    `json:"spokenLanguages"`
	Status              *string                    `json:"status"`
	Budget              *int64                     `json:"budget"`
	Revenue             *int64                     `json:"revenue"`
	OriginalLanguage    *string                    `json:"originalLanguage"`
	Adult               bool                       `json:"adult"`
}

func toMovieView(m *domain.Movie) movieView {
	return movieView{
		ID:                  m.ID,
		TMDBID:              m.TMDBID,
		IMDBID:              m.IMDBID,
		Title:               m.Title,
		OriginalTitle:       m.OriginalTitle,
		Overview:            m.Overview,
		Tagline:             m.Tagline,
		ReleaseDate:         m.ReleaseDate,
		Runtime:             m.Runtime,
		PosterPath:          m.PosterPath,
		BackdropPath:        m.BackdropPath,
		VoteAverage:         m.VoteAverage,
		VoteCount:           m.VoteCount,
		Popularity:          m.Popularity,
		Genres:              m.Genres,
		ProductionCompanies: m.ProductionCompanies,
		ProductionCountries: m.ProductionCountries,
		SpokenLanguages:     m.SpokenLanguages,
		Status:              m.Status,
		Budget:              m.Budget,
		Revenue:             m.Revenue,
		OriginalLanguage:    m.OriginalLanguage,
		Adult:               m.Adult,
	}
}

type reviewView struct {
	ID               uuid.UUID            `json:"id"`
	Rating           *float64             `json:"rating"`
	ReviewText       *string              `json:"reviewText"`
	ContainsSpoilers bool                 `json:"containsSpoilers"`
	IsPublic         bool                 `json:"isPublic"`
	WatchedDate      *time.Time           `json:"watchedDate"`
	LikeCount        int                  `json:"likeCount"`
	HasLiked         bool                 `json:"hasLiked"`
	CreatedAt        time.Time            `json:"createdAt"`
	UpdatedAt        time.Time            `json:"updatedAt"`
	Author           *domain.UserSummary  `json:"author,omitempty"`
	Movie            *domain.MovieSummary `json:"movie,omitempty"`
}

func toReviewView(r *domain.Review) reviewView {
	return reviewView{
		ID:               r.ID,
		Rating:           r.Rating,
		ReviewText:       r.ReviewText,
		ContainsSpoilers: r.ContainsSpoilers,
		IsPublic:         r.IsPublic,
		WatchedDate:      r.WatchedDate,
		LikeCount:        r.LikeCount,
		HasLiked:         r.HasLiked,
		CreatedAt:        r.CreatedAt,
		UpdatedAt:        r.UpdatedAt,
		Author:           r.Author,
		Movie:            r.Movie,
	}
}

func toReviewViews(reviews []*domain.Review) []reviewView {
	views := make([]reviewView, 0, len(reviews))
	for _, r := range reviews {
		views = append(views, toReviewView(r))
	}
	return views
}

type listView struct {
	ID          uuid.UUID           `json:"id"`
	Name        string              `json:"name"`
	Description *string             `json:"description"`
	IsPublic    bool                `json:"isPublic"`
	IsRanked    bool                `json:"isRanked"`
	ItemCount   int                 `json:"itemCount"`
	CreatedAt   time.Time           `json:"createdAt"`
	UpdatedAt   time.Time           `json:"updatedAt"`
	Owner       *domain.UserSummary `json:"owner,omitempty"`
	Items       []listItemView      `json:"items,omitempty"`
}

type listItemView struct {
	ID       uuid.UUID            `json:"id"`
	Position int                  `json:"position"`
	Notes    *string              `json:"notes"`
	AddedAt  time.Time            `json:"addedAt"`
	Movie    *domain.MovieSummary `json:"movie"`
}

func toListView(l *domain.List) listView {
	return listView{
		ID:          l.ID,
		Name:        l.Name,
		Description: l.Description,
		IsPublic:    l.IsPublic,
		IsRanked:    l.IsRanked,
		ItemCount:   l.ItemCount,
		CreatedAt:   l.CreatedAt,
		UpdatedAt:   l.UpdatedAt,
		Owner:       l.Owner,
	}
}

func toListItemView(item *domain.ListItem) listItemView {
	return listItemView{
		ID:       item.ID,
		Position: item.Position,
		Notes:    item.Notes,
		AddedAt:  item.AddedAt,
		Movie:    item.Movie,
	}
}

type watchlistEntryView struct {
	ID      uuid.UUID            `json:"id"`
	AddedAt time.Time            `json:"addedAt"`
	Movie   *domain.MovieSummary `json:"movie"`
}

func toWatchlistEntryView(e *domain.WatchlistEntry) watchlistEntryView {
	return watchlistEntryView{
		ID:      e.ID,
		AddedAt: e.AddedAt,
		Movie:   e.Movie,
	}
}
