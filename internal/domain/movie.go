package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Movie is a locally cached film. TMDBID is the immutable external identity;
// ID is the locally assigned identity every other entity references, so
// referential stability survives external renumbering.
type Movie struct {
	ID                  uuid.UUID
	TMDBID              int
	IMDBID              *string
	Title               string
	OriginalTitle       *string
	Overview            *string
	Tagline             *string
	ReleaseDate         *time.Time
	Runtime             *int
	PosterPath          *string
	BackdropPath        *string
	VoteAverage         *float64
	VoteCount           *int
	Popularity          *float64
	Genres              []Genre
	ProductionCompanies []ProductionCompany
	ProductionCountries []ProductionCountry
	SpokenLanguages     []SpokenLanguage
	Status              *string
	Budget              *int64
	Revenue             *int64
	OriginalLanguage    *string
	Adult               bool
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

type Genre struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type ProductionCompany struct {
	ID            int     `json:"id"`
	Name          string  `json:"name"`
	LogoPath      *string `json:"logo_path"`
	OriginCountry string  `json:"origin_country"`
}

type ProductionCountry struct {
	ISO31661 string `json:"iso_3166_1"`
	Name     string `json:"name"`
}

type SpokenLanguage struct {
	ISO6391     string `json:"iso_639_1"`
	Name        string `json:"name"`
	EnglishName string `json:"english_name"`
}

// MovieSummary is the compact movie shape joined into reviews, list items
// and watchlist entries.
type MovieSummary struct {
	TMDBID      int        `json:"tmdbId"`
	Title       string     `json:"title"`
	PosterPath  *string    `json:"posterPath"`
	ReleaseDate *time.Time `json:"releaseDate"`
	VoteAverage *float64   `json:"voteAverage"`
}

type MovieRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*Movie, error)
	// GetByTMDBID is the cache-aside read path.
	GetByTMDBID(ctx context.Context, tmdbID int) (*Movie, error)
	// Upsert inserts or refreshes the row keyed by TMDBID and returns the
	// persisted row. It must be idempotent under concurrent callers.
	Upsert(ctx context.Context, movie *Movie) (*Movie, error)
}
