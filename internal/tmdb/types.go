package tmdb

import (
	"time"

	"github.com/ctonneslan/letterboxd-clone/internal/domain"
)

// Page is the provider-shaped result page returned by search and the
// curated listing endpoints. Nothing in it is persisted locally.
type Page struct {
	Page         int            `json:"page"`
	TotalPages   int            `json:"totalPages"`
	TotalResults int            `json:"totalResults"`
	Results      []MovieListing `json:"results"`
}

// MovieListing is the compact record the provider returns on list endpoints,
// keyed by the provider's own numeric identifier.
type MovieListing struct {
	TMDBID           int     `json:"tmdbId"`
	Title            string  `json:"title"`
	OriginalTitle    string  `json:"originalTitle"`
	Overview         string  `json:"overview"`
	ReleaseDate      string  `json:"releaseDate"`
	PosterPath       *string `json:"posterPath"`
	BackdropPath     *string `json:"backdropPath"`
	VoteAverage      float64 `json:"voteAverage"`
	VoteCount        int     `json:"voteCount"`
	Popularity       float64 `json:"popularity"`
	Adult            bool    `json:"adult"`
	GenreIDs         []int   `json:"genreIds"`
	OriginalLanguage string  `json:"originalLanguage"`
}

// MovieDetail is the full record from the detail endpoint.
type MovieDetail struct {
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
	Genres              []domain.Genre
	ProductionCompanies []domain.ProductionCompany
	ProductionCountries []domain.ProductionCountry
	SpokenLanguages     []domain.SpokenLanguage
	Status              *string
	Budget              *int64
	Revenue             *int64
	OriginalLanguage    *string
	Adult               bool
}

// ToMovie maps the provider record onto the local entity. The local ID and
// timestamps are assigned by the store on upsert.
func (d *MovieDetail) ToMovie() *domain.Movie {
	return &domain.Movie{
		TMDBID:              d.TMDBID,
		IMDBID:              d.IMDBID,
		Title:               d.Title,
		OriginalTitle:       d.OriginalTitle,
		Overview:            d.Overview,
		Tagline:             d.Tagline,
		ReleaseDate:         d.ReleaseDate,
		Runtime:             d.Runtime,
		PosterPath:          d.PosterPath,
		BackdropPath:        d.BackdropPath,
		VoteAverage:         d.VoteAverage,
		VoteCount:           d.VoteCount,
		Popularity:          d.Popularity,
		Genres:              d.Genres,
		ProductionCompanies: d.ProductionCompanies,
		ProductionCountries: d.ProductionCountries,
		SpokenLanguages:     d.SpokenLanguages,
		Status:              d.Status,
		Budget:              d.Budget,
		Revenue:             d.Revenue,
		OriginalLanguage:    d.OriginalLanguage,
		Adult:               d.Adult,
	}
}

// Wire shapes (snake_case as the provider sends them).

type pageResponse struct {
	Page         int         `json:"page"`
	TotalPages   int         `json:"total_pages"`
	TotalResults int         `json:"total_results"`
	Results      []movieWire `json:"results"`
}

type movieWire struct {
	ID               int     `json:"id"`
	Title            string  `json:"title"`
	OriginalTitle    string  `json:"original_title"`
	Overview         string  `json:"overview"`
	ReleaseDate      string  `json:"release_date"`
	PosterPath       *string `json:"poster_path"`
	BackdropPath     *string `json:"backdrop_path"`
	VoteAverage      float64 `json:"vote_average"`
	VoteCount        int     `json:"vote_count"`
	Popularity       float64 `json:"popularity"`
	Adult            bool    `json:"adult"`
	GenreIDs         []int   `json:"genre_ids"`
	OriginalLanguage string  `json:"original_language"`
}

type movieDetailWire struct {
	ID                  int                        `json:"id"`
	IMDBID              string                     `json:"imdb_id"`
	Title               string                     `json:"title"`
	OriginalTitle       string                     `json:"original_title"`
	Overview            string                     `json:"overview"`
	Tagline             string                     `json:"tagline"`
	ReleaseDate         string                     `json:"release_date"`
	Runtime             int                        `json:"runtime"`
	PosterPath          *string                    `json:"poster_path"`
	BackdropPath        *string                    `json:"backdrop_path"`
	VoteAverage         float64                    `json:"vote_average"`
	VoteCount           int                        `json:"vote_count"`
	Popularity          float64                    `json:"popularity"`
	Genres              []domain.Genre             `json:"genres"`
	ProductionCompanies []domain.ProductionCompany `json:"production_companies"`
	ProductionCountries []domain.ProductionCountry `json:"production_countries"`
	SpokenLanguages     []domain.SpokenLanguage    `json:"spoken_languages"`
	Status              string                     `json:"status"`
	Budget              int64                      `json:"budget"`
	Revenue             int64                      `json:"revenue"`
	OriginalLanguage    string                     `json:"original_language"`
	Adult               bool                       `json:"adult"`
}

func (p *pageResponse) toPage() *Page {
	results := make([]MovieListing, 0, len(p.Results))
	for _, m := range p.Results {
		results = append(results, MovieListing{
			TMDBID:           m.ID,
			Title:            m.Title,
			OriginalTitle:    m.OriginalTitle,
			Overview:         m.Overview,
			ReleaseDate:      m.ReleaseDate,
			PosterPath:       m.PosterPath,
			BackdropPath:     m.BackdropPath,
			VoteAverage:      m.VoteAverage,
			VoteCount:        m.VoteCount,
			Popularity:       m.Popularity,
			Adult:            m.Adult,
			GenreIDs:         m.GenreIDs,
			OriginalLanguage: m.OriginalLanguage,
		})
	}
	return &Page{
		Page:         p.Page,
		TotalPages:   p.TotalPages,
		TotalResults: p.TotalResults,
		Results:      results,
	}
}

func (w *movieDetailWire) toDetail() *MovieDetail {
	d := &MovieDetail{
		TMDBID:              w.ID,
		Title:               w.Title,
		IMDBID:              optString(w.IMDBID),
		OriginalTitle:       optString(w.OriginalTitle),
		Overview:            optString(w.Overview),
		Tagline:             optString(w.Tagline),
		PosterPath:          w.PosterPath,
		BackdropPath:        w.BackdropPath,
		Genres:              w.Genres,
		ProductionCompanies: w.ProductionCompanies,
		ProductionCountries: w.ProductionCountries,
		SpokenLanguages:     w.SpokenLanguages,
		Status:              optString(w.Status),
		OriginalLanguage:    optString(w.OriginalLanguage),
		Adult:               w.Adult,
	}

	if w.Runtime > 0 {
		d.Runtime = &w.Runtime
	}
	if w.VoteCount > 0 {
		d.VoteCount = &w.VoteCount
	}
	d.VoteAverage = &w.VoteAverage
	d.Popularity = &w.Popularity
	if w.Budget > 0 {
		d.Budget = &w.Budget
	}
	if w.Revenue > 0 {
		d.Revenue = &w.Revenue
	}

	if w.ReleaseDate != "" {
		if t, err := time.Parse("2006-01-02", w.ReleaseDate); err == nil {
			d.ReleaseDate = &t
		}
	}

	return d
}

func optString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
