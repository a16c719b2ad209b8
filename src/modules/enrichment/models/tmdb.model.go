package enrichment

import "time"

// Kind is the TMDB media type segment.
type Kind string

const (
	KindMovie Kind = "movie"
	KindTV    Kind = "tv"
)

type Genre struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type GenreList struct {
	Genres []Genre `json:"genres"`
}

// Result covers both movie and tv payloads from search and detail calls.
// Search results carry genre_ids, detail responses embed genres.
type Result struct {
	ID            int     `json:"id"`
	Title         string  `json:"title"`
	OriginalTitle string  `json:"original_title"`
	Name          string  `json:"name"`
	OriginalName  string  `json:"original_name"`
	Overview      string  `json:"overview"`
	PosterPath    string  `json:"poster_path"`
	BackdropPath  string  `json:"backdrop_path"`
	ReleaseDate   string  `json:"release_date"`
	FirstAirDate  string  `json:"first_air_date"`
	VoteCount     int     `json:"vote_count"`
	Popularity    float64 `json:"popularity"`
	GenreIDs      []int   `json:"genre_ids"`
	Genres        []Genre `json:"genres"`
}

type SearchResponse struct {
	Page         int      `json:"page"`
	Results      []Result `json:"results"`
	TotalResults int      `json:"total_results"`
}

// Normalized is a TMDB result mapped onto catalog fields.
type Normalized struct {
	Title       string
	Description string
	Image       string
	ReleaseDate *time.Time
	Tags        []string
}

type SearchOptions struct {
	Language string
	Region   string
}
