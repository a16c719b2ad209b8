package catalog

import "time"

// Counters are the popularity figures tracked per catalog entity.
type Counters struct {
	Views  int64   `json:"views" gorm:"not null;default:0;index"`
	Likes  int64   `json:"likes" gorm:"not null;default:0"`
	Rating float64 `json:"rating" gorm:"not null;default:0"`
}

func (c *Counters) Stats() *Counters {
	return c
}

type PopularMovie struct {
	ID        uint      `json:"_id" gorm:"primaryKey"`
	MovieID   string    `json:"movieId" gorm:"type:varchar(64);not null;uniqueIndex"`
	Movie     *Movie    `json:"movie,omitempty" gorm:"foreignKey:MovieID;references:ID"`
	Counters  `gorm:"embedded"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (PopularMovie) TableName() string        { return "popular_movies" }
func (*PopularMovie) RefColumn() string       { return "movie_id" }
func (*PopularMovie) Association() string     { return "Movie" }
func (p *PopularMovie) SetRef(movieID string) { p.MovieID = movieID }

type PopularSeries struct {
	ID        uint      `json:"_id" gorm:"primaryKey"`
	SeriesID  string    `json:"seriesId" gorm:"type:varchar(64);not null;uniqueIndex"`
	Series    *Series   `json:"series,omitempty" gorm:"foreignKey:SeriesID;references:ID"`
	Counters  `gorm:"embedded"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (PopularSeries) TableName() string         { return "popular_series" }
func (*PopularSeries) RefColumn() string        { return "series_id" }
func (*PopularSeries) Association() string      { return "Series" }
func (p *PopularSeries) SetRef(seriesID string) { p.SeriesID = seriesID }

// Popularity is satisfied by pointers to the popularity models.
type Popularity[T any] interface {
	*T
	TableName() string
	RefColumn() string
	Association() string
	SetRef(id string)
	Stats() *Counters
}
