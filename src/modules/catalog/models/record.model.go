package catalog

import (
	"time"

	"cinestash/src/utils"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Kind names a catalog collection.
type Kind string

const (
	KindMovie  Kind = "movie"
	KindSeries Kind = "series"
)

func (k Kind) Label() string {
	switch k {
	case KindMovie:
		return "Movie"
	case KindSeries:
		return "Series"
	}
	return string(k)
}

// Record holds the fields shared by every catalog entity.
type Record struct {
	ID          string     `json:"_id" gorm:"primaryKey;type:varchar(64)"`
	Title       string     `json:"title" gorm:"not null"`
	Description string     `json:"description" gorm:"type:text"`
	Slug        string     `json:"slug" gorm:"type:varchar(255);uniqueIndex;not null"`
	Image       string     `json:"image"`
	ImageID     string     `json:"imageId"`
	Tags        Strings    `json:"tags"`
	ReleaseDate *time.Time `json:"releaseDate"`
	CreatedAt   time.Time  `json:"createdAt" gorm:"index"`
	UpdatedAt   time.Time  `json:"updatedAt" gorm:"index"`
}

func (r *Record) Base() *Record {
	return r
}

// SetTitle assigns the title and derives a new slug from it. An unchanged
// title keeps the current slug. Reports whether the slug was regenerated.
func (r *Record) SetTitle(title string) bool {
	if r.Slug != "" && r.Title == title {
		return false
	}
	r.Title = title
	r.Slug = utils.Slugify(title)
	return true
}

func (r *Record) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	if r.Slug == "" {
		r.Slug = utils.Slugify(r.Title)
	}
	if r.Tags == nil {
		r.Tags = Strings{}
	}
	return nil
}

// Entity is satisfied by pointers to the catalog models.
type Entity[T any] interface {
	*T
	Base() *Record
	Kind() Kind
}
