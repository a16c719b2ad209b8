package catalog

import (
	"time"

	models "cinestash/src/modules/catalog/models"
	media "cinestash/src/modules/media/services"
	"cinestash/src/utils"
)

// CreateInput is a manually entered entity as received from a form.
type CreateInput struct {
	Title       string
	Description string
	Tags        string
	ReleaseDate string
	// Movie is the streaming link; required for movies.
	Movie string
	// Episode is an optional comma-separated initial list for series.
	Episode string
	Image   *media.Upload
}

func (in CreateInput) record() (models.Record, error) {
	var rec models.Record
	if in.Title == "" {
		return rec, utils.NewValidationError("Title is required")
	}
	if err := validateImage(in.Image); err != nil {
		return rec, err
	}
	released, err := parseReleaseDate(in.ReleaseDate)
	if err != nil {
		return rec, err
	}
	rec.SetTitle(in.Title)
	rec.Description = in.Description
	rec.Tags = models.Strings(utils.SplitList(in.Tags))
	rec.ReleaseDate = released
	return rec, nil
}

func parseReleaseDate(raw string) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	for _, layout := range []string{"2006-01-02", time.RFC3339} {
		if t, err := time.Parse(layout, raw); err == nil {
			return &t, nil
		}
	}
	return nil, utils.NewValidationError("releaseDate must be YYYY-MM-DD or RFC 3339")
}
