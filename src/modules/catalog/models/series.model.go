package catalog

import (
	"cinestash/src/utils"

	"gorm.io/gorm"
)

type Series struct {
	Record
	Episode Strings `json:"episode"`
}

func (*Series) Kind() Kind {
	return KindSeries
}

func (Series) TableName() string {
	return "series"
}

func (s *Series) BeforeCreate(tx *gorm.DB) error {
	if s.Episode == nil {
		s.Episode = Strings{}
	}
	return s.Record.BeforeCreate(tx)
}

// RemoveEpisodeAt drops every episode equal to the one at the 1-based
// position. Positions outside the list leave it untouched.
func (s *Series) RemoveEpisodeAt(position string) bool {
	idx, ok := utils.ParsePosition(position, len(s.Episode))
	if !ok {
		return false
	}
	target := s.Episode[idx]
	kept := Strings{}
	for _, ep := range s.Episode {
		if ep != target {
			kept = append(kept, ep)
		}
	}
	s.Episode = kept
	return true
}
