package catalog

import (
	"database/sql/driver"
	"encoding/json"

	"github.com/lib/pq"
	"gorm.io/gorm"
	"gorm.io/gorm/schema"
)

// Strings is an ordered list column: text[] on postgres, the same array
// literal in a text column elsewhere.
type Strings []string

func (s Strings) Value() (driver.Value, error) {
	return pq.StringArray(s).Value()
}

func (s *Strings) Scan(src interface{}) error {
	return (*pq.StringArray)(s).Scan(src)
}

func (Strings) GormDataType() string {
	return "text[]"
}

func (Strings) GormDBDataType(db *gorm.DB, _ *schema.Field) string {
	if db.Dialector.Name() == "postgres" {
		return "text[]"
	}
	return "text"
}

func (s Strings) MarshalJSON() ([]byte, error) {
	if s == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]string(s))
}
