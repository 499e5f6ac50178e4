package route

import (
	"database/sql/driver"
	"fmt"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
)

// StopCodes is the ordered list of stop codes a route follows, stored as a
// JSONB array. The codes are not validated against the stops table.
type StopCodes []string

func (s StopCodes) Value() (driver.Value, error) {
	return json.Marshal(s)
}

func (s *StopCodes) Scan(i any) error {
	switch v := i.(type) {
	case nil:
		*s = nil
		return nil
	case []byte:
		return json.Unmarshal(v, s)
	case string:
		return json.Unmarshal([]byte(v), s)
	}
	return fmt.Errorf("cannot scan %T into StopCodes", i)
}

type Route struct {
	ID        uuid.UUID
	Campus    string
	Name      string
	StopCodes StopCodes `db:"stop_codes"`
	Active    bool
}
