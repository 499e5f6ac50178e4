package stop

import (
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

// Stop is a named, coded pickup/dropoff point on a campus.
type Stop struct {
	ID     uuid.UUID
	Campus string
	Name   string
	// Code is the short identifier riders and routes refer to (e.g. "TSN-01").
	Code     string
	Location pgtype.Point
	Active   bool
}
