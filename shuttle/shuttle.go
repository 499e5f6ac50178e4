// Package shuttle
package shuttle

import (
	"database/sql"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

// Status is the coarse operational state of a shuttle. The column is free
// text, so values outside the constants below are accepted and kept as-is.
type Status string

const (
	StatusIdle        Status = "idle"
	StatusEnroute     Status = "enroute"
	StatusCharging    Status = "charging"
	StatusMaintenance Status = "maintenance"
)

// Shuttle represents a vehicle which can be assigned to bookings.
type Shuttle struct {
	// ID is an internal identifier for a shuttle record.
	ID uuid.UUID
	// Identifier is the fleet label painted on the vehicle (e.g. "GCTU-SH-01").
	// It should be unique across the fleet, but uniqueness is not enforced.
	Identifier string

	Campus    string
	RouteName sql.NullString `db:"route_name"`

	// BatteryLevel is a percentage between 0 and 100.
	BatteryLevel int `db:"battery_level"`

	// Location is the last reported position. Shuttles without trackers
	// have none.
	Location pgtype.Point

	Status Status

	// Capacity is the number of seats installed; Occupancy is how many are
	// currently reserved. Occupancy never exceeds Capacity through a
	// booking, though manual inserts are not checked.
	Capacity  int
	Occupancy int
}
