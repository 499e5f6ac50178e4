package booking

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
)

type BookingStatus string

const (
	StatusConfirmed BookingStatus = "confirmed"
	StatusCanceled  BookingStatus = "canceled"
	// StatusCompleted is part of the status vocabulary the clients know,
	// but no code path sets it yet.
	StatusCompleted BookingStatus = "completed"
)

type Booking struct {
	ID          uuid.UUID `db:"id"`
	RiderName   string    `db:"rider_name"`
	Email       string    `db:"email"`
	Campus      string    `db:"campus"`
	PickupCode  string    `db:"pickup_code"`
	DropoffCode string    `db:"dropoff_code"`
	// ScheduledTime is the planned pickup time; null means ASAP.
	ScheduledTime sql.NullTime  `db:"scheduled_time"`
	Status        BookingStatus `db:"status"`
	ETAMinutes    int           `db:"eta_minutes"`
	Seats         int           `db:"seats"`

	// ShuttleID and ShuttleIdentifier reference the assigned shuttle.
	ShuttleID         *uuid.UUID     `db:"shuttle_id"`
	ShuttleIdentifier sql.NullString `db:"shuttle_identifier"`

	QRToken   sql.NullString `db:"qr_token"`
	CreatedAt time.Time      `db:"created_at"`
}
