package booking

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

var ErrNotFound = errors.New("booking not found")

type Repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a new booking and fills in the generated fields.
func (r *Repository) Create(ctx context.Context, b *Booking) error {
	return r.db.GetContext(ctx, b, createBookingQuery,
		b.ID, b.RiderName, b.Email, b.Campus, b.PickupCode, b.DropoffCode,
		b.ScheduledTime, b.Status, b.ETAMinutes, b.Seats,
		b.ShuttleID, b.ShuttleIdentifier, b.QRToken)
}

const createBookingQuery = `
INSERT INTO bookings (id, rider_name, email, campus, pickup_code, dropoff_code,
    scheduled_time, status, eta_minutes, seats, shuttle_id, shuttle_identifier, qr_token, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, now())
RETURNING *
`

// GetByID fetches a single booking by its ID.
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (Booking, error) {
	var b Booking
	err := r.db.GetContext(ctx, &b, getByIDQuery, id)
	if errors.Is(err, sql.ErrNoRows) {
		return Booking{}, ErrNotFound
	}
	return b, err
}

const getByIDQuery = `SELECT * FROM bookings WHERE id = $1`

// GetBookings fetches all bookings, optionally filtered by rider email and
// campus. Results are sorted by creation time, newest first.
func (r *Repository) GetBookings(ctx context.Context, email, campus *string) ([]Booking, error) {
	var bookings []Booking

	if email != nil && campus != nil {
		err := r.db.SelectContext(ctx, &bookings, getBookingsByEmailAndCampusQuery, *email, *campus)
		return bookings, err
	}

	if email != nil {
		err := r.db.SelectContext(ctx, &bookings, getBookingsByEmailQuery, *email)
		return bookings, err
	}

	if campus != nil {
		err := r.db.SelectContext(ctx, &bookings, getBookingsByCampusQuery, *campus)
		return bookings, err
	}

	err := r.db.SelectContext(ctx, &bookings, getBookingsQuery)
	return bookings, err
}

const getBookingsQuery = `SELECT * FROM bookings ORDER BY created_at DESC`

const getBookingsByEmailQuery = `SELECT * FROM bookings WHERE email = $1 ORDER BY created_at DESC`

const getBookingsByCampusQuery = `SELECT * FROM bookings WHERE campus = $1 ORDER BY created_at DESC`

const getBookingsByEmailAndCampusQuery = `SELECT * FROM bookings WHERE email = $1 AND campus = $2 ORDER BY created_at DESC`

// MarkCanceled flips a booking to canceled and returns the updated row.
func (r *Repository) MarkCanceled(ctx context.Context, id uuid.UUID) (Booking, error) {
	var b Booking
	err := r.db.GetContext(ctx, &b, markCanceledQuery, id)
	if errors.Is(err, sql.ErrNoRows) {
		return Booking{}, ErrNotFound
	}
	return b, err
}

const markCanceledQuery = `UPDATE bookings SET status = 'canceled' WHERE id = $1 RETURNING *`
