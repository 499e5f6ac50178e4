package shuttle

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jmoiron/sqlx"
)

var (
	ErrNotFound         = errors.New("shuttle not found")
	ErrNoneAvailable    = errors.New("no shuttle available")
	ErrCapacityExceeded = errors.New("shuttle capacity exceeded")
)

type Repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a new shuttle and fills in the generated fields.
func (r *Repository) Create(ctx context.Context, s *Shuttle) error {
	return r.db.GetContext(ctx, s, createShuttle,
		s.ID, s.Identifier, s.Campus, s.RouteName, s.BatteryLevel, s.Location, s.Status, s.Capacity, s.Occupancy)
}

const createShuttle = `
INSERT INTO shuttles (id, identifier, campus, route_name, battery_level, location, status, capacity, occupancy)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
RETURNING *
`

// GetShuttles fetches all shuttles, optionally filtered by campus and status.
func (r *Repository) GetShuttles(ctx context.Context, campus, status *string) ([]Shuttle, error) {
	var shuttles []Shuttle

	if campus != nil && status != nil {
		err := r.db.SelectContext(ctx, &shuttles, getShuttlesByCampusAndStatus, *campus, *status)
		return shuttles, err
	}

	if campus != nil {
		err := r.db.SelectContext(ctx, &shuttles, getShuttlesByCampus, *campus)
		return shuttles, err
	}

	if status != nil {
		err := r.db.SelectContext(ctx, &shuttles, getShuttlesByStatus, *status)
		return shuttles, err
	}

	err := r.db.SelectContext(ctx, &shuttles, getShuttles)
	return shuttles, err
}

const getShuttles = `SELECT * FROM shuttles ORDER BY identifier ASC`

const getShuttlesByCampus = `SELECT * FROM shuttles WHERE campus = $1 ORDER BY identifier ASC`

const getShuttlesByStatus = `SELECT * FROM shuttles WHERE status = $1 ORDER BY identifier ASC`

const getShuttlesByCampusAndStatus = `SELECT * FROM shuttles WHERE campus = $1 AND status = $2 ORDER BY identifier ASC`

// GetByID fetches a shuttle by its UUID.
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (Shuttle, error) {
	var s Shuttle
	err := r.db.GetContext(ctx, &s, getShuttleByID, id)
	if errors.Is(err, sql.ErrNoRows) {
		return s, ErrNotFound
	}
	return s, err
}

const getShuttleByID = `SELECT * FROM shuttles WHERE id = $1`

// GetByIdentifier fetches a shuttle by its fleet label.
func (r *Repository) GetByIdentifier(ctx context.Context, identifier string) (Shuttle, error) {
	var s Shuttle
	err := r.db.GetContext(ctx, &s, getShuttleByIdentifier, identifier)
	if errors.Is(err, sql.ErrNoRows) {
		return s, ErrNotFound
	}
	return s, err
}

const getShuttleByIdentifier = `SELECT * FROM shuttles WHERE identifier = $1 LIMIT 1`

// FirstAvailable picks the eligible shuttle for a campus: status idle or
// enroute, lowest identifier first so the choice is reproducible.
func (r *Repository) FirstAvailable(ctx context.Context, campus string) (Shuttle, error) {
	var s Shuttle
	err := r.db.GetContext(ctx, &s, firstAvailable, campus)
	if errors.Is(err, sql.ErrNoRows) {
		return s, ErrNoneAvailable
	}
	return s, err
}

const firstAvailable = `
SELECT * FROM shuttles
WHERE campus = $1 AND status IN ('idle', 'enroute')
ORDER BY identifier ASC
LIMIT 1
`

// ReserveSeats adds seats to a shuttle's occupancy and marks it enroute, as
// one conditional update so concurrent bookings cannot pass the capacity
// check together. Zero rows updated means the seats no longer fit.
func (r *Repository) ReserveSeats(ctx context.Context, id uuid.UUID, seats int) (Shuttle, error) {
	var s Shuttle
	err := r.db.GetContext(ctx, &s, reserveSeats, id, seats)
	if errors.Is(err, sql.ErrNoRows) {
		return s, ErrCapacityExceeded
	}
	return s, err
}

const reserveSeats = `
UPDATE shuttles
SET occupancy = occupancy + $2, status = 'enroute'
WHERE id = $1 AND occupancy + $2 <= capacity
RETURNING *
`

// ReleaseSeats returns seats to a shuttle after a cancellation.
func (r *Repository) ReleaseSeats(ctx context.Context, id uuid.UUID, seats int) error {
	res, err := r.db.ExecContext(ctx, releaseSeats, id, seats)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

const releaseSeats = `UPDATE shuttles SET occupancy = occupancy - $2 WHERE id = $1`

// UpdatePosition stores a new reported position for a shuttle.
func (r *Repository) UpdatePosition(ctx context.Context, id uuid.UUID, location pgtype.Point) error {
	_, err := r.db.ExecContext(ctx, updatePosition, id, location)
	return err
}

const updatePosition = `UPDATE shuttles SET location = $2 WHERE id = $1`

// GetWithPositions fetches the shuttles that have a reported position.
func (r *Repository) GetWithPositions(ctx context.Context) ([]Shuttle, error) {
	var shuttles []Shuttle
	err := r.db.SelectContext(ctx, &shuttles, getWithPositions)
	return shuttles, err
}

const getWithPositions = `SELECT * FROM shuttles WHERE location IS NOT NULL ORDER BY identifier ASC`
