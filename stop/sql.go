package stop

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
)

var ErrNotFound = errors.New("stop not found")

type Repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a new stop and fills in the generated fields.
func (r *Repository) Create(ctx context.Context, s *Stop) error {
	return r.db.GetContext(ctx, s, createStop,
		s.ID, s.Campus, s.Name, s.Code, s.Location, s.Active)
}

const createStop = `
INSERT INTO stops (id, campus, name, code, location, active)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING *
`

// GetStops fetches all stops, optionally filtered by campus.
func (r *Repository) GetStops(ctx context.Context, campus *string) ([]Stop, error) {
	var stops []Stop
	var err error
	if campus != nil {
		err = r.db.SelectContext(ctx, &stops, getStopsByCampus, *campus)
	} else {
		err = r.db.SelectContext(ctx, &stops, getStops)
	}
	return stops, err
}

const getStops = `SELECT * FROM stops ORDER BY code ASC`

const getStopsByCampus = `SELECT * FROM stops WHERE campus = $1 ORDER BY code ASC`

// GetByCode fetches a stop by its code.
func (r *Repository) GetByCode(ctx context.Context, code string) (Stop, error) {
	var s Stop
	err := r.db.GetContext(ctx, &s, getStopByCode, code)
	if errors.Is(err, sql.ErrNoRows) {
		return s, ErrNotFound
	}
	return s, err
}

const getStopByCode = `SELECT * FROM stops WHERE code = $1 LIMIT 1`
