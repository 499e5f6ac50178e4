package route

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
)

var ErrNotFound = errors.New("route not found")

type Repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a new route and fills in the generated fields.
func (r *Repository) Create(ctx context.Context, rt *Route) error {
	return r.db.GetContext(ctx, rt, createRoute,
		rt.ID, rt.Campus, rt.Name, rt.StopCodes, rt.Active)
}

const createRoute = `
INSERT INTO routes (id, campus, name, stop_codes, active)
VALUES ($1, $2, $3, $4, $5)
RETURNING *
`

// GetRoutes fetches all routes, optionally filtered by campus.
func (r *Repository) GetRoutes(ctx context.Context, campus *string) ([]Route, error) {
	var routes []Route
	var err error
	if campus != nil {
		err = r.db.SelectContext(ctx, &routes, getRoutesByCampus, *campus)
	} else {
		err = r.db.SelectContext(ctx, &routes, getRoutes)
	}
	return routes, err
}

const getRoutes = `SELECT * FROM routes ORDER BY name ASC`

const getRoutesByCampus = `SELECT * FROM routes WHERE campus = $1 ORDER BY name ASC`

// GetByName fetches a route by its name.
func (r *Repository) GetByName(ctx context.Context, name string) (Route, error) {
	var rt Route
	err := r.db.GetContext(ctx, &rt, getRouteByName, name)
	if errors.Is(err, sql.ErrNoRows) {
		return rt, ErrNotFound
	}
	return rt, err
}

const getRouteByName = `SELECT * FROM routes WHERE name = $1 LIMIT 1`
