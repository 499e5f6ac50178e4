// Package seed loads a YAML seed file and populates the stops, routes and
// shuttles tables from it. Records that already exist are left alone, so
// seeding on every start is safe.
package seed

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
	"gopkg.in/yaml.v3"

	"github.com/gctu-smartcampus/smartride-backend/route"
	"github.com/gctu-smartcampus/smartride-backend/shuttle"
	"github.com/gctu-smartcampus/smartride-backend/stop"
)

type File struct {
	Stops    []StopSeed    `yaml:"stops"`
	Routes   []RouteSeed   `yaml:"routes"`
	Shuttles []ShuttleSeed `yaml:"shuttles"`
}

type StopSeed struct {
	Campus    string  `yaml:"campus" validate:"required"`
	Name      string  `yaml:"name" validate:"required"`
	Code      string  `yaml:"code" validate:"required"`
	Latitude  float64 `yaml:"latitude"`
	Longitude float64 `yaml:"longitude"`
	Active    *bool   `yaml:"active"`
}

type RouteSeed struct {
	Campus    string   `yaml:"campus" validate:"required"`
	Name      string   `yaml:"name" validate:"required"`
	StopCodes []string `yaml:"stop_codes" validate:"required,min=1"`
	Active    *bool    `yaml:"active"`
}

type ShuttleSeed struct {
	Identifier   string   `yaml:"identifier" validate:"required"`
	Campus       string   `yaml:"campus" validate:"required"`
	RouteName    string   `yaml:"route_name"`
	BatteryLevel *int     `yaml:"battery_level" validate:"omitempty,gte=0,lte=100"`
	Latitude     *float64 `yaml:"latitude"`
	Longitude    *float64 `yaml:"longitude"`
	Status       string   `yaml:"status"`
	Capacity     *int     `yaml:"capacity" validate:"omitempty,gte=1,lte=60"`
	Occupancy    *int     `yaml:"occupancy" validate:"omitempty,gte=0"`
}

// Load reads and validates a seed file.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, err
	}

	v := validator.New()
	for i, s := range f.Stops {
		if err := v.Struct(s); err != nil {
			return nil, fmt.Errorf("stop %d: %w", i, err)
		}
	}
	for i, r := range f.Routes {
		if err := v.Struct(r); err != nil {
			return nil, fmt.Errorf("route %d: %w", i, err)
		}
	}
	for i, s := range f.Shuttles {
		if err := v.Struct(s); err != nil {
			return nil, fmt.Errorf("shuttle %d: %w", i, err)
		}
	}

	return &f, nil
}

// StopStore is the part of the stop repository the seeder needs.
type StopStore interface {
	GetByCode(ctx context.Context, code string) (stop.Stop, error)
	Create(ctx context.Context, s *stop.Stop) error
}

// RouteStore is the part of the route repository the seeder needs.
type RouteStore interface {
	GetByName(ctx context.Context, name string) (route.Route, error)
	Create(ctx context.Context, r *route.Route) error
}

// ShuttleStore is the part of the shuttle repository the seeder needs.
type ShuttleStore interface {
	GetByIdentifier(ctx context.Context, identifier string) (shuttle.Shuttle, error)
	Create(ctx context.Context, s *shuttle.Shuttle) error
}

var (
	_ StopStore    = (*stop.Repository)(nil)
	_ RouteStore   = (*route.Repository)(nil)
	_ ShuttleStore = (*shuttle.Repository)(nil)
)

// Apply inserts every record from the file that is not already present.
// Stops are matched by code, routes by name, shuttles by identifier.
func Apply(ctx context.Context, f *File, stops StopStore, routes RouteStore, shuttles ShuttleStore, logger *slog.Logger) error {
	var created int

	for _, s := range f.Stops {
		_, err := stops.GetByCode(ctx, s.Code)
		if err == nil {
			continue
		}
		if !errors.Is(err, stop.ErrNotFound) {
			return err
		}

		active := true
		if s.Active != nil {
			active = *s.Active
		}
		st := stop.Stop{
			ID:       uuid.New(),
			Campus:   s.Campus,
			Name:     s.Name,
			Code:     s.Code,
			Location: pgtype.Point{P: pgtype.Vec2{X: s.Latitude, Y: s.Longitude}, Valid: true},
			Active:   active,
		}
		if err := stops.Create(ctx, &st); err != nil {
			return fmt.Errorf("seeding stop %s: %w", s.Code, err)
		}
		created++
	}

	for _, r := range f.Routes {
		_, err := routes.GetByName(ctx, r.Name)
		if err == nil {
			continue
		}
		if !errors.Is(err, route.ErrNotFound) {
			return err
		}

		active := true
		if r.Active != nil {
			active = *r.Active
		}
		rt := route.Route{
			ID:        uuid.New(),
			Campus:    r.Campus,
			Name:      r.Name,
			StopCodes: route.StopCodes(r.StopCodes),
			Active:    active,
		}
		if err := routes.Create(ctx, &rt); err != nil {
			return fmt.Errorf("seeding route %s: %w", r.Name, err)
		}
		created++
	}

	for _, s := range f.Shuttles {
		_, err := shuttles.GetByIdentifier(ctx, s.Identifier)
		if err == nil {
			continue
		}
		if !errors.Is(err, shuttle.ErrNotFound) {
			return err
		}

		sh := shuttle.Shuttle{
			ID:           uuid.New(),
			Identifier:   s.Identifier,
			Campus:       s.Campus,
			BatteryLevel: 100,
			Status:       shuttle.StatusIdle,
			Capacity:     12,
		}
		if s.RouteName != "" {
			sh.RouteName.String = s.RouteName
			sh.RouteName.Valid = true
		}
		if s.BatteryLevel != nil {
			sh.BatteryLevel = *s.BatteryLevel
		}
		if s.Latitude != nil && s.Longitude != nil {
			sh.Location = pgtype.Point{P: pgtype.Vec2{X: *s.Latitude, Y: *s.Longitude}, Valid: true}
		}
		if s.Status != "" {
			sh.Status = shuttle.Status(s.Status)
		}
		if s.Capacity != nil {
			sh.Capacity = *s.Capacity
		}
		if s.Occupancy != nil {
			sh.Occupancy = *s.Occupancy
		}
		if err := shuttles.Create(ctx, &sh); err != nil {
			return fmt.Errorf("seeding shuttle %s: %w", s.Identifier, err)
		}
		created++
	}

	logger.InfoContext(ctx, "seed file applied",
		"stops", len(f.Stops), "routes", len(f.Routes), "shuttles", len(f.Shuttles), "created", created)
	return nil
}
