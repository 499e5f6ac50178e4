// Package telemetry simulates position reports for demo environments by
// nudging every shuttle that has a position a few metres on each tick. It is
// throwaway jitter for map demos, not vehicle tracking.
package telemetry

import (
	"context"
	"log/slog"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/gctu-smartcampus/smartride-backend/shuttle"
)

// maxJitter is the largest nudge per tick, in degrees. Roughly 50 metres.
const maxJitter = 0.0005

// Store is the part of the shuttle repository the simulator needs.
type Store interface {
	GetWithPositions(ctx context.Context) ([]shuttle.Shuttle, error)
	UpdatePosition(ctx context.Context, id uuid.UUID, location pgtype.Point) error
}

var _ Store = (*shuttle.Repository)(nil)

type Simulator struct {
	store    Store
	logger   *slog.Logger
	interval time.Duration

	rand *rand.Rand
}

func NewSimulator(store Store, logger *slog.Logger, interval time.Duration) *Simulator {
	return &Simulator{
		store:    store,
		logger:   logger,
		interval: interval,
		rand:     rand.New(rand.NewSource(int64(rand.Uint64()))),
	}
}

// Run jitters shuttle positions on each tick until the context is canceled.
func (s *Simulator) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.logger.InfoContext(ctx, "telemetry simulation started", "interval", s.interval)

	for {
		select {
		case <-ctx.Done():
			s.logger.InfoContext(ctx, "telemetry simulation stopped")
			return
		case <-ticker.C:
			if err := s.tick(ctx); err != nil {
				s.logger.WarnContext(ctx, "telemetry tick failed", "error", err)
			}
		}
	}
}

func (s *Simulator) tick(ctx context.Context) error {
	shuttles, err := s.store.GetWithPositions(ctx)
	if err != nil {
		return err
	}

	for _, sh := range shuttles {
		if !sh.Location.Valid {
			continue
		}
		loc := sh.Location
		loc.P.X += (s.rand.Float64()*2 - 1) * maxJitter
		loc.P.Y += (s.rand.Float64()*2 - 1) * maxJitter
		if err := s.store.UpdatePosition(ctx, sh.ID, loc); err != nil {
			return err
		}
	}
	return nil
}
