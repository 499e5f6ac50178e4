package booking

import (
	"context"

	"github.com/google/uuid"

	"github.com/gctu-smartcampus/smartride-backend/shuttle"
)

// FakeShuttleStore is a test implementation of ShuttleStore.
type FakeShuttleStore struct {
	Shuttles map[uuid.UUID]*shuttle.Shuttle
	// ReleaseErr, when set, is returned by ReleaseSeats.
	ReleaseErr error
}

func NewFakeShuttleStore() *FakeShuttleStore {
	return &FakeShuttleStore{
		Shuttles: make(map[uuid.UUID]*shuttle.Shuttle),
	}
}

// Add puts a shuttle into the fake, assigning an ID if it has none.
func (f *FakeShuttleStore) Add(s shuttle.Shuttle) *shuttle.Shuttle {
	cp := s
	if cp.ID == uuid.Nil {
		cp.ID = uuid.New()
	}
	f.Shuttles[cp.ID] = &cp
	return &cp
}

func (f *FakeShuttleStore) FirstAvailable(_ context.Context, campus string) (shuttle.Shuttle, error) {
	var best *shuttle.Shuttle
	for _, s := range f.Shuttles {
		if s.Campus != campus {
			continue
		}
		if s.Status != shuttle.StatusIdle && s.Status != shuttle.StatusEnroute {
			continue
		}
		if best == nil || s.Identifier < best.Identifier {
			best = s
		}
	}
	if best == nil {
		return shuttle.Shuttle{}, shuttle.ErrNoneAvailable
	}
	return *best, nil
}

func (f *FakeShuttleStore) ReserveSeats(_ context.Context, id uuid.UUID, seats int) (shuttle.Shuttle, error) {
	s, ok := f.Shuttles[id]
	if !ok || s.Occupancy+seats > s.Capacity {
		return shuttle.Shuttle{}, shuttle.ErrCapacityExceeded
	}
	s.Occupancy += seats
	s.Status = shuttle.StatusEnroute
	return *s, nil
}

func (f *FakeShuttleStore) ReleaseSeats(_ context.Context, id uuid.UUID, seats int) error {
	if f.ReleaseErr != nil {
		return f.ReleaseErr
	}
	s, ok := f.Shuttles[id]
	if !ok {
		return shuttle.ErrNotFound
	}
	s.Occupancy -= seats
	return nil
}

// FakeStore is a test implementation of Store.
type FakeStore struct {
	Bookings map[uuid.UUID]*Booking
	// CreateErr, when set, is returned by Create to simulate a store fault.
	CreateErr error
}

func NewFakeStore() *FakeStore {
	return &FakeStore{
		Bookings: make(map[uuid.UUID]*Booking),
	}
}

func (f *FakeStore) Create(_ context.Context, b *Booking) error {
	if f.CreateErr != nil {
		return f.CreateErr
	}
	cp := *b
	f.Bookings[cp.ID] = &cp
	return nil
}

func (f *FakeStore) GetByID(_ context.Context, id uuid.UUID) (Booking, error) {
	b, ok := f.Bookings[id]
	if !ok {
		return Booking{}, ErrNotFound
	}
	return *b, nil
}

func (f *FakeStore) MarkCanceled(_ context.Context, id uuid.UUID) (Booking, error) {
	b, ok := f.Bookings[id]
	if !ok {
		return Booking{}, ErrNotFound
	}
	b.Status = StatusCanceled
	return *b, nil
}
