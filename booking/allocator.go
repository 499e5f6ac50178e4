package booking

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/gctu-smartcampus/smartride-backend/internal/boarding"
	"github.com/gctu-smartcampus/smartride-backend/shuttle"
)

var (
	ErrSameStop     = errors.New("pickup and dropoff cannot be the same stop")
	ErrWindowClosed = errors.New("cancellation window closed")
)

// etaMinutes is a placeholder until there is a routing service and real-time
// positions to compute an estimate from.
const etaMinutes = 10

// cancelCutoff is how close to a scheduled pickup a booking may still be
// canceled.
const cancelCutoff = 5 * time.Minute

// ShuttleStore is the part of the shuttle repository the allocator needs.
type ShuttleStore interface {
	FirstAvailable(ctx context.Context, campus string) (shuttle.Shuttle, error)
	ReserveSeats(ctx context.Context, id uuid.UUID, seats int) (shuttle.Shuttle, error)
	ReleaseSeats(ctx context.Context, id uuid.UUID, seats int) error
}

// Store is the part of the booking repository the allocator needs.
type Store interface {
	Create(ctx context.Context, b *Booking) error
	GetByID(ctx context.Context, id uuid.UUID) (Booking, error)
	MarkCanceled(ctx context.Context, id uuid.UUID) (Booking, error)
}

var (
	_ ShuttleStore = (*shuttle.Repository)(nil)
	_ Store        = (*Repository)(nil)
)

// Request is a ride booking request.
type Request struct {
	RiderName     string
	Email         string
	Campus        string
	PickupCode    string
	DropoffCode   string
	ScheduledTime *time.Time
	Seats         int
}

// Allocator assigns a shuttle to each booking and keeps the seat accounting
// straight across bookings and cancellations.
type Allocator struct {
	shuttles ShuttleStore
	bookings Store
	signer   *boarding.Signer
	logger   *slog.Logger

	now func() time.Time
}

func NewAllocator(shuttles ShuttleStore, bookings Store, signer *boarding.Signer, logger *slog.Logger) *Allocator {
	return &Allocator{
		shuttles: shuttles,
		bookings: bookings,
		signer:   signer,
		logger:   logger,
		now:      time.Now,
	}
}

// Book finds an eligible shuttle in the requested campus, reserves the seats
// and persists a confirmed booking carrying the boarding token.
//
// Seat reservation happens as one conditional update at the store, so two
// concurrent bookings cannot both pass the capacity check.
func (a *Allocator) Book(ctx context.Context, req Request) (Booking, error) {
	if req.PickupCode == req.DropoffCode {
		return Booking{}, ErrSameStop
	}

	seats := req.Seats
	if seats < 1 {
		seats = 1
	}

	sh, err := a.shuttles.FirstAvailable(ctx, req.Campus)
	if err != nil {
		return Booking{}, err
	}

	sh, err = a.shuttles.ReserveSeats(ctx, sh.ID, seats)
	if err != nil {
		return Booking{}, err
	}

	now := a.now()
	shuttleID := sh.ID
	b := Booking{
		ID:                uuid.New(),
		RiderName:         req.RiderName,
		Email:             req.Email,
		Campus:            req.Campus,
		PickupCode:        req.PickupCode,
		DropoffCode:       req.DropoffCode,
		Status:            StatusConfirmed,
		ETAMinutes:        etaMinutes,
		Seats:             seats,
		ShuttleID:         &shuttleID,
		ShuttleIdentifier: sql.NullString{String: sh.Identifier, Valid: true},
		QRToken:           sql.NullString{String: a.signer.Token(sh.Identifier, req.Email, now), Valid: true},
		CreatedAt:         now,
	}
	if req.ScheduledTime != nil {
		b.ScheduledTime = sql.NullTime{Time: *req.ScheduledTime, Valid: true}
	}

	// No compensating release if the insert fails: the occupancy bump
	// stands and the fault surfaces to the caller as-is.
	if err := a.bookings.Create(ctx, &b); err != nil {
		return Booking{}, err
	}

	return b, nil
}

// CancelResult is what a cancellation returns to the caller.
type CancelResult struct {
	Status          BookingStatus
	AlreadyCanceled bool
}

// Cancel cancels a booking and returns its reserved seats to the assigned
// shuttle. Canceling an already-canceled booking is a no-op, not an error.
// Scheduled bookings cannot be canceled within five minutes of pickup; ASAP
// bookings have no cutoff.
func (a *Allocator) Cancel(ctx context.Context, id uuid.UUID) (CancelResult, error) {
	b, err := a.bookings.GetByID(ctx, id)
	if err != nil {
		return CancelResult{}, err
	}

	if b.Status == StatusCanceled {
		return CancelResult{Status: StatusCanceled, AlreadyCanceled: true}, nil
	}

	if b.ScheduledTime.Valid && !a.now().Before(b.ScheduledTime.Time.Add(-cancelCutoff)) {
		return CancelResult{}, ErrWindowClosed
	}

	// Seat release is best-effort: failures are logged and the
	// cancellation proceeds.
	if b.ShuttleID != nil {
		if err := a.shuttles.ReleaseSeats(ctx, *b.ShuttleID, b.Seats); err != nil {
			a.logger.WarnContext(ctx, "failed to release seats",
				"booking_id", b.ID, "shuttle_id", *b.ShuttleID, "error", err)
		}
	}

	b, err = a.bookings.MarkCanceled(ctx, b.ID)
	if err != nil {
		return CancelResult{}, err
	}

	return CancelResult{Status: b.Status}, nil
}
