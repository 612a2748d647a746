package booking

import (
	"context"

	"github.com/kostyrin/theatre-booking/internal/model"
)

// TicketRequest is one requested seat in a reservation: a performance
// plus a (row, seat) coordinate inside its hall.
type TicketRequest struct {
	PerformanceID uint64 `json:"performance_id"`
	Row           uint32 `json:"row"`
	Seat          uint32 `json:"seat"`
}

// Store is the storage contract the booking service depends on. The
// SQL implementation lives in the repository package; tests provide an
// in-memory implementation. CreateReservation must be atomic: either
// the reservation and every ticket persist, or nothing does, and a
// concurrent claim of the same (performance, row, seat) must surface
// as *SeatTakenError from exactly one of the callers.
type Store interface {
	// PerformanceGeometry resolves the hall geometry of a performance.
	// Returns ErrPerformanceNotFound for unknown ids.
	PerformanceGeometry(ctx context.Context, performanceID uint64) (Geometry, error)

	// SeatTaken reports whether any existing ticket for the performance
	// already claims the coordinate.
	SeatTaken(ctx context.Context, performanceID uint64, row, seat uint32) (bool, error)

	// CreateReservation persists a reservation and its tickets in one
	// atomic unit, in request order, returning the materialized
	// reservation with assigned ids.
	CreateReservation(ctx context.Context, userID uint64, tickets []TicketRequest) (*model.Reservation, error)

	// ReservationsByUser returns the user's reservations in the compact
	// shape, newest first.
	ReservationsByUser(ctx context.Context, userID uint64) ([]model.Reservation, error)

	// ReservationDetailsByUser returns the user's reservations in the
	// expanded shape, newest first.
	ReservationDetailsByUser(ctx context.Context, userID uint64) ([]model.ReservationDetail, error)

	// ReservationByUser returns one reservation owned by the user, or
	// ErrReservationNotFound.
	ReservationByUser(ctx context.Context, reservationID, userID uint64) (*model.Reservation, error)
}

// Service exposes the two operations of the reservation core. The
// acting user is always an explicit parameter; nothing is read from
// ambient state.
type Service struct {
	store Store
}

// NewService builds a Service over the given store.
func NewService(store Store) *Service {
	if store == nil {
		panic("nil store passed to booking.NewService")
	}
	return &Service{store: store}
}

type seatKey struct {
	performanceID uint64
	row, seat     uint32
}

// CreateReservation validates every requested ticket and persists the
// reservation atomically. Validation order follows the request order,
// so the first offending ticket decides the returned error. The
// optimistic SeatTaken check gives early, addressable rejections; the
// unique key inside the store transaction settles races.
func (s *Service) CreateReservation(ctx context.Context, userID uint64, tickets []TicketRequest) (*model.Reservation, error) {
	if len(tickets) == 0 {
		return nil, ErrEmptyReservation
	}

	geoms := make(map[uint64]Geometry)
	seen := make(map[seatKey]struct{}, len(tickets))
	for _, t := range tickets {
		g, ok := geoms[t.PerformanceID]
		if !ok {
			var err error
			g, err = s.store.PerformanceGeometry(ctx, t.PerformanceID)
			if err != nil {
				return nil, err
			}
			geoms[t.PerformanceID] = g
		}
		if err := ValidateSeat(g, t.Row, t.Seat); err != nil {
			return nil, err
		}

		key := seatKey{t.PerformanceID, t.Row, t.Seat}
		if _, dup := seen[key]; dup {
			// Two tickets in one request claiming the same seat can never
			// both succeed; fail before opening a transaction.
			return nil, &SeatTakenError{PerformanceID: t.PerformanceID, Row: t.Row, Seat: t.Seat}
		}
		seen[key] = struct{}{}

		taken, err := s.store.SeatTaken(ctx, t.PerformanceID, t.Row, t.Seat)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, &SeatTakenError{PerformanceID: t.PerformanceID, Row: t.Row, Seat: t.Seat}
		}
	}

	return s.store.CreateReservation(ctx, userID, tickets)
}

// ListReservations returns the user's own reservations in the compact
// shape (tickets carry performance ids).
func (s *Service) ListReservations(ctx context.Context, userID uint64) ([]model.Reservation, error) {
	return s.store.ReservationsByUser(ctx, userID)
}

// ListReservationDetails returns the user's own reservations in the
// expanded shape (tickets embed performance, play and hall).
func (s *Service) ListReservationDetails(ctx context.Context, userID uint64) ([]model.ReservationDetail, error) {
	return s.store.ReservationDetailsByUser(ctx, userID)
}

// GetReservation returns a single reservation owned by the user.
func (s *Service) GetReservation(ctx context.Context, reservationID, userID uint64) (*model.Reservation, error) {
	return s.store.ReservationByUser(ctx, reservationID, userID)
}
