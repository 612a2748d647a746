// Package booking implements the reservation core: seat validation
// against hall geometry and the atomic creation and user-scoped
// reading of reservations with their tickets. It talks to storage
// through the Store interface so the SQL layer stays swappable in
// tests; the durable unique key on (performance, row, seat) remains
// the final arbiter for concurrent bookings.
package booking

import (
	"errors"
	"fmt"
)

// ErrEmptyReservation rejects reservation requests with no tickets
// before anything touches storage.
var ErrEmptyReservation = errors.New("reservation requires at least one ticket")

// ErrPerformanceNotFound is returned when a requested performance id
// does not resolve to an existing performance.
var ErrPerformanceNotFound = errors.New("performance not found")

// ErrReservationNotFound is returned when a reservation does not exist
// or belongs to a different user. The two cases are deliberately
// indistinguishable to callers.
var ErrReservationNotFound = errors.New("reservation not found")

// OutOfRangeError reports a seat coordinate outside the hall geometry
// of the requested performance.
type OutOfRangeError struct {
	Row        uint32
	Seat       uint32
	Rows       uint32
	SeatsInRow uint32
}

func (e *OutOfRangeError) Error() string {
	return fmt.Sprintf("seat (row %d, seat %d) outside hall geometry %dx%d",
		e.Row, e.Seat, e.Rows, e.SeatsInRow)
}

// SeatTakenError reports a seat already claimed by another ticket for
// the same performance. It is produced both by the optimistic
// pre-check and by the unique-key violation at commit time.
type SeatTakenError struct {
	PerformanceID uint64
	Row           uint32
	Seat          uint32
}

func (e *SeatTakenError) Error() string {
	return fmt.Sprintf("seat (row %d, seat %d) already taken for performance %d",
		e.Row, e.Seat, e.PerformanceID)
}
