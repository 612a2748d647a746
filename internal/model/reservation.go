package model

import "time"

// Reservation is a user's atomic booking of one or more seats. It is
// created together with its tickets in a single transaction and is
// immutable afterwards; a reservation with zero tickets never exists.
//
// Fields:
//  ID        – primary key identifier.
//  UserID    – owning user; only that user may ever read it.
//  CreatedAt – set once at creation.
//  Tickets   – the seats claimed by this reservation.
type Reservation struct {
	ID        uint64    `json:"id"`
	UserID    uint64    `json:"-"`
	CreatedAt time.Time `json:"created_at"`
	Tickets   []Ticket  `json:"tickets"`
}

// Ticket is a single seat claim for a single performance, owned by
// exactly one reservation. The triple (performance, row, seat) is
// unique system-wide, enforced by the uq_ticket_seat key.
type Ticket struct {
	ID            uint64 `json:"id"`
	Row           uint32 `json:"row"`
	Seat          uint32 `json:"seat"`
	PerformanceID uint64 `json:"performance"`
}

// ReservationDetail is the expanded read shape: every ticket embeds
// its performance with play and hall details.
type ReservationDetail struct {
	ID        uint64         `json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	Tickets   []TicketDetail `json:"tickets"`
}

// TicketDetail expands a ticket with its performance for display.
type TicketDetail struct {
	Row         uint32            `json:"row"`
	Seat        uint32            `json:"seat"`
	Performance PerformanceDetail `json:"performance"`
}
