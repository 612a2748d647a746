// Package queue defines message payloads exchanged over the message broker.
package queue

// TicketPart is one claimed seat inside a ReservationCreatedEvent.
type TicketPart struct {
	PerformanceID uint64 `json:"performance_id"`
	Row           uint32 `json:"row"`
	Seat          uint32 `json:"seat"`
}

// ReservationCreatedEvent is published after a reservation commits. It
// carries enough information for downstream consumers to log or feed
// analytics without querying the primary database.
type ReservationCreatedEvent struct {
	ReservationID uint64       `json:"reservation_id"`
	UserID        uint64       `json:"user_id"`
	Tickets       []TicketPart `json:"tickets"`
	CreatedAt     string       `json:"created_at"`
}
