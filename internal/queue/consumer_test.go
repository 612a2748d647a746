package queue

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatEvent(t *testing.T) {
	ev := ReservationCreatedEvent{
		ReservationID: 12,
		UserID:        42,
		CreatedAt:     "2026-03-01T18:00:00Z",
		Tickets: []TicketPart{
			{PerformanceID: 5, Row: 2, Seat: 3},
			{PerformanceID: 5, Row: 2, Seat: 4},
		},
	}
	line := formatEvent(ev)
	assert.Contains(t, line, "reservation_id=12")
	assert.Contains(t, line, "user_id=42")
	assert.Contains(t, line, "tickets=2")
	assert.Contains(t, line, "seats=[5:2/3,5:2/4]")
	assert.Contains(t, line, "[2026-03-01T18:00:00Z]")
}

func TestFormatEventNoTickets(t *testing.T) {
	line := formatEvent(ReservationCreatedEvent{ReservationID: 1})
	assert.Contains(t, line, "seats=[]")
}
