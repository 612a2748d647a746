package booking

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateSeatAcceptsEveryInBoundsCoordinate(t *testing.T) {
	g := Geometry{Rows: 7, SeatsInRow: 9}
	for row := uint32(1); row <= g.Rows; row++ {
		for seat := uint32(1); seat <= g.SeatsInRow; seat++ {
			assert.NoError(t, ValidateSeat(g, row, seat), "row %d seat %d", row, seat)
		}
	}
}

func TestValidateSeatRejectsOutOfBounds(t *testing.T) {
	g := Geometry{Rows: 5, SeatsInRow: 8}
	cases := []struct {
		row, seat uint32
	}{
		{0, 1},
		{1, 0},
		{0, 0},
		{6, 1},
		{1, 9},
		{6, 9},
		{100, 100},
	}
	for _, tc := range cases {
		t.Run(fmt.Sprintf("row%d_seat%d", tc.row, tc.seat), func(t *testing.T) {
			err := ValidateSeat(g, tc.row, tc.seat)
			require.Error(t, err)

			var oor *OutOfRangeError
			require.ErrorAs(t, err, &oor)
			assert.Equal(t, tc.row, oor.Row)
			assert.Equal(t, tc.seat, oor.Seat)
			assert.Equal(t, g.Rows, oor.Rows)
			assert.Equal(t, g.SeatsInRow, oor.SeatsInRow)
		})
	}
}

func TestValidateSeatBoundaryCorners(t *testing.T) {
	g := Geometry{Rows: 3, SeatsInRow: 4}
	assert.NoError(t, ValidateSeat(g, 1, 1))
	assert.NoError(t, ValidateSeat(g, 3, 4))
	assert.Error(t, ValidateSeat(g, 4, 4))
	assert.Error(t, ValidateSeat(g, 3, 5))
}

func TestErrorMessagesNameTheCoordinate(t *testing.T) {
	oor := &OutOfRangeError{Row: 9, Seat: 2, Rows: 5, SeatsInRow: 8}
	assert.Contains(t, oor.Error(), "row 9")
	assert.Contains(t, oor.Error(), "5x8")

	taken := &SeatTakenError{PerformanceID: 3, Row: 2, Seat: 7}
	assert.Contains(t, taken.Error(), "row 2")
	assert.Contains(t, taken.Error(), "performance 3")

	assert.False(t, errors.Is(taken, ErrEmptyReservation))
}
