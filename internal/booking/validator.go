package booking

// Geometry is the (rows, seats per row) pair defining the valid seat
// coordinates of a theatre hall.
type Geometry struct {
	Rows       uint32
	SeatsInRow uint32
}

// ValidateSeat checks a (row, seat) coordinate against a hall
// geometry. It is a pure check with no side effects, used during
// request validation; the storage unique key repeats the taken-seat
// half of the decision at commit time.
func ValidateSeat(g Geometry, row, seat uint32) error {
	if row < 1 || row > g.Rows || seat < 1 || seat > g.SeatsInRow {
		return &OutOfRangeError{Row: row, Seat: seat, Rows: g.Rows, SeatsInRow: g.SeatsInRow}
	}
	return nil
}
