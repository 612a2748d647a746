package model

// TheatreHall describes a physical hall and its seat geometry. The
// geometry is the pair (Rows, SeatsInRow); together they define every
// valid seat coordinate: 1 <= row <= Rows, 1 <= seat <= SeatsInRow.
//
// Fields:
//  ID         – primary key identifier.
//  Name       – human readable hall name.
//  Rows       – number of seating rows, always positive.
//  SeatsInRow – number of seats per row, always positive.
type TheatreHall struct {
	ID         uint64 `json:"id"`
	Name       string `json:"name"`
	Rows       uint32 `json:"rows"`
	SeatsInRow uint32 `json:"seats_in_row"`
}

// Capacity is the total number of seats in the hall. It is recomputed
// from the geometry on every read and never stored.
func (h TheatreHall) Capacity() uint32 {
	return h.Rows * h.SeatsInRow
}
