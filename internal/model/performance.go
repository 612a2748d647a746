package model

import "time"

// Performance is a scheduled showing of a play in a specific hall.
// The performance's valid seat space is entirely determined by the
// hall geometry at read time.
//
// Fields:
//  ID            – primary key identifier.
//  PlayID        – the play being performed.
//  TheatreHallID – the hall hosting the performance.
//  ShowTime      – when the performance starts (UTC).
type Performance struct {
	ID            uint64    `json:"id"`
	PlayID        uint64    `json:"play_id"`
	TheatreHallID uint64    `json:"theatre_hall_id"`
	ShowTime      time.Time `json:"show_time"`
}

// PerformanceDetail embeds the play and hall for expanded read shapes.
type PerformanceDetail struct {
	ID       uint64      `json:"id"`
	ShowTime time.Time   `json:"show_time"`
	Play     Play        `json:"play"`
	Hall     HallSummary `json:"theatre_hall"`
}

// HallSummary is the hall projection embedded in expanded responses.
// Capacity is derived from the geometry, never read from storage.
type HallSummary struct {
	ID         uint64 `json:"id"`
	Name       string `json:"name"`
	Rows       uint32 `json:"rows"`
	SeatsInRow uint32 `json:"seats_in_row"`
	Capacity   uint32 `json:"capacity"`
}
