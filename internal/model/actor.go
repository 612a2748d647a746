package model

// Actor represents a performer that can be attached to plays.
// Actors are linked to plays through the play_actors join table.
//
// Fields:
//  ID        – primary key identifier.
//  FirstName – actor's first name.
//  LastName  – actor's last name.
type Actor struct {
	ID        uint64 `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// FullName joins first and last name for display. The value is derived
// and never stored.
func (a Actor) FullName() string {
	return a.FirstName + " " + a.LastName
}
