package model

// Genre classifies plays. Genre names are unique. Genres are linked to
// plays through the play_genres join table.
type Genre struct {
	ID   uint64 `json:"id"`
	Name string `json:"name"`
}
