package model

// Play represents a stage production in the catalog. A play can carry
// any number of genres and actors via join tables.
//
// Fields:
//  ID          – primary key identifier.
//  Title       – play title.
//  Description – synopsis shown to customers.
type Play struct {
	ID          uint64 `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

// PlayDetail is the expanded read shape of a play with its genres and
// actors resolved. Used by list and retrieve endpoints; mutations work
// with plain id lists instead.
type PlayDetail struct {
	Play
	Genres []Genre `json:"genres"`
	Actors []Actor `json:"actors"`
}
