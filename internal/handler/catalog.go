package handler

import (
	"github.com/kostyrin/theatre-booking/internal/repository"
)

// CatalogHandler bundles the repositories behind the catalog
// resources: actors, genres, plays, theatre halls and performances.
// Reads are public; mutations sit behind the ADMIN role middleware.
type CatalogHandler struct {
	Actors       *repository.ActorRepo
	Genres       *repository.GenreRepo
	Plays        *repository.PlayRepo
	Halls        *repository.HallRepo
	Performances *repository.PerformanceRepo
}

// NewCatalogHandler constructs a CatalogHandler and panics if any
// dependency is nil.
func NewCatalogHandler(actors *repository.ActorRepo, genres *repository.GenreRepo, plays *repository.PlayRepo, halls *repository.HallRepo, performances *repository.PerformanceRepo) *CatalogHandler {
	if actors == nil || genres == nil || plays == nil || halls == nil || performances == nil {
		panic("nil repository passed to NewCatalogHandler")
	}
	return &CatalogHandler{
		Actors:       actors,
		Genres:       genres,
		Plays:        plays,
		Halls:        halls,
		Performances: performances,
	}
}
