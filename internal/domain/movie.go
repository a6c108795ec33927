package domain

import "time"

// Movie represents the canonical movie entity in the catalog. ActorIDs and
// GenreIDs carry the junction-table relationships as bare identifiers;
// resolving them to full entities is left to callers.
type Movie struct {
	ID              int64
	Title           string
	ReleaseYear     int
	Director        string
	Writer          string
	Producer        string
	Cinematographer string
	Budget          int64
	Country         string
	ActorIDs        []int64
	GenreIDs        []int64
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
