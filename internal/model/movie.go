package model

import "time"

// Movie describes a film that can be scheduled as a showtime.  It is
// pure catalog data; the booking core only ever reads the title for
// display purposes.
//
// Fields:
//  ID          – primary key identifier.
//  Title       – movie title.
//  Description – optional synopsis.
//  DurationMin – running time in minutes.
//  Genre       – free-form genre label.
//  Rating      – audience rating (PG, PG-13, R, ...).
//  PosterURL   – poster image location.
//  CreatedAt   – creation timestamp.
//  UpdatedAt   – last update timestamp.
type Movie struct {
	ID          uint64    `json:"id"`           // movies.id
	Title       string    `json:"title"`        // movies.title
	Description string    `json:"description"`  // movies.description
	DurationMin uint32    `json:"duration_min"` // movies.duration_min
	Genre       string    `json:"genre"`        // movies.genre
	Rating      string    `json:"rating"`       // movies.rating
	PosterURL   string    `json:"poster_url"`   // movies.poster_url
	CreatedAt   time.Time `json:"created_at"`   // movies.created_at
	UpdatedAt   time.Time `json:"updated_at"`   // movies.updated_at
}
