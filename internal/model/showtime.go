package model

import "time"

// Showtime schedules one movie at one bioskop for a specific date and
// time with a flat per-seat price.  The booking core treats showtimes
// as immutable: it only reads the price and checks existence.
//
// Fields:
//  ID        – primary key identifier.
//  MovieID   – movie being screened.
//  BioskopID – venue hosting the screening.
//  ShowDate  – calendar date of the screening.
//  ShowTime  – wall-clock start time in "15:04" format.
//  Price     – flat price per seat.
//  CreatedAt – creation timestamp.
//  UpdatedAt – last update timestamp.
type Showtime struct {
	ID        uint64    `json:"id"`         // showtimes.id
	MovieID   uint64    `json:"movie_id"`   // showtimes.movie_id
	BioskopID uint64    `json:"bioskop_id"` // showtimes.bioskop_id
	ShowDate  time.Time `json:"show_date"`  // showtimes.show_date
	ShowTime  string    `json:"show_time"`  // showtimes.show_time ("14:30")
	Price     float64   `json:"price"`      // showtimes.price
	CreatedAt time.Time `json:"created_at"` // showtimes.created_at
	UpdatedAt time.Time `json:"updated_at"` // showtimes.updated_at

	// Denormalized display data, populated by hydrating queries only.
	Movie   *Movie   `json:"movie,omitempty"`
	Bioskop *Bioskop `json:"bioskop,omitempty"`
}
