package model

import "time"

// Bioskop represents a cinema venue.  A bioskop owns a fixed set of
// physical seats and hosts showtimes.  This struct corresponds to a
// row in the `bioskops` table.
//
// Fields:
//  ID        – primary key identifier.
//  Name      – display name of the cinema.
//  Address   – street address shown on confirmations.
//  CreatedAt – timestamp when the record was created.
//  UpdatedAt – timestamp of last update.
type Bioskop struct {
	ID        uint64    `json:"id"`         // bioskops.id
	Name      string    `json:"name"`       // bioskops.name
	Address   string    `json:"address"`    // bioskops.address
	CreatedAt time.Time `json:"created_at"` // bioskops.created_at
	UpdatedAt time.Time `json:"updated_at"` // bioskops.updated_at
}
