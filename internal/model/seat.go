package model

// Seat describes one physical seat belonging to exactly one bioskop.
// Seats are identified to customers by their seat number (e.g. "A1");
// the row label and column index give the position in the seat map.
// Seats referenced by bookings are never deleted.
//
// Fields:
//  ID         – primary key identifier.
//  BioskopID  – bioskop owning the seat.
//  SeatNumber – human label, unique per bioskop (row + column, "A1").
//  RowLabel   – letter designating the row.
//  ColNumber  – 1-based position within the row.
//  SeatType   – seat class (regular, premium, vip).
type Seat struct {
	ID         uint64 `json:"id"`          // seats.id
	BioskopID  uint64 `json:"bioskop_id"`  // seats.bioskop_id
	SeatNumber string `json:"seat_number"` // seats.seat_number
	RowLabel   string `json:"row"`         // seats.row_label
	ColNumber  uint32 `json:"column"`      // seats.col_number
	SeatType   string `json:"seat_type"`   // seats.seat_type
}

// SeatAvailability pairs a seat with its derived availability for a
// particular showtime.  Availability is never stored; it is computed
// from active bookings at query time.
type SeatAvailability struct {
	Seat
	IsAvailable bool `json:"is_available"`
}
