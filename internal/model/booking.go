package model

import "time"

// Booking status values.  A booking is created confirmed and may only
// transition to cancelled, never back.
const (
	BookingStatusConfirmed = "confirmed"
	BookingStatusCancelled = "cancelled"
)

// Booking records one customer's reservation of seats for one showtime.
// The booking code is the public lookup key; the numeric ID never
// leaves the service boundary as an identifier.  TotalPrice is always
// the showtime price multiplied by the number of distinct seats.
//
// Fields:
//  ID            – primary key identifier.
//  ShowtimeID    – showtime being booked.
//  CustomerName  – customer display name.
//  CustomerEmail – contact email.
//  CustomerPhone – contact phone number.
//  TotalPrice    – showtime price × seat count.
//  Status        – confirmed or cancelled.
//  BookingCode   – unique human-typeable token ("BK" + digits).
//  CreatedAt     – creation timestamp.
//  UpdatedAt     – last update timestamp.
type Booking struct {
	ID            uint64    `json:"id"`             // bookings.id
	ShowtimeID    uint64    `json:"showtime_id"`    // bookings.showtime_id
	CustomerName  string    `json:"customer_name"`  // bookings.customer_name
	CustomerEmail string    `json:"customer_email"` // bookings.customer_email
	CustomerPhone string    `json:"customer_phone"` // bookings.customer_phone
	TotalPrice    float64   `json:"total_price"`    // bookings.total_price
	Status        string    `json:"status"`         // bookings.status
	BookingCode   string    `json:"booking_code"`   // bookings.booking_code
	CreatedAt     time.Time `json:"created_at"`     // bookings.created_at
	UpdatedAt     time.Time `json:"updated_at"`     // bookings.updated_at

	// Showtime carries denormalized display data (movie and bioskop
	// included) when the booking is hydrated for confirmation output.
	Showtime *Showtime `json:"showtime,omitempty"`
}

// BookingSeat links one booking to one seat.  Rows are written together
// with their booking in a single transaction and survive cancellation
// so historical seat assignments stay queryable.
//
// Fields:
//  ID        – primary key identifier.
//  BookingID – owning booking.
//  SeatID    – seat claimed by the booking.
type BookingSeat struct {
	ID        uint64 `json:"id"`         // booking_seats.id
	BookingID uint64 `json:"booking_id"` // booking_seats.booking_id
	SeatID    uint64 `json:"seat_id"`    // booking_seats.seat_id
}
