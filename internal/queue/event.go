// Package queue defines message payloads exchanged over the message
// broker plus the publisher and background consumer for them.
package queue

// BookingCreatedEvent is published after a booking transaction commits.
// It carries enough denormalized data for downstream consumers to log,
// notify, or feed analytics without querying the primary database.
type BookingCreatedEvent struct {
	BookingID    uint64   `json:"booking_id"`
	BookingCode  string   `json:"booking_code"`
	ShowtimeID   uint64   `json:"showtime_id"`
	MovieTitle   string   `json:"movie_title"`
	BioskopName  string   `json:"bioskop_name"`
	ShowDate     string   `json:"show_date"`
	ShowTime     string   `json:"show_time"`
	CustomerName string   `json:"customer_name"`
	SeatNumbers  []string `json:"seats"`
	TotalPrice   float64  `json:"total_price"`
	CreatedAt    string   `json:"created_at"`
}
