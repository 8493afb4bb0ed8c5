package service

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// Booking codes are the public lookup key for bookings: short,
// human-typeable, prefixed tokens like "BK04817263".  Entropy comes
// from crypto/rand rather than the wall clock, and uniqueness is
// verified against the store within the creating transaction (with the
// UNIQUE column as the last line of defense).
const (
	bookingCodePrefix = "BK"
	bookingCodeDigits = 8
)

var bookingCodeSpace = new(big.Int).Exp(big.NewInt(10), big.NewInt(bookingCodeDigits), nil)

// NewBookingCode returns a fresh candidate booking code.  Collisions
// are possible (1 in 10^8 per pair); the caller must check the code
// against existing bookings and retry on a hit.
func NewBookingCode() (string, error) {
	n, err := rand.Int(rand.Reader, bookingCodeSpace)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s%0*d", bookingCodePrefix, bookingCodeDigits, n), nil
}
