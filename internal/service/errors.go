// Package service implements the booking transaction manager: the
// orchestration that turns a reservation request into a durable
// booking while holding the no-double-booking invariant.
package service

import (
	"errors"
	"fmt"
)

// ErrCodeGeneration is returned when a unique booking code could not
// be produced after several attempts.  The whole transaction is rolled
// back; callers may retry the request from scratch.
var ErrCodeGeneration = errors.New("could not generate a unique booking code")

// ErrSeatNotInBioskop is returned when a requested seat does not belong
// to the bioskop hosting the showtime.  This is a caller fault, not a
// conflict: retrying the same request cannot succeed.
var ErrSeatNotInBioskop = errors.New("seat does not belong to the showtime's bioskop")

// ValidationError reports a missing or malformed request field.  It is
// the caller's fault and maps to a 400 response.
type ValidationError struct {
	Field string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s is required", e.Field)
}

// SeatConflictError is returned when one or more requested seats are
// already held by an active booking for the showtime.  The request is
// rejected as a whole; partial allocation never happens.  Callers may
// retry with a different seat selection.
type SeatConflictError struct {
	SeatIDs []uint64
}

func (e *SeatConflictError) Error() string {
	return "some seats are already booked"
}
