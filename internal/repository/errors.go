// Package repository contains the data access layer.  This file defines
// sentinel errors shared across repositories so that the service and
// handler layers can distinguish failure scenarios with errors.Is
// instead of inspecting driver errors.
package repository

import "errors"

// ErrBioskopNotFound is returned when a bioskop lookup yields no rows.
var ErrBioskopNotFound = errors.New("bioskop not found")

// ErrMovieNotFound is returned when a movie lookup yields no rows.
var ErrMovieNotFound = errors.New("movie not found")

// ErrShowtimeNotFound is returned when a showtime lookup yields no
// rows.  Handlers translate this into an HTTP 404 response.
var ErrShowtimeNotFound = errors.New("showtime not found")

// ErrBookingNotFound is returned when no booking matches the given
// booking code.  Handlers translate this into an HTTP 404 response.
var ErrBookingNotFound = errors.New("booking not found")
