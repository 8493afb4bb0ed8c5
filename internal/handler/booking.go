package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/farhanridho/bioskop-booking/internal/repository"
	"github.com/farhanridho/bioskop-booking/internal/service"
)

// BookingHandler exposes the seat-reservation core over HTTP.  All
// orchestration lives in the booking service; the handler binds
// requests, maps domain errors to status codes and shapes responses.
type BookingHandler struct {
	Svc *service.BookingService
}

// NewBookingHandler constructs a BookingHandler.  The service must be
// non-nil.
func NewBookingHandler(svc *service.BookingService) *BookingHandler {
	if svc == nil {
		panic("nil service passed to NewBookingHandler")
	}
	return &BookingHandler{Svc: svc}
}

// bookingRequest mirrors the JSON payload accepted by POST /api/bookings.
type bookingRequest struct {
	ShowtimeID    uint64   `json:"showtime_id"`
	CustomerName  string   `json:"customer_name"`
	CustomerEmail string   `json:"customer_email"`
	CustomerPhone string   `json:"customer_phone"`
	SeatIDs       []uint64 `json:"seat_ids"`
}

// CreateBooking handles POST /api/bookings.  On success it responds
// 201 with the hydrated booking (showtime, movie and bioskop display
// data included).  Missing fields yield 400, an unknown showtime 404,
// and a seat conflict 409 together with the conflicting seat IDs so
// the client can prompt re-selection.
func (h *BookingHandler) CreateBooking(c echo.Context) error {
	var req bookingRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	booking, err := h.Svc.Create(c.Request().Context(), service.CreateBookingInput{
		ShowtimeID:    req.ShowtimeID,
		CustomerName:  req.CustomerName,
		CustomerEmail: req.CustomerEmail,
		CustomerPhone: req.CustomerPhone,
		SeatIDs:       req.SeatIDs,
	})
	if err != nil {
		var vErr *service.ValidationError
		var confErr *service.SeatConflictError
		switch {
		case errors.As(err, &vErr):
			return c.JSON(http.StatusBadRequest, echo.Map{"error": vErr.Error()})
		case errors.Is(err, service.ErrSeatNotInBioskop):
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		case errors.Is(err, repository.ErrShowtimeNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "showtime not found"})
		case errors.As(err, &confErr):
			return c.JSON(http.StatusConflict, echo.Map{
				"error":                "some seats are already booked",
				"conflicting_seat_ids": confErr.SeatIDs,
			})
		default:
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create booking"})
		}
	}
	return c.JSON(http.StatusCreated, booking)
}

// GetBooking handles GET /api/bookings/:booking_code.  The booking code
// is the public lookup key; internal IDs are never accepted here.
func (h *BookingHandler) GetBooking(c echo.Context) error {
	code := c.Param("booking_code")
	booking, seats, err := h.Svc.Get(c.Request().Context(), code)
	if err != nil {
		if errors.Is(err, repository.ErrBookingNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "booking not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to fetch booking"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"booking": booking,
		"seats":   seats,
	})
}

// ListBookings handles GET /api/bookings, newest first.
func (h *BookingHandler) ListBookings(c echo.Context) error {
	bookings, err := h.Svc.List(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to fetch bookings"})
	}
	return c.JSON(http.StatusOK, bookings)
}

// CancelBooking handles PUT /api/bookings/:booking_code/cancel.  The
// seats of a cancelled booking become available again immediately
// because availability is derived from active bookings only.
func (h *BookingHandler) CancelBooking(c echo.Context) error {
	code := c.Param("booking_code")
	booking, err := h.Svc.Cancel(c.Request().Context(), code)
	if err != nil {
		if errors.Is(err, repository.ErrBookingNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "booking not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to cancel booking"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"message": "booking cancelled successfully",
		"booking": booking,
	})
}

// GetShowtimeSeats handles GET /api/showtimes/:showtime_id/seats.  It
// returns every seat of the showtime's bioskop annotated with an
// is_available flag.  This endpoint is intentionally excluded from the
// response cache: a stale availability view would mislead customers
// into picking seats that are already gone.
func (h *BookingHandler) GetShowtimeSeats(c echo.Context) error {
	showtimeID, err := strconv.ParseUint(c.Param("showtime_id"), 10, 64)
	if err != nil || showtimeID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid showtime id"})
	}
	view, err := h.Svc.SeatsForShowtime(c.Request().Context(), showtimeID)
	if err != nil {
		if errors.Is(err, repository.ErrShowtimeNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "showtime not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to fetch seats"})
	}
	return c.JSON(http.StatusOK, view)
}
