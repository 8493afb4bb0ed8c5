package handler

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/farhanridho/bioskop-booking/internal/model"
	"github.com/farhanridho/bioskop-booking/internal/repository"
)

// SeatHandler manages the static seat layout of bioskops.  Seat
// availability for a showtime is served by BookingHandler; this
// handler only deals with the physical seats themselves.
type SeatHandler struct {
	Repo *repository.SeatRepo
}

// NewSeatHandler constructs a SeatHandler.
func NewSeatHandler(repo *repository.SeatRepo) *SeatHandler {
	if repo == nil {
		panic("nil repository passed to NewSeatHandler")
	}
	return &SeatHandler{Repo: repo}
}

type seatRequest struct {
	BioskopID  uint64 `json:"bioskop_id"`
	SeatNumber string `json:"seat_number"`
	RowLabel   string `json:"row"`
	ColNumber  uint32 `json:"column"`
	SeatType   string `json:"seat_type"`
}

// CreateSeats handles POST /api/seats.  The body is an array so an
// entire hall layout can be seeded in one call.  A seat number
// defaults to row+column ("A1") and the seat type to "regular".
func (h *SeatHandler) CreateSeats(c echo.Context) error {
	var reqs []seatRequest
	if err := c.Bind(&reqs); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if len(reqs) == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "at least one seat is required"})
	}
	seats := make([]model.Seat, 0, len(reqs))
	for _, req := range reqs {
		if req.BioskopID == 0 || req.RowLabel == "" || req.ColNumber == 0 {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "bioskop_id, row and column are required for every seat"})
		}
		seat := model.Seat{
			BioskopID:  req.BioskopID,
			SeatNumber: req.SeatNumber,
			RowLabel:   req.RowLabel,
			ColNumber:  req.ColNumber,
			SeatType:   req.SeatType,
		}
		if seat.SeatNumber == "" {
			seat.SeatNumber = fmt.Sprintf("%s%d", seat.RowLabel, seat.ColNumber)
		}
		if seat.SeatType == "" {
			seat.SeatType = "regular"
		}
		seats = append(seats, seat)
	}
	if err := h.Repo.CreateBulk(c.Request().Context(), seats); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create seats"})
	}
	return c.JSON(http.StatusCreated, echo.Map{"created": len(seats)})
}

// GetSeats handles GET /api/seats?bioskop_id=N, listing a bioskop's
// seats ordered by row and column.
func (h *SeatHandler) GetSeats(c echo.Context) error {
	bioskopID, err := strconv.ParseUint(c.QueryParam("bioskop_id"), 10, 64)
	if err != nil || bioskopID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "bioskop_id is required"})
	}
	seats, err := h.Repo.ListByBioskop(c.Request().Context(), bioskopID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to fetch seats"})
	}
	return c.JSON(http.StatusOK, seats)
}
