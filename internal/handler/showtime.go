package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/farhanridho/bioskop-booking/internal/model"
	"github.com/farhanridho/bioskop-booking/internal/repository"
)

// ShowtimeHandler manages the showtime catalog.  Showtimes are plain
// attribute storage from the booking core's point of view; the core
// only ever reads their price and existence.
type ShowtimeHandler struct {
	Repo *repository.ShowtimeRepo
}

// NewShowtimeHandler constructs a ShowtimeHandler.
func NewShowtimeHandler(repo *repository.ShowtimeRepo) *ShowtimeHandler {
	if repo == nil {
		panic("nil repository passed to NewShowtimeHandler")
	}
	return &ShowtimeHandler{Repo: repo}
}

type showtimeRequest struct {
	MovieID   uint64  `json:"movie_id"`
	BioskopID uint64  `json:"bioskop_id"`
	ShowDate  string  `json:"show_date"` // "2006-01-02"
	ShowTime  string  `json:"show_time"` // "14:30"
	Price     float64 `json:"price"`
}

// CreateShowtime handles POST /api/showtimes.
func (h *ShowtimeHandler) CreateShowtime(c echo.Context) error {
	var req showtimeRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if req.MovieID == 0 || req.BioskopID == 0 || req.ShowDate == "" || req.ShowTime == "" || req.Price <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "movie_id, bioskop_id, show_date, show_time and price are required"})
	}
	date, err := time.Parse("2006-01-02", req.ShowDate)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "show_date must be formatted as YYYY-MM-DD"})
	}
	if _, err := time.Parse("15:04", req.ShowTime); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "show_time must be formatted as HH:MM"})
	}
	showtime := model.Showtime{
		MovieID:   req.MovieID,
		BioskopID: req.BioskopID,
		ShowDate:  date,
		ShowTime:  req.ShowTime,
		Price:     req.Price,
	}
	if err := h.Repo.Create(c.Request().Context(), &showtime); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create showtime"})
	}
	// Reload with movie and bioskop display data attached.
	hydrated, err := h.Repo.GetByID(c.Request().Context(), showtime.ID)
	if err != nil {
		return c.JSON(http.StatusCreated, showtime)
	}
	return c.JSON(http.StatusCreated, hydrated)
}

// ListShowtimes handles GET /api/showtimes with optional movie_id,
// bioskop_id and date filters.
func (h *ShowtimeHandler) ListShowtimes(c echo.Context) error {
	var filter repository.ShowtimeFilter
	if v := c.QueryParam("movie_id"); v != "" {
		id, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid movie_id"})
		}
		filter.MovieID = id
	}
	if v := c.QueryParam("bioskop_id"); v != "" {
		id, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid bioskop_id"})
		}
		filter.BioskopID = id
	}
	if v := c.QueryParam("date"); v != "" {
		date, err := time.Parse("2006-01-02", v)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "date must be formatted as YYYY-MM-DD"})
		}
		filter.Date = date
	}
	showtimes, err := h.Repo.List(c.Request().Context(), filter)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to fetch showtimes"})
	}
	return c.JSON(http.StatusOK, showtimes)
}

// GetShowtime handles GET /api/showtimes/:id.
func (h *ShowtimeHandler) GetShowtime(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid showtime id"})
	}
	showtime, err := h.Repo.GetByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrShowtimeNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "showtime not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to fetch showtime"})
	}
	return c.JSON(http.StatusOK, showtime)
}
