package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/farhanridho/bioskop-booking/internal/model"
	"github.com/farhanridho/bioskop-booking/internal/repository"
)

// MovieHandler manages the movie catalog.
type MovieHandler struct {
	Repo *repository.MovieRepo
}

// NewMovieHandler constructs a MovieHandler.
func NewMovieHandler(repo *repository.MovieRepo) *MovieHandler {
	if repo == nil {
		panic("nil repository passed to NewMovieHandler")
	}
	return &MovieHandler{Repo: repo}
}

type movieRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	DurationMin uint32 `json:"duration_min"`
	Genre       string `json:"genre"`
	Rating      string `json:"rating"`
	PosterURL   string `json:"poster_url"`
}

// CreateMovie handles POST /api/movies.
func (h *MovieHandler) CreateMovie(c echo.Context) error {
	var req movieRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if req.Title == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "title is required"})
	}
	movie := model.Movie{
		Title:       req.Title,
		Description: req.Description,
		DurationMin: req.DurationMin,
		Genre:       req.Genre,
		Rating:      req.Rating,
		PosterURL:   req.PosterURL,
	}
	if err := h.Repo.Create(c.Request().Context(), &movie); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create movie"})
	}
	return c.JSON(http.StatusCreated, movie)
}

// ListMovies handles GET /api/movies.
func (h *MovieHandler) ListMovies(c echo.Context) error {
	movies, err := h.Repo.List(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to fetch movies"})
	}
	return c.JSON(http.StatusOK, movies)
}

// GetMovie handles GET /api/movies/:id.
func (h *MovieHandler) GetMovie(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid movie id"})
	}
	movie, err := h.Repo.GetByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrMovieNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "movie not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to fetch movie"})
	}
	return c.JSON(http.StatusOK, movie)
}

// UpdateMovie handles PUT /api/movies/:id.
func (h *MovieHandler) UpdateMovie(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid movie id"})
	}
	var req movieRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if req.Title == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "title is required"})
	}
	movie := model.Movie{
		ID:          id,
		Title:       req.Title,
		Description: req.Description,
		DurationMin: req.DurationMin,
		Genre:       req.Genre,
		Rating:      req.Rating,
		PosterURL:   req.PosterURL,
	}
	if err := h.Repo.Update(c.Request().Context(), &movie); err != nil {
		if errors.Is(err, repository.ErrMovieNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "movie not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to update movie"})
	}
	return c.JSON(http.StatusOK, movie)
}

// DeleteMovie handles DELETE /api/movies/:id.
func (h *MovieHandler) DeleteMovie(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid movie id"})
	}
	if err := h.Repo.Delete(c.Request().Context(), id); err != nil {
		if errors.Is(err, repository.ErrMovieNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "movie not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to delete movie"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "movie deleted"})
}
