package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/farhanridho/bioskop-booking/internal/model"
	"github.com/farhanridho/bioskop-booking/internal/repository"
)

// BioskopHandler manages cinema venues.
type BioskopHandler struct {
	Repo *repository.BioskopRepo
}

// NewBioskopHandler constructs a BioskopHandler.
func NewBioskopHandler(repo *repository.BioskopRepo) *BioskopHandler {
	if repo == nil {
		panic("nil repository passed to NewBioskopHandler")
	}
	return &BioskopHandler{Repo: repo}
}

type bioskopRequest struct {
	Name    string `json:"name"`
	Address string `json:"address"`
}

// CreateBioskop handles POST /api/bioskops.
func (h *BioskopHandler) CreateBioskop(c echo.Context) error {
	var req bioskopRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if req.Name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name is required"})
	}
	bioskop := model.Bioskop{Name: req.Name, Address: req.Address}
	if err := h.Repo.Create(c.Request().Context(), &bioskop); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create bioskop"})
	}
	return c.JSON(http.StatusCreated, bioskop)
}

// ListBioskops handles GET /api/bioskops.
func (h *BioskopHandler) ListBioskops(c echo.Context) error {
	bioskops, err := h.Repo.List(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to fetch bioskops"})
	}
	return c.JSON(http.StatusOK, bioskops)
}

// GetBioskop handles GET /api/bioskops/:id.
func (h *BioskopHandler) GetBioskop(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid bioskop id"})
	}
	bioskop, err := h.Repo.GetByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrBioskopNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "bioskop not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to fetch bioskop"})
	}
	return c.JSON(http.StatusOK, bioskop)
}

// UpdateBioskop handles PUT /api/bioskops/:id.
func (h *BioskopHandler) UpdateBioskop(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid bioskop id"})
	}
	var req bioskopRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if req.Name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name is required"})
	}
	bioskop := model.Bioskop{ID: id, Name: req.Name, Address: req.Address}
	if err := h.Repo.Update(c.Request().Context(), &bioskop); err != nil {
		if errors.Is(err, repository.ErrBioskopNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "bioskop not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to update bioskop"})
	}
	return c.JSON(http.StatusOK, bioskop)
}

// DeleteBioskop handles DELETE /api/bioskops/:id.
func (h *BioskopHandler) DeleteBioskop(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid bioskop id"})
	}
	if err := h.Repo.Delete(c.Request().Context(), id); err != nil {
		if errors.Is(err, repository.ErrBioskopNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "bioskop not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to delete bioskop"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "bioskop deleted"})
}
