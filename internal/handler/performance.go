package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/kostyrin/theatre-booking/internal/model"
	"github.com/kostyrin/theatre-booking/internal/repository"
)

type performanceReq struct {
	PlayID        uint64    `json:"play"`
	TheatreHallID uint64    `json:"theatre_hall"`
	ShowTime      time.Time `json:"show_time"`
}

// CreatePerformance handles POST /v1/performances (admin only).
func (h *CatalogHandler) CreatePerformance(c echo.Context) error {
	var req performanceReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.PlayID == 0 || req.TheatreHallID == 0 || req.ShowTime.IsZero() {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "play, theatre_hall and show_time are required"})
	}
	p := model.Performance{PlayID: req.PlayID, TheatreHallID: req.TheatreHallID, ShowTime: req.ShowTime}
	if err := h.Performances.Create(c.Request().Context(), &p); err != nil {
		switch {
		case errors.Is(err, repository.ErrPlayNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "play not found"})
		case errors.Is(err, repository.ErrHallNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "theatre hall not found"})
		default:
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create performance failed"})
		}
	}
	return c.JSON(http.StatusCreated, p)
}

// ListPerformances handles GET /v1/performances with an optional
// ?date=YYYY-MM-DD filter (UTC calendar day).
func (h *CatalogHandler) ListPerformances(c echo.Context) error {
	page, size, limit, offset := pageParams(c)

	var date *time.Time
	if raw := c.QueryParam("date"); raw != "" {
		d, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "date must be YYYY-MM-DD"})
		}
		date = &d
	}

	perfs, total, err := h.Performances.ListDetails(c.Request().Context(), date, limit, offset)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list performances failed"})
	}
	return c.JSON(http.StatusOK, pagedResponse{Items: perfs, Page: page, PageSize: size, Total: total})
}

// GetPerformance handles GET /v1/performances/:id and returns the
// expanded shape with play and hall embedded.
func (h *CatalogHandler) GetPerformance(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid performance id"})
	}
	detail, err := h.Performances.GetDetail(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrPerformanceNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "performance not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "fetch performance failed"})
	}
	return c.JSON(http.StatusOK, detail)
}

// UpdatePerformance handles PUT /v1/performances/:id (admin only).
func (h *CatalogHandler) UpdatePerformance(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid performance id"})
	}
	var req performanceReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.PlayID == 0 || req.TheatreHallID == 0 || req.ShowTime.IsZero() {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "play, theatre_hall and show_time are required"})
	}
	p := model.Performance{ID: id, PlayID: req.PlayID, TheatreHallID: req.TheatreHallID, ShowTime: req.ShowTime}
	if err := h.Performances.Update(c.Request().Context(), &p); err != nil {
		switch {
		case errors.Is(err, repository.ErrPerformanceNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "performance not found"})
		case errors.Is(err, repository.ErrPlayNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "play not found"})
		case errors.Is(err, repository.ErrHallNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "theatre hall not found"})
		default:
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update performance failed"})
		}
	}
	return c.JSON(http.StatusOK, p)
}

// DeletePerformance handles DELETE /v1/performances/:id (admin only).
func (h *CatalogHandler) DeletePerformance(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid performance id"})
	}
	if err := h.Performances.Delete(c.Request().Context(), id); err != nil {
		switch {
		case errors.Is(err, repository.ErrPerformanceNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "performance not found"})
		case errors.Is(err, repository.ErrConflict):
			return c.JSON(http.StatusConflict, echo.Map{"error": "performance has tickets"})
		default:
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete performance failed"})
		}
	}
	return c.NoContent(http.StatusNoContent)
}
