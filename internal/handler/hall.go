package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/kostyrin/theatre-booking/internal/model"
	"github.com/kostyrin/theatre-booking/internal/repository"
)

type hallReq struct {
	Name       string `json:"name"`
	Rows       uint32 `json:"rows"`
	SeatsInRow uint32 `json:"seats_in_row"`
}

type hallResp struct {
	ID         uint64 `json:"id"`
	Name       string `json:"name"`
	Rows       uint32 `json:"rows"`
	SeatsInRow uint32 `json:"seats_in_row"`
	Capacity   uint32 `json:"capacity"`
}

func toHallResp(h model.TheatreHall) hallResp {
	return hallResp{ID: h.ID, Name: h.Name, Rows: h.Rows, SeatsInRow: h.SeatsInRow, Capacity: h.Capacity()}
}

// CreateHall handles POST /v1/theatre-halls (admin only). Geometry must
// be strictly positive.
func (h *CatalogHandler) CreateHall(c echo.Context) error {
	var req hallReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" || req.Rows == 0 || req.SeatsInRow == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name, rows and seats_in_row are required and must be positive"})
	}
	hall := model.TheatreHall{Name: req.Name, Rows: req.Rows, SeatsInRow: req.SeatsInRow}
	if err := h.Halls.Create(c.Request().Context(), &hall); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create hall failed"})
	}
	return c.JSON(http.StatusCreated, toHallResp(hall))
}

// ListHalls handles GET /v1/theatre-halls.
func (h *CatalogHandler) ListHalls(c echo.Context) error {
	page, size, limit, offset := pageParams(c)
	halls, total, err := h.Halls.List(c.Request().Context(), limit, offset)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list halls failed"})
	}
	items := make([]hallResp, 0, len(halls))
	for _, hall := range halls {
		items = append(items, toHallResp(hall))
	}
	return c.JSON(http.StatusOK, pagedResponse{Items: items, Page: page, PageSize: size, Total: total})
}

// GetHall handles GET /v1/theatre-halls/:id.
func (h *CatalogHandler) GetHall(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid hall id"})
	}
	hall, err := h.Halls.GetByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrHallNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "theatre hall not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "fetch hall failed"})
	}
	return c.JSON(http.StatusOK, toHallResp(*hall))
}

// UpdateHall handles PUT /v1/theatre-halls/:id (admin only).
func (h *CatalogHandler) UpdateHall(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid hall id"})
	}
	var req hallReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" || req.Rows == 0 || req.SeatsInRow == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name, rows and seats_in_row are required and must be positive"})
	}
	hall := model.TheatreHall{ID: id, Name: req.Name, Rows: req.Rows, SeatsInRow: req.SeatsInRow}
	if err := h.Halls.Update(c.Request().Context(), &hall); err != nil {
		if errors.Is(err, repository.ErrHallNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "theatre hall not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update hall failed"})
	}
	return c.JSON(http.StatusOK, toHallResp(hall))
}

// DeleteHall handles DELETE /v1/theatre-halls/:id (admin only).
func (h *CatalogHandler) DeleteHall(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid hall id"})
	}
	if err := h.Halls.Delete(c.Request().Context(), id); err != nil {
		switch {
		case errors.Is(err, repository.ErrHallNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "theatre hall not found"})
		case errors.Is(err, repository.ErrConflict):
			return c.JSON(http.StatusConflict, echo.Map{"error": "theatre hall is still referenced"})
		default:
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete hall failed"})
		}
	}
	return c.NoContent(http.StatusNoContent)
}
