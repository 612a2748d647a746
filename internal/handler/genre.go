package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/kostyrin/theatre-booking/internal/model"
	"github.com/kostyrin/theatre-booking/internal/repository"
)

type genreReq struct {
	Name string `json:"name"`
}

// CreateGenre handles POST /v1/genres (admin only).
func (h *CatalogHandler) CreateGenre(c echo.Context) error {
	var req genreReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name is required"})
	}
	g := model.Genre{Name: req.Name}
	if err := h.Genres.Create(c.Request().Context(), &g); err != nil {
		if errors.Is(err, repository.ErrGenreExists) {
			return c.JSON(http.StatusConflict, echo.Map{"error": "genre already exists"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create genre failed"})
	}
	return c.JSON(http.StatusCreated, g)
}

// ListGenres handles GET /v1/genres.
func (h *CatalogHandler) ListGenres(c echo.Context) error {
	page, size, limit, offset := pageParams(c)
	genres, total, err := h.Genres.List(c.Request().Context(), limit, offset)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list genres failed"})
	}
	return c.JSON(http.StatusOK, pagedResponse{Items: genres, Page: page, PageSize: size, Total: total})
}

// GetGenre handles GET /v1/genres/:id.
func (h *CatalogHandler) GetGenre(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid genre id"})
	}
	g, err := h.Genres.GetByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrGenreNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "genre not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "fetch genre failed"})
	}
	return c.JSON(http.StatusOK, g)
}

// UpdateGenre handles PUT /v1/genres/:id (admin only).
func (h *CatalogHandler) UpdateGenre(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid genre id"})
	}
	var req genreReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name is required"})
	}
	g := model.Genre{ID: id, Name: req.Name}
	if err := h.Genres.Update(c.Request().Context(), &g); err != nil {
		switch {
		case errors.Is(err, repository.ErrGenreNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "genre not found"})
		case errors.Is(err, repository.ErrGenreExists):
			return c.JSON(http.StatusConflict, echo.Map{"error": "genre already exists"})
		default:
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update genre failed"})
		}
	}
	return c.JSON(http.StatusOK, g)
}

// DeleteGenre handles DELETE /v1/genres/:id (admin only).
func (h *CatalogHandler) DeleteGenre(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid genre id"})
	}
	if err := h.Genres.Delete(c.Request().Context(), id); err != nil {
		switch {
		case errors.Is(err, repository.ErrGenreNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "genre not found"})
		case errors.Is(err, repository.ErrConflict):
			return c.JSON(http.StatusConflict, echo.Map{"error": "genre is still referenced"})
		default:
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete genre failed"})
		}
	}
	return c.NoContent(http.StatusNoContent)
}
