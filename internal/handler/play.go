package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/kostyrin/theatre-booking/internal/model"
	"github.com/kostyrin/theatre-booking/internal/repository"
)

type playReq struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Genres      []uint64 `json:"genres"`
	Actors      []uint64 `json:"actors"`
}

// CreatePlay handles POST /v1/plays (admin only).
func (h *CatalogHandler) CreatePlay(c echo.Context) error {
	var req playReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Title = strings.TrimSpace(req.Title)
	if req.Title == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "title is required"})
	}
	p := model.Play{Title: req.Title, Description: req.Description}
	if err := h.Plays.Create(c.Request().Context(), &p, req.Genres, req.Actors); err != nil {
		switch {
		case errors.Is(err, repository.ErrGenreNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "genre not found"})
		case errors.Is(err, repository.ErrActorNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "actor not found"})
		default:
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create play failed"})
		}
	}
	detail, err := h.Plays.GetDetail(c.Request().Context(), p.ID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "fetch play failed"})
	}
	return c.JSON(http.StatusCreated, detail)
}

// ListPlays handles GET /v1/plays with an optional ?title= substring
// filter.
func (h *CatalogHandler) ListPlays(c echo.Context) error {
	page, size, limit, offset := pageParams(c)
	title := strings.TrimSpace(c.QueryParam("title"))
	plays, total, err := h.Plays.ListDetails(c.Request().Context(), title, limit, offset)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list plays failed"})
	}
	return c.JSON(http.StatusOK, pagedResponse{Items: plays, Page: page, PageSize: size, Total: total})
}

// GetPlay handles GET /v1/plays/:id.
func (h *CatalogHandler) GetPlay(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid play id"})
	}
	detail, err := h.Plays.GetDetail(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrPlayNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "play not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "fetch play failed"})
	}
	return c.JSON(http.StatusOK, detail)
}

// UpdatePlay handles PUT /v1/plays/:id (admin only). The genre and
// actor link sets are replaced wholesale.
func (h *CatalogHandler) UpdatePlay(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid play id"})
	}
	var req playReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Title = strings.TrimSpace(req.Title)
	if req.Title == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "title is required"})
	}
	p := model.Play{ID: id, Title: req.Title, Description: req.Description}
	if err := h.Plays.Update(c.Request().Context(), &p, req.Genres, req.Actors); err != nil {
		switch {
		case errors.Is(err, repository.ErrPlayNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "play not found"})
		case errors.Is(err, repository.ErrGenreNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "genre not found"})
		case errors.Is(err, repository.ErrActorNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "actor not found"})
		default:
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update play failed"})
		}
	}
	detail, err := h.Plays.GetDetail(c.Request().Context(), id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "fetch play failed"})
	}
	return c.JSON(http.StatusOK, detail)
}

// DeletePlay handles DELETE /v1/plays/:id (admin only).
func (h *CatalogHandler) DeletePlay(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid play id"})
	}
	if err := h.Plays.Delete(c.Request().Context(), id); err != nil {
		switch {
		case errors.Is(err, repository.ErrPlayNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "play not found"})
		case errors.Is(err, repository.ErrConflict):
			return c.JSON(http.StatusConflict, echo.Map{"error": "play is still referenced"})
		default:
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete play failed"})
		}
	}
	return c.NoContent(http.StatusNoContent)
}
