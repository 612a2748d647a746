package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/kostyrin/theatre-booking/internal/model"
	"github.com/kostyrin/theatre-booking/internal/repository"
)

type actorReq struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

type actorResp struct {
	ID        uint64 `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	FullName  string `json:"full_name"`
}

func toActorResp(a model.Actor) actorResp {
	return actorResp{ID: a.ID, FirstName: a.FirstName, LastName: a.LastName, FullName: a.FullName()}
}

// CreateActor handles POST /v1/actors (admin only).
func (h *CatalogHandler) CreateActor(c echo.Context) error {
	var req actorReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.FirstName = strings.TrimSpace(req.FirstName)
	req.LastName = strings.TrimSpace(req.LastName)
	if req.FirstName == "" || req.LastName == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "first_name and last_name are required"})
	}
	a := model.Actor{FirstName: req.FirstName, LastName: req.LastName}
	if err := h.Actors.Create(c.Request().Context(), &a); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create actor failed"})
	}
	return c.JSON(http.StatusCreated, toActorResp(a))
}

// ListActors handles GET /v1/actors.
func (h *CatalogHandler) ListActors(c echo.Context) error {
	page, size, limit, offset := pageParams(c)
	actors, total, err := h.Actors.List(c.Request().Context(), limit, offset)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list actors failed"})
	}
	items := make([]actorResp, 0, len(actors))
	for _, a := range actors {
		items = append(items, toActorResp(a))
	}
	return c.JSON(http.StatusOK, pagedResponse{Items: items, Page: page, PageSize: size, Total: total})
}

// GetActor handles GET /v1/actors/:id.
func (h *CatalogHandler) GetActor(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid actor id"})
	}
	a, err := h.Actors.GetByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrActorNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "actor not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "fetch actor failed"})
	}
	return c.JSON(http.StatusOK, toActorResp(*a))
}

// UpdateActor handles PUT /v1/actors/:id (admin only).
func (h *CatalogHandler) UpdateActor(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid actor id"})
	}
	var req actorReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.FirstName = strings.TrimSpace(req.FirstName)
	req.LastName = strings.TrimSpace(req.LastName)
	if req.FirstName == "" || req.LastName == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "first_name and last_name are required"})
	}
	a := model.Actor{ID: id, FirstName: req.FirstName, LastName: req.LastName}
	if err := h.Actors.Update(c.Request().Context(), &a); err != nil {
		if errors.Is(err, repository.ErrActorNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "actor not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update actor failed"})
	}
	return c.JSON(http.StatusOK, toActorResp(a))
}

// DeleteActor handles DELETE /v1/actors/:id (admin only).
func (h *CatalogHandler) DeleteActor(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid actor id"})
	}
	if err := h.Actors.Delete(c.Request().Context(), id); err != nil {
		switch {
		case errors.Is(err, repository.ErrActorNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "actor not found"})
		case errors.Is(err, repository.ErrConflict):
			return c.JSON(http.StatusConflict, echo.Map{"error": "actor is still referenced"})
		default:
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete actor failed"})
		}
	}
	return c.NoContent(http.StatusNoContent)
}
