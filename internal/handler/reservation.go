package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/kostyrin/theatre-booking/internal/booking"
	"github.com/kostyrin/theatre-booking/internal/model"
	"github.com/kostyrin/theatre-booking/internal/queue"
)

// ReservationService is the slice of the booking service the handler
// needs. Tests substitute a fake.
type ReservationService interface {
	CreateReservation(ctx context.Context, userID uint64, tickets []booking.TicketRequest) (*model.Reservation, error)
	ListReservations(ctx context.Context, userID uint64) ([]model.Reservation, error)
	ListReservationDetails(ctx context.Context, userID uint64) ([]model.ReservationDetail, error)
	GetReservation(ctx context.Context, reservationID, userID uint64) (*model.Reservation, error)
}

// EventPublisher emits post-commit domain events. Publishing is best
// effort; a failure never affects the HTTP response.
type EventPublisher interface {
	ReservationCreated(ctx context.Context, event queue.ReservationCreatedEvent) error
}

// ReservationHandler serves the reservation endpoints. Every route
// requires an authenticated user; all reads are scoped to that user.
type ReservationHandler struct {
	Svc    ReservationService
	Events EventPublisher
}

// NewReservationHandler constructs a ReservationHandler. Events may be
// nil when no broker is configured.
func NewReservationHandler(svc ReservationService, events EventPublisher) *ReservationHandler {
	if svc == nil {
		panic("nil service passed to NewReservationHandler")
	}
	return &ReservationHandler{Svc: svc, Events: events}
}

type createReservationReq struct {
	Tickets []booking.TicketRequest `json:"tickets"`
}

// Create handles POST /v1/reservations. On success it returns 201 with
// the compact reservation. Validation failures map to 400, unknown
// performances to 404 and seat contention to 409 naming the losing
// coordinate.
func (h *ReservationHandler) Create(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	var req createReservationReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	res, err := h.Svc.CreateReservation(c.Request().Context(), userID, req.Tickets)
	if err != nil {
		var oor *booking.OutOfRangeError
		var taken *booking.SeatTakenError
		switch {
		case errors.Is(err, booking.ErrEmptyReservation):
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "reservation requires at least one ticket"})
		case errors.As(err, &oor):
			return c.JSON(http.StatusBadRequest, echo.Map{
				"error": "seat out of range",
				"row":   oor.Row,
				"seat":  oor.Seat,
			})
		case errors.Is(err, booking.ErrPerformanceNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "performance not found"})
		case errors.As(err, &taken):
			return c.JSON(http.StatusConflict, echo.Map{
				"error":       "seat already taken",
				"performance": taken.PerformanceID,
				"row":         taken.Row,
				"seat":        taken.Seat,
			})
		default:
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create reservation failed"})
		}
	}

	if h.Events != nil {
		ev := queue.ReservationCreatedEvent{
			ReservationID: res.ID,
			UserID:        userID,
			CreatedAt:     res.CreatedAt.UTC().Format(time.RFC3339),
		}
		for _, t := range res.Tickets {
			ev.Tickets = append(ev.Tickets, queue.TicketPart{
				PerformanceID: t.PerformanceID,
				Row:           t.Row,
				Seat:          t.Seat,
			})
		}
		// Detached from the request context so a slow broker cannot
		// delay or fail the response.
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = h.Events.ReservationCreated(ctx, ev)
		}()
	}

	return c.JSON(http.StatusCreated, res)
}

// List handles GET /v1/reservations. The expanded shape is the default;
// ?view=compact returns tickets with bare performance ids.
func (h *ReservationHandler) List(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	if c.QueryParam("view") == "compact" {
		out, err := h.Svc.ListReservations(c.Request().Context(), userID)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list reservations failed"})
		}
		return c.JSON(http.StatusOK, echo.Map{"reservations": out})
	}

	out, err := h.Svc.ListReservationDetails(c.Request().Context(), userID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list reservations failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"reservations": out})
}

// Get handles GET /v1/reservations/:id. A reservation owned by another
// user is indistinguishable from a missing one.
func (h *ReservationHandler) Get(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, ok := pathID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid reservation id"})
	}

	res, err := h.Svc.GetReservation(c.Request().Context(), id, userID)
	if err != nil {
		if errors.Is(err, booking.ErrReservationNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "reservation not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "fetch reservation failed"})
	}
	return c.JSON(http.StatusOK, res)
}
