package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kostyrin/theatre-booking/internal/booking"
	"github.com/kostyrin/theatre-booking/internal/model"
)

// fakeReservationSvc implements ReservationService with pluggable
// behavior per test.
type fakeReservationSvc struct {
	create      func(userID uint64, tickets []booking.TicketRequest) (*model.Reservation, error)
	list        func(userID uint64) ([]model.Reservation, error)
	listDetails func(userID uint64) ([]model.ReservationDetail, error)
	get         func(reservationID, userID uint64) (*model.Reservation, error)
}

func (f *fakeReservationSvc) CreateReservation(_ context.Context, userID uint64, tickets []booking.TicketRequest) (*model.Reservation, error) {
	return f.create(userID, tickets)
}

func (f *fakeReservationSvc) ListReservations(_ context.Context, userID uint64) ([]model.Reservation, error) {
	return f.list(userID)
}

func (f *fakeReservationSvc) ListReservationDetails(_ context.Context, userID uint64) ([]model.ReservationDetail, error) {
	return f.listDetails(userID)
}

func (f *fakeReservationSvc) GetReservation(_ context.Context, reservationID, userID uint64) (*model.Reservation, error) {
	return f.get(reservationID, userID)
}

func reservationCtx(t *testing.T, method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("user_id", uint64(42))
	return c, rec
}

func TestCreateReservationReturns201(t *testing.T) {
	created := &model.Reservation{
		ID:        9,
		UserID:    42,
		CreatedAt: time.Date(2026, 3, 1, 18, 0, 0, 0, time.UTC),
		Tickets: []model.Ticket{
			{ID: 1, Row: 2, Seat: 3, PerformanceID: 5},
		},
	}
	svc := &fakeReservationSvc{
		create: func(userID uint64, tickets []booking.TicketRequest) (*model.Reservation, error) {
			assert.Equal(t, uint64(42), userID)
			require.Len(t, tickets, 1)
			assert.Equal(t, uint64(5), tickets[0].PerformanceID)
			return created, nil
		},
	}
	h := NewReservationHandler(svc, nil)

	c, rec := reservationCtx(t, http.MethodPost, "/v1/reservations",
		`{"tickets":[{"performance_id":5,"row":2,"seat":3}]}`)
	require.NoError(t, h.Create(c))
	assert.Equal(t, http.StatusCreated, rec.Code)

	var got model.Reservation
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, uint64(9), got.ID)
	require.Len(t, got.Tickets, 1)
	assert.Equal(t, uint64(5), got.Tickets[0].PerformanceID)
}

func TestCreateReservationErrorMapping(t *testing.T) {
	cases := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"empty", booking.ErrEmptyReservation, http.StatusBadRequest},
		{"out_of_range", &booking.OutOfRangeError{Row: 9, Seat: 1, Rows: 5, SeatsInRow: 5}, http.StatusBadRequest},
		{"performance_missing", booking.ErrPerformanceNotFound, http.StatusNotFound},
		{"seat_taken", &booking.SeatTakenError{PerformanceID: 5, Row: 2, Seat: 3}, http.StatusConflict},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc := &fakeReservationSvc{
				create: func(uint64, []booking.TicketRequest) (*model.Reservation, error) {
					return nil, tc.err
				},
			}
			h := NewReservationHandler(svc, nil)
			c, rec := reservationCtx(t, http.MethodPost, "/v1/reservations",
				`{"tickets":[{"performance_id":5,"row":2,"seat":3}]}`)
			require.NoError(t, h.Create(c))
			assert.Equal(t, tc.wantStatus, rec.Code)
		})
	}
}

func TestCreateReservationConflictNamesTheSeat(t *testing.T) {
	svc := &fakeReservationSvc{
		create: func(uint64, []booking.TicketRequest) (*model.Reservation, error) {
			return nil, &booking.SeatTakenError{PerformanceID: 5, Row: 2, Seat: 3}
		},
	}
	h := NewReservationHandler(svc, nil)
	c, rec := reservationCtx(t, http.MethodPost, "/v1/reservations",
		`{"tickets":[{"performance_id":5,"row":2,"seat":3}]}`)
	require.NoError(t, h.Create(c))
	assert.Equal(t, http.StatusConflict, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.EqualValues(t, 2, body["row"])
	assert.EqualValues(t, 3, body["seat"])
	assert.EqualValues(t, 5, body["performance"])
}

func TestListReservationsDefaultsToExpanded(t *testing.T) {
	svc := &fakeReservationSvc{
		listDetails: func(userID uint64) ([]model.ReservationDetail, error) {
			assert.Equal(t, uint64(42), userID)
			return []model.ReservationDetail{{ID: 1}}, nil
		},
	}
	h := NewReservationHandler(svc, nil)
	c, rec := reservationCtx(t, http.MethodGet, "/v1/reservations", "")
	require.NoError(t, h.List(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"reservations"`)
}

func TestListReservationsCompactView(t *testing.T) {
	called := false
	svc := &fakeReservationSvc{
		list: func(userID uint64) ([]model.Reservation, error) {
			called = true
			return []model.Reservation{{ID: 1}}, nil
		},
	}
	h := NewReservationHandler(svc, nil)
	c, rec := reservationCtx(t, http.MethodGet, "/v1/reservations?view=compact", "")
	require.NoError(t, h.List(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, called)
}

func TestGetReservationNotFound(t *testing.T) {
	svc := &fakeReservationSvc{
		get: func(reservationID, userID uint64) (*model.Reservation, error) {
			assert.Equal(t, uint64(7), reservationID)
			assert.Equal(t, uint64(42), userID)
			return nil, booking.ErrReservationNotFound
		},
	}
	h := NewReservationHandler(svc, nil)
	c, rec := reservationCtx(t, http.MethodGet, "/v1/reservations/7", "")
	c.SetParamNames("id")
	c.SetParamValues("7")
	require.NoError(t, h.Get(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetReservationOwned(t *testing.T) {
	svc := &fakeReservationSvc{
		get: func(reservationID, userID uint64) (*model.Reservation, error) {
			return &model.Reservation{ID: reservationID, UserID: userID}, nil
		},
	}
	h := NewReservationHandler(svc, nil)
	c, rec := reservationCtx(t, http.MethodGet, "/v1/reservations/7", "")
	c.SetParamNames("id")
	c.SetParamValues("7")
	require.NoError(t, h.Get(c))
	assert.Equal(t, http.StatusOK, rec.Code)
}
