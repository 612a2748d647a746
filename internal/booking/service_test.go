package booking

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kostyrin/theatre-booking/internal/model"
)

// memStore is an in-memory Store. Like the SQL implementation it treats
// (performance, row, seat) as a unique key and persists a reservation
// all-or-nothing under a single lock.
type memStore struct {
	mu     sync.Mutex
	geoms  map[uint64]Geometry
	taken  map[seatKey]bool
	nextID uint64
	byID   map[uint64]*model.Reservation
	order  []uint64 // creation order of reservation ids
}

func newMemStore(geoms map[uint64]Geometry) *memStore {
	return &memStore{
		geoms: geoms,
		taken: map[seatKey]bool{},
		byID:  map[uint64]*model.Reservation{},
	}
}

func (m *memStore) PerformanceGeometry(_ context.Context, performanceID uint64) (Geometry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	g, ok := m.geoms[performanceID]
	if !ok {
		return Geometry{}, ErrPerformanceNotFound
	}
	return g, nil
}

func (m *memStore) SeatTaken(_ context.Context, performanceID uint64, row, seat uint32) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.taken[seatKey{performanceID, row, seat}], nil
}

func (m *memStore) CreateReservation(_ context.Context, userID uint64, tickets []TicketRequest) (*model.Reservation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, t := range tickets {
		if _, ok := m.geoms[t.PerformanceID]; !ok {
			return nil, ErrPerformanceNotFound
		}
		if m.taken[seatKey{t.PerformanceID, t.Row, t.Seat}] {
			return nil, &SeatTakenError{PerformanceID: t.PerformanceID, Row: t.Row, Seat: t.Seat}
		}
	}

	m.nextID++
	res := &model.Reservation{
		ID:        m.nextID,
		UserID:    userID,
		CreatedAt: time.Now().UTC(),
	}
	for _, t := range tickets {
		m.taken[seatKey{t.PerformanceID, t.Row, t.Seat}] = true
		res.Tickets = append(res.Tickets, model.Ticket{
			ID:            m.nextID*100 + uint64(len(res.Tickets)+1),
			Row:           t.Row,
			Seat:          t.Seat,
			PerformanceID: t.PerformanceID,
		})
	}
	m.byID[res.ID] = res
	m.order = append(m.order, res.ID)
	return res, nil
}

func (m *memStore) ReservationsByUser(_ context.Context, userID uint64) ([]model.Reservation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []model.Reservation{}
	for i := len(m.order) - 1; i >= 0; i-- { // newest first
		r := m.byID[m.order[i]]
		if r.UserID == userID {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (m *memStore) ReservationDetailsByUser(ctx context.Context, userID uint64) ([]model.ReservationDetail, error) {
	compact, err := m.ReservationsByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	out := make([]model.ReservationDetail, 0, len(compact))
	for _, r := range compact {
		d := model.ReservationDetail{ID: r.ID, CreatedAt: r.CreatedAt}
		for _, t := range r.Tickets {
			d.Tickets = append(d.Tickets, model.TicketDetail{
				Row:         t.Row,
				Seat:        t.Seat,
				Performance: model.PerformanceDetail{ID: t.PerformanceID},
			})
		}
		out = append(out, d)
	}
	return out, nil
}

func (m *memStore) ReservationByUser(_ context.Context, reservationID, userID uint64) (*model.Reservation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.byID[reservationID]
	if !ok || r.UserID != userID {
		return nil, ErrReservationNotFound
	}
	cp := *r
	return &cp, nil
}

func (m *memStore) ticketCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, r := range m.byID {
		n += len(r.Tickets)
	}
	return n
}

func newTestService(geoms map[uint64]Geometry) (*Service, *memStore) {
	store := newMemStore(geoms)
	return NewService(store), store
}

func TestCreateReservationRejectsEmpty(t *testing.T) {
	svc, store := newTestService(map[uint64]Geometry{1: {Rows: 5, SeatsInRow: 5}})

	_, err := svc.CreateReservation(context.Background(), 1, nil)
	require.ErrorIs(t, err, ErrEmptyReservation)
	_, err = svc.CreateReservation(context.Background(), 1, []TicketRequest{})
	require.ErrorIs(t, err, ErrEmptyReservation)

	assert.Zero(t, store.ticketCount())
}

func TestCreateReservationUnknownPerformance(t *testing.T) {
	svc, store := newTestService(map[uint64]Geometry{1: {Rows: 5, SeatsInRow: 5}})

	_, err := svc.CreateReservation(context.Background(), 1, []TicketRequest{
		{PerformanceID: 99, Row: 1, Seat: 1},
	})
	require.ErrorIs(t, err, ErrPerformanceNotFound)
	assert.Zero(t, store.ticketCount())
}

func TestCreateReservationOutOfRange(t *testing.T) {
	svc, store := newTestService(map[uint64]Geometry{1: {Rows: 3, SeatsInRow: 4}})

	_, err := svc.CreateReservation(context.Background(), 1, []TicketRequest{
		{PerformanceID: 1, Row: 2, Seat: 2},
		{PerformanceID: 1, Row: 4, Seat: 1},
	})
	var oor *OutOfRangeError
	require.ErrorAs(t, err, &oor)
	assert.Equal(t, uint32(4), oor.Row)

	// The valid first ticket must not have been persisted.
	assert.Zero(t, store.ticketCount())
}

func TestCreateReservationDuplicateSeatInRequest(t *testing.T) {
	svc, store := newTestService(map[uint64]Geometry{1: {Rows: 5, SeatsInRow: 5}})

	_, err := svc.CreateReservation(context.Background(), 1, []TicketRequest{
		{PerformanceID: 1, Row: 2, Seat: 3},
		{PerformanceID: 1, Row: 2, Seat: 3},
	})
	var taken *SeatTakenError
	require.ErrorAs(t, err, &taken)
	assert.Equal(t, uint32(2), taken.Row)
	assert.Equal(t, uint32(3), taken.Seat)
	assert.Zero(t, store.ticketCount())
}

func TestCreateReservationSuccessKeepsRequestOrder(t *testing.T) {
	svc, _ := newTestService(map[uint64]Geometry{
		1: {Rows: 5, SeatsInRow: 5},
		2: {Rows: 10, SeatsInRow: 10},
	})

	req := []TicketRequest{
		{PerformanceID: 2, Row: 10, Seat: 10},
		{PerformanceID: 1, Row: 1, Seat: 1},
		{PerformanceID: 1, Row: 1, Seat: 2},
	}
	res, err := svc.CreateReservation(context.Background(), 7, req)
	require.NoError(t, err)
	require.NotNil(t, res)
	assert.NotZero(t, res.ID)
	assert.False(t, res.CreatedAt.IsZero())
	require.Len(t, res.Tickets, 3)
	for i, tk := range res.Tickets {
		assert.Equal(t, req[i].PerformanceID, tk.PerformanceID)
		assert.Equal(t, req[i].Row, tk.Row)
		assert.Equal(t, req[i].Seat, tk.Seat)
		assert.NotZero(t, tk.ID)
	}
}

func TestCreateReservationSeatAlreadyTaken(t *testing.T) {
	svc, store := newTestService(map[uint64]Geometry{1: {Rows: 5, SeatsInRow: 5}})

	_, err := svc.CreateReservation(context.Background(), 1, []TicketRequest{
		{PerformanceID: 1, Row: 3, Seat: 3},
	})
	require.NoError(t, err)

	_, err = svc.CreateReservation(context.Background(), 2, []TicketRequest{
		{PerformanceID: 1, Row: 1, Seat: 1},
		{PerformanceID: 1, Row: 3, Seat: 3},
	})
	var taken *SeatTakenError
	require.ErrorAs(t, err, &taken)
	assert.Equal(t, uint64(1), taken.PerformanceID)
	assert.Equal(t, uint32(3), taken.Row)

	// Only the first reservation's ticket exists: the losing request
	// persisted nothing, including its valid (1,1) ticket.
	assert.Equal(t, 1, store.ticketCount())
}

func TestConcurrentClaimsHaveExactlyOneWinner(t *testing.T) {
	svc, store := newTestService(map[uint64]Geometry{1: {Rows: 5, SeatsInRow: 5}})

	const contenders = 32
	var wg sync.WaitGroup
	errs := make([]error, contenders)
	for i := 0; i < contenders; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = svc.CreateReservation(context.Background(), uint64(i+1), []TicketRequest{
				{PerformanceID: 1, Row: 2, Seat: 2},
			})
		}(i)
	}
	wg.Wait()

	winners := 0
	for _, err := range errs {
		if err == nil {
			winners++
			continue
		}
		var taken *SeatTakenError
		require.ErrorAs(t, err, &taken)
	}
	assert.Equal(t, 1, winners)
	assert.Equal(t, 1, store.ticketCount())
}

func TestReservationReadsAreUserScoped(t *testing.T) {
	svc, _ := newTestService(map[uint64]Geometry{1: {Rows: 5, SeatsInRow: 5}})
	ctx := context.Background()

	mine, err := svc.CreateReservation(ctx, 1, []TicketRequest{{PerformanceID: 1, Row: 1, Seat: 1}})
	require.NoError(t, err)
	_, err = svc.CreateReservation(ctx, 2, []TicketRequest{{PerformanceID: 1, Row: 1, Seat: 2}})
	require.NoError(t, err)

	list, err := svc.ListReservations(ctx, 1)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, mine.ID, list[0].ID)

	// Another user's reservation reads as missing, not forbidden.
	_, err = svc.GetReservation(ctx, mine.ID, 2)
	require.ErrorIs(t, err, ErrReservationNotFound)

	got, err := svc.GetReservation(ctx, mine.ID, 1)
	require.NoError(t, err)
	assert.Equal(t, mine.ID, got.ID)
}

func TestListReservationsNewestFirst(t *testing.T) {
	svc, _ := newTestService(map[uint64]Geometry{1: {Rows: 5, SeatsInRow: 5}})
	ctx := context.Background()

	first, err := svc.CreateReservation(ctx, 1, []TicketRequest{{PerformanceID: 1, Row: 1, Seat: 1}})
	require.NoError(t, err)
	second, err := svc.CreateReservation(ctx, 1, []TicketRequest{{PerformanceID: 1, Row: 1, Seat: 2}})
	require.NoError(t, err)

	list, err := svc.ListReservations(ctx, 1)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, second.ID, list[0].ID)
	assert.Equal(t, first.ID, list[1].ID)

	details, err := svc.ListReservationDetails(ctx, 1)
	require.NoError(t, err)
	require.Len(t, details, 2)
	assert.Equal(t, second.ID, details[0].ID)
	require.Len(t, details[0].Tickets, 1)
	assert.Equal(t, uint64(1), details[0].Tickets[0].Performance.ID)
}
