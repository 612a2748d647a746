package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/kostyrin/theatre-booking/internal/booking"
	"github.com/kostyrin/theatre-booking/internal/model"
)

// ReservationRepo persists reservations and their tickets. It is the
// SQL implementation of booking.Store: the uq_ticket_seat unique key
// on tickets arbitrates concurrent claims of the same seat, and every
// create runs in a single transaction so no partial reservation is
// ever visible.
type ReservationRepo struct {
	db *sql.DB
}

// NewReservationRepo returns a ReservationRepo bound to the given database.
func NewReservationRepo(db *sql.DB) *ReservationRepo { return &ReservationRepo{db: db} }

// PerformanceGeometry resolves the hall geometry for a performance.
func (r *ReservationRepo) PerformanceGeometry(ctx context.Context, performanceID uint64) (booking.Geometry, error) {
	const q = `SELECT h.rows_count, h.seats_in_row
	           FROM performances pf
	           JOIN theatre_halls h ON h.id = pf.theatre_hall_id
	           WHERE pf.id = ?`
	var g booking.Geometry
	err := r.db.QueryRowContext(ctx, q, performanceID).Scan(&g.Rows, &g.SeatsInRow)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return booking.Geometry{}, booking.ErrPerformanceNotFound
		}
		return booking.Geometry{}, err
	}
	return g, nil
}

// SeatTaken reports whether a ticket already claims the coordinate for
// the performance. This is the optimistic pre-check only; the unique
// key repeats the decision atomically at commit time.
func (r *ReservationRepo) SeatTaken(ctx context.Context, performanceID uint64, row, seat uint32) (bool, error) {
	const q = `SELECT EXISTS(
	             SELECT 1 FROM tickets
	             WHERE performance_id = ? AND row_num = ? AND seat_num = ?)`
	var taken bool
	err := r.db.QueryRowContext(ctx, q, performanceID, row, seat).Scan(&taken)
	return taken, err
}

// CreateReservation inserts the reservation row and then each ticket
// in request order within one transaction. A unique-key violation on
// any ticket rolls back the whole unit and surfaces as
// *booking.SeatTakenError naming the losing coordinate; a missing
// performance surfaces as booking.ErrPerformanceNotFound. On success
// the returned reservation carries all generated ids and the stamped
// creation time.
func (r *ReservationRepo) CreateReservation(ctx context.Context, userID uint64, tickets []booking.TicketRequest) (*model.Reservation, error) {
	if len(tickets) == 0 {
		return nil, booking.ErrEmptyReservation
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	res, err := tx.ExecContext(ctx, `INSERT INTO reservations (user_id) VALUES (?)`, userID)
	if err != nil {
		return nil, err
	}
	resID, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}

	out := &model.Reservation{
		ID:      uint64(resID),
		UserID:  userID,
		Tickets: make([]model.Ticket, 0, len(tickets)),
	}

	const insTicket = `INSERT INTO tickets (row_num, seat_num, performance_id, reservation_id)
	                   VALUES (?, ?, ?, ?)`
	for _, t := range tickets {
		tres, err := tx.ExecContext(ctx, insTicket, t.Row, t.Seat, t.PerformanceID, out.ID)
		if err != nil {
			if isDuplicateEntry(err) {
				return nil, &booking.SeatTakenError{
					PerformanceID: t.PerformanceID, Row: t.Row, Seat: t.Seat,
				}
			}
			if isMissingParent(err) {
				return nil, booking.ErrPerformanceNotFound
			}
			return nil, err
		}
		tid, err := tres.LastInsertId()
		if err != nil {
			return nil, err
		}
		out.Tickets = append(out.Tickets, model.Ticket{
			ID:            uint64(tid),
			Row:           t.Row,
			Seat:          t.Seat,
			PerformanceID: t.PerformanceID,
		})
	}

	// Read the stamped creation time back before commit so the caller
	// sees exactly what persisted.
	if err := tx.QueryRowContext(ctx,
		`SELECT created_at FROM reservations WHERE id = ?`, out.ID).Scan(&out.CreatedAt); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		if isDuplicateEntry(err) {
			return nil, &booking.SeatTakenError{
				PerformanceID: tickets[0].PerformanceID, Row: tickets[0].Row, Seat: tickets[0].Seat,
			}
		}
		return nil, err
	}
	committed = true
	return out, nil
}

// ReservationsByUser returns the user's reservations in the compact
// shape, newest first (created_at, then id, descending).
func (r *ReservationRepo) ReservationsByUser(ctx context.Context, userID uint64) ([]model.Reservation, error) {
	const q = `SELECT id, user_id, created_at FROM reservations
	           WHERE user_id = ?
	           ORDER BY created_at DESC, id DESC`
	rows, err := r.db.QueryContext(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]model.Reservation, 0)
	index := make(map[uint64]int)
	for rows.Next() {
		var res model.Reservation
		if err := rows.Scan(&res.ID, &res.UserID, &res.CreatedAt); err != nil {
			return nil, err
		}
		res.Tickets = []model.Ticket{}
		index[res.ID] = len(out)
		out = append(out, res)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return out, nil
	}

	ids := make([]any, 0, len(out))
	placeholders := make([]string, 0, len(out))
	for _, res := range out {
		ids = append(ids, res.ID)
		placeholders = append(placeholders, "?")
	}
	tq := `SELECT reservation_id, id, row_num, seat_num, performance_id
	       FROM tickets
	       WHERE reservation_id IN (` + strings.Join(placeholders, ",") + `)
	       ORDER BY reservation_id, id`
	trows, err := r.db.QueryContext(ctx, tq, ids...)
	if err != nil {
		return nil, err
	}
	defer trows.Close()
	for trows.Next() {
		var rid uint64
		var t model.Ticket
		if err := trows.Scan(&rid, &t.ID, &t.Row, &t.Seat, &t.PerformanceID); err != nil {
			return nil, err
		}
		if i, ok := index[rid]; ok {
			out[i].Tickets = append(out[i].Tickets, t)
		}
	}
	if err := trows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// ReservationDetailsByUser returns the user's reservations with every
// ticket expanded to its performance, play and hall, newest first.
func (r *ReservationRepo) ReservationDetailsByUser(ctx context.Context, userID uint64) ([]model.ReservationDetail, error) {
	const q = `SELECT id, created_at FROM reservations
	           WHERE user_id = ?
	           ORDER BY created_at DESC, id DESC`
	rows, err := r.db.QueryContext(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]model.ReservationDetail, 0)
	index := make(map[uint64]int)
	for rows.Next() {
		var res model.ReservationDetail
		if err := rows.Scan(&res.ID, &res.CreatedAt); err != nil {
			return nil, err
		}
		res.Tickets = []model.TicketDetail{}
		index[res.ID] = len(out)
		out = append(out, res)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return out, nil
	}

	ids := make([]any, 0, len(out))
	placeholders := make([]string, 0, len(out))
	for _, res := range out {
		ids = append(ids, res.ID)
		placeholders = append(placeholders, "?")
	}
	tq := `SELECT t.reservation_id, t.row_num, t.seat_num,
	              pf.id, pf.show_time,
	              pl.id, pl.title, pl.description,
	              h.id, h.name, h.rows_count, h.seats_in_row
	       FROM tickets t
	       JOIN performances pf ON pf.id = t.performance_id
	       JOIN plays pl ON pl.id = pf.play_id
	       JOIN theatre_halls h ON h.id = pf.theatre_hall_id
	       WHERE t.reservation_id IN (` + strings.Join(placeholders, ",") + `)
	       ORDER BY t.reservation_id, t.id`
	trows, err := r.db.QueryContext(ctx, tq, ids...)
	if err != nil {
		return nil, err
	}
	defer trows.Close()
	for trows.Next() {
		var rid uint64
		var td model.TicketDetail
		if err := trows.Scan(
			&rid, &td.Row, &td.Seat,
			&td.Performance.ID, &td.Performance.ShowTime,
			&td.Performance.Play.ID, &td.Performance.Play.Title, &td.Performance.Play.Description,
			&td.Performance.Hall.ID, &td.Performance.Hall.Name,
			&td.Performance.Hall.Rows, &td.Performance.Hall.SeatsInRow,
		); err != nil {
			return nil, err
		}
		td.Performance.Hall.Capacity = td.Performance.Hall.Rows * td.Performance.Hall.SeatsInRow
		if i, ok := index[rid]; ok {
			out[i].Tickets = append(out[i].Tickets, td)
		}
	}
	if err := trows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// ReservationByUser returns a single reservation owned by the user in
// the compact shape. A reservation owned by someone else is reported
// as not found, never as forbidden.
func (r *ReservationRepo) ReservationByUser(ctx context.Context, reservationID, userID uint64) (*model.Reservation, error) {
	const q = `SELECT id, user_id, created_at FROM reservations WHERE id = ? AND user_id = ?`
	var res model.Reservation
	err := r.db.QueryRowContext(ctx, q, reservationID, userID).
		Scan(&res.ID, &res.UserID, &res.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, booking.ErrReservationNotFound
		}
		return nil, err
	}
	res.Tickets = []model.Ticket{}

	const tq = `SELECT id, row_num, seat_num, performance_id
	            FROM tickets WHERE reservation_id = ? ORDER BY id`
	rows, err := r.db.QueryContext(ctx, tq, res.ID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var t model.Ticket
		if err := rows.Scan(&t.ID, &t.Row, &t.Seat, &t.PerformanceID); err != nil {
			return nil, err
		}
		res.Tickets = append(res.Tickets, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return &res, nil
}
