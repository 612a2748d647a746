package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/kostyrin/theatre-booking/internal/model"
)

// HallRepo provides CRUD operations for theatre halls. Capacity is
// never stored; callers derive it from the geometry.
type HallRepo struct {
	db *sql.DB
}

// NewHallRepo constructs a HallRepo with the given DB handle.
func NewHallRepo(db *sql.DB) *HallRepo { return &HallRepo{db: db} }

// Create inserts a hall and populates its generated ID. Geometry must
// be positive; the handler validates and the schema CHECK backs it up.
func (r *HallRepo) Create(ctx context.Context, h *model.TheatreHall) error {
	const q = `INSERT INTO theatre_halls (name, rows_count, seats_in_row) VALUES (?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q, h.Name, h.Rows, h.SeatsInRow)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	h.ID = uint64(id)
	return nil
}

// GetByID returns one hall or ErrHallNotFound.
func (r *HallRepo) GetByID(ctx context.Context, id uint64) (*model.TheatreHall, error) {
	const q = `SELECT id, name, rows_count, seats_in_row FROM theatre_halls WHERE id = ?`
	var h model.TheatreHall
	err := r.db.QueryRowContext(ctx, q, id).Scan(&h.ID, &h.Name, &h.Rows, &h.SeatsInRow)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrHallNotFound
		}
		return nil, err
	}
	return &h, nil
}

// List returns a page of halls ordered by id, plus the total count.
func (r *HallRepo) List(ctx context.Context, limit, offset int) ([]model.TheatreHall, int64, error) {
	var total int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM theatre_halls`).Scan(&total); err != nil {
		return nil, 0, err
	}
	const q = `SELECT id, name, rows_count, seats_in_row FROM theatre_halls ORDER BY id LIMIT ? OFFSET ?`
	rows, err := r.db.QueryContext(ctx, q, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	out := make([]model.TheatreHall, 0, limit)
	for rows.Next() {
		var h model.TheatreHall
		if err := rows.Scan(&h.ID, &h.Name, &h.Rows, &h.SeatsInRow); err != nil {
			return nil, 0, err
		}
		out = append(out, h)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

// Update overwrites name and geometry. Updating a hall that already
// hosts performances is technically permitted; seat validation always
// reads the current geometry.
func (r *HallRepo) Update(ctx context.Context, h *model.TheatreHall) error {
	const q = `UPDATE theatre_halls SET name = ?, rows_count = ?, seats_in_row = ? WHERE id = ?`
	res, err := r.db.ExecContext(ctx, q, h.Name, h.Rows, h.SeatsInRow, h.ID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		if _, err := r.GetByID(ctx, h.ID); err != nil {
			return err
		}
	}
	return nil
}

// Delete removes a hall. Fails with ErrConflict while performances
// still reference it.
func (r *HallRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM theatre_halls WHERE id = ?`, id)
	if err != nil {
		if isRowReferenced(err) {
			return ErrConflict
		}
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrHallNotFound
	}
	return nil
}
