package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/kostyrin/theatre-booking/internal/model"
)

// PerformanceRepo provides CRUD operations for performances and the
// expanded read shape that embeds play and hall details.
type PerformanceRepo struct {
	db *sql.DB
}

// NewPerformanceRepo constructs a PerformanceRepo with the given DB handle.
func NewPerformanceRepo(db *sql.DB) *PerformanceRepo { return &PerformanceRepo{db: db} }

// Create inserts a performance and populates its generated ID. Unknown
// play or hall ids surface as the matching not-found sentinel.
func (r *PerformanceRepo) Create(ctx context.Context, p *model.Performance) error {
	const q = `INSERT INTO performances (play_id, theatre_hall_id, show_time) VALUES (?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q, p.PlayID, p.TheatreHallID, p.ShowTime.UTC())
	if err != nil {
		return r.mapParentErr(ctx, err, p)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	p.ID = uint64(id)
	return nil
}

// mapParentErr turns a 1452 foreign key failure into ErrPlayNotFound
// or ErrHallNotFound depending on which parent is missing.
func (r *PerformanceRepo) mapParentErr(ctx context.Context, err error, p *model.Performance) error {
	if !isMissingParent(err) {
		return err
	}
	var exists bool
	if probe := r.db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM plays WHERE id = ?)`, p.PlayID).Scan(&exists); probe == nil && !exists {
		return ErrPlayNotFound
	}
	return ErrHallNotFound
}

// GetByID returns one performance (compact shape) or ErrPerformanceNotFound.
func (r *PerformanceRepo) GetByID(ctx context.Context, id uint64) (*model.Performance, error) {
	const q = `SELECT id, play_id, theatre_hall_id, show_time FROM performances WHERE id = ?`
	var p model.Performance
	err := r.db.QueryRowContext(ctx, q, id).Scan(&p.ID, &p.PlayID, &p.TheatreHallID, &p.ShowTime)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrPerformanceNotFound
		}
		return nil, err
	}
	return &p, nil
}

const performanceDetailColumns = `
	pf.id, pf.show_time,
	pl.id, pl.title, pl.description,
	h.id, h.name, h.rows_count, h.seats_in_row`

const performanceDetailFrom = `
	FROM performances pf
	JOIN plays pl ON pl.id = pf.play_id
	JOIN theatre_halls h ON h.id = pf.theatre_hall_id`

func scanPerformanceDetail(row interface{ Scan(...any) error }) (model.PerformanceDetail, error) {
	var d model.PerformanceDetail
	err := row.Scan(
		&d.ID, &d.ShowTime,
		&d.Play.ID, &d.Play.Title, &d.Play.Description,
		&d.Hall.ID, &d.Hall.Name, &d.Hall.Rows, &d.Hall.SeatsInRow,
	)
	if err == nil {
		d.Hall.Capacity = d.Hall.Rows * d.Hall.SeatsInRow
	}
	return d, err
}

// GetDetail returns one performance with play and hall embedded, or
// ErrPerformanceNotFound.
func (r *PerformanceRepo) GetDetail(ctx context.Context, id uint64) (*model.PerformanceDetail, error) {
	q := `SELECT` + performanceDetailColumns + performanceDetailFrom + ` WHERE pf.id = ?`
	d, err := scanPerformanceDetail(r.db.QueryRowContext(ctx, q, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrPerformanceNotFound
		}
		return nil, err
	}
	return &d, nil
}

// ListDetails returns a page of performances in the expanded shape,
// optionally restricted to a calendar date (UTC), plus the total count
// for the filter. Ordered by show time, then id.
func (r *PerformanceRepo) ListDetails(ctx context.Context, date *time.Time, limit, offset int) ([]model.PerformanceDetail, int64, error) {
	where := ""
	args := []any{}
	if date != nil {
		where = ` WHERE pf.show_time >= ? AND pf.show_time < ?`
		day := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
		args = append(args, day, day.Add(24*time.Hour))
	}

	var total int64
	if err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM performances pf`+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	q := `SELECT` + performanceDetailColumns + performanceDetailFrom + where +
		` ORDER BY pf.show_time, pf.id LIMIT ? OFFSET ?`
	rows, err := r.db.QueryContext(ctx, q, append(args, limit, offset)...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out := make([]model.PerformanceDetail, 0, limit)
	for rows.Next() {
		d, err := scanPerformanceDetail(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, d)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

// Update overwrites the play, hall and show time of a performance.
func (r *PerformanceRepo) Update(ctx context.Context, p *model.Performance) error {
	const q = `UPDATE performances SET play_id = ?, theatre_hall_id = ?, show_time = ? WHERE id = ?`
	res, err := r.db.ExecContext(ctx, q, p.PlayID, p.TheatreHallID, p.ShowTime.UTC(), p.ID)
	if err != nil {
		return r.mapParentErr(ctx, err, p)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		if _, err := r.GetByID(ctx, p.ID); err != nil {
			return err
		}
	}
	return nil
}

// Delete removes a performance. Fails with ErrConflict while tickets
// still reference it.
func (r *PerformanceRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM performances WHERE id = ?`, id)
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
		return ErrPerformanceNotFound
	}
	return nil
}
