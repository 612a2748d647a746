package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/kostyrin/theatre-booking/internal/model"
)

// ActorRepo provides CRUD operations for actors.
type ActorRepo struct {
	db *sql.DB
}

// NewActorRepo constructs an ActorRepo with the given DB handle.
func NewActorRepo(db *sql.DB) *ActorRepo { return &ActorRepo{db: db} }

// Create inserts a new actor and populates its generated ID.
func (r *ActorRepo) Create(ctx context.Context, a *model.Actor) error {
	const q = `INSERT INTO actors (first_name, last_name) VALUES (?, ?)`
	res, err := r.db.ExecContext(ctx, q, a.FirstName, a.LastName)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	a.ID = uint64(id)
	return nil
}

// GetByID returns one actor or ErrActorNotFound.
func (r *ActorRepo) GetByID(ctx context.Context, id uint64) (*model.Actor, error) {
	const q = `SELECT id, first_name, last_name FROM actors WHERE id = ?`
	var a model.Actor
	err := r.db.QueryRowContext(ctx, q, id).Scan(&a.ID, &a.FirstName, &a.LastName)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrActorNotFound
		}
		return nil, err
	}
	return &a, nil
}

// List returns a page of actors ordered by id, plus the total count.
func (r *ActorRepo) List(ctx context.Context, limit, offset int) ([]model.Actor, int64, error) {
	var total int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM actors`).Scan(&total); err != nil {
		return nil, 0, err
	}
	const q = `SELECT id, first_name, last_name FROM actors ORDER BY id LIMIT ? OFFSET ?`
	rows, err := r.db.QueryContext(ctx, q, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	out := make([]model.Actor, 0, limit)
	for rows.Next() {
		var a model.Actor
		if err := rows.Scan(&a.ID, &a.FirstName, &a.LastName); err != nil {
			return nil, 0, err
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

// Update overwrites both name fields. Returns ErrActorNotFound when
// the id does not exist.
func (r *ActorRepo) Update(ctx context.Context, a *model.Actor) error {
	const q = `UPDATE actors SET first_name = ?, last_name = ? WHERE id = ?`
	res, err := r.db.ExecContext(ctx, q, a.FirstName, a.LastName, a.ID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		// RowsAffected is 0 both for a missing row and for an unchanged
		// one; distinguish with an existence probe.
		if _, err := r.GetByID(ctx, a.ID); err != nil {
			return err
		}
	}
	return nil
}

// Delete removes an actor. Join table rows cascade.
func (r *ActorRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM actors WHERE id = ?`, id)
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
		return ErrActorNotFound
	}
	return nil
}
