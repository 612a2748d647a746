package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/kostyrin/theatre-booking/internal/model"
)

// PlayRepo provides CRUD operations for plays and their genre/actor
// links. Writes that touch the join tables run inside a transaction so
// a play is never visible with half its links.
type PlayRepo struct {
	db *sql.DB
}

// NewPlayRepo constructs a PlayRepo with the given DB handle.
func NewPlayRepo(db *sql.DB) *PlayRepo { return &PlayRepo{db: db} }

// Create inserts a play together with its genre and actor links.
// Unknown genre or actor ids surface as ErrGenreNotFound or
// ErrActorNotFound and nothing persists.
func (r *PlayRepo) Create(ctx context.Context, p *model.Play, genreIDs, actorIDs []uint64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	res, err := tx.ExecContext(ctx,
		`INSERT INTO plays (title, description) VALUES (?, ?)`, p.Title, p.Description)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	p.ID = uint64(id)

	if err := insertPlayLinks(ctx, tx, p.ID, genreIDs, actorIDs); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	committed = true
	return nil
}

// Update overwrites the play fields and replaces both link sets.
func (r *PlayRepo) Update(ctx context.Context, p *model.Play, genreIDs, actorIDs []uint64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	res, err := tx.ExecContext(ctx,
		`UPDATE plays SET title = ?, description = ? WHERE id = ?`, p.Title, p.Description, p.ID)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err != nil {
		return err
	} else if n == 0 {
		var exists bool
		if err := tx.QueryRowContext(ctx,
			`SELECT EXISTS(SELECT 1 FROM plays WHERE id = ?)`, p.ID).Scan(&exists); err != nil {
			return err
		}
		if !exists {
			return ErrPlayNotFound
		}
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM play_genres WHERE play_id = ?`, p.ID); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM play_actors WHERE play_id = ?`, p.ID); err != nil {
		return err
	}
	if err := insertPlayLinks(ctx, tx, p.ID, genreIDs, actorIDs); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	committed = true
	return nil
}

func insertPlayLinks(ctx context.Context, tx *sql.Tx, playID uint64, genreIDs, actorIDs []uint64) error {
	for _, gid := range genreIDs {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO play_genres (play_id, genre_id) VALUES (?, ?)`, playID, gid); err != nil {
			if isMissingParent(err) {
				return ErrGenreNotFound
			}
			if isDuplicateEntry(err) {
				continue // duplicate id in the request list, link already present
			}
			return err
		}
	}
	for _, aid := range actorIDs {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO play_actors (play_id, actor_id) VALUES (?, ?)`, playID, aid); err != nil {
			if isMissingParent(err) {
				return ErrActorNotFound
			}
			if isDuplicateEntry(err) {
				continue
			}
			return err
		}
	}
	return nil
}

// GetDetail returns one play with genres and actors resolved, or
// ErrPlayNotFound.
func (r *PlayRepo) GetDetail(ctx context.Context, id uint64) (*model.PlayDetail, error) {
	var p model.PlayDetail
	err := r.db.QueryRowContext(ctx,
		`SELECT id, title, description FROM plays WHERE id = ?`, id).
		Scan(&p.ID, &p.Title, &p.Description)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrPlayNotFound
		}
		return nil, err
	}
	details := []*model.PlayDetail{&p}
	if err := r.attachLinks(ctx, details); err != nil {
		return nil, err
	}
	return &p, nil
}

// ListDetails returns a page of plays with genres and actors resolved,
// optionally filtered by a case-insensitive title substring, plus the
// total count for the filter.
func (r *PlayRepo) ListDetails(ctx context.Context, title string, limit, offset int) ([]model.PlayDetail, int64, error) {
	where := ""
	args := []any{}
	if title != "" {
		where = ` WHERE title LIKE ?`
		args = append(args, "%"+title+"%")
	}

	var total int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM plays`+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	q := `SELECT id, title, description FROM plays` + where + ` ORDER BY id LIMIT ? OFFSET ?`
	rows, err := r.db.QueryContext(ctx, q, append(args, limit, offset)...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out := make([]model.PlayDetail, 0, limit)
	for rows.Next() {
		var p model.PlayDetail
		if err := rows.Scan(&p.ID, &p.Title, &p.Description); err != nil {
			return nil, 0, err
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	refs := make([]*model.PlayDetail, len(out))
	for i := range out {
		refs[i] = &out[i]
	}
	if err := r.attachLinks(ctx, refs); err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

// attachLinks populates Genres and Actors for the given plays with one
// query per join table.
func (r *PlayRepo) attachLinks(ctx context.Context, plays []*model.PlayDetail) error {
	if len(plays) == 0 {
		return nil
	}
	index := make(map[uint64]*model.PlayDetail, len(plays))
	ids := make([]any, 0, len(plays))
	placeholders := make([]string, 0, len(plays))
	for _, p := range plays {
		p.Genres = []model.Genre{}
		p.Actors = []model.Actor{}
		index[p.ID] = p
		ids = append(ids, p.ID)
		placeholders = append(placeholders, "?")
	}
	in := strings.Join(placeholders, ",")

	gq := `SELECT pg.play_id, g.id, g.name
	       FROM play_genres pg JOIN genres g ON g.id = pg.genre_id
	       WHERE pg.play_id IN (` + in + `) ORDER BY g.id`
	grows, err := r.db.QueryContext(ctx, gq, ids...)
	if err != nil {
		return err
	}
	defer grows.Close()
	for grows.Next() {
		var pid uint64
		var g model.Genre
		if err := grows.Scan(&pid, &g.ID, &g.Name); err != nil {
			return err
		}
		if p, ok := index[pid]; ok {
			p.Genres = append(p.Genres, g)
		}
	}
	if err := grows.Err(); err != nil {
		return err
	}

	aq := `SELECT pa.play_id, a.id, a.first_name, a.last_name
	       FROM play_actors pa JOIN actors a ON a.id = pa.actor_id
	       WHERE pa.play_id IN (` + in + `) ORDER BY a.id`
	arows, err := r.db.QueryContext(ctx, aq, ids...)
	if err != nil {
		return err
	}
	defer arows.Close()
	for arows.Next() {
		var pid uint64
		var a model.Actor
		if err := arows.Scan(&pid, &a.ID, &a.FirstName, &a.LastName); err != nil {
			return err
		}
		if p, ok := index[pid]; ok {
			p.Actors = append(p.Actors, a)
		}
	}
	return arows.Err()
}

// Delete removes a play and its links. Fails with ErrConflict while
// performances still reference the play.
func (r *PlayRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM plays WHERE id = ?`, id)
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
		return ErrPlayNotFound
	}
	return nil
}
