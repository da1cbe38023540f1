package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"PaintBoard/internal/document"
	"PaintBoard/internal/state"
)

var ErrNotFound = errors.New("painting not found")

// Entry is one saved painting in the library.
type Entry struct {
	ID      string
	Title   string
	Tally   state.Tally
	SavedAt time.Time
}

// PaintingRepo stores painting documents.
type PaintingRepo struct {
	db *sql.DB
}

func NewPaintingRepo(db *sql.DB) *PaintingRepo { return &PaintingRepo{db: db} }

// Save stores p as a new library entry.
func (r *PaintingRepo) Save(ctx context.Context, p document.Painting) (Entry, error) {
	data, err := document.Marshal(p)
	if err != nil {
		return Entry{}, err
	}
	e := Entry{
		ID:      uuid.NewString(),
		Title:   p.Title,
		Tally:   p.Tally(),
		SavedAt: Now(),
	}
	_, err = r.db.ExecContext(ctx, `
	INSERT INTO paintings(id, title, document, circles, rectangles, triangles, saved_at)
	VALUES(?, ?, ?, ?, ?, ?, ?);
	`, e.ID, e.Title, string(data), e.Tally.Circle, e.Tally.Rectangle, e.Tally.Triangle, e.SavedAt)
	if err != nil {
		return Entry{}, fmt.Errorf("insert painting: %w", err)
	}
	return e, nil
}

// List returns all entries, newest first.
func (r *PaintingRepo) List(ctx context.Context) ([]Entry, error) {
	rows, err := r.db.QueryContext(ctx, `
	SELECT id, title, circles, rectangles, triangles, saved_at
	FROM paintings ORDER BY saved_at DESC, rowid DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.ID, &e.Title, &e.Tally.Circle, &e.Tally.Rectangle, &e.Tally.Triangle, &e.SavedAt); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// Get loads and parses the document stored under id.
func (r *PaintingRepo) Get(ctx context.Context, id string) (document.Painting, error) {
	var data string
	err := r.db.QueryRowContext(ctx, `SELECT document FROM paintings WHERE id = ?`, id).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return document.Painting{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return document.Painting{}, err
	}
	return document.Parse([]byte(data))
}

func (r *PaintingRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM paintings WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return nil
}
