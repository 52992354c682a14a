package repository

import (
	"context"
	"database/sql"

	"github.com/filmreel/video-rental/internal/model"
)

type GenreRepo struct{ DB *sql.DB }

func NewGenreRepo(db *sql.DB) *GenreRepo { return &GenreRepo{DB: db} }

// List returns all genres ordered by name.
func (r *GenreRepo) List(ctx context.Context) ([]model.Genre, error) {
	rows, err := r.DB.QueryContext(ctx, "SELECT id,name FROM genres ORDER BY name")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.Genre{}
	for rows.Next() {
		var g model.Genre
		if err := rows.Scan(&g.ID, &g.Name); err != nil {
			return nil, err
		}
		out = append(out, g)
	}
	return out, rows.Err()
}

// GetByID fetches a genre by id.
func (r *GenreRepo) GetByID(ctx context.Context, id uint64) (model.Genre, error) {
	var g model.Genre
	err := r.DB.QueryRowContext(ctx,
		"SELECT id,name FROM genres WHERE id=? LIMIT 1", id).Scan(&g.ID, &g.Name)
	return g, err
}

// Create inserts a genre and returns the stored row.
func (r *GenreRepo) Create(ctx context.Context, name string) (model.Genre, error) {
	res, err := r.DB.ExecContext(ctx, "INSERT INTO genres (name) VALUES (?)", name)
	if err != nil {
		return model.Genre{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.Genre{}, err
	}
	return model.Genre{ID: uint64(id), Name: name}, nil
}

// Update renames a genre. sql.ErrNoRows when the id is absent. Movies
// that embedded the old name keep their snapshot untouched.
func (r *GenreRepo) Update(ctx context.Context, id uint64, name string) (model.Genre, error) {
	if _, err := r.DB.ExecContext(ctx,
		"UPDATE genres SET name=? WHERE id=?", name, id); err != nil {
		return model.Genre{}, err
	}
	return r.GetByID(ctx, id)
}

// Delete removes a genre. sql.ErrNoRows when the id is absent.
func (r *GenreRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM genres WHERE id=?", id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
