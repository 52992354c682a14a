package repository

import (
	"context"
	"database/sql"

	"github.com/filmreel/video-rental/internal/model"
)

type MovieRepo struct{ DB *sql.DB }

func NewMovieRepo(db *sql.DB) *MovieRepo { return &MovieRepo{DB: db} }

const movieCols = "id,title,genre_id,genre_name,number_in_stock,daily_rental_rate"

func scanMovie(row interface{ Scan(...any) error }) (model.Movie, error) {
	var m model.Movie
	err := row.Scan(&m.ID, &m.Title, &m.Genre.ID, &m.Genre.Name, &m.NumberInStock, &m.DailyRentalRate)
	return m, err
}

// List returns all movies ordered by title.
func (r *MovieRepo) List(ctx context.Context) ([]model.Movie, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT "+movieCols+" FROM movies ORDER BY title")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.Movie{}
	for rows.Next() {
		m, err := scanMovie(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

// GetByID fetches a movie by id.
func (r *MovieRepo) GetByID(ctx context.Context, id uint64) (model.Movie, error) {
	return scanMovie(r.DB.QueryRowContext(ctx,
		"SELECT "+movieCols+" FROM movies WHERE id=? LIMIT 1", id))
}

// Create inserts a movie with an embedded genre snapshot and returns the
// stored row.
func (r *MovieRepo) Create(ctx context.Context, title string, genre model.GenreSnapshot, stock int, rate float64) (model.Movie, error) {
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO movies (title, genre_id, genre_name, number_in_stock, daily_rental_rate) VALUES (?,?,?,?,?)",
		title, genre.ID, genre.Name, stock, rate)
	if err != nil {
		return model.Movie{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.Movie{}, err
	}
	return model.Movie{
		ID:              uint64(id),
		Title:           title,
		Genre:           genre,
		NumberInStock:   stock,
		DailyRentalRate: rate,
	}, nil
}

// Update rewrites a movie including a fresh genre snapshot. It returns
// sql.ErrNoRows when the id is absent.
func (r *MovieRepo) Update(ctx context.Context, id uint64, title string, genre model.GenreSnapshot, stock int, rate float64) (model.Movie, error) {
	if _, err := r.DB.ExecContext(ctx,
		"UPDATE movies SET title=?, genre_id=?, genre_name=?, number_in_stock=?, daily_rental_rate=? WHERE id=?",
		title, genre.ID, genre.Name, stock, rate, id); err != nil {
		return model.Movie{}, err
	}
	return r.GetByID(ctx, id)
}

// Delete removes a movie. sql.ErrNoRows when the id is absent.
func (r *MovieRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM movies WHERE id=?", id)
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
