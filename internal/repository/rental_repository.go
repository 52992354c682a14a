package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/filmreel/video-rental/internal/model"
)

// RentalRepo persists rentals and owns the two cross-entity workflows:
// opening a rental (stock decrement + snapshot insert) and closing one
// (fee + stock increment). Both run inside a single SQL transaction so
// a crash mid-workflow can never leave stock decremented without a
// rental row, or a closed rental without its returned copy.
type RentalRepo struct{ DB *sql.DB }

func NewRentalRepo(db *sql.DB) *RentalRepo { return &RentalRepo{DB: db} }

const rentalCols = `id,customer_id,customer_name,customer_phone,
	movie_id,movie_title,movie_daily_rate,date_out,date_returned,rental_fee`

func scanRental(row interface{ Scan(...any) error }) (model.Rental, error) {
	var (
		r        model.Rental
		returned sql.NullTime
		fee      sql.NullFloat64
	)
	err := row.Scan(
		&r.ID, &r.Customer.ID, &r.Customer.Name, &r.Customer.Phone,
		&r.Movie.ID, &r.Movie.Title, &r.Movie.DailyRentalRate,
		&r.DateOut, &returned, &fee,
	)
	if err != nil {
		return model.Rental{}, err
	}
	if returned.Valid {
		t := returned.Time
		r.DateReturned = &t
	}
	if fee.Valid {
		f := fee.Float64
		r.RentalFee = &f
	}
	return r, nil
}

// List returns all rentals, most recent checkout first.
func (r *RentalRepo) List(ctx context.Context) ([]model.Rental, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT "+rentalCols+" FROM rentals ORDER BY date_out DESC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.Rental{}
	for rows.Next() {
		rec, err := scanRental(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

// GetByID fetches a rental by id.
func (r *RentalRepo) GetByID(ctx context.Context, id uint64) (model.Rental, error) {
	return scanRental(r.DB.QueryRowContext(ctx,
		"SELECT "+rentalCols+" FROM rentals WHERE id=? LIMIT 1", id))
}

// Open checks one copy of the movie out to the customer. The stock
// decrement is conditional on number_in_stock > 0; when it matches no
// row the movie is either absent or exhausted and ErrOutOfStock is
// returned without distinguishing the two. On success the new rental
// carries snapshots of the customer and the movie as they are right now.
func (r *RentalRepo) Open(ctx context.Context, customer model.Customer, movieID uint64) (model.Rental, error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return model.Rental{}, err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	res, err := tx.ExecContext(ctx,
		"UPDATE movies SET number_in_stock = number_in_stock - 1 WHERE id=? AND number_in_stock > 0",
		movieID)
	if err != nil {
		return model.Rental{}, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return model.Rental{}, err
	}
	if n == 0 {
		return model.Rental{}, ErrOutOfStock
	}

	var title string
	var rate float64
	if err := tx.QueryRowContext(ctx,
		"SELECT title, daily_rental_rate FROM movies WHERE id=?", movieID).
		Scan(&title, &rate); err != nil {
		return model.Rental{}, err
	}

	dateOut := time.Now().UTC().Truncate(time.Second)
	ins, err := tx.ExecContext(ctx,
		`INSERT INTO rentals (customer_id, customer_name, customer_phone,
			movie_id, movie_title, movie_daily_rate, date_out)
		 VALUES (?,?,?,?,?,?,?)`,
		customer.ID, customer.Name, customer.Phone, movieID, title, rate, dateOut)
	if err != nil {
		return model.Rental{}, err
	}
	id, err := ins.LastInsertId()
	if err != nil {
		return model.Rental{}, err
	}

	if err := tx.Commit(); err != nil {
		return model.Rental{}, err
	}
	committed = true

	return model.Rental{
		ID:       uint64(id),
		Customer: model.CustomerSnapshot{ID: customer.ID, Name: customer.Name, Phone: customer.Phone},
		Movie:    model.MovieSnapshot{ID: movieID, Title: title, DailyRentalRate: rate},
		DateOut:  dateOut,
	}, nil
}

// Close finds the most recent rental for the (customer, movie) pair,
// marks it returned and computes the fee, then restores one copy of the
// movie's stock. It returns sql.ErrNoRows when no rental exists for the
// pair and ErrAlreadyReturned when the latest one is already closed.
// The rental row is updated before the stock so the CLOSED transition is
// never observable without its fee.
func (r *RentalRepo) Close(ctx context.Context, customerID, movieID uint64) (model.Rental, error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return model.Rental{}, err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	rec, err := scanRental(tx.QueryRowContext(ctx,
		"SELECT "+rentalCols+` FROM rentals
		 WHERE customer_id=? AND movie_id=?
		 ORDER BY date_out DESC LIMIT 1 FOR UPDATE`,
		customerID, movieID))
	if err != nil {
		return model.Rental{}, err
	}
	if !rec.Open() {
		return model.Rental{}, ErrAlreadyReturned
	}

	now := time.Now().UTC().Truncate(time.Second)
	fee := rec.FeeAt(now)
	if _, err := tx.ExecContext(ctx,
		"UPDATE rentals SET date_returned=?, rental_fee=? WHERE id=?",
		now, fee, rec.ID); err != nil {
		return model.Rental{}, err
	}

	// No ceiling here: stock is bounded on create/update payloads only.
	if _, err := tx.ExecContext(ctx,
		"UPDATE movies SET number_in_stock = number_in_stock + 1 WHERE id=?",
		rec.Movie.ID); err != nil {
		return model.Rental{}, err
	}

	if err := tx.Commit(); err != nil {
		return model.Rental{}, err
	}
	committed = true

	rec.DateReturned = &now
	rec.RentalFee = &fee
	return rec, nil
}
