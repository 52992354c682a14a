package repository

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/filmreel/video-rental/internal/model"
)

func newMock(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db, mock
}

func rentalRows(dateOut time.Time, returned *time.Time, fee *float64) *sqlmock.Rows {
	rows := sqlmock.NewRows([]string{
		"id", "customer_id", "customer_name", "customer_phone",
		"movie_id", "movie_title", "movie_daily_rate",
		"date_out", "date_returned", "rental_fee",
	})
	var ret any
	if returned != nil {
		ret = *returned
	}
	var f any
	if fee != nil {
		f = *fee
	}
	rows.AddRow(10, 1, "marcus aurelius", "555-0100", 2, "the big sleep", 2.0, dateOut, ret, f)
	return rows
}

func TestRentalOpen_OutOfStock(t *testing.T) {
	db, mock := newMock(t)

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE movies SET number_in_stock = number_in_stock - 1").
		WithArgs(uint64(2)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	repo := NewRentalRepo(db)
	_, err := repo.Open(context.Background(),
		model.Customer{ID: 1, Name: "marcus aurelius", Phone: "555-0100"}, 2)
	assert.ErrorIs(t, err, ErrOutOfStock)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRentalOpen_OK(t *testing.T) {
	db, mock := newMock(t)

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE movies SET number_in_stock = number_in_stock - 1").
		WithArgs(uint64(2)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery("SELECT title, daily_rental_rate FROM movies").
		WithArgs(uint64(2)).
		WillReturnRows(sqlmock.NewRows([]string{"title", "daily_rental_rate"}).
			AddRow("the big sleep", 2.0))
	mock.ExpectExec("INSERT INTO rentals").
		WillReturnResult(sqlmock.NewResult(10, 1))
	mock.ExpectCommit()

	repo := NewRentalRepo(db)
	got, err := repo.Open(context.Background(),
		model.Customer{ID: 1, Name: "marcus aurelius", Phone: "555-0100"}, 2)
	require.NoError(t, err)
	assert.Equal(t, uint64(10), got.ID)
	assert.Equal(t, "marcus aurelius", got.Customer.Name)
	assert.Equal(t, "the big sleep", got.Movie.Title)
	assert.Equal(t, 2.0, got.Movie.DailyRentalRate)
	assert.Nil(t, got.DateReturned)
	assert.Nil(t, got.RentalFee)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRentalOpen_InsertFailureRollsBack(t *testing.T) {
	db, mock := newMock(t)

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE movies SET number_in_stock = number_in_stock - 1").
		WithArgs(uint64(2)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery("SELECT title, daily_rental_rate FROM movies").
		WithArgs(uint64(2)).
		WillReturnRows(sqlmock.NewRows([]string{"title", "daily_rental_rate"}).
			AddRow("the big sleep", 2.0))
	mock.ExpectExec("INSERT INTO rentals").
		WillReturnError(errors.New("insert failed"))
	mock.ExpectRollback()

	repo := NewRentalRepo(db)
	_, err := repo.Open(context.Background(),
		model.Customer{ID: 1, Name: "marcus aurelius", Phone: "555-0100"}, 2)
	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRentalClose_NoRental(t *testing.T) {
	db, mock := newMock(t)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT (.+) FROM rentals").
		WithArgs(uint64(1), uint64(2)).
		WillReturnError(sql.ErrNoRows)
	mock.ExpectRollback()

	repo := NewRentalRepo(db)
	_, err := repo.Close(context.Background(), 1, 2)
	assert.ErrorIs(t, err, sql.ErrNoRows)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRentalClose_AlreadyReturned(t *testing.T) {
	db, mock := newMock(t)

	returned := time.Now().UTC().Truncate(time.Second)
	dateOut := returned.Add(-48 * time.Hour)
	fee := 4.0

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT (.+) FROM rentals").
		WithArgs(uint64(1), uint64(2)).
		WillReturnRows(rentalRows(dateOut, &returned, &fee))
	mock.ExpectRollback()

	repo := NewRentalRepo(db)
	_, err := repo.Close(context.Background(), 1, 2)
	assert.ErrorIs(t, err, ErrAlreadyReturned)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRentalClose_OK(t *testing.T) {
	db, mock := newMock(t)

	dateOut := time.Now().UTC().Truncate(time.Second).Add(-7 * 24 * time.Hour)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT (.+) FROM rentals").
		WithArgs(uint64(1), uint64(2)).
		WillReturnRows(rentalRows(dateOut, nil, nil))
	mock.ExpectExec("UPDATE rentals SET date_returned").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE movies SET number_in_stock = number_in_stock \\+ 1").
		WithArgs(uint64(2)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	repo := NewRentalRepo(db)
	got, err := repo.Close(context.Background(), 1, 2)
	require.NoError(t, err)
	require.NotNil(t, got.DateReturned)
	require.NotNil(t, got.RentalFee)
	assert.Equal(t, 14.0, *got.RentalFee)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRentalGetByID(t *testing.T) {
	db, mock := newMock(t)

	dateOut := time.Now().UTC().Truncate(time.Second)
	mock.ExpectQuery("SELECT (.+) FROM rentals WHERE id=").
		WithArgs(uint64(10)).
		WillReturnRows(rentalRows(dateOut, nil, nil))

	repo := NewRentalRepo(db)
	got, err := repo.GetByID(context.Background(), 10)
	require.NoError(t, err)
	assert.Equal(t, uint64(10), got.ID)
	assert.True(t, got.Open())
	assert.NoError(t, mock.ExpectationsWereMet())
}
