package repository

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCustomerDelete_OK(t *testing.T) {
	db, mock := newMock(t)

	mock.ExpectExec("DELETE FROM customers WHERE id=").
		WithArgs(uint64(3)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	repo := NewCustomerRepo(db)
	require.NoError(t, repo.Delete(context.Background(), 3))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCustomerDelete_Missing(t *testing.T) {
	db, mock := newMock(t)

	mock.ExpectExec("DELETE FROM customers WHERE id=").
		WithArgs(uint64(99)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	repo := NewCustomerRepo(db)
	err := repo.Delete(context.Background(), 99)
	assert.ErrorIs(t, err, sql.ErrNoRows)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCustomerUpdate_ReturnsStoredRow(t *testing.T) {
	db, mock := newMock(t)

	mock.ExpectExec("UPDATE customers SET").
		WithArgs("marcus aurelius", "555-0100", true, uint64(3)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery("SELECT id,name,phone,is_gold FROM customers WHERE id=").
		WithArgs(uint64(3)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "phone", "is_gold"}).
			AddRow(3, "marcus aurelius", "555-0100", true))

	repo := NewCustomerRepo(db)
	got, err := repo.Update(context.Background(), 3, "marcus aurelius", "555-0100", true)
	require.NoError(t, err)
	assert.Equal(t, uint64(3), got.ID)
	assert.True(t, got.IsGold)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCustomerUpdate_Missing(t *testing.T) {
	db, mock := newMock(t)

	mock.ExpectExec("UPDATE customers SET").
		WithArgs("marcus aurelius", "555-0100", false, uint64(99)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("SELECT id,name,phone,is_gold FROM customers WHERE id=").
		WithArgs(uint64(99)).
		WillReturnError(sql.ErrNoRows)

	repo := NewCustomerRepo(db)
	_, err := repo.Update(context.Background(), 99, "marcus aurelius", "555-0100", false)
	assert.ErrorIs(t, err, sql.ErrNoRows)
	assert.NoError(t, mock.ExpectationsWereMet())
}
