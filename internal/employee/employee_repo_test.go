package employee_test

import (
	"context"
	"database/sql"
	"testing"

	"github.com/Shivkumar-Raghuwanshi/employee-hub/internal/employee"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func newGormRepo(t *testing.T) (employee.Repository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	gormDB, err := gorm.Open(postgres.New(postgres.Config{Conn: db}), &gorm.Config{})
	assert.NoError(t, err)
	return employee.NewRepository(gormDB), mock, db
}

func TestEmployeeRepository_WithTx(t *testing.T) {
	t.Run("mutation runs on the caller's transaction, not the pool", func(t *testing.T) {
		repo, poolMock, poolDB := newGormRepo(t)
		defer poolDB.Close()

		txConn, txMock, err := sqlmock.New()
		assert.NoError(t, err)
		defer txConn.Close()

		txMock.ExpectBegin()
		txMock.ExpectExec(`DELETE FROM "employees"`).
			WithArgs("EMP-1", "owner-u1").
			WillReturnResult(sqlmock.NewResult(0, 1))

		tx, err := txConn.Begin()
		assert.NoError(t, err)

		rows, err := repo.WithTx(tx).Delete(context.Background(), "owner-u1", "EMP-1")

		assert.NoError(t, err)
		assert.Equal(t, int64(1), rows)
		assert.NoError(t, txMock.ExpectationsWereMet())
		// The pool connection saw no statement at all
		assert.NoError(t, poolMock.ExpectationsWereMet())
	})

	t.Run("rollback discards the mutation", func(t *testing.T) {
		repo, _, poolDB := newGormRepo(t)
		defer poolDB.Close()

		txConn, txMock, err := sqlmock.New()
		assert.NoError(t, err)
		defer txConn.Close()

		txMock.ExpectBegin()
		txMock.ExpectExec(`DELETE FROM "employees"`).
			WithArgs("EMP-1", "owner-u1").
			WillReturnResult(sqlmock.NewResult(0, 1))
		txMock.ExpectRollback()

		tx, err := txConn.Begin()
		assert.NoError(t, err)

		_, err = repo.WithTx(tx).Delete(context.Background(), "owner-u1", "EMP-1")
		assert.NoError(t, err)

		assert.NoError(t, tx.Rollback())
		assert.NoError(t, txMock.ExpectationsWereMet())
	})
}
