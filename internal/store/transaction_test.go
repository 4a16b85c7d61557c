package store

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db, mock
}

func TestRunInTransaction_Success(t *testing.T) {
	t.Parallel()

	db, mock := newMockDB(t)
	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO words").WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	err := RunInTransaction(context.Background(), db, func(ctx context.Context, tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, "INSERT INTO words (word, translation) VALUES ($1, $2)", "apple", "jabłko")
		return err
	})

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRunInTransaction_FunctionError(t *testing.T) {
	t.Parallel()

	db, mock := newMockDB(t)
	mock.ExpectBegin()
	mock.ExpectRollback()

	expectedErr := errors.New("function failed")
	err := RunInTransaction(context.Background(), db, func(context.Context, *sql.Tx) error {
		return expectedErr
	})

	assert.Equal(t, expectedErr, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRunInTransaction_BeginError(t *testing.T) {
	t.Parallel()

	db, mock := newMockDB(t)
	beginErr := errors.New("connection refused")
	mock.ExpectBegin().WillReturnError(beginErr)

	called := false
	err := RunInTransaction(context.Background(), db, func(context.Context, *sql.Tx) error {
		called = true
		return nil
	})

	assert.ErrorIs(t, err, ErrTransactionFailed)
	assert.ErrorIs(t, err, beginErr)
	assert.False(t, called, "fn must not run without a transaction")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRunInTransaction_CommitError(t *testing.T) {
	t.Parallel()

	db, mock := newMockDB(t)
	commitErr := errors.New("serialization failure")
	mock.ExpectBegin()
	mock.ExpectCommit().WillReturnError(commitErr)

	err := RunInTransaction(context.Background(), db, func(context.Context, *sql.Tx) error {
		return nil
	})

	assert.ErrorIs(t, err, ErrTransactionFailed)
	assert.ErrorIs(t, err, commitErr)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRunInTransaction_RollbackError(t *testing.T) {
	t.Parallel()

	db, mock := newMockDB(t)
	mock.ExpectBegin()
	mock.ExpectRollback().WillReturnError(errors.New("rollback failed"))

	fnErr := errors.New("function failed")
	err := RunInTransaction(context.Background(), db, func(context.Context, *sql.Tx) error {
		return fnErr
	})

	assert.ErrorIs(t, err, fnErr)
	assert.Contains(t, err.Error(), "rollback failed")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRunInTransaction_Panic(t *testing.T) {
	t.Parallel()

	db, mock := newMockDB(t)
	mock.ExpectBegin()
	mock.ExpectRollback()

	assert.PanicsWithValue(t, "boom", func() {
		_ = RunInTransaction(context.Background(), db, func(context.Context, *sql.Tx) error {
			panic("boom")
		})
	})
	assert.NoError(t, mock.ExpectationsWereMet())
}
