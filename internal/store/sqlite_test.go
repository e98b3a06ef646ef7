package store

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/MKhiriev/go-mobile-messaging/internal/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	selectQuery = regexp.QuoteMeta("SELECT value FROM preferences WHERE name = ?")
	upsertQuery = regexp.QuoteMeta("INSERT INTO preferences (name,value,updated_at) VALUES (?,?,?) ON CONFLICT(name) DO UPDATE")
	deleteQuery = regexp.QuoteMeta("DELETE FROM preferences WHERE name IN (?,?)")
)

func newTestSQLiteStorage(t *testing.T) (*sqliteStorage, sqlmock.Sqlmock, *sql.DB) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	return newSQLiteStorage(db, logger.Nop()), mock, db
}

func TestSQLiteStorage_Find(t *testing.T) {
	s, mock, db := newTestSQLiteStorage(t)
	defer db.Close()

	mock.ExpectQuery(selectQuery).WithArgs("k").
		WillReturnRows(sqlmock.NewRows([]string{"value"}).AddRow("v"))

	v, ok, err := s.Find(context.Background(), "k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "v", v)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLiteStorage_Find_NotFound(t *testing.T) {
	s, mock, db := newTestSQLiteStorage(t)
	defer db.Close()

	mock.ExpectQuery(selectQuery).WithArgs("k").
		WillReturnRows(sqlmock.NewRows([]string{"value"}))

	_, ok, err := s.Find(context.Background(), "k")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSQLiteStorage_Find_DBError(t *testing.T) {
	s, mock, db := newTestSQLiteStorage(t)
	defer db.Close()

	mock.ExpectQuery(selectQuery).WithArgs("k").WillReturnError(errors.New("disk I/O error"))

	_, _, err := s.Find(context.Background(), "k")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unexpected DB error")
}

func TestSQLiteStorage_Save(t *testing.T) {
	s, mock, db := newTestSQLiteStorage(t)
	defer db.Close()

	mock.ExpectExec(upsertQuery).WithArgs("k", "v", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	require.NoError(t, s.Save(context.Background(), "k", "v"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLiteStorage_Save_DBError(t *testing.T) {
	s, mock, db := newTestSQLiteStorage(t)
	defer db.Close()

	mock.ExpectExec(upsertQuery).WillReturnError(errors.New("readonly database"))

	err := s.Save(context.Background(), "k", "v")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unexpected DB error")
}

func TestSQLiteStorage_Remove(t *testing.T) {
	s, mock, db := newTestSQLiteStorage(t)
	defer db.Close()

	mock.ExpectExec(deleteQuery).WithArgs("a", "b").WillReturnResult(sqlmock.NewResult(0, 2))

	require.NoError(t, s.Remove(context.Background(), "a", "b"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLiteStorage_Remove_NoKeys(t *testing.T) {
	s, mock, db := newTestSQLiteStorage(t)
	defer db.Close()

	require.NoError(t, s.Remove(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLiteStorage_EditSet_Commit(t *testing.T) {
	s, mock, db := newTestSQLiteStorage(t)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery(selectQuery).WithArgs("set").
		WillReturnRows(sqlmock.NewRows([]string{"value"}).AddRow(`["a"]`))
	mock.ExpectExec(upsertQuery).WithArgs("set", `["a","b"]`, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	err := s.EditSet(context.Background(), "set", func(set map[string]struct{}) {
		set["b"] = struct{}{}
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLiteStorage_EditSet_RollbackOnWriteError(t *testing.T) {
	s, mock, db := newTestSQLiteStorage(t)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery(selectQuery).WithArgs("set").
		WillReturnRows(sqlmock.NewRows([]string{"value"}))
	mock.ExpectExec(upsertQuery).WillReturnError(errors.New("database is locked"))
	mock.ExpectRollback()

	err := s.EditSet(context.Background(), "set", func(set map[string]struct{}) {
		set["a"] = struct{}{}
	})
	require.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLiteStorage_EditSet_RollbackOnCorruptedSet(t *testing.T) {
	s, mock, db := newTestSQLiteStorage(t)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery(selectQuery).WithArgs("set").
		WillReturnRows(sqlmock.NewRows([]string{"value"}).AddRow("garbage"))
	mock.ExpectRollback()

	err := s.EditSet(context.Background(), "set", func(map[string]struct{}) {})
	assert.ErrorIs(t, err, ErrCorruptedSet)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLiteStorage_EditSet_BeginError(t *testing.T) {
	s, mock, db := newTestSQLiteStorage(t)
	defer db.Close()

	mock.ExpectBegin().WillReturnError(errors.New("no connection"))

	err := s.EditSet(context.Background(), "set", func(map[string]struct{}) {})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error starting transaction")
}
