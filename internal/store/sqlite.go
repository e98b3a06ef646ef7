package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	sq "github.com/Masterminds/squirrel"
	_ "github.com/mattn/go-sqlite3"

	"github.com/MKhiriev/go-mobile-messaging/internal/logger"
	"github.com/MKhiriev/go-mobile-messaging/migrations"
)

const (
	preferencesTable = "preferences"
	nameColumn       = "name"
	valueColumn      = "value"
	updatedAtColumn  = "updated_at"

	upsertSuffix = "ON CONFLICT(name) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at"
)

// queryer is satisfied by both *sql.DB and *sql.Tx.
type queryer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// sqliteStorage keeps every key as a row of the preferences table.
type sqliteStorage struct {
	db     *sql.DB
	logger *logger.Logger
	now    func() time.Time
}

// NewSQLiteStorage opens the SQLite database at dsn and applies the
// migrations.
func NewSQLiteStorage(ctx context.Context, dsn string, log *logger.Logger) (Storage, error) {
	if err := createDBFileIfNotExists(dsn); err != nil {
		log.Err(err).Str("func", "NewSQLiteStorage").Msg("error creating database file")
		return nil, err
	}

	conn, err := sql.Open("sqlite3", dsn)
	if err != nil {
		log.Err(err).Str("func", "NewSQLiteStorage").Msg("error connecting database")
		return nil, fmt.Errorf("error opening connection to DB: %w", err)
	}
	// one writer at a time keeps EditSet transactions from hitting SQLITE_BUSY
	conn.SetMaxOpenConns(1)

	if err = conn.PingContext(ctx); err != nil {
		log.Err(err).Str("func", "NewSQLiteStorage").Msg("error connecting database (ping)")
		conn.Close()
		return nil, err
	}

	if err = migrations.Migrate(conn, migrations.DialectSQLite); err != nil {
		log.Err(err).Str("func", "NewSQLiteStorage").Msg("error migrating database")
		conn.Close()
		return nil, err
	}
	log.Debug().Str("func", "NewSQLiteStorage").Msg("connected to database successfully")

	return newSQLiteStorage(conn, log), nil
}

func newSQLiteStorage(db *sql.DB, log *logger.Logger) *sqliteStorage {
	return &sqliteStorage{db: db, logger: log, now: time.Now}
}

func (s *sqliteStorage) Find(ctx context.Context, key string) (string, bool, error) {
	return s.find(ctx, s.db, key)
}

func (s *sqliteStorage) Save(ctx context.Context, key, value string) error {
	return s.save(ctx, s.db, key, value)
}

func (s *sqliteStorage) Remove(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	return s.remove(ctx, s.db, keys...)
}

func (s *sqliteStorage) EditSet(ctx context.Context, key string, edit func(set map[string]struct{})) (err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("error starting transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	raw, _, err := s.find(ctx, tx, key)
	if err != nil {
		return err
	}

	encoded, keep, err := editEncodedSet(raw, edit)
	if err != nil {
		return err
	}

	if keep {
		err = s.save(ctx, tx, key, encoded)
	} else {
		err = s.remove(ctx, tx, key)
	}
	if err != nil {
		return err
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("error committing transaction: %w", err)
	}
	return nil
}

func (s *sqliteStorage) Close() error {
	return s.db.Close()
}

func (s *sqliteStorage) find(ctx context.Context, q queryer, key string) (string, bool, error) {
	query, args, err := sq.Select(valueColumn).
		From(preferencesTable).
		Where(sq.Eq{nameColumn: key}).
		ToSql()
	if err != nil {
		return "", false, fmt.Errorf("error building select query: %w", err)
	}

	var value string
	err = q.QueryRowContext(ctx, query, args...).Scan(&value)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return "", false, nil
	case err != nil:
		s.logger.Err(err).Str("func", "*sqliteStorage.find").Str("key", key).Msg("error reading value")
		return "", false, fmt.Errorf("unexpected DB error: %w", err)
	}

	return value, true, nil
}

func (s *sqliteStorage) save(ctx context.Context, q queryer, key, value string) error {
	query, args, err := sq.Insert(preferencesTable).
		Columns(nameColumn, valueColumn, updatedAtColumn).
		Values(key, value, s.now().UTC()).
		Suffix(upsertSuffix).
		ToSql()
	if err != nil {
		return fmt.Errorf("error building upsert query: %w", err)
	}

	if _, err = q.ExecContext(ctx, query, args...); err != nil {
		s.logger.Err(err).Str("func", "*sqliteStorage.save").Str("key", key).Msg("error saving value")
		return fmt.Errorf("unexpected DB error: %w", err)
	}
	return nil
}

func (s *sqliteStorage) remove(ctx context.Context, q queryer, keys ...string) error {
	query, args, err := sq.Delete(preferencesTable).
		Where(sq.Eq{nameColumn: keys}).
		ToSql()
	if err != nil {
		return fmt.Errorf("error building delete query: %w", err)
	}

	if _, err = q.ExecContext(ctx, query, args...); err != nil {
		s.logger.Err(err).Str("func", "*sqliteStorage.remove").Strs("keys", keys).Msg("error removing values")
		return fmt.Errorf("unexpected DB error: %w", err)
	}
	return nil
}

func createDBFileIfNotExists(dbFile string) error {
	if _, err := os.Stat(dbFile); os.IsNotExist(err) {
		if err = os.MkdirAll(filepath.Dir(dbFile), 0o700); err != nil {
			return fmt.Errorf("error creating DB directory: %w", err)
		}
		f, err := os.Create(dbFile)
		if err != nil {
			return fmt.Errorf("error creating DB file: %w", err)
		}
		f.Close()
	}

	return nil
}
