package credentials

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/signlink/internal/client/migrations"
	"github.com/dmitrijs2005/signlink/internal/filex"
	"github.com/pressly/goose/v3"

	_ "modernc.org/sqlite" // pure-Go SQLite driver
)

type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(db *sql.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

// OpenSQLite opens (or creates) the database at path, applies the embedded
// migrations and returns the repository together with the underlying *sql.DB
// the caller must close.
func OpenSQLite(ctx context.Context, path string) (*SQLiteRepository, *sql.DB, error) {
	if _, err := filex.EnsureParentDir(path); err != nil {
		return nil, nil, fmt.Errorf("open credential db: %w", err)
	}

	db, err := sql.Open("sqlite", path+"?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)")
	if err != nil {
		return nil, nil, fmt.Errorf("open credential db: %w", err)
	}
	// One writer at a time keeps concurrent Put/Delete calls from racing into SQLITE_BUSY.
	db.SetMaxOpenConns(1)

	if err := RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, nil, err
	}
	return NewSQLiteRepository(db), db, nil
}

// RunMigrations applies the embedded schema. It is idempotent.
func RunMigrations(ctx context.Context, db *sql.DB) error {
	provider, err := goose.NewProvider(goose.DialectSQLite3, db, migrations.Migrations)
	if err != nil {
		return fmt.Errorf("init migrations: %w", err)
	}
	if _, err := provider.Up(ctx); err != nil {
		return fmt.Errorf("apply migrations: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) Get(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	err := r.db.QueryRowContext(ctx, `SELECT value FROM credentials WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get credential[%s]: %w", key, err)
	}
	return value, nil
}

func (r *SQLiteRepository) Put(ctx context.Context, key string, value []byte) error {
	if value == nil {
		value = []byte{}
	}
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO credentials (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`, key, value)
	if err != nil {
		return fmt.Errorf("failed to put credential[%s]: %w", key, err)
	}
	return nil
}

func (r *SQLiteRepository) Delete(ctx context.Context, key string) error {
	if err := deleteKey(ctx, r.db, key); err != nil {
		return err
	}
	return nil
}

// Clear deletes keys in one transaction; with no keys it empties the table.
func (r *SQLiteRepository) Clear(ctx context.Context, keys ...string) error {
	err := inTx(ctx, r.db, func(tx execer) error {
		if len(keys) == 0 {
			_, err := tx.ExecContext(ctx, `DELETE FROM credentials`)
			return err
		}
		for _, key := range keys {
			if err := deleteKey(ctx, tx, key); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to clear credentials: %w", err)
	}
	return nil
}

func deleteKey(ctx context.Context, db execer, key string) error {
	_, err := db.ExecContext(ctx, `DELETE FROM credentials WHERE key = ?`, key)
	if err != nil {
		return fmt.Errorf("failed to delete credential[%s]: %w", key, err)
	}
	return nil
}
