// Package sqlite provides a SQLite-backed cart store.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/nexshop/storefront/internal/cart"
	"github.com/nexshop/storefront/internal/cart/storage"
	"github.com/nexshop/storefront/internal/cart/storage/sqlite/migrations"
	"github.com/nexshop/storefront/internal/platform/storage/sqlitemigrate"
	_ "modernc.org/sqlite"
)

// Store persists cart snapshots in SQLite.
type Store struct {
	sqlDB *sql.DB
}

// Open opens a SQLite cart store and applies embedded migrations.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	cleanPath := filepath.Clean(path)
	dsn := cleanPath + "?_journal_mode=WAL&_foreign_keys=ON&_busy_timeout=5000&_synchronous=NORMAL"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if err := sqlitemigrate.ApplyMigrations(sqlDB, migrations.FS); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return &Store{sqlDB: sqlDB}, nil
}

// Close closes the SQLite handle.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// Save upserts the cart snapshot for cartID.
func (s *Store) Save(ctx context.Context, cartID string, snap cart.Snapshot) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	cartID = strings.TrimSpace(cartID)
	if cartID == "" {
		return fmt.Errorf("cart id is required")
	}
	payload, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("encode cart %s: %w", cartID, err)
	}
	_, err = s.sqlDB.ExecContext(
		ctx,
		`INSERT INTO carts (cart_id, payload, updated_at)
		 VALUES (?, ?, ?)
		 ON CONFLICT (cart_id) DO UPDATE SET
		   payload = excluded.payload,
		   updated_at = excluded.updated_at`,
		cartID,
		string(payload),
		time.Now().UTC().UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("save cart %s: %w", cartID, err)
	}
	return nil
}

// Load returns the persisted snapshot or storage.ErrNotFound.
func (s *Store) Load(ctx context.Context, cartID string) (cart.Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return cart.Snapshot{}, err
	}
	cartID = strings.TrimSpace(cartID)
	if cartID == "" {
		return cart.Snapshot{}, storage.ErrNotFound
	}
	var payload string
	row := s.sqlDB.QueryRowContext(ctx, "SELECT payload FROM carts WHERE cart_id = ?", cartID)
	if err := row.Scan(&payload); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return cart.Snapshot{}, storage.ErrNotFound
		}
		return cart.Snapshot{}, fmt.Errorf("load cart %s: %w", cartID, err)
	}
	var snap cart.Snapshot
	if err := json.Unmarshal([]byte(payload), &snap); err != nil {
		return cart.Snapshot{}, fmt.Errorf("decode cart %s: %w", cartID, err)
	}
	return snap, nil
}

// Delete removes the persisted cart. Absent carts are a no-op.
func (s *Store) Delete(ctx context.Context, cartID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	cartID = strings.TrimSpace(cartID)
	if cartID == "" {
		return nil
	}
	if _, err := s.sqlDB.ExecContext(ctx, "DELETE FROM carts WHERE cart_id = ?", cartID); err != nil {
		return fmt.Errorf("delete cart %s: %w", cartID, err)
	}
	return nil
}
