// Package snapshot persists record stores to a single SQLite table so the
// edited state survives restarts.
package snapshot

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	_ "modernc.org/sqlite" // pure go sqlite driver

	"github.com/cfohub/cfohub/internal/record"
)

// DB stores one JSON payload per bucket.
type DB struct {
	db     *sql.DB
	mu     sync.Mutex
	path   string
	logger *slog.Logger
}

// Open creates or opens the snapshot database at path. ":memory:" keeps
// everything in process.
func Open(path string, logger *slog.Logger) (*DB, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if path == "" {
		path = "cfohub.db"
	}
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil && !errors.Is(err, os.ErrExist) {
			return nil, fmt.Errorf("snapshot: create dirs: %w", err)
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("snapshot: open sqlite: %w", err)
	}
	db.SetMaxOpenConns(1)
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS state (
		bucket TEXT PRIMARY KEY,
		payload BLOB NOT NULL
	)`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("snapshot: create state table: %w", err)
	}
	return &DB{db: db, path: path, logger: logger}, nil
}

// Close releases the database.
func (d *DB) Close() error {
	return d.db.Close()
}

// Path returns the configured database path.
func (d *DB) Path() string { return d.path }

// Save upserts the payload of bucket.
func (d *DB) Save(ctx context.Context, bucket string, payload []byte) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.save(ctx, bucket, payload)
}

func (d *DB) save(ctx context.Context, bucket string, payload []byte) error {
	if _, err := d.db.ExecContext(ctx,
		`INSERT INTO state(bucket,payload) VALUES(?,?) ON CONFLICT(bucket) DO UPDATE SET payload=excluded.payload`,
		bucket, payload); err != nil {
		return fmt.Errorf("snapshot: upsert %s: %w", bucket, err)
	}
	return nil
}

// Load returns the payload of bucket and whether it exists.
func (d *DB) Load(ctx context.Context, bucket string) ([]byte, bool, error) {
	var payload []byte
	err := d.db.QueryRowContext(ctx, `SELECT payload FROM state WHERE bucket = ?`, bucket).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("snapshot: select %s: %w", bucket, err)
	}
	return payload, true, nil
}

// Delete drops bucket.
func (d *DB) Delete(ctx context.Context, bucket string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.delete(ctx, bucket)
}

func (d *DB) delete(ctx context.Context, bucket string) error {
	if _, err := d.db.ExecContext(ctx, `DELETE FROM state WHERE bucket = ?`, bucket); err != nil {
		return fmt.Errorf("snapshot: delete %s: %w", bucket, err)
	}
	return nil
}

// Buckets lists the stored bucket names in order.
func (d *DB) Buckets(ctx context.Context) ([]string, error) {
	rows, err := d.db.QueryContext(ctx, `SELECT bucket FROM state ORDER BY bucket`)
	if err != nil {
		return nil, fmt.Errorf("snapshot: list buckets: %w", err)
	}
	defer func() { _ = rows.Close() }()
	var out []string
	for rows.Next() {
		var b string
		if err := rows.Scan(&b); err != nil {
			return nil, fmt.Errorf("snapshot: scan bucket: %w", err)
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

// Bind restores store from its bucket when one exists, then persists the
// full record list after every mutation. A reset store drops its bucket so
// the next start loads fixtures again. The returned func stops persisting.
func Bind[T record.Record](ctx context.Context, d *DB, store *record.Store[T]) (func(), bool, error) {
	bucket := store.Name()
	payload, ok, err := d.Load(ctx, bucket)
	if err != nil {
		return nil, false, err
	}
	if ok {
		var items []T
		if err := json.Unmarshal(payload, &items); err != nil {
			return nil, false, fmt.Errorf("snapshot: decode %s: %w", bucket, err)
		}
		store.Replace(items)
	}
	unsubscribe := store.Subscribe(func(ev record.Event) {
		if ev.Kind == record.EventFiltered {
			return
		}
		if err := persist(context.Background(), d, store); err != nil {
			d.logger.Error("snapshot persist failed", slog.String("store", bucket), slog.Any("error", err))
		}
	})
	return unsubscribe, ok, nil
}

// persist reads the store and writes it under one lock so a slower writer
// cannot replace a newer list with an older one.
func persist[T record.Record](ctx context.Context, d *DB, store *record.Store[T]) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if !store.Loaded() {
		return d.delete(ctx, store.Name())
	}
	data, err := json.Marshal(store.All())
	if err != nil {
		return fmt.Errorf("snapshot: encode %s: %w", store.Name(), err)
	}
	return d.save(ctx, store.Name(), data)
}
