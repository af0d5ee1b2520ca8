package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/goccy/go-json"
	_ "github.com/mattn/go-sqlite3"

	"github.com/teenjuna/vec/internal"
)

var (
	// ErrClosed is returned by Storage methods when the storage has been closed.
	ErrClosed = errors.New("storage is closed")
	// ErrNotFound is returned by [Storage.Get] when no snapshot has the requested ID.
	ErrNotFound = errors.New("snapshot not found")
)

const (
	memory = ":memory:"
)

// Storage is a persistent snapshot storage backed by SQLite.
type Storage struct {
	cfg *Config
	db  *sql.DB
}

// New creates a new Storage with the provided configuration functions.
//
// Default configuration:
//   - URI: ":memory:" (in-memory database)
//   - Workers: 1
//
// Returns an error if the SQLite database cannot be opened or initialized.
func New(configFuncs ...ConfigFunc) (*Storage, error) {
	cfg := &Config{}
	cfg.URI(memory)
	cfg.Workers(1)
	for _, cf := range configFuncs {
		cf(cfg)
	}

	db, err := open(cfg)
	if err != nil {
		return nil, fmt.Errorf("open: %w", err)
	}

	if err := setup(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("setup: %w", err)
	}

	storage := Storage{
		cfg: cfg,
		db:  db,
	}

	return &storage, nil
}

// Push inserts a new snapshot into the storage.
//
// The data is the encoded content of the snapshot, and size is the number of items in it.
// Returns a unique ID that can be used to get or delete the snapshot later.
//
// Returns [ErrClosed] if the storage has been closed.
func (s *Storage) Push(ctx context.Context, data []byte, size int) (ID, error) {
	id := internal.GenerateID()
	if err := insert(ctx, s.db, id, data, size); err != nil {
		return "", closed(err)
	}
	return id, nil
}

// PushMany inserts several snapshots in one transaction. Either all of them are stored or none.
//
// Returns the IDs in the order of records.
func (s *Storage) PushMany(ctx context.Context, records []Record) ([]ID, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, closed(fmt.Errorf("begin: %w", err))
	}
	defer func() { _ = tx.Rollback() }()

	ids := make([]ID, len(records))
	for i, r := range records {
		ids[i] = internal.GenerateID()
		if err := insert(ctx, tx, ids[i], r.Data, r.Size); err != nil {
			return nil, closed(err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, closed(fmt.Errorf("commit: %w", err))
	}

	return ids, nil
}

// Get returns the snapshot with the provided ID.
//
// Returns [ErrNotFound] if there is no such snapshot.
func (s *Storage) Get(ctx context.Context, id ID) (*Snapshot, error) {
	var (
		data     []byte
		size     int
		pushedAt int64
	)
	err := s.db.QueryRowContext(
		ctx,
		`
		select data, size, pushed_at
		from snapshot
		where id = :id
		`,
		sql.Named("id", id),
	).Scan(
		&data,
		&size,
		&pushedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	} else if err != nil {
		return nil, closed(err)
	}

	snapshot := Snapshot{
		ID:       id,
		Data:     data,
		Size:     size,
		PushedAt: fromTimestamp(pushedAt),
	}

	return &snapshot, nil
}

// Delete permanently removes one or more snapshots from the storage. Unknown IDs are ignored.
//
// Returns the number of removed snapshots.
func (s *Storage) Delete(ctx context.Context, ids ...ID) (int, error) {
	res, err := s.db.ExecContext(
		ctx,
		`
		delete from snapshot
		where
			id in (
				select value from json_each(:ids)
			)
		`,
		sql.Named("ids", jsonIDs(ids)),
	)
	if err != nil {
		return 0, closed(err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}

	return int(n), nil
}

// Stats returns current storage statistics.
func (s *Storage) Stats(ctx context.Context) (*Stats, error) {
	var (
		snapshots int
		items     int
		bytes     int
	)
	err := s.db.QueryRowContext(
		ctx,
		`
		select
			coalesce(count(*), 0) as snapshots,
			coalesce(sum(size), 0) as items,
			coalesce(sum(length(data)), 0) as bytes
		from
			snapshot
		`,
	).Scan(
		&snapshots,
		&items,
		&bytes,
	)
	if err != nil {
		return nil, closed(err)
	}

	stats := Stats{
		Snapshots: snapshots,
		Items:     items,
		Bytes:     bytes,
	}

	return &stats, nil
}

// Close closes the underlying SQLite database.
//
// After closing, all methods on Storage will return [ErrClosed].
func (s *Storage) Close() error {
	return s.db.Close()
}

// Snapshot represents a stored snapshot.
type Snapshot struct {
	// ID is the unique identifier of this snapshot.
	ID ID
	// Data is the encoded snapshot content.
	Data []byte
	// Size is the number of items in the snapshot.
	Size int
	// PushedAt is the time when the snapshot was pushed.
	PushedAt time.Time
}

// Record is the content of a snapshot that is not stored yet.
type Record struct {
	Data []byte
	Size int
}

type ID = string

// Stats represents statistics about the storage.
type Stats struct {
	// Snapshots is the total number of snapshots in storage.
	Snapshots int
	// Items is the total number of items across all snapshots.
	Items int
	// Bytes is the total size of the encoded data.
	Bytes int
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func insert(ctx context.Context, db execer, id ID, data []byte, size int) error {
	_, err := db.ExecContext(
		ctx,
		`
		insert into snapshot (
			id,
			data,
			size,
			pushed_at
		) values (
			:id,
			:data,
			:size,
			:pushed_at
		)
		`,
		sql.Named("id", id),
		sql.Named("data", data),
		sql.Named("size", size),
		sql.Named("pushed_at", toTimestamp(time.Now())),
	)
	return err
}

func open(cfg *Config) (*sql.DB, error) {
	path, rawQuery, _ := strings.Cut(cfg.uri, "?")
	query, err := url.ParseQuery(rawQuery)
	if err != nil {
		return nil, fmt.Errorf("parse query: %w", err)
	}

	params := url.Values{}
	params.Add("_txlock", "immediate")
	params.Add("_timeout", "5000") // 5s
	params.Add("_foreign_keys", "on")
	if path == memory {
		path = "file:" + internal.GenerateID()
		params.Add("mode", "memory")
		params.Add("cache", "shared")
	} else {
		params.Add("_journal", "wal")
		params.Add("_sync", "normal")
		params.Add("_cache_size", "-20000") // 20mb
	}
	for k, v := range query {
		if len(v) != 0 {
			params.Set(k, v[0])
		}
	}

	db, err := sql.Open("sqlite3", path+"?"+params.Encode())
	if err != nil {
		return nil, err
	}

	db.SetConnMaxIdleTime(0)
	db.SetConnMaxLifetime(0)
	if params.Get("mode") == "memory" {
		db.SetMaxOpenConns(1)
		db.SetMaxIdleConns(1)
	} else {
		db.SetMaxOpenConns(cfg.workers)
		db.SetMaxIdleConns(cfg.workers)
	}

	return db, nil
}

func setup(db *sql.DB) error {
	if _, err := db.Exec(
		`
		create table if not exists snapshot (
			id        text primary key,
			data      blob not null,
			size      int not null,
			pushed_at int not null
		) strict
		`,
	); err != nil {
		return fmt.Errorf("create table: %w", err)
	}

	return nil
}

func closed(err error) error {
	if err != nil && strings.Contains(err.Error(), "sql: database is closed") {
		return ErrClosed
	}
	return err
}

func jsonIDs(ids []ID) string {
	jsonIDs, _ := json.Marshal(ids)
	return string(jsonIDs)
}

func toTimestamp(time time.Time) int64 {
	return time.UnixNano()
}

func fromTimestamp(timestamp int64) time.Time {
	return time.Unix(0, timestamp)
}
