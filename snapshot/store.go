// Package snapshot persists the contents of [vec.Vec] containers in SQLite.
//
// A snapshot is an encoded copy of the elements of a Vec at the moment it was saved. Snapshots
// are identified by ULIDs, so IDs of later snapshots sort after IDs of earlier ones.
package snapshot

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/teenjuna/vec"
	"github.com/teenjuna/vec/codec"
	"github.com/teenjuna/vec/internal/sqlite"
)

var (
	// ErrClosed is returned by Store methods when the store has been closed.
	ErrClosed = errors.New("store is closed")
	// ErrNotFound is returned by [Store.Load] when no snapshot has the requested ID.
	ErrNotFound = errors.New("snapshot not found")
)

// ID identifies a saved snapshot.
type ID = sqlite.ID

// Stats represents statistics about the store.
type Stats struct {
	// Snapshots is the total number of snapshots in the store.
	Snapshots int
	// Items is the total number of items across all snapshots.
	Items int
	// Bytes is the total size of the encoded snapshots.
	Bytes int
}

// Store saves and loads snapshots of Vecs with elements of type Item.
//
// Store is safe for concurrent use. Vecs passed to its methods must not be modified while the
// call is in progress.
type Store[Item any] struct {
	cfg     *Config[Item]
	storage *sqlite.Storage
	logger  zerolog.Logger
	codecs  sync.Pool
	closed  atomic.Bool
}

// New creates a new Store with the provided configuration functions.
//
// Returns an error if the SQLite database cannot be opened or initialized.
func New[Item any](configFuncs ...ConfigFunc[Item]) (*Store[Item], error) {
	cfg := newConfig(configFuncs...)

	storage, err := sqlite.New(
		sqlite.WithURI(cfg.file.uri()),
		sqlite.WithWorkers(cfg.workers),
	)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	store := &Store[Item]{
		cfg:     cfg,
		storage: storage,
		logger:  cfg.logger.With().Str("component", "snapshot").Logger(),
	}
	store.codecs.New = func() any {
		return cfg.codec.Derive()
	}

	return store, nil
}

// Save encodes the elements of v and stores them as a new snapshot. The elements stay in v.
func (s *Store[Item]) Save(ctx context.Context, v *vec.Vec[Item]) (ID, error) {
	if s.closed.Load() {
		return "", ErrClosed
	}

	data, err := s.encode(v)
	if err != nil {
		return "", err
	}

	id, err := s.storage.Push(ctx, data, v.Len())
	if err != nil {
		return "", s.wrap("push", err)
	}

	s.logger.Debug().Str("id", id).Int("size", v.Len()).Int("bytes", len(data)).Msg("save")

	return id, nil
}

// SaveDrain moves the elements of v into a new snapshot. On success v is empty and keeps its
// capacity; elements that implement [vec.Dropper] are dropped once the snapshot is stored.
//
// On error every drained element is pushed back into v in the original order.
func (s *Store[Item]) SaveDrain(ctx context.Context, v *vec.Vec[Item]) (ID, error) {
	if s.closed.Load() {
		return "", ErrClosed
	}

	var (
		d     = v.Drain()
		taken = make([]Item, 0, d.Len())
	)
	defer d.Close()

	// The drain is exhausted before anything is pushed back, so v is mutable again.
	restore := func() {
		for {
			item, ok := d.Next()
			if !ok {
				break
			}
			taken = append(taken, item)
		}
		for _, item := range taken {
			v.Push(item)
		}
	}

	c := s.codec()
	defer s.codecs.Put(c)

	data, err := c.Encode(func(yield func(Item) bool) {
		for {
			item, ok := d.Next()
			if !ok {
				return
			}
			taken = append(taken, item)
			if !yield(item) {
				return
			}
		}
	})
	if err != nil {
		restore()
		s.logger.Debug().Int("size", len(taken)).Err(err).Msg("restore")
		return "", fmt.Errorf("encode items: %w", err)
	}
	if d.Len() != 0 {
		restore()
		return "", errors.New("encode items: codec stopped early")
	}
	d.Close()

	id, err := s.storage.Push(ctx, data, len(taken))
	if err != nil {
		restore()
		return "", s.wrap("push", err)
	}

	for _, item := range taken {
		if dropper, ok := any(item).(vec.Dropper); ok {
			dropper.Drop()
		}
	}

	s.logger.Debug().Str("id", id).Int("size", len(taken)).Int("bytes", len(data)).Msg("save drain")

	return id, nil
}

// SaveAll stores every Vec as a separate snapshot. Vecs are encoded concurrently by up to
// Workers goroutines and stored in one transaction, so either all snapshots are saved or none.
//
// Returns the IDs in the order of vs.
func (s *Store[Item]) SaveAll(ctx context.Context, vs ...*vec.Vec[Item]) ([]ID, error) {
	if s.closed.Load() {
		return nil, ErrClosed
	}

	records := make([]sqlite.Record, len(vs))

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(s.cfg.workers)
	for i, v := range vs {
		group.Go(func() error {
			if err := groupCtx.Err(); err != nil {
				return err
			}

			data, err := s.encode(v)
			if err != nil {
				return fmt.Errorf("vec %d: %w", i, err)
			}

			records[i] = sqlite.Record{Data: data, Size: v.Len()}
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, err
	}

	ids, err := s.storage.PushMany(ctx, records)
	if err != nil {
		return nil, s.wrap("push", err)
	}

	s.logger.Debug().Strs("ids", ids).Msg("save all")

	return ids, nil
}

// Load decodes the snapshot with the provided ID into a new Vec. The caller owns the returned
// Vec and is responsible for closing it.
//
// Returns [ErrNotFound] if there is no such snapshot.
func (s *Store[Item]) Load(ctx context.Context, id ID) (*vec.Vec[Item], error) {
	if s.closed.Load() {
		return nil, ErrClosed
	}

	snapshot, err := s.storage.Get(ctx, id)
	if err != nil {
		return nil, s.wrap("get", err)
	}

	c := s.codec()
	defer s.codecs.Put(c)

	v, err := vec.Decode(c, snapshot.Data)
	if err != nil {
		return nil, err
	}

	s.logger.Debug().Str("id", id).Int("size", v.Len()).Msg("load")

	return v, nil
}

// Delete permanently removes snapshots. Unknown IDs are ignored.
func (s *Store[Item]) Delete(ctx context.Context, ids ...ID) error {
	if s.closed.Load() {
		return ErrClosed
	}

	n, err := s.storage.Delete(ctx, ids...)
	if err != nil {
		return s.wrap("delete", err)
	}

	s.logger.Debug().Int("requested", len(ids)).Int("deleted", n).Msg("delete")

	return nil
}

// Stats returns current store statistics.
func (s *Store[Item]) Stats(ctx context.Context) (*Stats, error) {
	if s.closed.Load() {
		return nil, ErrClosed
	}

	stats, err := s.storage.Stats(ctx)
	if err != nil {
		return nil, s.wrap("get stats", err)
	}

	return &Stats{
		Snapshots: stats.Snapshots,
		Items:     stats.Items,
		Bytes:     stats.Bytes,
	}, nil
}

// Close closes the underlying database. In-memory snapshots are lost.
//
// After closing, all methods on Store will return [ErrClosed].
func (s *Store[Item]) Close() error {
	if !s.closed.CompareAndSwap(false, true) {
		return ErrClosed
	}
	if err := s.storage.Close(); err != nil {
		return fmt.Errorf("close sqlite: %w", err)
	}
	return nil
}

func (s *Store[Item]) encode(v *vec.Vec[Item]) ([]byte, error) {
	c := s.codec()
	defer s.codecs.Put(c)

	return vec.Encode(c, v)
}

func (s *Store[Item]) codec() codec.Codec[Item] {
	return s.codecs.Get().(codec.Codec[Item])
}

func (s *Store[Item]) wrap(op string, err error) error {
	switch {
	case errors.Is(err, sqlite.ErrClosed):
		return ErrClosed
	case errors.Is(err, sqlite.ErrNotFound):
		return ErrNotFound
	default:
		return fmt.Errorf("%s: %w", op, err)
	}
}
