// Package store persists the latest tracked snapshot of every resource in a
// BadgerDB database, so that the next analysis has a reference to track
// against.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/katalvlaran/linetrack/tracking"
)

// Sentinel errors for the store.
var (
	// ErrNotFound is returned when no snapshot exists for a resource.
	ErrNotFound = errors.New("store: snapshot not found")

	// ErrNoResource is returned for a snapshot without a resource name.
	ErrNoResource = errors.New("store: resource name is empty")

	// ErrNoPath is returned when a persistent store has no directory.
	ErrNoPath = errors.New("store: path is required for a persistent store")
)

const snapshotPrefix = "snapshot/"

// Config configures a Store.
type Config struct {
	// Path is the database directory. Ignored when InMemory is true.
	Path string

	// InMemory keeps everything in memory, for tests and one-off runs.
	InMemory bool

	// SyncWrites fsyncs every commit.
	SyncWrites bool

	// Logger receives badger's own log lines. nil silences them.
	Logger *slog.Logger

	// GCInterval is how often value log garbage collection runs on a
	// persistent store. 0 disables it.
	GCInterval time.Duration

	// GCDiscardRatio is the discardable fraction that triggers a rewrite.
	GCDiscardRatio float64
}

// DefaultConfig returns a persistent configuration without a path.
func DefaultConfig() Config {
	return Config{
		SyncWrites:     true,
		GCInterval:     5 * time.Minute,
		GCDiscardRatio: 0.5,
	}
}

// InMemoryConfig returns a configuration that never touches disk.
func InMemoryConfig() Config {
	return Config{InMemory: true}
}

// badgerLogger forwards badger's printf-style logging to slog.
type badgerLogger struct {
	logger *slog.Logger
}

func (l *badgerLogger) Errorf(format string, args ...interface{}) {
	l.logger.Error(strings.TrimSpace(fmt.Sprintf(format, args...)))
}

func (l *badgerLogger) Warningf(format string, args ...interface{}) {
	l.logger.Warn(strings.TrimSpace(fmt.Sprintf(format, args...)))
}

func (l *badgerLogger) Infof(format string, args ...interface{}) {
	l.logger.Info(strings.TrimSpace(fmt.Sprintf(format, args...)))
}

func (l *badgerLogger) Debugf(format string, args ...interface{}) {
	l.logger.Debug(strings.TrimSpace(fmt.Sprintf(format, args...)))
}

// Store is a snapshot repository keyed by resource name. It is safe for
// concurrent use.
type Store struct {
	db     *badger.DB
	logger *slog.Logger
	stop   chan struct{}
	done   chan struct{}
}

// Open opens or creates the database described by cfg.
func Open(cfg Config) (*Store, error) {
	var opts badger.Options
	if cfg.InMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		if cfg.Path == "" {
			return nil, ErrNoPath
		}
		if err := os.MkdirAll(cfg.Path, 0o750); err != nil {
			return nil, fmt.Errorf("create store directory %s: %w", cfg.Path, err)
		}
		opts = badger.DefaultOptions(cfg.Path)
	}
	opts = opts.WithSyncWrites(cfg.SyncWrites).WithNumVersionsToKeep(1)
	if cfg.Logger != nil {
		opts = opts.WithLogger(&badgerLogger{logger: cfg.Logger})
	} else {
		opts = opts.WithLogger(nil)
	}

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger database: %w", err)
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	s := &Store{db: db, logger: logger}
	if cfg.GCInterval > 0 && !cfg.InMemory {
		s.stop = make(chan struct{})
		s.done = make(chan struct{})
		go s.runGC(cfg.GCInterval, cfg.GCDiscardRatio)
	}

	return s, nil
}

func (s *Store) runGC(interval time.Duration, ratio float64) {
	defer close(s.done)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.stop:
			return
		case <-ticker.C:
			// ErrNoRewrite means there was nothing worth collecting
			if err := s.db.RunValueLogGC(ratio); err != nil && !errors.Is(err, badger.ErrNoRewrite) {
				s.logger.Warn("badger value log GC failed", slog.String("error", err.Error()))
			}
		}
	}
}

// Close stops garbage collection and closes the database.
func (s *Store) Close() error {
	if s.stop != nil {
		close(s.stop)
		<-s.done
	}

	return s.db.Close()
}

func snapshotKey(resource string) []byte {
	return []byte(snapshotPrefix + resource)
}

// Save stores snap as the latest snapshot of its resource, replacing any
// previous one.
func (s *Store) Save(ctx context.Context, snap tracking.Snapshot) error {
	if snap.Resource == "" {
		return ErrNoResource
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	val, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("encode snapshot %s: %w", snap.Resource, err)
	}

	err = s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(snapshotKey(snap.Resource), val)
	})
	if err != nil {
		return fmt.Errorf("save snapshot %s: %w", snap.Resource, err)
	}

	return nil
}

// Load returns the latest snapshot of resource, or ErrNotFound.
func (s *Store) Load(ctx context.Context, resource string) (tracking.Snapshot, error) {
	var snap tracking.Snapshot
	if resource == "" {
		return snap, ErrNoResource
	}
	if err := ctx.Err(); err != nil {
		return snap, err
	}

	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(snapshotKey(resource))
		if err != nil {
			return err
		}

		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &snap)
		})
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return tracking.Snapshot{}, fmt.Errorf("%w: %s", ErrNotFound, resource)
	}
	if err != nil {
		return tracking.Snapshot{}, fmt.Errorf("load snapshot %s: %w", resource, err)
	}

	return snap, nil
}

// Delete removes the snapshot of resource. Deleting a missing resource is
// not an error.
func (s *Store) Delete(ctx context.Context, resource string) error {
	if resource == "" {
		return ErrNoResource
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Delete(snapshotKey(resource))
	})
}

// List returns the stored resource names in key order.
func (s *Store) List(ctx context.Context) ([]string, error) {
	var out []string
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		opts.Prefix = []byte(snapshotPrefix)
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			if err := ctx.Err(); err != nil {
				return err
			}
			out = append(out, strings.TrimPrefix(string(it.Item().Key()), snapshotPrefix))
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return out, nil
}

// Advance tracks cur against the stored snapshot of the same resource and
// stores the outcome as the new reference: the current lines with the open
// issues carrying their tracked keys. A resource seen for the first time is
// tracked against an empty reference.
func (s *Store) Advance(ctx context.Context, tr *tracking.Tracker, cur tracking.Snapshot) (tracking.Result, error) {
	ref, err := s.Load(ctx, cur.Resource)
	if err != nil && !errors.Is(err, ErrNotFound) {
		return tracking.Result{}, err
	}

	res, err := tr.Track(ref, cur)
	if err != nil {
		return tracking.Result{}, err
	}

	next := cur
	next.Issues = res.Open()
	if next.AnalyzedAt.IsZero() {
		next.AnalyzedAt = time.Now().UTC()
	}
	if err := s.Save(ctx, next); err != nil {
		return tracking.Result{}, err
	}
	s.logger.Debug("snapshot advanced",
		slog.String("resource", cur.Resource),
		slog.Int("open", len(next.Issues)),
		slog.Int("closed", len(res.Closed)),
	)

	return res, nil
}
