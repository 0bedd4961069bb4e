package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	_ "github.com/mattn/go-sqlite3"

	"github.com/desertthunder/moodmusic/internal/shared"
)

// probeTimeout bounds the liveness check against a cached connection.
const probeTimeout = time.Second

// SleepFunc waits for the given duration or until the context is done,
// in which case it returns the context's error.
type SleepFunc func(ctx context.Context, d time.Duration) error

// RetryPolicy bounds reconnection and initialization retries.
type RetryPolicy struct {
	Attempts int
	Delay    time.Duration
	Sleep    SleepFunc
}

// DefaultRetryPolicy returns the standard policy: 3 attempts spaced 1s apart.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{Attempts: 3, Delay: time.Second, Sleep: sleepCtx}
}

// sleepCtx waits for d, aborting early if ctx is canceled.
func sleepCtx(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// Store manages the single connection to the embedded SQLite database.
//
// All connection mutation is serialized through one mutex; concurrent
// callers queue rather than race to reopen.
type Store struct {
	path   string
	cfg    shared.DatabaseConfig
	retry  RetryPolicy
	logger *log.Logger

	mu sync.Mutex
	db *sql.DB
}

// New creates a Store for the database file described by cfg.
//
// No connection is opened until the first call to [Store.Conn] or
// [Store.InitAndSeed]. Zero-valued retry settings in cfg fall back to
// [DefaultRetryPolicy].
func New(cfg shared.DatabaseConfig, logger *log.Logger) *Store {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}

	retry := DefaultRetryPolicy()
	if cfg.RetryAttempts > 0 {
		retry.Attempts = cfg.RetryAttempts
	}
	if cfg.RetryDelayMS > 0 {
		retry.Delay = cfg.RetryDelay()
	}

	return &Store{
		path:   cfg.Path,
		cfg:    cfg,
		retry:  retry,
		logger: shared.WithLogger(logger, "component", "store"),
	}
}

// SetRetryPolicy replaces the retry policy. Intended for tests that inject
// a recording sleep function; not safe to call concurrently with Conn.
func (s *Store) SetRetryPolicy(p RetryPolicy) {
	if p.Sleep == nil {
		p.Sleep = sleepCtx
	}
	s.retry = p
}

// Path returns the database file path the store was configured with.
func (s *Store) Path() string {
	return s.path
}

// Conn returns a live, configured connection, reconnecting as needed.
//
// The cached connection is probed first; on probe failure the handle is
// discarded and reopened. Up to retry.Attempts tries are made with
// retry.Delay between them before the failure surfaces to the caller.
// Cancellation during a retry sleep aborts with [shared.ErrInterrupted].
func (s *Store) Conn(ctx context.Context) (*sql.DB, error) {
	var lastErr error

	for attempt := 0; attempt < s.retry.Attempts; attempt++ {
		if attempt > 0 {
			if err := s.retry.Sleep(ctx, s.retry.Delay); err != nil {
				return nil, fmt.Errorf("%w: %v", shared.ErrInterrupted, err)
			}
		}

		s.mu.Lock()
		err := s.ensureLocked(ctx)
		if err == nil {
			db := s.db
			s.mu.Unlock()
			return db, nil
		}
		s.mu.Unlock()

		lastErr = err
		s.logger.Warn("connection attempt failed", "attempt", attempt+1, "error", err)
	}

	return nil, fmt.Errorf("%w after %d attempts: %v", shared.ErrConnectionFailed, s.retry.Attempts, lastErr)
}

// Close tears down the cached connection. Idempotent and safe to call from
// a process-exit hook.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.db == nil {
		return nil
	}

	err := s.db.Close()
	s.db = nil
	if err != nil {
		return fmt.Errorf("failed to close database: %w", err)
	}
	return nil
}

// ensureLocked guarantees s.db is live and configured. Caller holds s.mu.
func (s *Store) ensureLocked(ctx context.Context) error {
	if s.db != nil {
		err := s.probeLocked(ctx)
		if err == nil {
			return nil
		}
		s.logger.Warn("connection probe failed, reopening", "error", err)

		// Discard the stale handle before reopening.
		if err := s.db.Close(); err != nil {
			s.logger.Warn("failed to close stale connection", "error", err)
		}
		s.db = nil
	}

	if dir := filepath.Dir(s.path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	busyTimeout := s.cfg.BusyTimeoutMS
	if busyTimeout <= 0 {
		busyTimeout = 30000
	}

	dsn := fmt.Sprintf("file:%s?_busy_timeout=%d", s.path, busyTimeout)
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite permits one writer at a time; a pool of one keeps the pragmas
	// below bound to the connection every statement actually uses.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return fmt.Errorf("failed to ping database: %w", err)
	}

	if err := s.configure(ctx, db); err != nil {
		db.Close()
		return err
	}

	s.db = db
	s.logger.Debug("database connection established", "path", s.path)
	return nil
}

// probeLocked runs a trivial short-timeout query against the cached handle.
func (s *Store) probeLocked(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, probeTimeout)
	defer cancel()

	var one int
	return s.db.QueryRowContext(ctx, "SELECT 1").Scan(&one)
}

// configure applies the reliability and performance pragmas to a fresh
// connection before it is published.
func (s *Store) configure(ctx context.Context, db *sql.DB) error {
	cacheSize := s.cfg.CacheSize
	if cacheSize <= 0 {
		cacheSize = 2000
	}
	mmapSize := s.cfg.MmapSize
	if mmapSize <= 0 {
		mmapSize = 268435456 // 256 MiB
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
		fmt.Sprintf("PRAGMA cache_size=%d", cacheSize),
		fmt.Sprintf("PRAGMA mmap_size=%d", mmapSize),
		"PRAGMA foreign_keys=ON",
	}

	for _, pragma := range pragmas {
		if _, err := db.ExecContext(ctx, pragma); err != nil {
			return fmt.Errorf("failed to apply %q: %w", pragma, err)
		}
	}

	return nil
}
