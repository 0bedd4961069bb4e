package store

import (
	"context"
	"fmt"

	"github.com/desertthunder/moodmusic/internal/shared"
)

// Default admin account guaranteed to exist after initialization.
const (
	DefaultAdminUsername = "admin"
	DefaultAdminPassword = "admin123"
)

// schemaStatements create the library schema. Every statement is
// idempotent so the whole set reruns safely on each startup.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS songs (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		title TEXT NOT NULL,
		artist TEXT NOT NULL,
		mood TEXT NOT NULL,
		path TEXT NOT NULL DEFAULT ''
	)`,
	`CREATE INDEX IF NOT EXISTS idx_songs_mood ON songs(mood)`,
	`CREATE TABLE IF NOT EXISTS playlists (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT UNIQUE NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS playlist_songs (
		playlist_id INTEGER NOT NULL,
		song_id INTEGER NOT NULL,
		FOREIGN KEY(playlist_id) REFERENCES playlists(id) ON DELETE CASCADE,
		FOREIGN KEY(song_id) REFERENCES songs(id) ON DELETE CASCADE,
		PRIMARY KEY(playlist_id, song_id)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_playlist_songs_song ON playlist_songs(song_id)`,
	`CREATE TABLE IF NOT EXISTS users (
		username TEXT PRIMARY KEY,
		password_hash TEXT NOT NULL,
		is_admin INTEGER NOT NULL DEFAULT 0
	)`,
}

// sampleSongs give the library non-empty first-run content, one per mood.
var sampleSongs = [][4]string{
	{"Sunshine Drive", "Neon Roads", "Happy", ""},
	{"Midnight Thought", "Quiet Hour", "Calm", ""},
	{"Run Wild", "Pulse Factory", "Energetic", ""},
	{"Rainy Window", "Soft Echo", "Sad", ""},
	{"Study Focus", "Ambient Labs", "Focus", ""},
}

// InitAndSeed brings the database from "file may not exist" to fully
// usable: schema, sample songs, and the default admin account.
//
// The procedure is re-entrant; sample songs are inserted only when the
// songs table is empty, and the admin row only when absent. Schema and
// seed run inside one transaction so the store is never observed
// half-migrated. On failure the whole procedure is retried per the
// store's RetryPolicy before a fatal initialization error surfaces.
func (s *Store) InitAndSeed(ctx context.Context) error {
	var lastErr error

	for attempt := 0; attempt < s.retry.Attempts; attempt++ {
		if attempt > 0 {
			if err := s.retry.Sleep(ctx, s.retry.Delay); err != nil {
				return fmt.Errorf("%w: %v", shared.ErrInterrupted, err)
			}
		}

		if err := s.initOnce(ctx); err != nil {
			lastErr = err
			s.logger.Warn("initialization attempt failed", "attempt", attempt+1, "error", err)
			continue
		}

		return nil
	}

	return fmt.Errorf("%w after %d attempts: %v", shared.ErrInitFailed, s.retry.Attempts, lastErr)
}

// initOnce performs a single initialization pass under the store lock.
func (s *Store) initOnce(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureLocked(ctx); err != nil {
		return err
	}

	// Pragma statements are not transactional in SQLite; apply them before
	// the transaction so a rollback cannot leave a partial-pragma state.
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA foreign_keys=ON",
	} {
		if _, err := s.db.ExecContext(ctx, pragma); err != nil {
			return fmt.Errorf("failed to apply %q: %w", pragma, err)
		}
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	for _, stmt := range schemaStatements {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to create schema: %w", err)
		}
	}

	if s.cfg.Seed {
		var count int
		if err := tx.QueryRowContext(ctx, "SELECT COUNT(*) FROM songs").Scan(&count); err != nil {
			return fmt.Errorf("failed to count songs: %w", err)
		}

		if count == 0 {
			for _, song := range sampleSongs {
				_, err := tx.ExecContext(ctx,
					"INSERT INTO songs (title, artist, mood, path) VALUES (?, ?, ?, ?)",
					song[0], song[1], song[2], song[3],
				)
				if err != nil {
					return fmt.Errorf("failed to seed song %q: %w", song[0], err)
				}
			}
			s.logger.Info("seeded sample songs", "count", len(sampleSongs))
		}
	}

	// The admin row is seeded here and only here, always hashed.
	_, err = tx.ExecContext(ctx,
		"INSERT OR IGNORE INTO users (username, password_hash, is_admin) VALUES (?, ?, 1)",
		DefaultAdminUsername, shared.HashPassword(DefaultAdminPassword),
	)
	if err != nil {
		return fmt.Errorf("failed to seed admin account: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit initialization: %w", err)
	}

	return nil
}
