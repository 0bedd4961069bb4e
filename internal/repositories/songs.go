package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/desertthunder/moodmusic/internal/models"
	"github.com/desertthunder/moodmusic/internal/shared"
	"github.com/desertthunder/moodmusic/internal/store"
)

// SongRepository handles persistence for [models.Song].
type SongRepository struct {
	store  *store.Store
	logger *log.Logger
}

// NewSongRepository creates a new SongRepository backed by the given store.
func NewSongRepository(s *store.Store, logger *log.Logger) *SongRepository {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &SongRepository{store: s, logger: shared.WithLogger(logger, "repository", "songs")}
}

// All returns every song ordered by id ascending.
//
// Storage errors are logged and degrade to an empty list so browsing
// callers never hard-fail on a read.
func (r *SongRepository) All(ctx context.Context) []models.Song {
	return r.query(ctx, "SELECT id, title, artist, mood, path FROM songs ORDER BY id")
}

// ByMood returns songs with exactly the given mood, ordered by id.
func (r *SongRepository) ByMood(ctx context.Context, mood string) []models.Song {
	return r.query(ctx, "SELECT id, title, artist, mood, path FROM songs WHERE mood = ? ORDER BY id", mood)
}

// Insert adds a song and returns its generated id.
//
// Title and artist are trimmed and must be non-empty; mood must be
// non-empty. Path is optional and defaults to the empty string.
func (r *SongRepository) Insert(ctx context.Context, title, artist, mood, path string) (int64, error) {
	song := models.Song{
		Title:  strings.TrimSpace(title),
		Artist: strings.TrimSpace(artist),
		Mood:   mood,
		Path:   strings.TrimSpace(path),
	}
	if err := song.Validate(); err != nil {
		return 0, err
	}

	db, err := r.store.Conn(ctx)
	if err != nil {
		return 0, err
	}

	result, err := db.ExecContext(ctx,
		"INSERT INTO songs (title, artist, mood, path) VALUES (?, ?, ?, ?)",
		song.Title, song.Artist, song.Mood, song.Path,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to insert song: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to read generated id: %w", err)
	}

	return id, nil
}

// Update replaces every field of the song identified by song.ID.
func (r *SongRepository) Update(ctx context.Context, song models.Song) error {
	if err := song.Validate(); err != nil {
		return err
	}

	db, err := r.store.Conn(ctx)
	if err != nil {
		return err
	}

	result, err := db.ExecContext(ctx,
		"UPDATE songs SET title = ?, artist = ?, mood = ?, path = ? WHERE id = ?",
		strings.TrimSpace(song.Title), strings.TrimSpace(song.Artist), song.Mood, strings.TrimSpace(song.Path), song.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update song: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("%w: id %d", shared.ErrSongNotFound, song.ID)
	}

	return nil
}

// Delete removes a song by id. Playlist membership rows cascade.
func (r *SongRepository) Delete(ctx context.Context, id int64) error {
	db, err := r.store.Conn(ctx)
	if err != nil {
		return err
	}

	result, err := db.ExecContext(ctx, "DELETE FROM songs WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete song: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("%w: id %d", shared.ErrSongNotFound, id)
	}

	return nil
}

// IDsByMood returns the ids of songs matching the mood case-insensitively,
// ordered by title ascending. Empty on storage error (logged).
func (r *SongRepository) IDsByMood(ctx context.Context, mood string) []int64 {
	return songIDsByMood(ctx, r.store, r.logger, mood)
}

// query runs a song SELECT and scans the rows, degrading to empty on error.
func (r *SongRepository) query(ctx context.Context, q string, args ...any) []models.Song {
	songs := []models.Song{}

	db, err := r.store.Conn(ctx)
	if err != nil {
		r.logger.Error("failed to get connection", "error", err)
		return songs
	}

	rows, err := db.QueryContext(ctx, q, args...)
	if err != nil {
		r.logger.Error("failed to query songs", "error", err)
		return songs
	}
	defer rows.Close()

	for rows.Next() {
		var song models.Song
		if err := rows.Scan(&song.ID, &song.Title, &song.Artist, &song.Mood, &song.Path); err != nil {
			r.logger.Error("failed to scan song", "error", err)
			return []models.Song{}
		}
		songs = append(songs, song)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error("row iteration error", "error", err)
		return []models.Song{}
	}

	return songs
}

// songIDsByMood is shared between SongRepository and mood-playlist
// generation so both use the identical case-insensitive match.
func songIDsByMood(ctx context.Context, s *store.Store, logger *log.Logger, mood string) []int64 {
	ids := []int64{}

	db, err := s.Conn(ctx)
	if err != nil {
		logger.Error("failed to get connection", "error", err)
		return ids
	}

	rows, err := db.QueryContext(ctx,
		"SELECT id FROM songs WHERE LOWER(mood) = LOWER(?) ORDER BY title", mood)
	if err != nil {
		logger.Error("failed to query song ids", "mood", mood, "error", err)
		return ids
	}
	defer rows.Close()

	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			logger.Error("failed to scan song id", "error", err)
			return []int64{}
		}
		ids = append(ids, id)
	}

	if err := rows.Err(); err != nil {
		logger.Error("row iteration error", "error", err)
		return []int64{}
	}

	return ids
}

// scanSong is a convenience for single-row song lookups.
func scanSong(row *sql.Row) (models.Song, error) {
	var song models.Song
	err := row.Scan(&song.ID, &song.Title, &song.Artist, &song.Mood, &song.Path)
	return song, err
}

// Get retrieves a single song by id.
func (r *SongRepository) Get(ctx context.Context, id int64) (models.Song, error) {
	db, err := r.store.Conn(ctx)
	if err != nil {
		return models.Song{}, err
	}

	song, err := scanSong(db.QueryRowContext(ctx,
		"SELECT id, title, artist, mood, path FROM songs WHERE id = ?", id))
	if err == sql.ErrNoRows {
		return models.Song{}, fmt.Errorf("%w: id %d", shared.ErrSongNotFound, id)
	}
	if err != nil {
		return models.Song{}, fmt.Errorf("failed to query song: %w", err)
	}

	return song, nil
}
