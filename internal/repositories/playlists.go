package repositories

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/desertthunder/moodmusic/internal/models"
	"github.com/desertthunder/moodmusic/internal/shared"
	"github.com/desertthunder/moodmusic/internal/store"
)

// generatedNameLayout is the timestamp suffix for generated playlist names.
const generatedNameLayout = "20060102_1504"

// PlaylistRepository handles persistence for [models.Playlist] and
// playlist-song membership.
type PlaylistRepository struct {
	store  *store.Store
	logger *log.Logger
}

// NewPlaylistRepository creates a new PlaylistRepository backed by the given store.
func NewPlaylistRepository(s *store.Store, logger *log.Logger) *PlaylistRepository {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &PlaylistRepository{store: s, logger: shared.WithLogger(logger, "repository", "playlists")}
}

// Create inserts a playlist and returns its id.
//
// Creation is idempotent on the unique name: if the playlist already
// exists, the existing row's id is returned and no new row is written.
func (r *PlaylistRepository) Create(ctx context.Context, name string) (int64, error) {
	playlist := models.Playlist{Name: strings.TrimSpace(name)}
	if err := playlist.Validate(); err != nil {
		return 0, err
	}

	db, err := r.store.Conn(ctx)
	if err != nil {
		return 0, err
	}

	result, err := db.ExecContext(ctx,
		"INSERT OR IGNORE INTO playlists (name) VALUES (?)", playlist.Name)
	if err != nil {
		return 0, fmt.Errorf("failed to create playlist: %w", err)
	}

	if rows, err := result.RowsAffected(); err == nil && rows > 0 {
		id, err := result.LastInsertId()
		if err != nil {
			return 0, fmt.Errorf("failed to read generated id: %w", err)
		}
		return id, nil
	}

	// Insert was ignored: the name already exists, return its id.
	var id int64
	err = db.QueryRowContext(ctx, "SELECT id FROM playlists WHERE name = ?", playlist.Name).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to look up existing playlist: %w", err)
	}

	return id, nil
}

// AddSong records (playlistID, songID) membership. Re-adding an existing
// pair is a no-op; both sides must reference live rows.
func (r *PlaylistRepository) AddSong(ctx context.Context, playlistID, songID int64) error {
	db, err := r.store.Conn(ctx)
	if err != nil {
		return err
	}

	_, err = db.ExecContext(ctx,
		"INSERT OR IGNORE INTO playlist_songs (playlist_id, song_id) VALUES (?, ?)",
		playlistID, songID)
	if err != nil {
		return fmt.Errorf("failed to add song %d to playlist %d: %w", songID, playlistID, err)
	}

	return nil
}

// AddSongByName resolves (or creates) the named playlist, then adds the song.
func (r *PlaylistRepository) AddSongByName(ctx context.Context, name string, songID int64) error {
	id, err := r.Create(ctx, name)
	if err != nil {
		return err
	}
	return r.AddSong(ctx, id, songID)
}

// Names returns all playlist names in alphabetical order.
// Empty on storage error (logged).
func (r *PlaylistRepository) Names(ctx context.Context) []string {
	names := []string{}

	db, err := r.store.Conn(ctx)
	if err != nil {
		r.logger.Error("failed to get connection", "error", err)
		return names
	}

	rows, err := db.QueryContext(ctx, "SELECT name FROM playlists ORDER BY name")
	if err != nil {
		r.logger.Error("failed to query playlist names", "error", err)
		return names
	}
	defer rows.Close()

	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			r.logger.Error("failed to scan playlist name", "error", err)
			return []string{}
		}
		names = append(names, name)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error("row iteration error", "error", err)
		return []string{}
	}

	return names
}

// SongsFor returns the songs belonging to the named playlist, joined
// through membership. Empty on storage error (logged) or unknown name.
func (r *PlaylistRepository) SongsFor(ctx context.Context, name string) []models.Song {
	songs := []models.Song{}

	db, err := r.store.Conn(ctx)
	if err != nil {
		r.logger.Error("failed to get connection", "error", err)
		return songs
	}

	rows, err := db.QueryContext(ctx, `
		SELECT s.id, s.title, s.artist, s.mood, s.path
		FROM songs s
		JOIN playlist_songs ps ON s.id = ps.song_id
		JOIN playlists p ON p.id = ps.playlist_id
		WHERE p.name = ?`, name)
	if err != nil {
		r.logger.Error("failed to query playlist songs", "playlist", name, "error", err)
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

// GeneratedPlaylist describes the outcome of mood-playlist generation.
type GeneratedPlaylist struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// GenerateForMood creates a playlist named <mood>_playlist_<timestamp> and
// fills it with every song matching the mood (case-insensitive).
//
// A playlist with zero members is still created when nothing matches; the
// caller decides how to report that. The timestamp comes from now so
// callers (and tests) control naming.
func (r *PlaylistRepository) GenerateForMood(ctx context.Context, mood string, now time.Time) (*GeneratedPlaylist, error) {
	canonical, err := models.ParseMood(mood)
	if err != nil {
		return nil, err
	}

	name := fmt.Sprintf("%s_playlist_%s", canonical, now.Format(generatedNameLayout))

	id, err := r.Create(ctx, name)
	if err != nil {
		return nil, err
	}

	ids := songIDsByMood(ctx, r.store, r.logger, string(canonical))
	added := 0
	for _, songID := range ids {
		if err := r.AddSong(ctx, id, songID); err != nil {
			// Membership failures are non-fatal; the playlist survives
			// with the songs that did make it in.
			r.logger.Warn("failed to add song to generated playlist", "song", songID, "playlist", name, "error", err)
			continue
		}
		added++
	}

	return &GeneratedPlaylist{ID: id, Name: name, Count: added}, nil
}
