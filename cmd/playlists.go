package main

import (
	"context"
	"fmt"
	"time"

	"github.com/desertthunder/moodmusic/internal/shared"
	"github.com/urfave/cli/v3"
)

// PlaylistCreate creates a named playlist, reusing it if it already exists.
func (r *Runner) PlaylistCreate(ctx context.Context, cmd *cli.Command) error {
	name := cmd.StringArg("name")
	if name == "" {
		return fmt.Errorf("%w: playlist name is required", shared.ErrInvalidInput)
	}

	id, err := r.playlists.Create(ctx, name)
	if err != nil {
		return fmt.Errorf("failed to create playlist: %w", err)
	}

	r.logger.Info("playlist ready", "id", id, "name", name)
	return r.writePlain("✓ Playlist %q ready [%d]\n", name, id)
}

// PlaylistList prints all playlist names alphabetically.
func (r *Runner) PlaylistList(ctx context.Context, cmd *cli.Command) error {
	names := r.playlists.Names(ctx)

	if len(names) == 0 {
		return r.writePlain("No playlists found\n")
	}

	r.writePlain("Found %d playlist(s):\n\n", len(names))
	for _, name := range names {
		r.writePlain("  %s\n", name)
	}

	return nil
}

// PlaylistShow lists the songs in a playlist.
func (r *Runner) PlaylistShow(ctx context.Context, cmd *cli.Command) error {
	name := cmd.StringArg("name")
	useJSON := cmd.Bool("json")
	pretty := cmd.Bool("pretty")

	if name == "" {
		return fmt.Errorf("%w: playlist name is required", shared.ErrInvalidInput)
	}

	songs := r.playlists.SongsFor(ctx, name)

	if useJSON {
		return r.writeJSON(songs, pretty)
	}

	if len(songs) == 0 {
		return r.writePlain("Playlist %q is empty\n", name)
	}

	r.writePlain("%s (%d song(s)):\n\n", name, len(songs))
	for _, song := range songs {
		r.writePlain("  [%d] %s — %s (%s)\n", song.ID, song.Title, song.Artist, song.Mood)
	}

	return nil
}

// PlaylistAdd adds a song to a playlist by name, creating the playlist if needed.
func (r *Runner) PlaylistAdd(ctx context.Context, cmd *cli.Command) error {
	name := cmd.String("playlist")
	songID := cmd.Int64("song-id")

	if _, err := r.songs.Get(ctx, songID); err != nil {
		return err
	}

	if err := r.playlists.AddSongByName(ctx, name, songID); err != nil {
		return fmt.Errorf("failed to add song to playlist: %w", err)
	}

	r.logger.Info("song added to playlist", "playlist", name, "song_id", songID)
	return r.writePlain("✓ Added song [%d] to %q\n", songID, name)
}

// PlaylistGenerate creates a timestamped playlist from every song matching a mood.
func (r *Runner) PlaylistGenerate(ctx context.Context, cmd *cli.Command) error {
	mood := cmd.String("mood")

	generated, err := r.playlists.GenerateForMood(ctx, mood, time.Now())
	if err != nil {
		return fmt.Errorf("failed to generate playlist: %w", err)
	}

	r.logger.Info("playlist generated", "name", generated.Name, "songs", generated.Count)

	r.writePlain("✓ Generated %q with %d song(s)\n", generated.Name, generated.Count)
	if generated.Count == 0 {
		r.writePlain("No songs matched mood %q; the playlist was created empty\n", mood)
	}

	return nil
}
