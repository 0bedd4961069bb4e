package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/desertthunder/moodmusic/internal/models"
	"github.com/urfave/cli/v3"
)

// SongList lists the library, optionally filtered by mood.
func (r *Runner) SongList(ctx context.Context, cmd *cli.Command) error {
	mood := cmd.String("mood")
	useJSON := cmd.Bool("json")
	pretty := cmd.Bool("pretty")

	var songs []models.Song
	if mood != "" {
		if _, err := models.ParseMood(mood); err != nil {
			return err
		}
		r.logger.Infof("listing songs for mood %v", mood)
		songs = r.songs.ByMood(ctx, mood)
	} else {
		r.logger.Info("listing all songs")
		songs = r.songs.All(ctx)
	}

	if useJSON {
		return r.writeJSON(songs, pretty)
	}

	if len(songs) == 0 {
		return r.writePlain("No songs found\n")
	}

	r.writePlain("Found %d song(s):\n\n", len(songs))
	for _, song := range songs {
		r.writePlain("  [%d] %s — %s (%s)\n", song.ID, song.Title, song.Artist, song.Mood)
	}

	return nil
}

// SongAdd inserts a new song into the library.
func (r *Runner) SongAdd(ctx context.Context, cmd *cli.Command) error {
	title := cmd.String("title")
	artist := cmd.String("artist")
	mood := cmd.String("mood")
	path := cmd.String("path")

	parsed, err := models.ParseMood(mood)
	if err != nil {
		return fmt.Errorf("valid moods are %s: %w", strings.Join(moodNames(), ", "), err)
	}

	id, err := r.songs.Insert(ctx, title, artist, string(parsed), path)
	if err != nil {
		return fmt.Errorf("failed to add song: %w", err)
	}

	r.logger.Info("song added", "id", id, "title", title)
	return r.writePlain("✓ Added song [%d] %s — %s\n", id, title, artist)
}

// SongUpdate updates the mutable fields of an existing song.
//
// Flags left unset keep the stored value.
func (r *Runner) SongUpdate(ctx context.Context, cmd *cli.Command) error {
	id := cmd.Int64("id")

	song, err := r.songs.Get(ctx, id)
	if err != nil {
		return err
	}

	if title := cmd.String("title"); title != "" {
		song.Title = title
	}
	if artist := cmd.String("artist"); artist != "" {
		song.Artist = artist
	}
	if mood := cmd.String("mood"); mood != "" {
		parsed, err := models.ParseMood(mood)
		if err != nil {
			return err
		}
		song.Mood = string(parsed)
	}
	if path := cmd.String("path"); path != "" {
		song.Path = path
	}

	if err := r.songs.Update(ctx, song); err != nil {
		return fmt.Errorf("failed to update song: %w", err)
	}

	return r.writePlain("✓ Updated song [%d] %s — %s\n", song.ID, song.Title, song.Artist)
}

// SongDelete removes a song and its playlist memberships.
func (r *Runner) SongDelete(ctx context.Context, cmd *cli.Command) error {
	id := cmd.Int64("id")

	if err := r.songs.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete song: %w", err)
	}

	r.logger.Info("song deleted", "id", id)
	return r.writePlain("✓ Deleted song [%d]\n", id)
}

func moodNames() []string {
	moods := models.Moods()
	names := make([]string, len(moods))
	for i, m := range moods {
		names[i] = string(m)
	}
	return names
}
