// package models defines the data model for the mood music library
package models

import (
	"fmt"
	"strings"

	"github.com/desertthunder/moodmusic/internal/shared"
)

// Mood classifies a song's emotional affect. Exactly five values are valid.
type Mood string

const (
	MoodHappy     Mood = "Happy"
	MoodSad       Mood = "Sad"
	MoodEnergetic Mood = "Energetic"
	MoodCalm      Mood = "Calm"
	MoodFocus     Mood = "Focus"
)

// Moods returns all valid moods in display order.
func Moods() []Mood {
	return []Mood{MoodHappy, MoodSad, MoodEnergetic, MoodCalm, MoodFocus}
}

// ParseMood resolves a case-insensitive mood name to its canonical value.
func ParseMood(s string) (Mood, error) {
	for _, m := range Moods() {
		if strings.EqualFold(string(m), s) {
			return m, nil
		}
	}
	return "", fmt.Errorf("%w: %q", shared.ErrInvalidMood, s)
}

// Valid reports whether m is one of the five known moods.
func (m Mood) Valid() bool {
	_, err := ParseMood(string(m))
	return err == nil
}

// Song is a library entry. Path may be empty, meaning no media is attached.
type Song struct {
	ID     int64  `json:"id"`
	Title  string `json:"title"`
	Artist string `json:"artist"`
	Mood   string `json:"mood"`
	Path   string `json:"path"`
}

// Validate checks the constraints enforced at the storage boundary.
//
// Title, artist and mood must be non-empty after trimming. Mood membership
// in the five-value set is the input layer's concern, not Validate's.
func (s Song) Validate() error {
	if strings.TrimSpace(s.Title) == "" {
		return shared.ErrEmptyTitle
	}
	if strings.TrimSpace(s.Artist) == "" {
		return shared.ErrEmptyArtist
	}
	if strings.TrimSpace(s.Mood) == "" {
		return shared.ErrEmptyMood
	}
	return nil
}

// Playlist is a named, ordered-by-insertion collection of songs.
type Playlist struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Validate checks that the playlist has a non-empty name.
func (p Playlist) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return shared.ErrEmptyName
	}
	return nil
}

// User is a credential-store account. PasswordHash holds the SHA-256 hex
// digest of the password; clear text is never persisted.
type User struct {
	Username     string `json:"username"`
	PasswordHash string `json:"-"`
	IsAdmin      bool   `json:"is_admin"`
}

// Session is the result of a successful authentication.
type Session struct {
	Token    string `json:"token"`
	Username string `json:"username"`
	IsAdmin  bool   `json:"is_admin"`
}
