package shared

import "fmt"

var (
	// Configuration errors
	ErrMissingConfig = fmt.Errorf("configuration not found")
	ErrInvalidConfig = fmt.Errorf("invalid configuration")

	// Database errors
	ErrConnectionFailed = fmt.Errorf("database connection failed")
	ErrInitFailed       = fmt.Errorf("database initialization failed")
	ErrInterrupted      = fmt.Errorf("operation interrupted")

	// Authentication errors
	ErrInvalidCredentials = fmt.Errorf("invalid username or password")
	ErrUserExists         = fmt.Errorf("username already exists")
	ErrTooManyAttempts    = fmt.Errorf("too many login attempts")

	// Input validation errors
	ErrInvalidInput  = fmt.Errorf("invalid input")
	ErrEmptyTitle    = fmt.Errorf("title cannot be empty")
	ErrEmptyArtist   = fmt.Errorf("artist cannot be empty")
	ErrEmptyMood     = fmt.Errorf("mood must be selected")
	ErrInvalidMood   = fmt.Errorf("unknown mood")
	ErrEmptyName     = fmt.Errorf("name cannot be empty")
	ErrEmptyUsername = fmt.Errorf("username cannot be empty")
	ErrEmptyPassword = fmt.Errorf("password cannot be empty")

	// Lookup errors
	ErrSongNotFound     = fmt.Errorf("song not found")
	ErrPlaylistNotFound = fmt.Errorf("playlist not found")
)
