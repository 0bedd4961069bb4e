package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/mattn/go-sqlite3"
	"golang.org/x/time/rate"

	"github.com/desertthunder/moodmusic/internal/models"
	"github.com/desertthunder/moodmusic/internal/shared"
	"github.com/desertthunder/moodmusic/internal/store"
)

// Login throttle: a short burst, then one attempt per second.
const loginBurst = 5

// UserRepository is the credential store: registration and authentication
// over the users table. Passwords are digested before storage and before
// comparison; clear text never touches the table.
type UserRepository struct {
	store   *store.Store
	logger  *log.Logger
	limiter *rate.Limiter
}

// NewUserRepository creates a new UserRepository backed by the given store.
func NewUserRepository(s *store.Store, logger *log.Logger) *UserRepository {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &UserRepository{
		store:   s,
		logger:  shared.WithLogger(logger, "repository", "users"),
		limiter: rate.NewLimiter(rate.Limit(1), loginBurst),
	}
}

// Register inserts a new non-admin account.
//
// An existing username is rejected with [shared.ErrUserExists], never
// overwritten.
func (r *UserRepository) Register(ctx context.Context, username, password string) error {
	username = strings.TrimSpace(username)
	if username == "" {
		return shared.ErrEmptyUsername
	}
	if password == "" {
		return shared.ErrEmptyPassword
	}

	db, err := r.store.Conn(ctx)
	if err != nil {
		return err
	}

	_, err = db.ExecContext(ctx,
		"INSERT INTO users (username, password_hash, is_admin) VALUES (?, ?, 0)",
		username, shared.HashPassword(password))
	if err != nil {
		var sqliteErr sqlite3.Error
		if errors.As(err, &sqliteErr) && sqliteErr.Code == sqlite3.ErrConstraint {
			return fmt.Errorf("%w: %s", shared.ErrUserExists, username)
		}
		return fmt.Errorf("failed to register user: %w", err)
	}

	r.logger.Info("user registered", "username", username)
	return nil
}

// Authenticate verifies a username/password pair and mints a session.
//
// Failed lookups and wrong passwords are indistinguishable to the caller:
// both return [shared.ErrInvalidCredentials]. Attempts are rate limited;
// beyond the burst, callers get [shared.ErrTooManyAttempts] without the
// users table being consulted at all.
func (r *UserRepository) Authenticate(ctx context.Context, username, password string) (*models.Session, error) {
	if !r.limiter.Allow() {
		r.logger.Warn("login throttled", "username", username)
		return nil, shared.ErrTooManyAttempts
	}

	db, err := r.store.Conn(ctx)
	if err != nil {
		return nil, err
	}

	var user models.User
	err = db.QueryRowContext(ctx,
		"SELECT username, is_admin FROM users WHERE username = ? AND password_hash = ?",
		strings.TrimSpace(username), shared.HashPassword(password),
	).Scan(&user.Username, &user.IsAdmin)
	if err == sql.ErrNoRows {
		return nil, shared.ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query user: %w", err)
	}

	r.logger.Info("login successful", "username", user.Username, "admin", user.IsAdmin)

	return &models.Session{
		Token:    shared.GenerateToken(),
		Username: user.Username,
		IsAdmin:  user.IsAdmin,
	}, nil
}
