package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/desertthunder/moodmusic/internal/shared"
	"github.com/urfave/cli/v3"
)

// AuthLogin verifies a username and password against stored credentials.
func (r *Runner) AuthLogin(ctx context.Context, cmd *cli.Command) error {
	username := cmd.String("username")
	password := cmd.String("password")

	r.logger.Infof("authenticating user %v", username)

	session, err := r.users.Authenticate(ctx, username, password)
	if err != nil {
		if errors.Is(err, shared.ErrInvalidCredentials) {
			return fmt.Errorf("%w: check your username and password", err)
		}
		return err
	}

	r.writePlain("✓ Logged in as %s\n", session.Username)
	if session.IsAdmin {
		r.writePlain("Role: administrator\n")
	}
	r.writePlain("Session: %s\n", session.Token)

	return nil
}

// AuthRegister creates a new non-admin user account.
func (r *Runner) AuthRegister(ctx context.Context, cmd *cli.Command) error {
	username := cmd.String("username")
	password := cmd.String("password")

	if err := r.users.Register(ctx, username, password); err != nil {
		if errors.Is(err, shared.ErrUserExists) {
			return fmt.Errorf("%w: choose a different username", err)
		}
		return fmt.Errorf("failed to register user: %w", err)
	}

	r.logger.Info("user registered", "username", username)
	return r.writePlain("✓ Account created for %s\n", username)
}
