package main

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/desertthunder/moodmusic/internal/shared"
	"github.com/desertthunder/moodmusic/internal/store"
	tu "github.com/desertthunder/moodmusic/internal/testing"
	"github.com/urfave/cli/v3"
)

// newTestRunner wires a Runner against a fresh database in a temp directory.
func newTestRunner(t *testing.T) (*Runner, *bytes.Buffer) {
	t.Helper()

	cfg := shared.DefaultConfig()
	cfg.Database.Path = filepath.Join(t.TempDir(), "moodmusic.db")

	logger := shared.NewLogger(io.Discard)
	s := store.New(cfg.Database, logger)
	t.Cleanup(func() { s.Close() })

	if err := s.InitAndSeed(context.Background()); err != nil {
		t.Fatalf("failed to initialize database: %v", err)
	}

	output := &bytes.Buffer{}
	runner := NewRunner(RunnerOpts{
		Config: cfg,
		Store:  s,
		Logger: logger,
		Output: output,
	})
	return runner, output
}

// run executes the full CLI command tree against the runner, capturing output.
func run(t *testing.T, r *Runner, args ...string) error {
	t.Helper()

	app := &cli.Command{
		Name:     "moodmusic",
		Commands: r.register(),
	}
	return app.Run(context.Background(), append([]string{"moodmusic"}, args...))
}

func TestRunner(t *testing.T) {
	t.Run("NewRunner", func(t *testing.T) {
		t.Run("with all dependencies provided", func(t *testing.T) {
			config := shared.DefaultConfig()
			logger := shared.NewLogger(nil)
			output := &bytes.Buffer{}
			s := store.New(config.Database, logger)

			runner := NewRunner(RunnerOpts{
				Config: config,
				Store:  s,
				Logger: logger,
				Output: output,
			})

			if runner.config != config {
				t.Error("expected config to be set")
			}
			if runner.store != s {
				t.Error("expected store to be set")
			}
			if runner.logger != logger {
				t.Error("expected logger to be set")
			}
			if runner.output != output {
				t.Error("expected output to be set")
			}
			if runner.songs == nil || runner.playlists == nil || runner.users == nil {
				t.Error("expected repositories to be wired")
			}
		})

		t.Run("with nil config uses defaults", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{})

			if runner.config == nil {
				t.Error("expected default config to be set")
			}
		})

		t.Run("with nil logger uses default", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{})

			if runner.logger == nil {
				t.Error("expected default logger to be set")
			}
		})

		t.Run("with nil output uses stdout", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{})

			if runner.output != os.Stdout {
				t.Error("expected output to default to os.Stdout")
			}
		})

		t.Run("with nil store builds one from config", func(t *testing.T) {
			config := shared.DefaultConfig()
			config.Database.Path = filepath.Join(t.TempDir(), "moodmusic.db")

			runner := NewRunner(RunnerOpts{Config: config})

			if runner.store == nil {
				t.Fatal("expected store to be created")
			}
			if runner.store.Path() != config.Database.Path {
				t.Errorf("expected store path %s, got %s", config.Database.Path, runner.store.Path())
			}
		})
	})

	t.Run("writeJSON", func(t *testing.T) {
		t.Run("writes formatted JSON successfully", func(t *testing.T) {
			output := &bytes.Buffer{}
			runner := NewRunner(RunnerOpts{Output: output})

			data := map[string]string{"key": "value"}
			err := runner.writeJSON(data, true)

			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			result := output.String()
			if !strings.Contains(result, `"key": "value"`) {
				t.Errorf("expected formatted JSON, got %s", result)
			}
			if !strings.HasSuffix(result, "\n") {
				t.Error("expected output to end with newline")
			}
		})

		t.Run("writes compact JSON successfully", func(t *testing.T) {
			output := &bytes.Buffer{}
			runner := NewRunner(RunnerOpts{Output: output})

			data := map[string]string{"key": "value"}
			err := runner.writeJSON(data, false)

			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			result := output.String()
			expected := `{"key":"value"}` + "\n"
			if result != expected {
				t.Errorf("expected %q, got %q", expected, result)
			}
		})

		t.Run("handles marshal error with non-serializable data", func(t *testing.T) {
			output := &bytes.Buffer{}
			runner := NewRunner(RunnerOpts{Output: output})

			// channels cannot be marshaled to JSON
			data := make(chan int)
			err := runner.writeJSON(data, false)

			if err == nil {
				t.Fatal("expected error for non-serializable data")
			}
			if !strings.Contains(err.Error(), "failed to marshal JSON") {
				t.Errorf("expected marshal error, got %v", err)
			}
		})

		t.Run("handles write failure", func(t *testing.T) {
			failing := &tu.FWriter{}
			runner := NewRunner(RunnerOpts{Output: failing})

			data := map[string]string{"key": "value"}
			err := runner.writeJSON(data, false)

			if err == nil {
				t.Fatal("expected error from failing writer")
			}
			if !strings.Contains(err.Error(), "failed to write output") {
				t.Errorf("expected write error, got %v", err)
			}
		})

		t.Run("handles newline write failure", func(t *testing.T) {
			data := map[string]string{"key": "value"}
			limitedWriter := tu.NewLimitedWriter(1, 0, &bytes.Buffer{})
			runner := NewRunner(RunnerOpts{Output: &limitedWriter})

			err := runner.writeJSON(data, false)

			if err == nil {
				t.Fatal("expected error writing newline")
			}
			if !strings.Contains(err.Error(), "failed to write newline") {
				t.Errorf("expected newline write error, got %v", err)
			}
		})
	})

	t.Run("writePlain", func(t *testing.T) {
		t.Run("writes plain text successfully", func(t *testing.T) {
			output := &bytes.Buffer{}
			runner := NewRunner(RunnerOpts{Output: output})

			err := runner.writePlain("hello %s", "world")

			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			result := output.String()
			if result != "hello world" {
				t.Errorf("expected 'hello world', got %q", result)
			}
		})

		t.Run("handles write failure", func(t *testing.T) {
			failing := &tu.FWriter{}
			runner := NewRunner(RunnerOpts{Output: failing})

			err := runner.writePlain("test")

			if err == nil {
				t.Fatal("expected error from failing writer")
			}
			if !strings.Contains(err.Error(), "failed to write output") {
				t.Errorf("expected write error, got %v", err)
			}
		})
	})

	t.Run("register", func(t *testing.T) {
		runner := NewRunner(RunnerOpts{})
		commands := runner.register()

		if len(commands) == 0 {
			t.Error("expected at least one command to be registered")
		}

		for i, cmd := range commands {
			if cmd == nil {
				t.Errorf("command at index %d is nil", i)
			}
		}
	})
}

func TestSongCommands(t *testing.T) {
	t.Run("list shows seeded songs", func(t *testing.T) {
		runner, output := newTestRunner(t)

		if err := run(t, runner, "song", "list"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		result := output.String()
		if !strings.Contains(result, "Sunshine Drive") {
			t.Errorf("expected seeded songs in output, got %s", result)
		}
		if !strings.Contains(result, "Found 5 song(s)") {
			t.Errorf("expected 5 songs, got %s", result)
		}
	})

	t.Run("list filters by mood", func(t *testing.T) {
		runner, output := newTestRunner(t)

		if err := run(t, runner, "song", "list", "--mood", "Calm"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		result := output.String()
		if !strings.Contains(result, "Midnight Thought") {
			t.Errorf("expected calm song in output, got %s", result)
		}
		if strings.Contains(result, "Sunshine Drive") {
			t.Errorf("unexpected happy song in output, got %s", result)
		}
	})

	t.Run("list rejects unknown mood", func(t *testing.T) {
		runner, _ := newTestRunner(t)

		if err := run(t, runner, "song", "list", "--mood", "Melancholy"); err == nil {
			t.Error("expected error for unknown mood")
		}
	})

	t.Run("list outputs JSON", func(t *testing.T) {
		runner, output := newTestRunner(t)

		if err := run(t, runner, "song", "list", "--json"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		if !strings.Contains(output.String(), `"Sunshine Drive"`) {
			t.Errorf("expected JSON output, got %s", output.String())
		}
	})

	t.Run("add then delete", func(t *testing.T) {
		runner, output := newTestRunner(t)

		err := run(t, runner, "song", "add",
			"--title", "New Dawn", "--artist", "Testers", "--mood", "Happy")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if !strings.Contains(output.String(), "✓ Added song") {
			t.Errorf("expected confirmation, got %s", output.String())
		}

		if got := len(runner.songs.All(context.Background())); got != 6 {
			t.Fatalf("expected 6 songs after add, got %d", got)
		}

		if err := run(t, runner, "song", "delete", "--id", "6"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		if got := len(runner.songs.All(context.Background())); got != 5 {
			t.Errorf("expected 5 songs after delete, got %d", got)
		}
	})

	t.Run("add rejects unknown mood", func(t *testing.T) {
		runner, _ := newTestRunner(t)

		err := run(t, runner, "song", "add",
			"--title", "X", "--artist", "Y", "--mood", "Melancholy")
		if err == nil {
			t.Error("expected error for unknown mood")
		}
	})

	t.Run("update keeps unset fields", func(t *testing.T) {
		runner, _ := newTestRunner(t)

		if err := run(t, runner, "song", "update", "--id", "1", "--title", "Sunrise Drive"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		song, err := runner.songs.Get(context.Background(), 1)
		if err != nil {
			t.Fatalf("failed to load song: %v", err)
		}
		if song.Title != "Sunrise Drive" {
			t.Errorf("expected updated title, got %s", song.Title)
		}
		if song.Artist != "Neon Roads" {
			t.Errorf("expected artist unchanged, got %s", song.Artist)
		}
	})

	t.Run("update nonexistent id fails", func(t *testing.T) {
		runner, _ := newTestRunner(t)

		if err := run(t, runner, "song", "update", "--id", "999", "--title", "X"); err == nil {
			t.Error("expected error for unknown song")
		}
	})
}

func TestPlaylistCommands(t *testing.T) {
	t.Run("create list show add", func(t *testing.T) {
		runner, output := newTestRunner(t)

		if err := run(t, runner, "playlist", "create", "Workout"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		output.Reset()
		if err := run(t, runner, "playlist", "list"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if !strings.Contains(output.String(), "Workout") {
			t.Errorf("expected playlist name in listing, got %s", output.String())
		}

		if err := run(t, runner, "playlist", "add", "--playlist", "Workout", "--song-id", "3"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		output.Reset()
		if err := run(t, runner, "playlist", "show", "Workout"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if !strings.Contains(output.String(), "Run Wild") {
			t.Errorf("expected song in playlist output, got %s", output.String())
		}
	})

	t.Run("add rejects unknown song", func(t *testing.T) {
		runner, _ := newTestRunner(t)

		if err := run(t, runner, "playlist", "add", "--playlist", "Workout", "--song-id", "999"); err == nil {
			t.Error("expected error for unknown song id")
		}
	})

	t.Run("show empty playlist", func(t *testing.T) {
		runner, output := newTestRunner(t)

		if err := run(t, runner, "playlist", "show", "Nothing"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if !strings.Contains(output.String(), "is empty") {
			t.Errorf("expected empty notice, got %s", output.String())
		}
	})

	t.Run("generate from mood", func(t *testing.T) {
		runner, output := newTestRunner(t)

		if err := run(t, runner, "playlist", "generate", "--mood", "Happy"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		result := output.String()
		if !strings.Contains(result, "Happy_playlist_") {
			t.Errorf("expected generated playlist name, got %s", result)
		}
		if !strings.Contains(result, "1 song(s)") {
			t.Errorf("expected one matched song, got %s", result)
		}
	})

	t.Run("generate rejects unknown mood", func(t *testing.T) {
		runner, _ := newTestRunner(t)

		if err := run(t, runner, "playlist", "generate", "--mood", "Gloomy"); err == nil {
			t.Error("expected error for unknown mood")
		}
	})
}

func TestAuthCommands(t *testing.T) {
	t.Run("admin login", func(t *testing.T) {
		runner, output := newTestRunner(t)

		err := run(t, runner, "auth", "login",
			"--username", store.DefaultAdminUsername, "--password", store.DefaultAdminPassword)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		result := output.String()
		if !strings.Contains(result, "✓ Logged in as admin") {
			t.Errorf("expected login confirmation, got %s", result)
		}
		if !strings.Contains(result, "administrator") {
			t.Errorf("expected admin role in output, got %s", result)
		}
	})

	t.Run("rejects bad password", func(t *testing.T) {
		runner, _ := newTestRunner(t)

		err := run(t, runner, "auth", "login", "--username", "admin", "--password", "wrong")
		if err == nil {
			t.Error("expected error for bad credentials")
		}
	})

	t.Run("register then login", func(t *testing.T) {
		runner, output := newTestRunner(t)

		if err := run(t, runner, "auth", "register", "--username", "listener", "--password", "hunter2"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if !strings.Contains(output.String(), "✓ Account created for listener") {
			t.Errorf("expected registration confirmation, got %s", output.String())
		}

		output.Reset()
		if err := run(t, runner, "auth", "login", "--username", "listener", "--password", "hunter2"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if strings.Contains(output.String(), "administrator") {
			t.Error("new accounts should not be administrators")
		}
	})

	t.Run("rejects duplicate registration", func(t *testing.T) {
		runner, _ := newTestRunner(t)

		if err := run(t, runner, "auth", "register", "--username", "listener", "--password", "one"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if err := run(t, runner, "auth", "register", "--username", "listener", "--password", "two"); err == nil {
			t.Error("expected error for duplicate username")
		}
	})
}

func TestSetupCommand(t *testing.T) {
	t.Run("creates config and database", func(t *testing.T) {
		tmpDir := t.TempDir()
		configPath := filepath.Join(tmpDir, "config.toml")
		dbPath := filepath.Join(tmpDir, "moodmusic.db")

		// Template config points at data/moodmusic.db; rewrite it for the temp dir.
		if err := shared.CreateConfigFile(configPath); err != nil {
			t.Fatalf("failed to create config: %v", err)
		}
		raw, err := os.ReadFile(configPath)
		if err != nil {
			t.Fatalf("failed to read config: %v", err)
		}
		patched := strings.Replace(string(raw), "data/moodmusic.db", dbPath, 1)
		if err := os.WriteFile(configPath, []byte(patched), 0644); err != nil {
			t.Fatalf("failed to patch config: %v", err)
		}

		runner := NewRunner(RunnerOpts{
			Logger: shared.NewLogger(io.Discard),
			Output: &bytes.Buffer{},
		})

		if err := run(t, runner, "setup", "database", "--config", configPath); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		if _, err := os.Stat(dbPath); err != nil {
			t.Errorf("expected database file to exist: %v", err)
		}
	})

	t.Run("no-seed skips sample songs", func(t *testing.T) {
		tmpDir := t.TempDir()
		configPath := filepath.Join(tmpDir, "config.toml")
		dbPath := filepath.Join(tmpDir, "moodmusic.db")

		if err := shared.CreateConfigFile(configPath); err != nil {
			t.Fatalf("failed to create config: %v", err)
		}
		raw, err := os.ReadFile(configPath)
		if err != nil {
			t.Fatalf("failed to read config: %v", err)
		}
		patched := strings.Replace(string(raw), "data/moodmusic.db", dbPath, 1)
		if err := os.WriteFile(configPath, []byte(patched), 0644); err != nil {
			t.Fatalf("failed to patch config: %v", err)
		}

		runner := NewRunner(RunnerOpts{
			Logger: shared.NewLogger(io.Discard),
			Output: &bytes.Buffer{},
		})

		if err := run(t, runner, "setup", "database", "--config", configPath, "--no-seed"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		cfg := shared.DefaultConfig()
		cfg.Database.Path = dbPath
		s := store.New(cfg.Database, shared.NewLogger(io.Discard))
		defer s.Close()

		db, err := s.Conn(context.Background())
		if err != nil {
			t.Fatalf("failed to open database: %v", err)
		}

		var count int
		if err := db.QueryRow("SELECT COUNT(*) FROM songs").Scan(&count); err != nil {
			t.Fatalf("failed to count songs: %v", err)
		}
		if count != 0 {
			t.Errorf("expected 0 songs with --no-seed, got %d", count)
		}
	})
}
