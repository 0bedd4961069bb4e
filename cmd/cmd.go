// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

// setupCommand handles setup operations for database and seed data.
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Setup and configuration commands",
		Commands: []*cli.Command{
			{
				Name:  "database",
				Usage: "Initialize database schema and seed data",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "config",
						Aliases: []string{"c"},
						Usage:   "Path to configuration file",
						Value:   "config.toml",
					},
					&cli.BoolFlag{
						Name:  "no-seed",
						Usage: "Skip inserting sample songs",
					},
				},
				Action: r.SetupDatabase,
			},
		},
	}
}

// songCommand handles song library operations
func songCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "song",
		Aliases: []string{"songs"},
		Usage:   "Manage the song library",
		Commands: []*cli.Command{
			{
				Name:  "list",
				Usage: "List songs, optionally filtered by mood",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "mood",
						Aliases: []string{"m"},
						Usage:   "Filter by mood (Happy, Sad, Energetic, Calm, Focus)",
					},
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
					&cli.BoolFlag{
						Name:  "pretty",
						Usage: "Pretty-print output",
						Value: true,
					},
				},
				Action: r.SongList,
			},
			{
				Name:  "add",
				Usage: "Add a song to the library",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "title",
						Usage:    "Song title",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "artist",
						Usage:    "Artist name",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "mood",
						Aliases:  []string{"m"},
						Usage:    "Mood label (Happy, Sad, Energetic, Calm, Focus)",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "path",
						Usage: "Path to the audio file",
					},
				},
				Action: r.SongAdd,
			},
			{
				Name:  "update",
				Usage: "Update an existing song",
				Flags: []cli.Flag{
					&cli.Int64Flag{
						Name:     "id",
						Usage:    "Song ID",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "title",
						Usage: "New title",
					},
					&cli.StringFlag{
						Name:  "artist",
						Usage: "New artist",
					},
					&cli.StringFlag{
						Name:    "mood",
						Aliases: []string{"m"},
						Usage:   "New mood",
					},
					&cli.StringFlag{
						Name:  "path",
						Usage: "New file path",
					},
				},
				Action: r.SongUpdate,
			},
			{
				Name:    "delete",
				Aliases: []string{"rm"},
				Usage:   "Remove a song from the library",
				Flags: []cli.Flag{
					&cli.Int64Flag{
						Name:     "id",
						Usage:    "Song ID",
						Required: true,
					},
				},
				Action: r.SongDelete,
			},
		},
	}
}

// playlistCommand handles playlist operations
func playlistCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "playlist",
		Aliases: []string{"pl"},
		Usage:   "Manage playlists",
		Commands: []*cli.Command{
			{
				Name:  "create",
				Usage: "Create a playlist",
				Arguments: []cli.Argument{
					&cli.StringArg{
						Name: "name",
					},
				},
				Action: r.PlaylistCreate,
			},
			{
				Name:   "list",
				Usage:  "List playlist names",
				Action: r.PlaylistList,
			},
			{
				Name:  "show",
				Usage: "Show the songs in a playlist",
				Arguments: []cli.Argument{
					&cli.StringArg{
						Name: "name",
					},
				},
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
					&cli.BoolFlag{
						Name:  "pretty",
						Usage: "Pretty-print output",
						Value: true,
					},
				},
				Action: r.PlaylistShow,
			},
			{
				Name:  "add",
				Usage: "Add a song to a playlist",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "playlist",
						Aliases:  []string{"p"},
						Usage:    "Playlist name",
						Required: true,
					},
					&cli.Int64Flag{
						Name:     "song-id",
						Usage:    "Song ID to add",
						Required: true,
					},
				},
				Action: r.PlaylistAdd,
			},
			{
				Name:  "generate",
				Usage: "Generate a playlist from all songs matching a mood",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "mood",
						Aliases:  []string{"m"},
						Usage:    "Mood to match (Happy, Sad, Energetic, Calm, Focus)",
						Required: true,
					},
				},
				Action: r.PlaylistGenerate,
			},
		},
	}
}

// authCommand handles user credential operations
func authCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "auth",
		Usage: "Manage user accounts",
		Commands: []*cli.Command{
			{
				Name:  "login",
				Usage: "Authenticate with username and password",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "username",
						Aliases:  []string{"u"},
						Usage:    "Username",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "password",
						Aliases:  []string{"p"},
						Usage:    "Password",
						Required: true,
					},
				},
				Action: r.AuthLogin,
			},
			{
				Name:  "register",
				Usage: "Create a new user account",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "username",
						Aliases:  []string{"u"},
						Usage:    "Username",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "password",
						Aliases:  []string{"p"},
						Usage:    "Password",
						Required: true,
					},
				},
				Action: r.AuthRegister,
			},
		},
	}
}
