// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Initialize configuration and storage",
		Commands: []*cli.Command{
			{
				Name:  "database",
				Usage: "Create config.toml if missing, then create the database and run migrations",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "path",
						Usage: "Database file path (overrides database.path)",
					},
				},
				Action: r.SetupDatabase,
			},
		},
	}
}

// playlistCommand manages the local playlist collection
func playlistCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "playlist",
		Aliases: []string{"pl"},
		Usage:   "Manage local playlists",
		Commands: []*cli.Command{
			{
				Name:  "list",
				Usage: "List playlists",
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
				Action: r.PlaylistList,
			},
			{
				Name:  "show",
				Usage: "Show the songs in a playlist",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "playlist"},
				},
				Action: r.PlaylistShow,
			},
			{
				Name:  "create",
				Usage: "Create an empty playlist",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "name"},
				},
				Action: r.PlaylistCreate,
			},
			{
				Name:  "delete",
				Usage: "Delete a playlist and all its songs",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "playlist"},
				},
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:    "yes",
						Aliases: []string{"y"},
						Usage:   "Skip confirmation",
					},
				},
				Action: r.PlaylistDelete,
			},
			{
				Name:  "move",
				Usage: "Move a song one position up or down",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "playlist"},
					&cli.StringArg{Name: "position"},
					&cli.StringArg{Name: "direction"},
				},
				Action: r.PlaylistMove,
			},
			{
				Name:  "remove",
				Usage: "Remove a song from a playlist",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "playlist"},
					&cli.StringArg{Name: "position"},
				},
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:    "yes",
						Aliases: []string{"y"},
						Usage:   "Skip confirmation",
					},
				},
				Action: r.PlaylistRemove,
			},
			{
				Name:  "export",
				Usage: "Export a playlist as csv, markdown, text or json",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "playlist"},
				},
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "format",
						Aliases: []string{"f"},
						Usage:   "Export format (csv, markdown, text, json)",
						Value:   "text",
					},
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Output path; prints to stdout when empty",
					},
					&cli.BoolFlag{
						Name:  "all",
						Usage: "Export every playlist into the --output directory",
					},
					&cli.IntFlag{
						Name:  "workers",
						Usage: "Concurrent export workers for --all",
						Value: 5,
					},
				},
				Action: r.PlaylistExport,
			},
		},
	}
}

func songCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "song",
		Usage: "Work with songs saved in playlists",
		Commands: []*cli.Command{
			{
				Name:  "open",
				Usage: "Listen to a saved song on Spotify",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "playlist"},
					&cli.StringArg{Name: "position"},
				},
				Action: r.SongOpen,
			},
		},
	}
}

// moodCommand browses moods and searches tracks by mood
func moodCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "mood",
		Usage: "Browse moods and search tracks",
		Commands: []*cli.Command{
			{
				Name:  "list",
				Usage: "List moods and the genre each one searches",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
				},
				Action: r.MoodList,
			},
			{
				Name:  "search",
				Usage: "Search tracks for a mood",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "mood"},
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
				Action: r.MoodSearch,
			},
		},
	}
}

// trackCommand drives the select-then-commit handoff across invocations
func trackCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "track",
		Usage: "Select a track and add it to a playlist",
		Commands: []*cli.Command{
			{
				Name:  "stage",
				Usage: "Select result number <position> of a mood search",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "mood"},
					&cli.StringArg{Name: "position"},
				},
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "note",
						Aliases: []string{"n"},
						Usage:   "Description saved with the song",
					},
				},
				Action: r.TrackStage,
			},
			{
				Name:  "show",
				Usage: "Show the selected track and the playlists it can go to",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
				},
				Action: r.TrackShow,
			},
			{
				Name:  "commit",
				Usage: "Add the selected track to a playlist",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "playlist"},
				},
				Action: r.TrackCommit,
			},
			{
				Name:   "cancel",
				Usage:  "Discard the selected track",
				Action: r.TrackCancel,
			},
		},
	}
}

func sessionCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "session",
		Usage: "Manage the current session",
		Commands: []*cli.Command{
			{
				Name:   "clear",
				Usage:  "Clear all transient session state",
				Action: r.SessionClear,
			},
		},
	}
}

func serveCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Serve the JSON API",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "addr",
				Usage: "Listen address (defaults to server.host:server.port)",
			},
		},
		Action: r.Serve,
	}
}

func tuiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "tui",
		Usage: "Launch the interactive terminal UI",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "log-file",
				Usage: "Where to write logs while the UI is running",
				Value: "./tmp/moodlist-tui.log",
			},
		},
		Action: r.TUI,
	}
}
