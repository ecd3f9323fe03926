package main

import (
	"context"
	"errors"
	"os"

	"github.com/desertthunder/moodlist/internal/shared"
	"github.com/urfave/cli/v3"
)

func main() {
	logger := shared.NewLogger(nil)
	runner := NewRunner(RunnerOpts{Logger: logger})
	defer runner.Close()

	if err := newApp(runner).Run(context.Background(), os.Args); err != nil {
		if msg, ok := userMessage(err); ok {
			logger.Error(msg)
			runner.Close()
			os.Exit(1)
		}
		logger.Fatalf("application error: %v", err)
	}
}

func newApp(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "moodlist",
		Usage:   "Find tracks by mood and keep them in local playlists",
		Version: "0.1.0",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to configuration file",
				Value:   "config.toml",
			},
			&cli.BoolFlag{
				Name:  "verbose",
				Usage: "Enable debug logging",
			},
			&cli.BoolFlag{
				Name:  "memory",
				Usage: "Keep playlists in memory instead of the database",
			},
		},
		Before:   r.configure,
		Commands: r.register(),
	}
}

// userMessage maps expected domain failures to a short message for the terminal.
func userMessage(err error) (string, bool) {
	switch {
	case errors.Is(err, shared.ErrDuplicateName):
		return "A playlist with that name already exists.", true
	case errors.Is(err, shared.ErrPlaylistNotFound):
		return "Playlist not found. Run 'moodlist playlist list' to see your playlists.", true
	case errors.Is(err, shared.ErrNoSelection):
		return "No track selected. Run 'moodlist mood search <mood>' and 'moodlist track stage' first.", true
	case errors.Is(err, shared.ErrInvalidInput),
		errors.Is(err, shared.ErrInvalidArgument),
		errors.Is(err, shared.ErrMissingArgument),
		errors.Is(err, shared.ErrServiceUnavailable):
		return err.Error(), true
	default:
		return "", false
	}
}
