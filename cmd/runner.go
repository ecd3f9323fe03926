package main

import (
	"bufio"
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/moodlist/internal/handoff"
	"github.com/desertthunder/moodlist/internal/repositories"
	"github.com/desertthunder/moodlist/internal/services"
	"github.com/desertthunder/moodlist/internal/shared"
	"github.com/redis/go-redis/v9"
	"github.com/urfave/cli/v3"
)

// Runner holds all dependencies for CLI commands and provides methods for each command action.
//
// The repository and the handoff slot are opened lazily so commands that need
// neither (mood list, setup) never touch the database or Redis.
type Runner struct {
	config   *shared.Config
	repo     *repositories.PlaylistRepository
	searcher services.Searcher
	slot     handoff.Slot
	logger   *log.Logger
	output   io.Writer
	input    io.Reader
	openURL  func(string) error

	memory bool
	db     *sql.DB
	redis  *redis.Client
}

// RunnerOpts contains configuration options for creating a Runner.
type RunnerOpts struct {
	Config   *shared.Config
	Repo     *repositories.PlaylistRepository
	Searcher services.Searcher
	Slot     handoff.Slot
	Logger   *log.Logger
	Output   io.Writer
	Input    io.Reader
	OpenURL  func(string) error
}

// NewRunner creates a new Runner with the provided configuration
func NewRunner(opts RunnerOpts) *Runner {
	if opts.Config == nil {
		opts.Config = shared.DefaultConfig()
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.Input == nil {
		opts.Input = os.Stdin
	}
	if opts.OpenURL == nil {
		opts.OpenURL = shared.OpenBrowser
	}

	return &Runner{
		config:   opts.Config,
		repo:     opts.Repo,
		searcher: opts.Searcher,
		slot:     opts.Slot,
		logger:   opts.Logger,
		output:   opts.Output,
		input:    opts.Input,
		openURL:  opts.OpenURL,
	}
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		setupCommand, playlistCommand, songCommand, moodCommand, trackCommand, sessionCommand, serveCommand, tuiCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

// SetLogger swaps the logger used by the runner and everything it builds afterwards.
func (r *Runner) SetLogger(logger *log.Logger) {
	r.logger = logger
}

// configure loads the config file named by --config (when it exists), applies
// environment overrides and sets the log level.
func (r *Runner) configure(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	configPath := cmd.String("config")
	if _, err := os.Stat(configPath); err == nil {
		config, err := shared.LoadConfig(configPath)
		if err != nil {
			return ctx, err
		}
		r.config = config
	}
	r.config.ApplyEnv()
	r.memory = cmd.Bool("memory")

	if err := shared.ApplyLogLevel(r.logger, r.config.Log.Level); err != nil {
		r.logger.Warn("ignoring log level", "error", err)
	}
	if cmd.Bool("verbose") {
		shared.SetLogLevel(r.logger, log.DebugLevel)
	}
	return ctx, nil
}

// Close releases the database and Redis connections opened by commands.
func (r *Runner) Close() error {
	if r.redis != nil {
		r.redis.Close()
		r.redis = nil
	}
	if r.db != nil {
		err := r.db.Close()
		r.db = nil
		return err
	}
	return nil
}

// repository returns the playlist repository, opening the database on first use.
func (r *Runner) repository(ctx context.Context) (*repositories.PlaylistRepository, error) {
	if r.repo != nil {
		return r.repo, nil
	}

	if r.memory {
		r.logger.Debug("using in-memory playlist store")
		r.repo = repositories.NewPlaylistRepository(repositories.NewMemoryStore(), r.logger)
		return r.repo, nil
	}

	db, err := shared.OpenDatabase(ctx, r.config.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	r.db = db
	r.repo = repositories.NewPlaylistRepository(repositories.NewSQLiteStore(db), r.logger)
	return r.repo, nil
}

// search returns the track searcher, building the Spotify client from config on first use.
func (r *Runner) search() services.Searcher {
	if r.searcher == nil {
		r.searcher = services.NewSpotifyService(services.SpotifyConfig{
			AccessToken: r.config.Credentials.Spotify.AccessToken,
			Limit:       r.config.Search.Limit,
			RateLimit:   r.config.Search.RateLimit,
			Logger:      r.logger,
		})
	}
	return r.searcher
}

// sessionSlot returns the slot that carries a staged track between CLI invocations.
//
// Separate invocations share nothing in memory, so this needs the Redis session store.
func (r *Runner) sessionSlot(ctx context.Context) (handoff.Slot, error) {
	if r.slot != nil {
		return r.slot, nil
	}

	client, err := handoff.DialRedis(ctx, r.config.Session.RedisURL)
	if err != nil {
		return nil, fmt.Errorf("track handoff between commands needs the session store: %w", err)
	}
	r.redis = client

	session := r.config.Session.ID
	if session == "" {
		session = "default"
	}
	r.slot = handoff.NewRedisSlot(client, session, r.config.Session.TTL.Duration, r.logger)
	return r.slot, nil
}

// processSlot returns the slot for long-running single-process surfaces (TUI, server).
//
// A configured session store is shared so a track staged from the CLI shows up there too.
func (r *Runner) processSlot(ctx context.Context) handoff.Slot {
	if r.slot != nil {
		return r.slot
	}
	if r.config.Session.RedisURL != "" {
		slot, err := r.sessionSlot(ctx)
		if err == nil {
			return slot
		}
		r.logger.Warn("session store unavailable, keeping selection in memory", "error", err)
	}
	r.slot = handoff.NewChannelSlot()
	return r.slot
}

func (r *Runner) protocol(repo *repositories.PlaylistRepository, slot handoff.Slot) *handoff.Protocol {
	return handoff.NewProtocol(slot, repo, r.logger)
}

// confirm asks a yes/no question on the runner's input. Anything but y/yes is a no.
func (r *Runner) confirm(prompt string) bool {
	r.writePlain("%s [y/N]: ", prompt)

	answer, err := bufio.NewReader(r.input).ReadString('\n')
	if err != nil && answer == "" {
		r.writePlain("\n")
		return false
	}

	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true
	default:
		return false
	}
}

func (r *Runner) writeJSON(data any, pretty bool) error {
	var output []byte
	var err error

	if pretty {
		output, err = json.MarshalIndent(data, "", "  ")
	} else {
		output, err = json.Marshal(data)
	}

	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if _, err := r.output.Write(output); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	if _, err := r.output.Write([]byte("\n")); err != nil {
		return fmt.Errorf("failed to write newline: %w", err)
	}

	return nil
}

func (r *Runner) writePlain(format string, args ...any) error {
	text := fmt.Sprintf(format, args...)
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlainln(format string, args ...any) error {
	text := "\n" + fmt.Sprintf(format, args...) + "\n"
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlainHeader(title string) {
	r.writePlain("═══════════════════════════════════════\n")
	r.writePlain("%v\n", title)
	r.writePlain("═══════════════════════════════════════\n")
}
