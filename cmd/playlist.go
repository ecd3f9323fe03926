package main

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/desertthunder/moodlist/internal/formatter"
	"github.com/desertthunder/moodlist/internal/models"
	"github.com/desertthunder/moodlist/internal/repositories"
	"github.com/desertthunder/moodlist/internal/server"
	"github.com/desertthunder/moodlist/internal/shared"
	"github.com/desertthunder/moodlist/internal/tasks"
	"github.com/urfave/cli/v3"
)

// PlaylistList prints every playlist with its song count.
func (r *Runner) PlaylistList(ctx context.Context, cmd *cli.Command) error {
	repo, err := r.repository(ctx)
	if err != nil {
		return err
	}

	playlists, err := repo.Playlists(ctx)
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(playlists, cmd.Bool("pretty"))
	}

	if len(playlists) == 0 {
		return r.writePlain("No playlists yet.\n")
	}

	r.writePlainHeader("Playlists")
	for i, p := range playlists {
		r.writePlain("%d. %s (%s)\n", i+1, p.Name, songCount(len(p.Songs)))
		r.writePlain("   id: %s\n", p.ID)
	}
	return nil
}

// PlaylistShow prints the songs of a playlist in order.
//
// Arrows mark the directions each song can still move.
func (r *Runner) PlaylistShow(ctx context.Context, cmd *cli.Command) error {
	_, playlist, err := r.lookupPlaylist(ctx, cmd.StringArg("playlist"))
	if err != nil {
		return err
	}

	r.writePlainHeader(playlist.Name)
	if len(playlist.Songs) == 0 {
		return r.writePlain("No songs in this playlist.\n")
	}

	last := len(playlist.Songs) - 1
	for i, song := range playlist.Songs {
		moves := ""
		if i > 0 {
			moves += "↑"
		}
		if i < last {
			moves += "↓"
		}

		r.writePlain("%d. %s - %s %s\n", i+1, song.Title, song.Artist, moves)
		if song.Description != "" {
			r.writePlain("   > %s\n", song.Description)
		}
		r.writePlain("   %s\n", song.URL)
	}
	return nil
}

// PlaylistCreate creates an empty playlist. Surrounding whitespace is trimmed from the name.
func (r *Runner) PlaylistCreate(ctx context.Context, cmd *cli.Command) error {
	name := strings.TrimSpace(cmd.StringArg("name"))
	if name == "" {
		return fmt.Errorf("%w: playlist name cannot be blank", shared.ErrInvalidInput)
	}

	repo, err := r.repository(ctx)
	if err != nil {
		return err
	}

	playlists, err := repo.CreatePlaylist(ctx, name)
	if err != nil {
		return err
	}

	created := playlists[len(playlists)-1]
	r.logger.Info("playlist created", "id", created.ID, "name", created.Name)
	r.writePlain("✓ Created playlist %q\n", created.Name)
	r.writePlain("  id: %s\n", created.ID)
	return nil
}

// PlaylistDelete removes a playlist after confirmation.
func (r *Runner) PlaylistDelete(ctx context.Context, cmd *cli.Command) error {
	repo, playlist, err := r.lookupPlaylist(ctx, cmd.StringArg("playlist"))
	if err != nil {
		return err
	}

	prompt := fmt.Sprintf("Delete playlist %q and its %s?", playlist.Name, songCount(len(playlist.Songs)))
	if !cmd.Bool("yes") && !r.confirm(prompt) {
		return r.writePlain("Cancelled.\n")
	}

	if _, err := repo.RemovePlaylist(ctx, playlist.ID); err != nil {
		return err
	}

	r.logger.Info("playlist deleted", "id", playlist.ID)
	return r.writePlain("✓ Deleted playlist %q\n", playlist.Name)
}

// PlaylistMove swaps a song with its neighbour above or below.
func (r *Runner) PlaylistMove(ctx context.Context, cmd *cli.Command) error {
	repo, playlist, err := r.lookupPlaylist(ctx, cmd.StringArg("playlist"))
	if err != nil {
		return err
	}

	index, err := songIndex(playlist, cmd.StringArg("position"))
	if err != nil {
		return err
	}

	rawDirection := cmd.StringArg("direction")
	if rawDirection == "" {
		return fmt.Errorf("%w: direction (up or down)", shared.ErrMissingArgument)
	}
	direction, err := server.ParseDirection(rawDirection)
	if err != nil {
		return err
	}

	target := index + direction
	if target < 0 || target >= len(playlist.Songs) {
		return r.writePlain("Song %d is already at the %s.\n", index+1, edgeName(direction))
	}

	if _, err := repo.MoveSong(ctx, playlist.ID, index, direction); err != nil {
		return err
	}

	return r.writePlain("✓ Moved %q to position %d\n", playlist.Songs[index].Title, target+1)
}

// PlaylistRemove removes one song after confirmation.
func (r *Runner) PlaylistRemove(ctx context.Context, cmd *cli.Command) error {
	repo, playlist, err := r.lookupPlaylist(ctx, cmd.StringArg("playlist"))
	if err != nil {
		return err
	}

	index, err := songIndex(playlist, cmd.StringArg("position"))
	if err != nil {
		return err
	}
	song := playlist.Songs[index]

	prompt := fmt.Sprintf("Remove %q from %q?", song.Title, playlist.Name)
	if !cmd.Bool("yes") && !r.confirm(prompt) {
		return r.writePlain("Cancelled.\n")
	}

	if _, err := repo.RemoveTrackFromPlaylist(ctx, playlist.ID, index); err != nil {
		return err
	}

	return r.writePlain("✓ Removed %q from %q\n", song.Title, playlist.Name)
}

// PlaylistExport renders a playlist to stdout or writes it under --output.
// With --all every playlist is written into the --output directory.
func (r *Runner) PlaylistExport(ctx context.Context, cmd *cli.Command) error {
	format, err := formatter.ParseFormat(cmd.String("format"))
	if err != nil {
		return err
	}

	if cmd.Bool("all") {
		return r.exportAll(ctx, format, cmd.String("output"), int(cmd.Int("workers")))
	}

	_, playlist, err := r.lookupPlaylist(ctx, cmd.StringArg("playlist"))
	if err != nil {
		return err
	}

	output := cmd.String("output")
	if output == "" {
		data, err := formatter.Render(playlist, format)
		if err != nil {
			return err
		}
		if _, err := r.output.Write(data); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
		return nil
	}

	files, err := formatter.WriteExport(playlist, format, output)
	if err != nil {
		return err
	}

	r.logger.Info("playlist exported", "id", playlist.ID, "format", format, "files", len(files))
	for _, file := range files {
		r.writePlain("✓ Wrote %s\n", file)
	}
	return nil
}

func (r *Runner) exportAll(ctx context.Context, format formatter.Format, outputDir string, workers int) error {
	repo, err := r.repository(ctx)
	if err != nil {
		return err
	}

	playlists, err := repo.Playlists(ctx)
	if err != nil {
		return err
	}
	if len(playlists) == 0 {
		return r.writePlain("No playlists yet.\n")
	}

	r.logger.Info("starting bulk export", "playlists", len(playlists), "format", format)
	r.writePlain("Exporting %d playlists as %s...\n", len(playlists), format)

	progressCh := make(chan tasks.ProgressUpdate, len(playlists)+1)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for update := range progressCh {
			r.writePlain("%s\n", update.Message)
		}
	}()

	result, err := tasks.BulkExport(ctx, progressCh, playlists, tasks.BulkExportOpts{
		Format:     format,
		OutputDir:  outputDir,
		NumWorkers: workers,
	})
	close(progressCh)
	<-done

	if err != nil {
		return err
	}

	r.writePlain("\n")
	r.writePlainHeader("Export Complete!")
	r.writePlain("Directory: %s\n", result.OutputDirectory)
	r.writePlain("Exported: %d/%d\n", result.SuccessfulExports, result.TotalPlaylists)
	if result.FailedExports > 0 {
		r.writePlain("Failed: %d (see %s)\n", result.FailedExports, result.ManifestPath)
	}
	return nil
}

// SongOpen opens a saved song's Spotify page in the browser.
func (r *Runner) SongOpen(ctx context.Context, cmd *cli.Command) error {
	_, playlist, err := r.lookupPlaylist(ctx, cmd.StringArg("playlist"))
	if err != nil {
		return err
	}

	index, err := songIndex(playlist, cmd.StringArg("position"))
	if err != nil {
		return err
	}

	song := playlist.Songs[index]
	if song.URL == "" {
		return fmt.Errorf("%w: %q has no Spotify link", shared.ErrInvalidInput, song.Title)
	}

	r.writePlain("Opening %s\n", song.URL)
	if err := r.openURL(song.URL); err != nil {
		return fmt.Errorf("failed to open browser: %w", err)
	}
	return nil
}

// lookupPlaylist resolves ref as a playlist id, then as a name ignoring case.
func (r *Runner) lookupPlaylist(ctx context.Context, ref string) (*repositories.PlaylistRepository, models.Playlist, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return nil, models.Playlist{}, fmt.Errorf("%w: playlist name or id", shared.ErrMissingArgument)
	}

	repo, err := r.repository(ctx)
	if err != nil {
		return nil, models.Playlist{}, err
	}

	playlists, err := repo.Playlists(ctx)
	if err != nil {
		return nil, models.Playlist{}, err
	}

	for _, p := range playlists {
		if p.ID == ref {
			return repo, p, nil
		}
	}
	for _, p := range playlists {
		if shared.SameName(p.Name, ref) {
			return repo, p, nil
		}
	}
	return nil, models.Playlist{}, fmt.Errorf("%w: %q", shared.ErrPlaylistNotFound, ref)
}

// songIndex converts a 1-based position argument to an index into p.Songs.
func songIndex(p models.Playlist, raw string) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, fmt.Errorf("%w: song position", shared.ErrMissingArgument)
	}

	position, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: position must be a number, got %q", shared.ErrInvalidArgument, raw)
	}
	if position < 1 || position > len(p.Songs) {
		return 0, fmt.Errorf("%w: %q has %s, got position %d", shared.ErrInvalidArgument, p.Name, songCount(len(p.Songs)), position)
	}
	return position - 1, nil
}

func songCount(n int) string {
	if n == 1 {
		return "1 song"
	}
	return fmt.Sprintf("%d songs", n)
}

func edgeName(direction int) string {
	if direction == repositories.MoveUp {
		return "top"
	}
	return "bottom"
}
