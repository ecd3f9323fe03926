package main

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/desertthunder/moodlist/internal/handoff"
	"github.com/desertthunder/moodlist/internal/shared"
	"github.com/urfave/cli/v3"
)

// handoffProtocol wires the repository to the session slot shared by CLI invocations.
func (r *Runner) handoffProtocol(ctx context.Context) (*handoff.Protocol, error) {
	slot, err := r.sessionSlot(ctx)
	if err != nil {
		return nil, err
	}

	repo, err := r.repository(ctx)
	if err != nil {
		return nil, err
	}
	return r.protocol(repo, slot), nil
}

// TrackStage searches a mood and selects one result, replacing any earlier selection.
func (r *Runner) TrackStage(ctx context.Context, cmd *cli.Command) error {
	mood, err := moodArg(cmd.StringArg("mood"))
	if err != nil {
		return err
	}

	raw := strings.TrimSpace(cmd.StringArg("position"))
	if raw == "" {
		return fmt.Errorf("%w: result number from 'moodlist mood search'", shared.ErrMissingArgument)
	}
	position, err := strconv.Atoi(raw)
	if err != nil {
		return fmt.Errorf("%w: result number must be a number, got %q", shared.ErrInvalidArgument, raw)
	}

	protocol, err := r.handoffProtocol(ctx)
	if err != nil {
		return err
	}

	result := r.search().SearchGenre(ctx, mood.Genre)
	if !result.OK() {
		return fmt.Errorf("%w: %s", shared.ErrServiceUnavailable, result.Message)
	}
	if position < 1 || position > len(result.Tracks) {
		return fmt.Errorf("%w: %s returned %d tracks, got %d", shared.ErrInvalidArgument, mood.Label, len(result.Tracks), position)
	}

	selected, err := protocol.Stage(ctx, result.Tracks[position-1], cmd.String("note"))
	if err != nil {
		return err
	}

	r.writePlain("✓ Selected %s - %s\n", selected.Name, selected.Artist)
	r.writePlain("Add it with: moodlist track commit <playlist>\n")
	return nil
}

// TrackShow prints the selected track and the playlists it can be added to.
func (r *Runner) TrackShow(ctx context.Context, cmd *cli.Command) error {
	protocol, err := r.handoffProtocol(ctx)
	if err != nil {
		return err
	}

	review, err := protocol.Review(ctx)
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(review, true)
	}

	track := review.Track
	r.writePlainHeader("Selected track")
	r.writePlain("%s - %s\n", track.Name, track.Artist)
	r.writePlain("%s\n", track.URL)
	if track.Description != "" {
		r.writePlain("> %s\n", track.Description)
	}

	if len(review.Playlists) == 0 {
		r.writePlainln("No playlists yet. Create one with: moodlist playlist create <name>")
		return nil
	}

	r.writePlainln("Add to playlist:")
	for _, name := range review.Playlists {
		r.writePlain("  - %s\n", name)
	}
	return nil
}

// TrackCommit adds the selected track to the named playlist and clears the selection.
func (r *Runner) TrackCommit(ctx context.Context, cmd *cli.Command) error {
	name := strings.TrimSpace(cmd.StringArg("playlist"))
	if name == "" {
		return fmt.Errorf("%w: playlist name", shared.ErrMissingArgument)
	}

	protocol, err := r.handoffProtocol(ctx)
	if err != nil {
		return err
	}

	selected, err := protocol.Selection(ctx)
	if err != nil {
		return err
	}

	if _, err := protocol.Commit(ctx, name); err != nil {
		return err
	}

	return r.writePlain("✓ Added %q to %q\n", selected.Name, name)
}

// TrackCancel discards the selected track.
func (r *Runner) TrackCancel(ctx context.Context, cmd *cli.Command) error {
	protocol, err := r.handoffProtocol(ctx)
	if err != nil {
		return err
	}

	if err := protocol.Cancel(ctx); err != nil {
		return err
	}
	return r.writePlain("Selection cleared.\n")
}

// SessionClear wipes the session's transient state without touching playlists.
func (r *Runner) SessionClear(ctx context.Context, cmd *cli.Command) error {
	slot, err := r.sessionSlot(ctx)
	if err != nil {
		return err
	}

	if err := slot.Clear(ctx); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}

	r.logger.Info("session cleared", "session", r.config.Session.ID)
	return r.writePlain("✓ Session cleared\n")
}
