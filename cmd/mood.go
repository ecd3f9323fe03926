package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/desertthunder/moodlist/internal/models"
	"github.com/desertthunder/moodlist/internal/services"
	"github.com/desertthunder/moodlist/internal/shared"
	"github.com/urfave/cli/v3"
)

const columnWidth = 44

// MoodList prints the mood catalog.
func (r *Runner) MoodList(ctx context.Context, cmd *cli.Command) error {
	moods := services.Moods()
	if cmd.Bool("json") {
		return r.writeJSON(moods, true)
	}

	for _, m := range moods {
		r.writePlain("%-12s %s\n", m.Label, m.Genre)
	}
	return nil
}

// MoodSearch searches tracks for a mood and prints them two per row.
//
// Search failures are reported as messages, not errors.
func (r *Runner) MoodSearch(ctx context.Context, cmd *cli.Command) error {
	mood, err := moodArg(cmd.StringArg("mood"))
	if err != nil {
		return err
	}

	r.logger.Debug("searching", "mood", mood.Label, "genre", mood.Genre)
	result := r.search().SearchGenre(ctx, mood.Genre)

	if cmd.Bool("json") {
		return r.writeJSON(result, cmd.Bool("pretty"))
	}

	if !result.OK() {
		return r.writePlain("%s\n", result.Message)
	}
	if len(result.Tracks) == 0 {
		return r.writePlain("%s\n", services.MsgNoTracks)
	}

	r.writePlainHeader(fmt.Sprintf("%s (%s)", mood.Label, mood.Genre))
	r.writePlain("%s", twoColumns(result.Tracks))
	r.writePlainln("Select one with: moodlist track stage %q <number> --note \"...\"", mood.Label)
	return nil
}

func moodArg(label string) (models.Mood, error) {
	if strings.TrimSpace(label) == "" {
		return models.Mood{}, fmt.Errorf("%w: mood (see 'moodlist mood list')", shared.ErrMissingArgument)
	}
	mood, ok := services.MoodByLabel(label)
	if !ok {
		return models.Mood{}, fmt.Errorf("%w: unknown mood %q (see 'moodlist mood list')", shared.ErrInvalidArgument, label)
	}
	return mood, nil
}

// twoColumns lays tracks out two per row, numbered from 1 in reading order.
func twoColumns(tracks []models.Track) string {
	left := lipgloss.NewStyle().Width(columnWidth)

	var b strings.Builder
	for i := 0; i < len(tracks); i += 2 {
		row := left.Render(trackCell(i, tracks[i]))
		if i+1 < len(tracks) {
			row += trackCell(i+1, tracks[i+1])
		}
		b.WriteString(strings.TrimRight(row, " "))
		b.WriteString("\n")
	}
	return b.String()
}

func trackCell(i int, t models.Track) string {
	cell := fmt.Sprintf("%d. %s - %s", i+1, t.Name, t.ArtistLine())
	return truncate(cell, columnWidth-2)
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n-1]) + "…"
}
