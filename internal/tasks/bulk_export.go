package tasks

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/desertthunder/moodlist/internal/formatter"
	"github.com/desertthunder/moodlist/internal/models"
	"github.com/desertthunder/moodlist/internal/shared"
)

const manifestName = "export_manifest.json"

// BulkExportOpts contains configuration for bulk playlist exports.
type BulkExportOpts struct {
	Format     formatter.Format // Export format: csv, markdown, text, json
	OutputDir  string           // Base output directory (default: moodlist_export_{epoch})
	NumWorkers int              // Concurrent workers (default: 5, max: 10)
}

type exportJob struct {
	index    int
	playlist models.Playlist
}

type exportOutcome struct {
	index  int
	result PlaylistExportResult
}

// BulkExport exports every playlist concurrently and writes a manifest summarizing the run.
//
// Results keep the order of playlists regardless of which worker finished first.
// An error is returned only when the run itself cannot proceed or the manifest
// cannot be written; per-playlist failures are reported in the result.
func BulkExport(
	ctx context.Context,
	prog chan<- ProgressUpdate,
	playlists []models.Playlist,
	opts BulkExportOpts,
) (*BulkExportResult, error) {
	if _, err := formatter.ParseFormat(string(opts.Format)); err != nil {
		return nil, err
	}
	if opts.OutputDir == "" {
		opts.OutputDir = fmt.Sprintf("moodlist_export_%d", time.Now().Unix())
	}
	if opts.NumWorkers <= 0 {
		opts.NumWorkers = 5
	}
	if opts.NumWorkers > 10 {
		opts.NumWorkers = 10
	}

	if err := os.MkdirAll(opts.OutputDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	jobs := make(chan exportJob, len(playlists))
	outcomes := make(chan exportOutcome, len(playlists))

	var wg sync.WaitGroup
	for i := 0; i < opts.NumWorkers; i++ {
		wg.Add(1)
		go exportWorker(ctx, &wg, jobs, outcomes, opts)
	}

	go func() {
		defer close(jobs)
		for i, p := range playlists {
			select {
			case <-ctx.Done():
				return
			case jobs <- exportJob{index: i, playlist: p}:
			}
		}
	}()

	go func() {
		wg.Wait()
		close(outcomes)
	}()

	result := &BulkExportResult{
		TotalPlaylists:  len(playlists),
		OutputDirectory: opts.OutputDir,
	}

	ordered := make([]*PlaylistExportResult, len(playlists))
	completed := 0
	for out := range outcomes {
		completed++
		res := out.result
		ordered[out.index] = &res

		if res.Success {
			result.SuccessfulExports++
			sendProgress(prog, exportCompletedUpdate(completed, len(playlists), res.PlaylistName, len(res.Files)))
		} else {
			result.FailedExports++
			sendProgress(prog, exportFailedUpdate(completed, len(playlists), res.PlaylistName, res.Error))
		}
	}

	if err := ctx.Err(); err != nil {
		return result, fmt.Errorf("export cancelled after %d of %d playlists: %w", completed, len(playlists), err)
	}

	result.Results = make([]PlaylistExportResult, 0, len(playlists))
	for _, res := range ordered {
		if res != nil {
			result.Results = append(result.Results, *res)
		}
	}

	manifestPath := filepath.Join(opts.OutputDir, manifestName)
	if err := writeManifest(result, opts.Format, manifestPath); err != nil {
		return result, fmt.Errorf("export completed but failed to write manifest: %w", err)
	}
	result.ManifestPath = manifestPath
	sendProgress(prog, manifestUpdate(manifestPath))

	return result, nil
}

// exportWorker is a worker goroutine that exports playlists from the jobs channel.
func exportWorker(
	ctx context.Context,
	wg *sync.WaitGroup,
	jobs <-chan exportJob,
	outcomes chan<- exportOutcome,
	opts BulkExportOpts,
) {
	defer wg.Done()

	for job := range jobs {
		select {
		case <-ctx.Done():
			return
		default:
		}

		outcomes <- exportOutcome{index: job.index, result: exportSinglePlaylist(job.playlist, opts)}
	}
}

// exportSinglePlaylist writes one playlist under the output directory.
func exportSinglePlaylist(p models.Playlist, opts BulkExportOpts) PlaylistExportResult {
	result := PlaylistExportResult{
		PlaylistID:   p.ID,
		PlaylistName: p.Name,
		Files:        []string{},
	}

	files, err := formatter.WriteExport(p, opts.Format, exportPath(opts.OutputDir, opts.Format, p.ID))
	if err != nil {
		result.Error = fmt.Errorf("%s export failed: %w", opts.Format, err)
		result.ErrorMessage = result.Error.Error()
		return result
	}

	result.Files = files
	result.Success = true
	return result
}

// exportPath is the path handed to [formatter.WriteExport] for a playlist id.
func exportPath(dir string, format formatter.Format, id string) string {
	switch format {
	case formatter.FormatText:
		return filepath.Join(dir, id+"_tracks.txt")
	case formatter.FormatJSON:
		return filepath.Join(dir, id+".json")
	default:
		// csv takes a base name, markdown a directory
		return filepath.Join(dir, id)
	}
}

func writeManifest(result *BulkExportResult, format formatter.Format, path string) error {
	manifest := ExportManifest{
		ExportedAt:        time.Now().UTC(),
		Format:            string(format),
		TotalPlaylists:    result.TotalPlaylists,
		SuccessfulExports: result.SuccessfulExports,
		FailedExports:     result.FailedExports,
		Playlists:         result.Results,
	}

	data, err := shared.MarshalJSON(manifest, true)
	if err != nil {
		return fmt.Errorf("failed to marshal manifest: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write manifest: %w", err)
	}
	return nil
}
