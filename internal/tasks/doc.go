// Package tasks runs long playlist operations on a worker pool with progress reporting.
//
// # Bulk Export
//
// [BulkExport] writes every playlist in a collection to an output directory in
// one [formatter.Format], spreading the work over a fixed number of workers:
//
//   - csv: {id}_tracks.csv and {id}_metadata.json
//   - markdown: {id}/README.md
//   - text: {id}_tracks.txt
//   - json: {id}.json
//
// A failure writing one playlist is recorded in its [PlaylistExportResult] and
// does not stop the others. When all workers finish, export_manifest.json
// summarizes the run.
//
// # Progress Reporting
//
// Progress is sent as [ProgressUpdate] values on an optional channel. Sends use
// select with default, so a slow or absent reader never blocks an export.
package tasks
