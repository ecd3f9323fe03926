// package formatter exports a playlist to CSV, Markdown, plain text or JSON
package formatter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/desertthunder/moodlist/internal/models"
	"github.com/desertthunder/moodlist/internal/shared"
)

// Format names an export format.
type Format string

const (
	FormatCSV      Format = "csv"
	FormatMarkdown Format = "markdown"
	FormatText     Format = "text"
	FormatJSON     Format = "json"
)

// Formats lists the supported formats in help order.
func Formats() []Format {
	return []Format{FormatCSV, FormatMarkdown, FormatText, FormatJSON}
}

// ParseFormat accepts a format name or a common alias (md, txt).
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "csv":
		return FormatCSV, nil
	case "markdown", "md":
		return FormatMarkdown, nil
	case "text", "txt":
		return FormatText, nil
	case "json":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("%w: unknown export format %q", shared.ErrInvalidArgument, s)
	}
}

// PlaylistMetadata is the playlist without its songs.
type PlaylistMetadata struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	SongCount int    `json:"song_count"`
}

// Metadata summarizes p.
func Metadata(p models.Playlist) PlaylistMetadata {
	return PlaylistMetadata{ID: p.ID, Name: p.Name, SongCount: len(p.Songs)}
}

// ExportToCSV converts a playlist to CSV with columns: Position, TrackID, Title, Artist, URL, Description
func ExportToCSV(p models.Playlist) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"Position", "TrackID", "Title", "Artist", "URL", "Description"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for i, song := range p.Songs {
		record := []string{
			strconv.Itoa(i + 1),
			song.TrackID,
			song.Title,
			song.Artist,
			song.URL,
			song.Description,
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// ExportToMarkdown converts a playlist to Markdown with linked titles and notes as quotes
func ExportToMarkdown(p models.Playlist) ([]byte, error) {
	var buf bytes.Buffer

	fmt.Fprintf(&buf, "# %s\n\n", p.Name)
	fmt.Fprintf(&buf, "**Songs**: %d\n\n", len(p.Songs))

	if len(p.Songs) == 0 {
		buf.WriteString("_No songs in this playlist._\n")
		return buf.Bytes(), nil
	}

	buf.WriteString("## Songs\n\n")
	for i, song := range p.Songs {
		title := song.Title
		if song.URL != "" {
			title = fmt.Sprintf("[%s](%s)", song.Title, song.URL)
		}
		fmt.Fprintf(&buf, "%d. %s - %s\n", i+1, song.Artist, title)
		if song.Description != "" {
			fmt.Fprintf(&buf, "   > %s\n", song.Description)
		}
	}

	return buf.Bytes(), nil
}

// ExportToText converts a playlist to plain text format
func ExportToText(p models.Playlist) ([]byte, error) {
	var buf bytes.Buffer

	fmt.Fprintf(&buf, "Playlist: %s\n", p.Name)
	fmt.Fprintf(&buf, "Songs: %d\n\n", len(p.Songs))

	for i, song := range p.Songs {
		fmt.Fprintf(&buf, "%d. %s - %s\n", i+1, song.Artist, song.Title)
		if song.Description != "" {
			fmt.Fprintf(&buf, "   %s\n", song.Description)
		}
	}

	return buf.Bytes(), nil
}

// ExportToJSON renders the playlist in its stored shape, indented.
func ExportToJSON(p models.Playlist) ([]byte, error) {
	return shared.MarshalJSON(p.Clone(), true)
}

// ToMetadataJSON generates a JSON representation of playlist metadata (without songs)
func ToMetadataJSON(p models.Playlist) ([]byte, error) {
	return shared.MarshalJSON(Metadata(p), true)
}

// Render produces the export bytes for format.
func Render(p models.Playlist, format Format) ([]byte, error) {
	switch format {
	case FormatCSV:
		return ExportToCSV(p)
	case FormatMarkdown:
		return ExportToMarkdown(p)
	case FormatText:
		return ExportToText(p)
	case FormatJSON:
		return ExportToJSON(p)
	default:
		return nil, fmt.Errorf("%w: unknown export format %q", shared.ErrInvalidArgument, format)
	}
}

// CSVExportResult contains the paths of files created by WriteCSVExport
type CSVExportResult struct {
	TracksFile   string
	MetadataFile string
}

// WriteCSVExport exports a playlist to CSV format with accompanying metadata JSON file.
//
// Defaults to playlist ID as the base filename & creates {base}_tracks.csv and {base}_metadata.json
func WriteCSVExport(p models.Playlist, baseFilepath string) (*CSVExportResult, error) {
	if baseFilepath == "" {
		baseFilepath = p.ID
	}

	csvData, err := ExportToCSV(p)
	if err != nil {
		return nil, fmt.Errorf("failed to generate CSV: %w", err)
	}

	tracksFile := baseFilepath + "_tracks.csv"
	if err := os.WriteFile(tracksFile, csvData, 0644); err != nil {
		return nil, fmt.Errorf("failed to write CSV file: %w", err)
	}

	metadataJSON, err := ToMetadataJSON(p)
	if err != nil {
		return nil, fmt.Errorf("failed to generate metadata JSON: %w", err)
	}

	metadataFile := baseFilepath + "_metadata.json"
	if err := os.WriteFile(metadataFile, metadataJSON, 0644); err != nil {
		return nil, fmt.Errorf("failed to write metadata file: %w", err)
	}

	return &CSVExportResult{
		TracksFile:   tracksFile,
		MetadataFile: metadataFile,
	}, nil
}

// WriteMarkdownExport exports a playlist to {dir}/README.md, creating the directory.
//
// Directory name defaults to the playlist ID.
func WriteMarkdownExport(p models.Playlist, outputDir string) (string, error) {
	if outputDir == "" {
		outputDir = p.ID
	}

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create directory: %w", err)
	}

	mdData, err := ExportToMarkdown(p)
	if err != nil {
		return "", fmt.Errorf("failed to generate Markdown: %w", err)
	}

	mdFile := filepath.Join(outputDir, "README.md")
	if err := os.WriteFile(mdFile, mdData, 0644); err != nil {
		return "", fmt.Errorf("failed to write Markdown file: %w", err)
	}

	return mdFile, nil
}

// WriteTextExport exports a playlist to plain text format.
//
// Defaults to {playlist.ID}_tracks.txt as the filename.
func WriteTextExport(p models.Playlist, path string) (string, error) {
	if path == "" {
		path = fmt.Sprintf("%s_tracks.txt", p.ID)
	}

	textData, err := ExportToText(p)
	if err != nil {
		return "", fmt.Errorf("failed to generate text: %w", err)
	}

	if err := os.WriteFile(path, textData, 0644); err != nil {
		return "", fmt.Errorf("failed to write text file: %w", err)
	}

	return path, nil
}

// WriteJSONExport writes the playlist JSON. Defaults to {playlist.ID}.json.
func WriteJSONExport(p models.Playlist, path string) (string, error) {
	if path == "" {
		path = p.ID + ".json"
	}

	data, err := ExportToJSON(p)
	if err != nil {
		return "", fmt.Errorf("failed to generate JSON: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write JSON file: %w", err)
	}

	return path, nil
}

// WriteExport writes p in format under path and returns the files it created.
func WriteExport(p models.Playlist, format Format, path string) ([]string, error) {
	switch format {
	case FormatCSV:
		result, err := WriteCSVExport(p, path)
		if err != nil {
			return nil, err
		}
		return []string{result.TracksFile, result.MetadataFile}, nil
	case FormatMarkdown:
		file, err := WriteMarkdownExport(p, path)
		if err != nil {
			return nil, err
		}
		return []string{file}, nil
	case FormatText:
		file, err := WriteTextExport(p, path)
		if err != nil {
			return nil, err
		}
		return []string{file}, nil
	case FormatJSON:
		file, err := WriteJSONExport(p, path)
		if err != nil {
			return nil, err
		}
		return []string{file}, nil
	default:
		return nil, fmt.Errorf("%w: unknown export format %q", shared.ErrInvalidArgument, format)
	}
}
