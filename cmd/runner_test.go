package main

import (
	"bytes"
	"context"
	"os"
	"strings"
	"testing"

	"github.com/desertthunder/moodlist/internal/handoff"
	"github.com/desertthunder/moodlist/internal/repositories"
	"github.com/desertthunder/moodlist/internal/shared"
	tu "github.com/desertthunder/moodlist/internal/testing"
)

func TestRunner(t *testing.T) {
	t.Run("NewRunner", func(t *testing.T) {
		t.Run("with all dependencies provided", func(t *testing.T) {
			config := shared.DefaultConfig()
			logger := shared.NewLogger(nil)
			output := &bytes.Buffer{}
			input := strings.NewReader("")
			repo := repositories.NewPlaylistRepository(repositories.NewMemoryStore(), logger)
			searcher := tu.NewMockSearcher()
			slot := handoff.NewChannelSlot()

			runner := NewRunner(RunnerOpts{
				Config:   config,
				Repo:     repo,
				Searcher: searcher,
				Slot:     slot,
				Logger:   logger,
				Output:   output,
				Input:    input,
			})

			if runner.config != config {
				t.Error("expected config to be set")
			}
			if runner.logger != logger {
				t.Error("expected logger to be set")
			}
			if runner.output != output {
				t.Error("expected output to be set")
			}
			if runner.input != input {
				t.Error("expected input to be set")
			}
			if runner.repo != repo {
				t.Error("expected repo to be set")
			}
			if runner.searcher != searcher {
				t.Error("expected searcher to be set")
			}
			if runner.slot != slot {
				t.Error("expected slot to be set")
			}
		})

		t.Run("with nil config uses defaults", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{Config: nil})

			if runner.config == nil {
				t.Error("expected default config to be set")
			}
		})

		t.Run("with nil logger uses default", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{Logger: nil})

			if runner.logger == nil {
				t.Error("expected default logger to be set")
			}
		})

		t.Run("with nil output uses stdout", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{Output: nil})

			if runner.output != os.Stdout {
				t.Error("expected output to default to os.Stdout")
			}
		})

		t.Run("with nil input uses stdin", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{Input: nil})

			if runner.input != os.Stdin {
				t.Error("expected input to default to os.Stdin")
			}
		})

		t.Run("with nil searcher builds the Spotify client lazily", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{})

			if runner.searcher != nil {
				t.Fatal("expected searcher to be built on first use")
			}
			if runner.search() == nil {
				t.Error("expected a searcher")
			}
			if runner.search() != runner.search() {
				t.Error("expected the searcher to be reused")
			}
		})
	})

	t.Run("repository", func(t *testing.T) {
		t.Run("memory flag uses an in-memory store", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{Logger: shared.NewLogger(&bytes.Buffer{})})
			runner.memory = true

			repo, err := runner.repository(context.Background())
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if runner.db != nil {
				t.Error("expected no database to be opened")
			}

			again, _ := runner.repository(context.Background())
			if again != repo {
				t.Error("expected the repository to be reused")
			}
		})

		t.Run("opens the configured database", func(t *testing.T) {
			config := shared.DefaultConfig()
			config.Database.Path = t.TempDir() + "/moodlist.db"
			runner := NewRunner(RunnerOpts{Config: config, Logger: shared.NewLogger(&bytes.Buffer{})})
			defer runner.Close()

			repo, err := runner.repository(context.Background())
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if _, err := repo.CreatePlaylist(context.Background(), "Chill"); err != nil {
				t.Fatalf("failed to create playlist: %v", err)
			}
			if runner.db == nil {
				t.Error("expected database to be tracked for Close")
			}
			if err := runner.Close(); err != nil {
				t.Errorf("expected clean close, got %v", err)
			}
		})
	})

	t.Run("processSlot", func(t *testing.T) {
		t.Run("falls back to memory without a session store", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{Logger: shared.NewLogger(&bytes.Buffer{})})

			slot := runner.processSlot(context.Background())
			if _, ok := slot.(*handoff.ChannelSlot); !ok {
				t.Errorf("expected *handoff.ChannelSlot, got %T", slot)
			}
		})

		t.Run("falls back to memory when the session store is down", func(t *testing.T) {
			logs := &bytes.Buffer{}
			config := shared.DefaultConfig()
			config.Session.RedisURL = "redis://127.0.0.1:1"
			runner := NewRunner(RunnerOpts{Config: config, Logger: shared.NewLogger(logs)})

			slot := runner.processSlot(context.Background())
			if _, ok := slot.(*handoff.ChannelSlot); !ok {
				t.Errorf("expected *handoff.ChannelSlot, got %T", slot)
			}
			if !strings.Contains(logs.String(), "session store unavailable") {
				t.Errorf("expected a warning, got %q", logs.String())
			}
		})
	})

	t.Run("confirm", func(t *testing.T) {
		tests := []struct {
			input string
			want  bool
		}{
			{"y\n", true},
			{"YES\n", true},
			{"  yes  \n", true},
			{"y", true},
			{"n\n", false},
			{"\n", false},
			{"", false},
			{"maybe\n", false},
		}

		for _, tt := range tests {
			output := &bytes.Buffer{}
			runner := NewRunner(RunnerOpts{Output: output, Input: strings.NewReader(tt.input)})

			if got := runner.confirm("Delete?"); got != tt.want {
				t.Errorf("confirm(%q) = %v, want %v", tt.input, got, tt.want)
			}
			if !strings.HasPrefix(output.String(), "Delete? [y/N]: ") {
				t.Errorf("expected prompt, got %q", output.String())
			}
		}
	})

	t.Run("writeJSON", func(t *testing.T) {
		t.Run("writes formatted JSON successfully", func(t *testing.T) {
			output := &bytes.Buffer{}
			runner := NewRunner(RunnerOpts{Output: output})

			data := map[string]string{"key": "value"}
			err := runner.writeJSON(data, true)

			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			result := output.String()
			if !strings.Contains(result, `"key": "value"`) {
				t.Errorf("expected formatted JSON, got %s", result)
			}
			if !strings.HasSuffix(result, "\n") {
				t.Error("expected output to end with newline")
			}
		})

		t.Run("writes compact JSON successfully", func(t *testing.T) {
			output := &bytes.Buffer{}
			runner := NewRunner(RunnerOpts{Output: output})

			data := map[string]string{"key": "value"}
			err := runner.writeJSON(data, false)

			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			result := output.String()
			expected := `{"key":"value"}` + "\n"
			if result != expected {
				t.Errorf("expected %q, got %q", expected, result)
			}
		})

		t.Run("handles marshal error with non-serializable data", func(t *testing.T) {
			output := &bytes.Buffer{}
			runner := NewRunner(RunnerOpts{Output: output})

			// channels cannot be marshaled to JSON
			data := make(chan int)
			err := runner.writeJSON(data, false)

			if err == nil {
				t.Fatal("expected error for non-serializable data")
			}
			if !strings.Contains(err.Error(), "failed to marshal JSON") {
				t.Errorf("expected marshal error, got %v", err)
			}
		})

		t.Run("handles write failure", func(t *testing.T) {
			failing := &tu.FWriter{}
			runner := NewRunner(RunnerOpts{Output: failing})

			data := map[string]string{"key": "value"}
			err := runner.writeJSON(data, false)

			if err == nil {
				t.Fatal("expected error from failing writer")
			}
			if !strings.Contains(err.Error(), "failed to write output") {
				t.Errorf("expected write error, got %v", err)
			}
		})

		t.Run("handles newline write failure", func(t *testing.T) {
			data := map[string]string{"key": "value"}
			limitedWriter := tu.NewLimitedWriter(1, 0, &bytes.Buffer{})
			runner := NewRunner(RunnerOpts{Output: &limitedWriter})

			err := runner.writeJSON(data, false)

			if err == nil {
				t.Fatal("expected error writing newline")
			}
			if !strings.Contains(err.Error(), "failed to write newline") {
				t.Errorf("expected newline write error, got %v", err)
			}
		})
	})

	t.Run("writePlain", func(t *testing.T) {
		t.Run("writes plain text successfully", func(t *testing.T) {
			output := &bytes.Buffer{}
			runner := NewRunner(RunnerOpts{Output: output})

			err := runner.writePlain("hello %s", "world")

			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			result := output.String()
			if result != "hello world" {
				t.Errorf("expected 'hello world', got %q", result)
			}
		})

		t.Run("handles write failure", func(t *testing.T) {
			failing := &tu.FWriter{}
			runner := NewRunner(RunnerOpts{Output: failing})

			err := runner.writePlain("test")

			if err == nil {
				t.Fatal("expected error from failing writer")
			}
			if !strings.Contains(err.Error(), "failed to write output") {
				t.Errorf("expected write error, got %v", err)
			}
		})
	})

	t.Run("register", func(t *testing.T) {
		runner := NewRunner(RunnerOpts{})
		commands := runner.register()

		want := []string{"setup", "playlist", "song", "mood", "track", "session", "serve", "tui"}
		if len(commands) != len(want) {
			t.Fatalf("expected %d commands, got %d", len(want), len(commands))
		}

		for i, cmd := range commands {
			if cmd == nil {
				t.Fatalf("command at index %d is nil", i)
			}
			if cmd.Name != want[i] {
				t.Errorf("command %d: expected %q, got %q", i, want[i], cmd.Name)
			}
		}
	})
}
