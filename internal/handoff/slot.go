package handoff

import (
	"context"
	"sync"

	"github.com/desertthunder/moodlist/internal/models"
)

// Slot holds at most one staged record. Staging overwrites; the last write wins.
type Slot interface {
	Stage(ctx context.Context, record models.SelectedTrack) error
	// Read returns the staged record without consuming it, or nil when empty.
	Read(ctx context.Context) (*models.SelectedTrack, error)
	Clear(ctx context.Context) error
}

// ChannelSlot is an in-process [Slot] backed by a channel of capacity one.
type ChannelSlot struct {
	mu sync.Mutex
	ch chan models.SelectedTrack
}

// NewChannelSlot creates an empty ChannelSlot.
func NewChannelSlot() *ChannelSlot {
	return &ChannelSlot{ch: make(chan models.SelectedTrack, 1)}
}

// Stage drains any pending record and sends the new one.
func (s *ChannelSlot) Stage(ctx context.Context, record models.SelectedTrack) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.drain()
	s.ch <- record
	return nil
}

// Read peeks at the pending record and puts it back.
func (s *ChannelSlot) Read(ctx context.Context) (*models.SelectedTrack, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	select {
	case record := <-s.ch:
		s.ch <- record
		return &record, nil
	default:
		return nil, nil
	}
}

// Clear discards the pending record, if any.
func (s *ChannelSlot) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.drain()
	return nil
}

func (s *ChannelSlot) drain() {
	select {
	case <-s.ch:
	default:
	}
}
