package handoff

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/moodlist/internal/models"
	"github.com/desertthunder/moodlist/internal/shared"
	"github.com/redis/go-redis/v9"
)

const keyPrefix = "moodlist:handoff:"

// RedisSlot is a session-scoped [Slot] stored under a single Redis key.
//
// The key expires after ttl so a staged record cannot outlive the session.
type RedisSlot struct {
	client *redis.Client
	key    string
	ttl    time.Duration
	logger *log.Logger
}

// NewRedisSlot creates a slot for session on client. A zero ttl disables expiry.
func NewRedisSlot(client *redis.Client, session string, ttl time.Duration, logger *log.Logger) *RedisSlot {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &RedisSlot{client: client, key: SessionKey(session), ttl: ttl, logger: logger}
}

// SessionKey returns the Redis key holding the record for session.
func SessionKey(session string) string {
	return keyPrefix + session
}

// DialRedis parses rawURL, connects, and pings the server.
func DialRedis(ctx context.Context, rawURL string) (*redis.Client, error) {
	if rawURL == "" {
		return nil, fmt.Errorf("%w: session.redis_url is not set", shared.ErrServiceUnavailable)
	}

	opts, err := redis.ParseURL(rawURL)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid redis url: %v", shared.ErrInvalidConfig, err)
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("%w: redis ping failed: %v", shared.ErrServiceUnavailable, err)
	}
	return client, nil
}

// Stage implements [Slot].
func (s *RedisSlot) Stage(ctx context.Context, record models.SelectedTrack) error {
	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to encode selection: %w", err)
	}
	if err := s.client.Set(ctx, s.key, data, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to stage selection: %w", err)
	}
	return nil
}

// Read implements [Slot]. Unreadable content is logged and treated as empty.
func (s *RedisSlot) Read(ctx context.Context) (*models.SelectedTrack, error) {
	data, err := s.client.Get(ctx, s.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read selection: %w", err)
	}

	var record models.SelectedTrack
	if err := json.Unmarshal(data, &record); err != nil {
		s.logger.Warn("staged selection is unreadable, treating as empty", "key", s.key, "error", err)
		return nil, nil
	}
	return &record, nil
}

// Clear implements [Slot].
func (s *RedisSlot) Clear(ctx context.Context) error {
	if err := s.client.Del(ctx, s.key).Err(); err != nil {
		return fmt.Errorf("failed to clear selection: %w", err)
	}
	return nil
}
