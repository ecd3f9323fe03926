package handoff

import (
	"bytes"
	"context"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/desertthunder/moodlist/internal/models"
	"github.com/desertthunder/moodlist/internal/shared"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return mr, client
}

func record(id string) models.SelectedTrack {
	return models.SelectedTrack{ID: id, Name: "Song " + id, Artist: "Artist", URL: "https://open.spotify.com/track/" + id}
}

func TestSlots(t *testing.T) {
	ctx := context.Background()

	slots := map[string]func(t *testing.T) Slot{
		"ChannelSlot": func(t *testing.T) Slot { return NewChannelSlot() },
		"RedisSlot": func(t *testing.T) Slot {
			_, client := setupRedis(t)
			return NewRedisSlot(client, "test", time.Minute, shared.NewLogger(&bytes.Buffer{}))
		},
	}

	for name, newSlot := range slots {
		t.Run(name, func(t *testing.T) {
			t.Run("empty read", func(t *testing.T) {
				got, err := newSlot(t).Read(ctx)
				assert.NoError(t, err)
				assert.Nil(t, got)
			})

			t.Run("read does not consume", func(t *testing.T) {
				slot := newSlot(t)
				require.NoError(t, slot.Stage(ctx, record("t1")))

				for range 2 {
					got, err := slot.Read(ctx)
					require.NoError(t, err)
					require.NotNil(t, got)
					assert.Equal(t, "t1", got.ID)
				}
			})

			t.Run("last write wins", func(t *testing.T) {
				slot := newSlot(t)
				require.NoError(t, slot.Stage(ctx, record("t1")))
				require.NoError(t, slot.Stage(ctx, record("t2")))

				got, err := slot.Read(ctx)
				require.NoError(t, err)
				require.NotNil(t, got)
				assert.Equal(t, "t2", got.ID)
			})

			t.Run("clear is idempotent", func(t *testing.T) {
				slot := newSlot(t)
				require.NoError(t, slot.Stage(ctx, record("t1")))
				require.NoError(t, slot.Clear(ctx))
				require.NoError(t, slot.Clear(ctx))

				got, err := slot.Read(ctx)
				assert.NoError(t, err)
				assert.Nil(t, got)
			})

			t.Run("description round trips", func(t *testing.T) {
				slot := newSlot(t)
				r := record("t1")
				r.Description = "for rainy days"
				require.NoError(t, slot.Stage(ctx, r))

				got, err := slot.Read(ctx)
				require.NoError(t, err)
				assert.Equal(t, r, *got)
			})
		})
	}
}

func TestChannelSlotConcurrentStage(t *testing.T) {
	ctx := context.Background()
	slot := NewChannelSlot()

	var wg sync.WaitGroup
	for i := range 50 {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_ = slot.Stage(ctx, models.SelectedTrack{ID: string(rune('a' + i%26))})
			_, _ = slot.Read(ctx)
		}(i)
	}
	wg.Wait()

	got, err := slot.Read(ctx)
	require.NoError(t, err)
	assert.NotNil(t, got, "slot should hold exactly one record after concurrent stages")
}

func TestRedisSlot(t *testing.T) {
	ctx := context.Background()

	t.Run("uses session key with ttl", func(t *testing.T) {
		mr, client := setupRedis(t)
		slot := NewRedisSlot(client, "shell-42", 30*time.Minute, nil)

		require.NoError(t, slot.Stage(ctx, record("t1")))

		assert.True(t, mr.Exists("moodlist:handoff:shell-42"))
		assert.Equal(t, 30*time.Minute, mr.TTL("moodlist:handoff:shell-42"))
	})

	t.Run("expires with the session", func(t *testing.T) {
		mr, client := setupRedis(t)
		slot := NewRedisSlot(client, "s", time.Minute, nil)
		require.NoError(t, slot.Stage(ctx, record("t1")))

		mr.FastForward(2 * time.Minute)

		got, err := slot.Read(ctx)
		assert.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("sessions are isolated", func(t *testing.T) {
		_, client := setupRedis(t)
		a := NewRedisSlot(client, "a", time.Minute, nil)
		b := NewRedisSlot(client, "b", time.Minute, nil)
		require.NoError(t, a.Stage(ctx, record("t1")))

		got, err := b.Read(ctx)
		assert.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("malformed content is treated as empty", func(t *testing.T) {
		mr, client := setupRedis(t)
		var logs bytes.Buffer
		slot := NewRedisSlot(client, "s", time.Minute, shared.NewLogger(&logs))
		require.NoError(t, mr.Set(SessionKey("s"), "{not json"))

		got, err := slot.Read(ctx)
		assert.NoError(t, err)
		assert.Nil(t, got)
		assert.Contains(t, logs.String(), "unreadable")
	})

	t.Run("server down", func(t *testing.T) {
		mr, client := setupRedis(t)
		slot := NewRedisSlot(client, "s", time.Minute, nil)
		mr.Close()

		_, err := slot.Read(ctx)
		assert.Error(t, err)
		assert.Error(t, slot.Stage(ctx, record("t1")))
	})
}

func TestDialRedis(t *testing.T) {
	ctx := context.Background()

	t.Run("empty url", func(t *testing.T) {
		_, err := DialRedis(ctx, "")
		assert.ErrorIs(t, err, shared.ErrServiceUnavailable)
	})

	t.Run("invalid url", func(t *testing.T) {
		_, err := DialRedis(ctx, "http://nope")
		assert.ErrorIs(t, err, shared.ErrInvalidConfig)
	})

	t.Run("connects", func(t *testing.T) {
		mr := miniredis.RunT(t)
		client, err := DialRedis(ctx, "redis://"+mr.Addr())
		require.NoError(t, err)
		defer client.Close()
	})
}
