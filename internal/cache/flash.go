package cache

import (
	"context"
	"time"

	"github.com/go-redis/redis/v9"
	"github.com/umalmyha/customer-records/internal/flash"
	"github.com/vmihailenco/msgpack/v5"
)

type flashMessage struct {
	Text      string    `msgpack:"text"`
	CreatedAt time.Time `msgpack:"createdAt"`
}

// RedisFlashStore keeps flash messages in redis list per session and kind
type RedisFlashStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisFlashStore builds RedisFlashStore, queued messages expire after ttl
func NewRedisFlashStore(client *redis.Client, ttl time.Duration) *RedisFlashStore {
	return &RedisFlashStore{client: client, ttl: ttl}
}

// Push appends message and prolongs list expiration
func (s *RedisFlashStore) Push(ctx context.Context, sessionID string, kind flash.Kind, text string) error {
	encoded, err := msgpack.Marshal(&flashMessage{Text: text, CreatedAt: time.Now().UTC()})
	if err != nil {
		return err
	}

	key := flash.Key(sessionID, kind)
	_, err = s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.RPush(ctx, key, encoded)
		pipe.Expire(ctx, key, s.ttl)
		return nil
	})
	return err
}

// Pop reads and removes all messages atomically
func (s *RedisFlashStore) Pop(ctx context.Context, sessionID string, kind flash.Kind) ([]string, error) {
	key := flash.Key(sessionID, kind)

	var lrange *redis.StringSliceCmd
	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		lrange = pipe.LRange(ctx, key, 0, -1)
		pipe.Del(ctx, key)
		return nil
	})
	if err != nil {
		return nil, err
	}

	raw := lrange.Val()
	texts := make([]string, 0, len(raw))
	for _, r := range raw {
		var msg flashMessage
		if err := msgpack.Unmarshal([]byte(r), &msg); err != nil {
			return nil, err
		}
		texts = append(texts, msg.Text)
	}
	return texts, nil
}
