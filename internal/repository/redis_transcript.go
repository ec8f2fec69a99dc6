package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"loanportal/internal/model"
)

const transcriptPrefix = "loanportal:transcript:"

// RedisTranscriptStore keeps transcripts in Redis lists so they survive a
// portal restart. Lists are only ever pushed to; the TTL is refreshed on
// every append and expires whole idle sessions.
type RedisTranscriptStore struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewRedisTranscriptStore connects to redisURL and verifies the connection
func NewRedisTranscriptStore(ctx context.Context, redisURL string, ttl time.Duration) (*RedisTranscriptStore, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}
	rdb := redis.NewClient(opts)

	if err := rdb.Ping(ctx).Err(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return NewRedisTranscriptStoreFromClient(rdb, ttl), nil
}

// NewRedisTranscriptStoreFromClient wraps an existing client
func NewRedisTranscriptStoreFromClient(rdb *redis.Client, ttl time.Duration) *RedisTranscriptStore {
	return &RedisTranscriptStore{rdb: rdb, ttl: ttl}
}

func transcriptKey(sessionID string) string {
	return transcriptPrefix + sessionID
}

// Append pushes msg onto the session list
func (r *RedisTranscriptStore) Append(ctx context.Context, sessionID string, msg model.ChatMessage) error {
	data, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to marshal chat message: %w", err)
	}

	key := transcriptKey(sessionID)
	pipe := r.rdb.TxPipeline()
	pipe.RPush(ctx, key, data)
	if r.ttl > 0 {
		pipe.Expire(ctx, key, r.ttl)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to append chat message: %w", err)
	}
	return nil
}

// List reads the full session transcript in order
func (r *RedisTranscriptStore) List(ctx context.Context, sessionID string) ([]model.ChatMessage, error) {
	raw, err := r.rdb.LRange(ctx, transcriptKey(sessionID), 0, -1).Result()
	if err == redis.Nil {
		return []model.ChatMessage{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load transcript: %w", err)
	}

	msgs := make([]model.ChatMessage, 0, len(raw))
	for _, item := range raw {
		var msg model.ChatMessage
		if err := json.Unmarshal([]byte(item), &msg); err != nil {
			return nil, fmt.Errorf("failed to unmarshal chat message: %w", err)
		}
		msgs = append(msgs, msg)
	}
	return msgs, nil
}

// Delete removes the session transcript
func (r *RedisTranscriptStore) Delete(ctx context.Context, sessionID string) error {
	if err := r.rdb.Del(ctx, transcriptKey(sessionID)).Err(); err != nil {
		return fmt.Errorf("failed to delete transcript: %w", err)
	}
	return nil
}

// Close closes the underlying client
func (r *RedisTranscriptStore) Close() error {
	return r.rdb.Close()
}

// Ensure both stores implement TranscriptStore
var (
	_ TranscriptStore = (*MemoryTranscriptStore)(nil)
	_ TranscriptStore = (*RedisTranscriptStore)(nil)
)
