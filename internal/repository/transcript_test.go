package repository

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"loanportal/internal/model"
)

func TestMemoryTranscriptStore_AppendAndList(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryTranscriptStore()

	require.NoError(t, store.Append(ctx, "s1", model.ChatMessage{Role: model.RoleAssistant, Content: "hello"}))
	require.NoError(t, store.Append(ctx, "s1", model.ChatMessage{Role: model.RoleUser, Content: "hi"}))
	require.NoError(t, store.Append(ctx, "s2", model.ChatMessage{Role: model.RoleUser, Content: "other"}))

	msgs, err := store.List(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, []model.ChatMessage{
		{Role: model.RoleAssistant, Content: "hello"},
		{Role: model.RoleUser, Content: "hi"},
	}, msgs)

	// the returned slice is a copy
	msgs[0].Content = "changed"
	again, err := store.List(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, "hello", again[0].Content)
}

func TestMemoryTranscriptStore_Delete(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryTranscriptStore()

	require.NoError(t, store.Append(ctx, "s1", model.ChatMessage{Role: model.RoleUser, Content: "hi"}))
	require.NoError(t, store.Delete(ctx, "s1"))

	msgs, err := store.List(ctx, "s1")
	require.NoError(t, err)
	assert.Empty(t, msgs)
}

func TestTranscriptKey(t *testing.T) {
	assert.Equal(t, "loanportal:transcript:abc", transcriptKey("abc"))
}

func TestNewRedisTranscriptStore_InvalidURL(t *testing.T) {
	_, err := NewRedisTranscriptStore(context.Background(), "not a url", 0)
	assert.Error(t, err)
}

func TestRedisTranscriptStore_Unreachable(t *testing.T) {
	rdb := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
		MaxRetries:  -1,
	})
	store := NewRedisTranscriptStoreFromClient(rdb, time.Minute)
	defer store.Close()

	ctx := context.Background()
	err := store.Append(ctx, "s1", model.ChatMessage{Role: model.RoleUser, Content: "hi"})
	assert.ErrorContains(t, err, "failed to append chat message")

	_, err = store.List(ctx, "s1")
	assert.ErrorContains(t, err, "failed to load transcript")
}
