package storage

import (
	"context"
	"testing"
	"time"

	"garim-lab/internal/model"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func inProcess(t *testing.T) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return NewRedisStore(rdb), mr
}

func unreachable(t *testing.T) *RedisStore {
	t.Helper()
	rdb := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 50 * time.Millisecond,
		MaxRetries:  -1,
	})
	t.Cleanup(func() { _ = rdb.Close() })
	return NewRedisStore(rdb)
}

func TestItemsKey(t *testing.T) {
	s := NewRedisStore(nil)
	assert.Equal(t, "garim:feed:category:economy", s.itemsKey("feed:category:economy"))
}

func TestUnreachableRedisReportsErrors(t *testing.T) {
	s := unreachable(t)
	ctx := context.Background()

	_, ok, err := s.Get(ctx, "feed:category:politics")
	assert.False(t, ok)
	assert.Error(t, err)

	err = s.Set(ctx, "feed:category:politics", []model.NewsItem{{Title: "t", Source: "s"}}, time.Minute)
	assert.Error(t, err)
}

func TestSetWithoutTTLIsNoop(t *testing.T) {
	s := unreachable(t)
	assert.NoError(t, s.Set(context.Background(), "k", nil, 0))
}

func TestSetThenGetRoundTrip(t *testing.T) {
	s, mr := inProcess(t)
	ctx := context.Background()
	items := []model.NewsItem{
		{Title: "국회 예산안 통과", Source: "Herald", Link: "https://example.com/1"},
		{Title: "Won slips", Source: "Daily"},
	}

	require.NoError(t, s.Set(ctx, "feed:category:economy", items, 5*time.Minute))
	assert.True(t, mr.Exists("garim:feed:category:economy"))
	assert.Equal(t, 5*time.Minute, mr.TTL("garim:feed:category:economy"))

	got, ok, err := s.Get(ctx, "feed:category:economy")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, items, got)

	ttl, ok, err := s.TTL(ctx, "feed:category:economy")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 5*time.Minute, ttl)
}

func TestMissingAndExpiredKeysAreMisses(t *testing.T) {
	s, mr := inProcess(t)
	ctx := context.Background()

	got, ok, err := s.Get(ctx, "feed:category:politics")
	assert.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, got)

	_, ok, err = s.TTL(ctx, "feed:category:politics")
	assert.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.Set(ctx, "feed:category:politics", []model.NewsItem{{Title: "t", Source: "s"}}, time.Minute))
	mr.FastForward(61 * time.Second)

	_, ok, err = s.Get(ctx, "feed:category:politics")
	assert.NoError(t, err)
	assert.False(t, ok)
}

func TestEmptyListIsCached(t *testing.T) {
	s, _ := inProcess(t)
	ctx := context.Background()
	require.NoError(t, s.Set(ctx, "feed:category:society", []model.NewsItem{}, time.Minute))

	got, ok, err := s.Get(ctx, "feed:category:society")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Empty(t, got)
}

func TestCorruptValueIsAnError(t *testing.T) {
	s, mr := inProcess(t)
	require.NoError(t, mr.Set("garim:feed:category:economy", "not json"))

	_, ok, err := s.Get(context.Background(), "feed:category:economy")
	assert.False(t, ok)
	assert.Error(t, err)
}
