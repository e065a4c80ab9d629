package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNilRedisIsAMiss(t *testing.T) {
	var r *Redis
	ctx := context.Background()

	require.NoError(t, r.SetJSON(ctx, "k", []string{"a"}, time.Minute))
	var got []string
	found, err := r.GetJSON(ctx, "k", &got)
	require.NoError(t, err)
	assert.False(t, found)
	assert.NoError(t, r.Delete(ctx, "k"))
	assert.NoError(t, r.Close())
}

func TestNewRedisRejectsBadURL(t *testing.T) {
	_, err := NewRedis(context.Background(), "://nope")
	assert.Error(t, err)
}

func TestMemoryCache(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	require.NoError(t, m.SetJSON(ctx, "cuisines", []string{"Italian", "Thai"}, time.Minute))
	var got []string
	found, err := m.GetJSON(ctx, "cuisines", &got)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, []string{"Italian", "Thai"}, got)

	require.NoError(t, m.Delete(ctx, "cuisines"))
	found, _ = m.GetJSON(ctx, "cuisines", &got)
	assert.False(t, found)
}

func TestMemoryCacheExpiry(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()
	require.NoError(t, m.SetJSON(ctx, "k", 1, time.Nanosecond))
	time.Sleep(time.Millisecond)

	var got int
	found, err := m.GetJSON(ctx, "k", &got)
	require.NoError(t, err)
	assert.False(t, found)
}

var (
	_ Cache = (*Redis)(nil)
	_ Cache = (*Memory)(nil)
)
