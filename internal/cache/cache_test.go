package cache

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memStore struct {
	mu   sync.Mutex
	data map[string][]byte
}

func newMemStore() *memStore {
	return &memStore{data: map[string][]byte{}}
}

func (m *memStore) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.data[key], nil
}

func (m *memStore) Set(_ context.Context, key string, value []byte, _ time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	return nil
}

func (m *memStore) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

func TestClient_NilIsMiss(t *testing.T) {
	var c *Client
	ctx := context.Background()

	data, err := c.Get(ctx, "k")
	assert.NoError(t, err)
	assert.Nil(t, data)
	assert.NoError(t, c.Set(ctx, "k", []byte("v"), time.Minute))
	assert.NoError(t, c.Delete(ctx, "k"))
	assert.Error(t, c.Ping(ctx))
	assert.NoError(t, c.Close())
}

func TestClient_UnreachableRedisIsMiss(t *testing.T) {
	c := New("127.0.0.1:1", "", 0)
	defer c.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	assert.Error(t, c.Ping(ctx))

	data, err := c.Get(ctx, "user:1")
	assert.NoError(t, err)
	assert.Nil(t, data)
	assert.NoError(t, c.Set(ctx, "user:1", []byte("{}"), time.Minute))
	assert.NoError(t, c.Delete(ctx, "user:1"))
}

func TestJSONHelpers(t *testing.T) {
	type payload struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	}
	ctx := context.Background()
	store := newMemStore()

	var out payload
	assert.False(t, GetJSON(ctx, store, "user:1", &out))

	SetJSON(ctx, store, "user:1", payload{ID: "1", Name: "Alice"}, time.Minute)
	require.True(t, GetJSON(ctx, store, "user:1", &out))
	assert.Equal(t, payload{ID: "1", Name: "Alice"}, out)

	require.NoError(t, store.Set(ctx, "user:2", []byte("not json"), time.Minute))
	assert.False(t, GetJSON(ctx, store, "user:2", &out))

	assert.False(t, GetJSON(ctx, nil, "user:1", &out))
	SetJSON(ctx, nil, "user:1", out, time.Minute)
}
