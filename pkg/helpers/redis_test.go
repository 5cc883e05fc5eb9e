package helpers

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJSONCacheDisabled(t *testing.T) {
	assert.Nil(t, NewJSONCache(nil, "report", time.Minute))

	rdb := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1"})
	defer rdb.Close()
	assert.Nil(t, NewJSONCache(rdb, "report", 0))

	var c *JSONCache
	var dest map[string]any
	ok, err := c.Get(context.Background(), "k", &dest)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.NoError(t, c.Set(context.Background(), "k", map[string]any{"a": 1}))
	assert.Equal(t, "k", c.Key("k"))
}

func TestJSONCacheUnreachable(t *testing.T) {
	rdb := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1", MaxRetries: -1, DialTimeout: 200 * time.Millisecond})
	defer rdb.Close()

	c := NewJSONCache(rdb, "report", time.Minute)
	require.NotNil(t, c)
	assert.Equal(t, "report:usuarios::", c.Key("usuarios::"))

	var dest map[string]any
	ok, err := c.Get(context.Background(), "usuarios::", &dest)
	assert.Error(t, err)
	assert.False(t, ok)
}
