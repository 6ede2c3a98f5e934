package db_test

import (
	"dam-dash/db"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test the Set and Get methods against the in-memory client
func TestRedisClient_SetAndGet(t *testing.T) {
	tests := []struct {
		name   string
		client db.RedisClient
	}{
		{"MockRedisClient", db.NewMockRedisClient()},
		// {"GoRedisClient", db.NewGoRedisClient(context.Background(), realRedisClient)},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			require.NoError(t, test.client.Set("test-key", "test-value", 0))

			retrieved, err := test.client.Get("test-key")
			require.NoError(t, err)
			assert.Equal(t, "test-value", retrieved)
		})
	}
}

func TestMockRedisClient_GetMissingKey(t *testing.T) {
	client := db.NewMockRedisClient()

	_, err := client.Get("nope")

	assert.ErrorIs(t, err, db.ErrKeyNotFound)
}

func TestMockRedisClient_TTLExpiry(t *testing.T) {
	clock := clockwork.NewFakeClock()
	client := db.NewMockRedisClientWithClock(clock)

	require.NoError(t, client.Set("k", "v", 10*time.Second))

	clock.Advance(9 * time.Second)
	v, err := client.Get("k")
	require.NoError(t, err)
	assert.Equal(t, "v", v)

	clock.Advance(time.Second)
	_, err = client.Get("k")
	assert.ErrorIs(t, err, db.ErrKeyNotFound)
}

func TestRedisClient_Ping(t *testing.T) {
	client := db.NewMockRedisClient()
	assert.NoError(t, client.Ping())
}
