package whitelist

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis"
	"github.com/ethereum/go-ethereum/log"
	"github.com/stretchr/testify/require"
)

var redisServer *miniredis.Miniredis
var redisStore *RedisSnapshotStore

func resetRedis() {
	var err error
	if redisServer != nil {
		redisServer.Close()
	}

	redisServer, err = miniredis.Run()
	if err != nil {
		panic(err)
	}

	redisStore, err = NewRedisSnapshotStore(redisServer.Addr())
	if err != nil {
		panic(err)
	}
}

func TestRedisSnapshotStoreSetup(t *testing.T) {
	_, err := NewRedisSnapshotStore("localhost:18279")
	require.NotNil(t, err, err)
}

func TestRedisSnapshotStore(t *testing.T) {
	resetRedis()
	ctx := context.Background()

	_, found, err := redisStore.Get(ctx)
	require.Nil(t, err, err)
	require.False(t, found)

	err = redisStore.Set(ctx, []string{"0xaa", "0xbb"}, time.Minute)
	require.Nil(t, err, err)

	addrs, found, err := redisStore.Get(ctx)
	require.Nil(t, err, err)
	require.True(t, found)
	require.Equal(t, []string{"0xaa", "0xbb"}, addrs)

	// After the ttl passes the snapshot is gone
	redisServer.FastForward(time.Minute + time.Second)
	_, found, err = redisStore.Get(ctx)
	require.Nil(t, err, err)
	require.False(t, found)
}

func TestCachedLoaderWithRedis(t *testing.T) {
	resetRedis()
	inner := &countingLoader{addrs: []string{"0xaa"}}
	c := NewCachedLoader(log.New(), inner, redisStore, time.Minute)

	for i := 0; i < 2; i++ {
		addrs, err := c.LoadEligibleAddresses(context.Background())
		require.NoError(t, err)
		require.Equal(t, []string{"0xaa"}, addrs)
	}
	require.Equal(t, 1, inner.calls)
}
