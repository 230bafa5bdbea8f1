package whitelist

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/log"
	"github.com/stretchr/testify/require"
)

type countingLoader struct {
	calls int
	addrs []string
	err   error
}

func (c *countingLoader) LoadEligibleAddresses(ctx context.Context) ([]string, error) {
	c.calls++
	return c.addrs, c.err
}

func TestCachedLoaderDisabled(t *testing.T) {
	inner := &countingLoader{addrs: []string{"0xaa"}}
	c := NewCachedLoader(log.New(), inner, NewMemorySnapshotStore(), 0)
	for i := 0; i < 3; i++ {
		addrs, err := c.LoadEligibleAddresses(context.Background())
		require.NoError(t, err)
		require.Equal(t, []string{"0xaa"}, addrs)
	}
	require.Equal(t, 3, inner.calls)
}

func TestCachedLoaderTTL(t *testing.T) {
	defer func() { Now = time.Now }()
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	Now = func() time.Time { return now }

	inner := &countingLoader{addrs: []string{"0xaa"}}
	c := NewCachedLoader(log.New(), inner, NewMemorySnapshotStore(), time.Minute)

	_, err := c.LoadEligibleAddresses(context.Background())
	require.NoError(t, err)
	_, err = c.LoadEligibleAddresses(context.Background())
	require.NoError(t, err)
	require.Equal(t, 1, inner.calls)

	now = now.Add(time.Minute)
	inner.addrs = []string{"0xbb"}
	addrs, err := c.LoadEligibleAddresses(context.Background())
	require.NoError(t, err)
	require.Equal(t, []string{"0xbb"}, addrs)
	require.Equal(t, 2, inner.calls)
}

func TestCachedLoaderDoesNotCacheFailures(t *testing.T) {
	inner := &countingLoader{err: ErrNoAddressesAvailable}
	c := NewCachedLoader(log.New(), inner, NewMemorySnapshotStore(), time.Minute)

	_, err := c.LoadEligibleAddresses(context.Background())
	require.ErrorIs(t, err, ErrNoAddressesAvailable)

	inner.err = nil
	inner.addrs = []string{"0xaa"}
	addrs, err := c.LoadEligibleAddresses(context.Background())
	require.NoError(t, err)
	require.Equal(t, []string{"0xaa"}, addrs)
	require.Equal(t, 2, inner.calls)
}

type brokenStore struct{}

func (brokenStore) Get(context.Context) ([]string, bool, error) {
	return nil, false, errors.New("store down")
}

func (brokenStore) Set(context.Context, []string, time.Duration) error {
	return errors.New("store down")
}

func TestCachedLoaderStoreFailureFallsBack(t *testing.T) {
	inner := &countingLoader{addrs: []string{"0xaa"}}
	c := NewCachedLoader(log.New(), inner, brokenStore{}, time.Minute)
	addrs, err := c.LoadEligibleAddresses(context.Background())
	require.NoError(t, err)
	require.Equal(t, []string{"0xaa"}, addrs)
}
