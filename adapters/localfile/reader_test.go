package localfile

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestReaderFetch(t *testing.T) {
	path := filepath.Join(t.TempDir(), "eligible.txt")
	require.NoError(t, os.WriteFile(path, []byte("0xabc\n"), 0o600))

	r := NewReader(path)
	bts, err := r.Fetch(context.Background())
	require.NoError(t, err)
	require.Equal(t, "0xabc\n", string(bts))
	require.Equal(t, "file://"+path, r.Name())
}

func TestReaderMissingFile(t *testing.T) {
	r := NewReader(filepath.Join(t.TempDir(), "missing.txt"))
	_, err := r.Fetch(context.Background())
	require.Error(t, err)
}

func TestReaderCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewReader("unused").Fetch(ctx)
	require.ErrorIs(t, err, context.Canceled)
}
