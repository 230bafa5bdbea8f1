package whitelist

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/log"
	"github.com/primitivehl/whitelist-checker/adapters/webfile"
	"github.com/primitivehl/whitelist-checker/testutils"
	"github.com/stretchr/testify/require"
)

type staticSource struct {
	name    string
	content string
	err     error
}

func (s staticSource) Name() string { return s.name }

func (s staticSource) Fetch(ctx context.Context) ([]byte, error) {
	if s.err != nil {
		return nil, s.err
	}
	return []byte(s.content), nil
}

type panickingSource struct{}

func (panickingSource) Name() string { return "panicking" }

func (panickingSource) Fetch(context.Context) ([]byte, error) {
	panic("source blew up")
}

func TestLoaderConcatenatesSources(t *testing.T) {
	l := NewLoader(log.New(),
		staticSource{name: "a", content: "0xAA\n0xbb\n"},
		staticSource{name: "b", content: "0xbb\nfoo\n0xCC"},
	)
	addrs, err := l.LoadEligibleAddresses(context.Background())
	require.NoError(t, err)
	// duplicates are kept, order follows the configured sources
	require.Equal(t, []string{"0xaa", "0xbb", "0xbb", "0xcc"}, addrs)
}

func TestLoaderSkipsFailingSource(t *testing.T) {
	l := NewLoader(log.New(),
		staticSource{name: "broken", err: errors.New("connection refused")},
		staticSource{name: "ok", content: testutils.TestAddrMember},
	)
	addrs, err := l.LoadEligibleAddresses(context.Background())
	require.NoError(t, err)
	require.Equal(t, []string{testutils.TestAddrMember}, addrs)
}

func TestLoaderAllSourcesFail(t *testing.T) {
	l := NewLoader(log.New(),
		staticSource{name: "a", err: errors.New("boom")},
		staticSource{name: "b", err: errors.New("boom")},
	)
	addrs, err := l.LoadEligibleAddresses(context.Background())
	require.ErrorIs(t, err, ErrNoAddressesAvailable)
	require.Nil(t, addrs)
}

func TestLoaderAllSourcesEmpty(t *testing.T) {
	l := NewLoader(log.New(),
		staticSource{name: "a", content: "\n\n"},
		staticSource{name: "b", content: "nothing here"},
	)
	_, err := l.LoadEligibleAddresses(context.Background())
	require.ErrorIs(t, err, ErrNoAddressesAvailable)
}

func TestLoaderNoSources(t *testing.T) {
	_, err := NewLoader(log.New()).LoadEligibleAddresses(context.Background())
	require.ErrorIs(t, err, ErrNoAddressesAvailable)
}

func TestLoaderOverHTTP(t *testing.T) {
	files := testutils.NewListFiles()
	files.Set("/eligible.txt", "0xAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAA1\nnot-an-address\n\n0xBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBB2")
	files.Fail("/eligible2.txt", http.StatusInternalServerError)
	srv := httptest.NewServer(files)
	defer srv.Close()

	l := NewLoader(log.New(),
		webfile.NewFetcher(srv.URL+"/eligible.txt", time.Second),
		webfile.NewFetcher(srv.URL+"/eligible2.txt", time.Second),
	)
	addrs, err := l.LoadEligibleAddresses(context.Background())
	require.NoError(t, err)
	require.Equal(t, []string{
		"0xaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa1",
		"0xbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb2",
	}, addrs)

	require.Equal(t, 1, files.Hits("/eligible.txt"))
	require.Equal(t, 1, files.Hits("/eligible2.txt"))
	require.Contains(t, files.Queries("/eligible.txt")[0], webfile.CacheBustParam+"=")
}

func TestLoaderRecoversPanickingSource(t *testing.T) {
	l := NewLoader(log.New(),
		panickingSource{},
		staticSource{name: "ok", content: "0xAA\n"},
	)
	addrs, err := l.LoadEligibleAddresses(context.Background())
	require.NoError(t, err)
	require.Equal(t, []string{"0xaa"}, addrs)

	_, err = NewLoader(log.New(), panickingSource{}).LoadEligibleAddresses(context.Background())
	require.ErrorIs(t, err, ErrNoAddressesAvailable)
}
