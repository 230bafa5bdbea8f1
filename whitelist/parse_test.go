package whitelist

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseList(t *testing.T) {
	content := "0xAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAA1\nnot-an-address\n\n0xBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBB2"
	addrs := ParseList([]byte(content))
	require.Equal(t, []string{
		"0xaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa1",
		"0xbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb2",
	}, addrs)
}

func TestParseListTrimsAndLowercases(t *testing.T) {
	content := "  0xABC  \r\n\t\n0X1234\n# comment\n0x"
	addrs := ParseList([]byte(content))
	// only the prefix is checked here, validity is decided at lookup time
	require.Equal(t, []string{"0xabc", "0x1234", "0x"}, addrs)
}

func TestParseListEmpty(t *testing.T) {
	require.Empty(t, ParseList(nil))
	require.Empty(t, ParseList([]byte("\n\n   \n")))
}
