package whitelist

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSetContains(t *testing.T) {
	s := NewSet([]string{
		"0x1111111111111111111111111111111111111111",
		"0x1111111111111111111111111111111111111111",
		"0xABCDEFABCDEFABCDEFABCDEFABCDEFABCDEFABCD",
	})
	require.Equal(t, 2, s.Len())
	require.True(t, s.Contains("0x1111111111111111111111111111111111111111"))
	require.True(t, s.Contains("0xabcdefabcdefabcdefabcdefabcdefabcdefabcd"))
	require.True(t, s.Contains(" 0xAbCdEfAbCdEfAbCdEfAbCdEfAbCdEfAbCdEfAbCd "))
	require.False(t, s.Contains("0x2222222222222222222222222222222222222222"))
}

func TestSetSorted(t *testing.T) {
	s := NewSet([]string{"0xbb", "0xaa", "0xcc", "0xaa"})
	require.Equal(t, []string{"0xaa", "0xbb", "0xcc"}, s.Sorted())
}

func TestSetFingerprintIgnoresOrderAndDuplicates(t *testing.T) {
	a := NewSet([]string{"0xaa", "0xbb"})
	b := NewSet([]string{"0xBB", "0xaa", "0xaa"})
	c := NewSet([]string{"0xaa", "0xcc"})
	require.Equal(t, a.Fingerprint(), b.Fingerprint())
	require.NotEqual(t, a.Fingerprint(), c.Fingerprint())
}
