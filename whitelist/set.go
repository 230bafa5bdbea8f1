package whitelist

import (
	"strings"

	"github.com/cespare/xxhash/v2"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// Set is the deduplicated eligibility list keyed by canonical address.
type Set map[string]struct{}

func NewSet(addrs []string) Set {
	s := make(Set, len(addrs))
	for _, addr := range addrs {
		s[Canonical(addr)] = struct{}{}
	}
	return s
}

func (s Set) Contains(address string) bool {
	_, ok := s[Canonical(address)]
	return ok
}

func (s Set) Len() int {
	return len(s)
}

func (s Set) Sorted() []string {
	addrs := maps.Keys(s)
	slices.Sort(addrs)
	return addrs
}

// Fingerprint identifies the set contents independent of source order and duplicates.
func (s Set) Fingerprint() uint64 {
	return xxhash.Sum64String(strings.Join(s.Sorted(), "\n"))
}
