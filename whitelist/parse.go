package whitelist

import "strings"

// ParseList extracts canonical addresses from a newline-delimited source.
// Blank lines and lines not starting with 0x are dropped.
func ParseList(content []byte) []string {
	lines := strings.Split(string(content), "\n")
	addrs := make([]string, 0, len(lines))
	for _, line := range lines {
		addr := Canonical(line)
		if len(addr) > 0 && strings.HasPrefix(addr, "0x") {
			addrs = append(addrs, addr)
		}
	}
	return addrs
}
