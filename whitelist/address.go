// Package whitelist loads the eligibility list from its hosted sources and
// answers address validity and membership questions against it.
package whitelist

import (
	"regexp"
	"strings"

	"github.com/ethereum/go-ethereum/common"
)

var addressPattern = regexp.MustCompile(`(?i)^0x[0-9a-f]{40}$`)

// IsValidAddress reports whether raw, once trimmed, is 0x followed by 40 hex
// digits. Checksum casing is not verified.
func IsValidAddress(raw string) bool {
	return addressPattern.MatchString(strings.TrimSpace(raw))
}

// Canonical returns the trimmed, lowercased form used for all comparisons.
func Canonical(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}

// ChecksumAddress returns the EIP-55 form of a valid address, or "" if raw is invalid.
func ChecksumAddress(raw string) string {
	if !IsValidAddress(raw) {
		return ""
	}
	return common.HexToAddress(Canonical(raw)).Hex()
}
