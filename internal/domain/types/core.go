package types

import "strings"

// Address is an account address on the ledger, lower-cased 0x-prefixed hex.
// It identifies both identities and conversation counterparties.
type Address string

// NormalizeAddress lower-cases an address so map keys and comparisons are
// stable regardless of how the caller checksummed it.
func NormalizeAddress(raw string) Address {
	return Address(strings.ToLower(strings.TrimSpace(raw)))
}

// PairKey is a canonical key for the unordered pair (a, b): the
// lexicographically lower address always comes first. Both sides of a
// conversation derive the same key.
func PairKey(a, b Address) string {
	if b < a {
		a, b = b, a
	}
	return string(a) + "|" + string(b)
}

// LowerAddress returns the lexicographically lower of the two addresses.
// Used as the deterministic winner in session-key tie-breaks.
func LowerAddress(a, b Address) Address {
	if b < a {
		return b
	}
	return a
}

// UserInfo is the public profile a registered account published on the ledger.
type UserInfo struct {
	Name       string `json:"name"`
	ProfileCID string `json:"profileCid"`
}
