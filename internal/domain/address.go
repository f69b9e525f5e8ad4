package domain

import "strings"

// NormalizeAddress collapses whitespace so equivalent addresses share cache keys.
func NormalizeAddress(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
