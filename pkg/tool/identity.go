package tool

import "strings"

// NormalizeEmail lower-cases an identifier for email matching.
func NormalizeEmail(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// NormalizePassport upper-cases an identifier for passport id matching.
func NormalizePassport(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}
