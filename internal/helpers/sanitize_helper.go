package helpers

import "strings"

// SanitizeKey lowercases s and strips everything outside a-z, 0-9,
// underscore and hyphen, matching the shop host's meta key convention.
func SanitizeKey(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '_', r == '-':
			b.WriteRune(r)
		}
	}
	return b.String()
}
