package lineitem

import (
	"strings"
)

// SanitizeArticleNumber lowercases value, drops every character outside [a-z0-9]
// and truncates the result to the maximum article number length.
func SanitizeArticleNumber(value string) string {
	var b strings.Builder
	b.Grow(len(value))

	for _, r := range strings.ToLower(value) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
			if b.Len() == maxArticleNumberLength {
				break
			}
		}
	}

	return b.String()
}
