package draftpress

import (
	"strings"
	"unicode"
)

// Slugify converts a post title to a URL-safe slug: lowercase, punctuation
// stripped, whitespace and hyphen runs collapsed to a single hyphen, leading
// and trailing hyphens removed. Idempotent, so re-running it on an already
// normalized slug is a no-op.
func Slugify(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	var b strings.Builder
	hyphen := false
	for _, r := range s {
		switch {
		case r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
			hyphen = false
		case r == '-' || unicode.IsSpace(r):
			if !hyphen && b.Len() > 0 {
				b.WriteByte('-')
				hyphen = true
			}
		}
	}
	return strings.TrimRight(b.String(), "-")
}

// SplitCSV splits a comma-separated display string into trimmed, non-empty
// values. Order is preserved and duplicates are kept.
func SplitCSV(s string) []string {
	var out []string
	for _, v := range strings.Split(s, ",") {
		if t := strings.TrimSpace(v); t != "" {
			out = append(out, t)
		}
	}
	return out
}

// JoinCSV is the inverse of SplitCSV for form display.
func JoinCSV(vals []string) string {
	return strings.Join(vals, ", ")
}
