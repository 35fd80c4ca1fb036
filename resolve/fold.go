package resolve

import (
	"strings"
	"unicode"
)

// foldName normalizes a member name for loose matching: case-folded to lower with
// the separators '_', '-' and ' ' removed, so "created_at", "CreatedAt" and
// "created-at" all fold to "createdat".
func foldName(s string) string {
	var b strings.Builder

	b.Grow(len(s))

	for _, r := range s {
		if isSeparator(r) {
			continue
		}

		b.WriteRune(unicode.ToLower(r))
	}

	return b.String()
}

func isSeparator(r rune) bool {
	return r == '_' || r == '-' || r == ' '
}

// tagName returns the name part of a struct tag value, ignoring options.
// "-" means the member is hidden under that tag.
func tagName(tag string) string {
	if tag == "" || tag == "-" {
		return ""
	}

	if idx := strings.IndexByte(tag, ','); idx >= 0 {
		tag = tag[:idx]
	}

	return tag
}
