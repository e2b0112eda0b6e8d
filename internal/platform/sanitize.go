package platform

import "strings"

// Characters that are invalid in file names on at least one supported OS
const reservedFilenameChars = `<>:"/\|?*`

// Sanitize converts an arbitrary title into a name safe to use as a file or
// directory name on Windows, macOS and Linux. Each reserved character is
// replaced with an underscore and surrounding whitespace is trimmed. The
// function is pure and idempotent; it never returns path separators.
func Sanitize(name string) string {
	var b strings.Builder
	b.Grow(len(name))

	for _, r := range name {
		if strings.ContainsRune(reservedFilenameChars, r) {
			b.WriteRune('_')
			continue
		}
		b.WriteRune(r)
	}

	return strings.TrimSpace(b.String())
}
