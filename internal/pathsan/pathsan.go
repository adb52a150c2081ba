// Package pathsan rewrites a path component so it is legal to write on
// a target platform, given that platform's separator.
package pathsan

import "strings"

// illegal is the character set that cannot appear in a path component
// on the common target filesystems (Windows in particular).
const illegal = `"*:<>?|`

// Sanitize rewrites path for the given separator. Every illegal
// character becomes an underscore, except on backslash-separated
// platforms: the first colon in a leading drive-letter position
// (`C:\...`) is preserved, and any further colon becomes a semicolon
// rather than an underscore, matching observed tool behavior.
func Sanitize(path string, separator byte) string {
	if separator == '\\' {
		return sanitizeWindows(path)
	}
	return sanitizePlain(path)
}

func sanitizePlain(path string) string {
	var b strings.Builder
	b.Grow(len(path))
	for _, r := range path {
		if strings.ContainsRune(illegal, r) {
			b.WriteByte('_')
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func sanitizeWindows(path string) string {
	driveColon := driveColonIndex(path)

	var b strings.Builder
	b.Grow(len(path))

	for i, r := range path {
		if i == driveColon {
			b.WriteRune(r)
			continue
		}
		switch {
		case r == ':':
			b.WriteByte(';')
		case strings.ContainsRune(illegal, r):
			b.WriteByte('_')
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// driveColonIndex returns the byte offset of the colon in a leading
// drive-letter prefix (e.g. "C:"), or -1 if path has none.
func driveColonIndex(path string) int {
	if len(path) >= 2 && isDriveLetter(path[0]) && path[1] == ':' {
		return 1
	}
	return -1
}

func isDriveLetter(c byte) bool {
	return (c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z')
}
