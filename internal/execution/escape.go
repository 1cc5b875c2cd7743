package execution

import "strings"

// globMeta are the characters the runner's --spec glob parser treats specially
const globMeta = `\*?[]{}()!`

// EscapeGlob backslash-escapes glob syntax so a literal path only matches itself
func EscapeGlob(path string) string {
	if !strings.ContainsAny(path, globMeta) {
		return path
	}
	var b strings.Builder
	b.Grow(len(path) + 4)
	for _, r := range path {
		if strings.ContainsRune(globMeta, r) {
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}
