package meta

import (
	"os"
	"strings"
	"unicode"
)

// expandEnvExpr replaces all occurrences of ${env.KEY} in the input with the
// value of the environment variable KEY (empty when unset). A malformed
// expression is kept as literal text: a missing closing brace preserves the
// remainder of the input, a key containing characters other than letters,
// digits or '_' preserves the marker and re-scans what follows it.
func expandEnvExpr(value string) string {
	const marker = "${env."
	if !strings.Contains(value, marker) {
		return value
	}
	var b strings.Builder
	for {
		idx := strings.Index(value, marker)
		if idx < 0 {
			b.WriteString(value)
			break
		}
		b.WriteString(value[:idx])
		rest := value[idx+len(marker):]
		end := strings.IndexByte(rest, '}')
		if end < 0 {
			b.WriteString(value[idx:])
			break
		}
		key := rest[:end]
		if !isEnvKey(key) {
			b.WriteString(marker)
			value = rest
			continue
		}
		b.WriteString(os.Getenv(key))
		value = rest[end+1:]
	}
	return b.String()
}

// isEnvKey accepts letters, digits and '_'; the empty key is allowed and
// expands to an empty value.
func isEnvKey(key string) bool {
	for _, r := range key {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_' {
			return false
		}
	}
	return true
}
