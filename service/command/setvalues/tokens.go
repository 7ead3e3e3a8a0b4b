package setvalues

import (
	"github.com/viant/parsly"
)

// Token codes
const (
	fieldRefCode = iota
	textCode
)

// Token definitions
var (
	fieldRefToken = parsly.NewToken(fieldRefCode, "FieldRef", &fieldRefMatcher{})
	textToken     = parsly.NewToken(textCode, "Text", &textMatcher{})
)

// fieldRefMatcher matches @{name} field references.
type fieldRefMatcher struct{}

func (m *fieldRefMatcher) Match(cursor *parsly.Cursor) int {
	input := cursor.Input
	pos := cursor.Pos
	size := cursor.InputSize

	if pos+2 >= size || input[pos] != '@' || input[pos+1] != '{' {
		return 0
	}
	for i := pos + 2; i < size; i++ {
		if input[i] == '}' {
			if i == pos+2 {
				// empty reference stays literal
				return 0
			}
			return i - pos + 1
		}
	}
	return 0
}

// textMatcher matches literal text up to the next field reference.
type textMatcher struct{}

func (m *textMatcher) Match(cursor *parsly.Cursor) int {
	input := cursor.Input
	pos := cursor.Pos
	size := cursor.InputSize

	if pos >= size {
		return 0
	}
	matched := 1
	for i := pos + 1; i < size; i++ {
		if input[i] == '@' && i+1 < size && input[i+1] == '{' {
			break
		}
		matched++
	}
	return matched
}
