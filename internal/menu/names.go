package menu

import (
	"strings"
	"unicode"

	"github.com/fatih/camelcase"
)

// DeriveLabel turns a view type name into a display label:
// CustomerListView becomes "Customer List".
func DeriveLabel(typeName string) string {
	trimmed := strings.TrimSuffix(typeName, "View")
	if trimmed == "" {
		return ""
	}
	return strings.Join(camelcase.Split(trimmed), " ")
}

// stripUI removes every "UI" from a host type name, so DemoUI becomes Demo.
func stripUI(typeName string) string {
	return strings.ReplaceAll(typeName, "UI", "")
}

func upperCamelToLowerHyphen(s string) string {
	runes := []rune(s)
	var b strings.Builder
	b.Grow(len(s) + 4)
	for i, r := range runes {
		if unicode.IsUpper(r) {
			if hyphenBefore(runes, i) {
				b.WriteByte('-')
			}
			r = unicode.ToLower(r)
		}
		b.WriteRune(r)
	}
	return b.String()
}

// hyphenBefore reports whether the capital at i starts a new word: after a
// non-capital, or as the last capital of a run followed by lower case.
func hyphenBefore(runes []rune, i int) bool {
	if i == 0 {
		return false
	}
	if !unicode.IsUpper(runes[i-1]) {
		return true
	}
	return i+1 < len(runes) && unicode.IsLower(runes[i+1])
}
