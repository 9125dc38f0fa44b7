package encoding

import (
	"strings"
	"unicode"
)

// KeyStrategy controls how field names map to wire keys. The encoder applies
// the strategy to every field name it writes; a decoder configured with the
// same strategy converts the target field name before looking it up, so
// matching encoder/decoder pairs are inverses of each other.
type KeyStrategy struct {
	kind keyStrategyKind
	fn   func(path []string, key string) string
}

type keyStrategyKind int

const (
	keysAsWritten keyStrategyKind = iota
	keysSnakeCase
	keysCustom
)

// KeysAsWritten leaves field names untouched. This is the default.
var KeysAsWritten = KeyStrategy{kind: keysAsWritten}

// KeysSnakeCase converts camelCase field names to snake_case, keeping
// acronym runs together: "userURL" becomes "user_url".
var KeysSnakeCase = KeyStrategy{kind: keysSnakeCase}

// KeysCustom derives the wire key from the field path. The function receives
// the container path from the root (original field names, outermost first)
// and the field name being written or looked up.
func KeysCustom(fn func(path []string, key string) string) KeyStrategy {
	return KeyStrategy{kind: keysCustom, fn: fn}
}

func (s KeyStrategy) apply(path []string, key string) string {
	switch s.kind {
	case keysSnakeCase:
		return toSnakeCase(key)
	case keysCustom:
		return s.fn(path, key)
	default:
		return key
	}
}

// toSnakeCase lowercases camelCase boundaries. An uppercase run stays a
// single word: "URLValue" -> "url_value", "key2Value" -> "key2_value".
func toSnakeCase(s string) string {
	runes := []rune(s)
	var b strings.Builder
	b.Grow(len(s) + 4)
	for i, r := range runes {
		if !unicode.IsUpper(r) {
			b.WriteRune(r)
			continue
		}
		if i > 0 {
			prev := runes[i-1]
			nextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])
			if unicode.IsLower(prev) || unicode.IsDigit(prev) || (unicode.IsUpper(prev) && nextLower) {
				b.WriteByte('_')
			}
		}
		b.WriteRune(unicode.ToLower(r))
	}
	return b.String()
}
