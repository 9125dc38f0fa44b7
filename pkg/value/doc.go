// Package value defines the structured value model shared by every part of
// the SDK: a closed, recursive union of strings, integers, floats, booleans,
// arrays, and string-keyed maps.
//
// Values are immutable once constructed and compare structurally. There is no
// null variant — an absent map key models absence. The package renders values
// to a deterministic JSON text form (map keys sorted lexicographically) and
// parses that form back, preserving the integer/float distinction and the
// non-finite float specials Infinity, -Infinity, and NaN, which render as
// quoted string tokens since JSON has no native spelling for them.
//
// Example usage:
//
//	import "github.com/beaconkit/go-sdk/pkg/value"
//
//	v := value.Map(map[string]value.Value{
//		"name":   value.String("Alice"),
//		"age":    value.Integer(30),
//		"active": value.Bool(true),
//	})
//
//	text := v.ToJSON(false)
//	// {"active": true,"age": 30,"name": "Alice"}
//
//	parsed, err := value.ParseJSON([]byte(text))
//	if err != nil {
//		log.Fatal(err)
//	}
//	_ = parsed.Equal(v) // true
package value
