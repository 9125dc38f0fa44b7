package value

import (
	"math"
	"sort"
)

// Kind identifies the active variant of a Value.
type Kind int

const (
	KindString Kind = iota
	KindInteger
	KindFloat
	KindBool
	KindArray
	KindMap
)

// String returns the kind name used in diagnostics.
func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindInteger:
		return "integer"
	case KindFloat:
		return "float"
	case KindBool:
		return "bool"
	case KindArray:
		return "array"
	case KindMap:
		return "map"
	default:
		return "unknown"
	}
}

// Value is a tagged union over the six supported variants. The zero Value is
// the empty string. Values are immutable; constructors copy container inputs
// so a constructed tree can be shared across goroutines for reading.
type Value struct {
	kind Kind
	str  string
	num  int64
	flt  float64
	bit  bool
	arr  []Value
	obj  map[string]Value
}

// String constructs a string value.
func String(s string) Value {
	return Value{kind: KindString, str: s}
}

// Integer constructs an integer value.
func Integer(i int64) Value {
	return Value{kind: KindInteger, num: i}
}

// Float constructs a floating-point value. NaN and the infinities are valid
// and survive the package's own JSON round trip.
func Float(f float64) Value {
	return Value{kind: KindFloat, flt: f}
}

// Bool constructs a boolean value.
func Bool(b bool) Value {
	return Value{kind: KindBool, bit: b}
}

// Array constructs an ordered array value from the given elements.
func Array(elems ...Value) Value {
	copied := make([]Value, len(elems))
	copy(copied, elems)
	return Value{kind: KindArray, arr: copied}
}

// Map constructs a map value. The input map is copied; keys are unique by
// construction. Iteration order is not significant — rendering sorts keys.
func Map(fields map[string]Value) Value {
	copied := make(map[string]Value, len(fields))
	for k, v := range fields {
		copied[k] = v
	}
	return Value{kind: KindMap, obj: copied}
}

// Kind returns the active variant.
func (v Value) Kind() Kind {
	return v.kind
}

// StringVal returns the string payload. The second result reports whether the
// value is a string.
func (v Value) StringVal() (string, bool) {
	return v.str, v.kind == KindString
}

// IntVal returns the integer payload.
func (v Value) IntVal() (int64, bool) {
	return v.num, v.kind == KindInteger
}

// FloatVal returns the float payload.
func (v Value) FloatVal() (float64, bool) {
	return v.flt, v.kind == KindFloat
}

// BoolVal returns the boolean payload.
func (v Value) BoolVal() (bool, bool) {
	return v.bit, v.kind == KindBool
}

// ArrayVal returns a copy of the element slice.
func (v Value) ArrayVal() ([]Value, bool) {
	if v.kind != KindArray {
		return nil, false
	}
	elems := make([]Value, len(v.arr))
	copy(elems, v.arr)
	return elems, true
}

// MapVal returns a copy of the field map.
func (v Value) MapVal() (map[string]Value, bool) {
	if v.kind != KindMap {
		return nil, false
	}
	fields := make(map[string]Value, len(v.obj))
	for k, e := range v.obj {
		fields[k] = e
	}
	return fields, true
}

// Len returns the element or field count for arrays and maps, and zero for
// scalar variants.
func (v Value) Len() int {
	switch v.kind {
	case KindArray:
		return len(v.arr)
	case KindMap:
		return len(v.obj)
	default:
		return 0
	}
}

// Equal reports deep structural equality. Equality is variant-sensitive:
// Integer(1) is never equal to Float(1). Float comparison treats NaN as equal
// to NaN so encoded trees containing NaN round-trip to equal trees.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case KindString:
		return v.str == o.str
	case KindInteger:
		return v.num == o.num
	case KindFloat:
		if math.IsNaN(v.flt) && math.IsNaN(o.flt) {
			return true
		}
		return v.flt == o.flt
	case KindBool:
		return v.bit == o.bit
	case KindArray:
		if len(v.arr) != len(o.arr) {
			return false
		}
		for i := range v.arr {
			if !v.arr[i].Equal(o.arr[i]) {
				return false
			}
		}
		return true
	case KindMap:
		if len(v.obj) != len(o.obj) {
			return false
		}
		for k, e := range v.obj {
			other, ok := o.obj[k]
			if !ok || !e.Equal(other) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// AsPlain converts the value to a tree of native Go containers and primitives
// (string, int64, float64, bool, []any, map[string]any). It never fails.
func (v Value) AsPlain() any {
	switch v.kind {
	case KindString:
		return v.str
	case KindInteger:
		return v.num
	case KindFloat:
		return v.flt
	case KindBool:
		return v.bit
	case KindArray:
		elems := make([]any, len(v.arr))
		for i, e := range v.arr {
			elems[i] = e.AsPlain()
		}
		return elems
	case KindMap:
		fields := make(map[string]any, len(v.obj))
		for k, e := range v.obj {
			fields[k] = e.AsPlain()
		}
		return fields
	default:
		return nil
	}
}

// sortedKeys returns the map keys in lexicographic order. Only meaningful for
// map values.
func (v Value) sortedKeys() []string {
	keys := make([]string, 0, len(v.obj))
	for k := range v.obj {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
