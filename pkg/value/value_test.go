package value

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKindString(t *testing.T) {
	tests := []struct {
		kind Kind
		want string
	}{
		{KindString, "string"},
		{KindInteger, "integer"},
		{KindFloat, "float"},
		{KindBool, "bool"},
		{KindArray, "array"},
		{KindMap, "map"},
		{Kind(99), "unknown"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.kind.String())
	}
}

func TestEqualVariantSensitive(t *testing.T) {
	// An Integer is never equal to a Float, even for the same magnitude.
	assert.False(t, Integer(1).Equal(Float(1)))
	assert.False(t, Float(1).Equal(Integer(1)))
	assert.False(t, String("1").Equal(Integer(1)))
	assert.False(t, Bool(true).Equal(Integer(1)))
}

func TestEqualStructural(t *testing.T) {
	tests := []struct {
		name string
		a, b Value
		want bool
	}{
		{"equal strings", String("x"), String("x"), true},
		{"different strings", String("x"), String("y"), false},
		{"equal integers", Integer(42), Integer(42), true},
		{"different integers", Integer(42), Integer(43), false},
		{"equal floats", Float(1.5), Float(1.5), true},
		{"NaN equals NaN", Float(math.NaN()), Float(math.NaN()), true},
		{"infinities differ by sign", Float(math.Inf(1)), Float(math.Inf(-1)), false},
		{"equal bools", Bool(true), Bool(true), true},
		{
			"equal arrays",
			Array(Integer(1), String("a")),
			Array(Integer(1), String("a")),
			true,
		},
		{
			"array order matters",
			Array(Integer(1), Integer(2)),
			Array(Integer(2), Integer(1)),
			false,
		},
		{
			"array length matters",
			Array(Integer(1)),
			Array(Integer(1), Integer(2)),
			false,
		},
		{
			"equal maps regardless of construction order",
			Map(map[string]Value{"a": Integer(1), "b": Integer(2)}),
			Map(map[string]Value{"b": Integer(2), "a": Integer(1)}),
			true,
		},
		{
			"missing key",
			Map(map[string]Value{"a": Integer(1)}),
			Map(map[string]Value{"b": Integer(1)}),
			false,
		},
		{
			"nested trees",
			Map(map[string]Value{"list": Array(Map(map[string]Value{"x": Bool(true)}))}),
			Map(map[string]Value{"list": Array(Map(map[string]Value{"x": Bool(true)}))}),
			true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.a.Equal(tt.b))
		})
	}
}

func TestZeroValueIsEmptyString(t *testing.T) {
	var v Value
	assert.Equal(t, KindString, v.Kind())
	assert.True(t, v.Equal(String("")))
}

func TestAccessors(t *testing.T) {
	s, ok := String("hi").StringVal()
	require.True(t, ok)
	assert.Equal(t, "hi", s)

	i, ok := Integer(7).IntVal()
	require.True(t, ok)
	assert.Equal(t, int64(7), i)

	f, ok := Float(2.5).FloatVal()
	require.True(t, ok)
	assert.Equal(t, 2.5, f)

	b, ok := Bool(true).BoolVal()
	require.True(t, ok)
	assert.True(t, b)

	// Mismatched accessors report !ok.
	_, ok = String("hi").IntVal()
	assert.False(t, ok)
	_, ok = Integer(7).ArrayVal()
	assert.False(t, ok)
	_, ok = Array().MapVal()
	assert.False(t, ok)
}

func TestContainerCopySemantics(t *testing.T) {
	src := map[string]Value{"a": Integer(1)}
	m := Map(src)

	// Mutating the input after construction must not affect the value.
	src["a"] = Integer(99)
	src["b"] = Integer(2)
	fields, ok := m.MapVal()
	require.True(t, ok)
	assert.Len(t, fields, 1)
	assert.True(t, fields["a"].Equal(Integer(1)))

	// Mutating an accessor's result must not affect the value either.
	fields["a"] = Integer(50)
	again, _ := m.MapVal()
	assert.True(t, again["a"].Equal(Integer(1)))

	elems := []Value{Integer(1), Integer(2)}
	arr := Array(elems...)
	elems[0] = Integer(9)
	got, ok := arr.ArrayVal()
	require.True(t, ok)
	assert.True(t, got[0].Equal(Integer(1)))
}

func TestLen(t *testing.T) {
	assert.Equal(t, 0, String("abc").Len())
	assert.Equal(t, 2, Array(Integer(1), Integer(2)).Len())
	assert.Equal(t, 1, Map(map[string]Value{"a": Integer(1)}).Len())
}

func TestAsPlain(t *testing.T) {
	v := Map(map[string]Value{
		"name":   String("Alice"),
		"age":    Integer(30),
		"score":  Float(99.5),
		"active": Bool(true),
		"tags":   Array(String("a"), String("b")),
	})

	plain := v.AsPlain()
	m, ok := plain.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "Alice", m["name"])
	assert.Equal(t, int64(30), m["age"])
	assert.Equal(t, 99.5, m["score"])
	assert.Equal(t, true, m["active"])
	assert.Equal(t, []any{"a", "b"}, m["tags"])
}

func TestFromPlain(t *testing.T) {
	v, err := FromPlain(map[string]any{
		"name": "Alice",
		"age":  30,
		"tags": []any{"a", uint16(2)},
		"gone": nil,
	})
	require.NoError(t, err)

	want := Map(map[string]Value{
		"name": String("Alice"),
		"age":  Integer(30),
		"tags": Array(String("a"), Integer(2)),
	})
	assert.True(t, v.Equal(want), "got %s", v.ToJSON(false))
}

func TestFromPlainRejectsUnsupported(t *testing.T) {
	_, err := FromPlain(struct{}{})
	assert.Error(t, err)

	_, err = FromPlain(nil)
	assert.Error(t, err)

	_, err = FromPlain(uint64(math.MaxUint64))
	assert.Error(t, err)
}
