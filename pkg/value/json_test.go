package value

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToJSONSortsMapKeys(t *testing.T) {
	v := Map(map[string]Value{
		"name":   String("Alice"),
		"age":    Integer(30),
		"active": Bool(true),
	})
	assert.Equal(t, `{"active": true,"age": 30,"name": "Alice"}`, v.ToJSON(false))
}

func TestToJSONScalars(t *testing.T) {
	tests := []struct {
		name string
		v    Value
		want string
	}{
		{"string", String("hi"), `"hi"`},
		{"integer", Integer(-12), "-12"},
		{"float", Float(1.25), "1.25"},
		{"bool true", Bool(true), "true"},
		{"bool false", Bool(false), "false"},
		{"positive infinity", Float(math.Inf(1)), `"Infinity"`},
		{"negative infinity", Float(math.Inf(-1)), `"-Infinity"`},
		{"nan", Float(math.NaN()), `"NaN"`},
		{"empty array", Array(), "[]"},
		{"empty map", Map(nil), "{}"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.v.ToJSON(false))
			// Scalars and empty containers render identically in pretty mode.
			assert.Equal(t, tt.want, tt.v.ToJSON(true))
		})
	}
}

func TestToJSONStringEscaping(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"quote", `say "hi"`, `"say \"hi\""`},
		{"backslash", `a\b`, `"a\\b"`},
		{"newline", "a\nb", `"a\nb"`},
		{"carriage return", "a\rb", `"a\rb"`},
		{"tab", "a\tb", `"a\tb"`},
		{"backspace", "a\bb", `"a\bb"`},
		{"form feed", "a\fb", `"a\fb"`},
		{"other control", "a\x01b", `"ab"`},
		{"non-ascii passes through", "héllo ☃", `"héllo ☃"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, String(tt.in).ToJSON(false))
		})
	}
}

func TestToJSONPretty(t *testing.T) {
	v := Map(map[string]Value{
		"b": Integer(1),
		"a": Array(Integer(1), Integer(2)),
	})

	want := "{\n" +
		"  \"a\": [\n" +
		"    1,\n" +
		"    2\n" +
		"  ],\n" +
		"  \"b\": 1\n" +
		"}"
	assert.Equal(t, want, v.ToJSON(true))
}

func TestParseJSONKeepsIntegerFloatDistinction(t *testing.T) {
	v, err := ParseJSON([]byte(`{"i": 3, "f": 3.0, "e": 3e2}`))
	require.NoError(t, err)

	fields, ok := v.MapVal()
	require.True(t, ok)
	assert.Equal(t, KindInteger, fields["i"].Kind())
	assert.Equal(t, KindFloat, fields["f"].Kind())
	assert.Equal(t, KindFloat, fields["e"].Kind())
}

func TestParseJSONRoundTrip(t *testing.T) {
	v := Map(map[string]Value{
		"name":  String("Alice"),
		"age":   Integer(30),
		"score": Float(99.5),
		"tags":  Array(String("a"), String("b")),
		"meta":  Map(map[string]Value{"active": Bool(true)}),
	})

	parsed, err := ParseJSON([]byte(v.ToJSON(false)))
	require.NoError(t, err)
	assert.True(t, parsed.Equal(v))

	parsed, err = ParseJSON([]byte(v.ToJSON(true)))
	require.NoError(t, err)
	assert.True(t, parsed.Equal(v))
}

func TestParseJSONNullHandling(t *testing.T) {
	// A null object member drops the key.
	v, err := ParseJSON([]byte(`{"a": 1, "b": null}`))
	require.NoError(t, err)
	want := Map(map[string]Value{"a": Integer(1)})
	assert.True(t, v.Equal(want))

	// Null has no representation elsewhere.
	_, err = ParseJSON([]byte(`[1, null]`))
	assert.Error(t, err)

	_, err = ParseJSON([]byte(`null`))
	assert.Error(t, err)
}

func TestParseJSONRejectsMalformed(t *testing.T) {
	for _, in := range []string{``, `{`, `{"a": }`, `1 2`} {
		_, err := ParseJSON([]byte(in))
		assert.Error(t, err, "input %q", in)
	}
}

func TestParseJSONIntegerOverflow(t *testing.T) {
	_, err := ParseJSON([]byte(`99999999999999999999999999`))
	assert.Error(t, err)
}
