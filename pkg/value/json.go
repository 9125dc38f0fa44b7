package value

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ToJSON renders the value as deterministic JSON text. Map keys are emitted in
// sorted lexicographic order regardless of construction order, so equal trees
// always produce byte-identical output.
//
// Non-finite floats render as the quoted tokens "Infinity", "-Infinity", and
// "NaN". This is a deliberate deviation from strict JSON numeric syntax;
// consumers that require strict JSON must reject or pre-process these tokens,
// while this package's own ParseJSON/decoder round trip preserves them.
//
// Pretty mode indents nested containers two spaces per level. Empty containers
// render as "[]" and "{}" with no internal newline.
func (v Value) ToJSON(pretty bool) string {
	var b strings.Builder
	writeJSON(&b, v, pretty, 0)
	return b.String()
}

func writeJSON(b *strings.Builder, v Value, pretty bool, depth int) {
	switch v.kind {
	case KindString:
		writeJSONString(b, v.str)
	case KindInteger:
		b.WriteString(strconv.FormatInt(v.num, 10))
	case KindFloat:
		writeJSONFloat(b, v.flt)
	case KindBool:
		b.WriteString(strconv.FormatBool(v.bit))
	case KindArray:
		writeJSONArray(b, v, pretty, depth)
	case KindMap:
		writeJSONMap(b, v, pretty, depth)
	}
}

func writeJSONArray(b *strings.Builder, v Value, pretty bool, depth int) {
	if len(v.arr) == 0 {
		b.WriteString("[]")
		return
	}
	b.WriteByte('[')
	for i, e := range v.arr {
		if i > 0 {
			b.WriteByte(',')
		}
		if pretty {
			b.WriteByte('\n')
			writeIndent(b, depth+1)
		}
		writeJSON(b, e, pretty, depth+1)
	}
	if pretty {
		b.WriteByte('\n')
		writeIndent(b, depth)
	}
	b.WriteByte(']')
}

func writeJSONMap(b *strings.Builder, v Value, pretty bool, depth int) {
	if len(v.obj) == 0 {
		b.WriteString("{}")
		return
	}
	b.WriteByte('{')
	for i, key := range v.sortedKeys() {
		if i > 0 {
			b.WriteByte(',')
		}
		if pretty {
			b.WriteByte('\n')
			writeIndent(b, depth+1)
		}
		writeJSONString(b, key)
		b.WriteString(": ")
		writeJSON(b, v.obj[key], pretty, depth+1)
	}
	if pretty {
		b.WriteByte('\n')
		writeIndent(b, depth)
	}
	b.WriteByte('}')
}

func writeIndent(b *strings.Builder, depth int) {
	for i := 0; i < depth; i++ {
		b.WriteString("  ")
	}
}

// writeJSONString escapes per standard JSON rules: quote, backslash, the named
// control escapes, and any other ASCII control character as \u00XX. Non-ASCII
// runes pass through unescaped — UTF-8 is valid inside a JSON string.
func writeJSONString(b *strings.Builder, s string) {
	b.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		case '\b':
			b.WriteString(`\b`)
		case '\f':
			b.WriteString(`\f`)
		default:
			if r < 0x20 {
				fmt.Fprintf(b, `\u%04x`, r)
			} else {
				b.WriteRune(r)
			}
		}
	}
	b.WriteByte('"')
}

func writeJSONFloat(b *strings.Builder, f float64) {
	switch {
	case math.IsInf(f, 1):
		b.WriteString(`"Infinity"`)
	case math.IsInf(f, -1):
		b.WriteString(`"-Infinity"`)
	case math.IsNaN(f):
		b.WriteString(`"NaN"`)
	default:
		b.WriteString(strconv.FormatFloat(f, 'g', -1, 64))
	}
}

// ParseJSON parses a JSON document into a Value. Numbers without a fraction or
// exponent parse as Integer; all others parse as Float. A null object member
// drops the key (there is no null variant); null anywhere else is an error.
func ParseJSON(data []byte) (Value, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var raw any
	if err := dec.Decode(&raw); err != nil {
		return Value{}, fmt.Errorf("parse JSON: %w", err)
	}
	if dec.More() {
		return Value{}, fmt.Errorf("parse JSON: trailing data after document")
	}
	return fromParsed(raw)
}

func fromParsed(raw any) (Value, error) {
	switch t := raw.(type) {
	case string:
		return String(t), nil
	case bool:
		return Bool(t), nil
	case json.Number:
		text := t.String()
		if !strings.ContainsAny(text, ".eE") {
			i, err := t.Int64()
			if err != nil {
				return Value{}, fmt.Errorf("parse JSON: integer %q out of range", text)
			}
			return Integer(i), nil
		}
		f, err := t.Float64()
		if err != nil {
			return Value{}, fmt.Errorf("parse JSON: invalid number %q", text)
		}
		return Float(f), nil
	case []any:
		elems := make([]Value, 0, len(t))
		for i, e := range t {
			if e == nil {
				return Value{}, fmt.Errorf("parse JSON: null at index %d has no value representation", i)
			}
			v, err := fromParsed(e)
			if err != nil {
				return Value{}, err
			}
			elems = append(elems, v)
		}
		return Array(elems...), nil
	case map[string]any:
		fields := make(map[string]Value, len(t))
		for k, e := range t {
			if e == nil {
				// Absence is modeled by the key not being present.
				continue
			}
			v, err := fromParsed(e)
			if err != nil {
				return Value{}, err
			}
			fields[k] = v
		}
		return Map(fields), nil
	case nil:
		return Value{}, fmt.Errorf("parse JSON: null has no value representation")
	default:
		return Value{}, fmt.Errorf("parse JSON: unsupported token %T", raw)
	}
}
