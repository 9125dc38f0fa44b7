package encoding

import (
	"fmt"
	"math"
	"net/url"
	"time"

	"github.com/shopspring/decimal"

	"github.com/beaconkit/go-sdk/pkg/value"
)

// Unmarshaler is implemented by record types that reconstruct themselves
// field by field from a MapDecoder.
type Unmarshaler interface {
	UnmarshalRecord(dec *MapDecoder) error
}

// ArrayUnmarshaler is implemented by sequence types that reconstruct
// themselves element by element from an ArrayDecoder cursor.
type ArrayUnmarshaler interface {
	UnmarshalArray(dec *ArrayDecoder) error
}

// Decoder reconstructs application values from value.Value trees. Strategies
// mirror the Encoder's and default the same way. A Decoder is immutable and
// safe for concurrent use.
type Decoder struct {
	dates  DateDecodingStrategy
	binary BinaryDecodingStrategy
	keys   KeyStrategy
}

// DecoderOption configures a Decoder at construction.
type DecoderOption func(*Decoder)

// WithDateDecoding selects the date strategy.
func WithDateDecoding(s DateDecodingStrategy) DecoderOption {
	return func(d *Decoder) { d.dates = s }
}

// WithBinaryDecoding selects the binary blob strategy.
func WithBinaryDecoding(s BinaryDecodingStrategy) DecoderOption {
	return func(d *Decoder) { d.binary = s }
}

// WithKeyDecoding selects the key-casing strategy. The decoder converts the
// target field name with this strategy before looking it up in the source
// map, so an encoder and decoder sharing a strategy are inverses.
func WithKeyDecoding(s KeyStrategy) DecoderOption {
	return func(d *Decoder) { d.keys = s }
}

// NewDecoder creates a decoder with the given strategy options.
func NewDecoder(opts ...DecoderOption) *Decoder {
	d := &Decoder{}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Decode reconstructs dst from src. src must be a map variant; anything else
// is a TypeMismatchError. All decode errors surface synchronously — recovery
// such as "try int, else float" is the caller's job, by attempting a decode
// and inspecting the typed error.
func (d *Decoder) Decode(src value.Value, dst Unmarshaler) error {
	m, err := d.mapDecoderAt(src, "", nil)
	if err != nil {
		return err
	}
	return dst.UnmarshalRecord(m)
}

// DecodeArray reconstructs dst from an array-variant src.
func (d *Decoder) DecodeArray(src value.Value, dst ArrayUnmarshaler) error {
	a, err := d.arrayDecoderAt(src, "", nil)
	if err != nil {
		return err
	}
	return dst.UnmarshalArray(a)
}

func (d *Decoder) mapDecoderAt(src value.Value, path string, parts []string) (*MapDecoder, error) {
	fields, ok := src.MapVal()
	if !ok {
		return nil, &TypeMismatchError{Expected: value.KindMap, Found: src, Path: path}
	}
	return &MapDecoder{dec: d, fields: fields, path: path, parts: parts}, nil
}

func (d *Decoder) arrayDecoderAt(src value.Value, path string, parts []string) (*ArrayDecoder, error) {
	elems, ok := src.ArrayVal()
	if !ok {
		return nil, &TypeMismatchError{Expected: value.KindArray, Found: src, Path: path}
	}
	return &ArrayDecoder{dec: d, elems: elems, path: path, parts: parts}, nil
}

// Scalar decoding shared by map fields, array elements, and top-level values.

func scalarString(v value.Value, path string) (string, error) {
	s, ok := v.StringVal()
	if !ok {
		return "", &TypeMismatchError{Expected: value.KindString, Found: v, Path: path}
	}
	return s, nil
}

// scalarInt rejects Float sources: narrowing is never silently accepted.
func scalarInt(v value.Value, path string) (int64, error) {
	i, ok := v.IntVal()
	if !ok {
		return 0, &TypeMismatchError{Expected: value.KindInteger, Found: v, Path: path}
	}
	return i, nil
}

func scalarUint(v value.Value, path string) (uint64, error) {
	i, err := scalarInt(v, path)
	if err != nil {
		return 0, err
	}
	if i < 0 {
		return 0, &DataCorruptedError{
			Reason: fmt.Sprintf("negative value %d for unsigned target", i),
			Path:   path,
		}
	}
	return uint64(i), nil
}

// scalarFloat widens Integer sources and recognizes the three quoted
// non-finite tokens the JSON renderer emits.
func scalarFloat(v value.Value, path string) (float64, error) {
	if f, ok := v.FloatVal(); ok {
		return f, nil
	}
	if i, ok := v.IntVal(); ok {
		return float64(i), nil
	}
	if s, ok := v.StringVal(); ok {
		switch s {
		case "Infinity":
			return math.Inf(1), nil
		case "-Infinity":
			return math.Inf(-1), nil
		case "NaN":
			return math.NaN(), nil
		}
	}
	return 0, &TypeMismatchError{Expected: value.KindFloat, Found: v, Path: path}
}

func scalarBool(v value.Value, path string) (bool, error) {
	b, ok := v.BoolVal()
	if !ok {
		return false, &TypeMismatchError{Expected: value.KindBool, Found: v, Path: path}
	}
	return b, nil
}

func scalarURL(v value.Value, path string) (*url.URL, error) {
	s, err := scalarString(v, path)
	if err != nil {
		return nil, err
	}
	u, err := url.Parse(s)
	if err != nil {
		return nil, &DataCorruptedError{Reason: fmt.Sprintf("invalid URL %q", s), Path: path, Err: err}
	}
	return u, nil
}

func scalarDecimal(v value.Value, path string) (decimal.Decimal, error) {
	if s, ok := v.StringVal(); ok {
		d, err := decimal.NewFromString(s)
		if err != nil {
			return decimal.Decimal{}, &DataCorruptedError{
				Reason: fmt.Sprintf("invalid decimal %q", s),
				Path:   path,
				Err:    err,
			}
		}
		return d, nil
	}
	if i, ok := v.IntVal(); ok {
		return decimal.NewFromInt(i), nil
	}
	if f, ok := v.FloatVal(); ok {
		return decimal.NewFromFloat(f), nil
	}
	return decimal.Decimal{}, &TypeMismatchError{Expected: value.KindString, Found: v, Path: path}
}

// Top-level scalar entry points, for values encoded without wrapping.

// String decodes a top-level string value.
func (d *Decoder) String(src value.Value) (string, error) {
	return scalarString(src, "")
}

// Int decodes a top-level integer value.
func (d *Decoder) Int(src value.Value) (int64, error) {
	return scalarInt(src, "")
}

// Uint decodes a top-level unsigned integer value.
func (d *Decoder) Uint(src value.Value) (uint64, error) {
	return scalarUint(src, "")
}

// Float decodes a top-level float value, widening integers.
func (d *Decoder) Float(src value.Value) (float64, error) {
	return scalarFloat(src, "")
}

// Bool decodes a top-level boolean value.
func (d *Decoder) Bool(src value.Value) (bool, error) {
	return scalarBool(src, "")
}

// Time decodes a top-level date value per the decoder's date strategy.
func (d *Decoder) Time(src value.Value) (time.Time, error) {
	return d.dates.decode(src, "")
}

// Bytes decodes a top-level binary value per the decoder's binary strategy.
func (d *Decoder) Bytes(src value.Value) ([]byte, error) {
	return d.binary.decode(src, "")
}

// URL decodes a top-level URL value.
func (d *Decoder) URL(src value.Value) (*url.URL, error) {
	return scalarURL(src, "")
}

// Decimal decodes a top-level decimal value from string or numeric form.
func (d *Decoder) Decimal(src value.Value) (decimal.Decimal, error) {
	return scalarDecimal(src, "")
}

// MapDecoder reads the fields of one record being decoded. Lookups apply the
// decoder's key strategy to the requested field name first, so callers always
// ask for the in-memory field name regardless of the wire casing.
type MapDecoder struct {
	dec    *Decoder
	fields map[string]value.Value
	path   string
	parts  []string
}

// Len returns the number of fields present.
func (m *MapDecoder) Len() int {
	return len(m.fields)
}

// Has reports whether the field is present, after key-casing conversion.
func (m *MapDecoder) Has(key string) bool {
	_, ok := m.fields[m.dec.keys.apply(m.parts, key)]
	return ok
}

func (m *MapDecoder) lookup(key string) (value.Value, string, error) {
	cased := m.dec.keys.apply(m.parts, key)
	v, ok := m.fields[cased]
	if !ok {
		return value.Value{}, "", &KeyNotFoundError{Key: cased, Path: m.path}
	}
	return v, joinPath(m.path, cased), nil
}

func (m *MapDecoder) childParts(key string) []string {
	child := make([]string, len(m.parts), len(m.parts)+1)
	copy(child, m.parts)
	return append(child, key)
}

// String reads a required string field.
func (m *MapDecoder) String(key string) (string, error) {
	v, path, err := m.lookup(key)
	if err != nil {
		return "", err
	}
	return scalarString(v, path)
}

// Int reads a required integer field. A float source is a TypeMismatchError.
func (m *MapDecoder) Int(key string) (int64, error) {
	v, path, err := m.lookup(key)
	if err != nil {
		return 0, err
	}
	return scalarInt(v, path)
}

// Uint reads a required unsigned integer field.
func (m *MapDecoder) Uint(key string) (uint64, error) {
	v, path, err := m.lookup(key)
	if err != nil {
		return 0, err
	}
	return scalarUint(v, path)
}

// Float reads a required float field. An integer source widens.
func (m *MapDecoder) Float(key string) (float64, error) {
	v, path, err := m.lookup(key)
	if err != nil {
		return 0, err
	}
	return scalarFloat(v, path)
}

// Bool reads a required boolean field.
func (m *MapDecoder) Bool(key string) (bool, error) {
	v, path, err := m.lookup(key)
	if err != nil {
		return false, err
	}
	return scalarBool(v, path)
}

// Time reads a required date field per the decoder's date strategy.
func (m *MapDecoder) Time(key string) (time.Time, error) {
	v, path, err := m.lookup(key)
	if err != nil {
		return time.Time{}, err
	}
	return m.dec.dates.decode(v, path)
}

// Bytes reads a required binary field per the decoder's binary strategy.
func (m *MapDecoder) Bytes(key string) ([]byte, error) {
	v, path, err := m.lookup(key)
	if err != nil {
		return nil, err
	}
	return m.dec.binary.decode(v, path)
}

// URL reads a required URL field from its string form.
func (m *MapDecoder) URL(key string) (*url.URL, error) {
	v, path, err := m.lookup(key)
	if err != nil {
		return nil, err
	}
	return scalarURL(v, path)
}

// Decimal reads a required decimal field from string or numeric form.
func (m *MapDecoder) Decimal(key string) (decimal.Decimal, error) {
	v, path, err := m.lookup(key)
	if err != nil {
		return decimal.Decimal{}, err
	}
	return scalarDecimal(v, path)
}

// Value reads a required field as a raw structured value.
func (m *MapDecoder) Value(key string) (value.Value, error) {
	v, _, err := m.lookup(key)
	if err != nil {
		return value.Value{}, err
	}
	return v, nil
}

// Record decodes a required nested record field into dst.
func (m *MapDecoder) Record(key string, dst Unmarshaler) error {
	v, path, err := m.lookup(key)
	if err != nil {
		return err
	}
	child, err := m.dec.mapDecoderAt(v, path, m.childParts(key))
	if err != nil {
		return err
	}
	return dst.UnmarshalRecord(child)
}

// Map opens a required nested map field as a MapDecoder.
func (m *MapDecoder) Map(key string) (*MapDecoder, error) {
	v, path, err := m.lookup(key)
	if err != nil {
		return nil, err
	}
	return m.dec.mapDecoderAt(v, path, m.childParts(key))
}

// Array opens a required nested array field as an ArrayDecoder cursor.
func (m *MapDecoder) Array(key string) (*ArrayDecoder, error) {
	v, path, err := m.lookup(key)
	if err != nil {
		return nil, err
	}
	return m.dec.arrayDecoderAt(v, path, m.childParts(key))
}

// OptionalString reads a string field, returning nil when the key is absent.
// A present field with the wrong variant is still a TypeMismatchError.
func (m *MapDecoder) OptionalString(key string) (*string, error) {
	if !m.Has(key) {
		return nil, nil
	}
	s, err := m.String(key)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// OptionalInt reads an integer field, returning nil when the key is absent.
func (m *MapDecoder) OptionalInt(key string) (*int64, error) {
	if !m.Has(key) {
		return nil, nil
	}
	i, err := m.Int(key)
	if err != nil {
		return nil, err
	}
	return &i, nil
}

// OptionalFloat reads a float field, returning nil when the key is absent.
func (m *MapDecoder) OptionalFloat(key string) (*float64, error) {
	if !m.Has(key) {
		return nil, nil
	}
	f, err := m.Float(key)
	if err != nil {
		return nil, err
	}
	return &f, nil
}

// OptionalBool reads a boolean field, returning nil when the key is absent.
func (m *MapDecoder) OptionalBool(key string) (*bool, error) {
	if !m.Has(key) {
		return nil, nil
	}
	b, err := m.Bool(key)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// OptionalTime reads a date field, returning nil when the key is absent.
func (m *MapDecoder) OptionalTime(key string) (*time.Time, error) {
	if !m.Has(key) {
		return nil, nil
	}
	t, err := m.Time(key)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// ArrayDecoder is a forward-only cursor over an array's elements. Reading
// past the last element is a ValueNotFoundError.
type ArrayDecoder struct {
	dec   *Decoder
	elems []value.Value
	path  string
	parts []string
	next  int
}

// Len returns the total element count.
func (a *ArrayDecoder) Len() int {
	return len(a.elems)
}

// More reports whether elements remain.
func (a *ArrayDecoder) More() bool {
	return a.next < len(a.elems)
}

func (a *ArrayDecoder) advance() (value.Value, string, error) {
	if a.next >= len(a.elems) {
		return value.Value{}, "", &ValueNotFoundError{Path: indexPath(a.path, a.next)}
	}
	v := a.elems[a.next]
	path := indexPath(a.path, a.next)
	a.next++
	return v, path, nil
}

// String reads the next element as a string.
func (a *ArrayDecoder) String() (string, error) {
	v, path, err := a.advance()
	if err != nil {
		return "", err
	}
	return scalarString(v, path)
}

// Int reads the next element as an integer.
func (a *ArrayDecoder) Int() (int64, error) {
	v, path, err := a.advance()
	if err != nil {
		return 0, err
	}
	return scalarInt(v, path)
}

// Uint reads the next element as an unsigned integer.
func (a *ArrayDecoder) Uint() (uint64, error) {
	v, path, err := a.advance()
	if err != nil {
		return 0, err
	}
	return scalarUint(v, path)
}

// Float reads the next element as a float, widening integers.
func (a *ArrayDecoder) Float() (float64, error) {
	v, path, err := a.advance()
	if err != nil {
		return 0, err
	}
	return scalarFloat(v, path)
}

// Bool reads the next element as a boolean.
func (a *ArrayDecoder) Bool() (bool, error) {
	v, path, err := a.advance()
	if err != nil {
		return false, err
	}
	return scalarBool(v, path)
}

// Time reads the next element as a date per the decoder's date strategy.
func (a *ArrayDecoder) Time() (time.Time, error) {
	v, path, err := a.advance()
	if err != nil {
		return time.Time{}, err
	}
	return a.dec.dates.decode(v, path)
}

// Bytes reads the next element as a binary blob.
func (a *ArrayDecoder) Bytes() ([]byte, error) {
	v, path, err := a.advance()
	if err != nil {
		return nil, err
	}
	return a.dec.binary.decode(v, path)
}

// URL reads the next element as a URL.
func (a *ArrayDecoder) URL() (*url.URL, error) {
	v, path, err := a.advance()
	if err != nil {
		return nil, err
	}
	return scalarURL(v, path)
}

// Decimal reads the next element as a decimal.
func (a *ArrayDecoder) Decimal() (decimal.Decimal, error) {
	v, path, err := a.advance()
	if err != nil {
		return decimal.Decimal{}, err
	}
	return scalarDecimal(v, path)
}

// Value reads the next element as a raw structured value.
func (a *ArrayDecoder) Value() (value.Value, error) {
	v, _, err := a.advance()
	if err != nil {
		return value.Value{}, err
	}
	return v, nil
}

// Record decodes the next element as a nested record into dst.
func (a *ArrayDecoder) Record(dst Unmarshaler) error {
	v, path, err := a.advance()
	if err != nil {
		return err
	}
	child, err := a.dec.mapDecoderAt(v, path, a.parts)
	if err != nil {
		return err
	}
	return dst.UnmarshalRecord(child)
}

// Array opens the next element as a nested array cursor.
func (a *ArrayDecoder) Array() (*ArrayDecoder, error) {
	v, path, err := a.advance()
	if err != nil {
		return nil, err
	}
	return a.dec.arrayDecoderAt(v, path, a.parts)
}

// Map opens the next element as a nested map decoder.
func (a *ArrayDecoder) Map() (*MapDecoder, error) {
	v, path, err := a.advance()
	if err != nil {
		return nil, err
	}
	return a.dec.mapDecoderAt(v, path, a.parts)
}
