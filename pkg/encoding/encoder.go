package encoding

import (
	"fmt"
	"math"
	"net/url"
	"time"

	"github.com/shopspring/decimal"

	"github.com/beaconkit/go-sdk/pkg/value"
)

// Marshaler is implemented by record types that encode themselves field by
// field. The encoder hands each record a fresh MapEncoder, so sibling records
// never share accumulation state.
type Marshaler interface {
	MarshalRecord(enc *MapEncoder) error
}

// ArrayMarshaler is implemented by sequence types that encode themselves
// element by element.
type ArrayMarshaler interface {
	MarshalArray(enc *ArrayEncoder) error
}

// Encoder converts application values into value.Value trees. The zero-value
// strategies (ISO 8601 dates, base64 binary, keys as written) apply unless
// overridden at construction. An Encoder is immutable and safe for concurrent
// use.
type Encoder struct {
	dates  DateEncodingStrategy
	binary BinaryEncodingStrategy
	keys   KeyStrategy
}

// EncoderOption configures an Encoder at construction.
type EncoderOption func(*Encoder)

// WithDateEncoding selects the date strategy.
func WithDateEncoding(s DateEncodingStrategy) EncoderOption {
	return func(e *Encoder) { e.dates = s }
}

// WithBinaryEncoding selects the binary blob strategy.
func WithBinaryEncoding(s BinaryEncodingStrategy) EncoderOption {
	return func(e *Encoder) { e.binary = s }
}

// WithKeyEncoding selects the key-casing strategy.
func WithKeyEncoding(s KeyStrategy) EncoderOption {
	return func(e *Encoder) { e.keys = s }
}

// NewEncoder creates an encoder with the given strategy options.
func NewEncoder(opts ...EncoderOption) *Encoder {
	e := &Encoder{}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Encode converts v to a structured value. Special leaf types are checked in
// fixed order — dates, binary blobs, URLs, decimals — before the generic
// field walk, so a record never sees its own special leaves as records. A
// top-level scalar encodes to the matching scalar variant with no wrapping.
//
// The only failure modes are an unsupported input type and an error raised by
// a custom date/binary strategy or a Marshaler implementation.
func (e *Encoder) Encode(v any) (value.Value, error) {
	return e.encode(v, nil)
}

func (e *Encoder) encode(v any, path []string) (value.Value, error) {
	switch t := v.(type) {
	case time.Time:
		return e.dates.encode(t)
	case *time.Time:
		if t == nil {
			return value.Value{}, fmt.Errorf("encode: nil *time.Time at %s", displayParts(path))
		}
		return e.dates.encode(*t)
	case []byte:
		return e.binary.encode(t)
	case url.URL:
		return value.String(t.String()), nil
	case *url.URL:
		if t == nil {
			return value.Value{}, fmt.Errorf("encode: nil *url.URL at %s", displayParts(path))
		}
		return value.String(t.String()), nil
	case decimal.Decimal:
		return value.String(t.String()), nil
	case Marshaler:
		m := newMapEncoder(e, path)
		if err := t.MarshalRecord(m); err != nil {
			return value.Value{}, err
		}
		return m.finish()
	case ArrayMarshaler:
		a := newArrayEncoder(e, path)
		if err := t.MarshalArray(a); err != nil {
			return value.Value{}, err
		}
		return a.finish()
	case value.Value:
		return t, nil
	case string:
		return value.String(t), nil
	case bool:
		return value.Bool(t), nil
	case int:
		return value.Integer(int64(t)), nil
	case int8:
		return value.Integer(int64(t)), nil
	case int16:
		return value.Integer(int64(t)), nil
	case int32:
		return value.Integer(int64(t)), nil
	case int64:
		return value.Integer(t), nil
	case uint:
		if uint64(t) > math.MaxInt64 {
			return value.Value{}, fmt.Errorf("encode: uint %d overflows integer at %s", t, displayParts(path))
		}
		return value.Integer(int64(t)), nil
	case uint8:
		return value.Integer(int64(t)), nil
	case uint16:
		return value.Integer(int64(t)), nil
	case uint32:
		return value.Integer(int64(t)), nil
	case uint64:
		if t > math.MaxInt64 {
			return value.Value{}, fmt.Errorf("encode: uint64 %d overflows integer at %s", t, displayParts(path))
		}
		return value.Integer(int64(t)), nil
	case float32:
		return value.Float(float64(t)), nil
	case float64:
		return value.Float(t), nil
	case []any:
		a := newArrayEncoder(e, path)
		for _, elem := range t {
			a.Append(elem)
		}
		return a.finish()
	case map[string]any:
		m := newMapEncoder(e, path)
		for k, elem := range t {
			m.Set(k, elem)
		}
		return m.finish()
	case nil:
		return value.Value{}, fmt.Errorf("encode: nil at %s has no value representation", displayParts(path))
	default:
		return value.Value{}, fmt.Errorf("encode: unsupported type %T at %s", v, displayParts(path))
	}
}

func displayParts(path []string) string {
	if len(path) == 0 {
		return "(root)"
	}
	out := path[0]
	for _, p := range path[1:] {
		out = joinPath(out, p)
	}
	return out
}

// MapEncoder accumulates the fields of one record being encoded. Set methods
// never fail directly; the first strategy or nested-encode error sticks and
// surfaces from the enclosing Encode call. A nil pointer or nil value passed
// to a Set method omits the key — absence is modeled by the key not being
// present, never by a null variant.
type MapEncoder struct {
	enc    *Encoder
	path   []string
	fields map[string]value.Value
	err    error
}

func newMapEncoder(enc *Encoder, path []string) *MapEncoder {
	return &MapEncoder{enc: enc, path: path, fields: make(map[string]value.Value)}
}

func (m *MapEncoder) put(key string, v value.Value) {
	if m.err != nil {
		return
	}
	m.fields[m.enc.keys.apply(m.path, key)] = v
}

func (m *MapEncoder) fail(err error) {
	if m.err == nil {
		m.err = err
	}
}

func (m *MapEncoder) childPath(key string) []string {
	child := make([]string, len(m.path), len(m.path)+1)
	copy(child, m.path)
	return append(child, key)
}

// Set encodes any supported value under key. A nil value omits the key.
func (m *MapEncoder) Set(key string, v any) {
	if m.err != nil {
		return
	}
	if v == nil {
		return
	}
	encoded, err := m.enc.encode(v, m.childPath(key))
	if err != nil {
		m.fail(err)
		return
	}
	m.put(key, encoded)
}

// SetString writes a string field.
func (m *MapEncoder) SetString(key, s string) {
	m.put(key, value.String(s))
}

// SetInt writes an integer field.
func (m *MapEncoder) SetInt(key string, i int64) {
	m.put(key, value.Integer(i))
}

// SetUint writes an unsigned integer field. Values above the int64 range are
// an encode error.
func (m *MapEncoder) SetUint(key string, u uint64) {
	if u > math.MaxInt64 {
		m.fail(fmt.Errorf("encode: uint64 %d overflows integer at %s", u, displayParts(m.childPath(key))))
		return
	}
	m.put(key, value.Integer(int64(u)))
}

// SetFloat writes a floating-point field. NaN and the infinities are valid.
func (m *MapEncoder) SetFloat(key string, f float64) {
	m.put(key, value.Float(f))
}

// SetBool writes a boolean field.
func (m *MapEncoder) SetBool(key string, b bool) {
	m.put(key, value.Bool(b))
}

// SetTime writes a date field per the encoder's date strategy.
func (m *MapEncoder) SetTime(key string, t time.Time) {
	if m.err != nil {
		return
	}
	v, err := m.enc.dates.encode(t)
	if err != nil {
		m.fail(err)
		return
	}
	m.put(key, v)
}

// SetBytes writes a binary field per the encoder's binary strategy. A nil
// slice omits the key.
func (m *MapEncoder) SetBytes(key string, b []byte) {
	if m.err != nil || b == nil {
		return
	}
	v, err := m.enc.binary.encode(b)
	if err != nil {
		m.fail(err)
		return
	}
	m.put(key, v)
}

// SetURL writes a URL field in absolute string form. A nil URL omits the key.
func (m *MapEncoder) SetURL(key string, u *url.URL) {
	if u == nil {
		return
	}
	m.put(key, value.String(u.String()))
}

// SetDecimal writes a decimal field in canonical string form.
func (m *MapEncoder) SetDecimal(key string, d decimal.Decimal) {
	m.put(key, value.String(d.String()))
}

// SetValue writes an already-structured value.
func (m *MapEncoder) SetValue(key string, v value.Value) {
	m.put(key, v)
}

// SetRecord encodes a nested record under key with a fresh accumulation
// context. A nil record omits the key.
func (m *MapEncoder) SetRecord(key string, rec Marshaler) {
	if m.err != nil || rec == nil {
		return
	}
	child := newMapEncoder(m.enc, m.childPath(key))
	if err := rec.MarshalRecord(child); err != nil {
		m.fail(err)
		return
	}
	v, err := child.finish()
	if err != nil {
		m.fail(err)
		return
	}
	m.put(key, v)
}

// SetArray encodes a nested array under key, built by fn.
func (m *MapEncoder) SetArray(key string, fn func(*ArrayEncoder)) {
	if m.err != nil {
		return
	}
	child := newArrayEncoder(m.enc, m.childPath(key))
	fn(child)
	v, err := child.finish()
	if err != nil {
		m.fail(err)
		return
	}
	m.put(key, v)
}

// SetMap encodes a nested ad-hoc map under key, built by fn.
func (m *MapEncoder) SetMap(key string, fn func(*MapEncoder)) {
	if m.err != nil {
		return
	}
	child := newMapEncoder(m.enc, m.childPath(key))
	fn(child)
	v, err := child.finish()
	if err != nil {
		m.fail(err)
		return
	}
	m.put(key, v)
}

// SetOptionalString writes a string field, omitting the key when s is nil.
func (m *MapEncoder) SetOptionalString(key string, s *string) {
	if s != nil {
		m.SetString(key, *s)
	}
}

// SetOptionalInt writes an integer field, omitting the key when i is nil.
func (m *MapEncoder) SetOptionalInt(key string, i *int64) {
	if i != nil {
		m.SetInt(key, *i)
	}
}

// SetOptionalFloat writes a float field, omitting the key when f is nil.
func (m *MapEncoder) SetOptionalFloat(key string, f *float64) {
	if f != nil {
		m.SetFloat(key, *f)
	}
}

// SetOptionalBool writes a boolean field, omitting the key when b is nil.
func (m *MapEncoder) SetOptionalBool(key string, b *bool) {
	if b != nil {
		m.SetBool(key, *b)
	}
}

// SetOptionalTime writes a date field, omitting the key when t is nil.
func (m *MapEncoder) SetOptionalTime(key string, t *time.Time) {
	if t != nil {
		m.SetTime(key, *t)
	}
}

func (m *MapEncoder) finish() (value.Value, error) {
	if m.err != nil {
		return value.Value{}, m.err
	}
	return value.Map(m.fields), nil
}

// ArrayEncoder accumulates the elements of one sequence being encoded.
type ArrayEncoder struct {
	enc   *Encoder
	path  []string
	elems []value.Value
	err   error
}

func newArrayEncoder(enc *Encoder, path []string) *ArrayEncoder {
	return &ArrayEncoder{enc: enc, path: path}
}

func (a *ArrayEncoder) fail(err error) {
	if a.err == nil {
		a.err = err
	}
}

func (a *ArrayEncoder) push(v value.Value) {
	if a.err != nil {
		return
	}
	a.elems = append(a.elems, v)
}

// Append encodes any supported value as the next element. Nil elements are an
// encode error — arrays have no notion of an absent slot.
func (a *ArrayEncoder) Append(v any) {
	if a.err != nil {
		return
	}
	if v == nil {
		a.fail(fmt.Errorf("encode: nil element at %s", indexPath(displayParts(a.path), len(a.elems))))
		return
	}
	encoded, err := a.enc.encode(v, a.path)
	if err != nil {
		a.fail(err)
		return
	}
	a.push(encoded)
}

// AppendString appends a string element.
func (a *ArrayEncoder) AppendString(s string) {
	a.push(value.String(s))
}

// AppendInt appends an integer element.
func (a *ArrayEncoder) AppendInt(i int64) {
	a.push(value.Integer(i))
}

// AppendFloat appends a float element.
func (a *ArrayEncoder) AppendFloat(f float64) {
	a.push(value.Float(f))
}

// AppendBool appends a boolean element.
func (a *ArrayEncoder) AppendBool(b bool) {
	a.push(value.Bool(b))
}

// AppendTime appends a date element per the encoder's date strategy.
func (a *ArrayEncoder) AppendTime(t time.Time) {
	if a.err != nil {
		return
	}
	v, err := a.enc.dates.encode(t)
	if err != nil {
		a.fail(err)
		return
	}
	a.push(v)
}

// AppendValue appends an already-structured value.
func (a *ArrayEncoder) AppendValue(v value.Value) {
	a.push(v)
}

// AppendRecord encodes a nested record as the next element with a fresh
// accumulation context.
func (a *ArrayEncoder) AppendRecord(rec Marshaler) {
	if a.err != nil {
		return
	}
	if rec == nil {
		a.fail(fmt.Errorf("encode: nil record at %s", indexPath(displayParts(a.path), len(a.elems))))
		return
	}
	child := newMapEncoder(a.enc, a.path)
	if err := rec.MarshalRecord(child); err != nil {
		a.fail(err)
		return
	}
	v, err := child.finish()
	if err != nil {
		a.fail(err)
		return
	}
	a.push(v)
}

func (a *ArrayEncoder) finish() (value.Value, error) {
	if a.err != nil {
		return value.Value{}, a.err
	}
	return value.Array(a.elems...), nil
}
