package encoding

import (
	"encoding/base64"
	"fmt"
	"time"

	"github.com/beaconkit/go-sdk/pkg/value"
)

// DateEncodingStrategy selects the wire form for time.Time leaves. Strategies
// are pure configuration chosen once per Encoder.
type DateEncodingStrategy struct {
	kind   dateStrategyKind
	layout string
	fn     func(time.Time) (value.Value, error)
}

type dateStrategyKind int

const (
	dateISO8601 dateStrategyKind = iota
	dateSecondsSince1970
	dateMillisecondsSince1970
	dateFormat
	dateCustom
)

// DateEncodingISO8601 renders dates as RFC 3339 strings with sub-second
// precision. This is the default.
var DateEncodingISO8601 = DateEncodingStrategy{kind: dateISO8601}

// DateEncodingSecondsSince1970 renders dates as fractional Unix seconds.
var DateEncodingSecondsSince1970 = DateEncodingStrategy{kind: dateSecondsSince1970}

// DateEncodingMillisecondsSince1970 renders dates as fractional Unix
// milliseconds.
var DateEncodingMillisecondsSince1970 = DateEncodingStrategy{kind: dateMillisecondsSince1970}

// DateEncodingFormat renders dates as strings with the given time layout.
func DateEncodingFormat(layout string) DateEncodingStrategy {
	return DateEncodingStrategy{kind: dateFormat, layout: layout}
}

// DateEncodingCustom delegates date encoding to the given function. An error
// from the function propagates to the Encode caller.
func DateEncodingCustom(fn func(time.Time) (value.Value, error)) DateEncodingStrategy {
	return DateEncodingStrategy{kind: dateCustom, fn: fn}
}

func (s DateEncodingStrategy) encode(t time.Time) (value.Value, error) {
	switch s.kind {
	case dateSecondsSince1970:
		return value.Float(float64(t.UnixNano()) / 1e9), nil
	case dateMillisecondsSince1970:
		return value.Float(float64(t.UnixNano()) / 1e6), nil
	case dateFormat:
		return value.String(t.Format(s.layout)), nil
	case dateCustom:
		return s.fn(t)
	default:
		return value.String(t.UTC().Format(time.RFC3339Nano)), nil
	}
}

// DateDecodingStrategy mirrors DateEncodingStrategy for the decoder.
type DateDecodingStrategy struct {
	kind   dateStrategyKind
	layout string
	fn     func(value.Value) (time.Time, error)
}

// DateDecodingISO8601 parses RFC 3339 strings. This is the default.
var DateDecodingISO8601 = DateDecodingStrategy{kind: dateISO8601}

// DateDecodingSecondsSince1970 reads fractional Unix seconds.
var DateDecodingSecondsSince1970 = DateDecodingStrategy{kind: dateSecondsSince1970}

// DateDecodingMillisecondsSince1970 reads fractional Unix milliseconds.
var DateDecodingMillisecondsSince1970 = DateDecodingStrategy{kind: dateMillisecondsSince1970}

// DateDecodingFormat parses date strings with the given time layout.
func DateDecodingFormat(layout string) DateDecodingStrategy {
	return DateDecodingStrategy{kind: dateFormat, layout: layout}
}

// DateDecodingCustom delegates date decoding to the given function.
func DateDecodingCustom(fn func(value.Value) (time.Time, error)) DateDecodingStrategy {
	return DateDecodingStrategy{kind: dateCustom, fn: fn}
}

func (s DateDecodingStrategy) decode(v value.Value, path string) (time.Time, error) {
	switch s.kind {
	case dateSecondsSince1970:
		secs, err := epochNumber(v, path)
		if err != nil {
			return time.Time{}, err
		}
		return time.Unix(0, int64(secs*1e9)), nil
	case dateMillisecondsSince1970:
		millis, err := epochNumber(v, path)
		if err != nil {
			return time.Time{}, err
		}
		return time.Unix(0, int64(millis*1e6)), nil
	case dateFormat:
		return parseDateString(v, s.layout, path)
	case dateCustom:
		t, err := s.fn(v)
		if err != nil {
			return time.Time{}, &DataCorruptedError{Reason: "custom date decoding failed", Path: path, Err: err}
		}
		return t, nil
	default:
		return parseDateString(v, time.RFC3339Nano, path)
	}
}

func epochNumber(v value.Value, path string) (float64, error) {
	if f, ok := v.FloatVal(); ok {
		return f, nil
	}
	if i, ok := v.IntVal(); ok {
		return float64(i), nil
	}
	return 0, &TypeMismatchError{Expected: value.KindFloat, Found: v, Path: path}
}

func parseDateString(v value.Value, layout string, path string) (time.Time, error) {
	text, ok := v.StringVal()
	if !ok {
		return time.Time{}, &TypeMismatchError{Expected: value.KindString, Found: v, Path: path}
	}
	t, err := time.Parse(layout, text)
	if err != nil {
		return time.Time{}, &DataCorruptedError{
			Reason: fmt.Sprintf("invalid date %q", text),
			Path:   path,
			Err:    err,
		}
	}
	return t, nil
}

// BinaryEncodingStrategy selects the wire form for []byte leaves.
type BinaryEncodingStrategy struct {
	kind binaryStrategyKind
	fn   func([]byte) (value.Value, error)
}

type binaryStrategyKind int

const (
	binaryBase64 binaryStrategyKind = iota
	binaryByteArray
	binaryCustom
)

// BinaryEncodingBase64 renders blobs as standard-alphabet, padded base64
// strings. This is the default.
var BinaryEncodingBase64 = BinaryEncodingStrategy{kind: binaryBase64}

// BinaryEncodingByteArray renders blobs as arrays of integer byte values.
var BinaryEncodingByteArray = BinaryEncodingStrategy{kind: binaryByteArray}

// BinaryEncodingCustom delegates blob encoding to the given function. An
// error from the function propagates to the Encode caller.
func BinaryEncodingCustom(fn func([]byte) (value.Value, error)) BinaryEncodingStrategy {
	return BinaryEncodingStrategy{kind: binaryCustom, fn: fn}
}

func (s BinaryEncodingStrategy) encode(b []byte) (value.Value, error) {
	switch s.kind {
	case binaryByteArray:
		elems := make([]value.Value, len(b))
		for i, c := range b {
			elems[i] = value.Integer(int64(c))
		}
		return value.Array(elems...), nil
	case binaryCustom:
		return s.fn(b)
	default:
		return value.String(base64.StdEncoding.EncodeToString(b)), nil
	}
}

// BinaryDecodingStrategy mirrors BinaryEncodingStrategy for the decoder.
type BinaryDecodingStrategy struct {
	kind binaryStrategyKind
	fn   func(value.Value) ([]byte, error)
}

// BinaryDecodingBase64 parses padded standard-alphabet base64 strings. This
// is the default.
var BinaryDecodingBase64 = BinaryDecodingStrategy{kind: binaryBase64}

// BinaryDecodingByteArray reads arrays of integer byte values.
var BinaryDecodingByteArray = BinaryDecodingStrategy{kind: binaryByteArray}

// BinaryDecodingCustom delegates blob decoding to the given function.
func BinaryDecodingCustom(fn func(value.Value) ([]byte, error)) BinaryDecodingStrategy {
	return BinaryDecodingStrategy{kind: binaryCustom, fn: fn}
}

func (s BinaryDecodingStrategy) decode(v value.Value, path string) ([]byte, error) {
	switch s.kind {
	case binaryByteArray:
		elems, ok := v.ArrayVal()
		if !ok {
			return nil, &TypeMismatchError{Expected: value.KindArray, Found: v, Path: path}
		}
		out := make([]byte, len(elems))
		for i, e := range elems {
			n, ok := e.IntVal()
			if !ok {
				return nil, &TypeMismatchError{Expected: value.KindInteger, Found: e, Path: indexPath(path, i)}
			}
			if n < 0 || n > 255 {
				return nil, &DataCorruptedError{
					Reason: fmt.Sprintf("byte value %d out of range", n),
					Path:   indexPath(path, i),
				}
			}
			out[i] = byte(n)
		}
		return out, nil
	case binaryCustom:
		b, err := s.fn(v)
		if err != nil {
			return nil, &DataCorruptedError{Reason: "custom binary decoding failed", Path: path, Err: err}
		}
		return b, nil
	default:
		text, ok := v.StringVal()
		if !ok {
			return nil, &TypeMismatchError{Expected: value.KindString, Found: v, Path: path}
		}
		b, err := base64.StdEncoding.DecodeString(text)
		if err != nil {
			return nil, &DataCorruptedError{Reason: "invalid base64", Path: path, Err: err}
		}
		return b, nil
	}
}
