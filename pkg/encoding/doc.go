// Package encoding provides the generic encoder and decoder engines that
// convert application records to and from structured values.
//
// Record types participate by implementing Marshaler and Unmarshaler: a
// field-by-field walk against a MapEncoder builder on the way in and a
// MapDecoder cursor on the way out. The engines special-case date/time
// values, binary blobs, URLs, and arbitrary-precision decimals ahead of the
// generic walk, with the treatment of each selected once at construction
// through strategy options.
//
// The engines are pure call-and-return: each Encode or Decode call owns its
// private recursion state, so a single Encoder or Decoder can be shared
// freely across goroutines.
//
// Example usage:
//
//	import "github.com/beaconkit/go-sdk/pkg/encoding"
//
//	type Signup struct {
//		Name string
//		Age  int64
//	}
//
//	func (s Signup) MarshalRecord(enc *encoding.MapEncoder) error {
//		enc.SetString("name", s.Name)
//		enc.SetInt("age", s.Age)
//		return nil
//	}
//
//	func (s *Signup) UnmarshalRecord(dec *encoding.MapDecoder) (err error) {
//		if s.Name, err = dec.String("name"); err != nil {
//			return err
//		}
//		s.Age, err = dec.Int("age")
//		return err
//	}
//
//	enc := encoding.NewEncoder(encoding.WithKeyEncoding(encoding.KeysSnakeCase))
//	v, err := enc.Encode(Signup{Name: "Alice", Age: 30})
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	dec := encoding.NewDecoder(encoding.WithKeyDecoding(encoding.KeysSnakeCase))
//	var out Signup
//	if err := dec.Decode(v, &out); err != nil {
//		log.Fatal(err)
//	}
//
// Decode failures carry a typed error (TypeMismatchError, KeyNotFoundError,
// ValueNotFoundError, DataCorruptedError) with the path from the root to the
// offending field, e.g. "user.tags[2]".
package encoding
