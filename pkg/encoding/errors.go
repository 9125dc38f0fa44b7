package encoding

import (
	"fmt"

	"github.com/beaconkit/go-sdk/pkg/value"
)

// TypeMismatchError reports that a decoded value's variant does not match
// what the target expects. Narrowing conversions (Float source, Integer
// target) are reported as mismatches, never silently accepted.
type TypeMismatchError struct {
	Expected value.Kind
	Found    value.Value
	Path     string
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("type mismatch at %s: expected %s, found %s",
		displayPath(e.Path), e.Expected, e.Found.Kind())
}

// KeyNotFoundError reports a required map key that is absent. Key carries the
// looked-up key after key-casing conversion.
type KeyNotFoundError struct {
	Key  string
	Path string
}

func (e *KeyNotFoundError) Error() string {
	return fmt.Sprintf("key %q not found at %s", e.Key, displayPath(e.Path))
}

// ValueNotFoundError reports a read past the end of an array cursor.
type ValueNotFoundError struct {
	Path string
}

func (e *ValueNotFoundError) Error() string {
	return fmt.Sprintf("no value at %s: container exhausted", displayPath(e.Path))
}

// DataCorruptedError reports text that failed to parse as the expected leaf
// type: a malformed date, base64 blob, URL, or decimal.
type DataCorruptedError struct {
	Reason string
	Path   string
	Err    error
}

func (e *DataCorruptedError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("data corrupted at %s: %s: %v", displayPath(e.Path), e.Reason, e.Err)
	}
	return fmt.Sprintf("data corrupted at %s: %s", displayPath(e.Path), e.Reason)
}

func (e *DataCorruptedError) Unwrap() error {
	return e.Err
}

// joinPath appends a key segment to a dotted path.
func joinPath(base, segment string) string {
	if base == "" {
		return segment
	}
	return base + "." + segment
}

// indexPath appends an array index segment to a path.
func indexPath(base string, index int) string {
	return fmt.Sprintf("%s[%d]", base, index)
}

func displayPath(path string) string {
	if path == "" {
		return "(root)"
	}
	return path
}
