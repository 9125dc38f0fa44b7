package value

import "fmt"

// FromPlain builds a Value from a tree of native Go primitives and containers.
// All integer widths map to Integer, float32/float64 to Float. Supported
// containers are []any and map[string]any; a Value passes through unchanged.
// A nil map entry drops its key; nil anywhere else is an error.
func FromPlain(raw any) (Value, error) {
	switch t := raw.(type) {
	case Value:
		return t, nil
	case string:
		return String(t), nil
	case bool:
		return Bool(t), nil
	case int:
		return Integer(int64(t)), nil
	case int8:
		return Integer(int64(t)), nil
	case int16:
		return Integer(int64(t)), nil
	case int32:
		return Integer(int64(t)), nil
	case int64:
		return Integer(t), nil
	case uint:
		return Integer(int64(t)), nil
	case uint8:
		return Integer(int64(t)), nil
	case uint16:
		return Integer(int64(t)), nil
	case uint32:
		return Integer(int64(t)), nil
	case uint64:
		if t > uint64(1)<<63-1 {
			return Value{}, fmt.Errorf("plain value: uint64 %d overflows integer", t)
		}
		return Integer(int64(t)), nil
	case float32:
		return Float(float64(t)), nil
	case float64:
		return Float(t), nil
	case []any:
		elems := make([]Value, 0, len(t))
		for i, e := range t {
			v, err := FromPlain(e)
			if err != nil {
				return Value{}, fmt.Errorf("plain value: index %d: %w", i, err)
			}
			elems = append(elems, v)
		}
		return Array(elems...), nil
	case map[string]any:
		fields := make(map[string]Value, len(t))
		for k, e := range t {
			if e == nil {
				continue
			}
			v, err := FromPlain(e)
			if err != nil {
				return Value{}, fmt.Errorf("plain value: key %q: %w", k, err)
			}
			fields[k] = v
		}
		return Map(fields), nil
	case nil:
		return Value{}, fmt.Errorf("plain value: nil has no value representation")
	default:
		return Value{}, fmt.Errorf("plain value: unsupported type %T", raw)
	}
}
