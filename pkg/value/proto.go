package value

import (
	"fmt"
	"math"

	"google.golang.org/protobuf/types/known/structpb"
)

// maxExactFloatInt is the largest magnitude an int64 keeps exactly when
// widened to float64 (2^53).
const maxExactFloatInt = int64(1) << 53

// ToProto converts the value to its google.protobuf.Value representation for
// interop with protobuf-based consumers. structpb has a single number kind, so
// Integer widens to a double; integers beyond 2^53 lose precision, which is
// inherent to the protobuf Struct model.
func (v Value) ToProto() *structpb.Value {
	switch v.kind {
	case KindString:
		return structpb.NewStringValue(v.str)
	case KindInteger:
		return structpb.NewNumberValue(float64(v.num))
	case KindFloat:
		return structpb.NewNumberValue(v.flt)
	case KindBool:
		return structpb.NewBoolValue(v.bit)
	case KindArray:
		elems := make([]*structpb.Value, len(v.arr))
		for i, e := range v.arr {
			elems[i] = e.ToProto()
		}
		return structpb.NewListValue(&structpb.ListValue{Values: elems})
	case KindMap:
		fields := make(map[string]*structpb.Value, len(v.obj))
		for k, e := range v.obj {
			fields[k] = e.ToProto()
		}
		return structpb.NewStructValue(&structpb.Struct{Fields: fields})
	default:
		return structpb.NewStringValue("")
	}
}

// FromProto converts a google.protobuf.Value into a Value. Whole numbers
// within the exact float64 integer range map to Integer, everything else to
// Float. Null struct fields are dropped (absence, not null); a null anywhere
// else is an error since the union has no null variant.
func FromProto(pv *structpb.Value) (Value, error) {
	if pv == nil {
		return Value{}, fmt.Errorf("proto value: nil value")
	}
	switch k := pv.GetKind().(type) {
	case *structpb.Value_StringValue:
		return String(k.StringValue), nil
	case *structpb.Value_NumberValue:
		f := k.NumberValue
		if !math.IsInf(f, 0) && !math.IsNaN(f) && math.Trunc(f) == f &&
			f >= -float64(maxExactFloatInt) && f <= float64(maxExactFloatInt) {
			return Integer(int64(f)), nil
		}
		return Float(f), nil
	case *structpb.Value_BoolValue:
		return Bool(k.BoolValue), nil
	case *structpb.Value_ListValue:
		src := k.ListValue.GetValues()
		elems := make([]Value, 0, len(src))
		for i, e := range src {
			v, err := FromProto(e)
			if err != nil {
				return Value{}, fmt.Errorf("proto value: index %d: %w", i, err)
			}
			elems = append(elems, v)
		}
		return Array(elems...), nil
	case *structpb.Value_StructValue:
		src := k.StructValue.GetFields()
		fields := make(map[string]Value, len(src))
		for name, e := range src {
			if _, isNull := e.GetKind().(*structpb.Value_NullValue); isNull {
				continue
			}
			v, err := FromProto(e)
			if err != nil {
				return Value{}, fmt.Errorf("proto value: field %q: %w", name, err)
			}
			fields[name] = v
		}
		return Map(fields), nil
	case *structpb.Value_NullValue:
		return Value{}, fmt.Errorf("proto value: null has no value representation")
	default:
		return Value{}, fmt.Errorf("proto value: unsupported kind %T", k)
	}
}
