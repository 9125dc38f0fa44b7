package value

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/types/known/structpb"
)

func TestProtoRoundTrip(t *testing.T) {
	v := Map(map[string]Value{
		"name":   String("Alice"),
		"age":    Integer(30),
		"score":  Float(99.5),
		"active": Bool(true),
		"tags":   Array(String("a"), String("b")),
	})

	back, err := FromProto(v.ToProto())
	require.NoError(t, err)
	assert.True(t, back.Equal(v), "got %s", back.ToJSON(false))
}

func TestFromProtoNumberClassification(t *testing.T) {
	// Whole numbers in the exact float64 range come back as Integer.
	v, err := FromProto(structpb.NewNumberValue(42))
	require.NoError(t, err)
	assert.Equal(t, KindInteger, v.Kind())

	v, err = FromProto(structpb.NewNumberValue(1.5))
	require.NoError(t, err)
	assert.Equal(t, KindFloat, v.Kind())

	v, err = FromProto(structpb.NewNumberValue(math.Inf(1)))
	require.NoError(t, err)
	assert.Equal(t, KindFloat, v.Kind())

	// Beyond 2^53 the integer distinction is already lost; stays a float.
	v, err = FromProto(structpb.NewNumberValue(1e300))
	require.NoError(t, err)
	assert.Equal(t, KindFloat, v.Kind())
}

func TestFromProtoNullStructFieldDropped(t *testing.T) {
	pv := structpb.NewStructValue(&structpb.Struct{
		Fields: map[string]*structpb.Value{
			"a": structpb.NewNumberValue(1),
			"b": structpb.NewNullValue(),
		},
	})

	v, err := FromProto(pv)
	require.NoError(t, err)
	assert.True(t, v.Equal(Map(map[string]Value{"a": Integer(1)})))
}

func TestFromProtoRejectsBareNull(t *testing.T) {
	_, err := FromProto(structpb.NewNullValue())
	assert.Error(t, err)

	_, err = FromProto(nil)
	assert.Error(t, err)

	_, err = FromProto(structpb.NewListValue(&structpb.ListValue{
		Values: []*structpb.Value{structpb.NewNullValue()},
	}))
	assert.Error(t, err)
}
