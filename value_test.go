package fitdecode

import (
	"testing"
	"time"

	"github.com/fxamacker/cbor/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValueAsFloat64CoercesNumericKinds(t *testing.T) {
	f, ok := IntValue(-5).AsFloat64()
	require.True(t, ok)
	assert.Equal(t, -5.0, f)

	f, ok = UintValue(7).AsFloat64()
	require.True(t, ok)
	assert.Equal(t, 7.0, f)

	_, ok = StringValue("x").AsFloat64()
	assert.False(t, ok)
}

func TestValueMapAppliesElementwiseToTuples(t *testing.T) {
	tup := TupleValue([]Value{IntValue(1), IntValue(2), IntValue(3)})
	doubled := tup.Map(func(v Value) Value {
		i, _ := v.AsInt64()
		return IntValue(i * 2)
	})

	require.Equal(t, KindTuple, doubled.Kind())
	got := doubled.Tuple()
	require.Len(t, got, 3)
	assert.Equal(t, int64(2), got[0].Int())
	assert.Equal(t, int64(4), got[1].Int())
	assert.Equal(t, int64(6), got[2].Int())

	scalar := IntValue(10).Map(func(v Value) Value {
		i, _ := v.AsInt64()
		return IntValue(i + 1)
	})
	assert.Equal(t, int64(11), scalar.Int())
}

func TestValueInterfaceAndString(t *testing.T) {
	assert.Nil(t, None.Interface())
	assert.Equal(t, "none(<nil>)", None.String())
	assert.Equal(t, int64(5), IntValue(5).Interface())

	tup := TupleValue([]Value{IntValue(1), StringValue("a")})
	out, ok := tup.Interface().([]any)
	require.True(t, ok)
	assert.Equal(t, []any{int64(1), "a"}, out)
}

func TestValueCBORRoundTrip(t *testing.T) {
	now := time.Unix(1700000000, 0).UTC()
	cases := []Value{
		None,
		IntValue(-42),
		UintValue(42),
		FloatValue(3.5),
		StringValue("hello"),
		BytesValue([]byte{1, 2, 3}),
		BoolValue(true),
		TimeValue(now),
		TupleValue([]Value{IntValue(1), UintValue(2)}),
	}

	for _, v := range cases {
		data, err := cbor.Marshal(v)
		require.NoError(t, err)

		var out Value
		require.NoError(t, cbor.Unmarshal(data, &out))
		assert.Equal(t, v.Kind(), out.Kind())
		assert.Equal(t, v.Interface(), out.Interface())
	}
}
