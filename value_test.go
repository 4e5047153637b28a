package toon

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNumNormalization(t *testing.T) {
	t.Parallel()

	for _, tc := range []struct {
		desc string
		in   float64
		want Value
	}{
		{desc: "NaN", in: math.NaN(), want: Null()},
		{desc: "+Inf", in: math.Inf(1), want: Null()},
		{desc: "-Inf", in: math.Inf(-1), want: Null()},
		{desc: "negative zero", in: math.Copysign(0, -1), want: Num(0)},
		{desc: "ordinary", in: 3.5, want: Value{kind: KindNum, number: 3.5}},
	} {
		t.Run(tc.desc, func(t *testing.T) {
			t.Parallel()
			got := Num(tc.in)
			if diff := cmp.Diff(tc.want, got, cmp.AllowUnexported(Value{})); diff != "" {
				t.Errorf("Num(%v) mismatch (-want +got):\n%s", tc.in, diff)
			}
		})
	}
}

func TestValueSetOverwritesInPlace(t *testing.T) {
	t.Parallel()

	v := Obj().Set("a", Num(1)).Set("b", Num(2)).Set("a", Num(3))
	assert.Equal(t, []string{"a", "b"}, v.Keys())
	n, err := v.Key("a").AsNum()
	require.NoError(t, err)
	assert.Equal(t, float64(3), n)
}

func TestValueHasDistinguishesAbsentFromNull(t *testing.T) {
	t.Parallel()

	v := Obj().Set("present", Null())
	assert.True(t, v.Has("present"))
	assert.False(t, v.Has("absent"))
	assert.True(t, v.Key("present").IsNull())
	assert.True(t, v.Key("absent").IsNull())
}

func TestValueAccessorsTypeMismatch(t *testing.T) {
	t.Parallel()

	_, err := Str("x").AsNum()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrType)
}

func TestValueMarshalJSONPreservesOrder(t *testing.T) {
	t.Parallel()

	v := Obj().Set("b", Num(1)).Set("a", Arr(Str("x"), Null(), Bool(true)))
	b, err := v.MarshalJSON()
	require.NoError(t, err)
	assert.JSONEq(t, `{"b":1,"a":["x",null,true]}`, string(b))
	assert.Equal(t, `{"b":1,"a":["x",null,true]}`, string(b))
}
