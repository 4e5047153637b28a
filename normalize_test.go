package toon

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type point struct {
	X, Y int
	tag  string // unexported: must be skipped
}

func TestNormalizeScalars(t *testing.T) {
	t.Parallel()

	v, err := Normalize(int32(7), 0)
	require.NoError(t, err)
	n, err := v.AsNum()
	require.NoError(t, err)
	assert.Equal(t, float64(7), n)

	v, err = Normalize(nil, 0)
	require.NoError(t, err)
	assert.True(t, v.IsNull())
}

func TestNormalizeUUIDAndTime(t *testing.T) {
	t.Parallel()

	id := uuid.MustParse("123e4567-e89b-12d3-a456-426614174000")
	v, err := Normalize(id, 0)
	require.NoError(t, err)
	s, err := v.AsStr()
	require.NoError(t, err)
	assert.Equal(t, id.String(), s)

	when := time.Date(2026, 7, 30, 12, 0, 0, 0, time.UTC)
	v, err = Normalize(when, 0)
	require.NoError(t, err)
	s, err = v.AsStr()
	require.NoError(t, err)
	assert.Equal(t, when.Format(time.RFC3339Nano), s)
}

func TestNormalizeMapOrdersKeys(t *testing.T) {
	t.Parallel()

	v, err := Normalize(map[string]any{"z": 1, "a": 2, "m": 3}, 0)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "m", "z"}, v.Keys())
}

func TestNormalizeStructSkipsUnexportedFields(t *testing.T) {
	t.Parallel()

	v, err := Normalize(point{X: 1, Y: 2, tag: "hidden"}, 0)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"X", "Y"}, v.Keys())
}

func TestNormalizeDepthExceeded(t *testing.T) {
	t.Parallel()

	nested := map[string]any{"a": map[string]any{"b": 1}}
	_, err := Normalize(nested, 1)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrDepthExceeded)
}

func TestNormalizeNilPointer(t *testing.T) {
	t.Parallel()

	var p *int
	v, err := Normalize(p, 0)
	require.NoError(t, err)
	assert.True(t, v.IsNull())
}
