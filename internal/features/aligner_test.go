package features

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAlignVectorMatchesSchemaOrder(t *testing.T) {
	fs := FeatureSet{"a": 1, "b": 2, "c": 3}
	schema := []string{"c", "a", "b"}

	vector, err := Align(fs, schema)
	require.NoError(t, err)
	assert.Equal(t, []float64{3, 1, 2}, vector)
}

func TestAlignMissingFeatureContributesZero(t *testing.T) {
	fs := FeatureSet{"a": 1}
	schema := []string{"a", "unseen_at_serving_time", "b"}

	vector, err := Align(fs, schema)
	require.NoError(t, err)
	require.Len(t, vector, len(schema))
	assert.Equal(t, []float64{1, 0, 0}, vector)
}

func TestAlignWithoutSchemaFails(t *testing.T) {
	fs := Engineer(RawListingAttributes{})

	_, err := Align(fs, nil)
	assert.ErrorIs(t, err, ErrSchemaUnavailable)

	_, err = Align(fs, []string{})
	assert.ErrorIs(t, err, ErrSchemaUnavailable)
}

func TestAlignFullEngineeredSet(t *testing.T) {
	fs := Engineer(RawListingAttributes{})
	cols := Columns()

	vector, err := Align(fs, cols)
	require.NoError(t, err)
	require.Len(t, vector, len(cols))

	for i, col := range cols {
		assert.Equal(t, fs[col], vector[i], "position %d (%s)", i, col)
	}
}
