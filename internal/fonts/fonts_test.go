package fonts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookup(t *testing.T) {
	a, err := Lookup(SemiboldName)
	require.NoError(t, err)
	assert.Equal(t, Semibold.Family, a.Family)
	assert.NotEmpty(t, a.Data)

	_, err = Lookup("OpenSans-Light")
	assert.Error(t, err)
}

func TestMeasure(t *testing.T) {
	empty, err := Measure(Semibold, "", 20)
	require.NoError(t, err)
	assert.Zero(t, empty)

	short, err := Measure(Semibold, "Title", 20)
	require.NoError(t, err)
	long, err := Measure(Semibold, "Test Title (2014)", 20)
	require.NoError(t, err)
	assert.Positive(t, short)
	assert.Greater(t, long, short)

	bigger, err := Measure(Semibold, "Title", 40)
	require.NoError(t, err)
	assert.InDelta(t, short*2, bigger, 2)
}

func TestFaceIsCached(t *testing.T) {
	f1, err := Face(Bold, 16)
	require.NoError(t, err)
	f2, err := Face(Bold, 16)
	require.NoError(t, err)
	assert.Same(t, f1, f2)
}

func TestFaceUnknownAsset(t *testing.T) {
	_, err := Face(Asset{Name: "missing"}, 12)
	assert.Error(t, err)
}
