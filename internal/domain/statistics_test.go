package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSampleStandardDeviation(t *testing.T) {
	sd, ok := SampleStandardDeviation(nil)
	assert.True(t, ok)
	assert.Equal(t, 0.0, sd)

	_, ok = SampleStandardDeviation([]float64{120})
	assert.False(t, ok, "a single reading has no sample deviation")

	sd, ok = SampleStandardDeviation([]float64{2, 4, 4, 4, 5, 5, 7, 9})
	assert.True(t, ok)
	assert.InDelta(t, 2.138089935, sd, 1e-9)

	sd, ok = SampleStandardDeviation([]float64{130, 130, 130})
	assert.True(t, ok)
	assert.Equal(t, 0.0, sd)
}

func TestSummarizeSystolicBloodPressure(t *testing.T) {
	empty := SummarizeSystolicBloodPressure(nil)
	assert.Nil(t, empty.Mean)
	assert.Nil(t, empty.StDev)

	single := SummarizeSystolicBloodPressure([]float64{128})
	require.NotNil(t, single.Mean)
	assert.Equal(t, 128.0, *single.Mean)
	assert.Nil(t, single.StDev)

	several := SummarizeSystolicBloodPressure([]float64{120, 130, 140})
	require.NotNil(t, several.Mean)
	require.NotNil(t, several.StDev)
	assert.Equal(t, 130.0, *several.Mean)
	assert.InDelta(t, 10.0, *several.StDev, 1e-9)
}
