package domain

import "math"

// SampleStandardDeviation returns the n-1 standard deviation of values.
// It returns (0, true) for no values and (0, false) for a single value, which has no
// sample deviation.
func SampleStandardDeviation(values []float64) (float64, bool) {
	switch len(values) {
	case 0:
		return 0, true
	case 1:
		return 0, false
	}

	var sum float64
	for _, v := range values {
		sum += v
	}
	mean := sum / float64(len(values))

	var squares float64
	for _, v := range values {
		d := v - mean
		squares += d * d
	}
	return math.Sqrt(squares / float64(len(values)-1)), true
}

// BloodPressureSummary is the mean and variability of a set of systolic readings.
type BloodPressureSummary struct {
	Mean  *float64
	StDev *float64
}

// SummarizeSystolicBloodPressure derives the mean and sample deviation from raw readings.
// Fields stay nil when the readings cannot support them.
func SummarizeSystolicBloodPressure(readings []float64) BloodPressureSummary {
	var summary BloodPressureSummary
	if len(readings) == 0 {
		return summary
	}

	var sum float64
	for _, r := range readings {
		sum += r
	}
	mean := sum / float64(len(readings))
	summary.Mean = &mean

	if sd, ok := SampleStandardDeviation(readings); ok {
		summary.StDev = &sd
	}
	return summary
}
