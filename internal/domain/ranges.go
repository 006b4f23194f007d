package domain

// Range is an inclusive valid interval for a numeric measurement.
type Range struct {
	Min float64
	Max float64
}

// Valid ranges for the measurements the engines can substitute.
var (
	TownsendRange              = Range{Min: -8, Max: 12}
	CholesterolRatioRange      = Range{Min: 1, Max: 12}
	BMIRange                   = Range{Min: 20, Max: 40}
	SystolicBloodPressureRange = Range{Min: 70, Max: 210}
	HbA1cRange                 = Range{Min: 15, Max: 47.99}
	FastingBloodGlucoseRange   = Range{Min: 2, Max: 6.99}
)

// Contains reports whether v lies within the range.
func (r Range) Contains(v float64) bool {
	return v >= r.Min && v <= r.Max
}

// Check grades an optional measurement: MISSING when absent, OUT_OF_RANGE when outside r.
func (r Range) Check(v *float64) ParameterQuality {
	switch {
	case v == nil:
		return QualityMissing
	case !r.Contains(*v):
		return QualityOutOfRange
	default:
		return QualityOK
	}
}
