package qdiabetes

import (
	"github.com/clinical-risk-gateway/internal/domain"
	"github.com/clinical-risk-gateway/internal/engine"
)

// LockedCalculator stands in for the licensed QDiabetes library. It reports data
// quality for the tracked inputs and marks the engine as locked.
type LockedCalculator struct {
	version string
}

// NewLockedCalculator returns a locked calculator reporting version.
func NewLockedCalculator(version string) *LockedCalculator {
	return &LockedCalculator{version: version}
}

func (c *LockedCalculator) Version() string { return c.version }

func (c *LockedCalculator) Calculate(in Input) (*Result, error) {
	return &Result{
		Status: StatusEngineLocked,
		Reason: ReasonEngineLocked,
		Quality: DataQuality{
			SmokingStatus:       Check{Quality: nativeQuality(engine.SmokingQuality(in.SmokingStatus))},
			Ethnicity:           Check{Quality: nativeQuality(engine.EthnicityQuality(in.Ethnicity))},
			BMI:                 Check{Quality: nativeQuality(domain.BMIRange.Check(in.BMI))},
			Town:                Check{Quality: nativeQuality(domain.TownsendRange.Check(in.TownsendScore))},
			FastingBloodGlucose: Check{Quality: nativeQuality(domain.FastingBloodGlucoseRange.Check(in.FastingBloodGlucose))},
			HbA1c:               Check{Quality: nativeQuality(domain.HbA1cRange.Check(in.HbA1c))},
		},
	}, nil
}
