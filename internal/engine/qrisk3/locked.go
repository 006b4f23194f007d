package qrisk3

import (
	"github.com/clinical-risk-gateway/internal/domain"
	"github.com/clinical-risk-gateway/internal/engine"
)

// LockedCalculator stands in for the licensed QRISK3 library. It never produces a
// score; it reports which tracked inputs are missing or out of range and marks the
// engine as locked.
type LockedCalculator struct {
	version string
}

// NewLockedCalculator returns a locked calculator reporting version.
func NewLockedCalculator(version string) *LockedCalculator {
	return &LockedCalculator{version: version}
}

func (c *LockedCalculator) Version() string {
	return c.version
}

func (c *LockedCalculator) Calculate(in Input) (*Result, error) {
	return &Result{
		Status: StatusEngineLocked,
		Reason: ReasonEngineLocked,
		Quality: DataQuality{
			SmokingStatus: Check{Quality: nativeQuality(engine.SmokingQuality(in.SmokingStatus))},
			SBP:           Check{Quality: nativeQuality(domain.SystolicBloodPressureRange.Check(in.SystolicBloodPressureMean))},
			SBPStDev:      Check{Quality: nativeQuality(engine.PresenceQuality(in.SystolicBloodPressureStDev))},
			Ratio:         Check{Quality: nativeQuality(domain.CholesterolRatioRange.Check(in.CholesterolRatio))},
			Ethnicity:     Check{Quality: nativeQuality(engine.EthnicityQuality(in.Ethnicity))},
			BMI:           Check{Quality: nativeQuality(domain.BMIRange.Check(in.BMI))},
			Townsend:      Check{Quality: nativeQuality(domain.TownsendRange.Check(in.TownsendScore))},
		},
	}, nil
}
