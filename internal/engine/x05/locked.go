package x05

import (
	"github.com/clinical-risk-gateway/internal/domain"
	"github.com/clinical-risk-gateway/internal/engine"
)

// LockedCalculator stands in for the licensed X05 library.
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
			SmokingStatus: Check{Quality: nativeQuality(engine.SmokingQuality(in.SmokingStatus))},
			Ethnicity:     Check{Quality: nativeQuality(engine.EthnicityQuality(in.Ethnicity))},
			BMI:           Check{Quality: nativeQuality(domain.BMIRange.Check(in.BMI))},
		},
	}, nil
}
