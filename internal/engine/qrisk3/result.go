package qrisk3

import (
	"github.com/clinical-risk-gateway/internal/domain"
	"github.com/clinical-risk-gateway/internal/engine"
)

// ResultStatus is the calculator's native outcome code.
type ResultStatus int

const (
	StatusFailedCriteria ResultStatus = 0
	StatusOwnData        ResultStatus = 1
	StatusEstimatedData  ResultStatus = 2
	StatusEngineLocked   ResultStatus = 3
)

// Reason is the calculator's native explanation for its status.
type Reason int

const (
	ReasonValid               Reason = 0
	ReasonAgeOutOfRange       Reason = 1
	ReasonAlreadyHadCVD       Reason = 2
	ReasonEthnicityOutOfRange Reason = 3
	ReasonNonBoolean          Reason = 4
	ReasonEngineLocked        Reason = 5
	ReasonSmokingOutOfRange   Reason = 6
)

// DataStatus is the calculator's native verdict on one input.
type DataStatus int

const (
	DataOK         DataStatus = 0
	DataMissing    DataStatus = 1
	DataOutOfRange DataStatus = 2
)

// Check is one native data quality entry.
type Check = engine.Check[DataStatus]

// DataQuality is the calculator's report on the inputs it tracks.
type DataQuality struct {
	SmokingStatus Check
	SBP           Check
	SBPStDev      Check
	Ratio         Check
	Ethnicity     Check
	BMI           Check
	Townsend      Check
}

// Result is the calculator's raw output. Score is guaranteed whenever Status is a
// calculated status; HeartAge is reported only by calculators that support it.
type Result struct {
	Status       ResultStatus
	Reason       Reason
	Score        *float64
	TypicalScore *float64
	HeartAge     *float64
	Quality      DataQuality
}

func canonicalStatus(s ResultStatus) (domain.ResultStatus, error) {
	switch s {
	case StatusFailedCriteria:
		return domain.NO_CALCULATION_POSSIBLE_AS_PATIENT_FAILED_CRITERIA, nil
	case StatusOwnData:
		return domain.CALCULATED_USING_PATIENTS_OWN_DATA, nil
	case StatusEstimatedData:
		return domain.CALCULATED_USING_ESTIMATED_OR_CORRECTED_DATA, nil
	case StatusEngineLocked:
		return domain.NO_CALCULATION_POSSIBLE_AS_ENGINE_LOCKED, nil
	default:
		return "", engine.UnknownCode("qrisk3 status", int(s))
	}
}

func canonicalReason(r Reason) (domain.ReasonInvalid, error) {
	switch r {
	case ReasonValid:
		return domain.VALID, nil
	case ReasonAgeOutOfRange:
		return domain.AGE_OUT_OF_RANGE, nil
	case ReasonAlreadyHadCVD:
		return domain.ALREADY_HAD_A_CVD_EVENT, nil
	case ReasonEthnicityOutOfRange:
		return domain.ETHNICITY_OUT_OF_RANGE, nil
	case ReasonNonBoolean:
		return domain.VARIABLE_NON_BOOLEAN, nil
	case ReasonEngineLocked:
		return domain.QRISK_ENGINE_LOCKED, nil
	case ReasonSmokingOutOfRange:
		return domain.SMOKING_STATUS_OUT_OF_RANGE, nil
	default:
		return "", engine.UnknownCode("qrisk3 reason", int(r))
	}
}

func canonicalQuality(d DataStatus) (domain.ParameterQuality, error) {
	switch d {
	case DataOK:
		return domain.QualityOK, nil
	case DataMissing:
		return domain.QualityMissing, nil
	case DataOutOfRange:
		return domain.QualityOutOfRange, nil
	default:
		return "", engine.UnknownCode("qrisk3 data quality", int(d))
	}
}

func nativeQuality(q domain.ParameterQuality) DataStatus {
	switch q {
	case domain.QualityMissing:
		return DataMissing
	case domain.QualityOutOfRange:
		return DataOutOfRange
	default:
		return DataOK
	}
}
