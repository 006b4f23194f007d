package engine

import (
	"github.com/clinical-risk-gateway/internal/domain"
)

// The checks below are what a locked calculator can still report without a licence:
// whether each tracked input is present and within the credible range.

// SmokingQuality treats NotKnown as missing.
func SmokingQuality(s domain.SmokeCategory) domain.ParameterQuality {
	switch {
	case s == "" || s == domain.SmokeNotKnown:
		return domain.QualityMissing
	case !s.IsValid():
		return domain.QualityOutOfRange
	default:
		return domain.QualityOK
	}
}

// EthnicityQuality treats NotRecorded and NotStated as missing.
func EthnicityQuality(e domain.Ethnicity) domain.ParameterQuality {
	switch {
	case e == "" || e == domain.EthnicityNotRecorded || e == domain.EthnicityNotStated:
		return domain.QualityMissing
	case !e.IsValid():
		return domain.QualityOutOfRange
	default:
		return domain.QualityOK
	}
}

// PresenceQuality reports only whether v was supplied.
func PresenceQuality(v *float64) domain.ParameterQuality {
	if v == nil {
		return domain.QualityMissing
	}
	return domain.QualityOK
}

// CopyFloat returns a copy of v so projections never alias the canonical record.
func CopyFloat(v *float64) *float64 {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}
