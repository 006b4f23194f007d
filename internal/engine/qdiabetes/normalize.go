package qdiabetes

import (
	"fmt"

	"github.com/clinical-risk-gateway/internal/domain"
	"github.com/clinical-risk-gateway/internal/engine"
)

const predictionYears = 10

// Normalize converts a raw QDiabetes result for in into the engine-agnostic form.
func Normalize(r engine.Resolver, raw *Result, in Input) (*domain.EngineResult, error) {
	o, err := engine.Begin(r, domain.EngineQDiabetes)
	if err != nil {
		return nil, err
	}
	if raw == nil {
		return nil, fmt.Errorf("%w: qdiabetes returned no result", domain.ErrMissingResult)
	}

	status, err := canonicalStatus(raw.Status)
	if err != nil {
		return nil, err
	}
	reason, err := canonicalReason(raw.Reason)
	if err != nil {
		return nil, err
	}
	o.SetStatus(status, reason)

	switch {
	case status.IsCalculated():
		score, err := engine.RequireScore("qdiabetes patient", raw.PatientScore)
		if err != nil {
			return nil, err
		}
		o.AddScore("", score, raw.ReferenceScore, predictionYears)
	case raw.PatientScore != nil:
		o.AddScore("", *raw.PatientScore, raw.ReferenceScore, predictionYears)
	}

	q := raw.Quality
	checks := []struct {
		parameter string
		check     Check
	}{
		{"smokingStatus", q.SmokingStatus},
		{"ethnicity", q.Ethnicity},
		{"BMI", q.BMI},
		{"townsendScore", q.Town},
		{"fastingBloodGlucose", q.FastingBloodGlucose},
		{"hba1c", q.HbA1c},
	}
	for _, c := range checks {
		if err := engine.AddQuality(o, c.parameter, c.check, canonicalQuality); err != nil {
			return nil, err
		}
	}

	return o.Finish(Reconcile(in)), nil
}

// NewAdapter binds calc as the QDiabetes engine.
func NewAdapter(calc engine.Calculator[Input, *Result]) engine.Adapter {
	return engine.NewAdapter(engine.Binding[Input, *Result]{
		Name:      domain.EngineQDiabetes,
		URI:       URI,
		Fields:    Fields(),
		Project:   Project,
		Reconcile: Reconcile,
		Normalize: Normalize,
	}, calc)
}
