package qrisk3

import (
	"fmt"

	"github.com/clinical-risk-gateway/internal/domain"
	"github.com/clinical-risk-gateway/internal/engine"
)

// QRISK3 always predicts over ten years.
const predictionYears = 10

// Normalize converts a raw QRISK3 result for in into the engine-agnostic form.
func Normalize(r engine.Resolver, raw *Result, in Input) (*domain.EngineResult, error) {
	o, err := engine.Begin(r, domain.EngineQRisk3)
	if err != nil {
		return nil, err
	}
	if raw == nil {
		return nil, fmt.Errorf("%w: qrisk3 returned no result", domain.ErrMissingResult)
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

	if status.IsCalculated() {
		score, err := engine.RequireScore("qrisk3", raw.Score)
		if err != nil {
			return nil, err
		}
		o.AddScore("", score, raw.TypicalScore, predictionYears)
	} else if raw.Score != nil {
		o.AddScore("", *raw.Score, raw.TypicalScore, predictionYears)
	}
	if raw.HeartAge != nil {
		o.AddScore("HeartAge", *raw.HeartAge, nil, predictionYears)
	}

	q := raw.Quality
	checks := []struct {
		parameter string
		check     Check
	}{
		{"smokingStatus", q.SmokingStatus},
		{"systolicBloodPressureMean", q.SBP},
		{"systolicBloodPressureStDev", q.SBPStDev},
		{"ratio", q.Ratio},
		{"ethnicity", q.Ethnicity},
		{"BMI", q.BMI},
		{"townsendScore", q.Townsend},
	}
	for _, c := range checks {
		if err := engine.AddQuality(o, c.parameter, c.check, canonicalQuality); err != nil {
			return nil, err
		}
	}

	return o.Finish(Reconcile(in)), nil
}

// NewAdapter binds calc as the QRisk3 engine.
func NewAdapter(calc engine.Calculator[Input, *Result]) engine.Adapter {
	return engine.NewAdapter(engine.Binding[Input, *Result]{
		Name:      domain.EngineQRisk3,
		URI:       URI,
		Fields:    Fields(),
		Project:   Project,
		Reconcile: Reconcile,
		Normalize: Normalize,
	}, calc)
}
