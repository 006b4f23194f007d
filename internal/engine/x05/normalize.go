package x05

import (
	"fmt"

	"github.com/clinical-risk-gateway/internal/domain"
	"github.com/clinical-risk-gateway/internal/engine"
)

// Normalize converts a raw X05 result for in into the engine-agnostic form.
func Normalize(r engine.Resolver, raw *Result, in Input) (*domain.EngineResult, error) {
	o, err := engine.Begin(r, domain.EngineX05)
	if err != nil {
		return nil, err
	}
	if raw == nil {
		return nil, fmt.Errorf("%w: x05 returned no result", domain.ErrMissingResult)
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

	years := in.PredictionYears
	switch {
	case status.IsCalculated():
		score, err := engine.RequireScore("x05", raw.Score)
		if err != nil {
			return nil, err
		}
		o.AddScore("", score, raw.TypicalScore, years)
	case raw.Score != nil:
		o.AddScore("", *raw.Score, raw.TypicalScore, years)
	}

	for _, c := range []struct {
		parameter string
		check     Check
	}{
		{"smokingStatus", raw.Quality.SmokingStatus},
		{"ethnicity", raw.Quality.Ethnicity},
		{"BMI", raw.Quality.BMI},
	} {
		if err := engine.AddQuality(o, c.parameter, c.check, canonicalQuality); err != nil {
			return nil, err
		}
	}

	return o.Finish(Reconcile(in)), nil
}

// NewAdapter binds calc as the X05 engine.
func NewAdapter(calc engine.Calculator[Input, *Result]) engine.Adapter {
	return engine.NewAdapter(engine.Binding[Input, *Result]{
		Name:      domain.EngineX05,
		URI:       URI,
		Fields:    Fields(),
		Project:   Project,
		Reconcile: Reconcile,
		Normalize: Normalize,
	}, calc)
}
