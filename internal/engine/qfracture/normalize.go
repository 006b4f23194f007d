package qfracture

import (
	"fmt"

	"github.com/clinical-risk-gateway/internal/domain"
	"github.com/clinical-risk-gateway/internal/engine"
)

// Normalize converts a raw QFracture result for in into the engine-agnostic form.
// Scores carry the horizon the calculator was asked for, or the default horizon when
// the request left it unset.
func Normalize(r engine.Resolver, raw *Result, in Input) (*domain.EngineResult, error) {
	o, err := engine.Begin(r, domain.EngineQFracture)
	if err != nil {
		return nil, err
	}
	if raw == nil {
		return nil, fmt.Errorf("%w: qfracture returned no result", domain.ErrMissingResult)
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
	if status.IsCalculated() {
		major, err := engine.RequireScore("qfracture major osteoporotic", raw.Fracture4Score)
		if err != nil {
			return nil, err
		}
		hip, err := engine.RequireScore("qfracture hip", raw.NeckOfFemurScore)
		if err != nil {
			return nil, err
		}
		o.AddScore("", major, raw.ReferenceFracture4, years)
		o.AddScore("Hip", hip, raw.ReferenceNeckOfFemur, years)
	} else {
		if raw.Fracture4Score != nil {
			o.AddScore("", *raw.Fracture4Score, raw.ReferenceFracture4, years)
		}
		if raw.NeckOfFemurScore != nil {
			o.AddScore("Hip", *raw.NeckOfFemurScore, raw.ReferenceNeckOfFemur, years)
		}
	}

	q := raw.Quality
	if err := engine.AddQuality(o, "smokingStatus", q.SmokingStatus, canonicalQuality); err != nil {
		return nil, err
	}
	if err := engine.AddQuality(o, "ethnicity", q.Ethnicity, canonicalQuality); err != nil {
		return nil, err
	}
	if err := engine.AddQuality(o, "BMI", q.BMI, canonicalQuality); err != nil {
		return nil, err
	}

	return o.Finish(Reconcile(in)), nil
}

// NewAdapter binds calc as the QFracture engine.
func NewAdapter(calc engine.Calculator[Input, *Result]) engine.Adapter {
	return engine.NewAdapter(engine.Binding[Input, *Result]{
		Name:      domain.EngineQFracture,
		URI:       URI,
		Fields:    Fields(),
		Project:   Project,
		Reconcile: Reconcile,
		Normalize: Normalize,
	}, calc)
}
