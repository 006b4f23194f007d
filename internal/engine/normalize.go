package engine

import (
	"fmt"
	"strconv"

	"github.com/clinical-risk-gateway/internal/domain"
)

// DefaultPredictionYears is the horizon used when neither the request nor the engine
// specifies one.
const DefaultPredictionYears = 10

// Substitute is a value an engine used in place of the one supplied. Numeric
// substitutions set Number; categorical substitutions set Name.
type Substitute struct {
	Number *float64
	Name   string
}

// String renders the substitute the way it appears in a data quality annotation.
func (s Substitute) String() string {
	if s.Number != nil {
		return FormatNumber(*s.Number)
	}
	return s.Name
}

// Check is one data quality entry in an engine's native form. Q is the engine's own
// quality code type.
type Check[Q any] struct {
	Quality    Q
	Substitute Substitute
}

// FormatNumber renders v in its shortest exact decimal form.
func FormatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Outcome accumulates one normalized engine result. Engine packages create it with
// Begin, feed it their mapped status, scores and quality, and Finish it with the
// reconciled input.
type Outcome struct {
	descriptor Descriptor
	result     *domain.EngineResult
}

// Begin resolves name against r and starts a result for it. A missing engine yields the
// resolver's *domain.ConfigurationError and no partial result.
func Begin(r Resolver, name domain.EngineName) (*Outcome, error) {
	d, err := r.Lookup(name)
	if err != nil {
		return nil, err
	}
	return &Outcome{
		descriptor: d,
		result: &domain.EngineResult{
			EngineName:    d.Name,
			EngineVersion: d.Version,
			Results:       []domain.PredictionResult{},
			Quality:       []domain.DataQuality{},
		},
	}, nil
}

// Descriptor returns the resolved engine.
func (o *Outcome) Descriptor() Descriptor {
	return o.descriptor
}

// SetStatus records the canonical status and reason.
func (o *Outcome) SetStatus(status domain.ResultStatus, reason domain.ReasonInvalid) {
	o.result.CalculationMeta = domain.CalculationMeta{
		EngineResultStatus:       status,
		EngineResultStatusReason: reason,
	}
}

// AddScore appends a score identified by the engine URI plus suffix.
func (o *Outcome) AddScore(suffix string, score float64, typical *float64, years int) {
	o.result.Results = append(o.result.Results, domain.PredictionResult{
		ID:              o.descriptor.URI + suffix,
		Score:           score,
		TypicalScore:    typical,
		PredictionYears: years,
	})
}

// AddQuality appends a data quality annotation after mapping the native code with
// canonical.
func AddQuality[Q any](o *Outcome, parameter string, c Check[Q], canonical func(Q) (domain.ParameterQuality, error)) error {
	q, err := canonical(c.Quality)
	if err != nil {
		return fmt.Errorf("quality of %s: %w", parameter, err)
	}
	o.result.Quality = append(o.result.Quality, domain.DataQuality{
		Parameter:       parameter,
		Quality:         q,
		SubstituteValue: c.Substitute.String(),
	})
	return nil
}

// Finish attaches the reconciled input, tagged with this engine, and returns the result.
func (o *Outcome) Finish(reconciled *domain.Input) *domain.EngineResult {
	o.result.EngineInputModel = reconciled.WithRequestedEngine(o.descriptor.Name)
	return o.result
}

// RequireScore returns the value of a score the engine guarantees for calculated
// results.
func RequireScore(name string, v *float64) (float64, error) {
	if v == nil {
		return 0, fmt.Errorf("%w: %s score missing", domain.ErrMissingResult, name)
	}
	return *v, nil
}

// UnknownCode reports a native code that has no canonical mapping.
func UnknownCode(kind string, code int) error {
	return fmt.Errorf("unknown native %s code %d", kind, code)
}

// Horizon returns years, or DefaultPredictionYears when years is not positive.
func Horizon(years int) int {
	if years <= 0 {
		return DefaultPredictionYears
	}
	return years
}

// Failed builds the record emitted for an engine that could not produce a result.
// consumed is the engine's reconciled view of the request.
func Failed(d Descriptor, consumed *domain.Input, err error) *domain.EngineResult {
	return &domain.EngineResult{
		EngineName:    d.Name,
		EngineVersion: d.Version,
		Results:       []domain.PredictionResult{},
		Quality:       []domain.DataQuality{},
		CalculationMeta: domain.CalculationMeta{
			EngineResultStatus:       domain.NO_CALCULATION_POSSIBLE_AS_ENGINE_LOCKED,
			EngineResultStatusReason: domain.QRISK_ENGINE_LOCKED,
			Error:                    err.Error(),
		},
		EngineInputModel: consumed.WithRequestedEngine(d.Name),
	}
}
