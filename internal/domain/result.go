package domain

import "time"

// PredictionResult is one score produced by an engine.
type PredictionResult struct {
	ID              string   `json:"@id"`
	Score           float64  `json:"score"`
	TypicalScore    *float64 `json:"typicalScore"`
	PredictionYears int      `json:"predictionYears"`
}

// DataQuality reports how an engine treated one tracked parameter and, if it substituted
// a value, what it used instead.
type DataQuality struct {
	Parameter       string           `json:"parameter"`
	Quality         ParameterQuality `json:"quality"`
	SubstituteValue string           `json:"substituteValue"`
}

// CalculationMeta carries the normalized status of one engine invocation.
type CalculationMeta struct {
	EngineResultStatus       ResultStatus  `json:"engineResultStatus"`
	EngineResultStatusReason ReasonInvalid `json:"engineResultStatusReason"`
	// Error is set only when the engine failed and the failure policy reports it.
	Error string `json:"error,omitempty"`
}

// EngineResult is one engine's normalized answer to one request. EngineInputModel holds
// exactly the fields the engine consumed, with the engine appended to RequestedEngines.
type EngineResult struct {
	EngineName       EngineName         `json:"engineName"`
	EngineVersion    string             `json:"engineVersion"`
	Results          []PredictionResult `json:"results"`
	Quality          []DataQuality      `json:"quality"`
	CalculationMeta  CalculationMeta    `json:"calculationMeta"`
	EngineInputModel *Input             `json:"engineInputModel"`
}

// HasOutOfRange reports whether any quality annotation is OUT_OF_RANGE.
func (r *EngineResult) HasOutOfRange() bool {
	for _, q := range r.Quality {
		if q.Quality == QualityOutOfRange {
			return true
		}
	}
	return false
}

// ServiceMeta describes the service that produced a prediction.
type ServiceMeta struct {
	ServiceVersion      string    `json:"serviceVersion"`
	RequestTimeStampUTC time.Time `json:"requestTimeStampUTC"`
	RequestID           string    `json:"requestId,omitempty"`
}

// Prediction is the response envelope for one prediction request.
type Prediction struct {
	EngineResults []EngineResult `json:"engineResults"`
	Meta          ServiceMeta    `json:"meta"`
	EPInputModel  *Input         `json:"epInputModel"`
}

// Score describes one installed engine in the catalog.
type Score struct {
	EngineName    EngineName `json:"engineName"`
	EngineVersion string     `json:"engineVersion"`
	EngineURI     string     `json:"engineUri"`
}

// AvailableScores is the read-only engine catalog.
type AvailableScores struct {
	Scores []Score `json:"scores"`
}

// PredictionRecord is a stored prediction, kept for audit lookups.
type PredictionRecord struct {
	ID         string       `json:"id"`
	RequestID  string       `json:"request_id,omitempty"`
	Engines    []EngineName `json:"engines"`
	Prediction *Prediction  `json:"prediction"`
	CreatedAt  time.Time    `json:"created_at"`
}
