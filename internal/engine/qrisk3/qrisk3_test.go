package qrisk3

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clinical-risk-gateway/internal/domain"
	"github.com/clinical-risk-gateway/internal/engine"
)

func femaleAged45() *domain.Input {
	return &domain.Input{
		RequestedEngines:          []domain.EngineName{domain.EngineQRisk3},
		Sex:                       domain.GenderFemale,
		Age:                       45,
		DiabetesStatus:            domain.DiabetesNone,
		BMI:                       domain.Float(23.4),
		Ethnicity:                 domain.EthnicityOtherWhiteBackground,
		CholesterolRatio:          domain.Float(4),
		SystolicBloodPressureMean: domain.Float(120),
		SmokingStatus:             domain.SmokeNonSmoker,
		TownsendScore:             domain.Float(0),
		// Not consumed by QRISK3.
		HbA1c:        domain.Float(40),
		AnyCancer:    true,
		Postcode:     "SW1A 1AA",
		BreastCancer: true,
	}
}

func ownDataCalculator() engine.Calculator[Input, *Result] {
	return engine.CalculatorFunc("QRISK3-2017.0", func(in Input) (*Result, error) {
		return &Result{
			Status:       StatusOwnData,
			Reason:       ReasonValid,
			Score:        domain.Float(1.2),
			TypicalScore: domain.Float(0.9),
		}, nil
	})
}

func newRegistry(t *testing.T, calc engine.Calculator[Input, *Result]) (*engine.Registry, engine.Adapter) {
	t.Helper()
	a := NewAdapter(calc)
	reg, err := engine.NewRegistry(a)
	require.NoError(t, err)
	return reg, a
}

func TestFemaleAged45(t *testing.T) {
	reg, a := newRegistry(t, ownDataCalculator())

	result, err := a.Run(reg, femaleAged45())
	require.NoError(t, err)

	assert.Equal(t, domain.EngineQRisk3, result.EngineName)
	assert.Equal(t, "QRISK3-2017.0", result.EngineVersion)
	assert.Equal(t, domain.CALCULATED_USING_PATIENTS_OWN_DATA, result.CalculationMeta.EngineResultStatus)
	assert.Equal(t, domain.VALID, result.CalculationMeta.EngineResultStatusReason)
	assert.False(t, result.HasOutOfRange())

	require.Len(t, result.Results, 1)
	assert.Equal(t, URI, result.Results[0].ID)
	assert.Equal(t, 1.2, result.Results[0].Score)
	assert.Equal(t, 0.9, *result.Results[0].TypicalScore)
	assert.Equal(t, 10, result.Results[0].PredictionYears)

	consumed := result.EngineInputModel
	assert.Equal(t, []domain.EngineName{domain.EngineQRisk3}, consumed.RequestedEngines)
	assert.Equal(t, domain.GenderFemale, consumed.Sex)
	assert.Nil(t, consumed.HbA1c)
	assert.False(t, consumed.AnyCancer)
	assert.Empty(t, consumed.Postcode)
}

func TestHeartAgeProducesSecondScore(t *testing.T) {
	calc := engine.CalculatorFunc("QRISK3-2017.0", func(Input) (*Result, error) {
		return &Result{
			Status:       StatusEstimatedData,
			Reason:       ReasonValid,
			Score:        domain.Float(7.5),
			TypicalScore: domain.Float(5),
			HeartAge:     domain.Float(52),
		}, nil
	})
	reg, a := newRegistry(t, calc)

	result, err := a.Run(reg, femaleAged45())
	require.NoError(t, err)

	require.Len(t, result.Results, 2)
	assert.Equal(t, URI, result.Results[0].ID)
	assert.Equal(t, URI+"HeartAge", result.Results[1].ID)
	assert.Equal(t, 52.0, result.Results[1].Score)
	assert.Nil(t, result.Results[1].TypicalScore)
}

func TestStatusMapping(t *testing.T) {
	tests := []struct {
		native    ResultStatus
		canonical domain.ResultStatus
	}{
		{ResultStatus(0), domain.NO_CALCULATION_POSSIBLE_AS_PATIENT_FAILED_CRITERIA},
		{ResultStatus(1), domain.CALCULATED_USING_PATIENTS_OWN_DATA},
		{ResultStatus(2), domain.CALCULATED_USING_ESTIMATED_OR_CORRECTED_DATA},
		{ResultStatus(3), domain.NO_CALCULATION_POSSIBLE_AS_ENGINE_LOCKED},
	}
	for _, tt := range tests {
		got, err := canonicalStatus(tt.native)
		require.NoError(t, err)
		assert.Equal(t, tt.canonical, got)
	}

	_, err := canonicalStatus(ResultStatus(4))
	assert.Error(t, err)
}

func TestReasonMapping(t *testing.T) {
	tests := []struct {
		native    Reason
		canonical domain.ReasonInvalid
	}{
		{Reason(0), domain.VALID},
		{Reason(1), domain.AGE_OUT_OF_RANGE},
		{Reason(2), domain.ALREADY_HAD_A_CVD_EVENT},
		{Reason(3), domain.ETHNICITY_OUT_OF_RANGE},
		{Reason(4), domain.VARIABLE_NON_BOOLEAN},
		{Reason(5), domain.QRISK_ENGINE_LOCKED},
		{Reason(6), domain.SMOKING_STATUS_OUT_OF_RANGE},
	}
	for _, tt := range tests {
		got, err := canonicalReason(tt.native)
		require.NoError(t, err)
		assert.Equal(t, tt.canonical, got)
	}

	_, err := canonicalReason(Reason(-1))
	assert.Error(t, err)
}

func TestQualityMapping(t *testing.T) {
	for native, canonical := range map[DataStatus]domain.ParameterQuality{
		DataStatus(0): domain.QualityOK,
		DataStatus(1): domain.QualityMissing,
		DataStatus(2): domain.QualityOutOfRange,
	} {
		got, err := canonicalQuality(native)
		require.NoError(t, err)
		assert.Equal(t, canonical, got)
		assert.Equal(t, native, nativeQuality(canonical))
	}

	_, err := canonicalQuality(DataStatus(3))
	assert.Error(t, err)
}

func TestNormalizeQualityOrderAndSubstitutes(t *testing.T) {
	reg, _ := newRegistry(t, ownDataCalculator())
	raw := &Result{
		Status: StatusEstimatedData,
		Reason: ReasonValid,
		Score:  domain.Float(3),
		Quality: DataQuality{
			SmokingStatus: Check{Quality: DataMissing, Substitute: engine.Substitute{Name: "NonSmoker"}},
			SBP:           Check{Quality: DataOutOfRange, Substitute: engine.Substitute{Number: domain.Float(123.5)}},
		},
	}

	result, err := Normalize(reg, raw, Project(femaleAged45()))
	require.NoError(t, err)

	params := make([]string, 0, len(result.Quality))
	for _, q := range result.Quality {
		params = append(params, q.Parameter)
	}
	assert.Equal(t, []string{
		"smokingStatus", "systolicBloodPressureMean", "systolicBloodPressureStDev",
		"ratio", "ethnicity", "BMI", "townsendScore",
	}, params)
	assert.Equal(t, domain.DataQuality{Parameter: "smokingStatus", Quality: domain.QualityMissing, SubstituteValue: "NonSmoker"}, result.Quality[0])
	assert.Equal(t, domain.DataQuality{Parameter: "systolicBloodPressureMean", Quality: domain.QualityOutOfRange, SubstituteValue: "123.5"}, result.Quality[1])
	assert.True(t, result.HasOutOfRange())
}

func TestNormalizeErrors(t *testing.T) {
	reg, _ := newRegistry(t, ownDataCalculator())
	in := Project(femaleAged45())

	_, err := Normalize(reg, nil, in)
	assert.ErrorIs(t, err, domain.ErrMissingResult)

	_, err = Normalize(reg, &Result{Status: StatusOwnData}, in)
	assert.ErrorIs(t, err, domain.ErrMissingResult, "calculated status requires a score")

	_, err = Normalize(reg, &Result{Status: ResultStatus(9)}, in)
	assert.Error(t, err)

	_, err = Normalize(reg, &Result{Status: StatusOwnData, Score: domain.Float(1), Quality: DataQuality{BMI: Check{Quality: DataStatus(7)}}}, in)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "BMI")

	empty, err := engine.NewRegistry()
	require.NoError(t, err)
	_, err = Normalize(empty, &Result{Status: StatusOwnData, Score: domain.Float(1)}, in)
	var cfgErr *domain.ConfigurationError
	require.True(t, errors.As(err, &cfgErr))
	assert.Equal(t, domain.EngineQRisk3, cfgErr.Engine)
}

func TestFailedCriteriaHasNoScores(t *testing.T) {
	reg, _ := newRegistry(t, ownDataCalculator())

	result, err := Normalize(reg, &Result{Status: StatusFailedCriteria, Reason: ReasonAlreadyHadCVD}, Project(femaleAged45()))
	require.NoError(t, err)

	assert.Empty(t, result.Results)
	assert.Equal(t, domain.ALREADY_HAD_A_CVD_EVENT, result.CalculationMeta.EngineResultStatusReason)
	assert.Len(t, result.Quality, 7)
}

func TestProjectionRoundTrip(t *testing.T) {
	in := femaleAged45()
	in.AtrialFibrillation = true
	in.FamilyHistoryCHD = true
	in.SystolicBloodPressureStDev = domain.Float(8)

	projected := Project(in)
	back := Reconcile(projected)

	assert.Equal(t, projected, Project(back))
	assert.Equal(t, in.Sex, back.Sex)
	assert.Equal(t, *in.BMI, *back.BMI)
	assert.NotSame(t, in.BMI, back.BMI)
	assert.True(t, back.AtrialFibrillation)
	assert.Nil(t, back.HbA1c)
	assert.False(t, back.BreastCancer)
}

func TestFieldsMatchProjectionJSON(t *testing.T) {
	data, err := json.Marshal(Project(femaleAged45()))
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))

	assert.Len(t, raw, len(Fields()))
	for _, f := range Fields() {
		assert.Contains(t, raw, f)
	}
}

func TestLockedCalculator(t *testing.T) {
	reg, a := newRegistry(t, NewLockedCalculator("locked"))

	in := femaleAged45()
	in.BMI = domain.Float(55)
	in.SmokingStatus = domain.SmokeNotKnown

	result, err := a.Run(reg, in)
	require.NoError(t, err)

	assert.Equal(t, "locked", result.EngineVersion)
	assert.Equal(t, domain.NO_CALCULATION_POSSIBLE_AS_ENGINE_LOCKED, result.CalculationMeta.EngineResultStatus)
	assert.Equal(t, domain.QRISK_ENGINE_LOCKED, result.CalculationMeta.EngineResultStatusReason)
	assert.Empty(t, result.Results)

	byParam := make(map[string]domain.ParameterQuality)
	for _, q := range result.Quality {
		byParam[q.Parameter] = q.Quality
		assert.Empty(t, q.SubstituteValue)
	}
	assert.Equal(t, domain.QualityMissing, byParam["smokingStatus"])
	assert.Equal(t, domain.QualityOK, byParam["systolicBloodPressureMean"])
	assert.Equal(t, domain.QualityMissing, byParam["systolicBloodPressureStDev"])
	assert.Equal(t, domain.QualityOK, byParam["ratio"])
	assert.Equal(t, domain.QualityOK, byParam["ethnicity"])
	assert.Equal(t, domain.QualityOutOfRange, byParam["BMI"])
	assert.Equal(t, domain.QualityOK, byParam["townsendScore"])
}
