package x05

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clinical-risk-gateway/internal/domain"
	"github.com/clinical-risk-gateway/internal/engine"
)

func request() *domain.Input {
	return &domain.Input{
		RequestedEngines:          []domain.EngineName{domain.EngineX05},
		Sex:                       domain.GenderMale,
		Age:                       62,
		DiabetesStatus:            domain.DiabetesType2,
		BMI:                       domain.Float(29),
		Ethnicity:                 domain.EthnicityCaribbean,
		SmokingStatus:             domain.SmokeHeavySmoker,
		AlcoholStatus:             domain.Alcohol6ThreeToSix,
		BarrettsOesophagus:        true,
		HiatusHernia:              true,
		ProtonPumpInhibitorStatus: domain.PPIOverSixMonthsHigh,
		CVD:                       true,
		TownsendScore:             domain.Float(3),
	}
}

func setup(t *testing.T, calc engine.Calculator[Input, *Result]) (*engine.Registry, engine.Adapter) {
	t.Helper()
	a := NewAdapter(calc)
	reg, err := engine.NewRegistry(a)
	require.NoError(t, err)
	return reg, a
}

func TestRun(t *testing.T) {
	var seen Input
	calc := engine.CalculatorFunc("X05-2019", func(in Input) (*Result, error) {
		seen = in
		return &Result{
			Status:       StatusOwnData,
			Reason:       ReasonValid,
			Score:        domain.Float(0.71),
			TypicalScore: domain.Float(0.22),
			Quality: DataQuality{
				BMI: Check{Quality: DataOK},
			},
		}, nil
	})
	reg, a := setup(t, calc)

	in := request()
	in.PredictionYears = 7
	result, err := a.Run(reg, in)
	require.NoError(t, err)

	assert.Equal(t, domain.PPIOverSixMonthsHigh, seen.ProtonPumpInhibitorStatus)
	assert.True(t, seen.BarrettsOesophagus)

	require.Len(t, result.Results, 1)
	assert.Equal(t, URI, result.Results[0].ID)
	assert.Equal(t, 0.71, result.Results[0].Score)
	assert.Equal(t, 7, result.Results[0].PredictionYears)
	assert.Equal(t, "X05-2019", result.EngineVersion)

	consumed := result.EngineInputModel
	assert.Equal(t, []domain.EngineName{domain.EngineX05}, consumed.RequestedEngines)
	assert.False(t, consumed.CVD)
	assert.Nil(t, consumed.TownsendScore)
	assert.True(t, consumed.HiatusHernia)
}

func TestDefaultHorizon(t *testing.T) {
	var asked int
	calc := engine.CalculatorFunc("X05-2019", func(in Input) (*Result, error) {
		asked = in.PredictionYears
		return &Result{Status: StatusOwnData, Score: domain.Float(1)}, nil
	})
	reg, a := setup(t, calc)

	result, err := a.Run(reg, request())
	require.NoError(t, err)

	assert.Equal(t, 10, asked)
	require.Len(t, result.Results, 1)
	assert.Equal(t, asked, result.Results[0].PredictionYears)
	assert.Equal(t, asked, result.EngineInputModel.PredictionYears)
}

func TestNativeCodeMapping(t *testing.T) {
	for native, canonical := range map[ResultStatus]domain.ResultStatus{
		ResultStatus(0): domain.NO_CALCULATION_POSSIBLE_AS_PATIENT_FAILED_CRITERIA,
		ResultStatus(1): domain.CALCULATED_USING_PATIENTS_OWN_DATA,
		ResultStatus(2): domain.CALCULATED_USING_ESTIMATED_OR_CORRECTED_DATA,
		ResultStatus(3): domain.NO_CALCULATION_POSSIBLE_AS_ENGINE_LOCKED,
	} {
		got, err := canonicalStatus(native)
		require.NoError(t, err)
		assert.Equal(t, canonical, got)
	}

	for native, canonical := range map[Reason]domain.ReasonInvalid{
		Reason(0): domain.VALID,
		Reason(1): domain.AGE_OUT_OF_RANGE,
		Reason(3): domain.ETHNICITY_OUT_OF_RANGE,
		Reason(4): domain.VARIABLE_NON_BOOLEAN,
		Reason(5): domain.QRISK_ENGINE_LOCKED,
		Reason(6): domain.SMOKING_STATUS_OUT_OF_RANGE,
	} {
		got, err := canonicalReason(native)
		require.NoError(t, err)
		assert.Equal(t, canonical, got)
	}

	for native, canonical := range map[DataStatus]domain.ParameterQuality{
		DataStatus(0): domain.QualityOK,
		DataStatus(1): domain.QualityMissing,
		DataStatus(2): domain.QualityOutOfRange,
	} {
		got, err := canonicalQuality(native)
		require.NoError(t, err)
		assert.Equal(t, canonical, got)
	}

	_, err := canonicalStatus(ResultStatus(4))
	assert.Error(t, err)
	_, err = canonicalReason(Reason(7))
	assert.Error(t, err)
	_, err = canonicalQuality(DataStatus(3))
	assert.Error(t, err)
}

func TestNormalizeRejectsUnknownStatus(t *testing.T) {
	reg, _ := setup(t, NewLockedCalculator("locked"))

	result, err := Normalize(reg, &Result{Status: ResultStatus(12)}, Project(request()))
	assert.Nil(t, result)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "12")
}

func TestNormalizeWithoutRegistration(t *testing.T) {
	reg, err := engine.NewRegistry()
	require.NoError(t, err)

	_, err = Normalize(reg, &Result{Status: StatusOwnData, Score: domain.Float(1)}, Project(request()))
	assert.True(t, errors.Is(err, domain.ErrEngineNotFound))
}

func TestProjectionRoundTrip(t *testing.T) {
	projected := Project(request())
	back := Reconcile(projected)

	assert.Equal(t, projected, Project(back))
	assert.Len(t, Fields(), 16)
}

func TestLockedCalculator(t *testing.T) {
	reg, a := setup(t, NewLockedCalculator("locked"))

	in := request()
	in.BMI = nil

	result, err := a.Run(reg, in)
	require.NoError(t, err)

	assert.Equal(t, domain.NO_CALCULATION_POSSIBLE_AS_ENGINE_LOCKED, result.CalculationMeta.EngineResultStatus)
	assert.Empty(t, result.Results)
	assert.Equal(t, []domain.DataQuality{
		{Parameter: "smokingStatus", Quality: domain.QualityOK},
		{Parameter: "ethnicity", Quality: domain.QualityOK},
		{Parameter: "BMI", Quality: domain.QualityMissing},
	}, result.Quality)
}
