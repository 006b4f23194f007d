package domain

import "fmt"

// Input is the canonical, engine-agnostic prediction request.
//
// Optional measurements are pointers: nil means "not supplied", which engines treat
// differently from zero. JSON names match the published request schema.
type Input struct {
	RequestedEngines []EngineName `json:"requestedEngines"`

	Sex Gender `json:"sex"`
	Age int    `json:"age"`

	// Comorbidities and history
	CVD                             bool `json:"CVD"`
	AtrialFibrillation              bool `json:"atrialFibrillation"`
	AtypicalAntipsychoticMedication bool `json:"atypicalAntipsychoticMedication"`
	SystemicCorticosteroids         bool `json:"systemicCorticosteroids"`
	BloodPressureTreatment          bool `json:"bloodPressureTreatment"`
	Impotence                       bool `json:"impotence"`
	Migraines                       bool `json:"migraines"`
	RheumatoidArthritis             bool `json:"rheumatoidArthritis"`
	ChronicRenalDisease             bool `json:"chronicRenalDisease"`
	SevereMentalIllness             bool `json:"severeMentalIllness"`
	SystemicLupusErythematosus      bool `json:"systemicLupusErythematosus"`
	GestationalDiabetes             bool `json:"gestationalDiabetes"`
	LearningDisabilities            bool `json:"learningDisabilities"`
	ManicDepressionSchizophrenia    bool `json:"manicDepressionSchizophrenia"`
	PolycysticOvaries               bool `json:"polycysticOvaries"`
	Statins                         bool `json:"statins"`
	FamilyHistoryDiabetes           bool `json:"familyHistoryDiabetes"`
	FamilyHistoryCHD                bool `json:"familyHistoryCHD"`

	// Measurements
	FastingBloodGlucose        *float64  `json:"fastingBloodGlucose,omitempty"`
	HbA1c                      *float64  `json:"hba1c,omitempty"`
	CholesterolRatio           *float64  `json:"cholesterolRatio,omitempty"`
	BMI                        *float64  `json:"BMI,omitempty"`
	SystolicBloodPressureMean  *float64  `json:"systolicBloodPressureMean,omitempty"`
	SystolicBloodPressureStDev *float64  `json:"systolicBloodPressureStDev,omitempty"`
	SystolicBloodPressures     []float64 `json:"systolicBloodPressures,omitempty"`
	TownsendScore              *float64  `json:"townsendScore,omitempty"`
	Postcode                   string    `json:"postcode,omitempty"`

	DiabetesStatus DiabetesStatus   `json:"diabetesStatus,omitempty"`
	Ethnicity      Ethnicity        `json:"ethnicity,omitempty"`
	SmokingStatus  SmokeCategory    `json:"smokingStatus,omitempty"`
	AlcoholStatus  AlcoholCategory6 `json:"alcoholStatus,omitempty"`

	// PredictionYears of 0 lets each engine apply its own default horizon.
	PredictionYears int `json:"predictionYears"`

	// Fracture risk
	TakingAntidepressants         bool `json:"takingAntidepressants"`
	AnyCancer                     bool `json:"anyCancer"`
	AsthmaOrCOPD                  bool `json:"asthmaOrCOPD"`
	LivingInCareHome              bool `json:"livingInCareHome"`
	Dementia                      bool `json:"dementia"`
	EndocrineProblems             bool `json:"endocrineProblems"`
	EpilepsyOrAnticonvulsants     bool `json:"epilepsyOrAnticonvulsants"`
	HistoryOfFalls                bool `json:"historyOfFalls"`
	WristSpineHipShoulderFracture bool `json:"wristSpineHipShoulderFracture"`
	TakingOestrogenHRT            bool `json:"takingOestrogenHRT"`
	ChronicLiverDisease           bool `json:"chronicLiverDisease"`
	Malabsorption                 bool `json:"malabsorption"`
	ParkinsonsDisease             bool `json:"parkinsonsDisease"`
	RheumatoidArthritisOrSLE      bool `json:"rheumatoidArthritisOrSLE"`
	FamilyHistoryOsteoporosis     bool `json:"familyHistoryOsteoporosis"`

	// Oesophageal cancer risk
	BarrettsOesophagus        bool        `json:"barrettsOesophagus"`
	BloodCancer               bool        `json:"bloodCancer"`
	BreastCancer              bool        `json:"breastCancer"`
	HiatusHernia              bool        `json:"hiatusHernia"`
	HPyloriInfection          bool        `json:"hPyloriInfection"`
	LungCancer                bool        `json:"lungCancer"`
	Anaemia                   bool        `json:"anaemia"`
	ProtonPumpInhibitorStatus PPICategory `json:"protonPumpInhibitorStatus,omitempty"`
}

// Validate checks structural validity and returns every violation as ValidationErrors.
// Out-of-range measurements are not violations; engines report them as data quality.
func (in *Input) Validate() error {
	var errs ValidationErrors

	if len(in.RequestedEngines) == 0 {
		errs = append(errs, NewValidationError("requestedEngines", "at least one engine is required", nil))
	}
	seen := make(map[EngineName]bool, len(in.RequestedEngines))
	for _, e := range in.RequestedEngines {
		if seen[e] {
			errs = append(errs, NewValidationError("requestedEngines", fmt.Sprintf("engine %q requested more than once", e), e))
		}
		seen[e] = true
	}

	if !in.Sex.IsValid() {
		errs = append(errs, invalidMember("sex", in.Sex))
	}
	if in.Age < 0 {
		errs = append(errs, NewValidationError("age", "must not be negative", in.Age))
	}
	if in.PredictionYears < 0 {
		errs = append(errs, NewValidationError("predictionYears", "must not be negative", in.PredictionYears))
	}
	if in.DiabetesStatus != "" && !in.DiabetesStatus.IsValid() {
		errs = append(errs, invalidMember("diabetesStatus", in.DiabetesStatus))
	}
	if in.Ethnicity != "" && !in.Ethnicity.IsValid() {
		errs = append(errs, invalidMember("ethnicity", in.Ethnicity))
	}
	if in.SmokingStatus != "" && !in.SmokingStatus.IsValid() {
		errs = append(errs, invalidMember("smokingStatus", in.SmokingStatus))
	}
	if in.AlcoholStatus != "" && !in.AlcoholStatus.IsValid() {
		errs = append(errs, invalidMember("alcoholStatus", in.AlcoholStatus))
	}
	if in.ProtonPumpInhibitorStatus != "" && !in.ProtonPumpInhibitorStatus.IsValid() {
		errs = append(errs, invalidMember("protonPumpInhibitorStatus", in.ProtonPumpInhibitorStatus))
	}
	if in.Postcode != "" && !IsValidPostcode(in.Postcode) {
		errs = append(errs, NewValidationError("postcode", "not a recognised UK postcode", in.Postcode))
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

func invalidMember[T ~string](field string, v T) *ValidationError {
	return &ValidationError{
		Field:   field,
		Message: fmt.Sprintf("unknown value %q", string(v)),
		Value:   string(v),
		Err:     ErrInvalidEnum,
	}
}

// ApplyDefaults fills omitted categoricals with their "unknown" members, derives blood
// pressure mean and variability from raw readings when those were not given, and
// canonicalizes the postcode. Call it after Validate.
func (in *Input) ApplyDefaults() {
	if in.DiabetesStatus == "" {
		in.DiabetesStatus = DiabetesNone
	}
	if in.Ethnicity == "" {
		in.Ethnicity = EthnicityNotRecorded
	}
	if in.SmokingStatus == "" {
		in.SmokingStatus = SmokeNotKnown
	}
	if in.AlcoholStatus == "" {
		in.AlcoholStatus = Alcohol6NotKnown
	}
	if in.ProtonPumpInhibitorStatus == "" {
		in.ProtonPumpInhibitorStatus = PPINotKnown
	}

	if len(in.SystolicBloodPressures) > 0 {
		summary := SummarizeSystolicBloodPressure(in.SystolicBloodPressures)
		if in.SystolicBloodPressureMean == nil {
			in.SystolicBloodPressureMean = summary.Mean
		}
		if in.SystolicBloodPressureStDev == nil {
			in.SystolicBloodPressureStDev = summary.StDev
		}
	}

	if in.Postcode != "" {
		in.Postcode = NormalizePostcode(in.Postcode)
	}
}

// Clone returns a deep copy.
func (in *Input) Clone() *Input {
	out := *in
	out.RequestedEngines = append([]EngineName(nil), in.RequestedEngines...)
	out.SystolicBloodPressures = append([]float64(nil), in.SystolicBloodPressures...)
	out.FastingBloodGlucose = cloneFloat(in.FastingBloodGlucose)
	out.HbA1c = cloneFloat(in.HbA1c)
	out.CholesterolRatio = cloneFloat(in.CholesterolRatio)
	out.BMI = cloneFloat(in.BMI)
	out.SystolicBloodPressureMean = cloneFloat(in.SystolicBloodPressureMean)
	out.SystolicBloodPressureStDev = cloneFloat(in.SystolicBloodPressureStDev)
	out.TownsendScore = cloneFloat(in.TownsendScore)
	return &out
}

// WithRequestedEngine returns a copy with name appended to RequestedEngines.
func (in *Input) WithRequestedEngine(name EngineName) *Input {
	out := in.Clone()
	out.RequestedEngines = append(out.RequestedEngines, name)
	return out
}

func cloneFloat(v *float64) *float64 {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}

// Float returns a pointer to v, for building inputs in code.
func Float(v float64) *float64 {
	return &v
}
