// Package qdiabetes binds the QDiabetes type 2 diabetes risk calculator to the gateway.
package qdiabetes

import (
	"github.com/clinical-risk-gateway/internal/domain"
	"github.com/clinical-risk-gateway/internal/engine"
)

// URI identifies QDiabetes scores.
const URI = "http://endhealth.info/im#QDiabetes"

// Input is the calculator's view of a request.
type Input struct {
	Sex                             domain.Gender         `json:"sex"`
	Age                             int                   `json:"age"`
	CVD                             bool                  `json:"CVD"`
	AtypicalAntipsychoticMedication bool                  `json:"atypicalAntipsychoticMedication"`
	SystemicCorticosteroids         bool                  `json:"systemicCorticosteroids"`
	BloodPressureTreatment          bool                  `json:"bloodPressureTreatment"`
	GestationalDiabetes             bool                  `json:"gestationalDiabetes"`
	LearningDisabilities            bool                  `json:"learningDisabilities"`
	ManicDepressionSchizophrenia    bool                  `json:"manicDepressionSchizophrenia"`
	PolycysticOvaries               bool                  `json:"polycysticOvaries"`
	Statins                         bool                  `json:"statins"`
	FamilyHistoryDiabetes           bool                  `json:"familyHistoryDiabetes"`
	FastingBloodGlucose             *float64              `json:"fastingBloodGlucose"`
	HbA1c                           *float64              `json:"hba1c"`
	DiabetesStatus                  domain.DiabetesStatus `json:"diabetesStatus"`
	BMI                             *float64              `json:"BMI"`
	Ethnicity                       domain.Ethnicity      `json:"ethnicity"`
	SmokingStatus                   domain.SmokeCategory  `json:"smokingStatus"`
	TownsendScore                   *float64              `json:"townsendScore"`
}

var fields = []string{
	"sex", "age", "CVD", "atypicalAntipsychoticMedication", "systemicCorticosteroids",
	"bloodPressureTreatment", "gestationalDiabetes", "learningDisabilities",
	"manicDepressionSchizophrenia", "polycysticOvaries", "statins", "familyHistoryDiabetes",
	"fastingBloodGlucose", "hba1c", "diabetesStatus", "BMI", "ethnicity", "smokingStatus",
	"townsendScore",
}

// Fields lists the canonical fields QDiabetes consumes.
func Fields() []string {
	return append([]string(nil), fields...)
}

// Project copies the fields QDiabetes consumes out of in.
func Project(in *domain.Input) Input {
	return Input{
		Sex:                             in.Sex,
		Age:                             in.Age,
		CVD:                             in.CVD,
		AtypicalAntipsychoticMedication: in.AtypicalAntipsychoticMedication,
		SystemicCorticosteroids:         in.SystemicCorticosteroids,
		BloodPressureTreatment:          in.BloodPressureTreatment,
		GestationalDiabetes:             in.GestationalDiabetes,
		LearningDisabilities:            in.LearningDisabilities,
		ManicDepressionSchizophrenia:    in.ManicDepressionSchizophrenia,
		PolycysticOvaries:               in.PolycysticOvaries,
		Statins:                         in.Statins,
		FamilyHistoryDiabetes:           in.FamilyHistoryDiabetes,
		FastingBloodGlucose:             engine.CopyFloat(in.FastingBloodGlucose),
		HbA1c:                           engine.CopyFloat(in.HbA1c),
		DiabetesStatus:                  in.DiabetesStatus,
		BMI:                             engine.CopyFloat(in.BMI),
		Ethnicity:                       in.Ethnicity,
		SmokingStatus:                   in.SmokingStatus,
		TownsendScore:                   engine.CopyFloat(in.TownsendScore),
	}
}

// Reconcile builds a fresh canonical record holding exactly the fields in in.
func Reconcile(in Input) *domain.Input {
	return &domain.Input{
		Sex:                             in.Sex,
		Age:                             in.Age,
		CVD:                             in.CVD,
		AtypicalAntipsychoticMedication: in.AtypicalAntipsychoticMedication,
		SystemicCorticosteroids:         in.SystemicCorticosteroids,
		BloodPressureTreatment:          in.BloodPressureTreatment,
		GestationalDiabetes:             in.GestationalDiabetes,
		LearningDisabilities:            in.LearningDisabilities,
		ManicDepressionSchizophrenia:    in.ManicDepressionSchizophrenia,
		PolycysticOvaries:               in.PolycysticOvaries,
		Statins:                         in.Statins,
		FamilyHistoryDiabetes:           in.FamilyHistoryDiabetes,
		FastingBloodGlucose:             engine.CopyFloat(in.FastingBloodGlucose),
		HbA1c:                           engine.CopyFloat(in.HbA1c),
		DiabetesStatus:                  in.DiabetesStatus,
		BMI:                             engine.CopyFloat(in.BMI),
		Ethnicity:                       in.Ethnicity,
		SmokingStatus:                   in.SmokingStatus,
		TownsendScore:                   engine.CopyFloat(in.TownsendScore),
	}
}
