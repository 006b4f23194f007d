// Package qrisk3 binds the QRISK3 10-year cardiovascular risk calculator to the gateway.
//
// IMPORTANT: a QRISK3 score is an estimate of future CVD risk and must always be read
// alongside the patient's complete clinical picture. It does not replace clinical
// judgement.
package qrisk3

import (
	"github.com/clinical-risk-gateway/internal/domain"
	"github.com/clinical-risk-gateway/internal/engine"
)

// URI identifies QRISK3 scores.
const URI = "http://endhealth.info/im#Qrisk3"

// Input is the calculator's view of a request.
type Input struct {
	CVD                             bool                  `json:"CVD"`
	Sex                             domain.Gender         `json:"sex"`
	Age                             int                   `json:"age"`
	AtrialFibrillation              bool                  `json:"atrialFibrillation"`
	AtypicalAntipsychoticMedication bool                  `json:"atypicalAntipsychoticMedication"`
	SystemicCorticosteroids         bool                  `json:"systemicCorticosteroids"`
	Impotence                       bool                  `json:"impotence"`
	Migraines                       bool                  `json:"migraines"`
	RheumatoidArthritis             bool                  `json:"rheumatoidArthritis"`
	ChronicRenalDisease             bool                  `json:"chronicRenalDisease"`
	SevereMentalIllness             bool                  `json:"severeMentalIllness"`
	SystemicLupusErythematosus      bool                  `json:"systemicLupusErythematosus"`
	BloodPressureTreatment          bool                  `json:"bloodPressureTreatment"`
	DiabetesStatus                  domain.DiabetesStatus `json:"diabetesStatus"`
	BMI                             *float64              `json:"BMI"`
	Ethnicity                       domain.Ethnicity      `json:"ethnicity"`
	FamilyHistoryCHD                bool                  `json:"familyHistoryCHD"`
	CholesterolRatio                *float64              `json:"cholesterolRatio"`
	SystolicBloodPressureMean       *float64              `json:"systolicBloodPressureMean"`
	SystolicBloodPressureStDev      *float64              `json:"systolicBloodPressureStDev"`
	SmokingStatus                   domain.SmokeCategory  `json:"smokingStatus"`
	TownsendScore                   *float64              `json:"townsendScore"`
}

var fields = []string{
	"CVD", "sex", "age", "atrialFibrillation", "atypicalAntipsychoticMedication",
	"systemicCorticosteroids", "impotence", "migraines", "rheumatoidArthritis",
	"chronicRenalDisease", "severeMentalIllness", "systemicLupusErythematosus",
	"bloodPressureTreatment", "diabetesStatus", "BMI", "ethnicity", "familyHistoryCHD",
	"cholesterolRatio", "systolicBloodPressureMean", "systolicBloodPressureStDev",
	"smokingStatus", "townsendScore",
}

// Fields lists the canonical fields QRISK3 consumes.
func Fields() []string {
	return append([]string(nil), fields...)
}

// Project copies the fields QRISK3 consumes out of in.
func Project(in *domain.Input) Input {
	return Input{
		CVD:                             in.CVD,
		Sex:                             in.Sex,
		Age:                             in.Age,
		AtrialFibrillation:              in.AtrialFibrillation,
		AtypicalAntipsychoticMedication: in.AtypicalAntipsychoticMedication,
		SystemicCorticosteroids:         in.SystemicCorticosteroids,
		Impotence:                       in.Impotence,
		Migraines:                       in.Migraines,
		RheumatoidArthritis:             in.RheumatoidArthritis,
		ChronicRenalDisease:             in.ChronicRenalDisease,
		SevereMentalIllness:             in.SevereMentalIllness,
		SystemicLupusErythematosus:      in.SystemicLupusErythematosus,
		BloodPressureTreatment:          in.BloodPressureTreatment,
		DiabetesStatus:                  in.DiabetesStatus,
		BMI:                             engine.CopyFloat(in.BMI),
		Ethnicity:                       in.Ethnicity,
		FamilyHistoryCHD:                in.FamilyHistoryCHD,
		CholesterolRatio:                engine.CopyFloat(in.CholesterolRatio),
		SystolicBloodPressureMean:       engine.CopyFloat(in.SystolicBloodPressureMean),
		SystolicBloodPressureStDev:      engine.CopyFloat(in.SystolicBloodPressureStDev),
		SmokingStatus:                   in.SmokingStatus,
		TownsendScore:                   engine.CopyFloat(in.TownsendScore),
	}
}

// Reconcile builds a fresh canonical record holding exactly the fields in in.
func Reconcile(in Input) *domain.Input {
	return &domain.Input{
		CVD:                             in.CVD,
		Sex:                             in.Sex,
		Age:                             in.Age,
		AtrialFibrillation:              in.AtrialFibrillation,
		AtypicalAntipsychoticMedication: in.AtypicalAntipsychoticMedication,
		SystemicCorticosteroids:         in.SystemicCorticosteroids,
		Impotence:                       in.Impotence,
		Migraines:                       in.Migraines,
		RheumatoidArthritis:             in.RheumatoidArthritis,
		ChronicRenalDisease:             in.ChronicRenalDisease,
		SevereMentalIllness:             in.SevereMentalIllness,
		SystemicLupusErythematosus:      in.SystemicLupusErythematosus,
		BloodPressureTreatment:          in.BloodPressureTreatment,
		DiabetesStatus:                  in.DiabetesStatus,
		BMI:                             engine.CopyFloat(in.BMI),
		Ethnicity:                       in.Ethnicity,
		FamilyHistoryCHD:                in.FamilyHistoryCHD,
		CholesterolRatio:                engine.CopyFloat(in.CholesterolRatio),
		SystolicBloodPressureMean:       engine.CopyFloat(in.SystolicBloodPressureMean),
		SystolicBloodPressureStDev:      engine.CopyFloat(in.SystolicBloodPressureStDev),
		SmokingStatus:                   in.SmokingStatus,
		TownsendScore:                   engine.CopyFloat(in.TownsendScore),
	}
}
