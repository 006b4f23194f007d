// Package x05 binds the X05 oesophageal cancer risk calculator to the gateway.
package x05

import (
	"github.com/clinical-risk-gateway/internal/domain"
	"github.com/clinical-risk-gateway/internal/engine"
)

// URI identifies X05 scores.
const URI = "http://endhealth.info/im#X05"

// Input is the calculator's view of a request.
type Input struct {
	Sex                       domain.Gender           `json:"sex"`
	Age                       int                     `json:"age"`
	DiabetesStatus            domain.DiabetesStatus   `json:"diabetesStatus"`
	BMI                       *float64                `json:"BMI"`
	Ethnicity                 domain.Ethnicity        `json:"ethnicity"`
	SmokingStatus             domain.SmokeCategory    `json:"smokingStatus"`
	AlcoholStatus             domain.AlcoholCategory6 `json:"alcoholStatus"`
	PredictionYears           int                     `json:"predictionYears"`
	BarrettsOesophagus        bool                    `json:"barrettsOesophagus"`
	BloodCancer               bool                    `json:"bloodCancer"`
	BreastCancer              bool                    `json:"breastCancer"`
	HiatusHernia              bool                    `json:"hiatusHernia"`
	HPyloriInfection          bool                    `json:"hPyloriInfection"`
	LungCancer                bool                    `json:"lungCancer"`
	Anaemia                   bool                    `json:"anaemia"`
	ProtonPumpInhibitorStatus domain.PPICategory      `json:"protonPumpInhibitorStatus"`
}

var fields = []string{
	"sex", "age", "diabetesStatus", "BMI", "ethnicity", "smokingStatus", "alcoholStatus",
	"predictionYears", "barrettsOesophagus", "bloodCancer", "breastCancer", "hiatusHernia",
	"hPyloriInfection", "lungCancer", "anaemia", "protonPumpInhibitorStatus",
}

// Fields lists the canonical fields X05 consumes.
func Fields() []string {
	return append([]string(nil), fields...)
}

// Project copies the fields X05 consumes out of in, defaulting the horizon.
func Project(in *domain.Input) Input {
	return Input{
		Sex:                       in.Sex,
		Age:                       in.Age,
		DiabetesStatus:            in.DiabetesStatus,
		BMI:                       engine.CopyFloat(in.BMI),
		Ethnicity:                 in.Ethnicity,
		SmokingStatus:             in.SmokingStatus,
		AlcoholStatus:             in.AlcoholStatus,
		PredictionYears:           engine.Horizon(in.PredictionYears),
		BarrettsOesophagus:        in.BarrettsOesophagus,
		BloodCancer:               in.BloodCancer,
		BreastCancer:              in.BreastCancer,
		HiatusHernia:              in.HiatusHernia,
		HPyloriInfection:          in.HPyloriInfection,
		LungCancer:                in.LungCancer,
		Anaemia:                   in.Anaemia,
		ProtonPumpInhibitorStatus: in.ProtonPumpInhibitorStatus,
	}
}

// Reconcile builds a fresh canonical record holding exactly the fields in in.
func Reconcile(in Input) *domain.Input {
	return &domain.Input{
		Sex:                       in.Sex,
		Age:                       in.Age,
		DiabetesStatus:            in.DiabetesStatus,
		BMI:                       engine.CopyFloat(in.BMI),
		Ethnicity:                 in.Ethnicity,
		SmokingStatus:             in.SmokingStatus,
		AlcoholStatus:             in.AlcoholStatus,
		PredictionYears:           in.PredictionYears,
		BarrettsOesophagus:        in.BarrettsOesophagus,
		BloodCancer:               in.BloodCancer,
		BreastCancer:              in.BreastCancer,
		HiatusHernia:              in.HiatusHernia,
		HPyloriInfection:          in.HPyloriInfection,
		LungCancer:                in.LungCancer,
		Anaemia:                   in.Anaemia,
		ProtonPumpInhibitorStatus: in.ProtonPumpInhibitorStatus,
	}
}
