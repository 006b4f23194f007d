// Package qfracture binds the QFracture osteoporotic and hip fracture risk calculator
// to the gateway. QFracture honours the requested prediction horizon.
package qfracture

import (
	"github.com/clinical-risk-gateway/internal/domain"
	"github.com/clinical-risk-gateway/internal/engine"
)

// URI identifies QFracture scores. Hip fracture scores append "Hip".
const URI = "http://endhealth.info/im#QFracture"

// Input is the calculator's view of a request.
type Input struct {
	PredictionYears               int                     `json:"predictionYears"`
	Sex                           domain.Gender           `json:"sex"`
	Age                           int                     `json:"age"`
	CVD                           bool                    `json:"CVD"`
	SystemicCorticosteroids       bool                    `json:"systemicCorticosteroids"`
	DiabetesStatus                domain.DiabetesStatus   `json:"diabetesStatus"`
	BMI                           *float64                `json:"BMI"`
	Ethnicity                     domain.Ethnicity        `json:"ethnicity"`
	SmokingStatus                 domain.SmokeCategory    `json:"smokingStatus"`
	AlcoholStatus                 domain.AlcoholCategory6 `json:"alcoholStatus"`
	TakingAntidepressants         bool                    `json:"takingAntidepressants"`
	AnyCancer                     bool                    `json:"anyCancer"`
	AsthmaOrCOPD                  bool                    `json:"asthmaOrCOPD"`
	LivingInCareHome              bool                    `json:"livingInCareHome"`
	Dementia                      bool                    `json:"dementia"`
	EndocrineProblems             bool                    `json:"endocrineProblems"`
	EpilepsyOrAnticonvulsants     bool                    `json:"epilepsyOrAnticonvulsants"`
	HistoryOfFalls                bool                    `json:"historyOfFalls"`
	WristSpineHipShoulderFracture bool                    `json:"wristSpineHipShoulderFracture"`
	TakingOestrogenHRT            bool                    `json:"takingOestrogenHRT"`
	ChronicLiverDisease           bool                    `json:"chronicLiverDisease"`
	ChronicRenalDisease           bool                    `json:"chronicRenalDisease"`
	Malabsorption                 bool                    `json:"malabsorption"`
	ParkinsonsDisease             bool                    `json:"parkinsonsDisease"`
	RheumatoidArthritisOrSLE      bool                    `json:"rheumatoidArthritisOrSLE"`
	FamilyHistoryOsteoporosis     bool                    `json:"familyHistoryOsteoporosis"`
}

var fields = []string{
	"predictionYears", "sex", "age", "CVD", "systemicCorticosteroids", "diabetesStatus",
	"BMI", "ethnicity", "smokingStatus", "alcoholStatus", "takingAntidepressants",
	"anyCancer", "asthmaOrCOPD", "livingInCareHome", "dementia", "endocrineProblems",
	"epilepsyOrAnticonvulsants", "historyOfFalls", "wristSpineHipShoulderFracture",
	"takingOestrogenHRT", "chronicLiverDisease", "chronicRenalDisease", "malabsorption",
	"parkinsonsDisease", "rheumatoidArthritisOrSLE", "familyHistoryOsteoporosis",
}

// Fields lists the canonical fields QFracture consumes.
func Fields() []string {
	return append([]string(nil), fields...)
}

// Project copies the fields QFracture consumes out of in. An unset horizon becomes
// engine.DefaultPredictionYears so the engine and the result agree on it.
func Project(in *domain.Input) Input {
	return Input{
		PredictionYears:               engine.Horizon(in.PredictionYears),
		Sex:                           in.Sex,
		Age:                           in.Age,
		CVD:                           in.CVD,
		SystemicCorticosteroids:       in.SystemicCorticosteroids,
		DiabetesStatus:                in.DiabetesStatus,
		BMI:                           engine.CopyFloat(in.BMI),
		Ethnicity:                     in.Ethnicity,
		SmokingStatus:                 in.SmokingStatus,
		AlcoholStatus:                 in.AlcoholStatus,
		TakingAntidepressants:         in.TakingAntidepressants,
		AnyCancer:                     in.AnyCancer,
		AsthmaOrCOPD:                  in.AsthmaOrCOPD,
		LivingInCareHome:              in.LivingInCareHome,
		Dementia:                      in.Dementia,
		EndocrineProblems:             in.EndocrineProblems,
		EpilepsyOrAnticonvulsants:     in.EpilepsyOrAnticonvulsants,
		HistoryOfFalls:                in.HistoryOfFalls,
		WristSpineHipShoulderFracture: in.WristSpineHipShoulderFracture,
		TakingOestrogenHRT:            in.TakingOestrogenHRT,
		ChronicLiverDisease:           in.ChronicLiverDisease,
		ChronicRenalDisease:           in.ChronicRenalDisease,
		Malabsorption:                 in.Malabsorption,
		ParkinsonsDisease:             in.ParkinsonsDisease,
		RheumatoidArthritisOrSLE:      in.RheumatoidArthritisOrSLE,
		FamilyHistoryOsteoporosis:     in.FamilyHistoryOsteoporosis,
	}
}

// Reconcile builds a fresh canonical record holding exactly the fields in in.
func Reconcile(in Input) *domain.Input {
	return &domain.Input{
		PredictionYears:               in.PredictionYears,
		Sex:                           in.Sex,
		Age:                           in.Age,
		CVD:                           in.CVD,
		SystemicCorticosteroids:       in.SystemicCorticosteroids,
		DiabetesStatus:                in.DiabetesStatus,
		BMI:                           engine.CopyFloat(in.BMI),
		Ethnicity:                     in.Ethnicity,
		SmokingStatus:                 in.SmokingStatus,
		AlcoholStatus:                 in.AlcoholStatus,
		TakingAntidepressants:         in.TakingAntidepressants,
		AnyCancer:                     in.AnyCancer,
		AsthmaOrCOPD:                  in.AsthmaOrCOPD,
		LivingInCareHome:              in.LivingInCareHome,
		Dementia:                      in.Dementia,
		EndocrineProblems:             in.EndocrineProblems,
		EpilepsyOrAnticonvulsants:     in.EpilepsyOrAnticonvulsants,
		HistoryOfFalls:                in.HistoryOfFalls,
		WristSpineHipShoulderFracture: in.WristSpineHipShoulderFracture,
		TakingOestrogenHRT:            in.TakingOestrogenHRT,
		ChronicLiverDisease:           in.ChronicLiverDisease,
		ChronicRenalDisease:           in.ChronicRenalDisease,
		Malabsorption:                 in.Malabsorption,
		ParkinsonsDisease:             in.ParkinsonsDisease,
		RheumatoidArthritisOrSLE:      in.RheumatoidArthritisOrSLE,
		FamilyHistoryOsteoporosis:     in.FamilyHistoryOsteoporosis,
	}
}
