// Package testpack loads reference test-pack fixtures: flat CSV rows of patient data
// published alongside a calculator so that its outputs can be checked row by row.
package testpack

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/clinical-risk-gateway/internal/domain"
)

// QRisk3Columns names the columns of a QRISK3 test pack in positional order. Names
// after the row id match the JSON names of domain.Input.
var QRisk3Columns = []string{
	"rowId",
	"CVD",
	"sex",
	"age",
	"atrialFibrillation",
	"atypicalAntipsychoticMedication",
	"systemicCorticosteroids",
	"impotence",
	"migraines",
	"rheumatoidArthritis",
	"chronicRenalDisease",
	"severeMentalIllness",
	"systemicLupusErythematosus",
	"bloodPressureTreatment",
	"diabetesStatus",
	"BMI",
	"ethnicity",
	"familyHistoryCHD",
	"cholesterolRatio",
	"systolicBloodPressureMean",
	"systolicBloodPressureStDev",
	"smokingStatus",
	"townsendScore",
}

// ErrRowLength is wrapped by errors for rows without exactly one value per column.
var ErrRowLength = errors.New("wrong number of columns")

// rowParser reads typed values out of one row, keeping the first failure.
type rowParser struct {
	row []string
	err error
}

func (p *rowParser) fail(col int, message string, err error) {
	if p.err != nil {
		return
	}
	p.err = &domain.ValidationError{
		Field:   QRisk3Columns[col],
		Message: fmt.Sprintf("column %d: %s", col, message),
		Value:   p.row[col],
		Err:     err,
	}
}

func (p *rowParser) text(col int) string {
	return strings.TrimSpace(p.row[col])
}

func (p *rowParser) flag(col int) bool {
	switch p.text(col) {
	case "1":
		return true
	case "0":
		return false
	}
	p.fail(col, `flag must be "0" or "1"`, nil)
	return false
}

func (p *rowParser) integer(col int) int {
	v, err := strconv.Atoi(p.text(col))
	if err != nil {
		p.fail(col, "not an integer", err)
	}
	return v
}

func (p *rowParser) decimal(col int) *float64 {
	v, err := strconv.ParseFloat(p.text(col), 64)
	if err != nil {
		p.fail(col, "not a decimal number", err)
		return nil
	}
	return &v
}

func member[T ~string](p *rowParser, col int, parse func(string) (T, error)) T {
	v, err := parse(p.text(col))
	if err != nil {
		p.fail(col, fmt.Sprintf("unknown value %q", p.text(col)), domain.ErrInvalidEnum)
	}
	return v
}

// ParseQRisk3Row builds a QRisk3 request from one positional test-pack row. Parsing is
// strict: the first column that does not parse fails the row with a
// *domain.ValidationError naming it, and no partial Input is returned.
func ParseQRisk3Row(row []string) (*domain.Input, error) {
	if len(row) != len(QRisk3Columns) {
		return nil, fmt.Errorf("%w: got %d, want %d", ErrRowLength, len(row), len(QRisk3Columns))
	}

	p := &rowParser{row: row}
	in := &domain.Input{
		RequestedEngines: []domain.EngineName{domain.EngineQRisk3},
		CVD:              p.flag(1),
	}

	switch p.text(2) {
	case "0":
		in.Sex = domain.GenderFemale
	case "1":
		in.Sex = domain.GenderMale
	default:
		p.fail(2, `sex must be "0" (female) or "1" (male)`, nil)
	}

	in.Age = p.integer(3)
	in.AtrialFibrillation = p.flag(4)
	in.AtypicalAntipsychoticMedication = p.flag(5)
	in.SystemicCorticosteroids = p.flag(6)
	in.Impotence = p.flag(7)
	in.Migraines = p.flag(8)
	in.RheumatoidArthritis = p.flag(9)
	in.ChronicRenalDisease = p.flag(10)
	in.SevereMentalIllness = p.flag(11)
	in.SystemicLupusErythematosus = p.flag(12)
	in.BloodPressureTreatment = p.flag(13)
	in.DiabetesStatus = member(p, 14, domain.ParseDiabetesStatus)
	in.BMI = p.decimal(15)
	in.Ethnicity = member(p, 16, domain.ParseEthnicity)
	in.FamilyHistoryCHD = p.flag(17)
	in.CholesterolRatio = p.decimal(18)
	in.SystolicBloodPressureMean = p.decimal(19)
	in.SystolicBloodPressureStDev = p.decimal(20)
	in.SmokingStatus = member(p, 21, domain.ParseSmokeCategory)
	in.TownsendScore = p.decimal(22)

	if p.err != nil {
		return nil, p.err
	}
	return in, nil
}
