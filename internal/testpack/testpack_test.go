package testpack

import (
	"errors"
	"io"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clinical-risk-gateway/internal/domain"
)

func validRow() []string {
	return strings.Split("7,0,1,64,1,0,0,0,1,0,0,0,0,1,Type2,26.3,OtherWhiteBackground,1,4.2,138,9.5,ExSmoker,-1.2", ",")
}

func TestParseQRisk3Row(t *testing.T) {
	in, err := ParseQRisk3Row(validRow())
	require.NoError(t, err)

	assert.Equal(t, []domain.EngineName{domain.EngineQRisk3}, in.RequestedEngines)
	assert.False(t, in.CVD)
	assert.Equal(t, domain.GenderMale, in.Sex)
	assert.Equal(t, 64, in.Age)
	assert.True(t, in.AtrialFibrillation)
	assert.True(t, in.Migraines)
	assert.True(t, in.BloodPressureTreatment)
	assert.False(t, in.Impotence)
	assert.Equal(t, domain.DiabetesType2, in.DiabetesStatus)
	assert.Equal(t, 26.3, *in.BMI)
	assert.Equal(t, domain.EthnicityOtherWhiteBackground, in.Ethnicity)
	assert.True(t, in.FamilyHistoryCHD)
	assert.Equal(t, 4.2, *in.CholesterolRatio)
	assert.Equal(t, 138.0, *in.SystolicBloodPressureMean)
	assert.Equal(t, 9.5, *in.SystolicBloodPressureStDev)
	assert.Equal(t, domain.SmokeExSmoker, in.SmokingStatus)
	assert.Equal(t, -1.2, *in.TownsendScore)

	assert.NoError(t, in.Validate())
}

func TestParseQRisk3RowIsStrict(t *testing.T) {
	tests := []struct {
		name    string
		col     int
		value   string
		field   string
		wantEnv bool
	}{
		{"flag other than 0 or 1", 1, "yes", "CVD", false},
		{"flag spelled true", 4, "true", "atrialFibrillation", false},
		{"sex out of range", 2, "2", "sex", false},
		{"age not an integer", 3, "64.5", "age", false},
		{"unknown diabetes status", 14, "Type3", "diabetesStatus", true},
		{"bmi not a number", 15, "n/a", "BMI", false},
		{"ethnicity lower-cased", 16, "british", "ethnicity", true},
		{"unknown smoking status", 21, "Vaper", "smokingStatus", true},
		{"empty townsend", 22, "", "townsendScore", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			row := validRow()
			row[tt.col] = tt.value

			in, err := ParseQRisk3Row(row)
			assert.Nil(t, in, "no partial records")

			var verr *domain.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.field, verr.Field)
			assert.Equal(t, tt.value, verr.Value)
			assert.Equal(t, tt.wantEnv, errors.Is(err, domain.ErrInvalidEnum))
		})
	}
}

func TestParseQRisk3RowReportsFirstFailure(t *testing.T) {
	row := validRow()
	row[3] = "old"
	row[21] = "Vaper"

	_, err := ParseQRisk3Row(row)
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "age", verr.Field)
}

func TestParseQRisk3RowLength(t *testing.T) {
	_, err := ParseQRisk3Row(validRow()[:22])
	assert.ErrorIs(t, err, ErrRowLength)

	_, err = ParseQRisk3Row(append(validRow(), "extra"))
	assert.ErrorIs(t, err, ErrRowLength)
}

func TestReaderWithHeader(t *testing.T) {
	f, err := os.Open("testdata/qrisk3_pack.csv")
	require.NoError(t, err)
	defer f.Close()

	rows, err := NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 4)

	assert.Equal(t, "1", rows[0].ID)
	assert.Equal(t, 2, rows[0].Line)
	require.NoError(t, rows[0].Err)
	assert.Equal(t, domain.GenderFemale, rows[0].Input.Sex)
	assert.Equal(t, domain.EthnicityBritish, rows[0].Input.Ethnicity)

	assert.Equal(t, "2", rows[1].ID)
	assert.Nil(t, rows[1].Input)
	var verr *domain.ValidationError
	require.ErrorAs(t, rows[1].Err, &verr)
	assert.Equal(t, "CVD", verr.Field)

	require.ErrorAs(t, rows[2].Err, &verr)
	assert.Equal(t, "ethnicity", verr.Field)

	require.NoError(t, rows[3].Err, "rows after a bad row are still read")
	assert.Equal(t, domain.DiabetesType1, rows[3].Input.DiabetesStatus)
}

func TestReaderHeaderOrderAndCase(t *testing.T) {
	// Reverse the column order and shout the names.
	cols := append([]string(nil), QRisk3Columns...)
	vals := validRow()
	for i, j := 0, len(cols)-1; i < j; i, j = i+1, j-1 {
		cols[i], cols[j] = cols[j], cols[i]
		vals[i], vals[j] = vals[j], vals[i]
	}
	data := strings.ToUpper(strings.Join(cols, ",")) + ",notes\n" + strings.Join(vals, ",") + ",ignored\n"

	rows, err := NewReader(strings.NewReader(data)).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.NoError(t, rows[0].Err)
	assert.Equal(t, "7", rows[0].ID)
	assert.Equal(t, 64, rows[0].Input.Age)
	assert.Equal(t, domain.SmokeExSmoker, rows[0].Input.SmokingStatus)
}

func TestReaderMissingColumns(t *testing.T) {
	header := strings.Join(QRisk3Columns[:20], ",")
	_, err := NewReader(strings.NewReader(header + "\n")).Read()
	require.ErrorIs(t, err, ErrMissingColumns)
	assert.Contains(t, err.Error(), "systolicBloodPressureStDev, smokingStatus, townsendScore")

	_, err = NewReader(strings.NewReader("")).Read()
	assert.ErrorIs(t, err, ErrMissingColumns)
}

func TestReaderHeaderlessFileNeedsPositional(t *testing.T) {
	f, err := os.Open("testdata/qrisk3_positional.csv")
	require.NoError(t, err)
	defer f.Close()

	// Read as a header, the first data row names none of the columns.
	_, err = NewReader(f).Read()
	require.ErrorIs(t, err, ErrMissingColumns)

	_, err = f.Seek(0, io.SeekStart)
	require.NoError(t, err)

	rows, err := NewReader(f, Positional()).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 2)
	require.NoError(t, rows[0].Err)
	assert.Equal(t, 64, rows[0].Input.Age)
	assert.Equal(t, "2", rows[1].ID)
	assert.ErrorIs(t, rows[1].Err, ErrRowLength)
}

func TestReaderSemicolonDelimited(t *testing.T) {
	data := strings.Join(validRow(), ";") + "\n"
	rows, err := NewReader(strings.NewReader(data), Positional(), WithComma(';')).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.NoError(t, rows[0].Err)
}
