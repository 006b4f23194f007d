package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEthnicityToEthrisk(t *testing.T) {
	for _, e := range AllEthnicities() {
		code := EthnicityToEthrisk(e)
		assert.GreaterOrEqual(t, code, 1, e)
		assert.LessOrEqual(t, code, 9, e)
	}

	expected := map[Ethnicity]int{
		EthnicityNotRecorded:                 1,
		EthnicityBritish:                     1,
		EthnicityIrish:                       1,
		EthnicityOtherWhiteBackground:        1,
		EthnicityNotStated:                   1,
		EthnicityIndian:                      2,
		EthnicityPakistani:                   3,
		EthnicityBangladeshi:                 4,
		EthnicityOtherAsian:                  5,
		EthnicityCaribbean:                   6,
		EthnicityBlackAfrican:                7,
		EthnicityChinese:                     8,
		EthnicityWhiteAndBlackCaribbeanMixed: 9,
		EthnicityWhiteAndBlackAfricanMixed:   9,
		EthnicityWhiteAndAsianMixed:          9,
		EthnicityOtherMixed:                  9,
		EthnicityOtherBlack:                  9,
		EthnicityOtherEthnicGroup:            9,
	}
	for e, code := range expected {
		assert.Equal(t, code, EthnicityToEthrisk(e), e)
	}

	assert.Equal(t, 0, EthnicityToEthrisk(Ethnicity("Martian")))
}

func TestDiabetesFlags(t *testing.T) {
	tests := []struct {
		status DiabetesStatus
		type1  int
		type2  int
	}{
		{DiabetesNone, 0, 0},
		{DiabetesType1, 1, 0},
		{DiabetesType2, 0, 1},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			assert.Equal(t, tt.type1, DiabetesToType1(tt.status))
			assert.Equal(t, tt.type2, DiabetesToType2(tt.status))
			assert.LessOrEqual(t, DiabetesToType1(tt.status)+DiabetesToType2(tt.status), 1)
		})
	}
}

func TestSmokeCategoryToInt(t *testing.T) {
	assert.Equal(t, 0, SmokeCategoryToInt(SmokeNonSmoker))
	assert.Equal(t, 1, SmokeCategoryToInt(SmokeExSmoker))
	assert.Equal(t, 2, SmokeCategoryToInt(SmokeLightSmoker))
	assert.Equal(t, 3, SmokeCategoryToInt(SmokeModerateSmoker))
	assert.Equal(t, 4, SmokeCategoryToInt(SmokeHeavySmoker))
	assert.Equal(t, 0, SmokeCategoryToInt(SmokeNotKnown), "not known folds to non-smoker")
}

func TestAlcoholCategoryToInt(t *testing.T) {
	assert.Equal(t, 0, AlcoholCategory4ToInt(Alcohol4None))
	assert.Equal(t, 1, AlcoholCategory4ToInt(Alcohol4LessThanOne))
	assert.Equal(t, 2, AlcoholCategory4ToInt(Alcohol4OneToTwo))
	assert.Equal(t, 3, AlcoholCategory4ToInt(Alcohol4ThreeOrMore))
	assert.Equal(t, 1, AlcoholCategory4ToInt(Alcohol4NotKnown), "not known folds to the lowest drinking band")

	assert.Equal(t, 0, AlcoholCategory6ToInt(Alcohol6None))
	assert.Equal(t, 1, AlcoholCategory6ToInt(Alcohol6LessThanOne))
	assert.Equal(t, 2, AlcoholCategory6ToInt(Alcohol6OneToTwo))
	assert.Equal(t, 3, AlcoholCategory6ToInt(Alcohol6ThreeToSix))
	assert.Equal(t, 4, AlcoholCategory6ToInt(Alcohol6SevenToNine))
	assert.Equal(t, 5, AlcoholCategory6ToInt(Alcohol6OverNine))
	assert.Equal(t, 1, AlcoholCategory6ToInt(Alcohol6NotKnown))
}

func TestRegionAndAdmissionCodes(t *testing.T) {
	assert.Equal(t, 1, SHA1ToInt(SHA1EastMidlands))
	assert.Equal(t, 3, SHA1ToInt(SHA1London))
	assert.Equal(t, 10, SHA1ToInt(SHA1YorksAndHumber))
	assert.Equal(t, 1, SHA1ToInt(SHA1Wales))
	assert.Equal(t, 1, SHA1ToInt(SHA1IsleOfMan))
	assert.Equal(t, 1, SHA1ToInt(SHA1Other))

	assert.Equal(t, 0, AdmitPriorToInt(AdmitPriorNone))
	assert.Equal(t, 3, AdmitPriorToInt(AdmitPriorThreeOrMore))
	assert.Equal(t, 2, HeartburnIndigestionToInt(HeartburnIndigestion))
}

func TestGenderAndBool(t *testing.T) {
	assert.Equal(t, 0, GenderToInt(GenderFemale))
	assert.Equal(t, 1, GenderToInt(GenderMale))
	assert.Equal(t, 1, BoolToInt(true))
	assert.Equal(t, 0, BoolToInt(false))
}

func TestRangeCheck(t *testing.T) {
	assert.Equal(t, QualityMissing, BMIRange.Check(nil))
	assert.Equal(t, QualityOK, BMIRange.Check(Float(20)))
	assert.Equal(t, QualityOK, BMIRange.Check(Float(40)))
	assert.Equal(t, QualityOutOfRange, BMIRange.Check(Float(19.99)))
	assert.Equal(t, QualityOutOfRange, TownsendRange.Check(Float(12.5)))
	assert.Equal(t, QualityOK, TownsendRange.Check(Float(-8)))
	assert.True(t, HbA1cRange.Contains(47.99))
	assert.False(t, FastingBloodGlucoseRange.Contains(7))
}
