package domain

// Numeric codes handed to the calculation engines. These tables are part of the engines'
// input contract: editing a value changes every score computed from it.

var ethriskCodes = map[Ethnicity]int{
	EthnicityNotRecorded:                 1,
	EthnicityBritish:                     1,
	EthnicityIrish:                       1,
	EthnicityOtherWhiteBackground:        1,
	EthnicityWhiteAndBlackCaribbeanMixed: 9,
	EthnicityWhiteAndBlackAfricanMixed:   9,
	EthnicityWhiteAndAsianMixed:          9,
	EthnicityOtherMixed:                  9,
	EthnicityIndian:                      2,
	EthnicityPakistani:                   3,
	EthnicityBangladeshi:                 4,
	EthnicityOtherAsian:                  5,
	EthnicityCaribbean:                   6,
	EthnicityBlackAfrican:                7,
	EthnicityOtherBlack:                  9,
	EthnicityChinese:                     8,
	EthnicityOtherEthnicGroup:            9,
	EthnicityNotStated:                   1,
}

var smokeCodes = map[SmokeCategory]int{
	SmokeNonSmoker:      0,
	SmokeExSmoker:       1,
	SmokeLightSmoker:    2,
	SmokeModerateSmoker: 3,
	SmokeHeavySmoker:    4,
	SmokeNotKnown:       0,
}

var alcohol4Codes = map[AlcoholCategory4]int{
	Alcohol4None:        0,
	Alcohol4LessThanOne: 1,
	Alcohol4OneToTwo:    2,
	Alcohol4ThreeOrMore: 3,
	Alcohol4NotKnown:    1,
}

var alcohol6Codes = map[AlcoholCategory6]int{
	Alcohol6None:        0,
	Alcohol6LessThanOne: 1,
	Alcohol6OneToTwo:    2,
	Alcohol6ThreeToSix:  3,
	Alcohol6SevenToNine: 4,
	Alcohol6OverNine:    5,
	Alcohol6NotKnown:    1,
}

var admitPriorCodes = map[AdmitPriorCategory]int{
	AdmitPriorNone:        0,
	AdmitPriorOne:         1,
	AdmitPriorTwo:         2,
	AdmitPriorThreeOrMore: 3,
}

// Wales, the Isle of Man and anything else share the first region's bucket.
var sha1Codes = map[SHA1Category]int{
	SHA1EastMidlands:   1,
	SHA1EastOfEngland:  2,
	SHA1London:         3,
	SHA1NorthEast:      4,
	SHA1NorthWest:      5,
	SHA1SouthCentral:   6,
	SHA1SouthEastCoast: 7,
	SHA1SouthWest:      8,
	SHA1WestMidlands:   9,
	SHA1YorksAndHumber: 10,
	SHA1Wales:          1,
	SHA1IsleOfMan:      1,
	SHA1Other:          1,
}

var heartburnCodes = map[HeartburnIndigestionCategory]int{
	HeartburnNeither:     0,
	HeartburnHeartburn:   1,
	HeartburnIndigestion: 2,
}

// GenderToInt returns 0 for Female and 1 for Male.
func GenderToInt(g Gender) int {
	if g == GenderMale {
		return 1
	}
	return 0
}

// DiabetesToType1 returns 1 only for type 1 diabetes.
func DiabetesToType1(d DiabetesStatus) int {
	if d == DiabetesType1 {
		return 1
	}
	return 0
}

// DiabetesToType2 returns 1 only for type 2 diabetes.
func DiabetesToType2(d DiabetesStatus) int {
	if d == DiabetesType2 {
		return 1
	}
	return 0
}

// EthnicityToEthrisk collapses the census categories into the nine ethrisk buckets.
// Unrecognised values map to 0, which no calculator accepts; validated input never
// reaches that case.
func EthnicityToEthrisk(e Ethnicity) int {
	return ethriskCodes[e]
}

// SmokeCategoryToInt maps smoking status to 0-4; NotKnown is treated as a non-smoker.
func SmokeCategoryToInt(s SmokeCategory) int {
	return smokeCodes[s]
}

// AlcoholCategory4ToInt maps the four-band scale to 0-3; Not_known folds into band 1.
func AlcoholCategory4ToInt(a AlcoholCategory4) int {
	if code, ok := alcohol4Codes[a]; ok {
		return code
	}
	return 1
}

// AlcoholCategory6ToInt maps the six-band scale to 0-5; Not_known folds into band 1.
func AlcoholCategory6ToInt(a AlcoholCategory6) int {
	if code, ok := alcohol6Codes[a]; ok {
		return code
	}
	return 1
}

// AdmitPriorToInt maps prior admissions to 0-3.
func AdmitPriorToInt(a AdmitPriorCategory) int {
	return admitPriorCodes[a]
}

// SHA1ToInt maps a region to 1-10.
func SHA1ToInt(s SHA1Category) int {
	if code, ok := sha1Codes[s]; ok {
		return code
	}
	return 1
}

// HeartburnIndigestionToInt maps upper GI symptoms to 0-2.
func HeartburnIndigestionToInt(h HeartburnIndigestionCategory) int {
	return heartburnCodes[h]
}

// BoolToInt returns 1 for true.
func BoolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
