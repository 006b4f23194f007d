// Package domain contains the core vocabulary and records for clinical risk prediction:
// the categorical values shared by every calculation engine, the canonical input record
// submitted by clinicians, and the engine-agnostic result records returned to clients.
//
// Categorical values travel as their member names (for example "OtherWhiteBackground"),
// which is also how reference test packs spell them.
package domain

import (
	"errors"
	"fmt"
)

// EngineName identifies an installed calculation engine.
type EngineName string

const (
	EngineQRisk3    EngineName = "QRisk3"
	EngineQDiabetes EngineName = "QDiabetes"
	EngineQFracture EngineName = "QFracture"
	EngineX05       EngineName = "X05"
)

// Gender is the patient's recorded sex.
type Gender string

const (
	GenderFemale Gender = "Female"
	GenderMale   Gender = "Male"
)

// Ethnicity follows the 2001 census categories plus the two "not recorded/stated" codes.
type Ethnicity string

const (
	EthnicityNotRecorded                 Ethnicity = "NotRecorded"
	EthnicityBritish                     Ethnicity = "British"
	EthnicityIrish                       Ethnicity = "Irish"
	EthnicityOtherWhiteBackground        Ethnicity = "OtherWhiteBackground"
	EthnicityWhiteAndBlackCaribbeanMixed Ethnicity = "WhiteAndBlackCaribbeanMixed"
	EthnicityWhiteAndBlackAfricanMixed   Ethnicity = "WhiteAndBlackAfricanMixed"
	EthnicityWhiteAndAsianMixed          Ethnicity = "WhiteAndAsianMixed"
	EthnicityOtherMixed                  Ethnicity = "OtherMixed"
	EthnicityIndian                      Ethnicity = "Indian"
	EthnicityPakistani                   Ethnicity = "Pakistani"
	EthnicityBangladeshi                 Ethnicity = "Bangladeshi"
	EthnicityOtherAsian                  Ethnicity = "OtherAsian"
	EthnicityCaribbean                   Ethnicity = "Caribbean"
	EthnicityBlackAfrican                Ethnicity = "BlackAfrican"
	EthnicityOtherBlack                  Ethnicity = "OtherBlack"
	EthnicityChinese                     Ethnicity = "Chinese"
	EthnicityOtherEthnicGroup            Ethnicity = "OtherEthnicGroup"
	EthnicityNotStated                   Ethnicity = "NotStated"
)

// SmokeCategory is the patient's smoking status.
type SmokeCategory string

const (
	SmokeNonSmoker      SmokeCategory = "NonSmoker"
	SmokeExSmoker       SmokeCategory = "ExSmoker"
	SmokeLightSmoker    SmokeCategory = "LightSmoker"
	SmokeModerateSmoker SmokeCategory = "ModerateSmoker"
	SmokeHeavySmoker    SmokeCategory = "HeavySmoker"
	SmokeNotKnown       SmokeCategory = "NotKnown"
)

// AlcoholCategory4 is the four-band alcohol intake scale.
type AlcoholCategory4 string

const (
	Alcohol4None        AlcoholCategory4 = "None"
	Alcohol4LessThanOne AlcoholCategory4 = "Less_than_1_unit_per_day"
	Alcohol4OneToTwo    AlcoholCategory4 = "One_to_two_units_per_day"
	Alcohol4ThreeOrMore AlcoholCategory4 = "Three_or_more_units_per_day"
	Alcohol4NotKnown    AlcoholCategory4 = "Not_known"
)

// AlcoholCategory6 is the six-band alcohol intake scale used by the canonical record.
type AlcoholCategory6 string

const (
	Alcohol6None        AlcoholCategory6 = "None"
	Alcohol6LessThanOne AlcoholCategory6 = "Less_than_1_unit_per_day"
	Alcohol6OneToTwo    AlcoholCategory6 = "One_to_two_units_per_day"
	Alcohol6ThreeToSix  AlcoholCategory6 = "Three_to_six_units_per_day"
	Alcohol6SevenToNine AlcoholCategory6 = "Seven_to_nine_units_per_day"
	Alcohol6OverNine    AlcoholCategory6 = "Over_nine_units_per_day"
	Alcohol6NotKnown    AlcoholCategory6 = "Not_known"
)

// DiabetesStatus is the patient's diabetes diagnosis.
type DiabetesStatus string

const (
	DiabetesNone  DiabetesStatus = "None"
	DiabetesType1 DiabetesStatus = "Type1"
	DiabetesType2 DiabetesStatus = "Type2"
)

// PPICategory describes proton pump inhibitor use.
type PPICategory string

const (
	PPINone                 PPICategory = "None"
	PPILessThanFourWeeks    PPICategory = "Less_than_4_weeks"
	PPIFourWeeksToSixMonths PPICategory = "Four_weeks_to_6_months"
	PPIOverSixMonthsLow     PPICategory = "Over_6_months_low_dose"
	PPIOverSixMonthsHigh    PPICategory = "Over_6_months_high_dose"
	PPIPreviousUse          PPICategory = "Previous_use"
	PPINotKnown             PPICategory = "Not_known"
)

// AdmitPriorCategory counts hospital admissions in the prior year.
type AdmitPriorCategory string

const (
	AdmitPriorNone        AdmitPriorCategory = "None"
	AdmitPriorOne         AdmitPriorCategory = "One"
	AdmitPriorTwo         AdmitPriorCategory = "Two"
	AdmitPriorThreeOrMore AdmitPriorCategory = "ThreeOrMore"
)

// SHA1Category is the strategic health authority region of residence.
type SHA1Category string

const (
	SHA1EastMidlands   SHA1Category = "EastMidlands"
	SHA1EastOfEngland  SHA1Category = "EastOfEngland"
	SHA1London         SHA1Category = "London"
	SHA1NorthEast      SHA1Category = "NorthEast"
	SHA1NorthWest      SHA1Category = "NorthWest"
	SHA1SouthCentral   SHA1Category = "SouthCentral"
	SHA1SouthEastCoast SHA1Category = "SouthEastCoast"
	SHA1SouthWest      SHA1Category = "SouthWest"
	SHA1WestMidlands   SHA1Category = "WestMidlands"
	SHA1YorksAndHumber SHA1Category = "YorksAndHumber"
	SHA1Wales          SHA1Category = "Wales"
	SHA1IsleOfMan      SHA1Category = "IsleOfMan"
	SHA1Other          SHA1Category = "Other"
)

// HeartburnIndigestionCategory records upper gastrointestinal symptoms.
type HeartburnIndigestionCategory string

const (
	HeartburnNeither     HeartburnIndigestionCategory = "Neither"
	HeartburnHeartburn   HeartburnIndigestionCategory = "Heartburn"
	HeartburnIndigestion HeartburnIndigestionCategory = "Indigestion"
)

// ResultStatus is the outcome of one engine invocation.
type ResultStatus string

const (
	NO_CALCULATION_POSSIBLE_AS_PATIENT_FAILED_CRITERIA ResultStatus = "NO_CALCULATION_POSSIBLE_AS_PATIENT_FAILED_CRITERIA"
	CALCULATED_USING_PATIENTS_OWN_DATA                 ResultStatus = "CALCULATED_USING_PATIENTS_OWN_DATA"
	CALCULATED_USING_ESTIMATED_OR_CORRECTED_DATA       ResultStatus = "CALCULATED_USING_ESTIMATED_OR_CORRECTED_DATA"
	NO_CALCULATION_POSSIBLE_AS_ENGINE_LOCKED           ResultStatus = "NO_CALCULATION_POSSIBLE_AS_ENGINE_LOCKED"
)

// ReasonInvalid explains why an engine could not produce a score.
type ReasonInvalid string

const (
	VALID                       ReasonInvalid = "VALID"
	AGE_OUT_OF_RANGE            ReasonInvalid = "AGE_OUT_OF_RANGE"
	ALREADY_HAD_A_CVD_EVENT     ReasonInvalid = "ALREADY_HAD_A_CVD_EVENT"
	ETHNICITY_OUT_OF_RANGE      ReasonInvalid = "ETHNICITY_OUT_OF_RANGE"
	VARIABLE_NON_BOOLEAN        ReasonInvalid = "VARIABLE_NON_BOOLEAN"
	QRISK_ENGINE_LOCKED         ReasonInvalid = "QRISK_ENGINE_LOCKED"
	SMOKING_STATUS_OUT_OF_RANGE ReasonInvalid = "SMOKING_STATUS_OUT_OF_RANGE"
)

// ParameterQuality reports how an engine treated one input parameter.
type ParameterQuality string

const (
	QualityOK         ParameterQuality = "OK"
	QualityMissing    ParameterQuality = "MISSING"
	QualityOutOfRange ParameterQuality = "OUT_OF_RANGE"
)

// ErrInvalidEnum is wrapped by every failed categorical parse.
var ErrInvalidEnum = errors.New("invalid categorical value")

// Member lists in declaration order. They double as the validity tables.
var (
	engineNames = []EngineName{EngineQRisk3, EngineQDiabetes, EngineQFracture, EngineX05}
	genders     = []Gender{GenderFemale, GenderMale}
	ethnicities = []Ethnicity{
		EthnicityNotRecorded, EthnicityBritish, EthnicityIrish, EthnicityOtherWhiteBackground,
		EthnicityWhiteAndBlackCaribbeanMixed, EthnicityWhiteAndBlackAfricanMixed, EthnicityWhiteAndAsianMixed,
		EthnicityOtherMixed, EthnicityIndian, EthnicityPakistani, EthnicityBangladeshi, EthnicityOtherAsian,
		EthnicityCaribbean, EthnicityBlackAfrican, EthnicityOtherBlack, EthnicityChinese,
		EthnicityOtherEthnicGroup, EthnicityNotStated,
	}
	smokeCategories = []SmokeCategory{
		SmokeNonSmoker, SmokeExSmoker, SmokeLightSmoker, SmokeModerateSmoker, SmokeHeavySmoker, SmokeNotKnown,
	}
	alcohol4Categories = []AlcoholCategory4{
		Alcohol4None, Alcohol4LessThanOne, Alcohol4OneToTwo, Alcohol4ThreeOrMore, Alcohol4NotKnown,
	}
	alcohol6Categories = []AlcoholCategory6{
		Alcohol6None, Alcohol6LessThanOne, Alcohol6OneToTwo, Alcohol6ThreeToSix,
		Alcohol6SevenToNine, Alcohol6OverNine, Alcohol6NotKnown,
	}
	diabetesStatuses = []DiabetesStatus{DiabetesNone, DiabetesType1, DiabetesType2}
	ppiCategories    = []PPICategory{
		PPINone, PPILessThanFourWeeks, PPIFourWeeksToSixMonths, PPIOverSixMonthsLow,
		PPIOverSixMonthsHigh, PPIPreviousUse, PPINotKnown,
	}
	admitPriorCategories = []AdmitPriorCategory{AdmitPriorNone, AdmitPriorOne, AdmitPriorTwo, AdmitPriorThreeOrMore}
	sha1Categories       = []SHA1Category{
		SHA1EastMidlands, SHA1EastOfEngland, SHA1London, SHA1NorthEast, SHA1NorthWest, SHA1SouthCentral,
		SHA1SouthEastCoast, SHA1SouthWest, SHA1WestMidlands, SHA1YorksAndHumber, SHA1Wales, SHA1IsleOfMan, SHA1Other,
	}
	heartburnCategories = []HeartburnIndigestionCategory{HeartburnNeither, HeartburnHeartburn, HeartburnIndigestion}
	resultStatuses      = []ResultStatus{
		NO_CALCULATION_POSSIBLE_AS_PATIENT_FAILED_CRITERIA, CALCULATED_USING_PATIENTS_OWN_DATA,
		CALCULATED_USING_ESTIMATED_OR_CORRECTED_DATA, NO_CALCULATION_POSSIBLE_AS_ENGINE_LOCKED,
	}
	reasonsInvalid = []ReasonInvalid{
		VALID, AGE_OUT_OF_RANGE, ALREADY_HAD_A_CVD_EVENT, ETHNICITY_OUT_OF_RANGE,
		VARIABLE_NON_BOOLEAN, QRISK_ENGINE_LOCKED, SMOKING_STATUS_OUT_OF_RANGE,
	}
	parameterQualities = []ParameterQuality{QualityOK, QualityMissing, QualityOutOfRange}
)

func contains[T ~string](members []T, v T) bool {
	for _, m := range members {
		if m == v {
			return true
		}
	}
	return false
}

// parseMember matches s exactly against members; field names the offending input.
func parseMember[T ~string](field string, members []T, s string) (T, error) {
	v := T(s)
	if contains(members, v) {
		return v, nil
	}
	var zero T
	return zero, &ValidationError{
		Field:   field,
		Message: fmt.Sprintf("unknown value %q", s),
		Value:   s,
		Err:     ErrInvalidEnum,
	}
}

// AllEngineNames returns every engine name in declaration order.
func AllEngineNames() []EngineName { return append([]EngineName(nil), engineNames...) }

// AllEthnicities returns every ethnicity in declaration order.
func AllEthnicities() []Ethnicity { return append([]Ethnicity(nil), ethnicities...) }

// AllSmokeCategories returns every smoking category in declaration order.
func AllSmokeCategories() []SmokeCategory { return append([]SmokeCategory(nil), smokeCategories...) }

// AllDiabetesStatuses returns every diabetes status in declaration order.
func AllDiabetesStatuses() []DiabetesStatus {
	return append([]DiabetesStatus(nil), diabetesStatuses...)
}

func (e EngineName) IsValid() bool  { return contains(engineNames, e) }
func (e EngineName) String() string { return string(e) }

func (g Gender) IsValid() bool  { return contains(genders, g) }
func (g Gender) String() string { return string(g) }

func (e Ethnicity) IsValid() bool  { return contains(ethnicities, e) }
func (e Ethnicity) String() string { return string(e) }

func (s SmokeCategory) IsValid() bool  { return contains(smokeCategories, s) }
func (s SmokeCategory) String() string { return string(s) }

func (a AlcoholCategory4) IsValid() bool  { return contains(alcohol4Categories, a) }
func (a AlcoholCategory4) String() string { return string(a) }

func (a AlcoholCategory6) IsValid() bool  { return contains(alcohol6Categories, a) }
func (a AlcoholCategory6) String() string { return string(a) }

func (d DiabetesStatus) IsValid() bool  { return contains(diabetesStatuses, d) }
func (d DiabetesStatus) String() string { return string(d) }

func (p PPICategory) IsValid() bool  { return contains(ppiCategories, p) }
func (p PPICategory) String() string { return string(p) }

func (a AdmitPriorCategory) IsValid() bool  { return contains(admitPriorCategories, a) }
func (a AdmitPriorCategory) String() string { return string(a) }

func (s SHA1Category) IsValid() bool  { return contains(sha1Categories, s) }
func (s SHA1Category) String() string { return string(s) }

func (h HeartburnIndigestionCategory) IsValid() bool  { return contains(heartburnCategories, h) }
func (h HeartburnIndigestionCategory) String() string { return string(h) }

func (r ResultStatus) IsValid() bool  { return contains(resultStatuses, r) }
func (r ResultStatus) String() string { return string(r) }

func (r ReasonInvalid) IsValid() bool  { return contains(reasonsInvalid, r) }
func (r ReasonInvalid) String() string { return string(r) }

func (q ParameterQuality) IsValid() bool  { return contains(parameterQualities, q) }
func (q ParameterQuality) String() string { return string(q) }

// IsCalculated reports whether the status carries scores.
func (r ResultStatus) IsCalculated() bool {
	return r == CALCULATED_USING_PATIENTS_OWN_DATA || r == CALCULATED_USING_ESTIMATED_OR_CORRECTED_DATA
}

// ParseEngineName parses an engine name. Matching is exact and case-sensitive.
func ParseEngineName(s string) (EngineName, error) {
	return parseMember("requestedEngines", engineNames, s)
}

// ParseGender parses a member name such as "Female".
func ParseGender(s string) (Gender, error) { return parseMember("sex", genders, s) }

// ParseEthnicity parses a member name such as "OtherWhiteBackground".
func ParseEthnicity(s string) (Ethnicity, error) { return parseMember("ethnicity", ethnicities, s) }

// ParseSmokeCategory parses a member name such as "NonSmoker".
func ParseSmokeCategory(s string) (SmokeCategory, error) {
	return parseMember("smokingStatus", smokeCategories, s)
}

// ParseAlcoholCategory4 parses a four-band alcohol member name.
func ParseAlcoholCategory4(s string) (AlcoholCategory4, error) {
	return parseMember("alcoholStatus", alcohol4Categories, s)
}

// ParseAlcoholCategory6 parses a six-band alcohol member name.
func ParseAlcoholCategory6(s string) (AlcoholCategory6, error) {
	return parseMember("alcoholStatus", alcohol6Categories, s)
}

// ParseDiabetesStatus parses a member name such as "Type2".
func ParseDiabetesStatus(s string) (DiabetesStatus, error) {
	return parseMember("diabetesStatus", diabetesStatuses, s)
}

// ParsePPICategory parses a proton pump inhibitor member name.
func ParsePPICategory(s string) (PPICategory, error) {
	return parseMember("protonPumpInhibitorStatus", ppiCategories, s)
}

// ParseAdmitPriorCategory parses a prior-admission member name.
func ParseAdmitPriorCategory(s string) (AdmitPriorCategory, error) {
	return parseMember("admitPrior", admitPriorCategories, s)
}

// ParseSHA1Category parses a health authority member name.
func ParseSHA1Category(s string) (SHA1Category, error) {
	return parseMember("sha1", sha1Categories, s)
}

// ParseHeartburnIndigestionCategory parses a heartburn/indigestion member name.
func ParseHeartburnIndigestionCategory(s string) (HeartburnIndigestionCategory, error) {
	return parseMember("heartburnIndigestion", heartburnCategories, s)
}

// UnmarshalText rejects unknown members so JSON decoding never defaults silently.
// EngineName has no such check: requested engines are resolved against the registry,
// which reports unknown names as a ConfigurationError.
func (g *Gender) UnmarshalText(b []byte) error {
	return unmarshalMember(g, ParseGender, b)
}

func (e *Ethnicity) UnmarshalText(b []byte) error {
	return unmarshalMember(e, ParseEthnicity, b)
}

func (s *SmokeCategory) UnmarshalText(b []byte) error {
	return unmarshalMember(s, ParseSmokeCategory, b)
}

func (a *AlcoholCategory6) UnmarshalText(b []byte) error {
	return unmarshalMember(a, ParseAlcoholCategory6, b)
}

func (d *DiabetesStatus) UnmarshalText(b []byte) error {
	return unmarshalMember(d, ParseDiabetesStatus, b)
}

func (p *PPICategory) UnmarshalText(b []byte) error {
	return unmarshalMember(p, ParsePPICategory, b)
}

func unmarshalMember[T ~string](dst *T, parse func(string) (T, error), b []byte) error {
	v, err := parse(string(b))
	if err != nil {
		return err
	}
	*dst = v
	return nil
}
