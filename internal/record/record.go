package record

import "time"

// Canonical field names. Column profiles map raw spreadsheet headers onto
// these keys before normalization runs.
const (
	FieldName             = "name"
	FieldBirthDate        = "birth_date"
	FieldSchoolEntryDate  = "school_entry_date"
	FieldGrade            = "grade"
	FieldStatus           = "status"
	FieldArrears          = "arrears"
	FieldFamilyIncome     = "family_income"
	FieldDropoutReason    = "dropout_reason"
	FieldOriginSchoolType = "origin_school_type"
	FieldDistrict         = "district"
)

// AllFields returns every canonical field in display order.
func AllFields() []string {
	return []string{
		FieldName,
		FieldBirthDate,
		FieldSchoolEntryDate,
		FieldGrade,
		FieldStatus,
		FieldArrears,
		FieldFamilyIncome,
		FieldDropoutReason,
		FieldOriginSchoolType,
		FieldDistrict,
	}
}

// IsField reports whether name is a canonical field.
func IsField(name string) bool {
	for _, f := range AllFields() {
		if f == name {
			return true
		}
	}
	return false
}

// Raw is one input row keyed by canonical field name. A missing key means the
// column was absent from the source table.
type Raw map[string]string

// Get returns the value for field and whether it was present.
func (r Raw) Get(field string) (string, bool) {
	v, ok := r[field]
	return v, ok
}

// Status is the canonical enrolment status of a student.
type Status string

const (
	StatusActive    Status = "active"
	StatusGraduated Status = "graduated"
	StatusDropped   Status = "dropped"
	StatusUnknown   Status = "unknown"
)

// AllStatuses returns every status in display order.
func AllStatuses() []Status {
	return []Status{StatusActive, StatusGraduated, StatusDropped, StatusUnknown}
}

// Reason is the dropout-reason category.
type Reason string

const (
	ReasonEconomic         Reason = "economic"
	ReasonTuitionArrears   Reason = "tuition-arrears"
	ReasonParentRelocation Reason = "parent-relocation"
	ReasonLowInterest      Reason = "low-interest"
	ReasonEmployment       Reason = "employment"
	ReasonHealth           Reason = "health"
	ReasonBadCompanionship Reason = "bad-companionship"
	ReasonSchoolDistance   Reason = "school-distance"
	ReasonOther            Reason = "other"
)

// AllReasons returns every reason category in display order.
func AllReasons() []Reason {
	return []Reason{
		ReasonEconomic,
		ReasonTuitionArrears,
		ReasonParentRelocation,
		ReasonLowInterest,
		ReasonEmployment,
		ReasonHealth,
		ReasonBadCompanionship,
		ReasonSchoolDistance,
		ReasonOther,
	}
}

// ParseReason returns the Reason named by s, or false if s is not a category.
func ParseReason(s string) (Reason, bool) {
	for _, r := range AllReasons() {
		if string(r) == s {
			return r, true
		}
	}
	return "", false
}

// ArrearsBracket buckets outstanding school fees.
type ArrearsBracket string

const (
	ArrearsPaid     ArrearsBracket = "paid"
	ArrearsLight    ArrearsBracket = "light"
	ArrearsModerate ArrearsBracket = "moderate"
	ArrearsHigh     ArrearsBracket = "high"
)

// Bracket upper bounds (inclusive), in rupiah.
const (
	ArrearsLightMax    = 500_000
	ArrearsModerateMax = 2_000_000
)

// BracketFor returns the bracket for an arrears amount.
func BracketFor(amount float64) ArrearsBracket {
	switch {
	case amount <= 0:
		return ArrearsPaid
	case amount <= ArrearsLightMax:
		return ArrearsLight
	case amount <= ArrearsModerateMax:
		return ArrearsModerate
	default:
		return ArrearsHigh
	}
}

// Normalized is the canonical, typed view of one input row. Optional values
// are nil when the source field was missing or unparsable.
type Normalized struct {
	Name             string
	BirthDate        *time.Time
	Age              *float64 // years, one decimal place
	SchoolEntryDate  *time.Time
	EntryAge         *float64
	Grade            *int // 1–12
	Arrears          float64
	ArrearsBracket   ArrearsBracket
	FamilyIncome     float64
	Status           Status
	StatusRaw        string // lowercased explicit status text, empty when inferred
	StatusInferred   bool
	ReasonRaw        string // lowercased, trimmed
	Reason           Reason
	IsDropout        bool
	OriginSchoolType string
	District         string
}

// HasAge reports whether the age is known.
func (n *Normalized) HasAge() bool { return n.Age != nil }

// HasGrade reports whether the grade is known.
func (n *Normalized) HasGrade() bool { return n.Grade != nil }
