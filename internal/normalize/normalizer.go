package normalize

import (
	"strings"
	"time"

	"github.com/abhisek/jalur/internal/record"
)

// ReasonClassifier maps free-text dropout reasons to a category.
type ReasonClassifier interface {
	Classify(text string) record.Reason
}

// StatusResolver derives the canonical status from an explicit status cell
// (present reports whether one was supplied) and the normalized reason text.
type StatusResolver interface {
	Resolve(explicit string, present bool, reasonRaw string) (record.Status, string)
}

// Normalizer turns a Raw row into a Normalized record. It never fails:
// anything it cannot parse becomes nil or zero.
type Normalizer struct {
	// Now returns the reference instant for age computation. Fixing it makes
	// repeated runs over the same rows produce identical output.
	Now         func() time.Time
	DateLayouts []string
	Reasons     ReasonClassifier
	Statuses    StatusResolver
}

// New creates a Normalizer with the default date layouts and the wall clock.
func New(reasons ReasonClassifier, statuses StatusResolver) *Normalizer {
	return &Normalizer{
		Now:         time.Now,
		DateLayouts: DefaultDateLayouts,
		Reasons:     reasons,
		Statuses:    statuses,
	}
}

// Normalize derives every canonical field of raw, measuring ages against a
// fresh read of the clock.
func (n *Normalizer) Normalize(raw record.Raw) record.Normalized {
	return n.NormalizeAt(raw, n.Instant())
}

// NormalizeAt is Normalize with ages measured against now. Batch callers read
// the clock once with Instant and pass it to every row so that a run spanning
// midnight still ages all rows against the same day.
func (n *Normalizer) NormalizeAt(raw record.Raw, now time.Time) record.Normalized {
	now = now.UTC()
	out := record.Normalized{
		Name:             Name(raw[record.FieldName]),
		Arrears:          Amount(raw[record.FieldArrears]),
		FamilyIncome:     Amount(raw[record.FieldFamilyIncome]),
		OriginSchoolType: strings.TrimSpace(raw[record.FieldOriginSchoolType]),
		District:         strings.TrimSpace(raw[record.FieldDistrict]),
	}
	out.ArrearsBracket = record.BracketFor(out.Arrears)

	if birth := ParseDate(raw[record.FieldBirthDate], n.DateLayouts); birth != nil {
		out.BirthDate = birth
		age := YearsBetween(*birth, now)
		out.Age = &age
	}
	if entry := ParseDate(raw[record.FieldSchoolEntryDate], n.DateLayouts); entry != nil {
		out.SchoolEntryDate = entry
		if out.BirthDate != nil {
			entryAge := YearsBetween(*out.BirthDate, *entry)
			out.EntryAge = &entryAge
		}
	}
	out.Grade = ParseGrade(raw[record.FieldGrade])

	reason := Lower(raw[record.FieldDropoutReason])
	if isNull(reason) {
		reason = ""
	}
	out.ReasonRaw = reason
	out.Reason = record.ReasonOther
	if n.Reasons != nil {
		out.Reason = n.Reasons.Classify(reason)
	}

	explicit, present := raw.Get(record.FieldStatus)
	if present && isNull(explicit) {
		present = false
	}
	out.Status = record.StatusActive
	if n.Statuses != nil {
		out.Status, out.StatusRaw = n.Statuses.Resolve(explicit, present, reason)
	}
	out.StatusInferred = !present
	out.IsDropout = out.Status == record.StatusDropped
	return out
}

// Instant reads the Normalizer's clock in UTC.
func (n *Normalizer) Instant() time.Time {
	if n.Now == nil {
		return time.Now().UTC()
	}
	return n.Now().UTC()
}
