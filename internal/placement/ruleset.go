package placement

import (
	"github.com/abhisek/jalur/internal/normalize"
	"github.com/abhisek/jalur/internal/record"
)

// OverageTolerance is how many years past the standard age for a grade an
// active pupil may be before an equivalency track is suggested.
const OverageTolerance = 2

// RuleSet is a named placement policy: one ordered cascade per status.
type RuleSet struct {
	Name      string
	Active    []Rule
	Graduated []Rule
	Dropped   []Rule

	// Base is the built-in policy the set derives from, used to pick the
	// matching keyword table. Empty for custom sets without a base.
	Base string

	// Messages holds templates introduced by custom rule files.
	Messages map[MessageID]Template
}

// Decision is the outcome of evaluating a RuleSet on one record.
type Decision struct {
	ID   MessageID
	Rule string // name of the rule that fired, or the terminal check
}

// Decide picks the message for rec. It is total: the terminal checks and
// the per-status fallbacks guarantee a result for every input.
func (s *RuleSet) Decide(rec *record.Normalized) Decision {
	if !rec.HasAge() && !rec.HasGrade() {
		return Decision{ID: MsgInsufficientData, Rule: "missing-age-and-grade"}
	}

	var rules []Rule
	var fallback MessageID
	switch rec.Status {
	case record.StatusActive:
		rules, fallback = s.Active, MsgStayRegular
	case record.StatusGraduated:
		rules, fallback = s.Graduated, MsgGraduationInconsistent
	case record.StatusDropped:
		rules, fallback = s.Dropped, MsgUndetermined
	default:
		return Decision{ID: MsgStatusUnclear, Rule: "unknown-status"}
	}

	if id, name, ok := RunRules(rules, rec); ok {
		return Decision{ID: id, Rule: name}
	}
	return Decision{ID: fallback, Rule: "fallback"}
}

// activeRules are shared by both built-in profiles.
func activeRules() []Rule {
	return []Rule{
		When("overage-for-grade",
			"grade known and age > standard age for grade + 2",
			func(r *record.Normalized) bool {
				return r.Grade != nil && r.Age != nil &&
					*r.Age > float64(normalize.StandardAge(*r.Grade)+OverageTolerance)
			},
			MsgPackageAOverage),
		Always("regular", MsgStayRegular),
	}
}

// Standard returns the default policy: reason overrides without arrears awareness.
func Standard() *RuleSet {
	return &RuleSet{
		Name:   "standard",
		Base:   "standard",
		Active: activeRules(),
		Graduated: []Rule{
			When("primary-graduate", "grade == 6 and age <= 15",
				all(gradeIs(6), ageAtMost(15)), MsgContinueSMP),
			When("primary-graduate-overage", "grade == 6 and age > 15",
				all(gradeIs(6), ageAbove(15)), MsgPackageBOverage),
			When("primary-graduate-no-age", "grade == 6",
				gradeIs(6), MsgContinueSMP),
			When("junior-graduate", "grade >= 9",
				gradeAtLeast(9), MsgContinueSMA),
			Always("inconsistent", MsgGraduationInconsistent),
		},
		Dropped: []Rule{
			youngPrimaryRule(),
			When("primary-finished-young", "grade == 6 and age <= 15",
				all(gradeIs(6), ageAtMost(15)), MsgContinueSMP),
			When("reason-economic", "reason is economic",
				reasonIs(record.ReasonEconomic), MsgPackageAFree),
			relocationRule(),
			counselingRule(),
			distanceRule(),
			healthRule(),
			overage13Rule(),
			farOverRule(),
			primaryFinishedOverageRule(),
			Always("undetermined", MsgUndetermined),
		},
	}
}

// Extended returns the arrears-aware policy. It differs from Standard in the
// graduated cascade, in rule 2 (arrears must be settled before SMP) and in
// the economic sub-rules.
func Extended() *RuleSet {
	return &RuleSet{
		Name:   "extended",
		Base:   "extended",
		Active: activeRules(),
		Graduated: []Rule{
			When("primary-graduate", "grade == 6",
				gradeIs(6), MsgContinueSMP),
			When("junior-graduate", "grade >= 9",
				gradeAtLeast(9), MsgContinueSMA),
			Always("inconsistent", MsgGraduationInconsistent),
		},
		Dropped: []Rule{
			youngPrimaryRule(),
			Branch("primary-finished-young", "grade == 6 and age <= 15",
				all(gradeIs(6), ageAtMost(15)),
				When("with-arrears", "arrears > 0", hasArrears, MsgSettleArrearsSMP),
				Always("eligible", MsgContinueSMP),
			),
			Branch("reason-economic", "reason is economic",
				reasonIs(record.ReasonEconomic),
				When("primary", "grade <= 5", gradeAtMost(5), MsgPackageAFree),
				When("primary-finished-overage", "grade == 6 and age > 15",
					all(gradeIs(6), ageAbove(15)), MsgPackageBFree),
				When("junior-with-arrears", "7 <= grade <= 9 and age <= 18 and arrears > 0",
					all(gradeBetween(7, 9), ageAtMost(18), hasArrears), MsgSettleArrearsSMP),
				When("junior", "7 <= grade <= 9", gradeBetween(7, 9), MsgPackageBFree),
				When("senior", "grade >= 10", gradeAtLeast(10), MsgPackageC),
			),
			relocationRule(),
			counselingRule(),
			distanceRule(),
			healthRule(),
			Branch("reason-tuition-arrears", "reason is tuition-arrears",
				reasonIs(record.ReasonTuitionArrears),
				When("young", "age <= 15", ageAtMost(15), MsgSettleArrearsSMP),
				Always("overage", MsgPackageB),
			),
			overage13Rule(),
			farOverRule(),
			primaryFinishedOverageRule(),
			Always("undetermined", MsgUndetermined),
		},
	}
}

func youngPrimaryRule() Rule {
	return When("young-primary", "age <= 12 and grade <= 5",
		all(ageAtMost(12), gradeAtMost(5)), MsgNearestSchoolSD)
}

func relocationRule() Rule {
	return When("reason-relocation", "reason is parent-relocation",
		reasonIs(record.ReasonParentRelocation), MsgRegisterNewDomicile)
}

func counselingRule() Rule {
	return When("reason-counseling", "reason is low-interest or bad-companionship",
		reasonIs(record.ReasonLowInterest, record.ReasonBadCompanionship), MsgCounselingPackageA)
}

func distanceRule() Rule {
	return When("reason-distance", "reason is school-distance",
		reasonIs(record.ReasonSchoolDistance), MsgNearestSchool)
}

func healthRule() Rule {
	return When("reason-health", "reason is health",
		reasonIs(record.ReasonHealth), MsgInclusiveSchool)
}

func overage13Rule() Rule {
	return When("primary-overage-13", "2 <= grade <= 6 and age >= 13",
		all(gradeBetween(2, 6), ageAtLeast(13)), MsgPackageAAge13)
}

func farOverRule() Rule {
	return When("primary-far-overage", "age >= 15 and grade <= 6",
		all(ageAtLeast(15), gradeAtMost(6)), MsgPackageAFarOver)
}

// primaryFinishedOverageRule is shadowed by primary-overage-13 for every
// record it could match. It is kept so that the cascade stays a faithful
// copy of the policy and a custom ordering can promote it.
func primaryFinishedOverageRule() Rule {
	return When("primary-finished-overage", "grade == 6 and age >= 15",
		all(gradeIs(6), ageAtLeast(15)), MsgPackageB)
}

// ByName returns the built-in rule set called name, or nil.
func ByName(name string) *RuleSet {
	switch name {
	case "standard":
		return Standard()
	case "extended":
		return Extended()
	default:
		return nil
	}
}

// BuiltinNames lists the built-in rule set names.
func BuiltinNames() []string {
	return []string{"standard", "extended"}
}

// Cascade is the rule list applied to one status, with the message used
// when none of its rules match.
type Cascade struct {
	Status   record.Status
	Rules    []Rule
	Fallback MessageID
}

// Cascades lists the per-status cascades in the order Decide consults them.
func (s *RuleSet) Cascades() []Cascade {
	return []Cascade{
		{Status: record.StatusActive, Rules: s.Active, Fallback: MsgStayRegular},
		{Status: record.StatusGraduated, Rules: s.Graduated, Fallback: MsgGraduationInconsistent},
		{Status: record.StatusDropped, Rules: s.Dropped, Fallback: MsgUndetermined},
	}
}
