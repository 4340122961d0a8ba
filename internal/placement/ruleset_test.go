package placement

import (
	"testing"

	"github.com/abhisek/jalur/internal/record"
)

func fptr(v float64) *float64 { return &v }
func iptr(v int) *int         { return &v }

type recOpt func(*record.Normalized)

func withReason(r record.Reason) recOpt {
	return func(n *record.Normalized) { n.Reason = r }
}

func withArrears(v float64) recOpt {
	return func(n *record.Normalized) { n.Arrears = v }
}

func withoutAge() recOpt {
	return func(n *record.Normalized) { n.Age = nil }
}

func withoutGrade() recOpt {
	return func(n *record.Normalized) { n.Grade = nil }
}

func rec(status record.Status, age float64, grade int, opts ...recOpt) *record.Normalized {
	n := &record.Normalized{
		Status: status,
		Age:    fptr(age),
		Grade:  iptr(grade),
		Reason: record.ReasonOther,
	}
	for _, o := range opts {
		o(n)
	}
	n.IsDropout = n.Status == record.StatusDropped
	return n
}

func TestDecide_InsufficientData(t *testing.T) {
	for _, s := range record.AllStatuses() {
		for _, set := range []*RuleSet{Standard(), Extended()} {
			r := rec(s, 0, 0, withoutAge(), withoutGrade(), withReason(record.ReasonEconomic), withArrears(1000))
			d := set.Decide(r)
			if d.ID != MsgInsufficientData {
				t.Errorf("%s/%s: got %q, want %q", set.Name, s, d.ID, MsgInsufficientData)
			}
		}
	}
}

func TestDecide_UnknownStatus(t *testing.T) {
	d := Standard().Decide(rec(record.StatusUnknown, 10, 4))
	if d.ID != MsgStatusUnclear {
		t.Errorf("got %q, want %q", d.ID, MsgStatusUnclear)
	}
}

func TestDecide_ActiveOverageBoundary(t *testing.T) {
	// Grade 3 has standard age 9; the threshold is strictly greater than 11.
	tests := []struct {
		age  float64
		want MessageID
	}{
		{9, MsgStayRegular},
		{11, MsgStayRegular},
		{11.1, MsgPackageAOverage},
		{12, MsgPackageAOverage},
	}
	for _, tt := range tests {
		for _, set := range []*RuleSet{Standard(), Extended()} {
			d := set.Decide(rec(record.StatusActive, tt.age, 3))
			if d.ID != tt.want {
				t.Errorf("%s: active grade 3 age %.1f = %q, want %q", set.Name, tt.age, d.ID, tt.want)
			}
		}
	}
}

func TestDecide_ActiveHigherGradesLinear(t *testing.T) {
	// Grade 9 has standard age 15.
	if d := Standard().Decide(rec(record.StatusActive, 17, 9)); d.ID != MsgStayRegular {
		t.Errorf("age 17 grade 9: got %q, want stay-regular", d.ID)
	}
	if d := Standard().Decide(rec(record.StatusActive, 17.5, 9)); d.ID != MsgPackageAOverage {
		t.Errorf("age 17.5 grade 9: got %q, want package-a-overage", d.ID)
	}
}

func TestDecide_ActiveMissingGradeStaysRegular(t *testing.T) {
	d := Standard().Decide(rec(record.StatusActive, 20, 0, withoutGrade()))
	if d.ID != MsgStayRegular {
		t.Errorf("got %q, want %q", d.ID, MsgStayRegular)
	}
}

func TestDecide_Graduated(t *testing.T) {
	tests := []struct {
		name  string
		set   *RuleSet
		age   float64
		grade int
		want  MessageID
	}{
		{"standard primary", Standard(), 12, 6, MsgContinueSMP},
		{"standard primary at 15", Standard(), 15, 6, MsgContinueSMP},
		{"standard primary overage", Standard(), 16, 6, MsgPackageBOverage},
		{"standard junior", Standard(), 15, 9, MsgContinueSMA},
		{"standard inconsistent", Standard(), 10, 4, MsgGraduationInconsistent},
		{"standard grade 7", Standard(), 13, 7, MsgGraduationInconsistent},
		{"extended primary overage", Extended(), 16, 6, MsgContinueSMP},
		{"extended senior", Extended(), 18, 12, MsgContinueSMA},
		{"extended inconsistent", Extended(), 10, 3, MsgGraduationInconsistent},
	}
	for _, tt := range tests {
		d := tt.set.Decide(rec(record.StatusGraduated, tt.age, tt.grade))
		if d.ID != tt.want {
			t.Errorf("%s: got %q, want %q", tt.name, d.ID, tt.want)
		}
	}
}

func TestDecide_GraduatedGrade6WithoutAge(t *testing.T) {
	d := Standard().Decide(rec(record.StatusGraduated, 0, 6, withoutAge()))
	if d.ID != MsgContinueSMP {
		t.Errorf("got %q, want %q", d.ID, MsgContinueSMP)
	}
}

func TestDecide_DroppedYoungPrimaryBeatsReason(t *testing.T) {
	for _, set := range []*RuleSet{Standard(), Extended()} {
		d := set.Decide(rec(record.StatusDropped, 10, 4, withReason(record.ReasonEconomic)))
		if d.ID != MsgNearestSchoolSD {
			t.Errorf("%s: got %q, want %q", set.Name, d.ID, MsgNearestSchoolSD)
		}
		if d.Rule != "young-primary" {
			t.Errorf("%s: rule = %q, want young-primary", set.Name, d.Rule)
		}
	}
}

func TestDecide_DroppedPrimaryFinished(t *testing.T) {
	if d := Standard().Decide(rec(record.StatusDropped, 14, 6, withArrears(75000))); d.ID != MsgContinueSMP {
		t.Errorf("standard ignores arrears: got %q, want %q", d.ID, MsgContinueSMP)
	}
	if d := Extended().Decide(rec(record.StatusDropped, 14, 6, withArrears(75000))); d.ID != MsgSettleArrearsSMP {
		t.Errorf("extended with arrears: got %q, want %q", d.ID, MsgSettleArrearsSMP)
	}
	if d := Extended().Decide(rec(record.StatusDropped, 14, 6)); d.ID != MsgContinueSMP {
		t.Errorf("extended without arrears: got %q, want %q", d.ID, MsgContinueSMP)
	}
}

func TestDecide_ExtendedEconomicOverageGoesToPackageB(t *testing.T) {
	d := Extended().Decide(rec(record.StatusDropped, 16, 6,
		withReason(record.ReasonEconomic), withArrears(50000)))
	if d.ID != MsgPackageBFree {
		t.Errorf("got %q, want %q", d.ID, MsgPackageBFree)
	}
}

func TestDecide_StandardEconomicIsPackageA(t *testing.T) {
	d := Standard().Decide(rec(record.StatusDropped, 16, 6, withReason(record.ReasonEconomic)))
	if d.ID != MsgPackageAFree {
		t.Errorf("got %q, want %q", d.ID, MsgPackageAFree)
	}
}

func TestDecide_ExtendedEconomicSubRules(t *testing.T) {
	tests := []struct {
		name    string
		age     float64
		grade   int
		arrears float64
		want    MessageID
	}{
		{"primary overage", 14, 4, 0, MsgPackageAFree},
		{"junior with arrears", 16, 8, 100000, MsgSettleArrearsSMP},
		{"junior too old for arrears path", 19, 8, 100000, MsgPackageBFree},
		{"junior without arrears", 16, 8, 0, MsgPackageBFree},
		{"senior", 17, 11, 0, MsgPackageC},
	}
	for _, tt := range tests {
		d := Extended().Decide(rec(record.StatusDropped, tt.age, tt.grade,
			withReason(record.ReasonEconomic), withArrears(tt.arrears)))
		if d.ID != tt.want {
			t.Errorf("%s: got %q, want %q", tt.name, d.ID, tt.want)
		}
	}
}

func TestDecide_ExtendedEconomicFallsThroughWithoutGrade(t *testing.T) {
	// No sub-rule can match without a grade, so evaluation continues with the
	// generic rules and ends at the fallback.
	d := Extended().Decide(rec(record.StatusDropped, 14, 0, withoutGrade(), withReason(record.ReasonEconomic)))
	if d.ID != MsgUndetermined {
		t.Errorf("got %q, want %q", d.ID, MsgUndetermined)
	}
}

func TestDecide_ReasonOverrides(t *testing.T) {
	tests := []struct {
		reason record.Reason
		want   MessageID
	}{
		{record.ReasonParentRelocation, MsgRegisterNewDomicile},
		{record.ReasonLowInterest, MsgCounselingPackageA},
		{record.ReasonBadCompanionship, MsgCounselingPackageA},
		{record.ReasonSchoolDistance, MsgNearestSchool},
		{record.ReasonHealth, MsgInclusiveSchool},
	}
	for _, tt := range tests {
		for _, set := range []*RuleSet{Standard(), Extended()} {
			d := set.Decide(rec(record.StatusDropped, 14, 4, withReason(tt.reason)))
			if d.ID != tt.want {
				t.Errorf("%s/%s: got %q, want %q", set.Name, tt.reason, d.ID, tt.want)
			}
		}
	}
}

func TestDecide_TuitionArrears(t *testing.T) {
	if d := Extended().Decide(rec(record.StatusDropped, 14, 8, withReason(record.ReasonTuitionArrears))); d.ID != MsgSettleArrearsSMP {
		t.Errorf("extended young: got %q, want %q", d.ID, MsgSettleArrearsSMP)
	}
	if d := Extended().Decide(rec(record.StatusDropped, 17, 8, withReason(record.ReasonTuitionArrears))); d.ID != MsgPackageB {
		t.Errorf("extended overage: got %q, want %q", d.ID, MsgPackageB)
	}
	// The standard policy has no tuition-arrears override.
	if d := Standard().Decide(rec(record.StatusDropped, 17, 8, withReason(record.ReasonTuitionArrears))); d.ID != MsgUndetermined {
		t.Errorf("standard: got %q, want %q", d.ID, MsgUndetermined)
	}
}

func TestDecide_GenericAgeRules(t *testing.T) {
	tests := []struct {
		name  string
		age   float64
		grade int
		want  MessageID
		rule  string
	}{
		{"grade 4 age 14", 14, 4, MsgPackageAAge13, "primary-overage-13"},
		{"grade 2 age 13", 13, 2, MsgPackageAAge13, "primary-overage-13"},
		{"grade 1 age 15", 15, 1, MsgPackageAFarOver, "primary-far-overage"},
		{"grade 6 age 16 shadowed", 16, 6, MsgPackageAAge13, "primary-overage-13"},
		{"grade 1 age 13", 13, 1, MsgUndetermined, "undetermined"},
		{"grade 8 age 15", 15, 8, MsgUndetermined, "undetermined"},
	}
	for _, tt := range tests {
		d := Standard().Decide(rec(record.StatusDropped, tt.age, tt.grade))
		if d.ID != tt.want || d.Rule != tt.rule {
			t.Errorf("%s: got (%q, %q), want (%q, %q)", tt.name, d.ID, d.Rule, tt.want, tt.rule)
		}
	}
}

func TestRules_Isolated(t *testing.T) {
	tests := []struct {
		rule Rule
		hit  *record.Normalized
		miss *record.Normalized
		want MessageID
	}{
		{youngPrimaryRule(), rec(record.StatusDropped, 12, 5), rec(record.StatusDropped, 12.1, 5), MsgNearestSchoolSD},
		{relocationRule(), rec(record.StatusDropped, 14, 4, withReason(record.ReasonParentRelocation)), rec(record.StatusDropped, 14, 4), MsgRegisterNewDomicile},
		{counselingRule(), rec(record.StatusDropped, 14, 4, withReason(record.ReasonLowInterest)), rec(record.StatusDropped, 14, 4, withReason(record.ReasonHealth)), MsgCounselingPackageA},
		{distanceRule(), rec(record.StatusDropped, 14, 4, withReason(record.ReasonSchoolDistance)), rec(record.StatusDropped, 14, 4), MsgNearestSchool},
		{healthRule(), rec(record.StatusDropped, 14, 4, withReason(record.ReasonHealth)), rec(record.StatusDropped, 14, 4), MsgInclusiveSchool},
		{overage13Rule(), rec(record.StatusDropped, 13, 6), rec(record.StatusDropped, 13, 1), MsgPackageAAge13},
		{farOverRule(), rec(record.StatusDropped, 15, 1), rec(record.StatusDropped, 14.9, 1), MsgPackageAFarOver},
		{primaryFinishedOverageRule(), rec(record.StatusDropped, 15, 6), rec(record.StatusDropped, 15, 5), MsgPackageB},
	}
	for _, tt := range tests {
		if id, ok := tt.rule.Apply(tt.hit); !ok || id != tt.want {
			t.Errorf("%s: hit = (%q, %v), want (%q, true)", tt.rule.Name(), id, ok, tt.want)
		}
		if id, ok := tt.rule.Apply(tt.miss); ok {
			t.Errorf("%s: miss matched with %q", tt.rule.Name(), id)
		}
	}
}

func TestRules_MissingValuesNeverMatch(t *testing.T) {
	noAge := rec(record.StatusDropped, 0, 4, withoutAge())
	noGrade := rec(record.StatusDropped, 10, 0, withoutGrade())
	for _, r := range []Rule{youngPrimaryRule(), overage13Rule(), farOverRule(), primaryFinishedOverageRule()} {
		if _, ok := r.Apply(noAge); ok {
			t.Errorf("%s matched a record without age", r.Name())
		}
		if _, ok := r.Apply(noGrade); ok {
			t.Errorf("%s matched a record without grade", r.Name())
		}
	}
}

func TestRunRules_OrderIsLoadBearing(t *testing.T) {
	r := rec(record.StatusDropped, 10, 4, withReason(record.ReasonHealth))
	forward := []Rule{youngPrimaryRule(), healthRule()}
	reversed := []Rule{healthRule(), youngPrimaryRule()}

	id1, name1, _ := RunRules(forward, r)
	id2, name2, _ := RunRules(reversed, r)
	if id1 != MsgNearestSchoolSD || name1 != "young-primary" {
		t.Errorf("forward: got (%q, %q)", id1, name1)
	}
	if id2 != MsgInclusiveSchool || name2 != "reason-health" {
		t.Errorf("reversed: got (%q, %q)", id2, name2)
	}
}

func TestRunRules_NoMatch(t *testing.T) {
	id, name, ok := RunRules(nil, rec(record.StatusDropped, 10, 4))
	if ok || id != "" || name != "" {
		t.Errorf("got (%q, %q, %v), want empty", id, name, ok)
	}
}

func TestDecide_EmptyRuleSetUsesFallbacks(t *testing.T) {
	set := &RuleSet{Name: "empty"}
	tests := []struct {
		status record.Status
		want   MessageID
	}{
		{record.StatusActive, MsgStayRegular},
		{record.StatusGraduated, MsgGraduationInconsistent},
		{record.StatusDropped, MsgUndetermined},
	}
	for _, tt := range tests {
		d := set.Decide(rec(tt.status, 10, 4))
		if d.ID != tt.want || d.Rule != "fallback" {
			t.Errorf("%s: got (%q, %q), want (%q, fallback)", tt.status, d.ID, d.Rule, tt.want)
		}
	}
}

func TestDecide_TotalOverGrid(t *testing.T) {
	cat := NewCatalog(LocaleEN)
	ages := []*float64{nil, fptr(0), fptr(6.5), fptr(12), fptr(13), fptr(15), fptr(15.1), fptr(40)}
	grades := []*int{nil, iptr(1), iptr(2), iptr(5), iptr(6), iptr(7), iptr(9), iptr(12)}
	for _, set := range []*RuleSet{Standard(), Extended()} {
		for _, s := range record.AllStatuses() {
			for _, reason := range record.AllReasons() {
				for _, a := range ages {
					for _, g := range grades {
						for _, arrears := range []float64{0, 50000} {
							r := &record.Normalized{Status: s, Age: a, Grade: g, Reason: reason, Arrears: arrears}
							d := set.Decide(r)
							if d.ID == "" || !cat.Has(d.ID) {
								t.Fatalf("%s: no catalogued message for %+v (got %q)", set.Name, r, d.ID)
							}
						}
					}
				}
			}
		}
	}
}

func TestByName(t *testing.T) {
	for _, name := range BuiltinNames() {
		if set := ByName(name); set == nil || set.Name != name {
			t.Errorf("ByName(%q) mismatch", name)
		}
	}
	if ByName("missing") != nil {
		t.Error("expected nil for unknown rule set")
	}
}

func TestDescribe(t *testing.T) {
	for _, r := range Extended().Dropped {
		if r.Describe() == "" {
			t.Errorf("%s has empty description", r.Name())
		}
	}
}

func TestCascadesMatchDecide(t *testing.T) {
	rs := Standard()
	for _, c := range rs.Cascades() {
		rec := record.Normalized{Status: c.Status, Age: fptr(30), Grade: iptr(9)}
		got := rs.Decide(&rec)
		var want MessageID
		if id, _, ok := RunRules(c.Rules, &rec); ok {
			want = id
		} else {
			want = c.Fallback
		}
		if got.ID != want {
			t.Errorf("%s: Decide = %s, cascade gives %s", c.Status, got.ID, want)
		}
	}
}
