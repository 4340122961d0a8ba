package placement

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/jalur/internal/record"
)

func TestExprRule_Apply(t *testing.T) {
	r, err := NewExprRule("young", "age <= 12 && grade <= 5", MsgNearestSchoolSD)
	require.NoError(t, err)

	id, ok := r.Apply(rec(record.StatusDropped, 10, 4))
	assert.True(t, ok)
	assert.Equal(t, MsgNearestSchoolSD, id)

	_, ok = r.Apply(rec(record.StatusDropped, 13, 4))
	assert.False(t, ok)
}

func TestExprRule_MissingValuesNeverMatch(t *testing.T) {
	r, err := NewExprRule("young", "age <= 12", MsgNearestSchoolSD)
	require.NoError(t, err)
	_, ok := r.Apply(rec(record.StatusDropped, 0, 4, withoutAge()))
	assert.False(t, ok)

	r, err = NewExprRule("old", "age > 12", MsgPackageB)
	require.NoError(t, err)
	_, ok = r.Apply(rec(record.StatusDropped, 0, 4, withoutAge()))
	assert.False(t, ok)
}

func TestExprRule_StringsAndFlags(t *testing.T) {
	r, err := NewExprRule("econ", "reason == 'economic' && has_arrears", MsgSettleArrearsSMP)
	require.NoError(t, err)

	_, ok := r.Apply(rec(record.StatusDropped, 14, 8, withReason(record.ReasonEconomic), withArrears(1000)))
	assert.True(t, ok)
	_, ok = r.Apply(rec(record.StatusDropped, 14, 8, withReason(record.ReasonEconomic)))
	assert.False(t, ok)
}

func TestExprRule_EmptyWhenAlwaysMatches(t *testing.T) {
	r, err := NewExprRule("rest", "  ", MsgUndetermined)
	require.NoError(t, err)
	id, ok := r.Apply(rec(record.StatusDropped, 0, 0, withoutAge(), withoutGrade()))
	assert.True(t, ok)
	assert.Equal(t, MsgUndetermined, id)
	assert.Equal(t, "always → undetermined", r.Describe())
}

func TestExprRule_NonBoolResultIsNoMatch(t *testing.T) {
	r, err := NewExprRule("sum", "age + 1", MsgPackageB)
	require.NoError(t, err)
	_, ok := r.Apply(rec(record.StatusDropped, 14, 8))
	assert.False(t, ok)
}

func TestNewExprRule_ParseError(t *testing.T) {
	_, err := NewExprRule("broken", "age <= (", MsgPackageB)
	assert.Error(t, err)
}

func TestParameters(t *testing.T) {
	n := rec(record.StatusActive, 9.5, 3, withArrears(250000))
	n.District = "Cibeunying"
	p := Parameters(n)

	assert.Equal(t, 9.5, p["age"])
	assert.Equal(t, 3.0, p["grade"])
	assert.Equal(t, true, p["has_age"])
	assert.Equal(t, true, p["has_arrears"])
	assert.Equal(t, "active", p["status"])
	assert.Equal(t, "Cibeunying", p["district"])

	p = Parameters(rec(record.StatusActive, 0, 0, withoutAge(), withoutGrade()))
	assert.Equal(t, false, p["has_age"])
	assert.Equal(t, false, p["has_grade"])
}

const customRules = `
name: kabupaten-x
base: extended
messages:
  mentoring:
    id: Pendampingan belajar
    en: Learning mentoring
dropped:
  - name: young
    when: "age <= 12 && grade <= 5"
    then: nearest-school-sd
  - name: mentoring
    when: "reason == 'low-interest'"
    then: mentoring
  - name: rest
    then: undetermined
`

func TestParseRuleSet(t *testing.T) {
	set, err := ParseRuleSet([]byte(customRules))
	require.NoError(t, err)
	assert.Equal(t, "kabupaten-x", set.Name)
	require.Len(t, set.Dropped, 3)

	// Cascades not listed come from the base.
	assert.Equal(t, MsgContinueSMP, set.Decide(rec(record.StatusGraduated, 16, 6)).ID)
	assert.Equal(t, MsgPackageAOverage, set.Decide(rec(record.StatusActive, 12, 3)).ID)

	d := set.Decide(rec(record.StatusDropped, 14, 4, withReason(record.ReasonLowInterest)))
	assert.Equal(t, MessageID("mentoring"), d.ID)
	assert.Equal(t, "mentoring", d.Rule)

	assert.Equal(t, MsgUndetermined, set.Decide(rec(record.StatusDropped, 14, 4)).ID)
	assert.Equal(t, MsgInsufficientData,
		set.Decide(rec(record.StatusDropped, 0, 0, withoutAge(), withoutGrade())).ID)
}

func TestParseRuleSet_WithoutBaseUsesFallbacks(t *testing.T) {
	set, err := ParseRuleSet([]byte("name: bare\n"))
	require.NoError(t, err)
	assert.Equal(t, MsgStayRegular, set.Decide(rec(record.StatusActive, 20, 3)).ID)
	assert.Equal(t, MsgGraduationInconsistent, set.Decide(rec(record.StatusGraduated, 12, 6)).ID)
	assert.Equal(t, MsgUndetermined, set.Decide(rec(record.StatusDropped, 10, 4)).ID)
}

func TestParseRuleSet_Errors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"missing name", "base: standard\n"},
		{"unknown base", "name: x\nbase: strict\n"},
		{"unknown field", "name: x\nextra: 1\n"},
		{"rule without then", "name: x\ndropped:\n  - name: a\n    when: age > 1\n"},
		{"unknown message", "name: x\ndropped:\n  - name: a\n    then: nope\n"},
		{"bad expression", "name: x\nactive:\n  - name: a\n    when: 'age <= ('\n    then: stay-regular\n"},
		{"not yaml", "name: [\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseRuleSet([]byte(tt.data))
			assert.Error(t, err)
		})
	}
}

func TestResolve(t *testing.T) {
	set, err := Resolve("")
	require.NoError(t, err)
	assert.Equal(t, "standard", set.Name)

	set, err = Resolve("extended")
	require.NoError(t, err)
	assert.Equal(t, "extended", set.Name)

	path := filepath.Join(t.TempDir(), "rules.yaml")
	require.NoError(t, os.WriteFile(path, []byte(customRules), 0o644))
	set, err = Resolve(path)
	require.NoError(t, err)
	assert.Equal(t, "kabupaten-x", set.Name)

	_, err = Resolve(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
