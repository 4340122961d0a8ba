package placement

import "github.com/abhisek/jalur/internal/record"

// Rule is one guarded entry of a placement cascade. Apply returns the message
// to emit, or ("", false) when the guard does not hold.
type Rule interface {
	Name() string
	Describe() string
	Apply(rec *record.Normalized) (MessageID, bool)
}

// RunRules evaluates rules in order and returns the first match together
// with the name of the rule that produced it. It returns ("", "", false) when
// no rule applies.
func RunRules(rules []Rule, rec *record.Normalized) (MessageID, string, bool) {
	for _, r := range rules {
		if id, ok := r.Apply(rec); ok {
			return id, r.Name(), true
		}
	}
	return "", "", false
}

// Predicate is a guard over a normalized record.
type Predicate func(rec *record.Normalized) bool

// guardRule emits a fixed message when its predicate holds.
type guardRule struct {
	name string
	desc string
	when Predicate
	then MessageID
}

// When builds a rule that emits then whenever pred holds.
func When(name, desc string, pred Predicate, then MessageID) Rule {
	return &guardRule{name: name, desc: desc, when: pred, then: then}
}

// Always builds a catch-all rule.
func Always(name string, then MessageID) Rule {
	return &guardRule{name: name, desc: "always", when: func(*record.Normalized) bool { return true }, then: then}
}

func (g *guardRule) Name() string     { return g.name }
func (g *guardRule) Describe() string { return g.desc + " → " + string(g.then) }

func (g *guardRule) Apply(rec *record.Normalized) (MessageID, bool) {
	if g.when(rec) {
		return g.then, true
	}
	return "", false
}

// branchRule runs a nested cascade when its predicate holds. If none of the
// nested rules match, the branch does not match either and evaluation
// continues with the next outer rule.
type branchRule struct {
	name  string
	desc  string
	when  Predicate
	rules []Rule
}

// Branch builds a rule that delegates to a nested cascade.
func Branch(name, desc string, pred Predicate, rules ...Rule) Rule {
	return &branchRule{name: name, desc: desc, when: pred, rules: rules}
}

func (b *branchRule) Name() string { return b.name }

func (b *branchRule) Describe() string {
	s := b.desc + " →"
	for _, r := range b.rules {
		s += "\n    · " + r.Name() + ": " + r.Describe()
	}
	return s
}

func (b *branchRule) Apply(rec *record.Normalized) (MessageID, bool) {
	if !b.when(rec) {
		return "", false
	}
	id, _, ok := RunRules(b.rules, rec)
	return id, ok
}

// Comparison helpers. Every comparison against a missing age or grade is
// false, so a rule never fires on data the record does not have.

func ageAtMost(v float64) Predicate {
	return func(r *record.Normalized) bool { return r.Age != nil && *r.Age <= v }
}

func ageAtLeast(v float64) Predicate {
	return func(r *record.Normalized) bool { return r.Age != nil && *r.Age >= v }
}

func ageAbove(v float64) Predicate {
	return func(r *record.Normalized) bool { return r.Age != nil && *r.Age > v }
}

func gradeIs(g int) Predicate {
	return func(r *record.Normalized) bool { return r.Grade != nil && *r.Grade == g }
}

func gradeAtMost(g int) Predicate {
	return func(r *record.Normalized) bool { return r.Grade != nil && *r.Grade <= g }
}

func gradeAtLeast(g int) Predicate {
	return func(r *record.Normalized) bool { return r.Grade != nil && *r.Grade >= g }
}

func gradeBetween(lo, hi int) Predicate {
	return func(r *record.Normalized) bool { return r.Grade != nil && *r.Grade >= lo && *r.Grade <= hi }
}

func reasonIs(reasons ...record.Reason) Predicate {
	return func(r *record.Normalized) bool {
		for _, want := range reasons {
			if r.Reason == want {
				return true
			}
		}
		return false
	}
}

func hasArrears(r *record.Normalized) bool { return r.Arrears > 0 }

func all(preds ...Predicate) Predicate {
	return func(r *record.Normalized) bool {
		for _, p := range preds {
			if !p(r) {
				return false
			}
		}
		return true
	}
}
