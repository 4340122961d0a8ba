package placement

import (
	"fmt"
	"math"
	"os"
	"strings"

	"github.com/Knetic/govaluate"

	"github.com/abhisek/jalur/internal/record"
	"github.com/abhisek/jalur/internal/yamlschema"
)

// exprRule is a rule whose guard is a govaluate expression over the record's
// parameters (see Parameters).
type exprRule struct {
	name string
	src  string
	expr *govaluate.EvaluableExpression // nil means always
	then MessageID
}

// NewExprRule compiles when into a rule. An empty expression matches every
// record.
func NewExprRule(name, when string, then MessageID) (Rule, error) {
	r := &exprRule{name: name, src: strings.TrimSpace(when), then: then}
	if r.src == "" {
		return r, nil
	}
	expr, err := govaluate.NewEvaluableExpression(r.src)
	if err != nil {
		return nil, fmt.Errorf("rule %q: parse %q: %w", name, r.src, err)
	}
	r.expr = expr
	return r, nil
}

func (r *exprRule) Name() string { return r.name }

func (r *exprRule) Describe() string {
	if r.src == "" {
		return "always → " + string(r.then)
	}
	return r.src + " → " + string(r.then)
}

// Apply evaluates the guard. An evaluation error or a non-boolean result
// counts as no match, so a bad expression can never abort a run.
func (r *exprRule) Apply(rec *record.Normalized) (MessageID, bool) {
	if r.expr == nil {
		return r.then, true
	}
	out, err := r.expr.Evaluate(Parameters(rec))
	if err != nil {
		return "", false
	}
	if ok, isBool := out.(bool); isBool && ok {
		return r.then, true
	}
	return "", false
}

// Parameters exposes a record to rule expressions. Missing numbers are NaN,
// so every comparison against them is false, matching the built-in rules.
//
//	age, grade, entry_age, arrears, income   float64
//	has_age, has_grade, has_arrears          bool
//	reason, status, district, school_type    string
func Parameters(rec *record.Normalized) map[string]interface{} {
	p := map[string]interface{}{
		"age":         math.NaN(),
		"grade":       math.NaN(),
		"entry_age":   math.NaN(),
		"arrears":     rec.Arrears,
		"income":      rec.FamilyIncome,
		"has_age":     rec.Age != nil,
		"has_grade":   rec.Grade != nil,
		"has_arrears": rec.Arrears > 0,
		"reason":      string(rec.Reason),
		"status":      string(rec.Status),
		"district":    rec.District,
		"school_type": rec.OriginSchoolType,
	}
	if rec.Age != nil {
		p["age"] = *rec.Age
	}
	if rec.Grade != nil {
		p["grade"] = float64(*rec.Grade)
	}
	if rec.EntryAge != nil {
		p["entry_age"] = *rec.EntryAge
	}
	return p
}

// ruleFile is the YAML shape of a custom rule set.
type ruleFile struct {
	Name      string              `yaml:"name"`
	Base      string              `yaml:"base"`
	Messages  map[string]Template `yaml:"messages"`
	Active    []ruleSpec          `yaml:"active"`
	Graduated []ruleSpec          `yaml:"graduated"`
	Dropped   []ruleSpec          `yaml:"dropped"`
}

type ruleSpec struct {
	Name string `yaml:"name"`
	When string `yaml:"when"`
	Then string `yaml:"then"`
}

const ruleFileSchema = `{
  "type": "object",
  "required": ["name"],
  "additionalProperties": false,
  "properties": {
    "name": {"type": "string", "minLength": 1},
    "base": {"enum": ["standard", "extended"]},
    "messages": {
      "type": "object",
      "additionalProperties": {
        "type": "object",
        "additionalProperties": false,
        "properties": {"id": {"type": "string"}, "en": {"type": "string"}}
      }
    },
    "active":    {"$ref": "#/$defs/cascade"},
    "graduated": {"$ref": "#/$defs/cascade"},
    "dropped":   {"$ref": "#/$defs/cascade"}
  },
  "$defs": {
    "cascade": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["name", "then"],
        "additionalProperties": false,
        "properties": {
          "name": {"type": "string", "minLength": 1},
          "when": {"type": "string"},
          "then": {"type": "string", "minLength": 1}
        }
      }
    }
  }
}`

// ParseRuleSet decodes a custom rule set:
//
//	name: kabupaten-x
//	base: extended            # cascades not listed are taken from here
//	messages:
//	  mentoring: {id: "Pendampingan belajar", en: "Learning mentoring"}
//	dropped:
//	  - name: young
//	    when: "age <= 12 && grade <= 5"
//	    then: nearest-school-sd
//	  - name: rest
//	    then: undetermined
//
// Every `then` must name a built-in message or one declared under messages.
func ParseRuleSet(data []byte) (*RuleSet, error) {
	var f ruleFile
	if err := yamlschema.Decode("rule-set", ruleFileSchema, data, &f); err != nil {
		return nil, err
	}

	set := &RuleSet{Name: f.Name, Base: f.Base, Messages: make(map[MessageID]Template, len(f.Messages))}
	if f.Base != "" {
		base := ByName(f.Base)
		set.Active, set.Graduated, set.Dropped = base.Active, base.Graduated, base.Dropped
	}
	for id, t := range f.Messages {
		set.Messages[MessageID(id)] = t
	}

	known := func(id MessageID) bool {
		if _, ok := builtinTemplates[id]; ok {
			return true
		}
		_, ok := set.Messages[id]
		return ok
	}

	compile := func(section string, specs []ruleSpec) ([]Rule, error) {
		rules := make([]Rule, 0, len(specs))
		for _, s := range specs {
			then := MessageID(s.Then)
			if !known(then) {
				return nil, fmt.Errorf("%s rule %q: unknown message %q", section, s.Name, s.Then)
			}
			r, err := NewExprRule(s.Name, s.When, then)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", section, err)
			}
			rules = append(rules, r)
		}
		return rules, nil
	}

	var err error
	if f.Active != nil {
		if set.Active, err = compile("active", f.Active); err != nil {
			return nil, err
		}
	}
	if f.Graduated != nil {
		if set.Graduated, err = compile("graduated", f.Graduated); err != nil {
			return nil, err
		}
	}
	if f.Dropped != nil {
		if set.Dropped, err = compile("dropped", f.Dropped); err != nil {
			return nil, err
		}
	}
	return set, nil
}

// LoadRuleSet reads and parses a custom rule set file.
func LoadRuleSet(path string) (*RuleSet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read rule set: %w", err)
	}
	set, err := ParseRuleSet(data)
	if err != nil {
		return nil, fmt.Errorf("load rule set %s: %w", path, err)
	}
	return set, nil
}

// Resolve returns the built-in rule set called nameOrPath, or loads it as a
// file path when no built-in has that name.
func Resolve(nameOrPath string) (*RuleSet, error) {
	if nameOrPath == "" {
		return Standard(), nil
	}
	if set := ByName(nameOrPath); set != nil {
		return set, nil
	}
	return LoadRuleSet(nameOrPath)
}
