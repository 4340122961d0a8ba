package placement

import "github.com/abhisek/jalur/internal/record"

// Recommender renders RuleSet decisions through a message catalog.
type Recommender struct {
	Rules   *RuleSet
	Catalog *Catalog
}

// NewRecommender creates a Recommender for rules in locale. Messages
// declared by a custom rule set are added to the catalog.
func NewRecommender(rules *RuleSet, locale string) *Recommender {
	cat := NewCatalog(locale)
	for id, t := range rules.Messages {
		cat.Add(id, t)
	}
	return &Recommender{Rules: rules, Catalog: cat}
}

// Recommend returns the placement for rec. It is pure and total.
func (r *Recommender) Recommend(rec *record.Normalized) Recommendation {
	d := r.Rules.Decide(rec)
	return Recommendation{ID: d.ID, Text: r.Catalog.Text(d.ID)}
}

// Explain returns the placement together with the name of the rule that
// produced it.
func (r *Recommender) Explain(rec *record.Normalized) (Recommendation, string) {
	d := r.Rules.Decide(rec)
	return Recommendation{ID: d.ID, Text: r.Catalog.Text(d.ID)}, d.Rule
}
