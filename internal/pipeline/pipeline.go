// Package pipeline runs normalization and placement over a whole table.
package pipeline

import (
	"context"
	"fmt"
	"strconv"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/abhisek/jalur/internal/normalize"
	"github.com/abhisek/jalur/internal/placement"
	"github.com/abhisek/jalur/internal/record"
	"github.com/abhisek/jalur/internal/schema"
	"github.com/abhisek/jalur/internal/table"
)

// Output column names appended to (or overwritten in) the source table.
const (
	ColAge              = "age"
	ColEntryAge         = "entry_age"
	ColGradeLevel       = "grade_level"
	ColStatus           = "status"
	ColReasonCategory   = "reason_category"
	ColArrears          = "arrears"
	ColArrearsBracket   = "arrears_bracket"
	ColIsDropout        = "is_dropout"
	ColRecommendationID = "recommendation_id"
	ColRecommendation   = "recommendation"
)

// OutputColumns lists the annotation columns in output order.
func OutputColumns() []string {
	return []string{
		ColAge, ColEntryAge, ColGradeLevel, ColStatus, ColReasonCategory,
		ColArrears, ColArrearsBracket, ColIsDropout, ColRecommendationID, ColRecommendation,
	}
}

// Row is the outcome for one input row.
type Row struct {
	Record         record.Normalized        `json:"record"`
	Recommendation placement.Recommendation `json:"recommendation"`
	Rule           string                   `json:"rule"`
}

// Result is the outcome of one run.
type Result struct {
	RunID   string   `json:"run_id"`
	Profile string   `json:"profile"`
	Rules   string   `json:"rules"`
	Fields  []string `json:"fields"`
	Missing []string `json:"missing_fields"`
	Rows    []Row    `json:"-"`
	Summary Summary  `json:"summary"`
}

// Processor maps every row of a table through the normalizer and the
// recommender.
type Processor struct {
	Normalizer  *normalize.Normalizer
	Recommender *placement.Recommender
	Profiles    *schema.Registry
	// Profile is a registered profile name, or "" / "auto" to detect one.
	Profile string
	// Workers bounds parallelism. Values below 2 run sequentially; output
	// order and content do not depend on it.
	Workers int
	Logger  *zap.Logger
}

// Process normalizes and places every row of t. The only error is
// cancellation of ctx or an unknown profile name.
func (p *Processor) Process(ctx context.Context, t *table.Table) (*Result, error) {
	log := p.Logger
	if log == nil {
		log = zap.NewNop()
	}
	registry := p.Profiles
	if registry == nil {
		registry = schema.NewRegistry()
	}

	profile, err := registry.Select(p.Profile, t.Header)
	if err != nil {
		return nil, err
	}
	binding := profile.Bind(t.Header)

	res := &Result{
		RunID:   uuid.NewString(),
		Profile: profile.Name,
		Rules:   p.Recommender.Rules.Name,
		Fields:  binding.Fields(),
		Missing: binding.Missing(),
		Rows:    make([]Row, len(t.Rows)),
	}
	log = log.With(
		zap.String("run_id", res.RunID),
		zap.String("profile", res.Profile),
		zap.String("rules", res.Rules),
		zap.Int("rows", len(t.Rows)),
	)
	log.Debug("column binding", zap.Strings("fields", res.Fields), zap.Strings("missing", res.Missing))

	now := p.Normalizer.Instant()
	one := func(i int) {
		rec := p.Normalizer.NormalizeAt(binding.Remap(t.Rows[i]), now)
		rc, rule := p.Recommender.Explain(&rec)
		res.Rows[i] = Row{Record: rec, Recommendation: rc, Rule: rule}
		if rc.ID.NeedsReview() {
			log.Debug("row needs review", zap.Int("row", i+1), zap.String("recommendation", string(rc.ID)), zap.String("rule", rule))
		}
	}

	if p.Workers < 2 {
		for i := range t.Rows {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			one(i)
		}
	} else {
		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(p.Workers)
		for i := range t.Rows {
			if gctx.Err() != nil {
				break
			}
			g.Go(func() error {
				if err := gctx.Err(); err != nil {
					return err
				}
				one(i)
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return nil, err
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}
	}

	res.Summary = Summarize(res.Rows)
	log.Info("run complete",
		zap.Int("dropouts", res.Summary.Dropouts),
		zap.Int("needs_review", res.Summary.NeedsReview))
	return res, nil
}

// Annotate writes the output columns of res into t. Existing columns with
// the same name are overwritten in place; the rest are appended.
func Annotate(t *table.Table, res *Result) error {
	if len(res.Rows) != len(t.Rows) {
		return fmt.Errorf("annotate: %d results for %d rows", len(res.Rows), len(t.Rows))
	}
	cols := make(map[string][]string, len(OutputColumns()))
	for _, c := range OutputColumns() {
		cols[c] = make([]string, len(t.Rows))
	}
	for i, r := range res.Rows {
		n := r.Record
		cols[ColAge][i] = formatOptional(n.Age)
		cols[ColEntryAge][i] = formatOptional(n.EntryAge)
		if n.Grade != nil {
			cols[ColGradeLevel][i] = strconv.Itoa(*n.Grade)
		}
		cols[ColStatus][i] = string(n.Status)
		cols[ColReasonCategory][i] = string(n.Reason)
		cols[ColArrears][i] = strconv.FormatFloat(n.Arrears, 'f', -1, 64)
		cols[ColArrearsBracket][i] = string(n.ArrearsBracket)
		cols[ColIsDropout][i] = "0"
		if n.IsDropout {
			cols[ColIsDropout][i] = "1"
		}
		cols[ColRecommendationID][i] = string(r.Recommendation.ID)
		cols[ColRecommendation][i] = r.Recommendation.Text
	}
	for _, c := range OutputColumns() {
		t.SetColumn(c, cols[c])
	}
	return nil
}

func formatOptional(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', 1, 64)
}
