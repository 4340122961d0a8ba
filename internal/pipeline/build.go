package pipeline

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/abhisek/jalur/internal/normalize"
	"github.com/abhisek/jalur/internal/placement"
	"github.com/abhisek/jalur/internal/reason"
	"github.com/abhisek/jalur/internal/schema"
	"github.com/abhisek/jalur/internal/status"
)

// Options selects the tables a Processor is built from. Empty file paths
// mean the built-in defaults.
type Options struct {
	Profile      string
	Rules        string // built-in rule set name or rule file path
	KeywordsFile string
	SynonymsFile string
	ProfilesFile string
	Locale       string
	DateLayouts  []string
	Workers      int
	Now          func() time.Time
	Logger       *zap.Logger
}

// NewProcessor loads every table named in opts and wires a Processor.
func NewProcessor(opts Options) (*Processor, error) {
	rules, err := placement.Resolve(opts.Rules)
	if err != nil {
		return nil, err
	}

	keywords := reason.ForProfile(rules.Base)
	if keywords == nil {
		keywords = reason.Extended()
	}
	if opts.KeywordsFile != "" {
		if keywords, err = reason.LoadTable(opts.KeywordsFile); err != nil {
			return nil, err
		}
	}

	resolver := status.NewResolver()
	if opts.SynonymsFile != "" {
		if resolver.Synonyms, err = status.LoadSynonyms(opts.SynonymsFile); err != nil {
			return nil, err
		}
	}

	registry := schema.NewRegistry()
	if opts.ProfilesFile != "" {
		extra, err := schema.LoadProfiles(opts.ProfilesFile)
		if err != nil {
			return nil, err
		}
		registry = schema.NewRegistry(extra...)
	}
	if opts.Profile != "" && opts.Profile != schema.AutoDetect && registry.Get(opts.Profile) == nil {
		return nil, fmt.Errorf("select profile: %w", &schema.UnknownProfileError{Name: opts.Profile})
	}

	n := normalize.New(keywords, resolver)
	if len(opts.DateLayouts) > 0 {
		n.DateLayouts = opts.DateLayouts
	}
	if opts.Now != nil {
		n.Now = opts.Now
	}

	return &Processor{
		Normalizer:  n,
		Recommender: placement.NewRecommender(rules, opts.Locale),
		Profiles:    registry,
		Profile:     opts.Profile,
		Workers:     opts.Workers,
		Logger:      opts.Logger,
	}, nil
}
