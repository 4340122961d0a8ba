// Package brief asks an LLM for an outreach plan based on run aggregates.
// Only pipeline.Summary is sent; no record-level data leaves the process.
package brief

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/abhisek/jalur/internal/llm"
	"github.com/abhisek/jalur/internal/pipeline"
)

// ErrNoRecords is returned for an empty run; there is nothing to brief on.
var ErrNoRecords = errors.New("brief: summary has no records")

// Service generates outreach briefs.
type Service struct {
	provider llm.Provider
	cfg      Config
}

func NewService(provider llm.Provider, cfg Config) *Service {
	return &Service{provider: provider, cfg: cfg}
}

// Generate requests a brief for sum.
func (s *Service) Generate(ctx context.Context, sum pipeline.Summary) (*Brief, error) {
	if sum.Total == 0 {
		return nil, ErrNoRecords
	}
	ctx = llm.WithPurpose(ctx, "outreach-brief")

	resp, err := s.provider.Generate(ctx, llm.Request{
		System:      systemPrompt,
		Messages:    llm.UserPrompt(buildUserMessage(sum, s.cfg)),
		Schema:      Schema,
		MaxTokens:   s.cfg.MaxTokens,
		Temperature: s.cfg.Temperature,
	})
	if err != nil {
		return nil, fmt.Errorf("outreach brief: %w", err)
	}

	var out Brief
	if err := json.Unmarshal(resp.Content, &out); err != nil {
		return nil, fmt.Errorf("parse outreach brief: %w", err)
	}
	out.Model = resp.Model
	if out.Caveats == nil {
		out.Caveats = []string{}
	}
	return &out, nil
}

// Text renders b as plain text for terminals.
func (b *Brief) Text() string {
	var sb strings.Builder
	sb.WriteString(b.Headline)
	sb.WriteString("\n")
	for i, p := range b.Priorities {
		fmt.Fprintf(&sb, "\n%d. [%s] %s\n   %s\n", i+1, p.Area, p.Action, p.Rationale)
	}
	if len(b.Caveats) > 0 {
		sb.WriteString("\n")
		for _, c := range b.Caveats {
			fmt.Fprintf(&sb, "! %s\n", c)
		}
	}
	return sb.String()
}
