// Package llm is a small provider-neutral client for structured JSON
// generation. It is used for the optional outreach brief only; placement
// decisions never depend on it.
package llm

import (
	"context"
	"encoding/json"
)

// Provider generates one response for a request.
type Provider interface {
	// Generate sends req and returns the model output. When req.Schema is
	// set, the content has already been validated against it.
	Generate(ctx context.Context, req Request) (*Response, error)

	// ModelID returns the configured model.
	ModelID() string
}

// Request is a single generation call.
type Request struct {
	System    string
	Messages  []Message
	Schema    *Schema // nil requests free text
	MaxTokens int
	// Temperature is left to the provider default when zero.
	Temperature float64
}

// Message is one turn of the conversation.
type Message struct {
	Role    Role
	Content string
}

// Role identifies who sent a Message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// UserPrompt builds the usual single-message conversation.
func UserPrompt(text string) []Message {
	return []Message{{Role: RoleUser, Content: text}}
}

// Schema is a named JSON Schema the response must satisfy.
type Schema struct {
	// Name is kebab-case, e.g. "outreach-brief". It doubles as the
	// validator cache key, so two schemas must not share a name.
	Name        string
	Description string
	Definition  map[string]any
}

// Response is the model output.
type Response struct {
	Content json.RawMessage
	Usage   Usage
	Model   string
	// StopReason is "end" or "max_tokens".
	StopReason string
}

// Usage counts tokens for one call.
type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}
