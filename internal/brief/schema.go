package brief

import "github.com/abhisek/jalur/internal/llm"

// Schema is the response contract for outreach briefs.
var Schema = &llm.Schema{
	Name:        "outreach-brief",
	Description: "Prioritized outreach plan for children out of school",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"headline": map[string]any{
				"type":        "string",
				"description": "One sentence naming the most pressing finding",
			},
			"priorities": map[string]any{
				"type":     "array",
				"minItems": 1,
				"maxItems": 5,
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"area": map[string]any{
							"type":        "string",
							"description": "District or group the action targets",
						},
						"action": map[string]any{
							"type":        "string",
							"description": "Concrete step for the education office",
						},
						"rationale": map[string]any{
							"type":        "string",
							"description": "Which numbers support this step",
						},
					},
					"required":             []any{"area", "action", "rationale"},
					"additionalProperties": false,
				},
			},
			"caveats": map[string]any{
				"type":        "array",
				"items":       map[string]any{"type": "string"},
				"description": "Data quality issues that limit the plan",
			},
		},
		"required":             []any{"headline", "priorities", "caveats"},
		"additionalProperties": false,
	},
}
