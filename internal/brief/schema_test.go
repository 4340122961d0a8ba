package brief

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/jalur/internal/llm"
)

// The mock provider checks its scripted content against Request.Schema, so
// a Generate call exercises the same validation a real provider applies.
func TestSchema(t *testing.T) {
	tests := []struct {
		name    string
		content string
		valid   bool
	}{
		{"valid brief", validBrief, true},
		{"caveats present", `{"headline":"h","priorities":[{"area":"Cisarua","action":"a","rationale":"r"}],"caveats":["3 rows lack a birth date"]}`, true},
		{"missing headline", `{"priorities":[{"area":"Ciawi","action":"a","rationale":"r"}],"caveats":[]}`, false},
		{"priority is a string", `{"headline":"h","priorities":["visit Ciawi"],"caveats":[]}`, false},
		{"priority lacks rationale", `{"headline":"h","priorities":[{"area":"Ciawi","action":"a"}],"caveats":[]}`, false},
		{"no priorities", `{"headline":"h","priorities":[],"caveats":[]}`, false},
		{"unknown field", `{"headline":"h","priorities":[{"area":"x","action":"a","rationale":"r"}],"caveats":[],"score":3}`, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := llm.NewMockProvider(llm.MockResponse{Content: json.RawMessage(tt.content)})
			_, err := mock.Generate(context.Background(), llm.Request{Schema: Schema})
			if tt.valid {
				require.NoError(t, err)
				return
			}
			var invalid *llm.ErrInvalidResponse
			require.ErrorAs(t, err, &invalid)
			assert.Equal(t, "outreach-brief", invalid.Schema)
		})
	}
}
