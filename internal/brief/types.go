package brief

// Brief is an outreach plan for a district office, written by an LLM from
// run aggregates.
type Brief struct {
	Headline   string     `json:"headline"`
	Priorities []Priority `json:"priorities"`
	Caveats    []string   `json:"caveats"`
	Model      string     `json:"model"`
}

// Priority is one recommended outreach action.
type Priority struct {
	Area      string `json:"area"`
	Action    string `json:"action"`
	Rationale string `json:"rationale"`
}
