package brief

// Config holds brief generation settings.
type Config struct {
	MaxTokens   int
	Temperature float64
	// Locale selects the language of the brief: "id" or "en".
	Locale string
	// TopN caps each distribution sent to the model.
	TopN int
}

func DefaultConfig() Config {
	return Config{
		MaxTokens:   1024,
		Temperature: 0.3,
		Locale:      "id",
		TopN:        8,
	}
}
