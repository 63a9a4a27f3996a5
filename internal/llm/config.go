package llm

// Config holds the model selection for the provider clients.
type Config struct {
	// AnnotateModel generates the structured job/candidate analysis.
	AnnotateModel string
	// EmbedModel produces text embeddings for semantic scoring.
	EmbedModel string
}

// DefaultConfig returns the default Gemini model configuration.
func DefaultConfig() *Config {
	return &Config{
		AnnotateModel: "gemini-2.5-flash",
		EmbedModel:    "text-embedding-004",
	}
}
