// Package llm provides centralized LLM configuration and client abstractions.
// The same client backs chat-based summarization and the optional
// embedding-based similarity scorer.
package llm

// Provider represents an LLM provider
type Provider string

// Provider constants define supported LLM providers
const (
	// ProviderGemini is the Google Gemini provider
	ProviderGemini Provider = "gemini"
	// ProviderOpenAI is the OpenAI provider (future)
	ProviderOpenAI Provider = "openai"
)

// Config holds the model configuration for the application
type Config struct {
	Provider Provider
	// ChatModel generates the user-facing change summaries.
	ChatModel string
	// EmbeddingModel backs the semantic similarity scorer.
	EmbeddingModel string
	// Temperature for summary generation. Low values keep severity judgments
	// consistent between runs.
	Temperature float32
	// MaxOutputTokens bounds the generated summary length.
	MaxOutputTokens int32
}

// DefaultConfig returns the default configuration (currently Gemini)
func DefaultConfig() *Config {
	return DefaultGeminiConfig()
}

// DefaultGeminiConfig returns the default Gemini configuration
func DefaultGeminiConfig() *Config {
	return &Config{
		Provider:        ProviderGemini,
		ChatModel:       "gemini-2.5-flash",
		EmbeddingModel:  "text-embedding-004",
		Temperature:     0.3,
		MaxOutputTokens: 512,
	}
}
