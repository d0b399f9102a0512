package llm

const groqBaseURL = "https://api.groq.com/openai"

// NewGroq returns a Completer for the Groq chat completions API, which is
// OpenAI-compatible.
func NewGroq(apiKey, model string) *OpenAICompatible {
	return NewOpenAICompatible(OpenAICompatibleConfig{
		BaseURL:    groqBaseURL,
		APIKey:     apiKey,
		Model:      model,
		AuthHeader: "Authorization",
		AuthPrefix: "Bearer ",
	})
}
