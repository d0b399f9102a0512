package llm

// NewCustomOpenAI returns a Completer for a self-hosted OpenAI-compatible
// endpoint (llama.cpp server, vLLM, a proxy, ...).
func NewCustomOpenAI(baseURL, apiKey, model string) *OpenAICompatible {
	return NewOpenAICompatible(OpenAICompatibleConfig{
		BaseURL:    baseURL,
		APIKey:     apiKey,
		Model:      model,
		AuthHeader: "Authorization",
		AuthPrefix: "Bearer ",
	})
}
