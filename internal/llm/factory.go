package llm

import (
	"fmt"
	"os"
)

// NewProvider creates a generation provider based on the given provider type
// and model. Supported provider types: "ollama", "openai".
func NewProvider(providerType string, model string, ollamaHost string) (Provider, error) {
	switch providerType {
	case "ollama":
		host := ollamaHost
		if host == "" {
			host = os.Getenv("OLLAMA_HOST")
		}
		if host == "" {
			host = "http://localhost:11434"
		}
		return NewOllamaProvider(host, model), nil

	case "openai":
		apiKey := os.Getenv("OPENAI_API_KEY")
		if apiKey == "" {
			return nil, fmt.Errorf("OPENAI_API_KEY environment variable is not set")
		}
		return NewOpenAIProvider(apiKey, model), nil

	default:
		return nil, fmt.Errorf("unsupported provider type: %s", providerType)
	}
}
