package config

// DefaultConfig returns a Config with sensible defaults.
// Credentials have no defaults and must come from the config file or environment.
func DefaultConfig() *Config {
	return &Config{
		Provider:              ProviderOllama,
		Model:                 "llama3.2",
		OllamaHost:            "http://localhost:11434",
		Port:                  5000,
		CacheSize:             1024,
		GenerationTimeoutSecs: 30,
		ReplayWindowSecs:      300,
	}
}
