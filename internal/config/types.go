package config

// ProviderType identifies a generation backend provider.
type ProviderType string

const (
	ProviderOllama ProviderType = "ollama"
	ProviderOpenAI ProviderType = "openai"
)

// Config is the top-level replybot configuration, corresponding to .replybot.yml.
type Config struct {
	Provider   ProviderType `yaml:"provider" koanf:"provider"`
	Model      string       `yaml:"model" koanf:"model"`
	OllamaHost string       `yaml:"ollama_host" koanf:"ollama_host"`

	SlackToken    string `yaml:"slack_token" koanf:"slack_token"`
	SigningSecret string `yaml:"signing_secret" koanf:"signing_secret"`

	Port                  int `yaml:"port" koanf:"port"`
	CacheSize             int `yaml:"cache_size" koanf:"cache_size"`
	GenerationTimeoutSecs int `yaml:"generation_timeout_secs" koanf:"generation_timeout_secs"`
	ReplayWindowSecs      int `yaml:"replay_window_secs" koanf:"replay_window_secs"`
}
