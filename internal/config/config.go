// Package config loads service configuration from config.yaml, ENRICH_*
// environment variables and the provider credential variables.
package config

import (
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"

	"github.com/jonathan/company-enricher/internal/llm"
)

// Cache drivers.
const (
	CacheMemory   = "memory"
	CacheSQLite   = "sqlite"
	CachePostgres = "postgres"
)

// Config is the full service configuration.
type Config struct {
	Server ServerConfig `yaml:"server" mapstructure:"server"`
	LLM    LLMConfig    `yaml:"llm" mapstructure:"llm"`
	Fetch  FetchConfig  `yaml:"fetch" mapstructure:"fetch"`
	Enrich EnrichConfig `yaml:"enrich" mapstructure:"enrich"`
	Cache  CacheConfig  `yaml:"cache" mapstructure:"cache"`
	Log    LogConfig    `yaml:"log" mapstructure:"log"`
	Batch  BatchConfig  `yaml:"batch" mapstructure:"batch"`
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Port             int `yaml:"port" mapstructure:"port"`
	ReadTimeoutSecs  int `yaml:"read_timeout_secs" mapstructure:"read_timeout_secs"`
	WriteTimeoutSecs int `yaml:"write_timeout_secs" mapstructure:"write_timeout_secs"`
}

// LLMConfig selects the model provider and holds its credentials.
type LLMConfig struct {
	Provider        string `yaml:"provider" mapstructure:"provider"`
	Model           string `yaml:"model" mapstructure:"model"`
	BaseURL         string `yaml:"base_url" mapstructure:"base_url"`
	TimeoutSecs     int    `yaml:"timeout_secs" mapstructure:"timeout_secs"`
	MaxRetries      int    `yaml:"max_retries" mapstructure:"max_retries"`
	GeminiAPIKey    string `yaml:"-" mapstructure:"gemini_api_key"`
	AnthropicAPIKey string `yaml:"-" mapstructure:"anthropic_api_key"`
	OpenAIAPIKey    string `yaml:"-" mapstructure:"openai_api_key"`
}

// FetchConfig configures page retrieval.
type FetchConfig struct {
	TimeoutSecs int  `yaml:"timeout_secs" mapstructure:"timeout_secs"`
	MaxRetries  int  `yaml:"max_retries" mapstructure:"max_retries"`
	UseBrowser  bool `yaml:"use_browser" mapstructure:"use_browser"`
}

// EnrichConfig configures model output handling.
type EnrichConfig struct {
	StrictSchema bool `yaml:"strict_schema" mapstructure:"strict_schema"`
}

// CacheConfig selects the enrichment cache backend.
type CacheConfig struct {
	Driver string `yaml:"driver" mapstructure:"driver"`
	DSN    string `yaml:"dsn" mapstructure:"dsn"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// BatchConfig configures the batch command.
type BatchConfig struct {
	Concurrency int `yaml:"concurrency" mapstructure:"concurrency"`
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	v.SetEnvPrefix("ENRICH")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Credentials keep their conventional unprefixed names.
	_ = v.BindEnv("llm.gemini_api_key", "ENRICH_LLM_GEMINI_API_KEY", "GEMINI_API_KEY")
	_ = v.BindEnv("llm.anthropic_api_key", "ENRICH_LLM_ANTHROPIC_API_KEY", "ANTHROPIC_API_KEY")
	_ = v.BindEnv("llm.openai_api_key", "ENRICH_LLM_OPENAI_API_KEY", "OPENAI_API_KEY")
	_ = v.BindEnv("cache.dsn", "ENRICH_CACHE_DSN", "DATABASE_URL")

	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout_secs", 30)
	v.SetDefault("server.write_timeout_secs", 120)
	v.SetDefault("llm.provider", string(llm.ProviderGemini))
	v.SetDefault("llm.model", "")
	v.SetDefault("llm.base_url", "")
	v.SetDefault("llm.timeout_secs", 60)
	v.SetDefault("llm.max_retries", 0)
	v.SetDefault("fetch.timeout_secs", 10)
	v.SetDefault("fetch.max_retries", 0)
	v.SetDefault("fetch.use_browser", false)
	v.SetDefault("enrich.strict_schema", true)
	v.SetDefault("cache.driver", CacheSQLite)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("batch.concurrency", 3)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}
	if cfg.Cache.DSN == "" && cfg.Cache.Driver == CacheSQLite {
		cfg.Cache.DSN = "enrichment_cache.db"
	}

	return &cfg, nil
}

// Validate checks that the configuration has usable values.
func (c *Config) Validate() error {
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return eris.Errorf("config error: server.port %d out of range", c.Server.Port)
	}
	switch c.Cache.Driver {
	case CacheMemory, CacheSQLite:
	case CachePostgres:
		if c.Cache.DSN == "" {
			return eris.Errorf("config error: cache.dsn (or DATABASE_URL) is required for the postgres driver")
		}
	default:
		return eris.Errorf("config error: unknown cache.driver %q", c.Cache.Driver)
	}
	if c.LLM.MaxRetries < 0 || c.Fetch.MaxRetries < 0 {
		return eris.Errorf("config error: max_retries must be non-negative")
	}
	if c.Batch.Concurrency < 1 {
		return eris.Errorf("config error: batch.concurrency must be at least 1")
	}
	return nil
}

// ProviderName returns the selected model provider.
func (c *LLMConfig) ProviderName() llm.Provider {
	return llm.ParseProvider(c.Provider)
}

// APIKey returns the credential for the selected provider, or "" when unset.
func (c *LLMConfig) APIKey() string {
	switch c.ProviderName() {
	case llm.ProviderOpenAI:
		return c.OpenAIAPIKey
	case llm.ProviderAnthropic:
		return c.AnthropicAPIKey
	default:
		return c.GeminiAPIKey
	}
}

// ModelConfig builds the llm configuration for the selected provider. A
// configured model overrides the standard tier.
func (c *LLMConfig) ModelConfig() *llm.Config {
	cfg := llm.ConfigFor(c.ProviderName())
	if c.Model != "" {
		cfg = cfg.WithModel(llm.TierStandard, c.Model)
	}
	cfg.BaseURL = c.BaseURL
	return cfg
}

// Timeout returns the model call bound.
func (c *LLMConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSecs) * time.Second
}

// Timeout returns the page fetch bound.
func (c *FetchConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSecs) * time.Second
}
