package config

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	Discovery  DiscoveryConfig  `yaml:"discovery" mapstructure:"discovery"`
	Fetch      FetchConfig      `yaml:"fetch" mapstructure:"fetch"`
	Anthropic  AnthropicConfig  `yaml:"anthropic" mapstructure:"anthropic"`
	Embeddings EmbeddingsConfig `yaml:"embeddings" mapstructure:"embeddings"`
	Pipeline   PipelineConfig   `yaml:"pipeline" mapstructure:"pipeline"`
	Geo        GeoConfig        `yaml:"geo" mapstructure:"geo"`
	Server     ServerConfig     `yaml:"server" mapstructure:"server"`
	Log        LogConfig        `yaml:"log" mapstructure:"log"`
}

// DiscoveryConfig configures the article discovery stage.
type DiscoveryConfig struct {
	Providers   []string `yaml:"providers" mapstructure:"providers"`
	Window      string   `yaml:"window" mapstructure:"window"`
	MaxRecords  int      `yaml:"max_records" mapstructure:"max_records"`
	PerStateCap int      `yaml:"per_state_cap" mapstructure:"per_state_cap"`
}

// FetchConfig configures article page fetching.
type FetchConfig struct {
	Concurrency int     `yaml:"concurrency" mapstructure:"concurrency"`
	CharLimit   int     `yaml:"char_limit" mapstructure:"char_limit"`
	TimeoutSecs int     `yaml:"timeout_secs" mapstructure:"timeout_secs"`
	PerHostRate float64 `yaml:"per_host_rate" mapstructure:"per_host_rate"`
	Burst       int     `yaml:"burst" mapstructure:"burst"`
}

// AnthropicConfig holds Anthropic API settings for the extraction stage.
type AnthropicConfig struct {
	Key          string `yaml:"key" mapstructure:"key"`
	Model        string `yaml:"model" mapstructure:"model"`
	BatchSize    int    `yaml:"batch_size" mapstructure:"batch_size"`
	MaxTokens    int    `yaml:"max_tokens" mapstructure:"max_tokens"`
	ArticleChars int    `yaml:"article_chars" mapstructure:"article_chars"`
}

// EmbeddingsConfig holds Jina embeddings settings for the semantic
// duplicate pass. The pass runs only when enabled and a key is present.
type EmbeddingsConfig struct {
	Enabled   bool    `yaml:"enabled" mapstructure:"enabled"`
	Key       string  `yaml:"key" mapstructure:"key"`
	Model     string  `yaml:"model" mapstructure:"model"`
	BaseURL   string  `yaml:"base_url" mapstructure:"base_url"`
	Threshold float64 `yaml:"threshold" mapstructure:"threshold"`
}

// PipelineConfig configures scan behavior.
type PipelineConfig struct {
	Mode               string `yaml:"mode" mapstructure:"mode"`
	RelevanceThreshold int    `yaml:"relevance_threshold" mapstructure:"relevance_threshold"`
	FallbackTopN       int    `yaml:"fallback_top_n" mapstructure:"fallback_top_n"`
}

// GeoConfig points at an optional state alias table override file.
type GeoConfig struct {
	TablePath string `yaml:"table_path" mapstructure:"table_path"`
}

// ServerConfig configures the dashboard API server.
type ServerConfig struct {
	Port        int      `yaml:"port" mapstructure:"port"`
	CORSOrigins []string `yaml:"cors_origins" mapstructure:"cors_origins"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads configuration from file and environment. An empty path looks
// for an optional config.yaml in the working directory; a non-empty path
// must exist.
func Load(path string) (*Config, error) {
	v := viper.New()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	// Environment
	v.SetEnvPrefix("INVESTSCAN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("discovery.providers", []string{"gnews", "gdelt"})
	v.SetDefault("discovery.window", "7d")
	v.SetDefault("discovery.max_records", 120)
	v.SetDefault("discovery.per_state_cap", 50)
	v.SetDefault("fetch.concurrency", 8)
	v.SetDefault("fetch.char_limit", 8000)
	v.SetDefault("fetch.timeout_secs", 30)
	v.SetDefault("fetch.per_host_rate", 4.0)
	v.SetDefault("fetch.burst", 4)
	// Secrets default to empty so env-only values survive Unmarshal.
	v.SetDefault("anthropic.key", "")
	v.SetDefault("anthropic.model", "claude-haiku-4-5-20251001")
	v.SetDefault("anthropic.batch_size", 6)
	v.SetDefault("anthropic.max_tokens", 4096)
	v.SetDefault("anthropic.article_chars", 4000)
	v.SetDefault("embeddings.enabled", true)
	v.SetDefault("embeddings.key", "")
	v.SetDefault("embeddings.model", "jina-embeddings-v3")
	v.SetDefault("embeddings.base_url", "https://api.jina.ai/v1/embeddings")
	v.SetDefault("embeddings.threshold", 0.92)
	v.SetDefault("pipeline.mode", "heuristic")
	v.SetDefault("pipeline.relevance_threshold", 1)
	v.SetDefault("pipeline.fallback_top_n", 50)
	v.SetDefault("geo.table_path", "")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.cors_origins", []string{"*"})
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	// Read config file (optional unless named explicitly)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok || path != "" {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// Validate checks structural bounds for the given command mode ("scan",
// "serve", "export"). Missing API keys are not validated here; the pipeline
// surfaces those itself so heuristic runs stay keyless.
func (c *Config) Validate(mode string) error {
	var problems []string

	switch c.Pipeline.Mode {
	case "ai", "heuristic":
	default:
		problems = append(problems, "pipeline.mode must be ai or heuristic")
	}
	if c.Anthropic.BatchSize < 1 || c.Anthropic.BatchSize > 20 {
		problems = append(problems, "anthropic.batch_size must be between 1 and 20")
	}
	if c.Fetch.Concurrency < 1 || c.Fetch.Concurrency > 32 {
		problems = append(problems, "fetch.concurrency must be between 1 and 32")
	}
	if c.Pipeline.RelevanceThreshold < 0 {
		problems = append(problems, "pipeline.relevance_threshold must be >= 0")
	}
	if c.Pipeline.FallbackTopN < 0 {
		problems = append(problems, "pipeline.fallback_top_n must be >= 0")
	}
	if c.Embeddings.Threshold <= 0 || c.Embeddings.Threshold > 1 {
		problems = append(problems, "embeddings.threshold must be in (0, 1]")
	}

	switch mode {
	case "scan", "export":
	case "serve":
		if c.Server.Port <= 0 {
			problems = append(problems, "server.port must be > 0")
		}
	default:
		return eris.Errorf("config: unknown mode %q", mode)
	}

	if len(problems) > 0 {
		return eris.Errorf("config: %s", strings.Join(problems, "; "))
	}
	return nil
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
