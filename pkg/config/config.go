package config

import (
	"fmt"
	"os"
	"time"

	"github.com/creasty/defaults"
	"gopkg.in/yaml.v3"

	xutil "StockAdvisor/pkg/util"
)

type Config struct {
	Environment string `yaml:"environment" default:"development"`
	Server      struct {
		Port            int           `yaml:"port" default:"8080"`
		ReadTimeout     time.Duration `yaml:"read_timeout" default:"10s"`
		WriteTimeout    time.Duration `yaml:"write_timeout" default:"30s"`
		ShutdownTimeout time.Duration `yaml:"shutdown_timeout" default:"10s"`
		CORS            bool          `yaml:"cors" default:"true"`
		CORSOrigins     []string      `yaml:"cors_origins"`
	} `yaml:"server"`
	Log struct {
		Level  string `yaml:"level" default:"info"`
		Format string `yaml:"format" default:"json"`
		Output string `yaml:"output" default:"stdout"`
		// Digest publishes aggregated warnings and errors to Kafka.
		Digest struct {
			Enabled    bool          `yaml:"enabled"`
			Brokers    []string      `yaml:"brokers"`
			Topic      string        `yaml:"topic" default:"stockadvisor.log-digest"`
			Interval   time.Duration `yaml:"interval" default:"30s"`
			MaxEntries int           `yaml:"max_entries" default:"100"`
		} `yaml:"digest"`
	} `yaml:"log"`
	Metrics struct {
		Enabled bool   `yaml:"enabled" default:"true"`
		Path    string `yaml:"path" default:"/metrics"`
	} `yaml:"metrics"`
	AlphaVantage struct {
		BaseURL           string        `yaml:"base_url" default:"https://www.alphavantage.co/query"`
		APIKey            string        `yaml:"api_key"`
		Timeout           time.Duration `yaml:"timeout" default:"10s"`
		RequestsPerMinute int           `yaml:"requests_per_minute" default:"75"`
		CacheTTL          time.Duration `yaml:"cache_ttl" default:"60s"`
	} `yaml:"alphavantage"`
	Cache struct {
		Backend        string        `yaml:"backend" default:"memory"`
		DefaultTTL     time.Duration `yaml:"default_ttl" default:"60s"`
		ExplanationTTL time.Duration `yaml:"explanation_ttl" default:"6h"`
	} `yaml:"cache"`
	Redis struct {
		Addr     string `yaml:"addr" default:"localhost:6379"`
		Password string `yaml:"password"`
		DB       int    `yaml:"db"`
		Prefix   string `yaml:"prefix" default:"stockadvisor"`
	} `yaml:"redis"`
	LLM struct {
		APIKey      string        `yaml:"api_key"`
		BaseURL     string        `yaml:"base_url"`
		Model       string        `yaml:"model" default:"gpt-4o-mini"`
		Temperature float64       `yaml:"temperature" default:"0.4"`
		MaxTokens   int           `yaml:"max_tokens" default:"280"`
		Timeout     time.Duration `yaml:"timeout" default:"20s"`
	} `yaml:"llm"`
	Watchlist struct {
		Store  string `yaml:"store" default:"memory"`
		Backup struct {
			Enabled    bool          `yaml:"enabled"`
			Type       string        `yaml:"type" default:"none"`
			WebhookURL string        `yaml:"webhook_url"`
			AuthToken  string        `yaml:"auth_token"`
			Timeout    time.Duration `yaml:"timeout" default:"5s"`
			Kafka      struct {
				Brokers      []string      `yaml:"brokers"`
				Topic        string        `yaml:"topic" default:"watchlist.backup"`
				RequiredAcks int           `yaml:"required_acks" default:"1"`
				Compression  string        `yaml:"compression" default:"snappy"`
				WriteTimeout time.Duration `yaml:"write_timeout" default:"5s"`
			} `yaml:"kafka"`
		} `yaml:"backup"`
	} `yaml:"watchlist"`
	Screener struct {
		DefaultSymbols []string `yaml:"default_symbols" default:"[\"AAPL\",\"MSFT\",\"GOOGL\",\"AMZN\",\"NVDA\",\"TSLA\"]"`
	} `yaml:"screener"`
	RateLimit struct {
		Explain struct {
			Capacity     float64 `yaml:"capacity" default:"10"`
			RefillPerSec float64 `yaml:"refill_per_sec" default:"0.5"`
		} `yaml:"explain"`
	} `yaml:"ratelimit"`
}

// Load reads and parses a YAML configuration file. Missing keys take their
// struct-tag defaults.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	return Parse(b)
}

// Parse applies defaults, decodes YAML bytes over them and validates.
func Parse(b []byte) (*Config, error) {
	var c Config
	if err := defaults.Set(&c); err != nil {
		return nil, fmt.Errorf("apply defaults: %w", err)
	}
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	// Validate required fields
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return &c, nil
}

// LoadWithEnv loads config from YAML and overrides with environment variables.
func LoadWithEnv(path string) (*Config, error) {
	c, err := Load(path)
	if err != nil {
		return nil, err
	}

	c.applyEnv(os.Getenv)

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return c, nil
}

func (c *Config) applyEnv(getenv func(string) string) {
	if v := getenv("ALPHA_VANTAGE_KEY"); v != "" {
		c.AlphaVantage.APIKey = v
	}
	if v := getenv("OPENAI_KEY"); v != "" {
		c.LLM.APIKey = v
	}
	if v := getenv("REDIS_ADDR"); v != "" {
		c.Redis.Addr = v
	}
	if v := getenv("WATCHLIST_WEBHOOK_URL"); v != "" {
		c.Watchlist.Backup.WebhookURL = v
	}
	if v := getenv("LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
	if v := getenv("PORT"); v != "" {
		c.Server.Port = xutil.ParseIntDefault(v, c.Server.Port)
	}
}

// Validate checks if the configuration is valid. An empty Alpha Vantage key
// is allowed: market data calls then fail with a configuration error.
func (c *Config) Validate() error {
	if c.Environment == "" {
		return fmt.Errorf("environment is required")
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be in 1..65535, got %d", c.Server.Port)
	}
	if c.Log.Digest.Enabled && len(c.Log.Digest.Brokers) == 0 {
		return fmt.Errorf("log.digest.brokers cannot be empty")
	}
	switch c.Cache.Backend {
	case "memory", "redis":
	default:
		return fmt.Errorf("cache.backend must be 'memory' or 'redis', got '%s'", c.Cache.Backend)
	}
	switch c.Watchlist.Store {
	case "memory", "redis":
	default:
		return fmt.Errorf("watchlist.store must be 'memory' or 'redis', got '%s'", c.Watchlist.Store)
	}
	switch c.Watchlist.Backup.Type {
	case "none", "webhook":
	case "kafka":
		if c.Watchlist.Backup.Enabled && len(c.Watchlist.Backup.Kafka.Brokers) == 0 {
			return fmt.Errorf("watchlist.backup.kafka.brokers cannot be empty")
		}
	default:
		return fmt.Errorf("watchlist.backup.type must be 'none', 'webhook' or 'kafka', got '%s'", c.Watchlist.Backup.Type)
	}
	if c.AlphaVantage.RequestsPerMinute <= 0 {
		return fmt.Errorf("alphavantage.requests_per_minute must be positive")
	}
	if c.Cache.ExplanationTTL <= 0 || c.Cache.DefaultTTL <= 0 {
		return fmt.Errorf("cache ttls must be positive")
	}
	return nil
}

// UsesRedis reports whether any component is configured with the redis backend.
func (c *Config) UsesRedis() bool {
	return c.Cache.Backend == "redis" || c.Watchlist.Store == "redis"
}
