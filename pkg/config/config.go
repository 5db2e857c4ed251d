package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Environment string `yaml:"environment"`
	Server      struct {
		Port            int           `yaml:"port"`
		ReadTimeout     time.Duration `yaml:"read_timeout"`
		WriteTimeout    time.Duration `yaml:"write_timeout"`
		ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	} `yaml:"server"`
	Metrics struct {
		Enabled bool   `yaml:"enabled"`
		Path    string `yaml:"path"`
	} `yaml:"metrics"`
	Logging struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"`
		Output string `yaml:"output"`
	} `yaml:"logging"`
	Jupiter struct {
		TokenListURL string        `yaml:"token_list_url"`
		PriceURL     string        `yaml:"price_url"`
		QuoteURL     string        `yaml:"quote_url"`
		Timeout      time.Duration `yaml:"timeout"`
		CatalogTTL   time.Duration `yaml:"catalog_ttl"`
		PriceTTL     time.Duration `yaml:"price_ttl"`
		RateLimit    struct {
			Capacity     float64 `yaml:"capacity"`
			RefillPerSec float64 `yaml:"refill_per_sec"`
		} `yaml:"rate_limit"`
	} `yaml:"jupiter"`
	Cache struct {
		Backend string `yaml:"backend"` // memory, redis or layered
		MaxSize int    `yaml:"max_size"`
		Redis   struct {
			Host     string `yaml:"host"`
			Port     int    `yaml:"port"`
			Password string `yaml:"password"`
			DB       int    `yaml:"db"`
			Prefix   string `yaml:"prefix"`
		} `yaml:"redis"`
	} `yaml:"cache"`
	Insight struct {
		Enabled bool          `yaml:"enabled"`
		BaseURL string        `yaml:"base_url"`
		APIKey  string        `yaml:"api_key"`
		Models  []string      `yaml:"models"`
		Timeout time.Duration `yaml:"timeout"`
	} `yaml:"insight"`
}

// Load reads and parses a YAML configuration file.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var c Config
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

	// Override with environment variables
	if v := os.Getenv("JUPITER_TOKEN_LIST_URL"); v != "" {
		c.Jupiter.TokenListURL = v
	}
	if v := os.Getenv("JUPITER_PRICE_URL"); v != "" {
		c.Jupiter.PriceURL = v
	}
	if v := os.Getenv("JUPITER_QUOTE_URL"); v != "" {
		c.Jupiter.QuoteURL = v
	}
	if v := os.Getenv("OPENROUTER_API_KEY"); v != "" {
		c.Insight.APIKey = v
	}
	if v := os.Getenv("REDIS_HOST"); v != "" {
		c.Cache.Redis.Host = v
	}
	if v := os.Getenv("REDIS_PASSWORD"); v != "" {
		c.Cache.Redis.Password = v
	}

	return c, nil
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Environment == "" {
		return fmt.Errorf("environment is required")
	}
	if c.Jupiter.TokenListURL == "" {
		return fmt.Errorf("jupiter.token_list_url is required")
	}
	if c.Jupiter.PriceURL == "" {
		return fmt.Errorf("jupiter.price_url is required")
	}
	if c.Jupiter.QuoteURL == "" {
		return fmt.Errorf("jupiter.quote_url is required")
	}
	switch c.Cache.Backend {
	case "", "memory", "redis", "layered":
	default:
		return fmt.Errorf("cache.backend must be 'memory', 'redis' or 'layered', got '%s'", c.Cache.Backend)
	}
	if c.Insight.Enabled && c.Insight.APIKey == "" {
		return fmt.Errorf("insight.api_key is required when insight is enabled")
	}
	return nil
}
