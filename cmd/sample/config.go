package main

import (
	"fmt"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/kelseyhightower/envconfig"

	"github.com/bjaus/endpoint"
)

// Config is the sample service configuration. It is read from an optional
// TOML file, then overridden by SAMPLE_* environment variables.
type Config struct {
	Addr        string  `toml:"addr" envconfig:"ADDR"`
	Title       string  `toml:"title" envconfig:"TITLE"`
	Version     string  `toml:"version" envconfig:"VERSION"`
	Description string  `toml:"description" envconfig:"DESCRIPTION"`
	RateLimit   float64 `toml:"rate_limit" envconfig:"RATE_LIMIT"`
	RateBurst   int     `toml:"rate_burst" envconfig:"RATE_BURST"`

	RequestTimeout time.Duration `toml:"request_timeout" envconfig:"REQUEST_TIMEOUT"`
	MaxBodyBytes   int64         `toml:"max_body_bytes" envconfig:"MAX_BODY_BYTES"`

	Servers []ServerConfig `toml:"servers" ignored:"true"`
}

// ServerConfig is one entry of the document's servers list.
type ServerConfig struct {
	URL         string `toml:"url"`
	Description string `toml:"description"`
}

func defaultConfig() Config {
	return Config{
		Addr:      ":8080",
		Title:     "Todo API",
		Version:   "1.0.0",
		RateLimit: 50,
		RateBurst: 100,

		RequestTimeout: 30 * time.Second,
		MaxBodyBytes:   1 << 20,
	}
}

func loadConfig(path string) (Config, error) {
	cfg := defaultConfig()
	if path != "" {
		if _, err := toml.DecodeFile(path, &cfg); err != nil {
			return Config{}, fmt.Errorf("decoding %s: %w", path, err)
		}
	}
	if err := envconfig.Process("SAMPLE", &cfg); err != nil {
		return Config{}, fmt.Errorf("reading environment: %w", err)
	}
	return cfg, nil
}

// document is the initializer passed to Catalog.Build.
func (c Config) document() endpoint.Document {
	doc := endpoint.Document{
		Info: endpoint.Info{
			Title:       c.Title,
			Version:     c.Version,
			Description: c.Description,
		},
	}
	for _, s := range c.Servers {
		doc.Servers = append(doc.Servers, endpoint.Server{URL: s.URL, Description: s.Description})
	}
	return doc
}
