package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds everything the page tools need at startup.
type Config struct {
	LogMode      string        `yaml:"log_mode"`
	FetchTimeout time.Duration `yaml:"fetch_timeout"`
	Site         SiteConfig    `yaml:"site"`
	HTTP         HTTPConfig    `yaml:"http"`
	SSE          SSEConfig     `yaml:"sse"`
}

// SiteConfig describes where pages live.
type SiteConfig struct {
	// BaseURL serves page payloads at BaseURL + PagePrefix + URI.
	BaseURL    string `yaml:"base_url"`
	PagePrefix string `yaml:"page_prefix"`
	// ContentServerURL enables the getDocument tool when set.
	ContentServerURL string   `yaml:"content_server_url"`
	MimeTypes        []string `yaml:"mime_types"`
	Groups           []string `yaml:"groups"`
	Dimension        string   `yaml:"dimension"`
}

type HTTPConfig struct {
	Endpoint string `yaml:"endpoint"`
}

type SSEConfig struct {
	KeepaliveInterval time.Duration `yaml:"keepalive_interval"`
	BufferSize        int           `yaml:"buffer_size"`
	ClientTimeout     time.Duration `yaml:"client_timeout"`
}

func (c *Config) defaults() {
	if c.LogMode == "" {
		c.LogMode = "dev"
	}
	if c.FetchTimeout <= 0 {
		c.FetchTimeout = 15 * time.Second
	}
	if c.Site.PagePrefix == "" {
		c.Site.PagePrefix = "/api/page"
	}
	if len(c.Site.MimeTypes) == 0 {
		c.Site.MimeTypes = []string{"application/x-stela-page"}
	}
	if c.Site.Dimension == "" {
		c.Site.Dimension = "eo"
	}
	if c.HTTP.Endpoint == "" {
		c.HTTP.Endpoint = "/mcp"
	}
	if c.SSE.KeepaliveInterval <= 0 {
		c.SSE.KeepaliveInterval = 30 * time.Second
	}
	if c.SSE.BufferSize <= 0 {
		c.SSE.BufferSize = 100
	}
	if c.SSE.ClientTimeout <= 0 {
		c.SSE.ClientTimeout = 60 * time.Second
	}
}

// Default returns a config with every default applied.
func Default() *Config {
	cfg := &Config{}
	cfg.defaults()
	return cfg
}

// Load reads a YAML config file and fills in defaults. An empty path yields
// Default().
func Load(path string) (*Config, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	return Parse(data)
}

// Parse decodes YAML config data and fills in defaults.
func Parse(data []byte) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	cfg.defaults()
	return cfg, nil
}
