package config

import (
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	DefaultConfigPath = "/etc/coride/config"
	ConfigFileName    = "coride.yml"

	// DefaultTokenTTL is the bearer token lifetime in seconds.
	DefaultTokenTTL = 86400
)

// Config holds all Co'Ride API configuration settings
type Config struct {
	// DatabaseURL is the PostgreSQL connection string
	DatabaseURL string `yaml:"database_url"`

	// RedisURL is the address of the Redis cache ("host:port", comma-separated for clusters)
	RedisURL string `yaml:"redis_url"`

	// TokenSecret is the HMAC secret used to sign and verify bearer tokens
	TokenSecret string `yaml:"token_secret"`

	// TokenTTL is the bearer token lifetime in seconds
	TokenTTL int `yaml:"token_ttl"`

	// BindAddress is the interface the HTTP server listens on
	BindAddress string `yaml:"bind_address"`

	// Port is the HTTP server port
	Port string `yaml:"port"`

	// CacheKeyPrefix namespaces every cache key written by this instance
	CacheKeyPrefix string `yaml:"cache_key_prefix"`

	// sources tracks where each value came from
	sources map[string]string

	// configFilePath is the path to the config file
	configFilePath string
}

// newDefault returns a config with default values
func newDefault() *Config {
	return &Config{
		TokenTTL:       DefaultTokenTTL,
		BindAddress:    "0.0.0.0",
		Port:           "3000",
		CacheKeyPrefix: "coride",
		sources:        make(map[string]string),
	}
}

// Load loads configuration from file and environment variables.
// Environment variables take precedence over file values.
func Load() (*Config, error) {
	cfg := newDefault()

	for _, name := range attributeNames() {
		cfg.sources[name] = "default"
	}

	configPath := os.Getenv("CORIDE_CONFIG_PATH")
	if configPath == "" {
		configPath = DefaultConfigPath
	}
	cfg.configFilePath = filepath.Join(configPath, ConfigFileName)

	if data, err := os.ReadFile(cfg.configFilePath); err == nil {
		var fileConfig Config
		if err := yaml.Unmarshal(data, &fileConfig); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", cfg.configFilePath, err)
		}
		cfg.applyFileConfig(&fileConfig)
	}

	cfg.applyEnvConfig()

	return cfg, nil
}

func attributeNames() []string {
	return []string{
		"database_url", "redis_url", "token_secret", "token_ttl",
		"bind_address", "port", "cache_key_prefix",
	}
}

func (c *Config) applyFileConfig(file *Config) {
	if file.DatabaseURL != "" {
		c.DatabaseURL = file.DatabaseURL
		c.sources["database_url"] = "file"
	}
	if file.RedisURL != "" {
		c.RedisURL = file.RedisURL
		c.sources["redis_url"] = "file"
	}
	if file.TokenSecret != "" {
		c.TokenSecret = file.TokenSecret
		c.sources["token_secret"] = "file"
	}
	if file.TokenTTL != 0 {
		c.TokenTTL = file.TokenTTL
		c.sources["token_ttl"] = "file"
	}
	if file.BindAddress != "" {
		c.BindAddress = file.BindAddress
		c.sources["bind_address"] = "file"
	}
	if file.Port != "" {
		c.Port = file.Port
		c.sources["port"] = "file"
	}
	if file.CacheKeyPrefix != "" {
		c.CacheKeyPrefix = file.CacheKeyPrefix
		c.sources["cache_key_prefix"] = "file"
	}
}

func (c *Config) applyEnvConfig() {
	if val := os.Getenv("DATABASE_URL"); val != "" {
		c.DatabaseURL = val
		c.sources["database_url"] = "environment"
	}
	if val := os.Getenv("REDIS_URL"); val != "" {
		c.RedisURL = val
		c.sources["redis_url"] = "environment"
	}
	if val := os.Getenv("TOKEN_SECRET"); val != "" {
		c.TokenSecret = val
		c.sources["token_secret"] = "environment"
	}
	if val := os.Getenv("TOKEN_TTL"); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			c.TokenTTL = i
			c.sources["token_ttl"] = "environment"
		}
	}
	if val := os.Getenv("BIND_ADDRESS"); val != "" {
		c.BindAddress = val
		c.sources["bind_address"] = "environment"
	}
	if val := os.Getenv("PORT"); val != "" {
		c.Port = val
		c.sources["port"] = "environment"
	}
	if val := os.Getenv("CACHE_KEY_PREFIX"); val != "" {
		c.CacheKeyPrefix = val
		c.sources["cache_key_prefix"] = "environment"
	}
}

// ConfigFilePath returns the path to the config file
func (c *Config) ConfigFilePath() string {
	return c.configFilePath
}

// Source returns the source of a configuration attribute
func (c *Config) Source(name string) string {
	if c.sources == nil {
		return "default"
	}
	if s, ok := c.sources[name]; ok {
		return s
	}
	return "default"
}

// attributeValue returns the current value of a configuration attribute,
// with secrets redacted.
func (c *Config) attributeValue(name string) string {
	switch name {
	case "database_url":
		return redactURL(c.DatabaseURL)
	case "redis_url":
		return c.RedisURL
	case "token_secret":
		if c.TokenSecret != "" {
			return "[REDACTED]"
		}
		return ""
	case "token_ttl":
		return strconv.Itoa(c.TokenTTL)
	case "bind_address":
		return c.BindAddress
	case "port":
		return c.Port
	case "cache_key_prefix":
		return c.CacheKeyPrefix
	}
	return ""
}

// redactURL strips the password from a connection URL for display.
func redactURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.User == nil {
		return raw
	}
	if _, hasPassword := u.User.Password(); hasPassword {
		u.User = url.UserPassword(u.User.Username(), "xxxxx")
	}
	return u.String()
}

// FormatText renders the configuration attributes and their sources as an
// aligned table.
func (c *Config) FormatText() string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("Config file: %s\n\n", c.configFilePath))
	for _, name := range attributeNames() {
		b.WriteString(fmt.Sprintf("%-18s %-12s %s\n", name, c.Source(name), c.attributeValue(name)))
	}
	return b.String()
}

// FormatJSON renders the configuration attributes and their sources as JSON.
func (c *Config) FormatJSON() (string, error) {
	type attribute struct {
		Name   string `json:"name"`
		Value  string `json:"value"`
		Source string `json:"source"`
	}

	attributes := make([]attribute, 0, len(attributeNames()))
	for _, name := range attributeNames() {
		attributes = append(attributes, attribute{
			Name:   name,
			Value:  c.attributeValue(name),
			Source: c.Source(name),
		})
	}

	data, err := json.MarshalIndent(attributes, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// TokenTTLDuration returns the bearer token TTL as a duration
func (c *Config) TokenTTLDuration() time.Duration {
	return time.Duration(c.TokenTTL) * time.Second
}

// Addr returns the bind address and port joined for http.Server
func (c *Config) Addr() string {
	return c.BindAddress + ":" + c.Port
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.DatabaseURL == "" {
		return fmt.Errorf("database_url is required (set DATABASE_URL)")
	}
	if _, err := url.Parse(c.DatabaseURL); err != nil {
		return fmt.Errorf("invalid database_url: %w", err)
	}
	if c.TokenSecret == "" {
		return fmt.Errorf("token_secret is required (set TOKEN_SECRET)")
	}
	if c.TokenTTL <= 0 {
		return fmt.Errorf("token_ttl must be positive, got %d", c.TokenTTL)
	}
	if _, err := strconv.Atoi(c.Port); err != nil {
		return fmt.Errorf("invalid port: %s", c.Port)
	}
	return nil
}

// RedisAddrs splits the configured Redis URL into individual addresses
func (c *Config) RedisAddrs() []string {
	if c.RedisURL == "" {
		return nil
	}
	parts := strings.Split(c.RedisURL, ",")
	addrs := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			addrs = append(addrs, p)
		}
	}
	return addrs
}
