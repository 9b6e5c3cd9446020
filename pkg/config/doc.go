// Package config provides configuration management for the Co'Ride API.
//
// Configuration is resolved from three layers, lowest precedence first:
// built-in defaults, an optional YAML file, and environment variables.
//
// # Configuration File
//
// The file is looked up at /etc/coride/config/coride.yml by default; the
// directory can be changed with CORIDE_CONFIG_PATH.
//
//	database_url: postgres://coride@localhost/coride?sslmode=disable
//	redis_url: localhost:6379
//	token_ttl: 86400
//
// # Environment Variables
//
//   - DATABASE_URL: PostgreSQL connection string (required)
//   - REDIS_URL: Redis cache address; caching is disabled when unset
//   - TOKEN_SECRET: HMAC secret for bearer tokens (required)
//   - TOKEN_TTL: Token lifetime in seconds
//   - BIND_ADDRESS, PORT: HTTP listen address
//   - CACHE_KEY_PREFIX: Namespace for cache keys
//
// Each attribute remembers its source ("default", "file" or "environment"),
// retrievable with Config.Source.
package config
