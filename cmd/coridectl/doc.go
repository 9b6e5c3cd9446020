// Package main implements coridectl, the Co'Ride carpooling API server and
// its operational tooling.
//
// Co'Ride is a ride-sharing service: drivers publish travels tagged with an
// activity, riders search them by city or departure point and join as
// passengers. The API serves JSON over REST with bearer-token
// authentication and a Redis read cache.
//
// # Architecture
//
//   - pkg/server: HTTP server and routing
//   - pkg/server/endpoints: REST API endpoint handlers
//   - pkg/server/middleware: bearer-token auth and cache-aside middleware
//   - pkg/model: database mappers and entity bindings
//   - pkg/token: bearer token signing and verification
//   - pkg/cache: Redis cache client
//   - pkg/db: database connection utilities
//   - pkg/config: configuration management
//
// # Quick Start
//
//	# Run database migrations
//	coridectl db migrate
//
//	# Start the server
//	coridectl server
//
// # Environment Variables
//
//   - DATABASE_URL: PostgreSQL connection string
//   - REDIS_URL: Redis address; caching is disabled when unset
//   - TOKEN_SECRET: HMAC secret for bearer tokens
//   - TOKEN_TTL: bearer token lifetime in seconds (default: 86400)
//   - PORT: server port (default: 3000)
//   - CORIDE_CONFIG_PATH: config file directory (default: /etc/coride/config)
//   - CORIDE_LOG_LEVEL: set to debug for SQL statement logging
package main
