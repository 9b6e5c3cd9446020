// Package server provides the HTTP server for the Co'Ride API.
//
// This package implements the core HTTP server that handles all REST API
// requests. It uses gorilla/mux for routing and provides middleware for
// authentication and response caching.
//
// # Server Setup
//
//	srv := server.NewServer(cfg, db, cacheClient, tokens)
//	endpoints.RegisterAll(srv)
//	if err := srv.Start(); err != nil {
//	    log.Fatal(err)
//	}
//
// # Components
//
// The Server struct holds the process-scoped resources every request shares:
//
//   - Router: HTTP request router (API is the /api/v1 subrouter)
//   - DB: database connection pool
//   - Cache: cache client, nil when caching is disabled
//   - Tokens: bearer token signer/verifier
//
// Both DB and Cache are initialized once at startup and passed explicitly,
// never reached for as ambient singletons, so tests can substitute fakes.
//
// # Request Pipeline
//
// request -> auth middleware -> cache-aside middleware (reads) -> handler
// -> model -> database; mutating handlers invalidate their route family's
// cache entries after success.
package server
