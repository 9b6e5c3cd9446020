// Package cache provides the key/value client used by the cache-aside
// middleware.
//
// Two implementations exist: a Redis-backed Handle for deployments and an
// in-process Memory cache for tests. Both satisfy the Cache interface:
// get, set, and invalidation of a whole key family by prefix.
//
// # Redis
//
//	c, err := cache.New(
//	    cache.WithAddr(cfg.RedisURL),
//	    cache.WithTTL(0), // explicit invalidation only
//	)
//
// The cache is a performance optimization, never a correctness dependency:
// callers must treat every error from this package as a miss.
package cache
