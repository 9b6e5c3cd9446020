package middleware

import (
	"bytes"
	"context"
	"log"
	"net/http"

	"github.com/gorilla/mux"

	"coride/pkg/cache"
)

// CacheAside wraps read handlers with a read-through response cache and
// mutating handlers with a family-level invalidation step.
//
// Each cacheable route family cycles through miss -> populating -> populated
// -> invalidated: a read miss lets the handler run and stores its successful
// response; a later mutation on the family removes every stored entry so the
// next read recomputes. The cache is never a correctness dependency: any
// cache failure is logged and the request proceeds as if the entry were
// missing.
type CacheAside struct {
	Cache  cache.Cache
	Prefix string
}

// NewCacheAside creates the caching middleware. A nil cache client disables
// caching entirely; both middlewares become pass-throughs.
func NewCacheAside(c cache.Cache, prefix string) *CacheAside {
	return &CacheAside{Cache: c, Prefix: prefix}
}

// familyPrefix is the key prefix shared by every entry of a route family.
func (c *CacheAside) familyPrefix(family string) string {
	return c.Prefix + ":view:" + family + ":"
}

// cacheKey derives the entry key from the normalized route: path plus the
// canonically encoded query string. url.Values.Encode sorts by key, so two
// requests differing only in parameter order share an entry.
func (c *CacheAside) cacheKey(family string, r *http.Request) string {
	key := c.familyPrefix(family) + r.URL.Path
	if query := r.URL.Query().Encode(); query != "" {
		key += "?" + query
	}
	return key
}

// ReadThrough returns middleware that serves GET responses from the cache
// when possible and populates the cache after a successful read.
func (c *CacheAside) ReadThrough(family string) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if c.Cache == nil || r.Method != http.MethodGet {
				next.ServeHTTP(w, r)
				return
			}

			key := c.cacheKey(family, r)

			body, err := c.Cache.Get(r.Context(), key)
			if err == nil {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusOK)
				w.Write(body)
				return
			}
			if err != cache.ErrKeyNotFound {
				log.Printf("cache read failed for %s, passing through: %v", key, err)
			}

			recorder := newResponseRecorder(w)
			next.ServeHTTP(recorder, r)

			if recorder.status >= 200 && recorder.status < 300 {
				if err := c.Cache.Set(r.Context(), key, recorder.body.Bytes()); err != nil {
					log.Printf("cache populate failed for %s: %v", key, err)
				}
			}
		})
	}
}

// Invalidate returns middleware that removes every cache entry of the given
// route families after the wrapped mutation succeeds. Invalidation failures
// never roll back the mutation; the window until the next successful
// invalidation is the eventual-consistency window callers accept.
func (c *CacheAside) Invalidate(families ...string) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if c.Cache == nil {
				next.ServeHTTP(w, r)
				return
			}

			recorder := newResponseRecorder(w)
			next.ServeHTTP(recorder, r)

			if recorder.status >= 200 && recorder.status < 300 {
				// The mutation is already durable; detach from the request
				// context so a client disconnect cannot skip invalidation.
				ctx := context.WithoutCancel(r.Context())
				for _, family := range families {
					if err := c.Cache.DelPrefix(ctx, c.familyPrefix(family)); err != nil {
						log.Printf("cache invalidation failed for family %s: %v", family, err)
					}
				}
			}
		})
	}
}

// responseRecorder forwards writes to the client while keeping a copy of the
// status and body for the cache.
type responseRecorder struct {
	http.ResponseWriter
	status int
	body   bytes.Buffer
}

func newResponseRecorder(w http.ResponseWriter) *responseRecorder {
	return &responseRecorder{ResponseWriter: w, status: http.StatusOK}
}

func (r *responseRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func (r *responseRecorder) Write(b []byte) (int, error) {
	r.body.Write(b)
	return r.ResponseWriter.Write(b)
}
