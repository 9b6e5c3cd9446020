package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"coride/pkg/cache"
)

func listHandler(calls *int, body string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*calls++
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(body))
	})
}

func TestReadThrough_MissThenHit(t *testing.T) {
	mem := cache.NewMemory()
	ca := NewCacheAside(mem, "coride")

	calls := 0
	handler := ca.ReadThrough("travels")(listHandler(&calls, `[{"id":1}]`))

	// First GET misses and populates.
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest("GET", "/api/v1/travels", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, `[{"id":1}]`, rec.Body.String())
	assert.Equal(t, 1, calls)

	// Second identical GET is served from the cache without invoking the
	// wrapped handler.
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest("GET", "/api/v1/travels", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, `[{"id":1}]`, rec.Body.String())
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.Equal(t, 1, calls)
}

func TestReadThrough_QueryStringPartOfKey(t *testing.T) {
	mem := cache.NewMemory()
	ca := NewCacheAside(mem, "coride")

	calls := 0
	handler := ca.ReadThrough("travels")(listHandler(&calls, `[]`))

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/api/v1/travels?destination_city=paris", nil))
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/api/v1/travels?destination_city=lyon", nil))
	assert.Equal(t, 2, calls, "different query strings are different entries")

	// Same parameters in a different order share an entry.
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/api/v1/travels?a=1&b=2", nil))
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/api/v1/travels?b=2&a=1", nil))
	assert.Equal(t, 3, calls)
}

func TestReadThrough_ErrorResponseNotCached(t *testing.T) {
	mem := cache.NewMemory()
	ca := NewCacheAside(mem, "coride")

	calls := 0
	handler := ca.ReadThrough("travels")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusNotFound)
	}))

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/api/v1/travels", nil))
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/api/v1/travels", nil))

	assert.Equal(t, 2, calls, "a 404 must not populate the cache")
	assert.Equal(t, 0, mem.Len())
}

func TestInvalidate_FlushesFamily(t *testing.T) {
	mem := cache.NewMemory()
	ca := NewCacheAside(mem, "coride")

	calls := 0
	get := ca.ReadThrough("travels")(listHandler(&calls, `["before"]`))
	post := ca.Invalidate("travels")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
	}))

	// GET populates, POST invalidates, the identical GET recomputes.
	get.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/api/v1/travels", nil))
	require.Equal(t, 1, calls)

	rec := httptest.NewRecorder()
	post.ServeHTTP(rec, httptest.NewRequest("POST", "/api/v1/travels", nil))
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = httptest.NewRecorder()
	get.ServeHTTP(rec, httptest.NewRequest("GET", "/api/v1/travels", nil))
	assert.Equal(t, 2, calls, "post-mutation GET must not see the stale body")
}

func TestInvalidate_FailedMutationKeepsEntries(t *testing.T) {
	mem := cache.NewMemory()
	ca := NewCacheAside(mem, "coride")

	calls := 0
	get := ca.ReadThrough("travels")(listHandler(&calls, `[]`))
	post := ca.Invalidate("travels")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
	}))

	get.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/api/v1/travels", nil))
	post.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("POST", "/api/v1/travels", nil))
	get.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/api/v1/travels", nil))

	assert.Equal(t, 1, calls, "a failed mutation must not invalidate")
}

func TestInvalidate_MultipleFamilies(t *testing.T) {
	mem := cache.NewMemory()
	ca := NewCacheAside(mem, "coride")

	travelCalls, userCalls := 0, 0
	getTravels := ca.ReadThrough("travels")(listHandler(&travelCalls, `[]`))
	getUsers := ca.ReadThrough("users")(listHandler(&userCalls, `[]`))
	join := ca.Invalidate("travels", "users")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
	}))

	getTravels.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/api/v1/travels", nil))
	getUsers.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/api/v1/users", nil))
	join.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("POST", "/api/v1/user/1/travels", nil))

	getTravels.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/api/v1/travels", nil))
	getUsers.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/api/v1/users", nil))

	assert.Equal(t, 2, travelCalls)
	assert.Equal(t, 2, userCalls)
}

// failingCache simulates a cache-service outage.
type failingCache struct{}

func (failingCache) Ping(context.Context) error                { return errors.New("connection refused") }
func (failingCache) Close() error                              { return nil }
func (failingCache) Get(context.Context, string) ([]byte, error) {
	return nil, errors.New("connection refused")
}
func (failingCache) Set(context.Context, string, []byte) error { return errors.New("connection refused") }
func (failingCache) DelPrefix(context.Context, string) error   { return errors.New("connection refused") }

func TestOutageDegradesToPassThrough(t *testing.T) {
	ca := NewCacheAside(failingCache{}, "coride")

	calls := 0
	get := ca.ReadThrough("travels")(listHandler(&calls, `[]`))
	post := ca.Invalidate("travels")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
	}))

	rec := httptest.NewRecorder()
	get.ServeHTTP(rec, httptest.NewRequest("GET", "/api/v1/travels", nil))
	assert.Equal(t, http.StatusOK, rec.Code, "reads degrade to always-miss")
	assert.Equal(t, 1, calls)

	rec = httptest.NewRecorder()
	post.ServeHTTP(rec, httptest.NewRequest("POST", "/api/v1/travels", nil))
	assert.Equal(t, http.StatusCreated, rec.Code, "invalidation failure must not fail the mutation")
}

func TestNilCacheDisablesMiddleware(t *testing.T) {
	ca := NewCacheAside(nil, "coride")

	calls := 0
	get := ca.ReadThrough("travels")(listHandler(&calls, `[]`))

	get.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/api/v1/travels", nil))
	get.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/api/v1/travels", nil))

	assert.Equal(t, 2, calls)
}
