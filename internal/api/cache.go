package api

import (
	"net/http"
	"strings"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

// Response cache bounds. Responses are value-stable for a given URL, so
// racing writers on a miss are harmless.
const (
	cacheSize = 100
	cacheTTL  = 24 * time.Hour
)

// cachedResponse is one stored response body with its headers.
type cachedResponse struct {
	status int
	header http.Header
	body   []byte
}

// responseCache is the in-process response cache keyed by request URL.
type responseCache struct {
	lru *expirable.LRU[string, cachedResponse]
}

func newResponseCache() *responseCache {
	return &responseCache{lru: expirable.NewLRU[string, cachedResponse](cacheSize, nil, cacheTTL)}
}

// cacheBypass reports whether a path must never be served from or stored
// in the cache.
func cacheBypass(path string) bool {
	return strings.HasPrefix(path, "/health") ||
		strings.HasPrefix(path, "/docs") ||
		strings.HasPrefix(path, "/openapi") ||
		strings.Contains(path, "/random")
}

// recorder captures a handler's response for storage.
type recorder struct {
	http.ResponseWriter
	status int
	body   []byte
}

func (r *recorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func (r *recorder) Write(p []byte) (int, error) {
	r.body = append(r.body, p...)
	return r.ResponseWriter.Write(p)
}

// middleware serves cached responses and stores fresh successful ones.
func (c *responseCache) middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet || cacheBypass(r.URL.Path) {
			next.ServeHTTP(w, r)
			return
		}
		key := r.URL.String()
		if hit, ok := c.lru.Get(key); ok {
			for k, vs := range hit.header {
				for _, v := range vs {
					w.Header().Add(k, v)
				}
			}
			w.Header().Set("X-Cache", "HIT")
			w.WriteHeader(hit.status)
			_, _ = w.Write(hit.body)
			return
		}

		rec := &recorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		if rec.status == http.StatusOK {
			c.lru.Add(key, cachedResponse{
				status: rec.status,
				header: rec.Header().Clone(),
				body:   rec.body,
			})
		}
	})
}
