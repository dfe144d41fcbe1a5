package cache

import (
	"encoding/json"
	"time"
)

// NewsAdapter adapts the unified cache to the news client's narrow interface,
// which works on raw bodies and ETags rather than Entry values.
type NewsAdapter struct {
	cache Cache
}

// NewNewsAdapter creates a new adapter for the news client cache interface
func NewNewsAdapter(cache Cache) *NewsAdapter {
	return &NewsAdapter{cache: cache}
}

// Read implements the news Cache interface
func (na *NewsAdapter) Read(key string, ttl time.Duration) (body []byte, etag string, ok bool) {
	entry, exists := na.cache.Read(key, ttl)
	if !exists || entry == nil {
		return nil, "", false
	}

	return []byte(entry.Body), entry.ETag, true
}

// Write implements the news Cache interface
func (na *NewsAdapter) Write(key string, body []byte, etag string) {
	entry := &Entry{
		ETag: etag,
		Body: json.RawMessage(body),
	}
	// The news client treats caching as best effort and has no error path
	_ = na.cache.Write(key, entry)
}

// ETag implements the news Cache interface
func (na *NewsAdapter) ETag(key string) string {
	return na.cache.GetETag(key)
}
