package cache

import (
	"context"
	"time"

	"yatube/internal/middleware"
	"yatube/internal/observability"

	"github.com/redis/go-redis/v9"
)

// PageCache stores rendered page bodies for the home feed. Entries live for a
// fixed TTL; nothing except Clear removes them early, so readers may see a
// stale page for at most one TTL window after a write.
type PageCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewPageCache returns a page cache over the given client. A nil client
// degrades every operation to a pass-through.
func NewPageCache(client *redis.Client, ttl time.Duration) *PageCache {
	return &PageCache{client: client, ttl: ttl}
}

// TTL returns the configured entry lifetime.
func (p *PageCache) TTL() time.Duration {
	return p.ttl
}

// Get returns the cached body for the given index page, if present.
func (p *PageCache) Get(ctx context.Context, page int) ([]byte, bool) {
	if p == nil || p.client == nil {
		return nil, false
	}
	body, err := p.client.Get(ctx, IndexPageKey(page)).Bytes()
	if err != nil {
		observability.PageCacheMisses.Inc()
		return nil, false
	}
	observability.PageCacheHits.Inc()
	return body, true
}

// Set stores the rendered body for the given index page. Best-effort: cache
// write failures are logged and the response is served regardless.
func (p *PageCache) Set(ctx context.Context, page int, body []byte) {
	if p == nil || p.client == nil {
		return
	}
	if err := p.client.Set(ctx, IndexPageKey(page), body, p.ttl).Err(); err != nil {
		middleware.Logger.WarnContext(ctx, "page cache write failed", "page", page, "error", err)
	}
}

// Clear drops every cached index page immediately.
func (p *PageCache) Clear(ctx context.Context) error {
	if p == nil || p.client == nil {
		return nil
	}
	iter := p.client.Scan(ctx, 0, "pages:index:*", 0).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return err
	}
	if len(keys) == 0 {
		return nil
	}
	return p.client.Del(ctx, keys...).Err()
}
