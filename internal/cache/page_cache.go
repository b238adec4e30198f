package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"sync/atomic"
	"time"

	dom "github.com/WindyDante/Clear/internal/domain"
)

const pageKeyPrefix = "todo:page:"

// Fingerprint identifies one cached page of one user's todo list. The
// filters are part of the key so a filtered page can never be served for
// an unfiltered request (or the other way around).
type Fingerprint struct {
	UserID   int64
	Page     int
	PageSize int
	Filter   dom.TodoFilter
}

// Key renders the fingerprint as a cache key. Every segment is delimited,
// so keys for different users can never collide (u1: is not a prefix of u12:).
func (f Fingerprint) Key() string {
	return fmt.Sprintf("%su%d:p%d:s%d:c%s:st%s",
		pageKeyPrefix, f.UserID, f.Page, f.PageSize,
		optInt64(f.Filter.CategoryID), optInt(f.Filter.Status))
}

// UserPattern matches every page key belonging to userID, whatever the
// page, size, or filters.
func UserPattern(userID int64) string {
	return fmt.Sprintf("%su%d:*", pageKeyPrefix, userID)
}

func optInt64(v *int64) string {
	if v == nil {
		return "-"
	}
	return strconv.FormatInt(*v, 10)
}

func optInt(v *int) string {
	if v == nil {
		return "-"
	}
	return strconv.Itoa(*v)
}

// CachedPage is one page of todo views plus the total match count.
type CachedPage struct {
	Total int64          `json:"total"`
	Items []dom.TodoView `json:"items"`
}

// PageCache stores computed todo pages under their fingerprints. Entries
// live until the owner's next mutation invalidates them; the TTL is only a
// backstop so a lost invalidation cannot pin stale data forever.
type PageCache struct {
	backend Backend
	ttl     time.Duration

	hits   atomic.Int64
	misses atomic.Int64
}

// NewPageCache returns a PageCache over the given backend.
func NewPageCache(backend Backend, ttl time.Duration) *PageCache {
	return &PageCache{backend: backend, ttl: ttl}
}

// Get returns the cached page for fp, or ok=false on a miss. A corrupt
// entry counts as a miss so the caller recomputes and overwrites it.
func (c *PageCache) Get(ctx context.Context, fp Fingerprint) (CachedPage, bool, error) {
	b, ok, err := c.backend.Get(ctx, fp.Key())
	if err != nil {
		return CachedPage{}, false, err
	}
	if !ok {
		c.misses.Add(1)
		return CachedPage{}, false, nil
	}
	var page CachedPage
	if err := json.Unmarshal(b, &page); err != nil {
		c.misses.Add(1)
		return CachedPage{}, false, nil
	}
	c.hits.Add(1)
	return page, true, nil
}

// Put stores the page under fp.
func (c *PageCache) Put(ctx context.Context, fp Fingerprint, page CachedPage) error {
	b, err := json.Marshal(page)
	if err != nil {
		return err
	}
	return c.backend.Set(ctx, fp.Key(), b, c.ttl)
}

// InvalidateUser removes every cached page belonging to userID.
func (c *PageCache) InvalidateUser(ctx context.Context, userID int64) error {
	keys, err := c.backend.KeysMatching(ctx, UserPattern(userID))
	if err != nil {
		return err
	}
	return c.backend.DeleteKeys(ctx, keys)
}

// Hits reports cache hits served so far.
func (c *PageCache) Hits() int64 { return c.hits.Load() }

// Misses reports cache misses so far.
func (c *PageCache) Misses() int64 { return c.misses.Load() }
