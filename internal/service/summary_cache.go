package service

import (
	"fmt"
	"sync/atomic"
	"time"

	cache "github.com/patrickmn/go-cache"
	"github.com/yourusername/aoc-web/internal/metrics"
	"github.com/yourusername/aoc-web/internal/models"
)

// SummaryCache keeps recently read summaries in memory until they expire or
// the next in-process generation run flushes them
type SummaryCache struct {
	cache     *cache.Cache
	ttl       time.Duration
	hitCount  atomic.Uint64
	missCount atomic.Uint64
}

// NewSummaryCache creates a cache whose entries expire after ttl
func NewSummaryCache(ttl time.Duration) *SummaryCache {
	return &SummaryCache{
		cache: cache.New(ttl, ttl*2),
		ttl:   ttl,
	}
}

func listCacheKey(f models.SummaryFilter) string {
	key := "list"
	if f.Year != nil {
		key += fmt.Sprintf("|year=%d", *f.Year)
	}
	if f.Participant != nil {
		key += fmt.Sprintf("|participant=%q", *f.Participant)
	}
	if f.Language != nil {
		key += fmt.Sprintf("|language=%q", *f.Language)
	}
	return key
}

func getCacheKey(k models.SummaryKey) string {
	return fmt.Sprintf("get|%d|%q", k.Year, k.Participant)
}

func (c *SummaryCache) lookup(key string) (interface{}, bool) {
	v, found := c.cache.Get(key)
	if found {
		c.hitCount.Add(1)
	} else {
		c.missCount.Add(1)
	}
	metrics.UpdateSummaryCacheHitRatio(c.hitCount.Load(), c.missCount.Load())
	return v, found
}

// GetList returns a cached List result
func (c *SummaryCache) GetList(f models.SummaryFilter) ([]*models.Summary, bool) {
	v, found := c.lookup(listCacheKey(f))
	if !found {
		return nil, false
	}
	summaries, ok := v.([]*models.Summary)
	return summaries, ok
}

// SetList stores a List result
func (c *SummaryCache) SetList(f models.SummaryFilter, summaries []*models.Summary) {
	c.cache.Set(listCacheKey(f), summaries, c.ttl)
}

// GetOne returns a cached Get result
func (c *SummaryCache) GetOne(k models.SummaryKey) (*models.Summary, bool) {
	v, found := c.lookup(getCacheKey(k))
	if !found {
		return nil, false
	}
	summary, ok := v.(*models.Summary)
	return summary, ok
}

// SetOne stores a Get result
func (c *SummaryCache) SetOne(k models.SummaryKey, summary *models.Summary) {
	c.cache.Set(getCacheKey(k), summary, c.ttl)
}

// Flush drops every entry
func (c *SummaryCache) Flush() {
	c.cache.Flush()
}

// Stats returns the hit and miss counts
func (c *SummaryCache) Stats() (hits, misses uint64) {
	return c.hitCount.Load(), c.missCount.Load()
}
