package finder

import (
	"strings"
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"catalyst/internal/config"
)

const cacheEntriesPerSource = 256

// outputCache memoises raw source output for sources with cache_ttl_ms set
type outputCache struct {
	mu     sync.Mutex
	caches map[string]*sourceCache
}

type sourceCache struct {
	ttl time.Duration
	lru *expirable.LRU[string, string]
}

func newOutputCache() *outputCache {
	return &outputCache{caches: make(map[string]*sourceCache)}
}

func (c *outputCache) forSource(src config.SourceSpec) *expirable.LRU[string, string] {
	if src.CacheTTLMs <= 0 {
		return nil
	}
	ttl := time.Duration(src.CacheTTLMs) * time.Millisecond

	c.mu.Lock()
	defer c.mu.Unlock()

	sc, ok := c.caches[src.Name]
	if !ok || sc.ttl != ttl {
		sc = &sourceCache{
			ttl: ttl,
			lru: expirable.NewLRU[string, string](cacheEntriesPerSource, nil, ttl),
		}
		c.caches[src.Name] = sc
	}
	return sc.lru
}

func (c *outputCache) get(src config.SourceSpec, argv []string) (string, bool) {
	lru := c.forSource(src)
	if lru == nil {
		return "", false
	}
	return lru.Get(cacheKey(argv))
}

func (c *outputCache) put(src config.SourceSpec, argv []string, output string) {
	if lru := c.forSource(src); lru != nil {
		lru.Add(cacheKey(argv), output)
	}
}

func cacheKey(argv []string) string {
	return strings.Join(argv, "\x00")
}
