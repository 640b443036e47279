package ple

import (
	"regexp"
	"sync"
	"sync/atomic"
)

// A PatternCache stores compiled regular expressions, keyed by pattern
// text. Entries are added lazily on first compilation and never
// evicted; the cache lives as long as the engine that owns it.
//
// The key is the pattern text alone. A cache hit therefore ignores the
// CaseSensitive flag of the requesting operator: whichever operator
// compiles a pattern first decides the case behavior every later
// operator with the same pattern gets. This matches the historical
// behavior of the engine and is deliberate; key by (pattern, flag)
// only if you are prepared to change observable results.
//
// A PatternCache is safe for concurrent use. Two goroutines compiling
// the same pattern at once both compile and the last write wins, which
// is harmless: compiled matchers for the same pattern and flags are
// equivalent.
type PatternCache struct {
	mu       sync.RWMutex
	patterns map[string]*regexp.Regexp

	compiles atomic.Uint64
	hits     atomic.Uint64
	misses   atomic.Uint64

	metrics *CacheMetrics
}

// CacheOption configures a PatternCache.
type CacheOption func(*PatternCache)

// WithCacheMetrics attaches Prometheus counters to the cache.
func WithCacheMetrics(m *CacheMetrics) CacheOption {
	return func(c *PatternCache) {
		c.metrics = m
	}
}

// NewPatternCache initializes an empty cache.
func NewPatternCache(opts ...CacheOption) *PatternCache {
	c := &PatternCache{
		patterns: make(map[string]*regexp.Regexp),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Matcher returns the compiled matcher for pattern, compiling and
// storing it on first use. caseSensitive is honored only on that first
// compilation; hits return the stored matcher as-is.
func (c *PatternCache) Matcher(pattern string, caseSensitive bool) (*regexp.Regexp, error) {
	c.mu.RLock()
	re, ok := c.patterns[pattern]
	c.mu.RUnlock()
	if ok {
		c.hits.Add(1)
		if c.metrics != nil {
			c.metrics.Hits.Inc()
		}
		return re, nil
	}

	c.misses.Add(1)
	if c.metrics != nil {
		c.metrics.Misses.Inc()
	}

	re, err := compilePattern(pattern, caseSensitive)
	if err != nil {
		return nil, err
	}
	c.compiles.Add(1)
	if c.metrics != nil {
		c.metrics.Compiles.Inc()
	}

	c.mu.Lock()
	c.patterns[pattern] = re
	c.mu.Unlock()
	return re, nil
}

// Contains reports whether pattern has been compiled into the cache.
func (c *PatternCache) Contains(pattern string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.patterns[pattern]
	return ok
}

// Len returns the number of cached patterns.
func (c *PatternCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.patterns)
}

// Compiles returns the number of pattern compilations performed
// through the cache.
func (c *PatternCache) Compiles() uint64 { return c.compiles.Load() }

// Hits returns the number of lookups served from the cache.
func (c *PatternCache) Hits() uint64 { return c.hits.Load() }

// Misses returns the number of lookups that required a compile.
func (c *PatternCache) Misses() uint64 { return c.misses.Load() }

// compilePattern compiles pattern for unanchored searching. Unless
// caseSensitive is set, the pattern matches case-insensitively.
func compilePattern(pattern string, caseSensitive bool) (*regexp.Regexp, error) {
	p := pattern
	if !caseSensitive {
		p = "(?i)" + p
	}
	re, err := regexp.Compile(p)
	if err != nil {
		return nil, &CompileError{Pattern: pattern, Err: err}
	}
	return re, nil
}
