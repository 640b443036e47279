package ple

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// CacheMetrics contains Prometheus counters for a PatternCache.
type CacheMetrics struct {
	Hits     prometheus.Counter
	Misses   prometheus.Counter
	Compiles prometheus.Counter
}

// NewCacheMetrics creates cache counters registered with reg. Pass
// prometheus.DefaultRegisterer to use the default registry.
func NewCacheMetrics(reg prometheus.Registerer) *CacheMetrics {
	f := promauto.With(reg)
	return &CacheMetrics{
		Hits: f.NewCounter(prometheus.CounterOpts{
			Name: "ple_pattern_cache_hits_total",
			Help: "Number of pattern lookups served from the cache",
		}),
		Misses: f.NewCounter(prometheus.CounterOpts{
			Name: "ple_pattern_cache_misses_total",
			Help: "Number of pattern lookups that required a compile",
		}),
		Compiles: f.NewCounter(prometheus.CounterOpts{
			Name: "ple_pattern_compiles_total",
			Help: "Number of regular expression compilations performed",
		}),
	}
}
