package cache

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	hitsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "inkwell_cache_hits_total",
		Help: "Response cache hits",
	})

	missesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "inkwell_cache_misses_total",
		Help: "Response cache misses, including TTL expiries",
	})

	writesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "inkwell_cache_writes_total",
		Help: "Response cache writes",
	})
)
