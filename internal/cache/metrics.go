package cache

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	cacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "score_cache_hits_total",
			Help: "Total number of score cache hits",
		},
	)

	cacheMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "score_cache_misses_total",
			Help: "Total number of score cache misses",
		},
	)

	scoresComputed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "scores_computed_total",
			Help: "Total number of score computations by resulting tier",
		},
		[]string{"tier"},
	)
)

func recordHit()  { cacheHits.Inc() }
func recordMiss() { cacheMisses.Inc() }

func recordCompute(tier string) { scoresComputed.WithLabelValues(tier).Inc() }
