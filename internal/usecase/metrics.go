package usecase

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	actionsTracked = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "lead_actions_tracked_total",
			Help: "Total number of lead actions recorded by action type",
		},
		[]string{"action_type"},
	)

	focusBuilds = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "daily_focus_builds_total",
			Help: "Total number of daily focus lists built",
		},
	)
)

func recordActionTracked(actionType string) { actionsTracked.WithLabelValues(actionType).Inc() }

func recordFocusBuild() { focusBuilds.Inc() }
