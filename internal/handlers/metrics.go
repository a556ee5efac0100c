package handlers

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	tripExports = promauto.NewCounter(prometheus.CounterOpts{
		Name: "tripsplit_trip_exports_total",
		Help: "Number of share tokens handed out.",
	})

	tripImports = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "tripsplit_trip_imports_total",
		Help: "Number of share token imports by result.",
	}, []string{"result"})
)
