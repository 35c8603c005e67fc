package runner

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	executionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "annotata_runner_executions_total",
		Help: "Количество обработанных executions по статусам.",
	}, []string{"status"})

	executionDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "annotata_runner_execution_duration_seconds",
		Help:    "Длительность выполнения execution.",
		Buckets: prometheus.ExponentialBuckets(0.1, 2, 12),
	})
)
