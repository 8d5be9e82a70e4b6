package batch

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	TasksCompleted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "batch_tasks_completed_total",
			Help: "Total number of batch tasks that succeeded",
		},
		[]string{"task"},
	)

	TasksFailed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "batch_tasks_failed_total",
			Help: "Total number of batch tasks that failed",
		},
		[]string{"task"},
	)

	TaskDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "batch_task_duration_seconds",
			Help:    "Duration of a single batch task in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"task"},
	)

	TasksActive = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "batch_tasks_active",
			Help: "Number of batch tasks currently running",
		},
		[]string{"task"},
	)
)

// Instrument wraps task so every invocation is recorded under name.
func Instrument[T, R any](name string, task Task[T, R]) Task[T, R] {
	return func(ctx context.Context, item T) (R, error) {
		TasksActive.WithLabelValues(name).Inc()
		defer TasksActive.WithLabelValues(name).Dec()

		start := time.Now()
		value, err := task(ctx, item)
		TaskDuration.WithLabelValues(name).Observe(time.Since(start).Seconds())

		if err != nil {
			TasksFailed.WithLabelValues(name).Inc()
		} else {
			TasksCompleted.WithLabelValues(name).Inc()
		}
		return value, err
	}
}
