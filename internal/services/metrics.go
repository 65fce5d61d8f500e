package services

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the custom Prometheus metrics for the application.
// A nil *Metrics is valid and counts nothing, which keeps stores usable in
// tests without a registry.
type Metrics struct {
	TasksCreated   prometheus.Counter
	TasksCompleted prometheus.Counter
	TasksTrashed   prometheus.Counter
	TasksPurged    prometheus.Counter
	StatsRequests  prometheus.Counter
}

// InitMetrics registers the lifecycle counters with the default registry
func InitMetrics() *Metrics {
	return &Metrics{
		TasksCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "taskora_tasks_created_total",
			Help: "Total number of tasks created",
		}),
		TasksCompleted: promauto.NewCounter(prometheus.CounterOpts{
			Name: "taskora_tasks_completed_total",
			Help: "Total number of task completion transitions",
		}),
		TasksTrashed: promauto.NewCounter(prometheus.CounterOpts{
			Name: "taskora_tasks_trashed_total",
			Help: "Total number of tasks moved to the trash",
		}),
		TasksPurged: promauto.NewCounter(prometheus.CounterOpts{
			Name: "taskora_tasks_purged_total",
			Help: "Total number of tasks permanently deleted",
		}),
		StatsRequests: promauto.NewCounter(prometheus.CounterOpts{
			Name: "taskora_statistics_requests_total",
			Help: "Total number of statistics computations",
		}),
	}
}

// TaskCreated increments the created counter
func (m *Metrics) TaskCreated() {
	if m != nil {
		m.TasksCreated.Inc()
	}
}

// TaskCompleted increments the completion counter
func (m *Metrics) TaskCompleted() {
	if m != nil {
		m.TasksCompleted.Inc()
	}
}

// TaskTrashed increments the trash counter
func (m *Metrics) TaskTrashed() {
	if m != nil {
		m.TasksTrashed.Inc()
	}
}

// TaskPurged increments the purge counter
func (m *Metrics) TaskPurged() {
	if m != nil {
		m.TasksPurged.Inc()
	}
}

// StatsComputed increments the statistics counter
func (m *Metrics) StatsComputed() {
	if m != nil {
		m.StatsRequests.Inc()
	}
}
