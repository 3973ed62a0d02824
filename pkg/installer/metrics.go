package installer

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	statusSuccess = "success"
	statusError   = "error"
)

var (
	stepDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "bbinstall_step_duration_seconds",
			Help:    "Time taken by an installation step",
			Buckets: []float64{0.001, 0.01, 0.1, 1, 10, 60, 300},
		},
		[]string{"step"},
	)

	stepTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bbinstall_step_total",
			Help: "Total number of installation step runs",
		},
		[]string{"step", "status"},
	)

	filesWritten = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "bbinstall_files_written_total",
			Help: "Total number of configuration files written",
		},
	)

	directoriesCreated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "bbinstall_directories_created_total",
			Help: "Total number of directories created",
		},
	)
)

// observeStep records the outcome of one step run.
func observeStep(step string, start time.Time, err error) {
	stepDuration.WithLabelValues(step).Observe(time.Since(start).Seconds())
	status := statusSuccess
	if err != nil {
		status = statusError
	}
	stepTotal.WithLabelValues(step, status).Inc()
}
