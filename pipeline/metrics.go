package pipeline

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	workoutsCounter = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "fitload",
		Subsystem: "pipeline",
		Name:      "workouts_total",
		Help:      "Number of workout files handled, grouped by outcome.",
	}, []string{"status"})

	unzonedCounter = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "fitload",
		Subsystem: "pipeline",
		Name:      "unzoned_heart_rate_samples_total",
		Help:      "Heart rate samples excluded from hrTSS because they fell outside every zone.",
	})
)

func init() {
	prometheus.MustRegister(workoutsCounter, unzonedCounter)
}

func recordWorkout(status Status) {
	workoutsCounter.WithLabelValues(string(status)).Inc()
}

func recordUnzoned(n int) {
	if n > 0 {
		unzonedCounter.Add(float64(n))
	}
}

// WriteMetrics dumps the default registry in the node_exporter textfile format.
func WriteMetrics(path string) error {
	return prometheus.WriteToTextfile(path, prometheus.DefaultGatherer)
}
