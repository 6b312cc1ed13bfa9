package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	userPersistGauge = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "exerciselog",
		Subsystem: "persistence",
		Name:      "last_user_persisted_timestamp_seconds",
		Help:      "Unix timestamp of the most recent user persisted to Postgres.",
	})
	exercisePersistGauge = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "exerciselog",
		Subsystem: "persistence",
		Name:      "last_exercise_persisted_timestamp_seconds",
		Help:      "Unix timestamp of the most recent exercise persisted to Postgres.",
	})
	exercisesLoggedCounter = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "exerciselog",
		Subsystem: "persistence",
		Name:      "exercises_logged_total",
		Help:      "Number of exercises recorded.",
	})
)

func init() {
	prometheus.MustRegister(userPersistGauge, exercisePersistGauge, exercisesLoggedCounter)
}

// RecordUserPersisted updates the user persistence watermark gauge.
func RecordUserPersisted(ts time.Time) {
	if ts.IsZero() {
		return
	}
	userPersistGauge.Set(float64(ts.Unix()))
}

// RecordExercisePersisted updates the exercise watermark gauge and counter.
func RecordExercisePersisted(ts time.Time) {
	if ts.IsZero() {
		return
	}
	exercisePersistGauge.Set(float64(ts.Unix()))
	exercisesLoggedCounter.Inc()
}
