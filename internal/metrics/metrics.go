// Package metrics exposes Prometheus instruments for the tutor.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"radicaltutor/internal/models"
)

var (
	// Counter for graded answers
	answersTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tutor_answers_total",
			Help: "Total number of graded answers",
		},
		[]string{"kind", "type", "result"}, // kind: quiz/practice, result: correct/incorrect
	)

	// Counter for lesson interaction events
	lessonEventsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tutor_lesson_events_total",
			Help: "Total number of recorded lesson events",
		},
		[]string{"event"},
	)

	// Counter for answer log resets
	resetsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tutor_answer_log_resets_total",
			Help: "Total number of answer log resets",
		},
		[]string{"reason"},
	)

	// Gauge for catalog sizes
	catalogItems = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "tutor_catalog_items",
			Help: "Number of items in each catalog section",
		},
		[]string{"section"},
	)

	// Histogram for request duration
	requestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "tutor_http_request_duration_seconds",
			Help:    "Time spent serving HTTP requests",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "status"},
	)
)

// Handler serves the metrics exposition
func Handler() http.Handler {
	return promhttp.Handler()
}

// ObserveAnswer counts a graded answer
func ObserveAnswer(kind, answerType string, correct bool) {
	result := "incorrect"
	if correct {
		result = "correct"
	}
	answersTotal.WithLabelValues(kind, answerType, result).Inc()
}

// ObserveLessonEvent counts a lesson entry or advance
func ObserveLessonEvent(event models.EventKind) {
	lessonEventsTotal.WithLabelValues(string(event)).Inc()
}

// ObserveReset counts a cleared answer log
func ObserveReset(reason string) {
	resetsTotal.WithLabelValues(reason).Inc()
}

// SetCatalogSize records the size of each catalog section
func SetCatalogSize(catalog *models.Catalog) {
	catalogItems.WithLabelValues("radicals").Set(float64(len(catalog.Radicals)))
	catalogItems.WithLabelValues("practice").Set(float64(len(catalog.Practice)))
	catalogItems.WithLabelValues("quiz").Set(float64(len(catalog.Quiz)))
}

// ObserveRequest records the duration of a served request
func ObserveRequest(method string, status int, elapsed time.Duration) {
	requestDuration.WithLabelValues(method, strconv.Itoa(status)).Observe(elapsed.Seconds())
}
