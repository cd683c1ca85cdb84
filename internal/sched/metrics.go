package sched

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// =============================================================================
// Prometheus Metrics for Admission
// =============================================================================

var (
	// admissionsTotal counts admitted requests.
	// Labels: category, path (immediate, queued)
	admissionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "concurrentcube",
		Subsystem: "scheduler",
		Name:      "admissions_total",
		Help:      "Total requests admitted by the scheduler",
	}, []string{"category", "path"})

	// queueWait measures how long queued requests waited for admission.
	// Labels: category
	queueWait = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "concurrentcube",
		Subsystem: "scheduler",
		Name:      "queue_wait_seconds",
		Help:      "Time spent queued before admission",
		Buckets:   []float64{0.00001, 0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
	}, []string{"category"})

	// handoversTotal counts transfers of the cube from one category to the next.
	// Labels: from, to
	handoversTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "concurrentcube",
		Subsystem: "scheduler",
		Name:      "handovers_total",
		Help:      "Total handovers between categories",
	}, []string{"from", "to"})

	// batchSize tracks how many waiters one handover releases.
	// Labels: category
	batchSize = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "concurrentcube",
		Subsystem: "scheduler",
		Name:      "batch_size",
		Help:      "Waiters released per handover",
		Buckets:   prometheus.ExponentialBuckets(1, 2, 8),
	}, []string{"category"})

	// cancelledTotal counts requests that were admitted after their context
	// was cancelled and skipped their work.
	// Labels: category
	cancelledTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "concurrentcube",
		Subsystem: "scheduler",
		Name:      "cancelled_total",
		Help:      "Total admitted requests that skipped work after cancellation",
	}, []string{"category"})
)

// =============================================================================
// Metrics Recording Functions
// =============================================================================

func recordAdmission(c Category, queued bool) {
	path := "immediate"
	if queued {
		path = "queued"
	}
	admissionsTotal.WithLabelValues(c.String(), path).Inc()
}

func recordQueueWait(c Category, seconds float64) {
	queueWait.WithLabelValues(c.String()).Observe(seconds)
}

func recordHandover(from, to Category, released int) {
	handoversTotal.WithLabelValues(from.String(), to.String()).Inc()
	batchSize.WithLabelValues(to.String()).Observe(float64(released))
}

// RecordCancelled records a request of category c that was admitted after its
// caller gave up.
func RecordCancelled(c Category) {
	cancelledTotal.WithLabelValues(c.String()).Inc()
}
