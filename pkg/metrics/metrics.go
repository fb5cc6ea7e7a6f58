// Package metrics exposes Prometheus metrics for coverage evaluation and move screening.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/jakechorley/shift-cockpit/pkg/core/coverage"
)

// Registry is the application registry served on /metrics
var Registry = prometheus.NewRegistry()

var factory = promauto.With(Registry)

// EvaluationsTotal counts coverage evaluations by shift and outcome
var EvaluationsTotal = factory.NewCounterVec(prometheus.CounterOpts{
	Namespace: "coverage",
	Name:      "evaluations_total",
	Help:      "Coverage evaluations by shift and whether the shift was satisfied",
}, []string{"shift", "satisfied"})

// MissingHeadcount is the missing headcount per qualification from the latest evaluation of each shift
var MissingHeadcount = factory.NewGaugeVec(prometheus.GaugeOpts{
	Namespace: "coverage",
	Name:      "missing_headcount",
	Help:      "Missing headcount by shift and qualification short code in the latest evaluation",
}, []string{"shift", "short_code"})

// UnsatisfiedShifts is the number of unsatisfied shifts in the latest coverage report
var UnsatisfiedShifts = factory.NewGauge(prometheus.GaugeOpts{
	Namespace: "coverage",
	Name:      "report_unsatisfied_shifts",
	Help:      "Unsatisfied shifts in the latest coverage report",
})

// MovesScreenedTotal counts screened moves by feasibility
var MovesScreenedTotal = factory.NewCounterVec(prometheus.CounterOpts{
	Namespace: "swap",
	Name:      "moves_screened_total",
	Help:      "Moves screened by whether they kept both shifts satisfied",
}, []string{"feasible"})

// MovesRejectedTotal counts move requests that failed their preconditions
var MovesRejectedTotal = factory.NewCounter(prometheus.CounterOpts{
	Namespace: "swap",
	Name:      "moves_rejected_total",
	Help:      "Move requests rejected before simulation",
})

// ScreeningDurationSeconds tracks the time taken to screen a source shift
var ScreeningDurationSeconds = factory.NewHistogram(prometheus.HistogramOpts{
	Namespace: "swap",
	Name:      "screening_duration_seconds",
	Help:      "Time taken to screen every move off a source shift",
	Buckets:   []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
})

// SummariesSentTotal counts coverage summary emails sent
var SummariesSentTotal = factory.NewCounter(prometheus.CounterOpts{
	Namespace: "coverage",
	Name:      "summaries_sent_total",
	Help:      "Coverage summary emails sent",
})

func boolLabel(b bool) string {
	if b {
		return "true"
	}
	return "false"
}

// RecordEvaluation records one coverage result
func RecordEvaluation(result *coverage.CoverageResult) {
	EvaluationsTotal.WithLabelValues(result.Shift, boolLabel(result.IsSatisfied)).Inc()

	MissingHeadcount.DeletePartialMatch(prometheus.Labels{"shift": result.Shift})
	for _, m := range result.MissingByQualification {
		MissingHeadcount.WithLabelValues(result.Shift, m.ShortCode).Set(float64(m.MissingCount))
	}
}

// RecordScreening records the outcome of one screening run
func RecordScreening(moves []coverage.ScreenedMove, elapsed time.Duration) {
	ScreeningDurationSeconds.Observe(elapsed.Seconds())
	for _, m := range moves {
		MovesScreenedTotal.WithLabelValues(boolLabel(m.Result.Feasible)).Inc()
	}
}

// Reset clears every gauge and vector. Tests call it between cases.
func Reset() {
	EvaluationsTotal.Reset()
	MissingHeadcount.Reset()
	UnsatisfiedShifts.Set(0)
	MovesScreenedTotal.Reset()
}
