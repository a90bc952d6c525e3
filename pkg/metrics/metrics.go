package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "frontdesk"

// HistogramBuckets are request latency buckets in milliseconds. Check-ins are expected to
// finish well under a second; the long tail catches lock waits on hot member rows.
var HistogramBuckets = []float64{
	5, 10, 25, 50, 75, 100, 150, 200, 300, 500,
	750, 1000, 1500, 2000, 3000, 5000, 10000,
}

var (
	CheckInsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "checkins_total",
			Help:      "Check-in attempts partitioned by flow, outcome and facility.",
		},
		[]string{"flow", "outcome", "facility"},
	)

	VisitDeductionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "visit_deductions_total",
			Help:      "Pass visits deducted on the first check-in of a day.",
		},
		[]string{"plan"},
	)

	DayPassesConsumedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "day_passes_consumed_total",
			Help:      "Day passes marked used.",
		},
		[]string{"pass_type"},
	)

	RevenueAttributedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "revenue_attributed_total",
			Help:      "Recorded payment amounts attributed per business.",
		},
		[]string{"business"},
	)

	DataIntegrityWarningsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "data_integrity_warnings_total",
			Help:      "Anomalies surfaced to staff instead of being coerced.",
		},
		[]string{"kind"},
	)
)

func RecordCheckIn(flow, outcome, facility string) {
	CheckInsTotal.WithLabelValues(flow, outcome, facility).Inc()
}

func RecordVisitDeduction(planID string) {
	VisitDeductionsTotal.WithLabelValues(planID).Inc()
}

func RecordDayPassConsumed(passType string) {
	DayPassesConsumedTotal.WithLabelValues(passType).Inc()
}

func RecordRevenue(business string, amount float64) {
	if amount <= 0 {
		return
	}
	RevenueAttributedTotal.WithLabelValues(business).Add(amount)
}

func RecordDataIntegrityWarning(kind string) {
	DataIntegrityWarningsTotal.WithLabelValues(kind).Inc()
}
