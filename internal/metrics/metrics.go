package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rentercheck_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "rentercheck_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	GateAttemptsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rentercheck_gate_attempts_total",
			Help: "Total number of search gate attempts by terminal status",
		},
		[]string{"status"},
	)

	CreditsDeductedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "rentercheck_credits_deducted_total",
			Help: "Total credits deducted by successful gate attempts",
		},
	)

	InsufficientCreditsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "rentercheck_insufficient_credits_total",
			Help: "Total gate attempts rejected for insufficient credits",
		},
	)

	LedgerWriteFailuresTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "rentercheck_ledger_write_failures_total",
			Help: "Access ledger writes that failed after a committed charge",
		},
	)

	CostFallbacksTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rentercheck_cost_fallbacks_total",
			Help: "Cost lookups that fell open to zero, by action key",
		},
		[]string{"action"},
	)

	WalletAdjustmentsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rentercheck_wallet_adjustments_total",
			Help: "Wallet mutations outside the gate path, by transaction type",
		},
		[]string{"type"},
	)
)

func RecordHTTPRequest(method, path, status string, duration float64) {
	HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
	HTTPRequestDuration.WithLabelValues(method, path).Observe(duration)
}

func RecordGateAttempt(status string) {
	GateAttemptsTotal.WithLabelValues(status).Inc()
}

func RecordDeduction(credits int64) {
	CreditsDeductedTotal.Add(float64(credits))
}

func RecordInsufficientCredits() {
	InsufficientCreditsTotal.Inc()
}

func RecordLedgerWriteFailure() {
	LedgerWriteFailuresTotal.Inc()
}

func RecordCostFallback(action string) {
	CostFallbacksTotal.WithLabelValues(action).Inc()
}

func RecordWalletAdjustment(txType string) {
	WalletAdjustmentsTotal.WithLabelValues(txType).Inc()
}
