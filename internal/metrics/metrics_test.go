package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecordHTTPRequest(t *testing.T) {
	HTTPRequestsTotal.Reset()
	HTTPRequestDuration.Reset()

	RecordHTTPRequest("POST", "/search/gate", "200", 0.1)

	count := testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues("POST", "/search/gate", "200"))
	assert.Equal(t, float64(1), count)
}

func TestRecordGateAttempt(t *testing.T) {
	GateAttemptsTotal.Reset()

	RecordGateAttempt("billed")
	RecordGateAttempt("billed")
	RecordGateAttempt("free")
	RecordGateAttempt("insufficient")

	assert.Equal(t, float64(2), testutil.ToFloat64(GateAttemptsTotal.WithLabelValues("billed")))
	assert.Equal(t, float64(1), testutil.ToFloat64(GateAttemptsTotal.WithLabelValues("free")))
	assert.Equal(t, float64(1), testutil.ToFloat64(GateAttemptsTotal.WithLabelValues("insufficient")))
}

func TestRecordDeduction(t *testing.T) {
	testCounter := prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "rentercheck_credits_deducted_total_test",
			Help: "Total credits deducted by successful gate attempts",
		},
	)

	oldCounter := CreditsDeductedTotal
	CreditsDeductedTotal = testCounter
	defer func() { CreditsDeductedTotal = oldCounter }()

	RecordDeduction(3)
	RecordDeduction(5)

	assert.Equal(t, float64(8), testutil.ToFloat64(testCounter))
}

func TestRecordLedgerWriteFailure(t *testing.T) {
	testCounter := prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "rentercheck_ledger_write_failures_total_test",
			Help: "Access ledger writes that failed after a committed charge",
		},
	)

	oldCounter := LedgerWriteFailuresTotal
	LedgerWriteFailuresTotal = testCounter
	defer func() { LedgerWriteFailuresTotal = oldCounter }()

	RecordLedgerWriteFailure()
	RecordLedgerWriteFailure()

	assert.Equal(t, float64(2), testutil.ToFloat64(testCounter))
}

func TestRecordCostFallback(t *testing.T) {
	CostFallbacksTotal.Reset()

	RecordCostFallback("PHONE")
	RecordCostFallback("PHONE")
	RecordCostFallback("EMAIL")

	assert.Equal(t, float64(2), testutil.ToFloat64(CostFallbacksTotal.WithLabelValues("PHONE")))
	assert.Equal(t, float64(1), testutil.ToFloat64(CostFallbacksTotal.WithLabelValues("EMAIL")))
}

func TestRecordWalletAdjustment(t *testing.T) {
	WalletAdjustmentsTotal.Reset()

	RecordWalletAdjustment("adjustment")
	RecordWalletAdjustment("bonus")
	RecordWalletAdjustment("bonus")

	assert.Equal(t, float64(1), testutil.ToFloat64(WalletAdjustmentsTotal.WithLabelValues("adjustment")))
	assert.Equal(t, float64(2), testutil.ToFloat64(WalletAdjustmentsTotal.WithLabelValues("bonus")))
}
