package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/GlebRadaev/payledger/internal/domain"
)

const namespace = "payledger"

// Recorder counts resolved ledger entities and times their settlement.
// A nil Recorder records nothing.
type Recorder struct {
	transactions *prometheus.CounterVec
	payouts      *prometheus.CounterVec
	accounts     *prometheus.CounterVec
	fees         *prometheus.CounterVec
	settlement   *prometheus.HistogramVec
}

func New(reg prometheus.Registerer) *Recorder {
	r := &Recorder{
		transactions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "transactions_resolved_total",
			Help:      "Transactions that reached a terminal status.",
		}, []string{"type", "status"}),
		payouts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "payouts_resolved_total",
			Help:      "Payouts that reached a terminal status.",
		}, []string{"status"}),
		accounts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "payout_account_verifications_total",
			Help:      "Finished payout account verifications.",
		}, []string{"status"}),
		fees: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "processing_fees_total",
			Help:      "Processing fees of completed transactions and payouts.",
		}, []string{"source"}),
		settlement: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "settlement_duration_seconds",
			Help:      "Time from creation to completion of transactions and payouts.",
			Buckets:   []float64{0.5, 1, 2, 5, 10, 30, 60, 300, 3600},
		}, []string{"entity"}),
	}
	reg.MustRegister(r.transactions, r.payouts, r.accounts, r.fees, r.settlement)
	return r
}

func (r *Recorder) TransactionResolved(t domain.TransactionType, status domain.Status, fee float64) {
	if r == nil {
		return
	}
	r.transactions.WithLabelValues(string(t), string(status)).Inc()
	if status == domain.StatusCompleted && fee > 0 {
		r.fees.WithLabelValues("transaction").Add(fee)
	}
}

func (r *Recorder) PayoutResolved(status domain.Status, fee float64) {
	if r == nil {
		return
	}
	r.payouts.WithLabelValues(string(status)).Inc()
	if status == domain.StatusCompleted && fee > 0 {
		r.fees.WithLabelValues("payout").Add(fee)
	}
}

func (r *Recorder) AccountVerified(status domain.VerificationStatus) {
	if r == nil {
		return
	}
	r.accounts.WithLabelValues(string(status)).Inc()
}

// Settled observes how long a completed entity took from creation to processedAt.
func (r *Recorder) Settled(entity string, created, processed time.Time) {
	if r == nil || processed.Before(created) {
		return
	}
	r.settlement.WithLabelValues(entity).Observe(processed.Sub(created).Seconds())
}
