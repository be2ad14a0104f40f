package domain

import "time"

// AnalyticsScope restricts an aggregation to one user and/or a CreatedAt range.
// Empty fields mean no restriction.
type AnalyticsScope struct {
	UserID string
	From   time.Time
	To     time.Time
}

type Breakdown struct {
	Key    string  `json:"key"`
	Count  int     `json:"count"`
	Amount float64 `json:"amount"`
}

type PaymentAnalytics struct {
	TotalRevenue            float64     `json:"total_revenue"`
	TotalTransactions       int         `json:"total_transactions"`
	AverageTransactionValue float64     `json:"average_transaction_value"`
	ProcessingFees          float64     `json:"processing_fees"`
	NetRevenue              float64     `json:"net_revenue"`
	ByCategory              []Breakdown `json:"by_category"`
	ByMethod                []Breakdown `json:"by_method"`
	RefundRate              float64     `json:"refund_rate"`
	FailureRate             float64     `json:"failure_rate"`
}

type PayoutAnalytics struct {
	TotalPayouts        int         `json:"total_payouts"`
	TotalAmount         float64     `json:"total_amount"`
	AveragePayoutAmount float64     `json:"average_payout_amount"`
	ProcessingFees      float64     `json:"processing_fees"`
	NetAmount           float64     `json:"net_amount"`
	ByCategory          []Breakdown `json:"by_category"`
	SuccessRate         float64     `json:"success_rate"`
	PendingAmount       float64     `json:"pending_amount"`
}
