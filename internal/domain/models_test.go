package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTransactionFilter_Match(t *testing.T) {
	day := time.Date(2024, 5, 15, 0, 0, 0, 0, time.UTC)
	txn := &Transaction{
		UserID:               "u1",
		Type:                 TransactionRefund,
		Category:             CategoryEventTicket,
		Status:               StatusCompleted,
		RelatedTransactionID: "txn_1",
		CreatedAt:            day.Add(12 * time.Hour),
	}

	tests := []struct {
		name   string
		filter TransactionFilter
		want   bool
	}{
		{name: "Empty filter", filter: TransactionFilter{}, want: true},
		{name: "Other user", filter: TransactionFilter{UserID: "u2"}, want: false},
		{name: "Category and type", filter: TransactionFilter{Category: CategoryEventTicket, Type: TransactionRefund}, want: true},
		{name: "Wrong status", filter: TransactionFilter{Status: StatusPending}, want: false},
		{name: "Related id", filter: TransactionFilter{RelatedID: "txn_1"}, want: true},
		{name: "Other related id", filter: TransactionFilter{RelatedID: "txn_2"}, want: false},
		{name: "Inclusive bounds", filter: TransactionFilter{From: txn.CreatedAt, To: txn.CreatedAt}, want: true},
		{name: "Before range", filter: TransactionFilter{From: day.Add(13 * time.Hour)}, want: false},
		{name: "After range", filter: TransactionFilter{To: day.Add(11 * time.Hour)}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.filter.Match(txn))
		})
	}
}

func TestPayoutFilter_Match(t *testing.T) {
	p := &Payout{UserID: "u1", Category: PayoutVODEarnings, Status: StatusPending, CreatedAt: time.Date(2024, 5, 15, 0, 0, 0, 0, time.UTC)}

	assert.True(t, PayoutFilter{UserID: "u1", Category: PayoutVODEarnings}.Match(p))
	assert.False(t, PayoutFilter{Category: PayoutCommission}.Match(p))
	assert.False(t, PayoutFilter{Status: StatusCompleted}.Match(p))
	assert.False(t, PayoutFilter{From: p.CreatedAt.Add(time.Second)}.Match(p))
}

func TestKinds_Valid(t *testing.T) {
	assert.True(t, MethodGooglePay.Valid())
	assert.False(t, PaymentMethodKind("cash").Valid())
	assert.True(t, AccountDebitCard.Valid())
	assert.False(t, PayoutAccountKind("crypto").Valid())
	assert.True(t, CategoryTShirtSale.Valid())
	assert.False(t, TransactionCategory("").Valid())
	assert.True(t, PayoutAffiliate.Valid())
	assert.False(t, PayoutCategory("bonus").Valid())
}
