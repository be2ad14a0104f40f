package fees

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/GlebRadaev/payledger/internal/domain"
)

func TestProcessing(t *testing.T) {
	rates := domain.DefaultPaymentConfig().Fees

	tests := []struct {
		name   string
		amount float64
		kind   domain.PaymentMethodKind
		want   float64
	}{
		{name: "credit card percentage", amount: 100, kind: domain.MethodCreditCard, want: 2.90},
		{name: "paypal percentage", amount: 100, kind: domain.MethodPayPal, want: 100 * rates.PayPal / 100},
		{name: "bank transfer flat", amount: 100, kind: domain.MethodBankTransfer, want: rates.BankTransfer},
		{name: "bank transfer ignores amount", amount: 4999, kind: domain.MethodBankTransfer, want: 0.50},
		{name: "apple pay wallet rate", amount: 49.99, kind: domain.MethodApplePay, want: 1.45},
		{name: "google pay wallet rate", amount: 10, kind: domain.MethodGooglePay, want: 0.29},
		{name: "unknown kind falls back to card", amount: 10, kind: "crypto", want: 0.29},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, Processing(tt.amount, tt.kind, rates), 1e-9)
		})
	}
}

func TestPayout(t *testing.T) {
	assert.Equal(t, 0.25, Payout(domain.AccountBank))
	assert.Equal(t, 1.00, Payout(domain.AccountPayPal))
	assert.Equal(t, 1.00, Payout(domain.AccountDebitCard))
}

func TestNet(t *testing.T) {
	assert.Equal(t, 97.1, Net(100, 2.9))
	assert.Equal(t, -50.0, Net(-50, 0))
	assert.Equal(t, 0.3, Sum(0.1, 0.2))
}

func TestNonFiniteValues(t *testing.T) {
	rates := domain.DefaultPaymentConfig().Fees

	for _, v := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		assert.NotPanics(t, func() {
			assert.Equal(t, 0.0, Processing(v, domain.MethodCreditCard, rates))
			assert.Equal(t, 2.9, Net(v, -2.9))
			assert.Equal(t, 0.0, Round(v))
			assert.Equal(t, 1.5, Sum(1.5, v))
		})
	}
}
