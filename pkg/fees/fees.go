package fees

import (
	"math"

	"github.com/shopspring/decimal"

	"github.com/GlebRadaev/payledger/internal/domain"
)

var hundred = decimal.NewFromInt(100)

// Processing returns the fee charged for paying amount with a method of the given kind.
// Bank transfers carry a flat fee; every other kind is a percentage of the amount.
func Processing(amount float64, kind domain.PaymentMethodKind, rates domain.Fees) float64 {
	if kind == domain.MethodBankTransfer {
		return Round(rates.BankTransfer)
	}

	rate := rates.CreditCard
	switch kind {
	case domain.MethodPayPal:
		rate = rates.PayPal
	case domain.MethodApplePay, domain.MethodGooglePay:
		rate = rates.DigitalWallet
	}

	fee := dec(amount).Mul(dec(rate)).Div(hundred)
	return fee.Round(2).InexactFloat64()
}

// Payout returns the flat fee for disbursing to an account of the given kind.
func Payout(kind domain.PayoutAccountKind) float64 {
	if kind == domain.AccountBank {
		return 0.25
	}
	return 1.00
}

// Net returns amount minus fee, computed in decimal so the pair stays consistent.
func Net(amount, fee float64) float64 {
	return dec(amount).Sub(dec(fee)).InexactFloat64()
}

func Round(v float64) float64 {
	return dec(v).Round(2).InexactFloat64()
}

// Sum adds values in decimal to keep cents exact across long aggregations.
func Sum(values ...float64) float64 {
	total := decimal.Zero
	for _, v := range values {
		total = total.Add(dec(v))
	}
	return total.InexactFloat64()
}

// dec converts v to a decimal. NaN and infinities have no decimal form and count as zero.
func dec(v float64) decimal.Decimal {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return decimal.Zero
	}
	return decimal.NewFromFloat(v)
}
