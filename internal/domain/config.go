package domain

import (
	"fmt"
	"time"
	_ "time/tzdata"
)

type ProcessorSettings struct {
	Enabled  bool   `json:"enabled"`
	PublicID string `json:"public_id"`
	HookID   string `json:"hook_id"`
}

type Processors struct {
	Stripe ProcessorSettings `json:"stripe"`
	PayPal ProcessorSettings `json:"paypal"`
	Square ProcessorSettings `json:"square"`
}

// Fees holds percentage rates except BankTransfer, which is a flat amount.
type Fees struct {
	CreditCard    float64 `json:"credit_card"`
	BankTransfer  float64 `json:"bank_transfer"`
	PayPal        float64 `json:"paypal"`
	DigitalWallet float64 `json:"digital_wallet"`
}

type Limits struct {
	DailyTransactionLimit   float64 `json:"daily_transaction_limit"`
	MonthlyTransactionLimit float64 `json:"monthly_transaction_limit"`
	SingleTransactionLimit  float64 `json:"single_transaction_limit"`
	MinimumPayout           float64 `json:"minimum_payout"`
	MaximumPayout           float64 `json:"maximum_payout"`
}

type PayoutFrequency string

const (
	FrequencyDaily   PayoutFrequency = "daily"
	FrequencyWeekly  PayoutFrequency = "weekly"
	FrequencyMonthly PayoutFrequency = "monthly"
)

type PayoutSchedule struct {
	Frequency  PayoutFrequency `json:"frequency"`
	DayOfWeek  int             `json:"day_of_week"`
	DayOfMonth int             `json:"day_of_month"`
	CutoffTime string          `json:"cutoff_time"`
	Timezone   string          `json:"timezone"`
}

type PaymentConfig struct {
	Processors     Processors     `json:"processors"`
	Fees           Fees           `json:"fees"`
	Limits         Limits         `json:"limits"`
	PayoutSchedule PayoutSchedule `json:"payout_schedule"`
}

func DefaultPaymentConfig() PaymentConfig {
	return PaymentConfig{
		Processors: Processors{
			Stripe: ProcessorSettings{Enabled: true, PublicID: "pk_test_stripe", HookID: "whsec_stripe"},
			PayPal: ProcessorSettings{Enabled: true, PublicID: "paypal_client", HookID: "paypal_webhook"},
			Square: ProcessorSettings{Enabled: false, PublicID: "square_app", HookID: "square_location"},
		},
		Fees: Fees{
			CreditCard:    2.9,
			BankTransfer:  0.50,
			PayPal:        3.49,
			DigitalWallet: 2.9,
		},
		Limits: Limits{
			DailyTransactionLimit:   10000,
			MonthlyTransactionLimit: 100000,
			SingleTransactionLimit:  5000,
			MinimumPayout:           25,
			MaximumPayout:           25000,
		},
		PayoutSchedule: PayoutSchedule{
			Frequency:  FrequencyWeekly,
			DayOfWeek:  1,
			CutoffTime: "16:00",
			Timezone:   "America/Chicago",
		},
	}
}

func (c PaymentConfig) Validate() error {
	f := c.Fees
	if f.CreditCard < 0 || f.BankTransfer < 0 || f.PayPal < 0 || f.DigitalWallet < 0 {
		return fmt.Errorf("%w: fees must not be negative", ErrInvalidConfig)
	}
	l := c.Limits
	if l.DailyTransactionLimit <= 0 || l.MonthlyTransactionLimit <= 0 || l.SingleTransactionLimit <= 0 {
		return fmt.Errorf("%w: transaction limits must be positive", ErrInvalidConfig)
	}
	if l.MinimumPayout <= 0 || l.MaximumPayout < l.MinimumPayout {
		return fmt.Errorf("%w: payout bounds %.2f..%.2f", ErrInvalidConfig, l.MinimumPayout, l.MaximumPayout)
	}
	return c.PayoutSchedule.Validate()
}

func (s PayoutSchedule) Validate() error {
	switch s.Frequency {
	case FrequencyDaily:
	case FrequencyWeekly:
		if s.DayOfWeek < 0 || s.DayOfWeek > 6 {
			return fmt.Errorf("%w: day of week %d", ErrInvalidConfig, s.DayOfWeek)
		}
	case FrequencyMonthly:
		if s.DayOfMonth < 1 || s.DayOfMonth > 31 {
			return fmt.Errorf("%w: day of month %d", ErrInvalidConfig, s.DayOfMonth)
		}
	default:
		return fmt.Errorf("%w: unknown frequency %q", ErrInvalidConfig, s.Frequency)
	}
	if _, _, err := s.Cutoff(); err != nil {
		return err
	}
	if _, err := s.Location(); err != nil {
		return err
	}
	return nil
}

func (s PayoutSchedule) Cutoff() (hour, minute int, err error) {
	t, err := time.Parse("15:04", s.CutoffTime)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: cutoff time %q", ErrInvalidConfig, s.CutoffTime)
	}
	return t.Hour(), t.Minute(), nil
}

func (s PayoutSchedule) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(s.Timezone)
	if err != nil {
		return nil, fmt.Errorf("%w: timezone %q", ErrInvalidConfig, s.Timezone)
	}
	return loc, nil
}
