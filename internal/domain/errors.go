package domain

import "errors"

var (
	ErrNotFound         = errors.New("not found")
	ErrNoPaymentMethod  = errors.New("no valid payment method found")
	ErrNoPayoutAccount  = errors.New("no valid payout account found")
	ErrNotVerified      = errors.New("payout account is not verified")
	ErrInvalidState     = errors.New("operation not allowed in current status")
	ErrInvalidAmount    = errors.New("invalid amount")
	ErrAmountOutOfRange = errors.New("amount out of range")
	ErrLimitExceeded    = errors.New("transaction limit exceeded")
	ErrInvalidDetails   = errors.New("invalid details")
	ErrInvalidPeriod    = errors.New("invalid period")
	ErrInvalidConfig    = errors.New("invalid payment config")
)
