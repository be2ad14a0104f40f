package dto

import (
	"time"

	"github.com/GlebRadaev/payledger/internal/domain"
)

type AddPayoutAccountRequestDTO struct {
	Kind      string                      `json:"kind" validate:"required,oneof=bank_account paypal debit_card" example:"bank_account"`
	IsDefault bool                        `json:"is_default"`
	Details   domain.PayoutAccountDetails `json:"details"`
}

type UpdatePayoutAccountRequestDTO struct {
	IsDefault *bool                        `json:"is_default,omitempty"`
	Details   *domain.PayoutAccountDetails `json:"details,omitempty"`
}

type PayoutRequestDTO struct {
	Amount          float64               `json:"amount" validate:"gt=0" example:"250"`
	Currency        string                `json:"currency,omitempty" validate:"omitempty,len=3,uppercase" example:"USD"`
	Category        string                `json:"category,omitempty" example:"vod_earnings"`
	UserName        string                `json:"user_name,omitempty" example:"Ann Lee"`
	UserRole        string                `json:"user_role,omitempty" example:"instructor"`
	PeriodStart     time.Time             `json:"period_start" validate:"required"`
	PeriodEnd       time.Time             `json:"period_end" validate:"required"`
	TransactionIDs  []string              `json:"transaction_ids,omitempty" validate:"dive,required"`
	PayoutAccountID string                `json:"payout_account_id,omitempty" example:"pa_01HXYZ"`
	Metadata        domain.PayoutMetadata `json:"metadata"`
}
