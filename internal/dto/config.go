package dto

import "github.com/GlebRadaev/payledger/internal/domain"

type UpdatePaymentConfigRequestDTO struct {
	Processors     *domain.Processors     `json:"processors,omitempty"`
	Fees           *domain.Fees           `json:"fees,omitempty"`
	Limits         *domain.Limits         `json:"limits,omitempty"`
	PayoutSchedule *domain.PayoutSchedule `json:"payout_schedule,omitempty"`
}
