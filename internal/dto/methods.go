package dto

import "github.com/GlebRadaev/payledger/internal/domain"

type AddPaymentMethodRequestDTO struct {
	Kind       string                      `json:"kind" validate:"required,oneof=credit_card bank_transfer paypal apple_pay google_pay" example:"credit_card"`
	IsDefault  bool                        `json:"is_default"`
	CardNumber string                      `json:"card_number,omitempty" validate:"omitempty,min=12,max=23" example:"4242424242424242"`
	Details    domain.PaymentMethodDetails `json:"details"`
}

type UpdatePaymentMethodRequestDTO struct {
	IsDefault *bool                        `json:"is_default,omitempty"`
	IsActive  *bool                        `json:"is_active,omitempty"`
	Details   *domain.PaymentMethodDetails `json:"details,omitempty"`
}
