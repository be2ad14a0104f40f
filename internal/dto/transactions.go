package dto

import (
	"encoding/json"
	"time"
)

type PaymentRequestDTO struct {
	Amount          float64         `json:"amount" validate:"gt=0" example:"100"`
	Currency        string          `json:"currency,omitempty" validate:"omitempty,len=3,uppercase" example:"USD"`
	Category        string          `json:"category,omitempty" example:"vod_purchase"`
	Description     string          `json:"description" validate:"max=500" example:"Vinyasa flow class"`
	PaymentMethodID string          `json:"payment_method_id,omitempty" example:"pm_01HXYZ"`
	Metadata        json.RawMessage `json:"metadata,omitempty" swaggertype:"object"`
}

type RefundRequestDTO struct {
	Amount *float64 `json:"amount,omitempty" validate:"omitempty,gt=0" example:"20"`
	Reason string   `json:"reason,omitempty" validate:"max=500" example:"Class cancelled"`
}

type ValidatePaymentRequestDTO struct {
	Amount float64 `json:"amount" example:"20"`
}

type ValidatePaymentResponseDTO struct {
	Valid  bool   `json:"valid"`
	Reason string `json:"reason,omitempty"`
}

type FeeEstimateResponseDTO struct {
	Amount        float64 `json:"amount" example:"100"`
	Kind          string  `json:"kind" example:"credit_card"`
	ProcessingFee float64 `json:"processing_fee" example:"2.9"`
	NetAmount     float64 `json:"net_amount" example:"97.1"`
}

type RefundResponseDTO struct {
	ID                   string    `json:"id"`
	RelatedTransactionID string    `json:"related_transaction_id"`
	Amount               float64   `json:"amount" example:"-20"`
	Status               string    `json:"status" example:"processing"`
	CreatedAt            time.Time `json:"created_at"`
}
