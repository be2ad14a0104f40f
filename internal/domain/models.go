package domain

import "time"

type PaymentMethodKind string

const (
	MethodCreditCard   PaymentMethodKind = "credit_card"
	MethodBankTransfer PaymentMethodKind = "bank_transfer"
	MethodPayPal       PaymentMethodKind = "paypal"
	MethodApplePay     PaymentMethodKind = "apple_pay"
	MethodGooglePay    PaymentMethodKind = "google_pay"
)

type PaymentMethodDetails struct {
	CardLast4     string `json:"card_last4,omitempty"`
	CardBrand     string `json:"card_brand,omitempty"`
	CardExpiry    string `json:"card_expiry,omitempty"`
	BankName      string `json:"bank_name,omitempty"`
	AccountLast4  string `json:"account_last4,omitempty"`
	RoutingNumber string `json:"routing_number,omitempty"`
	PayPalEmail   string `json:"paypal_email,omitempty"`
	WalletID      string `json:"wallet_id,omitempty"`
}

type PaymentMethod struct {
	ID        string               `json:"id"`
	UserID    string               `json:"user_id"`
	Kind      PaymentMethodKind    `json:"kind"`
	IsDefault bool                 `json:"is_default"`
	Details   PaymentMethodDetails `json:"details"`
	IsActive  bool                 `json:"is_active"`
	CreatedAt time.Time            `json:"created_at"`
	UpdatedAt time.Time            `json:"updated_at"`
}

type TransactionType string

const (
	TransactionCharge   TransactionType = "charge"
	TransactionRefund   TransactionType = "refund"
	TransactionPayout   TransactionType = "payout"
	TransactionTransfer TransactionType = "transfer"
)

type TransactionCategory string

const (
	CategoryVODPurchase        TransactionCategory = "vod_purchase"
	CategoryEventTicket        TransactionCategory = "event_ticket"
	CategoryPromotionalProduct TransactionCategory = "promotional_product"
	CategoryTShirtSale         TransactionCategory = "tshirt_sale"
	CategorySubscription       TransactionCategory = "subscription"
	CategoryOther              TransactionCategory = "other"
)

type Transaction struct {
	ID                   string              `json:"id"`
	UserID               string              `json:"user_id"`
	Type                 TransactionType     `json:"type"`
	Category             TransactionCategory `json:"category"`
	Amount               float64             `json:"amount"`
	Currency             string              `json:"currency"`
	Status               Status              `json:"status"`
	PaymentMethodID      string              `json:"payment_method_id,omitempty"`
	PaymentReference     string              `json:"payment_reference"`
	Description          string              `json:"description"`
	Metadata             Metadata            `json:"metadata,omitempty"`
	ProcessingFee        float64             `json:"processing_fee"`
	NetAmount            float64             `json:"net_amount"`
	CreatedAt            time.Time           `json:"created_at"`
	ProcessedAt          *time.Time          `json:"processed_at,omitempty"`
	FailureReason        string              `json:"failure_reason,omitempty"`
	RelatedTransactionID string              `json:"related_transaction_id,omitempty"`
}

type PayoutAccountKind string

const (
	AccountBank      PayoutAccountKind = "bank_account"
	AccountPayPal    PayoutAccountKind = "paypal"
	AccountDebitCard PayoutAccountKind = "debit_card"
)

type VerificationStatus string

const (
	VerificationPending        VerificationStatus = "pending"
	VerificationVerified       VerificationStatus = "verified"
	VerificationFailed         VerificationStatus = "failed"
	VerificationRequiresAction VerificationStatus = "requires_action"
)

type PayoutAccountDetails struct {
	BankName          string `json:"bank_name,omitempty"`
	AccountHolderName string `json:"account_holder_name,omitempty"`
	AccountNumber     string `json:"account_number,omitempty"`
	RoutingNumber     string `json:"routing_number,omitempty"`
	AccountType       string `json:"account_type,omitempty"`
	PayPalEmail       string `json:"paypal_email,omitempty"`
	CardLast4         string `json:"card_last4,omitempty"`
	CardBrand         string `json:"card_brand,omitempty"`
}

type PayoutAccount struct {
	ID                 string               `json:"id"`
	UserID             string               `json:"user_id"`
	Kind               PayoutAccountKind    `json:"kind"`
	Details            PayoutAccountDetails `json:"details"`
	IsDefault          bool                 `json:"is_default"`
	IsVerified         bool                 `json:"is_verified"`
	VerificationStatus VerificationStatus   `json:"verification_status"`
	CreatedAt          time.Time            `json:"created_at"`
	VerifiedAt         *time.Time           `json:"verified_at,omitempty"`
	FailureReason      string               `json:"failure_reason,omitempty"`
}

type PayoutCategory string

const (
	PayoutVODEarnings    PayoutCategory = "vod_earnings"
	PayoutTShirtEarnings PayoutCategory = "tshirt_earnings"
	PayoutEventRevenue   PayoutCategory = "event_revenue"
	PayoutCommission     PayoutCategory = "commission"
	PayoutAffiliate      PayoutCategory = "affiliate"
	PayoutOther          PayoutCategory = "other"
)

type Period struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

type PayoutMetadata struct {
	TotalSales  int               `json:"total_sales,omitempty"`
	SalesAmount float64           `json:"sales_amount,omitempty"`
	PlatformFee float64           `json:"platform_fee,omitempty"`
	Extra       map[string]string `json:"extra,omitempty"`
}

type Payout struct {
	ID              string         `json:"id"`
	UserID          string         `json:"user_id"`
	UserName        string         `json:"user_name"`
	UserRole        string         `json:"user_role"`
	Amount          float64        `json:"amount"`
	Currency        string         `json:"currency"`
	Status          Status         `json:"status"`
	PayoutAccountID string         `json:"payout_account_id"`
	Category        PayoutCategory `json:"category"`
	Period          Period         `json:"period"`
	TransactionIDs  []string       `json:"transaction_ids"`
	ProcessingFee   float64        `json:"processing_fee"`
	NetAmount       float64        `json:"net_amount"`
	PayoutReference string         `json:"payout_reference,omitempty"`
	ScheduledFor    *time.Time     `json:"scheduled_for,omitempty"`
	ProcessedAt     *time.Time     `json:"processed_at,omitempty"`
	FailureReason   string         `json:"failure_reason,omitempty"`
	Metadata        PayoutMetadata `json:"metadata"`
	CreatedAt       time.Time      `json:"created_at"`
}

// TransactionFilter narrows a transaction listing. Zero values match everything;
// From and To are inclusive bounds on CreatedAt.
type TransactionFilter struct {
	UserID    string
	Category  TransactionCategory
	Type      TransactionType
	Status    Status
	RelatedID string
	From      time.Time
	To        time.Time
	Limit     int
}

func (f TransactionFilter) Match(t *Transaction) bool {
	if f.UserID != "" && t.UserID != f.UserID {
		return false
	}
	if f.Category != "" && t.Category != f.Category {
		return false
	}
	if f.Type != "" && t.Type != f.Type {
		return false
	}
	if f.Status != "" && t.Status != f.Status {
		return false
	}
	if f.RelatedID != "" && t.RelatedTransactionID != f.RelatedID {
		return false
	}
	return inRange(t.CreatedAt, f.From, f.To)
}

type PayoutFilter struct {
	UserID   string
	Category PayoutCategory
	Status   Status
	From     time.Time
	To       time.Time
	Limit    int
}

func (f PayoutFilter) Match(p *Payout) bool {
	if f.UserID != "" && p.UserID != f.UserID {
		return false
	}
	if f.Category != "" && p.Category != f.Category {
		return false
	}
	if f.Status != "" && p.Status != f.Status {
		return false
	}
	return inRange(p.CreatedAt, f.From, f.To)
}

func inRange(ts, from, to time.Time) bool {
	if !from.IsZero() && ts.Before(from) {
		return false
	}
	if !to.IsZero() && ts.After(to) {
		return false
	}
	return true
}
