package domain

// NewPaymentMethod is the input of adding a payment method. CardNumber, when set, is
// checked and reduced to its last four digits; it is never stored.
type NewPaymentMethod struct {
	Kind       PaymentMethodKind
	IsDefault  bool
	Details    PaymentMethodDetails
	CardNumber string
}

// PaymentMethodUpdate is a partial update; nil fields are left alone.
type PaymentMethodUpdate struct {
	IsDefault *bool
	IsActive  *bool
	Details   *PaymentMethodDetails
}

type PaymentRequest struct {
	UserID          string
	Amount          float64
	Currency        string
	Category        TransactionCategory
	Description     string
	PaymentMethodID string
	Metadata        Metadata
}

type NewPayoutAccount struct {
	Kind      PayoutAccountKind
	IsDefault bool
	Details   PayoutAccountDetails
}

type PayoutAccountUpdate struct {
	IsDefault *bool
	Details   *PayoutAccountDetails
}

type PayoutRequest struct {
	UserID          string
	UserName        string
	UserRole        string
	Amount          float64
	Currency        string
	Category        PayoutCategory
	Period          Period
	TransactionIDs  []string
	PayoutAccountID string
	Metadata        PayoutMetadata
}

type PaymentConfigUpdate struct {
	Processors     *Processors
	Fees           *Fees
	Limits         *Limits
	PayoutSchedule *PayoutSchedule
}

const DefaultCurrency = "USD"

func (k PaymentMethodKind) Valid() bool {
	switch k {
	case MethodCreditCard, MethodBankTransfer, MethodPayPal, MethodApplePay, MethodGooglePay:
		return true
	}
	return false
}

func (k PayoutAccountKind) Valid() bool {
	switch k {
	case AccountBank, AccountPayPal, AccountDebitCard:
		return true
	}
	return false
}

func (c TransactionCategory) Valid() bool {
	switch c {
	case CategoryVODPurchase, CategoryEventTicket, CategoryPromotionalProduct, CategoryTShirtSale,
		CategorySubscription, CategoryOther:
		return true
	}
	return false
}

func (c PayoutCategory) Valid() bool {
	switch c {
	case PayoutVODEarnings, PayoutTShirtEarnings, PayoutEventRevenue, PayoutCommission, PayoutAffiliate, PayoutOther:
		return true
	}
	return false
}
