package ids

import (
	"crypto/rand"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"
)

const (
	PaymentMethodPrefix = "pm_"
	TransactionPrefix   = "txn_"
	RefundPrefix        = "txn_refund_"
	PayoutAccountPrefix = "pa_"
	PayoutPrefix        = "payout_"
	EventPrefix         = "evt_"
)

var (
	mu      sync.Mutex
	entropy = ulid.Monotonic(rand.Reader, 0)
)

// New returns prefix followed by a lowercase ULID. IDs created later sort after earlier ones.
func New(prefix string) string {
	mu.Lock()
	id := ulid.MustNew(ulid.Timestamp(time.Now()), entropy)
	mu.Unlock()
	return prefix + strings.ToLower(id.String())
}

// Reference builds an external processor reference such as "paypal_<uuid>".
func Reference(kind string) string {
	return kind + "_" + uuid.NewString()
}
