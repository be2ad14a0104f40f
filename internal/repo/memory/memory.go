// Package memory keeps ledger entities in process memory. Values are copied on the way in
// and out, so callers never share state with the store.
package memory

import (
	"context"
	"maps"
	"slices"
	"sort"
	"sync"

	"github.com/GlebRadaev/payledger/internal/domain"
)

type MethodRepo struct {
	mu      sync.RWMutex
	order   []string
	methods map[string]domain.PaymentMethod
}

func NewMethodRepo() *MethodRepo {
	return &MethodRepo{methods: make(map[string]domain.PaymentMethod)}
}

func (r *MethodRepo) Create(_ context.Context, m *domain.PaymentMethod) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if m.IsDefault {
		r.clearDefault(m.UserID, m.ID)
	}
	r.order = append(r.order, m.ID)
	r.methods[m.ID] = *m
	return nil
}

func (r *MethodRepo) Get(_ context.Context, id string) (*domain.PaymentMethod, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	m, ok := r.methods[id]
	if !ok {
		return nil, nil
	}
	return &m, nil
}

func (r *MethodRepo) ListByUser(_ context.Context, userID string) ([]domain.PaymentMethod, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var res []domain.PaymentMethod
	for _, id := range r.order {
		if m := r.methods[id]; m.UserID == userID {
			res = append(res, m)
		}
	}
	return res, nil
}

func (r *MethodRepo) Update(_ context.Context, m *domain.PaymentMethod) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.methods[m.ID]; !ok {
		return domain.ErrNotFound
	}
	if m.IsDefault {
		r.clearDefault(m.UserID, m.ID)
	}
	r.methods[m.ID] = *m
	return nil
}

func (r *MethodRepo) clearDefault(userID, keep string) {
	for id, m := range r.methods {
		if m.UserID == userID && id != keep && m.IsDefault {
			m.IsDefault = false
			r.methods[id] = m
		}
	}
}

type TransactionRepo struct {
	mu    sync.RWMutex
	seq   map[string]int
	txns  map[string]domain.Transaction
	count int
}

func NewTransactionRepo() *TransactionRepo {
	return &TransactionRepo{
		seq:  make(map[string]int),
		txns: make(map[string]domain.Transaction),
	}
}

func (r *TransactionRepo) Create(_ context.Context, t *domain.Transaction) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.count++
	r.seq[t.ID] = r.count
	r.txns[t.ID] = cloneTransaction(*t)
	return nil
}

func (r *TransactionRepo) Get(_ context.Context, id string) (*domain.Transaction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	t, ok := r.txns[id]
	if !ok {
		return nil, nil
	}
	t = cloneTransaction(t)
	return &t, nil
}

func (r *TransactionRepo) Update(_ context.Context, t *domain.Transaction) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.txns[t.ID]; !ok {
		return domain.ErrNotFound
	}
	r.txns[t.ID] = cloneTransaction(*t)
	return nil
}

// List returns matching transactions newest first.
func (r *TransactionRepo) List(_ context.Context, f domain.TransactionFilter) ([]domain.Transaction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var res []domain.Transaction
	for _, t := range r.txns {
		if f.Match(&t) {
			res = append(res, cloneTransaction(t))
		}
	}
	sort.Slice(res, func(i, j int) bool {
		if res[i].CreatedAt.Equal(res[j].CreatedAt) {
			return r.seq[res[i].ID] > r.seq[res[j].ID]
		}
		return res[i].CreatedAt.After(res[j].CreatedAt)
	})
	if f.Limit > 0 && len(res) > f.Limit {
		res = res[:f.Limit]
	}
	return res, nil
}

type AccountRepo struct {
	mu       sync.RWMutex
	order    []string
	accounts map[string]domain.PayoutAccount
}

func NewAccountRepo() *AccountRepo {
	return &AccountRepo{accounts: make(map[string]domain.PayoutAccount)}
}

func (r *AccountRepo) Create(_ context.Context, a *domain.PayoutAccount) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if a.IsDefault {
		r.clearDefault(a.UserID, a.ID)
	}
	r.order = append(r.order, a.ID)
	r.accounts[a.ID] = *a
	return nil
}

func (r *AccountRepo) Get(_ context.Context, id string) (*domain.PayoutAccount, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	a, ok := r.accounts[id]
	if !ok {
		return nil, nil
	}
	return &a, nil
}

func (r *AccountRepo) ListByUser(_ context.Context, userID string) ([]domain.PayoutAccount, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var res []domain.PayoutAccount
	for _, id := range r.order {
		if a := r.accounts[id]; a.UserID == userID {
			res = append(res, a)
		}
	}
	return res, nil
}

func (r *AccountRepo) ListByVerification(_ context.Context, status domain.VerificationStatus) ([]domain.PayoutAccount, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var res []domain.PayoutAccount
	for _, id := range r.order {
		if a := r.accounts[id]; a.VerificationStatus == status {
			res = append(res, a)
		}
	}
	return res, nil
}

func (r *AccountRepo) Update(_ context.Context, a *domain.PayoutAccount) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.accounts[a.ID]; !ok {
		return domain.ErrNotFound
	}
	if a.IsDefault {
		r.clearDefault(a.UserID, a.ID)
	}
	r.accounts[a.ID] = *a
	return nil
}

func (r *AccountRepo) clearDefault(userID, keep string) {
	for id, a := range r.accounts {
		if a.UserID == userID && id != keep && a.IsDefault {
			a.IsDefault = false
			r.accounts[id] = a
		}
	}
}

type PayoutRepo struct {
	mu      sync.RWMutex
	seq     map[string]int
	payouts map[string]domain.Payout
	count   int
}

func NewPayoutRepo() *PayoutRepo {
	return &PayoutRepo{
		seq:     make(map[string]int),
		payouts: make(map[string]domain.Payout),
	}
}

func (r *PayoutRepo) Create(_ context.Context, p *domain.Payout) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.count++
	r.seq[p.ID] = r.count
	r.payouts[p.ID] = clonePayout(*p)
	return nil
}

func (r *PayoutRepo) Get(_ context.Context, id string) (*domain.Payout, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.payouts[id]
	if !ok {
		return nil, nil
	}
	p = clonePayout(p)
	return &p, nil
}

func (r *PayoutRepo) Update(_ context.Context, p *domain.Payout) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.payouts[p.ID]; !ok {
		return domain.ErrNotFound
	}
	r.payouts[p.ID] = clonePayout(*p)
	return nil
}

func (r *PayoutRepo) List(_ context.Context, f domain.PayoutFilter) ([]domain.Payout, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var res []domain.Payout
	for _, p := range r.payouts {
		if f.Match(&p) {
			res = append(res, clonePayout(p))
		}
	}
	sort.Slice(res, func(i, j int) bool {
		if res[i].CreatedAt.Equal(res[j].CreatedAt) {
			return r.seq[res[i].ID] > r.seq[res[j].ID]
		}
		return res[i].CreatedAt.After(res[j].CreatedAt)
	})
	if f.Limit > 0 && len(res) > f.Limit {
		res = res[:f.Limit]
	}
	return res, nil
}

func cloneTransaction(t domain.Transaction) domain.Transaction {
	if g, ok := t.Metadata.(domain.GenericMeta); ok {
		t.Metadata = domain.GenericMeta(maps.Clone(g))
	}
	return t
}

func clonePayout(p domain.Payout) domain.Payout {
	p.TransactionIDs = slices.Clone(p.TransactionIDs)
	p.Metadata.Extra = maps.Clone(p.Metadata.Extra)
	return p
}
