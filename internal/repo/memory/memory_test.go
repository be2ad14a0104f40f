package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GlebRadaev/payledger/internal/domain"
)

func TestMethodRepo(t *testing.T) {
	ctx := context.Background()
	r := NewMethodRepo()

	require.NoError(t, r.Create(ctx, &domain.PaymentMethod{ID: "pm_1", UserID: "u1", IsDefault: true, IsActive: true}))
	require.NoError(t, r.Create(ctx, &domain.PaymentMethod{ID: "pm_2", UserID: "u1", IsDefault: true, IsActive: true}))
	require.NoError(t, r.Create(ctx, &domain.PaymentMethod{ID: "pm_3", UserID: "u2", IsDefault: true, IsActive: true}))

	list, err := r.ListByUser(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "pm_1", list[0].ID)
	assert.False(t, list[0].IsDefault)
	assert.True(t, list[1].IsDefault)

	other, err := r.Get(ctx, "pm_3")
	require.NoError(t, err)
	assert.True(t, other.IsDefault, "defaults of other users are untouched")

	m, err := r.Get(ctx, "pm_1")
	require.NoError(t, err)
	m.IsDefault = true
	require.NoError(t, r.Update(ctx, m))

	second, _ := r.Get(ctx, "pm_2")
	assert.False(t, second.IsDefault)

	missing, err := r.Get(ctx, "pm_x")
	assert.NoError(t, err)
	assert.Nil(t, missing)
	assert.ErrorIs(t, r.Update(ctx, &domain.PaymentMethod{ID: "pm_x"}), domain.ErrNotFound)
}

func TestMethodRepo_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	r := NewMethodRepo()
	m := &domain.PaymentMethod{ID: "pm_1", UserID: "u1", IsActive: true}
	require.NoError(t, r.Create(ctx, m))

	m.IsActive = false
	got, _ := r.Get(ctx, "pm_1")
	assert.True(t, got.IsActive)
}

func TestTransactionRepo_List(t *testing.T) {
	ctx := context.Background()
	r := NewTransactionRepo()
	base := time.Date(2024, 5, 15, 10, 0, 0, 0, time.UTC)

	txns := []domain.Transaction{
		{ID: "txn_1", UserID: "u1", Type: domain.TransactionCharge, Category: domain.CategoryEventTicket, Status: domain.StatusCompleted, CreatedAt: base},
		{ID: "txn_2", UserID: "u1", Type: domain.TransactionCharge, Category: domain.CategoryVODPurchase, Status: domain.StatusPending, CreatedAt: base.Add(time.Hour)},
		{ID: "txn_3", UserID: "u1", Type: domain.TransactionRefund, Category: domain.CategoryEventTicket, Status: domain.StatusProcessing, CreatedAt: base.Add(time.Hour), RelatedTransactionID: "txn_1"},
		{ID: "txn_4", UserID: "u2", Type: domain.TransactionCharge, Category: domain.CategoryEventTicket, Status: domain.StatusCompleted, CreatedAt: base.Add(2 * time.Hour)},
	}
	for i := range txns {
		require.NoError(t, r.Create(ctx, &txns[i]))
	}

	tests := []struct {
		name   string
		filter domain.TransactionFilter
		want   []string
	}{
		{name: "User newest first", filter: domain.TransactionFilter{UserID: "u1"}, want: []string{"txn_3", "txn_2", "txn_1"}},
		{name: "Limit", filter: domain.TransactionFilter{UserID: "u1", Limit: 1}, want: []string{"txn_3"}},
		{name: "Category", filter: domain.TransactionFilter{Category: domain.CategoryEventTicket, Type: domain.TransactionCharge}, want: []string{"txn_4", "txn_1"}},
		{name: "Related", filter: domain.TransactionFilter{RelatedID: "txn_1"}, want: []string{"txn_3"}},
		{name: "Range", filter: domain.TransactionFilter{From: base.Add(time.Hour), To: base.Add(time.Hour)}, want: []string{"txn_3", "txn_2"}},
		{name: "Nothing", filter: domain.TransactionFilter{Status: domain.StatusFailed}, want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := r.List(ctx, tt.filter)
			require.NoError(t, err)
			var got []string
			for _, txn := range res {
				got = append(got, txn.ID)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTransactionRepo_GetUpdate(t *testing.T) {
	ctx := context.Background()
	r := NewTransactionRepo()
	require.NoError(t, r.Create(ctx, &domain.Transaction{ID: "txn_1", Status: domain.StatusPending, Metadata: domain.GenericMeta{"a": "b"}}))

	got, err := r.Get(ctx, "txn_1")
	require.NoError(t, err)
	got.Metadata.(domain.GenericMeta)["a"] = "changed"
	got.Status = domain.StatusProcessing
	require.NoError(t, r.Update(ctx, got))

	again, _ := r.Get(ctx, "txn_1")
	assert.Equal(t, domain.StatusProcessing, again.Status)
	assert.Equal(t, "changed", again.Metadata.(domain.GenericMeta)["a"])

	none, err := r.Get(ctx, "txn_x")
	assert.NoError(t, err)
	assert.Nil(t, none)
	assert.ErrorIs(t, r.Update(ctx, &domain.Transaction{ID: "txn_x"}), domain.ErrNotFound)
}

func TestAccountRepo(t *testing.T) {
	ctx := context.Background()
	r := NewAccountRepo()

	require.NoError(t, r.Create(ctx, &domain.PayoutAccount{ID: "pa_1", UserID: "u1", IsDefault: true, VerificationStatus: domain.VerificationVerified}))
	require.NoError(t, r.Create(ctx, &domain.PayoutAccount{ID: "pa_2", UserID: "u1", IsDefault: true, VerificationStatus: domain.VerificationPending}))

	list, err := r.ListByUser(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.False(t, list[0].IsDefault)
	assert.True(t, list[1].IsDefault)

	pending, err := r.ListByVerification(ctx, domain.VerificationPending)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, "pa_2", pending[0].ID)

	a, _ := r.Get(ctx, "pa_1")
	a.IsDefault = true
	require.NoError(t, r.Update(ctx, a))
	b, _ := r.Get(ctx, "pa_2")
	assert.False(t, b.IsDefault)

	assert.ErrorIs(t, r.Update(ctx, &domain.PayoutAccount{ID: "pa_x"}), domain.ErrNotFound)
}

func TestPayoutRepo(t *testing.T) {
	ctx := context.Background()
	r := NewPayoutRepo()
	base := time.Date(2024, 5, 15, 10, 0, 0, 0, time.UTC)

	p := &domain.Payout{ID: "payout_1", UserID: "u1", Status: domain.StatusPending, Category: domain.PayoutVODEarnings, TransactionIDs: []string{"txn_1"}, CreatedAt: base}
	require.NoError(t, r.Create(ctx, p))
	require.NoError(t, r.Create(ctx, &domain.Payout{ID: "payout_2", UserID: "u1", Status: domain.StatusCompleted, Category: domain.PayoutCommission, CreatedAt: base.Add(time.Minute)}))

	p.TransactionIDs[0] = "mutated"
	got, err := r.Get(ctx, "payout_1")
	require.NoError(t, err)
	assert.Equal(t, []string{"txn_1"}, got.TransactionIDs)

	list, err := r.List(ctx, domain.PayoutFilter{UserID: "u1"})
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "payout_2", list[0].ID)

	list, err = r.List(ctx, domain.PayoutFilter{Status: domain.StatusPending, Limit: 5})
	require.NoError(t, err)
	require.Len(t, list, 1)

	got.Status = domain.StatusProcessing
	require.NoError(t, r.Update(ctx, got))
	again, _ := r.Get(ctx, "payout_1")
	assert.Equal(t, domain.StatusProcessing, again.Status)

	assert.ErrorIs(t, r.Update(ctx, &domain.Payout{ID: "payout_x"}), domain.ErrNotFound)
	none, err := r.Get(ctx, "payout_x")
	assert.NoError(t, err)
	assert.Nil(t, none)
}
