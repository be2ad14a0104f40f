package payoutservice

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gomock "go.uber.org/mock/gomock"

	"github.com/GlebRadaev/payledger/internal/domain"
	"github.com/GlebRadaev/payledger/internal/processor"
	"github.com/GlebRadaev/payledger/internal/repo/memory"
	"github.com/GlebRadaev/payledger/internal/service/configservice"
)

var start = time.Date(2024, 5, 15, 10, 0, 0, 0, time.UTC)

var sim = Simulation{
	VerificationDelay: 3 * time.Second,
	StartDelay:        5 * time.Second,
	SettleDelay:       10 * time.Second,
	VerificationRate:  0.9,
	SuccessRate:       0.98,
}

type fixture struct {
	svc     *Service
	clock   *processor.ManualScheduler
	outcome *processor.FixedOutcome
	payouts *memory.PayoutRepo
}

type switchOutcome struct{ ok *processor.FixedOutcome }

func (o switchOutcome) Succeeds(rate float64) bool { return o.ok.Succeeds(rate) }

func newFixture(t *testing.T) *fixture {
	t.Helper()
	clock := processor.NewManualScheduler(start)
	ok := processor.FixedOutcome(true)
	payouts := memory.NewPayoutRepo()
	rt := processor.Runtime{
		Scheduler: clock,
		Outcome:   switchOutcome{ok: &ok},
		Clock:     clock,
	}
	return &fixture{
		svc:     New(memory.NewAccountRepo(), payouts, configservice.New(domain.DefaultPaymentConfig()), rt, sim),
		clock:   clock,
		outcome: &ok,
		payouts: payouts,
	}
}

func (f *fixture) verifiedAccount(t *testing.T, userID string, kind domain.PayoutAccountKind) *domain.PayoutAccount {
	t.Helper()
	a, err := f.svc.AddAccount(context.Background(), userID, domain.NewPayoutAccount{
		Kind:    kind,
		Details: domain.PayoutAccountDetails{BankName: "First", AccountNumber: "000123456789"},
	})
	require.NoError(t, err)
	f.clock.Advance(sim.VerificationDelay)
	return a
}

func request(userID string, amount float64) domain.PayoutRequest {
	return domain.PayoutRequest{
		UserID:   userID,
		UserName: "Ann",
		UserRole: "instructor",
		Amount:   amount,
		Category: domain.PayoutVODEarnings,
		Period: domain.Period{
			Start: time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC),
			End:   time.Date(2024, 5, 14, 0, 0, 0, 0, time.UTC),
		},
		TransactionIDs: []string{"txn_1", "txn_2"},
	}
}

func NewMock(t *testing.T) (*Service, *MockAccountRepo, *MockPayoutRepo) {
	ctrl := gomock.NewController(t)
	accounts := NewMockAccountRepo(ctrl)
	payouts := NewMockPayoutRepo(ctrl)
	config := NewMockConfigProvider(ctrl)
	config.EXPECT().Get().Return(domain.DefaultPaymentConfig()).AnyTimes()
	clock := processor.NewManualScheduler(start)
	rt := processor.Runtime{Scheduler: clock, Outcome: processor.FixedOutcome(true), Clock: clock}
	return New(accounts, payouts, config, rt, sim), accounts, payouts
}

func TestService_AddAccount(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	first, err := f.svc.AddAccount(ctx, "u1", domain.NewPayoutAccount{
		Kind:    domain.AccountBank,
		Details: domain.PayoutAccountDetails{AccountNumber: "000123456789"},
	})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(first.ID, "pa_"))
	assert.True(t, first.IsDefault)
	assert.False(t, first.IsVerified)
	assert.Equal(t, domain.VerificationPending, first.VerificationStatus)
	assert.Equal(t, "****6789", first.Details.AccountNumber)

	second, err := f.svc.AddAccount(ctx, "u1", domain.NewPayoutAccount{Kind: domain.AccountPayPal, IsDefault: true})
	require.NoError(t, err)
	assert.True(t, second.IsDefault)

	f.clock.Advance(sim.VerificationDelay)
	accounts, err := f.svc.GetUserAccounts(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, accounts, 2)
	assert.False(t, accounts[0].IsDefault, "second default replaces the first")
	assert.True(t, accounts[1].IsDefault)
	for _, a := range accounts {
		assert.True(t, a.IsVerified)
		assert.Equal(t, domain.VerificationVerified, a.VerificationStatus)
		require.NotNil(t, a.VerifiedAt)
		assert.Equal(t, start.Add(sim.VerificationDelay), *a.VerifiedAt)
	}

	_, err = f.svc.AddAccount(ctx, "u1", domain.NewPayoutAccount{Kind: "crypto"})
	assert.ErrorIs(t, err, domain.ErrInvalidDetails)
	_, err = f.svc.AddAccount(ctx, "u1", domain.NewPayoutAccount{Kind: domain.AccountBank, Details: domain.PayoutAccountDetails{AccountNumber: "12"}})
	assert.ErrorIs(t, err, domain.ErrInvalidDetails)
}

func TestService_AddAccountVerificationFails(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	*f.outcome = false

	a, err := f.svc.AddAccount(ctx, "u1", domain.NewPayoutAccount{Kind: domain.AccountDebitCard})
	require.NoError(t, err)
	f.clock.Flush()

	accounts, err := f.svc.GetUserAccounts(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, accounts, 1)
	assert.Equal(t, a.ID, accounts[0].ID)
	assert.False(t, accounts[0].IsVerified)
	assert.Equal(t, domain.VerificationFailed, accounts[0].VerificationStatus)
	assert.Equal(t, "Unable to verify account details", accounts[0].FailureReason)
	assert.Nil(t, accounts[0].VerifiedAt)

	_, err = f.svc.CreatePayout(ctx, request("u1", 100))
	assert.ErrorIs(t, err, domain.ErrNotVerified)
}

func TestService_UpdateAccount(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	first := f.verifiedAccount(t, "u1", domain.AccountBank)
	second := f.verifiedAccount(t, "u1", domain.AccountPayPal)

	updated, err := f.svc.UpdateAccount(ctx, "u1", second.ID, domain.PayoutAccountUpdate{
		IsDefault: func() *bool { b := true; return &b }(),
		Details:   &domain.PayoutAccountDetails{PayPalEmail: "ann@example.com"},
	})
	require.NoError(t, err)
	assert.True(t, updated.IsDefault)
	assert.Equal(t, "ann@example.com", updated.Details.PayPalEmail)
	assert.True(t, updated.IsVerified)

	accounts, err := f.svc.GetUserAccounts(ctx, "u1")
	require.NoError(t, err)
	for _, a := range accounts {
		assert.Equal(t, a.ID == second.ID, a.IsDefault, a.ID)
	}

	_, err = f.svc.UpdateAccount(ctx, "u2", first.ID, domain.PayoutAccountUpdate{})
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = f.svc.UpdateAccount(ctx, "", "pa_missing", domain.PayoutAccountUpdate{})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestService_CreatePayout(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	account := f.verifiedAccount(t, "u1", domain.AccountBank)
	created := f.clock.Now()

	payout, err := f.svc.CreatePayout(ctx, request("u1", 100))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(payout.ID, "payout_"))
	assert.Equal(t, domain.StatusPending, payout.Status)
	assert.Equal(t, account.ID, payout.PayoutAccountID)
	assert.Equal(t, "USD", payout.Currency)
	assert.Equal(t, 0.25, payout.ProcessingFee)
	assert.Equal(t, 99.75, payout.NetAmount)
	assert.Equal(t, []string{"txn_1", "txn_2"}, payout.TransactionIDs)
	assert.Equal(t, created, payout.CreatedAt)
	require.NotNil(t, payout.ScheduledFor)
	assert.True(t, time.Date(2024, 5, 20, 21, 0, 0, 0, time.UTC).Equal(*payout.ScheduledFor), "next monday cutoff in Chicago")

	f.clock.Advance(sim.StartDelay)
	got, err := f.svc.GetPayout(ctx, "u1", payout.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusProcessing, got.Status)

	f.clock.Advance(sim.SettleDelay)
	got, err = f.svc.GetPayout(ctx, "u1", payout.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCompleted, got.Status)
	assert.True(t, strings.HasPrefix(got.PayoutReference, "po_"))
	require.NotNil(t, got.ProcessedAt)
	assert.Equal(t, created.Add(sim.StartDelay+sim.SettleDelay), *got.ProcessedAt)
}

func TestService_CreatePayoutValidation(t *testing.T) {
	f := newFixture(t)
	bank := f.verifiedAccount(t, "u1", domain.AccountBank)
	foreign := f.verifiedAccount(t, "u2", domain.AccountBank)

	tests := []struct {
		name      string
		req       func() domain.PayoutRequest
		expectErr error
	}{
		{
			name:      "below minimum",
			req:       func() domain.PayoutRequest { return request("u1", 10) },
			expectErr: domain.ErrAmountOutOfRange,
		},
		{
			name:      "above maximum",
			req:       func() domain.PayoutRequest { return request("u1", 25000.01) },
			expectErr: domain.ErrAmountOutOfRange,
		},
		{
			name: "period reversed",
			req: func() domain.PayoutRequest {
				r := request("u1", 100)
				r.Period.Start, r.Period.End = r.Period.End, r.Period.Start
				return r
			},
			expectErr: domain.ErrInvalidPeriod,
		},
		{
			name: "unknown category",
			req: func() domain.PayoutRequest {
				r := request("u1", 100)
				r.Category = "tips"
				return r
			},
			expectErr: domain.ErrInvalidDetails,
		},
		{
			name:      "no account",
			req:       func() domain.PayoutRequest { return request("u3", 100) },
			expectErr: domain.ErrNoPayoutAccount,
		},
		{
			name: "someone else's account",
			req: func() domain.PayoutRequest {
				r := request("u1", 100)
				r.PayoutAccountID = foreign.ID
				return r
			},
			expectErr: domain.ErrNoPayoutAccount,
		},
		{
			name: "explicit account",
			req: func() domain.PayoutRequest {
				r := request("u1", 25)
				r.PayoutAccountID = bank.ID
				r.Category = ""
				return r
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			payout, err := f.svc.CreatePayout(context.Background(), tt.req())
			if tt.expectErr != nil {
				assert.ErrorIs(t, err, tt.expectErr)
				assert.Nil(t, payout)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, domain.PayoutOther, payout.Category)
		})
	}
}

func TestService_PayoutFails(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.verifiedAccount(t, "u1", domain.AccountPayPal)

	payout, err := f.svc.CreatePayout(ctx, request("u1", 50))
	require.NoError(t, err)
	assert.Equal(t, 1.00, payout.ProcessingFee)

	*f.outcome = false
	f.clock.Flush()

	got, err := f.svc.GetPayout(ctx, "", payout.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusFailed, got.Status)
	assert.Equal(t, "Bank account temporarily unavailable", got.FailureReason)
	assert.Empty(t, got.PayoutReference)
}

func TestService_ProcessPayout(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.verifiedAccount(t, "u1", domain.AccountBank)

	payout, err := f.svc.CreatePayout(ctx, request("u1", 100))
	require.NoError(t, err)

	started, err := f.svc.ProcessPayout(ctx, "", payout.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusProcessing, started.Status)

	_, err = f.svc.ProcessPayout(ctx, "", payout.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidState)

	f.clock.Flush()
	got, err := f.svc.GetPayout(ctx, "", payout.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCompleted, got.Status, "deferred start skips a payout already started")

	_, err = f.svc.ProcessPayout(ctx, "", payout.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidState)
	_, err = f.svc.ProcessPayout(ctx, "", "payout_missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestService_CancelPayout(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.verifiedAccount(t, "u1", domain.AccountBank)

	payout, err := f.svc.CreatePayout(ctx, request("u1", 100))
	require.NoError(t, err)

	_, err = f.svc.CancelPayout(ctx, "u2", payout.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	cancelled, err := f.svc.CancelPayout(ctx, "u1", payout.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCancelled, cancelled.Status)

	f.clock.Flush()
	got, err := f.svc.GetPayout(ctx, "u1", payout.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCancelled, got.Status)

	_, err = f.svc.CancelPayout(ctx, "u1", payout.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidState)
}

func TestService_GetUserPayouts(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.verifiedAccount(t, "u1", domain.AccountBank)
	f.verifiedAccount(t, "u2", domain.AccountBank)

	_, err := f.svc.CreatePayout(ctx, request("u1", 100))
	require.NoError(t, err)
	tshirt := request("u1", 30)
	tshirt.Category = domain.PayoutTShirtEarnings
	_, err = f.svc.CreatePayout(ctx, tshirt)
	require.NoError(t, err)
	_, err = f.svc.CreatePayout(ctx, request("u2", 100))
	require.NoError(t, err)

	all, err := f.svc.GetUserPayouts(ctx, "u1", domain.PayoutFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 2)

	shirts, err := f.svc.GetUserPayouts(ctx, "u1", domain.PayoutFilter{Category: domain.PayoutTShirtEarnings})
	require.NoError(t, err)
	require.Len(t, shirts, 1)
	assert.Equal(t, 30.0, shirts[0].Amount)
}

func TestService_Resume(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	account := f.verifiedAccount(t, "u1", domain.AccountBank)

	require.NoError(t, f.payouts.Create(ctx, &domain.Payout{ID: "payout_a", UserID: "u1", PayoutAccountID: account.ID, Amount: 50, Status: domain.StatusPending, CreatedAt: start}))
	require.NoError(t, f.payouts.Create(ctx, &domain.Payout{ID: "payout_b", UserID: "u1", PayoutAccountID: account.ID, Amount: 50, Status: domain.StatusProcessing, CreatedAt: start}))
	_, err := f.svc.AddAccount(ctx, "u1", domain.NewPayoutAccount{Kind: domain.AccountPayPal})
	require.NoError(t, err)

	n, err := f.svc.Resume(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	f.clock.Flush()
	for _, id := range []string{"payout_a", "payout_b"} {
		p, err := f.svc.GetPayout(ctx, "", id)
		require.NoError(t, err)
		assert.Equal(t, domain.StatusCompleted, p.Status, id)
	}
	accounts, err := f.svc.GetUserAccounts(ctx, "u1")
	require.NoError(t, err)
	for _, a := range accounts {
		assert.True(t, a.IsVerified, a.ID)
	}
}

func TestService_RepoErrors(t *testing.T) {
	svc, accounts, payouts := NewMock(t)
	ctx := context.Background()
	repoErr := errors.New("db down")

	accounts.EXPECT().ListByUser(gomock.Any(), "u1").Return(nil, repoErr)
	_, err := svc.AddAccount(ctx, "u1", domain.NewPayoutAccount{Kind: domain.AccountBank})
	assert.ErrorIs(t, err, repoErr)

	accounts.EXPECT().ListByUser(gomock.Any(), "u1").Return([]domain.PayoutAccount{
		{ID: "pa_1", UserID: "u1", Kind: domain.AccountBank, IsDefault: true, IsVerified: true},
	}, nil)
	payouts.EXPECT().Create(gomock.Any(), gomock.Any()).Return(repoErr)
	_, err = svc.CreatePayout(ctx, request("u1", 100))
	assert.ErrorIs(t, err, repoErr)

	accounts.EXPECT().ListByVerification(gomock.Any(), domain.VerificationPending).Return(nil, repoErr)
	_, err = svc.Resume(ctx)
	assert.ErrorIs(t, err, repoErr)
}
