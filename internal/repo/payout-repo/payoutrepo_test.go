package payoutrepo

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GlebRadaev/payledger/internal/domain"
)

var payoutCols = []string{"id", "user_id", "user_name", "user_role", "amount", "currency", "status", "payout_account_id",
	"category", "period_start", "period_end", "transaction_ids", "processing_fee", "net_amount", "payout_reference",
	"scheduled_for", "processed_at", "failure_reason", "metadata", "created_at"}

func NewMock(t *testing.T) (*Repository, pgxmock.PgxPoolIface) {
	mockDB, err := pgxmock.NewPool()
	require.NoError(t, err)
	return New(mockDB), mockDB
}

func TestRepository_Create(t *testing.T) {
	repo, mock := NewMock(t)
	now := time.Date(2024, 5, 15, 10, 0, 0, 0, time.UTC)
	start := now.AddDate(0, 0, -7)

	tests := []struct {
		name      string
		payout    *domain.Payout
		mockSetup func()
		expectErr bool
	}{
		{
			name: "Inserted with empty transaction list",
			payout: &domain.Payout{
				ID: "payout_1", UserID: "u1", UserName: "Ann", UserRole: "instructor", Amount: 100, Currency: "USD",
				Status: domain.StatusPending, PayoutAccountID: "pa_1", Category: domain.PayoutVODEarnings,
				Period: domain.Period{Start: start, End: now}, ProcessingFee: 0.25, NetAmount: 99.75, CreatedAt: now,
			},
			mockSetup: func() {
				mock.ExpectExec(regexp.QuoteMeta(insertPayout)).
					WithArgs("payout_1", "u1", "Ann", "instructor", 100.0, "USD", domain.StatusPending, "pa_1",
						domain.PayoutVODEarnings, start, now, []string{}, 0.25, 99.75, "", pgxmock.AnyArg(),
						pgxmock.AnyArg(), "", pgxmock.AnyArg(), now).
					WillReturnResult(pgxmock.NewResult("INSERT", 1))
			},
		},
		{
			name:   "Database error",
			payout: &domain.Payout{ID: "payout_2"},
			mockSetup: func() {
				mock.ExpectExec(regexp.QuoteMeta(insertPayout)).WillReturnError(errors.New("database error"))
			},
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()
			err := repo.Create(context.Background(), tt.payout)
			if tt.expectErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestRepository_Get(t *testing.T) {
	repo, mock := NewMock(t)
	now := time.Date(2024, 5, 15, 10, 0, 0, 0, time.UTC)
	start := now.AddDate(0, 0, -7)
	scheduled := time.Date(2024, 5, 20, 21, 0, 0, 0, time.UTC)
	query := regexp.QuoteMeta(selectPayouts + ` WHERE id = $1`)

	tests := []struct {
		name      string
		id        string
		mockSetup func()
		expectErr bool
		result    *domain.Payout
	}{
		{
			name: "Pending payout",
			id:   "payout_1",
			mockSetup: func() {
				rows := pgxmock.NewRows(payoutCols).AddRow("payout_1", "u1", "Ann", "instructor", 100.0, "USD",
					domain.StatusPending, "pa_1", domain.PayoutVODEarnings, start, now, []string{"txn_1", "txn_2"},
					1.0, 99.0, "", &scheduled, nil, "", []byte(`{"total_sales":2,"sales_amount":120}`), now)
				mock.ExpectQuery(query).WithArgs("payout_1").WillReturnRows(rows)
			},
			result: &domain.Payout{
				ID: "payout_1", UserID: "u1", UserName: "Ann", UserRole: "instructor", Amount: 100, Currency: "USD",
				Status: domain.StatusPending, PayoutAccountID: "pa_1", Category: domain.PayoutVODEarnings,
				Period: domain.Period{Start: start, End: now}, TransactionIDs: []string{"txn_1", "txn_2"},
				ProcessingFee: 1, NetAmount: 99, ScheduledFor: &scheduled,
				Metadata:  domain.PayoutMetadata{TotalSales: 2, SalesAmount: 120},
				CreatedAt: now,
			},
		},
		{
			name: "Unknown payout returns nil",
			id:   "payout_x",
			mockSetup: func() {
				mock.ExpectQuery(query).WithArgs("payout_x").WillReturnError(pgx.ErrNoRows)
			},
		},
		{
			name: "Database error",
			id:   "payout_1",
			mockSetup: func() {
				mock.ExpectQuery(query).WithArgs("payout_1").WillReturnError(errors.New("database error"))
			},
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()
			result, err := repo.Get(context.Background(), tt.id)
			if tt.expectErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.result, result)
		})
	}
}

func TestRepository_Update(t *testing.T) {
	repo, mock := NewMock(t)
	now := time.Date(2024, 5, 15, 10, 0, 0, 0, time.UTC)

	p := &domain.Payout{ID: "payout_1", Status: domain.StatusCompleted, PayoutReference: "po_ref", ProcessedAt: &now}
	mock.ExpectExec(regexp.QuoteMeta(updatePayout)).
		WithArgs("payout_1", domain.StatusCompleted, "po_ref", pgxmock.AnyArg(), "", pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	require.NoError(t, repo.Update(context.Background(), p))

	mock.ExpectExec(regexp.QuoteMeta(updatePayout)).
		WithArgs("payout_1", domain.StatusCompleted, "po_ref", pgxmock.AnyArg(), "", pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))
	assert.ErrorIs(t, repo.Update(context.Background(), p), domain.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_List(t *testing.T) {
	repo, mock := NewMock(t)
	now := time.Date(2024, 5, 15, 10, 0, 0, 0, time.UTC)
	filter := domain.PayoutFilter{UserID: "u1", Status: domain.StatusPending}

	query, args := buildListQuery(filter)
	assert.Equal(t, selectPayouts+" WHERE user_id = $1 AND status = $2 ORDER BY created_at DESC, id DESC", query)
	assert.Equal(t, []any{"u1", domain.StatusPending}, args)

	rows := pgxmock.NewRows(payoutCols).AddRow("payout_1", "u1", "", "", 50.0, "USD", domain.StatusPending, "pa_1",
		domain.PayoutCommission, now, now, []string{}, 1.0, 49.0, "", nil, nil, "", []byte(`{}`), now)
	mock.ExpectQuery(regexp.QuoteMeta(query)).WithArgs("u1", domain.StatusPending).WillReturnRows(rows)

	payouts, err := repo.List(context.Background(), filter)
	require.NoError(t, err)
	require.Len(t, payouts, 1)
	assert.Equal(t, domain.PayoutCommission, payouts[0].Category)
	assert.NoError(t, mock.ExpectationsWereMet())
}
