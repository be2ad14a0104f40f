package transactionrepo

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

var txnCols = []string{"id", "user_id", "type", "category", "amount", "currency", "status", "payment_method_id",
	"payment_reference", "description", "metadata", "processing_fee", "net_amount", "created_at", "processed_at",
	"failure_reason", "related_transaction_id"}

func NewMock(t *testing.T) (*Repository, pgxmock.PgxPoolIface) {
	mockDB, err := pgxmock.NewPool()
	require.NoError(t, err)
	return New(mockDB), mockDB
}

func TestRepository_Create(t *testing.T) {
	repo, mock := NewMock(t)
	now := time.Date(2024, 5, 15, 10, 0, 0, 0, time.UTC)
	txn := &domain.Transaction{
		ID: "txn_1", UserID: "u1", Type: domain.TransactionCharge, Category: domain.CategoryEventTicket,
		Amount: 100, Currency: "USD", Status: domain.StatusPending, PaymentMethodID: "pm_1",
		PaymentReference: "credit_card_ref", Description: "x", ProcessingFee: 2.9, NetAmount: 97.1, CreatedAt: now,
		Metadata: domain.EventTicketMeta{EventID: "ev_1", Quantity: 2},
	}

	tests := []struct {
		name      string
		mockSetup func()
		expectErr bool
	}{
		{
			name: "Inserted",
			mockSetup: func() {
				mock.ExpectExec(regexp.QuoteMeta(insertTransaction)).
					WithArgs("txn_1", "u1", domain.TransactionCharge, domain.CategoryEventTicket, 100.0, "USD",
						domain.StatusPending, "pm_1", "credit_card_ref", "x", pgxmock.AnyArg(), 2.9, 97.1, now,
						pgxmock.AnyArg(), "", "").
					WillReturnResult(pgxmock.NewResult("INSERT", 1))
			},
		},
		{
			name: "Database error",
			mockSetup: func() {
				mock.ExpectExec(regexp.QuoteMeta(insertTransaction)).
					WillReturnError(errors.New("database error"))
			},
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()
			err := repo.Create(context.Background(), txn)
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
	processed := now.Add(2 * time.Second)
	query := regexp.QuoteMeta(selectTransactions + ` WHERE id = $1`)
	meta, err := domain.EncodeMetadata(domain.VODPurchaseMeta{VODClassID: "vod_1"})
	require.NoError(t, err)

	tests := []struct {
		name      string
		id        string
		mockSetup func()
		expectErr bool
		result    *domain.Transaction
	}{
		{
			name: "Completed charge",
			id:   "txn_1",
			mockSetup: func() {
				rows := pgxmock.NewRows(txnCols).AddRow("txn_1", "u1", domain.TransactionCharge, domain.CategoryVODPurchase,
					25.0, "USD", domain.StatusCompleted, "pm_1", "paypal_ref", "Class", meta, 0.87, 24.13, now, &processed, "", "")
				mock.ExpectQuery(query).WithArgs("txn_1").WillReturnRows(rows)
			},
			result: &domain.Transaction{
				ID: "txn_1", UserID: "u1", Type: domain.TransactionCharge, Category: domain.CategoryVODPurchase,
				Amount: 25, Currency: "USD", Status: domain.StatusCompleted, PaymentMethodID: "pm_1",
				PaymentReference: "paypal_ref", Description: "Class", ProcessingFee: 0.87, NetAmount: 24.13,
				CreatedAt: now, ProcessedAt: &processed, Metadata: domain.VODPurchaseMeta{VODClassID: "vod_1"},
			},
		},
		{
			name: "Unknown transaction returns nil",
			id:   "txn_x",
			mockSetup: func() {
				mock.ExpectQuery(query).WithArgs("txn_x").WillReturnError(pgx.ErrNoRows)
			},
		},
		{
			name: "Broken metadata",
			id:   "txn_2",
			mockSetup: func() {
				rows := pgxmock.NewRows(txnCols).AddRow("txn_2", "u1", domain.TransactionCharge, domain.CategoryOther,
					1.0, "USD", domain.StatusPending, "", "", "", []byte(`{"kind":"bogus"}`), 0.0, 1.0, now, nil, "", "")
				mock.ExpectQuery(query).WithArgs("txn_2").WillReturnRows(rows)
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

	tests := []struct {
		name      string
		txn       *domain.Transaction
		mockSetup func()
		expectErr error
	}{
		{
			name: "Failed charge",
			txn:  &domain.Transaction{ID: "txn_1", Status: domain.StatusFailed, FailureReason: "Payment declined by bank", ProcessingFee: 2.9, NetAmount: 97.1, ProcessedAt: &now},
			mockSetup: func() {
				mock.ExpectExec(regexp.QuoteMeta(updateTransaction)).
					WithArgs("txn_1", domain.StatusFailed, "", pgxmock.AnyArg(), 2.9, 97.1, pgxmock.AnyArg(), "Payment declined by bank").
					WillReturnResult(pgxmock.NewResult("UPDATE", 1))
			},
		},
		{
			name: "Unknown transaction",
			txn:  &domain.Transaction{ID: "txn_x", Status: domain.StatusCompleted},
			mockSetup: func() {
				mock.ExpectExec(regexp.QuoteMeta(updateTransaction)).
					WithArgs("txn_x", domain.StatusCompleted, "", pgxmock.AnyArg(), 0.0, 0.0, pgxmock.AnyArg(), "").
					WillReturnResult(pgxmock.NewResult("UPDATE", 0))
			},
			expectErr: domain.ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()
			err := repo.Update(context.Background(), tt.txn)
			if tt.expectErr != nil {
				assert.ErrorIs(t, err, tt.expectErr)
			} else {
				assert.NoError(t, err)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestBuildListQuery(t *testing.T) {
	from := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 5, 31, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		filter    domain.TransactionFilter
		wantQuery string
		wantArgs  []any
	}{
		{
			name:      "No filter",
			filter:    domain.TransactionFilter{},
			wantQuery: selectTransactions + " ORDER BY created_at DESC, id DESC",
		},
		{
			name:      "User, type and limit",
			filter:    domain.TransactionFilter{UserID: "u1", Type: domain.TransactionRefund, Limit: 10},
			wantQuery: selectTransactions + " WHERE user_id = $1 AND type = $2 ORDER BY created_at DESC, id DESC LIMIT $3",
			wantArgs:  []any{"u1", domain.TransactionRefund, 10},
		},
		{
			name:      "Everything",
			filter:    domain.TransactionFilter{UserID: "u1", Category: domain.CategoryEventTicket, Type: domain.TransactionCharge, Status: domain.StatusCompleted, RelatedID: "txn_1", From: from, To: to},
			wantQuery: selectTransactions + " WHERE user_id = $1 AND category = $2 AND type = $3 AND status = $4 AND related_transaction_id = $5 AND created_at >= $6 AND created_at <= $7 ORDER BY created_at DESC, id DESC",
			wantArgs:  []any{"u1", domain.CategoryEventTicket, domain.TransactionCharge, domain.StatusCompleted, "txn_1", from, to},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			query, args := buildListQuery(tt.filter)
			assert.Equal(t, tt.wantQuery, query)
			assert.Equal(t, tt.wantArgs, args)
		})
	}
}

func TestRepository_List(t *testing.T) {
	repo, mock := NewMock(t)
	now := time.Date(2024, 5, 15, 10, 0, 0, 0, time.UTC)
	filter := domain.TransactionFilter{UserID: "u1", Limit: 2}
	query, _ := buildListQuery(filter)

	rows := pgxmock.NewRows(txnCols).
		AddRow("txn_2", "u1", domain.TransactionRefund, domain.CategoryEventTicket, -20.0, "USD", domain.StatusCompleted,
			"pm_1", "refund_ref", "Refund: ref", nil, 0.0, -20.0, now.Add(time.Hour), nil, "", "txn_1").
		AddRow("txn_1", "u1", domain.TransactionCharge, domain.CategoryEventTicket, 100.0, "USD", domain.StatusCompleted,
			"pm_1", "ref", "x", nil, 2.9, 97.1, now, nil, "", "")
	mock.ExpectQuery(regexp.QuoteMeta(query)).WithArgs("u1", 2).WillReturnRows(rows)

	txns, err := repo.List(context.Background(), filter)
	require.NoError(t, err)
	require.Len(t, txns, 2)
	assert.Equal(t, "txn_1", txns[0].RelatedTransactionID)
	assert.Nil(t, txns[1].Metadata)
	assert.NoError(t, mock.ExpectationsWereMet())

	mock.ExpectQuery(regexp.QuoteMeta(query)).WithArgs("u1", 2).WillReturnError(errors.New("database error"))
	_, err = repo.List(context.Background(), filter)
	assert.Error(t, err)
}
