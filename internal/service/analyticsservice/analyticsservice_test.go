package analyticsservice

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gomock "go.uber.org/mock/gomock"

	"github.com/GlebRadaev/payledger/internal/domain"
)

func NewMock(t *testing.T) (*Service, *MockTransactionRepo, *MockPayoutRepo, *MockMethodRepo) {
	ctrl := gomock.NewController(t)
	txns := NewMockTransactionRepo(ctrl)
	payouts := NewMockPayoutRepo(ctrl)
	methods := NewMockMethodRepo(ctrl)
	return New(txns, payouts, methods), txns, payouts, methods
}

func charge(amount, fee float64, category domain.TransactionCategory, method string, status domain.Status) domain.Transaction {
	return domain.Transaction{
		Type:            domain.TransactionCharge,
		Amount:          amount,
		ProcessingFee:   fee,
		NetAmount:       amount - fee,
		Category:        category,
		PaymentMethodID: method,
		Status:          status,
	}
}

func TestService_PaymentAnalytics(t *testing.T) {
	svc, txns, _, methods := NewMock(t)
	ctx := context.Background()
	scope := domain.AnalyticsScope{UserID: "u1"}

	txns.EXPECT().List(gomock.Any(), domain.TransactionFilter{UserID: "u1", Type: domain.TransactionCharge}).Return([]domain.Transaction{
		charge(100, 2.9, domain.CategoryVODPurchase, "pm_card", domain.StatusCompleted),
		charge(50, 1.75, domain.CategoryEventTicket, "pm_paypal", domain.StatusCompleted),
		charge(25, 0.75, domain.CategoryVODPurchase, "pm_gone", domain.StatusCompleted),
	}, nil)
	txns.EXPECT().List(gomock.Any(), domain.TransactionFilter{UserID: "u1", Type: domain.TransactionRefund}).Return([]domain.Transaction{
		{Type: domain.TransactionRefund, Amount: -20, Status: domain.StatusCompleted},
		{Type: domain.TransactionRefund, Amount: -5, Status: domain.StatusFailed},
	}, nil)
	methods.EXPECT().Get(gomock.Any(), "pm_card").Return(&domain.PaymentMethod{ID: "pm_card", Kind: domain.MethodCreditCard}, nil)
	methods.EXPECT().Get(gomock.Any(), "pm_paypal").Return(&domain.PaymentMethod{ID: "pm_paypal", Kind: domain.MethodPayPal}, nil)
	methods.EXPECT().Get(gomock.Any(), "pm_gone").Return(nil, nil)

	got, err := svc.PaymentAnalytics(ctx, scope)
	require.NoError(t, err)
	assert.Equal(t, 175.0, got.TotalRevenue)
	assert.Equal(t, 3, got.TotalTransactions)
	assert.Equal(t, 58.33, got.AverageTransactionValue)
	assert.Equal(t, 5.4, got.ProcessingFees)
	assert.Equal(t, 169.6, got.NetRevenue)
	assert.InDelta(t, 20.0/175.0, got.RefundRate, 1e-9)
	assert.Zero(t, got.FailureRate)
	assert.Equal(t, []domain.Breakdown{
		{Key: "event_ticket", Count: 1, Amount: 50},
		{Key: "vod_purchase", Count: 2, Amount: 125},
	}, got.ByCategory)
	assert.Equal(t, []domain.Breakdown{
		{Key: "credit_card", Count: 1, Amount: 100},
		{Key: "paypal", Count: 1, Amount: 50},
		{Key: "unknown", Count: 1, Amount: 25},
	}, got.ByMethod)
}

func TestService_PaymentAnalyticsFailures(t *testing.T) {
	svc, txns, _, methods := NewMock(t)
	from := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 5, 31, 0, 0, 0, 0, time.UTC)

	txns.EXPECT().List(gomock.Any(), domain.TransactionFilter{Type: domain.TransactionCharge, From: from, To: to}).Return([]domain.Transaction{
		charge(10, 0.29, domain.CategoryOther, "pm_1", domain.StatusFailed),
		charge(10, 0.29, domain.CategoryOther, "pm_1", domain.StatusCompleted),
		charge(10, 0.29, domain.CategoryOther, "pm_1", domain.StatusFailed),
		charge(10, 0.29, domain.CategoryOther, "", domain.StatusPending),
	}, nil)
	txns.EXPECT().List(gomock.Any(), domain.TransactionFilter{Type: domain.TransactionRefund, From: from, To: to}).Return(nil, nil)
	methods.EXPECT().Get(gomock.Any(), "pm_1").Return(&domain.PaymentMethod{Kind: domain.MethodCreditCard}, nil).Times(1)

	got, err := svc.PaymentAnalytics(context.Background(), domain.AnalyticsScope{From: from, To: to})
	require.NoError(t, err)
	assert.Equal(t, 0.5, got.FailureRate)
	assert.Zero(t, got.RefundRate)
	assert.Equal(t, []domain.Breakdown{
		{Key: "credit_card", Count: 3, Amount: 30},
		{Key: "unknown", Count: 1, Amount: 10},
	}, got.ByMethod)
}

func TestService_PaymentAnalyticsEmpty(t *testing.T) {
	svc, txns, _, _ := NewMock(t)
	txns.EXPECT().List(gomock.Any(), gomock.Any()).Return(nil, nil).Times(2)

	got, err := svc.PaymentAnalytics(context.Background(), domain.AnalyticsScope{UserID: "nobody"})
	require.NoError(t, err)
	assert.Zero(t, got.TotalRevenue)
	assert.Zero(t, got.AverageTransactionValue)
	assert.Zero(t, got.RefundRate)
	assert.Zero(t, got.FailureRate)
	assert.Empty(t, got.ByCategory)
	assert.Empty(t, got.ByMethod)
}

func TestService_PaymentAnalyticsErrors(t *testing.T) {
	repoErr := errors.New("db down")

	tests := []struct {
		name        string
		prepareMock func(txns *MockTransactionRepo, methods *MockMethodRepo)
	}{
		{
			name: "charges",
			prepareMock: func(txns *MockTransactionRepo, _ *MockMethodRepo) {
				txns.EXPECT().List(gomock.Any(), gomock.Any()).Return(nil, repoErr)
			},
		},
		{
			name: "refunds",
			prepareMock: func(txns *MockTransactionRepo, _ *MockMethodRepo) {
				txns.EXPECT().List(gomock.Any(), gomock.Any()).Return(nil, nil)
				txns.EXPECT().List(gomock.Any(), gomock.Any()).Return(nil, repoErr)
			},
		},
		{
			name: "methods",
			prepareMock: func(txns *MockTransactionRepo, methods *MockMethodRepo) {
				txns.EXPECT().List(gomock.Any(), gomock.Any()).Return([]domain.Transaction{
					charge(10, 0.29, domain.CategoryOther, "pm_1", domain.StatusCompleted),
				}, nil)
				txns.EXPECT().List(gomock.Any(), gomock.Any()).Return(nil, nil)
				methods.EXPECT().Get(gomock.Any(), "pm_1").Return(nil, repoErr)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, txns, _, methods := NewMock(t)
			tt.prepareMock(txns, methods)

			got, err := svc.PaymentAnalytics(context.Background(), domain.AnalyticsScope{})
			assert.ErrorIs(t, err, repoErr)
			assert.Nil(t, got)
		})
	}
}

func TestService_PayoutAnalytics(t *testing.T) {
	svc, _, payouts, _ := NewMock(t)

	payouts.EXPECT().List(gomock.Any(), domain.PayoutFilter{UserID: "u1"}).Return([]domain.Payout{
		{Amount: 100, ProcessingFee: 0.25, NetAmount: 99.75, Status: domain.StatusCompleted, Category: domain.PayoutVODEarnings},
		{Amount: 50, ProcessingFee: 1, NetAmount: 49, Status: domain.StatusPending, Category: domain.PayoutTShirtEarnings},
		{Amount: 30, ProcessingFee: 1, NetAmount: 29, Status: domain.StatusProcessing, Category: domain.PayoutVODEarnings},
		{Amount: 40, ProcessingFee: 0.25, NetAmount: 39.75, Status: domain.StatusFailed, Category: domain.PayoutCommission},
	}, nil)

	got, err := svc.PayoutAnalytics(context.Background(), domain.AnalyticsScope{UserID: "u1"})
	require.NoError(t, err)
	assert.Equal(t, 4, got.TotalPayouts)
	assert.Equal(t, 220.0, got.TotalAmount)
	assert.Equal(t, 55.0, got.AveragePayoutAmount)
	assert.Equal(t, 2.5, got.ProcessingFees)
	assert.Equal(t, 217.5, got.NetAmount)
	assert.Equal(t, 0.25, got.SuccessRate)
	assert.Equal(t, 80.0, got.PendingAmount)
	assert.Equal(t, []domain.Breakdown{
		{Key: "commission", Count: 1, Amount: 40},
		{Key: "tshirt_earnings", Count: 1, Amount: 50},
		{Key: "vod_earnings", Count: 2, Amount: 130},
	}, got.ByCategory)
}

func TestService_PayoutAnalyticsEmpty(t *testing.T) {
	svc, _, payouts, _ := NewMock(t)
	payouts.EXPECT().List(gomock.Any(), gomock.Any()).Return(nil, nil)

	got, err := svc.PayoutAnalytics(context.Background(), domain.AnalyticsScope{})
	require.NoError(t, err)
	assert.Zero(t, got.SuccessRate)
	assert.Zero(t, got.AveragePayoutAmount)
	assert.Empty(t, got.ByCategory)
}

func TestService_PayoutAnalyticsError(t *testing.T) {
	svc, _, payouts, _ := NewMock(t)
	repoErr := errors.New("db down")
	payouts.EXPECT().List(gomock.Any(), gomock.Any()).Return(nil, repoErr)

	got, err := svc.PayoutAnalytics(context.Background(), domain.AnalyticsScope{})
	assert.ErrorIs(t, err, repoErr)
	assert.Nil(t, got)
}
