package analytics

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gomock "go.uber.org/mock/gomock"

	"github.com/GlebRadaev/payledger/internal/domain"
	"github.com/GlebRadaev/payledger/pkg/auth"
)

func NewMock(t *testing.T) (*AnalyticsHandler, *MockService) {
	ctrl := gomock.NewController(t)
	service := NewMockService(ctrl)
	return New(service), service
}

func newRequest(target, role string) *http.Request {
	r := httptest.NewRequest(http.MethodGet, target, nil)
	ctx := context.WithValue(r.Context(), auth.UserIDKey, "u1")
	ctx = context.WithValue(ctx, auth.RoleKey, role)
	return r.WithContext(ctx)
}

func TestGetPaymentAnalyticsHandler(t *testing.T) {
	handler, service := NewMock(t)
	from := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name         string
		target       string
		role         string
		prepareMock  func()
		expectedCode int
	}{
		{
			name:   "Own figures",
			target: "/api/analytics/payments?from=2024-05-01T00:00:00Z",
			prepareMock: func() {
				service.EXPECT().PaymentAnalytics(gomock.Any(), domain.AnalyticsScope{UserID: "u1", From: from}).
					Return(&domain.PaymentAnalytics{TotalRevenue: 175, RefundRate: 20.0 / 175.0}, nil)
			},
			expectedCode: http.StatusOK,
		},
		{
			name:   "Platform figures",
			target: "/api/analytics/payments?scope=all",
			role:   auth.RoleAdmin,
			prepareMock: func() {
				service.EXPECT().PaymentAnalytics(gomock.Any(), domain.AnalyticsScope{}).Return(&domain.PaymentAnalytics{}, nil)
			},
			expectedCode: http.StatusOK,
		},
		{
			name:         "Platform figures without admin",
			target:       "/api/analytics/payments?scope=all",
			prepareMock:  func() {},
			expectedCode: http.StatusForbidden,
		},
		{
			name:         "Reversed range",
			target:       "/api/analytics/payments?from=2024-06-01T00:00:00Z&to=2024-05-01T00:00:00Z",
			prepareMock:  func() {},
			expectedCode: http.StatusBadRequest,
		},
		{
			name:         "Bad date",
			target:       "/api/analytics/payments?to=may",
			prepareMock:  func() {},
			expectedCode: http.StatusBadRequest,
		},
		{
			name:   "Internal server error",
			target: "/api/analytics/payments",
			prepareMock: func() {
				service.EXPECT().PaymentAnalytics(gomock.Any(), gomock.Any()).Return(nil, errors.New("db down"))
			},
			expectedCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()
			w := httptest.NewRecorder()
			handler.GetPaymentAnalytics(w, newRequest(tt.target, tt.role))
			assert.Equal(t, tt.expectedCode, w.Code)
		})
	}
}

func TestGetPayoutAnalyticsHandler(t *testing.T) {
	handler, service := NewMock(t)

	service.EXPECT().PayoutAnalytics(gomock.Any(), domain.AnalyticsScope{UserID: "u1"}).
		Return(&domain.PayoutAnalytics{TotalPayouts: 2, SuccessRate: 0.5}, nil)
	w := httptest.NewRecorder()
	handler.GetPayoutAnalytics(w, newRequest("/api/analytics/payouts", ""))
	assert.Equal(t, http.StatusOK, w.Code)

	var body domain.PayoutAnalytics
	require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
	assert.Equal(t, 2, body.TotalPayouts)
	assert.Equal(t, 0.5, body.SuccessRate)
}
