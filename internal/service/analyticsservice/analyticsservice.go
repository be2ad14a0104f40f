package analyticsservice

import (
	"context"
	"sort"

	"go.uber.org/zap"

	"github.com/GlebRadaev/payledger/internal/domain"
	"github.com/GlebRadaev/payledger/pkg/fees"
)

const unknownMethod = "unknown"

type TransactionRepo interface {
	List(ctx context.Context, f domain.TransactionFilter) ([]domain.Transaction, error)
}

type PayoutRepo interface {
	List(ctx context.Context, f domain.PayoutFilter) ([]domain.Payout, error)
}

type MethodRepo interface {
	Get(ctx context.Context, id string) (*domain.PaymentMethod, error)
}

type Service struct {
	txns    TransactionRepo
	payouts PayoutRepo
	methods MethodRepo
}

func New(txns TransactionRepo, payouts PayoutRepo, methods MethodRepo) *Service {
	return &Service{txns: txns, payouts: payouts, methods: methods}
}

// PaymentAnalytics aggregates the charges in scope regardless of status. Refunds that
// failed or were cancelled do not count towards the refund rate.
func (s *Service) PaymentAnalytics(ctx context.Context, scope domain.AnalyticsScope) (*domain.PaymentAnalytics, error) {
	charges, err := s.txns.List(ctx, domain.TransactionFilter{
		UserID: scope.UserID,
		Type:   domain.TransactionCharge,
		From:   scope.From,
		To:     scope.To,
	})
	if err != nil {
		zap.L().Error("failed to list charges", zap.Error(err))
		return nil, err
	}
	refunds, err := s.txns.List(ctx, domain.TransactionFilter{
		UserID: scope.UserID,
		Type:   domain.TransactionRefund,
		From:   scope.From,
		To:     scope.To,
	})
	if err != nil {
		zap.L().Error("failed to list refunds", zap.Error(err))
		return nil, err
	}

	kinds := make(map[string]string)
	byCategory := newBreakdowns()
	byMethod := newBreakdowns()
	var revenue, feeTotal, net, refunded float64
	var failed int
	for _, c := range charges {
		revenue = fees.Sum(revenue, c.Amount)
		feeTotal = fees.Sum(feeTotal, c.ProcessingFee)
		net = fees.Sum(net, c.NetAmount)
		if c.Status == domain.StatusFailed {
			failed++
		}
		byCategory.add(string(c.Category), c.Amount)

		kind, err := s.methodKind(ctx, kinds, c.PaymentMethodID)
		if err != nil {
			return nil, err
		}
		byMethod.add(kind, c.Amount)
	}
	for _, r := range refunds {
		if r.Status == domain.StatusFailed || r.Status == domain.StatusCancelled {
			continue
		}
		refunded = fees.Sum(refunded, r.Amount)
	}
	if refunded < 0 {
		refunded = -refunded
	}

	return &domain.PaymentAnalytics{
		TotalRevenue:            revenue,
		TotalTransactions:       len(charges),
		AverageTransactionValue: ratio(revenue, float64(len(charges)), true),
		ProcessingFees:          feeTotal,
		NetRevenue:              net,
		ByCategory:              byCategory.sorted(),
		ByMethod:                byMethod.sorted(),
		RefundRate:              ratio(refunded, revenue, false),
		FailureRate:             ratio(float64(failed), float64(len(charges)), false),
	}, nil
}

func (s *Service) methodKind(ctx context.Context, cache map[string]string, id string) (string, error) {
	if id == "" {
		return unknownMethod, nil
	}
	if kind, ok := cache[id]; ok {
		return kind, nil
	}
	m, err := s.methods.Get(ctx, id)
	if err != nil {
		zap.L().Error("failed to get payment method", zap.Error(err))
		return "", err
	}
	kind := unknownMethod
	if m != nil {
		kind = string(m.Kind)
	}
	cache[id] = kind
	return kind, nil
}

func (s *Service) PayoutAnalytics(ctx context.Context, scope domain.AnalyticsScope) (*domain.PayoutAnalytics, error) {
	payouts, err := s.payouts.List(ctx, domain.PayoutFilter{
		UserID: scope.UserID,
		From:   scope.From,
		To:     scope.To,
	})
	if err != nil {
		zap.L().Error("failed to list payouts", zap.Error(err))
		return nil, err
	}

	byCategory := newBreakdowns()
	var total, feeTotal, net, pending float64
	var completed int
	for _, p := range payouts {
		total = fees.Sum(total, p.Amount)
		feeTotal = fees.Sum(feeTotal, p.ProcessingFee)
		net = fees.Sum(net, p.NetAmount)
		switch p.Status {
		case domain.StatusCompleted:
			completed++
		case domain.StatusPending, domain.StatusProcessing:
			pending = fees.Sum(pending, p.Amount)
		}
		byCategory.add(string(p.Category), p.Amount)
	}

	return &domain.PayoutAnalytics{
		TotalPayouts:        len(payouts),
		TotalAmount:         total,
		AveragePayoutAmount: ratio(total, float64(len(payouts)), true),
		ProcessingFees:      feeTotal,
		NetAmount:           net,
		ByCategory:          byCategory.sorted(),
		SuccessRate:         ratio(float64(completed), float64(len(payouts)), false),
		PendingAmount:       pending,
	}, nil
}

// ratio divides, yielding 0 for an empty denominator. Money results are rounded to cents.
func ratio(num, den float64, money bool) float64 {
	if den == 0 {
		return 0
	}
	if money {
		return fees.Round(num / den)
	}
	return num / den
}

type breakdowns map[string]*domain.Breakdown

func newBreakdowns() breakdowns {
	return make(breakdowns)
}

func (b breakdowns) add(key string, amount float64) {
	entry, ok := b[key]
	if !ok {
		entry = &domain.Breakdown{Key: key}
		b[key] = entry
	}
	entry.Count++
	entry.Amount = fees.Sum(entry.Amount, amount)
}

func (b breakdowns) sorted() []domain.Breakdown {
	res := make([]domain.Breakdown, 0, len(b))
	for _, entry := range b {
		res = append(res, *entry)
	}
	sort.Slice(res, func(i, j int) bool { return res[i].Key < res[j].Key })
	return res
}
