package chargeservice

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/GlebRadaev/payledger/internal/domain"
	"github.com/GlebRadaev/payledger/internal/events"
	"github.com/GlebRadaev/payledger/internal/processor"
	"github.com/GlebRadaev/payledger/pkg/fees"
	"github.com/GlebRadaev/payledger/pkg/ids"
)

const declinedReason = "Payment declined by bank"

type Repo interface {
	Create(ctx context.Context, t *domain.Transaction) error
	Get(ctx context.Context, id string) (*domain.Transaction, error)
	Update(ctx context.Context, t *domain.Transaction) error
	List(ctx context.Context, f domain.TransactionFilter) ([]domain.Transaction, error)
}

type MethodLookup interface {
	Get(ctx context.Context, id string) (*domain.PaymentMethod, error)
	Default(ctx context.Context, userID string) (*domain.PaymentMethod, error)
}

type ConfigProvider interface {
	Get() domain.PaymentConfig
}

// Simulation tunes the stand-in processor that resolves charges and refunds.
type Simulation struct {
	PaymentDelay time.Duration
	RefundDelay  time.Duration
	SuccessRate  float64
}

type Service struct {
	repo    Repo
	methods MethodLookup
	config  ConfigProvider
	rt      processor.Runtime
	sim     Simulation

	mu sync.Mutex
}

func New(repo Repo, methods MethodLookup, config ConfigProvider, rt processor.Runtime, sim Simulation) *Service {
	return &Service{
		repo:    repo,
		methods: methods,
		config:  config,
		rt:      rt,
		sim:     sim,
	}
}

// ProcessPayment records a pending charge and schedules its resolution. Limits are
// not checked here; callers use CheckPaymentAmount for that.
func (s *Service) ProcessPayment(ctx context.Context, req domain.PaymentRequest) (*domain.Transaction, error) {
	if req.Amount <= 0 {
		return nil, fmt.Errorf("%w: payment amount must be positive", domain.ErrInvalidAmount)
	}
	if req.Category == "" {
		req.Category = domain.CategoryOther
	}
	if !req.Category.Valid() {
		return nil, fmt.Errorf("%w: unknown category %q", domain.ErrInvalidDetails, req.Category)
	}
	if req.Currency == "" {
		req.Currency = domain.DefaultCurrency
	}

	method, err := s.resolveMethod(ctx, req.UserID, req.PaymentMethodID)
	if err != nil {
		return nil, err
	}

	fee := s.EstimateProcessingFee(req.Amount, method.Kind)
	txn := &domain.Transaction{
		ID:               ids.New(ids.TransactionPrefix),
		UserID:           req.UserID,
		Type:             domain.TransactionCharge,
		Category:         req.Category,
		Amount:           req.Amount,
		Currency:         req.Currency,
		Status:           domain.StatusPending,
		PaymentMethodID:  method.ID,
		PaymentReference: ids.Reference(string(method.Kind)),
		Description:      req.Description,
		Metadata:         req.Metadata,
		ProcessingFee:    fee,
		NetAmount:        fees.Net(req.Amount, fee),
		CreatedAt:        s.rt.Now(),
	}
	if err := s.repo.Create(ctx, txn); err != nil {
		zap.L().Error("failed to create transaction", zap.Error(err))
		return nil, err
	}

	s.schedule(ctx, txn.ID, s.sim.PaymentDelay, s.settleCharge)
	zap.L().Info("payment accepted", zap.String("id", txn.ID), zap.String("userID", txn.UserID), zap.Float64("amount", txn.Amount))
	return txn, nil
}

func (s *Service) resolveMethod(ctx context.Context, userID, methodID string) (*domain.PaymentMethod, error) {
	if methodID == "" {
		m, err := s.methods.Default(ctx, userID)
		if err != nil {
			return nil, err
		}
		if m == nil {
			return nil, fmt.Errorf("%w: user %s has no default method", domain.ErrNoPaymentMethod, userID)
		}
		return m, nil
	}

	m, err := s.methods.Get(ctx, methodID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", domain.ErrNoPaymentMethod, methodID)
		}
		return nil, err
	}
	if m.UserID != userID || !m.IsActive {
		return nil, fmt.Errorf("%w: %s", domain.ErrNoPaymentMethod, methodID)
	}
	return m, nil
}

// Refund creates a refund for a completed charge. A nil amount refunds the whole charge.
// Refunds of one charge may not add up to more than the charge itself.
func (s *Service) Refund(ctx context.Context, userID, id string, amount *float64, reason string) (*domain.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	orig, err := s.owned(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if orig.Type != domain.TransactionCharge {
		return nil, fmt.Errorf("%w: only charges can be refunded", domain.ErrInvalidState)
	}
	if orig.Status != domain.StatusCompleted {
		return nil, fmt.Errorf("%w: cannot refund a %s transaction", domain.ErrInvalidState, orig.Status)
	}

	refundAmount := orig.Amount
	if amount != nil {
		refundAmount = *amount
	}
	if refundAmount <= 0 || refundAmount > orig.Amount {
		return nil, fmt.Errorf("%w: refund of %.2f for a charge of %.2f", domain.ErrInvalidAmount, refundAmount, orig.Amount)
	}

	refunded, err := s.refundedAmount(ctx, orig.ID)
	if err != nil {
		return nil, err
	}
	if fees.Sum(refunded, refundAmount) > orig.Amount {
		return nil, fmt.Errorf("%w: %.2f already refunded of %.2f", domain.ErrInvalidAmount, refunded, orig.Amount)
	}

	description := "Refund: " + orig.Description
	if reason != "" {
		description += " - " + reason
	}
	refund := &domain.Transaction{
		ID:                   ids.New(ids.RefundPrefix),
		UserID:               orig.UserID,
		Type:                 domain.TransactionRefund,
		Category:             orig.Category,
		Amount:               -refundAmount,
		Currency:             orig.Currency,
		Status:               domain.StatusProcessing,
		PaymentMethodID:      orig.PaymentMethodID,
		PaymentReference:     "refund_" + orig.PaymentReference,
		Description:          description,
		Metadata:             domain.RefundMeta{OriginalTransactionID: orig.ID, Reason: reason, Original: orig.Metadata},
		ProcessingFee:        0,
		NetAmount:            -refundAmount,
		CreatedAt:            s.rt.Now(),
		RelatedTransactionID: orig.ID,
	}
	if err := s.repo.Create(ctx, refund); err != nil {
		zap.L().Error("failed to create refund", zap.Error(err))
		return nil, err
	}

	s.schedule(ctx, refund.ID, s.sim.RefundDelay, s.settleRefund)
	zap.L().Info("refund accepted", zap.String("id", refund.ID), zap.String("original", orig.ID), zap.Float64("amount", refundAmount))
	return refund, nil
}

func (s *Service) refundedAmount(ctx context.Context, originalID string) (float64, error) {
	refunds, err := s.repo.List(ctx, domain.TransactionFilter{Type: domain.TransactionRefund, RelatedID: originalID})
	if err != nil {
		zap.L().Error("failed to list refunds", zap.Error(err))
		return 0, err
	}
	var total float64
	for _, r := range refunds {
		if r.Status == domain.StatusFailed || r.Status == domain.StatusCancelled {
			continue
		}
		total = fees.Sum(total, -r.Amount)
	}
	return total, nil
}

// Cancel stops a charge that has not started processing.
func (s *Service) Cancel(ctx context.Context, userID, id string) (*domain.Transaction, error) {
	s.mu.Lock()
	txn, err := s.owned(ctx, userID, id)
	if err != nil {
		s.mu.Unlock()
		return nil, err
	}
	if !txn.Status.CanTransition(domain.StatusCancelled) {
		s.mu.Unlock()
		return nil, fmt.Errorf("%w: cannot cancel a %s transaction", domain.ErrInvalidState, txn.Status)
	}
	txn.Status = domain.StatusCancelled
	if err := s.repo.Update(ctx, txn); err != nil {
		s.mu.Unlock()
		zap.L().Error("failed to cancel transaction", zap.Error(err))
		return nil, err
	}
	s.mu.Unlock()

	s.resolved(ctx, txn, events.TransactionCancelled)
	return txn, nil
}

func (s *Service) GetTransaction(ctx context.Context, userID, id string) (*domain.Transaction, error) {
	return s.owned(ctx, userID, id)
}

// GetUserTransactions lists the transactions of a user newest first.
func (s *Service) GetUserTransactions(ctx context.Context, userID string, f domain.TransactionFilter) ([]domain.Transaction, error) {
	f.UserID = userID
	txns, err := s.repo.List(ctx, f)
	if err != nil {
		zap.L().Error("failed to list transactions", zap.Error(err))
		return nil, err
	}
	return txns, nil
}

func (s *Service) EstimateProcessingFee(amount float64, kind domain.PaymentMethodKind) float64 {
	return fees.Processing(amount, kind, s.config.Get().Fees)
}

// CheckPaymentAmount tells why amount cannot be charged to userID right now, if it cannot.
// Daily and monthly totals count completed charges in the payout schedule timezone.
func (s *Service) CheckPaymentAmount(ctx context.Context, amount float64, userID string) error {
	if amount <= 0 {
		return fmt.Errorf("%w: payment amount must be positive", domain.ErrInvalidAmount)
	}
	cfg := s.config.Get()
	limits := cfg.Limits
	if amount > limits.SingleTransactionLimit {
		return fmt.Errorf("%w: %.2f is above the single transaction limit", domain.ErrLimitExceeded, amount)
	}

	loc, err := cfg.PayoutSchedule.Location()
	if err != nil {
		loc = time.UTC
	}
	now := s.rt.Now().In(loc)
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, loc)

	charges, err := s.repo.List(ctx, domain.TransactionFilter{
		UserID: userID,
		Type:   domain.TransactionCharge,
		Status: domain.StatusCompleted,
		From:   monthStart,
	})
	if err != nil {
		zap.L().Error("failed to list charges for limit check", zap.Error(err))
		return err
	}

	daily, monthly := amount, amount
	for _, c := range charges {
		monthly = fees.Sum(monthly, c.Amount)
		if !c.CreatedAt.Before(dayStart) {
			daily = fees.Sum(daily, c.Amount)
		}
	}
	if daily > limits.DailyTransactionLimit {
		return fmt.Errorf("%w: daily total would be %.2f", domain.ErrLimitExceeded, daily)
	}
	if monthly > limits.MonthlyTransactionLimit {
		return fmt.Errorf("%w: monthly total would be %.2f", domain.ErrLimitExceeded, monthly)
	}
	return nil
}

func (s *Service) ValidatePaymentAmount(ctx context.Context, amount float64, userID string) bool {
	return s.CheckPaymentAmount(ctx, amount, userID) == nil
}

// Resume reschedules every charge and refund that has not been resolved yet.
func (s *Service) Resume(ctx context.Context) (int, error) {
	var n int
	for _, status := range []domain.Status{domain.StatusPending, domain.StatusProcessing} {
		txns, err := s.repo.List(ctx, domain.TransactionFilter{Status: status})
		if err != nil {
			return n, fmt.Errorf("failed to list %s transactions: %w", status, err)
		}
		for _, t := range txns {
			var err error
			switch t.Type {
			case domain.TransactionCharge:
				err = s.resume(ctx, t.ID, s.sim.PaymentDelay, s.settleCharge)
			case domain.TransactionRefund:
				err = s.resume(ctx, t.ID, s.sim.RefundDelay, s.settleRefund)
			default:
				continue
			}
			if err != nil {
				return n, fmt.Errorf("failed to reschedule %s: %w", t.ID, err)
			}
			n++
		}
	}
	return n, nil
}

func (s *Service) resume(ctx context.Context, id string, delay time.Duration, settle func(context.Context, string) error) error {
	return processor.ScheduleOrRetry(ctx, s.rt.Scheduler, id, delay, s.rt.Retry(), func(ctx context.Context) error {
		return settle(ctx, id)
	})
}

func (s *Service) schedule(ctx context.Context, id string, delay time.Duration, settle func(context.Context, string) error) {
	err := s.rt.Scheduler.Schedule(ctx, id, delay, func(ctx context.Context) error {
		return settle(ctx, id)
	})
	if err != nil {
		zap.L().Warn("resolution not scheduled", zap.String("id", id), zap.Error(err))
	}
}

func (s *Service) settleCharge(ctx context.Context, id string) error {
	s.mu.Lock()
	txn, err := s.repo.Get(ctx, id)
	if err != nil || txn == nil || txn.Status.IsTerminal() {
		s.mu.Unlock()
		if txn == nil && err == nil {
			zap.L().Warn("charge vanished before resolution", zap.String("id", id))
		}
		return err
	}

	if txn.Status == domain.StatusPending {
		txn.Status = domain.StatusProcessing
		if err := s.repo.Update(ctx, txn); err != nil {
			s.mu.Unlock()
			return fmt.Errorf("failed to mark %s processing: %w", id, err)
		}
	}

	kind := events.TransactionCompleted
	if s.rt.Outcome.Succeeds(s.sim.SuccessRate) {
		now := s.rt.Now()
		txn.Status = domain.StatusCompleted
		txn.ProcessedAt = &now
	} else {
		txn.Status = domain.StatusFailed
		txn.FailureReason = declinedReason
		kind = events.TransactionFailed
	}
	if err := s.repo.Update(ctx, txn); err != nil {
		s.mu.Unlock()
		return fmt.Errorf("failed to resolve %s: %w", id, err)
	}
	s.mu.Unlock()

	zap.L().Info("charge resolved", zap.String("id", id), zap.String("status", string(txn.Status)))
	s.resolved(ctx, txn, kind)
	return nil
}

func (s *Service) settleRefund(ctx context.Context, id string) error {
	s.mu.Lock()
	txn, err := s.repo.Get(ctx, id)
	if err != nil || txn == nil || txn.Status != domain.StatusProcessing {
		s.mu.Unlock()
		return err
	}
	now := s.rt.Now()
	txn.Status = domain.StatusCompleted
	txn.ProcessedAt = &now
	if err := s.repo.Update(ctx, txn); err != nil {
		s.mu.Unlock()
		return fmt.Errorf("failed to resolve refund %s: %w", id, err)
	}
	s.mu.Unlock()

	zap.L().Info("refund resolved", zap.String("id", id))
	s.resolved(ctx, txn, events.RefundCompleted)
	return nil
}

func (s *Service) resolved(ctx context.Context, txn *domain.Transaction, kind events.Kind) {
	s.rt.Metrics.TransactionResolved(txn.Type, txn.Status, txn.ProcessingFee)
	if txn.ProcessedAt != nil {
		s.rt.Metrics.Settled("transaction", txn.CreatedAt, *txn.ProcessedAt)
	}

	e := events.New(kind, txn.ID, txn.UserID, string(txn.Status), s.rt.Now())
	e.Amount = txn.Amount
	e.Currency = txn.Currency
	e.Reason = txn.FailureReason
	s.rt.Publish(ctx, e)
}

func (s *Service) owned(ctx context.Context, userID, id string) (*domain.Transaction, error) {
	txn, err := s.repo.Get(ctx, id)
	if err != nil {
		zap.L().Error("failed to get transaction", zap.Error(err))
		return nil, err
	}
	if txn == nil || (userID != "" && txn.UserID != userID) {
		return nil, fmt.Errorf("%w: transaction %s", domain.ErrNotFound, id)
	}
	return txn, nil
}
