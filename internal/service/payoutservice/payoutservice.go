package payoutservice

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/GlebRadaev/payledger/internal/domain"
	"github.com/GlebRadaev/payledger/internal/events"
	"github.com/GlebRadaev/payledger/internal/processor"
	"github.com/GlebRadaev/payledger/pkg/fees"
	"github.com/GlebRadaev/payledger/pkg/ids"
	"github.com/GlebRadaev/payledger/pkg/schedule"
	"github.com/GlebRadaev/payledger/pkg/validate"
)

const (
	verificationFailedReason = "Unable to verify account details"
	payoutFailedReason       = "Bank account temporarily unavailable"
)

type AccountRepo interface {
	Create(ctx context.Context, a *domain.PayoutAccount) error
	Get(ctx context.Context, id string) (*domain.PayoutAccount, error)
	ListByUser(ctx context.Context, userID string) ([]domain.PayoutAccount, error)
	ListByVerification(ctx context.Context, status domain.VerificationStatus) ([]domain.PayoutAccount, error)
	Update(ctx context.Context, a *domain.PayoutAccount) error
}

type PayoutRepo interface {
	Create(ctx context.Context, p *domain.Payout) error
	Get(ctx context.Context, id string) (*domain.Payout, error)
	Update(ctx context.Context, p *domain.Payout) error
	List(ctx context.Context, f domain.PayoutFilter) ([]domain.Payout, error)
}

type ConfigProvider interface {
	Get() domain.PaymentConfig
}

// Simulation tunes the stand-in bank that verifies accounts and settles payouts.
type Simulation struct {
	VerificationDelay time.Duration
	StartDelay        time.Duration
	SettleDelay       time.Duration
	VerificationRate  float64
	SuccessRate       float64
}

type Service struct {
	accounts AccountRepo
	payouts  PayoutRepo
	config   ConfigProvider
	rt       processor.Runtime
	sim      Simulation

	mu sync.Mutex
}

func New(accounts AccountRepo, payouts PayoutRepo, config ConfigProvider, rt processor.Runtime, sim Simulation) *Service {
	return &Service{
		accounts: accounts,
		payouts:  payouts,
		config:   config,
		rt:       rt,
		sim:      sim,
	}
}

// AddAccount stores an unverified account and schedules its verification.
// The first account of a user becomes the default.
func (s *Service) AddAccount(ctx context.Context, userID string, in domain.NewPayoutAccount) (*domain.PayoutAccount, error) {
	if !in.Kind.Valid() {
		return nil, fmt.Errorf("%w: unknown account kind %q", domain.ErrInvalidDetails, in.Kind)
	}
	if in.Details.AccountNumber != "" {
		masked := validate.MaskAccount(in.Details.AccountNumber)
		if masked == "" {
			return nil, fmt.Errorf("%w: account number", domain.ErrInvalidDetails)
		}
		in.Details.AccountNumber = masked
	}

	s.mu.Lock()
	existing, err := s.accounts.ListByUser(ctx, userID)
	if err != nil {
		s.mu.Unlock()
		zap.L().Error("failed to list payout accounts", zap.Error(err))
		return nil, err
	}

	account := &domain.PayoutAccount{
		ID:                 ids.New(ids.PayoutAccountPrefix),
		UserID:             userID,
		Kind:               in.Kind,
		Details:            in.Details,
		IsDefault:          in.IsDefault || len(existing) == 0,
		VerificationStatus: domain.VerificationPending,
		CreatedAt:          s.rt.Now(),
	}
	if err := s.accounts.Create(ctx, account); err != nil {
		s.mu.Unlock()
		zap.L().Error("failed to create payout account", zap.Error(err))
		return nil, err
	}
	s.mu.Unlock()

	s.schedule(ctx, account.ID, account.ID, s.sim.VerificationDelay, s.verifyAccount)
	return account, nil
}

func (s *Service) GetUserAccounts(ctx context.Context, userID string) ([]domain.PayoutAccount, error) {
	accounts, err := s.accounts.ListByUser(ctx, userID)
	if err != nil {
		zap.L().Error("failed to list payout accounts", zap.Error(err))
		return nil, err
	}
	return accounts, nil
}

func (s *Service) UpdateAccount(ctx context.Context, userID, id string, upd domain.PayoutAccountUpdate) (*domain.PayoutAccount, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	account, err := s.accounts.Get(ctx, id)
	if err != nil {
		zap.L().Error("failed to get payout account", zap.Error(err))
		return nil, err
	}
	if account == nil || (userID != "" && account.UserID != userID) {
		return nil, fmt.Errorf("%w: payout account %s", domain.ErrNotFound, id)
	}

	if upd.Details != nil {
		details := *upd.Details
		if details.AccountNumber != "" && details.AccountNumber != account.Details.AccountNumber {
			details.AccountNumber = validate.MaskAccount(details.AccountNumber)
		}
		account.Details = details
	}
	if upd.IsDefault != nil {
		account.IsDefault = *upd.IsDefault
	}
	if err := s.accounts.Update(ctx, account); err != nil {
		zap.L().Error("failed to update payout account", zap.Error(err))
		return nil, err
	}
	return account, nil
}

// CreatePayout stores a pending payout to a verified account and schedules its processing.
func (s *Service) CreatePayout(ctx context.Context, req domain.PayoutRequest) (*domain.Payout, error) {
	cfg := s.config.Get()
	if req.Amount < cfg.Limits.MinimumPayout || req.Amount > cfg.Limits.MaximumPayout {
		return nil, fmt.Errorf("%w: %.2f is outside %.2f..%.2f",
			domain.ErrAmountOutOfRange, req.Amount, cfg.Limits.MinimumPayout, cfg.Limits.MaximumPayout)
	}
	if req.Period.Start.After(req.Period.End) {
		return nil, fmt.Errorf("%w: starts after it ends", domain.ErrInvalidPeriod)
	}
	if req.Category == "" {
		req.Category = domain.PayoutOther
	}
	if !req.Category.Valid() {
		return nil, fmt.Errorf("%w: unknown payout category %q", domain.ErrInvalidDetails, req.Category)
	}
	if req.Currency == "" {
		req.Currency = domain.DefaultCurrency
	}

	account, err := s.resolveAccount(ctx, req.UserID, req.PayoutAccountID)
	if err != nil {
		return nil, err
	}

	now := s.rt.Now()
	next, err := schedule.Next(cfg.PayoutSchedule, now)
	if err != nil {
		zap.L().Warn("payout schedule unusable", zap.Error(err))
	}

	fee := fees.Payout(account.Kind)
	payout := &domain.Payout{
		ID:              ids.New(ids.PayoutPrefix),
		UserID:          req.UserID,
		UserName:        req.UserName,
		UserRole:        req.UserRole,
		Amount:          req.Amount,
		Currency:        req.Currency,
		Status:          domain.StatusPending,
		PayoutAccountID: account.ID,
		Category:        req.Category,
		Period:          req.Period,
		TransactionIDs:  req.TransactionIDs,
		ProcessingFee:   fee,
		NetAmount:       fees.Net(req.Amount, fee),
		Metadata:        req.Metadata,
		CreatedAt:       now,
	}
	if err == nil {
		payout.ScheduledFor = &next
	}
	if err := s.payouts.Create(ctx, payout); err != nil {
		zap.L().Error("failed to create payout", zap.Error(err))
		return nil, err
	}

	s.scheduleStart(ctx, payout.ID)
	zap.L().Info("payout accepted", zap.String("id", payout.ID), zap.String("userID", payout.UserID), zap.Float64("amount", payout.Amount))
	return payout, nil
}

func (s *Service) resolveAccount(ctx context.Context, userID, accountID string) (*domain.PayoutAccount, error) {
	var account *domain.PayoutAccount
	if accountID != "" {
		a, err := s.accounts.Get(ctx, accountID)
		if err != nil {
			zap.L().Error("failed to get payout account", zap.Error(err))
			return nil, err
		}
		if a != nil && a.UserID == userID {
			account = a
		}
	} else {
		accounts, err := s.accounts.ListByUser(ctx, userID)
		if err != nil {
			zap.L().Error("failed to list payout accounts", zap.Error(err))
			return nil, err
		}
		for i := range accounts {
			if accounts[i].IsDefault {
				account = &accounts[i]
				break
			}
		}
	}

	if account == nil {
		return nil, fmt.Errorf("%w: user %s", domain.ErrNoPayoutAccount, userID)
	}
	if !account.IsVerified {
		return nil, fmt.Errorf("%w: %s is %s", domain.ErrNotVerified, account.ID, account.VerificationStatus)
	}
	return account, nil
}

// ProcessPayout moves a pending payout to processing and schedules its settlement.
func (s *Service) ProcessPayout(ctx context.Context, userID, id string) (*domain.Payout, error) {
	s.mu.Lock()
	payout, err := s.owned(ctx, userID, id)
	if err != nil {
		s.mu.Unlock()
		return nil, err
	}
	if !payout.Status.CanTransition(domain.StatusProcessing) {
		s.mu.Unlock()
		return nil, fmt.Errorf("%w: cannot process a %s payout", domain.ErrInvalidState, payout.Status)
	}
	payout.Status = domain.StatusProcessing
	if err := s.payouts.Update(ctx, payout); err != nil {
		s.mu.Unlock()
		zap.L().Error("failed to start payout", zap.Error(err))
		return nil, err
	}
	s.mu.Unlock()

	s.schedule(ctx, settleKey(payout.ID), payout.ID, s.sim.SettleDelay, s.settlePayout)
	return payout, nil
}

func (s *Service) CancelPayout(ctx context.Context, userID, id string) (*domain.Payout, error) {
	s.mu.Lock()
	payout, err := s.owned(ctx, userID, id)
	if err != nil {
		s.mu.Unlock()
		return nil, err
	}
	if !payout.Status.CanTransition(domain.StatusCancelled) {
		s.mu.Unlock()
		return nil, fmt.Errorf("%w: cannot cancel a %s payout", domain.ErrInvalidState, payout.Status)
	}
	payout.Status = domain.StatusCancelled
	if err := s.payouts.Update(ctx, payout); err != nil {
		s.mu.Unlock()
		zap.L().Error("failed to cancel payout", zap.Error(err))
		return nil, err
	}
	s.mu.Unlock()

	s.payoutResolved(ctx, payout, events.PayoutCancelled)
	return payout, nil
}

func (s *Service) GetPayout(ctx context.Context, userID, id string) (*domain.Payout, error) {
	return s.owned(ctx, userID, id)
}

func (s *Service) GetUserPayouts(ctx context.Context, userID string, f domain.PayoutFilter) ([]domain.Payout, error) {
	f.UserID = userID
	payouts, err := s.payouts.List(ctx, f)
	if err != nil {
		zap.L().Error("failed to list payouts", zap.Error(err))
		return nil, err
	}
	return payouts, nil
}

// Resume reschedules pending verifications and every payout that has not been resolved.
func (s *Service) Resume(ctx context.Context) (int, error) {
	accounts, err := s.accounts.ListByVerification(ctx, domain.VerificationPending)
	if err != nil {
		return 0, fmt.Errorf("failed to list pending accounts: %w", err)
	}
	var n int
	for _, a := range accounts {
		if err := s.resume(ctx, a.ID, a.ID, s.sim.VerificationDelay, s.verifyAccount); err != nil {
			return n, fmt.Errorf("failed to reschedule verification of %s: %w", a.ID, err)
		}
		n++
	}

	pending, err := s.payouts.List(ctx, domain.PayoutFilter{Status: domain.StatusPending})
	if err != nil {
		return n, fmt.Errorf("failed to list pending payouts: %w", err)
	}
	for _, p := range pending {
		if err := s.resume(ctx, startKey(p.ID), p.ID, s.sim.StartDelay, s.startPayout); err != nil {
			return n, fmt.Errorf("failed to reschedule start of %s: %w", p.ID, err)
		}
		n++
	}

	processing, err := s.payouts.List(ctx, domain.PayoutFilter{Status: domain.StatusProcessing})
	if err != nil {
		return n, fmt.Errorf("failed to list processing payouts: %w", err)
	}
	for _, p := range processing {
		if err := s.resume(ctx, settleKey(p.ID), p.ID, s.sim.SettleDelay, s.settlePayout); err != nil {
			return n, fmt.Errorf("failed to reschedule settlement of %s: %w", p.ID, err)
		}
		n++
	}
	return n, nil
}

func (s *Service) resume(ctx context.Context, key, id string, delay time.Duration, settle func(context.Context, string) error) error {
	return processor.ScheduleOrRetry(ctx, s.rt.Scheduler, key, delay, s.rt.Retry(), func(ctx context.Context) error {
		return settle(ctx, id)
	})
}

func (s *Service) scheduleStart(ctx context.Context, id string) {
	s.schedule(ctx, startKey(id), id, s.sim.StartDelay, s.startPayout)
}

func (s *Service) startPayout(ctx context.Context, id string) error {
	_, err := s.ProcessPayout(ctx, "", id)
	if errors.Is(err, domain.ErrInvalidState) {
		zap.L().Debug("payout no longer pending", zap.String("id", id))
		return nil
	}
	return err
}

func startKey(id string) string {
	return "payout-start:" + id
}

func settleKey(id string) string {
	return "payout:" + id
}

func (s *Service) schedule(ctx context.Context, key, id string, delay time.Duration, settle func(context.Context, string) error) {
	err := s.rt.Scheduler.Schedule(ctx, key, delay, func(ctx context.Context) error {
		return settle(ctx, id)
	})
	if err != nil {
		zap.L().Warn("resolution not scheduled", zap.String("key", key), zap.Error(err))
	}
}

func (s *Service) verifyAccount(ctx context.Context, id string) error {
	s.mu.Lock()
	account, err := s.accounts.Get(ctx, id)
	if err != nil || account == nil || account.VerificationStatus != domain.VerificationPending {
		s.mu.Unlock()
		return err
	}

	kind := events.AccountVerified
	if s.rt.Outcome.Succeeds(s.sim.VerificationRate) {
		now := s.rt.Now()
		account.IsVerified = true
		account.VerificationStatus = domain.VerificationVerified
		account.VerifiedAt = &now
	} else {
		account.VerificationStatus = domain.VerificationFailed
		account.FailureReason = verificationFailedReason
		kind = events.AccountFailed
	}
	if err := s.accounts.Update(ctx, account); err != nil {
		s.mu.Unlock()
		return fmt.Errorf("failed to resolve verification of %s: %w", id, err)
	}
	s.mu.Unlock()

	zap.L().Info("payout account verification finished", zap.String("id", id), zap.String("status", string(account.VerificationStatus)))
	s.rt.Metrics.AccountVerified(account.VerificationStatus)
	e := events.New(kind, account.ID, account.UserID, string(account.VerificationStatus), s.rt.Now())
	e.Reason = account.FailureReason
	s.rt.Publish(ctx, e)
	return nil
}

func (s *Service) settlePayout(ctx context.Context, id string) error {
	s.mu.Lock()
	payout, err := s.payouts.Get(ctx, id)
	if err != nil || payout == nil || payout.Status != domain.StatusProcessing {
		s.mu.Unlock()
		return err
	}

	kind := events.PayoutCompleted
	if s.rt.Outcome.Succeeds(s.sim.SuccessRate) {
		now := s.rt.Now()
		payout.Status = domain.StatusCompleted
		payout.PayoutReference = "po_" + uuid.NewString()
		payout.ProcessedAt = &now
	} else {
		payout.Status = domain.StatusFailed
		payout.FailureReason = payoutFailedReason
		kind = events.PayoutFailed
	}
	if err := s.payouts.Update(ctx, payout); err != nil {
		s.mu.Unlock()
		return fmt.Errorf("failed to resolve payout %s: %w", id, err)
	}
	s.mu.Unlock()

	zap.L().Info("payout resolved", zap.String("id", id), zap.String("status", string(payout.Status)))
	s.payoutResolved(ctx, payout, kind)
	return nil
}

func (s *Service) payoutResolved(ctx context.Context, payout *domain.Payout, kind events.Kind) {
	s.rt.Metrics.PayoutResolved(payout.Status, payout.ProcessingFee)
	if payout.ProcessedAt != nil {
		s.rt.Metrics.Settled("payout", payout.CreatedAt, *payout.ProcessedAt)
	}

	e := events.New(kind, payout.ID, payout.UserID, string(payout.Status), s.rt.Now())
	e.Amount = payout.Amount
	e.Currency = payout.Currency
	e.Reason = payout.FailureReason
	s.rt.Publish(ctx, e)
}

func (s *Service) owned(ctx context.Context, userID, id string) (*domain.Payout, error) {
	payout, err := s.payouts.Get(ctx, id)
	if err != nil {
		zap.L().Error("failed to get payout", zap.Error(err))
		return nil, err
	}
	if payout == nil || (userID != "" && payout.UserID != userID) {
		return nil, fmt.Errorf("%w: payout %s", domain.ErrNotFound, id)
	}
	return payout, nil
}
