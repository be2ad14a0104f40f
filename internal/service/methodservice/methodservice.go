package methodservice

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/GlebRadaev/payledger/internal/domain"
	"github.com/GlebRadaev/payledger/internal/processor"
	"github.com/GlebRadaev/payledger/pkg/ids"
	"github.com/GlebRadaev/payledger/pkg/validate"
)

type Repo interface {
	Create(ctx context.Context, m *domain.PaymentMethod) error
	Get(ctx context.Context, id string) (*domain.PaymentMethod, error)
	ListByUser(ctx context.Context, userID string) ([]domain.PaymentMethod, error)
	Update(ctx context.Context, m *domain.PaymentMethod) error
}

type Service struct {
	repo  Repo
	clock processor.Clock

	// serializes read-modify-write of a user's methods
	mu sync.Mutex
}

func New(repo Repo, clock processor.Clock) *Service {
	return &Service{
		repo:  repo,
		clock: clock,
	}
}

func (s *Service) Add(ctx context.Context, userID string, in domain.NewPaymentMethod) (*domain.PaymentMethod, error) {
	if !in.Kind.Valid() {
		return nil, fmt.Errorf("%w: unknown payment method kind %q", domain.ErrInvalidDetails, in.Kind)
	}
	details := in.Details
	if in.CardNumber != "" {
		if !validate.IsLuhn(in.CardNumber) {
			return nil, fmt.Errorf("%w: card number fails checksum", domain.ErrInvalidDetails)
		}
		details.CardLast4 = validate.Last4(in.CardNumber)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	existing, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		zap.L().Error("failed to list payment methods", zap.Error(err))
		return nil, err
	}

	now := s.clock.Now()
	m := &domain.PaymentMethod{
		ID:        ids.New(ids.PaymentMethodPrefix),
		UserID:    userID,
		Kind:      in.Kind,
		IsDefault: in.IsDefault || !hasActive(existing),
		Details:   details,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.Create(ctx, m); err != nil {
		zap.L().Error("failed to create payment method", zap.Error(err))
		return nil, err
	}
	zap.L().Info("payment method added", zap.String("id", m.ID), zap.String("userID", userID), zap.Bool("default", m.IsDefault))
	return m, nil
}

// List returns the active methods of a user in insertion order.
func (s *Service) List(ctx context.Context, userID string) ([]domain.PaymentMethod, error) {
	all, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		zap.L().Error("failed to list payment methods", zap.Error(err))
		return nil, err
	}
	active := make([]domain.PaymentMethod, 0, len(all))
	for _, m := range all {
		if m.IsActive {
			active = append(active, m)
		}
	}
	return active, nil
}

// Get looks a method up by id, active or not.
func (s *Service) Get(ctx context.Context, id string) (*domain.PaymentMethod, error) {
	m, err := s.repo.Get(ctx, id)
	if err != nil {
		zap.L().Error("failed to get payment method", zap.Error(err))
		return nil, err
	}
	if m == nil {
		return nil, fmt.Errorf("%w: payment method %s", domain.ErrNotFound, id)
	}
	return m, nil
}

// Default returns the active default method of a user, or nil when there is none.
func (s *Service) Default(ctx context.Context, userID string) (*domain.PaymentMethod, error) {
	all, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		zap.L().Error("failed to list payment methods", zap.Error(err))
		return nil, err
	}
	for i := range all {
		if all[i].IsActive && all[i].IsDefault {
			return &all[i], nil
		}
	}
	return nil, nil
}

// Update applies a partial update. A non-empty userID must own the method.
func (s *Service) Update(ctx context.Context, userID, id string, upd domain.PaymentMethodUpdate) (*domain.PaymentMethod, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	m, err := s.owned(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	wasDefault := m.IsDefault
	if upd.Details != nil {
		m.Details = *upd.Details
	}
	if upd.IsActive != nil {
		m.IsActive = *upd.IsActive
		if !m.IsActive {
			m.IsDefault = false
		}
	}
	if upd.IsDefault != nil {
		if *upd.IsDefault && !m.IsActive {
			return nil, fmt.Errorf("%w: inactive payment method cannot be default", domain.ErrInvalidState)
		}
		m.IsDefault = *upd.IsDefault
	}
	m.UpdatedAt = s.clock.Now()

	if err := s.repo.Update(ctx, m); err != nil {
		zap.L().Error("failed to update payment method", zap.Error(err))
		return nil, err
	}
	if wasDefault && !m.IsActive {
		if err := s.promoteDefault(ctx, m.UserID); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// Delete deactivates a method. When it was the default, the first other active
// method of the user takes over. It reports false when nothing was removed.
func (s *Service) Delete(ctx context.Context, userID, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	m, err := s.repo.Get(ctx, id)
	if err != nil {
		zap.L().Error("failed to get payment method", zap.Error(err))
		return false, err
	}
	if m == nil || !m.IsActive || (userID != "" && m.UserID != userID) {
		return false, nil
	}

	wasDefault := m.IsDefault
	m.IsActive = false
	m.IsDefault = false
	m.UpdatedAt = s.clock.Now()
	if err := s.repo.Update(ctx, m); err != nil {
		zap.L().Error("failed to deactivate payment method", zap.Error(err))
		return false, err
	}

	if wasDefault {
		if err := s.promoteDefault(ctx, m.UserID); err != nil {
			return true, err
		}
	}
	return true, nil
}

func (s *Service) promoteDefault(ctx context.Context, userID string) error {
	siblings, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		zap.L().Error("failed to list payment methods", zap.Error(err))
		return err
	}
	for i := range siblings {
		if !siblings[i].IsActive {
			continue
		}
		next := siblings[i]
		next.IsDefault = true
		next.UpdatedAt = s.clock.Now()
		if err := s.repo.Update(ctx, &next); err != nil {
			zap.L().Error("failed to promote default payment method", zap.Error(err))
			return err
		}
		return nil
	}
	return nil
}

func (s *Service) owned(ctx context.Context, userID, id string) (*domain.PaymentMethod, error) {
	m, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if userID != "" && m.UserID != userID {
		return nil, fmt.Errorf("%w: payment method %s", domain.ErrNotFound, id)
	}
	return m, nil
}

func hasActive(methods []domain.PaymentMethod) bool {
	for _, m := range methods {
		if m.IsActive {
			return true
		}
	}
	return false
}
