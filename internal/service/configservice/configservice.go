package configservice

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/GlebRadaev/payledger/internal/domain"
)

// Service owns the process wide PaymentConfig.
type Service struct {
	mu  sync.RWMutex
	cfg domain.PaymentConfig
}

func New(cfg domain.PaymentConfig) *Service {
	return &Service{cfg: cfg}
}

func (s *Service) Get() domain.PaymentConfig {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cfg
}

// Update merges the given sections. An invalid result leaves the current config in place.
func (s *Service) Update(_ context.Context, upd domain.PaymentConfigUpdate) (domain.PaymentConfig, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.cfg
	if upd.Processors != nil {
		next.Processors = *upd.Processors
	}
	if upd.Fees != nil {
		next.Fees = *upd.Fees
	}
	if upd.Limits != nil {
		next.Limits = *upd.Limits
	}
	if upd.PayoutSchedule != nil {
		next.PayoutSchedule = *upd.PayoutSchedule
	}
	if err := next.Validate(); err != nil {
		zap.L().Warn("rejected payment config update", zap.Error(err))
		return s.cfg, err
	}

	s.cfg = next
	zap.L().Info("payment config updated")
	return next, nil
}
