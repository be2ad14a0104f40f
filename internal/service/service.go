package service

import (
	"github.com/GlebRadaev/payledger/internal/config"
	"github.com/GlebRadaev/payledger/internal/domain"
	"github.com/GlebRadaev/payledger/internal/handlers/analytics"
	"github.com/GlebRadaev/payledger/internal/handlers/methods"
	"github.com/GlebRadaev/payledger/internal/handlers/paymentconfig"
	"github.com/GlebRadaev/payledger/internal/handlers/payouts"
	"github.com/GlebRadaev/payledger/internal/handlers/transactions"
	"github.com/GlebRadaev/payledger/internal/processor"
	"github.com/GlebRadaev/payledger/internal/repo"
	"github.com/GlebRadaev/payledger/internal/service/analyticsservice"
	"github.com/GlebRadaev/payledger/internal/service/chargeservice"
	"github.com/GlebRadaev/payledger/internal/service/configservice"
	"github.com/GlebRadaev/payledger/internal/service/methodservice"
	"github.com/GlebRadaev/payledger/internal/service/payoutservice"
)

type Services struct {
	MethodService      methods.Service
	TransactionService transactions.Service
	PayoutService      payouts.Service
	AnalyticsService   analytics.Service
	ConfigService      paymentconfig.Service

	// Resumers pick up entities left unresolved by a previous run.
	Resumers []processor.Resumer
}

func New(repo *repo.Repositories, rt processor.Runtime, sim config.Simulation) *Services {
	configService := configservice.New(domain.DefaultPaymentConfig())
	methodService := methodservice.New(repo.MethodRepo, rt)
	chargeService := chargeservice.New(repo.TransactionRepo, methodService, configService, rt, chargeservice.Simulation{
		PaymentDelay: sim.PaymentDelay,
		RefundDelay:  sim.RefundDelay,
		SuccessRate:  sim.PaymentSuccessRate,
	})
	payoutService := payoutservice.New(repo.AccountRepo, repo.PayoutRepo, configService, rt, payoutservice.Simulation{
		VerificationDelay: sim.VerificationDelay,
		StartDelay:        sim.PayoutStartDelay,
		SettleDelay:       sim.PayoutSettleDelay,
		VerificationRate:  sim.VerificationRate,
		SuccessRate:       sim.PayoutSuccessRate,
	})
	analyticsService := analyticsservice.New(repo.TransactionRepo, repo.PayoutRepo, repo.MethodRepo)

	return &Services{
		MethodService:      methodService,
		TransactionService: chargeService,
		PayoutService:      payoutService,
		AnalyticsService:   analyticsService,
		ConfigService:      configService,
		Resumers:           []processor.Resumer{chargeService, payoutService},
	}
}
