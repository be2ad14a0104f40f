package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/GlebRadaev/payledger/docs"
	analyticshandlers "github.com/GlebRadaev/payledger/internal/handlers/analytics"
	methodshandlers "github.com/GlebRadaev/payledger/internal/handlers/methods"
	confighandlers "github.com/GlebRadaev/payledger/internal/handlers/paymentconfig"
	payoutshandlers "github.com/GlebRadaev/payledger/internal/handlers/payouts"
	transactionshandlers "github.com/GlebRadaev/payledger/internal/handlers/transactions"
	"github.com/GlebRadaev/payledger/internal/service"
	"github.com/GlebRadaev/payledger/pkg/auth"
	"github.com/GlebRadaev/payledger/pkg/utils"
)

type MethodHandler interface {
	AddMethod(w http.ResponseWriter, r *http.Request)
	GetMethods(w http.ResponseWriter, r *http.Request)
	UpdateMethod(w http.ResponseWriter, r *http.Request)
	DeleteMethod(w http.ResponseWriter, r *http.Request)
}

type TransactionHandler interface {
	ProcessPayment(w http.ResponseWriter, r *http.Request)
	ValidatePayment(w http.ResponseWriter, r *http.Request)
	EstimateFee(w http.ResponseWriter, r *http.Request)
	GetTransactions(w http.ResponseWriter, r *http.Request)
	GetTransaction(w http.ResponseWriter, r *http.Request)
	Refund(w http.ResponseWriter, r *http.Request)
	Cancel(w http.ResponseWriter, r *http.Request)
}

type PayoutHandler interface {
	AddAccount(w http.ResponseWriter, r *http.Request)
	GetAccounts(w http.ResponseWriter, r *http.Request)
	UpdateAccount(w http.ResponseWriter, r *http.Request)
	CreatePayout(w http.ResponseWriter, r *http.Request)
	GetPayouts(w http.ResponseWriter, r *http.Request)
	GetPayout(w http.ResponseWriter, r *http.Request)
	ProcessPayout(w http.ResponseWriter, r *http.Request)
	CancelPayout(w http.ResponseWriter, r *http.Request)
}

type AnalyticsHandler interface {
	GetPaymentAnalytics(w http.ResponseWriter, r *http.Request)
	GetPayoutAnalytics(w http.ResponseWriter, r *http.Request)
}

type ConfigHandler interface {
	GetConfig(w http.ResponseWriter, r *http.Request)
	UpdateConfig(w http.ResponseWriter, r *http.Request)
}

type Handlers struct {
	MethodHandler      MethodHandler
	TransactionHandler TransactionHandler
	PayoutHandler      PayoutHandler
	AnalyticsHandler   AnalyticsHandler
	ConfigHandler      ConfigHandler

	Tokens  auth.TokenValidator
	Metrics http.Handler
}

func New(s *service.Services, tokens auth.TokenValidator, metrics http.Handler) *Handlers {
	return &Handlers{
		MethodHandler:      methodshandlers.New(s.MethodService),
		TransactionHandler: transactionshandlers.New(s.TransactionService),
		PayoutHandler:      payoutshandlers.New(s.PayoutService),
		AnalyticsHandler:   analyticshandlers.New(s.AnalyticsService),
		ConfigHandler:      confighandlers.New(s.ConfigService),
		Tokens:             tokens,
		Metrics:            metrics,
	}
}

func (h *Handlers) InitRoutes(r chi.Router) chi.Router {
	r.Use(
		middleware.RealIP,
		middleware.Recoverer,
		middleware.Logger,
	)
	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		utils.RespondWithJSON(w, http.StatusOK, utils.Response{Message: "ok"})
	})
	if h.Metrics != nil {
		r.Handle("/metrics", h.Metrics)
	}
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("doc.json"),
	))

	r.Route("/api", func(r chi.Router) {
		r.Use(auth.Middleware(h.Tokens))

		r.Route("/payment-methods", func(r chi.Router) {
			r.Post("/", h.MethodHandler.AddMethod)
			r.Get("/", h.MethodHandler.GetMethods)
			r.Patch("/{id}", h.MethodHandler.UpdateMethod)
			r.Delete("/{id}", h.MethodHandler.DeleteMethod)
		})

		r.Post("/payments", h.TransactionHandler.ProcessPayment)
		r.Post("/payments/validate", h.TransactionHandler.ValidatePayment)
		r.Get("/fees/estimate", h.TransactionHandler.EstimateFee)
		r.Route("/transactions", func(r chi.Router) {
			r.Get("/", h.TransactionHandler.GetTransactions)
			r.Get("/{id}", h.TransactionHandler.GetTransaction)
			r.Post("/{id}/refund", h.TransactionHandler.Refund)
			r.Post("/{id}/cancel", h.TransactionHandler.Cancel)
		})

		r.Route("/payout-accounts", func(r chi.Router) {
			r.Post("/", h.PayoutHandler.AddAccount)
			r.Get("/", h.PayoutHandler.GetAccounts)
			r.Patch("/{id}", h.PayoutHandler.UpdateAccount)
		})
		r.Route("/payouts", func(r chi.Router) {
			r.Post("/", h.PayoutHandler.CreatePayout)
			r.Get("/", h.PayoutHandler.GetPayouts)
			r.Get("/{id}", h.PayoutHandler.GetPayout)
			r.Post("/{id}/cancel", h.PayoutHandler.CancelPayout)
			r.With(auth.RequireAdmin).Post("/{id}/process", h.PayoutHandler.ProcessPayout)
		})

		r.Get("/analytics/payments", h.AnalyticsHandler.GetPaymentAnalytics)
		r.Get("/analytics/payouts", h.AnalyticsHandler.GetPayoutAnalytics)

		r.Get("/config", h.ConfigHandler.GetConfig)
		r.With(auth.RequireAdmin).Patch("/config", h.ConfigHandler.UpdateConfig)
	})

	return r
}
