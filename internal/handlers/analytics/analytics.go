package analytics

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/GlebRadaev/payledger/internal/domain"
	"github.com/GlebRadaev/payledger/internal/handlers/apierr"
	"github.com/GlebRadaev/payledger/pkg/auth"
	"github.com/GlebRadaev/payledger/pkg/utils"
)

type Service interface {
	PaymentAnalytics(ctx context.Context, scope domain.AnalyticsScope) (*domain.PaymentAnalytics, error)
	PayoutAnalytics(ctx context.Context, scope domain.AnalyticsScope) (*domain.PayoutAnalytics, error)
}

type AnalyticsHandler struct {
	analyticsService Service
}

func New(analyticsService Service) *AnalyticsHandler {
	return &AnalyticsHandler{
		analyticsService: analyticsService,
	}
}

// GetPaymentAnalytics godoc
//
//	@Summary		Aggregate charges and refunds
//	@Description	Scoped to the caller unless an admin passes scope=all.
//	@Tags			Analytics
//	@Security		BearerAuth
//	@Produce		json
//	@Param			scope	query		string	false	"all for platform wide figures"
//	@Param			from	query		string	false	"RFC3339"
//	@Param			to		query		string	false	"RFC3339"
//	@Success		200		{object}	domain.PaymentAnalytics
//	@Failure		403		{object}	utils.Response	"Platform scope requires admin"
//	@Router			/api/analytics/payments [get]
func (h *AnalyticsHandler) GetPaymentAnalytics(w http.ResponseWriter, r *http.Request) {
	scope, code, err := parseScope(r)
	if err != nil {
		utils.RespondWithError(w, code, err.Error())
		return
	}

	res, err := h.analyticsService.PaymentAnalytics(r.Context(), scope)
	if err != nil {
		apierr.Respond(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, res)
}

// GetPayoutAnalytics godoc
//
//	@Summary	Aggregate payouts
//	@Tags		Analytics
//	@Security	BearerAuth
//	@Produce	json
//	@Param		scope	query		string	false	"all for platform wide figures"
//	@Param		from	query		string	false	"RFC3339"
//	@Param		to		query		string	false	"RFC3339"
//	@Success	200		{object}	domain.PayoutAnalytics
//	@Router		/api/analytics/payouts [get]
func (h *AnalyticsHandler) GetPayoutAnalytics(w http.ResponseWriter, r *http.Request) {
	scope, code, err := parseScope(r)
	if err != nil {
		utils.RespondWithError(w, code, err.Error())
		return
	}

	res, err := h.analyticsService.PayoutAnalytics(r.Context(), scope)
	if err != nil {
		apierr.Respond(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, res)
}

func parseScope(r *http.Request) (domain.AnalyticsScope, int, error) {
	q := r.URL.Query()
	scope := domain.AnalyticsScope{UserID: auth.UserID(r.Context())}
	if q.Get("scope") == "all" {
		if !auth.IsAdmin(r.Context()) {
			return scope, http.StatusForbidden, fmt.Errorf("platform scope requires admin")
		}
		scope.UserID = ""
	}

	var err error
	if v := q.Get("from"); v != "" {
		if scope.From, err = time.Parse(time.RFC3339, v); err != nil {
			return scope, http.StatusBadRequest, fmt.Errorf("invalid from: %w", err)
		}
	}
	if v := q.Get("to"); v != "" {
		if scope.To, err = time.Parse(time.RFC3339, v); err != nil {
			return scope, http.StatusBadRequest, fmt.Errorf("invalid to: %w", err)
		}
	}
	if !scope.From.IsZero() && !scope.To.IsZero() && scope.From.After(scope.To) {
		return scope, http.StatusBadRequest, domain.ErrInvalidPeriod
	}
	return scope, http.StatusOK, nil
}
