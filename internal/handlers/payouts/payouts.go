package payouts

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/GlebRadaev/payledger/internal/domain"
	"github.com/GlebRadaev/payledger/internal/dto"
	"github.com/GlebRadaev/payledger/internal/handlers/apierr"
	"github.com/GlebRadaev/payledger/pkg/auth"
	"github.com/GlebRadaev/payledger/pkg/utils"
)

type Service interface {
	AddAccount(ctx context.Context, userID string, in domain.NewPayoutAccount) (*domain.PayoutAccount, error)
	GetUserAccounts(ctx context.Context, userID string) ([]domain.PayoutAccount, error)
	UpdateAccount(ctx context.Context, userID, id string, upd domain.PayoutAccountUpdate) (*domain.PayoutAccount, error)
	CreatePayout(ctx context.Context, req domain.PayoutRequest) (*domain.Payout, error)
	GetUserPayouts(ctx context.Context, userID string, f domain.PayoutFilter) ([]domain.Payout, error)
	GetPayout(ctx context.Context, userID, id string) (*domain.Payout, error)
	ProcessPayout(ctx context.Context, userID, id string) (*domain.Payout, error)
	CancelPayout(ctx context.Context, userID, id string) (*domain.Payout, error)
}

type PayoutHandler struct {
	payoutService Service
}

func New(payoutService Service) *PayoutHandler {
	return &PayoutHandler{
		payoutService: payoutService,
	}
}

// AddAccount godoc
//
//	@Summary		Add a payout account
//	@Description	The account starts unverified; verification finishes asynchronously.
//	@Tags			Payouts
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		dto.AddPayoutAccountRequestDTO	true	"Payout account"
//	@Success		201		{object}	domain.PayoutAccount
//	@Failure		400		{object}	utils.Response	"Invalid details"
//	@Router			/api/payout-accounts [post]
func (h *PayoutHandler) AddAccount(w http.ResponseWriter, r *http.Request) {
	var req dto.AddPayoutAccountRequestDTO
	if err := utils.DecodeJSON(r, &req); err != nil {
		apierr.Respond(w, err)
		return
	}

	account, err := h.payoutService.AddAccount(r.Context(), auth.UserID(r.Context()), domain.NewPayoutAccount{
		Kind:      domain.PayoutAccountKind(req.Kind),
		IsDefault: req.IsDefault,
		Details:   req.Details,
	})
	if err != nil {
		apierr.Respond(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, account)
}

// GetAccounts godoc
//
//	@Summary	List payout accounts
//	@Tags		Payouts
//	@Security	BearerAuth
//	@Produce	json
//	@Success	200	{array}	domain.PayoutAccount
//	@Router		/api/payout-accounts [get]
func (h *PayoutHandler) GetAccounts(w http.ResponseWriter, r *http.Request) {
	accounts, err := h.payoutService.GetUserAccounts(r.Context(), auth.UserID(r.Context()))
	if err != nil {
		apierr.Respond(w, err)
		return
	}
	if accounts == nil {
		accounts = []domain.PayoutAccount{}
	}
	utils.RespondWithJSON(w, http.StatusOK, accounts)
}

// UpdateAccount godoc
//
//	@Summary	Update a payout account
//	@Tags		Payouts
//	@Security	BearerAuth
//	@Accept		json
//	@Produce	json
//	@Param		id		path		string								true	"Payout account id"
//	@Param		request	body		dto.UpdatePayoutAccountRequestDTO	true	"Changes"
//	@Success	200		{object}	domain.PayoutAccount
//	@Failure	404		{object}	utils.Response	"Payout account not found"
//	@Router		/api/payout-accounts/{id} [patch]
func (h *PayoutHandler) UpdateAccount(w http.ResponseWriter, r *http.Request) {
	var req dto.UpdatePayoutAccountRequestDTO
	if err := utils.DecodeJSON(r, &req); err != nil {
		apierr.Respond(w, err)
		return
	}

	account, err := h.payoutService.UpdateAccount(r.Context(), scope(r.Context()), chi.URLParam(r, "id"), domain.PayoutAccountUpdate{
		IsDefault: req.IsDefault,
		Details:   req.Details,
	})
	if err != nil {
		apierr.Respond(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, account)
}

// CreatePayout godoc
//
//	@Summary		Request a payout
//	@Description	Pays out to the given or default verified account. Processing starts asynchronously.
//	@Tags			Payouts
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		dto.PayoutRequestDTO	true	"Payout"
//	@Success		202		{object}	domain.Payout
//	@Failure		400		{object}	utils.Response	"Amount out of range or invalid period"
//	@Failure		422		{object}	utils.Response	"No verified payout account"
//	@Router			/api/payouts [post]
func (h *PayoutHandler) CreatePayout(w http.ResponseWriter, r *http.Request) {
	var req dto.PayoutRequestDTO
	if err := utils.DecodeJSON(r, &req); err != nil {
		apierr.Respond(w, err)
		return
	}

	payout, err := h.payoutService.CreatePayout(r.Context(), domain.PayoutRequest{
		UserID:          auth.UserID(r.Context()),
		UserName:        req.UserName,
		UserRole:        req.UserRole,
		Amount:          req.Amount,
		Currency:        req.Currency,
		Category:        domain.PayoutCategory(req.Category),
		Period:          domain.Period{Start: req.PeriodStart, End: req.PeriodEnd},
		TransactionIDs:  req.TransactionIDs,
		PayoutAccountID: req.PayoutAccountID,
		Metadata:        req.Metadata,
	})
	if err != nil {
		apierr.Respond(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusAccepted, payout)
}

// GetPayouts godoc
//
//	@Summary	List payouts
//	@Tags		Payouts
//	@Security	BearerAuth
//	@Produce	json
//	@Param		category	query		string	false	"Category"
//	@Param		status		query		string	false	"Status"
//	@Param		from		query		string	false	"RFC3339 lower bound on created_at"
//	@Param		to			query		string	false	"RFC3339 upper bound on created_at"
//	@Param		limit		query		int		false	"Maximum number of rows"
//	@Success	200			{array}		domain.Payout
//	@Router		/api/payouts [get]
func (h *PayoutHandler) GetPayouts(w http.ResponseWriter, r *http.Request) {
	filter, err := parseFilter(r.URL.Query())
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	payouts, err := h.payoutService.GetUserPayouts(r.Context(), auth.UserID(r.Context()), filter)
	if err != nil {
		apierr.Respond(w, err)
		return
	}
	if payouts == nil {
		payouts = []domain.Payout{}
	}
	utils.RespondWithJSON(w, http.StatusOK, payouts)
}

// GetPayout godoc
//
//	@Summary	Get a payout
//	@Tags		Payouts
//	@Security	BearerAuth
//	@Produce	json
//	@Param		id	path		string	true	"Payout id"
//	@Success	200	{object}	domain.Payout
//	@Failure	404	{object}	utils.Response	"Payout not found"
//	@Router		/api/payouts/{id} [get]
func (h *PayoutHandler) GetPayout(w http.ResponseWriter, r *http.Request) {
	payout, err := h.payoutService.GetPayout(r.Context(), scope(r.Context()), chi.URLParam(r, "id"))
	if err != nil {
		apierr.Respond(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, payout)
}

// ProcessPayout godoc
//
//	@Summary	Start processing a pending payout
//	@Tags		Payouts
//	@Security	BearerAuth
//	@Produce	json
//	@Param		id	path		string	true	"Payout id"
//	@Success	202	{object}	domain.Payout
//	@Failure	403	{object}	utils.Response	"Admin only"
//	@Failure	409	{object}	utils.Response	"Payout is not pending"
//	@Router		/api/payouts/{id}/process [post]
func (h *PayoutHandler) ProcessPayout(w http.ResponseWriter, r *http.Request) {
	payout, err := h.payoutService.ProcessPayout(r.Context(), scope(r.Context()), chi.URLParam(r, "id"))
	if err != nil {
		apierr.Respond(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusAccepted, payout)
}

// CancelPayout godoc
//
//	@Summary	Cancel a pending payout
//	@Tags		Payouts
//	@Security	BearerAuth
//	@Produce	json
//	@Param		id	path		string	true	"Payout id"
//	@Success	200	{object}	domain.Payout
//	@Failure	409	{object}	utils.Response	"Payout is not pending"
//	@Router		/api/payouts/{id}/cancel [post]
func (h *PayoutHandler) CancelPayout(w http.ResponseWriter, r *http.Request) {
	payout, err := h.payoutService.CancelPayout(r.Context(), scope(r.Context()), chi.URLParam(r, "id"))
	if err != nil {
		apierr.Respond(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, payout)
}

func scope(ctx context.Context) string {
	if auth.IsAdmin(ctx) {
		return ""
	}
	return auth.UserID(ctx)
}

func parseFilter(q url.Values) (domain.PayoutFilter, error) {
	f := domain.PayoutFilter{
		Category: domain.PayoutCategory(q.Get("category")),
		Status:   domain.Status(q.Get("status")),
	}
	if f.Status != "" && !f.Status.Valid() {
		return f, fmt.Errorf("unknown status %q", f.Status)
	}

	var err error
	if v := q.Get("from"); v != "" {
		if f.From, err = time.Parse(time.RFC3339, v); err != nil {
			return f, fmt.Errorf("invalid from: %w", err)
		}
	}
	if v := q.Get("to"); v != "" {
		if f.To, err = time.Parse(time.RFC3339, v); err != nil {
			return f, fmt.Errorf("invalid to: %w", err)
		}
	}
	if v := q.Get("limit"); v != "" {
		if f.Limit, err = strconv.Atoi(v); err != nil || f.Limit < 0 {
			return f, fmt.Errorf("invalid limit %q", v)
		}
	}
	return f, nil
}
