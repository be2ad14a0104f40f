package transactions

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/GlebRadaev/payledger/internal/domain"
	"github.com/GlebRadaev/payledger/internal/dto"
	"github.com/GlebRadaev/payledger/internal/handlers/apierr"
	"github.com/GlebRadaev/payledger/pkg/auth"
	"github.com/GlebRadaev/payledger/pkg/fees"
	"github.com/GlebRadaev/payledger/pkg/utils"
)

type Service interface {
	ProcessPayment(ctx context.Context, req domain.PaymentRequest) (*domain.Transaction, error)
	GetUserTransactions(ctx context.Context, userID string, f domain.TransactionFilter) ([]domain.Transaction, error)
	GetTransaction(ctx context.Context, userID, id string) (*domain.Transaction, error)
	Refund(ctx context.Context, userID, id string, amount *float64, reason string) (*domain.Transaction, error)
	Cancel(ctx context.Context, userID, id string) (*domain.Transaction, error)
	CheckPaymentAmount(ctx context.Context, amount float64, userID string) error
	EstimateProcessingFee(amount float64, kind domain.PaymentMethodKind) float64
}

type TransactionHandler struct {
	transactionService Service
}

func New(transactionService Service) *TransactionHandler {
	return &TransactionHandler{
		transactionService: transactionService,
	}
}

// ProcessPayment godoc
//
//	@Summary		Charge the user
//	@Description	Records a pending charge against the given or default payment method. The charge resolves asynchronously.
//	@Tags			Transactions
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		dto.PaymentRequestDTO	true	"Payment"
//	@Success		202		{object}	domain.Transaction
//	@Failure		400		{object}	utils.Response	"Invalid amount or details"
//	@Failure		422		{object}	utils.Response	"No usable payment method"
//	@Router			/api/payments [post]
func (h *TransactionHandler) ProcessPayment(w http.ResponseWriter, r *http.Request) {
	var req dto.PaymentRequestDTO
	if err := utils.DecodeJSON(r, &req); err != nil {
		apierr.Respond(w, err)
		return
	}

	var meta domain.Metadata
	if len(req.Metadata) > 0 {
		var err error
		if meta, err = domain.DecodeMetadata(req.Metadata); err != nil {
			apierr.Respond(w, fmt.Errorf("%w: metadata: %v", domain.ErrInvalidDetails, err))
			return
		}
	}

	txn, err := h.transactionService.ProcessPayment(r.Context(), domain.PaymentRequest{
		UserID:          auth.UserID(r.Context()),
		Amount:          req.Amount,
		Currency:        req.Currency,
		Category:        domain.TransactionCategory(req.Category),
		Description:     req.Description,
		PaymentMethodID: req.PaymentMethodID,
		Metadata:        meta,
	})
	if err != nil {
		apierr.Respond(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusAccepted, txn)
}

// GetTransactions godoc
//
//	@Summary		List transactions
//	@Tags			Transactions
//	@Security		BearerAuth
//	@Produce		json
//	@Param			category	query		string	false	"Category"
//	@Param			type		query		string	false	"charge or refund"
//	@Param			status		query		string	false	"Status"
//	@Param			from		query		string	false	"RFC3339 lower bound on created_at"
//	@Param			to			query		string	false	"RFC3339 upper bound on created_at"
//	@Param			limit		query		int		false	"Maximum number of rows"
//	@Success		200			{array}		domain.Transaction
//	@Failure		400			{object}	utils.Response	"Invalid filter"
//	@Router			/api/transactions [get]
func (h *TransactionHandler) GetTransactions(w http.ResponseWriter, r *http.Request) {
	filter, err := parseFilter(r.URL.Query())
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	txns, err := h.transactionService.GetUserTransactions(r.Context(), auth.UserID(r.Context()), filter)
	if err != nil {
		apierr.Respond(w, err)
		return
	}
	if txns == nil {
		txns = []domain.Transaction{}
	}
	utils.RespondWithJSON(w, http.StatusOK, txns)
}

// GetTransaction godoc
//
//	@Summary		Get a transaction
//	@Tags			Transactions
//	@Security		BearerAuth
//	@Produce		json
//	@Param			id	path		string	true	"Transaction id"
//	@Success		200	{object}	domain.Transaction
//	@Failure		404	{object}	utils.Response	"Transaction not found"
//	@Router			/api/transactions/{id} [get]
func (h *TransactionHandler) GetTransaction(w http.ResponseWriter, r *http.Request) {
	txn, err := h.transactionService.GetTransaction(r.Context(), scope(r.Context()), chi.URLParam(r, "id"))
	if err != nil {
		apierr.Respond(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, txn)
}

// Refund godoc
//
//	@Summary		Refund a completed charge
//	@Description	Without an amount the remaining charge is refunded in full.
//	@Tags			Transactions
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string					true	"Charge id"
//	@Param			request	body		dto.RefundRequestDTO	false	"Refund"
//	@Success		202		{object}	dto.RefundResponseDTO
//	@Failure		400		{object}	utils.Response	"Refund amount exceeds the charge"
//	@Failure		404		{object}	utils.Response	"Transaction not found"
//	@Failure		409		{object}	utils.Response	"Charge is not refundable"
//	@Router			/api/transactions/{id}/refund [post]
func (h *TransactionHandler) Refund(w http.ResponseWriter, r *http.Request) {
	var req dto.RefundRequestDTO
	if err := utils.DecodeJSON(r, &req); err != nil && !errors.Is(err, io.EOF) {
		apierr.Respond(w, err)
		return
	}

	refund, err := h.transactionService.Refund(r.Context(), scope(r.Context()), chi.URLParam(r, "id"), req.Amount, req.Reason)
	if err != nil {
		apierr.Respond(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusAccepted, dto.RefundResponseDTO{
		ID:                   refund.ID,
		RelatedTransactionID: refund.RelatedTransactionID,
		Amount:               refund.Amount,
		Status:               string(refund.Status),
		CreatedAt:            refund.CreatedAt,
	})
}

// Cancel godoc
//
//	@Summary		Cancel a pending charge
//	@Tags			Transactions
//	@Security		BearerAuth
//	@Produce		json
//	@Param			id	path		string	true	"Charge id"
//	@Success		200	{object}	domain.Transaction
//	@Failure		404	{object}	utils.Response	"Transaction not found"
//	@Failure		409	{object}	utils.Response	"Charge already started"
//	@Router			/api/transactions/{id}/cancel [post]
func (h *TransactionHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	txn, err := h.transactionService.Cancel(r.Context(), scope(r.Context()), chi.URLParam(r, "id"))
	if err != nil {
		apierr.Respond(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, txn)
}

// ValidatePayment godoc
//
//	@Summary		Check an amount against the user's limits
//	@Tags			Transactions
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		dto.ValidatePaymentRequestDTO	true	"Amount"
//	@Success		200		{object}	dto.ValidatePaymentResponseDTO
//	@Router			/api/payments/validate [post]
func (h *TransactionHandler) ValidatePayment(w http.ResponseWriter, r *http.Request) {
	var req dto.ValidatePaymentRequestDTO
	if err := utils.DecodeJSON(r, &req); err != nil {
		apierr.Respond(w, err)
		return
	}

	err := h.transactionService.CheckPaymentAmount(r.Context(), req.Amount, auth.UserID(r.Context()))
	if err != nil && apierr.Status(err) == http.StatusInternalServerError {
		apierr.Respond(w, err)
		return
	}
	resp := dto.ValidatePaymentResponseDTO{Valid: err == nil}
	if err != nil {
		resp.Reason = err.Error()
	}
	utils.RespondWithJSON(w, http.StatusOK, resp)
}

// EstimateFee godoc
//
//	@Summary		Estimate the processing fee
//	@Tags			Transactions
//	@Security		BearerAuth
//	@Produce		json
//	@Param			amount	query		number	true	"Amount"
//	@Param			kind	query		string	true	"Payment method kind"
//	@Success		200		{object}	dto.FeeEstimateResponseDTO
//	@Failure		400		{object}	utils.Response	"Invalid amount or kind"
//	@Router			/api/fees/estimate [get]
func (h *TransactionHandler) EstimateFee(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	amount, err := strconv.ParseFloat(q.Get("amount"), 64)
	if err != nil || math.IsNaN(amount) || math.IsInf(amount, 0) || amount <= 0 {
		utils.RespondWithError(w, http.StatusBadRequest, "amount must be a positive number")
		return
	}
	kind := domain.PaymentMethodKind(q.Get("kind"))
	if !kind.Valid() {
		utils.RespondWithError(w, http.StatusBadRequest, "unknown payment method kind")
		return
	}

	fee := h.transactionService.EstimateProcessingFee(amount, kind)
	utils.RespondWithJSON(w, http.StatusOK, dto.FeeEstimateResponseDTO{
		Amount:        amount,
		Kind:          string(kind),
		ProcessingFee: fee,
		NetAmount:     fees.Net(amount, fee),
	})
}

// scope is the owner filter for by-id operations; admins see every user's entities.
func scope(ctx context.Context) string {
	if auth.IsAdmin(ctx) {
		return ""
	}
	return auth.UserID(ctx)
}

func parseFilter(q url.Values) (domain.TransactionFilter, error) {
	f := domain.TransactionFilter{
		Category: domain.TransactionCategory(q.Get("category")),
		Type:     domain.TransactionType(q.Get("type")),
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
