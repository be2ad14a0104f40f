package methods

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/GlebRadaev/payledger/internal/domain"
	"github.com/GlebRadaev/payledger/internal/dto"
	"github.com/GlebRadaev/payledger/internal/handlers/apierr"
	"github.com/GlebRadaev/payledger/pkg/auth"
	"github.com/GlebRadaev/payledger/pkg/utils"
)

type Service interface {
	Add(ctx context.Context, userID string, in domain.NewPaymentMethod) (*domain.PaymentMethod, error)
	List(ctx context.Context, userID string) ([]domain.PaymentMethod, error)
	Update(ctx context.Context, userID, id string, upd domain.PaymentMethodUpdate) (*domain.PaymentMethod, error)
	Delete(ctx context.Context, userID, id string) (bool, error)
}

type MethodHandler struct {
	methodService Service
}

func New(methodService Service) *MethodHandler {
	return &MethodHandler{
		methodService: methodService,
	}
}

// AddMethod godoc
//
//	@Summary		Add a payment method
//	@Tags			Payment methods
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		dto.AddPaymentMethodRequestDTO	true	"Payment method"
//	@Success		201		{object}	domain.PaymentMethod
//	@Failure		400		{object}	utils.Response	"Invalid details"
//	@Failure		401		{object}	utils.Response	"User not authorized"
//	@Router			/api/payment-methods [post]
func (h *MethodHandler) AddMethod(w http.ResponseWriter, r *http.Request) {
	var req dto.AddPaymentMethodRequestDTO
	if err := utils.DecodeJSON(r, &req); err != nil {
		apierr.Respond(w, err)
		return
	}

	method, err := h.methodService.Add(r.Context(), auth.UserID(r.Context()), domain.NewPaymentMethod{
		Kind:       domain.PaymentMethodKind(req.Kind),
		IsDefault:  req.IsDefault,
		Details:    req.Details,
		CardNumber: req.CardNumber,
	})
	if err != nil {
		apierr.Respond(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, method)
}

// GetMethods godoc
//
//	@Summary		List active payment methods
//	@Tags			Payment methods
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{array}		domain.PaymentMethod
//	@Failure		401	{object}	utils.Response	"User not authorized"
//	@Router			/api/payment-methods [get]
func (h *MethodHandler) GetMethods(w http.ResponseWriter, r *http.Request) {
	methods, err := h.methodService.List(r.Context(), auth.UserID(r.Context()))
	if err != nil {
		apierr.Respond(w, err)
		return
	}
	if methods == nil {
		methods = []domain.PaymentMethod{}
	}
	utils.RespondWithJSON(w, http.StatusOK, methods)
}

// UpdateMethod godoc
//
//	@Summary		Update a payment method
//	@Description	Partial update. Making a method default clears the flag on the user's other methods.
//	@Tags			Payment methods
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string								true	"Payment method id"
//	@Param			request	body		dto.UpdatePaymentMethodRequestDTO	true	"Changes"
//	@Success		200		{object}	domain.PaymentMethod
//	@Failure		404		{object}	utils.Response	"Payment method not found"
//	@Failure		409		{object}	utils.Response	"Method is inactive"
//	@Router			/api/payment-methods/{id} [patch]
func (h *MethodHandler) UpdateMethod(w http.ResponseWriter, r *http.Request) {
	var req dto.UpdatePaymentMethodRequestDTO
	if err := utils.DecodeJSON(r, &req); err != nil {
		apierr.Respond(w, err)
		return
	}

	method, err := h.methodService.Update(r.Context(), auth.UserID(r.Context()), chi.URLParam(r, "id"), domain.PaymentMethodUpdate{
		IsDefault: req.IsDefault,
		IsActive:  req.IsActive,
		Details:   req.Details,
	})
	if err != nil {
		apierr.Respond(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, method)
}

// DeleteMethod godoc
//
//	@Summary		Remove a payment method
//	@Tags			Payment methods
//	@Security		BearerAuth
//	@Param			id	path	string	true	"Payment method id"
//	@Success		204
//	@Failure		404	{object}	utils.Response	"Payment method not found"
//	@Router			/api/payment-methods/{id} [delete]
func (h *MethodHandler) DeleteMethod(w http.ResponseWriter, r *http.Request) {
	removed, err := h.methodService.Delete(r.Context(), auth.UserID(r.Context()), chi.URLParam(r, "id"))
	if err != nil {
		apierr.Respond(w, err)
		return
	}
	if !removed {
		utils.RespondWithError(w, http.StatusNotFound, "Payment method not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
