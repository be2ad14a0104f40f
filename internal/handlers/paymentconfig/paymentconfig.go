package paymentconfig

import (
	"context"
	"net/http"

	"github.com/GlebRadaev/payledger/internal/domain"
	"github.com/GlebRadaev/payledger/internal/dto"
	"github.com/GlebRadaev/payledger/internal/handlers/apierr"
	"github.com/GlebRadaev/payledger/pkg/utils"
)

type Service interface {
	Get() domain.PaymentConfig
	Update(ctx context.Context, upd domain.PaymentConfigUpdate) (domain.PaymentConfig, error)
}

type ConfigHandler struct {
	configService Service
}

func New(configService Service) *ConfigHandler {
	return &ConfigHandler{
		configService: configService,
	}
}

// GetConfig godoc
//
//	@Summary	Current payment configuration
//	@Tags		Configuration
//	@Security	BearerAuth
//	@Produce	json
//	@Success	200	{object}	domain.PaymentConfig
//	@Router		/api/config [get]
func (h *ConfigHandler) GetConfig(w http.ResponseWriter, r *http.Request) {
	utils.RespondWithJSON(w, http.StatusOK, h.configService.Get())
}

// UpdateConfig godoc
//
//	@Summary		Change the payment configuration
//	@Description	Sections left out of the body stay as they are.
//	@Tags			Configuration
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		dto.UpdatePaymentConfigRequestDTO	true	"Sections to replace"
//	@Success		200		{object}	domain.PaymentConfig
//	@Failure		400		{object}	utils.Response	"Invalid configuration"
//	@Failure		403		{object}	utils.Response	"Admin only"
//	@Router			/api/config [patch]
func (h *ConfigHandler) UpdateConfig(w http.ResponseWriter, r *http.Request) {
	var req dto.UpdatePaymentConfigRequestDTO
	if err := utils.DecodeJSON(r, &req); err != nil {
		apierr.Respond(w, err)
		return
	}

	cfg, err := h.configService.Update(r.Context(), domain.PaymentConfigUpdate{
		Processors:     req.Processors,
		Fees:           req.Fees,
		Limits:         req.Limits,
		PayoutSchedule: req.PayoutSchedule,
	})
	if err != nil {
		apierr.Respond(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, cfg)
}
