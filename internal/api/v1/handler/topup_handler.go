package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"jokemeter/internal/api/v1/dto"
	"jokemeter/internal/service"
	"jokemeter/internal/util"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
)

type TopupHandler struct {
	topups       service.TopupService
	validate     *validator.Validate
	publicOrigin string
	logger       zerolog.Logger
}

func NewTopupHandler(topups service.TopupService, v *validator.Validate, publicOrigin string, logger zerolog.Logger) *TopupHandler {
	return &TopupHandler{topups: topups, validate: v, publicOrigin: publicOrigin, logger: logger}
}

// RegisterRoutes mounts the credit pack routes
func (h *TopupHandler) RegisterRoutes(mux *http.ServeMux, mw func(http.Handler) http.Handler) {
	mux.Handle("GET /api/topup/options", mw(http.HandlerFunc(h.options)))
	mux.Handle("POST /api/topup/checkout", mw(http.HandlerFunc(h.checkout)))
}

// options godoc
// @Summary List purchasable credit packs
// @Tags topup
// @Produce json
// @Success 200 {object} dto.TopupOptionsResponseDTO
// @Router /api/topup/options [get]
func (h *TopupHandler) options(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, dto.TopupOptionsResponseDTO{Options: h.topups.Options()})
}

// checkout godoc
// @Summary Buy a credit pack
// @Description The pack key is read from the JSON body, or from ?pack= when the body has none.
// @Tags topup
// @Accept json
// @Produce json
// @Param request body dto.TopupCheckoutRequestDTO false "Pack selection"
// @Param pack query string false "Pack key"
// @Success 200 {object} dto.TopupCheckoutResponseDTO
// @Failure 400 {object} dto.ErrorResponseDTO "invalid_request"
// @Failure 404 {object} dto.ErrorResponseDTO "unknown_pack"
// @Failure 500 {object} dto.ErrorResponseDTO "autumn_checkout_failed or no_checkout_url"
// @Router /api/topup/checkout [post]
func (h *TopupHandler) checkout(w http.ResponseWriter, r *http.Request) {
	id, ok := customerID(w, r)
	if !ok {
		return
	}

	var req dto.TopupCheckoutRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid JSON payload: "+err.Error())
		return
	}
	req.Pack = strings.TrimSpace(req.Pack)
	if req.Pack == "" {
		req.Pack = strings.TrimSpace(r.URL.Query().Get("pack"))
	}
	if err := h.validate.Struct(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "validation failed: "+err.Error())
		return
	}

	origin := util.PublicOrigin(r, h.publicOrigin)
	sess, err := h.topups.Checkout(r.Context(), id, req.Pack, origin)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUnknownPack):
			writeError(w, http.StatusNotFound, "unknown_pack", err.Error())
		case errors.Is(err, service.ErrNoCheckoutURL):
			writeError(w, http.StatusInternalServerError, "no_checkout_url", err.Error())
		default:
			h.logger.Error().Err(err).Str("pack", req.Pack).Msg("Top-up checkout failed")
			writeError(w, http.StatusInternalServerError, "autumn_checkout_failed", err.Error())
		}
		return
	}
	writeJSON(w, http.StatusOK, dto.TopupCheckoutResponseDTO{URL: sess.URL})
}
