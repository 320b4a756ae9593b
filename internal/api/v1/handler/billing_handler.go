package handler

import (
	"net/http"

	"jokemeter/internal/api/v1/dto"
	"jokemeter/internal/service"
	"jokemeter/internal/util"

	"github.com/rs/zerolog"
)

// BillingHandler handles subscription checkout and the billing portal.
type BillingHandler struct {
	billing      service.BillingService
	publicOrigin string
	logger       zerolog.Logger
}

func NewBillingHandler(billing service.BillingService, publicOrigin string, logger zerolog.Logger) *BillingHandler {
	return &BillingHandler{billing: billing, publicOrigin: publicOrigin, logger: logger}
}

func (h *BillingHandler) RegisterRoutes(mux *http.ServeMux, mw func(http.Handler) http.Handler) {
	mux.Handle("GET /api/checkout", mw(http.HandlerFunc(h.checkout)))
	mux.Handle("POST /api/checkout", mw(http.HandlerFunc(h.checkout)))
	mux.Handle("GET /api/billing/portal", mw(http.HandlerFunc(h.portal)))
}

// checkout godoc
// @Summary Start a subscription checkout
// @Tags billing
// @Produce json
// @Success 200 {object} dto.CheckoutResponseDTO
// @Failure 500 {object} dto.ErrorResponseDTO
// @Router /api/checkout [get]
// @Router /api/checkout [post]
func (h *BillingHandler) checkout(w http.ResponseWriter, r *http.Request) {
	id, ok := customerID(w, r)
	if !ok {
		return
	}
	sess, err := h.billing.Subscribe(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "checkout_failed", err.Error())
		return
	}
	writeJSON(w, http.StatusOK, dto.CheckoutResponseDTO{URL: sess.URL, Data: sess.Raw})
}

// portal godoc
// @Summary Open the billing portal
// @Tags billing
// @Produce json
// @Success 200 {object} dto.PortalResponseDTO
// @Failure 500 {object} dto.ErrorResponseDTO
// @Router /api/billing/portal [get]
func (h *BillingHandler) portal(w http.ResponseWriter, r *http.Request) {
	id, ok := customerID(w, r)
	if !ok {
		return
	}
	returnURL := util.PublicOrigin(r, h.publicOrigin) + "/"
	sess, err := h.billing.Portal(r.Context(), id, returnURL)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "portal_failed", err.Error())
		return
	}
	writeJSON(w, http.StatusOK, dto.PortalResponseDTO{URL: sess.URL})
}
