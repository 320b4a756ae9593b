package handler

import (
	"net/http"

	"jokemeter/internal/api/v1/dto"
	"jokemeter/internal/service"
)

type UserHandler struct {
	credits   service.CreditReader
	featureID string
}

func NewUserHandler(credits service.CreditReader, featureID string) *UserHandler {
	return &UserHandler{credits: credits, featureID: featureID}
}

// RegisterRoutes mounts the identity and balance routes
func (h *UserHandler) RegisterRoutes(mux *http.ServeMux, mw func(http.Handler) http.Handler) {
	mux.Handle("GET /api/me", mw(http.HandlerFunc(h.me)))
	mux.Handle("GET /api/credits", mw(http.HandlerFunc(h.remainingCredits)))
}

// me godoc
// @Summary Current customer
// @Tags users
// @Produce json
// @Success 200 {object} dto.MeResponseDTO
// @Router /api/me [get]
func (h *UserHandler) me(w http.ResponseWriter, r *http.Request) {
	id, ok := customerID(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, dto.MeResponseDTO{UserID: id})
}

// remainingCredits godoc
// @Summary Remaining balance of the metered feature
// @Description Returns null when the provider exposes no readable balance.
// @Tags users
// @Produce json
// @Success 200 {object} dto.CreditsResponseDTO
// @Router /api/credits [get]
func (h *UserHandler) remainingCredits(w http.ResponseWriter, r *http.Request) {
	id, ok := customerID(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, dto.CreditsResponseDTO{
		Remaining: h.credits.Remaining(r.Context(), id, h.featureID),
	})
}
