package handler

import (
	"net/http"

	"jokemeter/internal/api/v1/dto"
	"jokemeter/internal/service"

	"github.com/rs/zerolog"
)

type JokeHandler struct {
	gateway service.GatewayService
	logger  zerolog.Logger
}

func NewJokeHandler(gateway service.GatewayService, logger zerolog.Logger) *JokeHandler {
	return &JokeHandler{gateway: gateway, logger: logger}
}

func (h *JokeHandler) RegisterRoutes(mux *http.ServeMux, mw func(http.Handler) http.Handler) {
	mux.Handle("GET /api/joke", mw(http.HandlerFunc(h.getJoke)))
}

// getJoke godoc
// @Summary Spend one credit on a joke
// @Description Checks the customer's entitlement. On a grant the joke is
// @Description delivered and one unit of usage is recorded; on a denial a
// @Description checkout URL for the subscription product is offered.
// @Tags jokes
// @Produce json
// @Success 200 {object} dto.JokeResponseDTO
// @Failure 402 {object} dto.UpgradeRequiredDTO
// @Failure 500 {object} dto.ErrorResponseDTO
// @Router /api/joke [get]
func (h *JokeHandler) getJoke(w http.ResponseWriter, r *http.Request) {
	id, ok := customerID(w, r)
	if !ok {
		return
	}

	outcome, err := h.gateway.Use(r.Context(), id)
	if err != nil {
		h.logger.Error().Err(err).Str("customer_id", id).Msg("Entitlement check failed")
		writeError(w, http.StatusInternalServerError, "server_error", err.Error())
		return
	}

	if !outcome.Granted {
		writeJSON(w, http.StatusPaymentRequired, dto.UpgradeRequiredDTO{
			Error:       "upgrade_required",
			Message:     outcome.Reason,
			CheckoutURL: outcome.CheckoutURL,
		})
		return
	}

	writeJSON(w, http.StatusOK, dto.JokeResponseDTO{Joke: outcome.Joke, Remaining: outcome.Remaining})
}
