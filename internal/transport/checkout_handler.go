package transport

import (
	"net/http"

	"luxury-market/internal/domain"
	"luxury-market/internal/middleware"
	"luxury-market/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// CheckoutHandler handles the public checkout handoff endpoint.
type CheckoutHandler struct {
	checkout *service.CheckoutService
	logger   *zap.Logger
}

func NewCheckoutHandler(checkout *service.CheckoutService, logger *zap.Logger) *CheckoutHandler {
	return &CheckoutHandler{checkout: checkout, logger: logger}
}

// RegisterRoutes registers the public checkout route.
func (h *CheckoutHandler) RegisterRoutes(r chi.Router) {
	r.Post("/api/checkout", h.Checkout)
}

// Checkout validates the order form and returns the WhatsApp handoff.
func (h *CheckoutHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	var req domain.CheckoutRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		h.logger.Debug("Checkout validation failed", zap.Error(err))

		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	handoff := h.checkout.Build(req)
	h.logger.Info("Checkout handoff built",
		zap.Int("items", len(req.Items)),
		zap.Int("message_length", len(handoff.Message)))
	middleware.RespondWithJSON(w, http.StatusOK, handoff)
}
