package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/tavolo/tavolo/internal/service"
)

// PublicHandler serves the unauthenticated storefront endpoints.
type PublicHandler struct {
	svc    *service.StorefrontService
	logger *slog.Logger
}

// NewPublicHandler creates a new PublicHandler.
func NewPublicHandler(svc *service.StorefrontService, logger *slog.Logger) *PublicHandler {
	return &PublicHandler{svc: svc, logger: logger}
}

// Storefront handles GET /public/{slug}.
func (h *PublicHandler) Storefront(w http.ResponseWriter, r *http.Request) {
	view, err := h.svc.View(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		if mapServiceError(w, err) {
			return
		}
		writeInternalError(h.logger, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, view)
}

// Menu handles GET /public/{slug}/menu.
func (h *PublicHandler) Menu(w http.ResponseWriter, r *http.Request) {
	items, err := h.svc.Menu(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		if mapServiceError(w, err) {
			return
		}
		writeInternalError(h.logger, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, items)
}
