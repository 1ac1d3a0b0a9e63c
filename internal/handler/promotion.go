package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/tavolo/tavolo/internal/auth"
	"github.com/tavolo/tavolo/internal/handler/dto"
	"github.com/tavolo/tavolo/internal/middleware"
	"github.com/tavolo/tavolo/internal/service"
)

// PromotionHandler handles promotion CRUD for the active tenant.
type PromotionHandler struct {
	svc    *service.PromotionService
	logger *slog.Logger
}

// NewPromotionHandler creates a new PromotionHandler.
func NewPromotionHandler(svc *service.PromotionService, logger *slog.Logger) *PromotionHandler {
	return &PromotionHandler{svc: svc, logger: logger}
}

// List handles GET /api/promotion.
func (h *PromotionHandler) List(w http.ResponseWriter, r *http.Request) {
	tenant := auth.MustTenantFromContext(r.Context())

	promos, err := h.svc.List(r.Context(), tenant.RestaurantID)
	if err != nil {
		writeInternalError(h.logger, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, promos)
}

// Get handles GET /api/promotion/{id}.
func (h *PromotionHandler) Get(w http.ResponseWriter, r *http.Request) {
	tenant := auth.MustTenantFromContext(r.Context())

	promo, err := h.svc.Get(r.Context(), chi.URLParam(r, "id"), tenant.RestaurantID)
	if err != nil {
		if mapServiceError(w, err) {
			return
		}
		writeInternalError(h.logger, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, promo)
}

// Create handles POST /api/promotion. The active flag must be present in
// the body; an explicit false is valid, an absent flag is not.
func (h *PromotionHandler) Create(w http.ResponseWriter, r *http.Request) {
	tenant := auth.MustTenantFromContext(r.Context())

	var req dto.PromotionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Active == nil {
		writeError(w, http.StatusBadRequest, "Message and active are required")
		return
	}

	promo, err := h.svc.Create(r.Context(), tenant.RestaurantID, service.PromotionInput{
		Message: req.Message,
		Active:  *req.Active,
	})
	if err != nil {
		if mapServiceError(w, err) {
			return
		}
		writeInternalError(h.logger, w, r, err)
		return
	}

	h.logger.Info("promotion_created",
		"promotion_id", promo.ID,
		"restaurant_id", tenant.RestaurantID,
		"active", promo.Active,
		"request_id", middleware.GetRequestID(r.Context()),
	)

	writeJSON(w, http.StatusCreated, promo)
}

// Update handles PUT /api/promotion/{id}.
func (h *PromotionHandler) Update(w http.ResponseWriter, r *http.Request) {
	tenant := auth.MustTenantFromContext(r.Context())

	var req dto.PromotionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Active == nil {
		writeError(w, http.StatusBadRequest, "Message and active are required")
		return
	}

	promo, err := h.svc.Update(r.Context(), chi.URLParam(r, "id"), tenant.RestaurantID, service.PromotionInput{
		Message: req.Message,
		Active:  *req.Active,
	})
	if err != nil {
		if mapServiceError(w, err) {
			return
		}
		writeInternalError(h.logger, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, promo)
}

// Delete handles DELETE /api/promotion/{id}.
func (h *PromotionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	tenant := auth.MustTenantFromContext(r.Context())

	if err := h.svc.Delete(r.Context(), chi.URLParam(r, "id"), tenant.RestaurantID); err != nil {
		if mapServiceError(w, err) {
			return
		}
		writeInternalError(h.logger, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.MessageResponse{Message: "Promotion item deleted successfully"})
}
