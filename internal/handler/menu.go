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

// MenuHandler handles menu item CRUD for the active tenant.
type MenuHandler struct {
	svc    *service.MenuService
	logger *slog.Logger
}

// NewMenuHandler creates a new MenuHandler.
func NewMenuHandler(svc *service.MenuService, logger *slog.Logger) *MenuHandler {
	return &MenuHandler{svc: svc, logger: logger}
}

// List handles GET /api/menu.
func (h *MenuHandler) List(w http.ResponseWriter, r *http.Request) {
	tenant := auth.MustTenantFromContext(r.Context())

	items, err := h.svc.List(r.Context(), tenant.RestaurantID)
	if err != nil {
		writeInternalError(h.logger, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, items)
}

// Get handles GET /api/menu/{id}.
func (h *MenuHandler) Get(w http.ResponseWriter, r *http.Request) {
	tenant := auth.MustTenantFromContext(r.Context())

	item, err := h.svc.Get(r.Context(), chi.URLParam(r, "id"), tenant.RestaurantID)
	if err != nil {
		if mapServiceError(w, err) {
			return
		}
		writeInternalError(h.logger, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, item)
}

// Create handles POST /api/menu.
func (h *MenuHandler) Create(w http.ResponseWriter, r *http.Request) {
	tenant := auth.MustTenantFromContext(r.Context())

	var req dto.MenuItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	item, err := h.svc.Create(r.Context(), tenant.RestaurantID, menuInput(req))
	if err != nil {
		if mapServiceError(w, err) {
			return
		}
		writeInternalError(h.logger, w, r, err)
		return
	}

	h.logger.Info("menu_item_created",
		"menu_item_id", item.ID,
		"restaurant_id", tenant.RestaurantID,
		"request_id", middleware.GetRequestID(r.Context()),
	)

	writeJSON(w, http.StatusCreated, item)
}

// Update handles PUT /api/menu/{id}. Full overwrite: optional fields
// omitted from the body are cleared.
func (h *MenuHandler) Update(w http.ResponseWriter, r *http.Request) {
	tenant := auth.MustTenantFromContext(r.Context())

	var req dto.MenuItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	item, err := h.svc.Update(r.Context(), chi.URLParam(r, "id"), tenant.RestaurantID, menuInput(req))
	if err != nil {
		if mapServiceError(w, err) {
			return
		}
		writeInternalError(h.logger, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, item)
}

// Delete handles DELETE /api/menu/{id}.
func (h *MenuHandler) Delete(w http.ResponseWriter, r *http.Request) {
	tenant := auth.MustTenantFromContext(r.Context())

	if err := h.svc.Delete(r.Context(), chi.URLParam(r, "id"), tenant.RestaurantID); err != nil {
		if mapServiceError(w, err) {
			return
		}
		writeInternalError(h.logger, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.MessageResponse{Message: "Menu item deleted successfully"})
}

func menuInput(req dto.MenuItemRequest) service.MenuItemInput {
	return service.MenuItemInput{
		Name:        req.Name,
		Price:       req.Price,
		Description: req.Description,
		Category:    req.Category,
		ImageURL:    req.ImageURL,
	}
}
