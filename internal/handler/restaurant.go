package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/tavolo/tavolo/internal/auth"
	"github.com/tavolo/tavolo/internal/handler/dto"
	"github.com/tavolo/tavolo/internal/middleware"
	"github.com/tavolo/tavolo/internal/service"
)

// RestaurantHandler handles restaurant provisioning and listing.
type RestaurantHandler struct {
	svc    *service.RestaurantService
	qr     *service.QRService
	logger *slog.Logger
}

// NewRestaurantHandler creates a new RestaurantHandler.
func NewRestaurantHandler(svc *service.RestaurantService, qr *service.QRService, logger *slog.Logger) *RestaurantHandler {
	return &RestaurantHandler{svc: svc, qr: qr, logger: logger}
}

// List handles GET /api/restaurant. Runs below auth only: an owner with
// zero restaurants gets an empty list here, not a 404.
func (h *RestaurantHandler) List(w http.ResponseWriter, r *http.Request) {
	principal := auth.PrincipalFromContext(r.Context())
	if principal == nil {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	restaurants, err := h.svc.List(r.Context(), principal.UserID)
	if err != nil {
		writeInternalError(h.logger, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, restaurants)
}

// Create handles POST /api/restaurant. Returns 200 rather than 201; the
// dashboard treats provisioning as an idempotent setup step.
func (h *RestaurantHandler) Create(w http.ResponseWriter, r *http.Request) {
	principal := auth.PrincipalFromContext(r.Context())
	if principal == nil {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req dto.CreateRestaurantRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	restaurant, err := h.svc.Create(r.Context(), principal.UserID, service.CreateRestaurantInput{
		Name:           req.Name,
		Slug:           req.Slug,
		LogoURL:        req.LogoURL,
		BannerImageURL: req.BannerImageURL,
		PrimaryColor:   req.PrimaryColor,
		WhatsappNumber: req.WhatsappNumber,
		PhoneNumber:    req.PhoneNumber,
		Location:       req.Location,
		InstagramURL:   req.InstagramURL,
		WelcomeMessage: req.WelcomeMessage,
		LayoutType:     req.LayoutType,
		OpeningHours:   req.OpeningHours,
	})
	if err != nil {
		if mapServiceError(w, err) {
			return
		}
		writeInternalError(h.logger, w, r, err)
		return
	}

	h.logger.Info("restaurant_created",
		"restaurant_id", restaurant.ID,
		"slug", restaurant.Slug,
		"user_id", principal.UserID,
		"request_id", middleware.GetRequestID(r.Context()),
	)

	writeJSON(w, http.StatusOK, restaurant)
}

// QRCode handles GET /api/restaurant/qrcode. Runs below the tenant
// middleware; the QR points at the active restaurant's storefront.
func (h *RestaurantHandler) QRCode(w http.ResponseWriter, r *http.Request) {
	tenant := auth.MustTenantFromContext(r.Context())

	png, err := h.qr.StorefrontQR(tenant.Slug)
	if err != nil {
		writeInternalError(h.logger, w, r, err)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "public, max-age=3600")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(png)
}
