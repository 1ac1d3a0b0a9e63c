package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/tavolo/tavolo/internal/auth"
	"github.com/tavolo/tavolo/internal/handler/dto"
	"github.com/tavolo/tavolo/internal/middleware"
	"github.com/tavolo/tavolo/internal/model"
	"github.com/tavolo/tavolo/internal/service"
)

// LedgerHandler handles income and expense tracking for the active
// tenant. One handler serves both resources; the kind is fixed per route.
type LedgerHandler struct {
	svc    *service.LedgerService
	logger *slog.Logger
}

// NewLedgerHandler creates a new LedgerHandler.
func NewLedgerHandler(svc *service.LedgerService, logger *slog.Logger) *LedgerHandler {
	return &LedgerHandler{svc: svc, logger: logger}
}

// ListExpenses handles GET /api/expenses.
func (h *LedgerHandler) ListExpenses(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, model.KindExpense)
}

// CreateExpense handles POST /api/expenses.
func (h *LedgerHandler) CreateExpense(w http.ResponseWriter, r *http.Request) {
	h.create(w, r, model.KindExpense)
}

// ListIncome handles GET /api/income.
func (h *LedgerHandler) ListIncome(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, model.KindIncome)
}

// CreateIncome handles POST /api/income.
func (h *LedgerHandler) CreateIncome(w http.ResponseWriter, r *http.Request) {
	h.create(w, r, model.KindIncome)
}

func (h *LedgerHandler) list(w http.ResponseWriter, r *http.Request, kind model.LedgerKind) {
	tenant := auth.MustTenantFromContext(r.Context())

	entries, err := h.svc.List(r.Context(), tenant.RestaurantID, kind)
	if err != nil {
		writeInternalError(h.logger, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, entries)
}

func (h *LedgerHandler) create(w http.ResponseWriter, r *http.Request, kind model.LedgerKind) {
	tenant := auth.MustTenantFromContext(r.Context())

	var req dto.LedgerEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	entry, err := h.svc.Record(r.Context(), tenant.RestaurantID, kind, service.LedgerEntryInput{
		Value: req.Value,
		Note:  req.Note,
		Date:  req.Date,
	})
	if err != nil {
		if mapServiceError(w, err) {
			return
		}
		writeInternalError(h.logger, w, r, err)
		return
	}

	h.logger.Info("ledger_entry_recorded",
		"entry_id", entry.ID,
		"kind", string(kind),
		"restaurant_id", tenant.RestaurantID,
		"request_id", middleware.GetRequestID(r.Context()),
	)

	writeJSON(w, http.StatusCreated, entry)
}

// Summary handles GET /api/summary?from=&to=. Bounds are optional
// RFC3339 timestamps or bare dates; an unbounded summary covers the
// whole ledger.
func (h *LedgerHandler) Summary(w http.ResponseWriter, r *http.Request) {
	tenant := auth.MustTenantFromContext(r.Context())

	from, ok := parseBound(r.URL.Query().Get("from"))
	if !ok {
		writeError(w, http.StatusBadRequest, "Invalid from parameter")
		return
	}
	to, ok := parseBound(r.URL.Query().Get("to"))
	if !ok {
		writeError(w, http.StatusBadRequest, "Invalid to parameter")
		return
	}

	summary, err := h.svc.Summarize(r.Context(), tenant.RestaurantID, from, to)
	if err != nil {
		writeInternalError(h.logger, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, summary)
}

func parseBound(s string) (*time.Time, bool) {
	if s == "" {
		return nil, true
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		t = t.UTC()
		return &t, true
	}
	if t, err := time.Parse("2006-01-02", s); err == nil {
		t = t.UTC()
		return &t, true
	}
	return nil, false
}
