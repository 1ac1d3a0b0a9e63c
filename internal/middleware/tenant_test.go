package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/tavolo/tavolo/internal/auth"
	"github.com/tavolo/tavolo/internal/model"
	"github.com/tavolo/tavolo/internal/repository"
)

type fakeTenantSource struct {
	restaurants map[string][]*model.Restaurant // keyed by email
	err         error                          // returned verbatim when set
}

func (f *fakeTenantSource) GetUserWithRestaurants(_ context.Context, email string) (*model.User, []*model.Restaurant, error) {
	if f.err != nil {
		return nil, nil, f.err
	}
	restaurants, ok := f.restaurants[email]
	if !ok {
		return nil, nil, repository.ErrUserNotFound
	}
	return &model.User{ID: "user-1", Email: email}, restaurants, nil
}

func newTenantHandler(source TenantSource, got **model.Tenant) http.Handler {
	return Tenant(TenantConfig{Logger: discardLogger(), Source: source})(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			*got = auth.TenantFromContext(r.Context())
			w.WriteHeader(http.StatusOK)
		}))
}

func tenantRequest(header string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/api/menu", nil)
	if header != "" {
		req.Header.Set(TenantHeader, header)
	}
	principal := &model.Principal{UserID: "user-1", Email: "owner@example.com"}
	return req.WithContext(auth.ContextWithPrincipal(req.Context(), principal))
}

func TestTenantResolution(t *testing.T) {
	now := time.Now().UTC()
	source := &fakeTenantSource{restaurants: map[string][]*model.Restaurant{
		"owner@example.com": {
			{ID: "rest-1", Slug: "first", UserID: "user-1", CreatedAt: now.Add(-time.Hour)},
			{ID: "rest-2", Slug: "second", UserID: "user-1", CreatedAt: now},
		},
	}}

	testCases := []struct {
		name       string
		header     string
		wantStatus int
		wantID     string
	}{
		{
			name:       "defaults to oldest restaurant",
			wantStatus: http.StatusOK,
			wantID:     "rest-1",
		},
		{
			name:       "header selects owned restaurant",
			header:     "rest-2",
			wantStatus: http.StatusOK,
			wantID:     "rest-2",
		},
		{
			name:       "header naming unowned restaurant",
			header:     "rest-999",
			wantStatus: http.StatusNotFound,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var got *model.Tenant
			handler := newTenantHandler(source, &got)

			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, tenantRequest(tc.header))

			if rec.Code != tc.wantStatus {
				t.Fatalf("status = %d, want %d", rec.Code, tc.wantStatus)
			}

			if tc.wantStatus == http.StatusOK {
				if got == nil || got.RestaurantID != tc.wantID {
					t.Fatalf("tenant = %+v, want %s", got, tc.wantID)
				}
				return
			}

			var body map[string]string
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatalf("invalid json body: %v", err)
			}
			if body["message"] != "User or Restaurant not found" {
				t.Errorf("message = %q", body["message"])
			}
		})
	}
}

func TestTenantNoRestaurants(t *testing.T) {
	source := &fakeTenantSource{restaurants: map[string][]*model.Restaurant{
		"owner@example.com": {},
	}}

	var got *model.Tenant
	handler := newTenantHandler(source, &got)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, tenantRequest(""))

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}

func TestTenantDeletedUser(t *testing.T) {
	source := &fakeTenantSource{restaurants: map[string][]*model.Restaurant{}}

	var got *model.Tenant
	handler := newTenantHandler(source, &got)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, tenantRequest(""))

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}

// A storage failure during tenant lookup is not a missing tenant.
func TestTenantLookupStorageError(t *testing.T) {
	source := &fakeTenantSource{err: errors.New("connection refused")}

	var got *model.Tenant
	handler := newTenantHandler(source, &got)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, tenantRequest(""))

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}
	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid json body: %v", err)
	}
	if body["message"] != "Internal server error" {
		t.Errorf("message = %q", body["message"])
	}
}

func TestTenantMissingPrincipal(t *testing.T) {
	source := &fakeTenantSource{restaurants: map[string][]*model.Restaurant{}}

	var got *model.Tenant
	handler := newTenantHandler(source, &got)

	req := httptest.NewRequest(http.MethodGet, "/api/menu", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
}
