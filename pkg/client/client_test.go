package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func newTestServer(t *testing.T, routes map[string]http.HandlerFunc) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	for pattern, fn := range routes {
		mux.HandleFunc(pattern, fn)
	}
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func TestFetchMenuCachesList(t *testing.T) {
	srv := newTestServer(t, map[string]http.HandlerFunc{
		"GET /api/menu": func(w http.ResponseWriter, r *http.Request) {
			if got := r.Header.Get("Authorization"); got != "Bearer tok" {
				t.Errorf("Authorization = %q", got)
			}
			respondJSON(w, http.StatusOK, []MenuItem{
				{ID: "m1", Name: "Margherita", Price: 12.5},
				{ID: "m2", Name: "Diavola", Price: 14},
			})
		},
	})

	c := New(srv.URL, srv.Client(), WithToken("tok"))
	items, err := c.FetchMenu(context.Background())
	if err != nil {
		t.Fatalf("FetchMenu: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("len = %d, want 2", len(items))
	}
	if cached := c.Menu(); len(cached) != 2 || cached[0].ID != "m1" {
		t.Fatalf("cache = %+v", cached)
	}
}

func TestFetchCoercesNonArrayToEmpty(t *testing.T) {
	srv := newTestServer(t, map[string]http.HandlerFunc{
		"GET /api/menu": func(w http.ResponseWriter, r *http.Request) {
			respondJSON(w, http.StatusOK, map[string]string{"unexpected": "shape"})
		},
	})

	c := New(srv.URL, srv.Client())
	items, err := c.FetchMenu(context.Background())
	if err != nil {
		t.Fatalf("FetchMenu: %v", err)
	}
	if len(items) != 0 {
		t.Fatalf("len = %d, want 0", len(items))
	}
}

func TestCreatePrependsToCache(t *testing.T) {
	srv := newTestServer(t, map[string]http.HandlerFunc{
		"GET /api/menu": func(w http.ResponseWriter, r *http.Request) {
			respondJSON(w, http.StatusOK, []MenuItem{{ID: "m1", Name: "Margherita"}})
		},
		"POST /api/menu": func(w http.ResponseWriter, r *http.Request) {
			var input MenuItemInput
			_ = json.NewDecoder(r.Body).Decode(&input)
			respondJSON(w, http.StatusCreated, MenuItem{ID: "m2", Name: input.Name, Price: input.Price})
		},
	})

	c := New(srv.URL, srv.Client())
	if _, err := c.FetchMenu(context.Background()); err != nil {
		t.Fatal(err)
	}
	created, err := c.CreateMenuItem(context.Background(), MenuItemInput{Name: "Diavola", Price: 14})
	if err != nil {
		t.Fatalf("CreateMenuItem: %v", err)
	}
	if created.ID != "m2" {
		t.Errorf("id = %q", created.ID)
	}

	cached := c.Menu()
	if len(cached) != 2 || cached[0].ID != "m2" || cached[1].ID != "m1" {
		t.Fatalf("cache order = %+v, want new item first", cached)
	}
}

func TestUpdateReplacesInCache(t *testing.T) {
	srv := newTestServer(t, map[string]http.HandlerFunc{
		"GET /api/promotion": func(w http.ResponseWriter, r *http.Request) {
			respondJSON(w, http.StatusOK, []Promotion{{ID: "p1", Message: "Sale", Active: true}})
		},
		"PUT /api/promotion/p1": func(w http.ResponseWriter, r *http.Request) {
			var input PromotionInput
			_ = json.NewDecoder(r.Body).Decode(&input)
			respondJSON(w, http.StatusOK, Promotion{ID: "p1", Message: input.Message, Active: input.Active})
		},
	})

	c := New(srv.URL, srv.Client())
	if _, err := c.FetchPromotions(context.Background()); err != nil {
		t.Fatal(err)
	}
	if _, err := c.UpdatePromotion(context.Background(), "p1", PromotionInput{Message: "Sale ended", Active: false}); err != nil {
		t.Fatalf("UpdatePromotion: %v", err)
	}

	cached := c.Promotions()
	if len(cached) != 1 || cached[0].Message != "Sale ended" || cached[0].Active {
		t.Fatalf("cache = %+v", cached)
	}
}

func TestDeleteRemovesFromCache(t *testing.T) {
	srv := newTestServer(t, map[string]http.HandlerFunc{
		"GET /api/menu": func(w http.ResponseWriter, r *http.Request) {
			respondJSON(w, http.StatusOK, []MenuItem{{ID: "m1"}, {ID: "m2"}})
		},
		"DELETE /api/menu/m1": func(w http.ResponseWriter, r *http.Request) {
			respondJSON(w, http.StatusOK, map[string]string{"message": "Menu item deleted successfully"})
		},
	})

	c := New(srv.URL, srv.Client())
	if _, err := c.FetchMenu(context.Background()); err != nil {
		t.Fatal(err)
	}
	if err := c.DeleteMenuItem(context.Background(), "m1"); err != nil {
		t.Fatalf("DeleteMenuItem: %v", err)
	}

	cached := c.Menu()
	if len(cached) != 1 || cached[0].ID != "m2" {
		t.Fatalf("cache = %+v", cached)
	}
}

func TestAPIErrorSurfacesMessage(t *testing.T) {
	srv := newTestServer(t, map[string]http.HandlerFunc{
		"GET /api/menu": func(w http.ResponseWriter, r *http.Request) {
			respondJSON(w, http.StatusNotFound, map[string]string{"message": "User or Restaurant not found"})
		},
	})

	c := New(srv.URL, srv.Client())
	_, err := c.FetchMenu(context.Background())

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("err = %v, want *APIError", err)
	}
	if apiErr.StatusCode != http.StatusNotFound {
		t.Errorf("status = %d", apiErr.StatusCode)
	}
	if apiErr.Message != "User or Restaurant not found" {
		t.Errorf("message = %q", apiErr.Message)
	}
}

func TestRestaurantHeaderSent(t *testing.T) {
	srv := newTestServer(t, map[string]http.HandlerFunc{
		"GET /api/expenses": func(w http.ResponseWriter, r *http.Request) {
			if got := r.Header.Get("X-Restaurant-ID"); got != "rest-2" {
				t.Errorf("X-Restaurant-ID = %q", got)
			}
			respondJSON(w, http.StatusOK, []LedgerEntry{})
		},
	})

	c := New(srv.URL, srv.Client(), WithRestaurantID("rest-2"))
	if _, err := c.FetchExpenses(context.Background()); err != nil {
		t.Fatal(err)
	}
}

func TestLoginStoresToken(t *testing.T) {
	srv := newTestServer(t, map[string]http.HandlerFunc{
		"POST /api/auth/login": func(w http.ResponseWriter, r *http.Request) {
			respondJSON(w, http.StatusOK, map[string]any{"token": "st_abc"})
		},
		"GET /api/income": func(w http.ResponseWriter, r *http.Request) {
			if got := r.Header.Get("Authorization"); got != "Bearer st_abc" {
				t.Errorf("Authorization = %q", got)
			}
			respondJSON(w, http.StatusOK, []LedgerEntry{})
		},
	})

	c := New(srv.URL, srv.Client())
	if err := c.Login(context.Background(), "owner@example.com", "supersecret"); err != nil {
		t.Fatalf("Login: %v", err)
	}
	if _, err := c.FetchIncome(context.Background()); err != nil {
		t.Fatal(err)
	}
}
