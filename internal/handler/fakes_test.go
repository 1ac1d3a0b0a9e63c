package handler

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"sort"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/tavolo/tavolo/internal/auth"
	"github.com/tavolo/tavolo/internal/model"
	"github.com/tavolo/tavolo/internal/repository"
	"github.com/tavolo/tavolo/internal/service"
)

// In-memory repository fakes backing real service instances, so handler
// tests exercise the full handler+service path without a database.

type memStore struct {
	users       map[string]*model.User
	restaurants map[string]*model.Restaurant
	items       map[string]*model.MenuItem
	promos      map[string]*model.Promotion
	entries     []*model.LedgerEntry
	sessions    map[string]*model.Session
}

func newMemStore() *memStore {
	return &memStore{
		users:       make(map[string]*model.User),
		restaurants: make(map[string]*model.Restaurant),
		items:       make(map[string]*model.MenuItem),
		promos:      make(map[string]*model.Promotion),
		sessions:    make(map[string]*model.Session),
	}
}

func (m *memStore) CreateUser(_ context.Context, user *model.User) error {
	if _, ok := m.users[user.Email]; ok {
		return repository.ErrEmailExists
	}
	m.users[user.Email] = user
	return nil
}

func (m *memStore) GetUserByEmail(_ context.Context, email string) (*model.User, error) {
	user, ok := m.users[email]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	return user, nil
}

func (m *memStore) GetUserWithRestaurants(ctx context.Context, email string) (*model.User, []*model.Restaurant, error) {
	user, err := m.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, nil, err
	}
	restaurants, _ := m.ListRestaurantsByUser(ctx, user.ID)
	return user, restaurants, nil
}

func (m *memStore) CreateRestaurant(_ context.Context, restaurant *model.Restaurant) error {
	for _, r := range m.restaurants {
		if r.Slug == restaurant.Slug {
			return repository.ErrSlugExists
		}
	}
	m.restaurants[restaurant.ID] = restaurant
	return nil
}

func (m *memStore) ListRestaurantsByUser(_ context.Context, userID string) ([]*model.Restaurant, error) {
	out := []*model.Restaurant{}
	for _, r := range m.restaurants {
		if r.UserID == userID {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (m *memStore) GetRestaurantBySlug(_ context.Context, slug string) (*model.Restaurant, error) {
	for _, r := range m.restaurants {
		if r.Slug == slug {
			return r, nil
		}
	}
	return nil, repository.ErrRestaurantNotFound
}

func (m *memStore) CreateMenuItem(_ context.Context, item *model.MenuItem) error {
	m.items[item.ID] = item
	return nil
}

func (m *memStore) ListMenuItems(_ context.Context, restaurantID string) ([]*model.MenuItem, error) {
	out := []*model.MenuItem{}
	for _, it := range m.items {
		if it.RestaurantID == restaurantID {
			out = append(out, it)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (m *memStore) GetMenuItem(_ context.Context, id, restaurantID string) (*model.MenuItem, error) {
	it, ok := m.items[id]
	if !ok || it.RestaurantID != restaurantID {
		return nil, repository.ErrMenuItemNotFound
	}
	return it, nil
}

func (m *memStore) UpdateMenuItem(_ context.Context, item *model.MenuItem) error {
	existing, ok := m.items[item.ID]
	if !ok || existing.RestaurantID != item.RestaurantID {
		return repository.ErrMenuItemNotFound
	}
	m.items[item.ID] = item
	return nil
}

func (m *memStore) DeleteMenuItem(_ context.Context, id, restaurantID string) error {
	it, ok := m.items[id]
	if !ok || it.RestaurantID != restaurantID {
		return repository.ErrMenuItemNotFound
	}
	delete(m.items, id)
	return nil
}

func (m *memStore) CreatePromotion(_ context.Context, promo *model.Promotion) error {
	m.promos[promo.ID] = promo
	return nil
}

func (m *memStore) ListPromotions(_ context.Context, restaurantID string) ([]*model.Promotion, error) {
	out := []*model.Promotion{}
	for _, p := range m.promos {
		if p.RestaurantID == restaurantID {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (m *memStore) ListActivePromotions(ctx context.Context, restaurantID string) ([]*model.Promotion, error) {
	all, _ := m.ListPromotions(ctx, restaurantID)
	out := []*model.Promotion{}
	for _, p := range all {
		if p.Active {
			out = append(out, p)
		}
	}
	return out, nil
}

func (m *memStore) GetPromotion(_ context.Context, id, restaurantID string) (*model.Promotion, error) {
	p, ok := m.promos[id]
	if !ok || p.RestaurantID != restaurantID {
		return nil, repository.ErrPromotionNotFound
	}
	return p, nil
}

func (m *memStore) UpdatePromotion(_ context.Context, promo *model.Promotion) error {
	existing, ok := m.promos[promo.ID]
	if !ok || existing.RestaurantID != promo.RestaurantID {
		return repository.ErrPromotionNotFound
	}
	m.promos[promo.ID] = promo
	return nil
}

func (m *memStore) DeletePromotion(_ context.Context, id, restaurantID string) error {
	p, ok := m.promos[id]
	if !ok || p.RestaurantID != restaurantID {
		return repository.ErrPromotionNotFound
	}
	delete(m.promos, id)
	return nil
}

func (m *memStore) CreateLedgerEntry(_ context.Context, entry *model.LedgerEntry) error {
	m.entries = append(m.entries, entry)
	return nil
}

func (m *memStore) ListLedgerEntries(_ context.Context, restaurantID string, kind model.LedgerKind) ([]*model.LedgerEntry, error) {
	out := []*model.LedgerEntry{}
	for _, e := range m.entries {
		if e.RestaurantID == restaurantID && e.Kind == kind {
			out = append(out, e)
		}
	}
	return out, nil
}

func (m *memStore) SummarizeLedger(_ context.Context, restaurantID string, from, to *time.Time) (*model.LedgerSummary, error) {
	summary := &model.LedgerSummary{}
	for _, e := range m.entries {
		if e.RestaurantID != restaurantID {
			continue
		}
		if from != nil && e.Date.Before(*from) {
			continue
		}
		if to != nil && e.Date.After(*to) {
			continue
		}
		switch e.Kind {
		case model.KindIncome:
			summary.Income += e.Value
			summary.IncomeCount++
		case model.KindExpense:
			summary.Expenses += e.Value
			summary.ExpenseCount++
		}
	}
	summary.Net = summary.Income - summary.Expenses
	return summary, nil
}

func (m *memStore) SetSession(_ context.Context, token string, sess *model.Session, _ time.Duration) error {
	m.sessions[token] = sess
	return nil
}

func (m *memStore) GetSession(_ context.Context, token string) (*model.Session, error) {
	return m.sessions[token], nil
}

func (m *memStore) DeleteSession(_ context.Context, token string) error {
	delete(m.sessions, token)
	return nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// testTenant injects a fixed principal and tenant, standing in for the
// auth and tenant middlewares.
func testTenant(restaurantID string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := auth.ContextWithPrincipal(r.Context(), &model.Principal{UserID: "user-1", Email: "owner@example.com"})
			ctx = auth.ContextWithTenant(ctx, &model.Tenant{RestaurantID: restaurantID, Slug: "roma"})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// newTestRouter wires the resource handlers the way cmd/api does, with
// the tenant stubbed to rest-1.
func newTestRouter(store *memStore) chi.Router {
	logger := testLogger()

	menu := NewMenuHandler(service.NewMenuService(store, nil), logger)
	promos := NewPromotionHandler(service.NewPromotionService(store, nil), logger)
	ledger := NewLedgerHandler(service.NewLedgerService(store, nil), logger)
	restaurants := NewRestaurantHandler(service.NewRestaurantService(store), service.NewQRService("http://localhost:8080"), logger)
	public := NewPublicHandler(service.NewStorefrontService(store, store, store, nil), logger)

	r := chi.NewRouter()
	r.Route("/api", func(r chi.Router) {
		r.Use(testTenant("rest-1"))

		r.Get("/restaurant", restaurants.List)
		r.Post("/restaurant", restaurants.Create)
		r.Get("/restaurant/qrcode", restaurants.QRCode)

		r.Get("/menu", menu.List)
		r.Post("/menu", menu.Create)
		r.Get("/menu/{id}", menu.Get)
		r.Put("/menu/{id}", menu.Update)
		r.Delete("/menu/{id}", menu.Delete)

		r.Get("/promotion", promos.List)
		r.Post("/promotion", promos.Create)
		r.Get("/promotion/{id}", promos.Get)
		r.Put("/promotion/{id}", promos.Update)
		r.Delete("/promotion/{id}", promos.Delete)

		r.Get("/expenses", ledger.ListExpenses)
		r.Post("/expenses", ledger.CreateExpense)
		r.Get("/income", ledger.ListIncome)
		r.Post("/income", ledger.CreateIncome)
		r.Get("/summary", ledger.Summary)
	})
	r.Get("/public/{slug}", public.Storefront)
	r.Get("/public/{slug}/menu", public.Menu)

	return r
}
