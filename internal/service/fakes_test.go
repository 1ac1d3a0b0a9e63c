package service

import (
	"context"
	"sort"
	"time"

	"github.com/tavolo/tavolo/internal/model"
	"github.com/tavolo/tavolo/internal/repository"
)

// In-memory repository fakes. They mirror the scoping rules of the real
// Postgres queries: every lookup is keyed by (id, restaurantID).

type fakeUserRepo struct {
	users map[string]*model.User // keyed by email
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*model.User)}
}

func (f *fakeUserRepo) CreateUser(_ context.Context, user *model.User) error {
	if _, ok := f.users[user.Email]; ok {
		return repository.ErrEmailExists
	}
	f.users[user.Email] = user
	return nil
}

func (f *fakeUserRepo) GetUserByEmail(_ context.Context, email string) (*model.User, error) {
	user, ok := f.users[email]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	return user, nil
}

type fakeSessionStore struct {
	sessions map[string]*model.Session
}

func newFakeSessionStore() *fakeSessionStore {
	return &fakeSessionStore{sessions: make(map[string]*model.Session)}
}

func (f *fakeSessionStore) SetSession(_ context.Context, token string, sess *model.Session, _ time.Duration) error {
	f.sessions[token] = sess
	return nil
}

func (f *fakeSessionStore) GetSession(_ context.Context, token string) (*model.Session, error) {
	return f.sessions[token], nil
}

func (f *fakeSessionStore) DeleteSession(_ context.Context, token string) error {
	delete(f.sessions, token)
	return nil
}

type fakeRestaurantRepo struct {
	restaurants map[string]*model.Restaurant // keyed by id
}

func newFakeRestaurantRepo() *fakeRestaurantRepo {
	return &fakeRestaurantRepo{restaurants: make(map[string]*model.Restaurant)}
}

func (f *fakeRestaurantRepo) CreateRestaurant(_ context.Context, restaurant *model.Restaurant) error {
	for _, r := range f.restaurants {
		if r.Slug == restaurant.Slug {
			return repository.ErrSlugExists
		}
	}
	f.restaurants[restaurant.ID] = restaurant
	return nil
}

func (f *fakeRestaurantRepo) ListRestaurantsByUser(_ context.Context, userID string) ([]*model.Restaurant, error) {
	out := []*model.Restaurant{}
	for _, r := range f.restaurants {
		if r.UserID == userID {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (f *fakeRestaurantRepo) GetRestaurantBySlug(_ context.Context, slug string) (*model.Restaurant, error) {
	for _, r := range f.restaurants {
		if r.Slug == slug {
			return r, nil
		}
	}
	return nil, repository.ErrRestaurantNotFound
}

type fakeMenuRepo struct {
	items map[string]*model.MenuItem
}

func newFakeMenuRepo() *fakeMenuRepo {
	return &fakeMenuRepo{items: make(map[string]*model.MenuItem)}
}

func (f *fakeMenuRepo) CreateMenuItem(_ context.Context, item *model.MenuItem) error {
	f.items[item.ID] = item
	return nil
}

func (f *fakeMenuRepo) ListMenuItems(_ context.Context, restaurantID string) ([]*model.MenuItem, error) {
	out := []*model.MenuItem{}
	for _, it := range f.items {
		if it.RestaurantID == restaurantID {
			out = append(out, it)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (f *fakeMenuRepo) GetMenuItem(_ context.Context, id, restaurantID string) (*model.MenuItem, error) {
	it, ok := f.items[id]
	if !ok || it.RestaurantID != restaurantID {
		return nil, repository.ErrMenuItemNotFound
	}
	return it, nil
}

func (f *fakeMenuRepo) UpdateMenuItem(_ context.Context, item *model.MenuItem) error {
	existing, ok := f.items[item.ID]
	if !ok || existing.RestaurantID != item.RestaurantID {
		return repository.ErrMenuItemNotFound
	}
	f.items[item.ID] = item
	return nil
}

func (f *fakeMenuRepo) DeleteMenuItem(_ context.Context, id, restaurantID string) error {
	it, ok := f.items[id]
	if !ok || it.RestaurantID != restaurantID {
		return repository.ErrMenuItemNotFound
	}
	delete(f.items, id)
	return nil
}

type fakePromotionRepo struct {
	promos map[string]*model.Promotion
}

func newFakePromotionRepo() *fakePromotionRepo {
	return &fakePromotionRepo{promos: make(map[string]*model.Promotion)}
}

func (f *fakePromotionRepo) CreatePromotion(_ context.Context, promo *model.Promotion) error {
	f.promos[promo.ID] = promo
	return nil
}

func (f *fakePromotionRepo) ListPromotions(_ context.Context, restaurantID string) ([]*model.Promotion, error) {
	out := []*model.Promotion{}
	for _, p := range f.promos {
		if p.RestaurantID == restaurantID {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (f *fakePromotionRepo) ListActivePromotions(_ context.Context, restaurantID string) ([]*model.Promotion, error) {
	all, _ := f.ListPromotions(context.Background(), restaurantID)
	out := []*model.Promotion{}
	for _, p := range all {
		if p.Active {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakePromotionRepo) GetPromotion(_ context.Context, id, restaurantID string) (*model.Promotion, error) {
	p, ok := f.promos[id]
	if !ok || p.RestaurantID != restaurantID {
		return nil, repository.ErrPromotionNotFound
	}
	return p, nil
}

func (f *fakePromotionRepo) UpdatePromotion(_ context.Context, promo *model.Promotion) error {
	existing, ok := f.promos[promo.ID]
	if !ok || existing.RestaurantID != promo.RestaurantID {
		return repository.ErrPromotionNotFound
	}
	f.promos[promo.ID] = promo
	return nil
}

func (f *fakePromotionRepo) DeletePromotion(_ context.Context, id, restaurantID string) error {
	p, ok := f.promos[id]
	if !ok || p.RestaurantID != restaurantID {
		return repository.ErrPromotionNotFound
	}
	delete(f.promos, id)
	return nil
}

type fakeLedgerRepo struct {
	entries []*model.LedgerEntry
}

func newFakeLedgerRepo() *fakeLedgerRepo {
	return &fakeLedgerRepo{}
}

func (f *fakeLedgerRepo) CreateLedgerEntry(_ context.Context, entry *model.LedgerEntry) error {
	f.entries = append(f.entries, entry)
	return nil
}

func (f *fakeLedgerRepo) ListLedgerEntries(_ context.Context, restaurantID string, kind model.LedgerKind) ([]*model.LedgerEntry, error) {
	out := []*model.LedgerEntry{}
	for _, e := range f.entries {
		if e.RestaurantID == restaurantID && e.Kind == kind {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	return out, nil
}

func (f *fakeLedgerRepo) SummarizeLedger(_ context.Context, restaurantID string, from, to *time.Time) (*model.LedgerSummary, error) {
	summary := &model.LedgerSummary{}
	for _, e := range f.entries {
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
