// Package client is a typed Go client for the Tavolo API. It mirrors the
// dashboard's data layer: each resource exposes fetch/create (and
// update/delete where the API allows it), and list results are cached in
// memory so the UI can render between round trips. The cache is advisory:
// every fetch replaces it wholesale, and concurrent mutators are not
// reconciled beyond last-write-wins.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
)

// APIError is a non-2xx response from the API.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.StatusCode, e.Message)
}

// MenuItem mirrors the API's menu item payload.
type MenuItem struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Price        float64 `json:"price"`
	Description  *string `json:"description"`
	Category     *string `json:"category"`
	ImageURL     *string `json:"imageUrl"`
	RestaurantID string  `json:"restaurantId"`
}

// Promotion mirrors the API's promotion payload.
type Promotion struct {
	ID           string `json:"id"`
	Message      string `json:"message"`
	Active       bool   `json:"active"`
	RestaurantID string `json:"restaurantId"`
}

// LedgerEntry mirrors the API's expense/income payload.
type LedgerEntry struct {
	ID           string  `json:"id"`
	Value        float64 `json:"value"`
	Note         *string `json:"note"`
	Date         string  `json:"date"`
	RestaurantID string  `json:"restaurantId"`
}

// Restaurant mirrors the API's restaurant payload.
type Restaurant struct {
	ID           string   `json:"id"`
	UserID       string   `json:"userId"`
	Name         string   `json:"name"`
	Slug         string   `json:"slug"`
	OpeningHours []string `json:"openingHours"`
}

// MenuItemInput is the body for menu item create/update.
type MenuItemInput struct {
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	Description *string `json:"description,omitempty"`
	Category    *string `json:"category,omitempty"`
	ImageURL    *string `json:"imageUrl,omitempty"`
}

// PromotionInput is the body for promotion create/update.
type PromotionInput struct {
	Message string `json:"message"`
	Active  bool   `json:"active"`
}

// LedgerEntryInput is the body for expense/income create.
type LedgerEntryInput struct {
	Value float64 `json:"value"`
	Note  *string `json:"note,omitempty"`
	Date  string  `json:"date"`
}

// RestaurantInput is the body for restaurant provisioning.
type RestaurantInput struct {
	Name         string   `json:"name"`
	Slug         string   `json:"slug"`
	OpeningHours []string `json:"openingHours,omitempty"`
}

// Client calls the Tavolo API on behalf of one owner session. The HTTP
// transport is injected so tests and callers control timeouts, proxies
// and TLS.
type Client struct {
	baseURL      string
	httpClient   *http.Client
	token        string
	restaurantID string

	mu          sync.Mutex
	menu        []MenuItem
	promotions  []Promotion
	expenses    []LedgerEntry
	income      []LedgerEntry
	restaurants []Restaurant
}

// Option configures a Client.
type Option func(*Client)

// WithToken sets the session token sent as a Bearer credential.
func WithToken(token string) Option {
	return func(c *Client) { c.token = token }
}

// WithRestaurantID pins the active restaurant via the X-Restaurant-ID
// header. Without it the API uses the owner's oldest restaurant.
func WithRestaurantID(id string) Option {
	return func(c *Client) { c.restaurantID = id }
}

// New creates a Client. httpClient must not be nil.
func New(baseURL string, httpClient *http.Client, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SetToken replaces the session token, e.g. after a re-login.
func (c *Client) SetToken(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = token
}

// Login authenticates and stores the returned session token on the
// client.
func (c *Client) Login(ctx context.Context, email, password string) error {
	var resp struct {
		Token string `json:"token"`
	}
	body := map[string]string{"email": email, "password": password}
	if err := c.do(ctx, http.MethodPost, "/api/auth/login", body, &resp); err != nil {
		return err
	}
	c.SetToken(resp.Token)
	return nil
}

// FetchMenu populates and returns the menu cache.
func (c *Client) FetchMenu(ctx context.Context) ([]MenuItem, error) {
	items, err := fetchList[MenuItem](ctx, c, "/api/menu")
	if err != nil {
		return nil, err
	}
	c.mu.Lock()
	c.menu = items
	c.mu.Unlock()
	return items, nil
}

// Menu returns the cached menu list from the last fetch or mutation.
func (c *Client) Menu() []MenuItem {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]MenuItem(nil), c.menu...)
}

// CreateMenuItem creates a menu item and prepends it to the cache.
func (c *Client) CreateMenuItem(ctx context.Context, input MenuItemInput) (*MenuItem, error) {
	var created MenuItem
	if err := c.do(ctx, http.MethodPost, "/api/menu", input, &created); err != nil {
		return nil, err
	}
	c.mu.Lock()
	c.menu = append([]MenuItem{created}, c.menu...)
	c.mu.Unlock()
	return &created, nil
}

// UpdateMenuItem overwrites a menu item and replaces it in the cache.
func (c *Client) UpdateMenuItem(ctx context.Context, id string, input MenuItemInput) (*MenuItem, error) {
	var updated MenuItem
	if err := c.do(ctx, http.MethodPut, "/api/menu/"+id, input, &updated); err != nil {
		return nil, err
	}
	c.mu.Lock()
	for i := range c.menu {
		if c.menu[i].ID == id {
			c.menu[i] = updated
			break
		}
	}
	c.mu.Unlock()
	return &updated, nil
}

// DeleteMenuItem deletes a menu item and removes it from the cache.
func (c *Client) DeleteMenuItem(ctx context.Context, id string) error {
	if err := c.do(ctx, http.MethodDelete, "/api/menu/"+id, nil, nil); err != nil {
		return err
	}
	c.mu.Lock()
	c.menu = removeByID(c.menu, func(it MenuItem) string { return it.ID }, id)
	c.mu.Unlock()
	return nil
}

// FetchPromotions populates and returns the promotions cache.
func (c *Client) FetchPromotions(ctx context.Context) ([]Promotion, error) {
	promos, err := fetchList[Promotion](ctx, c, "/api/promotion")
	if err != nil {
		return nil, err
	}
	c.mu.Lock()
	c.promotions = promos
	c.mu.Unlock()
	return promos, nil
}

// Promotions returns the cached promotion list.
func (c *Client) Promotions() []Promotion {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]Promotion(nil), c.promotions...)
}

// CreatePromotion creates a promotion and prepends it to the cache.
func (c *Client) CreatePromotion(ctx context.Context, input PromotionInput) (*Promotion, error) {
	var created Promotion
	if err := c.do(ctx, http.MethodPost, "/api/promotion", input, &created); err != nil {
		return nil, err
	}
	c.mu.Lock()
	c.promotions = append([]Promotion{created}, c.promotions...)
	c.mu.Unlock()
	return &created, nil
}

// UpdatePromotion overwrites a promotion and replaces it in the cache.
func (c *Client) UpdatePromotion(ctx context.Context, id string, input PromotionInput) (*Promotion, error) {
	var updated Promotion
	if err := c.do(ctx, http.MethodPut, "/api/promotion/"+id, input, &updated); err != nil {
		return nil, err
	}
	c.mu.Lock()
	for i := range c.promotions {
		if c.promotions[i].ID == id {
			c.promotions[i] = updated
			break
		}
	}
	c.mu.Unlock()
	return &updated, nil
}

// DeletePromotion deletes a promotion and removes it from the cache.
func (c *Client) DeletePromotion(ctx context.Context, id string) error {
	if err := c.do(ctx, http.MethodDelete, "/api/promotion/"+id, nil, nil); err != nil {
		return err
	}
	c.mu.Lock()
	c.promotions = removeByID(c.promotions, func(p Promotion) string { return p.ID }, id)
	c.mu.Unlock()
	return nil
}

// FetchExpenses populates and returns the expenses cache.
func (c *Client) FetchExpenses(ctx context.Context) ([]LedgerEntry, error) {
	entries, err := fetchList[LedgerEntry](ctx, c, "/api/expenses")
	if err != nil {
		return nil, err
	}
	c.mu.Lock()
	c.expenses = entries
	c.mu.Unlock()
	return entries, nil
}

// CreateExpense records an expense and prepends it to the cache.
func (c *Client) CreateExpense(ctx context.Context, input LedgerEntryInput) (*LedgerEntry, error) {
	var created LedgerEntry
	if err := c.do(ctx, http.MethodPost, "/api/expenses", input, &created); err != nil {
		return nil, err
	}
	c.mu.Lock()
	c.expenses = append([]LedgerEntry{created}, c.expenses...)
	c.mu.Unlock()
	return &created, nil
}

// FetchIncome populates and returns the income cache.
func (c *Client) FetchIncome(ctx context.Context) ([]LedgerEntry, error) {
	entries, err := fetchList[LedgerEntry](ctx, c, "/api/income")
	if err != nil {
		return nil, err
	}
	c.mu.Lock()
	c.income = entries
	c.mu.Unlock()
	return entries, nil
}

// CreateIncome records an income entry and prepends it to the cache.
func (c *Client) CreateIncome(ctx context.Context, input LedgerEntryInput) (*LedgerEntry, error) {
	var created LedgerEntry
	if err := c.do(ctx, http.MethodPost, "/api/income", input, &created); err != nil {
		return nil, err
	}
	c.mu.Lock()
	c.income = append([]LedgerEntry{created}, c.income...)
	c.mu.Unlock()
	return &created, nil
}

// FetchRestaurants populates and returns the restaurants cache.
func (c *Client) FetchRestaurants(ctx context.Context) ([]Restaurant, error) {
	restaurants, err := fetchList[Restaurant](ctx, c, "/api/restaurant")
	if err != nil {
		return nil, err
	}
	c.mu.Lock()
	c.restaurants = restaurants
	c.mu.Unlock()
	return restaurants, nil
}

// CreateRestaurant provisions a restaurant and prepends it to the cache.
func (c *Client) CreateRestaurant(ctx context.Context, input RestaurantInput) (*Restaurant, error) {
	var created Restaurant
	if err := c.do(ctx, http.MethodPost, "/api/restaurant", input, &created); err != nil {
		return nil, err
	}
	c.mu.Lock()
	c.restaurants = append([]Restaurant{created}, c.restaurants...)
	c.mu.Unlock()
	return &created, nil
}

// fetchList GETs a list endpoint, coercing any non-array payload to an
// empty slice rather than failing.
func fetchList[T any](ctx context.Context, c *Client, path string) ([]T, error) {
	var raw json.RawMessage
	if err := c.do(ctx, http.MethodGet, path, nil, &raw); err != nil {
		return nil, err
	}

	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return []T{}, nil
	}

	var list []T
	if err := json.Unmarshal(trimmed, &list); err != nil {
		return []T{}, nil
	}
	return list, nil
}

func removeByID[T any](list []T, id func(T) string, target string) []T {
	out := list[:0]
	for _, item := range list {
		if id(item) != target {
			out = append(out, item)
		}
	}
	return out
}

// do performs one API round trip, encoding body and decoding into out
// when non-nil. Non-2xx responses become *APIError.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	c.mu.Lock()
	token := c.token
	c.mu.Unlock()
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if c.restaurantID != "" {
		req.Header.Set("X-Restaurant-ID", c.restaurantID)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{StatusCode: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}
		var envelope struct {
			Message string `json:"message"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&envelope); err == nil && envelope.Message != "" {
			apiErr.Message = envelope.Message
		}
		return apiErr
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
