package handler_test

import (
	"context"
	"encoding/json"
	"net/http"
	"sort"
	"sync"
	"testing"

	"biobag/internal/domain/model"
	"biobag/internal/handler"
	"biobag/internal/middleware"
	repo "biobag/internal/repository"
	"biobag/internal/usecase"
	"biobag/internal/validator"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testAdminID = "9d8c7b6a-5f4e-4d3c-8b2a-1f0e9d8c7b6a"
	seedOrderID = "6f1c2a9e-0b4d-4e57-9a3c-1d2e3f405061"
	seedProdID  = "a3d5e7f9-1b2c-4d6e-8f01-23456789ab01"
	unknownID   = "00000000-0000-4000-8000-0000000000ff"
)

// =====================
// in-memory fakes（商品・監査・問い合わせ）
// =====================

type memProductRepo memOrders

func (r *memProductRepo) List(ctx context.Context, q repo.ProductListQuery) ([]model.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []model.Product{}
	for _, p := range r.products {
		if q.ActiveOnly && !p.IsActive {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

func (r *memProductRepo) FindByID(ctx context.Context, id string) (model.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.products[id]
	if !ok {
		return model.Product{}, repo.ErrNotFound
	}
	return p, nil
}

func (r *memProductRepo) Create(ctx context.Context, p model.Product) (model.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.products[p.ID] = p
	return p, nil
}

func (r *memProductRepo) Update(ctx context.Context, p model.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cur, ok := r.products[p.ID]
	if !ok {
		return repo.ErrNotFound
	}
	p.Sizes = cur.Sizes
	r.products[p.ID] = p
	return nil
}

func (r *memProductRepo) SetActive(ctx context.Context, id string, active bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.products[id]
	if !ok {
		return repo.ErrNotFound
	}
	p.IsActive = active
	r.products[id] = p
	return nil
}

func (r *memProductRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.products[id]; !ok {
		return repo.ErrNotFound
	}
	delete(r.products, id)
	return nil
}

type memSizeRepo memOrders

func (r *memSizeRepo) CreateBulk(ctx context.Context, productID string, sizes []model.ProductSize) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p := r.products[productID]
	p.Sizes = append(p.Sizes, sizes...)
	r.products[productID] = p
	return nil
}

func (r *memSizeRepo) DeleteByProductID(ctx context.Context, productID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if p, ok := r.products[productID]; ok {
		p.Sizes = nil
		r.products[productID] = p
	}
	return nil
}

func (r *memSizeRepo) ListByProductID(ctx context.Context, productID string) ([]model.ProductSize, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.products[productID].Sizes, nil
}

type memAuditRepo memOrders

func (r *memAuditRepo) Create(ctx context.Context, l model.AuditLog) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.audits = append(r.audits, l)
	return nil
}

func (r *memAuditRepo) List(ctx context.Context, f repo.AuditLogFilter) ([]model.AuditLog, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]model.AuditLog{}, r.audits...), nil
}

type memContacts struct {
	mu    sync.Mutex
	items map[string]model.Contact
}

func newMemContacts() *memContacts {
	return &memContacts{items: map[string]model.Contact{}}
}

func (m *memContacts) Create(ctx context.Context, c model.Contact) (model.Contact, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items[c.ID] = c
	return c, nil
}

func (m *memContacts) List(ctx context.Context, f repo.ContactListFilter) ([]model.Contact, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []model.Contact{}
	for _, c := range m.items {
		if f.UnreadOnly && c.IsRead {
			continue
		}
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *memContacts) MarkRead(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.items[id]
	if !ok {
		return repo.ErrNotFound
	}
	c.IsRead = true
	m.items[id] = c
	return nil
}

func (m *memContacts) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.items[id]; !ok {
		return repo.ErrNotFound
	}
	delete(m.items, id)
	return nil
}

// =====================
// helper
// =====================

// 認証はmiddleware側でテスト済み。ここではログイン済み管理者として通す
func asAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		c.Set(middleware.CtxUserIDKey, testAdminID)
		c.Set(middleware.CtxUserRoleKey, string(model.RoleAdmin))
		return next(c)
	}
}

type adminEnv struct {
	e        *echo.Echo
	store    *memOrders
	contacts *memContacts
}

func newAdminEnv() adminEnv {
	store := newMemOrders()
	contacts := newMemContacts()
	v := validator.New()

	e := echo.New()
	admin := e.Group("/admin", asAdmin)

	handler.NewAdminOrderHandler(usecase.NewAdminOrderUsecase(store, store.Orders(), store.OrderItems(), clock{})).RegisterRoutes(admin)
	handler.NewAdminProductHandler(usecase.NewProductUsecase(store, store.Products(), v, uuidGen{}, clock{})).RegisterRoutes(admin)

	ch := handler.NewContactHandler(usecase.NewContactUsecase(contacts, v, uuidGen{}, clock{}))
	ch.RegisterRoutes(e)
	ch.RegisterAdminRoutes(admin)

	return adminEnv{e: e, store: store, contacts: contacts}
}

func (env adminEnv) seedOrder(status model.OrderStatus) {
	env.store.orders[seedOrderID] = model.Order{
		ID:          seedOrderID,
		OrderNumber: "ORD-20250314-ABC123",
		Status:      status,
		TotalAmount: decimal.NewFromInt(26000),
	}
}

func (env adminEnv) seedProduct(active bool) {
	env.store.products[seedProdID] = model.Product{
		ID:       seedProdID,
		Name:     "Garbage Roll",
		Category: model.CategoryGarbage,
		IsActive: active,
	}
}

// =====================
// PUT /admin/orders/:id/status
// =====================

func TestAdminOrderHandler_UpdateStatus(t *testing.T) {
	env := newAdminEnv()
	env.seedOrder(model.OrderStatusPending)

	rec := doJSON(env.e, http.MethodPut, "/admin/orders/"+seedOrderID+"/status", `{"status":"shipped"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.JSONEq(t, `{"message":"updated"}`, rec.Body.String())

	assert.Equal(t, model.OrderStatusShipped, env.store.orders[seedOrderID].Status)
	require.Len(t, env.store.audits, 1)
	a := env.store.audits[0]
	assert.Equal(t, model.AuditActionUpdateOrderStatus, a.Action)
	assert.Equal(t, testAdminID, a.ActorUserID)
	assert.Equal(t, seedOrderID, a.ResourceID)
	assert.JSONEq(t, `{"status":"pending"}`, a.BeforeJSON)
	assert.JSONEq(t, `{"status":"shipped"}`, a.AfterJSON)
}

func TestAdminOrderHandler_UpdateStatus_Errors(t *testing.T) {
	cases := []struct {
		name string
		id   string
		body string
		code int
		want string
	}{
		{"invalid status", seedOrderID, `{"status":"paid"}`, http.StatusBadRequest, `{"error":"invalid status"}`},
		{"invalid body", seedOrderID, `{"status":`, http.StatusBadRequest, `{"error":"invalid body"}`},
		{"unknown order", unknownID, `{"status":"shipped"}`, http.StatusNotFound, `{"error":"not found"}`},
		{"malformed id", "xyz", `{"status":"shipped"}`, http.StatusNotFound, `{"error":"not found"}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			env := newAdminEnv()
			env.seedOrder(model.OrderStatusPending)

			rec := doJSON(env.e, http.MethodPut, "/admin/orders/"+tc.id+"/status", tc.body)
			assert.Equal(t, tc.code, rec.Code)
			assert.JSONEq(t, tc.want, rec.Body.String())
			assert.Equal(t, model.OrderStatusPending, env.store.orders[seedOrderID].Status)
			assert.Empty(t, env.store.audits)
		})
	}
}

func TestAdminOrderHandler_DetailMalformedID(t *testing.T) {
	env := newAdminEnv()
	rec := doJSON(env.e, http.MethodGet, "/admin/orders/abc", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

// 未エンコードの"+05:30"は空白で届く
func TestAdminOrderHandler_ListAcceptsOffsetInQuery(t *testing.T) {
	env := newAdminEnv()

	rec := doJSON(env.e, http.MethodGet, "/admin/orders?from=2025-03-14T00:00:00+05:30&to=2025-03-15T00:00:00%2B05:30", "")
	assert.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = doJSON(env.e, http.MethodGet, "/admin/orders?from=yesterday", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error":"invalid from"}`, rec.Body.String())
}

// =====================
// PATCH /admin/products/:id/toggle
// =====================

func TestAdminProductHandler_ToggleTwiceRestores(t *testing.T) {
	env := newAdminEnv()
	env.seedProduct(true)

	var body struct {
		ID       string `json:"id"`
		IsActive bool   `json:"is_active"`
	}

	rec := doJSON(env.e, http.MethodPatch, "/admin/products/"+seedProdID+"/toggle", "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, seedProdID, body.ID)
	assert.False(t, body.IsActive)
	assert.False(t, env.store.products[seedProdID].IsActive)

	rec = doJSON(env.e, http.MethodPatch, "/admin/products/"+seedProdID+"/toggle", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.True(t, body.IsActive)

	require.Len(t, env.store.audits, 2)
	assert.Equal(t, model.AuditActionToggleProduct, env.store.audits[1].Action)
	assert.JSONEq(t, `{"is_active":"false"}`, env.store.audits[1].BeforeJSON)
}

func TestAdminProductHandler_ToggleUnknown(t *testing.T) {
	env := newAdminEnv()

	for _, id := range []string{unknownID, "abc"} {
		rec := doJSON(env.e, http.MethodPatch, "/admin/products/"+id+"/toggle", "")
		assert.Equal(t, http.StatusNotFound, rec.Code, id)
		assert.JSONEq(t, `{"error":"not found"}`, rec.Body.String())
	}
	assert.Empty(t, env.store.audits)
}

// 非公開で作った商品は非公開のまま
func TestAdminProductHandler_CreateInactive(t *testing.T) {
	env := newAdminEnv()

	rec := doJSON(env.e, http.MethodPost, "/admin/products", `{"name":"Hidden Roll","category":"garbage","price_per_kg":"160","is_active":false}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var body struct {
		ID       string `json:"id"`
		IsActive bool   `json:"is_active"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.False(t, body.IsActive)
	assert.False(t, env.store.products[body.ID].IsActive)
}

// =====================
// contacts
// =====================

const validContactJSON = `{
	"name": "Ravi Kumar",
	"email": "ravi@example.com",
	"phone": "+91 98765 43210",
	"company": "Green Mart",
	"message": "Need 500 kg of garbage bags every month."
}`

func TestContactHandler_Flow(t *testing.T) {
	env := newAdminEnv()

	rec := doJSON(env.e, http.MethodPost, "/contacts", validContactJSON)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var created struct {
		ID     string `json:"id"`
		IsRead bool   `json:"is_read"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.False(t, created.IsRead)

	rec = doJSON(env.e, http.MethodGet, "/admin/contacts?unread=true", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var unread []model.Contact
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &unread))
	require.Len(t, unread, 1)
	assert.Equal(t, created.ID, unread[0].ID)

	rec = doJSON(env.e, http.MethodPatch, "/admin/contacts/"+created.ID+"/read", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"message":"updated"}`, rec.Body.String())

	rec = doJSON(env.e, http.MethodGet, "/admin/contacts?unread=true", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())

	rec = doJSON(env.e, http.MethodDelete, "/admin/contacts/"+created.ID, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"message":"deleted"}`, rec.Body.String())

	rec = doJSON(env.e, http.MethodDelete, "/admin/contacts/"+created.ID, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestContactHandler_Errors(t *testing.T) {
	env := newAdminEnv()

	rec := doJSON(env.e, http.MethodPost, "/contacts", `{"name":"Ravi Kumar","email":"ravi@example.com","message":"short"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error":"Message must be between 10 and 2000 characters"}`, rec.Body.String())

	rec = doJSON(env.e, http.MethodGet, "/admin/contacts?unread=maybe", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error":"invalid unread"}`, rec.Body.String())

	rec = doJSON(env.e, http.MethodPatch, "/admin/contacts/not-a-uuid/read", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	assert.Empty(t, env.contacts.items)
}
