package usecase_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"biobag/internal/domain/model"
	repo "biobag/internal/repository"
	"biobag/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// =====================
// TxManager / TxRepos mocks
// =====================

// WithinTxの中で渡すreposを固定する
type TxManagerMock struct {
	mock.Mock
	Repos repo.TxRepos
}

func (m *TxManagerMock) WithinTx(ctx context.Context, fn func(r repo.TxRepos) error) error {
	m.Called(ctx)
	return fn(m.Repos)
}

type TxReposMock struct {
	orders       repo.OrderRepository
	orderItems   repo.OrderItemRepository
	products     repo.ProductRepository
	productSizes repo.ProductSizeRepository
	auditLogs    repo.AuditLogRepository
}

func (r *TxReposMock) Orders() repo.OrderRepository             { return r.orders }
func (r *TxReposMock) OrderItems() repo.OrderItemRepository     { return r.orderItems }
func (r *TxReposMock) Products() repo.ProductRepository         { return r.products }
func (r *TxReposMock) ProductSizes() repo.ProductSizeRepository { return r.productSizes }
func (r *TxReposMock) AuditLogs() repo.AuditLogRepository       { return r.auditLogs }

// =====================
// Repository mocks
// =====================

type OrderRepoMock struct{ mock.Mock }

func (m *OrderRepoMock) FindByID(ctx context.Context, orderID string) (model.Order, error) {
	args := m.Called(ctx, orderID)
	o, _ := args.Get(0).(model.Order)
	return o, args.Error(1)
}

func (m *OrderRepoMock) FindByOrderNumber(ctx context.Context, orderNumber string) (model.Order, error) {
	args := m.Called(ctx, orderNumber)
	o, _ := args.Get(0).(model.Order)
	return o, args.Error(1)
}

func (m *OrderRepoMock) Create(ctx context.Context, order model.Order) (model.Order, error) {
	args := m.Called(ctx, order)
	if fn, ok := args.Get(0).(func(model.Order) model.Order); ok {
		return fn(order), args.Error(1)
	}
	o, _ := args.Get(0).(model.Order)
	return o, args.Error(1)
}

func (m *OrderRepoMock) UpdateStatus(ctx context.Context, orderID string, status model.OrderStatus) error {
	args := m.Called(ctx, orderID, status)
	return args.Error(0)
}

func (m *OrderRepoMock) Delete(ctx context.Context, orderID string) error {
	args := m.Called(ctx, orderID)
	return args.Error(0)
}

func (m *OrderRepoMock) ListAdmin(ctx context.Context, f repo.AdminOrderListFilter) ([]model.Order, int64, error) {
	args := m.Called(ctx, f)
	orders, _ := args.Get(0).([]model.Order)
	return orders, args.Get(1).(int64), args.Error(2)
}

type OrderItemRepoMock struct{ mock.Mock }

func (m *OrderItemRepoMock) CreateBulk(ctx context.Context, orderID string, items []model.OrderItem) error {
	args := m.Called(ctx, orderID, items)
	return args.Error(0)
}

func (m *OrderItemRepoMock) ListByOrderID(ctx context.Context, orderID string) ([]model.OrderItem, error) {
	args := m.Called(ctx, orderID)
	items, _ := args.Get(0).([]model.OrderItem)
	return items, args.Error(1)
}

func (m *OrderItemRepoMock) ListByOrderIDs(ctx context.Context, orderIDs []string) ([]model.OrderItem, error) {
	args := m.Called(ctx, orderIDs)
	items, _ := args.Get(0).([]model.OrderItem)
	return items, args.Error(1)
}

func (m *OrderItemRepoMock) DeleteByOrderID(ctx context.Context, orderID string) error {
	args := m.Called(ctx, orderID)
	return args.Error(0)
}

type ProductRepoMock struct{ mock.Mock }

func (m *ProductRepoMock) List(ctx context.Context, q repo.ProductListQuery) ([]model.Product, error) {
	args := m.Called(ctx, q)
	items, _ := args.Get(0).([]model.Product)
	return items, args.Error(1)
}

func (m *ProductRepoMock) FindByID(ctx context.Context, id string) (model.Product, error) {
	args := m.Called(ctx, id)
	p, _ := args.Get(0).(model.Product)
	return p, args.Error(1)
}

func (m *ProductRepoMock) Create(ctx context.Context, p model.Product) (model.Product, error) {
	args := m.Called(ctx, p)
	return p, args.Error(0)
}

func (m *ProductRepoMock) Update(ctx context.Context, p model.Product) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *ProductRepoMock) SetActive(ctx context.Context, id string, active bool) error {
	args := m.Called(ctx, id, active)
	return args.Error(0)
}

func (m *ProductRepoMock) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type ProductSizeRepoMock struct{ mock.Mock }

func (m *ProductSizeRepoMock) CreateBulk(ctx context.Context, productID string, sizes []model.ProductSize) error {
	args := m.Called(ctx, productID, sizes)
	return args.Error(0)
}

func (m *ProductSizeRepoMock) DeleteByProductID(ctx context.Context, productID string) error {
	args := m.Called(ctx, productID)
	return args.Error(0)
}

func (m *ProductSizeRepoMock) ListByProductID(ctx context.Context, productID string) ([]model.ProductSize, error) {
	args := m.Called(ctx, productID)
	sizes, _ := args.Get(0).([]model.ProductSize)
	return sizes, args.Error(1)
}

type AuditRepoMock struct{ mock.Mock }

func (m *AuditRepoMock) Create(ctx context.Context, log model.AuditLog) error {
	args := m.Called(ctx, log)
	return args.Error(0)
}

func (m *AuditRepoMock) List(ctx context.Context, filter repo.AuditLogFilter) ([]model.AuditLog, error) {
	args := m.Called(ctx, filter)
	logs, _ := args.Get(0).([]model.AuditLog)
	return logs, args.Error(1)
}

type ContactRepoMock struct{ mock.Mock }

func (m *ContactRepoMock) Create(ctx context.Context, c model.Contact) (model.Contact, error) {
	args := m.Called(ctx, c)
	return c, args.Error(0)
}

func (m *ContactRepoMock) List(ctx context.Context, f repo.ContactListFilter) ([]model.Contact, error) {
	args := m.Called(ctx, f)
	items, _ := args.Get(0).([]model.Contact)
	return items, args.Error(1)
}

func (m *ContactRepoMock) MarkRead(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *ContactRepoMock) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// =====================
// validator / idGen / clock
// =====================

// 検証は通すだけ（validator自体はinternal/validatorでテスト）
type ValidatorStub struct {
	Err error
}

func (v ValidatorStub) ValidatePlaceOrder(in usecase.PlaceOrderInput) error { return v.Err }
func (v ValidatorStub) ValidateProduct(in usecase.ProductInput) error       { return v.Err }
func (v ValidatorStub) ValidateContact(in usecase.SubmitContactInput) error { return v.Err }

// 連番のIDを返す
type seqIDGen struct{ n int }

func (g *seqIDGen) NewID() string {
	g.n++
	return fmt.Sprintf("%08x-0000-4000-8000-%012d", g.n, g.n)
}

type fixedClock struct{ t time.Time }

func (c fixedClock) Now() time.Time { return c.t }

var testNow = time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC)

// パスIDはuuid形式でないと404になる
const (
	orderID1   = "6f1c2a9e-0b4d-4e57-9a3c-1d2e3f405061"
	orderID2   = "6f1c2a9e-0b4d-4e57-9a3c-1d2e3f405062"
	productID1 = "a3d5e7f9-1b2c-4d6e-8f01-23456789ab01"
	productID2 = "a3d5e7f9-1b2c-4d6e-8f01-23456789ab02"
	contactID1 = "c0ffee00-1234-4abc-9def-0123456789c1"
	missingID  = "00000000-0000-4000-8000-0000000000ff"
)

// =====================
// helper
// =====================

// HTTPErrorのstatusとmessageを確認
func assertHTTPError(t *testing.T, err error, status int, msg string) {
	t.Helper()
	he, ok := usecase.AsHTTPError(err)
	if assert.True(t, ok, "want HTTPError, got %v", err) {
		assert.Equal(t, status, he.Status)
		assert.Equal(t, msg, he.Message)
	}
}
