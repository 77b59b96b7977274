package usecase_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"biobag/internal/domain/model"
	repo "biobag/internal/repository"
	"biobag/internal/usecase"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type adminOrderFixture struct {
	tx     *TxManagerMock
	orders *OrderRepoMock
	items  *OrderItemRepoMock
	audit  *AuditRepoMock
	uc     *usecase.AdminOrderUsecase
}

func newAdminOrderFixture() adminOrderFixture {
	orders := new(OrderRepoMock)
	items := new(OrderItemRepoMock)
	audit := new(AuditRepoMock)
	tx := &TxManagerMock{Repos: &TxReposMock{orders: orders, orderItems: items, auditLogs: audit}}
	return adminOrderFixture{
		tx:     tx,
		orders: orders,
		items:  items,
		audit:  audit,
		uc:     usecase.NewAdminOrderUsecase(tx, orders, items, fixedClock{testNow}),
	}
}

// =====================
// List
// =====================

func TestAdminOrderUsecase_List_InvalidParams(t *testing.T) {
	from := testNow
	to := testNow.Add(-time.Hour)

	cases := []struct {
		name string
		f    repo.AdminOrderListFilter
		want string
	}{
		{"page", repo.AdminOrderListFilter{Page: 0, Limit: 20}, "invalid page"},
		{"limit zero", repo.AdminOrderListFilter{Page: 1, Limit: 0}, "invalid limit"},
		{"limit too big", repo.AdminOrderListFilter{Page: 1, Limit: 101}, "invalid limit"},
		{"status", repo.AdminOrderListFilter{Page: 1, Limit: 20, Status: "paid"}, "invalid status"},
		{"range", repo.AdminOrderListFilter{Page: 1, Limit: 20, From: &from, To: &to}, "from must be before to"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			fx := newAdminOrderFixture()
			_, err := fx.uc.List(context.Background(), tc.f)
			assertHTTPError(t, err, http.StatusBadRequest, tc.want)
			fx.orders.AssertNotCalled(t, "ListAdmin", mock.Anything, mock.Anything)
		})
	}
}

func TestAdminOrderUsecase_List_GroupsItemsByOrder(t *testing.T) {
	fx := newAdminOrderFixture()

	f := repo.AdminOrderListFilter{Page: 1, Limit: 20, Status: "pending"}
	orders := []model.Order{
		{ID: orderID1, Status: model.OrderStatusPending},
		{ID: orderID2, Status: model.OrderStatusPending},
	}
	fx.orders.On("ListAdmin", mock.Anything, f).Return(orders, int64(2), nil)
	fx.items.On("ListByOrderIDs", mock.Anything, []string{orderID1, orderID2}).Return([]model.OrderItem{
		{ID: "i-1", OrderID: orderID1, Quantity: 1, PricePerKg: decimal.NewFromInt(10)},
		{ID: "i-2", OrderID: orderID2, Quantity: 2, PricePerKg: decimal.NewFromInt(10)},
		{ID: "i-3", OrderID: orderID2, Quantity: 3, PricePerKg: decimal.NewFromInt(10)},
	}, nil)

	out, err := fx.uc.List(context.Background(), repo.AdminOrderListFilter{Page: 1, Limit: 20, Status: " PENDING "})
	require.NoError(t, err)

	assert.Equal(t, int64(2), out.Total)
	require.Len(t, out.Items, 2)
	assert.Len(t, out.Items[0].Items, 1)
	assert.Len(t, out.Items[1].Items, 2)
	fx.items.AssertNumberOfCalls(t, "ListByOrderIDs", 1)
}

func TestAdminOrderUsecase_List_EmptySkipsItems(t *testing.T) {
	fx := newAdminOrderFixture()
	f := repo.AdminOrderListFilter{Page: 2, Limit: 10}
	fx.orders.On("ListAdmin", mock.Anything, f).Return([]model.Order{}, int64(0), nil)

	out, err := fx.uc.List(context.Background(), f)
	require.NoError(t, err)
	assert.Empty(t, out.Items)
	assert.Equal(t, 2, out.Page)
	fx.items.AssertNotCalled(t, "ListByOrderIDs", mock.Anything, mock.Anything)
}

// =====================
// UpdateStatus
// =====================

func TestAdminOrderUsecase_UpdateStatus_AllStatusesAccepted(t *testing.T) {
	for _, st := range model.OrderStatuses {
		t.Run(string(st), func(t *testing.T) {
			fx := newAdminOrderFixture()
			fx.tx.On("WithinTx", mock.Anything).Return(nil)

			// 遷移制約はない：cancelledからでも変更できる
			fx.orders.On("FindByID", mock.Anything, orderID1).Return(model.Order{ID: orderID1, Status: "unknown"}, nil)
			fx.orders.On("UpdateStatus", mock.Anything, orderID1, st).Return(nil)
			fx.audit.On("Create", mock.Anything, mock.Anything).Return(nil)

			err := fx.uc.UpdateStatus(context.Background(), "admin-1", orderID1, usecase.AdminUpdateOrderStatusInput{Status: string(st)})
			require.NoError(t, err)
			fx.orders.AssertCalled(t, "UpdateStatus", mock.Anything, orderID1, st)
		})
	}
}

func TestAdminOrderUsecase_UpdateStatus_FromCancelledWritesAudit(t *testing.T) {
	fx := newAdminOrderFixture()
	fx.tx.On("WithinTx", mock.Anything).Return(nil)
	fx.orders.On("FindByID", mock.Anything, orderID1).Return(model.Order{ID: orderID1, Status: model.OrderStatusCancelled}, nil)
	fx.orders.On("UpdateStatus", mock.Anything, orderID1, model.OrderStatusPending).Return(nil)
	fx.audit.On("Create", mock.Anything, mock.MatchedBy(func(l model.AuditLog) bool {
		return l.Action == model.AuditActionUpdateOrderStatus &&
			l.ActorUserID == "admin-1" &&
			l.ResourceType == model.AuditResourceOrder &&
			l.ResourceID == orderID1 &&
			l.BeforeJSON == `{"status":"cancelled"}` &&
			l.AfterJSON == `{"status":"pending"}` &&
			l.CreatedAt.Equal(testNow)
	})).Return(nil)

	err := fx.uc.UpdateStatus(context.Background(), "admin-1", orderID1, usecase.AdminUpdateOrderStatusInput{Status: "Pending"})
	require.NoError(t, err)
	fx.audit.AssertExpectations(t)
}

func TestAdminOrderUsecase_UpdateStatus_SameStatusIsNoop(t *testing.T) {
	fx := newAdminOrderFixture()
	fx.tx.On("WithinTx", mock.Anything).Return(nil)
	fx.orders.On("FindByID", mock.Anything, orderID1).Return(model.Order{ID: orderID1, Status: model.OrderStatusShipped}, nil)

	err := fx.uc.UpdateStatus(context.Background(), "admin-1", orderID1, usecase.AdminUpdateOrderStatusInput{Status: "shipped"})
	require.NoError(t, err)

	fx.orders.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
	fx.audit.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestAdminOrderUsecase_UpdateStatus_Invalid(t *testing.T) {
	fx := newAdminOrderFixture()

	err := fx.uc.UpdateStatus(context.Background(), "admin-1", orderID1, usecase.AdminUpdateOrderStatusInput{Status: "returned"})
	assertHTTPError(t, err, http.StatusBadRequest, "invalid status")

	err = fx.uc.UpdateStatus(context.Background(), "", orderID1, usecase.AdminUpdateOrderStatusInput{Status: "pending"})
	assertHTTPError(t, err, http.StatusUnauthorized, "unauthorized")

	fx.tx.AssertNotCalled(t, "WithinTx", mock.Anything)
}

func TestAdminOrderUsecase_UpdateStatus_NotFound(t *testing.T) {
	fx := newAdminOrderFixture()
	fx.tx.On("WithinTx", mock.Anything).Return(nil)
	fx.orders.On("FindByID", mock.Anything, missingID).Return(model.Order{}, repo.ErrNotFound)

	err := fx.uc.UpdateStatus(context.Background(), "admin-1", missingID, usecase.AdminUpdateOrderStatusInput{Status: "confirmed"})
	assertHTTPError(t, err, http.StatusNotFound, "not found")
}

// =====================
// Detail / Delete
// =====================

func TestAdminOrderUsecase_Detail(t *testing.T) {
	fx := newAdminOrderFixture()
	fx.orders.On("FindByID", mock.Anything, orderID1).Return(model.Order{ID: orderID1, Status: model.OrderStatusDelivered}, nil)
	fx.items.On("ListByOrderID", mock.Anything, orderID1).Return([]model.OrderItem{{ID: "i-1", OrderID: orderID1}}, nil)

	out, err := fx.uc.Detail(context.Background(), orderID1)
	require.NoError(t, err)
	assert.Equal(t, 4, out.ProgressStep)
	assert.Len(t, out.Items, 1)
}

func TestAdminOrderUsecase_Delete_RemovesItemsThenOrder(t *testing.T) {
	fx := newAdminOrderFixture()
	fx.tx.On("WithinTx", mock.Anything).Return(nil)

	o := model.Order{ID: orderID1, OrderNumber: "ORD-20250314-ABC123", Status: model.OrderStatusPending, TotalAmount: decimal.NewFromInt(26000)}
	fx.orders.On("FindByID", mock.Anything, orderID1).Return(o, nil)
	fx.items.On("DeleteByOrderID", mock.Anything, orderID1).Return(nil)
	fx.orders.On("Delete", mock.Anything, orderID1).Return(nil)
	fx.audit.On("Create", mock.Anything, mock.MatchedBy(func(l model.AuditLog) bool {
		return l.Action == model.AuditActionDeleteOrder &&
			l.BeforeJSON == `{"order_number":"ORD-20250314-ABC123","status":"pending","total_amount":"26000.00"}`
	})).Return(nil)

	require.NoError(t, fx.uc.Delete(context.Background(), "admin-1", orderID1))

	fx.items.AssertExpectations(t)
	fx.orders.AssertExpectations(t)
	fx.audit.AssertExpectations(t)
}

func TestAdminOrderUsecase_Delete_NotFound(t *testing.T) {
	fx := newAdminOrderFixture()
	fx.tx.On("WithinTx", mock.Anything).Return(nil)
	fx.orders.On("FindByID", mock.Anything, missingID).Return(model.Order{}, repo.ErrNotFound)

	err := fx.uc.Delete(context.Background(), "admin-1", missingID)
	assertHTTPError(t, err, http.StatusNotFound, "not found")
	fx.items.AssertNotCalled(t, "DeleteByOrderID", mock.Anything, mock.Anything)
}

func TestAdminOrderUsecase_MalformedIDIsNotFound(t *testing.T) {
	fx := newAdminOrderFixture()
	ctx := context.Background()

	_, err := fx.uc.Detail(ctx, "xyz")
	assertHTTPError(t, err, http.StatusNotFound, "not found")

	err = fx.uc.UpdateStatus(ctx, "admin-1", "xyz", usecase.AdminUpdateOrderStatusInput{Status: "shipped"})
	assertHTTPError(t, err, http.StatusNotFound, "not found")

	assertHTTPError(t, fx.uc.Delete(ctx, "admin-1", "42"), http.StatusNotFound, "not found")

	_, err = fx.uc.Detail(ctx, "")
	assertHTTPError(t, err, http.StatusBadRequest, "invalid id")

	fx.tx.AssertNotCalled(t, "WithinTx", mock.Anything)
	fx.orders.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
}

func TestParseDateTimeRFC3339(t *testing.T) {
	ts, ok := usecase.ParseDateTimeRFC3339("2025-03-14T09:30:00Z")
	require.True(t, ok)
	assert.True(t, ts.Equal(testNow))

	// +の未エンコードと%2Bのどちらでも同じ時刻
	ts, ok = usecase.ParseDateTimeRFC3339("2025-03-14T15:00:00 05:30")
	require.True(t, ok)
	assert.True(t, ts.Equal(testNow))
	ts, ok = usecase.ParseDateTimeRFC3339("2025-03-14T15:00:00+05:30")
	require.True(t, ok)
	assert.True(t, ts.Equal(testNow))

	_, ok = usecase.ParseDateTimeRFC3339("2025-03-14 09:30:00Z")
	assert.False(t, ok)
	_, ok = usecase.ParseDateTimeRFC3339("2025-03-14")
	assert.False(t, ok)
	_, ok = usecase.ParseDateTimeRFC3339("")
	assert.False(t, ok)
}
