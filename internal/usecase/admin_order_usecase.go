package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"biobag/internal/domain/model"
	repo "biobag/internal/repository"
)

type AdminOrderUsecase struct {
	tx         repo.TransactionManager
	orders     repo.OrderRepository
	orderItems repo.OrderItemRepository
	clock      Clock
}

func NewAdminOrderUsecase(tx repo.TransactionManager, orders repo.OrderRepository, orderItems repo.OrderItemRepository, clock Clock) *AdminOrderUsecase {
	return &AdminOrderUsecase{tx: tx, orders: orders, orderItems: orderItems, clock: clock}
}

type AdminUpdateOrderStatusInput struct {
	Status string
}

type AdminOrderListOutput struct {
	Items []OrderOutput `json:"items"`
	Total int64         `json:"total"`
	Page  int           `json:"page"`
	Limit int           `json:"limit"`
}

// 注文一覧（新しい順、明細付き）
func (u *AdminOrderUsecase) List(ctx context.Context, f repo.AdminOrderListFilter) (AdminOrderListOutput, error) {
	// page/limitの最低限チェック
	if f.Page < 1 {
		return AdminOrderListOutput{}, NewHTTPError(http.StatusBadRequest, "invalid page")
	}
	if f.Limit < 1 || f.Limit > 100 {
		return AdminOrderListOutput{}, NewHTTPError(http.StatusBadRequest, "invalid limit")
	}
	f.Status = strings.ToLower(strings.TrimSpace(f.Status))
	if f.Status != "" && !model.OrderStatus(f.Status).Valid() {
		return AdminOrderListOutput{}, NewHTTPError(http.StatusBadRequest, "invalid status")
	}
	if f.From != nil && f.To != nil && f.From.After(*f.To) {
		return AdminOrderListOutput{}, NewHTTPError(http.StatusBadRequest, "from must be before to")
	}

	orders, total, err := u.orders.ListAdmin(ctx, f)
	if err != nil {
		return AdminOrderListOutput{}, WrapHTTPError(http.StatusInternalServerError, "db error", err)
	}

	ids := make([]string, 0, len(orders))
	for _, o := range orders {
		ids = append(ids, o.ID)
	}

	byOrder := map[string][]model.OrderItem{}
	if len(ids) > 0 {
		items, err := u.orderItems.ListByOrderIDs(ctx, ids)
		if err != nil {
			return AdminOrderListOutput{}, WrapHTTPError(http.StatusInternalServerError, "db error", err)
		}
		for _, it := range items {
			byOrder[it.OrderID] = append(byOrder[it.OrderID], it)
		}
	}

	outs := make([]OrderOutput, 0, len(orders))
	for _, o := range orders {
		outs = append(outs, toOrderOutput(o, byOrder[o.ID]))
	}

	return AdminOrderListOutput{
		Items: outs,
		Total: total,
		Page:  f.Page,
		Limit: f.Limit,
	}, nil
}

func (u *AdminOrderUsecase) Detail(ctx context.Context, orderID string) (OrderOutput, error) {
	if err := checkRowID(orderID, "invalid id"); err != nil {
		return OrderOutput{}, err
	}

	o, err := u.orders.FindByID(ctx, orderID)
	if errors.Is(err, repo.ErrNotFound) {
		return OrderOutput{}, NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return OrderOutput{}, WrapHTTPError(http.StatusInternalServerError, "db error", err)
	}

	items, err := u.orderItems.ListByOrderID(ctx, o.ID)
	if err != nil {
		return OrderOutput{}, WrapHTTPError(http.StatusInternalServerError, "db error", err)
	}
	return toOrderOutput(o, items), nil
}

// ステータス更新。遷移の制約はなく、6値に含まれるかだけ見る
func (u *AdminOrderUsecase) UpdateStatus(ctx context.Context, actorAdminUserID string, orderID string, in AdminUpdateOrderStatusInput) error {
	if actorAdminUserID == "" {
		return NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if err := checkRowID(orderID, "invalid id"); err != nil {
		return err
	}

	newStatus := model.OrderStatus(strings.ToLower(strings.TrimSpace(in.Status)))
	if !newStatus.Valid() {
		return NewHTTPError(http.StatusBadRequest, "invalid status")
	}

	return u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		o, err := r.Orders().FindByID(ctx, orderID)
		if errors.Is(err, repo.ErrNotFound) {
			return NewHTTPError(http.StatusNotFound, "not found")
		}
		if err != nil {
			return WrapHTTPError(http.StatusInternalServerError, "db error", err)
		}

		// すでに同じなら何もしない（200）
		if o.Status == newStatus {
			return nil
		}

		if err := r.Orders().UpdateStatus(ctx, orderID, newStatus); err != nil {
			if errors.Is(err, repo.ErrNotFound) {
				return NewHTTPError(http.StatusNotFound, "not found")
			}
			return WrapHTTPError(http.StatusInternalServerError, "db error", err)
		}

		//監査ログ（UPDATE_ORDER_STATUS）
		if err := r.AuditLogs().Create(ctx, model.AuditLog{
			ActorUserID:  actorAdminUserID,
			Action:       model.AuditActionUpdateOrderStatus,
			ResourceType: model.AuditResourceOrder,
			ResourceID:   orderID,
			BeforeJSON:   auditJSON(map[string]string{"status": string(o.Status)}),
			AfterJSON:    auditJSON(map[string]string{"status": string(newStatus)}),
			CreatedAt:    u.clock.Now(),
		}); err != nil {
			return WrapHTTPError(http.StatusInternalServerError, "db error", err)
		}
		return nil
	})
}

// 明細→注文の順で消す
func (u *AdminOrderUsecase) Delete(ctx context.Context, actorAdminUserID string, orderID string) error {
	if actorAdminUserID == "" {
		return NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if err := checkRowID(orderID, "invalid id"); err != nil {
		return err
	}

	return u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		o, err := r.Orders().FindByID(ctx, orderID)
		if errors.Is(err, repo.ErrNotFound) {
			return NewHTTPError(http.StatusNotFound, "not found")
		}
		if err != nil {
			return WrapHTTPError(http.StatusInternalServerError, "db error", err)
		}

		if err := r.OrderItems().DeleteByOrderID(ctx, orderID); err != nil {
			return WrapHTTPError(http.StatusInternalServerError, "db error", err)
		}
		if err := r.Orders().Delete(ctx, orderID); err != nil {
			if errors.Is(err, repo.ErrNotFound) {
				return NewHTTPError(http.StatusNotFound, "not found")
			}
			return WrapHTTPError(http.StatusInternalServerError, "db error", err)
		}

		if err := r.AuditLogs().Create(ctx, model.AuditLog{
			ActorUserID:  actorAdminUserID,
			Action:       model.AuditActionDeleteOrder,
			ResourceType: model.AuditResourceOrder,
			ResourceID:   orderID,
			BeforeJSON: auditJSON(map[string]string{
				"order_number": o.OrderNumber,
				"status":       string(o.Status),
				"total_amount": o.TotalAmount.StringFixed(2),
			}),
			AfterJSON: "{}",
			CreatedAt: u.clock.Now(),
		}); err != nil {
			return WrapHTTPError(http.StatusInternalServerError, "db error", err)
		}
		return nil
	})
}

// 期間パラメータ。handlerでRFC3339を受けてここに入れる
func ParseDateTimeRFC3339(s string) (*time.Time, bool) {
	if strings.TrimSpace(s) == "" {
		return nil, false
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		// クエリの"+05:30"はエンコードされていないと空白になる
		i := strings.LastIndex(s, " ")
		if i < 0 || i < strings.Index(s, "T") {
			return nil, false
		}
		t, err = time.Parse(time.RFC3339, s[:i]+"+"+s[i+1:])
		if err != nil {
			return nil, false
		}
	}
	return &t, true
}

func auditJSON(v map[string]string) string {
	b, err := json.Marshal(v)
	if err != nil {
		return "{}"
	}
	return string(b)
}
