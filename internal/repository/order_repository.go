package repository

import (
	"context"
	"errors"
	"time"

	"biobag/internal/domain/model"
)

// 注文番号の一意制約違反（採番し直す）
var ErrDuplicateOrderNumber = errors.New("duplicate order number")

type AdminOrderListFilter struct {
	Page   int
	Limit  int
	Status string
	//注文番号・氏名・メールの部分一致
	Q    string
	From *time.Time
	To   *time.Time
}

type OrderRepository interface {
	FindByID(ctx context.Context, orderID string) (model.Order, error)
	FindByOrderNumber(ctx context.Context, orderNumber string) (model.Order, error)
	Create(ctx context.Context, order model.Order) (model.Order, error)
	UpdateStatus(ctx context.Context, orderID string, status model.OrderStatus) error
	Delete(ctx context.Context, orderID string) error

	//管理者用の注文一覧
	ListAdmin(ctx context.Context, f AdminOrderListFilter) ([]model.Order, int64, error)
}
