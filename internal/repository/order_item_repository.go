package repository

import (
	"context"

	"biobag/internal/domain/model"
)

type OrderItemRepository interface {
	CreateBulk(ctx context.Context, orderID string, items []model.OrderItem) error
	ListByOrderID(ctx context.Context, orderID string) ([]model.OrderItem, error)
	//一覧表示用（N+1を避ける）
	ListByOrderIDs(ctx context.Context, orderIDs []string) ([]model.OrderItem, error)
	DeleteByOrderID(ctx context.Context, orderID string) error
}
