package repository

import (
	"context"

	"biobag/internal/domain/model"
)

// ドキュメントDB（MongoDB）側の商品コレクション
type ProductDocumentStore interface {
	List(ctx context.Context, activeOnly bool) ([]model.Product, error)
	FindByID(ctx context.Context, id string) (model.Product, error)
	Insert(ctx context.Context, p model.Product) (model.Product, error)
	Replace(ctx context.Context, p model.Product) error
	Delete(ctx context.Context, id string) (bool, error)
}

// 注文は明細を埋め込んだ1ドキュメントで保存する（1回の書き込みで完結）
type OrderDocumentStore interface {
	List(ctx context.Context) ([]model.Order, error)
	FindByID(ctx context.Context, id string) (model.Order, error)
	Insert(ctx context.Context, o model.Order) (model.Order, error)
	UpdateFields(ctx context.Context, id string, status *model.OrderStatus, notes *string) error
	Delete(ctx context.Context, id string) (bool, error)
}
