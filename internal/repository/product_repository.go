package repository

import (
	"context"
	"errors"

	"biobag/internal/domain/model"
)

var ErrNotFound = errors.New("not found")

// 一覧検索。ActiveOnlyは公開APIでは必ずtrue
type ProductListQuery struct {
	ActiveOnly bool
	Active     *bool
	Category   string
	Q          string
}

// 商品の永続化（保存・取得）だけを約束。
type ProductRepository interface {
	List(ctx context.Context, q ProductListQuery) ([]model.Product, error)
	//サイズも読み込んで返す
	FindByID(ctx context.Context, id string) (model.Product, error)

	Create(ctx context.Context, p model.Product) (model.Product, error)
	Update(ctx context.Context, p model.Product) error
	SetActive(ctx context.Context, id string, active bool) error
	Delete(ctx context.Context, id string) error
}

// サイズは親商品単位でまとめて扱う
type ProductSizeRepository interface {
	CreateBulk(ctx context.Context, productID string, sizes []model.ProductSize) error
	DeleteByProductID(ctx context.Context, productID string) error
	ListByProductID(ctx context.Context, productID string) ([]model.ProductSize, error)
}
