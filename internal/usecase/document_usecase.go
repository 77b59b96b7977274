package usecase

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"biobag/internal/domain/model"
	repo "biobag/internal/repository"

	"github.com/lib/pq"
)

// MongoDB側のAPI。注文は明細を埋め込んだ1ドキュメントで保存する
type DocumentUsecase struct {
	products         repo.ProductDocumentStore
	orders           repo.OrderDocumentStore
	orderValidator   OrderValidator
	productValidator ProductValidator
	idGen            IDGenerator
	clock            Clock
}

func NewDocumentUsecase(
	products repo.ProductDocumentStore,
	orders repo.OrderDocumentStore,
	orderValidator OrderValidator,
	productValidator ProductValidator,
	idGen IDGenerator,
	clock Clock,
) *DocumentUsecase {
	return &DocumentUsecase{
		products:         products,
		orders:           orders,
		orderValidator:   orderValidator,
		productValidator: productValidator,
		idGen:            idGen,
		clock:            clock,
	}
}

// PUTで受け付けるのはstatusとnotesだけ
type UpdateOrderDocumentInput struct {
	Status *string
	Notes  *string
}

func (u *DocumentUsecase) ListProducts(ctx context.Context, activeOnly bool) ([]ProductOutput, error) {
	items, err := u.products.List(ctx, activeOnly)
	if err != nil {
		return []ProductOutput{}, WrapHTTPError(http.StatusInternalServerError, "failed to fetch products", err)
	}
	return toProductOutputs(items), nil
}

func (u *DocumentUsecase) GetProduct(ctx context.Context, id string) (ProductOutput, error) {
	if strings.TrimSpace(id) == "" {
		return ProductOutput{}, NewHTTPError(http.StatusBadRequest, "id is required")
	}
	p, err := u.products.FindByID(ctx, id)
	if err != nil {
		return ProductOutput{}, docStoreError(err, "failed to fetch product")
	}
	return ToProductOutput(p), nil
}

func (u *DocumentUsecase) CreateProduct(ctx context.Context, in ProductInput) (ProductOutput, error) {
	in = NormalizeProductInput(in)
	if err := u.productValidator.ValidateProduct(in); err != nil {
		return ProductOutput{}, err
	}

	now := u.clock.Now()
	p, err := u.products.Insert(ctx, documentProduct("", in, now, u.idGen))
	if err != nil {
		return ProductOutput{}, WrapHTTPError(http.StatusInternalServerError, "failed to create product", err)
	}
	return ToProductOutput(p), nil
}

// 項目は丸ごと置き換える
func (u *DocumentUsecase) UpdateProduct(ctx context.Context, id string, in ProductInput) (ProductOutput, error) {
	if strings.TrimSpace(id) == "" {
		return ProductOutput{}, NewHTTPError(http.StatusBadRequest, "id is required")
	}
	in = NormalizeProductInput(in)
	if err := u.productValidator.ValidateProduct(in); err != nil {
		return ProductOutput{}, err
	}

	current, err := u.products.FindByID(ctx, id)
	if err != nil {
		return ProductOutput{}, docStoreError(err, "failed to update product")
	}

	p := documentProduct(id, in, u.clock.Now(), u.idGen)
	p.CreatedAt = current.CreatedAt
	if in.IsActive == nil {
		p.IsActive = current.IsActive
	}
	if in.Sizes == nil {
		p.Sizes = current.Sizes
	}
	if in.Features == nil {
		p.Features = current.Features
	}

	if err := u.products.Replace(ctx, p); err != nil {
		return ProductOutput{}, docStoreError(err, "failed to update product")
	}
	return ToProductOutput(p), nil
}

func (u *DocumentUsecase) DeleteProduct(ctx context.Context, id string) (bool, error) {
	if strings.TrimSpace(id) == "" {
		return false, NewHTTPError(http.StatusBadRequest, "id is required")
	}
	deleted, err := u.products.Delete(ctx, id)
	if err != nil {
		return false, WrapHTTPError(http.StatusInternalServerError, "failed to delete product", err)
	}
	return deleted, nil
}

func (u *DocumentUsecase) ListOrders(ctx context.Context) ([]OrderOutput, error) {
	orders, err := u.orders.List(ctx)
	if err != nil {
		return []OrderOutput{}, WrapHTTPError(http.StatusInternalServerError, "failed to fetch orders", err)
	}
	out := make([]OrderOutput, 0, len(orders))
	for _, o := range orders {
		out = append(out, toOrderOutput(o, o.Items))
	}
	return out, nil
}

func (u *DocumentUsecase) GetOrder(ctx context.Context, id string) (OrderOutput, error) {
	if strings.TrimSpace(id) == "" {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "id is required")
	}
	o, err := u.orders.FindByID(ctx, id)
	if err != nil {
		return OrderOutput{}, docStoreError(err, "failed to fetch order")
	}
	return toOrderOutput(o, o.Items), nil
}

// RDB側と同じ検証・合計計算。1ドキュメントの挿入なので部分的な書き込みは起きない
func (u *DocumentUsecase) CreateOrder(ctx context.Context, in PlaceOrderInput) (OrderOutput, error) {
	in = NormalizePlaceOrderInput(in)
	if err := u.orderValidator.ValidatePlaceOrder(in); err != nil {
		return OrderOutput{}, err
	}

	total := CalculateTotal(in.Items)

	var created model.Order
	err := withOrderNumberRetry(func() error {
		now := u.clock.Now()
		o := newPendingOrder(in, total, now, u.idGen)
		o.ID = ""
		o.Items = buildOrderItems(in.Items, now, u.idGen)

		var err error
		created, err = u.orders.Insert(ctx, o)
		return err
	})
	if err != nil {
		return OrderOutput{}, WrapHTTPError(http.StatusInternalServerError, "failed to place order", err)
	}
	return toOrderOutput(created, created.Items), nil
}

func (u *DocumentUsecase) UpdateOrder(ctx context.Context, id string, in UpdateOrderDocumentInput) (OrderOutput, error) {
	if strings.TrimSpace(id) == "" {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "id is required")
	}

	var status *model.OrderStatus
	if in.Status != nil {
		s := model.OrderStatus(strings.ToLower(strings.TrimSpace(*in.Status)))
		if !s.Valid() {
			return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "invalid status")
		}
		status = &s
	}
	var notes *string
	if in.Notes != nil {
		n := strings.TrimSpace(*in.Notes)
		if len([]rune(n)) > 1000 {
			return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "Notes must be at most 1000 characters")
		}
		notes = &n
	}
	if status == nil && notes == nil {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "nothing to update")
	}

	if err := u.orders.UpdateFields(ctx, id, status, notes); err != nil {
		return OrderOutput{}, docStoreError(err, "failed to update order")
	}
	return u.GetOrder(ctx, id)
}

func (u *DocumentUsecase) DeleteOrder(ctx context.Context, id string) (bool, error) {
	if strings.TrimSpace(id) == "" {
		return false, NewHTTPError(http.StatusBadRequest, "id is required")
	}
	deleted, err := u.orders.Delete(ctx, id)
	if err != nil {
		return false, WrapHTTPError(http.StatusInternalServerError, "failed to delete order", err)
	}
	return deleted, nil
}

func documentProduct(id string, in ProductInput, now time.Time, idGen IDGenerator) model.Product {
	active := true
	if in.IsActive != nil {
		active = *in.IsActive
	}
	sizes := buildProductSizes(in.Sizes, now, idGen)
	for i := range sizes {
		sizes[i].ProductID = id
	}
	return model.Product{
		ID:          id,
		Name:        in.Name,
		Description: in.Description,
		Category:    model.ProductCategory(in.Category),
		Image:       in.Image,
		PricePerKg:  in.PricePerKg,
		Features:    pq.StringArray(nonNilStrings(in.Features)),
		IsActive:    active,
		Sizes:       sizes,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

func docStoreError(err error, message string) error {
	if errors.Is(err, repo.ErrNotFound) {
		return NewHTTPError(http.StatusNotFound, "not found")
	}
	return WrapHTTPError(http.StatusInternalServerError, message, err)
}
