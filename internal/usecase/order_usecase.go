package usecase

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"biobag/internal/domain/model"
	repo "biobag/internal/repository"

	"github.com/shopspring/decimal"
)

type OrderUsecase struct {
	tx           repo.TransactionManager
	orders       repo.OrderRepository
	orderItems   repo.OrderItemRepository
	validator    OrderValidator
	idGen        IDGenerator
	clock        Clock
	requireEmail bool
}

func NewOrderUsecase(
	tx repo.TransactionManager,
	orders repo.OrderRepository,
	orderItems repo.OrderItemRepository,
	validator OrderValidator,
	idGen IDGenerator,
	clock Clock,
	requireEmail bool,
) *OrderUsecase {
	return &OrderUsecase{
		tx:           tx,
		orders:       orders,
		orderItems:   orderItems,
		validator:    validator,
		idGen:        idGen,
		clock:        clock,
		requireEmail: requireEmail,
	}
}

type PlaceOrderItemInput struct {
	ProductID   *string
	ProductName string
	Size        string
	Quantity    int64
	PricePerKg  decimal.Decimal
}

// クライアントが送る合計は受け取らない
type PlaceOrderInput struct {
	CustomerName string
	Email        string
	Phone        string
	Address      string
	City         string
	State        string
	Pincode      string
	Notes        *string
	Items        []PlaceOrderItemInput
}

type OrderItemOutput struct {
	ID          string          `json:"id"`
	ProductID   *string         `json:"product_id"`
	ProductName string          `json:"product_name"`
	Size        string          `json:"size"`
	Quantity    int64           `json:"quantity"`
	PricePerKg  decimal.Decimal `json:"price_per_kg"`
	Subtotal    decimal.Decimal `json:"subtotal"`
}

type OrderOutput struct {
	ID           string            `json:"id"`
	OrderNumber  string            `json:"order_number"`
	CustomerName string            `json:"customer_name"`
	Email        string            `json:"email"`
	Phone        string            `json:"phone"`
	Address      string            `json:"address"`
	City         string            `json:"city"`
	State        string            `json:"state"`
	Pincode      string            `json:"pincode"`
	TotalAmount  decimal.Decimal   `json:"total_amount"`
	Status       string            `json:"status"`
	ProgressStep int               `json:"progress_step"`
	Notes        *string           `json:"notes"`
	CreatedAt    time.Time         `json:"created_at"`
	UpdatedAt    time.Time         `json:"updated_at"`
	Items        []OrderItemOutput `json:"items"`
}

// 文字列は前後の空白を落としてから検証する
func NormalizePlaceOrderInput(in PlaceOrderInput) PlaceOrderInput {
	out := in
	out.CustomerName = strings.TrimSpace(in.CustomerName)
	out.Email = strings.TrimSpace(in.Email)
	out.Phone = strings.TrimSpace(in.Phone)
	out.Address = strings.TrimSpace(in.Address)
	out.City = strings.TrimSpace(in.City)
	out.State = strings.TrimSpace(in.State)
	out.Pincode = strings.TrimSpace(in.Pincode)
	out.Notes = trimOptional(in.Notes)

	out.Items = make([]PlaceOrderItemInput, 0, len(in.Items))
	for _, it := range in.Items {
		it.ProductName = strings.TrimSpace(it.ProductName)
		it.Size = strings.TrimSpace(it.Size)
		it.ProductID = trimOptional(it.ProductID)
		out.Items = append(out.Items, it)
	}
	return out
}

func (u *OrderUsecase) PlaceOrder(ctx context.Context, in PlaceOrderInput) (OrderOutput, error) {
	in = NormalizePlaceOrderInput(in)

	//検証に落ちたら書き込みはしない
	if err := u.validator.ValidatePlaceOrder(in); err != nil {
		return OrderOutput{}, err
	}

	total := CalculateTotal(in.Items)

	var out OrderOutput

	//注文と明細は同じTxで入れる
	err := withOrderNumberRetry(func() error {
		return u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
			now := u.clock.Now()

			order := newPendingOrder(in, total, now, u.idGen)
			created, err := r.Orders().Create(ctx, order)
			if err != nil {
				return err
			}

			items := buildOrderItems(in.Items, now, u.idGen)
			if err := r.OrderItems().CreateBulk(ctx, created.ID, items); err != nil {
				return err
			}

			out = toOrderOutput(created, items)
			return nil
		})
	})
	if err != nil {
		return OrderOutput{}, WrapHTTPError(http.StatusInternalServerError, "failed to place order", err)
	}
	return out, nil
}

type TrackOrderInput struct {
	OrderNumber string
	Email       string
}

// 注文番号で公開追跡。見つからなければ404（他の注文は返さない）
func (u *OrderUsecase) TrackOrder(ctx context.Context, in TrackOrderInput) (OrderOutput, error) {
	number := NormalizeOrderNumber(in.OrderNumber)
	if number == "" {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "order number required")
	}

	o, err := u.orders.FindByOrderNumber(ctx, number)
	if errors.Is(err, repo.ErrNotFound) {
		return OrderOutput{}, NewHTTPError(http.StatusNotFound, "order not found")
	}
	if err != nil {
		return OrderOutput{}, WrapHTTPError(http.StatusInternalServerError, "db error", err)
	}

	//メール一致を必須にしている場合は、違っても存在を漏らさない
	if u.requireEmail && !strings.EqualFold(strings.TrimSpace(in.Email), o.Email) {
		return OrderOutput{}, NewHTTPError(http.StatusNotFound, "order not found")
	}

	items, err := u.orderItems.ListByOrderID(ctx, o.ID)
	if err != nil {
		return OrderOutput{}, WrapHTTPError(http.StatusInternalServerError, "db error", err)
	}
	return toOrderOutput(o, items), nil
}

func newPendingOrder(in PlaceOrderInput, total decimal.Decimal, now time.Time, idGen IDGenerator) model.Order {
	return model.Order{
		ID:           idGen.NewID(),
		OrderNumber:  NewOrderNumber(now, idGen),
		CustomerName: in.CustomerName,
		Email:        in.Email,
		Phone:        in.Phone,
		Address:      in.Address,
		City:         in.City,
		State:        in.State,
		Pincode:      in.Pincode,
		TotalAmount:  total,
		Status:       model.OrderStatusPending,
		Notes:        in.Notes,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// 商品名と単価は注文時点の値を保存する
func buildOrderItems(items []PlaceOrderItemInput, now time.Time, idGen IDGenerator) []model.OrderItem {
	out := make([]model.OrderItem, 0, len(items))
	for _, it := range items {
		out = append(out, model.OrderItem{
			ID:          idGen.NewID(),
			ProductID:   it.ProductID,
			ProductName: it.ProductName,
			Size:        it.Size,
			Quantity:    it.Quantity,
			PricePerKg:  it.PricePerKg,
			CreatedAt:   now,
		})
	}
	return out
}

func toOrderOutput(o model.Order, items []model.OrderItem) OrderOutput {
	outItems := make([]OrderItemOutput, 0, len(items))
	for _, it := range items {
		outItems = append(outItems, OrderItemOutput{
			ID:          it.ID,
			ProductID:   it.ProductID,
			ProductName: it.ProductName,
			Size:        it.Size,
			Quantity:    it.Quantity,
			PricePerKg:  it.PricePerKg,
			Subtotal:    it.PricePerKg.Mul(decimal.NewFromInt(it.Quantity)),
		})
	}

	return OrderOutput{
		ID:           o.ID,
		OrderNumber:  o.OrderNumber,
		CustomerName: o.CustomerName,
		Email:        o.Email,
		Phone:        o.Phone,
		Address:      o.Address,
		City:         o.City,
		State:        o.State,
		Pincode:      o.Pincode,
		TotalAmount:  o.TotalAmount,
		Status:       string(o.Status),
		ProgressStep: o.Status.ProgressIndex(),
		Notes:        o.Notes,
		CreatedAt:    o.CreatedAt,
		UpdatedAt:    o.UpdatedAt,
		Items:        outItems,
	}
}

// 空文字はnil扱い
func trimOptional(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}
