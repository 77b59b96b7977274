package handler

import (
	"biobag/internal/usecase"

	"github.com/shopspring/decimal"
)

type PlaceOrderItemRequest struct {
	ProductID   *string         `json:"product_id"`
	ProductName string          `json:"product_name"`
	Size        string          `json:"size"`
	Quantity    int64           `json:"quantity"`
	PricePerKg  decimal.Decimal `json:"price_per_kg"`
}

// total_amountが送られてきても使わない
type PlaceOrderRequest struct {
	CustomerName string                  `json:"customer_name"`
	Email        string                  `json:"email"`
	Phone        string                  `json:"phone"`
	Address      string                  `json:"address"`
	City         string                  `json:"city"`
	State        string                  `json:"state"`
	Pincode      string                  `json:"pincode"`
	Notes        *string                 `json:"notes"`
	Items        []PlaceOrderItemRequest `json:"items"`
}

func (r PlaceOrderRequest) toInput() usecase.PlaceOrderInput {
	items := make([]usecase.PlaceOrderItemInput, 0, len(r.Items))
	for _, it := range r.Items {
		items = append(items, usecase.PlaceOrderItemInput{
			ProductID:   it.ProductID,
			ProductName: it.ProductName,
			Size:        it.Size,
			Quantity:    it.Quantity,
			PricePerKg:  it.PricePerKg,
		})
	}
	return usecase.PlaceOrderInput{
		CustomerName: r.CustomerName,
		Email:        r.Email,
		Phone:        r.Phone,
		Address:      r.Address,
		City:         r.City,
		State:        r.State,
		Pincode:      r.Pincode,
		Notes:        r.Notes,
		Items:        items,
	}
}

type ProductSizeRequest struct {
	Size     string `json:"size"`
	Micron   int    `json:"micron"`
	Capacity string `json:"capacity"`
	PcsPerKg int    `json:"pcs_per_kg"`
}

// sizes/featuresを省略すると更新時は既存のまま
type ProductRequest struct {
	Name        string                `json:"name"`
	Description string                `json:"description"`
	Category    string                `json:"category"`
	Image       string                `json:"image"`
	PricePerKg  decimal.Decimal       `json:"price_per_kg"`
	Features    []string              `json:"features"`
	IsActive    *bool                 `json:"is_active"`
	Sizes       *[]ProductSizeRequest `json:"sizes"`
}

func (r ProductRequest) toInput() usecase.ProductInput {
	in := usecase.ProductInput{
		Name:        r.Name,
		Description: r.Description,
		Category:    r.Category,
		Image:       r.Image,
		PricePerKg:  r.PricePerKg,
		Features:    r.Features,
		IsActive:    r.IsActive,
	}
	if r.Sizes != nil {
		in.Sizes = make([]usecase.ProductSizeInput, 0, len(*r.Sizes))
		for _, s := range *r.Sizes {
			in.Sizes = append(in.Sizes, usecase.ProductSizeInput{
				Size:     s.Size,
				Micron:   s.Micron,
				Capacity: s.Capacity,
				PcsPerKg: s.PcsPerKg,
			})
		}
	}
	return in
}
