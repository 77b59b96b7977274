package validator

import (
	"biobag/internal/usecase"

	"github.com/shopspring/decimal"
)

// 検証用の形。フィールドの並び順がエラーを返す順になる

type orderItemRequest struct {
	ProductName string          `json:"product_name" validate:"required,max=200"`
	Size        string          `json:"size" validate:"required,max=100"`
	Quantity    int64           `json:"quantity" validate:"min=1,max=100000"`
	PricePerKg  decimal.Decimal `json:"price_per_kg" validate:"-"`
}

type orderRequest struct {
	CustomerName string             `json:"customer_name" validate:"min=2,max=100"`
	Email        string             `json:"email" validate:"required,max=255,email"`
	Phone        string             `json:"phone" validate:"required,phone"`
	Address      string             `json:"address" validate:"min=10,max=500"`
	City         string             `json:"city" validate:"min=2,max=100"`
	State        string             `json:"state" validate:"min=2,max=100"`
	Pincode      string             `json:"pincode" validate:"required,pincode"`
	Items        []orderItemRequest `json:"items" validate:"required,min=1,dive"`
	Notes        string             `json:"notes" validate:"max=1000"`
}

type productSizeRequest struct {
	Size     string `json:"size" validate:"required,max=100"`
	Micron   int    `json:"micron" validate:"gt=0"`
	Capacity string `json:"capacity" validate:"max=100"`
	PcsPerKg int    `json:"pcs_per_kg" validate:"gt=0"`
}

type productRequest struct {
	Name        string               `json:"name" validate:"required,max=200"`
	Description string               `json:"description" validate:"max=2000"`
	Category    string               `json:"category" validate:"required,category"`
	Image       string               `json:"image" validate:"max=500"`
	PricePerKg  decimal.Decimal      `json:"price_per_kg" validate:"-"`
	Features    []string             `json:"features" validate:"omitempty,dive,required,max=200"`
	Sizes       []productSizeRequest `json:"sizes" validate:"omitempty,dive"`
}

type contactRequest struct {
	Name    string `json:"name" validate:"min=2,max=100"`
	Email   string `json:"email" validate:"required,max=255,email"`
	Phone   string `json:"phone" validate:"omitempty,max=20"`
	Company string `json:"company" validate:"omitempty,max=100"`
	Message string `json:"message" validate:"min=10,max=2000"`
}

func toOrderRequest(in usecase.PlaceOrderInput) orderRequest {
	var items []orderItemRequest
	if in.Items != nil {
		items = make([]orderItemRequest, 0, len(in.Items))
		for _, it := range in.Items {
			items = append(items, orderItemRequest{
				ProductName: it.ProductName,
				Size:        it.Size,
				Quantity:    it.Quantity,
				PricePerKg:  it.PricePerKg,
			})
		}
	}

	notes := ""
	if in.Notes != nil {
		notes = *in.Notes
	}

	return orderRequest{
		CustomerName: in.CustomerName,
		Email:        in.Email,
		Phone:        in.Phone,
		Address:      in.Address,
		City:         in.City,
		State:        in.State,
		Pincode:      in.Pincode,
		Items:        items,
		Notes:        notes,
	}
}

func toProductRequest(in usecase.ProductInput) productRequest {
	sizes := make([]productSizeRequest, 0, len(in.Sizes))
	for _, s := range in.Sizes {
		sizes = append(sizes, productSizeRequest{
			Size:     s.Size,
			Micron:   s.Micron,
			Capacity: s.Capacity,
			PcsPerKg: s.PcsPerKg,
		})
	}
	return productRequest{
		Name:        in.Name,
		Description: in.Description,
		Category:    in.Category,
		Image:       in.Image,
		PricePerKg:  in.PricePerKg,
		Features:    in.Features,
		Sizes:       sizes,
	}
}

func toContactRequest(in usecase.SubmitContactInput) contactRequest {
	return contactRequest{
		Name:    in.Name,
		Email:   in.Email,
		Phone:   in.Phone,
		Company: in.Company,
		Message: in.Message,
	}
}
