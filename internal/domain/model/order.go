package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusConfirmed  OrderStatus = "confirmed"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusShipped    OrderStatus = "shipped"
	OrderStatusDelivered  OrderStatus = "delivered"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

// 遷移の制約はない（どの状態からどの状態へも変更できる）
var OrderStatuses = []OrderStatus{
	OrderStatusPending,
	OrderStatusConfirmed,
	OrderStatusProcessing,
	OrderStatusShipped,
	OrderStatusDelivered,
	OrderStatusCancelled,
}

// 進捗表示用の並び。cancelledは含めない
var OrderProgressSteps = []OrderStatus{
	OrderStatusPending,
	OrderStatusConfirmed,
	OrderStatusProcessing,
	OrderStatusShipped,
	OrderStatusDelivered,
}

func (s OrderStatus) Valid() bool {
	for _, v := range OrderStatuses {
		if v == s {
			return true
		}
	}
	return false
}

// 進捗バーの位置。cancelled(と未知の値)は-1
func (s OrderStatus) ProgressIndex() int {
	for i, v := range OrderProgressSteps {
		if v == s {
			return i
		}
	}
	return -1
}

// TotalAmountは作成時に一度だけ計算し、以後は再計算しない
type Order struct {
	ID           string          `gorm:"type:uuid;primaryKey" json:"id"`
	OrderNumber  string          `gorm:"type:varchar(32);not null;uniqueIndex" json:"order_number"`
	CustomerName string          `gorm:"type:varchar(100);not null" json:"customer_name"`
	Email        string          `gorm:"type:varchar(255);not null;index" json:"email"`
	Phone        string          `gorm:"type:text;not null" json:"phone"`
	Address      string          `gorm:"type:varchar(500);not null" json:"address"`
	City         string          `gorm:"type:varchar(100);not null" json:"city"`
	State        string          `gorm:"type:varchar(100);not null" json:"state"`
	Pincode      string          `gorm:"type:varchar(6);not null" json:"pincode"`
	TotalAmount  decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0" json:"total_amount"`
	Status       OrderStatus     `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`
	Notes        *string         `gorm:"type:text" json:"notes,omitempty"`
	Items        []OrderItem     `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items,omitempty"`
	CreatedAt    time.Time       `gorm:"not null;autoCreateTime;index" json:"created_at"`
	UpdatedAt    time.Time       `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
