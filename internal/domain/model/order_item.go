package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// 注文時点の商品名と単価を必ず保存。
// 商品が削除されてもProductIDがNULLになるだけで明細は残る
type OrderItem struct {
	ID          string          `gorm:"type:uuid;primaryKey" json:"id"`
	OrderID     string          `gorm:"type:uuid;not null;index" json:"order_id"`
	ProductID   *string         `gorm:"type:uuid;index" json:"product_id"`
	Product     *Product        `gorm:"foreignKey:ProductID;constraint:OnDelete:SET NULL" json:"-"`
	ProductName string          `gorm:"type:varchar(200);not null" json:"product_name"`
	Size        string          `gorm:"type:varchar(100);not null" json:"size"`
	Quantity    int64           `gorm:"not null" json:"quantity"`
	PricePerKg  decimal.Decimal `gorm:"type:numeric(10,2);not null;default:0" json:"price_per_kg"`
	CreatedAt   time.Time       `gorm:"not null;autoCreateTime" json:"created_at"`
}
