package model

import (
	"time"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

type ProductCategory string

const (
	CategoryCarry       ProductCategory = "carry"
	CategoryGarbage     ProductCategory = "garbage"
	CategoryGrocery     ProductCategory = "grocery"
	CategoryCourier     ProductCategory = "courier"
	CategoryNursery     ProductCategory = "nursery"
	CategoryMedical     ProductCategory = "medical"
	CategoryAgriculture ProductCategory = "agriculture"
	CategoryCustom      ProductCategory = "custom"
)

// 閉じた集合（これ以外は不正）
var ProductCategories = []ProductCategory{
	CategoryCarry,
	CategoryGarbage,
	CategoryGrocery,
	CategoryCourier,
	CategoryNursery,
	CategoryMedical,
	CategoryAgriculture,
	CategoryCustom,
}

func (c ProductCategory) Valid() bool {
	for _, v := range ProductCategories {
		if v == c {
			return true
		}
	}
	return false
}

// 画像未設定のときの表示用
const PlaceholderImage = "/placeholder.svg"

// サイズ0件も正常（表示側で「個別見積」扱い）
type Product struct {
	ID          string          `gorm:"type:uuid;primaryKey" json:"id"`
	Name        string          `gorm:"type:varchar(200);not null" json:"name"`
	Description string          `gorm:"type:text" json:"description"`
	Category    ProductCategory `gorm:"type:varchar(20);not null;default:'custom';index" json:"category"`
	Image       string          `gorm:"type:varchar(500)" json:"image"`
	PricePerKg  decimal.Decimal `gorm:"type:numeric(10,2);not null;default:0" json:"price_per_kg"`
	Features    pq.StringArray  `gorm:"type:text[]" json:"features"`
	IsActive    bool            `gorm:"not null;index" json:"is_active"`
	Sizes       []ProductSize   `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE" json:"sizes"`
	CreatedAt   time.Time       `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time       `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
