package model

import "time"

// 商品のサイズ。親商品の更新時は丸ごと入れ替える
type ProductSize struct {
	ID        string    `gorm:"type:uuid;primaryKey" json:"id"`
	ProductID string    `gorm:"type:uuid;not null;index" json:"product_id"`
	Size      string    `gorm:"type:varchar(100);not null" json:"size"`
	Micron    int       `gorm:"not null" json:"micron"`
	Capacity  string    `gorm:"type:varchar(100);not null;default:''" json:"capacity"`
	PcsPerKg  int       `gorm:"column:pcs_per_kg;not null" json:"pcs_per_kg"`
	Position  int       `gorm:"not null;default:0" json:"-"`
	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
}
