package model

import "time"

// お問い合わせ。匿名で作成、既読化と削除は管理者のみ
type Contact struct {
	ID        string    `gorm:"type:uuid;primaryKey" json:"id"`
	Name      string    `gorm:"type:varchar(100);not null" json:"name"`
	Email     string    `gorm:"type:varchar(255);not null" json:"email"`
	Phone     *string   `gorm:"type:varchar(20)" json:"phone,omitempty"`
	Company   *string   `gorm:"type:varchar(100)" json:"company,omitempty"`
	Message   string    `gorm:"type:text;not null" json:"message"`
	IsRead    bool      `gorm:"not null;default:false;index" json:"is_read"`
	CreatedAt time.Time `gorm:"not null;autoCreateTime;index" json:"created_at"`
}
