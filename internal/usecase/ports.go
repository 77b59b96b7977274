package usecase

import "time"

// UUID等のIDを作る約束
type IDGenerator interface {
	NewID() string
}

// 現在の時間
type Clock interface {
	Now() time.Time
}

// 入力検証の約束（実装はinternal/validator）
type OrderValidator interface {
	ValidatePlaceOrder(in PlaceOrderInput) error
}

type ProductValidator interface {
	ValidateProduct(in ProductInput) error
}

type ContactValidator interface {
	ValidateContact(in SubmitContactInput) error
}
