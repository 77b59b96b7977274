package usecase

import (
	"errors"
	"strings"
	"time"

	repo "biobag/internal/repository"

	"github.com/shopspring/decimal"
)

// 注文番号の衝突時に採番し直す最大回数
const maxOrderNumberAttempts = 3

// ORD-YYYYMMDD-XXXXXX（末尾はIDから取った16進6桁）
func NewOrderNumber(now time.Time, idGen IDGenerator) string {
	raw := strings.ToUpper(strings.ReplaceAll(idGen.NewID(), "-", ""))
	for len(raw) < 6 {
		raw += "0"
	}
	return "ORD-" + now.UTC().Format("20060102") + "-" + raw[:6]
}

// 追跡時の入力ゆれを吸収
func NormalizeOrderNumber(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

// 合計 = Σ 数量 × kg単価。作成時に一度だけ計算する
func CalculateTotal(items []PlaceOrderItemInput) decimal.Decimal {
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(it.PricePerKg.Mul(decimal.NewFromInt(it.Quantity)))
	}
	return total
}

// 一意制約違反ならfnごとやり直す（postgresはTx内で違反するとTxが使えなくなるため）
func withOrderNumberRetry(fn func() error) error {
	var err error
	for attempt := 1; attempt <= maxOrderNumberAttempts; attempt++ {
		err = fn()
		if !errors.Is(err, repo.ErrDuplicateOrderNumber) {
			return err
		}
	}
	return err
}
