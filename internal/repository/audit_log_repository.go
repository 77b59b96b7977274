package repository

import (
	"context"

	"biobag/internal/domain/model"
)

// 対象での絞り込み。ResourceTypeが空なら全件、ResourceIDは種別とセットで使う
type AuditLogFilter struct {
	ResourceType model.AuditResourceType
	ResourceID   string
	Limit        int
	Offset       int
}

type AuditLogRepository interface {
	// 変更と同じTxで書く
	Create(ctx context.Context, log model.AuditLog) error

	// 新しい順
	List(ctx context.Context, filter AuditLogFilter) ([]model.AuditLog, error)
}
