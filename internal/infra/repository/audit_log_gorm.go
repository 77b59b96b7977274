package repository

import (
	"context"

	"biobag/internal/domain/model"
	repo "biobag/internal/repository"

	"gorm.io/gorm"
)

const maxAuditPage = 200

type AuditLogGormRepository struct {
	db *gorm.DB
}

func NewAuditLogGormRepository(db *gorm.DB) *AuditLogGormRepository {
	return &AuditLogGormRepository{db: db}
}

func (r *AuditLogGormRepository) Create(ctx context.Context, log model.AuditLog) error {
	return r.db.WithContext(ctx).Create(&log).Error
}

func (r *AuditLogGormRepository) List(ctx context.Context, f repo.AuditLogFilter) ([]model.AuditLog, error) {
	limit := f.Limit
	if limit <= 0 || limit > maxAuditPage {
		limit = maxAuditPage
	}
	offset := f.Offset
	if offset < 0 {
		offset = 0
	}

	logs := []model.AuditLog{}
	err := r.db.WithContext(ctx).
		Scopes(auditResource(f.ResourceType, f.ResourceID)).
		Order("created_at desc").Order("id desc").
		Limit(limit).Offset(offset).
		Find(&logs).Error
	if err != nil {
		return []model.AuditLog{}, err
	}
	return logs, nil
}

// idx_audit_logs_resource(resource_type, resource_id)に乗る形で絞る
func auditResource(t model.AuditResourceType, id string) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if t == "" {
			return db
		}
		db = db.Where("resource_type = ?", t)
		if id != "" {
			db = db.Where("resource_id = ?", id)
		}
		return db
	}
}
