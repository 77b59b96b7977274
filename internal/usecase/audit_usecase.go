package usecase

import (
	"context"
	"net/http"
	"strings"

	"biobag/internal/domain/model"
	repo "biobag/internal/repository"
)

const (
	defaultAuditLimit = 50
	maxAuditLimit     = 200
)

type AuditLogUsecase struct {
	auditRepo repo.AuditLogRepository
}

func NewAuditLogUsecase(auditRepo repo.AuditLogRepository) *AuditLogUsecase {
	return &AuditLogUsecase{auditRepo: auditRepo}
}

type ListAuditLogsInput struct {
	ResourceType string
	ResourceID   string
	Limit        int
	Offset       int
}

// 監査ログ一覧（新しい順）
func (u *AuditLogUsecase) List(ctx context.Context, in ListAuditLogsInput) ([]model.AuditLog, error) {
	if in.Limit == 0 {
		in.Limit = defaultAuditLimit
	}
	if in.Limit < 0 || in.Limit > maxAuditLimit {
		return []model.AuditLog{}, NewHTTPError(http.StatusBadRequest, "invalid limit")
	}
	if in.Offset < 0 {
		return []model.AuditLog{}, NewHTTPError(http.StatusBadRequest, "invalid offset")
	}

	f := repo.AuditLogFilter{Limit: in.Limit, Offset: in.Offset}

	if rt := strings.TrimSpace(in.ResourceType); rt != "" {
		t := model.AuditResourceType(strings.ToLower(rt))
		if t != model.AuditResourceProduct && t != model.AuditResourceOrder {
			return []model.AuditLog{}, NewHTTPError(http.StatusBadRequest, "invalid resource_type")
		}
		f.ResourceType = t
	}
	f.ResourceID = strings.TrimSpace(in.ResourceID)
	// IDだけでは対象が決まらない
	if f.ResourceID != "" && f.ResourceType == "" {
		return []model.AuditLog{}, NewHTTPError(http.StatusBadRequest, "resource_type is required with resource_id")
	}

	logs, err := u.auditRepo.List(ctx, f)
	if err != nil {
		return []model.AuditLog{}, WrapHTTPError(http.StatusInternalServerError, "db error", err)
	}
	return logs, nil
}
