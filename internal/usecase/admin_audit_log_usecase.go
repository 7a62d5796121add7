package usecase

import (
	"context"
	"net/http"

	"app/internal/domain/model"
	repo "app/internal/repository"
)

// 管理者向けの監査ログ閲覧。
type AdminAuditLogUsecase struct {
	auditRepo repo.AuditLogRepository
}

func NewAdminAuditLogUsecase(auditRepo repo.AuditLogRepository) *AdminAuditLogUsecase {
	return &AdminAuditLogUsecase{auditRepo: auditRepo}
}

type AdminAuditLogListInput struct {
	ActorUserID  *int64
	Action       string
	ResourceType string
	ResourceID   *int64
	Page         int
	Limit        int
}

func validAuditAction(a model.AuditAction) bool {
	switch a {
	case model.AuditActionUpdateProductStatus,
		model.AuditActionUpdateProductFields,
		model.AuditActionUpdateOrderStatus,
		model.AuditActionUpdateUserRole:
		return true
	}
	return false
}

func validAuditResourceType(rt model.AuditResourceType) bool {
	switch rt {
	case model.AuditResourceProduct, model.AuditResourceOrder, model.AuditResourceUser:
		return true
	}
	return false
}

func (u *AdminAuditLogUsecase) List(ctx context.Context, in AdminAuditLogListInput) ([]model.AuditLog, error) {
	if in.Page < 1 {
		return nil, NewHTTPError(http.StatusBadRequest, "page must be 1 or greater")
	}
	if in.Limit < 1 || in.Limit > 100 {
		return nil, NewHTTPError(http.StatusBadRequest, "limit must be between 1 and 100")
	}

	filter := repo.AuditLogFilter{
		ActorUserID: in.ActorUserID,
		ResourceID:  in.ResourceID,
		Limit:       in.Limit,
		Offset:      (in.Page - 1) * in.Limit,
	}

	if in.Action != "" {
		action := model.AuditAction(in.Action)
		if !validAuditAction(action) {
			return nil, NewHTTPError(http.StatusBadRequest, "invalid action")
		}
		filter.Action = &action
	}
	if in.ResourceType != "" {
		rt := model.AuditResourceType(in.ResourceType)
		if !validAuditResourceType(rt) {
			return nil, NewHTTPError(http.StatusBadRequest, "invalid resource type")
		}
		filter.ResourceType = &rt
	}

	logs, err := u.auditRepo.List(ctx, filter)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return logs, nil
}
