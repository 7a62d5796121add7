package usecase

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"app/internal/domain/model"
	repo "app/internal/repository"
)

type AdminOrderUsecase struct {
	tx        repo.TransactionManager
	orderRepo repo.OrderRepository
	auditRepo repo.AuditLogRepository
}

func NewAdminOrderUsecase(
	tx repo.TransactionManager,
	orderRepo repo.OrderRepository,
	auditRepo repo.AuditLogRepository,
) *AdminOrderUsecase {
	return &AdminOrderUsecase{tx: tx, orderRepo: orderRepo, auditRepo: auditRepo}
}

type AdminOrderListOutput struct {
	Orders []repo.AdminOrderRow `json:"orders"`
	Total  int64                `json:"total"`
	Page   int                  `json:"page"`
}

// 注文一覧（status絞り込み＋商品名/購入者/出品者の横断検索）
func (u *AdminOrderUsecase) List(ctx context.Context, f repo.AdminOrderListFilter) (AdminOrderListOutput, error) {
	if f.Page < 1 {
		return AdminOrderListOutput{}, NewHTTPError(http.StatusBadRequest, "invalid page")
	}
	if f.Limit < 1 || f.Limit > 100 {
		return AdminOrderListOutput{}, NewHTTPError(http.StatusBadRequest, "invalid limit")
	}
	if f.Status != "" && !validOrderStatus(f.Status) {
		return AdminOrderListOutput{}, NewHTTPError(http.StatusBadRequest, "invalid status")
	}

	orders, total, err := u.orderRepo.ListAdmin(ctx, f)
	if err != nil {
		return AdminOrderListOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return AdminOrderListOutput{Orders: orders, Total: total, Page: f.Page}, nil
}

type AdminUpdateOrderStatusInput struct {
	Status string
}

// ステータス更新。
// PENDING → COMPLETED / CANCELLED のみ。両終端からは動かせない。
// CANCELLEDにしたら商品をACTIVEに戻す（再販可能にする）。
func (u *AdminOrderUsecase) UpdateStatus(ctx context.Context, actorAdminUserID int64, orderID int64, in AdminUpdateOrderStatusInput) (model.Order, error) {
	if actorAdminUserID <= 0 {
		return model.Order{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if orderID <= 0 {
		return model.Order{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	newStatus := strings.TrimSpace(in.Status)
	if !validOrderStatus(newStatus) {
		return model.Order{}, NewHTTPError(http.StatusBadRequest, "invalid status")
	}

	var updated model.Order
	var beforeStatus string

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		o, err := r.Orders().FindByID(ctx, orderID)
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, "order not found")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		beforeStatus = string(o.Status)

		// すでに同じなら何もしない（200）
		if string(o.Status) == newStatus {
			updated = o
			return nil
		}
		// 終端ガード
		if o.Status == model.OrderStatusCompleted || o.Status == model.OrderStatusCancelled {
			return NewHTTPError(http.StatusConflict, "order status is final")
		}

		// キャンセル時は商品を売場に戻す
		if newStatus == string(model.OrderStatusCancelled) {
			err := r.Products().UpdateStatus(ctx, o.ProductID, model.ProductStatusActive)
			if err != nil && err != repo.ErrNotFound {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}
		}

		if err := r.Orders().UpdateStatus(ctx, orderID, model.OrderStatus(newStatus)); err != nil {
			if err == repo.ErrNotFound {
				return NewHTTPError(http.StatusNotFound, "order not found")
			}
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		updated = o
		updated.Status = model.OrderStatus(newStatus)
		updated.UpdatedAt = time.Now()
		return nil
	})
	if err != nil {
		return model.Order{}, err
	}

	//監査ログはベストエフォート（失敗しても注文更新は成立）
	if beforeStatus != string(updated.Status) {
		u.writeAudit(ctx, actorAdminUserID, orderID, beforeStatus, string(updated.Status))
	}

	return updated, nil
}

func (u *AdminOrderUsecase) writeAudit(ctx context.Context, actorID int64, orderID int64, before string, after string) {
	beforeJSON, _ := json.Marshal(map[string]string{"status": before})
	afterJSON, _ := json.Marshal(map[string]string{"status": after})

	_ = u.auditRepo.Create(ctx, model.AuditLog{
		ActorUserID:  actorID,
		Action:       model.AuditActionUpdateOrderStatus,
		ResourceType: model.AuditResourceOrder,
		ResourceID:   orderID,
		BeforeJSON:   string(beforeJSON),
		AfterJSON:    string(afterJSON),
		CreatedAt:    time.Now(),
	})
}

func validOrderStatus(s string) bool {
	switch model.OrderStatus(s) {
	case model.OrderStatusPending, model.OrderStatusCompleted, model.OrderStatusCancelled:
		return true
	default:
		return false
	}
}
