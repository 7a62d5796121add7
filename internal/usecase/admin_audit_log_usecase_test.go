package usecase_test

import (
	"context"
	"testing"

	"app/internal/domain/model"
	repo "app/internal/repository"
	"app/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestAdminAuditLogUsecase_List_InvalidPage(t *testing.T) {
	audits := new(AuditRepoMock)
	uc := usecase.NewAdminAuditLogUsecase(audits)

	_, err := uc.List(context.Background(), usecase.AdminAuditLogListInput{Page: 0, Limit: 50})

	assertErrContains(t, err, "page")
	audits.AssertNotCalled(t, "List", mock.Anything, mock.Anything)
}

func TestAdminAuditLogUsecase_List_InvalidAction(t *testing.T) {
	audits := new(AuditRepoMock)
	uc := usecase.NewAdminAuditLogUsecase(audits)

	_, err := uc.List(context.Background(), usecase.AdminAuditLogListInput{
		Action: "DELETE_EVERYTHING",
		Page:   1,
		Limit:  50,
	})

	assertErrContains(t, err, "invalid action")
	audits.AssertNotCalled(t, "List", mock.Anything, mock.Anything)
}

func TestAdminAuditLogUsecase_List_InvalidResourceType(t *testing.T) {
	audits := new(AuditRepoMock)
	uc := usecase.NewAdminAuditLogUsecase(audits)

	_, err := uc.List(context.Background(), usecase.AdminAuditLogListInput{
		ResourceType: "invoice",
		Page:         1,
		Limit:        50,
	})

	assertErrContains(t, err, "invalid resource type")
}

func TestAdminAuditLogUsecase_List_Success(t *testing.T) {
	audits := new(AuditRepoMock)
	uc := usecase.NewAdminAuditLogUsecase(audits)

	want := []model.AuditLog{
		{ID: 2, ActorUserID: 1, Action: model.AuditActionUpdateProductStatus, ResourceType: model.AuditResourceProduct, ResourceID: 10},
		{ID: 1, ActorUserID: 1, Action: model.AuditActionUpdateUserRole, ResourceType: model.AuditResourceUser, ResourceID: 5},
	}

	audits.On("List", mock.Anything, mock.MatchedBy(func(f repo.AuditLogFilter) bool {
		return f.Limit == 50 && f.Offset == 50 && f.Action == nil && f.ResourceType == nil
	})).Return(want, nil)

	got, err := uc.List(context.Background(), usecase.AdminAuditLogListInput{Page: 2, Limit: 50})

	assert.NoError(t, err)
	assert.Equal(t, want, got)
	audits.AssertExpectations(t)
}

func TestAdminAuditLogUsecase_List_FiltersForwarded(t *testing.T) {
	audits := new(AuditRepoMock)
	uc := usecase.NewAdminAuditLogUsecase(audits)

	actorID := int64(7)
	audits.On("List", mock.Anything, mock.MatchedBy(func(f repo.AuditLogFilter) bool {
		return f.ActorUserID != nil && *f.ActorUserID == 7 &&
			f.Action != nil && *f.Action == model.AuditActionUpdateOrderStatus &&
			f.ResourceType != nil && *f.ResourceType == model.AuditResourceOrder
	})).Return([]model.AuditLog{}, nil)

	_, err := uc.List(context.Background(), usecase.AdminAuditLogListInput{
		ActorUserID:  &actorID,
		Action:       "UPDATE_ORDER_STATUS",
		ResourceType: "order",
		Page:         1,
		Limit:        20,
	})

	assert.NoError(t, err)
	audits.AssertExpectations(t)
}
