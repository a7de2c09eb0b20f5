package model

import "time"

// Notification 站内通知表 — 对应 notifications
// 由覆班流程的状态变化产生；推送投递由外部推送服务消费，本服务只负责落库
type Notification struct {
	NotificationID string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"notification_id"`
	EmployeeID     string    `gorm:"type:uuid;not null"                             json:"employee_id"`
	Title          string    `gorm:"type:varchar(100);not null"                     json:"title"`
	Body           string    `gorm:"type:varchar(500);not null"                     json:"body"`
	CoverRequestID *string   `gorm:"type:uuid"                                      json:"cover_request_id,omitempty"`
	ShiftID        *string   `gorm:"type:uuid"                                      json:"shift_id,omitempty"`
	IsRead         bool      `gorm:"not null;default:false"                         json:"is_read"`
	CreatedAt      time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"             json:"created_at"`
}

// TableName 指定表名
func (Notification) TableName() string { return "notifications" }
