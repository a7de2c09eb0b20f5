package dto

// ── 通知模块 DTO ──

// NotificationResponse 站内通知响应
type NotificationResponse struct {
	ID             string `json:"notification_id"`
	Title          string `json:"title"`
	Body           string `json:"body"`
	CoverRequestID string `json:"cover_request_id,omitempty"`
	ShiftID        string `json:"shift_id,omitempty"`
	IsRead         bool   `json:"is_read"`
	CreatedAt      string `json:"created_at"`
}

// NotificationListRequest 通知列表查询参数
type NotificationListRequest struct {
	PaginationRequest
	UnreadOnly bool `form:"unread_only"`
}
