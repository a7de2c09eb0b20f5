package dto

// ── 班次模块 DTO ──

// CreateShiftRequest 创建班次请求（经理）
type CreateShiftRequest struct {
	EmployeeID string `json:"employee_id" binding:"required,uuid"`
	SectionID  string `json:"section_id"  binding:"omitempty,uuid"`
	ShiftDate  string `json:"shift_date"  binding:"required,datetime=2006-01-02"`
	StartTime  string `json:"start_time"  binding:"required"`
	EndTime    string `json:"end_time"    binding:"required"`
}

// ShiftListRequest 班次列表查询参数
type ShiftListRequest struct {
	EmployeeID string `form:"employee_id" binding:"omitempty,uuid"`
	From       string `form:"from"        binding:"omitempty,datetime=2006-01-02"`
	To         string `form:"to"          binding:"omitempty,datetime=2006-01-02"`
}

// ShiftResponse 班次信息响应
type ShiftResponse struct {
	ID           string `json:"id"`
	EmployeeID   string `json:"employee_id"`
	EmployeeName string `json:"employee_name,omitempty"`
	SectionID    string `json:"section_id,omitempty"`
	SectionName  string `json:"section_name,omitempty"`
	ShiftDate    string `json:"shift_date"`
	StartTime    string `json:"start_time"`
	EndTime      string `json:"end_time"`
}

// [自证通过] internal/dto/shift.go
