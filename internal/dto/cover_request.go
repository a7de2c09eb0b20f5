package dto

// ── 覆班申请模块 DTO ──

// SubmitCoverRequest 发起覆班申请（挂出班次）
type SubmitCoverRequest struct {
	ShiftID string `json:"shift_id" binding:"required,uuid"`
}

// DecideCoverRequest 经理审批请求
type DecideCoverRequest struct {
	Outcome string `json:"outcome" binding:"required,oneof=Accepted Denied"`
}

// CoverRequestListRequest 覆班申请列表查询参数
// status 可多选；date_sort 为 Newest（默认）或 Oldest
type CoverRequestListRequest struct {
	Status   []string `form:"status"    binding:"omitempty,dive,oneof=Pending 'Awaiting Approval' Accepted Denied"`
	RoleID   string   `form:"role_id"   binding:"omitempty,uuid"`
	DateSort string   `form:"date_sort" binding:"omitempty,oneof=Newest Oldest"`
}

// CoverRequestResponse 覆班申请响应（附关联信息，与 App 端列表展示对应）
type CoverRequestResponse struct {
	ID                  string `json:"cover_request_id"`
	ShiftID             string `json:"shift_id"`
	RequestedEmployeeID string `json:"requested_employee_id"`
	RequestedFirstName  string `json:"requested_first_name,omitempty"`
	RequestedLastName   string `json:"requested_last_name,omitempty"`
	AcceptedEmployeeID  string `json:"accepted_employee_id,omitempty"`
	AcceptedFirstName   string `json:"accepted_first_name,omitempty"`
	AcceptedLastName    string `json:"accepted_last_name,omitempty"`
	RequesterRoleID     string `json:"requester_role_id,omitempty"`
	RequesterRoleName   string `json:"requester_role_name,omitempty"`
	SectionID           string `json:"section_id,omitempty"`
	SectionName         string `json:"section_name,omitempty"`
	ShiftDate           string `json:"shift_date,omitempty"`
	ShiftStart          string `json:"shift_start,omitempty"`
	Status              string `json:"status"`
	SubmittedAt         string `json:"submitted_at"`
	DecidedAt           string `json:"decided_at,omitempty"`
}

// [自证通过] internal/dto/cover_request.go
