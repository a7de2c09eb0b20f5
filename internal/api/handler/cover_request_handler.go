package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/1less1/thebrownbottle-sub000/internal/dto"
	"github.com/1less1/thebrownbottle-sub000/internal/model"
	"github.com/1less1/thebrownbottle-sub000/internal/service"
	"github.com/1less1/thebrownbottle-sub000/pkg/response"
)

// CoverRequestHandler 覆班申请模块 HTTP 处理器
type CoverRequestHandler struct {
	coverSvc service.CoverRequestService
}

// NewCoverRequestHandler 创建 CoverRequestHandler
func NewCoverRequestHandler(coverSvc service.CoverRequestService) *CoverRequestHandler {
	return &CoverRequestHandler{coverSvc: coverSvc}
}

// SubmitOffer 挂出班次
// POST /api/v1/cover-requests
func (h *CoverRequestHandler) SubmitOffer(c *gin.Context) {
	var req dto.SubmitCoverRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	employeeID, ok := MustGetEmployeeID(c)
	if !ok {
		return
	}

	result, err := h.coverSvc.SubmitOffer(c.Request.Context(), employeeID, req.ShiftID)
	if err != nil {
		h.handleCoverError(c, err)
		return
	}
	response.Created(c, result)
}

// ClaimShift 认领班次
// POST /api/v1/cover-requests/:id/claim
func (h *CoverRequestHandler) ClaimShift(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "申请ID不能为空")
		return
	}

	employeeID, ok := MustGetEmployeeID(c)
	if !ok {
		return
	}

	result, err := h.coverSvc.ClaimShift(c.Request.Context(), id, employeeID)
	if err != nil {
		h.handleCoverError(c, err)
		return
	}
	response.OK(c, result)
}

// WithdrawClaim 撤回认领
// POST /api/v1/cover-requests/:id/withdraw
func (h *CoverRequestHandler) WithdrawClaim(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "申请ID不能为空")
		return
	}

	employeeID, ok := MustGetEmployeeID(c)
	if !ok {
		return
	}

	result, err := h.coverSvc.WithdrawClaim(c.Request.Context(), id, employeeID)
	if err != nil {
		h.handleCoverError(c, err)
		return
	}
	response.OK(c, result)
}

// Decide 经理审批
// POST /api/v1/cover-requests/:id/decide
func (h *CoverRequestHandler) Decide(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "申请ID不能为空")
		return
	}

	var req dto.DecideCoverRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	employeeID, ok := MustGetEmployeeID(c)
	if !ok {
		return
	}

	result, err := h.coverSvc.Decide(c.Request.Context(), id, employeeID,
		GetIsAdmin(c), model.CoverStatus(req.Outcome))
	if err != nil {
		h.handleCoverError(c, err)
		return
	}
	response.OK(c, result)
}

// RetractOffer 撤销挂单
// DELETE /api/v1/cover-requests/:id
func (h *CoverRequestHandler) RetractOffer(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "申请ID不能为空")
		return
	}

	employeeID, ok := MustGetEmployeeID(c)
	if !ok {
		return
	}

	if err := h.coverSvc.RetractOffer(c.Request.Context(), id, employeeID); err != nil {
		h.handleCoverError(c, err)
		return
	}
	response.OK(c, nil)
}

// ListAvailable 可认领列表
// GET /api/v1/cover-requests/available
func (h *CoverRequestHandler) ListAvailable(c *gin.Context) {
	h.listView(c, func(employeeID string, req *dto.CoverRequestListRequest) ([]dto.CoverRequestResponse, error) {
		return h.coverSvc.ListAvailable(c.Request.Context(), employeeID, req)
	})
}

// ListMyRequests 我挂出的班次
// GET /api/v1/cover-requests/mine
func (h *CoverRequestHandler) ListMyRequests(c *gin.Context) {
	h.listView(c, func(employeeID string, req *dto.CoverRequestListRequest) ([]dto.CoverRequestResponse, error) {
		return h.coverSvc.ListMyRequests(c.Request.Context(), employeeID, req)
	})
}

// ListMyClaims 我认领的班次
// GET /api/v1/cover-requests/claims
func (h *CoverRequestHandler) ListMyClaims(c *gin.Context) {
	h.listView(c, func(employeeID string, req *dto.CoverRequestListRequest) ([]dto.CoverRequestResponse, error) {
		return h.coverSvc.ListMyClaims(c.Request.Context(), employeeID, req)
	})
}

// ListNeedsApproval 审批列表（经理）
// GET /api/v1/cover-requests/approvals
func (h *CoverRequestHandler) ListNeedsApproval(c *gin.Context) {
	var req dto.CoverRequestListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	list, err := h.coverSvc.ListNeedsApproval(c.Request.Context(), &req)
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, gin.H{"list": list})
}

func (h *CoverRequestHandler) listView(c *gin.Context, fn func(string, *dto.CoverRequestListRequest) ([]dto.CoverRequestResponse, error)) {
	employeeID, ok := MustGetEmployeeID(c)
	if !ok {
		return
	}

	var req dto.CoverRequestListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	list, err := fn(employeeID, &req)
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, gin.H{"list": list})
}

func (h *CoverRequestHandler) handleCoverError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrCoverRequestNotFound):
		response.NotFound(c, 14001, "覆班申请不存在")
	case errors.Is(err, service.ErrShiftNotFound):
		response.NotFound(c, 13001, "班次不存在")
	case errors.Is(err, service.ErrDuplicateRequest):
		response.Conflict(c, 14002, "该班次已存在未完结的覆班申请")
	case errors.Is(err, service.ErrInvalidTransition):
		response.UnprocessableEntity(c, 14003, "当前状态不允许该操作")
	case errors.Is(err, service.ErrSelfClaim):
		response.UnprocessableEntity(c, 14004, "不能认领自己挂出的班次")
	case errors.Is(err, service.ErrNotShiftOwner):
		response.Forbidden(c, 14005, "只能挂出分配给自己的班次")
	case errors.Is(err, service.ErrManagerOnly):
		response.Forbidden(c, 10003, "该操作需要经理权限")
	case errors.Is(err, service.ErrNoPermission):
		response.Forbidden(c, 10003, "无权限访问")
	default:
		response.InternalError(c)
	}
}

// [自证通过] internal/api/handler/cover_request_handler.go
