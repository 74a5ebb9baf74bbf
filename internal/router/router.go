// File: internal/router/router.go
package router

import (
	"github.com/labstack/echo/v4"

	"civic-reports/internal/cache"
	"civic-reports/internal/database"
	"civic-reports/internal/handler"
	"civic-reports/internal/handler/admin"
	"civic-reports/internal/handler/auth"
	"civic-reports/internal/handler/reports"
	"civic-reports/internal/middleware"
	"civic-reports/internal/service"
)

// Setup 註冊所有路由與中介層
func Setup(e *echo.Echo, db database.DB, rdb cache.Cache, ident *service.Identity, accounts *service.Accounts, reportSvc *service.ReportService) {
	requireAuth := middleware.RequireAuth(ident)
	requireAdmin := middleware.RequireAdmin(ident)

	api := e.Group("/api")

	// 健康檢查
	api.GET("/ping", handler.PingHandler(db, rdb))

	// 註冊與登入
	apiAuth := api.Group("/auth")
	apiAuth.POST("/register", auth.RegisterHandler(accounts))
	apiAuth.POST("/login", auth.LoginHandler(accounts))
	apiAuth.GET("/me", auth.MeHandler(), requireAuth)
	apiAuth.GET("/admin/data", auth.AdminDataHandler(), requireAdmin)

	// 通報
	apiReports := api.Group("/reports")
	apiReports.GET("", reports.ListHandler())
	apiReports.POST("", reports.CreateHandler(reportSvc), requireAuth)
	apiReports.GET("/mine", reports.MineHandler(reportSvc), requireAuth)

	// 管理員專屬檢視與操作
	apiAdmin := apiReports.Group("/admin", requireAdmin)
	apiAdmin.GET("/all", admin.AllHandler(reportSvc))
	apiAdmin.GET("/filter", admin.FilterHandler(reportSvc))
	apiAdmin.GET("/map", admin.MapHandler(reportSvc))
	apiAdmin.GET("/stats", admin.StatsHandler(reportSvc))
	apiAdmin.PATCH("/:id/status", admin.StatusHandler(reportSvc))

	// 明細為公開端點，刪除限擁有者或管理員
	apiReports.GET("/:id", reports.DetailHandler(reportSvc))
	apiReports.DELETE("/:id", reports.DeleteHandler(reportSvc), requireAuth)
}
