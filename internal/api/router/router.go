package router

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"jr-escala/backend/config"
	"jr-escala/backend/internal/api/handler"
	"jr-escala/backend/internal/api/middleware"
	"jr-escala/backend/pkg/metrics"
)

// HealthChecker 健康检查依赖（数据库）
type HealthChecker interface {
	Ping(ctx context.Context) error
}

// Deps 路由需要的基础设施，字段均可为空
type Deps struct {
	Health   HealthChecker
	Limiter  middleware.RateLimiter
	Recorder metrics.Recorder
	Gatherer prometheus.Gatherer
}

// Setup 初始化并返回 Gin 路由引擎
func Setup(cfg *config.Config, h *handler.Handler, deps Deps, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	recorder := deps.Recorder
	if recorder == nil {
		recorder = metrics.NopRecorder{}
	}

	// ── 全局中间件 ──
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger, "/health", cfg.Metrics.Path))
	r.Use(middleware.Metrics(recorder))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))
	r.Use(middleware.BodyLimit(cfg.Server.MaxBodyBytes))

	// ── 健康检查 ──
	r.GET("/health", func(c *gin.Context) {
		if deps.Health != nil {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			defer cancel()
			if err := deps.Health.Ping(ctx); err != nil {
				logger.Warn("健康检查失败", zap.Error(err))
				c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// ── Prometheus ──
	if cfg.Metrics.Enabled && deps.Gatherer != nil {
		r.GET(cfg.Metrics.Path, gin.WrapH(promhttp.HandlerFor(deps.Gatherer, promhttp.HandlerOpts{})))
	}

	// 写接口限流；关闭或无 Redis 时直接放行
	write := func(c *gin.Context) { c.Next() }
	if cfg.RateLimit.Enabled && deps.Limiter != nil {
		write = middleware.RateLimit(deps.Limiter, cfg.RateLimit.Limit, cfg.RateLimit.Window)
	}

	// ── API v1 ──
	v1 := r.Group("/api/v1")
	{
		v1.GET("/availability", h.Availability.Check)

		// 人员模块
		collaborators := v1.Group("/collaborators")
		{
			collaborators.GET("", h.Collaborator.List)
			collaborators.GET("/available", h.Collaborator.ListAvailable)
			collaborators.GET("/:id", h.Collaborator.Get)
			collaborators.POST("", write, h.Collaborator.Create)
			collaborators.PUT("/:id", write, h.Collaborator.Update)
			collaborators.PUT("/:id/deactivate", write, h.Collaborator.Deactivate)
			collaborators.DELETE("/:id", write, h.Collaborator.Delete)
		}

		// 车辆模块
		trucks := v1.Group("/trucks")
		{
			trucks.GET("", h.Truck.List)
			trucks.GET("/available", h.Truck.ListAvailable)
			trucks.GET("/maintenance", h.Truck.InMaintenance)
			trucks.GET("/:id", h.Truck.Get)
			trucks.POST("", write, h.Truck.Create)
			trucks.PUT("/:id", write, h.Truck.Update)
			trucks.DELETE("/:id", write, h.Truck.Delete)
		}

		// 派车模块
		routes := v1.Group("/route-assignments")
		{
			routes.GET("", h.RouteAssignment.ListByDate)
			routes.GET("/:id", h.RouteAssignment.Get)
			routes.POST("", write, h.RouteAssignment.Create)
			routes.PUT("/:id", write, h.RouteAssignment.Update)
			routes.DELETE("/:id", write, h.RouteAssignment.Delete)
			routes.POST("/:id/duplicate", write, h.RouteAssignment.Duplicate)
			routes.GET("/:id/duration", h.RouteAssignment.GetDuration)
			routes.GET("/:id/adjustments", h.RouteAssignment.ListAdjustments)
			routes.POST("/:id/adjustments", write, h.RouteAssignment.RegisterAdjustment)
			routes.POST("/:id/release", write, h.RouteAssignment.Release)
		}

		// 周模板模块
		weekly := v1.Group("/weekly-routes")
		{
			weekly.GET("", h.WeeklyRoute.List)
			weekly.GET("/pending", h.WeeklyRoute.Pending)
			weekly.POST("", write, h.WeeklyRoute.Create)
			weekly.PUT("/:id", write, h.WeeklyRoute.Update)
			weekly.DELETE("/:id", write, h.WeeklyRoute.Delete)
			weekly.POST("/materialize", write, h.WeeklyRoute.Materialize)
		}
		v1.POST("/suppressed-routes", write, h.WeeklyRoute.Suppress)
		v1.DELETE("/suppressed-routes", write, h.WeeklyRoute.ClearSuppressed)

		// 假期模块
		vacations := v1.Group("/vacations")
		{
			vacations.GET("", h.Vacation.List)
			vacations.POST("", write, h.Vacation.Create)
			vacations.POST("/import", write, h.Vacation.ImportICS)
			vacations.PUT("/:id", write, h.Vacation.Update)
			vacations.DELETE("/:id", write, h.Vacation.Delete)
		}

		// 休息日模块
		daysOff := v1.Group("/days-off")
		{
			daysOff.GET("", h.DayOff.ListByDate)
			daysOff.POST("", write, h.DayOff.Create)
			daysOff.PUT("/:id", write, h.DayOff.Update)
			daysOff.DELETE("/:id", write, h.DayOff.Delete)
		}

		// 进厂模块
		workshop := v1.Group("/workshop-visits")
		{
			workshop.GET("", h.WorkshopVisit.ListByDate)
			workshop.POST("", write, h.WorkshopVisit.Create)
			workshop.PUT("/:id", write, h.WorkshopVisit.Update)
			workshop.DELETE("/:id", write, h.WorkshopVisit.Delete)
		}

		// CD 值班模块
		cdDuties := v1.Group("/cd-duties")
		{
			cdDuties.GET("", h.CDDuty.ListByDate)
			cdDuties.POST("", write, h.CDDuty.Create)
			cdDuties.PUT("/:id", write, h.CDDuty.Update)
			cdDuties.DELETE("/:id", write, h.CDDuty.Delete)
		}

		// 封锁台账模块
		blocking := v1.Group("/blocking-entries")
		{
			blocking.GET("", h.Blocking.List)
			blocking.POST("", write, h.Blocking.Create)
			blocking.POST("/purge-expired", write, h.Blocking.PurgeExpired)
			blocking.DELETE("/:id", write, h.Blocking.Delete)
		}

		v1.GET("/trip-log", h.TripLog.Query)
	}

	return r
}
