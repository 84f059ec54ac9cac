package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"weekly-planner/backend/config"
	"weekly-planner/backend/internal/api/handler"
	"weekly-planner/backend/internal/api/middleware"
	"weekly-planner/backend/pkg/metrics"
	"weekly-planner/backend/pkg/redis"
)

// Setup 初始化并返回 Gin 路由引擎
// rdb 为 nil 时限流使用进程内令牌桶
func Setup(cfg *config.Config, h *handler.Handler, rdb *redis.Client, logger *zap.Logger) *gin.Engine {
	if cfg.Server.IsDevelopment() {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// ── 全局中间件 ──
	r.Use(middleware.Recovery(logger, cfg.Server.IsDevelopment()))
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	if cfg.Metrics.Enabled {
		r.Use(middleware.Metrics())
	}
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.BodyLimit(cfg.Server.BodyLimitBytes))
	if cfg.RateLimit.Enabled {
		r.Use(middleware.RateLimit(rdb, cfg.RateLimit.Requests, cfg.RateLimit.Window, logger))
	}

	// ── Prometheus ──
	if cfg.Metrics.Enabled {
		r.GET(cfg.Metrics.Path, gin.WrapH(metrics.Handler()))
	}

	api := r.Group("/api")
	Register(api, h)

	return r
}

// Register 注册 /api 下的业务路由
func Register(api *gin.RouterGroup, h *handler.Handler) {
	api.GET("/health", h.Health.Health)

	// 部门
	sectors := api.Group("/setores")
	{
		sectors.GET("", h.Sector.ListSectors)
		sectors.GET("/:id", h.Sector.GetSector)
		sectors.POST("", h.Sector.CreateSector)
		sectors.PUT("/:id", h.Sector.UpdateSector)
		sectors.DELETE("/:id", h.Sector.DeleteSector)
	}

	// 人员
	people := api.Group("/pessoas")
	{
		people.GET("", h.Person.ListPeople)
		people.GET("/:id", h.Person.GetPerson)
		people.POST("", h.Person.CreatePerson)
		people.PUT("/:id", h.Person.UpdatePerson)
		people.PATCH("/:id/ativo", h.Person.TogglePersonActive)
		people.DELETE("/:id", h.Person.DeletePerson)
	}

	// 条目目录
	items := api.Group("/itens")
	{
		items.GET("", h.Item.ListItems)
		items.GET("/:id", h.Item.GetItem)
		items.POST("", h.Item.CreateItem)
		items.PUT("/:id", h.Item.UpdateItem)
		items.PATCH("/:id/ativo", h.Item.ToggleItemActive)
		items.DELETE("/:id", h.Item.DeleteItem)
	}

	// 计划周
	weeks := api.Group("/semanas")
	{
		weeks.GET("", h.Week.ListWeeks)
		weeks.GET("/atual", h.Week.CurrentWeek)
		weeks.POST("", h.Week.CreateWeek)
		weeks.GET("/:id", h.Week.GetWeek)
		weeks.GET("/:id/anterior", h.Week.PreviousWeek)
		weeks.GET("/:id/proxima", h.Week.NextWeek)
		weeks.PATCH("/:id/fechar", h.Week.CloseWeek)
		weeks.PATCH("/:id/reabrir", h.Week.ReopenWeek)

		weeks.GET("/:id/planejamento", h.Planning.GetPlanning)
		weeks.POST("/:id/copiar-de/:origemId", h.Planning.CopyWeek)
		weeks.GET("/:id/exportar", h.Planning.ExportWeek)
		weeks.GET("/:id/calendario", h.Planning.WeekCalendar)

		weeks.GET("/:id/alocacoes", h.Allocation.ListAllocations)
		weeks.POST("/:id/alocacoes", h.Allocation.CreateAllocation)
		weeks.POST("/:id/alocacoes/bulk", h.Allocation.BulkReplace)

		weeks.GET("/:id/observacoes", h.Observation.ListObservations)
		weeks.GET("/:id/pessoas/:pessoaId/observacao", h.Observation.GetObservation)
		weeks.PUT("/:id/pessoas/:pessoaId/observacao", h.Observation.UpsertObservation)
	}

	// 分配（按实体寻址，周锁在 service 层校验）
	allocations := api.Group("/alocacoes")
	{
		allocations.PATCH("/:id/status", h.Allocation.UpdateStatus)
		allocations.PATCH("/:id/comentario", h.Allocation.UpdateComment)
		allocations.PATCH("/:id/mover", h.Allocation.MoveAllocation)
		allocations.PATCH("/:id/ordem", h.Allocation.UpdateOrder)
		allocations.DELETE("/:id", h.Allocation.DeleteAllocation)
	}

	// 统计
	api.GET("/estatisticas/semana/:semanaId", h.Stats.GetWeekStats)
}
