package cli

import (
	"database/sql"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"weekly-planner/backend/config"
	"weekly-planner/backend/internal/repository"
	"weekly-planner/backend/internal/service"
	"weekly-planner/backend/pkg/database"
	applogger "weekly-planner/backend/pkg/logger"
)

// App 命令行共享的依赖，首次执行子命令时按配置初始化
type App struct {
	ConfigPath string

	cfg    *config.Config
	logger *zap.Logger
	db     *gorm.DB
	sqlDB  *sql.DB
	svc    *service.Service
	now    func() time.Time
	owned  bool
}

// open 加载配置并连接数据库；已注入依赖时跳过
func (a *App) open() error {
	if a.svc != nil {
		return nil
	}

	cfg, err := config.Load(a.ConfigPath)
	if err != nil {
		return err
	}
	logger, err := applogger.NewLogger(&cfg.Log)
	if err != nil {
		return fmt.Errorf("初始化日志失败: %w", err)
	}
	db, err := database.NewDB(&cfg.Database, applogger.GormLogLevel(cfg.Log.Level), logger)
	if err != nil {
		return err
	}
	if err := a.wire(cfg, db, logger); err != nil {
		return err
	}
	a.owned = true
	return nil
}

// wire 组装 Repository → Service
func (a *App) wire(cfg *config.Config, db *gorm.DB, logger *zap.Logger) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("获取底层 sql.DB 失败: %w", err)
	}
	a.cfg = cfg
	a.logger = logger
	a.db = db
	a.sqlDB = sqlDB
	a.svc = service.NewService(repository.NewRepository(db), logger, a.now)
	return nil
}

// migrate 除 migrate 子命令外，执行业务命令前确保 schema 为最新
func (a *App) migrate() error {
	return database.RunMigrations(a.sqlDB, a.cfg.Database.Driver, a.logger)
}

// close 仅关闭由 open 创建的连接
func (a *App) close() {
	if !a.owned {
		return
	}
	if a.sqlDB != nil {
		_ = a.sqlDB.Close()
	}
	if a.logger != nil {
		_ = a.logger.Sync()
	}
}
