package database

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	migratedb "github.com/golang-migrate/migrate/v4/database"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"go.uber.org/zap"

	"weekly-planner/backend/config"
)

//go:embed migrations/sqlite/*.sql migrations/postgres/*.sql
var migrationsFS embed.FS

// newMigrator 基于已打开的连接构造迁移实例
// 不调用 m.Close()：它会关闭调用方持有的 *sql.DB
func newMigrator(db *sql.DB, driverName string) (*migrate.Migrate, error) {
	var (
		driver migratedb.Driver
		dir    string
		err    error
	)
	switch driverName {
	case config.DriverSQLite:
		dir = "migrations/sqlite"
		driver, err = sqlite3.WithInstance(db, &sqlite3.Config{})
	case config.DriverPostgres:
		dir = "migrations/postgres"
		driver, err = postgres.WithInstance(db, &postgres.Config{})
	default:
		return nil, fmt.Errorf("不支持的迁移驱动: %s", driverName)
	}
	if err != nil {
		return nil, fmt.Errorf("创建迁移驱动失败: %w", err)
	}

	source, err := iofs.New(migrationsFS, dir)
	if err != nil {
		return nil, fmt.Errorf("加载迁移文件失败: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", source, driverName, driver)
	if err != nil {
		return nil, fmt.Errorf("初始化迁移实例失败: %w", err)
	}
	return m, nil
}

// RunMigrations 执行数据库迁移
// 自动检测当前版本并应用所有未执行的迁移，重复执行无副作用
func RunMigrations(db *sql.DB, driverName string, logger *zap.Logger) error {
	m, err := newMigrator(db, driverName)
	if err != nil {
		return err
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("执行迁移失败: %w", err)
	}

	version, dirty, _ := m.Version()
	if dirty {
		logger.Warn("数据库迁移处于 dirty 状态", zap.Uint("version", version))
	} else {
		logger.Info("数据库迁移完成", zap.Uint("version", version))
	}

	return nil
}

// RollbackMigration 回滚最近一个版本
func RollbackMigration(db *sql.DB, driverName string, logger *zap.Logger) error {
	m, err := newMigrator(db, driverName)
	if err != nil {
		return err
	}
	if err := m.Steps(-1); err != nil {
		if errors.Is(err, migrate.ErrNilVersion) || errors.Is(err, migrate.ErrNoChange) {
			logger.Info("没有可回滚的迁移")
			return nil
		}
		return fmt.Errorf("回滚迁移失败: %w", err)
	}
	version, _, _ := m.Version()
	logger.Info("迁移回滚完成", zap.Uint("version", version))
	return nil
}

// MigrationVersion 返回当前迁移版本
func MigrationVersion(db *sql.DB, driverName string) (uint, bool, error) {
	m, err := newMigrator(db, driverName)
	if err != nil {
		return 0, false, err
	}
	version, dirty, err := m.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		return 0, false, nil
	}
	return version, dirty, err
}
