/*
 * @module service/database/migrate
 * @description 数据库连接与迁移模块，负责打开运行记录库并创建表结构
 * @architecture 数据访问层 - 迁移管理
 * @stateFlow 启用运行记录存储时打开连接 -> 自动迁移
 * @rules 确保数据库结构与模型定义保持一致
 * @dependencies employee-datahub/service/models, gorm.io/gorm, gorm.io/driver/postgres, gorm.io/driver/sqlite
 * @refs service/run_store
 */

package database

import (
	"fmt"
	"log/slog"

	"employee-datahub/service/config"
	"employee-datahub/service/models"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Open 按配置打开数据库连接
func Open(cfg config.RunStoreConfig) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.Driver {
	case "sqlite":
		dialector = sqlite.Open(cfg.DSN)
	case "postgres":
		dialector = postgres.Open(cfg.DSN)
	default:
		return nil, fmt.Errorf("不支持的数据库驱动: %q", cfg.Driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("数据库连接失败: %w", err)
	}
	slog.Info("数据库连接成功", "driver", cfg.Driver)
	return db, nil
}

// AutoMigrate 自动迁移数据库表结构
func AutoMigrate(db *gorm.DB) error {
	slog.Info("开始数据库迁移...")
	if err := db.AutoMigrate(&models.CleaningRun{}); err != nil {
		return fmt.Errorf("数据库迁移失败: %w", err)
	}
	slog.Info("数据库表结构迁移完成")
	return nil
}
