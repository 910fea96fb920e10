/*
 * @module service/run_store/run_store
 * @description 清洗运行记录存储，保存和查询每次清洗的统计结果
 * @architecture 分层架构 - 数据访问层
 * @stateFlow 清洗结束 -> 保存运行记录；HTTP查询 -> 按开始时间倒序列出
 * @rules 存储失败不影响已完成的清洗
 * @dependencies gorm.io/gorm
 * @refs service/models/cleaning.go, api/controllers/cleaning_run_controller.go
 */

package run_store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"employee-datahub/service/models"

	"gorm.io/gorm"
)

// 默认和最大查询条数
const (
	DefaultListLimit = 20
	MaxListLimit     = 200
)

// ErrRunNotFound 运行记录不存在
var ErrRunNotFound = errors.New("清洗运行记录不存在")

// RunStore 清洗运行记录存储
type RunStore struct {
	db *gorm.DB
}

// NewRunStore 创建运行记录存储实例
func NewRunStore(db *gorm.DB) *RunStore {
	return &RunStore{db: db}
}

// Save 保存运行记录
func (s *RunStore) Save(ctx context.Context, run *models.CleaningRun) error {
	if err := s.db.WithContext(ctx).Create(run).Error; err != nil {
		return fmt.Errorf("保存清洗运行记录失败: %w", err)
	}
	return nil
}

// List 按开始时间倒序列出运行记录，limit超出范围时取默认值或上限
func (s *RunStore) List(ctx context.Context, limit int) ([]models.CleaningRun, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}
	if limit > MaxListLimit {
		limit = MaxListLimit
	}

	var runs []models.CleaningRun
	err := s.db.WithContext(ctx).
		Order("started_at DESC").
		Limit(limit).
		Find(&runs).Error
	if err != nil {
		return nil, fmt.Errorf("查询清洗运行记录失败: %w", err)
	}
	return runs, nil
}

// Get 按ID获取运行记录
func (s *RunStore) Get(ctx context.Context, id string) (*models.CleaningRun, error) {
	var run models.CleaningRun
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&run).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrRunNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("获取清洗运行记录失败: %w", err)
	}
	return &run, nil
}

// DeleteBefore 删除开始时间早于cutoff的运行记录，返回删除条数
func (s *RunStore) DeleteBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	result := s.db.WithContext(ctx).Where("started_at < ?", cutoff).Delete(&models.CleaningRun{})
	if result.Error != nil {
		return 0, fmt.Errorf("删除过期清洗运行记录失败: %w", result.Error)
	}
	return result.RowsAffected, nil
}
