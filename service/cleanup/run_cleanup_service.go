/*
 * @module service/cleanup/run_cleanup_service
 * @description 运行记录清理服务，定期删除超过保留天数的清洗运行记录
 * @architecture 分层架构 - 业务服务层
 * @stateFlow 定时触发 -> 计算截止时间 -> 删除过期记录 -> 记录结果
 * @rules 保留天数小于等于0时不清理
 * @dependencies employee-datahub/service/run_store
 * @refs cmd/schedule.go
 */

package cleanup

import (
	"context"
	"log/slog"
	"time"

	"employee-datahub/service/run_store"
)

// DefaultSchedule 每天凌晨2点执行清理（秒 分 时 日 月 周）
const DefaultSchedule = "0 0 2 * * *"

// RunCleanupService 运行记录清理服务
type RunCleanupService struct {
	store         *run_store.RunStore
	retentionDays int
	now           func() time.Time
}

// NewRunCleanupService 创建运行记录清理服务实例
func NewRunCleanupService(store *run_store.RunStore, retentionDays int) *RunCleanupService {
	return &RunCleanupService{
		store:         store,
		retentionDays: retentionDays,
		now:           time.Now,
	}
}

// CleanupExpiredRuns 删除过期的运行记录，返回删除条数
func (s *RunCleanupService) CleanupExpiredRuns(ctx context.Context) (int64, error) {
	if s.retentionDays <= 0 {
		return 0, nil
	}

	startTime := s.now()
	cutoff := startTime.AddDate(0, 0, -s.retentionDays)
	slog.Debug("清理清洗运行记录", "cutoff_date", cutoff.Format("2006-01-02 15:04:05"), "retention_days", s.retentionDays)

	deleted, err := s.store.DeleteBefore(ctx, cutoff)
	if err != nil {
		return 0, err
	}

	slog.Info("清洗运行记录清理完成",
		"deleted_count", deleted,
		"retention_days", s.retentionDays,
		"duration_ms", time.Since(startTime).Milliseconds())
	return deleted, nil
}

// Job 返回可注册到调度器的清理任务
func (s *RunCleanupService) Job() func(ctx context.Context) error {
	return func(ctx context.Context) error {
		_, err := s.CleanupExpiredRuns(ctx)
		return err
	}
}
