/**
 * @module SchedulerService
 * @description 清洗任务调度器，按Cron表达式定时执行数据清洗
 * @architecture 基于robfig/cron的调度器模式
 * @stateFlow 注册任务 -> Start -> 定时触发 -> Stop等待运行中的任务结束
 * @rules 上一次清洗未结束时跳过本次触发
 * @dependencies github.com/robfig/cron/v3
 * @refs service/app.go, cmd/schedule.go
 */

package scheduler

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/robfig/cron/v3"
)

// JobFunc 定时执行的任务
type JobFunc func(ctx context.Context) error

// SchedulerService 调度器服务
type SchedulerService struct {
	cron   *cron.Cron
	ctx    context.Context
	cancel context.CancelFunc
}

// NewSchedulerService 创建调度器服务
func NewSchedulerService() *SchedulerService {
	ctx, cancel := context.WithCancel(context.Background())

	// 支持可选秒字段和@every描述符
	parser := cron.NewParser(cron.SecondOptional | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor)
	c := cron.New(
		cron.WithParser(parser),
		cron.WithChain(cron.Recover(cron.DefaultLogger), cron.SkipIfStillRunning(cron.DefaultLogger)),
	)

	return &SchedulerService{
		cron:   c,
		ctx:    ctx,
		cancel: cancel,
	}
}

// AddJob 注册定时任务
func (s *SchedulerService) AddJob(name, spec string, job JobFunc) (cron.EntryID, error) {
	id, err := s.cron.AddFunc(spec, func() {
		slog.Info("开始执行定时任务", "job", name)
		if err := job(s.ctx); err != nil {
			slog.Error("定时任务执行失败", "job", name, "error", err)
			return
		}
		slog.Info("定时任务执行完成", "job", name)
	})
	if err != nil {
		return 0, fmt.Errorf("无效的调度表达式 %q: %w", spec, err)
	}
	return id, nil
}

// Entries 已注册的任务数量
func (s *SchedulerService) Entries() int {
	return len(s.cron.Entries())
}

// Start 启动调度器
func (s *SchedulerService) Start() {
	slog.Info("启动清洗任务调度器", "jobs", s.Entries())
	s.cron.Start()
}

// Stop 停止调度器并等待运行中的任务结束
func (s *SchedulerService) Stop() {
	s.cancel()
	<-s.cron.Stop().Done()
	slog.Info("清洗任务调度器已停止")
}
