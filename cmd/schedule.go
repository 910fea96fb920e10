package cmd

import (
	"context"
	"log/slog"

	"employee-datahub/service"
	"employee-datahub/service/cleanup"
	"employee-datahub/service/distributed_lock"
	"employee-datahub/service/scheduler"

	"github.com/spf13/cobra"
)

func newScheduleCmd(root *rootOptions) *cobra.Command {
	var (
		opts   cleanOptions
		spec   string
		runNow bool
	)

	cmd := &cobra.Command{
		Use:   "schedule",
		Short: "按Cron表达式定时执行数据清洗",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg := root.cfg
			policy, err := resolvePolicy(opts.policy, cfg)
			if err != nil {
				return err
			}

			app, err := service.NewApp(ctx, cfg)
			if err != nil {
				return err
			}
			defer app.Close()

			input := valueOr(opts.input, cfg.Cleaning.RawDataFile)
			output := valueOr(opts.output, cfg.Cleaning.CleanedDataFile)
			job := func(ctx context.Context) error {
				_, err := app.RunCleaning(ctx, input, output, policy)
				return err
			}

			// 多实例部署时同一时刻只有一个实例执行清洗
			if cfg.Cleaning.LockRedisAddr != "" {
				lock, err := distributed_lock.NewRedisLock(ctx, cfg.Cleaning.LockRedisAddr)
				if err != nil {
					return err
				}
				defer lock.Close()
				job = withLock(distributed_lock.NewLockExecutor(lock, cfg.Cleaning.LockTTL), output, job)
			}

			s := scheduler.NewSchedulerService()
			if _, err := s.AddJob("clean", valueOr(spec, cfg.Cleaning.Schedule), job); err != nil {
				return err
			}
			if store, err := app.RunStore(); err == nil && cfg.RunStore.RetentionDays > 0 {
				cleaner := cleanup.NewRunCleanupService(store, cfg.RunStore.RetentionDays)
				if _, err := s.AddJob("run_cleanup", valueOr(cfg.RunStore.CleanupSchedule, cleanup.DefaultSchedule), cleaner.Job()); err != nil {
					return err
				}
				slog.Info("已启用清洗运行记录清理", "retention_days", cfg.RunStore.RetentionDays)
			}
			if runNow {
				// 启动时的首次运行失败不阻止调度
				_ = job(ctx)
			}

			s.Start()
			<-ctx.Done()
			s.Stop()
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.input, "input", "", "原始数据文件 (默认读取RAW_DATA_FILE)")
	cmd.Flags().StringVar(&opts.output, "output", "", "清洗结果文件 (默认读取CLEANED_DATA_FILE)")
	cmd.Flags().StringVar(&opts.policy, "policy", "", "异常值处理策略 global_drop|per_department_replace")
	cmd.Flags().StringVar(&spec, "cron", "", "调度表达式 (默认读取CLEAN_SCHEDULE)")
	cmd.Flags().BoolVar(&runNow, "run-now", true, "启动时立即执行一次")
	return cmd
}

// withLock 在分布式锁保护下执行任务，锁以输出文件区分
func withLock(executor *distributed_lock.LockExecutor, output string, job scheduler.JobFunc) scheduler.JobFunc {
	key := "clean:" + output
	return func(ctx context.Context) error {
		return executor.ExecuteWithLock(ctx, key, job)
	}
}
