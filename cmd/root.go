/*
 * @module cmd/root
 * @description 命令行入口，加载配置和日志后分发到clean、analyze、serve、schedule子命令
 * @architecture 命令模式 - cobra命令树
 * @stateFlow 解析参数 -> 加载配置 -> 初始化日志 -> 执行子命令
 * @rules 命令行参数优先于环境变量和配置文件
 * @dependencies github.com/spf13/cobra
 * @refs service/config/config.go, service/app.go
 */

package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"employee-datahub/logger"
	"employee-datahub/service/config"
	"employee-datahub/service/models"

	"github.com/spf13/cobra"
)

type rootOptions struct {
	logLevel string
	cfg      *config.Config
}

// NewRootCmd 创建根命令
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:           "employee-datahub",
		Short:         "员工数据清洗与查询服务",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if opts.logLevel != "" {
				cfg.Log.Level = opts.logLevel
			}
			logger.InitLogger(cfg.Log.Level)
			opts.cfg = cfg
			return nil
		},
	}
	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "日志级别 debug|info|warn|error (默认读取LOG_LEVEL)")

	cmd.AddCommand(
		newCleanCmd(opts),
		newAnalyzeCmd(opts),
		newServeCmd(opts),
		newScheduleCmd(opts),
	)
	return cmd
}

// Execute 执行根命令，收到SIGINT/SIGTERM时取消上下文
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := NewRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		stop()
		os.Exit(1)
	}
}

// resolvePolicy 命令行策略为空时使用配置中的策略
func resolvePolicy(flag string, cfg *config.Config) (models.OutlierPolicy, error) {
	if flag == "" {
		return cfg.Policy(), nil
	}
	return models.ParseOutlierPolicy(flag)
}

func valueOr(flag, fallback string) string {
	if flag != "" {
		return flag
	}
	return fallback
}
