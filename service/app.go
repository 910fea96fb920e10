/*
 * @module service/app
 * @description 应用装配模块，负责按配置创建运行记录存储、事件通知器和指标，并执行清洗运行
 * @architecture 分层架构 - 服务层
 * @stateFlow 加载配置 -> NewApp装配依赖 -> RunCleaning/LoadAnalyzer -> Close释放资源
 * @rules 依赖显式注入，不使用全局变量；运行记录和通知失败只记录日志，不影响已写出的清洗结果
 * @dependencies employee-datahub/service/..., employee-datahub/client/connectors, github.com/prometheus/client_golang
 * @refs cmd/, api/routes.go
 */

package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"employee-datahub/client/connectors"
	"employee-datahub/service/analyzer"
	"employee-datahub/service/config"
	"employee-datahub/service/data_quality"
	"employee-datahub/service/database"
	"employee-datahub/service/dataset"
	"employee-datahub/service/models"
	"employee-datahub/service/monitoring"
	"employee-datahub/service/notification"
	"employee-datahub/service/run_store"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"gorm.io/gorm"
)

// ErrStoreDisabled 未配置运行记录存储
var ErrStoreDisabled = errors.New("未启用清洗运行记录存储")

// App 应用依赖集合
type App struct {
	Config   *config.Config
	Metrics  *monitoring.Registry
	Notifier *notification.Notifier

	store      *run_store.RunStore
	db         *gorm.DB
	registerer prometheus.Registerer
}

// Option App构造选项
type Option func(*App)

// WithRunStore 使用给定的运行记录存储，不再按配置打开数据库
func WithRunStore(store *run_store.RunStore) Option {
	return func(a *App) {
		a.store = store
	}
}

// WithPublishers 追加事件发布通道
func WithPublishers(publishers ...notification.Publisher) Option {
	return func(a *App) {
		for _, p := range publishers {
			a.Notifier.Add(p)
		}
	}
}

// WithRegisterer 指定指标注册器，默认使用独立的注册器
func WithRegisterer(reg prometheus.Registerer) Option {
	return func(a *App) {
		a.registerer = reg
	}
}

// NewApp 按配置装配应用依赖
func NewApp(ctx context.Context, cfg *config.Config, opts ...Option) (*App, error) {
	app := &App{
		Config:     cfg,
		Notifier:   notification.NewNotifier(),
		registerer: prometheus.NewRegistry(),
	}
	for _, opt := range opts {
		opt(app)
	}
	app.Metrics = monitoring.NewRegistry(app.registerer)

	if app.store == nil && cfg.RunStore.Driver != "" {
		db, err := database.Open(cfg.RunStore)
		if err != nil {
			return nil, err
		}
		if err := database.AutoMigrate(db); err != nil {
			return nil, err
		}
		app.db = db
		app.store = run_store.NewRunStore(db)
	}

	app.initPublishers(ctx)
	return app, nil
}

// initPublishers 按配置创建消息通道，连接失败的通道跳过
func (a *App) initPublishers(ctx context.Context) {
	nc := a.Config.Notification

	if len(nc.KafkaBrokers) > 0 {
		kc, err := connectors.NewKafkaConnector(&connectors.KafkaConfig{
			Brokers: nc.KafkaBrokers,
			Topic:   nc.KafkaTopic,
		})
		if err != nil {
			slog.Warn("Kafka通知通道初始化失败", "error", err)
		} else {
			a.Notifier.Add(kc)
		}
	}

	if nc.MQTTBroker != "" {
		mc := connectors.NewMQTTConnector(&connectors.MQTTConfig{
			Broker:   nc.MQTTBroker,
			ClientID: nc.MQTTClientID,
			Topic:    nc.MQTTTopic,
			QoS:      1,
		})
		if err := mc.Connect(); err != nil {
			slog.Warn("MQTT通知通道初始化失败", "error", err)
		} else {
			a.Notifier.Add(mc)
		}
	}

	if nc.RedisAddr != "" {
		rc := connectors.NewRedisConnector(&connectors.RedisConfig{
			Address: nc.RedisAddr,
			Channel: nc.RedisChannel,
		})
		if err := rc.Connect(ctx); err != nil {
			slog.Warn("Redis通知通道初始化失败", "error", err)
			rc.Close()
		} else {
			a.Notifier.Add(rc)
		}
	}

	if nc.DaprPubSub != "" {
		dc, err := connectors.NewDaprConnector(nc.DaprPubSub, nc.DaprTopic)
		if err != nil {
			slog.Warn("Dapr通知通道初始化失败", "error", err)
		} else {
			a.Notifier.Add(dc)
		}
	}

	if a.Notifier.Len() > 0 {
		slog.Info("清洗运行事件通知已启用", "publishers", a.Notifier.Len())
	}
}

// RunStore 返回运行记录存储，未启用时返回ErrStoreDisabled
func (a *App) RunStore() (*run_store.RunStore, error) {
	if a.store == nil {
		return nil, ErrStoreDisabled
	}
	return a.store, nil
}

// RunConfiguredCleaning 使用配置中的输入输出文件和策略执行一次清洗
func (a *App) RunConfiguredCleaning(ctx context.Context) (*models.CleaningReport, error) {
	return a.RunCleaning(ctx, a.Config.Cleaning.RawDataFile, a.Config.Cleaning.CleanedDataFile, a.Config.Policy())
}

// RunCleaning 读取输入文件，清洗后写出，再记录指标、保存运行记录并发布事件
func (a *App) RunCleaning(ctx context.Context, input, output string, policy models.OutlierPolicy) (*models.CleaningReport, error) {
	startedAt := time.Now()
	report, err := a.clean(ctx, input, output, policy)
	if err != nil {
		slog.Error("数据清洗失败", "input", input, "error", err)
	}

	a.Metrics.ObserveRun(policy, report, err)

	run := models.NewCleaningRun(input, output, report, err)
	if run.ID == "" {
		run.ID = uuid.New().String()
	}
	if run.Policy == "" {
		run.Policy = string(policy)
	}
	// 清洗开始前就失败时没有报告
	if run.StartedAt.IsZero() {
		run.StartedAt = startedAt
		run.Duration = time.Since(startedAt).Milliseconds()
	}
	a.record(ctx, run)

	return report, err
}

func (a *App) clean(ctx context.Context, input, output string, policy models.OutlierPolicy) (*models.CleaningReport, error) {
	table, err := dataset.ReadFile(ctx, input)
	if err != nil {
		return nil, err
	}

	report, err := data_quality.NewCleanser(policy).Clean(table)
	if err != nil {
		return nil, err
	}

	if err := dataset.WriteFile(ctx, output, table); err != nil {
		return report, err
	}
	slog.Info("清洗结果已写出", "run_id", report.RunID, "output", output, "rows", table.Len())
	return report, nil
}

// record 保存运行记录并发布事件，失败只记录日志
func (a *App) record(ctx context.Context, run *models.CleaningRun) {
	if a.store != nil {
		if err := a.store.Save(ctx, run); err != nil {
			slog.Error("保存清洗运行记录失败", "run_id", run.ID, "error", err)
		}
	}
	if a.Notifier.Len() > 0 {
		// 各通道错误已在Notify中逐个记录
		_ = a.Notifier.Notify(ctx, models.NewRunEvent(run))
	}
}

// LoadAnalyzer 加载清洗后的数据文件并更新已加载员工数指标
func (a *App) LoadAnalyzer(ctx context.Context, path string) (*analyzer.EmployeeAnalyzer, error) {
	an, err := analyzer.LoadEmployeeAnalyzer(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("加载清洗后数据失败: %w", err)
	}
	a.Metrics.LoadedEmployees.Set(float64(an.Len()))
	slog.Info("清洗后数据已加载", "file", path, "employees", an.Len())
	return an, nil
}

// Close 释放数据库连接和消息通道
func (a *App) Close() error {
	var errs []error
	if err := a.Notifier.Close(); err != nil {
		errs = append(errs, err)
	}
	if a.db != nil {
		if sqlDB, err := a.db.DB(); err == nil {
			if err := sqlDB.Close(); err != nil {
				errs = append(errs, fmt.Errorf("关闭数据库连接失败: %w", err))
			}
		}
	}
	return errors.Join(errs...)
}
