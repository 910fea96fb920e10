/*
 * @module service/config/config
 * @description 应用配置，负责默认值、YAML配置文件和环境变量覆盖
 * @architecture 分层架构 - 配置层
 * @stateFlow 默认值 -> 配置文件(CONFIG_FILE) -> 环境变量覆盖 -> 命令行参数覆盖
 * @rules 未配置的可选组件(运行记录库、消息通知)保持禁用
 * @dependencies github.com/spf13/cast, gopkg.in/yaml.v3
 * @refs cmd/, service/app.go
 */

package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"employee-datahub/service/models"

	"github.com/spf13/cast"
	"gopkg.in/yaml.v3"
)

// Config 应用配置
type Config struct {
	Server       ServerConfig       `yaml:"server"`
	Log          LogConfig          `yaml:"log"`
	Cleaning     CleaningConfig     `yaml:"cleaning"`
	RunStore     RunStoreConfig     `yaml:"run_store"`
	Notification NotificationConfig `yaml:"notification"`
}

// ServerConfig HTTP服务配置
type ServerConfig struct {
	Port               int    `yaml:"port"`
	BaseContext        string `yaml:"base_context"`
	RateLimitRedisAddr string `yaml:"rate_limit_redis_addr"` // 空表示不限流
	RateLimitPerMinute int    `yaml:"rate_limit_per_minute"`
}

// LogConfig 日志配置
type LogConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
}

// CleaningConfig 清洗配置
type CleaningConfig struct {
	RawDataFile     string `yaml:"raw_data_file"`
	CleanedDataFile string `yaml:"cleaned_data_file"`
	OutlierPolicy   string `yaml:"outlier_policy"` // global_drop, per_department_replace
	Schedule        string `yaml:"schedule"`       // cron表达式

	LockRedisAddr string        `yaml:"lock_redis_addr"` // 空表示不加分布式锁
	LockTTL       time.Duration `yaml:"lock_ttl"`
}

// RunStoreConfig 清洗运行记录存储配置
type RunStoreConfig struct {
	Driver string `yaml:"driver"` // 空表示禁用, sqlite, postgres
	DSN    string `yaml:"dsn"`

	RetentionDays   int    `yaml:"retention_days"` // 小于等于0表示不清理
	CleanupSchedule string `yaml:"cleanup_schedule"`
}

// NotificationConfig 运行事件通知配置
type NotificationConfig struct {
	KafkaBrokers []string `yaml:"kafka_brokers"`
	KafkaTopic   string   `yaml:"kafka_topic"`
	MQTTBroker   string   `yaml:"mqtt_broker"`
	MQTTTopic    string   `yaml:"mqtt_topic"`
	MQTTClientID string   `yaml:"mqtt_client_id"`
	RedisAddr    string   `yaml:"redis_addr"`
	RedisChannel string   `yaml:"redis_channel"`
	DaprPubSub   string   `yaml:"dapr_pubsub"`
	DaprTopic    string   `yaml:"dapr_topic"`
}

// Default 返回默认配置
func Default() *Config {
	return &Config{
		Server: ServerConfig{Port: 8000, RateLimitPerMinute: 600},
		Log:    LogConfig{Level: "info"},
		Cleaning: CleaningConfig{
			RawDataFile:     "app/data/raw_data.csv",
			CleanedDataFile: "app/data/cleaned_data.csv",
			OutlierPolicy:   string(models.PolicyGlobalDrop),
			Schedule:        "@every 1h",
			LockTTL:         10 * time.Minute,
		},
		RunStore: RunStoreConfig{
			RetentionDays:   30,
			CleanupSchedule: "0 0 2 * * *",
		},
		Notification: NotificationConfig{
			KafkaTopic:   "employee-cleaning-runs",
			MQTTTopic:    "employee/cleaning-runs",
			MQTTClientID: "employee-datahub",
			RedisChannel: "employee:cleaning-runs",
			DaprTopic:    "employee-cleaning-runs",
		},
	}
}

// Load 加载配置：默认值，CONFIG_FILE指定的YAML文件，再由环境变量覆盖
func Load() (*Config, error) {
	cfg := Default()

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("读取配置文件失败: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("解析配置文件失败: %w", err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyEnv 用环境变量覆盖配置
func (c *Config) applyEnv() error {
	if val := os.Getenv("LISTEN_PORT"); val != "" {
		port, err := cast.ToIntE(val)
		if err != nil {
			return fmt.Errorf("LISTEN_PORT不是有效端口: %q", val)
		}
		c.Server.Port = port
	}
	c.Server.BaseContext = getEnvWithDefault("BASE_CONTEXT", c.Server.BaseContext)
	c.Server.RateLimitRedisAddr = getEnvWithDefault("RATE_LIMIT_REDIS_ADDR", c.Server.RateLimitRedisAddr)
	if val := os.Getenv("RATE_LIMIT_PER_MINUTE"); val != "" {
		n, err := cast.ToIntE(val)
		if err != nil {
			return fmt.Errorf("RATE_LIMIT_PER_MINUTE不是有效整数: %q", val)
		}
		c.Server.RateLimitPerMinute = n
	}
	c.Log.Level = getEnvWithDefault("LOG_LEVEL", c.Log.Level)

	c.Cleaning.RawDataFile = getEnvWithDefault("RAW_DATA_FILE", c.Cleaning.RawDataFile)
	c.Cleaning.CleanedDataFile = getEnvWithDefault("CLEANED_DATA_FILE", c.Cleaning.CleanedDataFile)
	c.Cleaning.OutlierPolicy = getEnvWithDefault("CLEAN_OUTLIER_POLICY", c.Cleaning.OutlierPolicy)
	c.Cleaning.Schedule = getEnvWithDefault("CLEAN_SCHEDULE", c.Cleaning.Schedule)
	c.Cleaning.LockRedisAddr = getEnvWithDefault("CLEAN_LOCK_REDIS_ADDR", c.Cleaning.LockRedisAddr)
	if val := os.Getenv("CLEAN_LOCK_TTL"); val != "" {
		ttl, err := cast.ToDurationE(val)
		if err != nil {
			return fmt.Errorf("CLEAN_LOCK_TTL不是有效时长: %q", val)
		}
		c.Cleaning.LockTTL = ttl
	}

	c.RunStore.Driver = getEnvWithDefault("RUN_STORE_DRIVER", c.RunStore.Driver)
	c.RunStore.DSN = getEnvWithDefault("RUN_STORE_DSN", c.RunStore.DSN)
	if val := os.Getenv("RUN_STORE_RETENTION_DAYS"); val != "" {
		days, err := cast.ToIntE(val)
		if err != nil {
			return fmt.Errorf("RUN_STORE_RETENTION_DAYS不是有效整数: %q", val)
		}
		c.RunStore.RetentionDays = days
	}
	c.RunStore.CleanupSchedule = getEnvWithDefault("RUN_STORE_CLEANUP_SCHEDULE", c.RunStore.CleanupSchedule)

	if val := os.Getenv("NOTIFY_KAFKA_BROKERS"); val != "" {
		c.Notification.KafkaBrokers = splitList(val)
	}
	c.Notification.KafkaTopic = getEnvWithDefault("NOTIFY_KAFKA_TOPIC", c.Notification.KafkaTopic)
	c.Notification.MQTTBroker = getEnvWithDefault("NOTIFY_MQTT_BROKER", c.Notification.MQTTBroker)
	c.Notification.MQTTTopic = getEnvWithDefault("NOTIFY_MQTT_TOPIC", c.Notification.MQTTTopic)
	c.Notification.MQTTClientID = getEnvWithDefault("NOTIFY_MQTT_CLIENT_ID", c.Notification.MQTTClientID)
	c.Notification.RedisAddr = getEnvWithDefault("NOTIFY_REDIS_ADDR", c.Notification.RedisAddr)
	c.Notification.RedisChannel = getEnvWithDefault("NOTIFY_REDIS_CHANNEL", c.Notification.RedisChannel)
	c.Notification.DaprPubSub = getEnvWithDefault("NOTIFY_DAPR_PUBSUB", c.Notification.DaprPubSub)
	c.Notification.DaprTopic = getEnvWithDefault("NOTIFY_DAPR_TOPIC", c.Notification.DaprTopic)
	return nil
}

// Validate 校验配置
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("端口超出范围: %d", c.Server.Port)
	}
	if _, err := models.ParseOutlierPolicy(c.Cleaning.OutlierPolicy); err != nil {
		return err
	}
	switch c.RunStore.Driver {
	case "", "sqlite", "postgres":
	default:
		return fmt.Errorf("不支持的运行记录存储驱动: %q", c.RunStore.Driver)
	}
	if c.RunStore.Driver != "" && c.RunStore.DSN == "" {
		return fmt.Errorf("启用运行记录存储时必须配置RUN_STORE_DSN")
	}
	if c.Server.RateLimitRedisAddr != "" && c.Server.RateLimitPerMinute <= 0 {
		return fmt.Errorf("启用限流时RATE_LIMIT_PER_MINUTE必须大于0: %d", c.Server.RateLimitPerMinute)
	}
	if c.Cleaning.LockRedisAddr != "" && c.Cleaning.LockTTL <= 0 {
		return fmt.Errorf("启用分布式锁时CLEAN_LOCK_TTL必须大于0: %s", c.Cleaning.LockTTL)
	}
	return nil
}

// Policy 返回解析后的异常值处理策略
func (c *Config) Policy() models.OutlierPolicy {
	policy, err := models.ParseOutlierPolicy(c.Cleaning.OutlierPolicy)
	if err != nil {
		return models.PolicyGlobalDrop
	}
	return policy
}

// getEnvWithDefault 获取环境变量，如果不存在则返回默认值
func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func splitList(val string) []string {
	parts := strings.Split(val, ",")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			result = append(result, p)
		}
	}
	return result
}
