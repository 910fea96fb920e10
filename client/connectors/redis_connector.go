/*
 * @module RedisConnector
 * @description Redis连接器，将清洗运行事件发布到Redis频道
 * @architecture 适配器模式 - 封装go-redis客户端，实现事件发布接口
 * @stateFlow 创建客户端 -> PING -> PUBLISH -> 关闭
 * @dependencies github.com/go-redis/redis/v8
 * @refs service/notification/notifier.go
 */

package connectors

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"employee-datahub/service/models"

	"github.com/go-redis/redis/v8"
)

// RedisConfig Redis连接配置
type RedisConfig struct {
	Address     string
	Password    string
	Database    int
	Channel     string
	DialTimeout time.Duration
}

// RedisConnector Redis连接器
type RedisConnector struct {
	config *RedisConfig
	client *redis.Client
}

// NewRedisConnector 创建新的Redis连接器
func NewRedisConnector(config *RedisConfig) *RedisConnector {
	if config.DialTimeout <= 0 {
		config.DialTimeout = 5 * time.Second
	}
	return &RedisConnector{
		config: config,
		client: redis.NewClient(&redis.Options{
			Addr:        config.Address,
			Password:    config.Password,
			DB:          config.Database,
			DialTimeout: config.DialTimeout,
		}),
	}
}

// Name 连接器名称
func (rc *RedisConnector) Name() string {
	return "redis"
}

// Connect 测试连接
func (rc *RedisConnector) Connect(ctx context.Context) error {
	if _, err := rc.client.Ping(ctx).Result(); err != nil {
		return fmt.Errorf("Redis连接失败: %w", err)
	}
	slog.Info("Redis连接器已连接", "address", rc.config.Address)
	return nil
}

// Publish 发布运行事件到频道
func (rc *RedisConnector) Publish(ctx context.Context, event *models.RunEvent) error {
	payload, err := encodeEvent(event)
	if err != nil {
		return err
	}
	if err := rc.client.Publish(ctx, rc.config.Channel, payload).Err(); err != nil {
		return fmt.Errorf("PUBLISH命令失败: %w", err)
	}
	slog.Debug("消息已发布到Redis频道", "channel", rc.config.Channel, "run_id", event.RunID)
	return nil
}

// Close 关闭客户端
func (rc *RedisConnector) Close() error {
	return rc.client.Close()
}
