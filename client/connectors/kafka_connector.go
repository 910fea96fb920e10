/*
 * @module KafkaConnector
 * @description Kafka连接器，将清洗运行事件发布到Kafka主题
 * @architecture 适配器模式 - 封装第三方Kafka客户端，实现事件发布接口
 * @stateFlow 创建生产者 -> 发布事件 -> 关闭生产者
 * @rules 消息key使用运行ID，同一次运行的事件落在同一分区
 * @dependencies github.com/segmentio/kafka-go, encoding/json
 * @refs service/notification/notifier.go
 */
package connectors

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"employee-datahub/service/models"

	"github.com/segmentio/kafka-go"
)

// KafkaConfig Kafka连接配置
type KafkaConfig struct {
	Brokers      []string
	Topic        string
	WriteTimeout time.Duration
}

// KafkaConnector Kafka连接器结构体
type KafkaConnector struct {
	config *KafkaConfig
	writer *kafka.Writer
}

// NewKafkaConnector 创建新的Kafka连接器
func NewKafkaConnector(config *KafkaConfig) (*KafkaConnector, error) {
	if len(config.Brokers) == 0 {
		return nil, fmt.Errorf("Kafka brokers不能为空")
	}
	if config.Topic == "" {
		return nil, fmt.Errorf("Kafka topic不能为空")
	}
	if config.WriteTimeout <= 0 {
		config.WriteTimeout = 10 * time.Second
	}

	writer := &kafka.Writer{
		Addr:                   kafka.TCP(config.Brokers...),
		Topic:                  config.Topic,
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireOne,
		WriteTimeout:           config.WriteTimeout,
		AllowAutoTopicCreation: true,
	}

	return &KafkaConnector{
		config: config,
		writer: writer,
	}, nil
}

// Name 连接器名称
func (kc *KafkaConnector) Name() string {
	return "kafka"
}

// Publish 发送运行事件
func (kc *KafkaConnector) Publish(ctx context.Context, event *models.RunEvent) error {
	payload, err := encodeEvent(event)
	if err != nil {
		return err
	}

	msg := kafka.Message{
		Key:   []byte(event.RunID),
		Value: payload,
		Time:  event.Timestamp,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte(event.EventType)},
		},
	}
	if err := kc.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("发送消息失败: %w", err)
	}

	slog.Debug("消息已发送到Kafka", "topic", kc.config.Topic, "run_id", event.RunID)
	return nil
}

// Close 关闭生产者
func (kc *KafkaConnector) Close() error {
	return kc.writer.Close()
}
