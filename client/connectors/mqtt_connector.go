/*
 * @module MQTTConnector
 * @description MQTT连接器，将清洗运行事件发布到MQTT主题
 * @architecture 适配器模式 - 封装paho客户端，实现事件发布接口
 * @stateFlow 配置选项 -> 连接broker -> 发布事件 -> 断开连接
 * @rules 未连接时拒绝发布；自动重连由paho负责
 * @dependencies github.com/eclipse/paho.mqtt.golang, encoding/json
 * @refs service/notification/notifier.go
 */

package connectors

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"employee-datahub/service/models"

	mqtt "github.com/eclipse/paho.mqtt.golang"
)

// MQTTConfig MQTT连接配置
type MQTTConfig struct {
	Broker         string
	ClientID       string
	Topic          string
	QoS            byte
	Username       string
	Password       string
	ConnectTimeout time.Duration
}

// MQTTConnector MQTT连接器
type MQTTConnector struct {
	config      *MQTTConfig
	client      mqtt.Client
	mutex       sync.RWMutex
	isConnected bool
}

// NewMQTTConnector 创建新的MQTT连接器
func NewMQTTConnector(config *MQTTConfig) *MQTTConnector {
	if config.ConnectTimeout <= 0 {
		config.ConnectTimeout = 10 * time.Second
	}

	connector := &MQTTConnector{config: config}

	// 配置MQTT客户端选项
	opts := mqtt.NewClientOptions()
	opts.AddBroker(config.Broker)
	opts.SetClientID(config.ClientID)
	if config.Username != "" {
		opts.SetUsername(config.Username)
		opts.SetPassword(config.Password)
	}
	opts.SetConnectTimeout(config.ConnectTimeout)
	opts.SetAutoReconnect(true)
	opts.SetOnConnectHandler(connector.onConnected)
	opts.SetConnectionLostHandler(connector.onConnectionLost)

	connector.client = mqtt.NewClient(opts)
	return connector
}

// Name 连接器名称
func (mc *MQTTConnector) Name() string {
	return "mqtt"
}

// Connect 建立MQTT连接
func (mc *MQTTConnector) Connect() error {
	token := mc.client.Connect()
	if !token.WaitTimeout(mc.config.ConnectTimeout) {
		return fmt.Errorf("MQTT连接超时: %s", mc.config.Broker)
	}
	if err := token.Error(); err != nil {
		return fmt.Errorf("MQTT连接失败: %w", err)
	}

	mc.mutex.Lock()
	mc.isConnected = true
	mc.mutex.Unlock()
	slog.Info("MQTT连接器已连接到broker", "broker", mc.config.Broker)
	return nil
}

// IsConnected 是否已连接
func (mc *MQTTConnector) IsConnected() bool {
	mc.mutex.RLock()
	defer mc.mutex.RUnlock()
	return mc.isConnected
}

// Publish 发布运行事件
func (mc *MQTTConnector) Publish(ctx context.Context, event *models.RunEvent) error {
	if !mc.IsConnected() {
		return fmt.Errorf("MQTT客户端未连接")
	}

	payload, err := encodeEvent(event)
	if err != nil {
		return err
	}

	token := mc.client.Publish(mc.config.Topic, mc.config.QoS, false, payload)
	select {
	case <-token.Done():
	case <-ctx.Done():
		return ctx.Err()
	}
	if err := token.Error(); err != nil {
		return fmt.Errorf("发布消息失败: %w", err)
	}

	slog.Debug("消息已发布到MQTT主题", "topic", mc.config.Topic, "run_id", event.RunID)
	return nil
}

// Close 断开MQTT连接
func (mc *MQTTConnector) Close() error {
	mc.mutex.Lock()
	defer mc.mutex.Unlock()
	if mc.isConnected {
		mc.client.Disconnect(250) // 等待250ms让消息发送完成
		mc.isConnected = false
	}
	return nil
}

// onConnected 连接建立处理器
func (mc *MQTTConnector) onConnected(client mqtt.Client) {
	mc.mutex.Lock()
	mc.isConnected = true
	mc.mutex.Unlock()
}

// onConnectionLost 连接丢失处理器
func (mc *MQTTConnector) onConnectionLost(client mqtt.Client, err error) {
	mc.mutex.Lock()
	mc.isConnected = false
	mc.mutex.Unlock()
	slog.Warn("MQTT连接丢失", "error", err)
}
