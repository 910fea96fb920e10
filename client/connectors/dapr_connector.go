package connectors

import (
	"context"
	"fmt"

	"employee-datahub/service/models"

	dapr "github.com/dapr/go-sdk/client"
)

// DaprConnector 通过Dapr sidecar的pub/sub组件发布运行事件
type DaprConnector struct {
	client dapr.Client
	pubsub string
	topic  string
}

// NewDaprConnector 连接本地Dapr sidecar
func NewDaprConnector(pubsub, topic string) (*DaprConnector, error) {
	client, err := dapr.NewClient()
	if err != nil {
		return nil, fmt.Errorf("连接Dapr sidecar失败: %w", err)
	}
	return &DaprConnector{client: client, pubsub: pubsub, topic: topic}, nil
}

// Name 连接器名称
func (dc *DaprConnector) Name() string {
	return "dapr"
}

// Publish 发布运行事件
func (dc *DaprConnector) Publish(ctx context.Context, event *models.RunEvent) error {
	payload, err := encodeEvent(event)
	if err != nil {
		return err
	}
	err = dc.client.PublishEvent(ctx, dc.pubsub, dc.topic, payload,
		dapr.PublishEventWithContentType("application/json"))
	if err != nil {
		return fmt.Errorf("Dapr发布事件失败: %w", err)
	}
	return nil
}

// Close 关闭客户端
func (dc *DaprConnector) Close() error {
	dc.client.Close()
	return nil
}
