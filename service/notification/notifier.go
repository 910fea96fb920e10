/*
 * @module service/notification/notifier
 * @description 清洗运行事件通知器，将运行事件扇出到所有已配置的消息通道
 * @architecture 观察者模式 - 事件分发
 * @stateFlow 清洗结束 -> 构建运行事件 -> 逐个通道发布 -> 汇总错误
 * @rules 单个通道失败不影响其他通道；未配置通道时为空操作
 * @dependencies employee-datahub/service/models
 * @refs client/connectors, service/app.go
 */

package notification

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"employee-datahub/service/models"
)

// Publisher 运行事件发布通道
type Publisher interface {
	Name() string
	Publish(ctx context.Context, event *models.RunEvent) error
	Close() error
}

// Notifier 运行事件通知器
type Notifier struct {
	publishers []Publisher
}

// NewNotifier 创建通知器实例
func NewNotifier(publishers ...Publisher) *Notifier {
	return &Notifier{publishers: publishers}
}

// Add 添加发布通道
func (n *Notifier) Add(p Publisher) {
	n.publishers = append(n.publishers, p)
}

// Len 已配置的通道数量
func (n *Notifier) Len() int {
	return len(n.publishers)
}

// Notify 向所有通道发布事件，返回所有失败通道的合并错误
func (n *Notifier) Notify(ctx context.Context, event *models.RunEvent) error {
	var errs []error
	for _, p := range n.publishers {
		if err := p.Publish(ctx, event); err != nil {
			slog.Error("发布清洗运行事件失败", "publisher", p.Name(), "run_id", event.RunID, "error", err)
			errs = append(errs, fmt.Errorf("%s: %w", p.Name(), err))
			continue
		}
		slog.Debug("清洗运行事件已发布", "publisher", p.Name(), "run_id", event.RunID)
	}
	return errors.Join(errs...)
}

// Close 关闭所有通道
func (n *Notifier) Close() error {
	var errs []error
	for _, p := range n.publishers {
		if err := p.Close(); err != nil {
			errs = append(errs, fmt.Errorf("关闭%s失败: %w", p.Name(), err))
		}
	}
	return errors.Join(errs...)
}
