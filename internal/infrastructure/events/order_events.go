// Package events 订单领域事件的消息队列适配
package events

import (
	"context"
	"encoding/json"

	"go.uber.org/zap"

	"github.com/xiebiao/bookstore-storefront/internal/domain/order"
)

// MessagePublisher 消息发布接口,由 pkg/mq.Publisher 实现
type MessagePublisher interface {
	Publish(ctx context.Context, routingKey string, message interface{}) error
}

// OrderPublisher 把下单事件发布到消息队列
type OrderPublisher struct {
	pub MessagePublisher
}

// NewOrderPublisher 创建事件发布者
func NewOrderPublisher(pub MessagePublisher) *OrderPublisher {
	return &OrderPublisher{pub: pub}
}

func (p *OrderPublisher) PublishPlaced(ctx context.Context, event order.PlacedEvent) error {
	return p.pub.Publish(ctx, order.RoutingKeyPlaced, event)
}

// Nop 未启用消息队列时使用,丢弃所有事件
type Nop struct{}

func (Nop) PublishPlaced(context.Context, order.PlacedEvent) error { return nil }

// Notifier 消费下单事件并输出结构化通知日志
type Notifier struct {
	logger *zap.Logger
}

// NewNotifier 创建通知处理器
func NewNotifier(logger *zap.Logger) *Notifier {
	return &Notifier{logger: logger}
}

// Handle 处理一条消息
// 无法解析的消息直接丢弃,返回错误会导致重新入队,坏消息会一直循环
func (n *Notifier) Handle(_ context.Context, routingKey string, body []byte) error {
	if routingKey != order.RoutingKeyPlaced {
		n.logger.Debug("忽略未知事件", zap.String("routing_key", routingKey))
		return nil
	}

	var event order.PlacedEvent
	if err := json.Unmarshal(body, &event); err != nil {
		n.logger.Error("下单事件解析失败,已丢弃", zap.Error(err), zap.ByteString("body", body))
		return nil
	}

	n.logger.Info("新订单通知",
		zap.Int64("order_id", event.OrderID),
		zap.String("customer_name", event.CustomerName),
		zap.String("email", event.Email),
		zap.Float64("total_price", event.TotalPrice),
		zap.Int("item_count", event.ItemCount),
		zap.Time("placed_at", event.PlacedAt),
	)
	return nil
}
