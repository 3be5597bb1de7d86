package order

import (
	"context"
	"time"
)

// RoutingKeyPlaced 下单成功事件的路由键
const RoutingKeyPlaced = "order.placed"

// PlacedEvent 下单成功事件
// 店面在后端确认订单后发布,通知服务消费后发送确认邮件
type PlacedEvent struct {
	OrderID      int64     `json:"order_id"`
	CustomerName string    `json:"customer_name"`
	Email        string    `json:"email"`
	TotalPrice   float64   `json:"total_price"`
	ItemCount    int       `json:"item_count"`
	PlacedAt     time.Time `json:"placed_at"`
}

// EventPublisher 领域事件发布接口
// 发布失败不影响下单结果,调用方只记录日志
type EventPublisher interface {
	PublishPlaced(ctx context.Context, event PlacedEvent) error
}
