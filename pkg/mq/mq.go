// Package mq RabbitMQ发布/订阅封装
//
// 店面服务只发布事件(order.placed),由独立的 order-notifier 进程消费。
// Exchange 使用 topic 类型,路由键形如 order.placed。
package mq

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"

	"github.com/xiebiao/bookstore-storefront/pkg/metrics"
)

// Publisher 消息发布者
type Publisher struct {
	conn     *amqp.Connection
	channel  *amqp.Channel
	exchange string
	logger   *zap.Logger
}

// NewPublisher 连接RabbitMQ并声明持久化Exchange
func NewPublisher(url, exchange, exchangeType string, logger *zap.Logger) (*Publisher, error) {
	conn, channel, err := dialAndDeclare(url, exchange, exchangeType)
	if err != nil {
		return nil, err
	}

	logger.Info("消息发布者已创建", zap.String("exchange", exchange), zap.String("type", exchangeType))
	return &Publisher{
		conn:     conn,
		channel:  channel,
		exchange: exchange,
		logger:   logger,
	}, nil
}

// Publish 以JSON发布持久化消息
func (p *Publisher) Publish(ctx context.Context, routingKey string, message interface{}) error {
	body, err := json.Marshal(message)
	if err != nil {
		return fmt.Errorf("消息序列化失败: %w", err)
	}

	err = p.channel.PublishWithContext(ctx, p.exchange, routingKey, false, false, amqp.Publishing{
		ContentType:  "application/json",
		Body:         body,
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now(),
	})

	result := "success"
	if err != nil {
		result = "failure"
	}
	metrics.IncCounterVec(metrics.MessagesPublishedTotal, prometheus.Labels{
		"exchange": p.exchange, "routing_key": routingKey, "result": result,
	})
	if err != nil {
		return fmt.Errorf("发布消息失败: %w", err)
	}

	p.logger.Debug("消息已发布", zap.String("routing_key", routingKey), zap.Int("bytes", len(body)))
	return nil
}

// Close 关闭Channel和连接
func (p *Publisher) Close() error {
	return closeAll(p.channel, p.conn)
}

// Handler 消息处理函数;返回错误时消息重新入队
type Handler func(ctx context.Context, routingKey string, body []byte) error

// Consumer 消息消费者
type Consumer struct {
	conn    *amqp.Connection
	channel *amqp.Channel
	queue   string
	logger  *zap.Logger
}

// NewConsumer 声明Exchange与持久化Queue,并按routingKeys绑定
func NewConsumer(url, exchange, exchangeType, queue string, routingKeys []string, logger *zap.Logger) (*Consumer, error) {
	conn, channel, err := dialAndDeclare(url, exchange, exchangeType)
	if err != nil {
		return nil, err
	}

	q, err := channel.QueueDeclare(queue, true, false, false, false, nil)
	if err != nil {
		_ = closeAll(channel, conn)
		return nil, fmt.Errorf("声明Queue失败: %w", err)
	}

	for _, key := range routingKeys {
		if err := channel.QueueBind(q.Name, key, exchange, false, nil); err != nil {
			_ = closeAll(channel, conn)
			return nil, fmt.Errorf("绑定Queue失败[%s]: %w", key, err)
		}
	}

	logger.Info("消息消费者已创建", zap.String("queue", q.Name), zap.Strings("routing_keys", routingKeys))
	return &Consumer{
		conn:    conn,
		channel: channel,
		queue:   q.Name,
		logger:  logger,
	}, nil
}

// Consume 阻塞消费直到ctx取消;手动ack,处理失败nack并重新入队
func (c *Consumer) Consume(ctx context.Context, handler Handler) error {
	if err := c.channel.Qos(1, 0, false); err != nil {
		return fmt.Errorf("设置Qos失败: %w", err)
	}

	msgs, err := c.channel.Consume(c.queue, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("开始消费失败: %w", err)
	}

	for {
		select {
		case <-ctx.Done():
			c.logger.Info("消费者退出", zap.String("queue", c.queue))
			return nil

		case msg, ok := <-msgs:
			if !ok {
				return fmt.Errorf("消息Channel已关闭")
			}

			if err := handler(ctx, msg.RoutingKey, msg.Body); err != nil {
				c.logger.Warn("消息处理失败,重新入队", zap.String("routing_key", msg.RoutingKey), zap.Error(err))
				metrics.IncCounterVec(metrics.MessagesConsumedTotal, prometheus.Labels{"queue": c.queue, "result": "failure"})
				_ = msg.Nack(false, true)
				continue
			}
			metrics.IncCounterVec(metrics.MessagesConsumedTotal, prometheus.Labels{"queue": c.queue, "result": "success"})
			_ = msg.Ack(false)
		}
	}
}

// Close 关闭Channel和连接
func (c *Consumer) Close() error {
	return closeAll(c.channel, c.conn)
}

func dialAndDeclare(url, exchange, exchangeType string) (*amqp.Connection, *amqp.Channel, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, nil, fmt.Errorf("连接RabbitMQ失败: %w", err)
	}

	channel, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, nil, fmt.Errorf("创建Channel失败: %w", err)
	}

	if err := channel.ExchangeDeclare(exchange, exchangeType, true, false, false, false, nil); err != nil {
		_ = closeAll(channel, conn)
		return nil, nil, fmt.Errorf("声明Exchange失败: %w", err)
	}
	return conn, channel, nil
}

func closeAll(channel *amqp.Channel, conn *amqp.Connection) error {
	if channel != nil {
		_ = channel.Close()
	}
	if conn != nil {
		return conn.Close()
	}
	return nil
}
