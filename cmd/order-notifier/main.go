package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/xiebiao/bookstore-storefront/internal/domain/order"
	"github.com/xiebiao/bookstore-storefront/internal/infrastructure/config"
	"github.com/xiebiao/bookstore-storefront/internal/infrastructure/events"
	"github.com/xiebiao/bookstore-storefront/internal/infrastructure/logger"
	"github.com/xiebiao/bookstore-storefront/pkg/metrics"
	"github.com/xiebiao/bookstore-storefront/pkg/mq"
)

// main 订单通知服务
// 消费店面发布的order.placed事件,输出结构化通知日志
// 与店面共用config/config.yaml中的mq段
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("加载配置失败: %v", err)
	}

	zlog, err := logger.New(cfg.Log)
	if err != nil {
		log.Fatalf("初始化日志失败: %v", err)
	}
	defer func() { _ = zlog.Sync() }()
	zlog = zlog.Named("order-notifier")

	if cfg.Metrics.Enabled {
		metrics.InitMetrics()
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	consumer, err := mq.NewConsumer(cfg.MQ.URL, cfg.MQ.Exchange, cfg.MQ.ExchangeType, cfg.MQ.Queue,
		[]string{order.RoutingKeyPlaced}, zlog)
	if err != nil {
		zlog.Fatal("创建消费者失败", zap.Error(err))
	}
	defer func() {
		if err := consumer.Close(); err != nil {
			zlog.Warn("关闭消费者失败", zap.Error(err))
		}
	}()

	notifier := events.NewNotifier(zlog)
	if err := consumer.Consume(ctx, notifier.Handle); err != nil {
		zlog.Error("消费中断", zap.Error(err))
	}
}
