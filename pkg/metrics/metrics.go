// Package metrics 店面服务的Prometheus指标
//
// 指标分四组:
//  1. HTTP入口: 请求数、耗时、并发数
//  2. 后端REST调用: 按endpoint与结果统计, 熔断器状态
//  3. 业务: 结账结果、购物车变更、活跃工作区
//  4. 消息队列: 订单事件发布/消费
//
// 所有指标在 InitMetrics 中注册到默认Registry。
// 未初始化时下面的辅助函数全部是空操作,单元测试不需要关心指标。
package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var initOnce sync.Once

var (
	// HTTPRequestsTotal 标签: method, path, status
	HTTPRequestsTotal *prometheus.CounterVec
	// HTTPRequestDuration 标签: method, path
	HTTPRequestDuration *prometheus.HistogramVec
	// HTTPRequestsInProgress 正在处理的请求数
	HTTPRequestsInProgress prometheus.Gauge

	// BackendRequestsTotal 标签: endpoint, result(success/rejected/unavailable)
	BackendRequestsTotal *prometheus.CounterVec
	// BackendRequestDuration 标签: endpoint
	BackendRequestDuration *prometheus.HistogramVec
	// CircuitBreakerState 标签: name; 0=CLOSED 1=OPEN 2=HALF_OPEN
	CircuitBreakerState *prometheus.GaugeVec

	// CheckoutFinalizeTotal 标签: result(success/failure/superseded)
	CheckoutFinalizeTotal *prometheus.CounterVec
	// CartMutationsTotal 标签: op(add/remove/set_quantity/clear), result(applied/ignored)
	CartMutationsTotal *prometheus.CounterVec
	// ActiveWorkspaces 当前驻留内存的访客工作区数
	ActiveWorkspaces prometheus.Gauge

	// MessagesPublishedTotal 标签: exchange, routing_key, result
	MessagesPublishedTotal *prometheus.CounterVec
	// MessagesConsumedTotal 标签: queue, result
	MessagesConsumedTotal *prometheus.CounterVec
)

// InitMetrics 注册全部指标,可重复调用
func InitMetrics() {
	initOnce.Do(func() {
		HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "storefront_http_requests_total",
			Help: "HTTP请求总数",
		}, []string{"method", "path", "status"})

		HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "storefront_http_request_duration_seconds",
			Help:    "HTTP请求耗时(秒)",
			Buckets: []float64{0.001, 0.01, 0.1, 0.5, 1, 5, 10},
		}, []string{"method", "path"})

		HTTPRequestsInProgress = promauto.NewGauge(prometheus.GaugeOpts{
			Name: "storefront_http_requests_in_progress",
			Help: "正在处理的HTTP请求数",
		})

		BackendRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "storefront_backend_requests_total",
			Help: "调用后端REST接口的次数",
		}, []string{"endpoint", "result"})

		BackendRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "storefront_backend_request_duration_seconds",
			Help:    "调用后端REST接口耗时(秒)",
			Buckets: []float64{0.005, 0.02, 0.05, 0.1, 0.5, 1, 5},
		}, []string{"endpoint"})

		CircuitBreakerState = promauto.NewGaugeVec(prometheus.GaugeOpts{
			Name: "storefront_circuit_breaker_state",
			Help: "熔断器状态(0=CLOSED, 1=OPEN, 2=HALF_OPEN)",
		}, []string{"name"})

		CheckoutFinalizeTotal = promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "storefront_checkout_finalize_total",
			Help: "结账提交次数",
		}, []string{"result"})

		CartMutationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "storefront_cart_mutations_total",
			Help: "购物车变更次数(ignored表示管理员会话下被忽略)",
		}, []string{"op", "result"})

		ActiveWorkspaces = promauto.NewGauge(prometheus.GaugeOpts{
			Name: "storefront_active_workspaces",
			Help: "内存中的访客工作区数",
		})

		MessagesPublishedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "storefront_messages_published_total",
			Help: "消息发布总数",
		}, []string{"exchange", "routing_key", "result"})

		MessagesConsumedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "storefront_messages_consumed_total",
			Help: "消息消费总数",
		}, []string{"queue", "result"})
	})
}

// IncCounterVec 递增带标签的Counter
func IncCounterVec(counter *prometheus.CounterVec, labels prometheus.Labels) {
	if counter == nil {
		return
	}
	counter.With(labels).Inc()
}

// ObserveHistogramVec 记录带标签的Histogram观测值
func ObserveHistogramVec(histogram *prometheus.HistogramVec, labels prometheus.Labels, value float64) {
	if histogram == nil {
		return
	}
	histogram.With(labels).Observe(value)
}

// SetGaugeVec 设置带标签的Gauge
func SetGaugeVec(gauge *prometheus.GaugeVec, labels prometheus.Labels, value float64) {
	if gauge == nil {
		return
	}
	gauge.With(labels).Set(value)
}

// AddGauge 调整Gauge,delta可为负
func AddGauge(gauge prometheus.Gauge, delta float64) {
	if gauge == nil {
		return
	}
	gauge.Add(delta)
}
