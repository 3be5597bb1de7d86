// Package backend 后端REST服务的客户端
//
// 所有调用统一经过 Client.send:
//  1. 构造请求(JSON body、查询参数、Basic认证、traceparent)
//  2. 在熔断器保护下发送,网络错误和5xx计入失败,4xx属于正常业务响应
//  3. 非2xx转换为 apperrors.Upstream,detail原样透传给界面
//  4. 记录 backend.<endpoint> Span 和指标
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/propagation"
	"go.uber.org/zap"

	"github.com/xiebiao/bookstore-storefront/pkg/circuitbreaker"
	apperrors "github.com/xiebiao/bookstore-storefront/pkg/errors"
	"github.com/xiebiao/bookstore-storefront/pkg/metrics"
	"github.com/xiebiao/bookstore-storefront/pkg/tracing"
)

const tracerName = "storefront/backend"

// 响应体读取上限
const maxBodyBytes = 4 << 20

// BasicAuth 后端要求的Basic认证
type BasicAuth struct {
	Enabled  bool
	Username string
	Password string
}

// BreakerConfig 熔断参数
type BreakerConfig struct {
	ConsecutiveFailures uint32
	OpenTimeout         time.Duration
	HalfOpenRequests    uint32
}

// Config 客户端配置
type Config struct {
	BaseURL   string
	Timeout   time.Duration
	BasicAuth BasicAuth
	Breaker   BreakerConfig
}

// Client 后端REST客户端
type Client struct {
	baseURL string
	http    *http.Client
	auth    BasicAuth
	breaker *circuitbreaker.CircuitBreaker
	logger  *zap.Logger
}

// NewClient 创建客户端
func NewClient(cfg Config, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	breakerCfg := circuitbreaker.Config{
		MaxRequests:  cfg.Breaker.HalfOpenRequests,
		Timeout:      cfg.Breaker.OpenTimeout,
		IsSuccessful: breakerSuccess,
	}
	if n := cfg.Breaker.ConsecutiveFailures; n > 0 {
		breakerCfg.ReadyToTrip = func(c circuitbreaker.Counts) bool {
			return c.ConsecutiveFailures >= n
		}
	}
	breaker := circuitbreaker.NewCircuitBreaker("backend", breakerCfg)
	breaker.SetStateChangeCallback(func(name string, from, to circuitbreaker.State) {
		logger.Warn("熔断器状态变化",
			zap.String("name", name),
			zap.String("from", from.String()),
			zap.String("to", to.String()),
		)
		metrics.SetGaugeVec(metrics.CircuitBreakerState, prometheus.Labels{"name": name}, float64(to))
	})

	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		auth:    cfg.BasicAuth,
		breaker: breaker,
		logger:  logger,
	}
}

// call 单次请求的描述
type call struct {
	endpoint string // 指标和Span名,如 books.list
	method   string
	path     string
	query    url.Values
	body     interface{}
}

// do 发送请求,2xx时把响应解码到out(out可为nil)
func (c *Client) do(ctx context.Context, req call, out interface{}) error {
	status, body, err := c.send(ctx, req)
	if err != nil {
		return err
	}
	if status < 200 || status >= 300 {
		return apperrors.Upstream(status, parseDetail(body))
	}
	if out == nil || len(bytes.TrimSpace(body)) == 0 {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return apperrors.Wrapf(err, "后端响应解析失败: %s", req.endpoint)
	}
	return nil
}

// send 发送请求并返回状态码和响应体
// 只有网络错误(或熔断打开)返回error,非2xx由调用方处理
func (c *Client) send(ctx context.Context, req call) (status int, body []byte, err error) {
	ctx, span := tracing.StartSpan(ctx, tracerName, "backend."+req.endpoint,
		attribute.String("http.method", req.method),
		attribute.String("http.path", req.path),
	)
	start := time.Now()
	defer func() {
		result := "success"
		switch {
		case err != nil:
			result = "unavailable"
		case status >= 300:
			result = "rejected"
		}
		span.SetAttributes(attribute.Int("http.status_code", status))
		tracing.EndSpan(span, err)
		metrics.IncCounterVec(metrics.BackendRequestsTotal, prometheus.Labels{"endpoint": req.endpoint, "result": result})
		metrics.ObserveHistogramVec(metrics.BackendRequestDuration, prometheus.Labels{"endpoint": req.endpoint},
			time.Since(start).Seconds())
	}()

	httpReq, err := c.newRequest(ctx, req)
	if err != nil {
		return 0, nil, err
	}

	err = c.breaker.Execute(func() error {
		resp, doErr := c.http.Do(httpReq)
		if doErr != nil {
			return doErr
		}
		defer resp.Body.Close()

		status = resp.StatusCode
		body, doErr = io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
		if doErr != nil {
			return doErr
		}
		if status >= 300 {
			return &statusError{status: status}
		}
		return nil
	})
	if err != nil {
		// 已拿到响应体,交给调用方按非2xx处理
		var se *statusError
		if errors.As(err, &se) {
			return status, body, nil
		}
		if !errors.Is(err, circuitbreaker.ErrOpenState) {
			c.logger.Warn("后端请求失败",
				zap.String("endpoint", req.endpoint),
				zap.Error(err),
			)
		}
		return 0, nil, apperrors.Unavailable(err)
	}
	return status, body, nil
}

// statusError 后端返回了非2xx响应
type statusError struct {
	status int
}

func (e *statusError) Error() string {
	return fmt.Sprintf("backend status %d", e.status)
}

// breakerSuccess 熔断器只把网络错误和5xx计为失败
// 4xx是后端正常的业务拒绝
func breakerSuccess(err error) bool {
	if err == nil {
		return true
	}
	var se *statusError
	return errors.As(err, &se) && se.status < 500
}

func (c *Client) newRequest(ctx context.Context, req call) (*http.Request, error) {
	target := c.baseURL + req.path
	if len(req.query) > 0 {
		target += "?" + req.query.Encode()
	}

	var reader io.Reader
	if req.body != nil {
		payload, err := json.Marshal(req.body)
		if err != nil {
			return nil, apperrors.Wrap(err, "请求序列化失败")
		}
		reader = bytes.NewReader(payload)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.method, target, reader)
	if err != nil {
		return nil, apperrors.Wrap(err, "构造后端请求失败")
	}
	httpReq.Header.Set("Accept", "application/json")
	if req.body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	if c.auth.Enabled {
		httpReq.SetBasicAuth(c.auth.Username, c.auth.Password)
	}
	tracing.InjectHeaders(ctx, propagation.HeaderCarrier(httpReq.Header))
	return httpReq, nil
}

// parseDetail 取出错误响应中的detail
// detail可能是字符串,也可能是校验错误列表 [{"msg": "..."}]
func parseDetail(body []byte) string {
	var payload struct {
		Detail json.RawMessage `json:"detail"`
	}
	if err := json.Unmarshal(body, &payload); err != nil || len(payload.Detail) == 0 {
		return ""
	}

	var text string
	if err := json.Unmarshal(payload.Detail, &text); err == nil {
		return text
	}

	var items []struct {
		Msg string `json:"msg"`
	}
	if err := json.Unmarshal(payload.Detail, &items); err == nil {
		msgs := make([]string, 0, len(items))
		for _, it := range items {
			if it.Msg != "" {
				msgs = append(msgs, it.Msg)
			}
		}
		return strings.Join(msgs, "; ")
	}
	return ""
}

func idPath(prefix string, id int64) string {
	return fmt.Sprintf("%s/%d", prefix, id)
}
