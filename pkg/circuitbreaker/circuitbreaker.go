// Package circuitbreaker 后端REST调用的熔断器
//
// 状态机:
//
//	CLOSED --(ReadyToTrip)--> OPEN --(Timeout到期)--> HALF_OPEN
//	HALF_OPEN --(成功)--> CLOSED
//	HALF_OPEN --(失败)--> OPEN
//
// 熔断器只负责快速失败,从不自动重试:每一次重试都由用户重新发起。
package circuitbreaker

import (
	"errors"
	"sync"
	"time"
)

// State 熔断器状态
type State int

const (
	StateClosed State = iota
	StateOpen
	StateHalfOpen
)

func (s State) String() string {
	switch s {
	case StateClosed:
		return "CLOSED"
	case StateOpen:
		return "OPEN"
	case StateHalfOpen:
		return "HALF_OPEN"
	default:
		return "UNKNOWN"
	}
}

// Config 熔断器配置
type Config struct {
	// MaxRequests 半开状态允许通过的探测请求数
	MaxRequests uint32
	// Interval 关闭状态下统计窗口长度,到期清零计数;0表示不清零
	Interval time.Duration
	// Timeout 打开状态持续多久后进入半开
	Timeout time.Duration
	// ReadyToTrip 关闭状态下每次失败后调用,返回true则熔断
	ReadyToTrip func(counts Counts) bool
	// IsSuccessful 判断一次调用的错误是否算"成功"
	// 后端明确返回4xx属于正常业务响应,不应计入失败
	IsSuccessful func(err error) bool
}

// Counts 统计窗口内的计数
type Counts struct {
	Requests             uint32
	TotalSuccesses       uint32
	TotalFailures        uint32
	ConsecutiveSuccesses uint32
	ConsecutiveFailures  uint32
}

// FailureRate 失败率
func (c *Counts) FailureRate() float64 {
	if c.Requests == 0 {
		return 0
	}
	return float64(c.TotalFailures) / float64(c.Requests)
}

func (c *Counts) reset() {
	*c = Counts{}
}

func (c *Counts) onSuccess() {
	c.TotalSuccesses++
	c.ConsecutiveSuccesses++
	c.ConsecutiveFailures = 0
}

func (c *Counts) onFailure() {
	c.TotalFailures++
	c.ConsecutiveFailures++
	c.ConsecutiveSuccesses = 0
}

// ErrOpenState 熔断器打开(或半开探测名额已满)时返回
var ErrOpenState = errors.New("circuit breaker is open")

// CircuitBreaker 熔断器
type CircuitBreaker struct {
	name         string
	maxRequests  uint32
	interval     time.Duration
	timeout      time.Duration
	readyToTrip  func(counts Counts) bool
	isSuccessful func(err error) bool

	mu            sync.Mutex
	state         State
	generation    uint64 // 每次状态切换递增,丢弃跨代的请求结果
	counts        Counts
	expiry        time.Time
	onStateChange func(name string, from State, to State)
}

// DefaultReadyToTrip 连续失败5次熔断
func DefaultReadyToTrip(counts Counts) bool {
	return counts.ConsecutiveFailures >= 5
}

// NewCircuitBreaker 创建熔断器,零值配置项使用默认值
func NewCircuitBreaker(name string, config Config) *CircuitBreaker {
	cb := &CircuitBreaker{
		name:          name,
		maxRequests:   config.MaxRequests,
		interval:      config.Interval,
		timeout:       config.Timeout,
		readyToTrip:   config.ReadyToTrip,
		isSuccessful:  config.IsSuccessful,
		onStateChange: func(string, State, State) {},
	}
	if cb.maxRequests == 0 {
		cb.maxRequests = 1
	}
	if cb.timeout <= 0 {
		cb.timeout = 30 * time.Second
	}
	if cb.readyToTrip == nil {
		cb.readyToTrip = DefaultReadyToTrip
	}
	if cb.isSuccessful == nil {
		cb.isSuccessful = func(err error) bool { return err == nil }
	}
	cb.toNewGeneration(time.Now())
	return cb
}

// Name 熔断器名称
func (cb *CircuitBreaker) Name() string {
	return cb.name
}

// SetStateChangeCallback 注册状态变化回调(用于上报指标和日志)
func (cb *CircuitBreaker) SetStateChangeCallback(fn func(name string, from State, to State)) {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	cb.onStateChange = fn
}

// Execute 在熔断器保护下执行req
// 熔断打开时不执行req,直接返回ErrOpenState
func (cb *CircuitBreaker) Execute(req func() error) error {
	generation, err := cb.beforeRequest()
	if err != nil {
		return err
	}

	err = req()
	cb.afterRequest(generation, cb.isSuccessful(err))
	return err
}

// State 当前状态
func (cb *CircuitBreaker) State() State {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	state, _ := cb.currentState(time.Now())
	return state
}

// Counts 当前计数快照
func (cb *CircuitBreaker) Counts() Counts {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	return cb.counts
}

func (cb *CircuitBreaker) beforeRequest() (uint64, error) {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	state, generation := cb.currentState(time.Now())
	switch {
	case state == StateOpen:
		return generation, ErrOpenState
	case state == StateHalfOpen && cb.counts.Requests >= cb.maxRequests:
		return generation, ErrOpenState
	}

	cb.counts.Requests++
	return generation, nil
}

func (cb *CircuitBreaker) afterRequest(before uint64, success bool) {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	now := time.Now()
	state, generation := cb.currentState(now)
	if generation != before {
		return
	}

	if success {
		cb.counts.onSuccess()
		if state == StateHalfOpen && cb.counts.ConsecutiveSuccesses >= cb.maxRequests {
			cb.setState(StateClosed, now)
		}
		return
	}

	cb.counts.onFailure()
	switch state {
	case StateClosed:
		if cb.readyToTrip(cb.counts) {
			cb.setState(StateOpen, now)
		}
	case StateHalfOpen:
		cb.setState(StateOpen, now)
	}
}

func (cb *CircuitBreaker) currentState(now time.Time) (State, uint64) {
	switch cb.state {
	case StateClosed:
		if !cb.expiry.IsZero() && cb.expiry.Before(now) {
			cb.toNewGeneration(now)
		}
	case StateOpen:
		if cb.expiry.Before(now) {
			cb.setState(StateHalfOpen, now)
		}
	}
	return cb.state, cb.generation
}

func (cb *CircuitBreaker) setState(state State, now time.Time) {
	if cb.state == state {
		return
	}

	prev := cb.state
	cb.state = state
	cb.toNewGeneration(now)
	cb.onStateChange(cb.name, prev, state)
}

func (cb *CircuitBreaker) toNewGeneration(now time.Time) {
	cb.generation++
	cb.counts.reset()

	var zero time.Time
	switch cb.state {
	case StateClosed:
		if cb.interval == 0 {
			cb.expiry = zero
		} else {
			cb.expiry = now.Add(cb.interval)
		}
	case StateOpen:
		cb.expiry = now.Add(cb.timeout)
	default:
		cb.expiry = zero
	}
}
