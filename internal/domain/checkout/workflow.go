package checkout

import (
	"context"
	"errors"
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/xiebiao/bookstore-storefront/internal/domain/cart"
	"github.com/xiebiao/bookstore-storefront/internal/domain/order"
	apperrors "github.com/xiebiao/bookstore-storefront/pkg/errors"
	"github.com/xiebiao/bookstore-storefront/pkg/metrics"
)

// 用户可见的下单失败提示
const (
	MsgOrderFailed  = "Order creation failed. Please try again."
	MsgNetworkError = "Network error. Please check your connection and try again."
)

var (
	// ErrInvalidTransition 当前步骤不允许该操作
	ErrInvalidTransition = apperrors.New(apperrors.ErrCodeInvalidTransition, "当前结账步骤不允许此操作")

	// ErrSubmitting 订单正在提交中
	ErrSubmitting = apperrors.New(apperrors.ErrCodeInvalidTransition, "订单正在提交,请稍候")

	// ErrSuperseded 提交结果到达时流程已经切换,结果被丢弃
	ErrSuperseded = apperrors.New(apperrors.ErrCodeSuperseded, "下单请求已被取消")
)

// Cart 结账流程对购物车的依赖
type Cart interface {
	Items() []cart.Item
	Clear(ctx context.Context) bool
}

// Options 结账配置
type Options struct {
	// RequireAddress 为true时地址和邮编也是必填项
	RequireAddress bool
}

// Workflow 结账状态机
// 教学要点:
// 1. 状态流转规则集中在transitions表里,非法操作返回ErrInvalidTransition且不改变状态
// 2. 网络调用期间不持有锁,返回/重置等操作可以随时取消正在进行的提交
// 3. 每次提交有自己的编号,过期的响应直接丢弃,不会落到别的状态上
type Workflow struct {
	mu           sync.Mutex
	step         Step
	open         bool
	customer     *CustomerData
	fieldErrors  FieldErrors
	orderID      string
	errorMessage string

	attempt uint64             // 每次提交或取消都递增
	cancel  context.CancelFunc // 非nil表示有提交在进行

	cart      Cart
	orders    order.Creator
	publisher order.EventPublisher
	logger    *zap.Logger
	opts      Options
}

// NewWorkflow 创建结账流程,初始步骤为summary
// publisher可以为nil
func NewWorkflow(c Cart, orders order.Creator, publisher order.EventPublisher, logger *zap.Logger, opts Options) *Workflow {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Workflow{
		step:      StepSummary,
		cart:      c,
		orders:    orders,
		publisher: publisher,
		logger:    logger,
		opts:      opts,
	}
}

// View 结账页面需要的全部状态
type View struct {
	Step         Step          `json:"step"`
	Open         bool          `json:"open"`
	Items        []cart.Item   `json:"items"`
	Pricing      Pricing       `json:"pricing"`
	Customer     *CustomerData `json:"customer,omitempty"`
	FieldErrors  FieldErrors   `json:"field_errors,omitempty"`
	OrderID      string        `json:"order_id,omitempty"`
	ErrorMessage string        `json:"error_message,omitempty"`
	Submitting   bool          `json:"submitting"`
}

// View 当前状态快照
func (w *Workflow) View() View {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.viewLocked()
}

// Step 当前步骤
func (w *Workflow) Step() Step {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.step
}

// Open 打开结账浮层
// 不改变步骤:关闭后重新打开,停留在原来的步骤
func (w *Workflow) Open() View {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.open = true
	return w.viewLocked()
}

// Close 关闭结账浮层,正在进行的提交不受影响
func (w *Workflow) Close() View {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.open = false
	return w.viewLocked()
}

// Checkout summary -> customer_info,购物车为空也允许
func (w *Workflow) Checkout() (View, error) {
	return w.transition(StepSummary, StepCustomerInfo, nil)
}

// BackToSummary customer_info -> summary
func (w *Workflow) BackToSummary() (View, error) {
	return w.transition(StepCustomerInfo, StepSummary, func() {
		w.fieldErrors = nil
	})
}

// BackToCustomer payment -> customer_info
// 如果订单正在提交,取消这次提交
func (w *Workflow) BackToCustomer() (View, error) {
	return w.transition(StepPayment, StepCustomerInfo, w.cancelInflightLocked)
}

// SubmitCustomer customer_info -> payment
// 数据不合法时停留在customer_info,返回字段错误
func (w *Workflow) SubmitCustomer(data CustomerData) (View, FieldErrors, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.step != StepCustomerInfo {
		return w.viewLocked(), nil, ErrInvalidTransition
	}

	if errs := data.Validate(w.opts.RequireAddress); errs != nil {
		w.fieldErrors = errs
		return w.viewLocked(), errs, nil
	}

	w.customer = &data
	w.fieldErrors = nil
	w.step = StepPayment
	return w.viewLocked(), nil, nil
}

// AcknowledgeFailure failure -> payment,清除错误信息,不会自动重新提交
func (w *Workflow) AcknowledgeFailure() (View, error) {
	return w.transition(StepFailure, StepPayment, func() {
		w.errorMessage = ""
	})
}

// AcknowledgeSuccess success -> summary,重置客户信息和订单号并关闭浮层
func (w *Workflow) AcknowledgeSuccess() (View, error) {
	return w.transition(StepSuccess, StepSummary, func() {
		w.customer = nil
		w.orderID = ""
		w.open = false
	})
}

// Acknowledge 根据当前步骤确认成功或失败
func (w *Workflow) Acknowledge() (View, error) {
	switch w.Step() {
	case StepSuccess:
		return w.AcknowledgeSuccess()
	case StepFailure:
		return w.AcknowledgeFailure()
	default:
		return w.View(), ErrInvalidTransition
	}
}

// Finalize payment -> success | failure
// 1. 加锁取快照:客户信息、购物车条目、金额
// 2. 解锁后提交一次订单
// 3. 重新加锁,确认这次提交没有被取消,再应用结果
// 下单失败不是错误:返回的View处于failure步骤,ErrorMessage为提示信息
func (w *Workflow) Finalize(ctx context.Context) (View, error) {
	w.mu.Lock()
	if w.step != StepPayment || w.customer == nil {
		v := w.viewLocked()
		w.mu.Unlock()
		return v, ErrInvalidTransition
	}
	if w.cancel != nil {
		v := w.viewLocked()
		w.mu.Unlock()
		return v, ErrSubmitting
	}

	items := w.cart.Items()
	pricing := Compute(items)
	draft := buildDraft(*w.customer, items, pricing)

	w.attempt++
	attempt := w.attempt
	// 提交只能由流程自己取消,与调用方ctx的取消无关
	attemptCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	w.cancel = cancel
	w.mu.Unlock()

	receipt, err := w.orders.Create(attemptCtx, draft)
	cancel()

	w.mu.Lock()
	if w.attempt != attempt || w.step != StepPayment {
		v := w.viewLocked()
		w.mu.Unlock()
		metrics.IncCounterVec(metrics.CheckoutFinalizeTotal, prometheus.Labels{"result": "superseded"})
		w.logger.Info("下单结果已过期,丢弃", zap.Uint64("attempt", attempt), zap.Error(err))
		return v, ErrSuperseded
	}
	w.cancel = nil

	if err != nil {
		result := "network"
		w.errorMessage = MsgNetworkError
		if apperrors.IsUpstreamRejected(err) {
			result = "rejected"
			w.errorMessage = apperrors.DetailOr(err, MsgOrderFailed)
		}
		w.step = StepFailure
		v := w.viewLocked()
		w.mu.Unlock()

		metrics.IncCounterVec(metrics.CheckoutFinalizeTotal, prometheus.Labels{"result": result})
		w.logger.Warn("下单失败", zap.String("reason", result), zap.Error(err))
		return v, nil
	}

	w.orderID = strconv.FormatInt(receipt.ID, 10)
	w.cart.Clear(context.WithoutCancel(ctx))
	w.step = StepSuccess
	w.errorMessage = ""
	customer := *w.customer
	v := w.viewLocked()
	w.mu.Unlock()

	metrics.IncCounterVec(metrics.CheckoutFinalizeTotal, prometheus.Labels{"result": "success"})
	w.logger.Info("下单成功", zap.Int64("order_id", receipt.ID), zap.Float64("total", pricing.Total))
	w.publishPlaced(ctx, receipt.ID, customer, draft)
	return v, nil
}

// Shutdown 取消正在进行的提交,工作区回收时调用
func (w *Workflow) Shutdown() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.cancelInflightLocked()
}

// transition 通用步骤切换
func (w *Workflow) transition(from, to Step, apply func()) (View, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.step != from || !w.step.CanTransitionTo(to) {
		return w.viewLocked(), ErrInvalidTransition
	}
	if apply != nil {
		apply()
	}
	w.step = to
	return w.viewLocked(), nil
}

func (w *Workflow) cancelInflightLocked() {
	w.attempt++
	if w.cancel != nil {
		w.cancel()
		w.cancel = nil
	}
}

func (w *Workflow) viewLocked() View {
	items := w.cart.Items()
	v := View{
		Step:         w.step,
		Open:         w.open,
		Items:        items,
		Pricing:      Compute(items),
		FieldErrors:  w.fieldErrors,
		OrderID:      w.orderID,
		ErrorMessage: w.errorMessage,
		Submitting:   w.cancel != nil,
	}
	if w.customer != nil {
		c := *w.customer
		v.Customer = &c
	}
	return v
}

func (w *Workflow) publishPlaced(ctx context.Context, orderID int64, customer CustomerData, draft order.Draft) {
	if w.publisher == nil {
		return
	}
	count := 0
	for _, l := range draft.Items {
		count += l.Quantity
	}
	event := order.PlacedEvent{
		OrderID:      orderID,
		CustomerName: customer.CustomerName,
		Email:        customer.Email,
		TotalPrice:   draft.TotalPrice,
		ItemCount:    count,
		PlacedAt:     time.Now().UTC(),
	}
	if err := w.publisher.PublishPlaced(context.WithoutCancel(ctx), event); err != nil {
		w.logger.Warn("发布下单事件失败", zap.Int64("order_id", orderID), zap.Error(err))
	}
}

func buildDraft(customer CustomerData, items []cart.Item, pricing Pricing) order.Draft {
	lines := make([]order.Line, 0, len(items))
	for _, it := range items {
		lines = append(lines, order.Line{BookID: it.Book.ID, Quantity: it.Quantity})
	}
	return order.Draft{
		CustomerName: customer.CustomerName,
		Email:        customer.Email,
		Phone:        customer.Phone,
		Address:      customer.Address,
		PostalCode:   customer.PostalCode,
		TotalPrice:   pricing.Total,
		Items:        lines,
	}
}

// IsSuperseded 是否为被取消的提交
func IsSuperseded(err error) bool {
	return errors.Is(err, ErrSuperseded)
}
