package checkout

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xiebiao/bookstore-storefront/internal/domain/cart"
	"github.com/xiebiao/bookstore-storefront/internal/domain/catalog"
	"github.com/xiebiao/bookstore-storefront/internal/domain/order"
	"github.com/xiebiao/bookstore-storefront/internal/infrastructure/persistence/memory"
	apperrors "github.com/xiebiao/bookstore-storefront/pkg/errors"
)

type noAdmin struct{}

func (noAdmin) IsAuthenticated() bool { return false }

// mockOrders 记录收到的草稿
type mockOrders struct {
	CreateFn func(ctx context.Context, draft order.Draft) (*order.Receipt, error)

	mu     sync.Mutex
	drafts []order.Draft
}

func (m *mockOrders) Create(ctx context.Context, draft order.Draft) (*order.Receipt, error) {
	m.mu.Lock()
	m.drafts = append(m.drafts, draft)
	m.mu.Unlock()
	return m.CreateFn(ctx, draft)
}

type recordingPublisher struct {
	events []order.PlacedEvent
}

func (p *recordingPublisher) PublishPlaced(_ context.Context, e order.PlacedEvent) error {
	p.events = append(p.events, e)
	return nil
}

var validCustomer = CustomerData{
	CustomerName: "Jan Kowalski",
	Email:        "jan@example.com",
	Phone:        "+48 600 100 200",
}

func newFixture(t *testing.T, orders *mockOrders) (*Workflow, *cart.Store, *recordingPublisher) {
	t.Helper()
	c := cart.NewStore(memory.NewStore(), noAdmin{}, nil)
	c.Add(context.Background(), catalog.Book{ID: 1, Title: "Dune", Price: 19.99}, 2)
	c.Add(context.Background(), catalog.Book{ID: 2, Title: "Emma", Price: 24.01}, 1)
	pub := &recordingPublisher{}
	return NewWorkflow(c, orders, pub, nil, Options{}), c, pub
}

func toPayment(t *testing.T, w *Workflow) {
	t.Helper()
	_, err := w.Checkout()
	require.NoError(t, err)
	_, errs, err := w.SubmitCustomer(validCustomer)
	require.NoError(t, err)
	require.Nil(t, errs)
	require.Equal(t, StepPayment, w.Step())
}

func TestCompute(t *testing.T) {
	tests := []struct {
		name     string
		items    []cart.Item
		expected float64
	}{
		{"整数小计", []cart.Item{{Book: catalog.Book{ID: 1, Price: 100}, Quantity: 1}}, 127.99},
		{"截断而非四舍五入", []cart.Item{{Book: catalog.Book{ID: 1, Price: 10.005}, Quantity: 1}}, 17.29},
		{"多本", []cart.Item{{Book: catalog.Book{ID: 1, Price: 19.99}, Quantity: 2}}, 54.16},
		{"空购物车只收运费", nil, 4.99},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Compute(tt.items)
			assert.Equal(t, tt.expected, p.Total)
			assert.Equal(t, Shipping, p.Shipping)
		})
	}

	p := Compute([]cart.Item{{Book: catalog.Book{ID: 1, Price: 100}, Quantity: 1}})
	assert.InDelta(t, 23.0, p.Tax, 1e-9)
	assert.Equal(t, 100.0, p.Subtotal)
}

func TestCustomerData_Validate(t *testing.T) {
	errs := CustomerData{Email: "", Phone: " "}.Validate(false)
	assert.Equal(t, FieldErrors{
		"customer_name": "Name is required",
		"email":         "Email is required",
		"phone":         "Phone is required",
	}, errs)

	errs = CustomerData{CustomerName: "A", Email: "not-an-email", Phone: "1"}.Validate(false)
	assert.Equal(t, FieldErrors{"email": "Invalid email format"}, errs)

	// 格式校验针对原始输入
	errs = CustomerData{CustomerName: "A", Email: " a@b.co", Phone: "1"}.Validate(false)
	assert.Equal(t, "Invalid email format", errs["email"])

	assert.Nil(t, validCustomer.Validate(false))

	errs = validCustomer.Validate(true)
	assert.Equal(t, "Address is required", errs["address"])
	assert.Equal(t, "Postal code is required", errs["postal_code"])
}

func TestWorkflow_HappyPath(t *testing.T) {
	orders := &mockOrders{CreateFn: func(context.Context, order.Draft) (*order.Receipt, error) {
		return &order.Receipt{ID: 42}, nil
	}}
	w, c, pub := newFixture(t, orders)

	v := w.Open()
	assert.Equal(t, StepSummary, v.Step)
	assert.True(t, v.Open)
	toPayment(t, w)

	v, err := w.Finalize(context.Background())
	require.NoError(t, err)
	assert.Equal(t, StepSuccess, v.Step)
	assert.Equal(t, "42", v.OrderID)
	assert.Empty(t, c.Items())

	require.Len(t, orders.drafts, 1)
	d := orders.drafts[0]
	assert.Equal(t, 83.69, d.TotalPrice)
	assert.Equal(t, "jan@example.com", d.Email)
	assert.Equal(t, []order.Line{{BookID: 1, Quantity: 2}, {BookID: 2, Quantity: 1}}, d.Items)

	require.Len(t, pub.events, 1)
	assert.Equal(t, int64(42), pub.events[0].OrderID)
	assert.Equal(t, 3, pub.events[0].ItemCount)

	v, err = w.Acknowledge()
	require.NoError(t, err)
	assert.Equal(t, StepSummary, v.Step)
	assert.Nil(t, v.Customer)
	assert.Empty(t, v.OrderID)
	assert.False(t, v.Open)
}

func TestWorkflow_BackendRejection(t *testing.T) {
	orders := &mockOrders{CreateFn: func(context.Context, order.Draft) (*order.Receipt, error) {
		return nil, apperrors.Upstream(400, "Out of stock")
	}}
	w, c, _ := newFixture(t, orders)
	toPayment(t, w)

	v, err := w.Finalize(context.Background())
	require.NoError(t, err)
	assert.Equal(t, StepFailure, v.Step)
	assert.Equal(t, "Out of stock", v.ErrorMessage)
	assert.Len(t, c.Items(), 2)

	v, err = w.AcknowledgeFailure()
	require.NoError(t, err)
	assert.Equal(t, StepPayment, v.Step)
	assert.Empty(t, v.ErrorMessage)
	require.NotNil(t, v.Customer)
	assert.Equal(t, validCustomer, *v.Customer)
	assert.Len(t, orders.drafts, 1, "确认失败不会自动重新提交")
}

func TestWorkflow_FailureMessages(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"没有detail", apperrors.Upstream(500, ""), MsgOrderFailed},
		{"网络错误", apperrors.Unavailable(errors.New("dial tcp: refused")), MsgNetworkError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			orders := &mockOrders{CreateFn: func(context.Context, order.Draft) (*order.Receipt, error) {
				return nil, tt.err
			}}
			w, _, _ := newFixture(t, orders)
			toPayment(t, w)

			v, err := w.Finalize(context.Background())
			require.NoError(t, err)
			assert.Equal(t, StepFailure, v.Step)
			assert.Equal(t, tt.want, v.ErrorMessage)
		})
	}
}

func TestWorkflow_InvalidCustomerStays(t *testing.T) {
	w, _, _ := newFixture(t, &mockOrders{})
	_, err := w.Checkout()
	require.NoError(t, err)

	bad := validCustomer
	bad.Email = ""
	v, errs, err := w.SubmitCustomer(bad)
	require.NoError(t, err)
	assert.Equal(t, StepCustomerInfo, v.Step)
	assert.Contains(t, errs, "email")
	assert.Equal(t, errs, v.FieldErrors)
}

func TestWorkflow_IllegalTransitions(t *testing.T) {
	w, _, _ := newFixture(t, &mockOrders{})

	_, err := w.Finalize(context.Background())
	assert.ErrorIs(t, err, ErrInvalidTransition)
	_, err = w.BackToCustomer()
	assert.ErrorIs(t, err, ErrInvalidTransition)
	_, _, err = w.SubmitCustomer(validCustomer)
	assert.ErrorIs(t, err, ErrInvalidTransition)
	_, err = w.Acknowledge()
	assert.ErrorIs(t, err, ErrInvalidTransition)
	assert.Equal(t, StepSummary, w.Step())

	_, err = w.Checkout()
	require.NoError(t, err)
	_, err = w.Checkout()
	assert.ErrorIs(t, err, ErrInvalidTransition)
	assert.Equal(t, StepCustomerInfo, w.Step())
}

func TestWorkflow_EmptyCartCanProceed(t *testing.T) {
	c := cart.NewStore(memory.NewStore(), noAdmin{}, nil)
	w := NewWorkflow(c, &mockOrders{}, nil, nil, Options{})

	v, err := w.Checkout()
	require.NoError(t, err)
	assert.Equal(t, StepCustomerInfo, v.Step)
	assert.Equal(t, 4.99, v.Pricing.Total)
}

func TestWorkflow_BackCancelsInflightSubmission(t *testing.T) {
	started := make(chan struct{})
	orders := &mockOrders{CreateFn: func(ctx context.Context, _ order.Draft) (*order.Receipt, error) {
		close(started)
		<-ctx.Done()
		// 模拟取消后仍然返回了响应
		return &order.Receipt{ID: 7}, nil
	}}
	w, c, pub := newFixture(t, orders)
	toPayment(t, w)

	type result struct {
		v   View
		err error
	}
	done := make(chan result, 1)
	go func() {
		v, err := w.Finalize(context.Background())
		done <- result{v, err}
	}()

	<-started
	assert.True(t, w.View().Submitting)
	_, err := w.Finalize(context.Background())
	assert.ErrorIs(t, err, ErrSubmitting)

	v, err := w.BackToCustomer()
	require.NoError(t, err)
	assert.Equal(t, StepCustomerInfo, v.Step)

	select {
	case r := <-done:
		assert.ErrorIs(t, r.err, ErrSuperseded)
		assert.True(t, IsSuperseded(r.err))
		assert.Equal(t, StepCustomerInfo, r.v.Step)
	case <-time.After(2 * time.Second):
		t.Fatal("finalize did not return after cancellation")
	}

	assert.Equal(t, StepCustomerInfo, w.Step())
	assert.Len(t, c.Items(), 2, "过期的成功响应不能清空购物车")
	assert.Empty(t, pub.events)
}

func TestWorkflow_CallerCancellationDoesNotAbortSubmission(t *testing.T) {
	orders := &mockOrders{CreateFn: func(ctx context.Context, _ order.Draft) (*order.Receipt, error) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		return &order.Receipt{ID: 9}, nil
	}}
	w, _, _ := newFixture(t, orders)
	toPayment(t, w)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	v, err := w.Finalize(ctx)
	require.NoError(t, err)
	assert.Equal(t, StepSuccess, v.Step)
}

func TestWorkflow_ShutdownCancels(t *testing.T) {
	started := make(chan struct{})
	orders := &mockOrders{CreateFn: func(ctx context.Context, _ order.Draft) (*order.Receipt, error) {
		close(started)
		<-ctx.Done()
		return nil, apperrors.Unavailable(ctx.Err())
	}}
	w, _, _ := newFixture(t, orders)
	toPayment(t, w)

	done := make(chan error, 1)
	go func() {
		_, err := w.Finalize(context.Background())
		done <- err
	}()
	<-started
	w.Shutdown()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, ErrSuperseded)
	case <-time.After(2 * time.Second):
		t.Fatal("finalize did not return after shutdown")
	}
	assert.Equal(t, StepPayment, w.Step())
	assert.False(t, w.View().Submitting)
}

func TestStep_CanTransitionTo(t *testing.T) {
	assert.True(t, StepSummary.CanTransitionTo(StepCustomerInfo))
	assert.False(t, StepSummary.CanTransitionTo(StepPayment))
	assert.True(t, StepFailure.CanTransitionTo(StepPayment))
	assert.False(t, StepSuccess.CanTransitionTo(StepFailure))
}
