package events

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/xiebiao/bookstore-storefront/internal/domain/order"
)

type recordingPublisher struct {
	keys     []string
	messages []interface{}
}

func (r *recordingPublisher) Publish(_ context.Context, key string, msg interface{}) error {
	r.keys = append(r.keys, key)
	r.messages = append(r.messages, msg)
	return nil
}

func TestOrderPublisher_RoutesPlacedEvent(t *testing.T) {
	rec := &recordingPublisher{}
	event := order.PlacedEvent{OrderID: 7, Email: "a@b.co", TotalPrice: 54.16, ItemCount: 2}

	require.NoError(t, NewOrderPublisher(rec).PublishPlaced(context.Background(), event))
	assert.Equal(t, []string{order.RoutingKeyPlaced}, rec.keys)
	assert.Equal(t, event, rec.messages[0])
}

func TestNotifier_Handle(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	n := NewNotifier(zap.New(core))
	ctx := context.Background()

	body, err := json.Marshal(order.PlacedEvent{
		OrderID:      42,
		CustomerName: "Ann",
		Email:        "ann@example.com",
		TotalPrice:   83.69,
		ItemCount:    3,
		PlacedAt:     time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
	})
	require.NoError(t, err)

	require.NoError(t, n.Handle(ctx, order.RoutingKeyPlaced, body))
	entries := logs.FilterMessage("新订单通知").All()
	require.Len(t, entries, 1)
	assert.Equal(t, int64(42), entries[0].ContextMap()["order_id"])
	assert.Equal(t, "ann@example.com", entries[0].ContextMap()["email"])

	// 坏消息丢弃,不返回错误
	assert.NoError(t, n.Handle(ctx, order.RoutingKeyPlaced, []byte("{")))
	assert.Equal(t, 1, logs.FilterMessage("下单事件解析失败,已丢弃").Len())

	assert.NoError(t, n.Handle(ctx, "order.cancelled", body))
	assert.Equal(t, 1, logs.FilterMessage("新订单通知").Len())
}

func TestNop(t *testing.T) {
	assert.NoError(t, Nop{}.PublishPlaced(context.Background(), order.PlacedEvent{}))
}
