package admin

import (
	"context"

	"go.uber.org/zap"

	"github.com/xiebiao/bookstore-storefront/internal/domain/order"
)

// NoForm 不支持表单的页面使用的占位类型
type NoForm struct{}

// OrdersScreen 订单管理页:批量删除 + 批量改状态,没有新增/编辑
type OrdersScreen struct {
	*Screen[order.Order, NoForm]
	repo order.Repository
}

// NewOrdersScreen 创建订单管理页
func NewOrdersScreen(repo order.Repository, pageSize int, logger *zap.Logger) *OrdersScreen {
	return &OrdersScreen{
		Screen: NewScreen(
			func(o order.Order) int64 { return o.ID },
			pageSize,
			Backend[order.Order, NoForm]{
				List:   repo.List,
				Delete: repo.BulkDelete,
			},
			MessagesFor("order", "orders"),
			logger,
		),
		repo: repo,
	}
}

// BulkStatus 把勾选的订单改为指定状态
func (s *OrdersScreen) BulkStatus(ctx context.Context, status order.Status) error {
	if !status.Valid() {
		return order.ErrInvalidStatus
	}
	return s.RunBulk(ctx, "Failed to update status", func(ctx context.Context, ids []int64) error {
		return s.repo.BulkUpdateStatus(ctx, ids, status)
	})
}
