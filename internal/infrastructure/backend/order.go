package backend

import (
	"context"
	"net/http"

	"github.com/xiebiao/bookstore-storefront/internal/domain/order"
)

// OrderRepository 订单仓储的REST实现
type OrderRepository struct {
	client *Client
}

// NewOrderRepository 创建订单仓储
func NewOrderRepository(client *Client) *OrderRepository {
	return &OrderRepository{client: client}
}

// Create 提交订单,只关心后端分配的订单号
func (r *OrderRepository) Create(ctx context.Context, draft order.Draft) (*order.Receipt, error) {
	var receipt order.Receipt
	err := r.client.do(ctx, call{
		endpoint: "orders.create",
		method:   http.MethodPost,
		path:     apiPrefix + "/orders/",
		body:     draft,
	}, &receipt)
	if err != nil {
		return nil, err
	}
	return &receipt, nil
}

// List 全部订单
func (r *OrderRepository) List(ctx context.Context) ([]order.Order, error) {
	var orders []order.Order
	err := r.client.do(ctx, call{
		endpoint: "orders.list",
		method:   http.MethodGet,
		path:     apiPrefix + "/orders/",
	}, &orders)
	if err != nil {
		return nil, err
	}
	return orders, nil
}

type bulkStatusRequest struct {
	OrderIDs []int64      `json:"order_ids"`
	Status   order.Status `json:"status"`
}

// BulkUpdateStatus 批量修改状态
func (r *OrderRepository) BulkUpdateStatus(ctx context.Context, ids []int64, status order.Status) error {
	return r.client.do(ctx, call{
		endpoint: "orders.bulk_status",
		method:   http.MethodPut,
		path:     apiPrefix + "/orders/bulk-status",
		body:     bulkStatusRequest{OrderIDs: ids, Status: status},
	}, nil)
}

// BulkDelete 批量删除
func (r *OrderRepository) BulkDelete(ctx context.Context, ids []int64) error {
	return r.client.do(ctx, call{
		endpoint: "orders.bulk_delete",
		method:   http.MethodDelete,
		path:     apiPrefix + "/orders/bulk-delete",
		body:     map[string][]int64{"order_ids": ids},
	}, nil)
}
