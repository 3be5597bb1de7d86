package order

import (
	"context"
)

// Creator 下单接口,结账流程只依赖这一个方法
type Creator interface {
	Create(ctx context.Context, draft Draft) (*Receipt, error)
}

// Repository 订单仓储接口(依赖倒置原则)
// 教学要点:
// 1. 由domain层定义接口,infrastructure层用后端REST实现
// 2. 批量操作一次请求完成,成功与否由后端整体决定
type Repository interface {
	Creator

	// List 拉取全部订单(管理后台本地分页)
	List(ctx context.Context) ([]Order, error)

	// BulkUpdateStatus 批量修改订单状态
	BulkUpdateStatus(ctx context.Context, ids []int64, status Status) error

	// BulkDelete 批量删除订单
	BulkDelete(ctx context.Context, ids []int64) error
}
