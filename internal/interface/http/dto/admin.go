package dto

import "github.com/xiebiao/bookstore-storefront/internal/domain/order"

// DeleteRequestResponse 发起批量删除后等待确认
type DeleteRequestResponse struct {
	Count int `json:"count" example:"3"`
}

// BulkStatusRequest 批量修改订单状态
type BulkStatusRequest struct {
	Status order.Status `json:"status" binding:"required,oneof=pending done" example:"done"`
}
