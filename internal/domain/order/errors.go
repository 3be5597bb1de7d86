package order

import (
	apperrors "github.com/xiebiao/bookstore-storefront/pkg/errors"
)

// 订单领域错误定义
var (
	// ErrInvalidStatus 批量改状态时传入了未知状态
	ErrInvalidStatus = apperrors.New(apperrors.ErrCodeInvalidParams, "订单状态只能是pending或done")
)
