package dto

import "github.com/xiebiao/bookstore-storefront/internal/domain/cart"

// AddCartItemRequest 加入购物车
// quantity<1 按1处理,上限999
type AddCartItemRequest struct {
	BookID   int64 `json:"book_id" binding:"required,min=1" example:"1"`
	Quantity int   `json:"quantity" binding:"max=999" example:"1"`
}

// SetQuantityRequest 修改数量,<=0 等同于移除,上限999
type SetQuantityRequest struct {
	Quantity int `json:"quantity" binding:"max=999" example:"2"`
}

// CartResponse 购物车
type CartResponse struct {
	Items     []cart.Item `json:"items"`
	Total     float64     `json:"total" example:"39.98"`
	ItemCount int         `json:"item_count" example:"2"`
	// ReadOnly 管理员登录期间购物车只读
	ReadOnly bool `json:"read_only"`
	// Applied 仅变更接口返回:本次操作是否实际生效
	Applied *bool `json:"applied,omitempty"`
}

// NewCartResponse 从购物车快照构建响应
func NewCartResponse(s *cart.Store) *CartResponse {
	return &CartResponse{
		Items:     s.Items(),
		Total:     s.Total(),
		ItemCount: s.ItemCount(),
		ReadOnly:  s.ReadOnly(),
	}
}

// WithApplied 附加变更结果
func (r *CartResponse) WithApplied(applied bool) *CartResponse {
	r.Applied = &applied
	return r
}
