package handler

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/xiebiao/bookstore-storefront/internal/application/storefront"
	"github.com/xiebiao/bookstore-storefront/internal/domain/catalog"
	"github.com/xiebiao/bookstore-storefront/internal/interface/http/dto"
	"github.com/xiebiao/bookstore-storefront/internal/interface/http/middleware"
	"github.com/xiebiao/bookstore-storefront/pkg/response"
)

// CartHandler 购物车
// 管理员登录期间所有变更都是空操作,响应里applied=false
type CartHandler struct {
	books catalog.BookReader
}

// NewCartHandler 创建购物车处理器
func NewCartHandler(books catalog.BookReader) *CartHandler {
	return &CartHandler{books: books}
}

// Get 查看购物车
// @Summary      查看购物车
// @Tags         购物车
// @Produce      json
// @Security     VisitorToken
// @Success      200 {object} response.Response{data=dto.CartResponse}
// @Router       /api/v1/cart [get]
func (h *CartHandler) Get(c *gin.Context) {
	response.Success(c, dto.NewCartResponse(middleware.MustGetWorkspace(c).Cart))
}

// AddItem 加入购物车
// @Summary      加入购物车
// @Description  已在购物车中的图书累加数量;quantity<1按1处理
// @Tags         购物车
// @Accept       json
// @Produce      json
// @Security     VisitorToken
// @Param        request body dto.AddCartItemRequest true "图书与数量"
// @Success      200 {object} response.Response{data=dto.CartResponse}
// @Failure      200 {object} response.Response "40901参数错误 / 50201图书不存在 / 50301后端不可达"
// @Router       /api/v1/cart/items [post]
func (h *CartHandler) AddItem(c *gin.Context) {
	// 1. 参数绑定
	var req dto.AddCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	ws := middleware.MustGetWorkspace(c)
	ctx := c.Request.Context()

	// 2. 找到图书
	book, err := h.findBook(ctx, ws, req.BookID)
	if err != nil {
		response.Error(c, err)
		return
	}

	// 3. 加入购物车
	applied := ws.Cart.Add(ctx, *book, req.Quantity)
	response.Success(c, dto.NewCartResponse(ws.Cart).WithApplied(applied))
}

// SetQuantity 修改数量
// @Summary      修改数量
// @Description  quantity<=0 等同于移除
// @Tags         购物车
// @Accept       json
// @Produce      json
// @Security     VisitorToken
// @Param        book_id path int true "图书id"
// @Param        request body dto.SetQuantityRequest true "数量"
// @Success      200 {object} response.Response{data=dto.CartResponse}
// @Router       /api/v1/cart/items/{book_id} [put]
func (h *CartHandler) SetQuantity(c *gin.Context) {
	bookID, ok := pathID(c, "book_id")
	if !ok {
		return
	}
	var req dto.SetQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	ws := middleware.MustGetWorkspace(c)
	applied := ws.Cart.SetQuantity(c.Request.Context(), bookID, req.Quantity)
	response.Success(c, dto.NewCartResponse(ws.Cart).WithApplied(applied))
}

// RemoveItem 移除图书
// @Summary      移除图书
// @Tags         购物车
// @Produce      json
// @Security     VisitorToken
// @Param        book_id path int true "图书id"
// @Success      200 {object} response.Response{data=dto.CartResponse}
// @Router       /api/v1/cart/items/{book_id} [delete]
func (h *CartHandler) RemoveItem(c *gin.Context) {
	bookID, ok := pathID(c, "book_id")
	if !ok {
		return
	}
	ws := middleware.MustGetWorkspace(c)
	applied := ws.Cart.Remove(c.Request.Context(), bookID)
	response.Success(c, dto.NewCartResponse(ws.Cart).WithApplied(applied))
}

// Clear 清空购物车
// @Summary      清空购物车
// @Tags         购物车
// @Produce      json
// @Security     VisitorToken
// @Success      200 {object} response.Response{data=dto.CartResponse}
// @Router       /api/v1/cart [delete]
func (h *CartHandler) Clear(c *gin.Context) {
	ws := middleware.MustGetWorkspace(c)
	applied := ws.Cart.Clear(c.Request.Context())
	response.Success(c, dto.NewCartResponse(ws.Cart).WithApplied(applied))
}

// findBook 依次在购物车已有条目、访客已看到的详情和当前结果页里找,找不到再请求后端
// 购物车里保存的是访客第一次加购时看到的图书信息
func (h *CartHandler) findBook(ctx context.Context, ws *storefront.Workspace, id int64) (*catalog.Book, error) {
	for _, it := range ws.Cart.Items() {
		if it.Book.ID == id {
			b := it.Book
			return &b, nil
		}
	}
	if b := ws.Catalog.Selected(); b != nil && b.ID == id {
		return b, nil
	}
	if page := ws.Catalog.Result(); page != nil {
		for i := range page.Items {
			if page.Items[i].ID == id {
				b := page.Items[i]
				return &b, nil
			}
		}
	}
	return h.books.GetBook(ctx, id)
}
