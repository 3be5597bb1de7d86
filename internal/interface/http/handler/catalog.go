package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/xiebiao/bookstore-storefront/internal/interface/http/dto"
	"github.com/xiebiao/bookstore-storefront/internal/interface/http/middleware"
	apperrors "github.com/xiebiao/bookstore-storefront/pkg/errors"
	"github.com/xiebiao/bookstore-storefront/pkg/response"
)

// CatalogHandler 店面图书目录
type CatalogHandler struct{}

// NewCatalogHandler 创建目录处理器
func NewCatalogHandler() *CatalogHandler {
	return &CatalogHandler{}
}

// ListBooks 按筛选条件分页浏览图书
// @Summary      浏览图书
// @Description  筛选条件变化时页码回到第1页,page参数只在筛选条件不变时生效。进入店面会注销管理员会话
// @Tags         店面
// @Produce      json
// @Security     VisitorToken
// @Param        page query int false "页码"
// @Param        search query string false "关键字"
// @Param        genre_ids query []int false "类别id" collectionFormat(multi)
// @Param        author_ids query []int false "作者id" collectionFormat(multi)
// @Param        publisher_ids query []int false "出版社id" collectionFormat(multi)
// @Param        min_price query number false "最低价"
// @Param        max_price query number false "最高价"
// @Success      200 {object} response.Response{data=catalog.BookPage}
// @Failure      200 {object} response.Response "40900参数错误 / 40007查询被取代 / 50201后端拒绝 / 50301后端不可达"
// @Router       /api/v1/catalog/books [get]
func (h *CatalogHandler) ListBooks(c *gin.Context) {
	// 1. 参数绑定
	var q dto.CatalogQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		bindError(c, err)
		return
	}
	if !q.PriceRangeValid() {
		response.ErrorWithCode(c, apperrors.ErrCodeInvalidParams, "参数错误: min_price不能大于max_price")
		return
	}

	ws := middleware.MustGetWorkspace(c)
	ctx := c.Request.Context()

	// 2. 进入店面
	ws.VisitShop(ctx)

	// 3. 更新查询状态
	if changed := ws.Catalog.SetFilter(q.Filter()); !changed && q.Page > 0 {
		ws.Catalog.SetPage(q.Page)
	}

	// 4. 拉取
	page, err := ws.Catalog.Load(ctx)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, page)
}

// GetBook 打开图书详情
// @Summary      图书详情
// @Tags         店面
// @Produce      json
// @Security     VisitorToken
// @Param        id path int true "图书id"
// @Success      200 {object} response.Response{data=catalog.Book}
// @Router       /api/v1/catalog/books/{id} [get]
func (h *CatalogHandler) GetBook(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	book, err := middleware.MustGetWorkspace(c).Catalog.Book(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, book)
}

// Detail 当前打开的图书详情,没有时data为null
// @Summary      当前详情
// @Tags         店面
// @Produce      json
// @Security     VisitorToken
// @Success      200 {object} response.Response{data=catalog.Book}
// @Router       /api/v1/catalog/detail [get]
func (h *CatalogHandler) Detail(c *gin.Context) {
	response.Success(c, middleware.MustGetWorkspace(c).Catalog.Selected())
}

// CloseDetail 关闭图书详情
// @Summary      关闭详情
// @Tags         店面
// @Security     VisitorToken
// @Success      200 {object} response.Response
// @Router       /api/v1/catalog/detail [delete]
func (h *CatalogHandler) CloseDetail(c *gin.Context) {
	middleware.MustGetWorkspace(c).Catalog.CloseDetail()
	response.Success(c, nil)
}
