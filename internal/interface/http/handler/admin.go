package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/xiebiao/bookstore-storefront/internal/application/admin"
	"github.com/xiebiao/bookstore-storefront/internal/interface/http/dto"
	"github.com/xiebiao/bookstore-storefront/internal/interface/http/middleware"
	apperrors "github.com/xiebiao/bookstore-storefront/pkg/errors"
	"github.com/xiebiao/bookstore-storefront/pkg/response"
)

// ScreenHandler 通用后台CRUD页面处理器
// 教学要点:
// 1. 图书、订单、类别、出版社四个页面共用同一套路由,页面差异都在application层
// 2. 操作成功返回最新的页面快照;失败返回错误码,data里仍然带页面快照(错误横幅、保留的勾选)
// 3. 每次请求都从访客工作区取页面,处理器本身无状态
type ScreenHandler[T any, F any] struct {
	screen func(*admin.Screens) *admin.Screen[T, F]
}

// NewScreenHandler 创建页面处理器,screen从访客的后台页面中选出具体页面
func NewScreenHandler[T any, F any](screen func(*admin.Screens) *admin.Screen[T, F]) *ScreenHandler[T, F] {
	return &ScreenHandler[T, F]{screen: screen}
}

// Register 注册页面路由
// withForm=false 时不注册新增/编辑表单路由(订单页)
func (h *ScreenHandler[T, F]) Register(g *gin.RouterGroup, withForm bool) {
	g.GET("", h.View)
	g.POST("/reload", h.Reload)
	g.POST("/page/:n", h.SetPage)
	g.POST("/select/:id", h.ToggleSelect)
	g.POST("/select-page", h.SelectPage)
	g.POST("/expand/:id", h.ToggleExpand)
	g.POST("/delete/request", h.RequestDelete)
	g.POST("/delete/confirm", h.ConfirmDelete)
	g.POST("/delete/cancel", h.CancelDelete)

	if withForm {
		g.POST("/form/new", h.NewForm)
		g.POST("/form/edit/:id", h.EditForm)
		g.PUT("/form", h.UpdateForm)
		g.DELETE("/form", h.CancelForm)
		g.POST("/form/submit", h.SubmitForm)
	}
}

func (h *ScreenHandler[T, F]) current(c *gin.Context) *admin.Screen[T, F] {
	return h.screen(middleware.MustGetWorkspace(c).Admin)
}

// done 操作结束:成功返回快照,失败返回错误+快照
func (h *ScreenHandler[T, F]) done(c *gin.Context, s *admin.Screen[T, F], err error) {
	if err != nil {
		response.ErrorWithState(c, err, s.View())
		return
	}
	response.Success(c, s.View())
}

// View 拉取数据并返回页面快照
// @Summary      后台页面
// @Description  拉取全量数据,本地分页(每页10条)。拉取失败时横幅保留到reload
// @Tags         后台管理
// @Produce      json
// @Security     VisitorToken
// @Param        entity path string true "books|orders|genres|publishers"
// @Success      200 {object} response.Response
// @Router       /api/v1/admin/{entity} [get]
func (h *ScreenHandler[T, F]) View(c *gin.Context) {
	s := h.current(c)
	h.done(c, s, s.Load(c.Request.Context()))
}

// Reload 清除错误横幅后重新拉取
// @Summary      重新拉取
// @Tags         后台管理
// @Produce      json
// @Security     VisitorToken
// @Param        entity path string true "books|orders|genres|publishers"
// @Success      200 {object} response.Response
// @Router       /api/v1/admin/{entity}/reload [post]
func (h *ScreenHandler[T, F]) Reload(c *gin.Context) {
	s := h.current(c)
	h.done(c, s, s.Reload(c.Request.Context()))
}

// SetPage 翻页
// @Summary      翻页
// @Tags         后台管理
// @Produce      json
// @Security     VisitorToken
// @Param        entity path string true "books|orders|genres|publishers"
// @Param        n path int true "页码,超出范围时收回到边界"
// @Success      200 {object} response.Response
// @Router       /api/v1/admin/{entity}/page/{n} [post]
func (h *ScreenHandler[T, F]) SetPage(c *gin.Context) {
	n, err := strconv.Atoi(c.Param("n"))
	if err != nil {
		response.ErrorWithCode(c, apperrors.ErrCodeInvalidParams, "参数错误: 页码必须是整数")
		return
	}
	s := h.current(c)
	s.SetPage(n)
	h.done(c, s, nil)
}

// ToggleSelect 勾选/取消勾选
// @Summary      勾选
// @Tags         后台管理
// @Produce      json
// @Security     VisitorToken
// @Param        entity path string true "books|orders|genres|publishers"
// @Param        id path int true "记录id"
// @Success      200 {object} response.Response
// @Router       /api/v1/admin/{entity}/select/{id} [post]
func (h *ScreenHandler[T, F]) ToggleSelect(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	s := h.current(c)
	h.done(c, s, s.ToggleSelect(id))
}

// SelectPage 当前页全选;已经全选时全部取消
// @Summary      当前页全选
// @Tags         后台管理
// @Produce      json
// @Security     VisitorToken
// @Param        entity path string true "books|orders|genres|publishers"
// @Success      200 {object} response.Response
// @Router       /api/v1/admin/{entity}/select-page [post]
func (h *ScreenHandler[T, F]) SelectPage(c *gin.Context) {
	s := h.current(c)
	s.SelectAllOnPage()
	h.done(c, s, nil)
}

// ToggleExpand 展开/收起详情,与勾选互不影响
// @Summary      展开详情
// @Tags         后台管理
// @Produce      json
// @Security     VisitorToken
// @Param        entity path string true "books|orders|genres|publishers"
// @Param        id path int true "记录id"
// @Success      200 {object} response.Response
// @Router       /api/v1/admin/{entity}/expand/{id} [post]
func (h *ScreenHandler[T, F]) ToggleExpand(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	s := h.current(c)
	h.done(c, s, s.ToggleExpand(id))
}

// RequestDelete 发起批量删除,等待确认
// @Summary      请求删除
// @Tags         后台管理
// @Produce      json
// @Security     VisitorToken
// @Param        entity path string true "books|orders|genres|publishers"
// @Success      200 {object} response.Response{data=dto.DeleteRequestResponse}
// @Failure      200 {object} response.Response "40006未选择记录"
// @Router       /api/v1/admin/{entity}/delete/request [post]
func (h *ScreenHandler[T, F]) RequestDelete(c *gin.Context) {
	s := h.current(c)
	n, err := s.RequestDelete()
	if err != nil {
		response.ErrorWithState(c, err, s.View())
		return
	}
	response.Success(c, &dto.DeleteRequestResponse{Count: n})
}

// ConfirmDelete 确认删除
// @Summary      确认删除
// @Description  成功后清空勾选并重新拉取;失败时勾选保留
// @Tags         后台管理
// @Produce      json
// @Security     VisitorToken
// @Param        entity path string true "books|orders|genres|publishers"
// @Success      200 {object} response.Response
// @Router       /api/v1/admin/{entity}/delete/confirm [post]
func (h *ScreenHandler[T, F]) ConfirmDelete(c *gin.Context) {
	s := h.current(c)
	h.done(c, s, s.ConfirmDelete(c.Request.Context()))
}

// CancelDelete 取消删除
// @Summary      取消删除
// @Tags         后台管理
// @Produce      json
// @Security     VisitorToken
// @Param        entity path string true "books|orders|genres|publishers"
// @Success      200 {object} response.Response
// @Router       /api/v1/admin/{entity}/delete/cancel [post]
func (h *ScreenHandler[T, F]) CancelDelete(c *gin.Context) {
	s := h.current(c)
	s.CancelDelete()
	h.done(c, s, nil)
}

// NewForm 打开新增表单
// @Summary      新增表单
// @Tags         后台管理
// @Produce      json
// @Security     VisitorToken
// @Param        entity path string true "books|genres|publishers"
// @Success      200 {object} response.Response
// @Router       /api/v1/admin/{entity}/form/new [post]
func (h *ScreenHandler[T, F]) NewForm(c *gin.Context) {
	s := h.current(c)
	_, err := s.StartAdd()
	h.done(c, s, err)
}

// EditForm 打开编辑表单,用已加载的记录预填
// @Summary      编辑表单
// @Tags         后台管理
// @Produce      json
// @Security     VisitorToken
// @Param        entity path string true "books|genres|publishers"
// @Param        id path int true "记录id"
// @Success      200 {object} response.Response
// @Router       /api/v1/admin/{entity}/form/edit/{id} [post]
func (h *ScreenHandler[T, F]) EditForm(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	s := h.current(c)
	_, err := s.StartEdit(id)
	h.done(c, s, err)
}

// UpdateForm 替换表单内容
// @Summary      填写表单
// @Tags         后台管理
// @Accept       json
// @Produce      json
// @Security     VisitorToken
// @Param        entity path string true "books|genres|publishers"
// @Success      200 {object} response.Response
// @Router       /api/v1/admin/{entity}/form [put]
func (h *ScreenHandler[T, F]) UpdateForm(c *gin.Context) {
	var data F
	if err := c.ShouldBindJSON(&data); err != nil {
		bindError(c, err)
		return
	}
	s := h.current(c)
	_, err := s.UpdateForm(data)
	h.done(c, s, err)
}

// CancelForm 关闭表单
// @Summary      关闭表单
// @Tags         后台管理
// @Produce      json
// @Security     VisitorToken
// @Param        entity path string true "books|genres|publishers"
// @Success      200 {object} response.Response
// @Router       /api/v1/admin/{entity}/form [delete]
func (h *ScreenHandler[T, F]) CancelForm(c *gin.Context) {
	s := h.current(c)
	s.CancelForm()
	h.done(c, s, nil)
}

// SubmitForm 提交表单
// @Summary      提交表单
// @Description  必填项缺失返回40008且不请求后端;后端拒绝时message为后端detail
// @Tags         后台管理
// @Produce      json
// @Security     VisitorToken
// @Param        entity path string true "books|genres|publishers"
// @Success      200 {object} response.Response
// @Router       /api/v1/admin/{entity}/form/submit [post]
func (h *ScreenHandler[T, F]) SubmitForm(c *gin.Context) {
	s := h.current(c)
	h.done(c, s, s.SubmitForm(c.Request.Context()))
}

// AdminHandler 后台页面的专属接口
type AdminHandler struct{}

// NewAdminHandler 创建后台处理器
func NewAdminHandler() *AdminHandler {
	return &AdminHandler{}
}

// Stats 仪表盘统计
// @Summary      仪表盘
// @Tags         后台管理
// @Produce      json
// @Security     VisitorToken
// @Success      200 {object} response.Response{data=catalog.Stats}
// @Router       /api/v1/admin/stats [get]
func (h *AdminHandler) Stats(c *gin.Context) {
	stats, err := middleware.MustGetWorkspace(c).Admin.Dashboard.Load(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, stats)
}

// BookLookups 图书表单的出版社/作者/类别下拉数据,随图书页拉取一起刷新
// @Summary      图书表单下拉数据
// @Tags         后台管理
// @Produce      json
// @Security     VisitorToken
// @Success      200 {object} response.Response{data=admin.Lookups}
// @Router       /api/v1/admin/books/lookups [get]
func (h *AdminHandler) BookLookups(c *gin.Context) {
	response.Success(c, middleware.MustGetWorkspace(c).Admin.Books.Lookups())
}

// OrderStatus 批量修改勾选订单的状态
// @Summary      批量改订单状态
// @Tags         后台管理
// @Accept       json
// @Produce      json
// @Security     VisitorToken
// @Param        request body dto.BulkStatusRequest true "目标状态"
// @Success      200 {object} response.Response
// @Failure      200 {object} response.Response "40006未选择记录 / 40901状态不合法"
// @Router       /api/v1/admin/orders/status [post]
func (h *AdminHandler) OrderStatus(c *gin.Context) {
	var req dto.BulkStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	s := middleware.MustGetWorkspace(c).Admin.Orders
	if err := s.BulkStatus(c.Request.Context(), req.Status); err != nil {
		response.ErrorWithState(c, err, s.View())
		return
	}
	response.Success(c, s.View())
}
