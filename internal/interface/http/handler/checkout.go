package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/xiebiao/bookstore-storefront/internal/domain/checkout"
	"github.com/xiebiao/bookstore-storefront/internal/interface/http/dto"
	"github.com/xiebiao/bookstore-storefront/internal/interface/http/middleware"
	apperrors "github.com/xiebiao/bookstore-storefront/pkg/errors"
	"github.com/xiebiao/bookstore-storefront/pkg/response"
)

// CheckoutHandler 结账流程
// 非法的步骤切换返回40002,data里带当前状态
type CheckoutHandler struct{}

// NewCheckoutHandler 创建结账处理器
func NewCheckoutHandler() *CheckoutHandler {
	return &CheckoutHandler{}
}

// View 当前结账状态
// @Summary      结账状态
// @Description  包含步骤、购物车条目和金额(小计、23%税、4.99运费、向下取整到分的总价)
// @Tags         结账
// @Produce      json
// @Security     VisitorToken
// @Success      200 {object} response.Response{data=checkout.View}
// @Router       /api/v1/checkout [get]
func (h *CheckoutHandler) View(c *gin.Context) {
	response.Success(c, middleware.MustGetWorkspace(c).Checkout.View())
}

// Open 打开结账浮层,保持原来的步骤
// @Summary      打开结账
// @Tags         结账
// @Produce      json
// @Security     VisitorToken
// @Success      200 {object} response.Response{data=checkout.View}
// @Router       /api/v1/checkout/open [post]
func (h *CheckoutHandler) Open(c *gin.Context) {
	response.Success(c, middleware.MustGetWorkspace(c).Checkout.Open())
}

// Close 关闭结账浮层
// @Summary      关闭结账
// @Tags         结账
// @Produce      json
// @Security     VisitorToken
// @Success      200 {object} response.Response{data=checkout.View}
// @Router       /api/v1/checkout/close [post]
func (h *CheckoutHandler) Close(c *gin.Context) {
	response.Success(c, middleware.MustGetWorkspace(c).Checkout.Close())
}

// Proceed summary -> customer_info
// @Summary      去填写收货信息
// @Tags         结账
// @Produce      json
// @Security     VisitorToken
// @Success      200 {object} response.Response{data=checkout.View}
// @Router       /api/v1/checkout/proceed [post]
func (h *CheckoutHandler) Proceed(c *gin.Context) {
	respond(c)(middleware.MustGetWorkspace(c).Checkout.Checkout())
}

// Back 返回上一步
// @Summary      返回上一步
// @Description  customer_info -> summary; payment -> customer_info(取消正在进行的提交)
// @Tags         结账
// @Produce      json
// @Security     VisitorToken
// @Success      200 {object} response.Response{data=checkout.View}
// @Router       /api/v1/checkout/back [post]
func (h *CheckoutHandler) Back(c *gin.Context) {
	wf := middleware.MustGetWorkspace(c).Checkout
	switch wf.Step() {
	case checkout.StepCustomerInfo:
		respond(c)(wf.BackToSummary())
	case checkout.StepPayment:
		respond(c)(wf.BackToCustomer())
	default:
		response.ErrorWithState(c, checkout.ErrInvalidTransition, wf.View())
	}
}

// SubmitCustomer 提交收货人信息
// @Summary      提交收货信息
// @Description  校验失败返回40900,data.fields为字段错误,停留在customer_info
// @Tags         结账
// @Accept       json
// @Produce      json
// @Security     VisitorToken
// @Param        request body dto.CustomerRequest true "收货人"
// @Success      200 {object} response.Response{data=checkout.View}
// @Failure      200 {object} response.Response{data=dto.CustomerInvalidData} "40900字段校验失败"
// @Router       /api/v1/checkout/customer [post]
func (h *CheckoutHandler) SubmitCustomer(c *gin.Context) {
	var req dto.CustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	view, fields, err := middleware.MustGetWorkspace(c).Checkout.SubmitCustomer(req.Data())
	if err != nil {
		response.ErrorWithState(c, err, view)
		return
	}
	if fields != nil {
		response.ErrorWithData(c, apperrors.ErrCodeInvalidParams, "请检查收货人信息",
			dto.CustomerInvalidData{Fields: fields, Checkout: view})
		return
	}
	response.Success(c, view)
}

// Finalize 提交订单
// @Summary      提交订单
// @Description  下单失败不是接口错误:返回code=0,step=failure,error_message为提示
// @Tags         结账
// @Produce      json
// @Security     VisitorToken
// @Success      200 {object} response.Response{data=checkout.View}
// @Failure      200 {object} response.Response "40002步骤不对 / 40007提交已被取消"
// @Router       /api/v1/checkout/finalize [post]
func (h *CheckoutHandler) Finalize(c *gin.Context) {
	respond(c)(middleware.MustGetWorkspace(c).Checkout.Finalize(c.Request.Context()))
}

// Acknowledge 确认下单结果
// @Summary      确认结果
// @Description  success -> summary(清空收货信息); failure -> payment(不会自动重新提交)
// @Tags         结账
// @Produce      json
// @Security     VisitorToken
// @Success      200 {object} response.Response{data=checkout.View}
// @Router       /api/v1/checkout/acknowledge [post]
func (h *CheckoutHandler) Acknowledge(c *gin.Context) {
	respond(c)(middleware.MustGetWorkspace(c).Checkout.Acknowledge())
}

// respond 步骤切换的统一响应
func respond(c *gin.Context) func(checkout.View, error) {
	return func(view checkout.View, err error) {
		if err != nil {
			response.ErrorWithState(c, err, view)
			return
		}
		response.Success(c, view)
	}
}
