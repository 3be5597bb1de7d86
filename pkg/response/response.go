package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/xiebiao/bookstore-storefront/pkg/errors"
)

// Response 统一响应结构
// 约定:
// - code=0 表示成功
// - code!=0 表示失败,message为用户可见提示(后端detail原样透传)
// - HTTP状态码固定200,前端只看code
type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// Success 成功响应
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Code:    0,
		Message: "success",
		Data:    data,
	})
}

// Error 错误响应(自动识别AppError)
func Error(c *gin.Context, err error) {
	appErr := apperrors.GetAppError(err)
	if appErr.Err != nil {
		// 内部错误挂到gin上下文,由日志中间件统一输出
		_ = c.Error(appErr.Err)
	}

	c.JSON(http.StatusOK, Response{
		Code:    appErr.Code,
		Message: appErr.Message,
	})
}

// ErrorWithCode 自定义错误码响应
func ErrorWithCode(c *gin.Context, code int, message string) {
	c.JSON(http.StatusOK, Response{
		Code:    code,
		Message: message,
	})
}

// ErrorWithData 失败但需要携带数据(如字段级校验错误)
func ErrorWithData(c *gin.Context, code int, message string, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Code:    code,
		Message: message,
		Data:    data,
	})
}

// ErrorWithState 失败响应,同时带上操作后的页面状态
// 后台页面和结账流程出错时前端需要据此刷新(错误横幅、保留的勾选等)
func ErrorWithState(c *gin.Context, err error, state interface{}) {
	appErr := apperrors.GetAppError(err)
	if appErr.Err != nil {
		_ = c.Error(appErr.Err)
	}

	c.JSON(http.StatusOK, Response{
		Code:    appErr.Code,
		Message: appErr.Message,
		Data:    state,
	})
}
