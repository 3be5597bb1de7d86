package errors

import (
	"errors"
	"fmt"
)

// AppError 统一错误类型
// 设计说明:
// 1. Code 用于前端按错误类别分支处理(如40100跳转登录页)
// 2. Message 直接展示给用户(后端返回的detail也放在这里,原样透传)
// 3. Err 保留底层错误,只写日志,不返回给前端
type AppError struct {
	Code    int    `json:"code"`    // 业务错误码
	Message string `json:"message"` // 用户可见的提示
	Err     error  `json:"-"`       // 内部错误(不序列化)
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%d] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%d] %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Is 按错误码比较,使 errors.Is(err, ErrUnauthorized) 对派生出的同码错误也成立
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// New 创建业务错误
func New(code int, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// Wrap 包装内部错误,错误码固定为 ErrCodeInternal
func Wrap(err error, message string) *AppError {
	return &AppError{
		Code:    ErrCodeInternal,
		Message: message,
		Err:     err,
	}
}

// Wrapf 同 Wrap,支持格式化
func Wrapf(err error, format string, args ...interface{}) *AppError {
	return &AppError{
		Code:    ErrCodeInternal,
		Message: fmt.Sprintf(format, args...),
		Err:     err,
	}
}

// WithCode 包装底层错误并指定错误码
func WithCode(code int, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// ========== 错误码定义 ==========
// 5xxxx 服务端/上游错误, 4xxxx 客户端错误

const (
	ErrCodeInternal     = 50000 // 内部错误
	ErrCodeStorageError = 50001 // KV存储错误

	ErrCodeUpstreamRejected    = 50201 // 后端返回非2xx
	ErrCodeUpstreamUnavailable = 50301 // 后端不可达(网络错误或熔断打开)

	ErrCodeUnauthorized         = 40100 // 未登录(无管理员会话)
	ErrCodeInvalidToken         = 40101 // 访客Token无效
	ErrCodeTokenExpired         = 40102 // 访客Token过期
	ErrCodeAuthenticationFailed = 40103 // 管理员登录失败

	ErrCodeNotFound = 40400 // 资源不存在

	ErrCodeBusinessError     = 40000 // 业务错误(通用)
	ErrCodeInvalidTransition = 40002 // 结账流程状态不允许此操作
	ErrCodeNothingSelected   = 40006 // 未选择任何记录
	ErrCodeSuperseded        = 40007 // 请求已被新操作取代
	ErrCodeRequiredFields    = 40008 // 表单必填项缺失
	ErrCodeTooManyRequests   = 40029 // 请求过于频繁

	ErrCodeInvalidParams = 40900 // 参数错误
	ErrCodeBindError     = 40901 // 参数绑定失败
)

// ========== 预定义错误 ==========

var (
	ErrInternal     = New(ErrCodeInternal, "系统内部错误")
	ErrStorageError = New(ErrCodeStorageError, "存储服务错误")

	ErrUnauthorized = New(ErrCodeUnauthorized, "请先登录管理后台")
	ErrInvalidToken = New(ErrCodeInvalidToken, "无效的访客Token")
	ErrTokenExpired = New(ErrCodeTokenExpired, "访客Token已过期")

	ErrNotFound        = New(ErrCodeNotFound, "资源不存在")
	ErrTooManyRequests = New(ErrCodeTooManyRequests, "请求过于频繁,请稍后再试")

	ErrInvalidParams = New(ErrCodeInvalidParams, "参数错误")
	ErrBindError     = New(ErrCodeBindError, "参数格式错误")
)

// ========== 上游(后端REST)错误 ==========

// Upstream 后端返回非2xx时构造的错误
// detail 为后端响应体中的 detail 字段,可能为空
func Upstream(status int, detail string) *AppError {
	return &AppError{
		Code:    ErrCodeUpstreamRejected,
		Message: detail,
		Err:     fmt.Errorf("upstream status %d", status),
	}
}

// Unavailable 网络错误/熔断打开时构造的错误
func Unavailable(err error) *AppError {
	return &AppError{
		Code:    ErrCodeUpstreamUnavailable,
		Message: "后端服务不可用",
		Err:     err,
	}
}

// IsUpstreamRejected 是否为后端非2xx错误
func IsUpstreamRejected(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Code == ErrCodeUpstreamRejected
}

// DetailOr 返回后端给出的detail,没有detail(或不是非2xx错误)时返回fallback
func DetailOr(err error, fallback string) string {
	var appErr *AppError
	if errors.As(err, &appErr) && appErr.Code == ErrCodeUpstreamRejected && appErr.Message != "" {
		return appErr.Message
	}
	return fallback
}

// ========== 辅助函数 ==========

// IsAppError 判断是否为业务错误
func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

// GetAppError 获取AppError(如果不是则包装为内部错误)
func GetAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return Wrap(err, "系统内部错误")
}
