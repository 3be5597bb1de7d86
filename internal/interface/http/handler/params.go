package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	apperrors "github.com/xiebiao/bookstore-storefront/pkg/errors"
	"github.com/xiebiao/bookstore-storefront/pkg/response"
)

// pathID 解析路径中的正整数id,失败时直接写出参数错误响应
func pathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		response.ErrorWithCode(c, apperrors.ErrCodeInvalidParams, "参数错误: "+name+"必须是正整数")
		return 0, false
	}
	return id, true
}

// bindError 参数绑定失败
func bindError(c *gin.Context, err error) {
	response.ErrorWithCode(c, apperrors.ErrCodeBindError, "参数错误: "+err.Error())
}
