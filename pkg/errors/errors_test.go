package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetailOr(t *testing.T) {
	t.Run("后端给出detail时原样返回", func(t *testing.T) {
		err := Upstream(400, "Out of stock")
		assert.Equal(t, "Out of stock", DetailOr(err, "fallback"))
	})

	t.Run("detail为空时使用fallback", func(t *testing.T) {
		err := Upstream(500, "")
		assert.Equal(t, "fallback", DetailOr(err, "fallback"))
	})

	t.Run("网络错误使用fallback", func(t *testing.T) {
		err := Unavailable(errors.New("dial tcp: refused"))
		assert.Equal(t, "fallback", DetailOr(err, "fallback"))
	})

	t.Run("被fmt包装后仍能识别", func(t *testing.T) {
		err := fmt.Errorf("create order: %w", Upstream(409, "Duplicate"))
		assert.True(t, IsUpstreamRejected(err))
		assert.Equal(t, "Duplicate", DetailOr(err, "fallback"))
	})
}

func TestAppError_Is(t *testing.T) {
	derived := WithCode(ErrCodeUnauthorized, "会话已失效", errors.New("no token"))

	assert.True(t, errors.Is(derived, ErrUnauthorized))
	assert.False(t, errors.Is(derived, ErrInvalidParams))
}

func TestGetAppError(t *testing.T) {
	appErr := GetAppError(errors.New("boom"))
	assert.Equal(t, ErrCodeInternal, appErr.Code)

	original := New(ErrCodeNothingSelected, "No items selected")
	assert.Same(t, original, GetAppError(fmt.Errorf("wrap: %w", original)))
}
