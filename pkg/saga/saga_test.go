package saga

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestSaga_Execute_Success(t *testing.T) {
	var trail []string
	s := NewSaga(time.Second, zap.NewNop())
	s.AddStep("远程登录",
		func(ctx context.Context) error { trail = append(trail, "login"); return nil },
		func(ctx context.Context) error { trail = append(trail, "logout"); return nil },
	).AddStep("持久化会话",
		func(ctx context.Context) error { trail = append(trail, "persist"); return nil },
		nil,
	)

	require.NoError(t, s.Execute(context.Background()))
	assert.Equal(t, []string{"login", "persist"}, trail)
}

func TestSaga_Execute_FailureCompensatesInReverse(t *testing.T) {
	errPersist := errors.New("disk full")
	var trail []string

	s := NewSaga(0, nil)
	s.AddStep("a",
		func(ctx context.Context) error { trail = append(trail, "a"); return nil },
		func(ctx context.Context) error { trail = append(trail, "undo-a"); return nil },
	)
	s.AddStep("b",
		func(ctx context.Context) error { trail = append(trail, "b"); return nil },
		func(ctx context.Context) error { trail = append(trail, "undo-b"); return errors.New("ignored") },
	)
	s.AddStep("c",
		func(ctx context.Context) error { return errPersist },
		func(ctx context.Context) error { trail = append(trail, "undo-c"); return nil },
	)

	err := s.Execute(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, errPersist)
	// 失败步骤本身不补偿;补偿失败不影响后续补偿
	assert.Equal(t, []string{"a", "b", "undo-b", "undo-a"}, trail)
}

func TestSaga_Execute_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	compensated := false

	s := NewSaga(0, nil)
	s.AddStep("first",
		func(ctx context.Context) error { cancel(); return nil },
		func(ctx context.Context) error {
			compensated = true
			assert.NoError(t, ctx.Err(), "补偿使用的ctx不应已取消")
			return nil
		},
	)
	s.AddStep("second", func(ctx context.Context) error {
		t.Fatal("ctx取消后不应执行后续步骤")
		return nil
	}, nil)

	err := s.Execute(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.True(t, compensated)
}
