// Package saga 顺序执行一组步骤,任一步失败时逆序执行已完成步骤的补偿
//
// 适用场景:跨越"后端会话 + 本地持久化"这类没有共同事务的操作。
// 例如管理员登录:远程登录成功但本地写入失败时,需要把刚拿到的会话注销掉。
package saga

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
)

// Step 一个saga步骤
type Step struct {
	Name       string
	Action     func(ctx context.Context) error
	Compensate func(ctx context.Context) error // 可为nil
}

// Saga 步骤编排器,一个实例只执行一次
type Saga struct {
	steps    []Step
	executed []Step
	timeout  time.Duration
	logger   *zap.Logger
}

// NewSaga 创建saga,timeout<=0表示不额外设置超时
func NewSaga(timeout time.Duration, logger *zap.Logger) *Saga {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Saga{
		timeout: timeout,
		logger:  logger,
	}
}

// AddStep 追加步骤
func (s *Saga) AddStep(name string, action, compensate func(ctx context.Context) error) *Saga {
	s.steps = append(s.steps, Step{
		Name:       name,
		Action:     action,
		Compensate: compensate,
	})
	return s
}

// Execute 依次执行所有步骤
// 返回的错误包装了失败步骤的原始错误,可用 errors.Is/As 判断
func (s *Saga) Execute(ctx context.Context) error {
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	for i, step := range s.steps {
		if err := ctx.Err(); err != nil {
			s.compensate(context.WithoutCancel(ctx))
			return fmt.Errorf("saga中断于步骤[%d:%s]: %w", i, step.Name, err)
		}

		if step.Action != nil {
			if err := step.Action(ctx); err != nil {
				// 补偿不受原ctx取消影响
				s.compensate(context.WithoutCancel(ctx))
				return fmt.Errorf("步骤[%d:%s]执行失败: %w", i, step.Name, err)
			}
		}
		s.executed = append(s.executed, step)
	}
	return nil
}

// compensate 逆序补偿;补偿失败只记录日志,继续补偿其余步骤
func (s *Saga) compensate(ctx context.Context) {
	for i := len(s.executed) - 1; i >= 0; i-- {
		step := s.executed[i]
		if step.Compensate == nil {
			continue
		}
		if err := step.Compensate(ctx); err != nil {
			s.logger.Warn("saga补偿失败", zap.String("step", step.Name), zap.Error(err))
		}
	}
	s.executed = nil
}
