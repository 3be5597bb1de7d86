package session

import (
	"context"
	"errors"
	"strconv"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/xiebiao/bookstore-storefront/internal/domain/kv"
	apperrors "github.com/xiebiao/bookstore-storefront/pkg/errors"
	"github.com/xiebiao/bookstore-storefront/pkg/saga"
)

// 会话领域错误
var (
	// ErrAuthentication 登录失败(用户名密码错误或后端拒绝)
	ErrAuthentication = apperrors.New(apperrors.ErrCodeAuthenticationFailed, "Login failed")

	// ErrNotAuthenticated 没有有效的管理员会话
	ErrNotAuthenticated = apperrors.New(apperrors.ErrCodeUnauthorized, "Not authenticated")
)

const passwordChangeFailed = "Password change failed"

// Grant 登录成功后后端下发的会话
type Grant struct {
	SessionToken           string `json:"session_token"`
	RequiresPasswordChange bool   `json:"requires_password_change"`
}

// Authenticator 后端认证接口
type Authenticator interface {
	Login(ctx context.Context, username, password string) (*Grant, error)
	ChangePassword(ctx context.Context, token, oldPassword, newPassword string) error
	Logout(ctx context.Context, token string) error
	// Verify 校验token;err非nil时调用方按无效处理
	Verify(ctx context.Context, token string) (bool, error)
}

// Store 管理员会话
// 教学要点:
// 1. 内存状态 + kv持久化两份,内存状态只在持久化成功后才切换
// 2. 校验失败一律按"无效"处理(fail-closed)
// 3. 实现了cart.Gate,登录期间购物车只读
type Store struct {
	mu             sync.RWMutex
	token          string
	requiresChange bool

	auth   Authenticator
	store  kv.Store
	logger *zap.Logger
	// loginTimeout 登录saga整体超时,0表示只受调用方ctx控制
	loginTimeout time.Duration
}

// NewStore 创建会话存储,需要调用Restore恢复持久化会话
func NewStore(auth Authenticator, store kv.Store, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{
		auth:   auth,
		store:  store,
		logger: logger,
	}
}

// WithLoginTimeout 设置登录saga超时
func (s *Store) WithLoginTimeout(d time.Duration) *Store {
	s.loginTimeout = d
	return s
}

// IsAuthenticated 是否有管理员会话
func (s *Store) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token != ""
}

// Token 当前会话token,未登录时为空
func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// RequiresPasswordChange 是否需要先修改初始密码
func (s *Store) RequiresPasswordChange() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.requiresChange
}

// Login 管理员登录
// 两步saga:
// 1. 远程登录(补偿:注销刚拿到的token)
// 2. 写入kv(补偿:删除已写入的键)
// 两步都成功后才切换内存状态;已有会话时替换,旧token尽力远程注销
func (s *Store) Login(ctx context.Context, username, password string) (*Grant, error) {
	var grant *Grant

	sg := saga.NewSaga(s.loginTimeout, s.logger).
		AddStep("remote_login",
			func(ctx context.Context) error {
				g, err := s.auth.Login(ctx, username, password)
				if err != nil {
					return err
				}
				grant = g
				return nil
			},
			func(ctx context.Context) error {
				return s.auth.Logout(ctx, grant.SessionToken)
			}).
		AddStep("persist",
			func(ctx context.Context) error {
				return s.persist(ctx, grant.SessionToken, grant.RequiresPasswordChange)
			},
			func(ctx context.Context) error {
				return s.store.Delete(ctx, kv.KeySessionToken, kv.KeyRequiresPasswordChange)
			})

	if err := sg.Execute(ctx); err != nil {
		if grant == nil {
			s.logger.Info("管理员登录失败", zap.String("username", username), zap.Error(err))
			if apperrors.IsUpstreamRejected(err) {
				return nil, ErrAuthentication
			}
			return nil, err
		}
		s.logger.Error("保存管理员会话失败", zap.Error(err))
		return nil, apperrors.WithCode(apperrors.ErrCodeStorageError, "保存会话失败", err)
	}

	s.mu.Lock()
	prev := s.token
	s.token = grant.SessionToken
	s.requiresChange = grant.RequiresPasswordChange
	s.mu.Unlock()

	if prev != "" && prev != grant.SessionToken {
		if err := s.auth.Logout(ctx, prev); err != nil {
			s.logger.Warn("注销被替换的会话失败,已忽略", zap.Error(err))
		}
	}

	s.logger.Info("管理员登录成功",
		zap.String("username", username),
		zap.Bool("requires_password_change", grant.RequiresPasswordChange))
	return grant, nil
}

// ChangePassword 修改密码,成功后清除"需要改密"标记
func (s *Store) ChangePassword(ctx context.Context, oldPassword, newPassword string) error {
	token := s.Token()
	if token == "" {
		return ErrNotAuthenticated
	}

	if err := s.auth.ChangePassword(ctx, token, oldPassword, newPassword); err != nil {
		if apperrors.IsUpstreamRejected(err) {
			return apperrors.WithCode(apperrors.ErrCodeBusinessError,
				apperrors.DetailOr(err, passwordChangeFailed), err)
		}
		return err
	}

	s.mu.Lock()
	s.requiresChange = false
	s.mu.Unlock()

	if err := s.store.Set(ctx, kv.KeyRequiresPasswordChange, "false"); err != nil {
		s.logger.Warn("保存改密标记失败", zap.Error(err))
	}
	return nil
}

// Logout 注销
// 远程注销尽力而为,本地状态总是清除
func (s *Store) Logout(ctx context.Context) {
	s.mu.Lock()
	token := s.token
	s.token = ""
	s.requiresChange = false
	s.mu.Unlock()

	if token != "" {
		if err := s.auth.Logout(ctx, token); err != nil {
			s.logger.Warn("远程注销失败,已忽略", zap.Error(err))
		}
	}
	if err := s.store.Delete(ctx, kv.KeySessionToken, kv.KeyRequiresPasswordChange); err != nil {
		s.logger.Warn("删除持久化会话失败", zap.Error(err))
	}
}

// VerifyToken 校验token,任何错误都视为无效
func (s *Store) VerifyToken(ctx context.Context, token string) bool {
	if token == "" {
		return false
	}
	valid, err := s.auth.Verify(ctx, token)
	if err != nil {
		s.logger.Debug("token校验出错,按无效处理", zap.Error(err))
		return false
	}
	return valid
}

// Restore 恢复持久化会话
// 有token则重新校验:无效则删除持久化数据,有效则恢复登录状态和改密标记
func (s *Store) Restore(ctx context.Context) {
	token, err := s.store.Get(ctx, kv.KeySessionToken)
	if err != nil {
		if !errors.Is(err, kv.ErrNotFound) {
			s.logger.Warn("读取持久化会话失败", zap.Error(err))
		}
		return
	}
	if token == "" {
		return
	}

	if !s.VerifyToken(ctx, token) {
		if err := s.store.Delete(ctx, kv.KeySessionToken, kv.KeyRequiresPasswordChange); err != nil {
			s.logger.Warn("删除失效会话失败", zap.Error(err))
		}
		s.logger.Info("持久化会话已失效")
		return
	}

	flag, err := s.store.Get(ctx, kv.KeyRequiresPasswordChange)
	if err != nil && !errors.Is(err, kv.ErrNotFound) {
		s.logger.Warn("读取改密标记失败", zap.Error(err))
	}

	s.mu.Lock()
	s.token = token
	s.requiresChange = flag == "true"
	s.mu.Unlock()
}

// persist 写入token和改密标记;第二个键失败时回收第一个键
func (s *Store) persist(ctx context.Context, token string, requiresChange bool) error {
	if err := s.store.Set(ctx, kv.KeySessionToken, token); err != nil {
		return err
	}
	if err := s.store.Set(ctx, kv.KeyRequiresPasswordChange, strconv.FormatBool(requiresChange)); err != nil {
		if delErr := s.store.Delete(ctx, kv.KeySessionToken); delErr != nil {
			s.logger.Warn("回收会话token失败", zap.Error(delErr))
		}
		return err
	}
	return nil
}
