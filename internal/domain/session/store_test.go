package session

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xiebiao/bookstore-storefront/internal/domain/kv"
	"github.com/xiebiao/bookstore-storefront/internal/infrastructure/persistence/memory"
	apperrors "github.com/xiebiao/bookstore-storefront/pkg/errors"
)

// mockAuth 按需替换各个方法的行为
type mockAuth struct {
	LoginFn          func(ctx context.Context, username, password string) (*Grant, error)
	ChangePasswordFn func(ctx context.Context, token, oldPassword, newPassword string) error
	LogoutFn         func(ctx context.Context, token string) error
	VerifyFn         func(ctx context.Context, token string) (bool, error)

	loggedOut []string
}

func (m *mockAuth) Login(ctx context.Context, username, password string) (*Grant, error) {
	return m.LoginFn(ctx, username, password)
}

func (m *mockAuth) ChangePassword(ctx context.Context, token, oldPassword, newPassword string) error {
	return m.ChangePasswordFn(ctx, token, oldPassword, newPassword)
}

func (m *mockAuth) Logout(ctx context.Context, token string) error {
	m.loggedOut = append(m.loggedOut, token)
	if m.LogoutFn == nil {
		return nil
	}
	return m.LogoutFn(ctx, token)
}

func (m *mockAuth) Verify(ctx context.Context, token string) (bool, error) {
	return m.VerifyFn(ctx, token)
}

func okLogin(token string, change bool) func(context.Context, string, string) (*Grant, error) {
	return func(context.Context, string, string) (*Grant, error) {
		return &Grant{SessionToken: token, RequiresPasswordChange: change}, nil
	}
}

// brokenFlagStore 写改密标记时失败
type brokenFlagStore struct{ *memory.Store }

func (b brokenFlagStore) Set(ctx context.Context, key, value string) error {
	if key == kv.KeyRequiresPasswordChange {
		return errors.New("write failed")
	}
	return b.Store.Set(ctx, key, value)
}

func TestLogin_ReplacesActiveSession(t *testing.T) {
	ctx := context.Background()
	mem := memory.NewStore()
	tokens := []string{"tok-1", "tok-2"}
	auth := &mockAuth{LoginFn: func(context.Context, string, string) (*Grant, error) {
		tok := tokens[0]
		tokens = tokens[1:]
		return &Grant{SessionToken: tok}, nil
	}}
	s := NewStore(auth, mem, nil)

	_, err := s.Login(ctx, "admin", "secret")
	require.NoError(t, err)
	assert.Empty(t, auth.loggedOut)

	_, err = s.Login(ctx, "admin", "secret")
	require.NoError(t, err)
	assert.Equal(t, "tok-2", s.Token())
	assert.Equal(t, []string{"tok-1"}, auth.loggedOut, "被替换的token需要远程注销")

	tok, err := mem.Get(ctx, kv.KeySessionToken)
	require.NoError(t, err)
	assert.Equal(t, "tok-2", tok)
}

func TestLogin_PersistsSession(t *testing.T) {
	ctx := context.Background()
	mem := memory.NewStore()
	s := NewStore(&mockAuth{LoginFn: okLogin("tok-1", true)}, mem, nil)

	grant, err := s.Login(ctx, "admin", "secret")
	require.NoError(t, err)
	assert.Equal(t, "tok-1", grant.SessionToken)

	assert.True(t, s.IsAuthenticated())
	assert.True(t, s.RequiresPasswordChange())

	tok, err := mem.Get(ctx, kv.KeySessionToken)
	require.NoError(t, err)
	assert.Equal(t, "tok-1", tok)
	flag, err := mem.Get(ctx, kv.KeyRequiresPasswordChange)
	require.NoError(t, err)
	assert.Equal(t, "true", flag)
}

func TestLogin_BackendRejects(t *testing.T) {
	auth := &mockAuth{LoginFn: func(context.Context, string, string) (*Grant, error) {
		return nil, apperrors.Upstream(401, "Invalid credentials")
	}}
	s := NewStore(auth, memory.NewStore(), nil)

	_, err := s.Login(context.Background(), "admin", "bad")
	assert.ErrorIs(t, err, ErrAuthentication)
	assert.False(t, s.IsAuthenticated())
}

func TestLogin_PersistFailureRevokesRemoteSession(t *testing.T) {
	ctx := context.Background()
	mem := memory.NewStore()
	auth := &mockAuth{LoginFn: okLogin("tok-2", false)}
	s := NewStore(auth, brokenFlagStore{mem}, nil)

	_, err := s.Login(ctx, "admin", "secret")
	require.Error(t, err)
	assert.False(t, s.IsAuthenticated())
	assert.Equal(t, []string{"tok-2"}, auth.loggedOut)

	_, err = mem.Get(ctx, kv.KeySessionToken)
	assert.ErrorIs(t, err, kv.ErrNotFound)
}

func TestChangePassword(t *testing.T) {
	ctx := context.Background()

	t.Run("未登录", func(t *testing.T) {
		s := NewStore(&mockAuth{}, memory.NewStore(), nil)
		assert.ErrorIs(t, s.ChangePassword(ctx, "a", "b"), ErrNotAuthenticated)
	})

	t.Run("成功清除标记", func(t *testing.T) {
		mem := memory.NewStore()
		var gotToken string
		auth := &mockAuth{
			LoginFn: okLogin("tok", true),
			ChangePasswordFn: func(_ context.Context, token, _, _ string) error {
				gotToken = token
				return nil
			},
		}
		s := NewStore(auth, mem, nil)
		_, err := s.Login(ctx, "admin", "init")
		require.NoError(t, err)

		require.NoError(t, s.ChangePassword(ctx, "init", "new"))
		assert.Equal(t, "tok", gotToken)
		assert.False(t, s.RequiresPasswordChange())
		flag, _ := mem.Get(ctx, kv.KeyRequiresPasswordChange)
		assert.Equal(t, "false", flag)
	})

	t.Run("后端拒绝", func(t *testing.T) {
		auth := &mockAuth{
			LoginFn: okLogin("tok", true),
			ChangePasswordFn: func(context.Context, string, string, string) error {
				return apperrors.Upstream(400, "")
			},
		}
		s := NewStore(auth, memory.NewStore(), nil)
		_, err := s.Login(ctx, "admin", "init")
		require.NoError(t, err)

		err = s.ChangePassword(ctx, "wrong", "new")
		appErr := apperrors.GetAppError(err)
		assert.Equal(t, "Password change failed", appErr.Message)
		assert.True(t, s.RequiresPasswordChange())
	})
}

func TestLogout_AlwaysClearsLocalState(t *testing.T) {
	ctx := context.Background()
	mem := memory.NewStore()
	auth := &mockAuth{
		LoginFn:  okLogin("tok", false),
		LogoutFn: func(context.Context, string) error { return errors.New("connection refused") },
	}
	s := NewStore(auth, mem, nil)
	_, err := s.Login(ctx, "admin", "pw")
	require.NoError(t, err)

	s.Logout(ctx)
	assert.False(t, s.IsAuthenticated())
	assert.Empty(t, s.Token())
	assert.Zero(t, mem.Len())
}

func TestVerifyToken_FailClosed(t *testing.T) {
	ctx := context.Background()
	s := NewStore(&mockAuth{VerifyFn: func(context.Context, string) (bool, error) {
		return true, errors.New("timeout")
	}}, memory.NewStore(), nil)

	assert.False(t, s.VerifyToken(ctx, "tok"))
	assert.False(t, s.VerifyToken(ctx, ""))
}

func TestRestore(t *testing.T) {
	ctx := context.Background()

	t.Run("失效token被清除", func(t *testing.T) {
		mem := memory.NewStore()
		require.NoError(t, mem.Set(ctx, kv.KeySessionToken, "stale"))
		require.NoError(t, mem.Set(ctx, kv.KeyRequiresPasswordChange, "true"))

		s := NewStore(&mockAuth{VerifyFn: func(context.Context, string) (bool, error) {
			return false, nil
		}}, mem, nil)
		s.Restore(ctx)

		assert.False(t, s.IsAuthenticated())
		_, err := mem.Get(ctx, kv.KeySessionToken)
		assert.ErrorIs(t, err, kv.ErrNotFound)
		_, err = mem.Get(ctx, kv.KeyRequiresPasswordChange)
		assert.ErrorIs(t, err, kv.ErrNotFound)
	})

	t.Run("有效token恢复标记", func(t *testing.T) {
		mem := memory.NewStore()
		require.NoError(t, mem.Set(ctx, kv.KeySessionToken, "good"))
		require.NoError(t, mem.Set(ctx, kv.KeyRequiresPasswordChange, "true"))

		s := NewStore(&mockAuth{VerifyFn: func(_ context.Context, token string) (bool, error) {
			return token == "good", nil
		}}, mem, nil)
		s.Restore(ctx)

		assert.True(t, s.IsAuthenticated())
		assert.Equal(t, "good", s.Token())
		assert.True(t, s.RequiresPasswordChange())
	})

	t.Run("没有持久化会话", func(t *testing.T) {
		s := NewStore(&mockAuth{}, memory.NewStore(), nil)
		s.Restore(ctx)
		assert.False(t, s.IsAuthenticated())
	})
}
