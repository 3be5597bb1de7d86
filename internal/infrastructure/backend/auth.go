package backend

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"

	"github.com/xiebiao/bookstore-storefront/internal/domain/session"
)

// Authenticator 管理员认证的REST实现
// 后端的会话token通过查询参数token传递
type Authenticator struct {
	client *Client
}

// NewAuthenticator 创建认证适配器
func NewAuthenticator(client *Client) *Authenticator {
	return &Authenticator{client: client}
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type changePasswordRequest struct {
	OldPassword string `json:"old_password"`
	NewPassword string `json:"new_password"`
}

// Login 管理员登录
func (a *Authenticator) Login(ctx context.Context, username, password string) (*session.Grant, error) {
	var grant session.Grant
	err := a.client.do(ctx, call{
		endpoint: "admin.login",
		method:   http.MethodPost,
		path:     apiPrefix + "/admin/login",
		body:     loginRequest{Username: username, Password: password},
	}, &grant)
	if err != nil {
		return nil, err
	}
	return &grant, nil
}

// ChangePassword 修改密码
func (a *Authenticator) ChangePassword(ctx context.Context, token, oldPassword, newPassword string) error {
	return a.client.do(ctx, call{
		endpoint: "admin.change_password",
		method:   http.MethodPost,
		path:     apiPrefix + "/admin/change-password",
		query:    tokenQuery(token),
		body:     changePasswordRequest{OldPassword: oldPassword, NewPassword: newPassword},
	}, nil)
}

// Logout 注销后端会话
func (a *Authenticator) Logout(ctx context.Context, token string) error {
	return a.client.do(ctx, call{
		endpoint: "admin.logout",
		method:   http.MethodPost,
		path:     apiPrefix + "/admin/logout",
		query:    tokenQuery(token),
	}, nil)
}

// Verify 校验token
// 只认响应体里的valid===true,不看状态码;解析失败按无效处理
func (a *Authenticator) Verify(ctx context.Context, token string) (bool, error) {
	_, body, err := a.client.send(ctx, call{
		endpoint: "admin.verify",
		method:   http.MethodGet,
		path:     apiPrefix + "/admin/verify",
		query:    tokenQuery(token),
	})
	if err != nil {
		return false, err
	}

	var resp struct {
		Valid bool `json:"valid"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return false, nil
	}
	return resp.Valid, nil
}

func tokenQuery(token string) url.Values {
	return url.Values{"token": {token}}
}
