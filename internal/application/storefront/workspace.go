package storefront

import (
	"context"

	"github.com/xiebiao/bookstore-storefront/internal/application/admin"
	appcatalog "github.com/xiebiao/bookstore-storefront/internal/application/catalog"
	"github.com/xiebiao/bookstore-storefront/internal/domain/cart"
	"github.com/xiebiao/bookstore-storefront/internal/domain/checkout"
	"github.com/xiebiao/bookstore-storefront/internal/domain/session"
)

// Workspace 一个访客的全部视图状态
// 购物车、管理员会话、结账流程、目录浏览、后台页面,生命周期与访客绑定
type Workspace struct {
	VisitorID string
	Cart      *cart.Store
	Session   *session.Store
	Checkout  *checkout.Workflow
	Catalog   *appcatalog.Browser
	Admin     *admin.Screens

	logoutAdminOnShop bool
}

// VisitShop 进入店面
// 开启了logout_admin_on_shop时,管理员进入店面会被自动注销
func (w *Workspace) VisitShop(ctx context.Context) {
	if w.logoutAdminOnShop && w.Session.IsAuthenticated() {
		w.LogoutAdmin(ctx)
	}
}

// LoginAdmin 管理员登录,成功后清空上一个会话留下的后台页面状态
func (w *Workspace) LoginAdmin(ctx context.Context, username, password string) (*session.Grant, error) {
	grant, err := w.Session.Login(ctx, username, password)
	if err != nil {
		return nil, err
	}
	w.Admin.Reset()
	return grant, nil
}

// LogoutAdmin 注销管理员并清空后台页面状态
func (w *Workspace) LogoutAdmin(ctx context.Context) {
	w.Session.Logout(ctx)
	w.Admin.Reset()
}

// Close 取消所有进行中的请求
func (w *Workspace) Close() {
	w.Checkout.Shutdown()
	w.Catalog.Close()
}
