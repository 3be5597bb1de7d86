package storefront

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/xiebiao/bookstore-storefront/internal/application/admin"
	appcatalog "github.com/xiebiao/bookstore-storefront/internal/application/catalog"
	"github.com/xiebiao/bookstore-storefront/internal/domain/cart"
	"github.com/xiebiao/bookstore-storefront/internal/domain/catalog"
	"github.com/xiebiao/bookstore-storefront/internal/domain/checkout"
	"github.com/xiebiao/bookstore-storefront/internal/domain/kv"
	"github.com/xiebiao/bookstore-storefront/internal/domain/order"
	"github.com/xiebiao/bookstore-storefront/internal/domain/session"
	"github.com/xiebiao/bookstore-storefront/pkg/metrics"
)

// Dependencies 工作区依赖的后端端口
type Dependencies struct {
	Books      catalog.BookRepository
	Orders     order.Repository
	Genres     catalog.GenreRepository
	Publishers catalog.PublisherRepository
	Stats      catalog.StatsReader
	Auth       session.Authenticator
	Events     order.EventPublisher // 可为nil
}

// Options 工作区配置
type Options struct {
	WorkspaceTTL       time.Duration
	LogoutAdminOnShop  bool
	CatalogPageSize    int
	AdminPageSize      int
	AdminMetadataLimit int
	RequireAddress     bool
	LoginTimeout       time.Duration
}

type entry struct {
	ws       *Workspace
	lastSeen time.Time
}

// Registry 访客工作区注册表
// 教学要点:
// 1. 首次访问时构建工作区:按访客id隔离kv命名空间,恢复购物车和会话
// 2. singleflight保证同一访客的并发首访只构建一次
// 3. 空闲超过TTL的工作区被回收,状态已持久化在kv里,下次访问重新恢复
type Registry struct {
	mu         sync.Mutex
	workspaces map[string]*entry
	group      singleflight.Group

	store  kv.Store
	deps   Dependencies
	opts   Options
	logger *zap.Logger
	now    func() time.Time
}

// NewRegistry 创建注册表
func NewRegistry(store kv.Store, deps Dependencies, opts Options, logger *zap.Logger) *Registry {
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.WorkspaceTTL <= 0 {
		opts.WorkspaceTTL = 30 * time.Minute
	}
	return &Registry{
		workspaces: make(map[string]*entry),
		store:      store,
		deps:       deps,
		opts:       opts,
		logger:     logger,
		now:        time.Now,
	}
}

// Get 获取访客工作区,不存在则构建
func (r *Registry) Get(ctx context.Context, visitorID string) (*Workspace, error) {
	if ws := r.lookup(visitorID); ws != nil {
		return ws, nil
	}

	v, err, _ := r.group.Do(visitorID, func() (interface{}, error) {
		if ws := r.lookup(visitorID); ws != nil {
			return ws, nil
		}
		// 恢复过程由多个调用方共享,不受单个请求取消影响
		ws := r.build(context.WithoutCancel(ctx), visitorID)

		r.mu.Lock()
		r.workspaces[visitorID] = &entry{ws: ws, lastSeen: r.now()}
		r.mu.Unlock()

		metrics.AddGauge(metrics.ActiveWorkspaces, 1)
		r.logger.Debug("工作区已创建", zap.String("visitor_id", visitorID))
		return ws, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*Workspace), nil
}

// Len 当前工作区数量
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.workspaces)
}

// Sweep 回收空闲超时的工作区,返回回收数量
func (r *Registry) Sweep() int {
	deadline := r.now().Add(-r.opts.WorkspaceTTL)

	r.mu.Lock()
	var expired []*Workspace
	for id, e := range r.workspaces {
		if e.lastSeen.Before(deadline) {
			expired = append(expired, e.ws)
			delete(r.workspaces, id)
		}
	}
	r.mu.Unlock()

	for _, ws := range expired {
		ws.Close()
		metrics.AddGauge(metrics.ActiveWorkspaces, -1)
	}
	if len(expired) > 0 {
		r.logger.Info("回收空闲工作区", zap.Int("count", len(expired)))
	}
	return len(expired)
}

// Run 定期回收,直到ctx结束
func (r *Registry) Run(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.Sweep()
		}
	}
}

// Close 关闭所有工作区
func (r *Registry) Close() {
	r.mu.Lock()
	all := r.workspaces
	r.workspaces = make(map[string]*entry)
	r.mu.Unlock()

	for _, e := range all {
		e.ws.Close()
		metrics.AddGauge(metrics.ActiveWorkspaces, -1)
	}
}

func (r *Registry) lookup(visitorID string) *Workspace {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.workspaces[visitorID]
	if !ok {
		return nil
	}
	e.lastSeen = r.now()
	return e.ws
}

// build 构建并恢复工作区
// 1. kv按访客加前缀隔离
// 2. 先恢复会话(需要校验token),再恢复购物车
func (r *Registry) build(ctx context.Context, visitorID string) *Workspace {
	logger := r.logger.With(zap.String("visitor_id", visitorID))
	store := kv.Namespace(r.store, "visitor:"+visitorID+":")

	sess := session.NewStore(r.deps.Auth, store, logger.Named("session")).
		WithLoginTimeout(r.opts.LoginTimeout)
	sess.Restore(ctx)

	c := cart.NewStore(store, sess, logger.Named("cart"))
	c.Restore(ctx)

	return &Workspace{
		VisitorID: visitorID,
		Cart:      c,
		Session:   sess,
		Checkout: checkout.NewWorkflow(c, r.deps.Orders, r.deps.Events, logger.Named("checkout"),
			checkout.Options{RequireAddress: r.opts.RequireAddress}),
		Catalog: appcatalog.NewBrowser(r.deps.Books, r.opts.CatalogPageSize, logger.Named("catalog")),
		Admin: admin.NewScreens(admin.Repositories{
			Books:      r.deps.Books,
			Orders:     r.deps.Orders,
			Genres:     r.deps.Genres,
			Publishers: r.deps.Publishers,
			Stats:      r.deps.Stats,
		}, admin.Options{
			PageSize:      r.opts.AdminPageSize,
			MetadataLimit: r.opts.AdminMetadataLimit,
		}, logger.Named("admin")),
		logoutAdminOnShop: r.opts.LogoutAdminOnShop,
	}
}
