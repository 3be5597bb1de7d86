package main

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/wire"
	"go.uber.org/zap"

	"github.com/xiebiao/bookstore-storefront/internal/application/storefront"
	"github.com/xiebiao/bookstore-storefront/internal/domain/kv"
	"github.com/xiebiao/bookstore-storefront/internal/domain/order"
	"github.com/xiebiao/bookstore-storefront/internal/infrastructure/backend"
	"github.com/xiebiao/bookstore-storefront/internal/infrastructure/config"
	"github.com/xiebiao/bookstore-storefront/internal/infrastructure/events"
	"github.com/xiebiao/bookstore-storefront/internal/infrastructure/persistence"
	"github.com/xiebiao/bookstore-storefront/internal/interface/http/handler"
	"github.com/xiebiao/bookstore-storefront/internal/interface/http/middleware"
	"github.com/xiebiao/bookstore-storefront/internal/interface/http/router"
	"github.com/xiebiao/bookstore-storefront/pkg/jwt"
	"github.com/xiebiao/bookstore-storefront/pkg/mq"
)

// infrastructureSet 存储、后端客户端、消息队列
var infrastructureSet = wire.NewSet(
	provideStore,
	provideBackendClient,
	provideEventPublisher,
)

// repositorySet 后端REST仓储
var repositorySet = wire.NewSet(
	backend.NewBookRepository,
	backend.NewOrderRepository,
	backend.NewGenreRepository,
	backend.NewPublisherRepository,
	backend.NewStatsReader,
	backend.NewAuthenticator,
)

// applicationSet 访客工作区
var applicationSet = wire.NewSet(
	provideDependencies,
	provideRegistry,
	wire.Bind(new(middleware.Workspaces), new(*storefront.Registry)),
	wire.Bind(new(handler.WorkspaceCounter), new(*storefront.Registry)),
)

// middlewareSet 访客识别与限流
var middlewareSet = wire.NewSet(
	provideJWTManager,
	middleware.NewVisitorMiddleware,
	provideRouterOptions,
)

// handlerSet HTTP处理器
var handlerSet = wire.NewSet(
	handler.NewHealthHandler,
	handler.NewCatalogHandler,
	provideCartHandler,
	handler.NewCheckoutHandler,
	handler.NewSessionHandler,
	handler.NewAdminHandler,
	wire.Struct(new(router.Handlers), "*"),
)

// App 组装完成的应用
type App struct {
	Engine   *gin.Engine
	Registry *storefront.Registry
}

// provideStore 按配置打开kv存储
// persistence.Cleanup是具名类型,Wire只认func()作为cleanup,这里转一下
func provideStore(ctx context.Context, cfg *config.Config, logger *zap.Logger) (kv.Store, func(), error) {
	store, cleanup, err := persistence.NewStore(ctx, cfg, logger)
	if err != nil {
		return nil, nil, err
	}
	return store, func() { cleanup() }, nil
}

func provideBackendClient(cfg *config.Config, logger *zap.Logger) *backend.Client {
	b := cfg.Backend
	return backend.NewClient(backend.Config{
		BaseURL: b.BaseURL,
		Timeout: b.Timeout,
		BasicAuth: backend.BasicAuth{
			Enabled:  b.BasicAuth.Enabled,
			Username: b.BasicAuth.Username,
			Password: b.BasicAuth.Password,
		},
		Breaker: backend.BreakerConfig{
			ConsecutiveFailures: b.Breaker.ConsecutiveFailures,
			OpenTimeout:         b.Breaker.OpenTimeout,
			HalfOpenRequests:    b.Breaker.HalfOpenRequests,
		},
	}, logger.Named("backend"))
}

// provideEventPublisher 启用MQ时发布下单事件,否则丢弃
func provideEventPublisher(cfg *config.Config, logger *zap.Logger) (order.EventPublisher, func(), error) {
	if !cfg.MQ.Enabled {
		return events.Nop{}, func() {}, nil
	}

	pub, err := mq.NewPublisher(cfg.MQ.URL, cfg.MQ.Exchange, cfg.MQ.ExchangeType, logger.Named("mq"))
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() {
		if err := pub.Close(); err != nil {
			logger.Warn("关闭消息发布者失败", zap.Error(err))
		}
	}
	return events.NewOrderPublisher(pub), cleanup, nil
}

func provideDependencies(
	books *backend.BookRepository,
	orders *backend.OrderRepository,
	genres *backend.GenreRepository,
	publishers *backend.PublisherRepository,
	stats *backend.StatsReader,
	auth *backend.Authenticator,
	publisher order.EventPublisher,
) storefront.Dependencies {
	return storefront.Dependencies{
		Books:      books,
		Orders:     orders,
		Genres:     genres,
		Publishers: publishers,
		Stats:      stats,
		Auth:       auth,
		Events:     publisher,
	}
}

// provideRegistry 创建访客工作区注册表,退出时关闭所有工作区
func provideRegistry(store kv.Store, deps storefront.Dependencies, cfg *config.Config, logger *zap.Logger) (*storefront.Registry, func()) {
	s := cfg.Storefront
	registry := storefront.NewRegistry(store, deps, storefront.Options{
		WorkspaceTTL:       s.WorkspaceTTL,
		LogoutAdminOnShop:  s.LogoutAdminOnShop,
		CatalogPageSize:    s.CatalogPageSize,
		AdminPageSize:      s.AdminPageSize,
		AdminMetadataLimit: s.AdminMetadataLimit,
		RequireAddress:     cfg.Checkout.RequireAddress,
		LoginTimeout:       s.LoginTimeout,
	}, logger.Named("storefront"))
	return registry, registry.Close
}

func provideJWTManager(cfg *config.Config) *jwt.Manager {
	return jwt.NewManager(cfg.Visitor.JWTSecret, cfg.Visitor.TokenTTL)
}

func provideCartHandler(books *backend.BookRepository) *handler.CartHandler {
	return handler.NewCartHandler(books)
}

// provideRouterOptions swagger只在非release模式开放
func provideRouterOptions(cfg *config.Config) router.Options {
	opts := router.Options{
		Mode:           cfg.Server.Mode,
		MetricsEnabled: cfg.Metrics.Enabled,
		SwaggerEnabled: cfg.Server.Mode != gin.ReleaseMode,
	}
	if cfg.RateLimit.Enabled {
		opts.RateLimiter = middleware.NewRateLimiter(cfg.RateLimit.RPS, cfg.RateLimit.Burst)
	}
	return opts
}
