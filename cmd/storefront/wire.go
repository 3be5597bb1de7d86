//go:build wireinject
// +build wireinject

// Wire依赖注入配置
//
// 修改Provider后运行 `wire gen ./cmd/storefront` 重新生成wire_gen.go
//
// 依赖链:
// *gin.Engine 需要 → router.Handlers + *middleware.VisitorMiddleware
// *middleware.VisitorMiddleware 需要 → *jwt.Manager + middleware.Workspaces(*storefront.Registry)
// *storefront.Registry 需要 → kv.Store + storefront.Dependencies
// storefront.Dependencies 需要 → backend的各个仓储 + order.EventPublisher

package main

import (
	"context"

	"github.com/google/wire"
	"go.uber.org/zap"

	"github.com/xiebiao/bookstore-storefront/internal/infrastructure/config"
	"github.com/xiebiao/bookstore-storefront/internal/interface/http/router"
)

// InitializeApp 组装整个应用
// cleanup按构造的逆序释放:工作区 → 消息队列 → 存储
func InitializeApp(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*App, func(), error) {
	wire.Build(
		infrastructureSet,
		repositorySet,
		applicationSet,
		middlewareSet,
		handlerSet,
		router.New,
		wire.Struct(new(App), "*"),
	)
	return nil, nil, nil
}
