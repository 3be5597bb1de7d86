// Package router 组装店面服务的gin引擎
package router

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"github.com/xiebiao/bookstore-storefront/internal/application/admin"
	"github.com/xiebiao/bookstore-storefront/internal/domain/catalog"
	"github.com/xiebiao/bookstore-storefront/internal/domain/order"
	"github.com/xiebiao/bookstore-storefront/internal/interface/http/handler"
	"github.com/xiebiao/bookstore-storefront/internal/interface/http/middleware"
)

// Options 路由开关
type Options struct {
	Mode           string // debug | release | test
	MetricsEnabled bool
	SwaggerEnabled bool
	RateLimiter    *middleware.RateLimiter // nil表示不限流
}

// Handlers 全部HTTP处理器
type Handlers struct {
	Health   *handler.HealthHandler
	Catalog  *handler.CatalogHandler
	Cart     *handler.CartHandler
	Checkout *handler.CheckoutHandler
	Session  *handler.SessionHandler
	Admin    *handler.AdminHandler
}

// New 创建gin引擎并注册全部路由
//
// 中间件顺序:
//  1. Recovery  最外层,兜住后面所有panic
//  2. Logger    请求id + 访问日志
//  3. Metrics   HTTP指标
//  4. CORS
//  5. Identify  仅/api/v1:识别访客、加载工作区
//  6. RateLimit 仅/api/v1:按访客限流
//  7. RequireAdmin 仅后台页面
func New(h Handlers, visitor *middleware.VisitorMiddleware, opts Options, logger *zap.Logger) *gin.Engine {
	switch opts.Mode {
	case gin.ReleaseMode, gin.TestMode, gin.DebugMode:
		gin.SetMode(opts.Mode)
	}

	r := gin.New()
	r.Use(middleware.Recovery(logger), middleware.Logger(logger))
	if opts.MetricsEnabled {
		r.Use(middleware.Metrics())
		r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	}
	r.Use(middleware.CORS())

	r.GET("/health", h.Health.Health)
	if opts.SwaggerEnabled {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	v1 := r.Group("/api/v1")
	v1.Use(visitor.Identify())
	if opts.RateLimiter != nil {
		v1.Use(opts.RateLimiter.Middleware())
	}

	// 店面
	shop := v1.Group("/catalog")
	{
		shop.GET("/books", h.Catalog.ListBooks)
		shop.GET("/books/:id", h.Catalog.GetBook)
		shop.GET("/detail", h.Catalog.Detail)
		shop.DELETE("/detail", h.Catalog.CloseDetail)
	}

	cart := v1.Group("/cart")
	{
		cart.GET("", h.Cart.Get)
		cart.DELETE("", h.Cart.Clear)
		cart.POST("/items", h.Cart.AddItem)
		cart.PUT("/items/:book_id", h.Cart.SetQuantity)
		cart.DELETE("/items/:book_id", h.Cart.RemoveItem)
	}

	co := v1.Group("/checkout")
	{
		co.GET("", h.Checkout.View)
		co.POST("/open", h.Checkout.Open)
		co.POST("/close", h.Checkout.Close)
		co.POST("/proceed", h.Checkout.Proceed)
		co.POST("/back", h.Checkout.Back)
		co.POST("/customer", h.Checkout.SubmitCustomer)
		co.POST("/finalize", h.Checkout.Finalize)
		co.POST("/acknowledge", h.Checkout.Acknowledge)
	}

	// 管理员会话(登录前可访问)
	sess := v1.Group("/admin/session")
	{
		sess.GET("", h.Session.Get)
		sess.POST("/login", h.Session.Login)
		sess.POST("/password", h.Session.ChangePassword)
		sess.POST("/logout", h.Session.Logout)
	}

	// 后台页面(需要管理员会话)
	back := v1.Group("/admin")
	back.Use(middleware.RequireAdmin())
	{
		back.GET("/stats", h.Admin.Stats)

		books := back.Group("/books")
		books.GET("/lookups", h.Admin.BookLookups)
		handler.NewScreenHandler(func(s *admin.Screens) *admin.Screen[catalog.Book, admin.BookForm] {
			return s.Books.Screen
		}).Register(books, true)

		orders := back.Group("/orders")
		orders.POST("/status", h.Admin.OrderStatus)
		handler.NewScreenHandler(func(s *admin.Screens) *admin.Screen[order.Order, admin.NoForm] {
			return s.Orders.Screen
		}).Register(orders, false)

		handler.NewScreenHandler(func(s *admin.Screens) *admin.GenresScreen {
			return s.Genres
		}).Register(back.Group("/genres"), true)

		handler.NewScreenHandler(func(s *admin.Screens) *admin.PublishersScreen {
			return s.Publishers
		}).Register(back.Group("/publishers"), true)
	}

	return r
}
