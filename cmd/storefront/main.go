// @title           Bookstore Storefront API
// @version         1.0
// @description     书店店面BFF:目录浏览、购物车、结账流程与管理后台。
// @description     所有接口HTTP状态固定200,业务结果看响应体code。
// @BasePath        /
// @securityDefinitions.apikey VisitorToken
// @in              header
// @name            X-Visitor-Token
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	_ "github.com/xiebiao/bookstore-storefront/docs"
	"github.com/xiebiao/bookstore-storefront/internal/infrastructure/config"
	"github.com/xiebiao/bookstore-storefront/internal/infrastructure/logger"
	"github.com/xiebiao/bookstore-storefront/pkg/metrics"
	"github.com/xiebiao/bookstore-storefront/pkg/tracing"
)

// main 店面服务入口
//
// 启动顺序: 配置 → 日志 → 指标/追踪 → Wire组装 → 工作区回收 → HTTP服务
// 收到SIGINT/SIGTERM后先停止接收请求,再按逆序释放资源
func main() {
	// 步骤1: 加载配置
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("加载配置失败: %v", err)
	}

	// 步骤2: 日志
	zlog, err := logger.New(cfg.Log)
	if err != nil {
		log.Fatalf("初始化日志失败: %v", err)
	}
	defer func() { _ = zlog.Sync() }()

	if err := run(cfg, zlog); err != nil {
		zlog.Fatal("服务异常退出", zap.Error(err))
	}
}

func run(cfg *config.Config, zlog *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	zlog.Info("配置加载成功",
		zap.Int("port", cfg.Server.Port),
		zap.String("mode", cfg.Server.Mode),
		zap.String("backend", cfg.Backend.BaseURL),
		zap.String("storage", cfg.Storage.Driver),
	)
	warnBasicAuth(cfg, zlog)

	// 步骤3: 指标与追踪
	if cfg.Metrics.Enabled {
		metrics.InitMetrics()
	}
	shutdownTracer, err := tracing.InitTracer(ctx, tracing.Config{
		Enabled:     cfg.Tracing.Enabled,
		ServiceName: cfg.Tracing.ServiceName,
		Endpoint:    cfg.Tracing.Endpoint,
		SampleRatio: cfg.Tracing.SampleRatio,
	})
	if err != nil {
		return err
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		if err := shutdownTracer(shutdownCtx); err != nil {
			zlog.Warn("关闭追踪失败", zap.Error(err))
		}
	}()

	// 步骤4: 依赖注入
	app, cleanup, err := InitializeApp(ctx, cfg, zlog)
	if err != nil {
		return fmt.Errorf("初始化应用失败: %w", err)
	}
	defer cleanup()

	// 步骤5: 空闲工作区回收
	go app.Registry.Run(ctx, cfg.Storefront.SweepInterval)

	// 步骤6: HTTP服务
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      app.Engine,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		zlog.Info("店面服务启动", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	// 步骤7: 优雅关闭
	select {
	case err := <-errCh:
		return fmt.Errorf("HTTP服务启动失败: %w", err)
	case <-ctx.Done():
	}

	zlog.Info("正在优雅关闭服务...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("HTTP服务强制关闭: %w", err)
	}
	zlog.Info("HTTP服务已关闭")
	return nil
}

// warnBasicAuth 后端Basic认证配置提示
// 账号只来自配置;缺失时仍然启动,后端会拒绝请求
func warnBasicAuth(cfg *config.Config, zlog *zap.Logger) {
	auth := cfg.Backend.BasicAuth
	if !auth.Enabled {
		return
	}
	// 管理员接口同时带Basic认证和会话token,两套方案是否都保留需要和后端确认
	zlog.Warn("后端Basic认证与管理员会话token同时启用",
		zap.String("hint", "确认后端不需要Basic认证后可设置 backend.basic_auth.enabled=false"))
	if auth.Username == "" || auth.Password == "" {
		zlog.Warn("后端Basic认证已启用但账号不完整,请设置 STOREFRONT_BACKEND_BASIC_AUTH_USERNAME / _PASSWORD")
		return
	}
	if os.Getenv("STOREFRONT_BACKEND_BASIC_AUTH_PASSWORD") == "" {
		zlog.Warn("后端Basic认证密码来自配置文件,生产环境请改用环境变量")
	}
}
