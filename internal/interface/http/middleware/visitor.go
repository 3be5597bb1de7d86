package middleware

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/xiebiao/bookstore-storefront/internal/application/storefront"
	apperrors "github.com/xiebiao/bookstore-storefront/pkg/errors"
	"github.com/xiebiao/bookstore-storefront/pkg/jwt"
	"github.com/xiebiao/bookstore-storefront/pkg/response"
)

// VisitorHeader 访客Token所在的请求头/响应头
const VisitorHeader = "X-Visitor-Token"

const (
	ctxKeyVisitorID = "visitor_id"
	ctxKeyWorkspace = "workspace"
)

// Workspaces 按访客id取工作区,由 storefront.Registry 实现
type Workspaces interface {
	Get(ctx context.Context, visitorID string) (*storefront.Workspace, error)
}

// VisitorMiddleware 访客识别中间件
// 设计说明:
// 1. 从Header提取访客Token
// 2. 没有Token或Token无效时签发新的访客身份(不报错,访客本来就是匿名的)
// 3. Token通过响应头回写,前端保存后下次带上
// 4. 把访客的工作区注入Context
type VisitorMiddleware struct {
	jwtManager *jwt.Manager
	workspaces Workspaces
	logger     *zap.Logger
}

// NewVisitorMiddleware 创建访客中间件
func NewVisitorMiddleware(jwtManager *jwt.Manager, workspaces Workspaces, logger *zap.Logger) *VisitorMiddleware {
	return &VisitorMiddleware{
		jwtManager: jwtManager,
		workspaces: workspaces,
		logger:     logger,
	}
}

// Identify 识别访客并加载工作区
// 使用方式:
//
//	api := r.Group("/api/v1")
//	api.Use(visitorMiddleware.Identify())
//	api.GET("/cart", cartHandler.Get)
func (m *VisitorMiddleware) Identify() gin.HandlerFunc {
	return func(c *gin.Context) {
		// 1. 解析已有Token
		token := c.GetHeader(VisitorHeader)
		var visitorID string
		if token != "" {
			claims, err := m.jwtManager.Parse(token)
			if err == nil {
				visitorID = claims.VisitorID
			} else {
				m.logger.Debug("访客Token无效,重新签发", zap.Error(err))
			}
		}

		// 2. 新访客:生成id并签发Token
		if visitorID == "" {
			visitorID = uuid.NewString()
			issued, err := m.jwtManager.Issue(visitorID)
			if err != nil {
				response.Error(c, err)
				c.Abort()
				return
			}
			token = issued
		}
		c.Header(VisitorHeader, token)

		// 3. 取工作区(首次访问会从kv恢复购物车和会话)
		ws, err := m.workspaces.Get(c.Request.Context(), visitorID)
		if err != nil {
			response.Error(c, err)
			c.Abort()
			return
		}

		// 4. 注入Context
		c.Set(ctxKeyVisitorID, visitorID)
		c.Set(ctxKeyWorkspace, ws)

		c.Next()
	}
}

// RequireAdmin 要求管理员已登录
// 必须挂在Identify之后
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		ws := GetWorkspace(c)
		if ws == nil || !ws.Session.IsAuthenticated() {
			response.Error(c, apperrors.ErrUnauthorized)
			c.Abort()
			return
		}
		c.Next()
	}
}

// =========================================
// Context辅助函数(供Handler使用)
// =========================================

// GetVisitorID 从Context获取访客id,不存在返回空串
func GetVisitorID(c *gin.Context) string {
	return c.GetString(ctxKeyVisitorID)
}

// GetWorkspace 从Context获取访客工作区
func GetWorkspace(c *gin.Context) *storefront.Workspace {
	if v, exists := c.Get(ctxKeyWorkspace); exists {
		if ws, ok := v.(*storefront.Workspace); ok {
			return ws
		}
	}
	return nil
}

// MustGetWorkspace 同GetWorkspace,不存在则panic
// 说明:用于已经通过Identify中间件的Handler
func MustGetWorkspace(c *gin.Context) *storefront.Workspace {
	ws := GetWorkspace(c)
	if ws == nil {
		panic("workspace not found in context")
	}
	return ws
}

// SetWorkspace 把工作区写入Context,测试时绕过Identify使用
func SetWorkspace(c *gin.Context, visitorID string, ws *storefront.Workspace) {
	c.Set(ctxKeyVisitorID, visitorID)
	c.Set(ctxKeyWorkspace, ws)
}
