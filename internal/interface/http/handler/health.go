package handler

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/xiebiao/bookstore-storefront/pkg/response"
)

// WorkspaceCounter 当前驻留的访客工作区数
type WorkspaceCounter interface {
	Len() int
}

// HealthHandler 健康检查
type HealthHandler struct {
	workspaces WorkspaceCounter
	started    time.Time
}

// NewHealthHandler 创建健康检查处理器
func NewHealthHandler(workspaces WorkspaceCounter) *HealthHandler {
	return &HealthHandler{workspaces: workspaces, started: time.Now()}
}

// Health 存活检查
// @Summary      健康检查
// @Tags         系统
// @Produce      json
// @Success      200 {object} response.Response
// @Router       /health [get]
func (h *HealthHandler) Health(c *gin.Context) {
	response.Success(c, gin.H{
		"status":     "healthy",
		"workspaces": h.workspaces.Len(),
		"uptime":     time.Since(h.started).Round(time.Second).String(),
	})
}
