package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/xiebiao/bookstore-storefront/internal/domain/session"
	"github.com/xiebiao/bookstore-storefront/internal/interface/http/dto"
	"github.com/xiebiao/bookstore-storefront/internal/interface/http/middleware"
	"github.com/xiebiao/bookstore-storefront/pkg/response"
)

// SessionHandler 管理员会话
// 后端签发的session_token只保存在访客工作区里,不下发给浏览器
type SessionHandler struct{}

// NewSessionHandler 创建会话处理器
func NewSessionHandler() *SessionHandler {
	return &SessionHandler{}
}

// Get 当前会话状态
// @Summary      会话状态
// @Tags         管理员会话
// @Produce      json
// @Security     VisitorToken
// @Success      200 {object} response.Response{data=dto.SessionResponse}
// @Router       /api/v1/admin/session [get]
func (h *SessionHandler) Get(c *gin.Context) {
	response.Success(c, sessionView(middleware.MustGetWorkspace(c).Session))
}

// Login 管理员登录
// @Summary      管理员登录
// @Description  登录期间购物车只读
// @Tags         管理员会话
// @Accept       json
// @Produce      json
// @Security     VisitorToken
// @Param        request body dto.LoginRequest true "账号密码"
// @Success      200 {object} response.Response{data=dto.SessionResponse}
// @Failure      200 {object} response.Response "40103登录失败 / 50301后端不可达"
// @Router       /api/v1/admin/session/login [post]
func (h *SessionHandler) Login(c *gin.Context) {
	// 1. 参数绑定
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	// 2. 登录(远程登录 + 持久化)
	ws := middleware.MustGetWorkspace(c)
	grant, err := ws.LoginAdmin(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		response.Error(c, err)
		return
	}

	// 3. 响应
	response.Success(c, &dto.SessionResponse{
		Authenticated:          true,
		RequiresPasswordChange: grant.RequiresPasswordChange,
	})
}

// ChangePassword 修改密码
// @Summary      修改密码
// @Tags         管理员会话
// @Accept       json
// @Produce      json
// @Security     VisitorToken
// @Param        request body dto.ChangePasswordRequest true "新旧密码"
// @Success      200 {object} response.Response{data=dto.SessionResponse}
// @Failure      200 {object} response.Response "40100未登录 / 40000后端拒绝(message为后端detail)"
// @Router       /api/v1/admin/session/password [post]
func (h *SessionHandler) ChangePassword(c *gin.Context) {
	var req dto.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	sess := middleware.MustGetWorkspace(c).Session
	if err := sess.ChangePassword(c.Request.Context(), req.OldPassword, req.NewPassword); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, sessionView(sess))
}

// Logout 注销
// @Summary      注销
// @Description  远程注销失败也会清除本地会话,同时清空后台页面状态
// @Tags         管理员会话
// @Produce      json
// @Security     VisitorToken
// @Success      200 {object} response.Response{data=dto.SessionResponse}
// @Router       /api/v1/admin/session/logout [post]
func (h *SessionHandler) Logout(c *gin.Context) {
	ws := middleware.MustGetWorkspace(c)
	ws.LogoutAdmin(c.Request.Context())
	response.Success(c, sessionView(ws.Session))
}

func sessionView(s *session.Store) *dto.SessionResponse {
	return &dto.SessionResponse{
		Authenticated:          s.IsAuthenticated(),
		RequiresPasswordChange: s.RequiresPasswordChange(),
	}
}
