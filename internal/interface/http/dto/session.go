package dto

// LoginRequest 管理员登录
type LoginRequest struct {
	Username string `json:"username" binding:"required,max=100" example:"admin"`
	Password string `json:"password" binding:"required,max=200" example:"secret"`
}

// ChangePasswordRequest 修改密码
type ChangePasswordRequest struct {
	OldPassword string `json:"old_password" binding:"required" example:"secret"`
	NewPassword string `json:"new_password" binding:"required,max=200" example:"n3w-secret"`
}

// SessionResponse 管理员会话状态
// 不返回session_token,token只保存在服务端工作区
type SessionResponse struct {
	Authenticated          bool `json:"authenticated"`
	RequiresPasswordChange bool `json:"requires_password_change"`
}
