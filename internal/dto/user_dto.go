package dto

type RegisterReq struct {
	Username string `json:"username" binding:"required,max=50"`
	Password string `json:"password" binding:"required,min=8,max=15"`
	Email    string `json:"email" binding:"required,email,max=50"`
}

type LoginReq struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type RefreshReq struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

// UpdateProfileReq 修改资料必须提供旧密码；新密码可选，提供时需与确认密码一致
type UpdateProfileReq struct {
	Info            *string `json:"info"`
	OldPassword     string  `json:"old_password" binding:"required"`
	NewPassword     string  `json:"new_password" binding:"omitempty,min=8,max=15"`
	ConfirmPassword string  `json:"confirm_password"`
}

type UserResp struct {
	ID       uint64 `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Info     string `json:"info"`
}
