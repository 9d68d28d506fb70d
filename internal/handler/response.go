package handler

import (
	"errors"
	"net/http"
	"strconv"

	"HobbyHop/internal/dto"
	"HobbyHop/internal/middleware"
	"HobbyHop/internal/pkg"
	"HobbyHop/internal/service"

	"github.com/gin-gonic/gin"
)

// writeError 把业务错误映射为 HTTP 状态码；未知错误记入 c.Errors 由日志中间件输出
func writeError(c *gin.Context, err error) {
	status, code := http.StatusInternalServerError, "internal_error"
	switch {
	case errors.Is(err, service.ErrNotFound):
		status, code = http.StatusNotFound, "not_found"
	case errors.Is(err, service.ErrMembershipNotFound):
		status, code = http.StatusForbidden, "membership_not_found"
	case errors.Is(err, service.ErrForbidden):
		status, code = http.StatusForbidden, "forbidden"
	case errors.Is(err, service.ErrNotPostOwner):
		status, code = http.StatusForbidden, "not_post_owner"
	case errors.Is(err, service.ErrPostClubMismatch):
		status, code = http.StatusBadRequest, "post_club_mismatch"
	case errors.Is(err, service.ErrAlreadyMember):
		status, code = http.StatusConflict, "already_member"
	case errors.Is(err, service.ErrLastAdmin):
		status, code = http.StatusConflict, "last_admin"
	case errors.Is(err, service.ErrUserExists):
		status, code = http.StatusConflict, "user_exists"
	case errors.Is(err, service.ErrInvalidParam):
		status, code = http.StatusBadRequest, "invalid_params"
	case errors.Is(err, service.ErrInvalidPassword),
		errors.Is(err, service.ErrSessionInvalid),
		errors.Is(err, pkg.ErrTokenExpired),
		errors.Is(err, pkg.ErrTokenInvalid),
		errors.Is(err, pkg.ErrRefreshExpired),
		errors.Is(err, pkg.ErrRefreshInvalid),
		errors.Is(err, pkg.ErrTokenParseFailure):
		status, code = http.StatusUnauthorized, "unauthorized"
	}

	if status == http.StatusInternalServerError {
		_ = c.Error(err)
		c.JSON(status, gin.H{"code": code, "msg": "internal error"})
		return
	}
	c.JSON(status, gin.H{"code": code, "msg": err.Error()})
}

func badRequest(c *gin.Context) {
	c.JSON(http.StatusBadRequest, gin.H{"code": "invalid_params", "msg": "invalid params"})
}

func currentUserID(c *gin.Context) uint64 {
	return c.GetUint64(middleware.ContextUserIDKey)
}

// pathID 解析路径中的正整数 id，失败时直接写 400
func pathID(c *gin.Context, name string) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		badRequest(c)
		return 0, false
	}
	return id, true
}

func bindPage(c *gin.Context) (dto.PageRequest, bool) {
	var page dto.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		badRequest(c)
		return page, false
	}
	return page, true
}
