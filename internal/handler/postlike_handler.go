package handler

import (
	"net/http"

	"HobbyHop/internal/service"

	"github.com/gin-gonic/gin"
)

type PostLikeHandler struct {
	svc *service.PostLikeService
}

func NewPostLikeHandler(svc *service.PostLikeService) *PostLikeHandler {
	return &PostLikeHandler{svc: svc}
}

func likeTarget(c *gin.Context) (clubID, postID uint64, ok bool) {
	if clubID, ok = pathID(c, "clubId"); !ok {
		return
	}
	postID, ok = pathID(c, "postId")
	return
}

func (h *PostLikeHandler) Like(c *gin.Context) {
	clubID, postID, ok := likeTarget(c)
	if !ok {
		return
	}
	changed, err := h.svc.Like(c.Request.Context(), clubID, postID, currentUserID(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"changed": changed})
}

func (h *PostLikeHandler) Unlike(c *gin.Context) {
	clubID, postID, ok := likeTarget(c)
	if !ok {
		return
	}
	changed, err := h.svc.Unlike(c.Request.Context(), clubID, postID, currentUserID(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"changed": changed})
}

// Status 返回当前用户是否点赞以及总点赞数
func (h *PostLikeHandler) Status(c *gin.Context) {
	clubID, postID, ok := likeTarget(c)
	if !ok {
		return
	}
	uid := currentUserID(c)
	liked, err := h.svc.IsLiked(c.Request.Context(), clubID, postID, uid)
	if err != nil {
		writeError(c, err)
		return
	}
	cnt, err := h.svc.Count(c.Request.Context(), clubID, postID, uid)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"liked": liked, "count": cnt})
}
