package handler

import (
	"errors"
	"mime/multipart"
	"net/http"
	"strconv"

	"HobbyHop/internal/dto"
	"HobbyHop/internal/service"

	"github.com/gin-gonic/gin"
)

const imageFormField = "image"

type PostHandler struct {
	posts    *service.PostService
	comments *service.CommentService
}

func NewPostHandler(posts *service.PostService, comments *service.CommentService) *PostHandler {
	return &PostHandler{posts: posts, comments: comments}
}

func postTarget(c *gin.Context) (clubID, postID uint64, ok bool) {
	if clubID, ok = pathID(c, "clubId"); !ok {
		return
	}
	postID, ok = pathID(c, "postId")
	return
}

// formImage 读取表单中的图片，未上传时返回 nil；调用方负责关闭
func formImage(c *gin.Context) (*dto.ImageFile, multipart.File, error) {
	fh, err := c.FormFile(imageFormField)
	if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
		return nil, nil, nil
	}
	if err != nil {
		return nil, nil, err
	}
	f, err := fh.Open()
	if err != nil {
		return nil, nil, err
	}
	return &dto.ImageFile{
		Filename:    fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Size:        fh.Size,
		Body:        f,
	}, f, nil
}

// CreatePost 创建帖子接口
func (h *PostHandler) CreatePost(c *gin.Context) {
	clubID, ok := pathID(c, "clubId")
	if !ok {
		return
	}
	var req dto.CreatePostReq
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c)
		return
	}

	post, err := h.posts.CreatePost(c.Request.Context(), clubID, currentUserID(c), req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, post)
}

func (h *PostHandler) GetPost(c *gin.Context) {
	clubID, postID, ok := postTarget(c)
	if !ok {
		return
	}
	post, err := h.posts.GetPost(c.Request.Context(), clubID, postID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, post)
}

// ListByClub 获取帖子列表接口（带 cursor 参数时走游标分页，否则页码分页）
func (h *PostHandler) ListByClub(c *gin.Context) {
	clubID, ok := pathID(c, "clubId")
	if !ok {
		return
	}

	if cursorStr, has := c.GetQuery("cursor"); has {
		cursor, err := strconv.ParseUint(cursorStr, 10, 64)
		if err != nil && cursorStr != "" {
			badRequest(c)
			return
		}
		size, _ := strconv.Atoi(c.Query("size"))
		resp, err := h.posts.ListPostsCursor(c.Request.Context(), clubID, cursor, size)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, resp)
		return
	}

	page, ok := bindPage(c)
	if !ok {
		return
	}
	resp, err := h.posts.ListPosts(c.Request.Context(), clubID, page)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *PostHandler) Search(c *gin.Context) {
	page, ok := bindPage(c)
	if !ok {
		return
	}
	resp, err := h.posts.SearchPosts(c.Request.Context(), page, c.Query("keyword"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ModifyPost 接受 JSON 或 multipart 表单，表单中可附带 image 文件
func (h *PostHandler) ModifyPost(c *gin.Context) {
	clubID, postID, ok := postTarget(c)
	if !ok {
		return
	}
	var req dto.ModifyPostReq
	if err := c.ShouldBind(&req); err != nil {
		badRequest(c)
		return
	}
	image, f, err := formImage(c)
	if err != nil {
		badRequest(c)
		return
	}
	if f != nil {
		defer f.Close()
	}

	post, err := h.posts.ModifyPost(c.Request.Context(), clubID, postID, currentUserID(c), req, image)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, post)
}

func (h *PostHandler) UploadImage(c *gin.Context) {
	clubID, postID, ok := postTarget(c)
	if !ok {
		return
	}
	image, f, err := formImage(c)
	if err != nil || image == nil {
		badRequest(c)
		return
	}
	defer f.Close()

	post, err := h.posts.UploadImage(c.Request.Context(), clubID, postID, currentUserID(c), *image)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, post)
}

func (h *PostHandler) DeletePost(c *gin.Context) {
	clubID, postID, ok := postTarget(c)
	if !ok {
		return
	}
	if err := h.posts.DeletePost(c.Request.Context(), clubID, postID, currentUserID(c)); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *PostHandler) CreateComment(c *gin.Context) {
	clubID, postID, ok := postTarget(c)
	if !ok {
		return
	}
	var req dto.CreateCommentReq
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c)
		return
	}

	comment, err := h.comments.CreateComment(c.Request.Context(), clubID, postID, currentUserID(c), req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, comment)
}

func (h *PostHandler) ListComments(c *gin.Context) {
	clubID, postID, ok := postTarget(c)
	if !ok {
		return
	}
	page, ok := bindPage(c)
	if !ok {
		return
	}
	resp, err := h.comments.ListComments(c.Request.Context(), clubID, postID, page)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
