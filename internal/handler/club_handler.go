package handler

import (
	"net/http"

	"HobbyHop/internal/dto"
	"HobbyHop/internal/service"

	"github.com/gin-gonic/gin"
)

type ClubHandler struct {
	clubs   *service.ClubService
	members *service.MemberService
}

func NewClubHandler(clubs *service.ClubService, members *service.MemberService) *ClubHandler {
	return &ClubHandler{clubs: clubs, members: members}
}

func (h *ClubHandler) Categories(c *gin.Context) {
	list, err := h.clubs.ListCategories(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"list": list})
}

// List 社团列表，支持按标题关键字过滤
func (h *ClubHandler) List(c *gin.Context) {
	page, ok := bindPage(c)
	if !ok {
		return
	}
	resp, err := h.clubs.ListClubs(c.Request.Context(), page, c.Query("keyword"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ClubHandler) Get(c *gin.Context) {
	clubID, ok := pathID(c, "clubId")
	if !ok {
		return
	}
	club, err := h.clubs.GetClub(c.Request.Context(), clubID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, club)
}

func (h *ClubHandler) Create(c *gin.Context) {
	var req dto.CreateClubReq
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c)
		return
	}

	club, err := h.clubs.CreateClub(c.Request.Context(), currentUserID(c), req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, club)
}

func (h *ClubHandler) Update(c *gin.Context) {
	clubID, ok := pathID(c, "clubId")
	if !ok {
		return
	}
	var req dto.UpdateClubReq
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c)
		return
	}

	club, err := h.clubs.UpdateClub(c.Request.Context(), clubID, currentUserID(c), req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, club)
}

func (h *ClubHandler) Delete(c *gin.Context) {
	clubID, ok := pathID(c, "clubId")
	if !ok {
		return
	}
	if err := h.clubs.DeleteClub(c.Request.Context(), clubID, currentUserID(c)); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *ClubHandler) Join(c *gin.Context) {
	clubID, ok := pathID(c, "clubId")
	if !ok {
		return
	}
	member, err := h.members.Join(c.Request.Context(), clubID, currentUserID(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, member)
}

func (h *ClubHandler) Leave(c *gin.Context) {
	clubID, ok := pathID(c, "clubId")
	if !ok {
		return
	}
	if err := h.members.Leave(c.Request.Context(), clubID, currentUserID(c)); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *ClubHandler) Members(c *gin.Context) {
	clubID, ok := pathID(c, "clubId")
	if !ok {
		return
	}
	page, ok := bindPage(c)
	if !ok {
		return
	}
	resp, err := h.members.ListByClub(c.Request.Context(), clubID, page)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// MyClubs 当前用户加入的社团
func (h *ClubHandler) MyClubs(c *gin.Context) {
	list, err := h.members.ListByUser(c.Request.Context(), currentUserID(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"list": list})
}
