package router

import (
	"time"

	"HobbyHop/internal/handler"
	"HobbyHop/internal/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handlers struct {
	User     *handler.UserHandler
	Club     *handler.ClubHandler
	Post     *handler.PostHandler
	PostLike *handler.PostLikeHandler
}

func InitRouter(h Handlers, auth middleware.Authenticator, log *zap.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.Trace(), middleware.Logger(log))
	r.Use(cors.New(cors.Config{
		AllowOrigins:  []string{"*"},
		AllowMethods:  []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Accept", "Authorization", "Content-Type", middleware.TraceIDHeader},
		ExposeHeaders: []string{middleware.TraceIDHeader},
		MaxAge:        300 * time.Second,
	}))

	authed := middleware.AuthMiddleware(auth)

	// 用户相关接口
	userGroup := r.Group("/api/user")
	{
		userGroup.POST("/register", h.User.Register)
		userGroup.POST("/login", h.User.Login)
		userGroup.POST("/logout", authed, h.User.Logout)
		userGroup.GET("/profile", authed, h.User.Profile)
		userGroup.PUT("/profile", authed, h.User.UpdateProfile)
	}

	// token相关接口
	tokenGroup := r.Group("/api/token")
	{
		tokenGroup.POST("/refresh", h.User.TokenRefresh)
	}

	api := r.Group("/api")
	api.Use(authed)
	{
		api.GET("/categories", h.Club.Categories)
		api.GET("/users/me/clubs", h.Club.MyClubs)
		api.GET("/posts", h.Post.Search)
	}

	// 社团相关接口
	clubGroup := api.Group("/clubs")
	{
		clubGroup.GET("", h.Club.List)
		clubGroup.POST("", h.Club.Create)
		clubGroup.GET("/:clubId", h.Club.Get)
		clubGroup.PATCH("/:clubId", h.Club.Update)
		clubGroup.DELETE("/:clubId", h.Club.Delete)
		clubGroup.POST("/:clubId/join", h.Club.Join)
		clubGroup.DELETE("/:clubId/members/me", h.Club.Leave)
		clubGroup.GET("/:clubId/members", h.Club.Members)
	}

	// 帖子相关接口
	postGroup := clubGroup.Group("/:clubId/posts")
	{
		postGroup.GET("", h.Post.ListByClub)
		postGroup.POST("", h.Post.CreatePost)
		postGroup.GET("/:postId", h.Post.GetPost)
		postGroup.PATCH("/:postId", h.Post.ModifyPost)
		postGroup.DELETE("/:postId", h.Post.DeletePost)
		postGroup.POST("/:postId/image", h.Post.UploadImage)
		postGroup.GET("/:postId/comments", h.Post.ListComments)
		postGroup.POST("/:postId/comments", h.Post.CreateComment)
		postGroup.POST("/:postId/likes", h.PostLike.Like)
		postGroup.DELETE("/:postId/likes", h.PostLike.Unlike)
		postGroup.GET("/:postId/likes", h.PostLike.Status)
	}

	return r
}
