package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/oksasatya/thinkel-blog-api/internal/interface/http"
)

// PostModule mounts /posts. The /my/* routes are registered ahead of /:id.
type PostModule struct {
	Handler  *handlers.PostHandler
	Comments *handlers.CommentHandler
	Auth     gin.HandlerFunc
}

func NewPostModule(h *handlers.PostHandler, comments *handlers.CommentHandler, auth gin.HandlerFunc) *PostModule {
	return &PostModule{Handler: h, Comments: comments, Auth: auth}
}

func (m *PostModule) Register(rg *gin.RouterGroup) {
	g := rg.Group("/posts")
	g.GET("", m.Handler.List)
	g.GET("/slug/:slug", m.Handler.GetBySlug)

	mine := g.Group("/my", m.Auth)
	{
		mine.GET("/all", m.Handler.ListMine)
		mine.GET("/bookmarked", m.Handler.ListBookmarked)
		mine.GET("/stats", m.Handler.Stats)
	}

	g.GET("/:id", m.Handler.Get)
	g.GET("/:id/comments", m.Comments.ListForPost)
	g.POST("", m.Auth, m.Handler.Create)
	g.PUT("/:id", m.Auth, m.Handler.Update)
	g.DELETE("/:id", m.Auth, m.Handler.Delete)
	g.POST("/:id/like", m.Auth, m.Handler.ToggleLike)
	g.POST("/:id/bookmark", m.Auth, m.Handler.ToggleBookmark)
}
