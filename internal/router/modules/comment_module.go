package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/oksasatya/thinkel-blog-api/internal/interface/http"
)

type CommentModule struct {
	Handler *handlers.CommentHandler
	Auth    gin.HandlerFunc
}

func NewCommentModule(h *handlers.CommentHandler, auth gin.HandlerFunc) *CommentModule {
	return &CommentModule{Handler: h, Auth: auth}
}

func (m *CommentModule) Register(rg *gin.RouterGroup) {
	g := rg.Group("/comments")
	g.GET("/post/:postId", m.Handler.ListForPost)
	g.POST("", m.Auth, m.Handler.Create)
	g.PUT("/:id", m.Auth, m.Handler.Update)
	g.DELETE("/:id", m.Auth, m.Handler.Delete)
	g.POST("/:id/like", m.Auth, m.Handler.ToggleLike)
}
