package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/oksasatya/thinkel-blog-api/internal/interface/http"
)

// AuthModule mounts /auth.
// Public: POST register, login, refresh
// Protected: POST logout, GET/PUT profile
type AuthModule struct {
	Handler *handlers.AuthHandler
	Auth    gin.HandlerFunc
}

func NewAuthModule(h *handlers.AuthHandler, auth gin.HandlerFunc) *AuthModule {
	return &AuthModule{Handler: h, Auth: auth}
}

func (m *AuthModule) Register(rg *gin.RouterGroup) {
	g := rg.Group("/auth")
	g.POST("/register", m.Handler.Register)
	g.POST("/login", m.Handler.Login)
	g.POST("/refresh", m.Handler.Refresh)

	protected := g.Group("/", m.Auth)
	{
		protected.POST("/logout", m.Handler.Logout)
		protected.GET("/profile", m.Handler.GetProfile)
		protected.PUT("/profile", m.Handler.UpdateProfile)
	}
}
