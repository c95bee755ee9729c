package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/oksasatya/thinkel-blog-api/internal/interface/http"
)

type UserModule struct {
	Handler *handlers.UserHandler
}

func NewUserModule(h *handlers.UserHandler) *UserModule { return &UserModule{Handler: h} }

func (m *UserModule) Register(rg *gin.RouterGroup) {
	rg.GET("/users/:id", m.Handler.Get)
}
