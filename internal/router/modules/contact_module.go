package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/oksasatya/thinkel-blog-api/internal/interface/http"
)

type ContactModule struct {
	Handler *handlers.ContactHandler
}

func NewContactModule(h *handlers.ContactHandler) *ContactModule { return &ContactModule{Handler: h} }

func (m *ContactModule) Register(rg *gin.RouterGroup) {
	rg.POST("/contact", m.Handler.Submit)
}
