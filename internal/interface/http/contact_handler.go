package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/thinkel-blog-api/internal/application"
	"github.com/oksasatya/thinkel-blog-api/internal/interface/middleware"
	"github.com/oksasatya/thinkel-blog-api/pkg/response"
)

type ContactHandler struct {
	Svc    *application.ContactService
	Logger *logrus.Logger
}

func NewContactHandler(svc *application.ContactService, logger *logrus.Logger) *ContactHandler {
	return &ContactHandler{Svc: svc, Logger: logger}
}

type contactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

// Submit POST /api/contact. Mail delivery problems never fail the request.
func (h *ContactHandler) Submit(c *gin.Context) {
	var req contactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindFailed(c, err)
		return
	}
	if err := h.Svc.Submit(c.Request.Context(), application.ContactInput{
		Name: req.Name, Email: req.Email, Message: req.Message,
	}); err != nil {
		respondError(c, h.Logger, err)
		return
	}
	h.Logger.WithField("ip", middleware.ClientIP(c)).Debug("contact message accepted")
	response.Success(c, http.StatusOK, nil, "Mensaje recibido correctamente")
}
