package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/thinkel-blog-api/internal/application"
	"github.com/oksasatya/thinkel-blog-api/internal/interface/middleware"
	"github.com/oksasatya/thinkel-blog-api/pkg/apperr"
	"github.com/oksasatya/thinkel-blog-api/pkg/response"
	"github.com/oksasatya/thinkel-blog-api/pkg/validation"
)

// respondError maps a service error onto the error envelope. Internal
// causes are logged and never leave the process.
func respondError(c *gin.Context, logger *logrus.Logger, err error) {
	status := apperr.HTTPStatus(err)
	var ae *apperr.Error
	if status >= http.StatusInternalServerError || !errors.As(err, &ae) {
		logger.WithError(err).WithFields(logrus.Fields{
			"request_id": c.GetString("request_id"),
			"method":     c.Request.Method,
			"path":       c.FullPath(),
		}).Error("request failed")
		response.Error(c, http.StatusInternalServerError, application.MsgServerError, nil)
		return
	}
	response.Error(c, status, ae.Message, ae.Details)
}

func bindFailed(c *gin.Context, err error) {
	response.Error(c, http.StatusBadRequest, application.MsgInvalidPayload, validation.ToDetails(err))
}

func currentUserID(c *gin.Context) string {
	return c.GetString(middleware.CtxUserID)
}
