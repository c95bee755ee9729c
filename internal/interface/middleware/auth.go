package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/thinkel-blog-api/internal/application"
	"github.com/oksasatya/thinkel-blog-api/internal/domain/entity"
	"github.com/oksasatya/thinkel-blog-api/pkg/apperr"
	"github.com/oksasatya/thinkel-blog-api/pkg/helpers"
	"github.com/oksasatya/thinkel-blog-api/pkg/response"
)

// Gin context keys set by Auth.
const (
	CtxUserID    = "userID"
	CtxSessionID = "sessionID"
	CtxUser      = "user"
)

// Authenticator resolves an access token to its user.
type Authenticator interface {
	Authenticate(ctx context.Context, accessToken string) (*entity.User, *helpers.Claims, error)
}

// Auth requires a valid access token, read from the Authorization bearer
// header or the access_token cookie.
func Auth(a Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := accessToken(c)
		if token == "" {
			response.Error(c, http.StatusUnauthorized, application.MsgTokenMissing, nil)
			return
		}
		user, claims, err := a.Authenticate(c.Request.Context(), token)
		if err != nil {
			var ae *apperr.Error
			if !errors.As(err, &ae) || ae.Kind != apperr.KindUnauthorized {
				response.Error(c, http.StatusInternalServerError, application.MsgServerError, nil)
				return
			}
			response.Error(c, http.StatusUnauthorized, ae.Message, nil)
			return
		}
		c.Set(CtxUserID, user.ID)
		c.Set(CtxSessionID, claims.SessionID)
		c.Set(CtxUser, user)
		c.Next()
	}
}

func accessToken(c *gin.Context) string {
	if h := c.GetHeader("Authorization"); h != "" {
		if scheme, tok, ok := strings.Cut(h, " "); ok && strings.EqualFold(scheme, "Bearer") {
			return strings.TrimSpace(tok)
		}
	}
	if tok, err := c.Cookie(helpers.AccessCookie); err == nil {
		return tok
	}
	return ""
}
