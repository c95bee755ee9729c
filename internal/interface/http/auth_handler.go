package handlers

import (
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/thinkel-blog-api/internal/application"
	"github.com/oksasatya/thinkel-blog-api/internal/domain/entity"
	"github.com/oksasatya/thinkel-blog-api/internal/interface/middleware"
	"github.com/oksasatya/thinkel-blog-api/pkg/apperr"
	"github.com/oksasatya/thinkel-blog-api/pkg/helpers"
	"github.com/oksasatya/thinkel-blog-api/pkg/response"
)

const maxAvatarSize = 5 << 20

type AuthHandler struct {
	Svc     *application.AuthService
	Logger  *logrus.Logger
	Cookies *helpers.Manager
}

func NewAuthHandler(svc *application.AuthService, logger *logrus.Logger, cookieDomain string, cookieSecure bool) *AuthHandler {
	return &AuthHandler{Svc: svc, Logger: logger, Cookies: helpers.NewCookie(cookieDomain, cookieSecure)}
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type refreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

type updateProfileRequest struct {
	Name     *string `json:"name"`
	Bio      *string `json:"bio"`
	Username *string `json:"username"`
	Password *string `json:"password"`
}

func (h *AuthHandler) withTokens(c *gin.Context, u *entity.User, pair application.TokenPair) gin.H {
	h.Cookies.SetPair(c, pair.AccessToken, pair.AccessTokenExpiry, pair.RefreshToken, pair.RefreshTokenExpiry)
	return gin.H{"token": pair.AccessToken, "refreshToken": pair.RefreshToken, "user": u}
}

// Register POST /api/auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindFailed(c, err)
		return
	}
	u, pair, err := h.Svc.Register(c.Request.Context(), application.RegisterInput{
		Name: req.Name, Email: req.Email, Password: req.Password,
	})
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusCreated, h.withTokens(c, u, pair), "Usuario registrado exitosamente")
}

// Login POST /api/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindFailed(c, err)
		return
	}
	u, pair, err := h.Svc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	h.Logger.WithFields(logrus.Fields{"user_id": u.ID, "ip": middleware.ClientIP(c)}).Info("user logged in")
	response.Success(c, http.StatusOK, h.withTokens(c, u, pair), "Login exitoso")
}

// Refresh POST /api/auth/refresh. The refresh token is read from the body,
// falling back to the refresh_token cookie.
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req refreshRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			bindFailed(c, err)
			return
		}
	}
	token := req.RefreshToken
	if token == "" {
		token, _ = c.Cookie(helpers.RefreshCookie)
	}
	u, pair, err := h.Svc.Refresh(c.Request.Context(), token)
	if err != nil {
		if apperr.Is(err, apperr.KindUnauthorized) {
			h.Cookies.Clear(c)
		}
		respondError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, h.withTokens(c, u, pair), "Token renovado")
}

// Logout POST /api/auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	h.Svc.Logout(c.Request.Context(), c.GetString(middleware.CtxSessionID))
	h.Cookies.Clear(c)
	response.Success(c, http.StatusOK, nil, "Sesión cerrada")
}

// GetProfile GET /api/auth/profile
func (h *AuthHandler) GetProfile(c *gin.Context) {
	u, err := h.Svc.GetProfile(c.Request.Context(), currentUserID(c))
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, u, "")
}

// UpdateProfile PUT /api/auth/profile, JSON or multipart with an optional
// avatar file.
func (h *AuthHandler) UpdateProfile(c *gin.Context) {
	var (
		req    updateProfileRequest
		avatar *multipart.FileHeader
	)
	if strings.HasPrefix(c.ContentType(), "multipart/") {
		req = updateProfileRequest{
			Name:     postForm(c, "name"),
			Bio:      postForm(c, "bio"),
			Username: postForm(c, "username"),
			Password: postForm(c, "password"),
		}
		fh, err := c.FormFile("avatar")
		switch {
		case err == nil:
			avatar = fh
		case !errors.Is(err, http.ErrMissingFile):
			bindFailed(c, err)
			return
		}
	} else if err := c.ShouldBindJSON(&req); err != nil {
		bindFailed(c, err)
		return
	}

	ctx := c.Request.Context()
	uid := currentUserID(c)
	var (
		file        multipart.File
		contentType string
	)
	if avatar != nil {
		// The avatar is checked before any field is saved so a rejected
		// upload leaves the profile untouched.
		f, ct, err := openAvatar(avatar)
		if err != nil {
			respondError(c, h.Logger, err)
			return
		}
		defer f.Close()
		if err := h.Svc.CheckAvatar(ct); err != nil {
			respondError(c, h.Logger, err)
			return
		}
		file, contentType = f, ct
	}

	u, err := h.Svc.UpdateProfile(ctx, uid, application.UpdateProfileInput{
		Name: req.Name, Bio: req.Bio, Username: req.Username, Password: req.Password,
	})
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	if file != nil {
		if u, err = h.Svc.UploadAvatar(ctx, uid, file, contentType); err != nil {
			respondError(c, h.Logger, err)
			return
		}
	}
	response.Success(c, http.StatusOK, u, "Perfil actualizado exitosamente")
}

// openAvatar enforces the size limit and resolves the image content type.
func openAvatar(fh *multipart.FileHeader) (multipart.File, string, error) {
	if fh.Size > maxAvatarSize {
		return nil, "", apperr.Validation(application.MsgAvatarTooLarge)
	}
	f, err := fh.Open()
	if err != nil {
		return nil, "", apperr.Internal(application.MsgServerError, err)
	}
	contentType := fh.Header.Get("Content-Type")
	if contentType == "" || contentType == "application/octet-stream" {
		buf := make([]byte, 512)
		n, _ := f.Read(buf)
		contentType = http.DetectContentType(buf[:n])
		if _, err := f.Seek(0, io.SeekStart); err != nil {
			f.Close()
			return nil, "", apperr.Internal(application.MsgServerError, err)
		}
	}
	return f, contentType, nil
}

func postForm(c *gin.Context, key string) *string {
	if v, ok := c.GetPostForm(key); ok {
		return &v
	}
	return nil
}
