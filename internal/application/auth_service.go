package application

import (
	"context"
	"errors"
	"io"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/thinkel-blog-api/internal/domain/entity"
	repo "github.com/oksasatya/thinkel-blog-api/internal/domain/repository"
	"github.com/oksasatya/thinkel-blog-api/pkg/apperr"
	"github.com/oksasatya/thinkel-blog-api/pkg/helpers"
)

// AuthService owns registration, login, token rotation and profiles.
type AuthService struct {
	Users    repo.UserRepository
	JWT      *helpers.JWTManager
	Sessions SessionStore
	Files    FileStore
	Logger   *logrus.Logger
}

type TokenPair struct {
	AccessToken        string
	AccessTokenExpiry  time.Time
	RefreshToken       string
	RefreshTokenExpiry time.Time
}

func NewAuthService(users repo.UserRepository, jwt *helpers.JWTManager, sessions SessionStore, files FileStore, logger *logrus.Logger) *AuthService {
	if logger == nil {
		logger = helpers.NewNopLogger()
	}
	return &AuthService{Users: users, JWT: jwt, Sessions: sessions, Files: files, Logger: logger}
}

type RegisterInput struct {
	Name     string
	Email    string
	Password string
}

func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*entity.User, TokenPair, error) {
	name := strings.TrimSpace(in.Name)
	email := entity.NormalizeEmail(in.Email)
	if name == "" || email == "" || in.Password == "" {
		return nil, TokenPair{}, apperr.Validation(MsgRegisterRequired)
	}
	if !validEmail(email) {
		return nil, TokenPair{}, apperr.Validation(MsgInvalidEmail)
	}
	if utf8.RuneCountInString(in.Password) < helpers.MinPasswordLen {
		return nil, TokenPair{}, apperr.Validation(MsgPasswordTooShort)
	}

	if _, err := s.Users.GetByEmail(ctx, email); err == nil {
		return nil, TokenPair{}, apperr.Conflict(MsgEmailTaken)
	} else if !errors.Is(err, repo.ErrNotFound) {
		return nil, TokenPair{}, internal("lookup email", err)
	}

	hash, err := helpers.HashPassword(in.Password)
	if err != nil {
		return nil, TokenPair{}, internal("hash password", err)
	}
	username, err := s.freeUsername(ctx, entity.UsernameFromEmail(email))
	if err != nil {
		return nil, TokenPair{}, err
	}

	u := &entity.User{Name: name, Email: email, Password: hash, Username: username}
	if err := s.createUser(ctx, u); err != nil {
		return nil, TokenPair{}, err
	}
	s.Logger.WithField("user_id", u.ID).Info("user registered")

	pair, err := s.IssueTokens(ctx, u)
	if err != nil {
		return nil, TokenPair{}, err
	}
	return u, pair, nil
}

// createUser inserts u. A duplicate raced in by a concurrent registration
// is reported as a taken e-mail only when the e-mail now exists; a username
// collision is retried with a suffixed username.
func (s *AuthService) createUser(ctx context.Context, u *entity.User) error {
	base := u.Username
	for attempt := 0; ; attempt++ {
		err := s.Users.Create(ctx, u)
		if err == nil {
			return nil
		}
		if !errors.Is(err, repo.ErrDuplicate) {
			return internal("create user", err)
		}
		if _, lookupErr := s.Users.GetByEmail(ctx, u.Email); lookupErr == nil {
			return apperr.Conflict(MsgEmailTaken)
		} else if !errors.Is(lookupErr, repo.ErrNotFound) {
			return internal("lookup email", lookupErr)
		}
		if attempt == maxUsernameRetries {
			return apperr.Conflict(MsgUsernameTaken)
		}
		u.Username = suffixed(base)
	}
}

const maxUsernameRetries = 3

func suffixed(base string) string {
	return base + "-" + strings.ReplaceAll(uuid.NewString(), "-", "")[:6]
}

// freeUsername returns base, or base with a short random suffix when taken.
func (s *AuthService) freeUsername(ctx context.Context, base string) (string, error) {
	_, err := s.Users.GetByUsername(ctx, base)
	if errors.Is(err, repo.ErrNotFound) {
		return base, nil
	}
	if err != nil {
		return "", internal("lookup username", err)
	}
	return suffixed(base), nil
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*entity.User, TokenPair, error) {
	email = entity.NormalizeEmail(email)
	if email == "" || password == "" {
		return nil, TokenPair{}, apperr.Validation(MsgLoginRequired)
	}
	u, err := s.Users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, TokenPair{}, apperr.Unauthorized(MsgInvalidLogin)
		}
		return nil, TokenPair{}, internal("lookup email", err)
	}
	if !helpers.CompareHashAndPassword(u.Password, password) {
		return nil, TokenPair{}, apperr.Unauthorized(MsgInvalidLogin)
	}
	pair, err := s.IssueTokens(ctx, u)
	if err != nil {
		return nil, TokenPair{}, err
	}
	return u, pair, nil
}

// IssueTokens generates an access/refresh pair bound to a fresh session id.
func (s *AuthService) IssueTokens(ctx context.Context, u *entity.User) (TokenPair, error) {
	sid := uuid.NewString()
	access, aexp, err := s.JWT.GenerateAccessToken(u.ID, sid)
	if err != nil {
		return TokenPair{}, internal("generate access token", err)
	}
	refresh, rexp, err := s.JWT.GenerateRefreshToken(u.ID, sid)
	if err != nil {
		return TokenPair{}, internal("generate refresh token", err)
	}
	if s.Sessions != nil {
		if err := s.Sessions.Save(ctx, sid, u.ID, s.JWT.RefreshTTL); err != nil {
			s.Logger.WithError(err).WithField("user_id", u.ID).Warn("session save failed")
		}
	}
	return TokenPair{AccessToken: access, AccessTokenExpiry: aexp, RefreshToken: refresh, RefreshTokenExpiry: rexp}, nil
}

// Refresh rotates the pair. The old session is revoked.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*entity.User, TokenPair, error) {
	if strings.TrimSpace(refreshToken) == "" {
		return nil, TokenPair{}, apperr.Unauthorized(MsgTokenMissing)
	}
	claims, err := s.JWT.ParseRefreshToken(refreshToken)
	if err != nil {
		return nil, TokenPair{}, apperr.Unauthorized(MsgTokenInvalid)
	}
	if err := s.checkSession(ctx, claims); err != nil {
		return nil, TokenPair{}, err
	}
	u, err := s.Users.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, TokenPair{}, apperr.Unauthorized(MsgUserNotFound)
		}
		return nil, TokenPair{}, internal("load user", err)
	}
	s.revoke(ctx, claims.SessionID)
	pair, err := s.IssueTokens(ctx, u)
	if err != nil {
		return nil, TokenPair{}, err
	}
	return u, pair, nil
}

// Logout revokes the session. Unknown sessions are ignored.
func (s *AuthService) Logout(ctx context.Context, sessionID string) {
	s.revoke(ctx, sessionID)
}

// Authenticate resolves an access token to its live user.
func (s *AuthService) Authenticate(ctx context.Context, accessToken string) (*entity.User, *helpers.Claims, error) {
	claims, err := s.JWT.ParseAccessToken(accessToken)
	if err != nil {
		return nil, nil, apperr.Unauthorized(MsgTokenInvalid)
	}
	if err := s.checkSession(ctx, claims); err != nil {
		return nil, nil, err
	}
	u, err := s.Users.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, nil, apperr.Unauthorized(MsgUserNotFound)
		}
		return nil, nil, internal("load user", err)
	}
	return u, claims, nil
}

func (s *AuthService) checkSession(ctx context.Context, claims *helpers.Claims) error {
	if s.Sessions == nil || claims.SessionID == "" {
		return nil
	}
	ok, err := s.Sessions.Valid(ctx, claims.SessionID, claims.UserID)
	if err != nil {
		// fail open on store errors
		s.Logger.WithError(err).Warn("session lookup failed")
		return nil
	}
	if !ok {
		return apperr.Unauthorized(MsgTokenInvalid)
	}
	return nil
}

func (s *AuthService) revoke(ctx context.Context, sid string) {
	if s.Sessions == nil || sid == "" {
		return
	}
	if err := s.Sessions.Delete(ctx, sid); err != nil {
		s.Logger.WithError(err).Warn("session delete failed")
	}
}

func (s *AuthService) GetProfile(ctx context.Context, userID string) (*entity.User, error) {
	if !validID(userID) {
		return nil, apperr.NotFound(MsgUserNotFound)
	}
	u, err := s.Users.GetByID(ctx, userID)
	if err != nil {
		return nil, notFoundOr(err, "load user", MsgUserNotFound)
	}
	return u, nil
}

// PublicProfile is the live profile lookup used alongside author snapshots.
func (s *AuthService) PublicProfile(ctx context.Context, userID string) (entity.PublicProfile, error) {
	u, err := s.GetProfile(ctx, userID)
	if err != nil {
		return entity.PublicProfile{}, err
	}
	return u.Public(), nil
}

// UpdateProfileInput holds optional changes; nil fields are left untouched.
type UpdateProfileInput struct {
	Name     *string
	Bio      *string
	Username *string
	Password *string
}

func (s *AuthService) UpdateProfile(ctx context.Context, userID string, in UpdateProfileInput) (*entity.User, error) {
	u, err := s.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}
	if in.Name != nil {
		if name := strings.TrimSpace(*in.Name); name != "" {
			u.Name = name
		}
	}
	if in.Bio != nil {
		bio := strings.TrimSpace(*in.Bio)
		if utf8.RuneCountInString(bio) > entity.MaxBioLen {
			return nil, apperr.Validation(MsgBioTooLong)
		}
		u.Bio = bio
	}
	if in.Username != nil {
		if username := strings.ToLower(strings.TrimSpace(*in.Username)); username != "" && username != u.Username {
			other, err := s.Users.GetByUsername(ctx, username)
			switch {
			case err == nil && other.ID != u.ID:
				return nil, apperr.Conflict(MsgUsernameTaken)
			case err != nil && !errors.Is(err, repo.ErrNotFound):
				return nil, internal("lookup username", err)
			}
			u.Username = username
		}
	}
	if in.Password != nil && *in.Password != "" {
		if utf8.RuneCountInString(*in.Password) < helpers.MinPasswordLen {
			return nil, apperr.Validation(MsgPasswordTooShort)
		}
		hash, err := helpers.HashPassword(*in.Password)
		if err != nil {
			return nil, internal("hash password", err)
		}
		u.Password = hash
	}
	if err := s.save(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// CheckAvatar reports whether an avatar of contentType can be stored.
func (s *AuthService) CheckAvatar(contentType string) error {
	if s.Files == nil {
		return apperr.Validation(MsgAvatarUnavailable)
	}
	if _, ok := entity.ImageExt(contentType); !ok {
		return apperr.Validation(MsgAvatarType)
	}
	return nil
}

// UploadAvatar stores the image and points the profile at it.
func (s *AuthService) UploadAvatar(ctx context.Context, userID string, r io.Reader, contentType string) (*entity.User, error) {
	if err := s.CheckAvatar(contentType); err != nil {
		return nil, err
	}
	ext, _ := entity.ImageExt(contentType)
	u, err := s.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}
	url, err := s.Files.Save(ctx, "avatars/"+u.ID+"-"+uuid.NewString()+ext, contentType, r)
	if err != nil {
		return nil, internal("store avatar", err)
	}
	u.AvatarURL = url
	if err := s.save(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *AuthService) save(ctx context.Context, u *entity.User) error {
	if err := s.Users.Update(ctx, u); err != nil {
		switch {
		case errors.Is(err, repo.ErrDuplicate):
			return apperr.Conflict(MsgUsernameTaken)
		case errors.Is(err, repo.ErrNotFound):
			return apperr.NotFound(MsgUserNotFound)
		}
		return internal("update user", err)
	}
	return nil
}
