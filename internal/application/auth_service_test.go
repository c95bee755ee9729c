package application

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/thinkel-blog-api/internal/domain/entity"
	repo "github.com/oksasatya/thinkel-blog-api/internal/domain/repository"
	"github.com/oksasatya/thinkel-blog-api/pkg/apperr"
)

func TestAuthService_Register(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	u, pair, err := env.auth.Register(ctx, RegisterInput{Name: " Ana ", Email: " Ana@Example.com ", Password: "secret123"})
	require.NoError(t, err)
	assert.Equal(t, "Ana", u.Name)
	assert.Equal(t, "ana@example.com", u.Email)
	assert.Equal(t, "ana", u.Username)
	assert.NotEqual(t, "secret123", u.Password)
	assert.NotEmpty(t, pair.AccessToken)
	assert.NotEmpty(t, pair.RefreshToken)
	assert.Len(t, env.sessions.live, 1)
}

func TestAuthService_RegisterDuplicateEmail(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	first := env.register(t, "Ana", "ana@example.com")

	_, _, err := env.auth.Register(ctx, RegisterInput{Name: "Impostor", Email: "ANA@example.com", Password: "secret123"})
	require.Error(t, err)
	assert.Equal(t, 400, apperr.HTTPStatus(err))
	assert.Equal(t, MsgEmailTaken, err.(*apperr.Error).Message)

	stored, err := env.store.Users().GetByEmail(ctx, "ana@example.com")
	require.NoError(t, err)
	assert.Equal(t, first.ID, stored.ID)
	assert.Equal(t, "Ana", stored.Name)
}

// racingUsers inserts a rival account with the same username just before the
// first Create, like a concurrent registration landing between checks.
type racingUsers struct {
	repo.UserRepository
	raced bool
}

func (r *racingUsers) Create(ctx context.Context, u *entity.User) error {
	if !r.raced {
		r.raced = true
		rival := &entity.User{Name: "Rival", Email: "rival@example.com", Username: u.Username}
		if err := r.UserRepository.Create(ctx, rival); err != nil {
			return err
		}
	}
	return r.UserRepository.Create(ctx, u)
}

func TestAuthService_RegisterUsernameRaceRetries(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.auth.Users = &racingUsers{UserRepository: env.store.Users()}

	u, _, err := env.auth.Register(ctx, RegisterInput{Name: "Ana", Email: "ana@example.com", Password: "secret123"})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(u.Username, "ana-"), u.Username)

	stored, err := env.store.Users().GetByEmail(ctx, "ana@example.com")
	require.NoError(t, err)
	assert.Equal(t, u.ID, stored.ID)
}

func TestAuthService_RegisterValidation(t *testing.T) {
	env := newTestEnv(t)
	cases := []struct {
		in  RegisterInput
		msg string
	}{
		{RegisterInput{Email: "a@b.co", Password: "secret123"}, MsgRegisterRequired},
		{RegisterInput{Name: "A", Email: "not-an-email", Password: "secret123"}, MsgInvalidEmail},
		{RegisterInput{Name: "A", Email: "a@b.co", Password: "12345"}, MsgPasswordTooShort},
	}
	for _, tc := range cases {
		_, _, err := env.auth.Register(context.Background(), tc.in)
		require.Error(t, err)
		assert.True(t, apperr.Is(err, apperr.KindValidation))
		assert.Equal(t, tc.msg, err.(*apperr.Error).Message)
	}
}

func TestAuthService_RegisterUsernameCollision(t *testing.T) {
	env := newTestEnv(t)
	a := env.register(t, "Ana", "ana@example.com")
	b := env.register(t, "Ana Two", "ana@example.org")

	assert.Equal(t, "ana", a.Username)
	assert.True(t, strings.HasPrefix(b.Username, "ana-"))
	assert.NotEqual(t, a.Username, b.Username)
}

func TestAuthService_Login(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.register(t, "Ana", "ana@example.com")

	_, _, err := env.auth.Login(ctx, "ana@example.com", "wrong-pass")
	assert.True(t, apperr.Is(err, apperr.KindUnauthorized))

	_, _, err = env.auth.Login(ctx, "ghost@example.com", "secret123")
	assert.True(t, apperr.Is(err, apperr.KindUnauthorized))
	assert.Equal(t, MsgInvalidLogin, err.(*apperr.Error).Message)

	_, _, err = env.auth.Login(ctx, "", "")
	assert.True(t, apperr.Is(err, apperr.KindValidation))

	u, pair, err := env.auth.Login(ctx, "ANA@example.com", "secret123")
	require.NoError(t, err)
	got, claims, err := env.auth.Authenticate(ctx, pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)
	assert.NotEmpty(t, claims.SessionID)
}

func TestAuthService_RefreshRotatesAndRevokes(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	_, pair, err := env.auth.Register(ctx, RegisterInput{Name: "Ana", Email: "ana@example.com", Password: "secret123"})
	require.NoError(t, err)

	_, rotated, err := env.auth.Refresh(ctx, pair.RefreshToken)
	require.NoError(t, err)
	assert.NotEqual(t, pair.RefreshToken, rotated.RefreshToken)

	// the old pair died with its session
	_, _, err = env.auth.Refresh(ctx, pair.RefreshToken)
	assert.True(t, apperr.Is(err, apperr.KindUnauthorized))
	_, _, err = env.auth.Authenticate(ctx, pair.AccessToken)
	assert.True(t, apperr.Is(err, apperr.KindUnauthorized))

	_, claims, err := env.auth.Authenticate(ctx, rotated.AccessToken)
	require.NoError(t, err)
	env.auth.Logout(ctx, claims.SessionID)
	_, _, err = env.auth.Authenticate(ctx, rotated.AccessToken)
	assert.True(t, apperr.Is(err, apperr.KindUnauthorized))
}

func TestAuthService_SessionStoreOutageFailsOpen(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	_, pair, err := env.auth.Register(ctx, RegisterInput{Name: "Ana", Email: "ana@example.com", Password: "secret123"})
	require.NoError(t, err)

	env.sessions.err = errBoom
	_, _, err = env.auth.Authenticate(ctx, pair.AccessToken)
	assert.NoError(t, err)
}

func TestAuthService_AuthenticateRejectsGarbage(t *testing.T) {
	env := newTestEnv(t)
	_, _, err := env.auth.Authenticate(context.Background(), "not.a.jwt")
	require.Error(t, err)
	assert.Equal(t, MsgTokenInvalid, err.(*apperr.Error).Message)
}

func TestAuthService_UpdateProfile(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	a := env.register(t, "Ana", "ana@example.com")
	env.register(t, "Bob", "bob@example.com")

	taken := "BOB"
	_, err := env.auth.UpdateProfile(ctx, a.ID, UpdateProfileInput{Username: &taken})
	require.Error(t, err)
	assert.Equal(t, MsgUsernameTaken, err.(*apperr.Error).Message)

	long := strings.Repeat("b", 501)
	_, err = env.auth.UpdateProfile(ctx, a.ID, UpdateProfileInput{Bio: &long})
	assert.True(t, apperr.Is(err, apperr.KindValidation))

	name, bio, username := "Ana María", "writes about Go", "AnaM"
	u, err := env.auth.UpdateProfile(ctx, a.ID, UpdateProfileInput{Name: &name, Bio: &bio, Username: &username})
	require.NoError(t, err)
	assert.Equal(t, "Ana María", u.Name)
	assert.Equal(t, "writes about Go", u.Bio)
	assert.Equal(t, "anam", u.Username)

	pw := "newsecret"
	_, err = env.auth.UpdateProfile(ctx, a.ID, UpdateProfileInput{Password: &pw})
	require.NoError(t, err)
	_, _, err = env.auth.Login(ctx, "ana@example.com", "newsecret")
	assert.NoError(t, err)
}

func TestAuthService_SnapshotsSurviveProfileEdits(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	a := env.register(t, "Ana", "ana@example.com")
	p := env.newPost(t, a.ID, "Snapshot")

	name := "Renamed"
	_, err := env.auth.UpdateProfile(ctx, a.ID, UpdateProfileInput{Name: &name})
	require.NoError(t, err)

	assert.Equal(t, "Ana", env.reloadPost(t, p.ID).Author.Name)
	live, err := env.auth.PublicProfile(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, "Renamed", live.Name)
}

func TestAuthService_UploadAvatar(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	a := env.register(t, "Ana", "ana@example.com")

	_, err := env.auth.UploadAvatar(ctx, a.ID, strings.NewReader("%PDF"), "application/pdf")
	assert.True(t, apperr.Is(err, apperr.KindValidation))

	u, err := env.auth.UploadAvatar(ctx, a.ID, strings.NewReader("png"), "image/png")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(u.AvatarURL, "/uploads/avatars/"+a.ID+"-"))
	assert.True(t, strings.HasSuffix(u.AvatarURL, ".png"))
	assert.Len(t, env.files.saved, 1)

	env.auth.Files = nil
	_, err = env.auth.UploadAvatar(ctx, a.ID, strings.NewReader("png"), "image/png")
	assert.True(t, apperr.Is(err, apperr.KindValidation))
}
