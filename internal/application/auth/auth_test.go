package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/xiebiao/library/internal/application/auth"
	"github.com/xiebiao/library/internal/domain/staff"
	"github.com/xiebiao/library/internal/infrastructure/persistence/memory"
	"github.com/xiebiao/library/internal/infrastructure/persistence/redis"
	apperrors "github.com/xiebiao/library/pkg/errors"
	"github.com/xiebiao/library/pkg/jwt"
)

type fixture struct {
	sessions *redis.SessionStore
	register *auth.RegisterUseCase
	login    *auth.LoginUseCase
	logout   *auth.LogoutUseCase
	refresh  *auth.RefreshTokenUseCase
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	staffService := staff.NewServiceWithCost(memory.NewStaffRepository(memory.NewStore()), bcrypt.MinCost)
	jwtManager := jwt.NewManager("test-secret", time.Hour, 24*time.Hour)
	sessions := redis.NewSessionStore(client, "library-test")
	return &fixture{
		sessions: sessions,
		register: auth.NewRegisterUseCase(staffService),
		login:    auth.NewLoginUseCase(staffService, jwtManager, sessions),
		logout:   auth.NewLogoutUseCase(jwtManager, sessions),
		refresh:  auth.NewRefreshTokenUseCase(jwtManager, sessions),
	}
}

func TestRegisterAndLogin(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	info, err := f.register.Execute(ctx, auth.RegisterRequest{
		Email: "Bibliotecaria@Library.org", Password: "Prestamo2024", Nickname: "Ana",
	})
	require.NoError(t, err)
	assert.Equal(t, "bibliotecaria@library.org", info.Email)

	_, err = f.register.Execute(ctx, auth.RegisterRequest{
		Email: "bibliotecaria@library.org", Password: "Prestamo2024", Nickname: "Ana",
	})
	assert.ErrorIs(t, err, apperrors.ErrEmailDuplicate)

	resp, err := f.login.Execute(ctx, auth.LoginRequest{
		Email: "bibliotecaria@library.org", Password: "Prestamo2024", ClientIP: "10.0.0.8",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
	assert.Equal(t, int64(3600), resp.ExpiresIn)

	session, err := f.sessions.GetSession(ctx, info.ID)
	require.NoError(t, err)
	assert.Equal(t, "10.0.0.8", session["ip"])

	t.Run("密码错误", func(t *testing.T) {
		_, err := f.login.Execute(ctx, auth.LoginRequest{Email: "bibliotecaria@library.org", Password: "Wrong12345"})
		assert.ErrorIs(t, err, apperrors.ErrInvalidPassword)
	})
}

func TestLogoutAndRefresh(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.register.Execute(ctx, auth.RegisterRequest{Email: "ana@library.org", Password: "Prestamo2024", Nickname: "Ana"})
	require.NoError(t, err)
	resp, err := f.login.Execute(ctx, auth.LoginRequest{Email: "ana@library.org", Password: "Prestamo2024"})
	require.NoError(t, err)

	refreshed, err := f.refresh.Execute(ctx, resp.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, refreshed.AccessToken)

	_, err = f.refresh.Execute(ctx, resp.AccessToken)
	assert.ErrorIs(t, err, apperrors.ErrInvalidToken, "Access Token不能用来刷新")

	require.NoError(t, f.logout.Execute(ctx, resp.AccessToken))

	revoked, err := f.sessions.IsInBlacklist(ctx, resp.AccessToken)
	require.NoError(t, err)
	assert.True(t, revoked)

	_, err = f.refresh.Execute(ctx, resp.RefreshToken)
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized, "登出后不能再换发")
}
