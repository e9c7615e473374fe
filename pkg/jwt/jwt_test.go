package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/xiebiao/library/pkg/errors"
)

func TestManager_GenerateAndParse(t *testing.T) {
	m := NewManager("test-secret", time.Hour, 24*time.Hour)

	pair, err := m.GenerateToken(7, "librarian@example.com", "前台")
	require.NoError(t, err)
	assert.Equal(t, int64(3600), pair.ExpiresIn)

	claims, err := m.ParseToken(pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, uint(7), claims.StaffID)
	assert.Equal(t, "librarian@example.com", claims.Email)
	assert.Equal(t, "7", claims.Subject)

	t.Run("Refresh Token不能访问接口", func(t *testing.T) {
		_, err := m.ParseToken(pair.RefreshToken)
		assert.ErrorIs(t, err, apperrors.ErrInvalidToken)
	})

	t.Run("Access Token不能用于刷新", func(t *testing.T) {
		_, err := m.RefreshAccessToken(pair.AccessToken)
		assert.ErrorIs(t, err, apperrors.ErrInvalidToken)
	})

	t.Run("刷新得到新的Access Token", func(t *testing.T) {
		access, err := m.RefreshAccessToken(pair.RefreshToken)
		require.NoError(t, err)
		claims, err := m.ParseToken(access)
		require.NoError(t, err)
		assert.Equal(t, uint(7), claims.StaffID)
	})
}

func TestManager_ParseToken_Invalid(t *testing.T) {
	m := NewManager("test-secret", time.Hour, time.Hour)

	t.Run("签名密钥不一致", func(t *testing.T) {
		other := NewManager("other-secret", time.Hour, time.Hour)
		pair, err := other.GenerateToken(1, "a@b.com", "a")
		require.NoError(t, err)

		_, err = m.ParseToken(pair.AccessToken)
		assert.ErrorIs(t, err, apperrors.ErrInvalidToken)
	})

	t.Run("已过期", func(t *testing.T) {
		expired := NewManager("test-secret", -time.Minute, time.Hour)
		pair, err := expired.GenerateToken(1, "a@b.com", "a")
		require.NoError(t, err)

		_, err = m.ParseToken(pair.AccessToken)
		assert.ErrorIs(t, err, apperrors.ErrTokenExpired)
	})

	t.Run("格式错误", func(t *testing.T) {
		_, err := m.ParseToken("not-a-token")
		assert.ErrorIs(t, err, apperrors.ErrInvalidToken)
	})
}
