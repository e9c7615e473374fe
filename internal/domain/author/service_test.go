package author_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xiebiao/library/internal/domain/author"
	"github.com/xiebiao/library/internal/infrastructure/persistence/memory"
	apperrors "github.com/xiebiao/library/pkg/errors"
)

func newService() author.Service {
	return author.NewService(memory.NewAuthorRepository(memory.NewStore()))
}

func strPtr(s string) *string { return &s }

func TestCreateAuthor(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	t.Run("邮箱可以为空", func(t *testing.T) {
		a, err := svc.CreateAuthor(ctx, "  Jorge Luis ", "Borges", "")
		require.NoError(t, err)
		assert.NotZero(t, a.ID)
		assert.Equal(t, "Jorge Luis", a.FirstName)
		assert.Empty(t, a.Email)
	})

	t.Run("名字太短", func(t *testing.T) {
		_, err := svc.CreateAuthor(ctx, "Jo", "Borges", "")
		assert.ErrorIs(t, err, author.ErrInvalidFirstName)
	})

	t.Run("邮箱格式错误", func(t *testing.T) {
		_, err := svc.CreateAuthor(ctx, "Julio", "Cortázar", "not-an-email")
		assert.ErrorIs(t, err, author.ErrInvalidEmail)
	})
}

func TestUpdateAuthor(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	a, err := svc.CreateAuthor(ctx, "Julio", "Cortázar", "")
	require.NoError(t, err)

	updated, err := svc.UpdateAuthor(ctx, a.ID, author.UpdateFields{Email: strPtr("julio@rayuela.ar")})
	require.NoError(t, err)
	assert.Equal(t, "julio@rayuela.ar", updated.Email)
	assert.Equal(t, "Julio", updated.FirstName, "未提供的字段保持不变")

	t.Run("非法修改不落库", func(t *testing.T) {
		_, err := svc.UpdateAuthor(ctx, a.ID, author.UpdateFields{LastName: strPtr("X")})
		assert.ErrorIs(t, err, author.ErrInvalidLastName)

		got, err := svc.GetAuthor(ctx, a.ID)
		require.NoError(t, err)
		assert.Equal(t, "Cortázar", got.LastName)
	})

	t.Run("作者不存在", func(t *testing.T) {
		_, err := svc.UpdateAuthor(ctx, 999, author.UpdateFields{})
		require.Error(t, err)
		appErr := apperrors.GetAppError(err)
		require.NotNil(t, appErr)
		assert.Equal(t, 404, appErr.HTTPStatus())
		assert.Contains(t, appErr.Message, "999")
	})
}

func TestDeleteAuthor(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	a, err := svc.CreateAuthor(ctx, "Pablo", "Neruda", "")
	require.NoError(t, err)

	removed, err := svc.DeleteAuthor(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, a.ID, removed.ID)

	_, err = svc.GetAuthor(ctx, a.ID)
	assert.ErrorIs(t, err, author.ErrAuthorNotFound)
}

func TestListAuthors(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	for _, name := range []string{"Pablo", "Gabriela", "Mario"} {
		_, err := svc.CreateAuthor(ctx, name, "Apellido", "")
		require.NoError(t, err)
	}

	list, total, err := svc.ListAuthors(ctx, author.ListParams{Keyword: "gab"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, "Gabriela", list[0].FirstName)

	list, total, err = svc.ListAuthors(ctx, author.ListParams{Page: 1, PageSize: 2})
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	assert.Len(t, list, 2)
	assert.Equal(t, "Mario", list[0].FirstName, "最新创建的在前")
}
