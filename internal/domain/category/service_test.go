package category_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xiebiao/library/internal/domain/category"
	"github.com/xiebiao/library/internal/infrastructure/persistence/memory"
)

func TestCategoryService(t *testing.T) {
	svc := category.NewService(memory.NewCategoryRepository(memory.NewStore()))
	ctx := context.Background()

	c, err := svc.CreateCategory(ctx, "Poesía", "Versos", "")
	require.NoError(t, err)
	assert.Equal(t, category.StatusActive, c.Status, "默认启用")

	t.Run("名称重复", func(t *testing.T) {
		_, err := svc.CreateCategory(ctx, "poesía", "", "")
		assert.ErrorIs(t, err, category.ErrNameDuplicate)
	})

	t.Run("非法状态", func(t *testing.T) {
		_, err := svc.CreateCategory(ctx, "Ensayo", "", "archived")
		assert.ErrorIs(t, err, category.ErrInvalidStatus)

		_, _, err = svc.ListCategories(ctx, category.ListParams{Status: "archived"})
		assert.ErrorIs(t, err, category.ErrInvalidStatus)
	})

	t.Run("停用后按状态过滤", func(t *testing.T) {
		inactive := category.StatusInactive
		_, err := svc.UpdateCategory(ctx, c.ID, category.UpdateFields{Status: &inactive})
		require.NoError(t, err)

		_, total, err := svc.ListCategories(ctx, category.ListParams{Status: category.StatusActive})
		require.NoError(t, err)
		assert.Zero(t, total)
	})

	t.Run("删除返回被删除的记录", func(t *testing.T) {
		removed, err := svc.DeleteCategory(ctx, c.ID)
		require.NoError(t, err)
		assert.Equal(t, "Poesía", removed.Name)

		_, err = svc.GetCategory(ctx, c.ID)
		assert.ErrorIs(t, err, category.ErrCategoryNotFound)
	})
}
