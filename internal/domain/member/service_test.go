package member_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xiebiao/library/internal/domain/member"
	"github.com/xiebiao/library/internal/infrastructure/persistence/memory"
)

func TestRegisterMember(t *testing.T) {
	svc := member.NewService(memory.NewMemberRepository(memory.NewStore()))
	ctx := context.Background()

	m, err := svc.RegisterMember(ctx, "Deiber", "Olivares", "1044556677", "Deiber@Example.com", "", "")
	require.NoError(t, err)
	assert.Equal(t, member.DefaultObservations, m.Observations)
	assert.Equal(t, "deiber@example.com", m.Email)
	assert.True(t, m.CanBorrow())

	t.Run("证件号重复", func(t *testing.T) {
		_, err := svc.RegisterMember(ctx, "Otro", "Lector", "1044556677", "otro@example.com", "", "")
		assert.ErrorIs(t, err, member.ErrIdentificationDuplicate)
	})

	t.Run("邮箱重复(不区分大小写)", func(t *testing.T) {
		_, err := svc.RegisterMember(ctx, "Otro", "Lector", "99887766", "DEIBER@example.com", "", "")
		assert.ErrorIs(t, err, member.ErrEmailDuplicate)
	})

	t.Run("证件号太短", func(t *testing.T) {
		_, err := svc.RegisterMember(ctx, "Otro", "Lector", "123", "x@example.com", "", "")
		assert.ErrorIs(t, err, member.ErrInvalidIdentification)
	})

	t.Run("按证件号查询", func(t *testing.T) {
		got, err := svc.GetMemberByIdentification(ctx, "1044556677")
		require.NoError(t, err)
		assert.Equal(t, m.ID, got.ID)

		_, err = svc.GetMemberByIdentification(ctx, "000000")
		assert.ErrorIs(t, err, member.ErrMemberNotFound)
	})
}

func TestUpdateMember(t *testing.T) {
	svc := member.NewService(memory.NewMemberRepository(memory.NewStore()))
	ctx := context.Background()

	a, err := svc.RegisterMember(ctx, "Lectora", "Uno", "111111", "uno@example.com", "", "")
	require.NoError(t, err)
	b, err := svc.RegisterMember(ctx, "Lectora", "Dos", "222222", "dos@example.com", "VIP", "")
	require.NoError(t, err)

	t.Run("修改为他人的邮箱", func(t *testing.T) {
		email := "uno@example.com"
		_, err := svc.UpdateMember(ctx, b.ID, member.UpdateFields{Email: &email})
		assert.ErrorIs(t, err, member.ErrEmailDuplicate)
	})

	t.Run("修改自己的字段不算重复", func(t *testing.T) {
		email := "uno@example.com"
		inactive := member.StatusInactive
		updated, err := svc.UpdateMember(ctx, a.ID, member.UpdateFields{Email: &email, Status: &inactive})
		require.NoError(t, err)
		assert.False(t, updated.CanBorrow())
	})

	t.Run("清空备注恢复默认值", func(t *testing.T) {
		empty := ""
		updated, err := svc.UpdateMember(ctx, b.ID, member.UpdateFields{Observations: &empty})
		require.NoError(t, err)
		assert.Equal(t, member.DefaultObservations, updated.Observations)
	})
}
