package inventory

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewInventory(t *testing.T) {
	t.Run("默认采购1本", func(t *testing.T) {
		inv, err := NewInventory(7, 0)
		require.NoError(t, err)
		assert.Equal(t, 1, inv.UnitsPurchased)
		assert.Equal(t, 0, inv.LoanedUnits)
		assert.Equal(t, 1, inv.UnitsAvailable)
	})

	t.Run("负数采购数量", func(t *testing.T) {
		_, err := NewInventory(7, -3)
		assert.ErrorIs(t, err, ErrNegativeUnits)
	})

	t.Run("缺少图书", func(t *testing.T) {
		_, err := NewInventory(0, 3)
		assert.ErrorIs(t, err, ErrInvalidBookID)
	})
}

func TestRecalculate(t *testing.T) {
	tests := []struct {
		name      string
		purchased int
		loaned    int
		available int
		wantErr   error
	}{
		{"全部可借", 5, 0, 5, nil},
		{"部分借出", 5, 2, 3, nil},
		{"全部借出", 5, 5, 0, nil},
		{"借出超过采购", 5, 6, 0, ErrLoanedExceedsPurchased},
		{"借出为负", 5, -1, 0, ErrNegativeUnits},
		{"采购为负", -1, 0, 0, ErrNegativeUnits},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inv := &Inventory{UnitsPurchased: tt.purchased, LoanedUnits: tt.loaned, UnitsAvailable: 99}
			err := inv.Recalculate()
			if tt.wantErr != nil {
				assert.True(t, errors.Is(err, tt.wantErr))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.available, inv.UnitsAvailable)
		})
	}
}

func TestLend(t *testing.T) {
	inv, err := NewInventory(1, 3)
	require.NoError(t, err)

	require.NoError(t, inv.Lend(2))
	assert.Equal(t, 2, inv.LoanedUnits)
	assert.Equal(t, 1, inv.UnitsAvailable)

	t.Run("超过可借数量时不修改", func(t *testing.T) {
		err := inv.Lend(2)
		assert.ErrorIs(t, err, ErrLoanedExceedsPurchased)
		assert.Equal(t, 2, inv.LoanedUnits)
		assert.Equal(t, 1, inv.UnitsAvailable)
	})

	require.NoError(t, inv.Lend(1))

	t.Run("没有可借库存", func(t *testing.T) {
		assert.ErrorIs(t, inv.Lend(1), ErrNoUnitsAvailable)
	})

	t.Run("数量必须为正", func(t *testing.T) {
		assert.ErrorIs(t, inv.Lend(0), ErrInvalidUnits)
	})
}

func TestReturn(t *testing.T) {
	inv := &Inventory{BookID: 1, UnitsPurchased: 2, LoanedUnits: 2}
	require.NoError(t, inv.Recalculate())

	require.NoError(t, inv.Return(1))
	assert.Equal(t, 1, inv.LoanedUnits)
	assert.Equal(t, 1, inv.UnitsAvailable)

	t.Run("可以归还最后一本", func(t *testing.T) {
		require.NoError(t, inv.Return(1))
		assert.Equal(t, 0, inv.LoanedUnits)
		assert.Equal(t, 2, inv.UnitsAvailable)
	})

	t.Run("归还超过借出数量", func(t *testing.T) {
		assert.ErrorIs(t, inv.Return(1), ErrReturnExceedsLoaned)
		assert.Equal(t, 0, inv.LoanedUnits)
	})
}

func TestAddUnits(t *testing.T) {
	inv := &Inventory{BookID: 1, UnitsPurchased: 1, LoanedUnits: 1}
	require.NoError(t, inv.Recalculate())
	assert.Equal(t, 0, inv.UnitsAvailable)

	require.NoError(t, inv.AddUnits(4))
	assert.Equal(t, 5, inv.UnitsPurchased)
	assert.Equal(t, 4, inv.UnitsAvailable)

	assert.ErrorIs(t, inv.AddUnits(-1), ErrInvalidUnits)
}

func TestCanDelete(t *testing.T) {
	inv := &Inventory{UnitsPurchased: 2, LoanedUnits: 1}
	assert.ErrorIs(t, inv.CanDelete(), ErrInventoryInUse)

	inv.LoanedUnits = 0
	assert.NoError(t, inv.CanDelete())
}

func TestNewRestockedEvent(t *testing.T) {
	inv := &Inventory{ID: 3, BookID: 9, UnitsPurchased: 6, UnitsAvailable: 4}
	ev := NewRestockedEvent(inv, 2)
	assert.Equal(t, uint(3), ev.InventoryID)
	assert.Equal(t, uint(9), ev.BookID)
	assert.Equal(t, 2, ev.AddedUnits)
	assert.False(t, ev.OccurredAt.IsZero())
}
