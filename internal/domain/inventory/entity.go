package inventory

import (
	"time"
)

// Inventory 图书库存(聚合根)
// 不变式:
//
//	UnitsAvailable = UnitsPurchased - LoanedUnits
//	0 <= LoanedUnits <= UnitsPurchased
//
// 所有修改数量的领域行为最后都调用Recalculate，
// 持久化前(GORM BeforeSave钩子)再调用一次，任何写入路径都无法保存不一致的行
type Inventory struct {
	ID             uint
	BookID         uint // 一本书只有一条库存(唯一索引)
	UnitsPurchased int  // 采购数量
	LoanedUnits    int  // 借出数量
	UnitsAvailable int  // 可借数量(派生字段)
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// DefaultUnitsPurchased 创建库存时未指定采购数量的默认值
const DefaultUnitsPurchased = 1

// NewInventory 创建库存(工厂方法)
// unitsPurchased为0时取默认值1
func NewInventory(bookID uint, unitsPurchased int) (*Inventory, error) {
	if bookID == 0 {
		return nil, ErrInvalidBookID
	}
	if unitsPurchased == 0 {
		unitsPurchased = DefaultUnitsPurchased
	}
	now := time.Now()
	inv := &Inventory{
		BookID:         bookID,
		UnitsPurchased: unitsPurchased,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := inv.Recalculate(); err != nil {
		return nil, err
	}
	return inv, nil
}

// Recalculate 重新计算可借数量并校验不变式
func (i *Inventory) Recalculate() error {
	if i.UnitsPurchased < 0 || i.LoanedUnits < 0 {
		return ErrNegativeUnits
	}
	if i.LoanedUnits > i.UnitsPurchased {
		return ErrLoanedExceedsPurchased
	}
	i.UnitsAvailable = i.UnitsPurchased - i.LoanedUnits
	return nil
}

// AddUnits 补货
func (i *Inventory) AddUnits(units int) error {
	if units <= 0 {
		return ErrInvalidUnits
	}
	return i.mutate(func(next *Inventory) {
		next.UnitsPurchased += units
	})
}

// Lend 借出units本
// 可借数量为0时直接拒绝；超过可借数量时由不变式拒绝
func (i *Inventory) Lend(units int) error {
	if units <= 0 {
		return ErrInvalidUnits
	}
	if i.UnitsAvailable == 0 {
		return ErrNoUnitsAvailable
	}
	return i.mutate(func(next *Inventory) {
		next.LoanedUnits += units
	})
}

// Return 归还units本
// 允许归还到借出数量为0
func (i *Inventory) Return(units int) error {
	if units <= 0 {
		return ErrInvalidUnits
	}
	if i.LoanedUnits-units < 0 {
		return ErrReturnExceedsLoaned
	}
	return i.mutate(func(next *Inventory) {
		next.LoanedUnits -= units
	})
}

// CanDelete 仍有借出的图书时不能删除库存
func (i *Inventory) CanDelete() error {
	if i.LoanedUnits > 0 {
		return ErrInventoryInUse
	}
	return nil
}

// mutate 在副本上修改并校验，失败时原对象保持不变
func (i *Inventory) mutate(fn func(next *Inventory)) error {
	next := *i
	fn(&next)
	if err := next.Recalculate(); err != nil {
		return err
	}
	next.UpdatedAt = time.Now()
	*i = next
	return nil
}
