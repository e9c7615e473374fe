package memory

import (
	"context"

	"github.com/xiebiao/library/internal/domain/inventory"
	apperrors "github.com/xiebiao/library/pkg/errors"
)

type inventoryRepository struct {
	store *Store
}

// NewInventoryRepository 创建库存仓储
func NewInventoryRepository(store *Store) inventory.Repository {
	return &inventoryRepository{store: store}
}

func (r *inventoryRepository) Create(ctx context.Context, inv *inventory.Inventory) error {
	return r.store.write(ctx, func(t *tables) error {
		if _, ok := t.books[inv.BookID]; !ok {
			return apperrors.ErrUnknownReference
		}
		for _, existing := range t.inventories {
			if existing.BookID == inv.BookID {
				return inventory.ErrInventoryExists
			}
		}
		if err := inv.Recalculate(); err != nil {
			return err
		}
		inv.ID = t.nextID("inventories")
		t.inventories[inv.ID] = *inv
		return nil
	})
}

func (r *inventoryRepository) FindByID(_ context.Context, id uint) (*inventory.Inventory, error) {
	var out *inventory.Inventory
	err := r.store.read(func(t *tables) error {
		inv, ok := t.inventories[id]
		if !ok {
			return inventory.NotFound(id)
		}
		out = &inv
		return nil
	})
	return out, err
}

func (r *inventoryRepository) FindByBookID(_ context.Context, bookID uint) (*inventory.Inventory, error) {
	var out *inventory.Inventory
	err := r.store.read(func(t *tables) error {
		for _, inv := range t.inventories {
			if inv.BookID == bookID {
				out = &inv
				return nil
			}
		}
		return inventory.NotFoundForBook(bookID)
	})
	return out, err
}

func (r *inventoryRepository) FindByBookIDs(_ context.Context, bookIDs []uint) (map[uint]*inventory.Inventory, error) {
	wanted := make(map[uint]bool, len(bookIDs))
	for _, id := range bookIDs {
		wanted[id] = true
	}
	out := make(map[uint]*inventory.Inventory, len(bookIDs))
	err := r.store.read(func(t *tables) error {
		for _, inv := range t.inventories {
			if wanted[inv.BookID] {
				out[inv.BookID] = &inv
			}
		}
		return nil
	})
	return out, err
}

// LockByID 事务持有txMu，读取即为加锁读
func (r *inventoryRepository) LockByID(ctx context.Context, id uint) (*inventory.Inventory, error) {
	return r.FindByID(ctx, id)
}

func (r *inventoryRepository) LockByBookID(ctx context.Context, bookID uint) (*inventory.Inventory, error) {
	return r.FindByBookID(ctx, bookID)
}

// Save 与GORM BeforeSave钩子一致，写入前重新计算可借数量
func (r *inventoryRepository) Save(ctx context.Context, inv *inventory.Inventory) error {
	return r.store.write(ctx, func(t *tables) error {
		if _, ok := t.inventories[inv.ID]; !ok {
			return inventory.NotFound(inv.ID)
		}
		if err := inv.Recalculate(); err != nil {
			return err
		}
		t.inventories[inv.ID] = *inv
		return nil
	})
}

func (r *inventoryRepository) Delete(ctx context.Context, id uint) error {
	return r.store.write(ctx, func(t *tables) error {
		if _, ok := t.inventories[id]; !ok {
			return inventory.NotFound(id)
		}
		delete(t.inventories, id)
		return nil
	})
}

func (r *inventoryRepository) List(_ context.Context, params inventory.ListParams) ([]*inventory.Inventory, int64, error) {
	var rows []inventory.Inventory
	_ = r.store.read(func(t *tables) error {
		rows = sortedDesc(t.inventories, func(inv inventory.Inventory) bool {
			return !params.OnlyAvailable || inv.UnitsAvailable > 0
		})
		return nil
	})
	list, total := pageOf(rows, params.Page, params.PageSize)
	return list, total, nil
}
