package mysql

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/xiebiao/library/internal/domain/inventory"
)

// inventoryRepository 库存仓储实现(MySQL)
// 并发控制:借书、还书、补货都先在事务中LockByID/LockByBookID(SELECT ... FOR UPDATE)，
// 同一库存行的修改串行执行，不会出现超借
type inventoryRepository struct {
	db *gorm.DB
}

// NewInventoryRepository 创建库存仓储
func NewInventoryRepository(db *gorm.DB) inventory.Repository {
	return &inventoryRepository{db: db}
}

// Create 创建库存，BeforeSave钩子计算可借数量
func (r *inventoryRepository) Create(ctx context.Context, inv *inventory.Inventory) error {
	model := toInventoryModel(inv)
	if err := getDB(ctx, r.db).Omit(clause.Associations).Create(model).Error; err != nil {
		if isDuplicateError(err) {
			return inventory.ErrInventoryExists
		}
		return translateError(err, nil, "创建库存失败")
	}
	inv.ID = model.ID
	inv.UnitsAvailable = model.UnitsAvailable
	inv.CreatedAt = model.CreatedAt
	inv.UpdatedAt = model.UpdatedAt
	return nil
}

func (r *inventoryRepository) FindByID(ctx context.Context, id uint) (*inventory.Inventory, error) {
	var model InventoryModel
	if err := getDB(ctx, r.db).First(&model, id).Error; err != nil {
		return nil, translateError(err, inventory.NotFound(id), "查询库存失败")
	}
	return toInventoryEntity(&model), nil
}

func (r *inventoryRepository) FindByBookID(ctx context.Context, bookID uint) (*inventory.Inventory, error) {
	var model InventoryModel
	if err := getDB(ctx, r.db).Where("book_id = ?", bookID).First(&model).Error; err != nil {
		return nil, translateError(err, inventory.NotFoundForBook(bookID), "查询库存失败")
	}
	return toInventoryEntity(&model), nil
}

func (r *inventoryRepository) FindByBookIDs(ctx context.Context, bookIDs []uint) (map[uint]*inventory.Inventory, error) {
	out := make(map[uint]*inventory.Inventory, len(bookIDs))
	if len(bookIDs) == 0 {
		return out, nil
	}
	var models []InventoryModel
	if err := getDB(ctx, r.db).Where("book_id IN ?", bookIDs).Find(&models).Error; err != nil {
		return nil, translateError(err, nil, "批量查询库存失败")
	}
	for i := range models {
		out[models[i].BookID] = toInventoryEntity(&models[i])
	}
	return out, nil
}

// LockByID 悲观锁查询
// 必须使用getDB(ctx)从context获取事务DB，否则锁在语句结束时就释放了
func (r *inventoryRepository) LockByID(ctx context.Context, id uint) (*inventory.Inventory, error) {
	var model InventoryModel
	err := getDB(ctx, r.db).Clauses(clause.Locking{Strength: "UPDATE"}).First(&model, id).Error
	if err != nil {
		return nil, translateError(err, inventory.NotFound(id), "锁定库存失败")
	}
	return toInventoryEntity(&model), nil
}

func (r *inventoryRepository) LockByBookID(ctx context.Context, bookID uint) (*inventory.Inventory, error) {
	var model InventoryModel
	err := getDB(ctx, r.db).Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("book_id = ?", bookID).First(&model).Error
	if err != nil {
		return nil, translateError(err, inventory.NotFoundForBook(bookID), "锁定库存失败")
	}
	return toInventoryEntity(&model), nil
}

// Save 保存数量变化，BeforeSave钩子再次校验不变式
func (r *inventoryRepository) Save(ctx context.Context, inv *inventory.Inventory) error {
	model := toInventoryModel(inv)
	if err := getDB(ctx, r.db).Omit(clause.Associations).Save(model).Error; err != nil {
		return translateError(err, nil, "更新库存失败")
	}
	inv.UnitsAvailable = model.UnitsAvailable
	inv.UpdatedAt = model.UpdatedAt
	return nil
}

func (r *inventoryRepository) Delete(ctx context.Context, id uint) error {
	result := getDB(ctx, r.db).Delete(&InventoryModel{}, id)
	if result.Error != nil {
		return translateError(result.Error, nil, "删除库存失败")
	}
	if result.RowsAffected == 0 {
		return inventory.NotFound(id)
	}
	return nil
}

func (r *inventoryRepository) List(ctx context.Context, params inventory.ListParams) ([]*inventory.Inventory, int64, error) {
	query := getDB(ctx, r.db).Model(&InventoryModel{})
	if params.OnlyAvailable {
		query = query.Where("units_available > 0")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, translateError(err, nil, "查询库存总数失败")
	}

	var models []InventoryModel
	if err := query.Order("id DESC").Scopes(paginate(params.Page, params.PageSize)).Find(&models).Error; err != nil {
		return nil, 0, translateError(err, nil, "查询库存列表失败")
	}

	list := make([]*inventory.Inventory, len(models))
	for i := range models {
		list[i] = toInventoryEntity(&models[i])
	}
	return list, total, nil
}
