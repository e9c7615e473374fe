package mysql

import (
	"context"

	"gorm.io/gorm"

	"github.com/xiebiao/library/internal/domain/category"
)

// categoryRepository 分类仓储实现(MySQL)
type categoryRepository struct {
	db *gorm.DB
}

// NewCategoryRepository 创建分类仓储
func NewCategoryRepository(db *gorm.DB) category.Repository {
	return &categoryRepository{db: db}
}

func (r *categoryRepository) Create(ctx context.Context, c *category.Category) error {
	model := toCategoryModel(c)
	if err := getDB(ctx, r.db).Create(model).Error; err != nil {
		if isDuplicateError(err) {
			return category.ErrNameDuplicate
		}
		return translateError(err, nil, "创建分类失败")
	}
	c.ID = model.ID
	c.CreatedAt = model.CreatedAt
	c.UpdatedAt = model.UpdatedAt
	return nil
}

func (r *categoryRepository) FindByID(ctx context.Context, id uint) (*category.Category, error) {
	var model CategoryModel
	if err := getDB(ctx, r.db).First(&model, id).Error; err != nil {
		return nil, translateError(err, category.NotFound(id), "查询分类失败")
	}
	return toCategoryEntity(&model), nil
}

func (r *categoryRepository) FindByIDs(ctx context.Context, ids []uint) (map[uint]*category.Category, error) {
	out := make(map[uint]*category.Category, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	var models []CategoryModel
	if err := getDB(ctx, r.db).Where("id IN ?", ids).Find(&models).Error; err != nil {
		return nil, translateError(err, nil, "批量查询分类失败")
	}
	for i := range models {
		out[models[i].ID] = toCategoryEntity(&models[i])
	}
	return out, nil
}

func (r *categoryRepository) Update(ctx context.Context, c *category.Category) error {
	model := toCategoryModel(c)
	if err := getDB(ctx, r.db).Save(model).Error; err != nil {
		if isDuplicateError(err) {
			return category.ErrNameDuplicate
		}
		return translateError(err, nil, "更新分类失败")
	}
	c.UpdatedAt = model.UpdatedAt
	return nil
}

func (r *categoryRepository) Delete(ctx context.Context, id uint) error {
	result := getDB(ctx, r.db).Delete(&CategoryModel{}, id)
	if result.Error != nil {
		return translateError(result.Error, nil, "删除分类失败")
	}
	if result.RowsAffected == 0 {
		return category.NotFound(id)
	}
	return nil
}

func (r *categoryRepository) List(ctx context.Context, params category.ListParams) ([]*category.Category, int64, error) {
	query := getDB(ctx, r.db).Model(&CategoryModel{})
	if params.Keyword != "" {
		kw := likePattern(params.Keyword)
		query = query.Where("name LIKE ? OR description LIKE ?", kw, kw)
	}
	if params.Status != "" {
		query = query.Where("status = ?", string(params.Status))
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, translateError(err, nil, "查询分类总数失败")
	}

	var models []CategoryModel
	if err := query.Order("id DESC").Scopes(paginate(params.Page, params.PageSize)).Find(&models).Error; err != nil {
		return nil, 0, translateError(err, nil, "查询分类列表失败")
	}

	categories := make([]*category.Category, len(models))
	for i := range models {
		categories[i] = toCategoryEntity(&models[i])
	}
	return categories, total, nil
}
