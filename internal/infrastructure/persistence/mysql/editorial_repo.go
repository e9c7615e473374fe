package mysql

import (
	"context"

	"gorm.io/gorm"

	"github.com/xiebiao/library/internal/domain/editorial"
)

// editorialRepository 出版社仓储实现(MySQL)
type editorialRepository struct {
	db *gorm.DB
}

// NewEditorialRepository 创建出版社仓储
func NewEditorialRepository(db *gorm.DB) editorial.Repository {
	return &editorialRepository{db: db}
}

func (r *editorialRepository) Create(ctx context.Context, e *editorial.Editorial) error {
	model := toEditorialModel(e)
	if err := getDB(ctx, r.db).Create(model).Error; err != nil {
		if isDuplicateError(err) {
			return editorial.ErrNameDuplicate
		}
		return translateError(err, nil, "创建出版社失败")
	}
	e.ID = model.ID
	e.CreatedAt = model.CreatedAt
	e.UpdatedAt = model.UpdatedAt
	return nil
}

func (r *editorialRepository) FindByID(ctx context.Context, id uint) (*editorial.Editorial, error) {
	var model EditorialModel
	if err := getDB(ctx, r.db).First(&model, id).Error; err != nil {
		return nil, translateError(err, editorial.NotFound(id), "查询出版社失败")
	}
	return toEditorialEntity(&model), nil
}

func (r *editorialRepository) FindByIDs(ctx context.Context, ids []uint) (map[uint]*editorial.Editorial, error) {
	out := make(map[uint]*editorial.Editorial, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	var models []EditorialModel
	if err := getDB(ctx, r.db).Where("id IN ?", ids).Find(&models).Error; err != nil {
		return nil, translateError(err, nil, "批量查询出版社失败")
	}
	for i := range models {
		out[models[i].ID] = toEditorialEntity(&models[i])
	}
	return out, nil
}

func (r *editorialRepository) Update(ctx context.Context, e *editorial.Editorial) error {
	model := toEditorialModel(e)
	if err := getDB(ctx, r.db).Save(model).Error; err != nil {
		if isDuplicateError(err) {
			return editorial.ErrNameDuplicate
		}
		return translateError(err, nil, "更新出版社失败")
	}
	e.UpdatedAt = model.UpdatedAt
	return nil
}

func (r *editorialRepository) Delete(ctx context.Context, id uint) error {
	result := getDB(ctx, r.db).Delete(&EditorialModel{}, id)
	if result.Error != nil {
		return translateError(result.Error, nil, "删除出版社失败")
	}
	if result.RowsAffected == 0 {
		return editorial.NotFound(id)
	}
	return nil
}

func (r *editorialRepository) List(ctx context.Context, params editorial.ListParams) ([]*editorial.Editorial, int64, error) {
	query := getDB(ctx, r.db).Model(&EditorialModel{})
	if params.Keyword != "" {
		kw := likePattern(params.Keyword)
		query = query.Where("name LIKE ? OR description LIKE ?", kw, kw)
	}
	if params.Status != "" {
		query = query.Where("status = ?", string(params.Status))
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, translateError(err, nil, "查询出版社总数失败")
	}

	var models []EditorialModel
	if err := query.Order("id DESC").Scopes(paginate(params.Page, params.PageSize)).Find(&models).Error; err != nil {
		return nil, 0, translateError(err, nil, "查询出版社列表失败")
	}

	editorials := make([]*editorial.Editorial, len(models))
	for i := range models {
		editorials[i] = toEditorialEntity(&models[i])
	}
	return editorials, total, nil
}
