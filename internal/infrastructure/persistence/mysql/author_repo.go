package mysql

import (
	"context"

	"gorm.io/gorm"

	"github.com/xiebiao/library/internal/domain/author"
)

// authorRepository 作者仓储实现(MySQL)
type authorRepository struct {
	db *gorm.DB
}

// NewAuthorRepository 创建作者仓储
func NewAuthorRepository(db *gorm.DB) author.Repository {
	return &authorRepository{db: db}
}

func (r *authorRepository) Create(ctx context.Context, a *author.Author) error {
	model := toAuthorModel(a)
	if err := getDB(ctx, r.db).Create(model).Error; err != nil {
		return translateError(err, nil, "创建作者失败")
	}
	a.ID = model.ID
	a.CreatedAt = model.CreatedAt
	a.UpdatedAt = model.UpdatedAt
	return nil
}

func (r *authorRepository) FindByID(ctx context.Context, id uint) (*author.Author, error) {
	var model AuthorModel
	if err := getDB(ctx, r.db).First(&model, id).Error; err != nil {
		return nil, translateError(err, author.NotFound(id), "查询作者失败")
	}
	return toAuthorEntity(&model), nil
}

func (r *authorRepository) FindByIDs(ctx context.Context, ids []uint) (map[uint]*author.Author, error) {
	out := make(map[uint]*author.Author, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	var models []AuthorModel
	if err := getDB(ctx, r.db).Where("id IN ?", ids).Find(&models).Error; err != nil {
		return nil, translateError(err, nil, "批量查询作者失败")
	}
	for i := range models {
		out[models[i].ID] = toAuthorEntity(&models[i])
	}
	return out, nil
}

func (r *authorRepository) Update(ctx context.Context, a *author.Author) error {
	model := toAuthorModel(a)
	if err := getDB(ctx, r.db).Save(model).Error; err != nil {
		return translateError(err, nil, "更新作者失败")
	}
	a.UpdatedAt = model.UpdatedAt
	return nil
}

func (r *authorRepository) Delete(ctx context.Context, id uint) error {
	result := getDB(ctx, r.db).Delete(&AuthorModel{}, id)
	if result.Error != nil {
		return translateError(result.Error, nil, "删除作者失败")
	}
	if result.RowsAffected == 0 {
		return author.NotFound(id)
	}
	return nil
}

func (r *authorRepository) List(ctx context.Context, params author.ListParams) ([]*author.Author, int64, error) {
	query := getDB(ctx, r.db).Model(&AuthorModel{})
	if params.Keyword != "" {
		kw := likePattern(params.Keyword)
		query = query.Where("first_name LIKE ? OR last_name LIKE ? OR email LIKE ?", kw, kw, kw)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, translateError(err, nil, "查询作者总数失败")
	}

	var models []AuthorModel
	if err := query.Order("id DESC").Scopes(paginate(params.Page, params.PageSize)).Find(&models).Error; err != nil {
		return nil, 0, translateError(err, nil, "查询作者列表失败")
	}

	authors := make([]*author.Author, len(models))
	for i := range models {
		authors[i] = toAuthorEntity(&models[i])
	}
	return authors, total, nil
}
