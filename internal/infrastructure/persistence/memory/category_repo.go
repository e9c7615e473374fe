package memory

import (
	"context"
	"strings"

	"github.com/xiebiao/library/internal/domain/category"
	apperrors "github.com/xiebiao/library/pkg/errors"
)

type categoryRepository struct {
	store *Store
}

// NewCategoryRepository 创建分类仓储
func NewCategoryRepository(store *Store) category.Repository {
	return &categoryRepository{store: store}
}

func (r *categoryRepository) Create(ctx context.Context, c *category.Category) error {
	return r.store.write(ctx, func(t *tables) error {
		if categoryNameTaken(t, c) {
			return category.ErrNameDuplicate
		}
		c.ID = t.nextID("categories")
		t.categories[c.ID] = *c
		return nil
	})
}

func (r *categoryRepository) FindByID(_ context.Context, id uint) (*category.Category, error) {
	var out *category.Category
	err := r.store.read(func(t *tables) error {
		c, ok := t.categories[id]
		if !ok {
			return category.NotFound(id)
		}
		out = &c
		return nil
	})
	return out, err
}

func (r *categoryRepository) FindByIDs(_ context.Context, ids []uint) (map[uint]*category.Category, error) {
	out := make(map[uint]*category.Category, len(ids))
	err := r.store.read(func(t *tables) error {
		for _, id := range ids {
			if c, ok := t.categories[id]; ok {
				out[id] = &c
			}
		}
		return nil
	})
	return out, err
}

func (r *categoryRepository) Update(ctx context.Context, c *category.Category) error {
	return r.store.write(ctx, func(t *tables) error {
		if _, ok := t.categories[c.ID]; !ok {
			return category.NotFound(c.ID)
		}
		if categoryNameTaken(t, c) {
			return category.ErrNameDuplicate
		}
		t.categories[c.ID] = *c
		return nil
	})
}

func (r *categoryRepository) Delete(ctx context.Context, id uint) error {
	return r.store.write(ctx, func(t *tables) error {
		if _, ok := t.categories[id]; !ok {
			return category.NotFound(id)
		}
		for _, b := range t.books {
			if b.CategoryID == id {
				return apperrors.ErrReferencedRow
			}
		}
		delete(t.categories, id)
		return nil
	})
}

func (r *categoryRepository) List(_ context.Context, params category.ListParams) ([]*category.Category, int64, error) {
	var rows []category.Category
	_ = r.store.read(func(t *tables) error {
		rows = sortedDesc(t.categories, func(c category.Category) bool {
			if params.Status != "" && c.Status != params.Status {
				return false
			}
			return params.Keyword == "" ||
				containsFold(c.Name, params.Keyword) ||
				containsFold(c.Description, params.Keyword)
		})
		return nil
	})
	list, total := pageOf(rows, params.Page, params.PageSize)
	return list, total, nil
}

// categoryNameTaken 模拟name列的唯一索引(utf8mb4_general_ci不区分大小写)
func categoryNameTaken(t *tables, c *category.Category) bool {
	for id, existing := range t.categories {
		if id != c.ID && strings.EqualFold(existing.Name, c.Name) {
			return true
		}
	}
	return false
}
