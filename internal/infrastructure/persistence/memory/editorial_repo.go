package memory

import (
	"context"
	"strings"

	"github.com/xiebiao/library/internal/domain/editorial"
	apperrors "github.com/xiebiao/library/pkg/errors"
)

type editorialRepository struct {
	store *Store
}

// NewEditorialRepository 创建出版社仓储
func NewEditorialRepository(store *Store) editorial.Repository {
	return &editorialRepository{store: store}
}

func (r *editorialRepository) Create(ctx context.Context, e *editorial.Editorial) error {
	return r.store.write(ctx, func(t *tables) error {
		if editorialNameTaken(t, e) {
			return editorial.ErrNameDuplicate
		}
		e.ID = t.nextID("editorials")
		t.editorials[e.ID] = *e
		return nil
	})
}

func (r *editorialRepository) FindByID(_ context.Context, id uint) (*editorial.Editorial, error) {
	var out *editorial.Editorial
	err := r.store.read(func(t *tables) error {
		e, ok := t.editorials[id]
		if !ok {
			return editorial.NotFound(id)
		}
		out = &e
		return nil
	})
	return out, err
}

func (r *editorialRepository) FindByIDs(_ context.Context, ids []uint) (map[uint]*editorial.Editorial, error) {
	out := make(map[uint]*editorial.Editorial, len(ids))
	err := r.store.read(func(t *tables) error {
		for _, id := range ids {
			if e, ok := t.editorials[id]; ok {
				out[id] = &e
			}
		}
		return nil
	})
	return out, err
}

func (r *editorialRepository) Update(ctx context.Context, e *editorial.Editorial) error {
	return r.store.write(ctx, func(t *tables) error {
		if _, ok := t.editorials[e.ID]; !ok {
			return editorial.NotFound(e.ID)
		}
		if editorialNameTaken(t, e) {
			return editorial.ErrNameDuplicate
		}
		t.editorials[e.ID] = *e
		return nil
	})
}

func (r *editorialRepository) Delete(ctx context.Context, id uint) error {
	return r.store.write(ctx, func(t *tables) error {
		if _, ok := t.editorials[id]; !ok {
			return editorial.NotFound(id)
		}
		for _, b := range t.books {
			if b.EditorialID == id {
				return apperrors.ErrReferencedRow
			}
		}
		delete(t.editorials, id)
		return nil
	})
}

func (r *editorialRepository) List(_ context.Context, params editorial.ListParams) ([]*editorial.Editorial, int64, error) {
	var rows []editorial.Editorial
	_ = r.store.read(func(t *tables) error {
		rows = sortedDesc(t.editorials, func(e editorial.Editorial) bool {
			if params.Status != "" && e.Status != params.Status {
				return false
			}
			return params.Keyword == "" ||
				containsFold(e.Name, params.Keyword) ||
				containsFold(e.Description, params.Keyword)
		})
		return nil
	})
	list, total := pageOf(rows, params.Page, params.PageSize)
	return list, total, nil
}

// editorialNameTaken 模拟name列的唯一索引(utf8mb4_general_ci不区分大小写)
func editorialNameTaken(t *tables, e *editorial.Editorial) bool {
	for id, existing := range t.editorials {
		if id != e.ID && strings.EqualFold(existing.Name, e.Name) {
			return true
		}
	}
	return false
}
