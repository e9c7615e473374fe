package memory

import (
	"context"

	"github.com/xiebiao/library/internal/domain/author"
	apperrors "github.com/xiebiao/library/pkg/errors"
)

type authorRepository struct {
	store *Store
}

// NewAuthorRepository 创建作者仓储
func NewAuthorRepository(store *Store) author.Repository {
	return &authorRepository{store: store}
}

func (r *authorRepository) Create(ctx context.Context, a *author.Author) error {
	return r.store.write(ctx, func(t *tables) error {
		a.ID = t.nextID("authors")
		t.authors[a.ID] = *a
		return nil
	})
}

func (r *authorRepository) FindByID(_ context.Context, id uint) (*author.Author, error) {
	var out *author.Author
	err := r.store.read(func(t *tables) error {
		a, ok := t.authors[id]
		if !ok {
			return author.NotFound(id)
		}
		out = &a
		return nil
	})
	return out, err
}

func (r *authorRepository) FindByIDs(_ context.Context, ids []uint) (map[uint]*author.Author, error) {
	out := make(map[uint]*author.Author, len(ids))
	err := r.store.read(func(t *tables) error {
		for _, id := range ids {
			if a, ok := t.authors[id]; ok {
				out[id] = &a
			}
		}
		return nil
	})
	return out, err
}

func (r *authorRepository) Update(ctx context.Context, a *author.Author) error {
	return r.store.write(ctx, func(t *tables) error {
		if _, ok := t.authors[a.ID]; !ok {
			return author.NotFound(a.ID)
		}
		t.authors[a.ID] = *a
		return nil
	})
}

func (r *authorRepository) Delete(ctx context.Context, id uint) error {
	return r.store.write(ctx, func(t *tables) error {
		if _, ok := t.authors[id]; !ok {
			return author.NotFound(id)
		}
		for _, b := range t.books {
			if b.AuthorID == id {
				return apperrors.ErrReferencedRow
			}
		}
		delete(t.authors, id)
		return nil
	})
}

func (r *authorRepository) List(_ context.Context, params author.ListParams) ([]*author.Author, int64, error) {
	var rows []author.Author
	_ = r.store.read(func(t *tables) error {
		rows = sortedDesc(t.authors, func(a author.Author) bool {
			return params.Keyword == "" ||
				containsFold(a.FirstName, params.Keyword) ||
				containsFold(a.LastName, params.Keyword) ||
				containsFold(a.Email, params.Keyword)
		})
		return nil
	})
	list, total := pageOf(rows, params.Page, params.PageSize)
	return list, total, nil
}
