package memory

import (
	"context"

	"github.com/xiebiao/library/internal/domain/book"
	apperrors "github.com/xiebiao/library/pkg/errors"
)

type bookRepository struct {
	store *Store
}

// NewBookRepository 创建图书仓储
func NewBookRepository(store *Store) book.Repository {
	return &bookRepository{store: store}
}

func (r *bookRepository) Create(ctx context.Context, b *book.Book) error {
	return r.store.write(ctx, func(t *tables) error {
		if err := bookReferences(t, b); err != nil {
			return err
		}
		b.ID = t.nextID("books")
		t.books[b.ID] = *b
		return nil
	})
}

func (r *bookRepository) FindByID(_ context.Context, id uint) (*book.Book, error) {
	var out *book.Book
	err := r.store.read(func(t *tables) error {
		b, ok := t.books[id]
		if !ok {
			return book.NotFound(id)
		}
		out = &b
		return nil
	})
	return out, err
}

func (r *bookRepository) FindByIDs(_ context.Context, ids []uint) (map[uint]*book.Book, error) {
	out := make(map[uint]*book.Book, len(ids))
	err := r.store.read(func(t *tables) error {
		for _, id := range ids {
			if b, ok := t.books[id]; ok {
				out[id] = &b
			}
		}
		return nil
	})
	return out, err
}

func (r *bookRepository) Update(ctx context.Context, b *book.Book) error {
	return r.store.write(ctx, func(t *tables) error {
		if _, ok := t.books[b.ID]; !ok {
			return book.NotFound(b.ID)
		}
		if err := bookReferences(t, b); err != nil {
			return err
		}
		t.books[b.ID] = *b
		return nil
	})
}

func (r *bookRepository) Delete(ctx context.Context, id uint) error {
	return r.store.write(ctx, func(t *tables) error {
		if _, ok := t.books[id]; !ok {
			return book.NotFound(id)
		}
		for _, inv := range t.inventories {
			if inv.BookID == id {
				return apperrors.ErrReferencedRow
			}
		}
		for _, l := range t.loans {
			if l.BookID == id {
				return apperrors.ErrReferencedRow
			}
		}
		delete(t.books, id)
		return nil
	})
}

func (r *bookRepository) ListSummaries(_ context.Context, params book.ListParams) ([]*book.Summary, int64, error) {
	var rows []book.Summary
	_ = r.store.read(func(t *tables) error {
		books := sortedDesc(t.books, func(b book.Book) bool {
			switch {
			case params.AuthorID != 0 && b.AuthorID != params.AuthorID:
				return false
			case params.CategoryID != 0 && b.CategoryID != params.CategoryID:
				return false
			case params.EditorialID != 0 && b.EditorialID != params.EditorialID:
				return false
			case params.Status != "" && b.Status != params.Status:
				return false
			}
			return params.Keyword == "" ||
				containsFold(b.Name, params.Keyword) ||
				containsFold(b.Description, params.Keyword)
		})
		rows = make([]book.Summary, len(books))
		for i, b := range books {
			a := t.authors[b.AuthorID]
			rows[i] = book.Summary{
				ID:              b.ID,
				Name:            b.Name,
				NumPages:        b.NumPages,
				PlaceOfEdition:  b.PlaceOfEdition,
				YearOfEdition:   b.YearOfEdition,
				Status:          b.Status,
				CategoryName:    t.categories[b.CategoryID].Name,
				EditorialName:   t.editorials[b.EditorialID].Name,
				AuthorFirstName: a.FirstName,
				AuthorLastName:  a.LastName,
			}
		}
		return nil
	})
	list, total := pageOf(rows, params.Page, params.PageSize)
	return list, total, nil
}

// bookReferences 模拟外键约束(1452)
func bookReferences(t *tables, b *book.Book) error {
	if _, ok := t.authors[b.AuthorID]; !ok {
		return apperrors.ErrUnknownReference
	}
	if _, ok := t.categories[b.CategoryID]; !ok {
		return apperrors.ErrUnknownReference
	}
	if _, ok := t.editorials[b.EditorialID]; !ok {
		return apperrors.ErrUnknownReference
	}
	return nil
}
