package book

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/xiebiao/library/internal/domain/author"
	"github.com/xiebiao/library/internal/domain/book"
	"github.com/xiebiao/library/internal/domain/category"
	"github.com/xiebiao/library/internal/domain/editorial"
	apperrors "github.com/xiebiao/library/pkg/errors"
)

// DetailCache 图书详情缓存(Redis实现见persistence/redis.JSONCache)
type DetailCache interface {
	GetJSON(ctx context.Context, key string, dest interface{}) (bool, error)
	SetJSON(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}

// CacheOptions 详情缓存配置
type CacheOptions struct {
	KeyPrefix string
	TTL       time.Duration
}

// DetailKey 图书详情的缓存Key，如library:book:detail:42
func (o CacheOptions) DetailKey(bookID uint) string {
	return fmt.Sprintf("%s:book:detail:%d", o.KeyPrefix, bookID)
}

// Detail 图书详情读模型
// 作者、分类、出版社一并返回，整体作为一个缓存值
type Detail struct {
	Book      *book.Book           `json:"book"`
	Author    *author.Author       `json:"author"`
	Category  *category.Category   `json:"category"`
	Editorial *editorial.Editorial `json:"editorial"`
}

// References 校验并加载图书引用的作者、分类、出版社
type References struct {
	authors    author.Repository
	categories category.Repository
	editorials editorial.Repository
}

// NewReferences 创建引用加载器
func NewReferences(authors author.Repository, categories category.Repository, editorials editorial.Repository) *References {
	return &References{authors: authors, categories: categories, editorials: editorials}
}

// Load 按ID加载三个引用，任何一个不存在都返回400
func (r *References) Load(ctx context.Context, authorID, categoryID, editorialID uint) (*Detail, error) {
	a, err := r.authors.FindByID(ctx, authorID)
	if err != nil {
		return nil, referenceError(err, author.ErrAuthorNotFound, "作者", authorID)
	}
	c, err := r.categories.FindByID(ctx, categoryID)
	if err != nil {
		return nil, referenceError(err, category.ErrCategoryNotFound, "分类", categoryID)
	}
	e, err := r.editorials.FindByID(ctx, editorialID)
	if err != nil {
		return nil, referenceError(err, editorial.ErrEditorialNotFound, "出版社", editorialID)
	}
	return &Detail{Author: a, Category: c, Editorial: e}, nil
}

// Assemble 加载图书的完整详情
func (r *References) Assemble(ctx context.Context, b *book.Book) (*Detail, error) {
	d, err := r.Load(ctx, b.AuthorID, b.CategoryID, b.EditorialID)
	if err != nil {
		return nil, err
	}
	d.Book = b
	return d, nil
}

// referenceError 引用的记录不存在是请求参数问题，返回400而不是404
func referenceError(err error, notFound error, entity string, id uint) error {
	if errors.Is(err, notFound) {
		return apperrors.ErrUnknownReference.WithMessage("%s %d 不存在", entity, id)
	}
	return err
}
