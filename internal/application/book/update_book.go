package book

import (
	"context"

	"go.uber.org/zap"

	"github.com/xiebiao/library/internal/domain/book"
	"github.com/xiebiao/library/pkg/logger"
)

// UpdateBookUseCase 修改图书用例
// 引用发生变化时重新校验；成功后删除详情缓存
type UpdateBookUseCase struct {
	bookService book.Service
	refs        *References
	cache       DetailCache
	cacheOpts   CacheOptions
}

// NewUpdateBookUseCase 创建修改用例
func NewUpdateBookUseCase(bookService book.Service, refs *References, cache DetailCache, cacheOpts CacheOptions) *UpdateBookUseCase {
	return &UpdateBookUseCase{
		bookService: bookService,
		refs:        refs,
		cache:       cache,
		cacheOpts:   cacheOpts,
	}
}

// Execute 执行部分更新，返回更新后的详情
func (uc *UpdateBookUseCase) Execute(ctx context.Context, id uint, fields book.UpdateFields) (*Detail, error) {
	current, err := uc.bookService.GetBook(ctx, id)
	if err != nil {
		return nil, err
	}

	// 用更新后的引用ID校验，未修改的沿用原值
	authorID, categoryID, editorialID := current.AuthorID, current.CategoryID, current.EditorialID
	if fields.AuthorID != nil {
		authorID = *fields.AuthorID
	}
	if fields.CategoryID != nil {
		categoryID = *fields.CategoryID
	}
	if fields.EditorialID != nil {
		editorialID = *fields.EditorialID
	}
	if authorID == 0 || categoryID == 0 || editorialID == 0 {
		return nil, book.ErrMissingReference
	}

	detail, err := uc.refs.Load(ctx, authorID, categoryID, editorialID)
	if err != nil {
		return nil, err
	}

	b, err := uc.bookService.UpdateBook(ctx, id, fields)
	if err != nil {
		return nil, err
	}

	invalidate(ctx, uc.cache, uc.cacheOpts.DetailKey(id))

	detail.Book = b
	return detail, nil
}

// invalidate 删除缓存失败只记录日志，最迟TTL到期后读到新数据
func invalidate(ctx context.Context, cache DetailCache, key string) {
	if err := cache.Delete(ctx, key); err != nil {
		logger.FromContext(ctx).Warn("删除图书详情缓存失败", zap.String("key", key), zap.Error(err))
	}
}
