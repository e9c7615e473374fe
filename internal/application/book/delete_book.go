package book

import (
	"context"

	"github.com/xiebiao/library/internal/domain/book"
)

// DeleteBookUseCase 删除图书用例
// 仍有库存或借阅记录的图书由外键拒绝(400)
type DeleteBookUseCase struct {
	bookService book.Service
	cache       DetailCache
	cacheOpts   CacheOptions
}

// NewDeleteBookUseCase 创建删除用例
func NewDeleteBookUseCase(bookService book.Service, cache DetailCache, cacheOpts CacheOptions) *DeleteBookUseCase {
	return &DeleteBookUseCase{
		bookService: bookService,
		cache:       cache,
		cacheOpts:   cacheOpts,
	}
}

// Execute 删除并返回被删除的图书
func (uc *DeleteBookUseCase) Execute(ctx context.Context, id uint) (*book.Book, error) {
	b, err := uc.bookService.DeleteBook(ctx, id)
	if err != nil {
		return nil, err
	}
	invalidate(ctx, uc.cache, uc.cacheOpts.DetailKey(id))
	return b, nil
}
