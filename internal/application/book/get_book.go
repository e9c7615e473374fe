package book

import (
	"context"

	"go.uber.org/zap"

	"github.com/xiebiao/library/internal/domain/book"
	"github.com/xiebiao/library/pkg/logger"
	"github.com/xiebiao/library/pkg/metrics"
)

const cacheName = "book_detail"

// GetBookUseCase 图书详情用例(Cache-Aside)
// 1. 先查Redis，命中直接返回
// 2. 未命中查数据库并组装详情
// 3. 回填缓存，TTL到期后自动失效
//
// 缓存读写失败都降级为直接查库，不影响请求
type GetBookUseCase struct {
	bookService book.Service
	refs        *References
	cache       DetailCache
	cacheOpts   CacheOptions
}

// NewGetBookUseCase 创建详情用例
func NewGetBookUseCase(bookService book.Service, refs *References, cache DetailCache, cacheOpts CacheOptions) *GetBookUseCase {
	return &GetBookUseCase{
		bookService: bookService,
		refs:        refs,
		cache:       cache,
		cacheOpts:   cacheOpts,
	}
}

// Execute 查询图书详情
func (uc *GetBookUseCase) Execute(ctx context.Context, id uint) (*Detail, error) {
	key := uc.cacheOpts.DetailKey(id)
	log := logger.FromContext(ctx)

	var cached Detail
	hit, err := uc.cache.GetJSON(ctx, key, &cached)
	switch {
	case err != nil:
		metrics.RecordCache(cacheName, metrics.ResultError)
		log.Warn("读取图书详情缓存失败", zap.String("key", key), zap.Error(err))
	case hit:
		metrics.RecordCache(cacheName, metrics.ResultHit)
		return &cached, nil
	default:
		metrics.RecordCache(cacheName, metrics.ResultMiss)
	}

	b, err := uc.bookService.GetBook(ctx, id)
	if err != nil {
		return nil, err
	}
	detail, err := uc.refs.Assemble(ctx, b)
	if err != nil {
		return nil, err
	}

	if err := uc.cache.SetJSON(ctx, key, detail, uc.cacheOpts.TTL); err != nil {
		log.Warn("写入图书详情缓存失败", zap.String("key", key), zap.Error(err))
	}
	return detail, nil
}
