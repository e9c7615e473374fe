package book

import (
	"context"

	"github.com/xiebiao/library/internal/domain/book"
	"github.com/xiebiao/library/pkg/pagination"
)

// ListBooksUseCase 图书列表查询用例
// 1. 支持分页、关键词、按作者/分类/出版社/状态过滤
// 2. 列表只返回摘要，分类、出版社、作者名称由一次JOIN查询带出
type ListBooksUseCase struct {
	bookService book.Service
}

// NewListBooksUseCase 创建列表查询用例
func NewListBooksUseCase(bookService book.Service) *ListBooksUseCase {
	return &ListBooksUseCase{
		bookService: bookService,
	}
}

// ListBooksRequest 列表查询请求DTO
type ListBooksRequest struct {
	Page        int    // 页码(从1开始)
	PageSize    int    // 每页数量
	Keyword     string // 搜索关键词(书名、描述)
	AuthorID    uint
	CategoryID  uint
	EditorialID uint
	Status      book.Status
}

// ListBooksResponse 列表查询响应DTO
type ListBooksResponse struct {
	List     []*book.Summary
	Total    int64
	Page     int
	PageSize int
}

// Execute 执行列表查询用例
// page默认1，pageSize默认20、最大100
func (uc *ListBooksUseCase) Execute(ctx context.Context, req ListBooksRequest) (*ListBooksResponse, error) {
	page, pageSize, _ := pagination.Normalize(req.Page, req.PageSize)

	summaries, total, err := uc.bookService.ListBooks(ctx, book.ListParams{
		Page:        page,
		PageSize:    pageSize,
		Keyword:     req.Keyword,
		AuthorID:    req.AuthorID,
		CategoryID:  req.CategoryID,
		EditorialID: req.EditorialID,
		Status:      req.Status,
	})
	if err != nil {
		return nil, err
	}

	return &ListBooksResponse{
		List:     summaries,
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	}, nil
}
