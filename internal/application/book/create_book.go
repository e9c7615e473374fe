package book

import (
	"context"

	"github.com/xiebiao/library/internal/domain/book"
)

// CreateBookUseCase 图书入库用例
// 1. 校验作者、分类、出版社是否存在(不存在返回400)
// 2. 调用领域服务创建图书
// 3. 返回带引用信息的详情
type CreateBookUseCase struct {
	bookService book.Service
	refs        *References
}

// NewCreateBookUseCase 创建入库用例
func NewCreateBookUseCase(bookService book.Service, refs *References) *CreateBookUseCase {
	return &CreateBookUseCase{
		bookService: bookService,
		refs:        refs,
	}
}

// CreateBookRequest 入库请求DTO
type CreateBookRequest struct {
	Name           string
	Description    string
	PlaceOfEdition string
	YearOfEdition  int
	NumPages       int
	CoverURL       string
	Status         book.Status
	AuthorID       uint
	CategoryID     uint
	EditorialID    uint
}

// Execute 执行入库
func (uc *CreateBookUseCase) Execute(ctx context.Context, req CreateBookRequest) (*Detail, error) {
	if req.AuthorID == 0 || req.CategoryID == 0 || req.EditorialID == 0 {
		return nil, book.ErrMissingReference
	}

	detail, err := uc.refs.Load(ctx, req.AuthorID, req.CategoryID, req.EditorialID)
	if err != nil {
		return nil, err
	}

	b, err := uc.bookService.CreateBook(ctx, book.NewBookParams{
		Name:           req.Name,
		Description:    req.Description,
		PlaceOfEdition: req.PlaceOfEdition,
		YearOfEdition:  req.YearOfEdition,
		NumPages:       req.NumPages,
		CoverURL:       req.CoverURL,
		Status:         req.Status,
		AuthorID:       req.AuthorID,
		CategoryID:     req.CategoryID,
		EditorialID:    req.EditorialID,
	})
	if err != nil {
		return nil, err
	}

	detail.Book = b
	return detail, nil
}
