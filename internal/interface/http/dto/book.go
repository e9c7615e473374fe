package dto

import (
	appbook "github.com/xiebiao/library/internal/application/book"
	"github.com/xiebiao/library/internal/domain/book"
)

// CreateBookRequest 图书入库请求
type CreateBookRequest struct {
	Name           string `json:"name" binding:"required,min=3,max=200" example:"Cien años de soledad"`
	Description    string `json:"description" binding:"max=2000"`
	PlaceOfEdition string `json:"place_of_edition" binding:"required,min=3,max=100" example:"Buenos Aires"`
	YearOfEdition  int    `json:"year_of_edition" binding:"required,min=1" example:"1967"`
	NumPages       int    `json:"num_pages" binding:"required,min=1" example:"471"`
	CoverURL       string `json:"cover_url" binding:"omitempty,max=500"`
	Status         string `json:"status" example:"available"`
	AuthorID       uint   `json:"author_id" binding:"required" example:"1"`
	CategoryID     uint   `json:"category_id" binding:"required" example:"1"`
	EditorialID    uint   `json:"editorial_id" binding:"required" example:"1"`
}

// ToUseCase 转换为用例请求
func (r CreateBookRequest) ToUseCase() appbook.CreateBookRequest {
	return appbook.CreateBookRequest{
		Name:           r.Name,
		Description:    r.Description,
		PlaceOfEdition: r.PlaceOfEdition,
		YearOfEdition:  r.YearOfEdition,
		NumPages:       r.NumPages,
		CoverURL:       r.CoverURL,
		Status:         book.Status(r.Status),
		AuthorID:       r.AuthorID,
		CategoryID:     r.CategoryID,
		EditorialID:    r.EditorialID,
	}
}

// UpdateBookRequest 修改图书请求，修改了引用时会重新校验
type UpdateBookRequest struct {
	Name           *string `json:"name" binding:"omitempty,min=3,max=200"`
	Description    *string `json:"description" binding:"omitempty,max=2000"`
	PlaceOfEdition *string `json:"place_of_edition" binding:"omitempty,min=3,max=100"`
	YearOfEdition  *int    `json:"year_of_edition" binding:"omitempty,min=1"`
	NumPages       *int    `json:"num_pages" binding:"omitempty,min=1"`
	CoverURL       *string `json:"cover_url" binding:"omitempty,max=500"`
	Status         *string `json:"status"`
	AuthorID       *uint   `json:"author_id" binding:"omitempty,min=1"`
	CategoryID     *uint   `json:"category_id" binding:"omitempty,min=1"`
	EditorialID    *uint   `json:"editorial_id" binding:"omitempty,min=1"`
}

// Fields 转换为领域层的部分更新
func (r UpdateBookRequest) Fields() book.UpdateFields {
	f := book.UpdateFields{
		Name:           r.Name,
		Description:    r.Description,
		PlaceOfEdition: r.PlaceOfEdition,
		YearOfEdition:  r.YearOfEdition,
		NumPages:       r.NumPages,
		CoverURL:       r.CoverURL,
		AuthorID:       r.AuthorID,
		CategoryID:     r.CategoryID,
		EditorialID:    r.EditorialID,
	}
	if r.Status != nil {
		s := book.Status(*r.Status)
		f.Status = &s
	}
	return f
}

// ListBooksQuery 图书列表查询参数
type ListBooksQuery struct {
	PageQuery
	AuthorID    uint   `form:"author_id"`
	CategoryID  uint   `form:"category_id"`
	EditorialID uint   `form:"editorial_id"`
	Status      string `form:"status" binding:"omitempty,oneof=available loaned unavailable"`
}

// BookResponse 图书基本信息
type BookResponse struct {
	ID             uint   `json:"id" example:"1"`
	Name           string `json:"name" example:"Cien años de soledad"`
	Description    string `json:"description"`
	PlaceOfEdition string `json:"place_of_edition" example:"Buenos Aires"`
	YearOfEdition  int    `json:"year_of_edition" example:"1967"`
	NumPages       int    `json:"num_pages" example:"471"`
	CoverURL       string `json:"cover_url"`
	Status         string `json:"status" example:"available"`
	AuthorID       uint   `json:"author_id"`
	CategoryID     uint   `json:"category_id"`
	EditorialID    uint   `json:"editorial_id"`
	CreatedAt      string `json:"created_at"`
	UpdatedAt      string `json:"updated_at"`
}

// NewBookResponse 领域实体 → 响应
func NewBookResponse(b *book.Book) *BookResponse {
	if b == nil {
		return nil
	}
	return &BookResponse{
		ID:             b.ID,
		Name:           b.Name,
		Description:    b.Description,
		PlaceOfEdition: b.PlaceOfEdition,
		YearOfEdition:  b.YearOfEdition,
		NumPages:       b.NumPages,
		CoverURL:       b.CoverURL,
		Status:         string(b.Status),
		AuthorID:       b.AuthorID,
		CategoryID:     b.CategoryID,
		EditorialID:    b.EditorialID,
		CreatedAt:      formatTime(b.CreatedAt),
		UpdatedAt:      formatTime(b.UpdatedAt),
	}
}

// BookDetailResponse 图书详情
type BookDetailResponse struct {
	Book      *BookResponse      `json:"book"`
	Author    *AuthorResponse    `json:"author"`
	Category  *CategoryResponse  `json:"category"`
	Editorial *EditorialResponse `json:"editorial"`
}

// NewBookDetailResponse 详情读模型 → 响应
func NewBookDetailResponse(d *appbook.Detail) *BookDetailResponse {
	return &BookDetailResponse{
		Book:      NewBookResponse(d.Book),
		Author:    NewAuthorResponse(d.Author),
		Category:  NewCategoryResponse(d.Category),
		Editorial: NewEditorialResponse(d.Editorial),
	}
}

// BookSummaryResponse 图书列表项
type BookSummaryResponse struct {
	ID              uint   `json:"id" example:"1"`
	Name            string `json:"name" example:"Cien años de soledad"`
	NumPages        int    `json:"num_pages" example:"471"`
	PlaceOfEdition  string `json:"place_of_edition" example:"Buenos Aires"`
	YearOfEdition   int    `json:"year_of_edition" example:"1967"`
	Status          string `json:"status" example:"available"`
	CategoryName    string `json:"category_name" example:"Novela"`
	EditorialName   string `json:"editorial_name" example:"Sudamericana"`
	AuthorFirstName string `json:"author_first_name" example:"Gabriel"`
	AuthorLastName  string `json:"author_last_name" example:"García Márquez"`
}

// NewBookSummaryList 批量转换
func NewBookSummaryList(list []*book.Summary) []*BookSummaryResponse {
	out := make([]*BookSummaryResponse, len(list))
	for i, s := range list {
		out[i] = &BookSummaryResponse{
			ID:              s.ID,
			Name:            s.Name,
			NumPages:        s.NumPages,
			PlaceOfEdition:  s.PlaceOfEdition,
			YearOfEdition:   s.YearOfEdition,
			Status:          string(s.Status),
			CategoryName:    s.CategoryName,
			EditorialName:   s.EditorialName,
			AuthorFirstName: s.AuthorFirstName,
			AuthorLastName:  s.AuthorLastName,
		}
	}
	return out
}
