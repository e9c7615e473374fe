package book

import (
	"strings"
	"time"

	"github.com/xiebiao/library/pkg/validator"
)

// Status 图书状态
// 与库存无关，由管理员手工维护(如破损下架)
type Status string

const (
	StatusAvailable   Status = "available"
	StatusLoaned      Status = "loaned"
	StatusUnavailable Status = "unavailable"
)

// Valid 是否为合法的枚举值
func (s Status) Valid() bool {
	switch s {
	case StatusAvailable, StatusLoaned, StatusUnavailable:
		return true
	}
	return false
}

// DefaultDescription 未填写描述时的默认值
const DefaultDescription = "No tiene descripción"

// Book 图书实体(聚合根)
// DDD设计说明:
// 1. 作者、分类、出版社只保存ID，详情由应用层组装
// 2. 库存是独立聚合(inventory)，一本书最多一条库存记录
type Book struct {
	ID             uint
	Name           string
	Description    string
	PlaceOfEdition string
	YearOfEdition  int
	NumPages       int
	CoverURL       string
	Status         Status
	AuthorID       uint
	CategoryID     uint
	EditorialID    uint
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// NewBookParams 创建图书参数
type NewBookParams struct {
	Name           string
	Description    string
	PlaceOfEdition string
	YearOfEdition  int
	NumPages       int
	CoverURL       string
	Status         Status
	AuthorID       uint
	CategoryID     uint
	EditorialID    uint
}

// NewBook 创建新图书(工厂方法)
func NewBook(p NewBookParams) (*Book, error) {
	if p.Status == "" {
		p.Status = StatusAvailable
	}
	now := time.Now()
	b := &Book{
		Name:           strings.TrimSpace(p.Name),
		Description:    strings.TrimSpace(p.Description),
		PlaceOfEdition: strings.TrimSpace(p.PlaceOfEdition),
		YearOfEdition:  p.YearOfEdition,
		NumPages:       p.NumPages,
		CoverURL:       strings.TrimSpace(p.CoverURL),
		Status:         p.Status,
		AuthorID:       p.AuthorID,
		CategoryID:     p.CategoryID,
		EditorialID:    p.EditorialID,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if b.Description == "" {
		b.Description = DefaultDescription
	}
	if err := b.validate(); err != nil {
		return nil, err
	}
	return b, nil
}

// UpdateFields 部分更新，nil表示不修改
type UpdateFields struct {
	Name           *string
	Description    *string
	PlaceOfEdition *string
	YearOfEdition  *int
	NumPages       *int
	CoverURL       *string
	Status         *Status
	AuthorID       *uint
	CategoryID     *uint
	EditorialID    *uint
}

// Apply 应用部分更新(领域行为)
func (b *Book) Apply(f UpdateFields) error {
	next := *b
	if f.Name != nil {
		next.Name = strings.TrimSpace(*f.Name)
	}
	if f.Description != nil {
		next.Description = strings.TrimSpace(*f.Description)
		if next.Description == "" {
			next.Description = DefaultDescription
		}
	}
	if f.PlaceOfEdition != nil {
		next.PlaceOfEdition = strings.TrimSpace(*f.PlaceOfEdition)
	}
	if f.YearOfEdition != nil {
		next.YearOfEdition = *f.YearOfEdition
	}
	if f.NumPages != nil {
		next.NumPages = *f.NumPages
	}
	if f.CoverURL != nil {
		next.CoverURL = strings.TrimSpace(*f.CoverURL)
	}
	if f.Status != nil {
		next.Status = *f.Status
	}
	if f.AuthorID != nil {
		next.AuthorID = *f.AuthorID
	}
	if f.CategoryID != nil {
		next.CategoryID = *f.CategoryID
	}
	if f.EditorialID != nil {
		next.EditorialID = *f.EditorialID
	}
	if err := next.validate(); err != nil {
		return err
	}
	next.UpdatedAt = time.Now()
	*b = next
	return nil
}

func (b *Book) validate() error {
	if !validator.MinLen(b.Name, 3) || !validator.MaxLen(b.Name, 200) {
		return ErrInvalidName
	}
	if !validator.MinLen(b.PlaceOfEdition, 3) || !validator.MaxLen(b.PlaceOfEdition, 200) {
		return ErrInvalidPlaceOfEdition
	}
	if b.YearOfEdition <= 0 || b.YearOfEdition > time.Now().Year()+1 {
		return ErrInvalidYearOfEdition
	}
	if b.NumPages <= 0 {
		return ErrInvalidNumPages
	}
	if !b.Status.Valid() {
		return ErrInvalidStatus
	}
	if b.AuthorID == 0 || b.CategoryID == 0 || b.EditorialID == 0 {
		return ErrMissingReference
	}
	return nil
}
