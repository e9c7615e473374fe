package book

import (
	"context"
)

// Repository 图书仓储接口(依赖倒置原则)
// 由domain层定义接口,infrastructure层实现
type Repository interface {
	// Create 创建图书
	Create(ctx context.Context, book *Book) error

	// FindByID 根据ID查找图书
	FindByID(ctx context.Context, id uint) (*Book, error)

	// FindByIDs 批量查询(借阅列表组装用)
	FindByIDs(ctx context.Context, ids []uint) (map[uint]*Book, error)

	// Update 更新图书信息
	Update(ctx context.Context, book *Book) error

	// Delete 删除图书(物理删除，仍被库存或借阅引用时由外键拒绝)
	Delete(ctx context.Context, id uint) error

	// ListSummaries 分页查询图书摘要
	// 一次JOIN查询带出分类、出版社、作者名称，避免N+1
	ListSummaries(ctx context.Context, params ListParams) ([]*Summary, int64, error)
}

// ListParams 列表查询参数
type ListParams struct {
	Page        int    // 页码(从1开始)
	PageSize    int    // 每页数量
	Keyword     string // 搜索关键词(书名、描述)
	AuthorID    uint
	CategoryID  uint
	EditorialID uint
	Status      Status
}

// Summary 图书列表读模型
type Summary struct {
	ID              uint
	Name            string
	NumPages        int
	PlaceOfEdition  string
	YearOfEdition   int
	Status          Status
	CategoryName    string
	EditorialName   string
	AuthorFirstName string
	AuthorLastName  string
}
